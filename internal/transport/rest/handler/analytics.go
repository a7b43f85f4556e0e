package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"campuspulse/internal/model"
	"campuspulse/internal/service"
	"campuspulse/internal/transport/ws"
)

// AnalyticsHandler serves the precomputed snapshot sections and the
// derived insight reports.
type AnalyticsHandler struct {
	aggregationSvc *service.AggregationService
	findingsSvc    *service.FindingsService
	recsSvc        *service.RecommendationsService
	decisionSvc    *service.DecisionService
	comparisonSvc  *service.ComparisonService
	hub            *ws.Hub
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(
	aggregationSvc *service.AggregationService,
	findingsSvc *service.FindingsService,
	recsSvc *service.RecommendationsService,
	decisionSvc *service.DecisionService,
	comparisonSvc *service.ComparisonService,
	hub *ws.Hub,
) *AnalyticsHandler {
	return &AnalyticsHandler{
		aggregationSvc: aggregationSvc,
		findingsSvc:    findingsSvc,
		recsSvc:        recsSvc,
		decisionSvc:    decisionSvc,
		comparisonSvc:  comparisonSvc,
		hub:            hub,
	}
}

// snapshot loads the current snapshot or writes the appropriate error.
func (h *AnalyticsHandler) snapshot(w http.ResponseWriter, r *http.Request) *model.Snapshot {
	snapshot, err := h.aggregationSvc.Current(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil
	}
	if snapshot == nil {
		writeError(w, http.StatusServiceUnavailable, "analytics snapshot not available, run refresh")
		return nil
	}
	return snapshot
}

// Overview handles GET /v1/analytics/overview
func (h *AnalyticsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	if snapshot := h.snapshot(w, r); snapshot != nil {
		writeJSON(w, http.StatusOK, snapshot.Overview)
	}
}

// Quality handles GET /v1/analytics/quality
func (h *AnalyticsHandler) Quality(w http.ResponseWriter, r *http.Request) {
	if snapshot := h.snapshot(w, r); snapshot != nil {
		writeJSON(w, http.StatusOK, snapshot.Quality)
	}
}

// Concerns handles GET /v1/analytics/concerns
func (h *AnalyticsHandler) Concerns(w http.ResponseWriter, r *http.Request) {
	if snapshot := h.snapshot(w, r); snapshot != nil {
		writeJSON(w, http.StatusOK, snapshot.Concerns)
	}
}

// Arguments handles GET /v1/analytics/arguments. An optional question
// query param narrows the payload to one question's clusters.
func (h *AnalyticsHandler) Arguments(w http.ResponseWriter, r *http.Request) {
	snapshot := h.snapshot(w, r)
	if snapshot == nil {
		return
	}
	switch r.URL.Query().Get("question") {
	case "":
		writeJSON(w, http.StatusOK, snapshot.Arguments)
	case "q1":
		writeJSON(w, http.StatusOK, snapshot.Arguments.Q1)
	case "q2":
		writeJSON(w, http.StatusOK, snapshot.Arguments.Q2)
	default:
		writeError(w, http.StatusBadRequest, "question must be q1 or q2")
	}
}

// Demographics handles GET /v1/analytics/demographics. An optional
// group_by query param selects a single grouping.
func (h *AnalyticsHandler) Demographics(w http.ResponseWriter, r *http.Request) {
	snapshot := h.snapshot(w, r)
	if snapshot == nil {
		return
	}
	switch r.URL.Query().Get("group_by") {
	case "":
		writeJSON(w, http.StatusOK, snapshot.Demographics)
	case "course":
		writeJSON(w, http.StatusOK, snapshot.Demographics.ByCourse)
	case "year":
		writeJSON(w, http.StatusOK, snapshot.Demographics.ByYear)
	default:
		writeError(w, http.StatusBadRequest, "group_by must be course or year")
	}
}

// CrossTabulation handles GET /v1/analytics/cross-tabulation
func (h *AnalyticsHandler) CrossTabulation(w http.ResponseWriter, r *http.Request) {
	if snapshot := h.snapshot(w, r); snapshot != nil {
		writeJSON(w, http.StatusOK, snapshot.CrossTabulation)
	}
}

// Temporal handles GET /v1/analytics/temporal
func (h *AnalyticsHandler) Temporal(w http.ResponseWriter, r *http.Request) {
	if snapshot := h.snapshot(w, r); snapshot != nil {
		writeJSON(w, http.StatusOK, snapshot.Temporal)
	}
}

// WordCloud handles GET /v1/analytics/word-cloud. An optional category
// query param returns one word list instead of the full payload.
func (h *AnalyticsHandler) WordCloud(w http.ResponseWriter, r *http.Request) {
	snapshot := h.snapshot(w, r)
	if snapshot == nil {
		return
	}
	switch r.URL.Query().Get("category") {
	case "":
		writeJSON(w, http.StatusOK, snapshot.WordCloud)
	case "all":
		writeJSON(w, http.StatusOK, snapshot.WordCloud.All)
	case "support":
		writeJSON(w, http.StatusOK, snapshot.WordCloud.Support)
	case "oppose":
		writeJSON(w, http.StatusOK, snapshot.WordCloud.Oppose)
	default:
		writeError(w, http.StatusBadRequest, "category must be all, support or oppose")
	}
}

// Sentiment handles GET /v1/analytics/sentiment
func (h *AnalyticsHandler) Sentiment(w http.ResponseWriter, r *http.Request) {
	if snapshot := h.snapshot(w, r); snapshot != nil {
		writeJSON(w, http.StatusOK, snapshot.Sentiment)
	}
}

// SentimentByID handles GET /v1/analytics/sentiment/{id}
func (h *AnalyticsHandler) SentimentByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid response id")
		return
	}

	snapshot := h.snapshot(w, r)
	if snapshot == nil {
		return
	}
	for _, rs := range snapshot.Sentiment.ResponseSentiments {
		if rs.ID == id {
			writeJSON(w, http.StatusOK, rs)
			return
		}
	}
	writeError(w, http.StatusNotFound, "response not found")
}

// Suggestions handles GET /v1/analytics/suggestions
func (h *AnalyticsHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	if snapshot := h.snapshot(w, r); snapshot != nil {
		writeJSON(w, http.StatusOK, snapshot.Suggestions)
	}
}

// SuggestionByID handles GET /v1/analytics/suggestions/{id}
func (h *AnalyticsHandler) SuggestionByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid response id")
		return
	}

	snapshot := h.snapshot(w, r)
	if snapshot == nil {
		return
	}
	for _, rs := range snapshot.Suggestions.ResponseSuggestions {
		if rs.ID == id {
			writeJSON(w, http.StatusOK, rs)
			return
		}
	}
	writeError(w, http.StatusNotFound, "response not found")
}

// KeyFindings handles GET /v1/analytics/key-findings
func (h *AnalyticsHandler) KeyFindings(w http.ResponseWriter, r *http.Request) {
	if snapshot := h.snapshot(w, r); snapshot != nil {
		writeJSON(w, http.StatusOK, h.findingsSvc.Generate(snapshot))
	}
}

// Recommendations handles GET /v1/analytics/recommendations
func (h *AnalyticsHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	if snapshot := h.snapshot(w, r); snapshot != nil {
		writeJSON(w, http.StatusOK, h.recsSvc.Generate(snapshot))
	}
}

// DecisionSummary handles GET /v1/analytics/decision-summary
func (h *AnalyticsHandler) DecisionSummary(w http.ResponseWriter, r *http.Request) {
	if snapshot := h.snapshot(w, r); snapshot != nil {
		writeJSON(w, http.StatusOK, h.decisionSvc.Summarize(snapshot))
	}
}

// Compare handles GET /v1/analytics/compare?group_a=course:PhD&group_b=course:BTech
func (h *AnalyticsHandler) Compare(w http.ResponseWriter, r *http.Request) {
	groupA := r.URL.Query().Get("group_a")
	groupB := r.URL.Query().Get("group_b")
	if groupA == "" || groupB == "" {
		writeError(w, http.StatusBadRequest, "group_a and group_b query parameters are required")
		return
	}

	result, err := h.comparisonSvc.Compare(r.Context(), groupA, groupB)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrInvalidSelector) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// CompareGroups handles GET /v1/analytics/compare/groups
func (h *AnalyticsHandler) CompareGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.comparisonSvc.AvailableGroups(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

// CacheStatus handles GET /v1/analytics/cache-status
func (h *AnalyticsHandler) CacheStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.aggregationSvc.Status(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// Refresh handles POST /v1/analytics/refresh
func (h *AnalyticsHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.aggregationSvc.Refresh(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, model.RefreshResult{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	if h.hub != nil {
		h.hub.Broadcast(ws.MsgSnapshotRefreshed, map[string]interface{}{
			"total_responses": snapshot.TotalResponses,
			"computed_at":     snapshot.ComputedAt,
		})
	}

	writeJSON(w, http.StatusOK, model.RefreshResult{
		Success:         true,
		TotalResponses:  snapshot.TotalResponses,
		ComputationTime: snapshot.ComputationTimeSeconds,
		Features: map[string]bool{
			"temporal":    len(snapshot.Temporal.CumulativeData) > 0,
			"word_cloud":  len(snapshot.WordCloud.All) > 0,
			"sentiment":   snapshot.Sentiment.Overall != (model.SentimentAggregate{}),
			"suggestions": snapshot.Suggestions.Aggregated.TotalWithSuggestions > 0 || len(snapshot.Suggestions.ResponseSuggestions) > 0,
		},
	})
}
