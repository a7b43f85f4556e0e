package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"campuspulse/internal/model"
	"campuspulse/internal/service"
)

// DataHandler serves the raw response listing endpoints
type DataHandler struct {
	responseSvc *service.ResponseService
}

// NewDataHandler creates a new data handler
func NewDataHandler(responseSvc *service.ResponseService) *DataHandler {
	return &DataHandler{responseSvc: responseSvc}
}

// ListResponses handles GET /v1/data/responses
func (h *DataHandler) ListResponses(w http.ResponseWriter, r *http.Request) {
	params := parseFilterParams(r)

	list, err := h.responseSvc.List(r.Context(), params)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// GetResponse handles GET /v1/data/responses/{id}
func (h *DataHandler) GetResponse(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid response id")
		return
	}

	row, err := h.responseSvc.Get(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if row == nil {
		writeError(w, http.StatusNotFound, "response not found")
		return
	}
	writeJSON(w, http.StatusOK, row)
}

// Metadata handles GET /v1/data/metadata
func (h *DataHandler) Metadata(w http.ResponseWriter, r *http.Request) {
	meta, err := h.responseSvc.Metadata(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, meta)
}

// RefreshData handles POST /v1/data/refresh
func (h *DataHandler) RefreshData(w http.ResponseWriter, r *http.Request) {
	h.responseSvc.Invalidate()

	meta, err := h.responseSvc.Metadata(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"total_responses": meta.TotalResponses,
		"message":         "data cache invalidated",
	})
}

func parseFilterParams(r *http.Request) model.FilterParams {
	q := r.URL.Query()

	params := model.FilterParams{
		Courses:         q["courses"],
		Years:           q["years"],
		Q1Vote:          q.Get("q1_vote"),
		Q2Vote:          q.Get("q2_vote"),
		Concerns:        q["concerns"],
		MinQualityScore: 40,
		SearchQuery:     q.Get("search_query"),
		Page:            1,
		PageSize:        50,
	}

	if v, err := strconv.Atoi(q.Get("min_quality_score")); err == nil && v >= 0 && v <= 100 {
		params.MinQualityScore = v
	}
	if q.Get("include_flagged") == "true" {
		params.IncludeFlagged = true
	}
	if v, err := strconv.Atoi(q.Get("page")); err == nil && v >= 1 {
		params.Page = v
	}
	if v, err := strconv.Atoi(q.Get("page_size")); err == nil && v >= 1 && v <= 200 {
		params.PageSize = v
	}
	return params
}
