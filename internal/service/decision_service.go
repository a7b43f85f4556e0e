package service

import (
	"campuspulse/internal/model"
	"campuspulse/internal/stats"
)

// DecisionService assembles the single-payload decision summary for
// administrators from a computed snapshot.
type DecisionService struct {
	findings        *FindingsService
	recommendations *RecommendationsService
}

// NewDecisionService creates a decision-summary assembler.
func NewDecisionService(findings *FindingsService, recommendations *RecommendationsService) *DecisionService {
	return &DecisionService{findings: findings, recommendations: recommendations}
}

// Summarize bundles headline metrics with confidence intervals, sample
// adequacy, findings, recommendations, and the top concerns and
// suggestions into one report.
func (s *DecisionService) Summarize(snapshot *model.Snapshot) model.DecisionSummary {
	overview := snapshot.Overview
	q1Total := overview.Q1SupportCount + overview.Q1OpposeCount
	q2Total := overview.Q2SupportCount + overview.Q2OpposeCount

	concerns := snapshot.Concerns
	if len(concerns) > 3 {
		concerns = concerns[:3]
	}
	topSuggestions := snapshot.Suggestions.Aggregated.TopSuggestions
	if len(topSuggestions) > 3 {
		topSuggestions = topSuggestions[:3]
	}

	return model.DecisionSummary{
		Metrics: model.DecisionMetrics{
			TotalResponses: overview.TotalResponses,
			ValidResponses: overview.ValidResponses,
			Q1Support:      stats.NewPercentageWithCI(overview.Q1SupportCount, q1Total),
			Q2Support:      stats.NewPercentageWithCI(overview.Q2SupportCount, q2Total),
			SampleAdequacy: stats.AssessSampleAdequacy(overview.TotalResponses),
		},
		Findings:           s.findings.Generate(snapshot),
		Recommendations:    s.recommendations.Generate(snapshot),
		ConcernsSummary:    concerns,
		SuggestionsSummary: topSuggestions,
		ComputedAt:         snapshot.ComputedAt,
	}
}
