package service

import (
	"testing"
)

func TestDecisionSummary(t *testing.T) {
	svc := NewDecisionService(NewFindingsService(), NewRecommendationsService())
	snapshot := oppositionSnapshot()

	summary := svc.Summarize(snapshot)

	if summary.Metrics.TotalResponses != 200 || summary.Metrics.ValidResponses != 185 {
		t.Errorf("metrics = %+v", summary.Metrics)
	}
	if summary.Metrics.Q1Support.Percentage != 15.0 {
		t.Errorf("Q1 support percentage = %v, want 15.0", summary.Metrics.Q1Support.Percentage)
	}
	if summary.Metrics.Q1Support.SampleSize != 200 {
		t.Errorf("Q1 sample size = %d, want 200", summary.Metrics.Q1Support.SampleSize)
	}
	if summary.Metrics.SampleAdequacy.Adequacy != "adequate" {
		t.Errorf("adequacy = %q, want adequate for n=200", summary.Metrics.SampleAdequacy.Adequacy)
	}

	if summary.Findings.TotalFindings == 0 {
		t.Error("findings missing")
	}
	if summary.Recommendations.Total == 0 {
		t.Error("recommendations missing")
	}

	if len(summary.ConcernsSummary) != 3 {
		t.Errorf("ConcernsSummary has %d entries, want 3", len(summary.ConcernsSummary))
	}
	if len(summary.SuggestionsSummary) != 3 {
		t.Errorf("SuggestionsSummary has %d entries, want top 3", len(summary.SuggestionsSummary))
	}
	if !summary.ComputedAt.Equal(snapshot.ComputedAt) {
		t.Errorf("ComputedAt = %v, want %v", summary.ComputedAt, snapshot.ComputedAt)
	}
}
