package service

import (
	"strings"
	"testing"
	"time"

	"campuspulse/internal/model"
)

// oppositionSnapshot models a survey with 85% opposition to Q1, privacy
// as the dominant concern, and a wide course gap.
func oppositionSnapshot() *model.Snapshot {
	return &model.Snapshot{
		ComputedAt:     time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
		TotalResponses: 200,
		Overview: model.Overview{
			TotalResponses:   200,
			ValidResponses:   185,
			FlaggedResponses: 15,
			Q1SupportCount:   30,
			Q1OpposeCount:    170,
			Q1SupportPercent: 15.0,
			Q2SupportCount:   24,
			Q2OpposeCount:    176,
			Q2SupportPercent: 12.0,
		},
		Concerns: []model.ConcernStat{
			{ConcernID: "privacy", ConcernName: "Privacy Concerns", Count: 80, Percentage: 40.0},
			{ConcernID: "autonomy", ConcernName: "Autonomy & Independence", Count: 50, Percentage: 25.0},
			{ConcernID: "trust", ConcernName: "Trust Issues", Count: 30, Percentage: 15.0},
		},
		Demographics: model.Demographics{
			ByCourse: []model.GroupBreakdown{
				{Category: "BTech", Total: 120, Q1YesPercent: 10.0},
				{Category: "PhD", Total: 60, Q1YesPercent: 30.0},
			},
			ByYear: []model.GroupBreakdown{
				{Category: "1st Year", Total: 90, Q1YesPercent: 14.0},
				{Category: "2nd Year", Total: 110, Q1YesPercent: 16.0},
			},
		},
		CrossTabulation: model.CrossTabulation{
			TotalValid:             194,
			YesYesPercent:          10.0,
			NoNoPercent:            75.0,
			YesNoPercent:           5.0,
			NoYesPercent:           10.0,
			CorrelationCoefficient: 0.6,
		},
		Sentiment: model.SentimentData{
			Overall: model.SentimentAggregate{
				AveragePolarity: -0.4,
				NegativePercent: 70.0,
				PositivePercent: 10.0,
			},
		},
		Suggestions: model.SuggestionsData{
			Aggregated: model.SuggestionAggregate{
				TotalWithSuggestions: 45,
				SuggestionRate:       22.5,
				TopSuggestions:       []string{"allow opting out for adults", "notify only for emergencies", "limit data retention", "review the policy yearly"},
				CategoryBreakdown:    map[string]int{"timing": 60, "flexibility": 55, "communication": 20},
				TopCategories:        []string{"timing", "flexibility", "communication"},
			},
		},
	}
}

func TestGenerateFindingsOppositionScenario(t *testing.T) {
	report := NewFindingsService().Generate(oppositionSnapshot())

	if report.TotalFindings != 10 {
		t.Fatalf("TotalFindings = %d, want 10", report.TotalFindings)
	}

	first := report.Findings[0]
	if first.Importance != 100 {
		t.Errorf("top finding importance = %d, want 100", first.Importance)
	}
	if !strings.HasPrefix(first.Text, "Overwhelming majority (85.0%)") {
		t.Errorf("top finding text = %q", first.Text)
	}
	if first.SupportingStat != "170 of 200 students" {
		t.Errorf("top finding stat = %q", first.SupportingStat)
	}

	if !strings.HasPrefix(report.ExecutiveSummary, first.Text) {
		t.Errorf("executive summary does not lead with top finding: %q", report.ExecutiveSummary)
	}
	if !strings.HasSuffix(report.ExecutiveSummary, ".") {
		t.Errorf("executive summary must end with a period: %q", report.ExecutiveSummary)
	}

	for i := 1; i < len(report.Findings); i++ {
		if report.Findings[i].Importance > report.Findings[i-1].Importance {
			t.Fatalf("findings not sorted by importance at %d", i)
		}
	}

	if report.Categories["opposition"] != 2 {
		t.Errorf("opposition category count = %d, want 2", report.Categories["opposition"])
	}
	// Both quality findings rank below the cut of ten.
	if report.Categories["quality"] != 0 {
		t.Errorf("quality findings should be trimmed, got %d", report.Categories["quality"])
	}
}

func TestGenerateFindingsDominantConcern(t *testing.T) {
	report := NewFindingsService().Generate(oppositionSnapshot())

	var concernFinding *model.Finding
	for i := range report.Findings {
		if report.Findings[i].Importance == 85 {
			concernFinding = &report.Findings[i]
			break
		}
	}
	if concernFinding == nil {
		t.Fatal("dominant concern finding missing")
	}
	if !strings.HasPrefix(concernFinding.Text, "Privacy Concerns is the dominant concern") {
		t.Errorf("text = %q", concernFinding.Text)
	}
	if concernFinding.Confidence != "high" {
		t.Errorf("confidence = %q, want high for 80 mentions", concernFinding.Confidence)
	}
}

func TestGenerateFindingsEmptySnapshot(t *testing.T) {
	report := NewFindingsService().Generate(&model.Snapshot{})

	if report.TotalFindings != 0 {
		t.Fatalf("TotalFindings = %d, want 0", report.TotalFindings)
	}
	if report.ExecutiveSummary != "" {
		t.Errorf("ExecutiveSummary = %q, want empty", report.ExecutiveSummary)
	}
}
