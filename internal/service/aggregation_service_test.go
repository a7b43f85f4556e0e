package service

import (
	"testing"

	"campuspulse/internal/model"
)

func sampleRows() []model.Response {
	return []model.Response{
		{
			ID:                   1,
			Timestamp:            "2026-01-10T09:15:00",
			Name:                 "Asha",
			RollNo:               "B101",
			Course:               "BTech",
			Year:                 "2nd Year",
			Q1ParentNotification: model.VoteNo,
			Q2Monitoring:         model.VoteNo,
			Comments:             "I am worried about my privacy and my data being tracked all the time.",
		},
		{
			ID:                   2,
			Timestamp:            "2026-01-10T14:30:00",
			Name:                 "Ravi",
			RollNo:               "P201",
			Course:               "PhD",
			Year:                 "1st Year",
			Q1ParentNotification: model.VoteYes,
			Q2Monitoring:         model.VoteYes,
			Comments:             "I support this policy because it is a good idea for safety on campus.",
		},
		{
			ID:                   3,
			Timestamp:            "2026-01-11T09:45:00",
			Name:                 "Meera",
			RollNo:               "B102",
			Course:               "BTech",
			Year:                 "2nd Year",
			Q1ParentNotification: model.VoteNo,
			Comments:             "ok",
		},
	}
}

func TestComputeSnapshotEmpty(t *testing.T) {
	svc := NewAggregationService(nil, nil, nil)
	snap := svc.ComputeSnapshot(nil)

	if snap.TotalResponses != 0 {
		t.Fatalf("TotalResponses = %d, want 0", snap.TotalResponses)
	}
	if snap.Overview.Q1SupportPercent != 0 {
		t.Errorf("Q1SupportPercent = %v, want 0", snap.Overview.Q1SupportPercent)
	}
	if len(snap.Concerns) != 7 {
		t.Errorf("concern list has %d entries, want all 7 categories", len(snap.Concerns))
	}
	if len(snap.ResponseDetails) != 0 {
		t.Errorf("ResponseDetails has %d entries, want 0", len(snap.ResponseDetails))
	}
	if snap.CrossTabulation.PValue != 1.0 {
		t.Errorf("empty cross tab p-value = %v, want 1.0", snap.CrossTabulation.PValue)
	}
}

func TestComputeSnapshotOverview(t *testing.T) {
	svc := NewAggregationService(nil, nil, nil)
	snap := svc.ComputeSnapshot(sampleRows())

	ov := snap.Overview
	if ov.TotalResponses != 3 {
		t.Fatalf("TotalResponses = %d, want 3", ov.TotalResponses)
	}
	// Rows 1 and 2 score 100; "ok" is too short and gibberish.
	if ov.ValidResponses != 2 {
		t.Errorf("ValidResponses = %d, want 2", ov.ValidResponses)
	}
	if ov.FlaggedResponses != 1 {
		t.Errorf("FlaggedResponses = %d, want 1", ov.FlaggedResponses)
	}
	if ov.Q1SupportCount != 1 || ov.Q1OpposeCount != 2 {
		t.Errorf("Q1 counts = %d/%d, want 1/2", ov.Q1SupportCount, ov.Q1OpposeCount)
	}
	if ov.Q1SupportPercent != 33.3 {
		t.Errorf("Q1SupportPercent = %v, want 33.3", ov.Q1SupportPercent)
	}
	if ov.ResponseByCourse["BTech"] != 2 || ov.ResponseByCourse["PhD"] != 1 {
		t.Errorf("ResponseByCourse = %v", ov.ResponseByCourse)
	}
	if ov.DuplicateCount != 0 {
		t.Errorf("DuplicateCount = %d, want 0", ov.DuplicateCount)
	}
}

func TestComputeSnapshotQuality(t *testing.T) {
	svc := NewAggregationService(nil, nil, nil)
	snap := svc.ComputeSnapshot(sampleRows())

	q := snap.Quality
	if q.Excellent != 2 {
		t.Errorf("Excellent = %d, want 2", q.Excellent)
	}
	if q.Poor != 1 {
		t.Errorf("Poor = %d, want 1", q.Poor)
	}
	if got := q.Excellent + q.Good + q.Acceptable + q.Poor; got != 3 {
		t.Errorf("quality bands sum to %d, want 3", got)
	}
	if q.FlaggedBreakdown[string(model.FlagTooShort)] != 1 {
		t.Errorf("FlaggedBreakdown = %v, want too_short once", q.FlaggedBreakdown)
	}
	if q.FlaggedBreakdown[string(model.FlagGibberish)] != 1 {
		t.Errorf("FlaggedBreakdown = %v, want gibberish once", q.FlaggedBreakdown)
	}
}

func TestComputeSnapshotConcerns(t *testing.T) {
	svc := NewAggregationService(nil, nil, nil)
	snap := svc.ComputeSnapshot(sampleRows())

	counts := make(map[string]int)
	for _, c := range snap.Concerns {
		counts[c.ConcernID] = c.Count
	}
	if counts["privacy"] != 1 {
		t.Errorf("privacy count = %d, want 1", counts["privacy"])
	}
	if counts["safety"] != 1 {
		t.Errorf("safety count = %d, want 1", counts["safety"])
	}

	// The flagged row never reaches the classifier.
	total := 0
	for _, c := range snap.Concerns {
		total += c.Count
	}
	if total != 2 {
		t.Errorf("total concern mentions = %d, want 2", total)
	}
}

func TestComputeSnapshotCrossTabulation(t *testing.T) {
	svc := NewAggregationService(nil, nil, nil)
	snap := svc.ComputeSnapshot(sampleRows())

	ct := snap.CrossTabulation
	// Row 3 has no Q2 vote and is excluded.
	if ct.TotalValid != 2 {
		t.Fatalf("TotalValid = %d, want 2", ct.TotalValid)
	}
	if ct.YesYes != 1 || ct.NoNo != 1 || ct.YesNo != 0 || ct.NoYes != 0 {
		t.Errorf("cells = %d/%d/%d/%d, want 1/0/0/1", ct.YesYes, ct.YesNo, ct.NoYes, ct.NoNo)
	}
}

func TestComputeSnapshotTemporal(t *testing.T) {
	svc := NewAggregationService(nil, nil, nil)
	snap := svc.ComputeSnapshot(sampleRows())

	tm := snap.Temporal
	if len(tm.HourlyDistribution) != 24 {
		t.Fatalf("hourly distribution has %d buckets, want 24", len(tm.HourlyDistribution))
	}
	if tm.HourlyDistribution["9"] != 2 {
		t.Errorf("hour 9 count = %d, want 2", tm.HourlyDistribution["9"])
	}
	if tm.PeakHour == nil || tm.PeakHour.Hour != 9 {
		t.Errorf("PeakHour = %+v, want hour 9", tm.PeakHour)
	}
	if tm.DailyDistribution["2026-01-10"] != 2 || tm.DailyDistribution["2026-01-11"] != 1 {
		t.Errorf("DailyDistribution = %v", tm.DailyDistribution)
	}
	if len(tm.CumulativeData) != 2 {
		t.Fatalf("CumulativeData has %d points, want 2", len(tm.CumulativeData))
	}
	if last := tm.CumulativeData[len(tm.CumulativeData)-1]; last.CumulativeCount != 3 {
		t.Errorf("final cumulative = %d, want 3", last.CumulativeCount)
	}
}

func TestComputeSnapshotPerResponseSections(t *testing.T) {
	svc := NewAggregationService(nil, nil, nil)
	snap := svc.ComputeSnapshot(sampleRows())

	if len(snap.ResponseDetails) != 3 {
		t.Fatalf("ResponseDetails has %d entries, want 3", len(snap.ResponseDetails))
	}
	if len(snap.Sentiment.ResponseSentiments) != 3 {
		t.Fatalf("ResponseSentiments has %d entries, want 3", len(snap.Sentiment.ResponseSentiments))
	}
	// "ok" is too short for per-response sentiment and stays neutral.
	for _, rs := range snap.Sentiment.ResponseSentiments {
		if rs.ID == 3 && rs.Label != "neutral" {
			t.Errorf("short comment label = %q, want neutral", rs.Label)
		}
	}
	if len(snap.Suggestions.ResponseSuggestions) != 3 {
		t.Fatalf("ResponseSuggestions has %d entries, want 3", len(snap.Suggestions.ResponseSuggestions))
	}
}
