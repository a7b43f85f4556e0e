package service

import (
	"context"
	"testing"
	"time"

	"campuspulse/internal/cache"
	"campuspulse/internal/model"
)

func newTestResponseService(rows []model.Response) *ResponseService {
	return NewResponseService(&fakeResponseRepo{rows: rows}, cache.NewExpiring(time.Minute))
}

func TestListResponsesDefaultFilter(t *testing.T) {
	svc := newTestResponseService(sampleRows())

	list, err := svc.List(context.Background(), model.FilterParams{MinQualityScore: 40})
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	// "ok" scores below 40 and drops out, but dataset-wide counts keep it.
	if list.Total != 2 {
		t.Errorf("Total = %d, want 2", list.Total)
	}
	if list.ValidCount != 2 || list.FlaggedCount != 1 {
		t.Errorf("counts = %d valid / %d flagged, want 2/1", list.ValidCount, list.FlaggedCount)
	}
	for _, r := range list.Responses {
		if r.Quality == nil {
			t.Fatalf("response %d missing quality annotation", r.ID)
		}
	}
}

func TestListResponsesIncludeFlagged(t *testing.T) {
	svc := newTestResponseService(sampleRows())

	list, err := svc.List(context.Background(), model.FilterParams{MinQualityScore: 40, IncludeFlagged: true})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if list.Total != 3 {
		t.Errorf("Total = %d, want 3", list.Total)
	}
}

func TestListResponsesFilters(t *testing.T) {
	svc := newTestResponseService(sampleRows())
	ctx := context.Background()

	tests := []struct {
		name   string
		params model.FilterParams
		want   int
	}{
		{"by course", model.FilterParams{MinQualityScore: 40, Courses: []string{"PhD"}}, 1},
		{"by q1 vote", model.FilterParams{MinQualityScore: 40, Q1Vote: model.VoteNo}, 1},
		{"by concern", model.FilterParams{MinQualityScore: 40, Concerns: []string{"privacy"}}, 1},
		{"by search", model.FilterParams{MinQualityScore: 40, SearchQuery: "privacy"}, 1},
		{"by search roll no", model.FilterParams{MinQualityScore: 40, SearchQuery: "p201"}, 1},
		{"no match", model.FilterParams{MinQualityScore: 40, Courses: []string{"MBA"}}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := svc.List(ctx, tt.params)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if list.Total != tt.want {
				t.Errorf("Total = %d, want %d", list.Total, tt.want)
			}
		})
	}
}

func TestListResponsesPagination(t *testing.T) {
	var rows []model.Response
	for i := 1; i <= 7; i++ {
		rows = append(rows, model.Response{
			ID:                   i,
			Course:               "BTech",
			Q1ParentNotification: model.VoteNo,
			Comments:             "I am worried about my privacy and my data being tracked all the time.",
		})
	}
	svc := newTestResponseService(rows)

	list, err := svc.List(context.Background(), model.FilterParams{MinQualityScore: 40, Page: 2, PageSize: 3})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if list.Total != 7 {
		t.Errorf("Total = %d, want 7", list.Total)
	}
	if len(list.Responses) != 3 {
		t.Fatalf("page has %d rows, want 3", len(list.Responses))
	}
	if list.Responses[0].ID != 4 {
		t.Errorf("page 2 starts at id %d, want 4", list.Responses[0].ID)
	}

	// Page past the end is empty, not an error.
	list, err = svc.List(context.Background(), model.FilterParams{MinQualityScore: 40, Page: 5, PageSize: 3})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list.Responses) != 0 {
		t.Errorf("overflow page has %d rows, want 0", len(list.Responses))
	}
}

func TestGetResponseAnnotated(t *testing.T) {
	svc := newTestResponseService(sampleRows())

	row, err := svc.Get(context.Background(), 2)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if row == nil {
		t.Fatal("Get returned nil for existing response")
	}
	if row.Quality == nil || !row.Quality.IsValid {
		t.Errorf("quality = %+v, want valid", row.Quality)
	}
	if row.Concerns == nil || row.Concerns.PrimaryConcern != "safety" {
		t.Errorf("concerns = %+v, want primary safety", row.Concerns)
	}

	missing, err := svc.Get(context.Background(), 999)
	if err != nil {
		t.Fatalf("Get missing: %v", err)
	}
	if missing != nil {
		t.Errorf("Get(999) = %+v, want nil", missing)
	}
}

func TestMetadata(t *testing.T) {
	svc := newTestResponseService(sampleRows())

	meta, err := svc.Metadata(context.Background())
	if err != nil {
		t.Fatalf("Metadata: %v", err)
	}
	if meta.TotalResponses != 3 {
		t.Errorf("TotalResponses = %d, want 3", meta.TotalResponses)
	}
	if len(meta.Courses) != 2 {
		t.Errorf("Courses = %v", meta.Courses)
	}
	if len(meta.ConcernCategories) != 7 {
		t.Errorf("ConcernCategories has %d entries, want 7", len(meta.ConcernCategories))
	}
	if len(meta.Q1Options) != 2 || meta.Q1Options[0] != model.VoteYes {
		t.Errorf("Q1Options = %v", meta.Q1Options)
	}
}
