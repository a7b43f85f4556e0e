package service

import (
	"context"
	"fmt"
	"strings"

	"campuspulse/internal/cache"
	"campuspulse/internal/config"
	"campuspulse/internal/model"
	"campuspulse/internal/nlp"
	"campuspulse/internal/repository"
)

const annotatedCacheKey = "responses:annotated"

// annotatedSet is the quality-scored response list plus its dataset-wide
// counts, cached together so both are consistent with one scoring pass.
type annotatedSet struct {
	responses    []model.Response
	validCount   int
	flaggedCount int
}

// ResponseService serves filtered, quality-annotated response listings.
type ResponseService struct {
	responseRepo repository.ResponseRepo
	quality      *nlp.QualityAnalyzer
	concerns     *nlp.ConcernClassifier
	listings     *cache.Expiring
}

// NewResponseService creates the response listing service.
func NewResponseService(responseRepo repository.ResponseRepo, listings *cache.Expiring) *ResponseService {
	return &ResponseService{
		responseRepo: responseRepo,
		quality:      nlp.NewQualityAnalyzer(),
		concerns:     nlp.NewConcernClassifier(),
		listings:     listings,
	}
}

// List returns one page of responses matching the filter, annotated with
// quality scores and concern classifications. Scoring the full dataset is
// the expensive part, so the annotated set is cached and filters apply to
// the cached copy.
func (s *ResponseService) List(ctx context.Context, params model.FilterParams) (*model.ResponseList, error) {
	set, err := s.annotated(ctx)
	if err != nil {
		return nil, err
	}
	if len(set.responses) == 0 {
		return &model.ResponseList{Responses: []model.Response{}}, nil
	}

	filtered := filterResponses(set.responses, params)

	page := params.Page
	if page < 1 {
		page = 1
	}
	pageSize := params.PageSize
	if pageSize < 1 {
		pageSize = 50
	}
	if pageSize > 200 {
		pageSize = 200
	}

	total := len(filtered)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return &model.ResponseList{
		Total:        total,
		ValidCount:   set.validCount,
		FlaggedCount: set.flaggedCount,
		Responses:    filtered[start:end],
	}, nil
}

// Get returns a single response by id, annotated, or (nil, nil) when it
// does not exist.
func (s *ResponseService) Get(ctx context.Context, id int) (*model.Response, error) {
	row, err := s.responseRepo.GetByID(ctx, id)
	if err != nil || row == nil {
		return nil, err
	}
	s.annotate(row)
	return row, nil
}

// Metadata describes the filterable dimensions of the dataset.
func (s *ResponseService) Metadata(ctx context.Context) (*model.DatasetMetadata, error) {
	total, err := s.responseRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting responses: %w", err)
	}
	courses, err := s.responseRepo.DistinctCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing courses: %w", err)
	}
	years, err := s.responseRepo.DistinctYears(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing years: %w", err)
	}

	categories := config.ConcernCategories()
	ids := make([]string, len(categories))
	for i, c := range categories {
		ids[i] = c.ID
	}

	return &model.DatasetMetadata{
		TotalResponses:    int(total),
		Courses:           courses,
		Years:             years,
		Q1Options:         []string{model.VoteYes, model.VoteNo},
		Q2Options:         []string{model.VoteYes, model.VoteNo},
		ConcernCategories: ids,
	}, nil
}

// Invalidate drops the cached annotated listing, forcing a rescore on the
// next List call. Called after data imports.
func (s *ResponseService) Invalidate() {
	s.listings.Invalidate(annotatedCacheKey)
}

func (s *ResponseService) annotated(ctx context.Context) (*annotatedSet, error) {
	if cached, ok := s.listings.Get(annotatedCacheKey); ok {
		return cached.(*annotatedSet), nil
	}

	rows, err := s.responseRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading responses: %w", err)
	}

	set := &annotatedSet{responses: rows}
	for i := range set.responses {
		s.annotate(&set.responses[i])
		if set.responses[i].Quality.IsValid {
			set.validCount++
		}
		if len(set.responses[i].Quality.Flags) > 0 {
			set.flaggedCount++
		}
	}

	s.listings.Set(annotatedCacheKey, set)
	return set, nil
}

func (s *ResponseService) annotate(r *model.Response) {
	quality := s.quality.Analyze(r.Comments, r.Q1ParentNotification, r.Q2Monitoring)
	r.Quality = &quality
	if quality.IsValid {
		concerns := s.concerns.Classify(r.Comments)
		r.Concerns = &concerns
	}
}

func filterResponses(rows []model.Response, params model.FilterParams) []model.Response {
	filtered := make([]model.Response, 0, len(rows))
	for _, r := range rows {
		if !params.IncludeFlagged && (r.Quality == nil || r.Quality.Score < params.MinQualityScore) {
			continue
		}
		if len(params.Courses) > 0 && !containsString(params.Courses, r.Course) {
			continue
		}
		if len(params.Years) > 0 && !containsString(params.Years, r.Year) {
			continue
		}
		if params.Q1Vote != "" && r.Q1ParentNotification != params.Q1Vote {
			continue
		}
		if params.Q2Vote != "" && r.Q2Monitoring != params.Q2Vote {
			continue
		}
		if len(params.Concerns) > 0 {
			if r.Concerns == nil || !containsString(params.Concerns, r.Concerns.PrimaryConcern) {
				continue
			}
		}
		if params.SearchQuery != "" {
			q := strings.ToLower(params.SearchQuery)
			if !strings.Contains(strings.ToLower(r.Comments), q) &&
				!strings.Contains(strings.ToLower(r.Name), q) &&
				!strings.Contains(strings.ToLower(r.RollNo), q) {
				continue
			}
		}
		filtered = append(filtered, r)
	}
	return filtered
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
