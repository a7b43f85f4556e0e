package service

import (
	"context"
	"fmt"
	"strings"

	"campuspulse/internal/model"
	"campuspulse/internal/repository"
	"campuspulse/internal/stats"
)

// ErrInvalidSelector is returned when a group selector cannot be parsed.
var ErrInvalidSelector = fmt.Errorf("invalid group selector")

// ComparisonService compares two demographic groups side by side with
// significance testing and plain-English insights.
type ComparisonService struct {
	responseRepo repository.ResponseRepo
}

// NewComparisonService creates a comparison service over the response store.
func NewComparisonService(responseRepo repository.ResponseRepo) *ComparisonService {
	return &ComparisonService{responseRepo: responseRepo}
}

// ParseGroupSelector splits a selector like "course:PhD" into its field
// and value. Only "course" and "year" are valid fields.
func ParseGroupSelector(selector string) (field, value string, err error) {
	idx := strings.Index(selector, ":")
	if idx < 0 {
		return "", "", fmt.Errorf("%w: %q, use 'field:value'", ErrInvalidSelector, selector)
	}
	field = strings.ToLower(strings.TrimSpace(selector[:idx]))
	value = strings.TrimSpace(selector[idx+1:])
	if field != "course" && field != "year" {
		return "", "", fmt.Errorf("%w: field %q, use 'course' or 'year'", ErrInvalidSelector, field)
	}
	return field, value, nil
}

// Compare runs a full side-by-side comparison of two group selectors.
func (s *ComparisonService) Compare(ctx context.Context, selectorA, selectorB string) (*model.GroupComparison, error) {
	fieldA, valueA, err := ParseGroupSelector(selectorA)
	if err != nil {
		return nil, err
	}
	fieldB, valueB, err := ParseGroupSelector(selectorB)
	if err != nil {
		return nil, err
	}

	rows, err := s.responseRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading responses: %w", err)
	}

	groupA := filterGroup(rows, fieldA, valueA)
	groupB := filterGroup(rows, fieldB, valueB)

	metricsA := calculateGroupMetrics(groupA)
	metricsB := calculateGroupMetrics(groupB)

	q1Test := stats.TwoProportionZTest(
		metricsA.Q1Support.Count, metricsA.Q1Support.TotalVoted,
		metricsB.Q1Support.Count, metricsB.Q1Support.TotalVoted,
	)
	q2Test := stats.TwoProportionZTest(
		metricsA.Q2Support.Count, metricsA.Q2Support.TotalVoted,
		metricsB.Q2Support.Count, metricsB.Q2Support.TotalVoted,
	)

	result := &model.GroupComparison{
		GroupA: model.ComparisonGroup{
			Selector: selectorA,
			Field:    fieldA,
			Value:    valueA,
			Metrics:  metricsA,
		},
		GroupB: model.ComparisonGroup{
			Selector: selectorB,
			Field:    fieldB,
			Value:    valueB,
			Metrics:  metricsB,
		},
		Insights: comparisonInsights(valueA, valueB, metricsA, metricsB, q1Test, q2Test),
		SampleSizes: model.SampleSizes{
			GroupA:   metricsA.Total,
			GroupB:   metricsB.Total,
			Combined: metricsA.Total + metricsB.Total,
		},
	}
	result.Comparison.Q1 = model.QuestionComparison{
		DifferencePP:      q1Test.Difference,
		StatisticalTest:   q1Test,
		SignificanceBadge: stats.BadgeForPValue(q1Test.PValue),
	}
	result.Comparison.Q2 = model.QuestionComparison{
		DifferencePP:      q2Test.Difference,
		StatisticalTest:   q2Test,
		SignificanceBadge: stats.BadgeForPValue(q2Test.PValue),
	}
	return result, nil
}

// AvailableGroups lists every course and year value present in the data.
func (s *ComparisonService) AvailableGroups(ctx context.Context) (*model.AvailableGroups, error) {
	courses, err := s.responseRepo.DistinctCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing courses: %w", err)
	}
	years, err := s.responseRepo.DistinctYears(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing years: %w", err)
	}
	return &model.AvailableGroups{Course: courses, Year: years}, nil
}

func filterGroup(rows []model.Response, field, value string) []model.Response {
	var out []model.Response
	for _, r := range rows {
		switch field {
		case "course":
			if r.Course == value {
				out = append(out, r)
			}
		case "year":
			if r.Year == value {
				out = append(out, r)
			}
		}
	}
	return out
}

func calculateGroupMetrics(rows []model.Response) model.GroupMetrics {
	var q1Yes, q1No, q2Yes, q2No int
	for _, r := range rows {
		switch r.Q1ParentNotification {
		case model.VoteYes:
			q1Yes++
		case model.VoteNo:
			q1No++
		}
		switch r.Q2Monitoring {
		case model.VoteYes:
			q2Yes++
		case model.VoteNo:
			q2No++
		}
	}

	return model.GroupMetrics{
		Total:     len(rows),
		Q1Support: voteMetric(q1Yes, q1No),
		Q2Support: voteMetric(q2Yes, q2No),
		Q1WithCI:  stats.NewPercentageWithCI(q1Yes, q1Yes+q1No),
		Q2WithCI:  stats.NewPercentageWithCI(q2Yes, q2Yes+q2No),
	}
}

func voteMetric(yes, no int) model.VoteMetric {
	m := model.VoteMetric{Count: yes, OpposeCount: no, TotalVoted: yes + no}
	if m.TotalVoted > 0 {
		m.Percentage = percentOf(yes, m.TotalVoted)
	}
	return m
}

func comparisonInsights(nameA, nameB string, metricsA, metricsB model.GroupMetrics, q1Test, q2Test stats.ZTestResult) []model.ComparisonInsight {
	var insights []model.ComparisonInsight

	q1Diff := q1Test.Difference
	if abs(q1Diff) >= 1 {
		higher := nameA
		if q1Diff < 0 {
			higher = nameB
		}
		lower := nameB
		if q1Diff < 0 {
			lower = nameA
		}
		text := fmt.Sprintf("%s students appear more supportive, but the difference is not statistically significant", higher)
		confidence := "low"
		if q1Test.Significant {
			text = fmt.Sprintf("%s students are significantly more supportive of parent notification than %s students", higher, lower)
			confidence = "high"
		}
		insights = append(insights, model.ComparisonInsight{
			Text:        text,
			Metric:      "Q1 Support",
			Difference:  fmt.Sprintf("%.1fpp", abs(q1Diff)),
			Significant: q1Test.Significant,
			Confidence:  confidence,
		})
	} else {
		insights = append(insights, model.ComparisonInsight{
			Text:        "Both groups have similar views on parent notification",
			Metric:      "Q1 Support",
			Difference:  fmt.Sprintf("%.1fpp", abs(q1Diff)),
			Significant: false,
			Confidence:  "high",
		})
	}

	q2Diff := q2Test.Difference
	if abs(q2Diff) >= 1 {
		higher := nameA
		if q2Diff < 0 {
			higher = nameB
		}
		lower := nameB
		if q2Diff < 0 {
			lower = nameA
		}
		text := fmt.Sprintf("%s students appear more supportive of monitoring, but difference is not statistically significant", higher)
		confidence := "low"
		if q2Test.Significant {
			text = fmt.Sprintf("%s students are significantly more supportive of 24/7 monitoring than %s students", higher, lower)
			confidence = "high"
		}
		insights = append(insights, model.ComparisonInsight{
			Text:        text,
			Metric:      "Q2 Support",
			Difference:  fmt.Sprintf("%.1fpp", abs(q2Diff)),
			Significant: q2Test.Significant,
			Confidence:  confidence,
		})
	}

	minSize := metricsA.Total
	if metricsB.Total < minSize {
		minSize = metricsB.Total
	}
	if minSize < 30 {
		insights = append(insights, model.ComparisonInsight{
			Text:       fmt.Sprintf("Caution: Small sample size (%d) may limit reliability of comparison", minSize),
			Metric:     "Sample Size",
			Type:       "warning",
			Confidence: "n/a",
		})
	}

	if q1Test.Significant && q2Test.Significant && (q1Diff > 0) == (q2Diff > 0) {
		moreSupportive := nameA
		if q1Diff < 0 {
			moreSupportive = nameB
		}
		insights = append(insights, model.ComparisonInsight{
			Text:       fmt.Sprintf("%s students are consistently more supportive of both policies", moreSupportive),
			Metric:     "Overall Pattern",
			Type:       "summary",
			Confidence: "high",
		})
	}

	return insights
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
