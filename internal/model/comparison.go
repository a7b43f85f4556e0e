package model

import (
	"time"

	"campuspulse/internal/stats"
)

// VoteMetric summarizes one question's vote within a group.
type VoteMetric struct {
	Count       int     `json:"count"`
	OpposeCount int     `json:"oppose_count"`
	TotalVoted  int     `json:"total_voted"`
	Percentage  float64 `json:"percentage"`
}

// GroupMetrics holds the key metrics for one demographic group.
type GroupMetrics struct {
	Total     int                    `json:"total"`
	Q1Support VoteMetric             `json:"q1_support"`
	Q2Support VoteMetric             `json:"q2_support"`
	Q1WithCI  stats.PercentageWithCI `json:"q1_with_ci"`
	Q2WithCI  stats.PercentageWithCI `json:"q2_with_ci"`
}

// ComparisonGroup identifies one side of a comparison.
type ComparisonGroup struct {
	Selector string       `json:"selector"`
	Field    string       `json:"field"`
	Value    string       `json:"value"`
	Metrics  GroupMetrics `json:"metrics"`
}

// QuestionComparison is the statistical comparison for one question.
type QuestionComparison struct {
	DifferencePP      float64                 `json:"difference_pp"`
	StatisticalTest   stats.ZTestResult       `json:"statistical_test"`
	SignificanceBadge stats.SignificanceBadge `json:"significance_badge"`
}

// ComparisonInsight is one plain-English observation about a comparison.
type ComparisonInsight struct {
	Text        string `json:"text"`
	Metric      string `json:"metric"`
	Difference  string `json:"difference,omitempty"`
	Significant bool   `json:"significant"`
	Type        string `json:"type,omitempty"`
	Confidence  string `json:"confidence"`
}

// SampleSizes reports how many responses fed each side of a comparison.
type SampleSizes struct {
	GroupA   int `json:"group_a"`
	GroupB   int `json:"group_b"`
	Combined int `json:"combined"`
}

// GroupComparison is the full side-by-side comparison of two groups.
type GroupComparison struct {
	GroupA     ComparisonGroup     `json:"group_a"`
	GroupB     ComparisonGroup     `json:"group_b"`
	Comparison struct {
		Q1 QuestionComparison `json:"q1"`
		Q2 QuestionComparison `json:"q2"`
	} `json:"comparison"`
	Insights    []ComparisonInsight `json:"insights"`
	SampleSizes SampleSizes         `json:"sample_sizes"`
}

// AvailableGroups lists the group values that can be compared.
type AvailableGroups struct {
	Course []string `json:"course"`
	Year   []string `json:"year"`
}

// DecisionMetrics is the metrics block of a decision summary.
type DecisionMetrics struct {
	TotalResponses int                    `json:"total_responses"`
	ValidResponses int                    `json:"valid_responses"`
	Q1Support      stats.PercentageWithCI `json:"q1_support"`
	Q2Support      stats.PercentageWithCI `json:"q2_support"`
	SampleAdequacy stats.SampleAdequacy   `json:"sample_adequacy"`
}

// DecisionSummary bundles everything a decision-maker needs in one payload.
type DecisionSummary struct {
	Metrics            DecisionMetrics       `json:"metrics"`
	Findings           KeyFindingsReport     `json:"findings"`
	Recommendations    RecommendationsReport `json:"recommendations"`
	ConcernsSummary    []ConcernStat         `json:"concerns_summary"`
	SuggestionsSummary []string              `json:"suggestions_summary"`
	ComputedAt         time.Time             `json:"computed_at"`
}
