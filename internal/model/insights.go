package model

import "time"

// Finding is one ranked plain-English insight derived from a snapshot.
type Finding struct {
	Text           string `json:"text"`
	Category       string `json:"category"`
	Importance     int    `json:"importance"`
	Confidence     string `json:"confidence"`
	DataReference  string `json:"data_reference"`
	SupportingStat string `json:"supporting_stat,omitempty"`
}

// KeyFindingsReport is the ranked findings list plus metadata.
type KeyFindingsReport struct {
	Findings         []Finding      `json:"findings"`
	TotalFindings    int            `json:"total_findings"`
	ExecutiveSummary string         `json:"executive_summary"`
	Categories       map[string]int `json:"categories"`
}

// Recommendation is one actionable policy recommendation.
type Recommendation struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Priority      string   `json:"priority"`
	Justification string   `json:"justification"`
	ActionItems   []string `json:"action_items"`
	Category      string   `json:"category"`
}

// PriorityCounts tallies recommendations per priority band.
type PriorityCounts struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// RecommendationsReport is the prioritized recommendations list plus summary.
type RecommendationsReport struct {
	Recommendations []Recommendation `json:"recommendations"`
	Total           int              `json:"total"`
	ByPriority      PriorityCounts   `json:"by_priority"`
	Summary         string           `json:"summary"`
}

// RefreshResult reports the outcome of a cache refresh.
type RefreshResult struct {
	Success         bool            `json:"success"`
	TotalResponses  int             `json:"total_responses,omitempty"`
	ComputationTime float64         `json:"computation_time,omitempty"`
	Features        map[string]bool `json:"features,omitempty"`
	Message         string          `json:"message,omitempty"`
}

// CacheStatus describes the currently cached snapshot, if any.
type CacheStatus struct {
	Exists                 bool       `json:"exists"`
	Message                string     `json:"message,omitempty"`
	ComputedAt             *time.Time `json:"computed_at,omitempty"`
	ComputationTimeSeconds float64    `json:"computation_time_seconds,omitempty"`
	TotalResponses         int        `json:"total_responses,omitempty"`
	HasTemporal            bool       `json:"has_temporal"`
	HasWordCloud           bool       `json:"has_word_cloud"`
	HasSentiment           bool       `json:"has_sentiment"`
	HasSuggestions         bool       `json:"has_suggestions"`
}
