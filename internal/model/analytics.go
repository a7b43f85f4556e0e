package model

import "time"

// Snapshot is the single aggregated-analytics document produced by one
// run of the aggregation pipeline. It is built once, stored wholesale
// and never patched in place.
type Snapshot struct {
	ComputedAt             time.Time `json:"computed_at" bson:"computed_at"`
	ComputationTimeSeconds float64   `json:"computation_time_seconds" bson:"computation_time_seconds"`
	TotalResponses         int       `json:"total_responses" bson:"total_responses"`

	Overview        Overview            `json:"overview" bson:"overview"`
	Quality         QualityDistribution `json:"quality" bson:"quality"`
	Concerns        []ConcernStat       `json:"concerns" bson:"concerns"`
	Arguments       Arguments           `json:"arguments" bson:"arguments"`
	Demographics    Demographics        `json:"demographics" bson:"demographics"`
	CrossTabulation CrossTabulation     `json:"cross_tabulation" bson:"cross_tabulation"`
	ResponseDetails []ResponseDetail    `json:"response_details" bson:"response_details"`
	Temporal        TemporalAnalysis    `json:"temporal" bson:"temporal"`
	WordCloud       WordCloudData       `json:"word_cloud" bson:"word_cloud"`
	Sentiment       SentimentData       `json:"sentiment" bson:"sentiment"`
	Suggestions     SuggestionsData     `json:"suggestions" bson:"suggestions"`
}

// Overview holds the headline metrics.
type Overview struct {
	TotalResponses   int `json:"total_responses" bson:"total_responses"`
	ValidResponses   int `json:"valid_responses" bson:"valid_responses"`
	FlaggedResponses int `json:"flagged_responses" bson:"flagged_responses"`
	DuplicateCount   int `json:"duplicate_count" bson:"duplicate_count"`

	Q1SupportCount   int     `json:"q1_support_count" bson:"q1_support_count"`
	Q1OpposeCount    int     `json:"q1_oppose_count" bson:"q1_oppose_count"`
	Q1SupportPercent float64 `json:"q1_support_percent" bson:"q1_support_percent"`
	Q2SupportCount   int     `json:"q2_support_count" bson:"q2_support_count"`
	Q2OpposeCount    int     `json:"q2_oppose_count" bson:"q2_oppose_count"`
	Q2SupportPercent float64 `json:"q2_support_percent" bson:"q2_support_percent"`

	ResponseByCourse map[string]int `json:"response_by_course" bson:"response_by_course"`
	ResponseByYear   map[string]int `json:"response_by_year" bson:"response_by_year"`
}

// QualityDistribution buckets responses by score band.
type QualityDistribution struct {
	Excellent        int            `json:"excellent" bson:"excellent"`   // score >= 90
	Good             int            `json:"good" bson:"good"`             // 70-89
	Acceptable       int            `json:"acceptable" bson:"acceptable"` // 40-69
	Poor             int            `json:"poor" bson:"poor"`             // < 40
	FlaggedBreakdown map[string]int `json:"flagged_breakdown" bson:"flagged_breakdown"`
}

// ConcernStat is the display row for one concern category.
type ConcernStat struct {
	ConcernID    string   `json:"concern_id" bson:"concern_id"`
	ConcernName  string   `json:"concern_name" bson:"concern_name"`
	Count        int      `json:"count" bson:"count"`
	Percentage   float64  `json:"percentage" bson:"percentage"` // of total concern mentions
	Color        string   `json:"color" bson:"color"`
	SampleQuotes []string `json:"sample_quotes" bson:"sample_quotes"`
}

// ArgumentCluster groups same-stance comments sharing a primary concern.
type ArgumentCluster struct {
	Claim                string   `json:"claim" bson:"claim"`
	Reason               string   `json:"reason" bson:"reason"`
	Frequency            int      `json:"frequency" bson:"frequency"`
	RepresentativeQuotes []string `json:"representative_quotes" bson:"representative_quotes"`
	Stance               string   `json:"stance" bson:"stance"` // "for" or "against"
}

// QuestionArguments holds both stances for one question.
type QuestionArguments struct {
	For     []ArgumentCluster `json:"for" bson:"for"`
	Against []ArgumentCluster `json:"against" bson:"against"`
}

// Arguments covers both survey questions.
type Arguments struct {
	Q1 QuestionArguments `json:"q1" bson:"q1"`
	Q2 QuestionArguments `json:"q2" bson:"q2"`
}

// GroupBreakdown is the vote split within one demographic subgroup.
type GroupBreakdown struct {
	Category     string  `json:"category" bson:"category"`
	Total        int     `json:"total" bson:"total"`
	Q1Yes        int     `json:"q1_yes" bson:"q1_yes"`
	Q1No         int     `json:"q1_no" bson:"q1_no"`
	Q1YesPercent float64 `json:"q1_yes_percent" bson:"q1_yes_percent"`
	Q2Yes        int     `json:"q2_yes" bson:"q2_yes"`
	Q2No         int     `json:"q2_no" bson:"q2_no"`
	Q2YesPercent float64 `json:"q2_yes_percent" bson:"q2_yes_percent"`
}

// Demographics holds breakdowns per grouping field, largest subgroup first.
type Demographics struct {
	ByCourse []GroupBreakdown `json:"by_course" bson:"by_course"`
	ByYear   []GroupBreakdown `json:"by_year" bson:"by_year"`
}

// CrossTabulation is the 2x2 table of the two votes, restricted to rows
// where both votes are valid Yes/No.
type CrossTabulation struct {
	YesYes int `json:"yes_yes" bson:"yes_yes"`
	YesNo  int `json:"yes_no" bson:"yes_no"`
	NoYes  int `json:"no_yes" bson:"no_yes"`
	NoNo   int `json:"no_no" bson:"no_no"`

	YesYesPercent float64 `json:"yes_yes_percent" bson:"yes_yes_percent"`
	YesNoPercent  float64 `json:"yes_no_percent" bson:"yes_no_percent"`
	NoYesPercent  float64 `json:"no_yes_percent" bson:"no_yes_percent"`
	NoNoPercent   float64 `json:"no_no_percent" bson:"no_no_percent"`

	CorrelationCoefficient float64 `json:"correlation_coefficient" bson:"correlation_coefficient"`
	ChiSquare              float64 `json:"chi_square" bson:"chi_square"`
	PValue                 float64 `json:"p_value" bson:"p_value"`
	TotalValid             int     `json:"total_valid" bson:"total_valid"`
}

// ResponseDetail is the per-response analysis index kept in the snapshot
// for detail lookups.
type ResponseDetail struct {
	ID             int           `json:"id" bson:"id"`
	QualityScore   int           `json:"quality_score" bson:"quality_score"`
	QualityFlags   []QualityFlag `json:"quality_flags" bson:"quality_flags"`
	IsValid        bool          `json:"is_valid" bson:"is_valid"`
	PrimaryConcern string        `json:"primary_concern,omitempty" bson:"primary_concern,omitempty"`
}

// PeakHour marks the busiest submission hour.
type PeakHour struct {
	Hour  int    `json:"hour" bson:"hour"`
	Count int    `json:"count" bson:"count"`
	Label string `json:"label" bson:"label"`
}

// PeakDay marks the busiest submission day.
type PeakDay struct {
	Date  string `json:"date" bson:"date"`
	Count int    `json:"count" bson:"count"`
}

// CumulativePoint is one day on the response timeline.
type CumulativePoint struct {
	Date            string `json:"date" bson:"date"`
	DailyCount      int    `json:"daily_count" bson:"daily_count"`
	CumulativeCount int    `json:"cumulative_count" bson:"cumulative_count"`
}

// TemporalAnalysis describes when responses arrived.
type TemporalAnalysis struct {
	HourlyDistribution map[string]int    `json:"hourly_distribution" bson:"hourly_distribution"`
	DailyDistribution  map[string]int    `json:"daily_distribution" bson:"daily_distribution"`
	CumulativeData     []CumulativePoint `json:"cumulative_data" bson:"cumulative_data"`
	PeakHour           *PeakHour         `json:"peak_hour,omitempty" bson:"peak_hour,omitempty"`
	PeakDay            *PeakDay          `json:"peak_day,omitempty" bson:"peak_day,omitempty"`
}

// WordCount is one entry in a word-frequency table.
type WordCount struct {
	Word  string `json:"word" bson:"word"`
	Count int    `json:"count" bson:"count"`
	Size  int    `json:"size" bson:"size"`
}

// WordCloudData holds word-frequency tables overall and split by Q1 vote.
type WordCloudData struct {
	All         []WordCount `json:"all" bson:"all"`
	Support     []WordCount `json:"support" bson:"support"`
	Oppose      []WordCount `json:"oppose" bson:"oppose"`
	TotalWords  int         `json:"total_words" bson:"total_words"`
	UniqueWords int         `json:"unique_words" bson:"unique_words"`
}

// PolarityDistribution is the 5-bucket polarity histogram.
type PolarityDistribution struct {
	VeryNegative int `json:"very_negative" bson:"very_negative"` // < -0.5
	Negative     int `json:"negative" bson:"negative"`           // [-0.5, -0.1)
	Neutral      int `json:"neutral" bson:"neutral"`             // [-0.1, 0.1]
	Positive     int `json:"positive" bson:"positive"`           // (0.1, 0.5]
	VeryPositive int `json:"very_positive" bson:"very_positive"` // > 0.5
}

// SentimentAggregate summarizes sentiment over a set of comments.
type SentimentAggregate struct {
	AveragePolarity float64              `json:"average_polarity" bson:"average_polarity"`
	MedianPolarity  float64              `json:"median_polarity" bson:"median_polarity"`
	PositiveCount   int                  `json:"positive_count" bson:"positive_count"`
	NegativeCount   int                  `json:"negative_count" bson:"negative_count"`
	NeutralCount    int                  `json:"neutral_count" bson:"neutral_count"`
	PositivePercent float64              `json:"positive_percent" bson:"positive_percent"`
	NegativePercent float64              `json:"negative_percent" bson:"negative_percent"`
	Distribution    PolarityDistribution `json:"distribution" bson:"distribution"`
}

// ResponseSentiment is the per-response sentiment index entry.
type ResponseSentiment struct {
	ID       int     `json:"id" bson:"id"`
	Polarity float64 `json:"polarity" bson:"polarity"`
	Label    string  `json:"label" bson:"label"`
}

// SentimentByVote splits the aggregate by Q1 stance.
type SentimentByVote struct {
	Support SentimentAggregate `json:"support" bson:"support"`
	Oppose  SentimentAggregate `json:"oppose" bson:"oppose"`
}

// SentimentData is the sentiment section of the snapshot.
type SentimentData struct {
	Overall            SentimentAggregate  `json:"overall" bson:"overall"`
	ByVote             SentimentByVote     `json:"by_vote" bson:"by_vote"`
	ResponseSentiments []ResponseSentiment `json:"response_sentiments" bson:"response_sentiments"`
}

// SuggestionAggregate summarizes suggestions over a set of comments.
type SuggestionAggregate struct {
	TotalWithSuggestions int            `json:"total_with_suggestions" bson:"total_with_suggestions"`
	SuggestionRate       float64        `json:"suggestion_rate" bson:"suggestion_rate"`
	TopSuggestions       []string       `json:"top_suggestions" bson:"top_suggestions"`
	CategoryBreakdown    map[string]int `json:"category_breakdown" bson:"category_breakdown"`
	TopCategories        []string       `json:"top_categories" bson:"top_categories"`
}

// ResponseSuggestion is the per-response suggestion index entry.
type ResponseSuggestion struct {
	ID            int      `json:"id" bson:"id"`
	HasSuggestion bool     `json:"has_suggestion" bson:"has_suggestion"`
	Suggestions   []string `json:"suggestions" bson:"suggestions"`
	Categories    []string `json:"categories" bson:"categories"`
}

// SuggestionsData is the suggestions section of the snapshot.
type SuggestionsData struct {
	Aggregated          SuggestionAggregate  `json:"aggregated" bson:"aggregated"`
	ResponseSuggestions []ResponseSuggestion `json:"response_suggestions" bson:"response_suggestions"`
}
