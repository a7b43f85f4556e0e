package model

// QualityFlag identifies one problem detected in a response.
type QualityFlag string

const (
	FlagTooShort           QualityFlag = "too_short"
	FlagGibberish          QualityFlag = "gibberish"
	FlagKeyboardSpam       QualityFlag = "keyboard_spam"
	FlagCharRepetition     QualityFlag = "char_repetition"
	FlagProfanity          QualityFlag = "profanity"
	FlagAllCaps            QualityFlag = "all_caps"
	FlagLowDictionaryRatio QualityFlag = "low_dictionary_ratio"
	FlagVoteMismatch       QualityFlag = "vote_mismatch"
	FlagDuplicate          QualityFlag = "duplicate"
)

// Vote values for the two survey questions.
const (
	VoteYes = "Yes"
	VoteNo  = "No"
)

// Response is one immutable survey row as supplied by the data source.
// Identity is the 1-based row id. Timestamp is kept raw; parsing happens
// in the temporal analysis, which skips entries it cannot read.
type Response struct {
	ID        int    `json:"id" bson:"id"`
	Timestamp string `json:"timestamp" bson:"timestamp"`
	Name      string `json:"name" bson:"name"`
	RollNo    string `json:"roll_no" bson:"roll_no"`
	Course    string `json:"course" bson:"course"`
	Year      string `json:"year" bson:"year"`

	// Two categorical votes, "Yes"/"No" or empty when unanswered.
	Q1ParentNotification string `json:"q1_parent_notification" bson:"q1_parent_notification"`
	Q2Monitoring         string `json:"q2_monitoring" bson:"q2_monitoring"`

	Comments string `json:"comments" bson:"comments"`

	// Populated on demand by the analysis pipeline, never stored.
	Quality  *QualityResult   `json:"quality,omitempty" bson:"-"`
	Concerns *ConcernAnalysis `json:"concerns,omitempty" bson:"-"`
}

// QualityResult is the outcome of scoring one response.
type QualityResult struct {
	Score       int           `json:"score"`
	Flags       []QualityFlag `json:"flags"`
	IsValid     bool          `json:"is_valid"`
	NeedsReview bool          `json:"needs_review"`
}

// HasFlag reports whether the result contains the given flag.
func (q *QualityResult) HasFlag(flag QualityFlag) bool {
	for _, f := range q.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// ConcernAnalysis is the concern classification of one comment. An empty
// PrimaryConcern means no detectable concern, which is distinct from any
// named category.
type ConcernAnalysis struct {
	PrimaryConcern    string   `json:"primary_concern,omitempty"`
	SecondaryConcerns []string `json:"secondary_concerns"`
	Confidence        float64  `json:"confidence"`
	MatchedKeywords   []string `json:"matched_keywords"`
}

// SentimentResult is the polarity analysis of one comment.
type SentimentResult struct {
	Polarity      float64  `json:"polarity"`
	Label         string   `json:"label"` // positive, negative, neutral
	Confidence    float64  `json:"confidence"`
	PositiveWords []string `json:"positive_words"`
	NegativeWords []string `json:"negative_words"`
}

// SuggestionResult holds actionable suggestions extracted from one comment.
type SuggestionResult struct {
	HasSuggestion bool     `json:"has_suggestion"`
	Suggestions   []string `json:"suggestions"`
	Categories    []string `json:"categories"`
	Confidence    float64  `json:"confidence"`
}

// DuplicateGroup describes a cluster of identical or near-identical
// comments found by the batch duplicate scan. Indices refer to positions
// in the scanned slice.
type DuplicateGroup struct {
	Indices    []int  `json:"indices"`
	SampleText string `json:"sample_text"`
	Count      int    `json:"count"`
}

// FilterParams narrows the live per-response listing.
type FilterParams struct {
	Courses         []string
	Years           []string
	Q1Vote          string
	Q2Vote          string
	Concerns        []string
	MinQualityScore int
	IncludeFlagged  bool
	SearchQuery     string
	Page            int
	PageSize        int
}

// ResponseList is a filtered, paginated page of responses with
// dataset-wide quality counts.
type ResponseList struct {
	Total        int        `json:"total"`
	ValidCount   int        `json:"valid_count"`
	FlaggedCount int        `json:"flagged_count"`
	Responses    []Response `json:"responses"`
}

// DatasetMetadata describes the filterable dimensions of the dataset.
type DatasetMetadata struct {
	TotalResponses    int      `json:"total_responses"`
	Courses           []string `json:"courses"`
	Years             []string `json:"years"`
	Q1Options         []string `json:"q1_options"`
	Q2Options         []string `json:"q2_options"`
	ConcernCategories []string `json:"concern_categories"`
}
