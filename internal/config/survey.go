package config

// ConcernCategory describes one thematic concern label assigned to
// comments by keyword matching.
type ConcernCategory struct {
	ID          string
	DisplayName string
	Color       string
	Keywords    []string
}

// ConcernCategories returns the fixed category table. Slice order is the
// tie-break order when two categories score equally.
func ConcernCategories() []ConcernCategory {
	return []ConcernCategory{
		{
			ID:          "privacy",
			DisplayName: "Privacy Concerns",
			Color:       "#ef4444",
			Keywords: []string{"privacy", "surveillance", "track", "tracking", "monitor", "monitoring",
				"watch", "data", "spy", "spying", "confidential", "private"},
		},
		{
			ID:          "autonomy",
			DisplayName: "Autonomy & Independence",
			Color:       "#f97316",
			Keywords: []string{"adult", "adults", "independent", "independence", "freedom", "choice",
				"autonomy", "mature", "grown", "18", "age", "infantil", "child", "children"},
		},
		{
			ID:          "trust",
			DisplayName: "Trust Issues",
			Color:       "#eab308",
			Keywords: []string{"trust", "distrust", "believe", "faith", "doubt", "suspicion",
				"mistrust", "confidence"},
		},
		{
			ID:          "safety",
			DisplayName: "Safety & Security",
			Color:       "#22c55e",
			Keywords: []string{"safety", "safe", "secure", "security", "protection", "emergency",
				"risk", "danger", "dangerous", "harm"},
		},
		{
			ID:          "parental",
			DisplayName: "Parental Involvement",
			Color:       "#3b82f6",
			Keywords: []string{"parent", "parents", "family", "guardian", "mother", "father",
				"mom", "dad", "inform", "notify", "notification"},
		},
		{
			ID:          "necessity",
			DisplayName: "Questioning Necessity",
			Color:       "#8b5cf6",
			Keywords: []string{"unnecessary", "need", "needed", "why", "pointless", "waste",
				"useless", "required", "necessary", "essential"},
		},
		{
			ID:          "implementation",
			DisplayName: "Implementation Concerns",
			Color:       "#ec4899",
			Keywords: []string{"how", "practical", "feasible", "implement", "system", "work",
				"technical", "logistics", "infrastructure"},
		},
	}
}

// QualityThresholds configures the response quality scorer.
type QualityThresholds struct {
	// MinValidScore is the minimum score for a response to count in analysis.
	MinValidScore int
	// ReviewThreshold marks the upper bound of the manual-review band.
	ReviewThreshold int
	// MinWordCount is the minimum number of meaningful words in a comment.
	MinWordCount int
}

// DefaultQualityThresholds returns the standard 40/60/3 cutoffs.
func DefaultQualityThresholds() QualityThresholds {
	return QualityThresholds{
		MinValidScore:   40,
		ReviewThreshold: 60,
		MinWordCount:    3,
	}
}

// ProfanityWords is the base list expanded into leetspeak-tolerant
// patterns by the quality analyzer.
var ProfanityWords = []string{
	"fuck", "shit", "ass", "damn", "bitch", "crap", "bastard",
	"idiot", "stupid", "dumb", "moron", "retard",
}

// KeyboardPatterns are substrings that indicate keyboard mashing.
var KeyboardPatterns = []string{
	"qwerty", "asdf", "zxcv", "qweasd", "12345", "abcde",
	"qazwsx", "wasd", "hjkl", "yuiop",
}
