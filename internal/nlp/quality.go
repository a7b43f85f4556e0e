// Package nlp implements the text-analysis pipeline for survey comments:
// quality scoring, concern classification, sentiment analysis and
// suggestion extraction.
package nlp

import (
	"regexp"
	"strings"
	"unicode"

	"campuspulse/internal/config"
	"campuspulse/internal/model"
)

var wordPattern = regexp.MustCompile(`\b[a-zA-Z]+\b`)

// hasRepeatedChars reports whether text contains the same character four or
// more times in a row (the equivalent of the backreference pattern
// `(.)\1{3,}`, which Go's RE2 engine cannot express).
func hasRepeatedChars(text string) bool {
	var prev rune
	run := 0
	for _, c := range text {
		if c == prev {
			run++
			if run >= 4 {
				return true
			}
		} else {
			prev = c
			run = 1
		}
	}
	return false
}

// QualityAnalyzer scores responses and flags troll or low-effort submissions.
type QualityAnalyzer struct {
	thresholds        config.QualityThresholds
	profanityPatterns []*regexp.Regexp
	keyboardPatterns  []string
	commonWords       map[string]struct{}
}

// NewQualityAnalyzer builds an analyzer using the default thresholds and
// pattern lists.
func NewQualityAnalyzer() *QualityAnalyzer {
	return &QualityAnalyzer{
		thresholds:        config.DefaultQualityThresholds(),
		profanityPatterns: buildProfanityPatterns(config.ProfanityWords),
		keyboardPatterns:  lowerAll(config.KeyboardPatterns),
		commonWords:       commonWordSet(),
	}
}

// leetspeak substitutions used to catch obfuscated profanity.
var leetspeak = map[rune]string{
	'a': "[a@4]",
	'e': "[e3]",
	'i': "[i1!]",
	'o': "[o0]",
	's': "[s$5]",
	't': "[t7]",
	'l': "[l1]",
}

func buildProfanityPatterns(words []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(words))
	for _, word := range words {
		var b strings.Builder
		for _, ch := range strings.ToLower(word) {
			if class, ok := leetspeak[ch]; ok {
				b.WriteString(class)
			} else {
				b.WriteString(regexp.QuoteMeta(string(ch)))
			}
			// Tolerate stretched spellings like "fuuuck".
			if unicode.IsLetter(ch) {
				b.WriteString("+")
			}
		}
		patterns = append(patterns, regexp.MustCompile("(?i)"+b.String()))
	}
	return patterns
}

func lowerAll(items []string) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = strings.ToLower(s)
	}
	return out
}

// Analyze scores a comment and its votes. Deductions are cumulative and
// the score floors at zero.
func (a *QualityAnalyzer) Analyze(text, voteQ1, voteQ2 string) model.QualityResult {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.QualityResult{
			Score:   0,
			Flags:   []model.QualityFlag{model.FlagTooShort},
			IsValid: false,
		}
	}

	var flags []model.QualityFlag
	deductions := 0

	wordCount := len(strings.Fields(text))
	if wordCount < a.thresholds.MinWordCount {
		flags = append(flags, model.FlagTooShort)
		deductions += 40
	}

	if isGibberish(text) {
		flags = append(flags, model.FlagGibberish)
		deductions += 50
	}

	if a.hasKeyboardPattern(text) {
		flags = append(flags, model.FlagKeyboardSpam)
		deductions += 60
	}

	if hasRepeatedChars(text) {
		flags = append(flags, model.FlagCharRepetition)
		deductions += 20
	}

	if a.containsProfanity(text) {
		flags = append(flags, model.FlagProfanity)
		deductions += 30
	}

	if isAllCapsRage(text) {
		flags = append(flags, model.FlagAllCaps)
		deductions += 15
	}

	if a.dictionaryWordRatio(text) < 0.4 && wordCount >= 3 {
		flags = append(flags, model.FlagLowDictionaryRatio)
		deductions += 35
	}

	if voteQ1 != "" && hasVoteMismatch(text, voteQ1) {
		flags = append(flags, model.FlagVoteMismatch)
		deductions += 10
	}

	score := 100 - deductions
	if score < 0 {
		score = 0
	}

	return model.QualityResult{
		Score:       score,
		Flags:       flags,
		IsValid:     score >= a.thresholds.MinValidScore,
		NeedsReview: score >= a.thresholds.MinValidScore && score < a.thresholds.ReviewThreshold,
	}
}

func isGibberish(text string) bool {
	var clean []rune
	for _, c := range strings.ToLower(text) {
		if unicode.IsLetter(c) || unicode.IsDigit(c) || unicode.IsSpace(c) {
			clean = append(clean, c)
		}
	}
	if len(clean) < 3 {
		return true
	}

	// Repeated short patterns like "abcabcabc".
	if len(clean) >= 6 {
		s := string(clean)
		for patternLen := 2; patternLen <= 3; patternLen++ {
			pattern := s[:patternLen]
			repeated := strings.Repeat(pattern, len(s)/patternLen+1)[:len(s)]
			if s == repeated {
				return true
			}
		}
	}

	vowels, consonants := 0, 0
	for _, c := range clean {
		if !unicode.IsLetter(c) {
			continue
		}
		if strings.ContainsRune("aeiou", c) {
			vowels++
		} else {
			consonants++
		}
	}
	return consonants > 0 && float64(vowels)/float64(consonants) < 0.1
}

func (a *QualityAnalyzer) hasKeyboardPattern(text string) bool {
	compact := strings.ReplaceAll(strings.ToLower(text), " ", "")
	for _, pattern := range a.keyboardPatterns {
		if strings.Contains(compact, pattern) {
			return true
		}
	}
	return false
}

func (a *QualityAnalyzer) containsProfanity(text string) bool {
	for _, pattern := range a.profanityPatterns {
		if pattern.MatchString(text) {
			return true
		}
	}
	return false
}

func isAllCapsRage(text string) bool {
	if len(text) < 10 {
		return false
	}
	letters, upper := 0, 0
	for _, c := range text {
		if unicode.IsLetter(c) {
			letters++
			if unicode.IsUpper(c) {
				upper++
			}
		}
	}
	if letters == 0 {
		return false
	}
	return float64(upper)/float64(letters) > 0.8
}

func (a *QualityAnalyzer) dictionaryWordRatio(text string) float64 {
	words := wordPattern.FindAllString(strings.ToLower(text), -1)
	if len(words) == 0 {
		return 0
	}
	known := 0
	for _, w := range words {
		if _, ok := a.commonWords[w]; ok {
			known++
		}
	}
	return float64(known) / float64(len(words))
}

var mismatchNegativePhrases = []string{
	"terrible", "stupid", "idiotic", "worst", "hate", "awful",
	"ridiculous", "absurd", "waste", "useless", "pointless",
	"against this", "oppose", "disagree", "should not", "shouldn't",
	"never", "no way", "absolutely not",
}

var mismatchPositivePhrases = []string{
	"great", "excellent", "support", "agree", "good idea",
	"necessary", "important", "helpful", "beneficial",
	"should implement", "must have", "need this",
}

func hasVoteMismatch(text, vote string) bool {
	lower := strings.ToLower(text)

	hasNegative := containsAny(lower, mismatchNegativePhrases)
	hasPositive := containsAny(lower, mismatchPositivePhrases)

	if vote == model.VoteYes && hasNegative && !hasPositive {
		return true
	}
	if vote == model.VoteNo && hasPositive && !hasNegative {
		return true
	}
	return false
}

func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

// FindDuplicates groups exact and near-duplicate comments. Similarity is
// measured as 2*LCS/(len1+len2) over the lowercased, trimmed texts.
func (a *QualityAnalyzer) FindDuplicates(comments []string, threshold float64) []model.DuplicateGroup {
	var groups []model.DuplicateGroup
	processed := make(map[int]bool)

	for i, first := range comments {
		if processed[i] || first == "" {
			continue
		}
		indices := []int{i}
		firstClean := strings.ToLower(strings.TrimSpace(first))

		for j := i + 1; j < len(comments); j++ {
			if processed[j] || comments[j] == "" {
				continue
			}
			otherClean := strings.ToLower(strings.TrimSpace(comments[j]))
			if firstClean == otherClean || similarityRatio(firstClean, otherClean) >= threshold {
				indices = append(indices, j)
				processed[j] = true
			}
		}

		if len(indices) > 1 {
			sample := first
			if len(sample) > 100 {
				sample = sample[:100]
			}
			groups = append(groups, model.DuplicateGroup{
				Indices:    indices,
				SampleText: sample,
				Count:      len(indices),
			})
			processed[i] = true
		}
	}
	return groups
}

// similarityRatio is 2*LCS(a,b)/(len(a)+len(b)), the classic sequence
// match ratio.
func similarityRatio(a, b string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	ra := []rune(a)
	rb := []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			if ra[i-1] == rb[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	lcs := prev[len(rb)]
	return 2 * float64(lcs) / float64(len(ra)+len(rb))
}

func commonWordSet() map[string]struct{} {
	words := []string{
		"the", "be", "to", "of", "and", "a", "in", "that", "have", "i",
		"it", "for", "not", "on", "with", "he", "as", "you", "do", "at",
		"this", "but", "his", "by", "from", "they", "we", "say", "her", "she",
		"or", "an", "will", "my", "one", "all", "would", "there", "their", "what",
		"so", "up", "out", "if", "about", "who", "get", "which", "go", "me",
		"when", "make", "can", "like", "time", "no", "just", "him", "know", "take",
		"people", "into", "year", "your", "good", "some", "could", "them", "see", "other",
		"than", "then", "now", "look", "only", "come", "its", "over", "think", "also",
		"back", "after", "use", "two", "how", "our", "work", "first", "well", "way",
		"even", "new", "want", "because", "any", "these", "give", "day", "most", "us",
		"is", "are", "was", "were", "been", "being", "am", "has", "had", "having",
		"does", "did", "doing", "should", "must", "need", "may", "might", "shall",
		"privacy", "parents", "student", "students", "campus", "entry", "exit",
		"notification", "system", "support", "policy", "monitoring", "adult",
		"adults", "college", "university", "safety", "security", "trust",
		"necessary", "unnecessary", "important", "concern", "concerns",
		"yes", "agree", "disagree", "believe", "feel",
		"reason", "why", "where",
	}
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
