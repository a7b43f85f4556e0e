package nlp

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"campuspulse/internal/model"
)

// Phrases that indicate constructive feedback, checked in order. The
// first matching pattern claims the sentence.
var suggestionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bshould\b`),
	regexp.MustCompile(`(?i)\bcould\b`),
	regexp.MustCompile(`(?i)\bwould be better\b`),
	regexp.MustCompile(`(?i)\bwould be good\b`),
	regexp.MustCompile(`(?i)\bsuggest\b`),
	regexp.MustCompile(`(?i)\brecommend\b`),
	regexp.MustCompile(`(?i)\bpropose\b`),
	regexp.MustCompile(`(?i)\badvise\b`),
	regexp.MustCompile(`(?i)\bbetter if\b`),
	regexp.MustCompile(`(?i)\binstead of\b`),
	regexp.MustCompile(`(?i)\brather than\b`),
	regexp.MustCompile(`(?i)\bwhy not\b`),
	regexp.MustCompile(`(?i)\bwhat if\b`),
	regexp.MustCompile(`(?i)\bhow about\b`),
	regexp.MustCompile(`(?i)\bplease\b.*\b(implement|add|consider|allow|provide)\b`),
	regexp.MustCompile(`(?i)\bneed to\b`),
	regexp.MustCompile(`(?i)\bmust\b`),
	regexp.MustCompile(`(?i)\brequire\b`),
	regexp.MustCompile(`(?i)\balternative\b`),
	regexp.MustCompile(`(?i)\bopt for\b`),
	regexp.MustCompile(`(?i)\bchoose\b.*\binstead\b`),
}

var sentenceSplitPattern = regexp.MustCompile(`[.!?\n]`)

type suggestionCategory struct {
	name     string
	keywords []string
}

var suggestionCategories = []suggestionCategory{
	{"process", []string{"process", "procedure", "system", "method", "way", "approach", "mechanism"}},
	{"policy", []string{"policy", "rule", "regulation", "guideline", "norm", "standard"}},
	{"timing", []string{"time", "timing", "hour", "day", "night", "midnight", "morning", "evening", "schedule"}},
	{"communication", []string{"inform", "notify", "communicate", "message", "sms", "email", "alert"}},
	{"implementation", []string{"implement", "execute", "deploy", "install", "setup", "digital", "app", "card"}},
	{"flexibility", []string{"flexible", "exception", "emergency", "optional", "choice", "freedom"}},
}

// SuggestionExtractor pulls actionable suggestions out of comments via
// pattern matching.
type SuggestionExtractor struct{}

// NewSuggestionExtractor returns a ready-to-use extractor.
func NewSuggestionExtractor() *SuggestionExtractor {
	return &SuggestionExtractor{}
}

// Extract finds suggestion sentences in one comment. At most three
// suggestions are kept, each capped at 250 characters.
func (e *SuggestionExtractor) Extract(comment string) model.SuggestionResult {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return model.SuggestionResult{}
	}

	var suggestions []string
	matchedPatterns := 0

	for _, sentence := range sentenceSplitPattern.Split(comment, -1) {
		sentence = strings.TrimSpace(sentence)
		if len(sentence) < 10 {
			continue
		}
		for _, pattern := range suggestionPatterns {
			if pattern.MatchString(sentence) {
				matchedPatterns++
				trimmed := sentence
				if len(trimmed) > 250 {
					trimmed = trimmed[:250]
				}
				if !containsString(suggestions, trimmed) {
					suggestions = append(suggestions, trimmed)
				}
				break
			}
		}
	}

	confidence := 0.0
	if matchedPatterns > 0 {
		confidence = math.Min(1.0, float64(matchedPatterns)*0.3)
	}

	if len(suggestions) > 3 {
		suggestions = suggestions[:3]
	}

	return model.SuggestionResult{
		HasSuggestion: len(suggestions) > 0,
		Suggestions:   suggestions,
		Categories:    categorize(comment),
		Confidence:    math.Round(confidence*100) / 100,
	}
}

func categorize(text string) []string {
	lower := strings.ToLower(text)
	var categories []string
	for _, cat := range suggestionCategories {
		for _, kw := range cat.keywords {
			if strings.Contains(lower, kw) {
				categories = append(categories, cat.name)
				break
			}
		}
	}
	if len(categories) == 0 {
		return []string{"general"}
	}
	return categories
}

func containsString(items []string, s string) bool {
	for _, item := range items {
		if item == s {
			return true
		}
	}
	return false
}

// ExtractAll aggregates suggestions over all comments. Top suggestions
// are unique sentences ordered by length, longest first.
func (e *SuggestionExtractor) ExtractAll(comments []string) model.SuggestionAggregate {
	var allSuggestions []string
	categoryCounts := make(map[string]int)
	suggestionCount := 0

	for _, comment := range comments {
		result := e.Extract(comment)
		if !result.HasSuggestion {
			continue
		}
		suggestionCount++
		allSuggestions = append(allSuggestions, result.Suggestions...)
		for _, cat := range result.Categories {
			categoryCounts[cat]++
		}
	}

	seen := make(map[string]struct{}, len(allSuggestions))
	var unique []string
	for _, s := range allSuggestions {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		unique = append(unique, s)
	}
	sort.SliceStable(unique, func(i, j int) bool {
		return len(unique[i]) > len(unique[j])
	})
	if len(unique) > 20 {
		unique = unique[:20]
	}

	rate := 0.0
	if len(comments) > 0 {
		rate = math.Round(float64(suggestionCount)/float64(len(comments))*1000) / 10
	}

	return model.SuggestionAggregate{
		TotalWithSuggestions: suggestionCount,
		SuggestionRate:       rate,
		TopSuggestions:       unique,
		CategoryBreakdown:    categoryCounts,
		TopCategories:        topCategories(categoryCounts, 5),
	}
}

// topCategories returns category names by count descending, ties broken
// by declaration order.
func topCategories(counts map[string]int, limit int) []string {
	var names []string
	for _, cat := range suggestionCategories {
		if counts[cat.name] > 0 {
			names = append(names, cat.name)
		}
	}
	if counts["general"] > 0 {
		names = append(names, "general")
	}
	sort.SliceStable(names, func(i, j int) bool {
		return counts[names[i]] > counts[names[j]]
	})
	if len(names) > limit {
		names = names[:limit]
	}
	return names
}
