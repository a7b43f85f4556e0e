package nlp

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"campuspulse/internal/config"
	"campuspulse/internal/model"
)

// ConcernClassifier categorizes comments into predefined concern types
// using whole-word keyword matching with confidence scoring.
type ConcernClassifier struct {
	categories []config.ConcernCategory
	patterns   map[string]*regexp.Regexp
}

// NewConcernClassifier builds a classifier over the configured categories.
func NewConcernClassifier() *ConcernClassifier {
	categories := config.ConcernCategories()
	patterns := make(map[string]*regexp.Regexp, len(categories))
	for _, cat := range categories {
		escaped := make([]string, len(cat.Keywords))
		for i, kw := range cat.Keywords {
			escaped[i] = regexp.QuoteMeta(kw)
		}
		patterns[cat.ID] = regexp.MustCompile(`(?i)\b(` + strings.Join(escaped, "|") + `)\b`)
	}
	return &ConcernClassifier{categories: categories, patterns: patterns}
}

// Classify assigns a primary concern and up to three secondary concerns.
// Ties between categories break in declaration order, so results are
// deterministic.
func (c *ConcernClassifier) Classify(text string) model.ConcernAnalysis {
	text = strings.TrimSpace(text)
	if len(text) < 3 {
		return model.ConcernAnalysis{}
	}

	type scored struct {
		id       string
		score    int
		keywords []string
	}

	var results []scored
	for _, cat := range c.categories {
		matches := c.patterns[cat.ID].FindAllString(text, -1)
		if len(matches) == 0 {
			continue
		}
		unique := make(map[string]struct{})
		var keywords []string
		for _, m := range matches {
			lower := strings.ToLower(m)
			if _, seen := unique[lower]; !seen {
				unique[lower] = struct{}{}
				keywords = append(keywords, lower)
			}
		}
		results = append(results, scored{id: cat.ID, score: len(unique), keywords: keywords})
	}

	if len(results) == 0 {
		return model.ConcernAnalysis{}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	primary := results[0].id
	var secondary []string
	for _, r := range results[1:] {
		if len(secondary) == 3 {
			break
		}
		secondary = append(secondary, r.id)
	}

	wordCount := len(strings.Fields(text))
	total := 0
	for _, r := range results {
		total += r.score
	}
	confidence := math.Min(1.0, float64(total)/math.Max(float64(wordCount)*0.3, 1))

	var matched []string
	seen := make(map[string]struct{})
	for _, r := range results {
		for _, kw := range r.keywords {
			if _, ok := seen[kw]; !ok {
				seen[kw] = struct{}{}
				matched = append(matched, kw)
			}
		}
	}

	return model.ConcernAnalysis{
		PrimaryConcern:    primary,
		SecondaryConcerns: secondary,
		Confidence:        math.Round(confidence*100) / 100,
		MatchedKeywords:   matched,
	}
}

// ClassifyBatch classifies each comment in order.
func (c *ConcernClassifier) ClassifyBatch(texts []string) []model.ConcernAnalysis {
	out := make([]model.ConcernAnalysis, len(texts))
	for i, t := range texts {
		out[i] = c.Classify(t)
	}
	return out
}

// ConcernStats builds the per-category distribution over primary concerns,
// sorted by count descending. Percentages are relative to classified
// comments, not all comments.
func (c *ConcernClassifier) ConcernStats(analyses []model.ConcernAnalysis) []model.ConcernStat {
	distribution := make(map[string]int)
	total := 0
	for _, a := range analyses {
		if a.PrimaryConcern != "" {
			distribution[a.PrimaryConcern]++
			total++
		}
	}

	stats := make([]model.ConcernStat, 0, len(c.categories))
	for _, cat := range c.categories {
		count := distribution[cat.ID]
		pct := 0.0
		if total > 0 {
			pct = math.Round(float64(count)/float64(total)*1000) / 10
		}
		stats = append(stats, model.ConcernStat{
			ConcernID:   cat.ID,
			ConcernName: cat.DisplayName,
			Count:       count,
			Percentage:  pct,
			Color:       cat.Color,
		})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Count > stats[j].Count
	})
	return stats
}

// SampleQuotes returns up to maxQuotes representative comments for a
// concern, longest first.
func (c *ConcernClassifier) SampleQuotes(texts []string, analyses []model.ConcernAnalysis, concernID string, maxQuotes int) []string {
	var quotes []string
	for i, a := range analyses {
		if a.PrimaryConcern == concernID && len(texts[i]) > 20 {
			quotes = append(quotes, texts[i])
		}
	}
	sort.SliceStable(quotes, func(i, j int) bool {
		return len(quotes[i]) > len(quotes[j])
	})
	if len(quotes) > maxQuotes {
		quotes = quotes[:maxQuotes]
	}
	return quotes
}

// ExtractArguments clusters comments into for/against argument groups by
// primary concern, most frequent cluster first.
func (c *ConcernClassifier) ExtractArguments(texts, votes []string) model.QuestionArguments {
	var forComments, againstComments []string
	for i, t := range texts {
		if t == "" {
			continue
		}
		switch votes[i] {
		case model.VoteYes:
			forComments = append(forComments, t)
		case model.VoteNo:
			againstComments = append(againstComments, t)
		}
	}

	return model.QuestionArguments{
		For:     c.clusterArguments(forComments, "for"),
		Against: c.clusterArguments(againstComments, "against"),
	}
}

func (c *ConcernClassifier) clusterArguments(comments []string, stance string) []model.ArgumentCluster {
	byConcern := make(map[string][]string)
	var order []string
	for _, text := range comments {
		concern := c.Classify(text).PrimaryConcern
		if concern == "" {
			concern = "other"
		}
		if _, ok := byConcern[concern]; !ok {
			order = append(order, concern)
		}
		byConcern[concern] = append(byConcern[concern], text)
	}

	sort.SliceStable(order, func(i, j int) bool {
		return len(byConcern[order[i]]) > len(byConcern[order[j]])
	})

	clusters := make([]model.ArgumentCluster, 0, len(order))
	for _, concernID := range order {
		group := byConcern[concernID]
		name := "Other"
		for _, cat := range c.categories {
			if cat.ID == concernID {
				name = cat.DisplayName
				break
			}
		}

		claim := fmt.Sprintf("Support based on %s", strings.ToLower(name))
		if stance == "against" {
			claim = fmt.Sprintf("Opposition due to %s", strings.ToLower(name))
		}

		quotes := group
		if len(quotes) > 3 {
			quotes = quotes[:3]
		}
		clusters = append(clusters, model.ArgumentCluster{
			Claim:                claim,
			Reason:               name,
			Frequency:            len(group),
			RepresentativeQuotes: quotes,
			Stance:               stance,
		})
	}
	return clusters
}
