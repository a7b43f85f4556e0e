package nlp

import (
	"math"
	"regexp"
	"strings"

	"github.com/montanaflynn/stats"

	"campuspulse/internal/model"
)

// Lexicons for the rule-based sentiment scorer.

var positiveWords = wordSet(
	"excellent", "amazing", "wonderful", "fantastic", "great", "perfect",
	"love", "best", "awesome", "brilliant", "outstanding",
	"good", "nice", "helpful", "useful", "beneficial", "appreciate",
	"support", "agree", "favor", "yes", "positive", "happy", "safe",
	"secure", "protect", "important", "necessary", "needed", "welcome",
	"okay", "fine", "acceptable", "reasonable", "understandable",
)

var negativeWords = wordSet(
	"terrible", "horrible", "awful", "worst", "hate", "despise",
	"ridiculous", "absurd", "stupid", "idiotic", "pathetic",
	"bad", "poor", "wrong", "against", "oppose", "disagree", "no",
	"unnecessary", "useless", "pointless", "waste", "invasion",
	"surveillance", "prison", "jail", "restrict", "control", "spy",
	"violate", "intrude", "distrust", "unfair", "unjust",
	"concern", "worry", "doubt", "skeptical", "unsure", "uncomfortable",
)

var intensifiers = map[string]float64{
	"very":       1.5,
	"extremely":  2.0,
	"really":     1.3,
	"absolutely": 1.8,
	"completely": 1.7,
	"totally":    1.5,
	"highly":     1.4,
	"strongly":   1.6,
	"somewhat":   0.7,
	"slightly":   0.5,
}

var negationWords = wordSet(
	"not", "no", "never", "neither", "nobody", "nothing",
	"nowhere", "none", "don't", "doesn't", "didn't",
	"won't", "wouldn't", "shouldn't", "couldn't", "can't",
)

// Token pattern keeps apostrophes so contractions like "don't" survive
// tokenization.
var sentimentTokenPattern = regexp.MustCompile(`[a-zA-Z0-9']+`)

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// SentimentAnalyzer scores comment polarity with a lexicon-based approach.
type SentimentAnalyzer struct{}

// NewSentimentAnalyzer returns a ready-to-use analyzer.
func NewSentimentAnalyzer() *SentimentAnalyzer {
	return &SentimentAnalyzer{}
}

// Analyze scores a single comment. Polarity is (pos-neg)/(pos+neg)
// clamped to [-1, 1]. A negation word flips the next sentiment token;
// intensifiers between the negation and the sentiment token keep the
// negation alive.
func (s *SentimentAnalyzer) Analyze(comment string) model.SentimentResult {
	result := model.SentimentResult{Label: "neutral"}
	if strings.TrimSpace(comment) == "" {
		return result
	}

	words := sentimentTokenPattern.FindAllString(strings.ToLower(comment), -1)

	var posScore, negScore float64
	var posFound, negFound []string
	negationActive := false

	for i, word := range words {
		if _, ok := negationWords[word]; ok {
			negationActive = true
			continue
		}

		if _, ok := intensifiers[word]; ok {
			continue
		}

		intensity := 1.0
		if i > 0 {
			if mult, ok := intensifiers[words[i-1]]; ok {
				intensity = mult
			}
		}

		if _, ok := positiveWords[word]; ok {
			if negationActive {
				negScore += intensity
				negFound = append(negFound, "not "+word)
			} else {
				posScore += intensity
				posFound = append(posFound, word)
			}
			negationActive = false
		} else if _, ok := negativeWords[word]; ok {
			if negationActive {
				// Negated negative reads as a weaker positive.
				posScore += intensity * 0.5
				posFound = append(posFound, "not "+word)
			} else {
				negScore += intensity
				negFound = append(negFound, word)
			}
			negationActive = false
		} else {
			negationActive = false
		}
	}

	total := posScore + negScore
	polarity := 0.0
	if total > 0 {
		polarity = (posScore - negScore) / total
	}
	polarity = math.Max(-1, math.Min(1, polarity))

	label := "neutral"
	if polarity > 0.1 {
		label = "positive"
	} else if polarity < -0.1 {
		label = "negative"
	}

	confidence := math.Min(1.0, float64(len(posFound)+len(negFound))*0.2)

	return model.SentimentResult{
		Polarity:      math.Round(polarity*1000) / 1000,
		Label:         label,
		Confidence:    math.Round(confidence*100) / 100,
		PositiveWords: uniqueHead(posFound, 5),
		NegativeWords: uniqueHead(negFound, 5),
	}
}

func uniqueHead(words []string, limit int) []string {
	seen := make(map[string]struct{}, len(words))
	var out []string
	for _, w := range words {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
		if len(out) == limit {
			break
		}
	}
	return out
}

// AnalyzeBatch aggregates sentiment over a set of comments.
func (s *SentimentAnalyzer) AnalyzeBatch(comments []string) model.SentimentAggregate {
	if len(comments) == 0 {
		return model.SentimentAggregate{}
	}

	polarities := make([]float64, 0, len(comments))
	var dist model.PolarityDistribution
	positive, negative, neutral := 0, 0, 0

	for _, c := range comments {
		r := s.Analyze(c)
		polarities = append(polarities, r.Polarity)

		switch r.Label {
		case "positive":
			positive++
		case "negative":
			negative++
		default:
			neutral++
		}

		switch {
		case r.Polarity < -0.5:
			dist.VeryNegative++
		case r.Polarity < -0.1:
			dist.Negative++
		case r.Polarity <= 0.1:
			dist.Neutral++
		case r.Polarity <= 0.5:
			dist.Positive++
		default:
			dist.VeryPositive++
		}
	}

	mean, _ := stats.Mean(polarities)
	median, _ := stats.Median(polarities)
	n := float64(len(comments))

	return model.SentimentAggregate{
		AveragePolarity: math.Round(mean*1000) / 1000,
		MedianPolarity:  math.Round(median*1000) / 1000,
		PositiveCount:   positive,
		NegativeCount:   negative,
		NeutralCount:    neutral,
		PositivePercent: math.Round(float64(positive)/n*1000) / 10,
		NegativePercent: math.Round(float64(negative)/n*1000) / 10,
		Distribution:    dist,
	}
}
