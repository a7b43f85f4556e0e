package nlp

import (
	"testing"
)

func TestSentimentAnalyze(t *testing.T) {
	s := NewSentimentAnalyzer()

	tests := []struct {
		name      string
		text      string
		wantLabel string
	}{
		{"empty", "", "neutral"},
		{"clearly positive", "This is a great and helpful policy, I support it.", "positive"},
		{"clearly negative", "This is a terrible invasion, I hate this surveillance.", "negative"},
		{"no sentiment words", "The form had twelve questions on two pages.", "neutral"},
		{"mixed evens out", "Some good parts but also some bad parts.", "neutral"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Analyze(tt.text)
			if got.Label != tt.wantLabel {
				t.Errorf("Label = %q (polarity %v), want %q", got.Label, got.Polarity, tt.wantLabel)
			}
		})
	}
}

func TestSentimentNegationFlipsNextWord(t *testing.T) {
	s := NewSentimentAnalyzer()

	got := s.Analyze("this is not good at all in my view")
	if got.Label != "negative" {
		t.Errorf("negated positive should read negative, got %q (polarity %v)", got.Label, got.Polarity)
	}

	// Negation detected through a contraction.
	got = s.Analyze("i don't support this at all in any form")
	if got.Label != "negative" {
		t.Errorf("contraction negation should read negative, got %q (polarity %v)", got.Label, got.Polarity)
	}

	// Negated negative reads as weaker positive.
	got = s.Analyze("honestly it is not terrible when you look closely")
	if got.Label != "positive" {
		t.Errorf("negated negative should read positive, got %q (polarity %v)", got.Label, got.Polarity)
	}
}

func TestSentimentNegationSurvivesIntensifier(t *testing.T) {
	s := NewSentimentAnalyzer()

	got := s.Analyze("the plan is not very good for students")
	if got.Label != "negative" {
		t.Errorf("negation should carry across intensifier, got %q (polarity %v)", got.Label, got.Polarity)
	}
}

func TestSentimentIntensifierWeighting(t *testing.T) {
	s := NewSentimentAnalyzer()

	// One intensified positive against one plain negative: 1.5 vs 1.0
	// gives polarity 0.2, past the positive cutoff.
	got := s.Analyze("a very good plan with one bad part")
	if got.Label != "positive" {
		t.Errorf("intensified positive should win, got %q (polarity %v)", got.Label, got.Polarity)
	}
	if got.Polarity != 0.2 {
		t.Errorf("Polarity = %v, want 0.2", got.Polarity)
	}
}

func TestSentimentConfidence(t *testing.T) {
	s := NewSentimentAnalyzer()

	got := s.Analyze("great excellent wonderful fantastic awesome")
	if got.Confidence != 1.0 {
		t.Errorf("Confidence = %v, want 1.0 for five sentiment hits", got.Confidence)
	}

	got = s.Analyze("nothing to say about the form itself")
	if got.Confidence != 0 {
		t.Errorf("Confidence = %v, want 0 with no sentiment words", got.Confidence)
	}
}

func TestAnalyzeBatch(t *testing.T) {
	s := NewSentimentAnalyzer()

	agg := s.AnalyzeBatch([]string{
		"great policy, i support it",
		"terrible awful invasion",
		"the form had three pages",
	})

	if agg.PositiveCount != 1 || agg.NegativeCount != 1 || agg.NeutralCount != 1 {
		t.Errorf("counts = %d/%d/%d, want 1/1/1",
			agg.PositiveCount, agg.NegativeCount, agg.NeutralCount)
	}
	if agg.PositivePercent != 33.3 {
		t.Errorf("PositivePercent = %v, want 33.3", agg.PositivePercent)
	}
	total := agg.Distribution.VeryNegative + agg.Distribution.Negative +
		agg.Distribution.Neutral + agg.Distribution.Positive + agg.Distribution.VeryPositive
	if total != 3 {
		t.Errorf("distribution sums to %d, want 3", total)
	}
}

func TestAnalyzeBatchEmpty(t *testing.T) {
	s := NewSentimentAnalyzer()
	agg := s.AnalyzeBatch(nil)
	if agg.PositiveCount != 0 || agg.AveragePolarity != 0 {
		t.Errorf("empty batch should be zero aggregate, got %+v", agg)
	}
}
