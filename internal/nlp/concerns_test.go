package nlp

import (
	"testing"

	"campuspulse/internal/model"
)

func TestClassifyPrimaryConcern(t *testing.T) {
	c := NewConcernClassifier()

	tests := []struct {
		name        string
		text        string
		wantPrimary string
	}{
		{
			name:        "privacy keywords dominate",
			text:        "This is pure surveillance and a complete invasion of my personal data and privacy.",
			wantPrimary: "privacy",
		},
		{
			name:        "autonomy",
			text:        "We are adults and deserve to be treated as independent grown ups with freedom.",
			wantPrimary: "autonomy",
		},
		{
			name:        "too short",
			text:        "ok",
			wantPrimary: "",
		},
		{
			name:        "no keywords",
			text:        "The weather was lovely on Tuesday afternoon.",
			wantPrimary: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.text)
			if got.PrimaryConcern != tt.wantPrimary {
				t.Errorf("PrimaryConcern = %q, want %q (keywords: %v)",
					got.PrimaryConcern, tt.wantPrimary, got.MatchedKeywords)
			}
		})
	}
}

func TestClassifyCountsDistinctKeywordsOnce(t *testing.T) {
	c := NewConcernClassifier()

	// "privacy" repeated should count as one distinct keyword, so a
	// category with two distinct matches wins.
	got := c.Classify("privacy privacy privacy but we are adults with freedom and independence")
	if got.PrimaryConcern != "autonomy" {
		t.Errorf("PrimaryConcern = %q, want autonomy (keywords: %v)",
			got.PrimaryConcern, got.MatchedKeywords)
	}
	if len(got.SecondaryConcerns) == 0 || got.SecondaryConcerns[0] != "privacy" {
		t.Errorf("SecondaryConcerns = %v, want privacy first", got.SecondaryConcerns)
	}
}

func TestClassifyTieBreaksInCategoryOrder(t *testing.T) {
	c := NewConcernClassifier()

	// One distinct keyword each for privacy and trust. Privacy is
	// declared first, so it wins the tie deterministically.
	got := c.Classify("the tracking and the distrust are both wrong here today")
	if got.PrimaryConcern != "privacy" {
		t.Errorf("PrimaryConcern = %q, want privacy on tie", got.PrimaryConcern)
	}
}

func TestClassifyConfidence(t *testing.T) {
	c := NewConcernClassifier()

	got := c.Classify("surveillance tracking privacy invasion")
	if got.Confidence != 1.0 {
		t.Errorf("Confidence = %v, want 1.0 for keyword-dense text", got.Confidence)
	}
}

func TestConcernStats(t *testing.T) {
	c := NewConcernClassifier()

	analyses := []model.ConcernAnalysis{
		{PrimaryConcern: "privacy"},
		{PrimaryConcern: "privacy"},
		{PrimaryConcern: "trust"},
		{},
	}

	stats := c.ConcernStats(analyses)
	if len(stats) != 7 {
		t.Fatalf("got %d categories, want 7", len(stats))
	}
	if stats[0].ConcernID != "privacy" || stats[0].Count != 2 {
		t.Errorf("top stat = %+v, want privacy with count 2", stats[0])
	}
	// Percentages are over classified comments only.
	if stats[0].Percentage != 66.7 {
		t.Errorf("Percentage = %v, want 66.7", stats[0].Percentage)
	}
}

func TestSampleQuotesPrefersLonger(t *testing.T) {
	c := NewConcernClassifier()

	texts := []string{
		"privacy bad",
		"This policy is a serious invasion of privacy and should be reconsidered entirely.",
		"Privacy matters a lot to every single student on this campus.",
	}
	analyses := []model.ConcernAnalysis{
		{PrimaryConcern: "privacy"},
		{PrimaryConcern: "privacy"},
		{PrimaryConcern: "privacy"},
	}

	quotes := c.SampleQuotes(texts, analyses, "privacy", 2)
	if len(quotes) != 2 {
		t.Fatalf("got %d quotes, want 2", len(quotes))
	}
	// The 11-char comment is filtered, longest comes first.
	if quotes[0] != texts[1] {
		t.Errorf("first quote = %q, want longest", quotes[0])
	}
}

func TestExtractArguments(t *testing.T) {
	c := NewConcernClassifier()

	texts := []string{
		"This invades our privacy and personal data completely.",
		"Surveillance like this has no place in a university.",
		"I feel this improves safety and security on campus overall.",
		"",
	}
	votes := []string{model.VoteNo, model.VoteNo, model.VoteYes, model.VoteYes}

	args := c.ExtractArguments(texts, votes)
	if len(args.Against) == 0 {
		t.Fatal("expected against clusters")
	}
	if args.Against[0].Frequency != 2 {
		t.Errorf("against frequency = %d, want 2", args.Against[0].Frequency)
	}
	if args.Against[0].Stance != "against" {
		t.Errorf("stance = %q, want against", args.Against[0].Stance)
	}
	if len(args.For) != 1 {
		t.Fatalf("expected one for cluster, got %d", len(args.For))
	}
	if args.For[0].Reason != "Safety & Security" {
		t.Errorf("for reason = %q, want Safety & Security", args.For[0].Reason)
	}
}
