package nlp

import (
	"strings"
	"testing"

	"campuspulse/internal/model"
)

func TestQualityAnalyzerScoring(t *testing.T) {
	a := NewQualityAnalyzer()

	tests := []struct {
		name      string
		text      string
		voteQ1    string
		wantScore int
		wantFlags []model.QualityFlag
		wantValid bool
	}{
		{
			name:      "empty comment",
			text:      "",
			wantScore: 0,
			wantFlags: []model.QualityFlag{model.FlagTooShort},
			wantValid: false,
		},
		{
			name:      "thoughtful comment",
			text:      "I believe this policy violates student privacy and treats adults like children.",
			wantScore: 100,
			wantValid: true,
		},
		{
			name:   "keyboard spam floors at zero",
			text:   "qwerty123",
			voteQ1: model.VoteYes,
			// too_short (40) + keyboard_spam (60), clamped at 0
			wantScore: 0,
			wantFlags: []model.QualityFlag{model.FlagTooShort, model.FlagKeyboardSpam},
			wantValid: false,
		},
		{
			name:      "repeated characters",
			text:      "this policy is soooooo bad and useless for all of us",
			wantScore: 80,
			wantFlags: []model.QualityFlag{model.FlagCharRepetition},
			wantValid: true,
		},
		{
			name:      "all caps rage",
			text:      "THIS IS A TERRIBLE POLICY AND I HATE IT SO MUCH",
			wantScore: 85,
			wantFlags: []model.QualityFlag{model.FlagAllCaps},
			wantValid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.Analyze(tt.text, tt.voteQ1, "")
			if got.Score != tt.wantScore {
				t.Errorf("Score = %d, want %d (flags: %v)", got.Score, tt.wantScore, got.Flags)
			}
			if got.IsValid != tt.wantValid {
				t.Errorf("IsValid = %v, want %v", got.IsValid, tt.wantValid)
			}
			for _, f := range tt.wantFlags {
				if !got.HasFlag(f) {
					t.Errorf("missing flag %q, got %v", f, got.Flags)
				}
			}
		})
	}
}

func TestQualityAnalyzerVoteMismatch(t *testing.T) {
	a := NewQualityAnalyzer()

	// Supportive comment paired with a No vote.
	got := a.Analyze("I agree with this, it is a good idea and very helpful for student safety.", "", "")
	if got.HasFlag(model.FlagVoteMismatch) {
		t.Errorf("no vote supplied, should not flag mismatch: %v", got.Flags)
	}

	got = a.Analyze("I agree with this, it is a good idea and very helpful for student safety.", model.VoteNo, "")
	if !got.HasFlag(model.FlagVoteMismatch) {
		t.Errorf("positive comment with No vote should flag mismatch: %v", got.Flags)
	}
	if got.Score != 90 {
		t.Errorf("Score = %d, want 90", got.Score)
	}

	got = a.Analyze("This is a terrible and useless policy that treats us like children.", model.VoteYes, "")
	if !got.HasFlag(model.FlagVoteMismatch) {
		t.Errorf("negative comment with Yes vote should flag mismatch: %v", got.Flags)
	}
}

func TestQualityAnalyzerProfanityLeetspeak(t *testing.T) {
	a := NewQualityAnalyzer()

	got := a.Analyze("this whole thing is bull5hit and everyone knows about it", "", "")
	if !got.HasFlag(model.FlagProfanity) {
		t.Errorf("leetspeak profanity not detected, flags: %v", got.Flags)
	}
}

func TestQualityAnalyzerGibberish(t *testing.T) {
	a := NewQualityAnalyzer()

	// Consonant-only text triggers the vowel ratio check.
	got := a.Analyze("xkcvbnm zxcmvb qpwrtk", "", "")
	if !got.HasFlag(model.FlagGibberish) {
		t.Errorf("consonant soup should be gibberish, flags: %v", got.Flags)
	}

	// Repeated short pattern.
	got = a.Analyze("abcabcabc", "", "")
	if !got.HasFlag(model.FlagGibberish) {
		t.Errorf("repeated pattern should be gibberish, flags: %v", got.Flags)
	}
}

func TestFindDuplicates(t *testing.T) {
	a := NewQualityAnalyzer()

	comments := []string{
		"This policy is bad for privacy",
		"this policy is bad for privacy",
		"Completely unrelated thoughtful answer about campus life",
		"This policy is bad for privacy!",
		"",
	}

	groups := a.FindDuplicates(comments, 0.9)
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1: %+v", len(groups), groups)
	}
	g := groups[0]
	if g.Count != 3 {
		t.Errorf("Count = %d, want 3 (indices %v)", g.Count, g.Indices)
	}
	if g.Indices[0] != 0 {
		t.Errorf("first index = %d, want 0", g.Indices[0])
	}
}

func TestFindDuplicatesNone(t *testing.T) {
	a := NewQualityAnalyzer()
	groups := a.FindDuplicates([]string{"first unique comment here", "totally different opinion stated"}, 0.9)
	if len(groups) != 0 {
		t.Errorf("expected no duplicate groups, got %+v", groups)
	}
}

func TestSimilarityRatio(t *testing.T) {
	if r := similarityRatio("abc", "abc"); r != 1 {
		t.Errorf("identical strings ratio = %v, want 1", r)
	}
	if r := similarityRatio("abc", "xyz"); r != 0 {
		t.Errorf("disjoint strings ratio = %v, want 0", r)
	}
	long := strings.Repeat("a", 50)
	if r := similarityRatio(long, long+"b"); r < 0.9 {
		t.Errorf("near-identical ratio = %v, want >= 0.9", r)
	}
}
