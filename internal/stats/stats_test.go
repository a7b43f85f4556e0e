package stats

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestMarginOfError(t *testing.T) {
	tests := []struct {
		name       string
		proportion float64
		sampleSize int
		level      float64
		want       float64
	}{
		{"zero sample", 0.5, 0, 0.95, 0},
		{"negative sample", 0.5, -5, 0.95, 0},
		{"worst case n=100", 0.5, 100, 0.95, 0.098},
		{"worst case n=400", 0.5, 400, 0.95, 0.049},
		{"90 percent level", 0.5, 100, 0.90, 0.0823},
		{"unknown level falls back to 95", 0.5, 100, 0.85, 0.098},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MarginOfError(tt.proportion, tt.sampleSize, tt.level)
			if !almostEqual(got, tt.want, 0.0005) {
				t.Errorf("MarginOfError(%v, %d, %v) = %v, want %v",
					tt.proportion, tt.sampleSize, tt.level, got, tt.want)
			}
		})
	}
}

func TestConfidenceIntervalClamping(t *testing.T) {
	lower, upper := ConfidenceInterval(0.02, 50, 0.95)
	if lower < 0 {
		t.Errorf("lower bound %v below zero", lower)
	}
	if upper > 1 {
		t.Errorf("upper bound %v above one", upper)
	}

	lower, upper = ConfidenceInterval(0.99, 50, 0.95)
	if upper > 1 {
		t.Errorf("upper bound %v above one", upper)
	}
	if lower >= upper {
		t.Errorf("expected lower %v < upper %v", lower, upper)
	}
}

func TestNewPercentageWithCI(t *testing.T) {
	got := NewPercentageWithCI(132, 1000)
	if got.Percentage != 13.2 {
		t.Errorf("Percentage = %v, want 13.2", got.Percentage)
	}
	if got.SampleSize != 1000 {
		t.Errorf("SampleSize = %d, want 1000", got.SampleSize)
	}
	if got.CILower >= got.Percentage || got.CIUpper <= got.Percentage {
		t.Errorf("CI [%v, %v] does not bracket point estimate %v",
			got.CILower, got.CIUpper, got.Percentage)
	}

	empty := NewPercentageWithCI(0, 0)
	if empty.Percentage != 0 || empty.MarginOfError != 0 {
		t.Errorf("empty total should yield zero result, got %+v", empty)
	}
}

func TestTwoProportionZTest(t *testing.T) {
	t.Run("significant difference", func(t *testing.T) {
		// 16/20 vs 8/20: a 40pp gap that clears p < 0.05.
		got := TwoProportionZTest(16, 20, 8, 20)
		if !got.Significant {
			t.Errorf("expected significant, got %+v", got)
		}
		if got.Difference != 40.0 {
			t.Errorf("Difference = %v, want 40.0", got.Difference)
		}
		if !almostEqual(got.ZStatistic, 2.582, 0.005) {
			t.Errorf("ZStatistic = %v, want approx 2.582", got.ZStatistic)
		}
		if got.PValue >= 0.05 {
			t.Errorf("PValue = %v, want < 0.05", got.PValue)
		}
		if got.EffectSize != "large" {
			t.Errorf("EffectSize = %q, want large", got.EffectSize)
		}
	})

	t.Run("no difference", func(t *testing.T) {
		got := TwoProportionZTest(10, 20, 10, 20)
		if got.Significant {
			t.Errorf("identical proportions should not be significant: %+v", got)
		}
		if got.Difference != 0 {
			t.Errorf("Difference = %v, want 0", got.Difference)
		}
	})

	t.Run("empty group", func(t *testing.T) {
		got := TwoProportionZTest(5, 10, 0, 0)
		if got.Significant || got.PValue != 1.0 {
			t.Errorf("empty group should yield p=1, got %+v", got)
		}
		if got.EffectSize != "none" {
			t.Errorf("EffectSize = %q, want none", got.EffectSize)
		}
	})

	t.Run("zero pooled variance", func(t *testing.T) {
		got := TwoProportionZTest(10, 10, 20, 20)
		if got.Significant || got.PValue != 1.0 {
			t.Errorf("all-yes groups should yield p=1, got %+v", got)
		}
	})
}

func TestAssessSampleAdequacy(t *testing.T) {
	tests := []struct {
		size int
		want string
	}{
		{10, "insufficient"},
		{29, "insufficient"},
		{30, "marginal"},
		{99, "marginal"},
		{100, "adequate"},
		{399, "adequate"},
		{400, "strong"},
		{2000, "strong"},
	}
	for _, tt := range tests {
		got := AssessSampleAdequacy(tt.size)
		if got.Adequacy != tt.want {
			t.Errorf("AssessSampleAdequacy(%d).Adequacy = %q, want %q", tt.size, got.Adequacy, tt.want)
		}
		if got.SampleSize != tt.size {
			t.Errorf("SampleSize = %d, want %d", got.SampleSize, tt.size)
		}
	}
}

func TestBadgeForPValue(t *testing.T) {
	tests := []struct {
		p    float64
		want string
	}{
		{0.0005, "highly_significant"},
		{0.005, "very_significant"},
		{0.03, "significant"},
		{0.07, "marginally_significant"},
		{0.5, "not_significant"},
	}
	for _, tt := range tests {
		got := BadgeForPValue(tt.p)
		if got.Level != tt.want {
			t.Errorf("BadgeForPValue(%v).Level = %q, want %q", tt.p, got.Level, tt.want)
		}
	}
}

func TestChiSquare2x2(t *testing.T) {
	t.Run("independent table", func(t *testing.T) {
		chi, phi, p := ChiSquare2x2(25, 25, 25, 25)
		if chi != 0 {
			t.Errorf("chi = %v, want 0", chi)
		}
		if phi != 0 {
			t.Errorf("phi = %v, want 0", phi)
		}
		if !almostEqual(p, 1.0, 0.0001) {
			t.Errorf("p = %v, want 1.0", p)
		}
	})

	t.Run("associated table", func(t *testing.T) {
		chi, phi, p := ChiSquare2x2(40, 10, 10, 40)
		// chi = 100*(1600-100)^2/(50*50*50*50) = 36
		if !almostEqual(chi, 36.0, 0.001) {
			t.Errorf("chi = %v, want 36", chi)
		}
		if !almostEqual(phi, 0.6, 0.001) {
			t.Errorf("phi = %v, want 0.6", phi)
		}
		if p >= 0.001 {
			t.Errorf("p = %v, want < 0.001", p)
		}
	})

	t.Run("empty margin", func(t *testing.T) {
		chi, phi, p := ChiSquare2x2(0, 0, 10, 20)
		if chi != 0 || phi != 0 || p != 1.0 {
			t.Errorf("empty row should yield zeros, got chi=%v phi=%v p=%v", chi, phi, p)
		}
	})
}
