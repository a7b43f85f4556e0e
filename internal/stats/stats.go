// Package stats provides the statistical primitives behind the survey
// analytics: confidence intervals for proportions, two-proportion
// significance tests and sample adequacy assessment.
package stats

import "math"

// Z-scores for supported confidence levels.
var zScores = map[float64]float64{
	0.90: 1.645,
	0.95: 1.96,
	0.99: 2.576,
}

// DefaultConfidenceLevel is used when a caller does not specify one.
const DefaultConfidenceLevel = 0.95

// MarginOfError returns the margin of error for a proportion at the
// given confidence level, as a proportion in [0, 1]. Unknown confidence
// levels fall back to 95%.
func MarginOfError(proportion float64, sampleSize int, confidenceLevel float64) float64 {
	if sampleSize <= 0 {
		return 0
	}
	z, ok := zScores[confidenceLevel]
	if !ok {
		z = zScores[DefaultConfidenceLevel]
	}
	se := math.Sqrt(proportion * (1 - proportion) / float64(sampleSize))
	return round4(z * se)
}

// ConfidenceInterval returns the (lower, upper) bounds for a proportion,
// clamped to [0, 1].
func ConfidenceInterval(proportion float64, sampleSize int, confidenceLevel float64) (float64, float64) {
	moe := MarginOfError(proportion, sampleSize, confidenceLevel)
	lower := math.Max(0, proportion-moe)
	upper := math.Min(1, proportion+moe)
	return round4(lower), round4(upper)
}

// PercentageWithCI is a point estimate with its confidence interval,
// expressed in percentage points.
type PercentageWithCI struct {
	Percentage      float64 `json:"percentage"`
	MarginOfError   float64 `json:"margin_of_error"`
	CILower         float64 `json:"ci_lower"`
	CIUpper         float64 `json:"ci_upper"`
	SampleSize      int     `json:"sample_size"`
	ConfidenceLevel float64 `json:"confidence_level"`
}

// NewPercentageWithCI computes count/total as a percentage with a 95% CI.
// A non-positive total yields an all-zero result.
func NewPercentageWithCI(count, total int) PercentageWithCI {
	if total <= 0 {
		return PercentageWithCI{ConfidenceLevel: DefaultConfidenceLevel}
	}
	p := float64(count) / float64(total)
	moe := MarginOfError(p, total, DefaultConfidenceLevel)
	lower, upper := ConfidenceInterval(p, total, DefaultConfidenceLevel)
	return PercentageWithCI{
		Percentage:      round1(p * 100),
		MarginOfError:   round1(moe * 100),
		CILower:         round1(lower * 100),
		CIUpper:         round1(upper * 100),
		SampleSize:      total,
		ConfidenceLevel: DefaultConfidenceLevel,
	}
}

// ZTestResult is the outcome of a two-proportion z-test.
type ZTestResult struct {
	ZStatistic        float64 `json:"z_statistic"`
	PValue            float64 `json:"p_value"`
	Significant       bool    `json:"significant"`
	HighlySignificant bool    `json:"highly_significant"`
	Difference        float64 `json:"difference"` // percentage points, a minus b
	EffectSize        string  `json:"effect_size"`
	CohensH           float64 `json:"cohens_h"`
}

// TwoProportionZTest compares two proportions with a pooled-variance
// z-test and a two-tailed p-value. Degenerate inputs (empty groups or
// zero pooled variance) return a non-significant result.
func TwoProportionZTest(countA, totalA, countB, totalB int) ZTestResult {
	if totalA <= 0 || totalB <= 0 {
		return ZTestResult{PValue: 1.0, EffectSize: "none"}
	}

	p1 := float64(countA) / float64(totalA)
	p2 := float64(countB) / float64(totalB)

	pooled := float64(countA+countB) / float64(totalA+totalB)
	se := math.Sqrt(pooled * (1 - pooled) * (1/float64(totalA) + 1/float64(totalB)))
	if se == 0 {
		return ZTestResult{PValue: 1.0, Difference: round1((p1 - p2) * 100), EffectSize: "none"}
	}

	z := (p1 - p2) / se
	pValue := 2 * (1 - normalCDF(math.Abs(z)))

	// Cohen's h effect size
	h := 2 * (math.Asin(math.Sqrt(p1)) - math.Asin(math.Sqrt(p2)))
	effect := "small"
	switch {
	case math.Abs(h) >= 0.5:
		effect = "large"
	case math.Abs(h) >= 0.2:
		effect = "medium"
	}

	return ZTestResult{
		ZStatistic:        round3(z),
		PValue:            round4(pValue),
		Significant:       pValue < 0.05,
		HighlySignificant: pValue < 0.01,
		Difference:        round1((p1 - p2) * 100),
		EffectSize:        effect,
		CohensH:           round3(h),
	}
}

// SampleAdequacy assesses whether a sample supports reliable conclusions.
type SampleAdequacy struct {
	SampleSize          int     `json:"sample_size"`
	Adequacy            string  `json:"adequacy"`
	Note                string  `json:"note"`
	WorstCaseMOEPercent float64 `json:"worst_case_moe_percent"`
	CanDetectDifference float64 `json:"can_detect_difference"`
}

// AssessSampleAdequacy classifies a sample size and reports the worst-case
// margin of error (at p=0.5).
func AssessSampleAdequacy(sampleSize int) SampleAdequacy {
	var adequacy, note string
	switch {
	case sampleSize < 30:
		adequacy = "insufficient"
		note = "Sample size below 30 may not provide reliable estimates"
	case sampleSize < 100:
		adequacy = "marginal"
		note = "Results should be interpreted with caution"
	case sampleSize < 400:
		adequacy = "adequate"
		note = "Sample provides reasonable precision for main findings"
	default:
		adequacy = "strong"
		note = "Large sample provides high precision for detailed analysis"
	}

	worstCase := MarginOfError(0.5, sampleSize, DefaultConfidenceLevel)
	return SampleAdequacy{
		SampleSize:          sampleSize,
		Adequacy:            adequacy,
		Note:                note,
		WorstCaseMOEPercent: round1(worstCase * 100),
		CanDetectDifference: round1(worstCase * 200),
	}
}

// SignificanceBadge is a display annotation for a p-value.
type SignificanceBadge struct {
	Level  string `json:"level"`
	Label  string `json:"label"`
	Symbol string `json:"symbol"`
	Color  string `json:"color"`
}

// BadgeForPValue maps a p-value onto a display badge.
func BadgeForPValue(pValue float64) SignificanceBadge {
	switch {
	case pValue < 0.001:
		return SignificanceBadge{"highly_significant", "Highly Significant", "***", "green"}
	case pValue < 0.01:
		return SignificanceBadge{"very_significant", "Very Significant", "**", "green"}
	case pValue < 0.05:
		return SignificanceBadge{"significant", "Significant", "*", "blue"}
	case pValue < 0.1:
		return SignificanceBadge{"marginally_significant", "Marginally Significant", "†", "yellow"}
	default:
		return SignificanceBadge{"not_significant", "Not Significant", "ns", "gray"}
	}
}

// ChiSquare2x2 computes the chi-square statistic, phi coefficient and a
// two-tailed p-value for a 2x2 contingency table using the closed form
// for one degree of freedom. Returns zeros when any margin is empty.
func ChiSquare2x2(a, b, c, d int) (chiSquare, phi, pValue float64) {
	n := a + b + c + d
	r1 := a + b
	r2 := c + d
	c1 := a + c
	c2 := b + d
	if n == 0 || r1 == 0 || r2 == 0 || c1 == 0 || c2 == 0 {
		return 0, 0, 1.0
	}

	det := float64(a*d - b*c)
	chiSquare = float64(n) * det * det / (float64(r1) * float64(r2) * float64(c1) * float64(c2))
	phi = det / math.Sqrt(float64(r1)*float64(r2)*float64(c1)*float64(c2))

	// With 1 df, chi-square is the square of a standard normal variate.
	pValue = 2 * (1 - normalCDF(math.Sqrt(chiSquare)))
	return chiSquare, phi, pValue
}

func normalCDF(x float64) float64 {
	return 0.5 * (1 + math.Erf(x/math.Sqrt2))
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
