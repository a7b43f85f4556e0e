package service

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"campuspulse/internal/model"
	"campuspulse/internal/stats"
)

// FindingsService turns a computed snapshot into ranked plain-English
// key findings.
type FindingsService struct{}

// NewFindingsService creates the findings generator.
func NewFindingsService() *FindingsService {
	return &FindingsService{}
}

// Generate produces the top ten findings ranked by importance, plus an
// executive summary built from the top three.
func (s *FindingsService) Generate(snapshot *model.Snapshot) model.KeyFindingsReport {
	var findings []model.Finding

	findings = append(findings, oppositionFindings(snapshot)...)
	findings = append(findings, concernFindings(snapshot)...)
	findings = append(findings, demographicFindings(snapshot)...)
	findings = append(findings, qualityFindings(snapshot)...)
	findings = append(findings, sentimentFindings(snapshot)...)
	findings = append(findings, suggestionFindings(snapshot)...)
	findings = append(findings, consensusFindings(snapshot)...)

	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].Importance > findings[j].Importance
	})
	if len(findings) > 10 {
		findings = findings[:10]
	}

	var summaryParts []string
	for i := 0; i < len(findings) && i < 3; i++ {
		summaryParts = append(summaryParts, findings[i].Text)
	}
	summary := ""
	if len(summaryParts) > 0 {
		summary = strings.Join(summaryParts, ". ") + "."
	}

	categories := make(map[string]int)
	for _, f := range findings {
		categories[f.Category]++
	}

	return model.KeyFindingsReport{
		Findings:         findings,
		TotalFindings:    len(findings),
		ExecutiveSummary: summary,
		Categories:       categories,
	}
}

func oppositionFindings(snapshot *model.Snapshot) []model.Finding {
	overview := snapshot.Overview
	if overview.TotalResponses == 0 {
		return nil
	}

	q1Oppose := 100 - overview.Q1SupportPercent
	q2Oppose := 100 - overview.Q2SupportPercent

	var text string
	var importance int
	switch {
	case q1Oppose >= 80:
		text = fmt.Sprintf("Overwhelming majority (%.1f%%) oppose the parent notification policy", q1Oppose)
		importance = 100
	case q1Oppose >= 60:
		text = fmt.Sprintf("Clear majority (%.1f%%) oppose the parent notification policy", q1Oppose)
		importance = 95
	case q1Oppose >= 50:
		text = fmt.Sprintf("Majority (%.1f%%) oppose the parent notification policy", q1Oppose)
		importance = 90
	default:
		text = fmt.Sprintf("Minority (%.1f%%) oppose the parent notification policy", q1Oppose)
		importance = 70
	}

	findings := []model.Finding{{
		Text:           text,
		Category:       "opposition",
		Importance:     importance,
		Confidence:     "high",
		DataReference:  "Q1 vote results",
		SupportingStat: fmt.Sprintf("%d of %d students", overview.Q1OpposeCount, overview.TotalResponses),
	}}

	if math.Abs(q1Oppose-q2Oppose) < 5 {
		text = fmt.Sprintf("Opposition to 24/7 monitoring (%.1f%%) is consistent with notification opposition", q2Oppose)
		importance = 75
	} else {
		diff := q2Oppose - q1Oppose
		direction := "higher"
		if diff < 0 {
			direction = "lower"
		}
		text = fmt.Sprintf("Opposition to 24/7 monitoring is %.1fpp %s than notification opposition", math.Abs(diff), direction)
		importance = 80
	}
	findings = append(findings, model.Finding{
		Text:           text,
		Category:       "opposition",
		Importance:     importance,
		Confidence:     "high",
		DataReference:  "Q1 vs Q2 comparison",
		SupportingStat: fmt.Sprintf("Q1: %.1f%% vs Q2: %.1f%%", q1Oppose, q2Oppose),
	})
	return findings
}

func concernFindings(snapshot *model.Snapshot) []model.Finding {
	concerns := snapshot.Concerns
	if len(concerns) == 0 {
		return nil
	}

	var findings []model.Finding
	top := concerns[0]
	if top.Count > 0 {
		confidence := "medium"
		if top.Count >= 50 {
			confidence = "high"
		}
		findings = append(findings, model.Finding{
			Text: fmt.Sprintf("%s is the dominant concern, mentioned by %d students (%.1f%%)",
				top.ConcernName, top.Count, top.Percentage),
			Category:       "concern",
			Importance:     85,
			Confidence:     confidence,
			DataReference:  "Concern analysis",
			SupportingStat: fmt.Sprintf("%d mentions", top.Count),
		})
	}

	if len(concerns) >= 3 {
		top3 := concerns[0].Percentage + concerns[1].Percentage + concerns[2].Percentage
		var text string
		importance := 60
		if top3 >= 70 {
			text = fmt.Sprintf("Three concerns dominate feedback: %s, %s, and %s",
				concerns[0].ConcernName, concerns[1].ConcernName, concerns[2].ConcernName)
			importance = 70
		} else {
			text = "Student concerns are distributed across multiple categories"
		}
		findings = append(findings, model.Finding{
			Text:           text,
			Category:       "concern",
			Importance:     importance,
			Confidence:     "medium",
			DataReference:  "Concern distribution",
			SupportingStat: fmt.Sprintf("Top 3 = %.1f%% of mentions", top3),
		})
	}
	return findings
}

func demographicFindings(snapshot *model.Snapshot) []model.Finding {
	var findings []model.Finding
	if len(snapshot.Demographics.ByCourse) >= 2 {
		findings = append(findings, groupDifferenceFinding(snapshot.Demographics.ByCourse, "course"))
	}
	if len(snapshot.Demographics.ByYear) >= 2 {
		findings = append(findings, groupDifferenceFinding(snapshot.Demographics.ByYear, "year"))
	}
	return findings
}

func groupDifferenceFinding(groups []model.GroupBreakdown, groupType string) model.Finding {
	maxGroup, minGroup := groups[0], groups[0]
	for _, g := range groups[1:] {
		if g.Q1YesPercent > maxGroup.Q1YesPercent {
			maxGroup = g
		}
		if g.Q1YesPercent < minGroup.Q1YesPercent {
			minGroup = g
		}
	}
	difference := maxGroup.Q1YesPercent - minGroup.Q1YesPercent

	var text, confidence string
	var importance int
	switch {
	case difference >= 15:
		text = fmt.Sprintf("%s students are %.1fpp more supportive than %s students",
			maxGroup.Category, difference, minGroup.Category)
		importance = 80
		confidence = "medium"
		if maxGroup.Total >= 50 && minGroup.Total >= 50 {
			confidence = "high"
		}
	case difference >= 5:
		text = fmt.Sprintf("Moderate variation in support across %ss (range: %.1fpp)", groupType, difference)
		importance = 65
		confidence = "medium"
	default:
		text = fmt.Sprintf("Support levels are consistent across all %ss (within %.1fpp)", groupType, difference)
		importance = 60
		confidence = "high"
	}

	return model.Finding{
		Text:          text,
		Category:      "demographic",
		Importance:    importance,
		Confidence:    confidence,
		DataReference: strings.ToUpper(groupType[:1]) + groupType[1:] + " breakdown",
		SupportingStat: fmt.Sprintf("%s: %.1f%% vs %s: %.1f%%",
			maxGroup.Category, maxGroup.Q1YesPercent, minGroup.Category, minGroup.Q1YesPercent),
	}
}

func qualityFindings(snapshot *model.Snapshot) []model.Finding {
	overview := snapshot.Overview
	if overview.TotalResponses == 0 {
		return nil
	}

	validPct := float64(overview.ValidResponses) / float64(overview.TotalResponses) * 100

	var text string
	importance := 45
	switch {
	case validPct >= 90:
		text = fmt.Sprintf("High data quality: %.1f%% of responses passed quality checks", validPct)
		importance = 50
	case validPct >= 75:
		text = fmt.Sprintf("Good data quality: %.1f%% of responses are valid", validPct)
	default:
		text = fmt.Sprintf("Data quality concern: only %.1f%% of responses passed quality checks", validPct)
		importance = 70
	}

	findings := []model.Finding{{
		Text:           text,
		Category:       "quality",
		Importance:     importance,
		Confidence:     "high",
		DataReference:  "Quality analysis",
		SupportingStat: fmt.Sprintf("%d valid, %d flagged", overview.ValidResponses, overview.FlaggedResponses),
	}}

	adequacy := stats.AssessSampleAdequacy(overview.TotalResponses)
	if adequacy.Adequacy == "strong" || adequacy.Adequacy == "adequate" {
		findings = append(findings, model.Finding{
			Text:           fmt.Sprintf("Sample size (%d responses) provides statistically reliable results", overview.TotalResponses),
			Category:       "quality",
			Importance:     55,
			Confidence:     "high",
			DataReference:  "Statistical adequacy",
			SupportingStat: fmt.Sprintf("Margin of error: ±%.1f%%", adequacy.WorstCaseMOEPercent),
		})
	}
	return findings
}

func sentimentFindings(snapshot *model.Snapshot) []model.Finding {
	overall := snapshot.Sentiment.Overall
	if overall == (model.SentimentAggregate{}) {
		return nil
	}

	var text string
	var importance int
	switch {
	case overall.AveragePolarity < -0.2:
		text = fmt.Sprintf("Comments are predominantly negative in tone (%.1f%% negative vs %.1f%% positive)",
			overall.NegativePercent, overall.PositivePercent)
		importance = 75
	case overall.AveragePolarity > 0.2:
		text = "Comments are predominantly positive in tone"
		importance = 65
	default:
		text = fmt.Sprintf("Comment sentiment is mixed (%.1f%% negative, %.1f%% positive)",
			overall.NegativePercent, overall.PositivePercent)
		importance = 55
	}

	return []model.Finding{{
		Text:           text,
		Category:       "sentiment",
		Importance:     importance,
		Confidence:     "medium",
		DataReference:  "Sentiment analysis",
		SupportingStat: fmt.Sprintf("Average polarity: %.2f", overall.AveragePolarity),
	}}
}

func suggestionFindings(snapshot *model.Snapshot) []model.Finding {
	agg := snapshot.Suggestions.Aggregated
	if agg.TotalWithSuggestions == 0 {
		return nil
	}

	topCategory := "N/A"
	if len(agg.TopCategories) > 0 {
		topCategory = agg.TopCategories[0]
	}

	findings := []model.Finding{{
		Text: fmt.Sprintf("%d students (%.1f%%) provided constructive suggestions",
			agg.TotalWithSuggestions, agg.SuggestionRate),
		Category:       "suggestions",
		Importance:     70,
		Confidence:     "high",
		DataReference:  "Suggestion analysis",
		SupportingStat: "Top category: " + topCategory,
	}}

	if len(agg.TopCategories) > 0 {
		top := agg.TopCategories
		if len(top) > 3 {
			top = top[:3]
		}
		findings = append(findings, model.Finding{
			Text:          "Most suggestions relate to: " + strings.Join(top, ", "),
			Category:      "suggestions",
			Importance:    65,
			Confidence:    "medium",
			DataReference: "Suggestion categories",
		})
	}
	return findings
}

func consensusFindings(snapshot *model.Snapshot) []model.Finding {
	crossTab := snapshot.CrossTabulation
	if crossTab.TotalValid == 0 {
		return nil
	}

	consistency := crossTab.YesYesPercent + crossTab.NoNoPercent

	var text string
	var importance int
	switch {
	case consistency >= 80:
		text = fmt.Sprintf("Strong consistency: %.1f%% of students voted the same way on both questions", consistency)
		importance = 72
	case consistency >= 60:
		text = fmt.Sprintf("Moderate consistency: %.1f%% voted consistently on both questions", consistency)
		importance = 60
	default:
		text = fmt.Sprintf("Students distinguish between the two policies (only %.1f%% voted consistently)", consistency)
		importance = 68
	}

	return []model.Finding{{
		Text:           text,
		Category:       "consensus",
		Importance:     importance,
		Confidence:     "high",
		DataReference:  "Cross-tabulation",
		SupportingStat: fmt.Sprintf("Correlation: %.2f", crossTab.CorrelationCoefficient),
	}}
}
