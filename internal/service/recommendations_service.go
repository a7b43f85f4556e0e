package service

import (
	"fmt"
	"sort"

	"campuspulse/internal/model"
)

// RecommendationsService translates snapshot patterns into actionable
// policy recommendations for administrators.
type RecommendationsService struct{}

// NewRecommendationsService creates the recommendations engine.
func NewRecommendationsService() *RecommendationsService {
	return &RecommendationsService{}
}

var priorityRank = map[string]int{"high": 0, "medium": 1, "low": 2}

// Generate produces the top five recommendations, highest priority first.
func (s *RecommendationsService) Generate(snapshot *model.Snapshot) model.RecommendationsReport {
	var recs []model.Recommendation

	recs = append(recs, oppositionRecommendations(snapshot)...)
	recs = append(recs, concernRecommendations(snapshot)...)
	recs = append(recs, demographicRecommendations(snapshot)...)
	recs = append(recs, suggestionRecommendations(snapshot)...)
	recs = append(recs, qualityRecommendations(snapshot)...)
	recs = append(recs, consensusRecommendations(snapshot)...)

	sort.SliceStable(recs, func(i, j int) bool {
		return priorityRank[recs[i].Priority] < priorityRank[recs[j].Priority]
	})
	if len(recs) > 5 {
		recs = recs[:5]
	}

	var counts model.PriorityCounts
	for _, r := range recs {
		switch r.Priority {
		case "high":
			counts.High++
		case "medium":
			counts.Medium++
		case "low":
			counts.Low++
		}
	}

	var summary string
	switch {
	case counts.High > 0:
		summary = fmt.Sprintf("There are %d high-priority recommendation(s) that should be addressed before policy implementation.", counts.High)
	case counts.Medium > 0:
		summary = fmt.Sprintf("There are %d medium-priority recommendation(s) to improve policy acceptance.", counts.Medium)
	default:
		summary = "Current data suggests proceeding with standard implementation practices."
	}

	return model.RecommendationsReport{
		Recommendations: recs,
		Total:           len(recs),
		ByPriority:      counts,
		Summary:         summary,
	}
}

func oppositionRecommendations(snapshot *model.Snapshot) []model.Recommendation {
	q1Oppose := 100 - snapshot.Overview.Q1SupportPercent

	switch {
	case q1Oppose >= 80:
		return []model.Recommendation{{
			Title:         "Reconsider Policy Approach",
			Description:   "With overwhelming opposition, consider fundamental policy alternatives or significant modifications before implementation.",
			Priority:      "high",
			Justification: fmt.Sprintf("%.1f%% of students oppose the current policy proposal", q1Oppose),
			ActionItems: []string{
				"Convene stakeholder discussions to explore alternative approaches",
				"Identify core objectives and explore different mechanisms to achieve them",
				"Consider pilot programs with voluntary participation before mandates",
			},
			Category: "policy",
		}}
	case q1Oppose >= 60:
		return []model.Recommendation{{
			Title:         "Address Concerns Before Implementation",
			Description:   "Majority opposition suggests the policy needs refinement and better communication before proceeding.",
			Priority:      "high",
			Justification: fmt.Sprintf("%.1f%% opposition indicates significant resistance", q1Oppose),
			ActionItems: []string{
				"Conduct town halls to discuss policy rationale and address concerns",
				"Develop clear communication about how privacy will be protected",
				"Consider phased implementation with feedback mechanisms",
			},
			Category: "policy",
		}}
	case q1Oppose >= 40:
		return []model.Recommendation{{
			Title:         "Proactive Communication Strategy",
			Description:   "Significant minority opposition warrants proactive engagement to build understanding.",
			Priority:      "medium",
			Justification: fmt.Sprintf("%.1f%% oppose, indicating notable concerns remain", q1Oppose),
			ActionItems: []string{
				"Develop FAQ documents addressing common concerns",
				"Establish clear feedback channels for ongoing concerns",
				"Monitor sentiment after implementation",
			},
			Category: "communication",
		}}
	}
	return nil
}

// Per-concern recommendation templates, keyed by concern id.
var concernPlaybook = map[string]model.Recommendation{
	"privacy": {
		Title:       "Address Privacy Concerns Explicitly",
		Description: "Privacy is the top student concern. Policy communication must directly address data handling and privacy protections.",
		ActionItems: []string{
			"Publish clear data retention and access policies",
			"Specify who can access entry/exit data and under what circumstances",
			"Consider data minimization - collect only what's necessary",
			"Provide students with access to their own data logs",
		},
	},
	"autonomy": {
		Title:       "Respect Student Autonomy",
		Description: "Students value their independence as adults. Consider how to balance safety with autonomy.",
		ActionItems: []string{
			"Acknowledge students as adults in policy framing",
			"Consider opt-out provisions for certain situations",
			"Frame policy around mutual safety rather than surveillance",
		},
	},
	"trust": {
		Title:       "Build Trust Through Transparency",
		Description: "Trust concerns indicate students feel the policy reflects distrust of them. Work to rebuild mutual trust.",
		ActionItems: []string{
			"Involve student representatives in policy refinement",
			"Be transparent about the reasons driving this policy",
			"Create accountability mechanisms for policy administrators",
		},
	},
	"safety": {
		Title:       "Clarify Safety Benefits",
		Description: "Some students cite safety concerns. Leverage this by clearly articulating safety benefits.",
		ActionItems: []string{
			"Provide data on how this policy improves safety",
			"Share examples of how similar policies have helped",
			"Ensure emergency procedures are clearly communicated",
		},
	},
	"parental": {
		Title:       "Refine Parental Notification Scope",
		Description: "Concerns about parental involvement suggest students want clearer boundaries.",
		ActionItems: []string{
			"Define specific scenarios that trigger notifications",
			"Consider notification only for genuine emergencies",
			"Allow students to set their own emergency contacts",
		},
	},
	"necessity": {
		Title:       "Justify Policy Necessity",
		Description: "Students question whether this policy is necessary. Provide clear justification.",
		ActionItems: []string{
			"Present data or incidents that motivated this policy",
			"Explain what alternatives were considered and why rejected",
			"Commit to reviewing necessity periodically",
		},
	},
}

func concernRecommendations(snapshot *model.Snapshot) []model.Recommendation {
	if len(snapshot.Concerns) == 0 {
		return nil
	}
	top := snapshot.Concerns[0]
	if top.Count == 0 {
		return nil
	}

	rec, ok := concernPlaybook[top.ConcernID]
	if !ok {
		return nil
	}
	rec.Priority = "high"
	rec.Justification = fmt.Sprintf("%s mentioned by %d students (%.1f%%)", top.ConcernName, top.Count, top.Percentage)
	rec.Category = "concern"
	return []model.Recommendation{rec}
}

func demographicRecommendations(snapshot *model.Snapshot) []model.Recommendation {
	byCourse := snapshot.Demographics.ByCourse
	if len(byCourse) < 2 {
		return nil
	}

	maxGroup, minGroup := byCourse[0], byCourse[0]
	for _, g := range byCourse[1:] {
		if g.Q1YesPercent > maxGroup.Q1YesPercent {
			maxGroup = g
		}
		if g.Q1YesPercent < minGroup.Q1YesPercent {
			minGroup = g
		}
	}
	gap := maxGroup.Q1YesPercent - minGroup.Q1YesPercent
	if gap < 15 {
		return nil
	}

	return []model.Recommendation{{
		Title:         "Tailored Communication by Group",
		Description:   "Significant opinion gap between student groups suggests different concerns may be at play.",
		Priority:      "medium",
		Justification: fmt.Sprintf("%.1fpp difference between %s and %s", gap, maxGroup.Category, minGroup.Category),
		ActionItems: []string{
			fmt.Sprintf("Investigate specific concerns of %s students", minGroup.Category),
			"Consider focus groups with each demographic",
			"Develop targeted communication addressing group-specific concerns",
		},
		Category: "demographic",
	}}
}

func suggestionRecommendations(snapshot *model.Snapshot) []model.Recommendation {
	agg := snapshot.Suggestions.Aggregated
	top3 := agg.TopCategories
	if len(top3) > 3 {
		top3 = top3[:3]
	}

	var recs []model.Recommendation
	if containsCategory(top3, "timing") && agg.CategoryBreakdown["timing"] > 50 {
		recs = append(recs, model.Recommendation{
			Title:         "Evaluate Timing Flexibility",
			Description:   "Many students suggest timing-related modifications. Consider flexible implementation.",
			Priority:      "medium",
			Justification: fmt.Sprintf("%d suggestions related to timing", agg.CategoryBreakdown["timing"]),
			ActionItems: []string{
				"Review suggestions about notification timing",
				"Consider different rules for different times of day",
				"Evaluate weekend vs. weekday policies",
			},
			Category: "suggestions",
		})
	}
	if containsCategory(top3, "flexibility") && agg.CategoryBreakdown["flexibility"] > 50 {
		recs = append(recs, model.Recommendation{
			Title:         "Build in Flexibility Mechanisms",
			Description:   "Students seek flexibility in policy application. Consider exceptions framework.",
			Priority:      "medium",
			Justification: fmt.Sprintf("%d suggestions about flexibility", agg.CategoryBreakdown["flexibility"]),
			ActionItems: []string{
				"Define clear exception procedures",
				"Create emergency override provisions",
				"Allow customization where feasible",
			},
			Category: "suggestions",
		})
	}
	return recs
}

func containsCategory(categories []string, name string) bool {
	for _, c := range categories {
		if c == name {
			return true
		}
	}
	return false
}

func qualityRecommendations(snapshot *model.Snapshot) []model.Recommendation {
	overview := snapshot.Overview
	if overview.TotalResponses == 0 {
		return nil
	}
	validPct := float64(overview.ValidResponses) / float64(overview.TotalResponses) * 100
	if validPct >= 75 {
		return nil
	}

	return []model.Recommendation{{
		Title:         "Consider Survey Methodology Review",
		Description:   "Lower quality response rate suggests survey design improvements may be needed for future data collection.",
		Priority:      "low",
		Justification: fmt.Sprintf("Only %.1f%% of responses passed quality checks", validPct),
		ActionItems: []string{
			"Review survey length and complexity",
			"Consider incentives for thoughtful responses",
			"Add attention check questions in future surveys",
		},
		Category: "methodology",
	}}
}

func consensusRecommendations(snapshot *model.Snapshot) []model.Recommendation {
	crossTab := snapshot.CrossTabulation
	if crossTab.TotalValid == 0 {
		return nil
	}
	if crossTab.YesNoPercent < 10 && crossTab.NoYesPercent < 10 {
		return nil
	}

	return []model.Recommendation{{
		Title:         "Consider Policies Separately",
		Description:   "Students distinguish between notification and monitoring policies. Consider implementing or communicating them independently.",
		Priority:      "medium",
		Justification: fmt.Sprintf("%.1f%% voted differently on the two questions", crossTab.YesNoPercent+crossTab.NoYesPercent),
		ActionItems: []string{
			"Evaluate each policy on its own merits",
			"Consider implementing the more accepted policy first",
			"Use staged implementation to build trust",
		},
		Category: "policy",
	}}
}
