package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"campuspulse/internal/cache"
	"campuspulse/internal/config"
	"campuspulse/internal/model"
	"campuspulse/internal/nlp"
	"campuspulse/internal/repository"
	"campuspulse/internal/stats"
)

var timestampLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"02/01/2006 15:04:05",
}

var wordCloudPattern = regexp.MustCompile(`\b[a-zA-Z]{3,}\b`)

// AggregationService computes the full analytics snapshot from the raw
// responses and manages its cached copies.
type AggregationService struct {
	responseRepo repository.ResponseRepo
	snapshotRepo repository.SnapshotRepo
	snapshots    cache.SnapshotCache

	quality     *nlp.QualityAnalyzer
	concerns    *nlp.ConcernClassifier
	sentiment   *nlp.SentimentAnalyzer
	suggestions *nlp.SuggestionExtractor

	categories []config.ConcernCategory
}

// NewAggregationService creates the aggregation service.
func NewAggregationService(
	responseRepo repository.ResponseRepo,
	snapshotRepo repository.SnapshotRepo,
	snapshots cache.SnapshotCache,
) *AggregationService {
	return &AggregationService{
		responseRepo: responseRepo,
		snapshotRepo: snapshotRepo,
		snapshots:    snapshots,
		quality:      nlp.NewQualityAnalyzer(),
		concerns:     nlp.NewConcernClassifier(),
		sentiment:    nlp.NewSentimentAnalyzer(),
		suggestions:  nlp.NewSuggestionExtractor(),
		categories:   config.ConcernCategories(),
	}
}

// Refresh recomputes the snapshot from the stored responses and writes
// it to both the Redis cache and the MongoDB backstop.
func (s *AggregationService) Refresh(ctx context.Context) (*model.Snapshot, error) {
	rows, err := s.responseRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading responses: %w", err)
	}

	log.Printf("[analytics] computing snapshot for %d responses", len(rows))
	snapshot := s.ComputeSnapshot(rows)

	if err := s.snapshots.Set(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("caching snapshot: %w", err)
	}
	if err := s.snapshotRepo.Save(ctx, snapshot); err != nil {
		// The Redis copy is already in place; the Mongo backstop failing
		// should not fail the refresh.
		log.Printf("[analytics] persisting snapshot to mongo failed: %v", err)
	}

	log.Printf("[analytics] snapshot computed in %.2fs", snapshot.ComputationTimeSeconds)
	return snapshot, nil
}

// Current returns the cached snapshot, falling back to the MongoDB copy
// when Redis is cold. Returns (nil, nil) when no snapshot exists yet.
func (s *AggregationService) Current(ctx context.Context) (*model.Snapshot, error) {
	snapshot, err := s.snapshots.Get(ctx)
	if err != nil {
		log.Printf("[analytics] redis snapshot read failed, trying mongo: %v", err)
	}
	if snapshot != nil {
		return snapshot, nil
	}

	snapshot, err = s.snapshotRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if snapshot != nil {
		// Rewarm Redis so the next read is cheap.
		if cacheErr := s.snapshots.Set(ctx, snapshot); cacheErr != nil {
			log.Printf("[analytics] rewarming redis failed: %v", cacheErr)
		}
	}
	return snapshot, nil
}

// Status describes the cached snapshot for the cache-status endpoint.
func (s *AggregationService) Status(ctx context.Context) (*model.CacheStatus, error) {
	snapshot, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return &model.CacheStatus{
			Exists:  false,
			Message: "Snapshot not found. Run refresh to generate.",
		}, nil
	}
	computedAt := snapshot.ComputedAt
	return &model.CacheStatus{
		Exists:                 true,
		ComputedAt:             &computedAt,
		ComputationTimeSeconds: snapshot.ComputationTimeSeconds,
		TotalResponses:         snapshot.TotalResponses,
		HasTemporal:            len(snapshot.Temporal.CumulativeData) > 0,
		HasWordCloud:           len(snapshot.WordCloud.All) > 0,
		HasSentiment:           snapshot.Sentiment.Overall != (model.SentimentAggregate{}),
		HasSuggestions:         snapshot.Suggestions.Aggregated.TotalWithSuggestions > 0 || len(snapshot.Suggestions.ResponseSuggestions) > 0,
	}, nil
}

// ComputeSnapshot runs the whole analytics pipeline over the given rows.
// It is pure: no storage access, deterministic for a fixed input.
func (s *AggregationService) ComputeSnapshot(rows []model.Response) *model.Snapshot {
	start := time.Now()

	snapshot := &model.Snapshot{
		ComputedAt:     start,
		TotalResponses: len(rows),
	}

	details := make([]model.ResponseDetail, 0, len(rows))
	qualityResults := make([]model.QualityResult, len(rows))
	primaryConcerns := make([]string, len(rows))

	validCount, flaggedCount := 0, 0
	qualityDist := model.QualityDistribution{FlaggedBreakdown: make(map[string]int)}
	concernCounts := make(map[string]int)
	concernQuotes := make(map[string][]string)

	for i, row := range rows {
		quality := s.quality.Analyze(row.Comments, row.Q1ParentNotification, row.Q2Monitoring)
		qualityResults[i] = quality

		if quality.IsValid {
			validCount++
		}
		if len(quality.Flags) > 0 {
			flaggedCount++
			for _, f := range quality.Flags {
				qualityDist.FlaggedBreakdown[string(f)]++
			}
		}

		switch {
		case quality.Score >= 90:
			qualityDist.Excellent++
		case quality.Score >= 70:
			qualityDist.Good++
		case quality.Score >= 40:
			qualityDist.Acceptable++
		default:
			qualityDist.Poor++
		}

		primary := ""
		if quality.IsValid && row.Comments != "" {
			analysis := s.concerns.Classify(row.Comments)
			primary = analysis.PrimaryConcern
			if primary != "" {
				concernCounts[primary]++
				if len(concernQuotes[primary]) < 5 && len(row.Comments) > 20 {
					concernQuotes[primary] = append(concernQuotes[primary], truncate(row.Comments, 200))
				}
			}
		}
		primaryConcerns[i] = primary

		details = append(details, model.ResponseDetail{
			ID:             row.ID,
			QualityScore:   quality.Score,
			QualityFlags:   quality.Flags,
			IsValid:        quality.IsValid,
			PrimaryConcern: primary,
		})
	}

	snapshot.Quality = qualityDist
	snapshot.ResponseDetails = details
	snapshot.Overview = s.computeOverview(rows, validCount, flaggedCount)
	snapshot.Concerns = s.buildConcernList(concernCounts, concernQuotes)
	snapshot.Demographics = computeDemographics(rows)
	snapshot.CrossTabulation = computeCrossTabulation(rows)
	snapshot.Arguments = s.computeArguments(rows)
	snapshot.Temporal = computeTemporal(rows)
	snapshot.WordCloud = computeWordCloud(rows)
	snapshot.Sentiment = s.computeSentiment(rows)
	snapshot.Suggestions = s.computeSuggestions(rows)

	snapshot.ComputationTimeSeconds = math.Round(time.Since(start).Seconds()*100) / 100
	return snapshot
}

func (s *AggregationService) computeOverview(rows []model.Response, validCount, flaggedCount int) model.Overview {
	var q1Yes, q1No, q2Yes, q2No int
	byCourse := make(map[string]int)
	byYear := make(map[string]int)

	comments := make([]string, len(rows))
	for i, row := range rows {
		comments[i] = row.Comments
		switch row.Q1ParentNotification {
		case model.VoteYes:
			q1Yes++
		case model.VoteNo:
			q1No++
		}
		switch row.Q2Monitoring {
		case model.VoteYes:
			q2Yes++
		case model.VoteNo:
			q2No++
		}
		if row.Course != "" {
			byCourse[row.Course]++
		}
		if row.Year != "" {
			byYear[row.Year]++
		}
	}

	// Duplicate responses beyond the first of each group.
	duplicateCount := 0
	for _, g := range s.quality.FindDuplicates(comments, 0.9) {
		duplicateCount += g.Count - 1
	}

	return model.Overview{
		TotalResponses:   len(rows),
		ValidResponses:   validCount,
		FlaggedResponses: flaggedCount,
		DuplicateCount:   duplicateCount,
		Q1SupportCount:   q1Yes,
		Q1OpposeCount:    q1No,
		Q1SupportPercent: percentOf(q1Yes, q1Yes+q1No),
		Q2SupportCount:   q2Yes,
		Q2OpposeCount:    q2No,
		Q2SupportPercent: percentOf(q2Yes, q2Yes+q2No),
		ResponseByCourse: byCourse,
		ResponseByYear:   byYear,
	}
}

func (s *AggregationService) buildConcernList(counts map[string]int, quotes map[string][]string) []model.ConcernStat {
	total := 0
	for _, c := range counts {
		total += c
	}

	list := make([]model.ConcernStat, 0, len(s.categories))
	for _, cat := range s.categories {
		count := counts[cat.ID]
		list = append(list, model.ConcernStat{
			ConcernID:    cat.ID,
			ConcernName:  cat.DisplayName,
			Count:        count,
			Percentage:   percentOf(count, total),
			Color:        cat.Color,
			SampleQuotes: quotes[cat.ID],
		})
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Count > list[j].Count })
	return list
}

func computeDemographics(rows []model.Response) model.Demographics {
	return model.Demographics{
		ByCourse: groupBreakdowns(rows, func(r model.Response) string { return r.Course }),
		ByYear:   groupBreakdowns(rows, func(r model.Response) string { return r.Year }),
	}
}

func groupBreakdowns(rows []model.Response, key func(model.Response) string) []model.GroupBreakdown {
	type tally struct {
		total                    int
		q1Yes, q1No, q2Yes, q2No int
	}
	groups := make(map[string]*tally)
	var order []string

	for _, row := range rows {
		k := key(row)
		if k == "" {
			continue
		}
		g, ok := groups[k]
		if !ok {
			g = &tally{}
			groups[k] = g
			order = append(order, k)
		}
		g.total++
		switch row.Q1ParentNotification {
		case model.VoteYes:
			g.q1Yes++
		case model.VoteNo:
			g.q1No++
		}
		switch row.Q2Monitoring {
		case model.VoteYes:
			g.q2Yes++
		case model.VoteNo:
			g.q2No++
		}
	}

	breakdowns := make([]model.GroupBreakdown, 0, len(order))
	for _, k := range order {
		g := groups[k]
		breakdowns = append(breakdowns, model.GroupBreakdown{
			Category:     k,
			Total:        g.total,
			Q1Yes:        g.q1Yes,
			Q1No:         g.q1No,
			Q1YesPercent: percentOf(g.q1Yes, g.q1Yes+g.q1No),
			Q2Yes:        g.q2Yes,
			Q2No:         g.q2No,
			Q2YesPercent: percentOf(g.q2Yes, g.q2Yes+g.q2No),
		})
	}
	sort.SliceStable(breakdowns, func(i, j int) bool {
		return breakdowns[i].Total > breakdowns[j].Total
	})
	return breakdowns
}

func computeCrossTabulation(rows []model.Response) model.CrossTabulation {
	var yesYes, yesNo, noYes, noNo int
	for _, row := range rows {
		q1, q2 := row.Q1ParentNotification, row.Q2Monitoring
		if (q1 != model.VoteYes && q1 != model.VoteNo) || (q2 != model.VoteYes && q2 != model.VoteNo) {
			continue
		}
		switch {
		case q1 == model.VoteYes && q2 == model.VoteYes:
			yesYes++
		case q1 == model.VoteYes && q2 == model.VoteNo:
			yesNo++
		case q1 == model.VoteNo && q2 == model.VoteYes:
			noYes++
		default:
			noNo++
		}
	}

	total := yesYes + yesNo + noYes + noNo
	if total == 0 {
		return model.CrossTabulation{PValue: 1}
	}

	chi, phi, p := stats.ChiSquare2x2(yesYes, yesNo, noYes, noNo)

	return model.CrossTabulation{
		YesYes:                 yesYes,
		YesNo:                  yesNo,
		NoYes:                  noYes,
		NoNo:                   noNo,
		YesYesPercent:          percentOf(yesYes, total),
		YesNoPercent:           percentOf(yesNo, total),
		NoYesPercent:           percentOf(noYes, total),
		NoNoPercent:            percentOf(noNo, total),
		CorrelationCoefficient: math.Round(phi*1000) / 1000,
		ChiSquare:              math.Round(chi*100) / 100,
		PValue:                 math.Round(p*10000) / 10000,
		TotalValid:             total,
	}
}

func (s *AggregationService) computeArguments(rows []model.Response) model.Arguments {
	q1Texts := make([]string, 0, len(rows))
	q1Votes := make([]string, 0, len(rows))
	q2Texts := make([]string, 0, len(rows))
	q2Votes := make([]string, 0, len(rows))

	for _, row := range rows {
		if len(row.Comments) < 10 {
			continue
		}
		q1Texts = append(q1Texts, row.Comments)
		q1Votes = append(q1Votes, row.Q1ParentNotification)
		q2Texts = append(q2Texts, row.Comments)
		q2Votes = append(q2Votes, row.Q2Monitoring)
	}

	return model.Arguments{
		Q1: trimArguments(s.concerns.ExtractArguments(q1Texts, q1Votes)),
		Q2: trimArguments(s.concerns.ExtractArguments(q2Texts, q2Votes)),
	}
}

// trimArguments keeps the five largest clusters per stance and shortens
// quotes for display.
func trimArguments(args model.QuestionArguments) model.QuestionArguments {
	trim := func(clusters []model.ArgumentCluster) []model.ArgumentCluster {
		if len(clusters) > 5 {
			clusters = clusters[:5]
		}
		for i := range clusters {
			for j, q := range clusters[i].RepresentativeQuotes {
				clusters[i].RepresentativeQuotes[j] = truncate(q, 150)
			}
		}
		return clusters
	}
	return model.QuestionArguments{For: trim(args.For), Against: trim(args.Against)}
}

func computeTemporal(rows []model.Response) model.TemporalAnalysis {
	temporal := model.TemporalAnalysis{
		HourlyDistribution: make(map[string]int, 24),
		DailyDistribution:  make(map[string]int),
	}
	for h := 0; h < 24; h++ {
		temporal.HourlyDistribution[fmt.Sprintf("%d", h)] = 0
	}

	var parsed []time.Time
	for _, row := range rows {
		if row.Timestamp == "" {
			continue
		}
		for _, layout := range timestampLayouts {
			if ts, err := time.Parse(layout, row.Timestamp); err == nil {
				parsed = append(parsed, ts)
				break
			}
		}
	}
	if len(parsed) == 0 {
		return temporal
	}

	hourly := make(map[int]int)
	for _, ts := range parsed {
		hourly[ts.Hour()]++
		temporal.HourlyDistribution[fmt.Sprintf("%d", ts.Hour())]++
		temporal.DailyDistribution[ts.Format("2006-01-02")]++
	}

	peakHour, peakHourCount := -1, 0
	for h := 0; h < 24; h++ {
		if hourly[h] > peakHourCount {
			peakHour, peakHourCount = h, hourly[h]
		}
	}
	if peakHour >= 0 {
		temporal.PeakHour = &model.PeakHour{
			Hour:  peakHour,
			Count: peakHourCount,
			Label: fmt.Sprintf("%d:00 - %d:00", peakHour, peakHour+1),
		}
	}

	dates := make([]string, 0, len(temporal.DailyDistribution))
	for d := range temporal.DailyDistribution {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	peakDate, peakDayCount := "", 0
	cumulative := 0
	for _, d := range dates {
		count := temporal.DailyDistribution[d]
		cumulative += count
		temporal.CumulativeData = append(temporal.CumulativeData, model.CumulativePoint{
			Date:            d,
			DailyCount:      count,
			CumulativeCount: cumulative,
		})
		if count > peakDayCount {
			peakDate, peakDayCount = d, count
		}
	}
	if peakDate != "" {
		temporal.PeakDay = &model.PeakDay{Date: peakDate, Count: peakDayCount}
	}
	return temporal
}

// Stopwords excluded from the word cloud.
var wordCloudStopwords = func() map[string]struct{} {
	words := strings.Fields(
		"the a an and or but in on at to for of is it be are was were been being " +
			"have has had do does did will would could should may might must shall can need " +
			"this that these those i you he she we they me him her us them my your his its " +
			"our their what which who whom when where why how all each every both few more " +
			"most other some such no nor not only own same so than too very just also now " +
			"here there then if as with from about into through during before after above " +
			"below between under again further once any am by up down out off over because " +
			"until while don doesn didn won wouldn couldn shouldn ain aren hadn hasn haven " +
			"isn mightn mustn needn shan wasn weren ve ll re m s t d")
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}()

func extractCloudWords(text string) []string {
	raw := wordCloudPattern.FindAllString(strings.ToLower(text), -1)
	out := make([]string, 0, len(raw))
	for _, w := range raw {
		if _, stop := wordCloudStopwords[w]; !stop {
			out = append(out, w)
		}
	}
	return out
}

const wordCloudMinFreq = 3

func computeWordCloud(rows []model.Response) model.WordCloudData {
	var all, support, oppose []string
	for _, row := range rows {
		if len(row.Comments) < 5 {
			continue
		}
		words := extractCloudWords(row.Comments)
		all = append(all, words...)
		switch row.Q1ParentNotification {
		case model.VoteYes:
			support = append(support, words...)
		case model.VoteNo:
			oppose = append(oppose, words...)
		}
	}

	unique := make(map[string]struct{}, len(all))
	for _, w := range all {
		unique[w] = struct{}{}
	}

	return model.WordCloudData{
		All:         buildWordList(all),
		Support:     buildWordList(support),
		Oppose:      buildWordList(oppose),
		TotalWords:  len(all),
		UniqueWords: len(unique),
	}
}

func buildWordList(words []string) []model.WordCount {
	counts := make(map[string]int)
	for _, w := range words {
		counts[w]++
	}

	keys := make([]string, 0, len(counts))
	for w, c := range counts {
		if c >= wordCloudMinFreq {
			keys = append(keys, w)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > 100 {
		keys = keys[:100]
	}

	list := make([]model.WordCount, 0, len(keys))
	for _, w := range keys {
		size := counts[w] * 2
		if size > 100 {
			size = 100
		}
		list = append(list, model.WordCount{Word: w, Count: counts[w], Size: size})
	}
	return list
}

func (s *AggregationService) computeSentiment(rows []model.Response) model.SentimentData {
	var all, support, oppose []string
	responseSentiments := make([]model.ResponseSentiment, 0, len(rows))

	for _, row := range rows {
		if row.Comments != "" {
			all = append(all, row.Comments)
			switch row.Q1ParentNotification {
			case model.VoteYes:
				support = append(support, row.Comments)
			case model.VoteNo:
				oppose = append(oppose, row.Comments)
			}
		}

		entry := model.ResponseSentiment{ID: row.ID, Label: "neutral"}
		if len(row.Comments) > 5 {
			r := s.sentiment.Analyze(row.Comments)
			entry.Polarity = r.Polarity
			entry.Label = r.Label
		}
		responseSentiments = append(responseSentiments, entry)
	}

	return model.SentimentData{
		Overall: s.sentiment.AnalyzeBatch(all),
		ByVote: model.SentimentByVote{
			Support: s.sentiment.AnalyzeBatch(support),
			Oppose:  s.sentiment.AnalyzeBatch(oppose),
		},
		ResponseSentiments: responseSentiments,
	}
}

func (s *AggregationService) computeSuggestions(rows []model.Response) model.SuggestionsData {
	var all []string
	responseSuggestions := make([]model.ResponseSuggestion, 0, len(rows))

	for _, row := range rows {
		if row.Comments != "" {
			all = append(all, row.Comments)
		}

		entry := model.ResponseSuggestion{ID: row.ID, Suggestions: []string{}, Categories: []string{}}
		if len(row.Comments) > 10 {
			r := s.suggestions.Extract(row.Comments)
			entry.HasSuggestion = r.HasSuggestion
			entry.Categories = r.Categories
			if len(r.Suggestions) > 2 {
				r.Suggestions = r.Suggestions[:2]
			}
			entry.Suggestions = r.Suggestions
		}
		responseSuggestions = append(responseSuggestions, entry)
	}

	return model.SuggestionsData{
		Aggregated:          s.suggestions.ExtractAll(all),
		ResponseSuggestions: responseSuggestions,
	}
}

func percentOf(count, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*1000) / 10
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
