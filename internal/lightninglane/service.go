// Package lightninglane recommends which attractions a group should
// target with the paid multi-attraction pass vs the premium
// single-attraction pass for one trip day, and whether the multi-pass is
// worth buying at all.
package lightninglane

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/waylightapp/waylight/internal/planning"
	"github.com/waylightapp/waylight/internal/storage/models"
)

// Confidence levels for the time-savings estimate.
const (
	ConfidenceLow    = "low"
	ConfidenceMedium = "medium"
	ConfidenceHigh   = "high"
)

// Recommendation is one scored attraction in a pass shortlist.
type Recommendation struct {
	AttractionID          string
	Name                  string
	Priority              float64 // 0-10
	Reasoning             string
	EstimatedMinutesSaved int
	GroupRating           float64
	SellOutTime           *string  // Nullable: only some attractions sell out
	PerPersonCost         *float64 // Nullable: single-pass entries only
}

// CostBreakdown totals the projected spend for the day.
type CostBreakdown struct {
	MultiPassTotal  float64
	SinglePassTotal float64
	Total           float64
}

// TimeSavings is the projected wait time avoided across the day.
type TimeSavings struct {
	TotalMinutes int
	Confidence   string // low, medium, high
}

// Strategy is the full recommendation for one trip day.
type Strategy struct {
	ShouldPurchaseMultiPass   bool
	Reasoning                 []string
	Costs                     CostBreakdown
	TimeSavings               TimeSavings
	MultiPassRecommendations  []Recommendation
	SinglePassRecommendations []Recommendation
}

// Service computes Lightning Lane strategies. It is stateless; the
// catalog and reference tables are injected at construction.
type Service struct {
	catalog planning.Catalog
	tables  Tables
}

// NewService creates a strategy service over the given catalog and
// reference tables.
func NewService(catalog planning.Catalog, tables Tables) *Service {
	return &Service{catalog: catalog, tables: tables}
}

// Scoring thresholds: multi-pass keeps priorities of 5+, the premium
// single pass demands 7+ to justify its per-ride cost.
const (
	multiPassCutoff  = 5.0
	singlePassCutoff = 7.0
	maxMultiPassRecs = 8
)

// GenerateStrategy recommends pass targets and a purchase decision for
// one trip day. A day with no park produces an empty strategy.
func (s *Service) GenerateStrategy(day *models.TripDay, summaries []*models.ActivityRatingSummary, groupSize int) *Strategy {
	strategy := &Strategy{}
	if day == nil || day.ParkID == nil {
		strategy.Reasoning = []string{"No park planned for this day"}
		strategy.TimeSavings.Confidence = ConfidenceLow
		return strategy
	}

	byAttraction := make(map[string]*models.ActivityRatingSummary, len(summaries))
	for _, summary := range summaries {
		byAttraction[summary.AttractionID] = summary
	}
	planned := make(map[string]bool, len(day.Items))
	for _, item := range day.Items {
		planned[item.AttractionID] = true
	}

	size := int(math.Max(float64(groupSize), 1))

	var multi, single []Recommendation
	for _, attraction := range s.catalog.AttractionsByPark(*day.ParkID) {
		summary := byAttraction[attraction.ID]
		if attraction.Features.MultiPass {
			if rec, ok := s.scoreMultiPass(attraction, summary, planned[attraction.ID]); ok {
				multi = append(multi, rec)
			}
		}
		if attraction.Features.SinglePass {
			if rec, ok := s.scoreSinglePass(attraction, summary, planned[attraction.ID]); ok {
				single = append(single, rec)
			}
		}
	}

	sortRecommendations(multi)
	sortRecommendations(single)
	if len(multi) > maxMultiPassRecs {
		multi = multi[:maxMultiPassRecs]
	}
	strategy.MultiPassRecommendations = multi
	strategy.SinglePassRecommendations = single

	perPerson := s.multiPassPrice(day.Date)
	totalCost := perPerson * float64(size)
	highPriority := 0
	for _, rec := range multi {
		if rec.Priority >= 8 {
			highPriority++
		}
	}
	topSavings := 0
	for i, rec := range multi {
		if i == 3 {
			break
		}
		topSavings += rec.EstimatedMinutesSaved
	}

	// Worth buying when at least 3 of the 4 value conditions hold.
	conditions := 0
	if highPriority >= 3 {
		conditions++
	}
	if topSavings >= 120 {
		conditions++
	}
	if totalCost <= float64(size)*35 {
		conditions++
	}
	if len(multi) >= 4 {
		conditions++
	}
	strategy.ShouldPurchaseMultiPass = conditions >= 3

	strategy.Costs = s.costBreakdown(strategy.ShouldPurchaseMultiPass, perPerson, size, single)
	strategy.TimeSavings = timeSavings(strategy.ShouldPurchaseMultiPass, topSavings, multi, single)
	strategy.Reasoning = s.reasoning(strategy, highPriority, topSavings, totalCost, size)

	return strategy
}

// scoreMultiPass scores one multi-pass-eligible attraction. Returns false
// when the priority falls below the shortlist cutoff.
func (s *Service) scoreMultiPass(attraction *models.Attraction, summary *models.ActivityRatingSummary, plannedToday bool) (Recommendation, bool) {
	groupRating := s.tables.DefaultGroupRating
	mustDos := 0
	if summary != nil {
		groupRating = summary.AverageRating
		mustDos = summary.MustDoCount
	}

	priority := math.Min(groupRating*2, 10)
	if mustDos > 0 {
		priority += math.Min(float64(mustDos)*1.5, 3)
	}
	if attraction.Intensity == models.IntensityHigh || attraction.Intensity == models.IntensityExtreme {
		priority++
	}
	if s.tables.HighDemandAttractions[attraction.ID] {
		priority += 2
	}
	if plannedToday {
		priority += 1.5
	}
	priority = math.Min(priority, 10)

	if priority < multiPassCutoff {
		return Recommendation{}, false
	}

	saved := s.minutesSaved(attraction.ID, s.tables.MultiPassSavedFraction)
	return Recommendation{
		AttractionID:          attraction.ID,
		Name:                  attraction.Name,
		Priority:              priority,
		Reasoning:             multiPassReasoning(groupRating, mustDos, s.tables.HighDemandAttractions[attraction.ID], plannedToday),
		EstimatedMinutesSaved: saved,
		GroupRating:           groupRating,
		SellOutTime:           s.sellOutTime(attraction.ID),
	}, true
}

// scoreSinglePass scores one premium single-pass attraction. These are
// assumed inherently high-demand (flat bonus) but held to a stricter
// cutoff because each ride is paid for separately.
func (s *Service) scoreSinglePass(attraction *models.Attraction, summary *models.ActivityRatingSummary, plannedToday bool) (Recommendation, bool) {
	groupRating := s.tables.DefaultGroupRating
	mustDos := 0
	if summary != nil {
		groupRating = summary.AverageRating
		mustDos = summary.MustDoCount
	}

	priority := math.Min(groupRating*1.8, 10)
	priority += math.Min(float64(mustDos)*2, 4)
	priority += 2
	if plannedToday {
		priority += 2
	}
	priority = math.Min(priority, 10)

	if priority < singlePassCutoff {
		return Recommendation{}, false
	}

	cost := s.tables.DefaultSinglePassCost
	if c, ok := s.tables.SinglePassCosts[attraction.ID]; ok {
		cost = c
	}
	saved := s.minutesSaved(attraction.ID, s.tables.SinglePassSavedFraction)
	return Recommendation{
		AttractionID:          attraction.ID,
		Name:                  attraction.Name,
		Priority:              priority,
		Reasoning:             singlePassReasoning(groupRating, mustDos, saved),
		EstimatedMinutesSaved: saved,
		GroupRating:           groupRating,
		SellOutTime:           s.sellOutTime(attraction.ID),
		PerPersonCost:         &cost,
	}, true
}

// minutesSaved estimates the wait avoided for an attraction under a pass
// type's saved fraction. Attractions missing from the wait table use the
// default base wait.
func (s *Service) minutesSaved(attractionID string, fraction float64) int {
	baseWait := s.tables.DefaultBaseWait
	if wait, ok := s.tables.BaseWaitMinutes[attractionID]; ok {
		baseWait = wait
	}
	return int(math.Round(float64(baseWait) * fraction))
}

// sellOutTime returns the typical sell-out time for an attraction, nil
// when it doesn't usually sell out.
func (s *Service) sellOutTime(attractionID string) *string {
	if t, ok := s.tables.SellOutTimes[attractionID]; ok {
		return &t
	}
	return nil
}

// multiPassPrice is the per-person multi-pass cost for a date: base price
// plus a weekend or weekday surcharge.
func (s *Service) multiPassPrice(date time.Time) float64 {
	if date.Weekday() == time.Saturday || date.Weekday() == time.Sunday {
		return s.tables.MultiPassBasePrice + s.tables.WeekendSurcharge
	}
	return s.tables.MultiPassBasePrice + s.tables.WeekdaySurcharge
}

// costBreakdown totals projected spend. The multi-pass costs nothing if
// the decision is not to buy it.
func (s *Service) costBreakdown(purchase bool, perPerson float64, groupSize int, single []Recommendation) CostBreakdown {
	var costs CostBreakdown
	if purchase {
		costs.MultiPassTotal = perPerson * float64(groupSize)
	}
	for _, rec := range single {
		if rec.PerPersonCost != nil {
			costs.SinglePassTotal += *rec.PerPersonCost * float64(groupSize)
		}
	}
	costs.Total = costs.MultiPassTotal + costs.SinglePassTotal
	return costs
}

// timeSavings totals the projected wait avoided: the top-3 multi-pass
// savings (only when purchasing) plus every single-pass pick.
func timeSavings(purchase bool, topMultiSavings int, multi, single []Recommendation) TimeSavings {
	total := 0
	if purchase {
		total += topMultiSavings
	}
	for _, rec := range single {
		total += rec.EstimatedMinutesSaved
	}

	confidence := ConfidenceMedium
	recCount := len(multi) + len(single)
	switch {
	case recCount < 3:
		confidence = ConfidenceLow
	case recCount > 6:
		confidence = ConfidenceHigh
	}

	return TimeSavings{TotalMinutes: total, Confidence: confidence}
}

// reasoning builds the explanation for the purchase decision.
func (s *Service) reasoning(strategy *Strategy, highPriority, topSavings int, totalCost float64, groupSize int) []string {
	var reasons []string
	if strategy.ShouldPurchaseMultiPass {
		reasons = append(reasons, fmt.Sprintf("MultiPass is worth it today: %d high-priority attractions and roughly %d minutes saved on your top picks", highPriority, topSavings))
		reasons = append(reasons, fmt.Sprintf("Total cost for %d people is $%.0f", groupSize, totalCost))
	} else {
		reasons = append(reasons, fmt.Sprintf("Skip MultiPass today: only %d high-priority attractions and about %d minutes saved on top picks", highPriority, topSavings))
		reasons = append(reasons, "Standby lines and rope drop should cover this lineup")
	}
	if len(strategy.SinglePassRecommendations) > 0 {
		reasons = append(reasons, fmt.Sprintf("%d premium single-pass attraction(s) are worth considering separately", len(strategy.SinglePassRecommendations)))
	}
	if sellOutWarning := earliestSellOut(strategy.MultiPassRecommendations, strategy.SinglePassRecommendations); sellOutWarning != "" {
		reasons = append(reasons, sellOutWarning)
	}
	return reasons
}

// earliestSellOut warns about the first recommended attraction known to
// sell out.
func earliestSellOut(lists ...[]Recommendation) string {
	for _, list := range lists {
		for _, rec := range list {
			if rec.SellOutTime != nil {
				return fmt.Sprintf("Book %s early - it typically sells out by %s", rec.Name, *rec.SellOutTime)
			}
		}
	}
	return ""
}

// multiPassReasoning explains one multi-pass pick.
func multiPassReasoning(groupRating float64, mustDos int, highDemand, plannedToday bool) string {
	switch {
	case mustDos > 0 && highDemand:
		return fmt.Sprintf("Group must-do (%d votes) and a high-demand ride - book at your first window", mustDos)
	case highDemand:
		return "High-demand ride with long standby waits"
	case mustDos > 0:
		return fmt.Sprintf("%d member(s) marked this a must-do", mustDos)
	case plannedToday:
		return "Already on today's plan - the pass removes its wait"
	default:
		return fmt.Sprintf("Group rating %.1f/5 justifies skipping the line", groupRating)
	}
}

// singlePassReasoning explains one single-pass pick.
func singlePassReasoning(groupRating float64, mustDos int, saved int) string {
	if mustDos > 0 {
		return fmt.Sprintf("Must-do for %d member(s); saves about %d minutes of standby", mustDos, saved)
	}
	return fmt.Sprintf("Group rating %.1f/5 with roughly %d minutes of standby avoided", groupRating, saved)
}

// sortRecommendations orders by priority desc, breaking ties by minutes
// saved desc then name for deterministic output.
func sortRecommendations(recs []Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Priority != recs[j].Priority {
			return recs[i].Priority > recs[j].Priority
		}
		if recs[i].EstimatedMinutesSaved != recs[j].EstimatedMinutesSaved {
			return recs[i].EstimatedMinutesSaved > recs[j].EstimatedMinutesSaved
		}
		return recs[i].Name < recs[j].Name
	})
}
