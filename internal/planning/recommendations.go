package planning

import (
	"sort"

	"github.com/waylightapp/waylight/internal/storage/models"
)

// DayAllocation pairs a park with its recommended day count and the
// allocator's justification.
type DayAllocation struct {
	ParkID        string
	ParkName      string
	Days          float64
	Justification string
}

// LightningLanePriority is one entry in a park's paid-queue shortlist.
type LightningLanePriority struct {
	AttractionID string
	Name         string
	PassType     string // "MultiPass" or "Single Pass"
}

// TripRecommendations is the actionable plan derived from park summaries
// and conflicts.
type TripRecommendations struct {
	ParkOrder               []string
	DayAllocations          []DayAllocation
	MustDoByPark            map[string][]AttractionInsight
	LightningLanePriorities map[string][]LightningLanePriority
	RopeDropTargets         map[string][]AttractionInsight
	CompromiseStrategies    []string
}

// GenerateRecommendations turns park summaries and conflicts into an
// actionable trip plan. Day allocations are reused from the summaries,
// not recomputed. efficiencies may be nil; the Lightning Lane shortlist
// then falls back to must-do attractions with high average ratings.
func (a *Analytics) GenerateRecommendations(parkSummaries []*ParkRatingSummary, conflicts []*ConflictAnalysis, trip *models.Trip, efficiencies map[string][]AttractionEfficiency) *TripRecommendations {
	rec := &TripRecommendations{
		ParkOrder:               rankParkOrder(parkSummaries),
		MustDoByPark:            make(map[string][]AttractionInsight),
		LightningLanePriorities: make(map[string][]LightningLanePriority),
		RopeDropTargets:         make(map[string][]AttractionInsight),
	}

	for _, summary := range parkSummaries {
		rec.DayAllocations = append(rec.DayAllocations, DayAllocation{
			ParkID:        summary.ParkID,
			ParkName:      summary.ParkName,
			Days:          summary.RecommendedDays,
			Justification: summary.DayJustification,
		})

		rec.MustDoByPark[summary.ParkID] = topMustDos(summary.TopAttractions, 3)
		rec.LightningLanePriorities[summary.ParkID] = lightningLaneShortlist(summary, efficiencies[summary.ParkID])
		rec.RopeDropTargets[summary.ParkID] = ropeDropTargets(summary.TopAttractions, 2)
	}

	rec.CompromiseStrategies = compromiseStrategies(conflicts)
	return rec
}

// topMustDos returns up to limit attractions with must-do votes,
// preserving the summary's ranked order.
func topMustDos(insights []AttractionInsight, limit int) []AttractionInsight {
	var result []AttractionInsight
	for _, insight := range insights {
		if insight.MustDoCount == 0 {
			continue
		}
		result = append(result, insight)
		if len(result) == limit {
			break
		}
	}
	return result
}

// ropeDropTargets returns up to limit attractions whole groups should
// line up for at park open: two or more must-do votes.
func ropeDropTargets(insights []AttractionInsight, limit int) []AttractionInsight {
	var result []AttractionInsight
	for _, insight := range insights {
		if insight.MustDoCount < 2 {
			continue
		}
		result = append(result, insight)
		if len(result) == limit {
			break
		}
	}
	return result
}

// lightningLaneShortlist builds the per-park paid-queue shortlist. With
// efficiency data: multi-pass candidates above priority weight 1.0 (top 5
// by efficiency) plus single-pass candidates above 1.3 (top 2). Without
// it: must-do attractions rated 4+ (top 3), labelled MultiPass.
func lightningLaneShortlist(summary *ParkRatingSummary, efficiencies []AttractionEfficiency) []LightningLanePriority {
	if len(efficiencies) == 0 {
		var result []LightningLanePriority
		for _, insight := range summary.TopAttractions {
			if insight.MustDoCount == 0 || insight.AverageRating < 4 {
				continue
			}
			result = append(result, LightningLanePriority{
				AttractionID: insight.AttractionID,
				Name:         insight.Name,
				PassType:     "MultiPass",
			})
			if len(result) == 3 {
				break
			}
		}
		return result
	}

	var multi, single []AttractionEfficiency
	for _, e := range efficiencies {
		switch {
		case e.LightningLaneStrategy == StrategyMultiPass && e.UserPriorityWeight > 1.0:
			multi = append(multi, e)
		case e.LightningLaneStrategy == StrategySinglePass && e.UserPriorityWeight > 1.3:
			single = append(single, e)
		}
	}
	byEfficiency := func(list []AttractionEfficiency) {
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].EfficiencyScore > list[j].EfficiencyScore
		})
	}
	byEfficiency(multi)
	byEfficiency(single)
	if len(multi) > 5 {
		multi = multi[:5]
	}
	if len(single) > 2 {
		single = single[:2]
	}

	result := make([]LightningLanePriority, 0, len(multi)+len(single))
	for _, e := range multi {
		result = append(result, LightningLanePriority{AttractionID: e.AttractionID, Name: e.AttractionName, PassType: "MultiPass"})
	}
	for _, e := range single {
		result = append(result, LightningLanePriority{AttractionID: e.AttractionID, Name: e.AttractionName, PassType: "Single Pass"})
	}
	return result
}

// compromiseStrategies emits deduplicated heuristic advice gated by the
// conflict types present. Trigger order is fixed so output is
// deterministic for identical inputs.
func compromiseStrategies(conflicts []*ConflictAnalysis) []string {
	types := make(map[string]bool)
	for _, c := range conflicts {
		types[c.ConflictType] = true
	}

	var strategies []string
	add := func(s string) {
		for _, existing := range strategies {
			if existing == s {
				return
			}
		}
		strategies = append(strategies, s)
	}

	if types[ConflictTypeHeight] {
		add("Use rider swap at height-restricted attractions so everyone who can ride gets to")
		add("Plan a nearby companion activity for members waiting out restricted rides")
	}
	if types[ConflictTypeIntensity] {
		add("Split the party at intense attractions and regroup afterward")
		add("Check single-rider lines so thrill seekers lose less of the group's time")
	}
	if types[ConflictTypeRating] {
		add("Split the party for contested attractions and meet up for shared favorites")
		add("Schedule contested attractions during off-peak hours to lower the cost of trying them")
	}
	if len(conflicts) > 5 {
		add("With this many disagreements, plan mornings together and split by preference after lunch")
	}
	if len(types) > 1 {
		add("Agree on fixed meeting points and times whenever the party splits")
	}
	return strategies
}
