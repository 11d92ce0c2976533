package planning

import (
	"sort"

	"github.com/waylightapp/waylight/internal/storage/models"
)

// AttractionInsight is one ranked entry in a park summary's attraction
// list.
type AttractionInsight struct {
	AttractionID          string
	Name                  string
	TotalRatings          int
	AverageRating         float64
	MustDoCount           int
	AvoidCount            int
	ConsensusLevel        string
	LightningLaneEligible bool
}

// ParkRatingSummary is the per-park rollup of group preference analytics.
type ParkRatingSummary struct {
	ParkID           string
	ParkName         string
	AttractionCount  int
	RatedCount       int
	AverageRating    float64
	MustDoCount      int
	AvoidCount       int
	ConsensusScore   float64 // [0,1]
	ConflictCount    int
	TopAttractions   []AttractionInsight
	RecommendedDays  float64
	DayJustification string
	PriorityScore    float64
}

// GenerateParkSummaries produces one ranked summary per catalog park:
// efficiency scoring, day allocation across the trip's available park
// days, and a sorted attraction list. Parks are returned by composite
// priority score, highest first.
func (a *Analytics) GenerateParkSummaries(ratings []*models.ActivityRating, summaries []*models.ActivityRatingSummary, members []*models.TravelingPartyMember, trip *models.Trip) []*ParkRatingSummary {
	byAttraction := indexSummaries(summaries)
	availableDays := a.CalculateAvailableParkDays(trip)

	parks := a.catalog.Parks()
	requirements := make(map[string]parkTimeRequirement, len(parks))
	parkEfficiencies := make(map[string][]AttractionEfficiency, len(parks))
	for _, park := range parks {
		var efficiencies []AttractionEfficiency
		for _, attraction := range a.catalog.AttractionsByPark(park.ID) {
			efficiencies = append(efficiencies, attractionEfficiency(attraction, byAttraction[attraction.ID], members))
		}
		parkEfficiencies[park.ID] = efficiencies
		requirements[park.ID] = timeRequirement(efficiencies)
	}

	allocations := allocateParkDays(requirements, availableDays)

	result := make([]*ParkRatingSummary, 0, len(parks))
	for _, park := range parks {
		summary := a.buildParkSummary(park, byAttraction)
		allocation := allocations[park.ID]
		summary.RecommendedDays = allocation.Days
		summary.DayJustification = allocation.Justification
		summary.PriorityScore = 0.4*float64(summary.MustDoCount) +
			0.3*summary.AverageRating +
			0.2*summary.ConsensusScore +
			0.1*summary.RecommendedDays
		result = append(result, summary)
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].PriorityScore != result[j].PriorityScore {
			return result[i].PriorityScore > result[j].PriorityScore
		}
		return result[i].ParkName < result[j].ParkName
	})
	return result
}

// buildParkSummary aggregates rating summaries for one park and ranks its
// attractions. Included attractions are those with at least one rating or
// flagged Lightning-Lane-eligible (inherently popular).
func (a *Analytics) buildParkSummary(park *models.Park, byAttraction map[string]*models.ActivityRatingSummary) *ParkRatingSummary {
	attractions := a.catalog.AttractionsByPark(park.ID)

	summary := &ParkRatingSummary{
		ParkID:          park.ID,
		ParkName:        park.Name,
		AttractionCount: len(attractions),
	}

	var ratingSum, consensusSum float64
	var insights []AttractionInsight
	for _, attraction := range attractions {
		s := byAttraction[attraction.ID]
		if s == nil {
			if attraction.LightningLaneEligible() {
				insights = append(insights, AttractionInsight{
					AttractionID:          attraction.ID,
					Name:                  attraction.Name,
					LightningLaneEligible: true,
				})
			}
			continue
		}

		summary.RatedCount++
		summary.MustDoCount += s.MustDoCount
		summary.AvoidCount += s.AvoidCount
		ratingSum += s.AverageRating
		consensusSum += consensusWeight(s.ConsensusLevel)
		if s.ConsensusLevel == models.ConsensusConflict {
			summary.ConflictCount++
		}

		insights = append(insights, AttractionInsight{
			AttractionID:          attraction.ID,
			Name:                  attraction.Name,
			TotalRatings:          s.TotalRatings,
			AverageRating:         s.AverageRating,
			MustDoCount:           s.MustDoCount,
			AvoidCount:            s.AvoidCount,
			ConsensusLevel:        s.ConsensusLevel,
			LightningLaneEligible: attraction.LightningLaneEligible(),
		})
	}

	if summary.RatedCount > 0 {
		summary.AverageRating = ratingSum / float64(summary.RatedCount)
		summary.ConsensusScore = consensusSum / float64(summary.RatedCount)
	}

	sort.SliceStable(insights, func(i, j int) bool {
		if insights[i].MustDoCount != insights[j].MustDoCount {
			return insights[i].MustDoCount > insights[j].MustDoCount
		}
		if insights[i].AverageRating != insights[j].AverageRating {
			return insights[i].AverageRating > insights[j].AverageRating
		}
		return consensusRank(insights[i].ConsensusLevel) > consensusRank(insights[j].ConsensusLevel)
	})
	summary.TopAttractions = insights

	return summary
}
