package planning

import (
	"math"

	"github.com/waylightapp/waylight/internal/storage/models"
)

// Lightning Lane strategies an attraction can be slotted into.
const (
	StrategyMultiPass  = "multipass"
	StrategySinglePass = "singlepass"
	StrategyStandby    = "standby"
)

// Constants of the efficiency model. The park-day estimate assumes 8 park
// hours reduced 25% for meals, breaks, and transit.
const (
	effectiveParkMinutes   = 480 * 0.75
	priorityWeightFloor    = 0.1
	priorityWeightCap      = 2.0
	defaultPriorityWeight  = 0.5
	interestedWeightCutoff = 0.7
)

// AttractionEfficiency is the per-attraction value score: how much group
// priority an attraction delivers per minute of time budget, adjusted for
// difficulty and crowd pressure. Recomputed on every run, never persisted.
type AttractionEfficiency struct {
	AttractionID          string
	AttractionName        string
	ParkID                string
	EfficiencyScore       float64
	TimeBudgetMinutes     float64
	BaseDifficulty        float64
	CrowdImpact           float64
	LightningLaneStrategy string // multipass, singlepass, standby
	UserPriorityWeight    float64
	RecommendedStrategy   string
}

// intensityBonus is the difficulty contribution of an intensity level.
func intensityBonus(intensity string) float64 {
	switch intensity {
	case models.IntensityModerate:
		return 0.2
	case models.IntensityHigh:
		return 0.4
	case models.IntensityExtreme:
		return 0.6
	default:
		return 0
	}
}

// attractionEfficiency scores one attraction for the group. A missing
// summary yields the neutral default priority weight rather than an error.
func attractionEfficiency(attraction *models.Attraction, summary *models.ActivityRatingSummary, members []*models.TravelingPartyMember) AttractionEfficiency {
	baseDifficulty := 1.0 + math.Min(float64(attraction.DurationMinutes)/60, 2.0) + intensityBonus(attraction.Intensity)
	if attraction.LightningLaneEligible() {
		baseDifficulty += 0.5
	}

	crowdImpact := 1.0
	if attraction.Features.MultiPass {
		crowdImpact += 0.3
	}
	if attraction.Features.SinglePass {
		crowdImpact += 0.5
	}

	weight := defaultPriorityWeight
	if summary != nil {
		partySize := math.Max(float64(len(members)), 1)
		weight = summary.AverageRating/5 + float64(summary.MustDoCount)/partySize - float64(summary.AvoidCount)/partySize
		weight = math.Min(math.Max(weight, priorityWeightFloor), priorityWeightCap)
	}

	strategy := StrategyStandby
	timeBudget := float64(attraction.DurationMinutes) + crowdImpact*45
	switch {
	case attraction.Features.MultiPass:
		strategy = StrategyMultiPass
		timeBudget = float64(attraction.DurationMinutes) + 10
	case attraction.Features.SinglePass:
		strategy = StrategySinglePass
		timeBudget = float64(attraction.DurationMinutes) + 15
	}

	score := (weight * 100) / (timeBudget * baseDifficulty * crowdImpact)

	return AttractionEfficiency{
		AttractionID:          attraction.ID,
		AttractionName:        attraction.Name,
		ParkID:                attraction.ParkID,
		EfficiencyScore:       score,
		TimeBudgetMinutes:     timeBudget,
		BaseDifficulty:        baseDifficulty,
		CrowdImpact:           crowdImpact,
		LightningLaneStrategy: strategy,
		UserPriorityWeight:    weight,
		RecommendedStrategy:   recommendedStrategy(weight, strategy, timeBudget),
	}
}

// recommendedStrategy picks the human-readable queueing advice for an
// attraction based on its priority weight and strategy slot.
func recommendedStrategy(weight float64, strategy string, timeBudget float64) string {
	switch {
	case weight > 1.0 && strategy == StrategyMultiPass:
		return "High priority - use MultiPass"
	case weight > 1.5 && strategy == StrategySinglePass:
		return "Consider Single Pass if budget allows"
	case timeBudget > 90:
		return "Visit during low crowd times"
	default:
		return "Experience during standby"
	}
}

// GenerateAttractionEfficiencies computes efficiency scores for every
// catalog attraction, grouped by park. Attractions with no ratings still
// receive a (low-weight) score.
func (a *Analytics) GenerateAttractionEfficiencies(ratings []*models.ActivityRating, summaries []*models.ActivityRatingSummary, members []*models.TravelingPartyMember) map[string][]AttractionEfficiency {
	byAttraction := indexSummaries(summaries)

	result := make(map[string][]AttractionEfficiency)
	for _, attraction := range a.catalog.Attractions() {
		eff := attractionEfficiency(attraction, byAttraction[attraction.ID], members)
		result[attraction.ParkID] = append(result[attraction.ParkID], eff)
	}
	return result
}
