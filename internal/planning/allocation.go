package planning

import (
	"fmt"
	"math"
	"sort"
)

// parkTimeRequirement is the park-level rollup of attraction efficiencies:
// how many days the park minimally needs and how much group priority it
// carries.
type parkTimeRequirement struct {
	MinDays       int
	PriorityScore float64
	Efficiency    float64
}

// timeRequirement aggregates the efficiencies of one park's attractions.
// Only attractions the party actually wants (priority weight above the
// cutoff) count toward the estimate; a park with none gets no allocation.
func timeRequirement(efficiencies []AttractionEfficiency) parkTimeRequirement {
	var wanted []AttractionEfficiency
	for _, e := range efficiencies {
		if e.UserPriorityWeight > interestedWeightCutoff {
			wanted = append(wanted, e)
		}
	}
	if len(wanted) == 0 {
		return parkTimeRequirement{}
	}

	var totalMinutes, priority, efficiencySum float64
	for _, e := range wanted {
		totalMinutes += e.TimeBudgetMinutes
		priority += e.UserPriorityWeight * e.EfficiencyScore
		efficiencySum += e.EfficiencyScore
	}

	return parkTimeRequirement{
		MinDays:       int(math.Ceil(totalMinutes / effectiveParkMinutes)),
		PriorityScore: priority,
		Efficiency:    efficiencySum / float64(len(wanted)),
	}
}

// dayAllocation is the allocator's output for one park.
type dayAllocation struct {
	Days          float64
	Justification string
}

// allocateParkDays distributes availableParkDays across parks by greedy
// benefit maximization. The heuristic is deterministic and intentionally
// un-backtracked: every interested park gets one baseline day, then
// remaining days go one at a time to the park with the highest
// priority*efficiency*under-allocation benefit.
func allocateParkDays(requirements map[string]parkTimeRequirement, availableParkDays int) map[string]dayAllocation {
	allocations := make(map[string]dayAllocation, len(requirements))

	var interested []string
	for _, parkID := range sortedParkIDs(requirements) {
		if requirements[parkID].PriorityScore == 0 {
			allocations[parkID] = dayAllocation{Days: 0, Justification: "No significant interest detected"}
			continue
		}
		interested = append(interested, parkID)
	}
	if len(interested) == 0 {
		return allocations
	}

	// Not enough days for even one per park: split evenly in half-day
	// increments and suggest park hopping.
	if len(interested) > availableParkDays {
		share := float64(availableParkDays) / float64(len(interested))
		share = math.Max(math.Round(share*2)/2, 0.5)
		for _, parkID := range interested {
			allocations[parkID] = dayAllocation{Days: share, Justification: "Limited time - consider park hopper"}
		}
		return allocations
	}

	allocated := make(map[string]float64, len(interested))
	for _, parkID := range interested {
		allocated[parkID] = 1
	}
	remaining := availableParkDays - len(interested)

	for remaining > 0 {
		best := ""
		bestBenefit := 0.0
		for _, parkID := range interested {
			req := requirements[parkID]
			benefit := req.PriorityScore * req.Efficiency * (float64(req.MinDays) / math.Max(allocated[parkID], 1))
			if benefit > bestBenefit {
				best = parkID
				bestBenefit = benefit
			}
		}
		if best == "" {
			break
		}
		allocated[best]++
		remaining--
	}

	for _, parkID := range interested {
		days := allocated[parkID]
		req := requirements[parkID]
		allocations[parkID] = dayAllocation{
			Days:          days,
			Justification: allocationJustification(days, req),
		}
	}
	return allocations
}

// allocationJustification explains why a park received its day count.
func allocationJustification(days float64, req parkTimeRequirement) string {
	switch {
	case days >= float64(req.MinDays):
		return fmt.Sprintf("%.0f day(s) covers the group's %d-day minimum for this park", days, req.MinDays)
	default:
		return fmt.Sprintf("%.0f day(s) allocated; group interest suggests %d - prioritize must-dos", days, req.MinDays)
	}
}

// rankParkOrder sorts park IDs by allocated days desc, then must-do count
// desc, for the recommended visit order.
func rankParkOrder(summaries []*ParkRatingSummary) []string {
	var withDays []*ParkRatingSummary
	for _, s := range summaries {
		if s.RecommendedDays > 0 {
			withDays = append(withDays, s)
		}
	}
	sort.SliceStable(withDays, func(i, j int) bool {
		if withDays[i].RecommendedDays != withDays[j].RecommendedDays {
			return withDays[i].RecommendedDays > withDays[j].RecommendedDays
		}
		return withDays[i].MustDoCount > withDays[j].MustDoCount
	})
	order := make([]string, len(withDays))
	for i, s := range withDays {
		order[i] = s.ParkID
	}
	return order
}
