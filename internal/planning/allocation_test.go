package planning

import (
	"reflect"
	"testing"
)

func TestTimeRequirement(t *testing.T) {
	tests := []struct {
		name         string
		efficiencies []AttractionEfficiency
		want         parkTimeRequirement
	}{
		{
			name: "no interest at all",
			efficiencies: []AttractionEfficiency{
				{UserPriorityWeight: 0.5, TimeBudgetMinutes: 60, EfficiencyScore: 1.0},
				{UserPriorityWeight: 0.7, TimeBudgetMinutes: 40, EfficiencyScore: 2.0},
			},
			want: parkTimeRequirement{},
		},
		{
			name: "single wanted attraction",
			efficiencies: []AttractionEfficiency{
				{UserPriorityWeight: 1.5, TimeBudgetMinutes: 90, EfficiencyScore: 2.0},
				{UserPriorityWeight: 0.3, TimeBudgetMinutes: 500, EfficiencyScore: 0.1},
			},
			want: parkTimeRequirement{MinDays: 1, PriorityScore: 3.0, Efficiency: 2.0},
		},
		{
			name: "enough minutes for two days",
			efficiencies: []AttractionEfficiency{
				{UserPriorityWeight: 1.0, TimeBudgetMinutes: 200, EfficiencyScore: 1.0},
				{UserPriorityWeight: 1.0, TimeBudgetMinutes: 200, EfficiencyScore: 3.0},
			},
			want: parkTimeRequirement{MinDays: 2, PriorityScore: 4.0, Efficiency: 2.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := timeRequirement(tt.efficiencies)
			if got.MinDays != tt.want.MinDays {
				t.Errorf("MinDays = %d, want %d", got.MinDays, tt.want.MinDays)
			}
			if !almostEqual(got.PriorityScore, tt.want.PriorityScore) {
				t.Errorf("PriorityScore = %v, want %v", got.PriorityScore, tt.want.PriorityScore)
			}
			if !almostEqual(got.Efficiency, tt.want.Efficiency) {
				t.Errorf("Efficiency = %v, want %v", got.Efficiency, tt.want.Efficiency)
			}
		})
	}
}

func TestAllocateParkDays(t *testing.T) {
	t.Run("zero priority parks get nothing", func(t *testing.T) {
		requirements := map[string]parkTimeRequirement{
			"mk": {},
			"ep": {},
		}
		allocations := allocateParkDays(requirements, 3)
		for parkID, got := range allocations {
			if got.Days != 0 {
				t.Errorf("%s Days = %v, want 0", parkID, got.Days)
			}
			if got.Justification != "No significant interest detected" {
				t.Errorf("%s Justification = %q", parkID, got.Justification)
			}
		}
	})

	t.Run("extra day goes to the highest benefit park", func(t *testing.T) {
		requirements := map[string]parkTimeRequirement{
			"mk": {MinDays: 1, PriorityScore: 4.0, Efficiency: 1.5},
			"ep": {MinDays: 1, PriorityScore: 1.2, Efficiency: 1.3},
		}
		allocations := allocateParkDays(requirements, 3)

		if got := allocations["mk"].Days; got != 2 {
			t.Errorf("mk Days = %v, want 2", got)
		}
		if got := allocations["ep"].Days; got != 1 {
			t.Errorf("ep Days = %v, want 1", got)
		}

		var total float64
		for _, a := range allocations {
			total += a.Days
		}
		if total > 3 {
			t.Errorf("total allocated = %v, exceeds 3 available days", total)
		}
	})

	t.Run("more parks than days splits into half days", func(t *testing.T) {
		requirements := map[string]parkTimeRequirement{
			"mk": {MinDays: 1, PriorityScore: 3.0, Efficiency: 1.0},
			"ep": {MinDays: 1, PriorityScore: 2.0, Efficiency: 1.0},
			"ak": {MinDays: 1, PriorityScore: 1.0, Efficiency: 1.0},
		}
		allocations := allocateParkDays(requirements, 2)

		for parkID, got := range allocations {
			if got.Days != 0.5 {
				t.Errorf("%s Days = %v, want 0.5", parkID, got.Days)
			}
			if got.Justification != "Limited time - consider park hopper" {
				t.Errorf("%s Justification = %q", parkID, got.Justification)
			}
		}
	})

	t.Run("mixed interest", func(t *testing.T) {
		requirements := map[string]parkTimeRequirement{
			"mk": {MinDays: 2, PriorityScore: 5.0, Efficiency: 2.0},
			"ep": {},
		}
		allocations := allocateParkDays(requirements, 4)

		if got := allocations["ep"].Days; got != 0 {
			t.Errorf("ep Days = %v, want 0", got)
		}
		// The only interested park soaks up all available days.
		if got := allocations["mk"].Days; got != 4 {
			t.Errorf("mk Days = %v, want 4", got)
		}
	})

	t.Run("deterministic for identical inputs", func(t *testing.T) {
		requirements := map[string]parkTimeRequirement{
			"mk": {MinDays: 1, PriorityScore: 2.0, Efficiency: 1.0},
			"ep": {MinDays: 1, PriorityScore: 2.0, Efficiency: 1.0},
			"hs": {MinDays: 1, PriorityScore: 2.0, Efficiency: 1.0},
		}
		first := allocateParkDays(requirements, 5)
		for i := 0; i < 10; i++ {
			if got := allocateParkDays(requirements, 5); !reflect.DeepEqual(first, got) {
				t.Fatal("allocateParkDays is not deterministic for identical inputs")
			}
		}
	})
}

func TestRankParkOrder(t *testing.T) {
	summaries := []*ParkRatingSummary{
		{ParkID: "mk", RecommendedDays: 1, MustDoCount: 2},
		{ParkID: "ep", RecommendedDays: 2, MustDoCount: 1},
		{ParkID: "hs", RecommendedDays: 1, MustDoCount: 5},
		{ParkID: "ak", RecommendedDays: 0, MustDoCount: 9},
	}

	got := rankParkOrder(summaries)
	want := []string{"ep", "hs", "mk"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("rankParkOrder() = %v, want %v", got, want)
	}
}
