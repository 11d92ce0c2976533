package planning

import (
	"testing"
	"time"

	"github.com/waylightapp/waylight/internal/storage/models"
)

func strPtr(s string) *string { return &s }

// fiveDayTrip builds a trip with five consecutive days and no explicit
// day types.
func fiveDayTrip() *models.Trip {
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	trip := &models.Trip{
		ID:        "trip-1",
		Name:      "Summer Trip",
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 4),
	}
	for i := 0; i < 5; i++ {
		trip.Days = append(trip.Days, &models.TripDay{
			ID:     "day-" + string(rune('a'+i)),
			TripID: trip.ID,
			Date:   start.AddDate(0, 0, i),
		})
	}
	return trip
}

func TestDefaultDayTypeDetector(t *testing.T) {
	trip := fiveDayTrip()

	tests := []struct {
		name  string
		index int
		want  string
	}{
		{name: "first day is arrival", index: 0, want: models.DayTypeArrival},
		{name: "middle day is park day", index: 2, want: models.DayTypeParkDay},
		{name: "last day is departure", index: 4, want: models.DayTypeDeparture},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DefaultDayTypeDetector(trip, trip.Days[tt.index], tt.index)
			if got != tt.want {
				t.Errorf("DefaultDayTypeDetector() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCalculateAvailableParkDays(t *testing.T) {
	engine := New(NewStaticCatalog(nil, nil))

	t.Run("nil trip", func(t *testing.T) {
		if got := engine.CalculateAvailableParkDays(nil); got != 0 {
			t.Errorf("CalculateAvailableParkDays(nil) = %d, want 0", got)
		}
	})

	t.Run("inferred day types", func(t *testing.T) {
		// Five days, first and last inferred as arrival/departure.
		trip := fiveDayTrip()
		if got := engine.CalculateAvailableParkDays(trip); got != 3 {
			t.Errorf("CalculateAvailableParkDays() = %d, want 3", got)
		}
	})

	t.Run("explicit day types override inference", func(t *testing.T) {
		trip := fiveDayTrip()
		trip.Days[0].DayType = strPtr(models.DayTypeParkDay)
		trip.Days[2].DayType = strPtr(models.DayTypeRestDay)
		trip.Days[3].DayType = strPtr(models.DayTypeParkHopper)
		// day 0 park-day, day 1 inferred park-day, day 2 rest,
		// day 3 park-hopper, day 4 inferred departure.
		if got := engine.CalculateAvailableParkDays(trip); got != 3 {
			t.Errorf("CalculateAvailableParkDays() = %d, want 3", got)
		}
	})

	t.Run("custom detector", func(t *testing.T) {
		everyDayParades := func(trip *models.Trip, day *models.TripDay, index int) string {
			return models.DayTypeParkDay
		}
		custom := New(NewStaticCatalog(nil, nil), WithDayTypeDetector(everyDayParades))
		trip := fiveDayTrip()
		if got := custom.CalculateAvailableParkDays(trip); got != 5 {
			t.Errorf("CalculateAvailableParkDays() = %d, want 5", got)
		}
	})
}

func TestStaticCatalog(t *testing.T) {
	parks := []*models.Park{
		{ID: "mk", Name: "Magic Kingdom"},
		{ID: "ep", Name: "EPCOT"},
	}
	attractions := []*models.Attraction{
		{ID: "space-mountain", ParkID: "mk", Name: "Space Mountain"},
		{ID: "haunted-mansion", ParkID: "mk", Name: "Haunted Mansion"},
		{ID: "spaceship-earth", ParkID: "ep", Name: "Spaceship Earth"},
	}
	catalog := NewStaticCatalog(parks, attractions)

	if got := len(catalog.Parks()); got != 2 {
		t.Errorf("Parks() len = %d, want 2", got)
	}
	if got := len(catalog.Attractions()); got != 3 {
		t.Errorf("Attractions() len = %d, want 3", got)
	}
	if got := len(catalog.AttractionsByPark("mk")); got != 2 {
		t.Errorf("AttractionsByPark(mk) len = %d, want 2", got)
	}

	a, ok := catalog.Attraction("spaceship-earth")
	if !ok {
		t.Fatal("Attraction(spaceship-earth) not found")
	}
	if a.ParkID != "ep" {
		t.Errorf("Attraction(spaceship-earth).ParkID = %v, want ep", a.ParkID)
	}
	if _, ok := catalog.Attraction("missing"); ok {
		t.Error("Attraction(missing) found, want not found")
	}
}

func TestConsensusWeight(t *testing.T) {
	tests := []struct {
		level string
		want  float64
	}{
		{models.ConsensusHigh, 1.0},
		{models.ConsensusMedium, 0.7},
		{models.ConsensusLow, 0.4},
		{models.ConsensusConflict, 0.0},
		{"", 0.0},
	}
	for _, tt := range tests {
		if got := consensusWeight(tt.level); got != tt.want {
			t.Errorf("consensusWeight(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}
}
