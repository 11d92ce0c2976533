// Package models defines the persistent data types shared by the storage
// and analytics layers.
package models

import "time"

// Intensity levels for attractions.
const (
	IntensityLow      = "low"
	IntensityModerate = "moderate"
	IntensityHigh     = "high"
	IntensityExtreme  = "extreme"
)

// Consensus levels for a rating summary.
const (
	ConsensusHigh     = "high"
	ConsensusMedium   = "medium"
	ConsensusLow      = "low"
	ConsensusConflict = "conflict"
)

// Preference values a party member can assign to an activity.
const (
	PreferenceMustDo   = "must_do"    // rating 5
	PreferenceWantToDo = "want_to_do" // rating 4
	PreferenceNeutral  = "neutral"    // rating 3
	PreferenceSkip     = "skip"       // rating 2
	PreferenceAvoid    = "avoid"      // rating 1
)

// RatingForPreference maps a preference value to its 1-5 numeric rating.
// Unknown preferences map to neutral.
func RatingForPreference(pref string) int {
	switch pref {
	case PreferenceMustDo:
		return 5
	case PreferenceWantToDo:
		return 4
	case PreferenceNeutral:
		return 3
	case PreferenceSkip:
		return 2
	case PreferenceAvoid:
		return 1
	default:
		return 3
	}
}

// Park represents a theme park.
type Park struct {
	ID        string
	Name      string
	Resort    string // e.g. "wdw", "universal-orlando"
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AttractionFeatures holds the queue-product eligibility flags for an
// attraction.
type AttractionFeatures struct {
	MultiPass  bool // eligible for the multi-attraction paid pass
	SinglePass bool // eligible for the premium single-attraction pass
}

// Attraction represents one ride/show in the static catalog.
// Catalog rows are immutable for the lifetime of an analytics run.
type Attraction struct {
	ID                string
	ParkID            string
	Name              string
	DurationMinutes   int
	Intensity         string // low, moderate, high, extreme
	HeightRequirement *int   // Nullable: minimum rider height in inches
	Features          AttractionFeatures
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// LightningLaneEligible reports whether the attraction participates in
// either paid queue product.
func (a *Attraction) LightningLaneEligible() bool {
	return a.Features.MultiPass || a.Features.SinglePass
}

// Trip represents a planned visit with a date range and per-day itinerary.
type Trip struct {
	ID        string
	Name      string
	StartDate time.Time
	EndDate   time.Time
	Days      []*TripDay
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Day types recognized on a trip day.
const (
	DayTypeParkDay    = "park-day"
	DayTypeParkHopper = "park-hopper"
	DayTypeRestDay    = "rest-day"
	DayTypeArrival    = "arrival-day"
	DayTypeDeparture  = "departure-day"
)

// TripDay represents one calendar day of a trip.
type TripDay struct {
	ID      string
	TripID  string
	Date    time.Time
	DayType *string // Nullable: inferred when absent
	ParkID  *string // Nullable: park planned for this day
	Items   []*ItineraryItem
}

// ItineraryItem is one planned activity on a trip day.
type ItineraryItem struct {
	ID           string
	TripDayID    string
	AttractionID string
	Name         string
	StartTime    *string // Nullable: "HH:MM"
	Notes        *string // Nullable
}

// Guest types for traveling party members.
const (
	GuestTypeAdult  = "adult"
	GuestTypeChild  = "child"
	GuestTypeInfant = "infant"
)

// TravelingPartyMember is one person on the trip.
type TravelingPartyMember struct {
	ID        string
	TripID    string
	Name      string
	GuestType string  // adult, child, infant
	Age       *int    // Nullable
	Height    *string // Nullable: free-form, e.g. `44"` or "112cm"
	IsPlanner bool
	CreatedAt time.Time
}

// IsChild reports whether height restrictions apply to this member.
// Height comparison only applies to members classified as children.
func (m *TravelingPartyMember) IsChild() bool {
	if m.GuestType == GuestTypeChild || m.GuestType == GuestTypeInfant {
		return true
	}
	return m.Age != nil && *m.Age < 10
}

// ActivityRating is one party member's opinion of one attraction within
// one trip.
type ActivityRating struct {
	ID                   string
	TripID               string
	PartyMemberID        string
	AttractionID         string
	ActivityType         string // "do" or "eat"
	Rating               int    // 1-5, derived from the preference enum
	Preference           string // must_do, want_to_do, neutral, skip, avoid
	HeightRestrictionOk  bool   // auto-computed for child members
	IntensityComfortable bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// ActivityRatingSummary is the pre-aggregated view over all ratings for
// one attraction within a trip. Regenerated whenever ratings change.
type ActivityRatingSummary struct {
	TripID                 string
	AttractionID           string
	TotalRatings           int
	AverageRating          float64
	MustDoCount            int
	AvoidCount             int
	HeightRestrictedCount  int
	IntensityConcernsCount int
	ConsensusLevel         string // high, medium, low, conflict
}
