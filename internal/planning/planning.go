// Package planning implements the group-preference analytics engine:
// attraction efficiency scoring, park day allocation, consensus and
// conflict analysis, and trip recommendations.
//
// Everything in this package is pure computation over in-memory inputs.
// Callers supply the attraction catalog and the already-materialized
// rating data; nothing here performs I/O or holds mutable state, so every
// entry point is safe to call concurrently and recomputes from scratch.
package planning

import (
	"sort"

	"github.com/waylightapp/waylight/internal/storage/models"
)

// Catalog provides read access to the static attraction/park catalog.
// Implementations must return stable, ordered results.
type Catalog interface {
	// Parks returns all known parks.
	Parks() []*models.Park

	// Attractions returns all catalog attractions.
	Attractions() []*models.Attraction

	// AttractionsByPark returns the attractions belonging to one park.
	AttractionsByPark(parkID string) []*models.Attraction

	// Attraction looks up a single attraction by ID.
	Attraction(id string) (*models.Attraction, bool)
}

// StaticCatalog is an in-memory Catalog backed by slices. The storage
// layer materializes one per analytics run; tests build them directly.
type StaticCatalog struct {
	parks       []*models.Park
	attractions []*models.Attraction
	byPark      map[string][]*models.Attraction
	byID        map[string]*models.Attraction
}

// NewStaticCatalog builds a catalog snapshot from park and attraction
// slices. Input order is preserved.
func NewStaticCatalog(parks []*models.Park, attractions []*models.Attraction) *StaticCatalog {
	c := &StaticCatalog{
		parks:       parks,
		attractions: attractions,
		byPark:      make(map[string][]*models.Attraction),
		byID:        make(map[string]*models.Attraction, len(attractions)),
	}
	for _, a := range attractions {
		c.byPark[a.ParkID] = append(c.byPark[a.ParkID], a)
		c.byID[a.ID] = a
	}
	return c
}

// Parks returns all parks in the catalog.
func (c *StaticCatalog) Parks() []*models.Park { return c.parks }

// Attractions returns all attractions in the catalog.
func (c *StaticCatalog) Attractions() []*models.Attraction { return c.attractions }

// AttractionsByPark returns the attractions for one park.
func (c *StaticCatalog) AttractionsByPark(parkID string) []*models.Attraction {
	return c.byPark[parkID]
}

// Attraction looks up an attraction by ID.
func (c *StaticCatalog) Attraction(id string) (*models.Attraction, bool) {
	a, ok := c.byID[id]
	return a, ok
}

// DayTypeDetector classifies a trip day that carries no explicit day type.
// index is the day's position within the trip (0-based).
type DayTypeDetector func(trip *models.Trip, day *models.TripDay, index int) string

// DefaultDayTypeDetector treats the first trip day as arrival, the last
// as departure, and everything in between as a park day.
func DefaultDayTypeDetector(trip *models.Trip, day *models.TripDay, index int) string {
	switch {
	case index == 0:
		return models.DayTypeArrival
	case index == len(trip.Days)-1:
		return models.DayTypeDeparture
	default:
		return models.DayTypeParkDay
	}
}

// Analytics computes park summaries, conflicts, and recommendations for a
// trip. Dependencies are injected at construction; the engine itself is
// stateless.
type Analytics struct {
	catalog  Catalog
	detector DayTypeDetector
}

// Option configures an Analytics engine.
type Option func(*Analytics)

// WithDayTypeDetector overrides the day-type detector used for trip days
// without an explicit day type.
func WithDayTypeDetector(d DayTypeDetector) Option {
	return func(a *Analytics) { a.detector = d }
}

// New creates an Analytics engine over the given catalog.
func New(catalog Catalog, opts ...Option) *Analytics {
	a := &Analytics{
		catalog:  catalog,
		detector: DefaultDayTypeDetector,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// CalculateAvailableParkDays counts the trip days that can be spent in a
// park: days typed (explicitly or by inference) as park-day or
// park-hopper.
func (a *Analytics) CalculateAvailableParkDays(trip *models.Trip) int {
	if trip == nil {
		return 0
	}
	available := 0
	for i, day := range trip.Days {
		dayType := ""
		if day.DayType != nil {
			dayType = *day.DayType
		} else {
			dayType = a.detector(trip, day, i)
		}
		if dayType == models.DayTypeParkDay || dayType == models.DayTypeParkHopper {
			available++
		}
	}
	return available
}

// consensusRank orders consensus levels for sorting: higher is better.
func consensusRank(level string) int {
	switch level {
	case models.ConsensusHigh:
		return 4
	case models.ConsensusMedium:
		return 3
	case models.ConsensusLow:
		return 2
	case models.ConsensusConflict:
		return 1
	default:
		return 0
	}
}

// consensusWeight maps a consensus level to its contribution to the park
// consensus score. Conflict-level attractions contribute exactly zero.
func consensusWeight(level string) float64 {
	switch level {
	case models.ConsensusHigh:
		return 1.0
	case models.ConsensusMedium:
		return 0.7
	case models.ConsensusLow:
		return 0.4
	default:
		return 0.0
	}
}

// indexSummaries keys rating summaries by attraction ID.
func indexSummaries(summaries []*models.ActivityRatingSummary) map[string]*models.ActivityRatingSummary {
	byAttraction := make(map[string]*models.ActivityRatingSummary, len(summaries))
	for _, s := range summaries {
		byAttraction[s.AttractionID] = s
	}
	return byAttraction
}

// ratingsByAttraction groups raw ratings by attraction ID, preserving
// input order within each group.
func ratingsByAttraction(ratings []*models.ActivityRating) map[string][]*models.ActivityRating {
	grouped := make(map[string][]*models.ActivityRating)
	for _, r := range ratings {
		grouped[r.AttractionID] = append(grouped[r.AttractionID], r)
	}
	return grouped
}

// sortedParkIDs returns the park IDs of a map in deterministic order.
func sortedParkIDs[T any](m map[string]T) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
