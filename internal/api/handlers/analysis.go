// Package handlers implements the REST API request handlers.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/waylightapp/waylight/internal/api/response"
	"github.com/waylightapp/waylight/internal/lightninglane"
	"github.com/waylightapp/waylight/internal/planning"
	"github.com/waylightapp/waylight/internal/storage/models"
	"github.com/waylightapp/waylight/internal/storage/repository"
)

// AnalysisHandler serves the analytics endpoints.
type AnalysisHandler struct {
	attractions repository.AttractionRepository
	trips       repository.TripRepository
	party       repository.PartyRepository
	ratings     repository.RatingRepository
	tables      func() lightninglane.Tables
}

// NewAnalysisHandler creates a new AnalysisHandler. tables is consulted
// on every request so config hot-reloads take effect immediately.
func NewAnalysisHandler(
	attractions repository.AttractionRepository,
	trips repository.TripRepository,
	party repository.PartyRepository,
	ratings repository.RatingRepository,
	tables func() lightninglane.Tables,
) *AnalysisHandler {
	return &AnalysisHandler{
		attractions: attractions,
		trips:       trips,
		party:       party,
		ratings:     ratings,
		tables:      tables,
	}
}

// tripInputs is everything the analytics engine needs for one trip.
type tripInputs struct {
	trip      *models.Trip
	members   []*models.TravelingPartyMember
	ratings   []*models.ActivityRating
	summaries []*models.ActivityRatingSummary
	engine    *planning.Analytics
	catalog   *planning.StaticCatalog
}

// loadTripInputs materializes the trip, party, ratings, summaries, and
// catalog for one analytics request.
func (h *AnalysisHandler) loadTripInputs(ctx context.Context, tripID string) (*tripInputs, error) {
	trip, err := h.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	members, err := h.party.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	ratings, err := h.ratings.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	summaries, err := h.ratings.GetSummaries(ctx, tripID)
	if err != nil {
		return nil, err
	}
	catalog, err := repository.LoadCatalog(ctx, h.attractions)
	if err != nil {
		return nil, err
	}
	return &tripInputs{
		trip:      trip,
		members:   members,
		ratings:   ratings,
		summaries: summaries,
		engine:    planning.New(catalog),
		catalog:   catalog,
	}, nil
}

// respondError maps repository errors to HTTP responses.
func respondError(w http.ResponseWriter, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		response.NotFound(w, err)
		return
	}
	response.InternalError(w, err)
}

// GetParkSummaries returns the ranked per-park analytics summaries.
func (h *AnalysisHandler) GetParkSummaries(w http.ResponseWriter, r *http.Request) {
	in, err := h.loadTripInputs(r.Context(), chi.URLParam(r, "tripID"))
	if err != nil {
		respondError(w, err)
		return
	}
	summaries := in.engine.GenerateParkSummaries(in.ratings, in.summaries, in.members, in.trip)
	if summaries == nil {
		summaries = []*planning.ParkRatingSummary{}
	}
	response.Success(w, summaries)
}

// GetConflicts returns detected rating/height/intensity conflicts.
func (h *AnalysisHandler) GetConflicts(w http.ResponseWriter, r *http.Request) {
	in, err := h.loadTripInputs(r.Context(), chi.URLParam(r, "tripID"))
	if err != nil {
		respondError(w, err)
		return
	}
	conflicts := in.engine.IdentifyConflicts(in.ratings, in.summaries, in.members)
	if conflicts == nil {
		conflicts = []*planning.ConflictAnalysis{}
	}
	response.Success(w, conflicts)
}

// GetRecommendations returns the actionable trip plan.
func (h *AnalysisHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	in, err := h.loadTripInputs(r.Context(), chi.URLParam(r, "tripID"))
	if err != nil {
		respondError(w, err)
		return
	}
	summaries := in.engine.GenerateParkSummaries(in.ratings, in.summaries, in.members, in.trip)
	conflicts := in.engine.IdentifyConflicts(in.ratings, in.summaries, in.members)
	efficiencies := in.engine.GenerateAttractionEfficiencies(in.ratings, in.summaries, in.members)
	recommendations := in.engine.GenerateRecommendations(summaries, conflicts, in.trip, efficiencies)
	response.Success(w, recommendations)
}

// GetParkDays returns the trip's available park-day count.
func (h *AnalysisHandler) GetParkDays(w http.ResponseWriter, r *http.Request) {
	in, err := h.loadTripInputs(r.Context(), chi.URLParam(r, "tripID"))
	if err != nil {
		respondError(w, err)
		return
	}
	response.Success(w, map[string]int{"available_park_days": in.engine.CalculateAvailableParkDays(in.trip)})
}

// GetEfficiencies returns the per-park attraction efficiency scores.
func (h *AnalysisHandler) GetEfficiencies(w http.ResponseWriter, r *http.Request) {
	in, err := h.loadTripInputs(r.Context(), chi.URLParam(r, "tripID"))
	if err != nil {
		respondError(w, err)
		return
	}
	response.Success(w, in.engine.GenerateAttractionEfficiencies(in.ratings, in.summaries, in.members))
}

// GetLightningLaneStrategy returns the paid-queue strategy for one trip
// day.
func (h *AnalysisHandler) GetLightningLaneStrategy(w http.ResponseWriter, r *http.Request) {
	tripID := chi.URLParam(r, "tripID")
	dayID := chi.URLParam(r, "dayID")

	in, err := h.loadTripInputs(r.Context(), tripID)
	if err != nil {
		respondError(w, err)
		return
	}

	var day *models.TripDay
	for _, d := range in.trip.Days {
		if d.ID == dayID {
			day = d
			break
		}
	}
	if day == nil {
		response.NotFound(w, errors.New("trip day not found"))
		return
	}

	service := lightninglane.NewService(in.catalog, h.tables())
	strategy := service.GenerateStrategy(day, in.summaries, len(in.members))
	response.Success(w, strategy)
}
