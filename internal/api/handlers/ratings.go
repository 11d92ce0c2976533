package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/waylightapp/waylight/internal/api/response"
	"github.com/waylightapp/waylight/internal/storage/models"
	"github.com/waylightapp/waylight/internal/storage/repository"
)

// RatingHandler handles activity-rating requests.
type RatingHandler struct {
	ratings     repository.RatingRepository
	party       repository.PartyRepository
	attractions repository.AttractionRepository
}

// NewRatingHandler creates a new RatingHandler.
func NewRatingHandler(ratings repository.RatingRepository, party repository.PartyRepository, attractions repository.AttractionRepository) *RatingHandler {
	return &RatingHandler{ratings: ratings, party: party, attractions: attractions}
}

// RatingRequest is the JSON request body for rating an attraction.
type RatingRequest struct {
	PartyMemberID        string `json:"party_member_id"`
	AttractionID         string `json:"attraction_id"`
	ActivityType         string `json:"activity_type"`
	Preference           string `json:"preference"`
	IntensityComfortable *bool  `json:"intensity_comfortable,omitempty"`
}

// RateAttraction records one member's rating of an attraction. The
// numeric rating and the height check are derived here, at the ingestion
// boundary.
func (h *RatingHandler) RateAttraction(w http.ResponseWriter, r *http.Request) {
	var req RatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}
	if req.PartyMemberID == "" || req.AttractionID == "" {
		response.BadRequest(w, errors.New("party_member_id and attraction_id are required"))
		return
	}
	switch req.Preference {
	case models.PreferenceMustDo, models.PreferenceWantToDo, models.PreferenceNeutral,
		models.PreferenceSkip, models.PreferenceAvoid:
	default:
		response.BadRequest(w, errors.New("unknown preference"))
		return
	}
	activityType := req.ActivityType
	if activityType == "" {
		activityType = "do"
	}

	member, err := h.party.GetByID(r.Context(), req.PartyMemberID)
	if err != nil {
		respondError(w, err)
		return
	}
	attraction, err := h.attractions.GetByID(r.Context(), req.AttractionID)
	if err != nil {
		respondError(w, err)
		return
	}

	rating := &models.ActivityRating{
		ID:                   uuid.NewString(),
		TripID:               chi.URLParam(r, "tripID"),
		PartyMemberID:        req.PartyMemberID,
		AttractionID:         req.AttractionID,
		ActivityType:         activityType,
		Preference:           req.Preference,
		IntensityComfortable: req.IntensityComfortable == nil || *req.IntensityComfortable,
	}
	repository.PrepareRating(rating, member, attraction)

	if err := h.ratings.Upsert(r.Context(), rating); err != nil {
		response.InternalError(w, err)
		return
	}
	response.Created(w, rating)
}

// ListRatings returns all ratings for a trip.
func (h *RatingHandler) ListRatings(w http.ResponseWriter, r *http.Request) {
	ratings, err := h.ratings.ListByTrip(r.Context(), chi.URLParam(r, "tripID"))
	if err != nil {
		response.InternalError(w, err)
		return
	}
	if ratings == nil {
		ratings = []*models.ActivityRating{}
	}
	response.Success(w, ratings)
}

// GetSummaries returns the per-attraction rating summaries for a trip.
func (h *RatingHandler) GetSummaries(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.ratings.GetSummaries(r.Context(), chi.URLParam(r, "tripID"))
	if err != nil {
		response.InternalError(w, err)
		return
	}
	if summaries == nil {
		summaries = []*models.ActivityRatingSummary{}
	}
	response.Success(w, summaries)
}

// DeleteRating removes one member's rating of an attraction.
func (h *RatingHandler) DeleteRating(w http.ResponseWriter, r *http.Request) {
	err := h.ratings.Delete(r.Context(),
		chi.URLParam(r, "tripID"),
		chi.URLParam(r, "memberID"),
		chi.URLParam(r, "attractionID"),
	)
	if err != nil {
		respondError(w, err)
		return
	}
	response.NoContent(w)
}
