package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/waylightapp/waylight/internal/api/response"
	"github.com/waylightapp/waylight/internal/storage/models"
	"github.com/waylightapp/waylight/internal/storage/repository"
)

// TripHandler handles trip CRUD requests.
type TripHandler struct {
	trips repository.TripRepository
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(trips repository.TripRepository) *TripHandler {
	return &TripHandler{trips: trips}
}

// TripRequest is the JSON request body for creating or updating a trip.
type TripRequest struct {
	Name      string `json:"name"`
	StartDate string `json:"start_date"` // "2006-01-02"
	EndDate   string `json:"end_date"`
}

// toTrip converts the request to a trip with one day per calendar date.
func (req *TripRequest) toTrip() (*models.Trip, error) {
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, errors.New("invalid start_date (expected YYYY-MM-DD)")
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, errors.New("invalid end_date (expected YYYY-MM-DD)")
	}
	if end.Before(start) {
		return nil, errors.New("end_date before start_date")
	}
	if req.Name == "" {
		return nil, errors.New("name is required")
	}

	trip := &models.Trip{
		ID:        uuid.NewString(),
		Name:      req.Name,
		StartDate: start,
		EndDate:   end,
	}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		trip.Days = append(trip.Days, &models.TripDay{
			ID:     uuid.NewString(),
			TripID: trip.ID,
			Date:   d,
		})
	}
	return trip, nil
}

// CreateTrip creates a trip with one day per calendar date.
func (h *TripHandler) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var req TripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}
	trip, err := req.toTrip()
	if err != nil {
		response.BadRequest(w, err)
		return
	}
	if err := h.trips.Create(r.Context(), trip); err != nil {
		response.InternalError(w, err)
		return
	}
	response.Created(w, trip)
}

// GetTrip returns one trip with its days and itinerary.
func (h *TripHandler) GetTrip(w http.ResponseWriter, r *http.Request) {
	trip, err := h.trips.GetByID(r.Context(), chi.URLParam(r, "tripID"))
	if err != nil {
		respondError(w, err)
		return
	}
	response.Success(w, trip)
}

// ListTrips returns all trips.
func (h *TripHandler) ListTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := h.trips.List(r.Context())
	if err != nil {
		response.InternalError(w, err)
		return
	}
	if trips == nil {
		trips = []*models.Trip{}
	}
	response.Success(w, trips)
}

// DeleteTrip removes a trip.
func (h *TripHandler) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	if err := h.trips.Delete(r.Context(), chi.URLParam(r, "tripID")); err != nil {
		respondError(w, err)
		return
	}
	response.NoContent(w)
}

// DayTypeRequest is the JSON request body for setting a day's type.
type DayTypeRequest struct {
	DayType *string `json:"day_type"` // null clears the explicit type
}

// SetDayType sets or clears a day's explicit day type.
func (h *TripHandler) SetDayType(w http.ResponseWriter, r *http.Request) {
	var req DayTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}
	if req.DayType != nil {
		switch *req.DayType {
		case models.DayTypeParkDay, models.DayTypeParkHopper, models.DayTypeRestDay,
			models.DayTypeArrival, models.DayTypeDeparture:
		default:
			response.BadRequest(w, errors.New("unknown day_type"))
			return
		}
	}
	if err := h.trips.SetDayType(r.Context(), chi.URLParam(r, "dayID"), req.DayType); err != nil {
		respondError(w, err)
		return
	}
	response.NoContent(w)
}

// ItineraryItemRequest is the JSON request body for adding an itinerary
// item.
type ItineraryItemRequest struct {
	AttractionID string  `json:"attraction_id"`
	Name         string  `json:"name"`
	StartTime    *string `json:"start_time,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

// AddItineraryItem adds a planned activity to a trip day.
func (h *TripHandler) AddItineraryItem(w http.ResponseWriter, r *http.Request) {
	var req ItineraryItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}
	if req.AttractionID == "" || req.Name == "" {
		response.BadRequest(w, errors.New("attraction_id and name are required"))
		return
	}
	item := &models.ItineraryItem{
		ID:           uuid.NewString(),
		TripDayID:    chi.URLParam(r, "dayID"),
		AttractionID: req.AttractionID,
		Name:         req.Name,
		StartTime:    req.StartTime,
		Notes:        req.Notes,
	}
	if err := h.trips.AddItineraryItem(r.Context(), item); err != nil {
		response.InternalError(w, err)
		return
	}
	response.Created(w, item)
}

// RemoveItineraryItem removes a planned activity.
func (h *TripHandler) RemoveItineraryItem(w http.ResponseWriter, r *http.Request) {
	if err := h.trips.RemoveItineraryItem(r.Context(), chi.URLParam(r, "itemID")); err != nil {
		respondError(w, err)
		return
	}
	response.NoContent(w)
}
