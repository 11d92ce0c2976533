package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/waylightapp/waylight/internal/api/response"
	"github.com/waylightapp/waylight/internal/storage/models"
	"github.com/waylightapp/waylight/internal/storage/repository"
)

// ParkHandler serves the static park/attraction catalog.
type ParkHandler struct {
	attractions repository.AttractionRepository
}

// NewParkHandler creates a new ParkHandler.
func NewParkHandler(attractions repository.AttractionRepository) *ParkHandler {
	return &ParkHandler{attractions: attractions}
}

// ListParks returns all parks.
func (h *ParkHandler) ListParks(w http.ResponseWriter, r *http.Request) {
	parks, err := h.attractions.ListParks(r.Context())
	if err != nil {
		response.InternalError(w, err)
		return
	}
	if parks == nil {
		parks = []*models.Park{}
	}
	response.Success(w, parks)
}

// ListAttractions returns one park's attractions.
func (h *ParkHandler) ListAttractions(w http.ResponseWriter, r *http.Request) {
	attractions, err := h.attractions.ListByPark(r.Context(), chi.URLParam(r, "parkID"))
	if err != nil {
		response.InternalError(w, err)
		return
	}
	if attractions == nil {
		attractions = []*models.Attraction{}
	}
	response.Success(w, attractions)
}

// GetAttraction returns one attraction.
func (h *ParkHandler) GetAttraction(w http.ResponseWriter, r *http.Request) {
	attraction, err := h.attractions.GetByID(r.Context(), chi.URLParam(r, "attractionID"))
	if err != nil {
		respondError(w, err)
		return
	}
	response.Success(w, attraction)
}
