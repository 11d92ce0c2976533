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

// PartyHandler handles traveling-party-member requests.
type PartyHandler struct {
	party repository.PartyRepository
}

// NewPartyHandler creates a new PartyHandler.
func NewPartyHandler(party repository.PartyRepository) *PartyHandler {
	return &PartyHandler{party: party}
}

// MemberRequest is the JSON request body for creating or updating a
// party member.
type MemberRequest struct {
	Name      string  `json:"name"`
	GuestType string  `json:"guest_type"`
	Age       *int    `json:"age,omitempty"`
	Height    *string `json:"height,omitempty"`
	IsPlanner bool    `json:"is_planner"`
}

func (req *MemberRequest) validate() error {
	if req.Name == "" {
		return errors.New("name is required")
	}
	switch req.GuestType {
	case models.GuestTypeAdult, models.GuestTypeChild, models.GuestTypeInfant:
		return nil
	default:
		return errors.New("unknown guest_type")
	}
}

// CreateMember adds a member to a trip's party.
func (h *PartyHandler) CreateMember(w http.ResponseWriter, r *http.Request) {
	var req MemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}
	if err := req.validate(); err != nil {
		response.BadRequest(w, err)
		return
	}
	member := &models.TravelingPartyMember{
		ID:        uuid.NewString(),
		TripID:    chi.URLParam(r, "tripID"),
		Name:      req.Name,
		GuestType: req.GuestType,
		Age:       req.Age,
		Height:    req.Height,
		IsPlanner: req.IsPlanner,
	}
	if err := h.party.Create(r.Context(), member); err != nil {
		response.InternalError(w, err)
		return
	}
	response.Created(w, member)
}

// ListMembers returns a trip's party members.
func (h *PartyHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.party.ListByTrip(r.Context(), chi.URLParam(r, "tripID"))
	if err != nil {
		response.InternalError(w, err)
		return
	}
	if members == nil {
		members = []*models.TravelingPartyMember{}
	}
	response.Success(w, members)
}

// UpdateMember updates a member's details.
func (h *PartyHandler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	var req MemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}
	if err := req.validate(); err != nil {
		response.BadRequest(w, err)
		return
	}
	member := &models.TravelingPartyMember{
		ID:        chi.URLParam(r, "memberID"),
		Name:      req.Name,
		GuestType: req.GuestType,
		Age:       req.Age,
		Height:    req.Height,
		IsPlanner: req.IsPlanner,
	}
	if err := h.party.Update(r.Context(), member); err != nil {
		respondError(w, err)
		return
	}
	response.Success(w, member)
}

// DeleteMember removes a member and their ratings.
func (h *PartyHandler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	if err := h.party.Delete(r.Context(), chi.URLParam(r, "memberID")); err != nil {
		respondError(w, err)
		return
	}
	response.NoContent(w)
}
