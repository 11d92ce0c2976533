package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/waylightapp/waylight/internal/storage/models"
)

// PartyRepository handles database operations for traveling party
// members.
type PartyRepository interface {
	// Create inserts a new party member.
	Create(ctx context.Context, member *models.TravelingPartyMember) error

	// GetByID retrieves a member by ID.
	GetByID(ctx context.Context, id string) (*models.TravelingPartyMember, error)

	// ListByTrip retrieves all members of a trip, planners first.
	ListByTrip(ctx context.Context, tripID string) ([]*models.TravelingPartyMember, error)

	// Update updates a member's details.
	Update(ctx context.Context, member *models.TravelingPartyMember) error

	// Delete removes a member and, via cascade, their ratings.
	Delete(ctx context.Context, id string) error
}

// partyRepository is the concrete implementation of PartyRepository.
type partyRepository struct {
	db *sql.DB
}

// NewPartyRepository creates a new party repository.
func NewPartyRepository(db *sql.DB) PartyRepository {
	return &partyRepository{db: db}
}

// HeightInches parses a free-form height string into inches. Supported
// forms: `44"`, "44", "3'8\"", "112cm". Returns false when the string
// cannot be parsed.
func HeightInches(height string) (int, bool) {
	s := strings.TrimSpace(height)
	if s == "" {
		return 0, false
	}

	if strings.HasSuffix(strings.ToLower(s), "cm") {
		cm, err := strconv.ParseFloat(strings.TrimSpace(s[:len(s)-2]), 64)
		if err != nil {
			return 0, false
		}
		return int(math.Round(cm / 2.54)), true
	}

	if idx := strings.Index(s, "'"); idx >= 0 {
		feet, err := strconv.Atoi(strings.TrimSpace(s[:idx]))
		if err != nil {
			return 0, false
		}
		rest := strings.TrimSuffix(strings.TrimSpace(s[idx+1:]), `"`)
		inches := 0
		if rest != "" {
			inches, err = strconv.Atoi(rest)
			if err != nil {
				return 0, false
			}
		}
		return feet*12 + inches, true
	}

	s = strings.TrimSuffix(s, `"`)
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return n, true
}

// MeetsHeightRequirement reports whether a member clears an attraction's
// height requirement. Adults always pass; children with unparseable or
// missing heights are treated as not meeting the requirement.
func MeetsHeightRequirement(member *models.TravelingPartyMember, attraction *models.Attraction) bool {
	if attraction.HeightRequirement == nil {
		return true
	}
	if !member.IsChild() {
		return true
	}
	if member.Height == nil {
		return false
	}
	inches, ok := HeightInches(*member.Height)
	if !ok {
		return false
	}
	return inches >= *attraction.HeightRequirement
}

// Create inserts a new party member.
func (r *partyRepository) Create(ctx context.Context, member *models.TravelingPartyMember) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO party_members (id, trip_id, name, guest_type, age, height, is_planner) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		member.ID, member.TripID, member.Name, member.GuestType, member.Age, member.Height, member.IsPlanner,
	)
	if err != nil {
		return fmt.Errorf("failed to create party member: %w", err)
	}
	return nil
}

const memberColumns = `id, trip_id, name, guest_type, age, height, is_planner, created_at`

// GetByID retrieves a member by ID.
func (r *partyRepository) GetByID(ctx context.Context, id string) (*models.TravelingPartyMember, error) {
	var m models.TravelingPartyMember
	err := r.db.QueryRowContext(ctx,
		`SELECT `+memberColumns+` FROM party_members WHERE id = ?`, id,
	).Scan(&m.ID, &m.TripID, &m.Name, &m.GuestType, &m.Age, &m.Height, &m.IsPlanner, &m.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get party member: %w", err)
	}
	return &m, nil
}

// ListByTrip retrieves all members of a trip, planners first.
func (r *partyRepository) ListByTrip(ctx context.Context, tripID string) ([]*models.TravelingPartyMember, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+memberColumns+` FROM party_members WHERE trip_id = ? ORDER BY is_planner DESC, name`, tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query party members: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var members []*models.TravelingPartyMember
	for rows.Next() {
		var m models.TravelingPartyMember
		if err := rows.Scan(&m.ID, &m.TripID, &m.Name, &m.GuestType, &m.Age, &m.Height, &m.IsPlanner, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan party member: %w", err)
		}
		members = append(members, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate party members: %w", err)
	}
	return members, nil
}

// Update updates a member's details.
func (r *partyRepository) Update(ctx context.Context, member *models.TravelingPartyMember) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE party_members SET name = ?, guest_type = ?, age = ?, height = ?, is_planner = ? WHERE id = ?`,
		member.Name, member.GuestType, member.Age, member.Height, member.IsPlanner, member.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update party member: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a member.
func (r *partyRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM party_members WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete party member: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
