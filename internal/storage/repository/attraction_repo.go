// Package repository provides data access layers for Waylight trip data.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/waylightapp/waylight/internal/storage/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// AttractionRepository handles database operations for the static
// park/attraction catalog.
type AttractionRepository interface {
	// UpsertPark inserts or updates a park.
	UpsertPark(ctx context.Context, park *models.Park) error

	// Upsert inserts or updates an attraction.
	Upsert(ctx context.Context, attraction *models.Attraction) error

	// GetByID retrieves an attraction by its ID.
	GetByID(ctx context.Context, id string) (*models.Attraction, error)

	// ListByPark retrieves all attractions for a park, ordered by name.
	ListByPark(ctx context.Context, parkID string) ([]*models.Attraction, error)

	// ListAll retrieves every catalog attraction, ordered by park then name.
	ListAll(ctx context.Context) ([]*models.Attraction, error)

	// ListParks retrieves all parks, ordered by name.
	ListParks(ctx context.Context) ([]*models.Park, error)
}

// attractionRepository is the concrete implementation of
// AttractionRepository.
type attractionRepository struct {
	db *sql.DB
}

// NewAttractionRepository creates a new attraction repository.
func NewAttractionRepository(db *sql.DB) AttractionRepository {
	return &attractionRepository{db: db}
}

// UpsertPark inserts or updates a park.
func (r *attractionRepository) UpsertPark(ctx context.Context, park *models.Park) error {
	query := `
		INSERT INTO parks (id, name, resort, created_at, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			resort = excluded.resort,
			updated_at = CURRENT_TIMESTAMP
	`
	if _, err := r.db.ExecContext(ctx, query, park.ID, park.Name, park.Resort); err != nil {
		return fmt.Errorf("failed to upsert park: %w", err)
	}
	return nil
}

// Upsert inserts or updates an attraction.
func (r *attractionRepository) Upsert(ctx context.Context, attraction *models.Attraction) error {
	query := `
		INSERT INTO attractions (
			id, park_id, name, duration_minutes, intensity,
			height_requirement, multi_pass, single_pass, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			park_id = excluded.park_id,
			name = excluded.name,
			duration_minutes = excluded.duration_minutes,
			intensity = excluded.intensity,
			height_requirement = excluded.height_requirement,
			multi_pass = excluded.multi_pass,
			single_pass = excluded.single_pass,
			updated_at = CURRENT_TIMESTAMP
	`
	_, err := r.db.ExecContext(ctx, query,
		attraction.ID,
		attraction.ParkID,
		attraction.Name,
		attraction.DurationMinutes,
		attraction.Intensity,
		attraction.HeightRequirement,
		attraction.Features.MultiPass,
		attraction.Features.SinglePass,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert attraction: %w", err)
	}
	return nil
}

const attractionColumns = `
	id, park_id, name, duration_minutes, intensity,
	height_requirement, multi_pass, single_pass, created_at, updated_at
`

// scanAttraction scans one attraction row.
func scanAttraction(row interface{ Scan(...any) error }) (*models.Attraction, error) {
	var a models.Attraction
	err := row.Scan(
		&a.ID,
		&a.ParkID,
		&a.Name,
		&a.DurationMinutes,
		&a.Intensity,
		&a.HeightRequirement,
		&a.Features.MultiPass,
		&a.Features.SinglePass,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetByID retrieves an attraction by its ID.
func (r *attractionRepository) GetByID(ctx context.Context, id string) (*models.Attraction, error) {
	query := `SELECT ` + attractionColumns + ` FROM attractions WHERE id = ?`
	attraction, err := scanAttraction(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get attraction: %w", err)
	}
	return attraction, nil
}

// ListByPark retrieves all attractions for a park, ordered by name.
func (r *attractionRepository) ListByPark(ctx context.Context, parkID string) ([]*models.Attraction, error) {
	query := `SELECT ` + attractionColumns + ` FROM attractions WHERE park_id = ? ORDER BY name`
	return r.listAttractions(ctx, query, parkID)
}

// ListAll retrieves every catalog attraction, ordered by park then name.
func (r *attractionRepository) ListAll(ctx context.Context) ([]*models.Attraction, error) {
	query := `SELECT ` + attractionColumns + ` FROM attractions ORDER BY park_id, name`
	return r.listAttractions(ctx, query)
}

func (r *attractionRepository) listAttractions(ctx context.Context, query string, args ...any) ([]*models.Attraction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attractions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var attractions []*models.Attraction
	for rows.Next() {
		attraction, err := scanAttraction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attraction: %w", err)
		}
		attractions = append(attractions, attraction)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attractions: %w", err)
	}
	return attractions, nil
}

// ListParks retrieves all parks, ordered by name.
func (r *attractionRepository) ListParks(ctx context.Context) ([]*models.Park, error) {
	query := `SELECT id, name, resort, created_at, updated_at FROM parks ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query parks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var parks []*models.Park
	for rows.Next() {
		var p models.Park
		if err := rows.Scan(&p.ID, &p.Name, &p.Resort, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan park: %w", err)
		}
		parks = append(parks, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate parks: %w", err)
	}
	return parks, nil
}
