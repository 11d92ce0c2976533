package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/waylightapp/waylight/internal/storage/models"
)

// TripRepository handles database operations for trips and their days.
type TripRepository interface {
	// Create inserts a new trip with its days.
	Create(ctx context.Context, trip *models.Trip) error

	// GetByID retrieves a trip with its days and itinerary items.
	GetByID(ctx context.Context, id string) (*models.Trip, error)

	// List retrieves all trips (without days), newest first.
	List(ctx context.Context) ([]*models.Trip, error)

	// Update updates a trip's name and dates.
	Update(ctx context.Context, trip *models.Trip) error

	// Delete removes a trip and, via cascade, its days, items, members,
	// and ratings.
	Delete(ctx context.Context, id string) error

	// SetDayType sets or clears a day's explicit day type.
	SetDayType(ctx context.Context, dayID string, dayType *string) error

	// AddItineraryItem adds a planned activity to a trip day.
	AddItineraryItem(ctx context.Context, item *models.ItineraryItem) error

	// RemoveItineraryItem removes a planned activity.
	RemoveItineraryItem(ctx context.Context, itemID string) error
}

// tripRepository is the concrete implementation of TripRepository.
type tripRepository struct {
	db *sql.DB
}

// NewTripRepository creates a new trip repository.
func NewTripRepository(db *sql.DB) TripRepository {
	return &tripRepository{db: db}
}

// Create inserts a new trip with its days.
func (r *tripRepository) Create(ctx context.Context, trip *models.Trip) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO trips (id, name, start_date, end_date) VALUES (?, ?, ?, ?)`,
		trip.ID, trip.Name, trip.StartDate, trip.EndDate,
	)
	if err != nil {
		return fmt.Errorf("failed to create trip: %w", err)
	}

	for _, day := range trip.Days {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO trip_days (id, trip_id, date, day_type, park_id) VALUES (?, ?, ?, ?, ?)`,
			day.ID, trip.ID, day.Date, day.DayType, day.ParkID,
		)
		if err != nil {
			return fmt.Errorf("failed to create trip day: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit trip: %w", err)
	}
	return nil
}

// GetByID retrieves a trip with its days and itinerary items.
func (r *tripRepository) GetByID(ctx context.Context, id string) (*models.Trip, error) {
	var trip models.Trip
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, start_date, end_date, created_at, updated_at FROM trips WHERE id = ?`, id,
	).Scan(&trip.ID, &trip.Name, &trip.StartDate, &trip.EndDate, &trip.CreatedAt, &trip.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, trip_id, date, day_type, park_id FROM trip_days WHERE trip_id = ? ORDER BY date`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query trip days: %w", err)
	}
	defer func() { _ = rows.Close() }()

	dayIndex := make(map[string]*models.TripDay)
	for rows.Next() {
		var day models.TripDay
		if err := rows.Scan(&day.ID, &day.TripID, &day.Date, &day.DayType, &day.ParkID); err != nil {
			return nil, fmt.Errorf("failed to scan trip day: %w", err)
		}
		trip.Days = append(trip.Days, &day)
		dayIndex[day.ID] = &day
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trip days: %w", err)
	}

	itemRows, err := r.db.QueryContext(ctx, `
		SELECT i.id, i.trip_day_id, i.attraction_id, i.name, i.start_time, i.notes
		FROM itinerary_items i
		JOIN trip_days d ON d.id = i.trip_day_id
		WHERE d.trip_id = ?
		ORDER BY i.start_time, i.id
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query itinerary items: %w", err)
	}
	defer func() { _ = itemRows.Close() }()

	for itemRows.Next() {
		var item models.ItineraryItem
		if err := itemRows.Scan(&item.ID, &item.TripDayID, &item.AttractionID, &item.Name, &item.StartTime, &item.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan itinerary item: %w", err)
		}
		if day, ok := dayIndex[item.TripDayID]; ok {
			day.Items = append(day.Items, &item)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate itinerary items: %w", err)
	}

	return &trip, nil
}

// List retrieves all trips (without days), newest first.
func (r *tripRepository) List(ctx context.Context) ([]*models.Trip, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, start_date, end_date, created_at, updated_at FROM trips ORDER BY start_date DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query trips: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var trips []*models.Trip
	for rows.Next() {
		var trip models.Trip
		if err := rows.Scan(&trip.ID, &trip.Name, &trip.StartDate, &trip.EndDate, &trip.CreatedAt, &trip.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan trip: %w", err)
		}
		trips = append(trips, &trip)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trips: %w", err)
	}
	return trips, nil
}

// Update updates a trip's name and dates.
func (r *tripRepository) Update(ctx context.Context, trip *models.Trip) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE trips SET name = ?, start_date = ?, end_date = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		trip.Name, trip.StartDate, trip.EndDate, trip.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update trip: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a trip.
func (r *tripRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM trips WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetDayType sets or clears a day's explicit day type.
func (r *tripRepository) SetDayType(ctx context.Context, dayID string, dayType *string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE trip_days SET day_type = ? WHERE id = ?`, dayType, dayID)
	if err != nil {
		return fmt.Errorf("failed to set day type: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// AddItineraryItem adds a planned activity to a trip day.
func (r *tripRepository) AddItineraryItem(ctx context.Context, item *models.ItineraryItem) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO itinerary_items (id, trip_day_id, attraction_id, name, start_time, notes) VALUES (?, ?, ?, ?, ?, ?)`,
		item.ID, item.TripDayID, item.AttractionID, item.Name, item.StartTime, item.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to add itinerary item: %w", err)
	}
	return nil
}

// RemoveItineraryItem removes a planned activity.
func (r *tripRepository) RemoveItineraryItem(ctx context.Context, itemID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM itinerary_items WHERE id = ?`, itemID)
	if err != nil {
		return fmt.Errorf("failed to remove itinerary item: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
