package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/waylightapp/waylight/internal/storage/models"
)

// RatingRepository handles database operations for activity ratings and
// their pre-aggregated summaries.
type RatingRepository interface {
	// Upsert inserts or replaces one member's rating of an attraction.
	Upsert(ctx context.Context, rating *models.ActivityRating) error

	// ListByTrip retrieves all ratings for a trip.
	ListByTrip(ctx context.Context, tripID string) ([]*models.ActivityRating, error)

	// ListByAttraction retrieves a trip's ratings for one attraction.
	ListByAttraction(ctx context.Context, tripID, attractionID string) ([]*models.ActivityRating, error)

	// GetSummaries computes the per-attraction rating summaries for a
	// trip, including the derived consensus level.
	GetSummaries(ctx context.Context, tripID string) ([]*models.ActivityRatingSummary, error)

	// Delete removes one member's rating of an attraction.
	Delete(ctx context.Context, tripID, memberID, attractionID string) error
}

// ratingRepository is the concrete implementation of RatingRepository.
type ratingRepository struct {
	db *sql.DB
}

// NewRatingRepository creates a new rating repository.
func NewRatingRepository(db *sql.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// PrepareRating fills the derived fields of a rating at the ingestion
// boundary: the numeric rating from the preference enum, and the height
// check for child members against the attraction's requirement.
func PrepareRating(rating *models.ActivityRating, member *models.TravelingPartyMember, attraction *models.Attraction) {
	rating.Rating = models.RatingForPreference(rating.Preference)
	rating.HeightRestrictionOk = MeetsHeightRequirement(member, attraction)
}

// Upsert inserts or replaces one member's rating of an attraction.
func (r *ratingRepository) Upsert(ctx context.Context, rating *models.ActivityRating) error {
	query := `
		INSERT INTO activity_ratings (
			id, trip_id, party_member_id, attraction_id, activity_type,
			rating, preference, height_restriction_ok, intensity_comfortable,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT(trip_id, party_member_id, attraction_id) DO UPDATE SET
			activity_type = excluded.activity_type,
			rating = excluded.rating,
			preference = excluded.preference,
			height_restriction_ok = excluded.height_restriction_ok,
			intensity_comfortable = excluded.intensity_comfortable,
			updated_at = CURRENT_TIMESTAMP
	`
	_, err := r.db.ExecContext(ctx, query,
		rating.ID,
		rating.TripID,
		rating.PartyMemberID,
		rating.AttractionID,
		rating.ActivityType,
		rating.Rating,
		rating.Preference,
		rating.HeightRestrictionOk,
		rating.IntensityComfortable,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert rating: %w", err)
	}
	return nil
}

const ratingColumns = `
	id, trip_id, party_member_id, attraction_id, activity_type,
	rating, preference, height_restriction_ok, intensity_comfortable,
	created_at, updated_at
`

// ListByTrip retrieves all ratings for a trip.
func (r *ratingRepository) ListByTrip(ctx context.Context, tripID string) ([]*models.ActivityRating, error) {
	query := `SELECT ` + ratingColumns + ` FROM activity_ratings WHERE trip_id = ? ORDER BY attraction_id, party_member_id`
	return r.listRatings(ctx, query, tripID)
}

// ListByAttraction retrieves a trip's ratings for one attraction.
func (r *ratingRepository) ListByAttraction(ctx context.Context, tripID, attractionID string) ([]*models.ActivityRating, error) {
	query := `SELECT ` + ratingColumns + ` FROM activity_ratings WHERE trip_id = ? AND attraction_id = ? ORDER BY party_member_id`
	return r.listRatings(ctx, query, tripID, attractionID)
}

func (r *ratingRepository) listRatings(ctx context.Context, query string, args ...any) ([]*models.ActivityRating, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ratings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ratings []*models.ActivityRating
	for rows.Next() {
		var rating models.ActivityRating
		err := rows.Scan(
			&rating.ID,
			&rating.TripID,
			&rating.PartyMemberID,
			&rating.AttractionID,
			&rating.ActivityType,
			&rating.Rating,
			&rating.Preference,
			&rating.HeightRestrictionOk,
			&rating.IntensityComfortable,
			&rating.CreatedAt,
			&rating.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		ratings = append(ratings, &rating)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ratings: %w", err)
	}
	return ratings, nil
}

// GetSummaries computes the per-attraction rating summaries for a trip.
// Counts and averages aggregate in SQL; the consensus level derives from
// rating spread and must-do/avoid agreement afterward.
func (r *ratingRepository) GetSummaries(ctx context.Context, tripID string) ([]*models.ActivityRatingSummary, error) {
	query := `
		SELECT
			attraction_id,
			COUNT(*) AS total_ratings,
			AVG(rating) AS average_rating,
			SUM(CASE WHEN preference = 'must_do' THEN 1 ELSE 0 END) AS must_do_count,
			SUM(CASE WHEN preference = 'avoid' THEN 1 ELSE 0 END) AS avoid_count,
			SUM(CASE WHEN height_restriction_ok = 0 THEN 1 ELSE 0 END) AS height_restricted,
			SUM(CASE WHEN intensity_comfortable = 0 THEN 1 ELSE 0 END) AS intensity_concerns,
			MAX(rating) - MIN(rating) AS spread
		FROM activity_ratings
		WHERE trip_id = ?
		GROUP BY attraction_id
		ORDER BY attraction_id
	`
	rows, err := r.db.QueryContext(ctx, query, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to query rating summaries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var summaries []*models.ActivityRatingSummary
	for rows.Next() {
		var s models.ActivityRatingSummary
		var spread int
		err := rows.Scan(
			&s.AttractionID,
			&s.TotalRatings,
			&s.AverageRating,
			&s.MustDoCount,
			&s.AvoidCount,
			&s.HeightRestrictedCount,
			&s.IntensityConcernsCount,
			&spread,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rating summary: %w", err)
		}
		s.TripID = tripID
		s.ConsensusLevel = consensusLevel(spread, s.MustDoCount, s.AvoidCount)
		summaries = append(summaries, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rating summaries: %w", err)
	}
	return summaries, nil
}

// consensusLevel derives the consensus label from rating spread and
// must-do/avoid agreement.
func consensusLevel(spread, mustDoCount, avoidCount int) string {
	switch {
	case spread >= 3:
		return models.ConsensusConflict
	case mustDoCount > 0 && avoidCount > 0:
		return models.ConsensusConflict
	case spread == 2 && avoidCount > 0:
		return models.ConsensusLow
	case spread == 2:
		return models.ConsensusMedium
	default:
		return models.ConsensusHigh
	}
}

// Delete removes one member's rating of an attraction.
func (r *ratingRepository) Delete(ctx context.Context, tripID, memberID, attractionID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM activity_ratings WHERE trip_id = ? AND party_member_id = ? AND attraction_id = ?`,
		tripID, memberID, attractionID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete rating: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
