package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/waylightapp/waylight/internal/storage/models"
)

func seedTrip(t *testing.T, db *sql.DB, tripID string, days int) *models.Trip {
	t.Helper()
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	trip := &models.Trip{
		ID:        tripID,
		Name:      "Summer Trip",
		StartDate: start,
		EndDate:   start.AddDate(0, 0, days-1),
	}
	for i := 0; i < days; i++ {
		trip.Days = append(trip.Days, &models.TripDay{
			ID:     tripID + "-day-" + string(rune('1'+i)),
			TripID: tripID,
			Date:   start.AddDate(0, 0, i),
		})
	}
	if err := NewTripRepository(db).Create(context.Background(), trip); err != nil {
		t.Fatalf("Failed to create trip: %v", err)
	}
	return trip
}

func TestTripRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTripRepository(db)
	ctx := context.Background()

	seedTrip(t, db, "trip-1", 5)

	got, err := repo.GetByID(ctx, "trip-1")
	if err != nil {
		t.Fatalf("Failed to get trip: %v", err)
	}
	if got.Name != "Summer Trip" {
		t.Errorf("Name = %q, want Summer Trip", got.Name)
	}
	if len(got.Days) != 5 {
		t.Fatalf("Days len = %d, want 5", len(got.Days))
	}
	// Days come back in date order.
	for i := 1; i < len(got.Days); i++ {
		if got.Days[i].Date.Before(got.Days[i-1].Date) {
			t.Errorf("days out of date order at %d", i)
		}
	}
}

func TestTripRepository_GetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTripRepository(db)

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestTripRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTripRepository(db)
	ctx := context.Background()

	seedTrip(t, db, "trip-1", 3)

	later := &models.Trip{
		ID:        "trip-2",
		Name:      "Fall Trip",
		StartDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 10, 4, 0, 0, 0, 0, time.UTC),
	}
	if err := repo.Create(ctx, later); err != nil {
		t.Fatalf("Failed to create second trip: %v", err)
	}

	trips, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("Failed to list trips: %v", err)
	}
	if len(trips) != 2 {
		t.Fatalf("List len = %d, want 2", len(trips))
	}
	if trips[0].ID != "trip-2" {
		t.Errorf("List first = %s, want trip-2 (newest first)", trips[0].ID)
	}
}

func TestTripRepository_SetDayType(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTripRepository(db)
	ctx := context.Background()

	trip := seedTrip(t, db, "trip-1", 3)
	dayID := trip.Days[1].ID

	if err := repo.SetDayType(ctx, dayID, strPtr(models.DayTypeRestDay)); err != nil {
		t.Fatalf("Failed to set day type: %v", err)
	}

	got, err := repo.GetByID(ctx, "trip-1")
	if err != nil {
		t.Fatalf("Failed to get trip: %v", err)
	}
	if got.Days[1].DayType == nil || *got.Days[1].DayType != models.DayTypeRestDay {
		t.Errorf("DayType = %v, want rest-day", got.Days[1].DayType)
	}

	// Clearing reverts the day to inferred typing.
	if err := repo.SetDayType(ctx, dayID, nil); err != nil {
		t.Fatalf("Failed to clear day type: %v", err)
	}
	got, err = repo.GetByID(ctx, "trip-1")
	if err != nil {
		t.Fatalf("Failed to get trip: %v", err)
	}
	if got.Days[1].DayType != nil {
		t.Errorf("DayType = %v, want nil after clear", *got.Days[1].DayType)
	}

	if err := repo.SetDayType(ctx, "missing-day", strPtr(models.DayTypeParkDay)); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestTripRepository_ItineraryItems(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTripRepository(db)
	ctx := context.Background()

	trip := seedTrip(t, db, "trip-1", 3)
	dayID := trip.Days[1].ID

	item := &models.ItineraryItem{
		ID:           "item-1",
		TripDayID:    dayID,
		AttractionID: "space-mountain",
		Name:         "Space Mountain",
		StartTime:    strPtr("09:30"),
	}
	if err := repo.AddItineraryItem(ctx, item); err != nil {
		t.Fatalf("Failed to add itinerary item: %v", err)
	}

	got, err := repo.GetByID(ctx, "trip-1")
	if err != nil {
		t.Fatalf("Failed to get trip: %v", err)
	}
	if len(got.Days[1].Items) != 1 || got.Days[1].Items[0].AttractionID != "space-mountain" {
		t.Errorf("Items = %+v, want the added item on day 2", got.Days[1].Items)
	}

	if err := repo.RemoveItineraryItem(ctx, "item-1"); err != nil {
		t.Fatalf("Failed to remove itinerary item: %v", err)
	}
	if err := repo.RemoveItineraryItem(ctx, "item-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound on second remove", err)
	}
}

func TestTripRepository_DeleteCascades(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTripRepository(db)
	ctx := context.Background()

	seedTrip(t, db, "trip-1", 3)
	if err := repo.Delete(ctx, "trip-1"); err != nil {
		t.Fatalf("Failed to delete trip: %v", err)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM trip_days WHERE trip_id = 'trip-1'`).Scan(&count); err != nil {
		t.Fatalf("Failed to count trip days: %v", err)
	}
	if count != 0 {
		t.Errorf("trip days remaining = %d, want 0 after cascade", count)
	}

	if err := repo.Delete(ctx, "trip-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound on second delete", err)
	}
}
