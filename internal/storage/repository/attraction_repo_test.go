package repository

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/waylightapp/waylight/internal/storage"
	"github.com/waylightapp/waylight/internal/storage/models"
)

// setupTestDB creates a migrated SQLite database in a temp directory.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	mgr, err := storage.NewMigrationManager(dbPath)
	if err != nil {
		t.Fatalf("Failed to create migration manager: %v", err)
	}
	if err := mgr.Up(); err != nil {
		t.Fatalf("Failed to apply migrations: %v", err)
	}
	if err := mgr.Close(); err != nil {
		t.Fatalf("Failed to close migration manager: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return db
}

func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }

func seedPark(t *testing.T, db *sql.DB, id, name string) {
	t.Helper()
	repo := NewAttractionRepository(db)
	if err := repo.UpsertPark(context.Background(), &models.Park{ID: id, Name: name, Resort: "wdw"}); err != nil {
		t.Fatalf("Failed to seed park: %v", err)
	}
}

func TestAttractionRepository_UpsertAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAttractionRepository(db)
	ctx := context.Background()

	seedPark(t, db, "mk", "Magic Kingdom")

	attraction := &models.Attraction{
		ID:                "space-mountain",
		ParkID:            "mk",
		Name:              "Space Mountain",
		DurationMinutes:   30,
		Intensity:         models.IntensityHigh,
		HeightRequirement: intPtr(44),
		Features:          models.AttractionFeatures{MultiPass: true},
	}
	if err := repo.Upsert(ctx, attraction); err != nil {
		t.Fatalf("Failed to upsert attraction: %v", err)
	}

	got, err := repo.GetByID(ctx, "space-mountain")
	if err != nil {
		t.Fatalf("Failed to get attraction: %v", err)
	}
	if got.Name != "Space Mountain" || got.Intensity != models.IntensityHigh {
		t.Errorf("got (%q, %q), want (Space Mountain, high)", got.Name, got.Intensity)
	}
	if got.HeightRequirement == nil || *got.HeightRequirement != 44 {
		t.Errorf("HeightRequirement = %v, want 44", got.HeightRequirement)
	}
	if !got.Features.MultiPass || got.Features.SinglePass {
		t.Errorf("Features = %+v, want MultiPass only", got.Features)
	}

	// Second upsert replaces the row rather than failing.
	attraction.DurationMinutes = 35
	if err := repo.Upsert(ctx, attraction); err != nil {
		t.Fatalf("Failed to re-upsert attraction: %v", err)
	}
	got, err = repo.GetByID(ctx, "space-mountain")
	if err != nil {
		t.Fatalf("Failed to get attraction after update: %v", err)
	}
	if got.DurationMinutes != 35 {
		t.Errorf("DurationMinutes = %d, want 35", got.DurationMinutes)
	}
}

func TestAttractionRepository_GetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAttractionRepository(db)

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestAttractionRepository_Listing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAttractionRepository(db)
	ctx := context.Background()

	seedPark(t, db, "mk", "Magic Kingdom")
	seedPark(t, db, "ep", "EPCOT")

	attractions := []*models.Attraction{
		{ID: "space-mountain", ParkID: "mk", Name: "Space Mountain", Intensity: models.IntensityHigh},
		{ID: "haunted-mansion", ParkID: "mk", Name: "Haunted Mansion", Intensity: models.IntensityLow},
		{ID: "spaceship-earth", ParkID: "ep", Name: "Spaceship Earth", Intensity: models.IntensityLow},
	}
	for _, a := range attractions {
		if err := repo.Upsert(ctx, a); err != nil {
			t.Fatalf("Failed to upsert %s: %v", a.ID, err)
		}
	}

	byPark, err := repo.ListByPark(ctx, "mk")
	if err != nil {
		t.Fatalf("Failed to list by park: %v", err)
	}
	if len(byPark) != 2 {
		t.Fatalf("ListByPark(mk) len = %d, want 2", len(byPark))
	}
	// Ordered by name.
	if byPark[0].ID != "haunted-mansion" || byPark[1].ID != "space-mountain" {
		t.Errorf("ListByPark order = [%s %s], want name order", byPark[0].ID, byPark[1].ID)
	}

	all, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("Failed to list all: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("ListAll len = %d, want 3", len(all))
	}

	parks, err := repo.ListParks(ctx)
	if err != nil {
		t.Fatalf("Failed to list parks: %v", err)
	}
	if len(parks) != 2 {
		t.Fatalf("ListParks len = %d, want 2", len(parks))
	}
	if parks[0].Name != "EPCOT" {
		t.Errorf("ListParks first = %q, want EPCOT (name order)", parks[0].Name)
	}
}
