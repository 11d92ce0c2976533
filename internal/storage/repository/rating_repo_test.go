package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/waylightapp/waylight/internal/storage/models"
)

func seedRatingFixture(t *testing.T, db *sql.DB) {
	t.Helper()
	ctx := context.Background()

	seedTrip(t, db, "trip-1", 3)
	seedPark(t, db, "mk", "Magic Kingdom")

	attractions := NewAttractionRepository(db)
	if err := attractions.Upsert(ctx, &models.Attraction{
		ID: "space-mountain", ParkID: "mk", Name: "Space Mountain",
		Intensity: models.IntensityHigh, HeightRequirement: intPtr(44),
	}); err != nil {
		t.Fatalf("Failed to seed attraction: %v", err)
	}

	party := NewPartyRepository(db)
	members := []*models.TravelingPartyMember{
		{ID: "m1", TripID: "trip-1", Name: "Alice", GuestType: models.GuestTypeAdult},
		{ID: "m2", TripID: "trip-1", Name: "Ben", GuestType: models.GuestTypeAdult},
		{ID: "m3", TripID: "trip-1", Name: "Cara", GuestType: models.GuestTypeChild, Height: strPtr(`40"`)},
	}
	for _, m := range members {
		if err := party.Create(ctx, m); err != nil {
			t.Fatalf("Failed to seed member %s: %v", m.ID, err)
		}
	}
}

func TestPrepareRating(t *testing.T) {
	attraction := &models.Attraction{ID: "space-mountain", HeightRequirement: intPtr(44)}

	tests := []struct {
		name       string
		preference string
		member     *models.TravelingPartyMember
		wantRating int
		wantHeight bool
	}{
		{
			name:       "adult must-do",
			preference: models.PreferenceMustDo,
			member:     &models.TravelingPartyMember{GuestType: models.GuestTypeAdult},
			wantRating: 5,
			wantHeight: true,
		},
		{
			name:       "short child avoid",
			preference: models.PreferenceAvoid,
			member:     &models.TravelingPartyMember{GuestType: models.GuestTypeChild, Height: strPtr(`40"`)},
			wantRating: 1,
			wantHeight: false,
		},
		{
			name:       "unknown preference defaults to neutral",
			preference: "someday",
			member:     &models.TravelingPartyMember{GuestType: models.GuestTypeAdult},
			wantRating: 3,
			wantHeight: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rating := &models.ActivityRating{Preference: tt.preference}
			PrepareRating(rating, tt.member, attraction)
			if rating.Rating != tt.wantRating {
				t.Errorf("Rating = %d, want %d", rating.Rating, tt.wantRating)
			}
			if rating.HeightRestrictionOk != tt.wantHeight {
				t.Errorf("HeightRestrictionOk = %v, want %v", rating.HeightRestrictionOk, tt.wantHeight)
			}
		})
	}
}

func TestRatingRepository_UpsertReplacesExisting(t *testing.T) {
	db := setupTestDB(t)
	seedRatingFixture(t, db)
	repo := NewRatingRepository(db)
	ctx := context.Background()

	rating := &models.ActivityRating{
		ID:                   "r1",
		TripID:               "trip-1",
		PartyMemberID:        "m1",
		AttractionID:         "space-mountain",
		ActivityType:         "do",
		Rating:               5,
		Preference:           models.PreferenceMustDo,
		HeightRestrictionOk:  true,
		IntensityComfortable: true,
	}
	if err := repo.Upsert(ctx, rating); err != nil {
		t.Fatalf("Failed to upsert rating: %v", err)
	}

	// Same member re-rates the same attraction: one row, updated values.
	rating.ID = "r2"
	rating.Rating = 2
	rating.Preference = models.PreferenceSkip
	if err := repo.Upsert(ctx, rating); err != nil {
		t.Fatalf("Failed to re-upsert rating: %v", err)
	}

	ratings, err := repo.ListByTrip(ctx, "trip-1")
	if err != nil {
		t.Fatalf("Failed to list ratings: %v", err)
	}
	if len(ratings) != 1 {
		t.Fatalf("len = %d, want 1 after re-rating", len(ratings))
	}
	if ratings[0].Rating != 2 || ratings[0].Preference != models.PreferenceSkip {
		t.Errorf("got (%d, %s), want (2, skip)", ratings[0].Rating, ratings[0].Preference)
	}
}

func TestRatingRepository_GetSummaries(t *testing.T) {
	db := setupTestDB(t)
	seedRatingFixture(t, db)
	repo := NewRatingRepository(db)
	ctx := context.Background()

	ratings := []*models.ActivityRating{
		{ID: "r1", TripID: "trip-1", PartyMemberID: "m1", AttractionID: "space-mountain", ActivityType: "do", Rating: 5, Preference: models.PreferenceMustDo, HeightRestrictionOk: true, IntensityComfortable: true},
		{ID: "r2", TripID: "trip-1", PartyMemberID: "m2", AttractionID: "space-mountain", ActivityType: "do", Rating: 4, Preference: models.PreferenceWantToDo, HeightRestrictionOk: true, IntensityComfortable: true},
		{ID: "r3", TripID: "trip-1", PartyMemberID: "m3", AttractionID: "space-mountain", ActivityType: "do", Rating: 3, Preference: models.PreferenceNeutral, HeightRestrictionOk: false, IntensityComfortable: false},
	}
	for _, r := range ratings {
		if err := repo.Upsert(ctx, r); err != nil {
			t.Fatalf("Failed to upsert %s: %v", r.ID, err)
		}
	}

	summaries, err := repo.GetSummaries(ctx, "trip-1")
	if err != nil {
		t.Fatalf("Failed to get summaries: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("len = %d, want 1", len(summaries))
	}

	s := summaries[0]
	if s.AttractionID != "space-mountain" || s.TripID != "trip-1" {
		t.Errorf("identity = (%s, %s)", s.AttractionID, s.TripID)
	}
	if s.TotalRatings != 3 {
		t.Errorf("TotalRatings = %d, want 3", s.TotalRatings)
	}
	if s.AverageRating != 4.0 {
		t.Errorf("AverageRating = %v, want 4.0", s.AverageRating)
	}
	if s.MustDoCount != 1 || s.AvoidCount != 0 {
		t.Errorf("counts = (%d, %d), want (1, 0)", s.MustDoCount, s.AvoidCount)
	}
	if s.HeightRestrictedCount != 1 {
		t.Errorf("HeightRestrictedCount = %d, want 1", s.HeightRestrictedCount)
	}
	if s.IntensityConcernsCount != 1 {
		t.Errorf("IntensityConcernsCount = %d, want 1", s.IntensityConcernsCount)
	}
	// Spread of 2 with no avoid votes.
	if s.ConsensusLevel != models.ConsensusMedium {
		t.Errorf("ConsensusLevel = %s, want medium", s.ConsensusLevel)
	}
}

func TestConsensusLevel(t *testing.T) {
	tests := []struct {
		name   string
		spread int
		mustDo int
		avoid  int
		want   string
	}{
		{name: "tight agreement", spread: 1, want: models.ConsensusHigh},
		{name: "moderate spread", spread: 2, want: models.ConsensusMedium},
		{name: "moderate spread with avoid votes", spread: 2, avoid: 1, want: models.ConsensusLow},
		{name: "wide spread", spread: 3, want: models.ConsensusConflict},
		{name: "must-do against avoid", spread: 1, mustDo: 1, avoid: 1, want: models.ConsensusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := consensusLevel(tt.spread, tt.mustDo, tt.avoid); got != tt.want {
				t.Errorf("consensusLevel(%d, %d, %d) = %s, want %s", tt.spread, tt.mustDo, tt.avoid, got, tt.want)
			}
		})
	}
}

func TestRatingRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	seedRatingFixture(t, db)
	repo := NewRatingRepository(db)
	ctx := context.Background()

	rating := &models.ActivityRating{
		ID: "r1", TripID: "trip-1", PartyMemberID: "m1", AttractionID: "space-mountain",
		ActivityType: "do", Rating: 5, Preference: models.PreferenceMustDo,
		HeightRestrictionOk: true, IntensityComfortable: true,
	}
	if err := repo.Upsert(ctx, rating); err != nil {
		t.Fatalf("Failed to upsert rating: %v", err)
	}

	if err := repo.Delete(ctx, "trip-1", "m1", "space-mountain"); err != nil {
		t.Fatalf("Failed to delete rating: %v", err)
	}
	if err := repo.Delete(ctx, "trip-1", "m1", "space-mountain"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound on second delete", err)
	}
}

func TestLoadCatalog(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAttractionRepository(db)
	ctx := context.Background()

	seedPark(t, db, "mk", "Magic Kingdom")
	if err := repo.Upsert(ctx, &models.Attraction{ID: "space-mountain", ParkID: "mk", Name: "Space Mountain", Intensity: models.IntensityHigh}); err != nil {
		t.Fatalf("Failed to seed attraction: %v", err)
	}

	catalog, err := LoadCatalog(ctx, repo)
	if err != nil {
		t.Fatalf("Failed to load catalog: %v", err)
	}
	if len(catalog.Parks()) != 1 || len(catalog.Attractions()) != 1 {
		t.Errorf("catalog = (%d parks, %d attractions), want (1, 1)", len(catalog.Parks()), len(catalog.Attractions()))
	}
	if _, ok := catalog.Attraction("space-mountain"); !ok {
		t.Error("space-mountain missing from catalog")
	}
}
