package repository

import (
	"context"
	"fmt"

	"github.com/waylightapp/waylight/internal/planning"
)

// LoadCatalog materializes the static catalog into the in-memory snapshot
// the analytics engine consumes.
func LoadCatalog(ctx context.Context, repo AttractionRepository) (*planning.StaticCatalog, error) {
	parks, err := repo.ListParks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load parks: %w", err)
	}
	attractions, err := repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load attractions: %w", err)
	}
	return planning.NewStaticCatalog(parks, attractions), nil
}
