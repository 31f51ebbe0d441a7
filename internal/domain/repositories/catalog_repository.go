package repositories

import (
	"context"

	"github.com/zatekoja/coachplan/internal/domain/entities"
)

// CatalogRepository defines read access to the exercise catalog.
type CatalogRepository interface {
	// ListAll returns every catalog entry in catalog order
	ListAll(ctx context.Context) ([]entities.CatalogEntry, error)

	// GetByIDs returns the entries for the given IDs; unknown IDs are absent from the map
	GetByIDs(ctx context.Context, ids []int64) (map[int64]*entities.CatalogEntry, error)
}
