package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"github.com/zatekoja/coachplan/internal/domain/entities"
	"github.com/zatekoja/coachplan/internal/domain/repositories"
	"github.com/zatekoja/coachplan/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/coachplan/pkg/errors"
)

var catalogColumns = []any{"id", "title", "muscle_group", "level", "video_url", "equipment"}

// CatalogAdapter implements the CatalogRepository interface over the exercises table
type CatalogAdapter struct {
	client *postgres.Client
}

// NewCatalogAdapter creates a new catalog adapter
func NewCatalogAdapter(client *postgres.Client) *CatalogAdapter {
	return &CatalogAdapter{client: client}
}

var _ repositories.CatalogRepository = (*CatalogAdapter)(nil)

// ListAll returns every catalog entry ordered by ID
func (a *CatalogAdapter) ListAll(ctx context.Context) ([]entities.CatalogEntry, error) {
	query, args, err := dialect.From(tableExercises).Prepared(true).
		Select(catalogColumns...).
		Order(goqu.I("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	entries := []entities.CatalogEntry{}
	if err := a.client.DB().SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, apperrors.NewInternalError("failed to list catalog", err)
	}
	return entries, nil
}

// GetByIDs retrieves the entries for ids in a single query
func (a *CatalogAdapter) GetByIDs(ctx context.Context, ids []int64) (map[int64]*entities.CatalogEntry, error) {
	result := make(map[int64]*entities.CatalogEntry, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	query, args, err := dialect.From(tableExercises).Prepared(true).
		Select(catalogColumns...).
		Where(goqu.C("id").In(ids)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	var entries []entities.CatalogEntry
	if err := a.client.DB().SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, apperrors.NewInternalError("failed to get catalog entries", err)
	}
	for i := range entries {
		result[entries[i].ID] = &entries[i]
	}
	return result, nil
}
