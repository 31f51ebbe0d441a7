package database

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/zatekoja/coachplan/internal/domain/entities"
	"github.com/zatekoja/coachplan/internal/domain/providers"
	"github.com/zatekoja/coachplan/internal/domain/repositories"
	"github.com/zatekoja/coachplan/internal/infrastructure/observability"
)

const catalogListCacheKey = "catalog:all"

// CachedCatalogAdapter wraps a CatalogRepository with an in-process LRU in front of a shared
// cache. The full catalog listing is cached as one snapshot, lookups by ID per entry.
type CachedCatalogAdapter struct {
	adapter repositories.CatalogRepository
	cache   providers.CacheProvider
	local   *expirable.LRU[string, []entities.CatalogEntry]
	entries *expirable.LRU[int64, entities.CatalogEntry]
	ttl     time.Duration
	metrics *observability.Metrics
}

// NewCachedCatalogAdapter creates a new cached catalog adapter. cache may be nil, in which
// case only the in-process tier is used.
func NewCachedCatalogAdapter(adapter repositories.CatalogRepository, cache providers.CacheProvider, ttl time.Duration, localSize int, metrics *observability.Metrics) *CachedCatalogAdapter {
	if localSize <= 0 {
		localSize = 256
	}
	return &CachedCatalogAdapter{
		adapter: adapter,
		cache:   cache,
		local:   expirable.NewLRU[string, []entities.CatalogEntry](1, nil, ttl),
		entries: expirable.NewLRU[int64, entities.CatalogEntry](localSize, nil, ttl),
		ttl:     ttl,
		metrics: metrics,
	}
}

var _ repositories.CatalogRepository = (*CachedCatalogAdapter)(nil)

// ListAll returns the catalog snapshot, loading it from the database on a miss
func (a *CachedCatalogAdapter) ListAll(ctx context.Context) ([]entities.CatalogEntry, error) {
	if entries, ok := a.local.Get(catalogListCacheKey); ok {
		observability.RecordCacheHit(ctx, a.metrics, catalogListCacheKey)
		return cloneEntries(entries), nil
	}

	logger := observability.LoggerFromContext(ctx)

	if a.cache != nil {
		data, err := a.cache.Get(ctx, catalogListCacheKey)
		switch {
		case err == nil:
			var entries []entities.CatalogEntry
			jsonErr := json.Unmarshal(data, &entries)
			if jsonErr == nil {
				observability.RecordCacheHit(ctx, a.metrics, catalogListCacheKey)
				a.local.Add(catalogListCacheKey, entries)
				return cloneEntries(entries), nil
			}
			logger.Warn().Err(jsonErr).Msg("failed to unmarshal cached catalog")
		case !errors.Is(err, providers.ErrCacheMiss):
			logger.Warn().Err(err).Msg("failed to read catalog from cache")
		}
	}
	observability.RecordCacheMiss(ctx, a.metrics, catalogListCacheKey)

	entries, err := a.adapter.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	a.local.Add(catalogListCacheKey, entries)
	if a.cache != nil {
		if data, err := json.Marshal(entries); err == nil {
			if err := a.cache.Set(ctx, catalogListCacheKey, data, a.ttl); err != nil {
				logger.Warn().Err(err).Msg("failed to cache catalog")
			}
		}
	}

	return cloneEntries(entries), nil
}

// GetByIDs serves known entries from the in-process tier and fetches only the rest
func (a *CachedCatalogAdapter) GetByIDs(ctx context.Context, ids []int64) (map[int64]*entities.CatalogEntry, error) {
	result := make(map[int64]*entities.CatalogEntry, len(ids))
	missing := make([]int64, 0, len(ids))

	for _, id := range ids {
		if entry, ok := a.entries.Get(id); ok {
			result[id] = &entry
			continue
		}
		missing = append(missing, id)
	}

	if len(missing) == 0 {
		observability.RecordCacheHit(ctx, a.metrics, "catalog:ids")
		return result, nil
	}
	observability.RecordCacheMiss(ctx, a.metrics, "catalog:ids")

	fetched, err := a.adapter.GetByIDs(ctx, missing)
	if err != nil {
		return nil, err
	}
	for id, entry := range fetched {
		if entry == nil {
			continue
		}
		a.entries.Add(id, *entry)
		result[id] = entry
	}
	return result, nil
}

// Invalidate drops every cached catalog view, including the shared one
func (a *CachedCatalogAdapter) Invalidate(ctx context.Context) error {
	a.PurgeLocal()
	if a.cache == nil {
		return nil
	}
	return a.cache.Delete(ctx, catalogListCacheKey)
}

// PurgeLocal drops the in-process tier only
func (a *CachedCatalogAdapter) PurgeLocal() {
	a.local.Purge()
	a.entries.Purge()
}

func cloneEntries(entries []entities.CatalogEntry) []entities.CatalogEntry {
	out := make([]entities.CatalogEntry, len(entries))
	copy(out, entries)
	return out
}
