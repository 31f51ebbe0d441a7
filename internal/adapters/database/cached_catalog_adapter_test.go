package database

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/coachplan/internal/domain/entities"
	"github.com/zatekoja/coachplan/internal/domain/providers"
)

type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) ListAll(ctx context.Context) ([]entities.CatalogEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.CatalogEntry), args.Error(1)
}

func (m *MockCatalogRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]*entities.CatalogEntry, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]*entities.CatalogEntry), args.Error(1)
}

type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string][]byte{}}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return nil, providers.ErrCacheMiss
	}
	return v, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *memoryCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

var testEntries = []entities.CatalogEntry{
	{ID: 1, Title: "Sentadilla", MuscleGroup: "Piernas"},
	{ID: 2, Title: "Remo con barra", MuscleGroup: "Espalda"},
}

func TestCachedCatalogAdapter_ListAll(t *testing.T) {
	t.Run("loads once and serves later calls from memory", func(t *testing.T) {
		repo := new(MockCatalogRepository)
		cache := newMemoryCache()
		adapter := NewCachedCatalogAdapter(repo, cache, time.Minute, 16, nil)
		repo.On("ListAll", mock.Anything).Return(testEntries, nil).Once()

		first, err := adapter.ListAll(context.Background())
		require.NoError(t, err)
		second, err := adapter.ListAll(context.Background())
		require.NoError(t, err)

		assert.Equal(t, testEntries, first)
		assert.Equal(t, first, second)
		assert.Contains(t, cache.data, catalogListCacheKey)
		repo.AssertExpectations(t)
	})

	t.Run("reads the shared cache before the database", func(t *testing.T) {
		repo := new(MockCatalogRepository)
		cache := newMemoryCache()
		data, err := json.Marshal(testEntries)
		require.NoError(t, err)
		cache.data[catalogListCacheKey] = data
		adapter := NewCachedCatalogAdapter(repo, cache, time.Minute, 16, nil)

		entries, err := adapter.ListAll(context.Background())

		require.NoError(t, err)
		assert.Equal(t, testEntries, entries)
		repo.AssertNotCalled(t, "ListAll", mock.Anything)
	})

	t.Run("callers cannot mutate the snapshot", func(t *testing.T) {
		repo := new(MockCatalogRepository)
		adapter := NewCachedCatalogAdapter(repo, nil, time.Minute, 16, nil)
		repo.On("ListAll", mock.Anything).Return([]entities.CatalogEntry{{ID: 1, Title: "Sentadilla"}}, nil).Once()

		entries, err := adapter.ListAll(context.Background())
		require.NoError(t, err)
		entries[0].Title = "changed"

		again, err := adapter.ListAll(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Sentadilla", again[0].Title)
	})
}

func TestCachedCatalogAdapter_GetByIDs(t *testing.T) {
	repo := new(MockCatalogRepository)
	adapter := NewCachedCatalogAdapter(repo, nil, time.Minute, 16, nil)

	repo.On("GetByIDs", mock.Anything, []int64{1, 2}).
		Return(map[int64]*entities.CatalogEntry{1: &testEntries[0], 2: &testEntries[1]}, nil).Once()
	repo.On("GetByIDs", mock.Anything, []int64{3}).
		Return(map[int64]*entities.CatalogEntry{}, nil).Once()

	first, err := adapter.GetByIDs(context.Background(), []int64{1, 2})
	require.NoError(t, err)
	assert.Len(t, first, 2)

	second, err := adapter.GetByIDs(context.Background(), []int64{2, 3})
	require.NoError(t, err)
	assert.Len(t, second, 1)
	assert.Equal(t, "Remo con barra", second[2].Title)
	repo.AssertExpectations(t)
}

func TestCachedCatalogAdapter_Invalidate(t *testing.T) {
	repo := new(MockCatalogRepository)
	cache := newMemoryCache()
	adapter := NewCachedCatalogAdapter(repo, cache, time.Minute, 16, nil)
	repo.On("ListAll", mock.Anything).Return(testEntries, nil).Twice()

	_, err := adapter.ListAll(context.Background())
	require.NoError(t, err)
	require.NoError(t, adapter.Invalidate(context.Background()))
	assert.NotContains(t, cache.data, catalogListCacheKey)

	_, err = adapter.ListAll(context.Background())
	require.NoError(t, err)
	repo.AssertExpectations(t)
}
