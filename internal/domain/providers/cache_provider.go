package providers

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by CacheProvider.Get when the key is absent or expired
var ErrCacheMiss = errors.New("cache miss")

// CacheProvider defines the interface for caching operations
type CacheProvider interface {
	// Get retrieves a value from cache, ErrCacheMiss when absent
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in cache with expiration
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes values from cache
	Delete(ctx context.Context, keys ...string) error
}
