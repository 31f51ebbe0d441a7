package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/zatekoja/coachplan/internal/domain/providers"
	redisclient "github.com/zatekoja/coachplan/internal/infrastructure/clients/redis"
)

// RedisAdapter implements the CacheProvider interface using Redis
type RedisAdapter struct {
	client redis.Cmdable
	prefix string
}

// NewRedisAdapter creates a new Redis cache adapter. Keys are namespaced with prefix.
func NewRedisAdapter(client *redisclient.Client, prefix string) *RedisAdapter {
	return NewRedisAdapterFromCmdable(client.Client(), prefix)
}

// NewRedisAdapterFromCmdable wraps any go-redis command set (client, ring, cluster).
func NewRedisAdapterFromCmdable(client redis.Cmdable, prefix string) *RedisAdapter {
	return &RedisAdapter{client: client, prefix: prefix}
}

var _ providers.CacheProvider = (*RedisAdapter)(nil)

// Get retrieves a value from cache
func (a *RedisAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	result, err := a.client.Get(ctx, a.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, providers.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get from cache: %w", err)
	}
	return result, nil
}

// Set stores a value in cache with expiration
func (a *RedisAdapter) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := a.client.Set(ctx, a.key(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set in cache: %w", err)
	}
	return nil
}

// Delete removes values from cache
func (a *RedisAdapter) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	namespaced := make([]string, len(keys))
	for i, k := range keys {
		namespaced[i] = a.key(k)
	}
	if err := a.client.Del(ctx, namespaced...).Err(); err != nil {
		return fmt.Errorf("failed to delete from cache: %w", err)
	}
	return nil
}

func (a *RedisAdapter) key(k string) string {
	if a.prefix == "" {
		return k
	}
	return a.prefix + ":" + k
}
