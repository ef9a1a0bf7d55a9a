// Package cache memoizes read queries in Redis. Cached values are derived
// and disposable: they are invalidated, never updated, on writes, and cache
// loss degrades read latency only.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/redis"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/notify-pipeline/internal/metrics"
)

const (
	recentPrefix = "notifications:recent"

	// ListTTL bounds staleness of cached list queries.
	ListTTL = 5 * time.Minute
	// NotificationTTL bounds staleness of cached point lookups.
	NotificationTTL = time.Hour
)

// ListKey builds the cache key for one list query shape.
func ListKey(userID *uuid.UUID, limit, offset int) string {
	owner := "all"
	if userID != nil {
		owner = userID.String()
	}

	return fmt.Sprintf("%s:%s:%d:%d", recentPrefix, owner, limit, offset)
}

// NotificationKey builds the cache key for one notification point lookup.
func NotificationKey(id uuid.UUID) string {
	return fmt.Sprintf("notification:%s", id)
}

// Cache wraps the Redis client with JSON value handling and query-shape
// invalidation.
type Cache struct {
	rdb *redis.Client
}

// New creates a new Cache on top of an established Redis client.
func New(rdb *redis.Client) *Cache {
	return &Cache{rdb: rdb}
}

// GetJSON loads the value under key into dest. It returns false on a miss;
// a Redis failure is reported as a miss so that reads fall through to the
// store.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.rdb.Get(ctx, key)
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			metrics.CacheMisses.Inc()
			return false, nil
		}

		metrics.CacheMisses.Inc()
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return false, fmt.Errorf("unmarshal cached value %s: %w", key, err)
	}

	metrics.CacheHits.Inc()

	return true, nil
}

// SetJSON stores value under key with the given TTL.
func (c *Cache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal value for %s: %w", key, err)
	}

	if err := c.rdb.Client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}

	return nil
}

// Delete removes the given keys.
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}

	return nil
}

// InvalidateLists drops every cached list query shape. Called after each
// write so a subsequent list cannot observe a stale result.
func (c *Cache) InvalidateLists(ctx context.Context) error {
	keys, err := c.rdb.Keys(ctx, recentPrefix+"*").Result()
	if err != nil {
		return fmt.Errorf("cache scan %s: %w", recentPrefix, err)
	}

	if len(keys) == 0 {
		return nil
	}

	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("cache invalidate lists: %w", err)
	}

	zlog.Logger.Debug().Int("keys", len(keys)).Msg("list cache invalidated")

	return nil
}
