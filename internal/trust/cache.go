// AngelaMos | 2026
// cache.go

package trust

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "trust:poi:"

// Cache memoizes computed summaries in redis. Misses and redis failures
// both fall through to a fresh aggregate; the TTL caps staleness if an
// invalidation is ever lost.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) Get(ctx context.Context, poiID string) (*Summary, bool) {
	data, err := c.client.Get(ctx, cacheKeyPrefix+poiID).Bytes()
	if err != nil {
		return nil, false
	}

	var summary Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, false
	}

	return &summary, true
}

func (c *Cache) Set(ctx context.Context, summary *Summary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshal trust summary: %w", err)
	}

	key := cacheKeyPrefix + summary.POIID
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache trust summary: %w", err)
	}

	return nil
}

func (c *Cache) Invalidate(ctx context.Context, poiID string) error {
	err := c.client.Del(ctx, cacheKeyPrefix+poiID).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("invalidate trust summary: %w", err)
	}

	return nil
}
