package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/keechi-app/keechi-api/internal/logger"
)

// AvailabilityCache keeps rendered availability responses in Redis, keyed by
// (shop, service, day). Every appointment write for a key invalidates it, so
// cached reads never lag behind bookings; the TTL only bounds leftovers.
type AvailabilityCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewAvailabilityCache(rdb *redis.Client) *AvailabilityCache {
	return &AvailabilityCache{
		rdb: rdb,
		ttl: 5 * time.Minute,
	}
}

func key(shopID, serviceID uint, day string) string {
	return fmt.Sprintf("availability:%d:%d:%s", shopID, serviceID, day)
}

// Get returns the cached payload, or nil on miss or error. Safe on a nil
// cache.
func (c *AvailabilityCache) Get(ctx context.Context, shopID, serviceID uint, day string) []byte {
	if c == nil || c.rdb == nil {
		return nil
	}

	payload, err := c.rdb.Get(ctx, key(shopID, serviceID, day)).Bytes()
	if err != nil {
		return nil
	}
	return payload
}

func (c *AvailabilityCache) Set(ctx context.Context, shopID, serviceID uint, day string, payload []byte) {
	if c == nil || c.rdb == nil {
		return
	}

	if err := c.rdb.Set(ctx, key(shopID, serviceID, day), payload, c.ttl).Err(); err != nil {
		logger.L().Warn("availability cache set failed", zap.Error(err))
	}
}

func (c *AvailabilityCache) InvalidateDay(ctx context.Context, shopID, serviceID uint, day string) {
	if c == nil || c.rdb == nil {
		return
	}

	if err := c.rdb.Del(ctx, key(shopID, serviceID, day)).Err(); err != nil {
		logger.L().Warn("availability cache invalidate failed", zap.Error(err))
	}
}
