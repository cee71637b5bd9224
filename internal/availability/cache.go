package availability

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rahulp0817/doctor-appointment-booking/internal/schedule"
	"github.com/rahulp0817/doctor-appointment-booking/pkg/logging"
)

// DefaultCacheTTL keeps cached availability short-lived so a booking made
// through the provider invalidates quickly. Seconds, not minutes.
const DefaultCacheTTL = 30 * time.Second

// Cache is a short-TTL Redis cache for resolved availability. Keys are strict
// on all five request fields so distinct windows never share entries. Redis
// errors fall through to the provider; the cache is best-effort.
type Cache struct {
	redis  *redis.Client
	ttl    time.Duration
	logger *logging.Logger
}

// NewCache creates an availability cache. A non-positive ttl uses
// DefaultCacheTTL.
func NewCache(redisClient *redis.Client, ttl time.Duration, logger *logging.Logger) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Cache{redis: redisClient, ttl: ttl, logger: logger}
}

func cacheKey(req Request) string {
	return fmt.Sprintf("availability:%s:%s:%s:%s:%s",
		req.EventTypeID, req.Date, req.Timezone, req.StartTime, req.EndTime)
}

// Get returns the cached slots for the request, reporting whether an entry
// was found. Nil caches and Redis failures read as misses.
func (c *Cache) Get(ctx context.Context, req Request) ([]schedule.TimeSlot, bool) {
	if c == nil || c.redis == nil {
		return nil, false
	}
	data, err := c.redis.Get(ctx, cacheKey(req)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("availability cache read failed", "error", err)
		return nil, false
	}
	var slots []schedule.TimeSlot
	if err := json.Unmarshal(data, &slots); err != nil {
		c.logger.Warn("availability cache entry corrupt", "error", err)
		return nil, false
	}
	return slots, true
}

// Set stores the slots under the request key with the cache TTL. Failures are
// logged and ignored.
func (c *Cache) Set(ctx context.Context, req Request, slots []schedule.TimeSlot) {
	if c == nil || c.redis == nil {
		return
	}
	data, err := json.Marshal(slots)
	if err != nil {
		c.logger.Warn("availability cache marshal failed", "error", err)
		return
	}
	if err := c.redis.Set(ctx, cacheKey(req), data, c.ttl).Err(); err != nil {
		c.logger.Warn("availability cache write failed", "error", err)
	}
}
