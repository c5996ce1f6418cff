package dashboard

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/clientdeck/portal-backend/internal/projects/domain"
)

const statsKey = "portal:stats"

// StatsCache keeps the dashboard aggregate in redis for a short TTL. A nil
// client disables caching; every lookup then misses.
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStatsCache(client *redis.Client, ttl time.Duration) *StatsCache {
	return &StatsCache{client: client, ttl: ttl}
}

// Get returns the cached stats, or (nil, false) on miss or redis trouble.
// Cache failures never fail the request; the caller recomputes from SQL.
func (c *StatsCache) Get(ctx context.Context) (*domain.Stats, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, statsKey).Result()
	if err != nil {
		return nil, false
	}

	var s domain.Stats
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return nil, false
	}
	return &s, true
}

// Set stores the stats with the cache TTL, best effort.
func (c *StatsCache) Set(ctx context.Context, s *domain.Stats) {
	if c == nil || c.client == nil {
		return
	}

	data, err := json.Marshal(s)
	if err != nil {
		return
	}
	c.client.Set(ctx, statsKey, data, c.ttl)
}

// Invalidate drops the cached stats. Project mutations call this so the
// dashboard does not serve a stale aggregate for a full TTL.
func (c *StatsCache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, statsKey)
}
