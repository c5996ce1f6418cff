package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clientdeck/portal-backend/internal/projects/domain"
)

func newTestCache(t *testing.T, ttl time.Duration) (*StatsCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewStatsCache(client, ttl), mr
}

func TestStatsCache_RoundTrip(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	_, ok := cache.Get(ctx)
	assert.False(t, ok, "empty cache must miss")

	want := &domain.Stats{Total: 3, Active: 2, TotalPrice: 15000, TotalPaid: 4000}
	cache.Set(ctx, want)

	got, ok := cache.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestStatsCache_Invalidate(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	cache.Set(ctx, &domain.Stats{Total: 1})
	cache.Invalidate(ctx)

	_, ok := cache.Get(ctx)
	assert.False(t, ok)
}

func TestStatsCache_TTLExpiry(t *testing.T) {
	cache, mr := newTestCache(t, 30*time.Second)
	ctx := context.Background()

	cache.Set(ctx, &domain.Stats{Total: 1})
	mr.FastForward(31 * time.Second)

	_, ok := cache.Get(ctx)
	assert.False(t, ok)
}

func TestStatsCache_NilClientIsSafe(t *testing.T) {
	cache := NewStatsCache(nil, time.Minute)
	ctx := context.Background()

	cache.Set(ctx, &domain.Stats{Total: 1})
	cache.Invalidate(ctx)

	_, ok := cache.Get(ctx)
	assert.False(t, ok)
}
