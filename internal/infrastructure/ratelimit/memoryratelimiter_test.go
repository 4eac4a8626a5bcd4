package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *stepClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestMemoryRateLimiter_PerMinute(t *testing.T) {
	clock := &stepClock{now: time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)}
	limiter := NewMemoryRateLimiter(Limits{PerMinute: 3}, clock.Now)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		d, err := limiter.Allow(ctx, "ip:1.2.3.4")
		require.NoError(t, err)
		assert.True(t, d.Allowed, "request %d should be allowed", i+1)
		clock.Advance(10 * time.Second)
	}

	d, err := limiter.Allow(ctx, "ip:1.2.3.4")
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, 30*time.Second, d.RetryAfter)

	other, err := limiter.Allow(ctx, "ip:5.6.7.8")
	require.NoError(t, err)
	assert.True(t, other.Allowed, "keys are independent")

	clock.Advance(31 * time.Second)
	d, err = limiter.Allow(ctx, "ip:1.2.3.4")
	require.NoError(t, err)
	assert.True(t, d.Allowed, "oldest hit slid out of the window")
}

func TestMemoryRateLimiter_PerHour(t *testing.T) {
	clock := &stepClock{now: time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)}
	limiter := NewMemoryRateLimiter(Limits{PerMinute: 100, PerHour: 2}, clock.Now)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		d, _ := limiter.Allow(ctx, "k")
		assert.True(t, d.Allowed)
		clock.Advance(5 * time.Minute)
	}

	d, _ := limiter.Allow(ctx, "k")
	assert.False(t, d.Allowed)
	assert.Equal(t, 50*time.Minute, d.RetryAfter)
}

func TestMemoryRateLimiter_DeniedRequestsAreNotCounted(t *testing.T) {
	clock := &stepClock{now: time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)}
	limiter := NewMemoryRateLimiter(Limits{PerMinute: 1}, clock.Now)
	ctx := context.Background()

	d, _ := limiter.Allow(ctx, "k")
	require.True(t, d.Allowed)
	for i := 0; i < 5; i++ {
		d, _ = limiter.Allow(ctx, "k")
		assert.False(t, d.Allowed)
	}

	clock.Advance(time.Minute + time.Second)
	d, _ = limiter.Allow(ctx, "k")
	assert.True(t, d.Allowed)
}

func TestMemoryRateLimiter_NoLimits(t *testing.T) {
	limiter := NewMemoryRateLimiter(Limits{}, nil)
	for i := 0; i < 10; i++ {
		d, err := limiter.Allow(context.Background(), "k")
		require.NoError(t, err)
		assert.True(t, d.Allowed)
	}
}

func TestMemoryRateLimiter_PrunesIdleKeys(t *testing.T) {
	clock := &stepClock{now: time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)}
	limiter := NewMemoryRateLimiter(Limits{PerMinute: 10}, clock.Now)

	_, _ = limiter.Allow(context.Background(), "idle")
	clock.Advance(2 * time.Minute)
	for i := 1; i < pruneEvery; i++ {
		_, _ = limiter.Allow(context.Background(), "busy")
	}

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	assert.NotContains(t, limiter.hits, "idle")
	assert.Contains(t, limiter.hits, "busy")
}
