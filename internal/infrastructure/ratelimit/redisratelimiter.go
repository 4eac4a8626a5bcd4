package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gohub-app/gohub/internal/shared/biztime"
)

// RedisRateLimiter counts requests in fixed windows shared by every instance.
// Each window bucket is a counter key with a TTL of one window.
type RedisRateLimiter struct {
	client  redis.UniversalClient
	windows []window
	now     biztime.Clock
}

func NewRedisRateLimiter(client redis.UniversalClient, limits Limits, clock biztime.Clock) *RedisRateLimiter {
	return &RedisRateLimiter{
		client:  client,
		windows: limits.windows(),
		now:     clock.OrDefault(),
	}
}

func (l *RedisRateLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	if len(l.windows) == 0 {
		return Decision{Allowed: true}, nil
	}

	now := l.now()
	counts := make([]*redis.IntCmd, len(l.windows))

	pipe := l.client.TxPipeline()
	for i, w := range l.windows {
		bucketKey := l.bucketKey(key, w, now)
		counts[i] = pipe.Incr(ctx, bucketKey)
		pipe.Expire(ctx, bucketKey, w.length+time.Second)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return Decision{}, fmt.Errorf("failed to count request: %w", err)
	}

	for i, w := range l.windows {
		if counts[i].Val() > int64(w.limit) {
			return Decision{RetryAfter: bucketEnd(w, now).Sub(now)}, nil
		}
	}
	return Decision{Allowed: true}, nil
}

func (l *RedisRateLimiter) bucketKey(key string, w window, now time.Time) string {
	return fmt.Sprintf("ratelimit:%s:%s:%d", key, w.name, now.Unix()/int64(w.length.Seconds()))
}

func bucketEnd(w window, now time.Time) time.Time {
	return now.Truncate(w.length).Add(w.length)
}
