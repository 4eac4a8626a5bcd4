package ratelimit

import (
	"context"
	"time"
)

// Limits caps requests per client. A zero limit disables that window.
type Limits struct {
	PerMinute int
	PerHour   int
}

// Decision is the outcome of one Allow call. RetryAfter is set when denied.
type Decision struct {
	Allowed    bool
	RetryAfter time.Duration
}

// Limiter counts requests per key against fixed Limits.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

type window struct {
	name   string
	length time.Duration
	limit  int
}

func (l Limits) windows() []window {
	var ws []window
	if l.PerMinute > 0 {
		ws = append(ws, window{name: "minute", length: time.Minute, limit: l.PerMinute})
	}
	if l.PerHour > 0 {
		ws = append(ws, window{name: "hour", length: time.Hour, limit: l.PerHour})
	}
	return ws
}
