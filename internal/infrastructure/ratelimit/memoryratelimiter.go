package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/gohub-app/gohub/internal/shared/biztime"
)

// pruneEvery is how many Allow calls pass between sweeps of idle keys.
const pruneEvery = 1024

// MemoryRateLimiter is a per-process sliding window limiter. Only admitted
// requests are counted.
type MemoryRateLimiter struct {
	mu      sync.Mutex
	windows []window
	hits    map[string][][]time.Time
	calls   int
	now     biztime.Clock
}

func NewMemoryRateLimiter(limits Limits, clock biztime.Clock) *MemoryRateLimiter {
	return &MemoryRateLimiter{
		windows: limits.windows(),
		hits:    make(map[string][][]time.Time),
		now:     clock.OrDefault(),
	}
}

func (l *MemoryRateLimiter) Allow(_ context.Context, key string) (Decision, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.calls++
	if l.calls%pruneEvery == 0 {
		l.prune(now)
	}

	queues, ok := l.hits[key]
	if !ok {
		queues = make([][]time.Time, len(l.windows))
	}

	for i, w := range l.windows {
		queues[i] = trimBefore(queues[i], now.Add(-w.length))
		if len(queues[i]) >= w.limit {
			l.hits[key] = queues
			return Decision{RetryAfter: queues[i][0].Add(w.length).Sub(now)}, nil
		}
	}

	for i := range l.windows {
		queues[i] = append(queues[i], now)
	}
	l.hits[key] = queues
	return Decision{Allowed: true}, nil
}

// prune drops keys with no hits inside any window.
func (l *MemoryRateLimiter) prune(now time.Time) {
	for key, queues := range l.hits {
		empty := true
		for i, w := range l.windows {
			queues[i] = trimBefore(queues[i], now.Add(-w.length))
			if len(queues[i]) > 0 {
				empty = false
			}
		}
		if empty {
			delete(l.hits, key)
		}
	}
}

// trimBefore drops timestamps older than cutoff from the sorted queue.
func trimBefore(queue []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(queue) && queue[i].Before(cutoff) {
		i++
	}
	return queue[i:]
}
