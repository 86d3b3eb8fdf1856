// Package ratelimit bounds how often the privileged send action can be
// invoked per client identity. This is an admission-control boundary:
// over-limit requests are rejected immediately, never queued.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter admits or rejects a request for a client key.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// SlidingWindow is an in-memory sliding-window limiter: at most limit
// admissions per key within any trailing window.
type SlidingWindow struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu   sync.Mutex
	hits map[string][]time.Time
}

// NewSlidingWindow creates an in-memory sliding-window limiter.
func NewSlidingWindow(limit int, window time.Duration) *SlidingWindow {
	return NewSlidingWindowWithClock(limit, window, time.Now)
}

// NewSlidingWindowWithClock creates a limiter with an injectable clock.
func NewSlidingWindowWithClock(limit int, window time.Duration, now func() time.Time) *SlidingWindow {
	return &SlidingWindow{
		limit:  limit,
		window: window,
		now:    now,
		hits:   make(map[string][]time.Time),
	}
}

func (l *SlidingWindow) Allow(ctx context.Context, key string) (bool, error) {
	now := l.now()
	cutoff := now.Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	var kept []time.Time
	for _, ts := range l.hits[key] {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}

	if len(kept) >= l.limit {
		l.hits[key] = kept
		return false, nil
	}

	l.hits[key] = append(kept, now)
	return true, nil
}
