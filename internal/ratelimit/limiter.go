// Package ratelimit implements a sliding-window admission limiter keyed by
// client identifier. State lives for the process lifetime only; it is a
// best-effort in-process guard, not a durability guarantee.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter admits up to limit requests per client within a trailing window.
// The zero value is not usable; construct with New. One Limiter is owned by
// whatever serves requests and passed down explicitly.
type Limiter struct {
	clients map[string][]time.Time
	limit   int
	window  time.Duration
	mu      sync.Mutex
}

// New creates a Limiter allowing limit requests per window per client.
func New(limit int, window time.Duration) *Limiter {
	return &Limiter{
		clients: make(map[string][]time.Time),
		limit:   limit,
		window:  window,
	}
}

// Allow reports whether a request from clientID at time now is admitted,
// recording it if so. Timestamps older than the window are evicted lazily
// here; rejected requests are not recorded. The check-and-record is atomic
// so concurrent requests cannot over-admit.
func (l *Limiter) Allow(clientID string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	retained := l.evict(clientID, now)
	if len(retained) >= l.limit {
		l.clients[clientID] = retained
		return false
	}

	l.clients[clientID] = append(retained, now)
	return true
}

// RetryAfter returns how long the given client must wait before its next
// request could be admitted. Zero when a request would be admitted now.
func (l *Limiter) RetryAfter(clientID string, now time.Time) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	retained := l.evict(clientID, now)
	l.clients[clientID] = retained
	if len(retained) < l.limit {
		return 0
	}

	oldest := retained[0]
	return oldest.Add(l.window).Sub(now)
}

// evict drops timestamps outside [now-window, now] for clientID and returns
// the retained slice. Caller holds the lock.
func (l *Limiter) evict(clientID string, now time.Time) []time.Time {
	cutoff := now.Add(-l.window)
	reqs := l.clients[clientID]
	retained := reqs[:0]
	for _, t := range reqs {
		if !t.Before(cutoff) {
			retained = append(retained, t)
		}
	}
	return retained
}
