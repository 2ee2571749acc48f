// Package ratelimit throttles per-user actions. The sliding-window limiter is
// process-local; when the system runs as multiple processes each process
// limits independently, which is an accepted relaxation. Route limiting
// through the persisted store if that ever stops being acceptable.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter is a per-user sliding-window call counter.
type Limiter struct {
	maxCalls   int
	timeWindow time.Duration

	mu    sync.Mutex
	calls map[string][]time.Time

	now func() time.Time
}

// NewLimiter builds a limiter allowing maxCalls per user within timeWindow.
func NewLimiter(maxCalls int, timeWindow time.Duration) *Limiter {
	return &Limiter{
		maxCalls:   maxCalls,
		timeWindow: timeWindow,
		calls:      make(map[string][]time.Time),
		now:        time.Now,
	}
}

// IsAllowed prunes calls older than the window, then either records a new
// call and allows it, or denies without recording.
func (l *Limiter) IsAllowed(userID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	kept := l.prune(userID, now)

	if len(kept) < l.maxCalls {
		l.calls[userID] = append(kept, now)
		return true
	}
	l.calls[userID] = kept
	return false
}

// RemainingTime reports how long until the user's oldest retained call falls
// out of the window; zero when nothing is retained.
func (l *Limiter) RemainingTime(userID string) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	kept := l.prune(userID, now)
	l.calls[userID] = kept
	if len(kept) == 0 {
		return 0
	}

	oldest := kept[0]
	for _, t := range kept[1:] {
		if t.Before(oldest) {
			oldest = t
		}
	}
	remaining := oldest.Add(l.timeWindow).Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ResetUser clears one user's window.
func (l *Limiter) ResetUser(userID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.calls, userID)
}

// ResetAll clears every window.
func (l *Limiter) ResetAll() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = make(map[string][]time.Time)
}

// prune must be called with the lock held.
func (l *Limiter) prune(userID string, now time.Time) []time.Time {
	var kept []time.Time
	for _, t := range l.calls[userID] {
		if now.Sub(t) < l.timeWindow {
			kept = append(kept, t)
		}
	}
	if kept == nil {
		delete(l.calls, userID)
	}
	return kept
}
