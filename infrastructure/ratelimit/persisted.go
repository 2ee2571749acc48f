package ratelimit

import (
	"context"
	"time"

	"music-contest/infrastructure/logger"
)

// WindowStore is the persisted fixed-window backend (the rate_limits table).
type WindowStore interface {
	Take(ctx context.Context, userID, action string, maxCalls int, window time.Duration) (allowed bool, retryAfter time.Duration, err error)
	Remaining(ctx context.Context, userID, action string, window time.Duration) (time.Duration, error)
	Reset(ctx context.Context, userID, action string) error
	ResetAll(ctx context.Context, action string) error
}

// PersistedLimiter throttles through the shared store so every process sees
// the same windows. It fails OPEN: on any storage error the action is allowed
// and the error is logged, because admission correctness matters more than
// strict throttling.
type PersistedLimiter struct {
	store      WindowStore
	action     string
	maxCalls   int
	timeWindow time.Duration
	opTimeout  time.Duration
}

func NewPersistedLimiter(store WindowStore, action string, maxCalls int, timeWindow time.Duration) *PersistedLimiter {
	return &PersistedLimiter{
		store:      store,
		action:     action,
		maxCalls:   maxCalls,
		timeWindow: timeWindow,
		opTimeout:  2 * time.Second,
	}
}

func (l *PersistedLimiter) IsAllowed(userID string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), l.opTimeout)
	defer cancel()

	allowed, _, err := l.store.Take(ctx, userID, l.action, l.maxCalls, l.timeWindow)
	if err != nil {
		logger.GetLogger().
			WithField("error", err).
			WithField("action", l.action).
			Warn("Rate-limit store unavailable, failing open")
		return true
	}
	return allowed
}

func (l *PersistedLimiter) RemainingTime(userID string) time.Duration {
	ctx, cancel := context.WithTimeout(context.Background(), l.opTimeout)
	defer cancel()

	remaining, err := l.store.Remaining(ctx, userID, l.action, l.timeWindow)
	if err != nil {
		return 0
	}
	return remaining
}

func (l *PersistedLimiter) ResetUser(userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), l.opTimeout)
	defer cancel()
	if err := l.store.Reset(ctx, userID, l.action); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Failed to reset rate-limit window")
	}
}

func (l *PersistedLimiter) ResetAll() {
	ctx, cancel := context.WithTimeout(context.Background(), l.opTimeout)
	defer cancel()
	if err := l.store.ResetAll(ctx, l.action); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Failed to reset rate-limit windows")
	}
}
