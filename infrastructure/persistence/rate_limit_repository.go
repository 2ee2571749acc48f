package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// RateLimitRepository is the fixed-window counter store backing the persisted
// rate limiter. Expired windows are purged lazily on each check.
type RateLimitRepository struct {
	db *sql.DB
}

func NewRateLimitRepository(db *sql.DB) *RateLimitRepository {
	return &RateLimitRepository{db: db}
}

// Take consumes one call from the user's window if the limit allows it.
// Returns whether the call is allowed and, when denied, how long until the
// window resets.
func (r *RateLimitRepository) Take(ctx context.Context, userID, action string, maxCalls int, window time.Duration) (bool, time.Duration, error) {
	now := time.Now().UTC()
	cutoff := now.Add(-window)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, 0, fmt.Errorf("beginning rate-limit transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Lazy purge of any expired windows, not just this caller's.
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM rate_limits WHERE window_start < ?`, formatTime(cutoff)); err != nil {
		return false, 0, fmt.Errorf("purging expired windows: %w", err)
	}

	var count int
	var windowStart string
	err = tx.QueryRowContext(ctx,
		`SELECT call_count, window_start FROM rate_limits WHERE user_id = ? AND action = ?`,
		userID, action).Scan(&count, &windowStart)

	switch {
	case err == sql.ErrNoRows:
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO rate_limits (user_id, action, call_count, window_start) VALUES (?, ?, 1, ?)`,
			userID, action, formatTime(now)); err != nil {
			return false, 0, fmt.Errorf("starting rate-limit window: %w", err)
		}
	case err != nil:
		return false, 0, fmt.Errorf("reading rate-limit window: %w", err)
	case count >= maxCalls:
		remaining := parseTime(windowStart).Add(window).Sub(now)
		if remaining < 0 {
			remaining = 0
		}
		return false, remaining, tx.Commit()
	default:
		if _, err := tx.ExecContext(ctx,
			`UPDATE rate_limits SET call_count = call_count + 1 WHERE user_id = ? AND action = ?`,
			userID, action); err != nil {
			return false, 0, fmt.Errorf("advancing rate-limit window: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, 0, fmt.Errorf("committing rate-limit window: %w", err)
	}
	return true, 0, nil
}

// Remaining reports how long until the user's current window expires, without
// consuming a call. Zero when no live window exists.
func (r *RateLimitRepository) Remaining(ctx context.Context, userID, action string, window time.Duration) (time.Duration, error) {
	var windowStart string
	err := r.db.QueryRowContext(ctx,
		`SELECT window_start FROM rate_limits WHERE user_id = ? AND action = ?`,
		userID, action).Scan(&windowStart)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading rate-limit window: %w", err)
	}
	remaining := parseTime(windowStart).Add(window).Sub(time.Now().UTC())
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

func (r *RateLimitRepository) Reset(ctx context.Context, userID, action string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM rate_limits WHERE user_id = ? AND action = ?`, userID, action)
	if err != nil {
		return fmt.Errorf("resetting rate-limit window: %w", err)
	}
	return nil
}

func (r *RateLimitRepository) ResetAll(ctx context.Context, action string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM rate_limits WHERE action = ?`, action)
	if err != nil {
		return fmt.Errorf("resetting rate-limit windows: %w", err)
	}
	return nil
}
