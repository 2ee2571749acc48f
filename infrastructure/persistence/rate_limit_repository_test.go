package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimitTake(t *testing.T) {
	store := newTestDB(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, _, err := store.rateLimits.Take(ctx, "user-1", "submit", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed, "call %d", i+1)
	}

	allowed, retryAfter, err := store.rateLimits.Take(ctx, "user-1", "submit", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Greater(t, retryAfter, time.Duration(0))
	assert.LessOrEqual(t, retryAfter, time.Minute)
}

func TestRateLimitActionsAreIndependent(t *testing.T) {
	store := newTestDB(t)
	ctx := context.Background()

	allowed, _, err := store.rateLimits.Take(ctx, "user-1", "submit", 1, time.Minute)
	require.NoError(t, err)
	require.True(t, allowed)

	allowed, _, err = store.rateLimits.Take(ctx, "user-1", "submit", 1, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed)

	allowed, _, err = store.rateLimits.Take(ctx, "user-1", "delete", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRateLimitExpiredWindowIsPurged(t *testing.T) {
	store := newTestDB(t)
	ctx := context.Background()

	// A one-nanosecond window expires before the next check runs.
	allowed, _, err := store.rateLimits.Take(ctx, "user-1", "submit", 1, time.Nanosecond)
	require.NoError(t, err)
	require.True(t, allowed)

	time.Sleep(time.Millisecond)

	allowed, _, err = store.rateLimits.Take(ctx, "user-1", "submit", 1, time.Nanosecond)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRateLimitRemainingDoesNotConsume(t *testing.T) {
	store := newTestDB(t)
	ctx := context.Background()

	allowed, _, err := store.rateLimits.Take(ctx, "user-1", "submit", 2, time.Minute)
	require.NoError(t, err)
	require.True(t, allowed)

	for i := 0; i < 5; i++ {
		_, err := store.rateLimits.Remaining(ctx, "user-1", "submit", time.Minute)
		require.NoError(t, err)
	}

	allowed, _, err = store.rateLimits.Take(ctx, "user-1", "submit", 2, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRateLimitReset(t *testing.T) {
	store := newTestDB(t)
	ctx := context.Background()

	allowed, _, err := store.rateLimits.Take(ctx, "user-1", "submit", 1, time.Minute)
	require.NoError(t, err)
	require.True(t, allowed)

	require.NoError(t, store.rateLimits.Reset(ctx, "user-1", "submit"))

	allowed, _, err = store.rateLimits.Take(ctx, "user-1", "submit", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
}
