package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(maxCalls int, window time.Duration) (*Limiter, *time.Time) {
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l := NewLimiter(maxCalls, window)
	l.now = func() time.Time { return current }
	return l, &current
}

func TestLimiterAllowsUpToMaxCalls(t *testing.T) {
	l, _ := newTestLimiter(5, 60*time.Second)

	for i := 0; i < 5; i++ {
		require.True(t, l.IsAllowed("user-1"), "call %d should pass", i+1)
	}
	assert.False(t, l.IsAllowed("user-1"))
}

func TestLimiterDeniedCallIsNotRecorded(t *testing.T) {
	l, clock := newTestLimiter(2, 60*time.Second)

	require.True(t, l.IsAllowed("user-1"))
	*clock = clock.Add(30 * time.Second)
	require.True(t, l.IsAllowed("user-1"))
	require.False(t, l.IsAllowed("user-1"))

	// The first call leaves the window; the denied attempt must not have
	// taken its place.
	*clock = clock.Add(31 * time.Second)
	assert.True(t, l.IsAllowed("user-1"))
}

func TestLimiterWindowSlides(t *testing.T) {
	l, clock := newTestLimiter(5, 60*time.Second)

	for i := 0; i < 5; i++ {
		require.True(t, l.IsAllowed("user-1"))
	}
	require.False(t, l.IsAllowed("user-1"))

	*clock = clock.Add(61 * time.Second)
	assert.True(t, l.IsAllowed("user-1"))
}

func TestLimiterUsersAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(1, 60*time.Second)

	require.True(t, l.IsAllowed("user-1"))
	require.False(t, l.IsAllowed("user-1"))
	assert.True(t, l.IsAllowed("user-2"))
}

func TestRemainingTime(t *testing.T) {
	l, clock := newTestLimiter(1, 60*time.Second)

	assert.Equal(t, time.Duration(0), l.RemainingTime("user-1"))

	require.True(t, l.IsAllowed("user-1"))
	assert.Equal(t, 60*time.Second, l.RemainingTime("user-1"))

	*clock = clock.Add(45 * time.Second)
	assert.Equal(t, 15*time.Second, l.RemainingTime("user-1"))

	*clock = clock.Add(16 * time.Second)
	assert.Equal(t, time.Duration(0), l.RemainingTime("user-1"))
}

func TestResetUser(t *testing.T) {
	l, _ := newTestLimiter(1, 60*time.Second)

	require.True(t, l.IsAllowed("user-1"))
	require.False(t, l.IsAllowed("user-1"))

	l.ResetUser("user-1")
	assert.True(t, l.IsAllowed("user-1"))
}

func TestResetAll(t *testing.T) {
	l, _ := newTestLimiter(1, 60*time.Second)

	require.True(t, l.IsAllowed("user-1"))
	require.True(t, l.IsAllowed("user-2"))

	l.ResetAll()
	assert.True(t, l.IsAllowed("user-1"))
	assert.True(t, l.IsAllowed("user-2"))
}
