package repository

import "time"

// IRateLimiter is a per-user call throttle. Implementations must fail open:
// infrastructure trouble allows the call rather than blocking admission.
type IRateLimiter interface {
	IsAllowed(userID string) bool
	RemainingTime(userID string) time.Duration
	ResetUser(userID string)
	ResetAll()
}
