package model

import "time"

// Vote is unique per (submission_id, user_id).
type Vote struct {
	VoteID       int64     `json:"vote_id"`
	SubmissionID int64     `json:"submission_id"`
	UserID       string    `json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// AuditLogEntry is append-only; normal flow never updates or deletes rows.
type AuditLogEntry struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"created_at"`
}

// RateLimitState is the persisted fixed-window counter row per (user, action).
// Operational data only; expired rows are purged lazily.
type RateLimitState struct {
	UserID      string    `json:"user_id"`
	Action      string    `json:"action"`
	CallCount   int       `json:"call_count"`
	WindowStart time.Time `json:"window_start"`
}
