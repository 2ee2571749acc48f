package dto

import "music-contest/domain/model"

// SubmitSongRequest enters a track into a contest. The caller identity
// (user id, display name) comes from the auth context, not the body.
type SubmitSongRequest struct {
	ContestID string `json:"contest_id" binding:"required"`
	SongName  string `json:"song_name" binding:"required"`
	URL       string `json:"url" binding:"required"`
}

// SubmitSongResponse is returned once the submission row is durably committed.
// Warnings carry post-commit side effects that failed (channel posting); the
// submission itself is still accepted.
type SubmitSongResponse struct {
	SubmissionID int64           `json:"submission_id"`
	Platform     string          `json:"platform"`
	CanonicalURL string          `json:"canonical_url"`
	Warnings     []model.Warning `json:"warnings,omitempty"`
}

// DeleteSubmissionResponse reports best-effort message cleanup outcomes.
type DeleteSubmissionResponse struct {
	SubmissionID int64           `json:"submission_id"`
	Warnings     []model.Warning `json:"warnings,omitempty"`
}

// RejectionResponse is the wire form of a typed rejection.
type RejectionResponse struct {
	Kind   string `json:"kind"`
	Reason string `json:"reason"`
}
