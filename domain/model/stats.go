package model

import "time"

// TimelineBucket is the submission count for one calendar day (UTC).
type TimelineBucket struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

// LeaderboardEntry is one row of the vote leaderboard. Ordering is vote count
// descending, then created_at ascending so the earlier submission wins ties.
type LeaderboardEntry struct {
	SubmissionID int64     `json:"submission_id"`
	SongName     string    `json:"song_name"`
	UserName     string    `json:"user_name"`
	Platform     string    `json:"platform"`
	URL          string    `json:"url"`
	VoteCount    int64     `json:"vote_count"`
	CreatedAt    time.Time `json:"created_at"`
}
