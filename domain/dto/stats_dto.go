package dto

import "music-contest/domain/model"

// LeaderboardRow is one submission in the vote leaderboard, ordered by
// vote count descending with earlier submissions winning ties.
type LeaderboardRow struct {
	Rank         int    `json:"rank"`
	SubmissionID int64  `json:"submission_id"`
	SongName     string `json:"song_name"`
	UserName     string `json:"user_name"`
	Platform     string `json:"platform"`
	URL          string `json:"url"`
	VoteCount    int64  `json:"vote_count"`
}

// ContestStatsResponse is a read-only snapshot over the contest store.
// Leaderboard figures are only populated while the contest is in voting
// or closed status.
type ContestStatsResponse struct {
	Contest            *model.Contest   `json:"contest"`
	TotalSubmissions   int64            `json:"total_submissions"`
	UniqueParticipants int64            `json:"unique_participants"`
	Platforms          map[string]int64 `json:"platforms"`
	Timeline           []TimelinePoint  `json:"timeline"`
	Leaderboard        []LeaderboardRow `json:"leaderboard,omitempty"`
	TotalVotes         int64            `json:"total_votes,omitempty"`
	UniqueVoters       int64            `json:"unique_voters,omitempty"`
}

// TimelinePoint is the submission count for one calendar day.
type TimelinePoint struct {
	Day   string `json:"day"` // YYYY-MM-DD
	Count int64  `json:"count"`
}
