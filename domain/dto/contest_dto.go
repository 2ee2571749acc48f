package dto

// CreateContestRequest creates a contest bound to a (public, review) channel pair.
type CreateContestRequest struct {
	ContestID        string `json:"contest_id" binding:"required"`
	PublicChannelID  string `json:"public_channel_id" binding:"required"`
	ReviewChannelID  string `json:"review_channel_id" binding:"required"`
	AllowedPlatforms string `json:"allowed_platforms,omitempty"` // comma-separated, e.g. "suno,youtube"
	SubmissionLimit  int    `json:"submission_limit,omitempty"`  // per user, default 1
	Description      string `json:"description,omitempty"`
	PrizeInfo        string `json:"prize_info,omitempty"`
}

// EditContestRequest patches an existing contest. Nil fields are left untouched.
type EditContestRequest struct {
	PublicChannelID *string `json:"public_channel_id,omitempty"`
	ReviewChannelID *string `json:"review_channel_id,omitempty"`
	SubmissionLimit *int    `json:"submission_limit,omitempty"`
	Status          *string `json:"status,omitempty"`
	Description     *string `json:"description,omitempty"`
}

// DeleteContestResponse reports how many submissions were cascaded away.
type DeleteContestResponse struct {
	ContestID          string `json:"contest_id"`
	DeletedSubmissions int64  `json:"deleted_submissions"`
}
