package model

import "time"

// Submission is created only through the admission pipeline. URL holds the
// canonical embed URL derived by the platform handler, which is what the
// (contest_id, user_id, url) uniqueness constraint is keyed on.
type Submission struct {
	SubmissionID    int64     `json:"submission_id"`
	ContestID       string    `json:"contest_id"`
	UserID          string    `json:"user_id"`
	UserName        string    `json:"user_name"`
	SongName        string    `json:"song_name"`
	Platform        string    `json:"platform"`
	URL             string    `json:"url"`
	PublicMessageID *string   `json:"public_message_id,omitempty"`
	ReviewMessageID *string   `json:"review_message_id,omitempty"`
	Metadata        *string   `json:"metadata,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// TrackMetadata is the normalized result of a platform metadata fetch.
type TrackMetadata struct {
	TrackID  string `json:"track_id"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	ImageURL string `json:"image_url,omitempty"`
	EmbedURL string `json:"embed_url"`
}

// ReviewPayload is the display payload for the private review channel.
type ReviewPayload struct {
	SubmissionID int64  `json:"submission_id"`
	ContestID    string `json:"contest_id"`
	SongName     string `json:"song_name"`
	Submitter    string `json:"submitter"`
	SubmitterID  string `json:"submitter_id"`
	Platform     string `json:"platform"`
	URL          string `json:"url"`
}

// PublicPayload is the display payload for the public channel.
type PublicPayload struct {
	SubmissionID int64  `json:"submission_id"`
	ContestID    string `json:"contest_id"`
	SongName     string `json:"song_name"`
	Author       string `json:"author"`
	Platform     string `json:"platform"`
	URL          string `json:"url"`
	ImageURL     string `json:"image_url,omitempty"`
}
