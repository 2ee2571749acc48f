package model

import (
	"strings"
	"time"
)

// ContestStatus is admin-driven; there is no scheduler that advances it.
type ContestStatus string

const (
	ContestStatusDraft  ContestStatus = "draft"
	ContestStatusActive ContestStatus = "active"
	ContestStatusVoting ContestStatus = "voting"
	ContestStatusClosed ContestStatus = "closed"
)

// ValidStatus reports whether s is one of the known contest statuses.
func ValidStatus(s ContestStatus) bool {
	switch s {
	case ContestStatusDraft, ContestStatusActive, ContestStatusVoting, ContestStatusClosed:
		return true
	}
	return false
}

// AcceptsSubmissions reports whether submissions are admitted in this status.
func (s ContestStatus) AcceptsSubmissions() bool {
	return s == ContestStatusActive || s == ContestStatusVoting
}

// Contest represents one contest bound to a (public, review) channel pair.
// AllowedPlatforms empty means every registered platform is allowed.
type Contest struct {
	ContestID        string        `json:"contest_id"`
	PublicChannelID  string        `json:"public_channel_id"`
	ReviewChannelID  string        `json:"review_channel_id"`
	AllowedPlatforms []string      `json:"allowed_platforms,omitempty"`
	MaxSubmissions   int           `json:"max_submissions_per_user"`
	Status           ContestStatus `json:"status"`
	Description      *string       `json:"description,omitempty"`
	PrizeInfo        *string       `json:"prize_info,omitempty"`
	StartDate        *time.Time    `json:"start_date,omitempty"`
	EndDate          *time.Time    `json:"end_date,omitempty"`
	CreatedBy        string        `json:"created_by"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// IsPlatformAllowed checks name against the allow list. Stored entries are
// lowercased, handler names are not.
func (c *Contest) IsPlatformAllowed(name string) bool {
	if len(c.AllowedPlatforms) == 0 {
		return true
	}
	name = strings.ToLower(name)
	for _, p := range c.AllowedPlatforms {
		if p == name {
			return true
		}
	}
	return false
}
