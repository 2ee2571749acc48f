package repository

import (
	"context"

	"music-contest/domain/model"
)

// IContest persists contest records.
type IContest interface {
	Create(ctx context.Context, contest *model.Contest) error
	GetByID(ctx context.Context, contestID string) (*model.Contest, error)
	Update(ctx context.Context, contest *model.Contest) error
	// Delete removes the contest and cascades to its submissions and their
	// votes in one transaction. Returns the number of cascaded submissions.
	Delete(ctx context.Context, contestID string) (int64, error)
}

// ISubmission persists submission records.
type ISubmission interface {
	// Insert re-checks the per-user count against limit and inserts inside a
	// single exclusive transaction, so two concurrent submissions cannot both
	// take the last slot. Returns ErrLimitReached or ErrDuplicateSubmission.
	Insert(ctx context.Context, sub *model.Submission, limit int) (int64, error)
	GetByID(ctx context.Context, submissionID int64) (*model.Submission, error)
	// SetMessageIDs records the posted channel message references in a second,
	// separate update after the row is durably committed.
	SetMessageIDs(ctx context.Context, submissionID int64, publicMsgID, reviewMsgID *string) error
	ListByContest(ctx context.Context, contestID string) ([]*model.Submission, error)
	CountForUser(ctx context.Context, contestID, userID string) (int64, error)
	Delete(ctx context.Context, submissionID int64) error
}

// IVote persists votes, unique per (submission, user).
type IVote interface {
	Add(ctx context.Context, submissionID int64, userID string) error
	Remove(ctx context.Context, submissionID int64, userID string) error
}

// IAudit is the append-only audit trail for mutating operations.
type IAudit interface {
	Append(ctx context.Context, entry *model.AuditLogEntry) error
}

// IStats provides the read-only rollups for one contest.
type IStats interface {
	TotalSubmissions(ctx context.Context, contestID string) (int64, error)
	UniqueParticipants(ctx context.Context, contestID string) (int64, error)
	PlatformBreakdown(ctx context.Context, contestID string) (map[string]int64, error)
	Timeline(ctx context.Context, contestID string) ([]model.TimelineBucket, error)
	Leaderboard(ctx context.Context, contestID string) ([]model.LeaderboardEntry, error)
	VoteTotals(ctx context.Context, contestID string) (total int64, voters int64, err error)
}
