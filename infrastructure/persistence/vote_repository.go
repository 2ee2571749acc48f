package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"music-contest/domain/repository"
)

// VoteRepository implements vote persistence over SQLite.
type VoteRepository struct {
	db *sql.DB
}

func NewVoteRepository(db *sql.DB) *VoteRepository { return &VoteRepository{db: db} }

func (r *VoteRepository) Add(ctx context.Context, submissionID int64, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO votes (submission_id, user_id, created_at) VALUES (?, ?, ?)`,
		submissionID, userID, formatTime(time.Now().UTC()))
	if err != nil {
		if isUniqueViolation(err, "votes.submission_id") {
			return repository.ErrDuplicateVote
		}
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return repository.ErrNotFound
		}
		return fmt.Errorf("inserting vote: %w", err)
	}
	return nil
}

func (r *VoteRepository) Remove(ctx context.Context, submissionID int64, userID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM votes WHERE submission_id = ? AND user_id = ?`,
		submissionID, userID)
	if err != nil {
		return fmt.Errorf("deleting vote: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting vote: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
