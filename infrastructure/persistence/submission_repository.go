package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"music-contest/domain/model"
	"music-contest/domain/repository"
)

// SubmissionRepository implements submission persistence over SQLite.
type SubmissionRepository struct {
	db *sql.DB
}

func NewSubmissionRepository(db *sql.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// Insert commits one admission attempt. The per-user count is re-read inside
// the same transaction as the insert; the connection opens transactions with
// an immediate write lock, so two concurrent attempts for the last slot
// serialize and exactly one wins. The unique (contest_id, user_id, url) index
// independently guards the duplicate-URL race.
func (r *SubmissionRepository) Insert(ctx context.Context, sub *model.Submission, limit int) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning submission transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var count int64
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM submissions WHERE contest_id = ? AND user_id = ?`,
		sub.ContestID, sub.UserID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("re-checking submission count: %w", err)
	}
	if count >= int64(limit) {
		return 0, repository.ErrLimitReached
	}

	sub.CreatedAt = time.Now().UTC()
	res, err := tx.ExecContext(ctx,
		`INSERT INTO submissions (contest_id, user_id, user_name, song_name, platform, url, metadata, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sub.ContestID,
		sub.UserID,
		sub.UserName,
		sub.SongName,
		sub.Platform,
		sub.URL,
		sub.Metadata,
		formatTime(sub.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err, "submissions.contest_id") {
			return 0, repository.ErrDuplicateSubmission
		}
		return 0, fmt.Errorf("inserting submission: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading submission id: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing submission: %w", err)
	}
	sub.SubmissionID = id
	return id, nil
}

func (r *SubmissionRepository) GetByID(ctx context.Context, submissionID int64) (*model.Submission, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT submission_id, contest_id, user_id, user_name, song_name, platform, url,
			public_message_id, review_message_id, metadata, created_at
		FROM submissions WHERE submission_id = ?`, submissionID)

	var (
		sub       model.Submission
		publicID  sql.NullString
		reviewID  sql.NullString
		metadata  sql.NullString
		createdAt string
	)
	err := row.Scan(
		&sub.SubmissionID,
		&sub.ContestID,
		&sub.UserID,
		&sub.UserName,
		&sub.SongName,
		&sub.Platform,
		&sub.URL,
		&publicID,
		&reviewID,
		&metadata,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("selecting submission: %w", err)
	}
	if publicID.Valid {
		sub.PublicMessageID = &publicID.String
	}
	if reviewID.Valid {
		sub.ReviewMessageID = &reviewID.String
	}
	if metadata.Valid {
		sub.Metadata = &metadata.String
	}
	sub.CreatedAt = parseTime(createdAt)
	return &sub, nil
}

// SetMessageIDs is the second, post-commit update that records where the
// display payloads landed. It deliberately runs outside the insert
// transaction; a failure here never unwinds the submission.
func (r *SubmissionRepository) SetMessageIDs(ctx context.Context, submissionID int64, publicMsgID, reviewMsgID *string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE submissions SET public_message_id = ?, review_message_id = ? WHERE submission_id = ?`,
		publicMsgID, reviewMsgID, submissionID)
	if err != nil {
		return fmt.Errorf("updating message ids: %w", err)
	}
	return nil
}

// ListByContest returns a contest's submissions in insertion order, for the
// CSV export.
func (r *SubmissionRepository) ListByContest(ctx context.Context, contestID string) ([]*model.Submission, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT submission_id, contest_id, user_id, user_name, song_name, platform, url,
			public_message_id, review_message_id, metadata, created_at
		FROM submissions WHERE contest_id = ? ORDER BY submission_id`, contestID)
	if err != nil {
		return nil, fmt.Errorf("listing submissions: %w", err)
	}
	defer rows.Close()

	var subs []*model.Submission
	for rows.Next() {
		var (
			sub       model.Submission
			publicID  sql.NullString
			reviewID  sql.NullString
			metadata  sql.NullString
			createdAt string
		)
		if err := rows.Scan(
			&sub.SubmissionID, &sub.ContestID, &sub.UserID, &sub.UserName,
			&sub.SongName, &sub.Platform, &sub.URL,
			&publicID, &reviewID, &metadata, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("scanning submission: %w", err)
		}
		if publicID.Valid {
			sub.PublicMessageID = &publicID.String
		}
		if reviewID.Valid {
			sub.ReviewMessageID = &reviewID.String
		}
		if metadata.Valid {
			sub.Metadata = &metadata.String
		}
		sub.CreatedAt = parseTime(createdAt)
		subs = append(subs, &sub)
	}
	return subs, rows.Err()
}

func (r *SubmissionRepository) CountForUser(ctx context.Context, contestID, userID string) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM submissions WHERE contest_id = ? AND user_id = ?`,
		contestID, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting submissions: %w", err)
	}
	return count, nil
}

func (r *SubmissionRepository) Delete(ctx context.Context, submissionID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM submissions WHERE submission_id = ?`, submissionID)
	if err != nil {
		return fmt.Errorf("deleting submission: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting submission: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
