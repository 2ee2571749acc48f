package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"music-contest/domain/model"
	"music-contest/domain/repository"
)

// ContestRepository implements contest persistence over SQLite.
type ContestRepository struct {
	db *sql.DB
}

func NewContestRepository(db *sql.DB) *ContestRepository { return &ContestRepository{db: db} }

const contestColumns = `contest_id, public_channel_id, review_channel_id, allowed_platforms,
	max_submissions_per_user, status, description, prize_info, start_date, end_date,
	created_by, created_at, updated_at`

func (r *ContestRepository) Create(ctx context.Context, contest *model.Contest) error {
	now := time.Now().UTC()
	contest.CreatedAt = now
	contest.UpdatedAt = now

	q := `INSERT INTO contests (` + contestColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		contest.ContestID,
		contest.PublicChannelID,
		contest.ReviewChannelID,
		joinPlatforms(contest.AllowedPlatforms),
		contest.MaxSubmissions,
		string(contest.Status),
		contest.Description,
		contest.PrizeInfo,
		nullableTime(contest.StartDate),
		nullableTime(contest.EndDate),
		contest.CreatedBy,
		formatTime(now),
		formatTime(now),
	)
	if err != nil {
		if isUniqueViolation(err, "contests.contest_id") {
			return repository.ErrDuplicateContest
		}
		if isUniqueViolation(err, "contests.public_channel_id") {
			return repository.ErrDuplicateChannelPair
		}
		return fmt.Errorf("inserting contest: %w", err)
	}
	return nil
}

func (r *ContestRepository) GetByID(ctx context.Context, contestID string) (*model.Contest, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+contestColumns+` FROM contests WHERE contest_id = ?`, contestID)
	contest, err := scanContest(row)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("selecting contest: %w", err)
	}
	return contest, nil
}

func (r *ContestRepository) Update(ctx context.Context, contest *model.Contest) error {
	contest.UpdatedAt = time.Now().UTC()
	q := `UPDATE contests SET public_channel_id = ?, review_channel_id = ?, allowed_platforms = ?,
		max_submissions_per_user = ?, status = ?, description = ?, prize_info = ?,
		start_date = ?, end_date = ?, updated_at = ?
		WHERE contest_id = ?`
	res, err := r.db.ExecContext(ctx, q,
		contest.PublicChannelID,
		contest.ReviewChannelID,
		joinPlatforms(contest.AllowedPlatforms),
		contest.MaxSubmissions,
		string(contest.Status),
		contest.Description,
		contest.PrizeInfo,
		nullableTime(contest.StartDate),
		nullableTime(contest.EndDate),
		formatTime(contest.UpdatedAt),
		contest.ContestID,
	)
	if err != nil {
		if isUniqueViolation(err, "contests.public_channel_id") {
			return repository.ErrDuplicateChannelPair
		}
		return fmt.Errorf("updating contest: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating contest: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes the contest in a single transaction. Submissions and their
// votes go with it through the ON DELETE CASCADE chain; the count is taken
// before the delete so it can be reported back.
func (r *ContestRepository) Delete(ctx context.Context, contestID string) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning delete transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var count int64
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM submissions WHERE contest_id = ?`, contestID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting submissions: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM contests WHERE contest_id = ?`, contestID)
	if err != nil {
		return 0, fmt.Errorf("deleting contest: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("deleting contest: %w", err)
	}
	if affected == 0 {
		return 0, repository.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing delete: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanContest(row rowScanner) (*model.Contest, error) {
	var (
		contest    model.Contest
		platforms  sql.NullString
		status     string
		desc       sql.NullString
		prize      sql.NullString
		start, end sql.NullString
		createdAt  string
		updatedAt  string
	)
	err := row.Scan(
		&contest.ContestID,
		&contest.PublicChannelID,
		&contest.ReviewChannelID,
		&platforms,
		&contest.MaxSubmissions,
		&status,
		&desc,
		&prize,
		&start,
		&end,
		&contest.CreatedBy,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	contest.AllowedPlatforms = splitPlatforms(platforms)
	contest.Status = model.ContestStatus(status)
	if desc.Valid {
		contest.Description = &desc.String
	}
	if prize.Valid {
		contest.PrizeInfo = &prize.String
	}
	if start.Valid {
		t := parseTime(start.String)
		contest.StartDate = &t
	}
	if end.Valid {
		t := parseTime(end.String)
		contest.EndDate = &t
	}
	contest.CreatedAt = parseTime(createdAt)
	contest.UpdatedAt = parseTime(updatedAt)
	return &contest, nil
}

func nullableTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: formatTime(*t), Valid: true}
}
