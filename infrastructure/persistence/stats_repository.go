package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"music-contest/domain/model"
)

// StatsRepository provides the read-only rollups behind contest statistics.
// Every query degrades to zeros/empty for a contest with no submissions.
type StatsRepository struct {
	db *sql.DB
}

func NewStatsRepository(db *sql.DB) *StatsRepository { return &StatsRepository{db: db} }

func (r *StatsRepository) TotalSubmissions(ctx context.Context, contestID string) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM submissions WHERE contest_id = ?`, contestID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting submissions: %w", err)
	}
	return n, nil
}

func (r *StatsRepository) UniqueParticipants(ctx context.Context, contestID string) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT user_id) FROM submissions WHERE contest_id = ?`, contestID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting participants: %w", err)
	}
	return n, nil
}

func (r *StatsRepository) PlatformBreakdown(ctx context.Context, contestID string) (map[string]int64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT platform, COUNT(*) FROM submissions WHERE contest_id = ? GROUP BY platform`,
		contestID)
	if err != nil {
		return nil, fmt.Errorf("platform breakdown: %w", err)
	}
	defer rows.Close()

	breakdown := make(map[string]int64)
	for rows.Next() {
		var platform string
		var count int64
		if err := rows.Scan(&platform, &count); err != nil {
			return nil, fmt.Errorf("platform breakdown scan: %w", err)
		}
		breakdown[platform] = count
	}
	return breakdown, rows.Err()
}

// Timeline groups submissions by calendar day. created_at is stored as
// RFC3339 UTC, so the day is simply the first ten characters.
func (r *StatsRepository) Timeline(ctx context.Context, contestID string) ([]model.TimelineBucket, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT substr(created_at, 1, 10) AS day, COUNT(*)
		FROM submissions WHERE contest_id = ?
		GROUP BY day ORDER BY day ASC`, contestID)
	if err != nil {
		return nil, fmt.Errorf("timeline: %w", err)
	}
	defer rows.Close()

	var timeline []model.TimelineBucket
	for rows.Next() {
		var bucket model.TimelineBucket
		if err := rows.Scan(&bucket.Day, &bucket.Count); err != nil {
			return nil, fmt.Errorf("timeline scan: %w", err)
		}
		timeline = append(timeline, bucket)
	}
	return timeline, rows.Err()
}

// Leaderboard orders by vote count descending; created_at ascending breaks
// ties in favour of the earlier submission.
func (r *StatsRepository) Leaderboard(ctx context.Context, contestID string) ([]model.LeaderboardEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT s.submission_id, s.song_name, s.user_name, s.platform, s.url,
			COUNT(v.vote_id) AS vote_count, s.created_at
		FROM submissions s
		LEFT JOIN votes v ON v.submission_id = s.submission_id
		WHERE s.contest_id = ?
		GROUP BY s.submission_id
		ORDER BY vote_count DESC, s.created_at ASC`, contestID)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []model.LeaderboardEntry
	for rows.Next() {
		var entry model.LeaderboardEntry
		var createdAt string
		if err := rows.Scan(
			&entry.SubmissionID,
			&entry.SongName,
			&entry.UserName,
			&entry.Platform,
			&entry.URL,
			&entry.VoteCount,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("leaderboard scan: %w", err)
		}
		entry.CreatedAt = parseTime(createdAt)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *StatsRepository) VoteTotals(ctx context.Context, contestID string) (int64, int64, error) {
	var total, voters int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(v.vote_id), COUNT(DISTINCT v.user_id)
		FROM votes v
		JOIN submissions s ON s.submission_id = v.submission_id
		WHERE s.contest_id = ?`, contestID).Scan(&total, &voters)
	if err != nil && err != sql.ErrNoRows {
		return 0, 0, fmt.Errorf("vote totals: %w", err)
	}
	return total, voters, nil
}
