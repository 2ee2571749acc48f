package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"music-contest/infrastructure/logger"
)

// A migration is one schema step: every statement applies inside a single
// exclusive transaction and the stored version advances by exactly one, so a
// half-applied step can never leave the version counter ahead of the schema.
type migration struct {
	description string
	statements  []string
}

var migrations = []migration{
	{
		description: "base contests and submissions tables",
		statements: []string{
			`CREATE TABLE IF NOT EXISTS contests (
				contest_id TEXT PRIMARY KEY,
				public_channel_id TEXT NOT NULL,
				review_channel_id TEXT NOT NULL,
				allowed_platforms TEXT,
				max_submissions_per_user INTEGER NOT NULL DEFAULT 1
			)`,
			`CREATE TABLE IF NOT EXISTS submissions (
				submission_id INTEGER PRIMARY KEY AUTOINCREMENT,
				contest_id TEXT NOT NULL REFERENCES contests(contest_id) ON DELETE CASCADE,
				user_id TEXT NOT NULL,
				user_name TEXT NOT NULL,
				song_name TEXT NOT NULL,
				platform TEXT NOT NULL,
				url TEXT NOT NULL,
				public_message_id TEXT,
				review_message_id TEXT
			)`,
		},
	},
	{
		description: "votes, audit log and persisted rate-limit windows",
		statements: []string{
			`CREATE TABLE IF NOT EXISTS votes (
				vote_id INTEGER PRIMARY KEY AUTOINCREMENT,
				submission_id INTEGER NOT NULL REFERENCES submissions(submission_id) ON DELETE CASCADE,
				user_id TEXT NOT NULL,
				created_at TEXT NOT NULL,
				UNIQUE (submission_id, user_id)
			)`,
			`CREATE TABLE IF NOT EXISTS audit_log (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				user_id TEXT NOT NULL,
				action TEXT NOT NULL,
				details TEXT NOT NULL DEFAULT '',
				created_at TEXT NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS rate_limits (
				user_id TEXT NOT NULL,
				action TEXT NOT NULL,
				call_count INTEGER NOT NULL DEFAULT 0,
				window_start TEXT NOT NULL,
				PRIMARY KEY (user_id, action)
			)`,
		},
	},
	{
		description: "contest lifecycle columns and unique channel pair",
		statements: []string{
			`ALTER TABLE contests ADD COLUMN status TEXT NOT NULL DEFAULT 'active'`,
			`ALTER TABLE contests ADD COLUMN description TEXT`,
			`ALTER TABLE contests ADD COLUMN prize_info TEXT`,
			`ALTER TABLE contests ADD COLUMN start_date TEXT`,
			`ALTER TABLE contests ADD COLUMN end_date TEXT`,
			`ALTER TABLE contests ADD COLUMN created_by TEXT NOT NULL DEFAULT ''`,
			`ALTER TABLE contests ADD COLUMN created_at TEXT NOT NULL DEFAULT ''`,
			`ALTER TABLE contests ADD COLUMN updated_at TEXT NOT NULL DEFAULT ''`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_contests_channel_pair
				ON contests (public_channel_id, review_channel_id)`,
		},
	},
	{
		description: "submission dedup index, timestamps and metadata blob",
		statements: []string{
			`ALTER TABLE submissions ADD COLUMN created_at TEXT NOT NULL DEFAULT ''`,
			`ALTER TABLE submissions ADD COLUMN metadata TEXT`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_submissions_dedup
				ON submissions (contest_id, user_id, url)`,
			`CREATE INDEX IF NOT EXISTS idx_submissions_contest
				ON submissions (contest_id)`,
		},
	},
}

// SchemaVersion is the version a fully migrated database reports.
var SchemaVersion = len(migrations)

// Migrate applies every pending migration. Re-running against a current
// database is a no-op. On any statement failure the whole step is rolled back
// and the error is returned; the caller must treat that as fatal.
func Migrate(ctx context.Context, db *sql.DB) error {
	version, err := currentVersion(ctx, db)
	if err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}
	if version > SchemaVersion {
		return fmt.Errorf("database schema version %d is newer than this binary supports (%d)", version, SchemaVersion)
	}

	for i := version; i < SchemaVersion; i++ {
		m := migrations[i]
		if err := applyStep(ctx, db, i, m); err != nil {
			return fmt.Errorf("migration %d (%s): %w", i+1, m.description, err)
		}
		logger.GetLogger().
			WithField("version", i+1).
			WithField("description", m.description).
			Info("Applied schema migration")
	}
	return nil
}

func applyStep(ctx context.Context, db *sql.DB, index int, m migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, stmt := range m.statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			// An already-present column means this statement ran before the
			// version counter advanced (e.g. a crash mid-step on an old
			// engine). Safe to treat as applied; anything else aborts.
			if isDuplicateColumn(err) {
				continue
			}
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", index+1)); err != nil {
		return err
	}
	return tx.Commit()
}

func currentVersion(ctx context.Context, db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, err
	}
	return version, nil
}

func isDuplicateColumn(err error) bool {
	return err != nil && strings.Contains(err.Error(), "duplicate column name")
}
