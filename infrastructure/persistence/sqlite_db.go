package persistence

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/glebarez/go-sqlite"
)

// NewSqliteDb opens the contest database. Foreign keys are switched on (the
// cascade semantics depend on them), writes wait out short lock contention via
// busy_timeout, and transactions take the write lock up front (_txlock=immediate)
// so the admission pipeline's count-recheck and insert serialize.
func NewSqliteDb(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_txlock=immediate", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	db.SetMaxIdleConns(4)
	db.SetMaxOpenConns(8)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}
	return db, nil
}

// formatTime / parseTime fix the stored representation to RFC3339Nano UTC so
// lexicographic ordering matches chronological ordering.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure
// involving hint (a "table.column" fragment of the violated index).
func isUniqueViolation(err error, hint string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") && strings.Contains(msg, hint)
}

// joinPlatforms / splitPlatforms map the allowed-platforms set to its stored
// comma-separated form. Empty set is stored as NULL (meaning "all platforms").
func joinPlatforms(platforms []string) sql.NullString {
	if len(platforms) == 0 {
		return sql.NullString{}
	}
	return sql.NullString{String: strings.Join(platforms, ","), Valid: true}
}

func splitPlatforms(s sql.NullString) []string {
	if !s.Valid || s.String == "" {
		return nil
	}
	return strings.Split(s.String, ",")
}
