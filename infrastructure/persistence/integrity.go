package persistence

import (
	"context"
	"database/sql"
	"fmt"
)

var requiredTables = []string{"contests", "submissions", "votes", "audit_log", "rate_limits"}

// VerifyIntegrity runs the structural and referential checks the process
// requires before it starts accepting requests. A non-nil error means the
// database is not trustworthy and startup must halt.
func VerifyIntegrity(ctx context.Context, db *sql.DB) error {
	var result string
	if err := db.QueryRowContext(ctx, "PRAGMA integrity_check").Scan(&result); err != nil {
		return fmt.Errorf("integrity_check: %w", err)
	}
	if result != "ok" {
		return fmt.Errorf("integrity_check reported: %s", result)
	}

	rows, err := db.QueryContext(ctx, "PRAGMA foreign_key_check")
	if err != nil {
		return fmt.Errorf("foreign_key_check: %w", err)
	}
	defer rows.Close()
	if rows.Next() {
		var table string
		var rowid sql.NullInt64
		var parent string
		var fkid int
		_ = rows.Scan(&table, &rowid, &parent, &fkid)
		return fmt.Errorf("foreign_key_check found orphaned row in %s (references %s)", table, parent)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("foreign_key_check rows: %w", err)
	}

	for _, table := range requiredTables {
		var name string
		err := db.QueryRowContext(ctx,
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		if err == sql.ErrNoRows {
			return fmt.Errorf("required table %s is missing", table)
		}
		if err != nil {
			return fmt.Errorf("checking table %s: %w", table, err)
		}
	}
	return nil
}
