package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"music-contest/domain/model"
)

// AuditRepository appends to the audit trail. Nothing in the application
// updates or deletes audit rows.
type AuditRepository struct {
	db *sql.DB
}

func NewAuditRepository(db *sql.DB) *AuditRepository { return &AuditRepository{db: db} }

func (r *AuditRepository) Append(ctx context.Context, entry *model.AuditLogEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO audit_log (user_id, action, details, created_at) VALUES (?, ?, ?, ?)`,
		entry.UserID, entry.Action, entry.Details, formatTime(entry.CreatedAt))
	if err != nil {
		return fmt.Errorf("appending audit entry: %w", err)
	}
	return nil
}
