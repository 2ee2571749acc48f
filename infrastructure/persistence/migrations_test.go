package persistence

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openBare(t *testing.T) *sql.DB {
	t.Helper()
	db, err := NewSqliteDb(filepath.Join(t.TempDir(), "contests.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func version(t *testing.T, db *sql.DB) int {
	t.Helper()
	v, err := currentVersion(context.Background(), db)
	require.NoError(t, err)
	return v
}

func TestMigrateFreshDatabase(t *testing.T) {
	db := openBare(t)
	ctx := context.Background()

	assert.Equal(t, 0, version(t, db))
	require.NoError(t, Migrate(ctx, db))
	assert.Equal(t, SchemaVersion, version(t, db))

	require.NoError(t, VerifyIntegrity(ctx, db))
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := openBare(t)
	ctx := context.Background()

	require.NoError(t, Migrate(ctx, db))
	require.NoError(t, Migrate(ctx, db))
	assert.Equal(t, SchemaVersion, version(t, db))
}

func TestMigrateRejectsNewerSchema(t *testing.T) {
	db := openBare(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, "PRAGMA user_version = 99")
	require.NoError(t, err)

	assert.Error(t, Migrate(ctx, db))
}

func TestMigrateResumesFromPartialVersion(t *testing.T) {
	db := openBare(t)
	ctx := context.Background()

	// Apply only the first step, then run the full engine over it.
	require.NoError(t, applyStep(ctx, db, 0, migrations[0]))
	assert.Equal(t, 1, version(t, db))

	require.NoError(t, Migrate(ctx, db))
	assert.Equal(t, SchemaVersion, version(t, db))
	require.NoError(t, VerifyIntegrity(ctx, db))
}

func TestVerifyIntegrityMissingTable(t *testing.T) {
	db := openBare(t)
	ctx := context.Background()

	require.NoError(t, Migrate(ctx, db))
	_, err := db.ExecContext(ctx, `DROP TABLE audit_log`)
	require.NoError(t, err)

	assert.Error(t, VerifyIntegrity(ctx, db))
}
