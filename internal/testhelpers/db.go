// Package testhelpers provides fixtures shared by package tests.
package testhelpers

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/venue-directory/internal/database"
)

// NewSQLiteDB opens a migrated SQLite store in a per-test temporary
// directory.  The handle is closed when the test ends.
func NewSQLiteDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "directory.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(context.Background(), db, database.SQLite))
	return db
}
