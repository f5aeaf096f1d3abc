package services

import (
	"database/sql"
	"testing"

	"github.com/selomitta/agenda-be/internal/database"
	"github.com/stretchr/testify/require"
)

// newTestDB opens an in-memory sqlite database with the full schema applied.
// A single connection keeps every statement on the same in-memory store.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.New(":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { db.Close() })
	return db
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }
