package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/krsplan/internal/db"
	"github.com/stretchr/testify/require"
)

// NewTestDB opens an empty in-memory catalog that is closed with the test.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err, "opening test catalog")
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func NewTestUoW(conn *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(conn)
}
