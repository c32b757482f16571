package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a throwaway in-memory catalog.
const MemoryPath = ":memory:"

// pragmas run on every new catalog handle, in order.
var pragmas = []struct {
	name string
	stmt string
}{
	{"journal mode", "PRAGMA journal_mode = WAL"},
	{"foreign keys", "PRAGMA foreign_keys = ON"},
	// The shell and a concurrent `krsplan catalog import` share the file.
	{"busy timeout", "PRAGMA busy_timeout = 5000"},
}

// OpenDB opens the course catalog at path and applies the schema. The
// parent directory is created for file paths.
func OpenDB(path string) (*sql.DB, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating catalog directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog %s: %w", path, err)
	}
	if path == MemoryPath {
		// Each connection would otherwise see its own empty database.
		conn.SetMaxOpenConns(1)
	}

	for _, p := range pragmas {
		if _, err := conn.Exec(p.stmt); err != nil {
			conn.Close()
			return nil, fmt.Errorf("setting %s: %w", p.name, err)
		}
	}
	if err := Migrate(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrating catalog schema: %w", err)
	}
	return conn, nil
}
