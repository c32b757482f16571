package db

import (
	"database/sql"
	"fmt"
)

// Migrate applies the catalog schema. Every statement is idempotent, so
// it runs on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS courses (
		kode        TEXT PRIMARY KEY,
		nama        TEXT NOT NULL,
		sks         INTEGER NOT NULL CHECK(sks > 0),
		jurusan     TEXT NOT NULL DEFAULT '',
		order_index INTEGER NOT NULL DEFAULT 0,
		imported_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_courses_jurusan ON courses(jurusan)`,

	`CREATE TABLE IF NOT EXISTS course_sections (
		kode        TEXT NOT NULL REFERENCES courses(kode) ON DELETE CASCADE,
		kelas       TEXT NOT NULL,
		order_index INTEGER NOT NULL DEFAULT 0,
		dosen       TEXT NOT NULL DEFAULT '',
		jadwal      TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (kode, kelas)
	)`,
}
