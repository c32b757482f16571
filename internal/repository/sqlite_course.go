package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/krsplan/internal/db"
	"github.com/alexanderramin/krsplan/internal/domain"
)

// SQLiteCourseRepo implements CourseRepo on the catalog database.
type SQLiteCourseRepo struct {
	db db.DBTX
}

// NewSQLiteCourseRepo creates a SQLiteCourseRepo. Pass a *sql.Tx to run
// inside a transaction.
func NewSQLiteCourseRepo(conn db.DBTX) *SQLiteCourseRepo {
	return &SQLiteCourseRepo{db: conn}
}

func (r *SQLiteCourseRepo) ReplaceAll(ctx context.Context, courses []domain.Course) error {
	if err := r.Clear(ctx); err != nil {
		return err
	}
	importedAt := nowUTC()
	for i, c := range courses {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO courses (kode, nama, sks, jurusan, order_index, imported_at) VALUES (?, ?, ?, ?, ?, ?)`,
			c.Kode, c.Nama, c.SKS, c.Jurusan, i, importedAt)
		if err != nil {
			return fmt.Errorf("inserting course %s: %w", c.Kode, err)
		}
		for j, s := range c.Kelas {
			_, err := r.db.ExecContext(ctx,
				`INSERT INTO course_sections (kode, kelas, order_index, dosen, jadwal) VALUES (?, ?, ?, ?, ?)`,
				c.Kode, s.Kelas, j, s.Dosen, s.Jadwal)
			if err != nil {
				return fmt.Errorf("inserting section %s/%s: %w", c.Kode, s.Kelas, err)
			}
		}
	}
	return nil
}

func (r *SQLiteCourseRepo) GetByKode(ctx context.Context, kode string) (*domain.Course, error) {
	var c domain.Course
	err := r.db.QueryRowContext(ctx,
		`SELECT kode, nama, sks, jurusan FROM courses WHERE UPPER(kode) = UPPER(?)`, kode,
	).Scan(&c.Kode, &c.Nama, &c.SKS, &c.Jurusan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrCourseNotFound, kode)
	}
	if err != nil {
		return nil, fmt.Errorf("getting course %s: %w", kode, err)
	}

	sections, err := r.loadSections(ctx, []string{c.Kode})
	if err != nil {
		return nil, err
	}
	c.Kelas = sections[c.Kode]
	return &c, nil
}

func (r *SQLiteCourseRepo) List(ctx context.Context, jurusan []string) ([]domain.Course, error) {
	query := `SELECT kode, nama, sks, jurusan FROM courses`
	args := make([]any, 0, len(jurusan))
	if len(jurusan) > 0 {
		query += ` WHERE jurusan IN (` + placeholders(len(jurusan)) + `)`
		for _, j := range jurusan {
			args = append(args, j)
		}
	}
	query += ` ORDER BY order_index, kode`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing courses: %w", err)
	}
	var courses []domain.Course
	for rows.Next() {
		var c domain.Course
		if err := rows.Scan(&c.Kode, &c.Nama, &c.SKS, &c.Jurusan); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning course: %w", err)
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating courses: %w", err)
	}
	// Close before the next query: an in-memory database has one connection.
	rows.Close()

	if len(courses) == 0 {
		return courses, nil
	}
	kodes := make([]string, len(courses))
	for i, c := range courses {
		kodes[i] = c.Kode
	}
	sections, err := r.loadSections(ctx, kodes)
	if err != nil {
		return nil, err
	}
	for i := range courses {
		courses[i].Kelas = sections[courses[i].Kode]
	}
	return courses, nil
}

func (r *SQLiteCourseRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM courses`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting courses: %w", err)
	}
	return n, nil
}

func (r *SQLiteCourseRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM courses`); err != nil {
		return fmt.Errorf("clearing courses: %w", err)
	}
	return nil
}

func (r *SQLiteCourseRepo) loadSections(ctx context.Context, kodes []string) (map[string][]domain.Section, error) {
	args := make([]any, len(kodes))
	for i, k := range kodes {
		args[i] = k
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT kode, kelas, dosen, jadwal FROM course_sections
		 WHERE kode IN (`+placeholders(len(kodes))+`)
		 ORDER BY kode, order_index`, args...)
	if err != nil {
		return nil, fmt.Errorf("loading sections of %s: %w", strings.Join(kodes, ","), err)
	}
	defer rows.Close()

	out := make(map[string][]domain.Section, len(kodes))
	for rows.Next() {
		var kode string
		var s domain.Section
		if err := rows.Scan(&kode, &s.Kelas, &s.Dosen, &s.Jadwal); err != nil {
			return nil, fmt.Errorf("scanning section: %w", err)
		}
		out[kode] = append(out[kode], s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sections: %w", err)
	}
	return out, nil
}
