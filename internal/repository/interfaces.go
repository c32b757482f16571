package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/krsplan/internal/domain"
)

// ErrCourseNotFound is returned when no course has the requested kode.
var ErrCourseNotFound = errors.New("course not found")

type CourseRepo interface {
	// ReplaceAll deletes the catalog and stores courses in the given order.
	ReplaceAll(ctx context.Context, courses []domain.Course) error
	GetByKode(ctx context.Context, kode string) (*domain.Course, error)
	// List returns courses in catalog order. A non-empty jurusan list
	// keeps only courses of those departments.
	List(ctx context.Context, jurusan []string) ([]domain.Course, error)
	Count(ctx context.Context) (int, error)
	Clear(ctx context.Context) error
}
