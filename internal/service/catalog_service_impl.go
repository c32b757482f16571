package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/agnivade/levenshtein"
	"github.com/alexanderramin/krsplan/internal/db"
	"github.com/alexanderramin/krsplan/internal/domain"
	"github.com/alexanderramin/krsplan/internal/importer"
	"github.com/alexanderramin/krsplan/internal/repository"
)

type catalogService struct {
	courses        repository.CourseRepo
	uow            db.UnitOfWork
	defaultJurusan string
	observer       UseCaseObserver
}

// NewCatalogService returns the course catalog service. Imported courses
// without a jurusan get defaultJurusan.
func NewCatalogService(
	courses repository.CourseRepo,
	uow db.UnitOfWork,
	defaultJurusan string,
	observers ...UseCaseObserver,
) CatalogService {
	return &catalogService{
		courses:        courses,
		uow:            uow,
		defaultJurusan: defaultJurusan,
		observer:       useCaseObserverOrNoop(observers),
	}
}

func (s *catalogService) Import(ctx context.Context, filePath string) (*ImportResult, error) {
	f, err := importer.LoadCatalogFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading catalog file: %w", err)
	}
	return s.ImportFromFile(ctx, f)
}

func (s *catalogService) ImportFromFile(ctx context.Context, f *importer.CatalogFile) (result *ImportResult, err error) {
	fields := map[string]any{"courses_in_file": len(f.Courses)}
	defer observe(ctx, s.observer, "import-catalog", time.Now().UTC(), &err, fields)

	if errs := importer.ValidateCatalog(f); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	courses := importer.ConvertCatalog(f, s.defaultJurusan)
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteCourseRepo(tx).ReplaceAll(ctx, courses)
	})
	if err != nil {
		return nil, fmt.Errorf("storing catalog: %w", err)
	}

	result = &ImportResult{CourseCount: len(courses)}
	for _, c := range courses {
		result.SectionCount += len(c.Kelas)
	}
	fields["section_count"] = result.SectionCount
	return result, nil
}

func (s *catalogService) Get(ctx context.Context, kode string) (*domain.Course, error) {
	return s.courses.GetByKode(ctx, importer.NormalizeKode(kode))
}

func (s *catalogService) List(ctx context.Context, jurusan []string) ([]domain.Course, error) {
	return s.courses.List(ctx, jurusan)
}

func (s *catalogService) Suggest(ctx context.Context, kode string, limit int) ([]domain.Course, error) {
	all, err := s.courses.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	return suggestCourses(all, importer.NormalizeKode(kode), limit), nil
}

func (s *catalogService) Clear(ctx context.Context) (err error) {
	defer observe(ctx, s.observer, "clear-catalog", time.Now().UTC(), &err, nil)
	return s.courses.Clear(ctx)
}

// suggestCourses ranks courses by edit distance between their kode and
// kode, keeping those within a third of the kode's length (at least 2).
func suggestCourses(courses []domain.Course, kode string, limit int) []domain.Course {
	if kode == "" || limit <= 0 {
		return nil
	}
	maxDist := max(2, len(kode)/3)

	type scored struct {
		course domain.Course
		dist   int
	}
	var hits []scored
	for _, c := range courses {
		d := levenshtein.ComputeDistance(kode, c.Kode)
		if d <= maxDist {
			hits = append(hits, scored{course: c, dist: d})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].dist != hits[j].dist {
			return hits[i].dist < hits[j].dist
		}
		return hits[i].course.Kode < hits[j].course.Kode
	})

	if len(hits) > limit {
		hits = hits[:limit]
	}
	out := make([]domain.Course, len(hits))
	for i, h := range hits {
		out[i] = h.course
	}
	return out
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("catalog validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
