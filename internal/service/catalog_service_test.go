package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/krsplan/internal/domain"
	"github.com/alexanderramin/krsplan/internal/importer"
	"github.com/alexanderramin/krsplan/internal/repository"
	"github.com/alexanderramin/krsplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// catalogFileOf converts fixture courses back into the import format.
func catalogFileOf(courses []domain.Course) *importer.CatalogFile {
	f := &importer.CatalogFile{}
	for _, c := range courses {
		ci := importer.CourseImport{Kode: c.Kode, Nama: c.Nama, SKS: c.SKS, Jurusan: c.Jurusan}
		for _, s := range c.Kelas {
			ci.Kelas = append(ci.Kelas, importer.SectionImport{Kelas: s.Kelas, Dosen: s.Dosen, Jadwal: s.Jadwal})
		}
		f.Courses = append(f.Courses, ci)
	}
	return f
}

func newCatalogService(t *testing.T, courses ...domain.Course) (CatalogService, repository.CourseRepo) {
	t.Helper()
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteCourseRepo(database)
	svc := NewCatalogService(repo, testutil.NewTestUoW(database), "DMU")
	if len(courses) > 0 {
		_, err := svc.ImportFromFile(context.Background(), catalogFileOf(courses))
		require.NoError(t, err)
	}
	return svc, repo
}

func TestCatalogImport_FromFile(t *testing.T) {
	svc, repo := newCatalogService(t)
	ctx := context.Background()

	data, err := json.Marshal(catalogFileOf(testutil.SampleCatalog()))
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	result, err := svc.Import(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 6, result.CourseCount)
	assert.Equal(t, 13, result.SectionCount)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, n)
}

func TestCatalogImport_MissingFile(t *testing.T) {
	svc, _ := newCatalogService(t)
	_, err := svc.Import(context.Background(), filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestCatalogImport_ValidationErrorsListed(t *testing.T) {
	svc, repo := newCatalogService(t)
	ctx := context.Background()

	f := &importer.CatalogFile{Courses: []importer.CourseImport{
		{Kode: "IF2110", Nama: "", SKS: 3},
		{Kode: "if2110", Nama: "DUPLIKAT", SKS: 0},
	}}
	_, err := svc.ImportFromFile(ctx, f)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog validation failed (3 errors)")
	assert.Contains(t, err.Error(), "courses[0].nama is required")
	assert.Contains(t, err.Error(), "duplicate kode")

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCatalogImport_DefaultJurusan(t *testing.T) {
	svc, _ := newCatalogService(t)
	ctx := context.Background()

	f := &importer.CatalogFile{Courses: []importer.CourseImport{
		{Kode: "ku1001", Nama: "PENGANTAR", SKS: 2, Kelas: []importer.SectionImport{{Kelas: "01"}}},
	}}
	_, err := svc.ImportFromFile(ctx, f)
	require.NoError(t, err)

	c, err := svc.Get(ctx, "KU1001")
	require.NoError(t, err)
	assert.Equal(t, "DMU", c.Jurusan)
}

func TestCatalogImport_RollbackKeepsPreviousCatalog(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteCourseRepo(database)
	ctx := context.Background()

	seed := NewCatalogService(repo, testutil.NewTestUoW(database), "DMU")
	_, err := seed.ImportFromFile(ctx, catalogFileOf(testutil.SampleCatalog()))
	require.NoError(t, err)

	failUoW := &testutil.FailingExecUoW{
		DB:     database,
		Match:  "INSERT INTO course_sections",
		FailOn: 1,
		Err:    fmt.Errorf("injected section insert failure"),
	}
	svc := NewCatalogService(repo, failUoW, "DMU")

	replacement := []domain.Course{testutil.NewTestCourse("IF9999", 2)}
	_, err = svc.ImportFromFile(ctx, catalogFileOf(replacement))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected section insert failure")

	courses, err := repo.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, courses, 6, "previous catalog should survive a failed import")
	_, err = repo.GetByKode(ctx, "IF9999")
	assert.True(t, errors.Is(err, repository.ErrCourseNotFound))
}

func TestCatalogGet_CaseInsensitive(t *testing.T) {
	svc, _ := newCatalogService(t, testutil.SampleCatalog()...)

	c, err := svc.Get(context.Background(), " if2130 ")
	require.NoError(t, err)
	assert.Equal(t, "IF2130", c.Kode)
	assert.Equal(t, []string{"K1", "K2", "K3"}, c.SectionNames())
}

func TestCatalogList_FiltersByJurusan(t *testing.T) {
	svc, _ := newCatalogService(t, testutil.SampleCatalog()...)
	ctx := context.Background()

	all, err := svc.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 6)

	dmu, err := svc.List(ctx, []string{"DMU"})
	require.NoError(t, err)
	require.Len(t, dmu, 2)
	assert.Equal(t, "MA1101", dmu[0].Kode)
	assert.Equal(t, "KU1011", dmu[1].Kode)
}

func TestCatalogSuggest(t *testing.T) {
	svc, _ := newCatalogService(t, testutil.SampleCatalog()...)
	ctx := context.Background()

	got, err := svc.Suggest(ctx, "if2111", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "IF2110", got[0].Kode)
	assert.Equal(t, "IF2120", got[1].Kode)

	got, err = svc.Suggest(ctx, "XYZ", 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCatalogClear(t *testing.T) {
	svc, repo := newCatalogService(t, testutil.SampleCatalog()...)
	ctx := context.Background()

	require.NoError(t, svc.Clear(ctx))
	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
