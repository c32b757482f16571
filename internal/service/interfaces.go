package service

import (
	"context"

	"github.com/alexanderramin/krsplan/internal/domain"
	"github.com/alexanderramin/krsplan/internal/importer"
	"github.com/alexanderramin/krsplan/internal/plan"
)

// ImportResult holds the outcome of a catalog import.
type ImportResult struct {
	CourseCount  int
	SectionCount int
}

type CatalogService interface {
	Import(ctx context.Context, filePath string) (*ImportResult, error)
	ImportFromFile(ctx context.Context, f *importer.CatalogFile) (*ImportResult, error)
	Get(ctx context.Context, kode string) (*domain.Course, error)
	List(ctx context.Context, jurusan []string) ([]domain.Course, error)
	// Suggest returns up to limit courses whose kode is close to kode.
	Suggest(ctx context.Context, kode string, limit int) ([]domain.Course, error)
	Clear(ctx context.Context) error
}

// RejectReason says why a course could not be added.
type RejectReason string

const (
	RejectNone          RejectReason = ""
	RejectAlreadyChosen RejectReason = "already_chosen"
	RejectCourseLimit   RejectReason = "course_limit"
	RejectSKSLimit      RejectReason = "sks_limit"
	RejectNoColor       RejectReason = "no_color"
)

// AddResult is the outcome of adding a course to the selection.
type AddResult struct {
	Course domain.ChosenCourse
	Added  bool
	Reason RejectReason
}

// ToggleResult is the outcome of toggling a course. Changed mirrors the
// selection's toggle result: true when the course was removed or added.
type ToggleResult struct {
	Chosen  bool
	Changed bool
	Reason  RejectReason
}

// Summary describes the selection against its limits.
type Summary struct {
	CourseCount     int
	CourseLimit     int
	TotalSKS        int
	SKSLimit        int
	AvailableColors []domain.ColorTag
	// Submitted is true while the live selection and plans are exactly
	// what the last successful Submit sent.
	Submitted bool
}

// SubmitResult is the outcome of a submission attempt.
type SubmitResult struct {
	Report domain.Report
	// Submitted reports that the validated snapshot was handed to the
	// submitter, even if the session changed during validation.
	Submitted bool
	SessionID string
}

// DraftReplay lists what could not be applied when replaying a draft.
type DraftReplay struct {
	Problems []string
}

type PlannerService interface {
	SessionID() string

	AddCourse(ctx context.Context, kode string) (*AddResult, error)
	RemoveCourse(ctx context.Context, kode string) bool
	ToggleCourse(ctx context.Context, kode string) (*ToggleResult, error)

	SetPlan(ctx context.Context, kode string, priority int, section string) error
	TrimPlans(ctx context.Context, kode string, max int)
	RemovePlan(ctx context.Context, kode string, priority int)

	Reset(ctx context.Context)

	Selection() []domain.ChosenCourse
	Plans() plan.State
	Summary() Summary

	Validate(ctx context.Context) domain.Report
	Submit(ctx context.Context) (*SubmitResult, error)

	JurusanFilter() []string
	SetJurusanFilter(jurusan []string)

	ReplayDraft(ctx context.Context, draft *importer.DraftFile) (*DraftReplay, error)
}
