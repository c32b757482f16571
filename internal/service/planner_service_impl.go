package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/alexanderramin/krsplan/internal/domain"
	"github.com/alexanderramin/krsplan/internal/importer"
	"github.com/alexanderramin/krsplan/internal/observable"
	"github.com/alexanderramin/krsplan/internal/plan"
	"github.com/alexanderramin/krsplan/internal/selection"
	"github.com/alexanderramin/krsplan/internal/submission"
	"github.com/alexanderramin/krsplan/internal/textfmt"
	"github.com/alexanderramin/krsplan/internal/validation"
	"github.com/google/uuid"
)

var (
	// ErrSubmissionBlocked is returned by Submit when validation found a
	// fatal problem.
	ErrSubmissionBlocked = errors.New("submission blocked by validation")
	ErrInvalidPriority   = errors.New("priority must not be negative")
	ErrUnknownSection    = errors.New("section is not offered")
)

// PlannerConfig configures a planning session.
type PlannerConfig struct {
	// SessionID identifies the session in logs and submissions. Empty
	// means a new UUID.
	SessionID     string
	Locale        domain.Locale
	ValidateDelay time.Duration
	// Delay replaces time.Sleep for the validation wait.
	Delay   validation.Delay
	Jurusan []string
	Now     func() time.Time
}

type plannerService struct {
	catalog   CatalogService
	submitter submission.Submitter
	observer  UseCaseObserver

	selection *selection.Store
	plans     *plan.Store
	engine    *validation.Engine
	submitted *observable.Store[bool]
	jurusan   *observable.Store[[]string]

	// mu orders store changes against marking a submission; revision
	// counts selection and plan changes.
	mu       sync.Mutex
	revision uint64

	sessionID string
	now       func() time.Time
}

// NewPlannerService starts a planning session with empty stores.
func NewPlannerService(
	catalog CatalogService,
	submitter submission.Submitter,
	cfg PlannerConfig,
	observers ...UseCaseObserver,
) PlannerService {
	if cfg.SessionID == "" {
		cfg.SessionID = uuid.New().String()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	sel := selection.NewStore(selection.NewColorAllocator(nil))
	plans := plan.NewStore()

	opts := []validation.Option{
		validation.WithMessages(textfmt.NewMessages(cfg.Locale)),
		validation.WithLatency(cfg.ValidateDelay),
	}
	if cfg.Delay != nil {
		opts = append(opts, validation.WithDelay(cfg.Delay))
	}

	s := &plannerService{
		catalog:   catalog,
		submitter: submitter,
		observer:  useCaseObserverOrNoop(observers),
		selection: sel,
		plans:     plans,
		engine:    validation.NewEngine(sel, plans, opts...),
		submitted: observable.New(false),
		jurusan:   observable.New(slices.Clone(cfg.Jurusan)),
		sessionID: cfg.SessionID,
		now:       cfg.Now,
	}

	// Any change after a submission makes it stale.
	sel.Subscribe(func([]domain.ChosenCourse) { s.changed() })
	plans.Subscribe(func(plan.State) { s.changed() })

	return s
}

func (s *plannerService) SessionID() string {
	return s.sessionID
}

func (s *plannerService) AddCourse(ctx context.Context, kode string) (result *AddResult, err error) {
	fields := map[string]any{"kode": kode}
	defer observe(ctx, s.observer, "add-course", time.Now().UTC(), &err, fields)

	course, err := s.catalog.Get(ctx, kode)
	if err != nil {
		return nil, err
	}
	result = s.add(*course)
	fields["added"] = result.Added
	if !result.Added {
		fields["reason"] = string(result.Reason)
	}
	return result, nil
}

func (s *plannerService) add(course domain.Course) *AddResult {
	reason := s.rejectReason(course)
	if !s.selection.Add(course) {
		if reason == RejectNone {
			reason = RejectNoColor
		}
		return &AddResult{Course: domain.ChosenCourse{Course: course}, Reason: reason}
	}
	chosen, _ := s.selection.Get(course.Kode)
	return &AddResult{Course: chosen, Added: true}
}

// rejectReason predicts why Add would refuse course, checking in the
// same order the selection does.
func (s *plannerService) rejectReason(course domain.Course) RejectReason {
	switch {
	case s.selection.Has(course):
		return RejectAlreadyChosen
	case s.selection.Count() >= domain.CourseLimit:
		return RejectCourseLimit
	case s.selection.TotalSKS()+course.SKS > domain.SKSLimit:
		return RejectSKSLimit
	case len(s.selection.Colors().Available()) == 0:
		return RejectNoColor
	}
	return RejectNone
}

func (s *plannerService) RemoveCourse(ctx context.Context, kode string) bool {
	defer observe(ctx, s.observer, "remove-course", time.Now().UTC(), nil, map[string]any{"kode": kode})
	return s.selection.Remove(domain.Kode(importer.NormalizeKode(kode)))
}

func (s *plannerService) ToggleCourse(ctx context.Context, kode string) (*ToggleResult, error) {
	if s.selection.Has(domain.Kode(importer.NormalizeKode(kode))) {
		return &ToggleResult{Chosen: false, Changed: s.RemoveCourse(ctx, kode)}, nil
	}
	res, err := s.AddCourse(ctx, kode)
	if err != nil {
		return nil, err
	}
	return &ToggleResult{Chosen: res.Added, Changed: res.Added, Reason: res.Reason}, nil
}

func (s *plannerService) SetPlan(ctx context.Context, kode string, priority int, section string) (err error) {
	defer observe(ctx, s.observer, "set-plan", time.Now().UTC(), &err,
		map[string]any{"kode": kode, "priority": priority, "section": section})

	if priority < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPriority, priority)
	}
	course, err := s.catalog.Get(ctx, kode)
	if err != nil {
		return err
	}
	if len(course.Kelas) > 0 && !course.HasSection(section) {
		return fmt.Errorf("%w: %s has no section %q", ErrUnknownSection, course.Kode, section)
	}
	s.plans.SetPlan(course.Kode, priority, section)
	return nil
}

func (s *plannerService) TrimPlans(ctx context.Context, kode string, max int) {
	defer observe(ctx, s.observer, "trim-plans", time.Now().UTC(), nil, map[string]any{"kode": kode, "max": max})
	s.plans.TrimPlans(importer.NormalizeKode(kode), max)
}

func (s *plannerService) RemovePlan(ctx context.Context, kode string, priority int) {
	defer observe(ctx, s.observer, "remove-plan", time.Now().UTC(), nil, map[string]any{"kode": kode, "priority": priority})
	s.plans.RemovePlan(importer.NormalizeKode(kode), priority)
}

func (s *plannerService) Reset(ctx context.Context) {
	defer observe(ctx, s.observer, "reset", time.Now().UTC(), nil, nil)
	s.selection.Reset()
	s.plans.Reset()
}

func (s *plannerService) Selection() []domain.ChosenCourse {
	return s.selection.Snapshot()
}

func (s *plannerService) Plans() plan.State {
	return s.plans.Snapshot()
}

func (s *plannerService) Summary() Summary {
	return Summary{
		CourseCount:     s.selection.Count(),
		CourseLimit:     domain.CourseLimit,
		TotalSKS:        s.selection.TotalSKS(),
		SKSLimit:        domain.SKSLimit,
		AvailableColors: s.selection.Colors().Available(),
		Submitted:       s.submitted.Get(),
	}
}

func (s *plannerService) Validate(ctx context.Context) domain.Report {
	_, report := s.check(ctx)
	return report
}

func (s *plannerService) check(ctx context.Context) (validation.Snapshot, domain.Report) {
	fields := map[string]any{}
	defer observe(ctx, s.observer, "validate", time.Now().UTC(), nil, fields)

	snap, report := s.engine.Check()
	fields["fatal"] = len(report.BySeverity(domain.SeverityFatal))
	fields["warning"] = len(report.BySeverity(domain.SeverityWarning))
	fields["courses"] = len(snap.Selection)
	return snap, report
}

func (s *plannerService) changed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revision++
	s.submitted.Set(false)
}

func (s *plannerService) currentRevision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

// Submit validates and hands the plan to the submitter. The session is
// marked submitted only when nothing changed while validation waited;
// otherwise the live state differs from what was sent.
func (s *plannerService) Submit(ctx context.Context) (result *SubmitResult, err error) {
	fields := map[string]any{}
	defer observe(ctx, s.observer, "submit", time.Now().UTC(), &err, fields)

	rev := s.currentRevision()
	snap, report := s.check(ctx)
	result = &SubmitResult{Report: report, SessionID: s.sessionID}
	if report.HasFatal() {
		fields["fatal"] = len(report.BySeverity(domain.SeverityFatal))
		return result, ErrSubmissionBlocked
	}

	sub := submission.Build(s.sessionID, s.now(), snap.Selection, snap.Plans)
	if err := s.submitter.Submit(ctx, sub); err != nil {
		return result, fmt.Errorf("submitting plan: %w", err)
	}
	fields["courses"] = len(sub.Courses)
	fields["total_sks"] = sub.TotalSKS

	result.Submitted = true
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.revision == rev {
		s.submitted.Set(true)
	} else {
		fields["stale"] = true
	}
	return result, nil
}

func (s *plannerService) JurusanFilter() []string {
	return slices.Clone(s.jurusan.Get())
}

func (s *plannerService) SetJurusanFilter(jurusan []string) {
	s.jurusan.Set(slices.Clone(jurusan))
}
