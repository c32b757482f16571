// Package validation runs the pre-submission checks over the course
// selection and the section plans.
package validation

import (
	"time"

	"github.com/alexanderramin/krsplan/internal/domain"
	"github.com/alexanderramin/krsplan/internal/plan"
	"github.com/alexanderramin/krsplan/internal/textfmt"
)

// DefaultLatency is how long Validate waits before returning its result.
const DefaultLatency = 2 * time.Second

// SelectionSource provides the current course selection.
type SelectionSource interface {
	Snapshot() []domain.ChosenCourse
}

// PlanSource provides the current section plans.
type PlanSource interface {
	Snapshot() plan.State
}

// Delay suspends the caller for d.
type Delay func(d time.Duration)

type Engine struct {
	selection SelectionSource
	plans     PlanSource
	rules     []Rule
	msgs      *textfmt.Messages
	delay     Delay
	latency   time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithLatency sets the wait before Validate returns.
func WithLatency(d time.Duration) Option {
	return func(e *Engine) { e.latency = d }
}

// WithDelay replaces time.Sleep as the wait primitive.
func WithDelay(fn Delay) Option {
	return func(e *Engine) { e.delay = fn }
}

// WithMessages sets the message locale.
func WithMessages(m *textfmt.Messages) Option {
	return func(e *Engine) { e.msgs = m }
}

// WithRules replaces DefaultRules.
func WithRules(rules ...Rule) Option {
	return func(e *Engine) { e.rules = rules }
}

// NewEngine returns an engine reading from selection and plans.
func NewEngine(selection SelectionSource, plans PlanSource, opts ...Option) *Engine {
	e := &Engine{
		selection: selection,
		plans:     plans,
		rules:     DefaultRules(),
		msgs:      textfmt.NewMessages(domain.LocaleID),
		delay:     time.Sleep,
		latency:   DefaultLatency,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Validate snapshots both stores, checks the snapshot, waits the
// configured latency and returns the findings. Writes made while it waits
// are not reflected in the result; callers re-validate after changing the
// stores. Validate cannot be cancelled and always returns a report.
func (e *Engine) Validate() domain.Report {
	_, report := e.Check()
	return report
}

// Check is Validate that also returns the snapshot the report describes,
// so a caller can act on exactly the state that was checked.
func (e *Engine) Check() (Snapshot, domain.Report) {
	snap := e.Snapshot()
	report := Evaluate(snap, e.msgs, e.rules...)
	if e.latency > 0 {
		e.delay(e.latency)
	}
	return snap, report
}

// Snapshot reads both stores.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Selection: e.selection.Snapshot(),
		Plans:     e.plans.Snapshot(),
	}
}

// Evaluate runs rules over snap with no waiting.
func Evaluate(snap Snapshot, msgs *textfmt.Messages, rules ...Rule) domain.Report {
	report := domain.Report{}
	for _, rule := range rules {
		report = append(report, rule(snap, msgs)...)
	}
	return report
}
