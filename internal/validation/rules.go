package validation

import (
	"github.com/alexanderramin/krsplan/internal/domain"
	"github.com/alexanderramin/krsplan/internal/plan"
	"github.com/alexanderramin/krsplan/internal/textfmt"
)

// Snapshot is the state a validation pass reads: the selection and the
// plans, taken together before any checking starts.
type Snapshot struct {
	Selection []domain.ChosenCourse
	Plans     plan.State
}

func (s Snapshot) chosen(kode string) (domain.ChosenCourse, bool) {
	for _, c := range s.Selection {
		if c.Kode == kode {
			return c, true
		}
	}
	return domain.ChosenCourse{}, false
}

// Rule inspects a snapshot and returns its findings in snapshot order.
type Rule func(snap Snapshot, msgs *textfmt.Messages) domain.Report

// DefaultRules returns the checks run before submission, in the order
// their diagnostics are reported. A schedule collision rule belongs here
// once sections carry structured meeting times.
func DefaultRules() []Rule {
	return []Rule{
		DuplicateSections,
		MissingSections,
		NothingChosen,
	}
}

// DuplicateSections reports each chosen course whose priorities name the
// same section more than once. Unset priorities are ignored.
func DuplicateSections(snap Snapshot, msgs *textfmt.Messages) domain.Report {
	var out domain.Report
	for _, kode := range snap.Plans.Kodes() {
		course, ok := snap.chosen(kode)
		if !ok {
			continue
		}
		p, _ := snap.Plans.Get(kode)
		if hasDuplicate(p.Sections()) {
			out = append(out, domain.Diagnostic{
				Severity: domain.SeverityFatal,
				Kode:     kode,
				Message:  msgs.DuplicateSection(course.Nama),
			})
		}
	}
	return out
}

// MissingSections reports each chosen course without a single section in
// its plan, whether the entry is missing or only has unset priorities.
func MissingSections(snap Snapshot, msgs *textfmt.Messages) domain.Report {
	var out domain.Report
	for _, c := range snap.Selection {
		p, ok := snap.Plans.Get(c.Kode)
		if ok && !p.Empty() {
			continue
		}
		out = append(out, domain.Diagnostic{
			Severity: domain.SeverityFatal,
			Kode:     c.Kode,
			Message:  msgs.NoSection(c.Nama),
		})
	}
	return out
}

// NothingChosen reports once when no chosen course has a plan entry at
// all. An empty entry still counts as an entry here; MissingSections
// covers it.
func NothingChosen(snap Snapshot, msgs *textfmt.Messages) domain.Report {
	for _, c := range snap.Selection {
		if _, ok := snap.Plans.Get(c.Kode); ok {
			return nil
		}
	}
	return domain.Report{{
		Severity: domain.SeverityFatal,
		Message:  msgs.NothingChosen(),
	}}
}

func hasDuplicate(sections []string) bool {
	seen := make(map[string]bool, len(sections))
	for _, s := range sections {
		if seen[s] {
			return true
		}
		seen[s] = true
	}
	return false
}
