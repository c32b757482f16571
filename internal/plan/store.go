// Package plan holds each course's ranked list of chosen class sections.
//
// Entries are not tied to the course selection at write time; the two
// are only compared by validation.
package plan

import (
	"github.com/alexanderramin/krsplan/internal/observable"
)

type Store struct {
	state *observable.Store[State]
}

// NewStore returns an empty plan store.
func NewStore() *Store {
	return &Store{state: observable.New(State{})}
}

// SetPlan puts section at priority for kode, creating the entry on first
// use and growing it with unset slots when priority is past the end.
// It returns false for a negative priority and changes nothing.
func (s *Store) SetPlan(kode string, priority int, section string) bool {
	if priority < 0 {
		return false
	}
	s.state.Update(func(cur State) State {
		p := cur.entries[kode].clone()
		for len(p) <= priority {
			p = append(p, Slot{})
		}
		p[priority] = Slot{Section: section, Set: true}
		return cur.with(kode, p)
	})
	return true
}

// TrimPlans keeps only the first limit priorities of kode's entry. It
// does nothing when kode has no entry or the entry is already short
// enough. A negative limit empties the entry.
func (s *Store) TrimPlans(kode string, limit int) {
	if limit < 0 {
		limit = 0
	}
	if p, ok := s.state.Get().entries[kode]; !ok || len(p) <= limit {
		return
	}
	s.update(kode, func(p Priorities) Priorities {
		if len(p) <= limit {
			return p
		}
		return p[:limit].clone()
	})
}

// RemovePlan deletes the priority at index and moves every later priority
// one rank up: removing priority 0 makes the old priority 1 the first
// choice. Out-of-range indexes and missing entries are ignored and
// publish nothing.
func (s *Store) RemovePlan(kode string, priority int) {
	if p, ok := s.state.Get().entries[kode]; !ok || priority < 0 || priority >= len(p) {
		return
	}
	s.update(kode, func(p Priorities) Priorities {
		if priority < 0 || priority >= len(p) {
			return p
		}
		out := make(Priorities, 0, len(p)-1)
		out = append(out, p[:priority]...)
		return append(out, p[priority+1:]...)
	})
}

// Reset clears every entry.
func (s *Store) Reset() {
	s.state.Set(State{})
}

// Snapshot returns the current state.
func (s *Store) Snapshot() State {
	return s.state.Get()
}

// Plans returns kode's priorities, or nil when it has no entry.
func (s *Store) Plans(kode string) Priorities {
	p, _ := s.state.Get().Get(kode)
	return p
}

// Subscribe registers fn to receive the state after every change.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	return s.state.Subscribe(fn)
}

// update applies fn to an existing entry; missing entries are left alone
// and no change is published.
func (s *Store) update(kode string, fn func(Priorities) Priorities) {
	if _, ok := s.state.Get().entries[kode]; !ok {
		return
	}
	s.state.Update(func(cur State) State {
		p, ok := cur.entries[kode]
		if !ok {
			return cur
		}
		return cur.with(kode, fn(p))
	})
}
