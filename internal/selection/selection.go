// Package selection holds the set of courses a student has tentatively
// chosen, with credit and count limits and one color tag per course.
package selection

import (
	"slices"
	"sync"

	"github.com/alexanderramin/krsplan/internal/domain"
	"github.com/alexanderramin/krsplan/internal/observable"
)

// Store is the ordered, newest-first list of chosen courses.
//
// Invariants held after every call: at most domain.CourseLimit entries,
// total SKS at most domain.SKSLimit, and every entry carries a distinct
// color withdrawn from the allocator.
type Store struct {
	// mu serializes the limit check, color withdrawal and write so the
	// selection and the color pool never disagree.
	mu     sync.Mutex
	chosen *observable.Store[[]domain.ChosenCourse]
	colors *ColorAllocator
}

// NewStore returns an empty selection drawing colors from colors. A nil
// allocator gets a fresh one over the default palette.
func NewStore(colors *ColorAllocator) *Store {
	if colors == nil {
		colors = NewColorAllocator(nil)
	}
	return &Store{
		chosen: observable.New[[]domain.ChosenCourse](nil),
		colors: colors,
	}
}

// Has reports whether a course with the same kode is chosen.
func (s *Store) Has(c domain.Keyed) bool {
	return indexOf(s.chosen.Get(), c.CourseKode()) >= 0
}

// Add prepends course tagged with a fresh color. It returns false, and
// changes nothing, when the course is already chosen, when either limit
// would be exceeded, or when no color is left.
func (s *Store) Add(course domain.Course) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.chosen.Get()
	if indexOf(cur, course.Kode) >= 0 {
		return false
	}
	if len(cur) >= domain.CourseLimit {
		return false
	}
	if totalSKS(cur)+course.SKS > domain.SKSLimit {
		return false
	}
	color, ok := s.colors.Acquire()
	if !ok {
		return false
	}

	next := make([]domain.ChosenCourse, 0, len(cur)+1)
	next = append(next, domain.ChosenCourse{Course: course, Color: color})
	next = append(next, cur...)
	s.chosen.Set(next)
	return true
}

// Remove drops the course with c's kode and returns its color to the
// pool. It always returns true; removing an absent course changes nothing.
func (s *Store) Remove(c domain.Keyed) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.chosen.Get()
	i := indexOf(cur, c.CourseKode())
	if i < 0 {
		return true
	}
	s.colors.Release(cur[i].Color)
	s.chosen.Set(slices.Delete(slices.Clone(cur), i, i+1))
	return true
}

// Toggle removes course if chosen and adds it otherwise, returning the
// result of whichever ran.
func (s *Store) Toggle(course domain.Course) bool {
	if s.Has(course) {
		return s.Remove(course)
	}
	return s.Add(course)
}

// Reset empties the selection and refills the color pool.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.colors.Reset()
	s.chosen.Set(nil)
}

// Snapshot returns a copy of the current selection, newest first.
func (s *Store) Snapshot() []domain.ChosenCourse {
	return slices.Clone(s.chosen.Get())
}

// Get returns the chosen entry for kode.
func (s *Store) Get(kode string) (domain.ChosenCourse, bool) {
	cur := s.chosen.Get()
	if i := indexOf(cur, kode); i >= 0 {
		return cur[i], true
	}
	return domain.ChosenCourse{}, false
}

// Count returns the number of chosen courses.
func (s *Store) Count() int {
	return len(s.chosen.Get())
}

// TotalSKS returns the credit load of the current selection.
func (s *Store) TotalSKS() int {
	return totalSKS(s.chosen.Get())
}

// Colors exposes the allocator backing this store.
func (s *Store) Colors() *ColorAllocator {
	return s.colors
}

// Subscribe registers fn to receive the selection after every change.
// fn must not mutate the store.
func (s *Store) Subscribe(fn func([]domain.ChosenCourse)) (unsubscribe func()) {
	return s.chosen.Subscribe(func(v []domain.ChosenCourse) {
		fn(slices.Clone(v))
	})
}

func indexOf(list []domain.ChosenCourse, kode string) int {
	return slices.IndexFunc(list, func(c domain.ChosenCourse) bool {
		return c.Kode == kode
	})
}

func totalSKS(list []domain.ChosenCourse) int {
	sum := 0
	for _, c := range list {
		sum += c.SKS
	}
	return sum
}
