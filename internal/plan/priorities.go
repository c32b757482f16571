package plan

// Slot is one priority position. Set is false for a gap left by writing a
// later priority first.
type Slot struct {
	Section string
	Set     bool
}

// Priorities is a course's ranked section choices; index 0 is the first
// choice. Positions may be unset.
type Priorities []Slot

// At returns the section chosen at priority i, if any.
func (p Priorities) At(i int) (section string, ok bool) {
	if i < 0 || i >= len(p) || !p[i].Set {
		return "", false
	}
	return p[i].Section, true
}

// Sections returns the set sections in priority order, skipping gaps.
func (p Priorities) Sections() []string {
	out := make([]string, 0, len(p))
	for _, s := range p {
		if s.Set {
			out = append(out, s.Section)
		}
	}
	return out
}

// Empty reports whether no priority is set.
func (p Priorities) Empty() bool {
	for _, s := range p {
		if s.Set {
			return false
		}
	}
	return true
}

// FromSections builds a gap-free Priorities from sections in order.
func FromSections(sections ...string) Priorities {
	p := make(Priorities, len(sections))
	for i, s := range sections {
		p[i] = Slot{Section: s, Set: true}
	}
	return p
}

func (p Priorities) clone() Priorities {
	if p == nil {
		return nil
	}
	out := make(Priorities, len(p))
	copy(out, p)
	return out
}
