package plan

// State is an immutable snapshot of every course's priorities, keyed by
// kode in first-write order.
type State struct {
	order   []string
	entries map[string]Priorities
}

// Kodes returns the kodes with an entry, in first-write order.
func (s State) Kodes() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Get returns the entry for kode. ok is true even for an empty entry.
func (s State) Get(kode string) (p Priorities, ok bool) {
	p, ok = s.entries[kode]
	return p.clone(), ok
}

// Len returns the number of entries.
func (s State) Len() int {
	return len(s.order)
}

// with returns a copy of s whose entry for kode is p, appending kode to
// the order if it is new.
func (s State) with(kode string, p Priorities) State {
	next := State{
		order:   s.order,
		entries: make(map[string]Priorities, len(s.entries)+1),
	}
	for k, v := range s.entries {
		next.entries[k] = v
	}
	if _, exists := s.entries[kode]; !exists {
		next.order = append(append([]string(nil), s.order...), kode)
	}
	next.entries[kode] = p
	return next
}
