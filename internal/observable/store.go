// Package observable provides a small value container with atomic read,
// replace and functional update, plus change notification.
package observable

import "sync"

// Listener receives the value a store holds after each change.
type Listener[T any] func(T)

// Store holds a single value of type T. All methods are safe for
// concurrent use. Listeners run synchronously after the write, outside
// the store's lock, so they may read the store again.
type Store[T any] struct {
	mu        sync.Mutex
	value     T
	nextID    int
	listeners map[int]Listener[T]
	order     []int
}

// New returns a store holding initial.
func New[T any](initial T) *Store[T] {
	return &Store[T]{
		value:     initial,
		listeners: make(map[int]Listener[T]),
	}
}

// Get returns the current value.
func (s *Store[T]) Get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Set replaces the value and notifies listeners.
func (s *Store[T]) Set(v T) {
	s.mu.Lock()
	s.value = v
	ls := s.snapshotListeners()
	s.mu.Unlock()
	notify(ls, v)
}

// Update replaces the value with fn(current) in one step and returns the
// new value. fn must not call back into the store.
func (s *Store[T]) Update(fn func(T) T) T {
	s.mu.Lock()
	next := fn(s.value)
	s.value = next
	ls := s.snapshotListeners()
	s.mu.Unlock()
	notify(ls, next)
	return next
}

// Subscribe registers l and returns a func that unregisters it. Listeners
// are called in registration order.
func (s *Store[T]) Subscribe(l Listener[T]) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.order = append(s.order, id)
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.listeners, id)
			for i, v := range s.order {
				if v == id {
					s.order = append(s.order[:i], s.order[i+1:]...)
					break
				}
			}
		})
	}
}

func (s *Store[T]) snapshotListeners() []Listener[T] {
	if len(s.order) == 0 {
		return nil
	}
	ls := make([]Listener[T], 0, len(s.order))
	for _, id := range s.order {
		ls = append(ls, s.listeners[id])
	}
	return ls
}

func notify[T any](ls []Listener[T], v T) {
	for _, l := range ls {
		l(v)
	}
}
