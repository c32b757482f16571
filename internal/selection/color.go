package selection

import (
	"slices"
	"sync"

	"github.com/alexanderramin/krsplan/internal/domain"
)

// ColorAllocator hands out color tags from a fixed palette, one per chosen
// course. A fresh pool hands colors out in palette order; a released color
// is handed out again before any other, so releasing and re-acquiring a
// tag leaves the pool exactly as it was.
type ColorAllocator struct {
	mu      sync.Mutex
	palette []domain.ColorTag
	// free is a stack; the next color to hand out is last.
	free []domain.ColorTag
}

// NewColorAllocator returns an allocator over palette with every color
// available. A nil palette means domain.Palette().
func NewColorAllocator(palette []domain.ColorTag) *ColorAllocator {
	if palette == nil {
		palette = domain.Palette()
	}
	a := &ColorAllocator{palette: slices.Clone(palette)}
	a.fill()
	return a
}

// Acquire withdraws a color from the pool. ok is false when no color is left.
func (a *ColorAllocator) Acquire() (tag domain.ColorTag, ok bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := len(a.free)
	if n == 0 {
		return "", false
	}
	tag = a.free[n-1]
	a.free = a.free[:n-1]
	return tag, true
}

// Release returns tag to the pool as the next color to hand out. Callers
// must only release tags they acquired; releasing a pooled tag is ignored.
func (a *ColorAllocator) Release(tag domain.ColorTag) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if slices.Contains(a.free, tag) {
		return
	}
	a.free = append(a.free, tag)
}

// Reset makes the whole palette available again in palette order.
func (a *ColorAllocator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.fill()
}

// Available returns the colors in the pool in hand-out order: the first
// element is what the next Acquire returns.
func (a *ColorAllocator) Available() []domain.ColorTag {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := slices.Clone(a.free)
	slices.Reverse(out)
	return out
}

// Palette returns the full palette.
func (a *ColorAllocator) Palette() []domain.ColorTag {
	return slices.Clone(a.palette)
}

func (a *ColorAllocator) fill() {
	a.free = slices.Clone(a.palette)
	slices.Reverse(a.free)
}
