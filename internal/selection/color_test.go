package selection

import (
	"testing"

	"github.com/alexanderramin/krsplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorAllocator_AcquireInPaletteOrder(t *testing.T) {
	a := NewColorAllocator(nil)

	first, ok := a.Acquire()
	require.True(t, ok)
	second, ok := a.Acquire()
	require.True(t, ok)

	assert.Equal(t, domain.ColorBlue, first)
	assert.Equal(t, domain.ColorGreen, second)
	assert.Len(t, a.Available(), len(domain.Palette())-2)
}

func TestColorAllocator_ExhaustionReportsNoColor(t *testing.T) {
	a := NewColorAllocator([]domain.ColorTag{domain.ColorRed})

	_, ok := a.Acquire()
	require.True(t, ok)

	tag, ok := a.Acquire()
	assert.False(t, ok)
	assert.Empty(t, tag)
}

func TestColorAllocator_ReleaseReturnsToPool(t *testing.T) {
	a := NewColorAllocator(nil)
	tag, _ := a.Acquire()
	a.Release(tag)

	assert.Equal(t, domain.Palette(), a.Available())

	again, _ := a.Acquire()
	assert.Equal(t, tag, again)
}

func TestColorAllocator_ReleasedColorIsHandedOutFirst(t *testing.T) {
	a := NewColorAllocator(nil)
	blue, _ := a.Acquire()
	green, _ := a.Acquire()
	pool := a.Available()

	a.Release(blue)
	a.Release(green)
	assert.Equal(t, append([]domain.ColorTag{green, blue}, pool...), a.Available())

	again, _ := a.Acquire()
	assert.Equal(t, green, again, "the most recently released color comes back first")

	a.Release(green)
	a.Release(green)
	assert.Len(t, a.Available(), len(domain.Palette()), "double release is ignored")
}

func TestColorAllocator_Reset(t *testing.T) {
	a := NewColorAllocator(nil)
	for i := 0; i < 5; i++ {
		a.Acquire()
	}
	a.Reset()
	assert.Equal(t, domain.Palette(), a.Available())
}

func TestColorAllocator_PaletteIsCopied(t *testing.T) {
	palette := []domain.ColorTag{domain.ColorRed, domain.ColorBlue}
	a := NewColorAllocator(palette)
	palette[0] = domain.ColorLime

	assert.Equal(t, []domain.ColorTag{domain.ColorRed, domain.ColorBlue}, a.Palette())
}
