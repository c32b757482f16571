package selection

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/alexanderramin/krsplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestStore_Invariants_RandomOperations drives the store with random
// add/remove/toggle/reset sequences and checks the limits and color
// accounting after every step.
func TestStore_Invariants_RandomOperations(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	pool := make([]domain.Course, 30)
	for i := range pool {
		pool[i] = domain.Course{
			Kode: fmt.Sprintf("MK%02d", i),
			Nama: "Mata Kuliah",
			SKS:  rng.Intn(6) + 1, // 1–6
		}
	}

	for trial := 0; trial < 100; trial++ {
		s := NewStore(nil)

		for step := 0; step < 80; step++ {
			c := pool[rng.Intn(len(pool))]
			switch op := rng.Intn(10); {
			case op < 5:
				s.Add(c)
			case op < 8:
				s.Remove(c)
			case op < 9:
				s.Toggle(c)
			default:
				if rng.Intn(5) == 0 {
					s.Reset()
				}
			}

			snap := s.Snapshot()
			assert.LessOrEqual(t, len(snap), domain.CourseLimit, "trial %d step %d: count", trial, step)
			assert.LessOrEqual(t, s.TotalSKS(), domain.SKSLimit, "trial %d step %d: sks", trial, step)

			inUse := make(map[domain.ColorTag]bool)
			kodes := make(map[string]bool)
			for _, cc := range snap {
				require.False(t, inUse[cc.Color], "trial %d step %d: color %q used twice", trial, step, cc.Color)
				require.False(t, kodes[cc.Kode], "trial %d step %d: kode %q chosen twice", trial, step, cc.Kode)
				inUse[cc.Color] = true
				kodes[cc.Kode] = true
			}

			available := s.Colors().Available()
			for _, c := range available {
				require.False(t, inUse[c], "trial %d step %d: color %q both in use and available", trial, step, c)
			}
			require.Equal(t, len(domain.Palette()), len(available)+len(inUse),
				"trial %d step %d: available ∪ in-use must equal the palette", trial, step)
		}
	}
}

// TestStore_Invariants_ToggleTwiceIsIdentity checks toggle idempotence
// from random starting selections, including ones whose pool has gaps
// left by removed courses.
func TestStore_Invariants_ToggleTwiceIsIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 300; trial++ {
		s := NewStore(nil)
		n := rng.Intn(9)
		for i := 0; i < n; i++ {
			s.Add(domain.Course{Kode: fmt.Sprintf("K%d", i), SKS: rng.Intn(3) + 1})
		}
		for i := 0; i < n; i++ {
			if rng.Intn(3) == 0 {
				s.Remove(domain.Kode(fmt.Sprintf("K%d", i)))
			}
		}
		before := s.Snapshot()
		pool := s.Colors().Available()

		x := domain.Course{Kode: fmt.Sprintf("K%d", rng.Intn(10)), SKS: rng.Intn(3) + 1}
		if existing, ok := s.Get(x.Kode); ok {
			// A chosen course comes back at the front, with its color.
			s.Toggle(existing.Course)
			s.Toggle(existing.Course)

			after, ok := s.Get(x.Kode)
			require.True(t, ok, "trial %d", trial)
			assert.Equal(t, existing.Color, after.Color, "trial %d", trial)
			assert.ElementsMatch(t, before, s.Snapshot(), "trial %d", trial)
			assert.Equal(t, pool, s.Colors().Available(), "trial %d", trial)
			continue
		}

		s.Toggle(x)
		s.Toggle(x)
		assert.Equal(t, before, s.Snapshot(), "trial %d", trial)
		assert.Equal(t, pool, s.Colors().Available(), "trial %d", trial)
	}
}
