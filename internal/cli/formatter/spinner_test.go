package formatter

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// syncBuffer guards a bytes.Buffer written by the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinner_DrawsAndClears(t *testing.T) {
	var out syncBuffer
	stop := StartSpinner(&out, "Validating")
	stop()
	stop()

	got := stripANSI(out.String())
	assert.Contains(t, got, "⠋ Validating")
	assert.Contains(t, out.String(), "\r\033[K")
}

func TestSpinner_StopBeforeStart(t *testing.T) {
	var out syncBuffer
	s := NewSpinner(&out, "idle")
	s.Stop()
	s.Start()
	assert.Empty(t, out.String())
}
