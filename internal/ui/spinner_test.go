package ui

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinner_DrawsSuffixAndClears(t *testing.T) {
	var out lockedBuffer
	s := NewSpinner(&out, "Planning")
	s.delay = time.Millisecond

	s.Start()
	s.Start() // second start is a no-op
	assert.Eventually(t, func() bool { return strings.Contains(out.String(), "Planning") }, time.Second, time.Millisecond)

	s.SetSuffix("Visualizing")
	assert.Eventually(t, func() bool { return strings.Contains(out.String(), "Visualizing") }, time.Second, time.Millisecond)

	s.Stop()
	s.Stop()
	assert.True(t, strings.HasSuffix(out.String(), "\r\033[K"))
}
