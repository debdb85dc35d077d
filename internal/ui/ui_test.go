package ui

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rileyhilliard/statusboard/internal/errors"
	"github.com/stretchr/testify/assert"
)

// syncBuffer guards a bytes.Buffer written from the animation goroutine.
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

func TestSpinner_Success(t *testing.T) {
	var out syncBuffer
	s := NewSpinner("Sampling web-1")
	s.SetOutput(&out)

	assert.Equal(t, SpinnerPending, s.State())
	s.Start()
	s.Start()
	assert.Equal(t, SpinnerInProgress, s.State())
	time.Sleep(2 * spinnerFrames.FPS)
	s.Success()

	assert.Equal(t, SpinnerSuccess, s.State())
	assert.Contains(t, out.String(), "Sampling web-1...")
	assert.Contains(t, out.String(), SymbolSuccess+" Sampling web-1")
	assert.True(t, strings.HasSuffix(out.String(), "s\n"))
}

func TestSpinner_Fail(t *testing.T) {
	var out syncBuffer
	s := NewSpinner("Connecting")
	s.SetOutput(&out)

	s.Start()
	s.Fail()
	s.Stop()

	assert.Equal(t, SpinnerFailed, s.State())
	assert.Contains(t, out.String(), SymbolFail+" Connecting")
}

func TestFormatError(t *testing.T) {
	assert.Empty(t, FormatError(nil))

	plain := FormatError(fmt.Errorf("boom"))
	assert.Contains(t, plain, SymbolFail+" boom")

	err := errors.WrapWithCode(
		errors.New(errors.ErrSSH, "Connection refused", "Is sshd running?"),
		errors.ErrProbe, "Couldn't read metrics from web-1", "Check the host is reachable")
	out := FormatError(err)
	assert.Contains(t, out, "Couldn't read metrics from web-1")
	assert.Contains(t, out, "\n  Connection refused\n")
	assert.Contains(t, out, "Check the host is reachable")
	assert.NotContains(t, out, "Is sshd running?")
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0.05s", formatDuration(50*time.Millisecond))
	assert.Equal(t, "1.2s", formatDuration(1200*time.Millisecond))
}
