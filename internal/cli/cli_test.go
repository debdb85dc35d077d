package cli

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rileyhilliard/statusboard/internal/config"
	"github.com/rileyhilliard/statusboard/internal/logger"
	"github.com/rileyhilliard/statusboard/internal/probe"
)

const gib = 1 << 30

// fakeSampler returns sample on every call, or err when set.
type fakeSampler struct {
	sample *probe.Sample
	err    error
	calls  int
	closed bool
}

func (f *fakeSampler) Sample(ctx context.Context) (*probe.Sample, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	s := *f.sample
	return &s, nil
}

func (f *fakeSampler) Close() error {
	f.closed = true
	return nil
}

func busyHost() *probe.Sample {
	return &probe.Sample{
		Host:         "web-1",
		Timestamp:    time.Date(2024, 1, 1, 12, 30, 0, 0, time.UTC),
		CPUPercent:   95.5,
		Cores:        4,
		LoadAvg:      [3]float64{1.5, 0.75, 0.25},
		MemTotal:     8 * gib,
		MemUsed:      2 * gib,
		MemAvailable: 6 * gib,
		NetRxRate:    2048,
		NetTxRate:    512,
		Uptime:       2 * time.Hour,
	}
}

// useSampler swaps newSampler for the duration of the test.
func useSampler(t *testing.T, s probe.Sampler) {
	t.Helper()
	orig := newSampler
	newSampler = func(*config.Config, logger.Logger) probe.Sampler { return s }
	t.Cleanup(func() { newSampler = orig })
}

func useTerminal(t *testing.T, tty bool) {
	t.Helper()
	orig := isTerminal
	isTerminal = func() bool { return tty }
	t.Cleanup(func() { isTerminal = orig })
}

// inEmptyWorkspace runs the test in a fresh directory with an empty HOME, so
// no config file is found.
func inEmptyWorkspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(dir)
	return dir
}

// syncBuffer is a bytes.Buffer safe for the spinner goroutine.
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
