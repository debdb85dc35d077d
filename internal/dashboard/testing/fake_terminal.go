// Package testing provides test doubles for the dashboard package.
package testing

import (
	"cmp"
	"slices"
	"sync"
	"time"

	"github.com/rileyhilliard/statusboard/internal/canvas"
	"github.com/rileyhilliard/statusboard/internal/dashboard"
	"github.com/rileyhilliard/statusboard/internal/errors"
)

// maxPolls stops a run loop whose script never sends the shutdown key.
const maxPolls = 1_000_000

// ScriptedKey is a key delivered once the virtual clock reaches At.
type ScriptedKey struct {
	At  time.Duration
	Key dashboard.Key
}

// SurfaceCall records a call to CreateSurface.
type SurfaceCall struct {
	Height, Width, X, Y int
	Success             bool
}

// FakeTerminal is a canvas-backed terminal with a virtual clock. PollInput
// never sleeps: it advances the clock to the next scripted key, or by the
// full timeout when no key is due within it.
type FakeTerminal struct {
	*canvas.Canvas

	mu sync.Mutex

	// Configuration
	ShouldFail bool
	FailError  error

	// Call tracking
	SurfaceCalls  []SurfaceCall
	PollTimeouts  []time.Duration
	RegisterCalls []dashboard.Color

	start   time.Time
	elapsed time.Duration
	script  []ScriptedKey
}

// NewFakeTerminal returns a width x height fake terminal whose clock starts at
// a fixed instant.
func NewFakeTerminal(width, height int) *FakeTerminal {
	return &FakeTerminal{
		Canvas: canvas.New(width, height),
		start:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Now returns the virtual time. Pass it to dashboard.WithClock.
func (f *FakeTerminal) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.start.Add(f.elapsed)
}

// Elapsed returns how far the virtual clock has advanced.
func (f *FakeTerminal) Elapsed() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.elapsed
}

// Advance moves the virtual clock forward, as a slow callback would.
func (f *FakeTerminal) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.elapsed += d
}

// PressAt schedules k for virtual time at.
func (f *FakeTerminal) PressAt(at time.Duration, k dashboard.Key) *FakeTerminal {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.script = append(f.script, ScriptedKey{At: at, Key: k})
	slices.SortStableFunc(f.script, func(a, b ScriptedKey) int {
		return cmp.Compare(a.At, b.At)
	})
	return f
}

// PressEvery schedules k at every multiple of step up to and including until.
func (f *FakeTerminal) PressEvery(step, until time.Duration, k dashboard.Key) *FakeTerminal {
	for at := step; at <= until; at += step {
		f.PressAt(at, k)
	}
	return f
}

// SetFail makes CreateSurface fail with err, or a generic error when err is
// nil.
func (f *FakeTerminal) SetFail(err error) *FakeTerminal {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ShouldFail = true
	f.FailError = err
	return f
}

// RegisterColors records the call and forwards it to the canvas.
func (f *FakeTerminal) RegisterColors(background dashboard.Color) {
	f.mu.Lock()
	f.RegisterCalls = append(f.RegisterCalls, background)
	f.mu.Unlock()
	f.Canvas.RegisterColors(background)
}

// CreateSurface records the call and allocates a canvas region unless
// configured to fail.
func (f *FakeTerminal) CreateSurface(height, width, x, y int) (dashboard.Surface, error) {
	f.mu.Lock()
	call := SurfaceCall{Height: height, Width: width, X: x, Y: y}
	if f.ShouldFail {
		f.SurfaceCalls = append(f.SurfaceCalls, call)
		failErr := f.FailError
		f.mu.Unlock()
		if failErr != nil {
			return nil, failErr
		}
		return nil, errors.New(errors.ErrTerminal,
			"Surface allocation failed",
			"Configured to fail in test")
	}
	f.mu.Unlock()

	s, err := f.Canvas.CreateSurface(height, width, x, y)

	f.mu.Lock()
	call.Success = err == nil
	f.SurfaceCalls = append(f.SurfaceCalls, call)
	f.mu.Unlock()
	return s, err
}

// PollInput delivers the next scripted key due within timeout, moving the
// clock to its time. Keys fed directly to the canvas are delivered first,
// without advancing the clock.
func (f *FakeTerminal) PollInput(timeout time.Duration) (dashboard.Key, bool) {
	if k, ok := f.Canvas.PollInput(timeout); ok {
		f.mu.Lock()
		f.PollTimeouts = append(f.PollTimeouts, timeout)
		f.mu.Unlock()
		return k, true
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.PollTimeouts = append(f.PollTimeouts, timeout)
	if len(f.PollTimeouts) > maxPolls {
		panic("fake terminal: poll limit exceeded, is the shutdown key scripted?")
	}

	if len(f.script) > 0 && f.script[0].At <= f.elapsed+timeout {
		next := f.script[0]
		f.script = f.script[1:]
		if next.At > f.elapsed {
			f.elapsed = next.At
		}
		return next.Key, true
	}
	f.elapsed += timeout
	return 0, false
}

// Remaining returns the number of scripted keys not yet delivered.
func (f *FakeTerminal) Remaining() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.script)
}

// SuccessfulSurfaces returns the number of successful CreateSurface calls.
func (f *FakeTerminal) SuccessfulSurfaces() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, call := range f.SurfaceCalls {
		if call.Success {
			count++
		}
	}
	return count
}

// Reset clears call tracking, the script and failure configuration. The
// canvas contents and the clock are kept.
func (f *FakeTerminal) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ShouldFail = false
	f.FailError = nil
	f.SurfaceCalls = nil
	f.PollTimeouts = nil
	f.RegisterCalls = nil
	f.script = nil
}
