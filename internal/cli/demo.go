package cli

import (
	"fmt"
	"time"

	"github.com/rileyhilliard/statusboard/internal/dashboard"
	"github.com/rileyhilliard/statusboard/internal/term"
)

const (
	demoWindow     = "demo"
	demoStartInt   = int32(100)
	demoStartUint  = uint32(0xFEEDBEEF)
	helloWindow    = "hello"
	helloGreeting  = "Hello World !!!"
	helloGreetName = "greeting"
)

// demoBoard is a window with one field of each demo type, driven by a
// counter.
type demoBoard struct {
	window *dashboard.Window
	ticks  int
}

func newDemoBoard(t dashboard.Terminal) (*demoBoard, error) {
	w := dashboard.NewWindow(t, demoWindow)
	if err := w.Create(10, 20, 2, 2); err != nil {
		w.Release()
		return nil, err
	}
	err := firstErr(
		func() error { return dashboard.AddField(w, 1, 1, "test_str", "%s", "hello") },
		func() error { return dashboard.AddField(w, 2, 4, "test_int", "%d", demoStartInt) },
		func() error {
			return dashboard.AddField(w, 5, 8, "test_uint", "0x%08x", demoStartUint, dashboard.ColorCyan)
		},
		func() error {
			return dashboard.AddFieldThreshold(w, "test_int", demoStartInt+5, demoStartInt+10, dashboard.ColorYellow)
		},
		func() error {
			return dashboard.AddFieldThreshold(w, "test_int", demoStartInt+10, demoStartInt+1000, dashboard.ColorRed)
		},
		func() error { return w.AddTitle("demo", dashboard.AlignTop, dashboard.AlignCenter, dashboard.ColorMagenta) },
	)
	if err != nil {
		w.Release()
		return nil, err
	}
	return &demoBoard{window: w}, nil
}

// tick advances the counter and pushes it into every field.
func (b *demoBoard) tick() error {
	b.ticks++
	n := b.ticks
	return firstErr(
		func() error { return dashboard.UpdateField(b.window, "test_str", fmt.Sprintf("tick %d", n)) },
		func() error { return dashboard.UpdateField(b.window, "test_int", demoStartInt+int32(n)) },
		func() error { return dashboard.UpdateField(b.window, "test_uint", demoStartUint+uint32(n)) },
	)
}

func (b *demoBoard) attach(d *dashboard.Dashboard) error {
	// The dashboard takes its own reference.
	defer b.window.Release()
	if err := d.AddWindow(b.window); err != nil {
		return err
	}
	d.SetHandler(dashboard.HandlerFuncs{
		OnPeriodic: func() { _ = b.tick() },
	})
	return nil
}

func newHelloWindow(t dashboard.Terminal) (*dashboard.Window, error) {
	w := dashboard.NewWindow(t, helloWindow, dashboard.WithOutline(true))
	if err := w.Create(5, 30, 2, 2); err != nil {
		w.Release()
		return nil, err
	}
	err := firstErr(
		func() error {
			return dashboard.AddField(w, 2, 2, helloGreetName, "%s", helloGreeting, dashboard.ColorGreen)
		},
		func() error { return w.AddTitle("statusboard", dashboard.AlignTop, dashboard.AlignCenter) },
	)
	if err != nil {
		w.Release()
		return nil, err
	}
	return w, nil
}

// demoCommand runs the counter demo on the real terminal.
func demoCommand(interval time.Duration) error {
	if err := requireTerminal("demo"); err != nil {
		return err
	}
	return runOnScreen(func(d *dashboard.Dashboard, t dashboard.Terminal) error {
		b, err := newDemoBoard(t)
		if err != nil {
			return err
		}
		return b.attach(d)
	}, dashboard.WithInterval(interval))
}

// helloCommand shows one greeting window until the shutdown key.
func helloCommand() error {
	if err := requireTerminal("hello"); err != nil {
		return err
	}
	return runOnScreen(func(d *dashboard.Dashboard, t dashboard.Terminal) error {
		w, err := newHelloWindow(t)
		if err != nil {
			return err
		}
		defer w.Release()
		return d.AddWindow(w)
	})
}

// runOnScreen opens the terminal, lets setup add windows and runs the loop.
func runOnScreen(setup func(*dashboard.Dashboard, dashboard.Terminal) error, opts ...dashboard.Option) error {
	screen, err := term.Open()
	if err != nil {
		return err
	}
	defer screen.Close()
	return runBoard(screen, setup, opts...)
}

func runBoard(t dashboard.Terminal, setup func(*dashboard.Dashboard, dashboard.Terminal) error, opts ...dashboard.Option) error {
	d, err := dashboard.New(t, opts...)
	if err != nil {
		return err
	}
	if err := setup(d, t); err != nil {
		return err
	}
	return d.Run()
}

func firstErr(steps ...func() error) error {
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}
