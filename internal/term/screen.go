// Package term implements dashboard.Terminal on a tcell screen.
package term

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rileyhilliard/statusboard/internal/dashboard"
	"github.com/rileyhilliard/statusboard/internal/errors"
)

// eventBuffer bounds how many raw events queue up between polls.
const eventBuffer = 100

// Screen drives a tcell.Screen. Drawing happens on the caller's goroutine;
// a background goroutine only moves raw events into a buffered channel.
type Screen struct {
	screen tcell.Screen

	base   tcell.Style
	styles map[dashboard.Color]tcell.Style

	events    chan tcell.Event
	quit      chan struct{}
	pumpOnce  sync.Once
	closeOnce sync.Once
}

// Open initialises the user's terminal. Close must be called to restore it.
func Open() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrTerminal,
			"Couldn't open the terminal",
			"Run statusboard from an interactive terminal (TERM must be set)")
	}
	if err := s.Init(); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrTerminal,
			"Couldn't initialise the terminal",
			"Check that TERM names a terminal known to terminfo")
	}
	return NewScreen(s), nil
}

// NewScreen wraps an already initialised tcell screen.
func NewScreen(s tcell.Screen) *Screen {
	return &Screen{
		screen: s,
		base:   tcell.StyleDefault,
		styles: make(map[dashboard.Color]tcell.Style),
		events: make(chan tcell.Event, eventBuffer),
		quit:   make(chan struct{}),
	}
}

// Size returns the screen width and height in cells.
func (s *Screen) Size() (width, height int) {
	return s.screen.Size()
}

// paletteColor maps a dashboard color to its ANSI palette entry.
func paletteColor(c dashboard.Color) tcell.Color {
	if c == dashboard.ColorDefault || !c.Valid() {
		return tcell.ColorDefault
	}
	return tcell.PaletteColor(int(c - dashboard.ColorBlack))
}

// RegisterColors builds one style per palette color on the given background
// and clears the screen to it.
func (s *Screen) RegisterColors(background dashboard.Color) {
	s.base = tcell.StyleDefault.Background(paletteColor(background))
	for _, c := range dashboard.Palette() {
		s.styles[c] = s.base.Foreground(paletteColor(c))
	}
	s.screen.SetStyle(s.base)
	s.screen.Clear()
}

func (s *Screen) style(c dashboard.Color) tcell.Style {
	if st, ok := s.styles[c]; ok {
		return st
	}
	if c == dashboard.ColorDefault {
		return s.base
	}
	return s.base.Foreground(paletteColor(c))
}

// CreateSurface allocates a region that must fit on the current screen.
func (s *Screen) CreateSurface(height, width, x, y int) (dashboard.Surface, error) {
	sw, sh := s.screen.Size()
	if height <= 0 || width <= 0 || x < 0 || y < 0 || x+width > sw || y+height > sh {
		return nil, errors.WrapWithCode(
			fmt.Errorf("region %dx%d at (%d,%d), screen is %dx%d", width, height, x, y, sw, sh),
			errors.ErrInvalidPosition,
			"Window does not fit on the screen",
			"Enlarge the terminal or shrink the layout")
	}
	return &region{owner: s, x: x, y: y, width: width, height: height}, nil
}

func (s *Screen) startPump() {
	s.pumpOnce.Do(func() {
		go func() {
			for {
				ev := s.screen.PollEvent()
				if ev == nil {
					return
				}
				select {
				case s.events <- ev:
				case <-s.quit:
					return
				}
			}
		}()
	})
}

// PollInput waits up to timeout for a key. Resize events resync the screen
// and keep waiting; other non-key events are dropped.
func (s *Screen) PollInput(timeout time.Duration) (dashboard.Key, bool) {
	s.startPump()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case ev := <-s.events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if k, ok := translateKey(ev); ok {
					return k, true
				}
			case *tcell.EventResize:
				s.screen.Sync()
			}
		case <-timer.C:
			return 0, false
		case <-s.quit:
			return 0, false
		}
	}
}

// Close restores the terminal. It is safe to call more than once.
func (s *Screen) Close() error {
	s.closeOnce.Do(func() {
		close(s.quit)
		s.screen.Fini()
	})
	return nil
}

type region struct {
	owner         *Screen
	x, y          int
	width, height int
	attrs         []dashboard.Color
	destroyed     bool
}

func (r *region) color() dashboard.Color {
	if len(r.attrs) == 0 {
		return dashboard.ColorDefault
	}
	return r.attrs[len(r.attrs)-1]
}

func (r *region) set(x, y int, ch rune, st tcell.Style) {
	r.owner.screen.SetContent(r.x+x, r.y+y, ch, nil, st)
}

func (r *region) DrawBorder() {
	if r.destroyed || r.width < 2 || r.height < 2 {
		return
	}
	st := r.owner.base
	last, bottom := r.width-1, r.height-1
	for x := 1; x < last; x++ {
		r.set(x, 0, tcell.RuneHLine, st)
		r.set(x, bottom, tcell.RuneHLine, st)
	}
	for y := 1; y < bottom; y++ {
		r.set(0, y, tcell.RuneVLine, st)
		r.set(last, y, tcell.RuneVLine, st)
	}
	r.set(0, 0, tcell.RuneULCorner, st)
	r.set(last, 0, tcell.RuneURCorner, st)
	r.set(0, bottom, tcell.RuneLLCorner, st)
	r.set(last, bottom, tcell.RuneLRCorner, st)
}

func (r *region) WriteFormatted(x, y int, format string, value any) error {
	if r.destroyed {
		return errors.Newf(errors.ErrSurfaceNotReady, "region at (%d,%d) was destroyed", r.x, r.y)
	}
	if x < 0 || y < 0 || x >= r.width || y >= r.height {
		return errors.Newf(errors.ErrInvalidPosition,
			"write at (%d,%d) is outside the %dx%d region", x, y, r.width, r.height)
	}

	st := r.owner.style(r.color())
	col := x
	for _, ch := range fmt.Sprintf(format, value) {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if col+w > r.width {
			break
		}
		r.set(col, y, ch, st)
		col += w
	}
	return nil
}

func (r *region) BeginAttribute(c dashboard.Color) {
	r.attrs = append(r.attrs, c)
}

func (r *region) EndAttribute(c dashboard.Color) {
	for i := len(r.attrs) - 1; i >= 0; i-- {
		if r.attrs[i] == c {
			r.attrs = append(r.attrs[:i], r.attrs[i+1:]...)
			return
		}
	}
}

func (r *region) Refresh() {
	if !r.destroyed {
		r.owner.screen.Show()
	}
}

func (r *region) Clear(fill rune) {
	if r.destroyed {
		return
	}
	for y := 0; y < r.height; y++ {
		for x := 0; x < r.width; x++ {
			r.set(x, y, fill, r.owner.base)
		}
	}
}

func (r *region) Destroy() {
	r.destroyed = true
	r.attrs = nil
}
