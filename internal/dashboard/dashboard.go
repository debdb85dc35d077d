package dashboard

import (
	"cmp"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/rileyhilliard/statusboard/internal/errors"
	"github.com/rileyhilliard/statusboard/internal/logger"
)

// Defaults used when the corresponding option is not given.
const (
	DefaultShutdownKey = KeyF1
	DefaultInterval    = time.Second
	DefaultBackground  = ColorBlack
	DefaultBanner      = "Press F1 to exit"
)

// Handler receives the events the run loop dispatches. Both methods run on
// the loop goroutine, so they may update fields directly.
type Handler interface {
	// HandleChar is called for every key other than the shutdown key.
	HandleChar(k Key)

	// HandlePeriodic is called once at least one interval has passed since
	// the previous call (or since Run started).
	HandlePeriodic()
}

// NopHandler ignores every event. Embed it to implement only part of Handler.
type NopHandler struct{}

func (NopHandler) HandleChar(Key)  {}
func (NopHandler) HandlePeriodic() {}

// HandlerFuncs adapts plain functions to Handler. Nil funcs are skipped.
type HandlerFuncs struct {
	OnChar     func(k Key)
	OnPeriodic func()
}

func (h HandlerFuncs) HandleChar(k Key) {
	if h.OnChar != nil {
		h.OnChar(k)
	}
}

func (h HandlerFuncs) HandlePeriodic() {
	if h.OnPeriodic != nil {
		h.OnPeriodic()
	}
}

// Option configures a Dashboard.
type Option func(*Dashboard)

// WithShutdownKey sets the key that ends Run.
func WithShutdownKey(k Key) Option {
	return func(d *Dashboard) { d.shutdownKey = k }
}

// WithInterval sets the periodic callback interval.
func WithInterval(interval time.Duration) Option {
	return func(d *Dashboard) { d.interval = interval }
}

// WithBackground sets the background color the palette is registered on.
func WithBackground(c Color) Option {
	return func(d *Dashboard) { d.background = c }
}

// WithHandler sets the event handler. The default is NopHandler.
func WithHandler(h Handler) Option {
	return func(d *Dashboard) { d.handler = h }
}

// WithLogger sets the logger used for loop diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(d *Dashboard) { d.log = l }
}

// WithClock replaces time.Now for interval bookkeeping.
func WithClock(now func() time.Time) Option {
	return func(d *Dashboard) { d.now = now }
}

// WithBanner sets the line painted at the top-left corner on startup.
// An empty string disables it.
func WithBanner(text string) Option {
	return func(d *Dashboard) { d.banner = text }
}

// Dashboard owns a set of windows and runs the cooperative event loop.
type Dashboard struct {
	term        Terminal
	shutdownKey Key
	interval    time.Duration
	background  Color
	handler     Handler
	log         logger.Logger
	now         func() time.Time
	banner      string

	bannerSurface Surface
	windows       map[string]*Window
	order         []string
	lastTick      time.Time
	running       bool
	finished      bool
}

// New returns a Dashboard drawing on term. The palette is registered once per
// process, after which the banner is painted. An error here means the
// terminal is unusable and the caller should not continue.
func New(term Terminal, opts ...Option) (*Dashboard, error) {
	if term == nil {
		return nil, errors.New(errors.ErrTerminal,
			"No terminal to draw on",
			"Open a terminal before creating the dashboard")
	}

	d := &Dashboard{
		term:        term,
		shutdownKey: DefaultShutdownKey,
		interval:    DefaultInterval,
		background:  DefaultBackground,
		handler:     NopHandler{},
		log:         logger.Noop(),
		now:         time.Now,
		banner:      DefaultBanner,
		windows:     make(map[string]*Window),
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.interval <= 0 {
		return nil, errors.New(errors.ErrTerminal,
			"Periodic interval must be positive, got "+d.interval.String(),
			"Use an interval such as 500ms or 1s")
	}
	if !d.background.Valid() {
		return nil, errors.Newf(errors.ErrTerminal, "invalid background %s", d.background)
	}
	if d.handler == nil {
		d.handler = NopHandler{}
	}
	if d.log == nil {
		d.log = logger.Noop()
	}
	if d.now == nil {
		d.now = time.Now
	}

	if InitPalette(term, d.background) {
		d.log.Debug("palette registered on %s background", d.background)
	}

	if d.banner != "" {
		if err := d.paintBanner(); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (d *Dashboard) paintBanner() error {
	s, err := d.term.CreateSurface(1, runewidth.StringWidth(d.banner), 0, 0)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrTerminal,
			"Couldn't draw the startup banner",
			"Make the terminal larger or disable the banner")
	}
	s.BeginAttribute(ColorMagenta)
	err = s.WriteFormatted(0, 0, "%s", d.banner)
	s.EndAttribute(ColorMagenta)
	if err != nil {
		s.Destroy()
		return errors.WrapWithCode(err, errors.ErrTerminal,
			"Couldn't draw the startup banner",
			"Make the terminal larger or disable the banner")
	}
	s.Refresh()
	d.bannerSurface = s
	return nil
}

// ShutdownKey returns the key that ends Run.
func (d *Dashboard) ShutdownKey() Key { return d.shutdownKey }

// Interval returns the periodic callback interval.
func (d *Dashboard) Interval() time.Duration { return d.interval }

// Background returns the color the palette was registered on.
func (d *Dashboard) Background() Color { return d.background }

// SetHandler replaces the event handler. Passing nil installs NopHandler.
func (d *Dashboard) SetHandler(h Handler) {
	if h == nil {
		h = NopHandler{}
	}
	d.handler = h
}

// AddWindow registers w under its name and takes a reference to it.
func (d *Dashboard) AddWindow(w *Window) error {
	if w == nil {
		return errors.Newf(errors.ErrUnknownWindow, "can't add a nil window")
	}
	if w.Name() == "" {
		return errors.Newf(errors.ErrNameCollision, "window name must not be empty")
	}
	if _, ok := d.windows[w.Name()]; ok {
		return errors.Newf(errors.ErrNameCollision, "a window named %q is already registered", w.Name())
	}
	d.windows[w.Name()] = w.Retain()
	d.order = append(d.order, w.Name())
	return nil
}

// RemoveWindow unregisters the named window and drops the dashboard's
// reference to it.
func (d *Dashboard) RemoveWindow(name string) error {
	w, ok := d.windows[name]
	if !ok {
		return errors.Newf(errors.ErrUnknownWindow, "no window named %q", name)
	}
	delete(d.windows, name)
	for i, n := range d.order {
		if n == name {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	w.Release()
	return nil
}

// Window returns the registered window with the given name.
func (d *Dashboard) Window(name string) (*Window, bool) {
	w, ok := d.windows[name]
	return w, ok
}

// Windows returns the registered window names in registration order.
func (d *Dashboard) Windows() []string {
	return append([]string(nil), d.order...)
}

// UpdateWindowField updates field in the named window.
func UpdateWindowField[T cmp.Ordered](d *Dashboard, window, field string, value T, color ...Color) error {
	w, ok := d.windows[window]
	if !ok {
		return errors.Newf(errors.ErrUnknownWindow, "no window named %q", window)
	}
	return UpdateField(w, field, value, color...)
}

// Redraw repaints every registered window.
func (d *Dashboard) Redraw() error {
	for _, name := range d.order {
		if err := d.windows[name].Redraw(); err != nil {
			return err
		}
	}
	return nil
}

// Run dispatches input and periodic callbacks until the shutdown key is read.
// Every wait for input is bounded by a quarter of the interval, so periodic
// work is never starved by an idle keyboard. When Run returns the dashboard
// releases its window references; a Dashboard runs at most once.
func (d *Dashboard) Run() error {
	if d.running {
		return errors.Newf(errors.ErrSurfaceNotReady, "dashboard is already running")
	}
	if d.finished {
		return errors.Newf(errors.ErrSurfaceNotReady, "dashboard has already run")
	}
	d.running = true
	defer d.shutdown()

	wait := d.interval / 4
	d.lastTick = d.now()
	d.log.Debug("event loop started: interval=%s poll=%s shutdown=%s", d.interval, wait, d.shutdownKey)

	for {
		if k, ok := d.term.PollInput(wait); ok {
			if k == d.shutdownKey {
				d.log.Debug("shutdown key %s received", k)
				return nil
			}
			d.handler.HandleChar(k)
		}

		if d.now().Sub(d.lastTick) >= d.interval {
			d.handler.HandlePeriodic()
			d.lastTick = d.now()
		}
	}
}

func (d *Dashboard) shutdown() {
	for _, name := range d.order {
		d.windows[name].Release()
		delete(d.windows, name)
	}
	d.order = nil
	if d.bannerSurface != nil {
		d.bannerSurface.Destroy()
		d.bannerSurface = nil
	}
	d.running = false
	d.finished = true
}
