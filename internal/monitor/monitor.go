package monitor

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/rileyhilliard/statusboard/internal/config"
	"github.com/rileyhilliard/statusboard/internal/dashboard"
	"github.com/rileyhilliard/statusboard/internal/errors"
	"github.com/rileyhilliard/statusboard/internal/logger"
	"github.com/rileyhilliard/statusboard/internal/probe"
)

// DefaultTimeout bounds a single Sample call.
const DefaultTimeout = 10 * time.Second

// Option configures a Monitor.
type Option func(*Monitor)

// WithLogger sets the logger for sampling diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(m *Monitor) { m.log = l }
}

// WithTimeout bounds each Sample call.
func WithTimeout(d time.Duration) Option {
	return func(m *Monitor) { m.timeout = d }
}

// WithKeyMap replaces the default key bindings.
func WithKeyMap(k KeyMap) Option {
	return func(m *Monitor) { m.keys = k }
}

// WithOutline overrides every window's outline setting.
func WithOutline(outline bool) Option {
	return func(m *Monitor) { m.outline = &outline }
}

// Monitor builds windows from a layout config and keeps their fields fed
// from a Sampler. It implements dashboard.Handler.
type Monitor struct {
	sampler probe.Sampler
	log     logger.Logger
	timeout time.Duration
	keys    KeyMap
	outline *bool

	dash     *dashboard.Dashboard
	windows  []*dashboard.Window
	bindings []*binding
	status   []*binding

	paused  bool
	samples int
	last    *probe.Sample
	lastErr error
}

// New creates every window in cfg on term and registers its fields. On
// error, windows already created are cleaned up.
func New(term dashboard.Terminal, cfg *config.Config, sampler probe.Sampler, opts ...Option) (*Monitor, error) {
	if cfg == nil {
		return nil, errors.New(errors.ErrConfig, "No configuration given", "Load a config or use config.DefaultConfig()")
	}
	if sampler == nil {
		return nil, errors.New(errors.ErrProbe, "No metric sampler given", "Create one with probe.New")
	}

	m := &Monitor{
		sampler: sampler,
		log:     logger.Noop(),
		timeout: DefaultTimeout,
		keys:    DefaultKeyMap(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.log == nil {
		m.log = logger.Noop()
	}
	if m.timeout <= 0 {
		m.timeout = DefaultTimeout
	}

	for _, wc := range cfg.Windows {
		if err := m.buildWindow(term, wc); err != nil {
			m.release()
			return nil, err
		}
	}
	m.log.Debug("monitor built %d windows with %d bound fields", len(m.windows), len(m.bindings)+len(m.status))
	return m, nil
}

func (m *Monitor) buildWindow(term dashboard.Terminal, wc config.WindowConfig) error {
	outline := wc.Outlined()
	if m.outline != nil {
		outline = *m.outline
	}

	w := dashboard.NewWindow(term, wc.Name, dashboard.WithOutline(outline))
	if err := w.Create(wc.Height, wc.Width, wc.X, wc.Y); err != nil {
		w.Release()
		return err
	}
	m.windows = append(m.windows, w)

	for _, fc := range wc.Fields {
		b, err := addField(w, fc)
		if err != nil {
			code := errors.CodeOf(err)
			if code == "" {
				code = errors.ErrConfig
			}
			return errors.WrapWithCode(err, code,
				fmt.Sprintf("Couldn't add field '%s' to window '%s'", fc.Name, wc.Name),
				"Check the field's position, type and thresholds in the config")
		}
		switch {
		case b == nil:
		case b.metric == config.StatusMetric:
			m.status = append(m.status, b)
		default:
			m.bindings = append(m.bindings, b)
		}
	}

	if t := wc.Title; t != nil && t.Text != "" {
		v, err := dashboard.ParseVerticalAlign(t.Vertical)
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig, "Invalid title for window "+wc.Name, "")
		}
		h, err := dashboard.ParseHorizontalAlign(t.Horizontal)
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig, "Invalid title for window "+wc.Name, "")
		}
		c, err := dashboard.ParseColor(t.Color)
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig, "Invalid title for window "+wc.Name, "")
		}
		if err := w.AddTitle(t.Text, v, h, c); err != nil {
			return err
		}
	}
	return nil
}

// Attach registers every window with d and installs the monitor as its
// handler.
func (m *Monitor) Attach(d *dashboard.Dashboard) error {
	for _, w := range m.windows {
		if err := d.AddWindow(w); err != nil {
			return err
		}
	}
	d.SetHandler(m)
	m.dash = d
	return nil
}

// Windows returns the windows the monitor created, in config order.
func (m *Monitor) Windows() []*dashboard.Window {
	return append([]*dashboard.Window(nil), m.windows...)
}

// Paused reports whether periodic sampling is suspended.
func (m *Monitor) Paused() bool { return m.paused }

// Last returns the most recent successful sample, or nil.
func (m *Monitor) Last() *probe.Sample { return m.last }

// LastError returns the error from the most recent sample attempt.
func (m *Monitor) LastError() error { return m.lastErr }

// Samples returns the number of successful samples.
func (m *Monitor) Samples() int { return m.samples }

// HandlePeriodic samples unless paused.
func (m *Monitor) HandlePeriodic() {
	if m.paused {
		return
	}
	m.Refresh()
}

// HandleChar dispatches the monitor's key bindings.
func (m *Monitor) HandleChar(k dashboard.Key) {
	switch {
	case matches(k, m.keys.Refresh):
		m.Refresh()
	case matches(k, m.keys.Pause):
		m.paused = !m.paused
		m.log.Debug("sampling paused=%v", m.paused)
		m.showStatus()
	case matches(k, m.keys.Redraw):
		if err := m.Redraw(); err != nil {
			m.log.Warn("redraw failed: %v", err)
		}
	default:
		m.log.Debug("unbound key %s", k)
	}
}

// Refresh takes one sample and pushes every bound metric into its field.
// Field errors are logged and do not stop the remaining updates.
func (m *Monitor) Refresh() error {
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	s, err := m.sampler.Sample(ctx)
	if err != nil {
		m.lastErr = err
		m.log.Warn("sample failed: %v", err)
		m.showStatus()
		return err
	}
	m.lastErr = nil
	m.last = s
	m.samples++

	for _, b := range m.bindings {
		r, ok := s.Metric(b.metric)
		if !ok {
			continue
		}
		if err := b.push(r, dashboard.ColorDefault); err != nil {
			m.log.Warn("update %s.%s from %s: %v", b.window, b.field, b.metric, err)
		}
	}
	m.showStatus()
	return nil
}

// StatusText returns the line shown in status fields.
func (m *Monitor) StatusText() (string, dashboard.Color) {
	switch {
	case m.paused:
		return "paused, press " + m.keys.Pause.Help().Key + " to resume", dashboard.ColorYellow
	case m.lastErr != nil:
		return "sample failed: " + summary(m.lastErr), dashboard.ColorRed
	case m.last == nil:
		return "waiting for first sample", dashboard.ColorDefault
	}
	return fmt.Sprintf("%s sampled %s | %s", m.last.Host, m.last.Timestamp.Format(time.TimeOnly), m.keys.HelpLine()),
		dashboard.ColorGreen
}

func (m *Monitor) showStatus() {
	if len(m.status) == 0 {
		return
	}
	text, color := m.StatusText()
	r := probe.Reading{Text: text, IsText: true}
	for _, b := range m.status {
		if err := b.push(r, color); err != nil {
			m.log.Warn("update status %s.%s: %v", b.window, b.field, err)
		}
	}
}

// Redraw repaints through the attached dashboard, or window by window when
// the monitor has not been attached.
func (m *Monitor) Redraw() error {
	if m.dash != nil {
		return m.dash.Redraw()
	}
	for _, w := range m.windows {
		if err := w.Redraw(); err != nil {
			return err
		}
	}
	return nil
}

// Close drops the monitor's window references and closes the sampler.
// Windows still registered with a running dashboard stay on screen until it
// releases them.
func (m *Monitor) Close() error {
	m.release()
	return m.sampler.Close()
}

func (m *Monitor) release() {
	for _, w := range m.windows {
		w.Release()
	}
	m.windows = nil
	m.bindings = nil
	m.status = nil
}

// summary returns the first line of a structured error's message.
func summary(err error) string {
	var sbErr *errors.Error
	msg := err.Error()
	if stderrors.As(err, &sbErr) {
		msg = sbErr.Message
	}
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		msg = msg[:i]
	}
	return strings.TrimSpace(msg)
}
