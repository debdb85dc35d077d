package monitor

import (
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/rileyhilliard/statusboard/internal/config"
	"github.com/rileyhilliard/statusboard/internal/dashboard"
	dtesting "github.com/rileyhilliard/statusboard/internal/dashboard/testing"
	"github.com/rileyhilliard/statusboard/internal/errors"
	"github.com/rileyhilliard/statusboard/internal/logger"
	"github.com/rileyhilliard/statusboard/internal/probe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
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

func newMonitor(t *testing.T, cfg *config.Config, sampler probe.Sampler, opts ...Option) (*Monitor, *dtesting.FakeTerminal) {
	t.Helper()
	ft := dtesting.NewFakeTerminal(80, 24)
	m, err := New(ft, cfg, sampler, opts...)
	require.NoError(t, err)
	return m, ft
}

func TestNew_DefaultLayout(t *testing.T) {
	m, ft := newMonitor(t, config.DefaultConfig(), &fakeSampler{sample: busyHost()})

	assert.Len(t, m.Windows(), 5)
	assert.Equal(t, 5, ft.SuccessfulSurfaces())
	assert.Contains(t, ft.Line(1), " System ")
	assert.Contains(t, ft.Line(1), " CPU ")
	assert.Contains(t, ft.Line(2), "usage     0.0%", "defaults render before the first sample")

	text, _ := m.StatusText()
	assert.Equal(t, "waiting for first sample", text)
}

func TestRefresh_PushesMetrics(t *testing.T) {
	m, ft := newMonitor(t, config.DefaultConfig(), &fakeSampler{sample: busyHost()})

	require.NoError(t, m.Refresh())

	assert.Contains(t, ft.Line(2), "host    web-1")
	assert.Contains(t, ft.Line(2), "usage    95.5%")
	assert.Contains(t, ft.Line(3), "uptime  2h0m0s")
	assert.Contains(t, ft.Line(4), "time    12:30:00")
	assert.Contains(t, ft.Line(4), "load 1  1.50")
	assert.Contains(t, ft.Line(5), "cores   4")
	assert.Contains(t, ft.Line(10), "used     25.0%")
	assert.Contains(t, ft.Line(10), "rx      2.0 KiB/s")
	assert.Contains(t, ft.Line(11), "in use  2.0 GiB")
	assert.Contains(t, ft.Line(11), "tx      512 B/s")
	assert.Contains(t, ft.Line(17), "web-1 sampled 12:30:00 | r refresh, p pause, ctrl+l redraw")

	// cpu window is at (40,1); usage sits at (2,1) inside it.
	assert.Equal(t, dashboard.ColorRed, ft.Cell(42, 2).Color)
	// memory percent is in the green band.
	assert.Equal(t, dashboard.ColorGreen, ft.Cell(2, 10).Color)
	assert.Equal(t, dashboard.ColorGreen, ft.Cell(1, 17).Color)

	cpu := m.Windows()[1]
	usage, ok := dashboard.LookupField[float64](cpu, "usage")
	require.True(t, ok)
	assert.Equal(t, 95.5, usage.Value())

	assert.Equal(t, 1, m.Samples())
	assert.NoError(t, m.LastError())
	assert.Equal(t, "web-1", m.Last().Host)
}

func TestRefresh_Error(t *testing.T) {
	log := logger.NewBufferLogger()
	sampler := &fakeSampler{sample: busyHost()}
	m, ft := newMonitor(t, config.DefaultConfig(), sampler, WithLogger(log))

	require.NoError(t, m.Refresh())
	sampler.err = errors.New(errors.ErrProbe, "host unreachable", "Check the network")

	err := m.Refresh()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrProbe))
	assert.Equal(t, err, m.LastError())
	assert.Equal(t, "web-1", m.Last().Host, "last good sample is kept")

	assert.Contains(t, ft.Line(17), "sample failed: host unreachable")
	assert.Equal(t, dashboard.ColorRed, ft.Cell(1, 17).Color)
	assert.Contains(t, ft.Line(2), "usage    95.5%", "values from the last good sample stay")
	assert.True(t, log.HasLevel("warn"))
}

func TestHandleChar(t *testing.T) {
	sampler := &fakeSampler{sample: busyHost()}
	m, ft := newMonitor(t, config.DefaultConfig(), sampler)

	m.HandleChar('r')
	assert.Equal(t, 1, sampler.calls)

	m.HandleChar('p')
	assert.True(t, m.Paused())
	assert.Contains(t, ft.Line(17), "paused, press p to resume")
	assert.Equal(t, dashboard.ColorYellow, ft.Cell(1, 17).Color)

	m.HandlePeriodic()
	assert.Equal(t, 1, sampler.calls, "no sampling while paused")

	m.HandleChar('r')
	assert.Equal(t, 2, sampler.calls, "refresh still works while paused")

	m.HandleChar(' ')
	assert.False(t, m.Paused())
	m.HandlePeriodic()
	assert.Equal(t, 3, sampler.calls)

	m.HandleChar(dashboard.Key(0x0c)) // ctrl+l
	m.HandleChar('x')
	assert.Equal(t, 3, sampler.calls)
}

func TestHandleChar_RedrawRestoresColors(t *testing.T) {
	sampler := &fakeSampler{sample: busyHost()}
	m, ft := newMonitor(t, config.DefaultConfig(), sampler)
	require.NoError(t, m.Refresh())
	status := ft.Line(17)

	for _, w := range m.Windows() {
		require.NoError(t, w.Clear(' '))
	}
	require.NotContains(t, ft.Line(1), "System")

	m.HandleChar(dashboard.Key(0x0c)) // ctrl+l
	assert.Equal(t, 1, sampler.calls, "redraw does not sample")

	line := ft.Line(1)
	i := strings.Index(line, "System")
	require.GreaterOrEqual(t, i, 0, line)
	assert.Equal(t, dashboard.ColorCyan, ft.Cell(utf8.RuneCountInString(line[:i]), 1).Color)

	assert.Contains(t, ft.Line(2), "usage    95.5%")
	assert.Equal(t, dashboard.ColorRed, ft.Cell(42, 2).Color)
	assert.Equal(t, status, ft.Line(17))
	assert.Equal(t, dashboard.ColorGreen, ft.Cell(1, 17).Color)
}

func TestKeyMap_Disabled(t *testing.T) {
	keys := DefaultKeyMap()
	keys.Refresh.SetEnabled(false)
	sampler := &fakeSampler{sample: busyHost()}
	m, _ := newMonitor(t, config.DefaultConfig(), sampler, WithKeyMap(keys))

	m.HandleChar('r')
	assert.Zero(t, sampler.calls)
	assert.Equal(t, "p pause, ctrl+l redraw", keys.HelpLine())
}

func TestRun_DrivesSampling(t *testing.T) {
	sampler := &fakeSampler{sample: busyHost()}
	m, ft := newMonitor(t, config.DefaultConfig(), sampler)

	d, err := dashboard.New(ft, dashboard.WithClock(ft.Now), dashboard.WithBanner(""), dashboard.WithInterval(time.Second))
	require.NoError(t, err)
	require.NoError(t, m.Attach(d))
	assert.Len(t, d.Windows(), 5)

	ft.PressAt(1500*time.Millisecond, 'p')
	ft.PressAt(2500*time.Millisecond, 'p')
	ft.PressAt(4200*time.Millisecond, dashboard.KeyF1)
	require.NoError(t, d.Run())

	// Ticks at 1s, 3s and 4s; the 2s tick falls inside the pause.
	assert.Equal(t, 3, sampler.calls)

	w := m.Windows()[0]
	assert.True(t, w.Created(), "the monitor still holds its windows after Run")
	assert.Equal(t, 1, w.Refs())

	require.NoError(t, m.Close())
	assert.True(t, sampler.closed)
	assert.False(t, w.Created())
	assert.Zero(t, ft.LiveRegions())
}

func TestNew_TypedFields(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Windows = []config.WindowConfig{{
		Name: "raw", Height: 6, Width: 40, X: 0, Y: 0,
		Fields: []config.FieldConfig{
			{Name: "total", X: 1, Y: 1, Type: config.TypeInt64, Format: "total %d", Metric: probe.MetricMemTotal},
			{Name: "cores", X: 1, Y: 2, Type: config.TypeUint32, Format: "cores 0x%02x", Default: "0xff", Metric: probe.MetricCPUCores},
			{
				Name: "load", X: 1, Y: 3, Type: config.TypeInt32, Format: "load %d", Metric: probe.MetricLoad1,
				Thresholds: []config.ThresholdConfig{{Low: 2, High: 10, Color: "magenta"}},
			},
			{Name: "label", X: 1, Y: 4, Format: "%s", Default: "static", Color: "blue"},
		},
	}}
	sample := busyHost()
	sample.LoadAvg[0] = 2.4

	m, ft := newMonitor(t, cfg, &fakeSampler{sample: sample})
	assert.Contains(t, ft.Line(2), "cores 0xff")
	assert.Equal(t, dashboard.ColorBlue, ft.Cell(1, 4).Color)

	require.NoError(t, m.Refresh())
	assert.Contains(t, ft.Line(1), "total 8589934592")
	assert.Contains(t, ft.Line(2), "cores 0x04")
	assert.Contains(t, ft.Line(3), "load 2")
	assert.Equal(t, dashboard.ColorMagenta, ft.Cell(1, 3).Color)
	assert.Contains(t, ft.Line(4), "static")

	label, ok := dashboard.LookupField[string](m.Windows()[0], "label")
	require.True(t, ok)
	assert.Equal(t, "static", label.Value())
}

func TestNew_OutlineOverride(t *testing.T) {
	m, ft := newMonitor(t, config.DefaultConfig(), &fakeSampler{sample: busyHost()}, WithOutline(false))

	for _, w := range m.Windows() {
		assert.False(t, w.Outlined(), w.Name())
	}
	assert.NotEqual(t, '┌', ft.Cell(0, 1).Rune)
}

func TestNew_Errors(t *testing.T) {
	field := func(f config.FieldConfig) *config.Config {
		cfg := config.DefaultConfig()
		cfg.Windows = []config.WindowConfig{
			{Name: "ok", Height: 3, Width: 10, X: 0, Y: 0},
			{Name: "bad", Height: 3, Width: 10, X: 0, Y: 5, Fields: []config.FieldConfig{f}},
		}
		return cfg
	}

	tests := []struct {
		name string
		cfg  *config.Config
		code string
	}{
		{
			name: "field outside window",
			cfg:  field(config.FieldConfig{Name: "f", X: 10, Y: 0, Format: "%s"}),
			code: errors.ErrInvalidPosition,
		},
		{
			name: "unknown type",
			cfg:  field(config.FieldConfig{Name: "f", Type: "bool", Format: "%v"}),
			code: errors.ErrConfig,
		},
		{
			name: "bad default",
			cfg:  field(config.FieldConfig{Name: "f", Type: config.TypeInt32, Format: "%d", Default: "x"}),
			code: errors.ErrConfig,
		},
		{
			name: "reserved name",
			cfg:  field(config.FieldConfig{Name: dashboard.TitleFieldName, Format: "%s"}),
			code: errors.ErrNameCollision,
		},
		{
			name: "thresholds on text",
			cfg: field(config.FieldConfig{
				Name: "f", Format: "%s",
				Thresholds: []config.ThresholdConfig{{Low: 0, High: 1, Color: "red"}},
			}),
			code: errors.ErrInvalidThreshold,
		},
		{
			name: "window off screen",
			cfg: func() *config.Config {
				cfg := config.DefaultConfig()
				cfg.Windows = []config.WindowConfig{{Name: "huge", Height: 30, Width: 10}}
				return cfg
			}(),
			code: errors.ErrSurfaceNotReady,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ft := dtesting.NewFakeTerminal(80, 24)
			_, err := New(ft, tt.cfg, &fakeSampler{sample: busyHost()})
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, tt.code), "got %s", errors.CodeOf(err))
			assert.Zero(t, ft.LiveRegions(), "created windows are cleaned up")
		})
	}
}

func TestNew_MissingInputs(t *testing.T) {
	ft := dtesting.NewFakeTerminal(80, 24)

	_, err := New(ft, nil, &fakeSampler{})
	assert.True(t, errors.IsCode(err, errors.ErrConfig))

	_, err = New(ft, config.DefaultConfig(), nil)
	assert.True(t, errors.IsCode(err, errors.ErrProbe))
}
