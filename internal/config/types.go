package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// StatusMetric binds a string field to the monitor's own status line
// (last sample time or the last sampling error).
const StatusMetric = "status"

// Field value types.
const (
	TypeString  = "string"
	TypeInt32   = "int32"
	TypeUint32  = "uint32"
	TypeInt64   = "int64"
	TypeFloat64 = "float64"
)

// FieldTypes lists the accepted field value types.
var FieldTypes = []string{TypeString, TypeInt32, TypeUint32, TypeInt64, TypeFloat64}

// MinInterval is the shortest refresh interval Validate accepts.
const MinInterval = 10 * time.Millisecond

// Config represents the complete .statusboard.yaml configuration file.
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	// ShutdownKey names the key that leaves the dashboard, e.g. "f1" or "q".
	ShutdownKey string `yaml:"shutdown_key" mapstructure:"shutdown_key"`

	// Interval between periodic refreshes.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`

	// Background color every palette entry is registered on.
	Background string `yaml:"background" mapstructure:"background"`

	// LogFile receives log output while the dashboard owns the terminal.
	// Empty discards it.
	LogFile string `yaml:"log_file,omitempty" mapstructure:"log_file"`

	Source  SourceConfig   `yaml:"source" mapstructure:"source"`
	Windows []WindowConfig `yaml:"windows" mapstructure:"windows"`
}

// SourceConfig selects where metrics come from.
type SourceConfig struct {
	// Host is an SSH destination (ssh_config alias, user@host[:port]).
	// Empty samples the local machine.
	Host string `yaml:"host,omitempty" mapstructure:"host"`

	// Timeout bounds SSH connection setup and each remote sample.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// InsecureHostKey skips known_hosts verification.
	InsecureHostKey bool `yaml:"insecure_host_key,omitempty" mapstructure:"insecure_host_key"`

	// ProcRoot is the directory holding proc/, "/" when empty.
	ProcRoot string `yaml:"proc_root,omitempty" mapstructure:"proc_root"`
}

// WindowConfig describes one window and its fields.
type WindowConfig struct {
	Name   string `yaml:"name" mapstructure:"name"`
	Height int    `yaml:"height" mapstructure:"height"`
	Width  int    `yaml:"width" mapstructure:"width"`
	X      int    `yaml:"x" mapstructure:"x"`
	Y      int    `yaml:"y" mapstructure:"y"`

	// Outline draws a border. Defaults to true.
	Outline *bool `yaml:"outline,omitempty" mapstructure:"outline"`

	Title  *TitleConfig  `yaml:"title,omitempty" mapstructure:"title"`
	Fields []FieldConfig `yaml:"fields" mapstructure:"fields"`
}

// Outlined reports whether the window draws a border.
func (w WindowConfig) Outlined() bool {
	return w.Outline == nil || *w.Outline
}

// TitleConfig places a title on the window border.
type TitleConfig struct {
	Text       string `yaml:"text" mapstructure:"text"`
	Vertical   string `yaml:"vertical,omitempty" mapstructure:"vertical"`
	Horizontal string `yaml:"horizontal,omitempty" mapstructure:"horizontal"`
	Color      string `yaml:"color,omitempty" mapstructure:"color"`
}

// FieldConfig describes one field inside a window.
type FieldConfig struct {
	Name string `yaml:"name" mapstructure:"name"`
	X    int    `yaml:"x" mapstructure:"x"`
	Y    int    `yaml:"y" mapstructure:"y"`

	// Type is one of FieldTypes. Defaults to string.
	Type string `yaml:"type,omitempty" mapstructure:"type"`

	// Format is a fmt verb string applied to the value.
	Format string `yaml:"format" mapstructure:"format"`

	// Default is the initial value, parsed as Type.
	Default string `yaml:"default,omitempty" mapstructure:"default"`

	Color string `yaml:"color,omitempty" mapstructure:"color"`

	// Metric binds the field to a probe metric name or StatusMetric.
	Metric string `yaml:"metric,omitempty" mapstructure:"metric"`

	Thresholds []ThresholdConfig `yaml:"thresholds,omitempty" mapstructure:"thresholds"`
}

// ValueType returns Type, defaulting to string.
func (f FieldConfig) ValueType() string {
	if f.Type == "" {
		return TypeString
	}
	return f.Type
}

// ThresholdConfig is an inclusive value range rendered in Color.
type ThresholdConfig struct {
	Low   float64 `yaml:"low" mapstructure:"low"`
	High  float64 `yaml:"high" mapstructure:"high"`
	Color string  `yaml:"color" mapstructure:"color"`
}

// DefaultConfig returns a Config with sensible defaults and the built-in
// layout.
func DefaultConfig() *Config {
	return &Config{
		Version:     CurrentConfigVersion,
		ShutdownKey: "f1",
		Interval:    time.Second,
		Background:  "black",
		Source: SourceConfig{
			Timeout: 10 * time.Second,
		},
		Windows: DefaultLayout(),
	}
}

// usageThresholds colors a 0-100 percentage green, yellow, then red.
func usageThresholds() []ThresholdConfig {
	return []ThresholdConfig{
		{Low: 0, High: 75, Color: "green"},
		{Low: 75, High: 90, Color: "yellow"},
		{Low: 90, High: 100, Color: "red"},
	}
}

// DefaultLayout fits an 80x24 terminal below the banner line.
func DefaultLayout() []WindowConfig {
	return []WindowConfig{
		{
			Name: "system", Height: 8, Width: 39, X: 0, Y: 1,
			Title: &TitleConfig{Text: "System", Horizontal: "center", Color: "cyan"},
			Fields: []FieldConfig{
				{Name: "host", X: 2, Y: 1, Format: "host    %s", Metric: "host.name"},
				{Name: "uptime", X: 2, Y: 2, Format: "uptime  %s", Metric: "host.uptime"},
				{Name: "clock", X: 2, Y: 3, Format: "time    %s", Metric: "clock"},
				{Name: "cores", X: 2, Y: 4, Type: TypeInt32, Format: "cores   %d", Default: "0", Metric: "cpu.cores"},
			},
		},
		{
			Name: "cpu", Height: 8, Width: 39, X: 40, Y: 1,
			Title: &TitleConfig{Text: "CPU", Horizontal: "center", Color: "cyan"},
			Fields: []FieldConfig{
				{
					Name: "usage", X: 2, Y: 1, Type: TypeFloat64, Format: "usage   %5.1f%%", Default: "0",
					Metric: "cpu.percent", Thresholds: usageThresholds(),
				},
				{Name: "load1", X: 2, Y: 3, Type: TypeFloat64, Format: "load 1  %.2f", Default: "0", Metric: "load.1"},
				{Name: "load5", X: 2, Y: 4, Type: TypeFloat64, Format: "load 5  %.2f", Default: "0", Metric: "load.5"},
				{Name: "load15", X: 2, Y: 5, Type: TypeFloat64, Format: "load 15 %.2f", Default: "0", Metric: "load.15"},
			},
		},
		{
			Name: "memory", Height: 7, Width: 39, X: 0, Y: 9,
			Title: &TitleConfig{Text: "Memory", Horizontal: "center", Color: "cyan"},
			Fields: []FieldConfig{
				{
					Name: "percent", X: 2, Y: 1, Type: TypeFloat64, Format: "used    %5.1f%%", Default: "0",
					Metric: "mem.percent", Thresholds: usageThresholds(),
				},
				{Name: "used", X: 2, Y: 2, Format: "in use  %s", Metric: "mem.used"},
				{Name: "available", X: 2, Y: 3, Format: "free    %s", Metric: "mem.available"},
				{Name: "total", X: 2, Y: 4, Format: "total   %s", Metric: "mem.total"},
			},
		},
		{
			Name: "network", Height: 7, Width: 39, X: 40, Y: 9,
			Title: &TitleConfig{Text: "Network", Horizontal: "center", Color: "cyan"},
			Fields: []FieldConfig{
				{Name: "rx", X: 2, Y: 1, Format: "rx      %s", Metric: "net.rx"},
				{Name: "tx", X: 2, Y: 2, Format: "tx      %s", Metric: "net.tx"},
			},
		},
		{
			Name: "status", Height: 3, Width: 79, X: 0, Y: 16,
			Fields: []FieldConfig{
				{Name: "status", X: 1, Y: 1, Format: "%-76s", Metric: StatusMetric},
			},
		},
	}
}
