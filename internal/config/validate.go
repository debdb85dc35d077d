package config

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/rileyhilliard/statusboard/internal/dashboard"
	"github.com/rileyhilliard/statusboard/internal/errors"
	"github.com/rileyhilliard/statusboard/internal/probe"
)

// textMetrics only make sense in string fields.
var textMetrics = map[string]bool{
	probe.MetricHostName: true,
	probe.MetricClock:    true,
	StatusMetric:         true,
}

// Validate checks the config for errors and returns the first one as a
// structured ErrConfig error.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New(errors.ErrConfig,
			"Config is nil",
			"This is unexpected - try reloading the configuration.")
	}

	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but statusboard only knows up to %d)",
				cfg.Version, CurrentConfigVersion),
			"Upgrade statusboard or lower the version field.")
	}

	if _, err := dashboard.ParseKey(cfg.ShutdownKey); err != nil {
		return wrap(err, "shutdown_key", "Use a key name like 'f1', 'esc' or a single character.")
	}

	if cfg.Interval < MinInterval {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("interval %s is too short", cfg.Interval),
			fmt.Sprintf("Use at least %s, e.g. interval: 1s", MinInterval))
	}

	if _, err := dashboard.ParseColor(cfg.Background); err != nil {
		return wrap(err, "background", "Use one of the eight ANSI color names.")
	}

	if cfg.Source.Timeout <= 0 {
		return errors.New(errors.ErrConfig,
			"source.timeout must be positive",
			"Set a timeout such as 10s.")
	}

	if len(cfg.Windows) == 0 {
		return errors.New(errors.ErrConfig,
			"No windows configured",
			"Add at least one entry under 'windows', or delete the key to get the default layout.")
	}

	seen := make(map[string]bool)
	for i, w := range cfg.Windows {
		where := fmt.Sprintf("windows[%d]", i)
		if w.Name == "" {
			return errors.New(errors.ErrConfig, where+" has no name", "Give every window a unique name.")
		}
		if seen[w.Name] {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Window name '%s' is used more than once", w.Name),
				"Give every window a unique name.")
		}
		seen[w.Name] = true

		if err := validateWindow(w); err != nil {
			return err
		}
	}
	return nil
}

func validateWindow(w WindowConfig) error {
	where := "window '" + w.Name + "'"

	if w.Height <= 0 || w.Width <= 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("%s has size %dx%d", where, w.Width, w.Height),
			"height and width must both be positive.")
	}
	if w.X < 0 || w.Y < 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("%s is placed at (%d,%d)", where, w.X, w.Y),
			"x and y must not be negative.")
	}

	if t := w.Title; t != nil {
		if _, err := dashboard.ParseVerticalAlign(t.Vertical); err != nil {
			return wrap(err, where+" title", "vertical must be top, middle or bottom.")
		}
		if _, err := dashboard.ParseHorizontalAlign(t.Horizontal); err != nil {
			return wrap(err, where+" title", "horizontal must be left, center or right.")
		}
		if _, err := dashboard.ParseColor(t.Color); err != nil {
			return wrap(err, where+" title", "Use one of the eight ANSI color names.")
		}
	}

	names := make(map[string]bool)
	for _, f := range w.Fields {
		if f.Name == "" {
			return errors.New(errors.ErrConfig, where+" has a field with no name", "Name every field.")
		}
		if f.Name == dashboard.TitleFieldName {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("%s: '%s' is reserved for the window title", where, f.Name),
				"Use the window's title section instead, or rename the field.")
		}
		if names[f.Name] {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("%s: field '%s' is defined more than once", where, f.Name),
				"Field names must be unique within a window, whatever their type.")
		}
		names[f.Name] = true

		if err := validateField(where, w, f); err != nil {
			return err
		}
	}
	return nil
}

func validateField(where string, w WindowConfig, f FieldConfig) error {
	where = fmt.Sprintf("%s field '%s'", where, f.Name)

	if f.X < 0 || f.Y < 0 || f.X >= w.Width || f.Y >= w.Height {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("%s at (%d,%d) is outside the %dx%d window", where, f.X, f.Y, w.Width, w.Height),
			"Fields must start inside the window: 0 <= x < width and 0 <= y < height.")
	}

	typ := f.ValueType()
	if !slices.Contains(FieldTypes, typ) {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("%s has unknown type '%s'", where, f.Type),
			"type must be one of: "+strings.Join(FieldTypes, ", "))
	}
	if f.Format == "" {
		return errors.New(errors.ErrConfig, where+" has no format", "Add a format such as '%s' or 'cpu %5.1f%%'.")
	}
	if err := CheckValue(typ, f.Default); err != nil {
		return wrap(err, where+" default", "The default must parse as the field's type.")
	}
	if _, err := dashboard.ParseColor(f.Color); err != nil {
		return wrap(err, where, "Use one of the eight ANSI color names.")
	}

	if f.Metric != "" {
		if f.Metric != StatusMetric && !probe.KnownMetric(f.Metric) {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("%s is bound to unknown metric '%s'", where, f.Metric),
				"Known metrics: "+strings.Join(append(probe.MetricNames(), StatusMetric), ", "))
		}
		if textMetrics[f.Metric] && typ != TypeString {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("%s shows text metric '%s' but has type %s", where, f.Metric, typ),
				"Set type: string for this field.")
		}
	}

	if len(f.Thresholds) > 0 && typ == TypeString {
		return errors.New(errors.ErrConfig,
			where+" has thresholds but is a string field",
			"Thresholds compare numbers; give the field a numeric type.")
	}
	type triple struct {
		low, high float64
		color     string
	}
	seen := make(map[triple]bool)
	for i, th := range f.Thresholds {
		if math.IsNaN(th.Low) || math.IsNaN(th.High) || th.Low >= th.High {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("%s threshold %d has low %v >= high %v", where, i, th.Low, th.High),
				"Each threshold needs low < high.")
		}
		low, high := ThresholdBound(typ, th.Low), ThresholdBound(typ, th.High)
		if low >= high {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("%s threshold %d rounds to low %v >= high %v for type %s", where, i, low, high, typ),
				"Integer fields round thresholds to whole numbers; widen the band.")
		}
		c, err := dashboard.ParseColor(th.Color)
		if err != nil {
			return wrap(err, fmt.Sprintf("%s threshold %d", where, i), "Use one of the eight ANSI color names.")
		}
		key := triple{low, high, c.String()}
		if seen[key] {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("%s threshold %d duplicates an earlier one", where, i),
				"Remove the duplicate threshold.")
		}
		seen[key] = true
	}
	return nil
}

// maxInt64Float is the largest float64 that converts to int64 exactly.
const maxInt64Float = float64(1<<63 - 1024)

// ThresholdBound returns the bound a field of type typ actually compares
// against. Integer types round v to a whole number inside their range.
func ThresholdBound(typ string, v float64) float64 {
	var lo, hi float64
	switch typ {
	case TypeInt32:
		lo, hi = math.MinInt32, math.MaxInt32
	case TypeUint32:
		lo, hi = 0, math.MaxUint32
	case TypeInt64:
		lo, hi = -maxInt64Float, maxInt64Float
	default:
		return v
	}
	if math.IsNaN(v) {
		return 0
	}
	return math.Round(math.Max(lo, math.Min(hi, v)))
}

// CheckValue reports whether s parses as a value of type typ. Empty strings
// are the type's zero value and always valid.
func CheckValue(typ, s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	var err error
	switch typ {
	case TypeString:
	case TypeInt32:
		_, err = strconv.ParseInt(s, 0, 32)
	case TypeUint32:
		_, err = strconv.ParseUint(s, 0, 32)
	case TypeInt64:
		_, err = strconv.ParseInt(s, 0, 64)
	case TypeFloat64:
		_, err = strconv.ParseFloat(s, 64)
	default:
		err = fmt.Errorf("unknown type %q", typ)
	}
	return err
}

func wrap(err error, what, suggestion string) error {
	return errors.WrapWithCode(err, errors.ErrConfig, "Invalid "+what, suggestion)
}
