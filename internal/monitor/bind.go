package monitor

import (
	"cmp"
	"strconv"
	"strings"

	"github.com/rileyhilliard/statusboard/internal/config"
	"github.com/rileyhilliard/statusboard/internal/dashboard"
	"github.com/rileyhilliard/statusboard/internal/errors"
	"github.com/rileyhilliard/statusboard/internal/probe"
)

// codec converts configured text and probe readings into field values of
// one type.
type codec[T cmp.Ordered] struct {
	parse   func(string) (T, error)
	convert func(probe.Reading) T
	bound   func(float64) T
}

var (
	stringCodec = codec[string]{
		parse:   func(s string) (string, error) { return s, nil },
		convert: FormatReading,
	}
	int32Codec = codec[int32]{
		parse: func(s string) (int32, error) {
			v, err := strconv.ParseInt(s, 0, 32)
			return int32(v), err
		},
		convert: func(r probe.Reading) int32 { return int32(config.ThresholdBound(config.TypeInt32, r.Number)) },
		bound:   func(f float64) int32 { return int32(config.ThresholdBound(config.TypeInt32, f)) },
	}
	uint32Codec = codec[uint32]{
		parse: func(s string) (uint32, error) {
			v, err := strconv.ParseUint(s, 0, 32)
			return uint32(v), err
		},
		convert: func(r probe.Reading) uint32 { return uint32(config.ThresholdBound(config.TypeUint32, r.Number)) },
		bound:   func(f float64) uint32 { return uint32(config.ThresholdBound(config.TypeUint32, f)) },
	}
	int64Codec = codec[int64]{
		parse:   func(s string) (int64, error) { return strconv.ParseInt(s, 0, 64) },
		convert: func(r probe.Reading) int64 { return int64(config.ThresholdBound(config.TypeInt64, r.Number)) },
		bound:   func(f float64) int64 { return int64(config.ThresholdBound(config.TypeInt64, f)) },
	}
	float64Codec = codec[float64]{
		parse:   func(s string) (float64, error) { return strconv.ParseFloat(s, 64) },
		convert: func(r probe.Reading) float64 { return r.Number },
		bound:   func(f float64) float64 { return f },
	}
)

// binding pushes one metric into one field.
type binding struct {
	window string
	field  string
	metric string
	push   func(r probe.Reading, color dashboard.Color) error
}

// addField registers f on w as a field of its configured type and returns
// the binding that feeds it, or nil when f has no metric.
func addField(w *dashboard.Window, f config.FieldConfig) (*binding, error) {
	switch f.ValueType() {
	case config.TypeString:
		return addTyped(w, f, stringCodec)
	case config.TypeInt32:
		return addTyped(w, f, int32Codec)
	case config.TypeUint32:
		return addTyped(w, f, uint32Codec)
	case config.TypeInt64:
		return addTyped(w, f, int64Codec)
	case config.TypeFloat64:
		return addTyped(w, f, float64Codec)
	}
	return nil, errors.Newf(errors.ErrConfig, "field %q has unknown type %q", f.Name, f.Type)
}

func addTyped[T cmp.Ordered](w *dashboard.Window, f config.FieldConfig, c codec[T]) (*binding, error) {
	var initial T
	if s := strings.TrimSpace(f.Default); s != "" {
		v, err := c.parse(s)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Invalid default for field "+f.Name,
				"The default must parse as the field's type.")
		}
		initial = v
	}
	color, err := dashboard.ParseColor(f.Color)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig, "Invalid color for field "+f.Name, "")
	}

	if err := dashboard.AddField(w, f.X, f.Y, f.Name, f.Format, initial, color); err != nil {
		return nil, err
	}

	for _, th := range f.Thresholds {
		if c.bound == nil {
			return nil, errors.Newf(errors.ErrInvalidThreshold, "field %q holds text and can't have thresholds", f.Name)
		}
		tc, err := dashboard.ParseColor(th.Color)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrConfig, "Invalid threshold color for field "+f.Name, "")
		}
		if err := dashboard.AddFieldThreshold(w, f.Name, c.bound(th.Low), c.bound(th.High), tc); err != nil {
			return nil, err
		}
	}

	if f.Metric == "" {
		return nil, nil
	}
	return &binding{
		window: w.Name(),
		field:  f.Name,
		metric: f.Metric,
		push: func(r probe.Reading, color dashboard.Color) error {
			return dashboard.UpdateField(w, f.Name, c.convert(r), color)
		},
	}, nil
}
