package dashboard

import (
	"cmp"
	"fmt"

	"github.com/rileyhilliard/statusboard/internal/errors"
)

// Field is a formatted value of type T drawn at a fixed position on a surface.
type Field[T cmp.Ordered] struct {
	surface      Surface
	x, y         int
	format       string
	value        T
	defaultColor Color
	explicit     Color
	thresholds   Thresholds[T]
}

// NewField binds a field to a surface. It does not draw anything; the first
// render happens on the first Update or Redraw.
func NewField[T cmp.Ordered](s Surface, x, y int, format string, value T, defaultColor Color) (*Field[T], error) {
	if s == nil {
		return nil, errors.Newf(errors.ErrSurfaceNotReady, "field at (%d,%d) has no surface to draw on", x, y)
	}
	if !defaultColor.Valid() {
		return nil, errors.Newf(errors.ErrInvalidThreshold, "field at (%d,%d) has invalid default %s", x, y, defaultColor)
	}
	return &Field[T]{
		surface:      s,
		x:            x,
		y:            y,
		format:       format,
		value:        value,
		defaultColor: defaultColor,
	}, nil
}

// ResolveColor returns the color v would be drawn in: explicit unless it is
// ColorDefault, otherwise the first matching threshold, otherwise the field's
// default color.
func (f *Field[T]) ResolveColor(v T, explicit Color) Color {
	if explicit != ColorDefault {
		return explicit
	}
	if c, ok := f.thresholds.Resolve(v); ok {
		return c
	}
	return f.defaultColor
}

// Update renders v, optionally in an explicit color, and records it as the
// current value. On failure the previous rendering and value are kept.
func (f *Field[T]) Update(v T, color Color) error {
	if f.surface == nil {
		return errors.Newf(errors.ErrSurfaceNotReady, "field at (%d,%d) has no surface to draw on", f.x, f.y)
	}

	c := f.ResolveColor(v, color)
	if c != ColorDefault {
		f.surface.BeginAttribute(c)
		defer f.surface.EndAttribute(c)
	}

	if err := f.surface.WriteFormatted(f.x, f.y, f.format, v); err != nil {
		return fmt.Errorf("render field at (%d,%d): %w", f.x, f.y, err)
	}
	f.surface.Refresh()
	f.value = v
	f.explicit = color
	return nil
}

// Redraw renders the current value again in the explicit color of the last
// Update, or re-resolves it when that Update gave none.
func (f *Field[T]) Redraw() error {
	return f.Update(f.value, f.explicit)
}

// AddThreshold adds a value range that overrides the default color.
func (f *Field[T]) AddThreshold(low, high T, color Color) error {
	return f.thresholds.Add(low, high, color)
}

// Thresholds returns the field's ranges in sort order.
func (f *Field[T]) Thresholds() []Threshold[T] {
	return f.thresholds.Intervals()
}

// Value returns the last successfully rendered value (or the default).
func (f *Field[T]) Value() T { return f.value }

// Position returns the field's column and row inside its window.
func (f *Field[T]) Position() (x, y int) { return f.x, f.y }

// Format returns the fmt verb string used to render the value.
func (f *Field[T]) Format() string { return f.format }

// DefaultColor returns the color used when nothing overrides it.
func (f *Field[T]) DefaultColor() Color { return f.defaultColor }

// detach drops the surface; later updates fail with ErrSurfaceNotReady.
func (f *Field[T]) detach() { f.surface = nil }

func (f *Field[T]) typeName() string {
	var zero T
	return fmt.Sprintf("%T", zero)
}

// registered is the type-erased view of a Field the window registry stores.
type registered interface {
	Redraw() error
	Position() (x, y int)
	detach()
	typeName() string
}
