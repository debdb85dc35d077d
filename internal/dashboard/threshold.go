package dashboard

import (
	"cmp"
	"slices"

	"github.com/rileyhilliard/statusboard/internal/errors"
)

// Threshold maps the inclusive range [Low, High] to an override color.
type Threshold[T cmp.Ordered] struct {
	Low   T
	High  T
	Color Color
}

// Contains reports whether Low <= v <= High.
func (th Threshold[T]) Contains(v T) bool {
	return th.Low <= v && v <= th.High
}

func compareThresholds[T cmp.Ordered](a, b Threshold[T]) int {
	if c := cmp.Compare(a.Low, b.Low); c != 0 {
		return c
	}
	return cmp.Compare(a.High, b.High)
}

// Thresholds is an ordered set of Threshold ranges, kept sorted ascending by
// (Low, High). Overlapping ranges are allowed; Resolve returns the first match
// in sort order.
type Thresholds[T cmp.Ordered] struct {
	list []Threshold[T]
}

// Add inserts [low, high] -> color. It fails with ErrInvalidThreshold, leaving
// the set unchanged, when low is not strictly below high, when color is not a
// palette color, or when the identical range and color are already present.
func (t *Thresholds[T]) Add(low, high T, color Color) error {
	// Written as !(low < high) so unordered floats (NaN) are rejected too.
	if !(low < high) {
		return errors.Newf(errors.ErrInvalidThreshold,
			"threshold [%v, %v] is empty: low must be below high", low, high)
	}
	if !color.Valid() {
		return errors.Newf(errors.ErrInvalidThreshold, "threshold [%v, %v] has invalid %s", low, high, color)
	}

	th := Threshold[T]{Low: low, High: high, Color: color}
	if slices.ContainsFunc(t.list, func(other Threshold[T]) bool {
		return other.Low == th.Low && other.High == th.High && other.Color == th.Color
	}) {
		return errors.Newf(errors.ErrInvalidThreshold,
			"threshold [%v, %v] -> %s already exists", low, high, color)
	}

	t.list = append(t.list, th)
	slices.SortStableFunc(t.list, compareThresholds[T])
	return nil
}

// Resolve returns the color of the first range containing v. The boolean is
// false, and the color ColorDefault, when no range matches.
func (t *Thresholds[T]) Resolve(v T) (Color, bool) {
	for _, th := range t.list {
		if th.Contains(v) {
			return th.Color, true
		}
	}
	return ColorDefault, false
}

// Len returns the number of ranges.
func (t *Thresholds[T]) Len() int {
	return len(t.list)
}

// Intervals returns a copy of the ranges in sort order.
func (t *Thresholds[T]) Intervals() []Threshold[T] {
	return slices.Clone(t.list)
}
