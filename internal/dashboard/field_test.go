package dashboard_test

import (
	"fmt"
	"testing"

	"github.com/rileyhilliard/statusboard/internal/dashboard"
	"github.com/rileyhilliard/statusboard/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSurface logs every call so tests can check attribute bracketing.
type recordingSurface struct {
	calls     []string
	failWrite bool
}

func (s *recordingSurface) DrawBorder() { s.calls = append(s.calls, "border") }

func (s *recordingSurface) WriteFormatted(x, y int, format string, value any) error {
	if s.failWrite {
		return fmt.Errorf("write refused")
	}
	s.calls = append(s.calls, fmt.Sprintf("write %d,%d %q", x, y, fmt.Sprintf(format, value)))
	return nil
}

func (s *recordingSurface) BeginAttribute(c dashboard.Color) {
	s.calls = append(s.calls, "begin "+c.String())
}

func (s *recordingSurface) EndAttribute(c dashboard.Color) {
	s.calls = append(s.calls, "end "+c.String())
}

func (s *recordingSurface) Refresh()     { s.calls = append(s.calls, "refresh") }
func (s *recordingSurface) Clear(rune)   { s.calls = append(s.calls, "clear") }
func (s *recordingSurface) Destroy()     { s.calls = append(s.calls, "destroy") }
func (s *recordingSurface) reset()       { s.calls = nil }
func (s *recordingSurface) last() string { return s.calls[len(s.calls)-1] }
func (s *recordingSurface) count() int   { return len(s.calls) }
func (s *recordingSurface) has(c string) bool {
	for _, call := range s.calls {
		if call == c {
			return true
		}
	}
	return false
}

func TestNewField_NilSurface(t *testing.T) {
	f, err := dashboard.NewField[int32](nil, 0, 0, "%d", 0, dashboard.ColorDefault)

	require.Error(t, err)
	assert.Nil(t, f)
	assert.True(t, errors.IsCode(err, errors.ErrSurfaceNotReady))
}

func TestNewField_DoesNotRender(t *testing.T) {
	s := &recordingSurface{}
	f, err := dashboard.NewField(s, 3, 4, "%s", "idle", dashboard.ColorWhite)

	require.NoError(t, err)
	assert.Equal(t, 0, s.count())
	assert.Equal(t, "idle", f.Value())
	x, y := f.Position()
	assert.Equal(t, 3, x)
	assert.Equal(t, 4, y)
	assert.Equal(t, "%s", f.Format())
	assert.Equal(t, dashboard.ColorWhite, f.DefaultColor())
}

func TestField_UpdateColorPrecedence(t *testing.T) {
	s := &recordingSurface{}
	f, err := dashboard.NewField(s, 1, 1, "%.1f", 0.0, dashboard.ColorWhite)
	require.NoError(t, err)
	require.NoError(t, f.AddThreshold(50, 100, dashboard.ColorRed))

	tests := []struct {
		name     string
		value    float64
		explicit dashboard.Color
		want     []string
	}{
		{
			name:     "explicit color wins over threshold",
			value:    60,
			explicit: dashboard.ColorGreen,
			want:     []string{"begin green", `write 1,1 "60.0"`, "refresh", "end green"},
		},
		{
			name:  "threshold wins over default",
			value: 60,
			want:  []string{"begin red", `write 1,1 "60.0"`, "refresh", "end red"},
		},
		{
			name:  "default color when nothing matches",
			value: 10,
			want:  []string{"begin white", `write 1,1 "10.0"`, "refresh", "end white"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.reset()
			require.NoError(t, f.Update(tt.value, tt.explicit))
			assert.Equal(t, tt.want, s.calls)
			assert.Equal(t, tt.value, f.Value())
		})
	}
}

func TestField_UpdateWithoutColorSkipsAttributes(t *testing.T) {
	s := &recordingSurface{}
	f, err := dashboard.NewField[uint32](s, 0, 2, "0x%08x", 0, dashboard.ColorDefault)
	require.NoError(t, err)

	require.NoError(t, f.Update(0xdeadbeef, dashboard.ColorDefault))

	assert.Equal(t, []string{`write 0,2 "0xdeadbeef"`, "refresh"}, s.calls)
}

func TestField_FailedUpdateKeepsValue(t *testing.T) {
	s := &recordingSurface{}
	f, err := dashboard.NewField[int32](s, 0, 0, "%d", 7, dashboard.ColorYellow)
	require.NoError(t, err)

	s.failWrite = true
	err = f.Update(8, dashboard.ColorDefault)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "write refused")
	assert.Equal(t, int32(7), f.Value())
	assert.False(t, s.has("refresh"))
	assert.Equal(t, "end yellow", s.last(), "attribute must be closed even on failure")
}

func TestField_Redraw(t *testing.T) {
	s := &recordingSurface{}
	f, err := dashboard.NewField(s, 2, 0, "[%s]", "ok", dashboard.ColorDefault)
	require.NoError(t, err)
	require.NoError(t, f.Update("busy", dashboard.ColorDefault))

	s.reset()
	require.NoError(t, f.Redraw())

	assert.Equal(t, []string{`write 2,0 "[busy]"`, "refresh"}, s.calls)
}

func TestField_RedrawKeepsLastExplicitColor(t *testing.T) {
	tests := []struct {
		name    string
		updates []dashboard.Color
		want    []string
	}{
		{
			name:    "explicit color is reused",
			updates: []dashboard.Color{dashboard.ColorGreen},
			want:    []string{"begin green", `write 0,0 "12"`, "refresh", "end green"},
		},
		{
			name:    "latest explicit color wins",
			updates: []dashboard.Color{dashboard.ColorGreen, dashboard.ColorRed},
			want:    []string{"begin red", `write 0,0 "12"`, "refresh", "end red"},
		},
		{
			name:    "default update falls back to thresholds",
			updates: []dashboard.Color{dashboard.ColorGreen, dashboard.ColorDefault},
			want:    []string{"begin yellow", `write 0,0 "12"`, "refresh", "end yellow"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &recordingSurface{}
			f, err := dashboard.NewField[int32](s, 0, 0, "%d", 0, dashboard.ColorDefault)
			require.NoError(t, err)
			require.NoError(t, f.AddThreshold(10, 20, dashboard.ColorYellow))
			for _, c := range tt.updates {
				require.NoError(t, f.Update(12, c))
			}

			s.reset()
			require.NoError(t, f.Redraw())
			assert.Equal(t, tt.want, s.calls)
		})
	}
}

func TestField_ThresholdAppliesOnNextRender(t *testing.T) {
	s := &recordingSurface{}
	f, err := dashboard.NewField[int32](s, 0, 0, "%d", 95, dashboard.ColorDefault)
	require.NoError(t, err)

	require.NoError(t, f.AddThreshold(90, 100, dashboard.ColorRed))
	assert.Equal(t, 0, s.count())
	assert.Len(t, f.Thresholds(), 1)

	require.NoError(t, f.Redraw())
	assert.True(t, s.has("begin red"))
}

func TestField_ResolveColor(t *testing.T) {
	s := &recordingSurface{}
	f, err := dashboard.NewField[int32](s, 0, 0, "%d", 0, dashboard.ColorBlue)
	require.NoError(t, err)
	require.NoError(t, f.AddThreshold(10, 20, dashboard.ColorMagenta))

	assert.Equal(t, dashboard.ColorCyan, f.ResolveColor(15, dashboard.ColorCyan))
	assert.Equal(t, dashboard.ColorMagenta, f.ResolveColor(15, dashboard.ColorDefault))
	assert.Equal(t, dashboard.ColorBlue, f.ResolveColor(25, dashboard.ColorDefault))
}
