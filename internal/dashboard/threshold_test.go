package dashboard_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/rileyhilliard/statusboard/internal/dashboard"
	"github.com/rileyhilliard/statusboard/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThresholds_Add(t *testing.T) {
	tests := []struct {
		name      string
		low, high float64
		color     dashboard.Color
		wantErr   bool
	}{
		{name: "valid range", low: 0, high: 75, color: dashboard.ColorGreen},
		{name: "negative range", low: -10, high: -1, color: dashboard.ColorBlue},
		{name: "equal bounds", low: 5, high: 5, color: dashboard.ColorRed, wantErr: true},
		{name: "inverted bounds", low: 10, high: 5, color: dashboard.ColorRed, wantErr: true},
		{name: "NaN low", low: math.NaN(), high: 5, color: dashboard.ColorRed, wantErr: true},
		{name: "NaN high", low: 1, high: math.NaN(), color: dashboard.ColorRed, wantErr: true},
		{name: "out of palette color", low: 1, high: 2, color: dashboard.Color(42), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var th dashboard.Thresholds[float64]
			err := th.Add(tt.low, tt.high, tt.color)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.ErrInvalidThreshold))
				assert.Equal(t, 0, th.Len())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 1, th.Len())
		})
	}
}

func TestThresholds_RejectsDuplicateTriple(t *testing.T) {
	var th dashboard.Thresholds[int32]
	require.NoError(t, th.Add(0, 10, dashboard.ColorGreen))

	err := th.Add(0, 10, dashboard.ColorGreen)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrInvalidThreshold))
	assert.Equal(t, 1, th.Len())

	// Same range with a different color is a distinct entry.
	require.NoError(t, th.Add(0, 10, dashboard.ColorRed))
	assert.Equal(t, 2, th.Len())
}

func TestThresholds_KeepsSortOrder(t *testing.T) {
	var th dashboard.Thresholds[int]
	require.NoError(t, th.Add(50, 60, dashboard.ColorRed))
	require.NoError(t, th.Add(10, 20, dashboard.ColorGreen))
	require.NoError(t, th.Add(10, 15, dashboard.ColorBlue))
	require.NoError(t, th.Add(30, 40, dashboard.ColorYellow))

	got := th.Intervals()
	require.Len(t, got, 4)
	assert.Equal(t, dashboard.Threshold[int]{Low: 10, High: 15, Color: dashboard.ColorBlue}, got[0])
	assert.Equal(t, dashboard.Threshold[int]{Low: 10, High: 20, Color: dashboard.ColorGreen}, got[1])
	assert.Equal(t, dashboard.Threshold[int]{Low: 30, High: 40, Color: dashboard.ColorYellow}, got[2])
	assert.Equal(t, dashboard.Threshold[int]{Low: 50, High: 60, Color: dashboard.ColorRed}, got[3])

	// Intervals hands out a copy.
	got[0].Color = dashboard.ColorWhite
	assert.Equal(t, dashboard.ColorBlue, th.Intervals()[0].Color)
}

func TestThresholds_Resolve(t *testing.T) {
	var th dashboard.Thresholds[float64]
	require.NoError(t, th.Add(0, 75, dashboard.ColorGreen))
	require.NoError(t, th.Add(75, 90, dashboard.ColorYellow))
	require.NoError(t, th.Add(90, 100, dashboard.ColorRed))

	tests := []struct {
		value   float64
		want    dashboard.Color
		matched bool
	}{
		{value: -0.5, want: dashboard.ColorDefault},
		{value: 0, want: dashboard.ColorGreen, matched: true},
		{value: 50, want: dashboard.ColorGreen, matched: true},
		{value: 75, want: dashboard.ColorGreen, matched: true}, // shared bound: first in order wins
		{value: 80, want: dashboard.ColorYellow, matched: true},
		{value: 91, want: dashboard.ColorRed, matched: true},
		{value: 100, want: dashboard.ColorRed, matched: true},
		{value: 101, want: dashboard.ColorDefault},
	}

	for _, tt := range tests {
		c, ok := th.Resolve(tt.value)
		assert.Equal(t, tt.matched, ok, "value %v", tt.value)
		assert.Equal(t, tt.want, c, "value %v", tt.value)
	}
}

func TestThresholds_OverlapFirstSortedMatchWins(t *testing.T) {
	var th dashboard.Thresholds[int]
	require.NoError(t, th.Add(20, 80, dashboard.ColorYellow))
	require.NoError(t, th.Add(0, 50, dashboard.ColorGreen))

	c, ok := th.Resolve(40)
	require.True(t, ok)
	assert.Equal(t, dashboard.ColorGreen, c)

	c, ok = th.Resolve(60)
	require.True(t, ok)
	assert.Equal(t, dashboard.ColorYellow, c)
}

func TestThresholds_StringsCompareLexically(t *testing.T) {
	var th dashboard.Thresholds[string]
	require.NoError(t, th.Add("a", "m", dashboard.ColorCyan))

	c, ok := th.Resolve("hello")
	require.True(t, ok)
	assert.Equal(t, dashboard.ColorCyan, c)

	_, ok = th.Resolve("zebra")
	assert.False(t, ok)
}

func TestThresholds_ResolveInsertionOrderIndependent(t *testing.T) {
	ranges := []dashboard.Threshold[int]{
		{Low: 0, High: 9, Color: dashboard.ColorGreen},
		{Low: 10, High: 19, Color: dashboard.ColorYellow},
		{Low: 20, High: 29, Color: dashboard.ColorRed},
		{Low: 40, High: 49, Color: dashboard.ColorBlue},
		{Low: 60, High: 99, Color: dashboard.ColorMagenta},
	}

	var ref dashboard.Thresholds[int]
	for _, r := range ranges {
		require.NoError(t, ref.Add(r.Low, r.High, r.Color))
	}

	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 20; trial++ {
		shuffled := append([]dashboard.Threshold[int](nil), ranges...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		var th dashboard.Thresholds[int]
		for _, r := range shuffled {
			require.NoError(t, th.Add(r.Low, r.High, r.Color))
		}
		assert.Equal(t, ref.Intervals(), th.Intervals())

		for v := -5; v <= 105; v++ {
			wantColor, wantOK := ref.Resolve(v)
			gotColor, gotOK := th.Resolve(v)
			require.Equal(t, wantOK, gotOK, "value %d", v)
			require.Equal(t, wantColor, gotColor, "value %d", v)

			if gotOK {
				contained := false
				for _, r := range ranges {
					if r.Contains(v) && r.Color == gotColor {
						contained = true
					}
				}
				assert.True(t, contained, "value %d resolved to %s outside every range", v, gotColor)
			}
		}
	}
}
