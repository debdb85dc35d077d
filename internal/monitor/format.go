package monitor

import (
	"math"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rileyhilliard/statusboard/internal/probe"
)

// FormatReading renders a reading for a string field.
func FormatReading(r probe.Reading) string {
	if r.IsText {
		return r.Text
	}
	switch r.Unit {
	case probe.UnitPercent:
		return humanize.FtoaWithDigits(r.Number, 1) + "%"
	case probe.UnitBytes:
		return humanize.IBytes(nonNegative(r.Number))
	case probe.UnitBytesPerSecond:
		return humanize.IBytes(nonNegative(r.Number)) + "/s"
	case probe.UnitDuration:
		return formatUptime(time.Duration(r.Number * float64(time.Second)))
	default:
		return humanize.FtoaWithDigits(r.Number, 2)
	}
}

// formatUptime prints whole days, then the remainder to the second:
// "3d 4h2m1s", "17m5s".
func formatUptime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)
	days := d / (24 * time.Hour)
	rest := d - days*24*time.Hour
	if days == 0 {
		return rest.String()
	}
	return humanize.Comma(int64(days)) + "d " + rest.String()
}

func nonNegative(f float64) uint64 {
	if f <= 0 || math.IsNaN(f) {
		return 0
	}
	return uint64(math.Round(f))
}
