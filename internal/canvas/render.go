package canvas

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rileyhilliard/statusboard/internal/dashboard"
)

// ANSI color codes for the dashboard palette, so the rendered snapshot
// follows the user's terminal theme.
var ansiColors = map[dashboard.Color]lipgloss.Color{
	dashboard.ColorBlack:   "0",
	dashboard.ColorRed:     "1",
	dashboard.ColorGreen:   "2",
	dashboard.ColorYellow:  "3",
	dashboard.ColorBlue:    "4",
	dashboard.ColorMagenta: "5",
	dashboard.ColorCyan:    "6",
	dashboard.ColorWhite:   "7",
}

// ANSIColor returns the lipgloss color for c. ColorDefault has none.
func ANSIColor(c dashboard.Color) (lipgloss.Color, bool) {
	lc, ok := ansiColors[c]
	return lc, ok
}

// Render returns the canvas as text styled for the given color profile.
// termenv.Ascii yields the same text as Plain, without trimming.
func (c *Canvas) Render(profile termenv.Profile) string {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(profile)

	c.mu.Lock()
	defer c.mu.Unlock()

	base := r.NewStyle()
	if bg, ok := ansiColors[c.background]; ok {
		base = base.Background(bg)
	}

	lines := make([]string, c.height)
	for y, row := range c.cells {
		var b strings.Builder
		start := 0
		for start < len(row) {
			end := start + 1
			for end < len(row) && row[end].Color == row[start].Color {
				end++
			}
			style := base
			if fg, ok := ansiColors[row[start].Color]; ok {
				style = style.Foreground(fg)
			}
			b.WriteString(style.Render(rowText(row[start:end])))
			start = end
		}
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}
