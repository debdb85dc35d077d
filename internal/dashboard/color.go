package dashboard

import (
	"fmt"
	"strings"
	"sync"
)

// Color is a palette entry. The zero value, ColorDefault, means no override:
// text is drawn with whatever attributes the surface already has.
type Color int

// Palette colors in ANSI order.
const (
	ColorDefault Color = iota
	ColorBlack
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
)

var colorNames = [...]string{
	ColorDefault: "default",
	ColorBlack:   "black",
	ColorRed:     "red",
	ColorGreen:   "green",
	ColorYellow:  "yellow",
	ColorBlue:    "blue",
	ColorMagenta: "magenta",
	ColorCyan:    "cyan",
	ColorWhite:   "white",
}

// String returns the lowercase color name.
func (c Color) String() string {
	if !c.Valid() {
		return fmt.Sprintf("color(%d)", int(c))
	}
	return colorNames[c]
}

// Valid reports whether c is ColorDefault or one of the palette colors.
func (c Color) Valid() bool {
	return c >= ColorDefault && c <= ColorWhite
}

// ParseColor converts a color name (case-insensitive) to a Color.
// The empty string parses as ColorDefault.
func ParseColor(name string) (Color, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ColorDefault, nil
	}
	for i, n := range colorNames {
		if n == name {
			return Color(i), nil
		}
	}
	return ColorDefault, fmt.Errorf("unknown color %q (want one of %s)", name, strings.Join(colorNames[:], ", "))
}

// Palette returns the foreground colors a terminal registers, excluding
// ColorDefault.
func Palette() []Color {
	return []Color{ColorBlack, ColorRed, ColorGreen, ColorYellow, ColorBlue, ColorMagenta, ColorCyan, ColorWhite}
}

// ColorRegistrar is implemented by terminals that need the palette set up
// before any colored text is drawn.
type ColorRegistrar interface {
	RegisterColors(background Color)
}

var paletteOnce sync.Once

// InitPalette registers the palette on r against the given background. Color
// registration is process-wide: only the first call does any work, later
// calls are no-ops. It reports whether this call performed the registration.
func InitPalette(r ColorRegistrar, background Color) bool {
	ran := false
	paletteOnce.Do(func() {
		r.RegisterColors(background)
		ran = true
	})
	return ran
}
