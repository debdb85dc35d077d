package dashboard

import "time"

// Terminal is the rendering backend a Dashboard drives. The core never draws
// glyphs or reads raw input itself; it only goes through these methods.
type Terminal interface {
	ColorRegistrar

	// CreateSurface allocates a height x width region whose top-left corner is
	// at column x, row y.
	CreateSurface(height, width, x, y int) (Surface, error)

	// PollInput waits at most timeout for the next key. It must return within
	// the timeout even when no input arrives.
	PollInput(timeout time.Duration) (Key, bool)
}

// Surface is one allocated region of the terminal. Coordinates passed to its
// methods are relative to the region's top-left corner.
type Surface interface {
	// DrawBorder outlines the region with box-drawing characters.
	DrawBorder()

	// WriteFormatted renders fmt.Sprintf(format, value) starting at (x, y).
	WriteFormatted(x, y int, format string, value any) error

	// BeginAttribute and EndAttribute bracket a write drawn in color c.
	BeginAttribute(c Color)
	EndAttribute(c Color)

	// Refresh makes pending writes visible.
	Refresh()

	// Clear fills the region with fill.
	Clear(fill rune)

	// Destroy releases the region. The surface must not be used afterwards.
	Destroy()
}
