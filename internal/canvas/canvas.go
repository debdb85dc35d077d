// Package canvas is an in-memory dashboard.Terminal.
//
// A Canvas keeps a grid of cells instead of talking to a real screen. Keys
// are fed from a queue, so a dashboard can be driven without a TTY. The
// snapshot command renders through it, and tests inspect its cells.
package canvas

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/rileyhilliard/statusboard/internal/dashboard"
	"github.com/rileyhilliard/statusboard/internal/errors"
)

// Cell is one screen position. Rune 0 marks the right half of a wide rune.
type Cell struct {
	Rune  rune
	Color dashboard.Color
}

// Canvas is a fixed-size in-memory terminal.
type Canvas struct {
	mu sync.Mutex

	width, height int
	cells         [][]Cell
	background    dashboard.Color
	registered    bool

	keys      []dashboard.Key
	regions   []*Region
	refreshes int
}

// New returns a blank canvas of the given size.
func New(width, height int) *Canvas {
	c := &Canvas{
		width:      width,
		height:     height,
		background: dashboard.ColorDefault,
	}
	c.cells = make([][]Cell, height)
	for y := range c.cells {
		row := make([]Cell, width)
		for x := range row {
			row[x] = Cell{Rune: ' '}
		}
		c.cells[y] = row
	}
	return c
}

// Size returns the canvas width and height.
func (c *Canvas) Size() (width, height int) { return c.width, c.height }

// RegisterColors records the background used by Render.
func (c *Canvas) RegisterColors(background dashboard.Color) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.background = background
	c.registered = true
}

// SetBackground sets the background without counting as palette
// registration. Palette registration happens once per process, so canvases
// created later use this to match it.
func (c *Canvas) SetBackground(background dashboard.Color) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.background = background
}

// Background returns the current background color.
func (c *Canvas) Background() dashboard.Color {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.background
}

// Registered reports whether RegisterColors has been called on this canvas.
func (c *Canvas) Registered() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.registered
}

// CreateSurface allocates a region. The region must fit on the canvas.
func (c *Canvas) CreateSurface(height, width, x, y int) (dashboard.Surface, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if height <= 0 || width <= 0 || x < 0 || y < 0 || x+width > c.width || y+height > c.height {
		return nil, errors.Newf(errors.ErrInvalidPosition,
			"region %dx%d at (%d,%d) does not fit the %dx%d canvas", width, height, x, y, c.width, c.height)
	}
	r := &Region{canvas: c, x: x, y: y, width: width, height: height}
	c.regions = append(c.regions, r)
	return r, nil
}

// Feed appends keys to the input queue.
func (c *Canvas) Feed(keys ...dashboard.Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.keys = append(c.keys, keys...)
}

// PollInput pops the next queued key. It never blocks: with nothing queued it
// returns immediately.
func (c *Canvas) PollInput(time.Duration) (dashboard.Key, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.keys) == 0 {
		return 0, false
	}
	k := c.keys[0]
	c.keys = c.keys[1:]
	return k, true
}

// Pending returns the number of queued keys.
func (c *Canvas) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.keys)
}

// Cell returns the cell at (x, y) in canvas coordinates.
func (c *Canvas) Cell(x, y int) Cell {
	c.mu.Lock()
	defer c.mu.Unlock()
	if y < 0 || y >= c.height || x < 0 || x >= c.width {
		return Cell{}
	}
	return c.cells[y][x]
}

// Line returns row y as plain text, trailing spaces included.
func (c *Canvas) Line(y int) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if y < 0 || y >= c.height {
		return ""
	}
	return rowText(c.cells[y])
}

// Plain returns the whole canvas as uncolored text with trailing spaces
// trimmed from each row.
func (c *Canvas) Plain() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	lines := make([]string, c.height)
	for y, row := range c.cells {
		lines[y] = strings.TrimRight(rowText(row), " ")
	}
	return strings.Join(lines, "\n")
}

// Refreshes returns how many times any region has been refreshed.
func (c *Canvas) Refreshes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refreshes
}

// Regions returns the number of regions ever allocated, destroyed included.
func (c *Canvas) Regions() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.regions)
}

// LiveRegions returns the number of regions not yet destroyed.
func (c *Canvas) LiveRegions() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, r := range c.regions {
		if !r.destroyed {
			n++
		}
	}
	return n
}

func rowText(row []Cell) string {
	var b strings.Builder
	for _, cell := range row {
		if cell.Rune == 0 {
			continue
		}
		b.WriteRune(cell.Rune)
	}
	return b.String()
}

// Region is a rectangular dashboard.Surface on a Canvas.
type Region struct {
	canvas        *Canvas
	x, y          int
	width, height int
	attrs         []dashboard.Color
	destroyed     bool
}

// Bounds returns the region's origin and size in canvas coordinates.
func (r *Region) Bounds() (x, y, width, height int) {
	return r.x, r.y, r.width, r.height
}

// Destroyed reports whether Destroy has been called.
func (r *Region) Destroyed() bool {
	r.canvas.mu.Lock()
	defer r.canvas.mu.Unlock()
	return r.destroyed
}

func (r *Region) set(x, y int, ch rune, color dashboard.Color) {
	r.canvas.cells[r.y+y][r.x+x] = Cell{Rune: ch, Color: color}
}

func (r *Region) color() dashboard.Color {
	if len(r.attrs) == 0 {
		return dashboard.ColorDefault
	}
	return r.attrs[len(r.attrs)-1]
}

// DrawBorder outlines the region with box-drawing characters.
func (r *Region) DrawBorder() {
	r.canvas.mu.Lock()
	defer r.canvas.mu.Unlock()
	if r.destroyed || r.width < 2 || r.height < 2 {
		return
	}
	last, bottom := r.width-1, r.height-1
	for x := 1; x < last; x++ {
		r.set(x, 0, '─', dashboard.ColorDefault)
		r.set(x, bottom, '─', dashboard.ColorDefault)
	}
	for y := 1; y < bottom; y++ {
		r.set(0, y, '│', dashboard.ColorDefault)
		r.set(last, y, '│', dashboard.ColorDefault)
	}
	r.set(0, 0, '┌', dashboard.ColorDefault)
	r.set(last, 0, '┐', dashboard.ColorDefault)
	r.set(0, bottom, '└', dashboard.ColorDefault)
	r.set(last, bottom, '┘', dashboard.ColorDefault)
}

// WriteFormatted renders the value at (x, y). Text running past the right
// edge is clipped; a start position outside the region is an error.
func (r *Region) WriteFormatted(x, y int, format string, value any) error {
	r.canvas.mu.Lock()
	defer r.canvas.mu.Unlock()

	if r.destroyed {
		return errors.Newf(errors.ErrSurfaceNotReady, "region at (%d,%d) was destroyed", r.x, r.y)
	}
	if x < 0 || y < 0 || x >= r.width || y >= r.height {
		return errors.Newf(errors.ErrInvalidPosition,
			"write at (%d,%d) is outside the %dx%d region", x, y, r.width, r.height)
	}

	color := r.color()
	col := x
	for _, ch := range fmt.Sprintf(format, value) {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if col+w > r.width {
			break
		}
		r.set(col, y, ch, color)
		if w == 2 {
			r.set(col+1, y, 0, color)
		}
		col += w
	}
	return nil
}

// BeginAttribute pushes a drawing color.
func (r *Region) BeginAttribute(c dashboard.Color) {
	r.canvas.mu.Lock()
	defer r.canvas.mu.Unlock()
	r.attrs = append(r.attrs, c)
}

// EndAttribute pops the drawing color pushed by the matching BeginAttribute.
func (r *Region) EndAttribute(c dashboard.Color) {
	r.canvas.mu.Lock()
	defer r.canvas.mu.Unlock()
	for i := len(r.attrs) - 1; i >= 0; i-- {
		if r.attrs[i] == c {
			r.attrs = append(r.attrs[:i], r.attrs[i+1:]...)
			return
		}
	}
}

// Refresh counts a refresh; canvas writes are visible immediately.
func (r *Region) Refresh() {
	r.canvas.mu.Lock()
	defer r.canvas.mu.Unlock()
	if !r.destroyed {
		r.canvas.refreshes++
	}
}

// Clear fills the region with fill in the default color.
func (r *Region) Clear(fill rune) {
	r.canvas.mu.Lock()
	defer r.canvas.mu.Unlock()
	if r.destroyed {
		return
	}
	for y := 0; y < r.height; y++ {
		for x := 0; x < r.width; x++ {
			r.set(x, y, fill, dashboard.ColorDefault)
		}
	}
}

// Destroy releases the region. Its last contents stay on the canvas.
func (r *Region) Destroy() {
	r.canvas.mu.Lock()
	defer r.canvas.mu.Unlock()
	r.destroyed = true
	r.attrs = nil
}
