package dashboard

import (
	"cmp"
	"sort"

	"github.com/mattn/go-runewidth"
	"github.com/rileyhilliard/statusboard/internal/errors"
)

// TitleFieldName is the reserved field name used by AddTitle.
const TitleFieldName = "title"

const titleFormat = " %s "

// windowState tracks the Uninitialized -> Created -> CleanedUp lifecycle.
type windowState int

const (
	windowUninitialized windowState = iota
	windowCreated
	windowCleanedUp
)

func (s windowState) String() string {
	switch s {
	case windowUninitialized:
		return "uninitialized"
	case windowCreated:
		return "created"
	case windowCleanedUp:
		return "cleaned up"
	default:
		return "unknown"
	}
}

// WindowOption configures a Window at construction.
type WindowOption func(*Window)

// WithOutline controls whether Create draws a border. Default on.
func WithOutline(outline bool) WindowOption {
	return func(w *Window) { w.outline = outline }
}

// Window is a rectangular surface plus its registry of named fields.
type Window struct {
	name    string
	term    Terminal
	outline bool

	state         windowState
	surface       Surface
	height, width int
	x, y          int

	// fields holds *Field[T] values of any T; the dynamic type is the type
	// partition, the key space is shared.
	fields map[string]registered
	refs   int
}

// NewWindow returns an uncreated window that will allocate its surface from
// term. The caller holds the first reference (see Retain and Release).
func NewWindow(term Terminal, name string, opts ...WindowOption) *Window {
	w := &Window{
		name:    name,
		term:    term,
		outline: true,
		fields:  make(map[string]registered),
		refs:    1,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Name returns the window's registry name.
func (w *Window) Name() string { return w.name }

// Size returns the height and width given to Create (zero before Create).
func (w *Window) Size() (height, width int) { return w.height, w.width }

// Origin returns the screen column and row of the window's top-left corner.
func (w *Window) Origin() (x, y int) { return w.x, w.y }

// Outlined reports whether Create draws a border.
func (w *Window) Outlined() bool { return w.outline }

// Created reports whether the window currently holds a surface.
func (w *Window) Created() bool { return w.state == windowCreated }

// Create allocates the window's surface. It can succeed only once per Window.
func (w *Window) Create(height, width, x, y int) error {
	if w.state != windowUninitialized {
		return errors.Newf(errors.ErrSurfaceNotReady, "window %q is already %s", w.name, w.state)
	}
	if w.term == nil {
		return errors.Newf(errors.ErrSurfaceNotReady, "window %q has no terminal", w.name)
	}
	if height <= 0 || width <= 0 {
		return errors.Newf(errors.ErrInvalidPosition, "window %q needs a positive size, got %dx%d", w.name, width, height)
	}

	s, err := w.term.CreateSurface(height, width, x, y)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrSurfaceNotReady,
			"Couldn't allocate window "+w.name,
			"Check the window fits on the screen")
	}
	if s == nil {
		return errors.Newf(errors.ErrSurfaceNotReady, "terminal returned no surface for window %q", w.name)
	}

	w.surface = s
	w.height, w.width = height, width
	w.x, w.y = x, y
	w.state = windowCreated

	if w.outline {
		s.DrawBorder()
		s.Refresh()
	}
	return nil
}

// Cleanup drops every field and destroys the surface. It is safe to call any
// number of times; a cleaned-up window cannot be created again.
func (w *Window) Cleanup() {
	for name, f := range w.fields {
		f.detach()
		delete(w.fields, name)
	}
	if w.surface != nil {
		w.surface.Destroy()
		w.surface = nil
	}
	if w.state == windowCreated {
		w.state = windowCleanedUp
	}
}

// Retain adds a reference to the window.
func (w *Window) Retain() *Window {
	w.refs++
	return w
}

// Release drops a reference. The last release cleans the window up.
func (w *Window) Release() {
	if w.refs == 0 {
		return
	}
	w.refs--
	if w.refs == 0 {
		w.Cleanup()
	}
}

// Refs returns the number of outstanding references.
func (w *Window) Refs() int { return w.refs }

// Has reports whether a field of any type is registered under name.
func (w *Window) Has(name string) bool {
	_, ok := w.fields[name]
	return ok
}

// FieldNames returns the registered field names in sorted order.
func (w *Window) FieldNames() []string {
	names := make([]string, 0, len(w.fields))
	for name := range w.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clear blanks the window with fill and redraws the border. Fields stay
// registered; Redraw paints them again.
func (w *Window) Clear(fill rune) error {
	if w.state != windowCreated {
		return errors.Newf(errors.ErrSurfaceNotReady, "window %q is %s", w.name, w.state)
	}
	w.surface.Clear(fill)
	if w.outline {
		w.surface.DrawBorder()
	}
	w.surface.Refresh()
	return nil
}

// Redraw repaints the border and every field with its current value.
func (w *Window) Redraw() error {
	if w.state != windowCreated {
		return errors.Newf(errors.ErrSurfaceNotReady, "window %q is %s", w.name, w.state)
	}
	if w.outline {
		w.surface.DrawBorder()
	}
	for _, name := range w.FieldNames() {
		if err := w.fields[name].Redraw(); err != nil {
			return err
		}
	}
	w.surface.Refresh()
	return nil
}

// inBounds reports whether a field may start at (x, y).
func (w *Window) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < w.width && y < w.height
}

// AddField registers a field of type T and renders its default value. It
// fails if the window is not created, if name is reserved or already used by
// a field of any type, or if (x, y) lies outside the window.
func AddField[T cmp.Ordered](w *Window, x, y int, name, format string, value T, color ...Color) error {
	return addField(w, false, x, y, name, format, value, pick(color))
}

func addField[T cmp.Ordered](w *Window, allowReserved bool, x, y int, name, format string, value T, color Color) error {
	if w.state != windowCreated {
		return errors.Newf(errors.ErrSurfaceNotReady, "can't add field %q: window %q is %s", name, w.name, w.state)
	}
	if name == TitleFieldName && !allowReserved {
		return errors.Newf(errors.ErrNameCollision, "field name %q is reserved for the window title", name)
	}
	if existing, ok := w.fields[name]; ok {
		return errors.Newf(errors.ErrNameCollision,
			"window %q already has a %s field named %q", w.name, existing.typeName(), name)
	}
	if !w.inBounds(x, y) {
		return errors.Newf(errors.ErrInvalidPosition,
			"field %q at (%d,%d) is outside the %dx%d window %q", name, x, y, w.width, w.height, w.name)
	}

	f, err := NewField(w.surface, x, y, format, value, color)
	if err != nil {
		return err
	}
	w.fields[name] = f
	return f.Update(value, ColorDefault)
}

// LookupField returns the field registered under name if it holds values of
// type T.
func LookupField[T cmp.Ordered](w *Window, name string) (*Field[T], bool) {
	f, ok := w.fields[name].(*Field[T])
	return f, ok
}

func lookupField[T cmp.Ordered](w *Window, name string) (*Field[T], error) {
	reg, ok := w.fields[name]
	if !ok {
		return nil, errors.Newf(errors.ErrUnknownField, "window %q has no field named %q", w.name, name)
	}
	f, ok := reg.(*Field[T])
	if !ok {
		var zero T
		return nil, errors.Newf(errors.ErrUnknownField,
			"field %q in window %q holds %s values, not %T", name, w.name, reg.typeName(), zero)
	}
	return f, nil
}

// UpdateField renders a new value for an existing field of type T.
func UpdateField[T cmp.Ordered](w *Window, name string, value T, color ...Color) error {
	if w.state != windowCreated {
		return errors.Newf(errors.ErrSurfaceNotReady, "can't update field %q: window %q is %s", name, w.name, w.state)
	}
	f, err := lookupField[T](w, name)
	if err != nil {
		return err
	}
	return f.Update(value, pick(color))
}

// AddFieldThreshold adds a color override range to an existing field of
// type T. It takes effect on the next render.
func AddFieldThreshold[T cmp.Ordered](w *Window, name string, low, high T, color Color) error {
	f, err := lookupField[T](w, name)
	if err != nil {
		return err
	}
	return f.AddThreshold(low, high, color)
}

// AddTitle places text on the window edge according to the alignments and
// renders it. A window has at most one title.
func (w *Window) AddTitle(text string, vertical VerticalAlign, horizontal HorizontalAlign, color ...Color) error {
	if w.state != windowCreated {
		return errors.Newf(errors.ErrSurfaceNotReady, "can't add title: window %q is %s", w.name, w.state)
	}
	if w.Has(TitleFieldName) {
		return errors.Newf(errors.ErrNameCollision, "window %q already has a title", w.name)
	}

	x, y := w.titlePosition(runewidth.StringWidth(text), vertical, horizontal)
	return addField(w, true, x, y, TitleFieldName, titleFormat, text, pick(color))
}

// titlePosition computes where a title of the given display width starts.
// A bottom title sits on the last row, the lower border when outlined.
func (w *Window) titlePosition(textWidth int, vertical VerticalAlign, horizontal HorizontalAlign) (x, y int) {
	switch vertical {
	case AlignMiddle:
		y = w.height / 2
	case AlignBottom:
		y = w.height - 1
	default:
		y = 0
	}

	switch horizontal {
	case AlignCenter:
		if textWidth < w.width {
			x = (w.width - textWidth) / 2
		}
	case AlignRight:
		if textWidth < w.width {
			x = w.width - textWidth
		}
	default:
		x = 1
	}
	return x, y
}

// pick returns the optional color argument, defaulting to ColorDefault.
func pick(color []Color) Color {
	if len(color) == 0 {
		return ColorDefault
	}
	return color[0]
}
