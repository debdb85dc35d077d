package dashboard

import "sync"

// ResetPalette lets tests observe palette registration more than once.
func ResetPalette() {
	paletteOnce = sync.Once{}
}

// TitlePosition exposes title placement for table tests.
func (w *Window) TitlePosition(textWidth int, vertical VerticalAlign, horizontal HorizontalAlign) (x, y int) {
	return w.titlePosition(textWidth, vertical, horizontal)
}
