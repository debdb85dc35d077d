package term

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rileyhilliard/statusboard/internal/dashboard"
)

var namedKeys = map[tcell.Key]dashboard.Key{
	tcell.KeyUp:         dashboard.KeyUp,
	tcell.KeyDown:       dashboard.KeyDown,
	tcell.KeyLeft:       dashboard.KeyLeft,
	tcell.KeyRight:      dashboard.KeyRight,
	tcell.KeyHome:       dashboard.KeyHome,
	tcell.KeyEnd:        dashboard.KeyEnd,
	tcell.KeyPgUp:       dashboard.KeyPgUp,
	tcell.KeyPgDn:       dashboard.KeyPgDn,
	tcell.KeyInsert:     dashboard.KeyInsert,
	tcell.KeyDelete:     dashboard.KeyDelete,
	tcell.KeyBackspace:  dashboard.KeyBackspace,
	tcell.KeyBackspace2: dashboard.KeyBackspace,
	tcell.KeyEscape:     dashboard.KeyEscape,
}

// translateKey converts a tcell key event. Keys outside the dashboard's key
// set report false.
func translateKey(ev *tcell.EventKey) (dashboard.Key, bool) {
	k := ev.Key()
	switch {
	case k == tcell.KeyRune:
		return dashboard.Key(ev.Rune()), true
	case k >= tcell.KeyF1 && k <= tcell.KeyF12:
		return dashboard.FunctionKey(int(k-tcell.KeyF1) + 1), true
	}
	if dk, ok := namedKeys[k]; ok {
		return dk, true
	}
	// Tab, Enter and the remaining control keys share their ASCII codes.
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return dashboard.Key(k), true
	}
	return 0, false
}
