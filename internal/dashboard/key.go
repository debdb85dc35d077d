package dashboard

import (
	"fmt"
	"strings"
	"unicode"
)

// Key is a single input event. Printable characters are their rune value,
// control characters their ASCII code; navigation and function keys live
// above the Unicode range.
type Key int32

// Control keys, using their ASCII codes.
const (
	KeyCtrlC     Key = 0x03
	KeyTab       Key = 0x09
	KeyEnter     Key = 0x0d
	KeyEscape    Key = 0x1b
	KeyBackspace Key = 0x7f
)

const keyBase Key = unicode.MaxRune + 1

// Navigation and function keys.
const (
	KeyUp Key = keyBase + iota
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPgUp
	KeyPgDn
	KeyInsert
	KeyDelete
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

var specialKeyNames = map[Key]string{
	KeyTab:       "tab",
	KeyEnter:     "enter",
	KeyEscape:    "esc",
	KeyBackspace: "backspace",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPgUp:      "pgup",
	KeyPgDn:      "pgdown",
	KeyInsert:    "insert",
	KeyDelete:    "delete",
	' ':          "space",
}

var keysByName map[string]Key

func init() {
	keysByName = make(map[string]Key, len(specialKeyNames)+16)
	for k, name := range specialKeyNames {
		keysByName[name] = k
	}
	for i := 0; i < 12; i++ {
		keysByName[fmt.Sprintf("f%d", i+1)] = KeyF1 + Key(i)
	}
	keysByName["escape"] = KeyEscape
	keysByName["return"] = KeyEnter
}

// FunctionKey returns the key for F1..F12; n outside that range yields 0.
func FunctionKey(n int) Key {
	if n < 1 || n > 12 {
		return 0
	}
	return KeyF1 + Key(n-1)
}

// String returns the key name in the same spelling Bubble Tea uses
// ("q", "ctrl+c", "enter", "f1"), so key bindings can be matched by name.
func (k Key) String() string {
	if name, ok := specialKeyNames[k]; ok {
		return name
	}
	if k >= KeyF1 && k <= KeyF12 {
		return fmt.Sprintf("f%d", int(k-KeyF1)+1)
	}
	if k >= 1 && k <= 26 {
		return "ctrl+" + string(rune('a'+k-1))
	}
	if k > 0 && k < keyBase && unicode.IsPrint(rune(k)) {
		return string(rune(k))
	}
	return fmt.Sprintf("key(%d)", int32(k))
}

// ParseKey converts a key name back to a Key. Names are case-insensitive
// except for single printable characters, which are taken literally.
func ParseKey(name string) (Key, error) {
	if r := []rune(name); len(r) == 1 && unicode.IsPrint(r[0]) && r[0] != ' ' {
		return Key(r[0]), nil
	}
	lower := strings.ToLower(strings.TrimSpace(name))
	if k, ok := keysByName[lower]; ok {
		return k, nil
	}
	if rest, ok := strings.CutPrefix(lower, "ctrl+"); ok && len(rest) == 1 && rest[0] >= 'a' && rest[0] <= 'z' {
		return Key(rest[0]-'a') + 1, nil
	}
	return 0, fmt.Errorf("unknown key %q", name)
}
