package monitor

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/rileyhilliard/statusboard/internal/dashboard"
)

// KeyMap holds the monitor's key bindings. The dashboard's shutdown key is
// handled by the run loop and never reaches the monitor.
type KeyMap struct {
	Refresh key.Binding
	Pause   key.Binding
	Redraw  key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "space"),
			key.WithHelp("p", "pause"),
		),
		Redraw: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "redraw"),
		),
	}
}

// Bindings returns the bindings in display order.
func (k KeyMap) Bindings() []key.Binding {
	return []key.Binding{k.Refresh, k.Pause, k.Redraw}
}

// HelpLine renders the enabled bindings as "r refresh, p pause, ...".
func (k KeyMap) HelpLine() string {
	var parts []string
	for _, b := range k.Bindings() {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, ", ")
}

// matches reports whether k triggers b. dashboard.Key spells its names the
// way bubbles does, so the binding's key list applies unchanged.
func matches(k dashboard.Key, b key.Binding) bool {
	return key.Matches(k, b)
}
