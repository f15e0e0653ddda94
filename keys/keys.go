package keys

import (
	"github.com/charmbracelet/bubbles/key"
)

type KeyName int

const (
	KeyUp KeyName = iota
	KeyDown
	KeyLeft  // Previous top-bar entry
	KeyRight // Next top-bar entry
	KeyEnter
	KeyQuit
	KeyHelp

	KeyTab  // Tab cycles focus between the navigation and the page.
	KeyMore // Opens the overflow menu without the mouse.
	KeyEsc  // Closes dropdowns, then the sidebar overlay.

	KeyToggleLayout  // Switches between sidebar and top-bar shells
	KeyToggleSidebar // Key for toggling sidebar visibility
	KeyReload        // Reloads navigation.toml
	KeyYank          // Copies the active route path
	KeyHistory       // Shows the navigation history pane

	KeyPageUp
	KeyPageDown
)

// GlobalKeyStringsMap is a global, immutable map string to keybinding.
var GlobalKeyStringsMap = map[string]KeyName{
	"up":     KeyUp,
	"k":      KeyUp,
	"down":   KeyDown,
	"j":      KeyDown,
	"left":   KeyLeft,
	"h":      KeyLeft,
	"right":  KeyRight,
	"l":      KeyRight,
	"enter":  KeyEnter,
	"o":      KeyEnter,
	"q":      KeyQuit,
	"?":      KeyHelp,
	"tab":    KeyTab,
	"m":      KeyMore,
	"esc":    KeyEsc,
	"L":      KeyToggleLayout,
	"ctrl+s": KeyToggleSidebar,
	"r":      KeyReload,
	"y":      KeyYank,
	"H":      KeyHistory,
	"pgup":   KeyPageUp,
	"pgdown": KeyPageDown,
}

// GlobalkeyBindings is a global, immutable map of KeyName tot keybinding.
var GlobalkeyBindings = map[KeyName]key.Binding{
	KeyUp: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	KeyDown: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	KeyLeft: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "prev"),
	),
	KeyRight: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "next"),
	),
	KeyEnter: key.NewBinding(
		key.WithKeys("enter", "o"),
		key.WithHelp("↵/o", "open"),
	),
	KeyQuit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	KeyHelp: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	KeyTab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "focus"),
	),
	KeyMore: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "more"),
	),
	KeyEsc: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close"),
	),
	KeyToggleLayout: key.NewBinding(
		key.WithKeys("L"),
		key.WithHelp("L", "layout"),
	),
	KeyToggleSidebar: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "toggle sidebar"),
	),
	KeyReload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload nav"),
	),
	KeyYank: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy path"),
	),
	KeyHistory: key.NewBinding(
		key.WithKeys("H"),
		key.WithHelp("H", "history"),
	),
	KeyPageUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "scroll up"),
	),
	KeyPageDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdn", "scroll down"),
	),
}
