package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kastheco/chartdesk/keys"
	"github.com/kastheco/chartdesk/nav"
)

var keyStyle = lipgloss.NewStyle().Foreground(ColorSubtle)

var descStyle = lipgloss.NewStyle().Foreground(ColorMuted)

var sepStyle = lipgloss.NewStyle().Foreground(ColorOverlay)

var actionGroupStyle = lipgloss.NewStyle().Foreground(ColorRose)

var separator = " • "
var verticalSeparator = " │ "

// MenuFocus is the pane whose keybinds the menu shows.
type MenuFocus int

const (
	MenuFocusNav MenuFocus = iota
	MenuFocusContent
)

type Menu struct {
	options       []keys.KeyName
	height, width int
	focus         MenuFocus
	layout        nav.LayoutMode
	hasOverflow   bool

	// keyDown is the key which is pressed. The default is -1.
	keyDown keys.KeyName

	// systemGroupSize is the number of items in the trailing system group
	// (used for separator placement).
	systemGroupSize int
}

var systemGroup = []keys.KeyName{keys.KeyTab, keys.KeyReload, keys.KeyHelp, keys.KeyQuit}

func NewMenu() *Menu {
	m := &Menu{keyDown: -1}
	m.updateOptions()
	return m
}

func (m *Menu) Keydown(name keys.KeyName) {
	m.keyDown = name
}

func (m *Menu) ClearKeydown() {
	m.keyDown = -1
}

// SetFocus updates which pane is focused so the menu can show
// context-sensitive keybinds.
func (m *Menu) SetFocus(focus MenuFocus) {
	m.focus = focus
	m.updateOptions()
}

// SetLayout updates the shell the keybinds apply to. hasOverflow reports
// whether the top bar currently has a More menu.
func (m *Menu) SetLayout(layout nav.LayoutMode, hasOverflow bool) {
	m.layout = layout
	m.hasOverflow = hasOverflow
	m.updateOptions()
}

func (m *Menu) updateOptions() {
	var actions []keys.KeyName
	switch m.focus {
	case MenuFocusContent:
		actions = []keys.KeyName{keys.KeyUp, keys.KeyDown, keys.KeyPageDown, keys.KeyYank}
	default:
		if m.layout == nav.ModeTopBar {
			actions = []keys.KeyName{keys.KeyLeft, keys.KeyRight, keys.KeyEnter}
			if m.hasOverflow {
				actions = append(actions, keys.KeyMore)
			}
		} else {
			actions = []keys.KeyName{keys.KeyUp, keys.KeyDown, keys.KeyEnter}
		}
	}
	actions = append(actions, keys.KeyToggleLayout, keys.KeyToggleSidebar)

	options := make([]keys.KeyName, 0, len(actions)+len(systemGroup))
	options = append(options, actions...)
	options = append(options, systemGroup...)
	m.options = options
	m.systemGroupSize = len(systemGroup)
}

// SetSize sets the width of the window. The menu will be centered horizontally within this width.
func (m *Menu) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Menu) String() string {
	var s strings.Builder
	actionEnd := len(m.options) - m.systemGroupSize

	for i, k := range m.options {
		help := keys.GlobalkeyBindings[k].Help()

		var (
			localActionStyle = actionGroupStyle
			localKeyStyle    = keyStyle
			localDescStyle   = descStyle
		)
		if m.keyDown == k {
			localActionStyle = localActionStyle.Underline(true)
			localKeyStyle = localKeyStyle.Underline(true)
			localDescStyle = localDescStyle.Underline(true)
		}

		if i < actionEnd {
			s.WriteString(localActionStyle.Render(help.Key + " " + help.Desc))
		} else {
			s.WriteString(localKeyStyle.Render(help.Key))
			s.WriteString(descStyle.Render(" "))
			s.WriteString(localDescStyle.Render(help.Desc))
		}

		if i == len(m.options)-1 {
			continue
		}
		if i == actionEnd-1 {
			s.WriteString(sepStyle.Render(verticalSeparator))
		} else {
			s.WriteString(sepStyle.Render(separator))
		}
	}

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, s.String())
}
