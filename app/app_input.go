package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kastheco/chartdesk/config/history"
	"github.com/kastheco/chartdesk/keys"
	"github.com/kastheco/chartdesk/log"
	"github.com/kastheco/chartdesk/nav"
	"github.com/kastheco/chartdesk/ui"
	zone "github.com/lrstanley/bubblezone"
)

// wheelStep is how many lines one wheel notch scrolls the page.
const wheelStep = 3

func (m *home) handleMenuHighlighting(msg tea.KeyMsg) (cmd tea.Cmd, returnEarly bool) {
	// Handle menu highlighting when you press a button. We intercept it here and immediately return to
	// update the ui while re-sending the keypress. Then, on the next call to this, we actually handle the keypress.
	if m.keySent {
		m.keySent = false
		return nil, false
	}
	if m.state == stateHelp {
		return nil, false
	}
	// If it's in the global keymap, we should try to highlight it.
	name, ok := keys.GlobalKeyStringsMap[msg.String()]
	if !ok {
		return nil, false
	}
	// Scroll keys repeat; highlighting them only flickers the menu.
	switch name {
	case keys.KeyUp, keys.KeyDown, keys.KeyPageUp, keys.KeyPageDown:
		return nil, false
	}

	m.keySent = true
	return tea.Batch(
		func() tea.Msg { return msg },
		m.keydownCallback(name)), true
}

func (m *home) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.state == stateHelp {
		return m.handleHelpState(msg)
	}

	cmd, returnEarly := m.handleMenuHighlighting(msg)
	if returnEarly {
		return m, cmd
	}

	name, ok := keys.GlobalKeyStringsMap[msg.String()]
	if !ok {
		return m, nil
	}

	switch name {
	case keys.KeyQuit:
		return m.handleQuit()
	case keys.KeyHelp:
		return m.showHelpScreen()
	case keys.KeyTab:
		if m.focus == focusNav {
			m.setFocus(focusContent)
		} else {
			m.setFocus(focusNav)
		}
		return m, nil
	case keys.KeyToggleLayout:
		return m, m.toggleLayoutMode()
	case keys.KeyToggleSidebar:
		return m, m.toggleSidebar()
	case keys.KeyReload:
		return m, m.reloadNavigation()
	case keys.KeyYank:
		return m, m.yankRoute()
	case keys.KeyHistory:
		return m, m.toggleHistory()
	case keys.KeyPageUp:
		m.content.PageUp()
		return m, nil
	case keys.KeyPageDown:
		m.content.PageDown()
		return m, nil
	}
	return m, m.handleNavKey(name)
}

// handleNavKey routes arrows, enter, m and esc to the focused pane.
func (m *home) handleNavKey(name keys.KeyName) tea.Cmd {
	if m.focus == focusContent {
		switch name {
		case keys.KeyUp:
			m.content.ScrollUp(1)
		case keys.KeyDown:
			m.content.ScrollDown(1)
		case keys.KeyEsc:
			if m.layout.Mode() == nav.ModeTopBar && m.layout.SidebarOpen() {
				return m.closeSidebar()
			}
		}
		return nil
	}

	if m.navFocusSidebar() {
		switch name {
		case keys.KeyUp:
			m.sidebar.Up()
		case keys.KeyDown:
			m.sidebar.Down()
		case keys.KeyLeft:
			m.sidebar.Left()
		case keys.KeyRight:
			m.sidebar.Right()
		case keys.KeyEnter:
			if route, ok := m.sidebar.Selected(); ok {
				return m.navigate(route)
			}
		}
		return nil
	}

	if m.layout.Mode() != nav.ModeTopBar {
		return nil
	}
	route, handled := m.topBar.HandleKey(name)
	if route != "" {
		return m.navigate(route)
	}
	if !handled && name == keys.KeyEsc && m.layout.SidebarOpen() {
		return m.closeSidebar()
	}
	return nil
}

// handleMouse processes mouse events for hover, click and scroll
// interactions.
func (m *home) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	return m, m.handlePointer(msg, func(id string) bool {
		return zone.Get(id).InBounds(msg)
	})
}

// handlePointer applies a mouse event. inBounds reports whether the pointer
// is inside the zone with the given id.
func (m *home) handlePointer(msg tea.MouseMsg, inBounds func(id string) bool) tea.Cmd {
	if m.state == stateHelp {
		return nil
	}
	if m.layout.SidebarOpen() {
		m.sidebar.SetHovered(inBounds)
	}

	if msg.Action == tea.MouseActionMotion {
		if m.layout.Mode() == nav.ModeTopBar {
			return m.topBar.Hover(inBounds)
		}
		return nil
	}
	if msg.Action != tea.MouseActionPress {
		return nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.content.ScrollUp(wheelStep)
	case tea.MouseButtonWheelDown:
		m.content.ScrollDown(wheelStep)
	case tea.MouseButtonLeft:
		return m.handleClick(inBounds)
	}
	return nil
}

func (m *home) handleClick(inBounds func(id string) bool) tea.Cmd {
	if m.layout.Mode() == nav.ModeTopBar {
		if route, ok := m.topBar.Click(inBounds); ok {
			m.setFocus(focusNav)
			return m.navigate(route)
		}
	}

	if m.layout.SidebarOpen() {
		if click, ok := m.sidebar.Click(inBounds); ok {
			switch {
			case click.Close:
				return m.closeSidebar()
			case click.ToggleLayout:
				return m.toggleLayoutMode()
			}
			m.topBar.CloseDropdowns()
			cmd := m.navigate(click.Route)
			// Over the top bar the sidebar is a drawer: picking a page
			// closes it.
			if m.layout.Mode() == nav.ModeTopBar {
				return tea.Batch(cmd, m.closeSidebar())
			}
			m.setFocus(focusNav)
			return cmd
		}
	}

	m.topBar.CloseDropdowns()
	if inBounds(ui.ZoneContent) {
		m.setFocus(focusContent)
	}
	return nil
}

func (m *home) handleError(err error) tea.Cmd {
	log.ErrorLog.Printf("%v", err)
	m.emit(history.EventError, err.Error(), history.WithLevel("error"))
	m.toastManager.Error(err.Error())
	return m.toastTickCmd()
}

// keydownCallback clears the menu option highlighting after 500ms.
func (m *home) keydownCallback(name keys.KeyName) tea.Cmd {
	m.menu.Keydown(name)
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
		case <-time.After(500 * time.Millisecond):
		}

		return keyupMsg{}
	}
}
