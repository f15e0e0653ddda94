package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kastheco/chartdesk/config/history"
	"github.com/kastheco/chartdesk/internal/sentry"
	"github.com/kastheco/chartdesk/log"
	"github.com/kastheco/chartdesk/nav"
	"github.com/kastheco/chartdesk/ui"
)

const menuHeight = 1

func (m *home) sidebarWidth() int {
	if !m.layout.SidebarOpen() {
		return 0
	}
	return min(ui.SidebarWidth, m.termWidth)
}

func (m *home) contentWidth() int {
	return m.termWidth - m.sidebarWidth()
}

// layoutPanes sizes every pane from the terminal size and the layout state.
// The returned command is the top bar's debounced recompute.
func (m *home) layoutPanes() tea.Cmd {
	if m.termWidth <= 0 || m.termHeight <= 0 {
		return nil
	}
	sidebarW := m.sidebarWidth()
	mainW := m.termWidth - sidebarW

	historyH := 0
	if m.historyPane.Visible() {
		historyH = historyPaneHeight
	}
	// One row for the top bar or status bar above the page.
	contentH := max(m.termHeight-menuHeight-1-historyH, 3)

	m.sidebar.SetSize(sidebarW, m.termHeight-menuHeight)
	m.statusBar.SetSize(mainW)
	m.content.SetSize(mainW, contentH)
	m.historyPane.SetSize(mainW, historyH)
	m.menu.SetSize(m.termWidth, menuHeight)
	m.toastManager.SetSize(m.termWidth, m.termHeight, menuHeight)
	if m.textOverlay != nil {
		m.textOverlay.SetWidth(min(72, m.termWidth-4))
	}

	// The bar is sized in both modes so switching to it shows a settled
	// partition; its recompute also drives page re-rendering.
	return m.topBar.SetSize(mainW)
}

// syncLayout applies a layout change published by the store: focus moves to
// the visible navigation, panes are resized and the change is recorded.
func (m *home) syncLayout() tea.Cmd {
	if m.pendingLayout == nil {
		return nil
	}
	snap := *m.pendingLayout
	m.pendingLayout = nil
	prev := m.lastLayout
	m.lastLayout = snap

	if snap.Mode != prev.Mode {
		log.InfoLog.Printf("layout switched to %s", snap.Mode)
		m.emit(history.EventLayoutChanged, "layout "+snap.Mode.String(),
			history.WithLayout(snap.Mode.String()))
		sentry.SetContext(snap.Mode.String(), m.navPath, len(m.entries))
	}
	if snap.SidebarOpen != prev.SidebarOpen {
		msg := "sidebar closed"
		if snap.SidebarOpen {
			msg = "sidebar opened"
		}
		m.emit(history.EventSidebarToggled, msg, history.WithLayout(snap.Mode.String()))
	}

	m.topBar.CloseDropdowns()
	m.applyFocus()
	return tea.Batch(m.layoutPanes(), m.refreshStatus())
}

// setLayoutMode switches the shell and applies the change.
func (m *home) setLayoutMode(mode nav.LayoutMode) tea.Cmd {
	m.layout.SetLayoutMode(mode)
	return m.syncLayout()
}

func (m *home) toggleLayoutMode() tea.Cmd {
	if m.layout.Mode() == nav.ModeTopBar {
		return m.setLayoutMode(nav.ModeSidebar)
	}
	return m.setLayoutMode(nav.ModeTopBar)
}

func (m *home) toggleSidebar() tea.Cmd {
	m.layout.ToggleSidebar()
	return m.syncLayout()
}

func (m *home) closeSidebar() tea.Cmd {
	m.layout.SetSidebarOpen(false)
	return m.syncLayout()
}

// navFocusSidebar reports whether navigation keys go to the sidebar. In the
// top-bar layout an open sidebar is a transient overlay and the bar keeps
// the keys.
func (m *home) navFocusSidebar() bool {
	return m.layout.Mode() == nav.ModeSidebar && m.layout.SidebarOpen()
}

func (m *home) setFocus(f focus) {
	m.focus = f
	m.applyFocus()
}

func (m *home) applyFocus() {
	navFocused := m.focus == focusNav
	m.sidebar.SetFocused(navFocused && m.navFocusSidebar())
	m.topBar.SetFocused(navFocused && m.layout.Mode() == nav.ModeTopBar)
	m.content.SetFocused(!navFocused)
	if navFocused {
		m.menu.SetFocus(ui.MenuFocusNav)
	} else {
		m.menu.SetFocus(ui.MenuFocusContent)
	}
}

// refreshStatus pushes the current route and partition into the status bar
// and the menu. The compact status doubles as the top bar's right text.
func (m *home) refreshStatus() tea.Cmd {
	mode := m.layout.Mode()
	p, _ := m.topBar.Partition()
	data := ui.StatusBarData{
		Layout:  mode.String(),
		Route:   m.content.Path(),
		Session: m.session,
	}
	if mode == nav.ModeTopBar {
		data.Overflow = len(p.Overflow)
	}
	m.statusBar.SetData(data)
	m.menu.SetLayout(mode, len(p.Overflow) > 0)
	return m.topBar.SetRightText(m.statusBar.Compact())
}

func samePartition(a, b nav.Partition) bool {
	if len(a.Visible) != len(b.Visible) || len(a.Overflow) != len(b.Overflow) {
		return false
	}
	for i := range a.Visible {
		if a.Visible[i].Name != b.Visible[i].Name {
			return false
		}
	}
	for i := range a.Overflow {
		if a.Overflow[i].Name != b.Overflow[i].Name {
			return false
		}
	}
	return true
}

func overflowSummary(p nav.Partition) string {
	return fmt.Sprintf("%d visible, %d in more menu", len(p.Visible), len(p.Overflow))
}
