package app

import (
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kastheco/chartdesk/config"
	"github.com/kastheco/chartdesk/config/history"
	"github.com/kastheco/chartdesk/internal/sentry"
	"github.com/kastheco/chartdesk/log"
	"github.com/kastheco/chartdesk/nav"
	"github.com/kastheco/chartdesk/ui"
	"github.com/kastheco/chartdesk/ui/overlay"
)

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

// historyPaneLimit is how many events the history pane shows.
const historyPaneLimit = 50

// navigate opens route in every navigation surface and the page pane.
func (m *home) navigate(route string) tea.Cmd {
	if route == "" {
		return nil
	}
	m.topBar.SetActive(route)
	m.sidebar.SetActive(route)
	cmd := m.content.Navigate(route)
	m.lastRenderWidth = m.contentWidth()

	entry := ""
	if e, _, ok := nav.Resolve(m.entries, route); ok {
		entry = e.Name
	} else {
		log.WarningLog.Printf("no navigation entry owns %s", route)
	}
	m.emit(history.EventRouteOpened, "opened "+route,
		history.WithRoute(route, entry),
		history.WithLayout(m.layout.Mode().String()))
	return tea.Batch(cmd, m.refreshStatus())
}

// emit records a navigation event for this session.
func (m *home) emit(kind history.EventKind, msg string, opts ...history.EventOption) {
	m.history.Emit(history.NewEvent(kind, m.session, msg, opts...))
	if m.historyPane.Visible() {
		m.refreshHistory()
	}
}

func (m *home) refreshHistory() {
	events, err := m.history.Query(history.QueryFilter{Session: m.session, Limit: historyPaneLimit})
	if err != nil {
		log.WarningLog.Printf("could not query navigation history: %v", err)
		return
	}
	display := make([]ui.HistoryEventDisplay, 0, len(events))
	for _, e := range events {
		icon, color := ui.EventKindIcon(e.Kind.String())
		display = append(display, ui.HistoryEventDisplay{
			Time:    e.Timestamp.Local().Format("15:04"),
			Kind:    e.Kind.String(),
			Icon:    icon,
			Message: e.Message,
			Color:   color,
			Level:   e.Level,
		})
	}
	m.historyPane.SetEvents(display)
}

func (m *home) toggleHistory() tea.Cmd {
	m.historyPane.ToggleVisible()
	if m.historyPane.Visible() {
		m.refreshHistory()
	}
	return m.layoutPanes()
}

// reloadNavigation reads the navigation file off the event loop.
func (m *home) reloadNavigation() tea.Cmd {
	if m.reloadToastID != "" {
		return nil
	}
	m.reloadToastID = m.toastManager.Loading("reloading navigation")
	path := m.navPath
	load := func() tea.Msg {
		entries, err := config.LoadNavigation(path)
		return navigationLoadedMsg{entries: entries, err: err}
	}
	return tea.Batch(load, m.toastTickCmd())
}

// applyNavigation swaps in a reloaded entry list. On error the current list
// is kept. When the open route no longer exists the first entry is opened.
func (m *home) applyNavigation(msg navigationLoadedMsg) tea.Cmd {
	id := m.reloadToastID
	m.reloadToastID = ""
	if msg.err != nil {
		if id != "" {
			m.toastManager.Resolve(id, overlay.ToastError, "reload failed")
		}
		return m.handleError(fmt.Errorf("could not reload navigation: %w", msg.err))
	}

	m.entries = msg.entries
	cmds := []tea.Cmd{m.topBar.SetEntries(msg.entries)}
	m.sidebar.SetEntries(msg.entries)
	m.content.SetEntries(msg.entries)

	if id != "" {
		m.toastManager.Resolve(id, overlay.ToastSuccess,
			fmt.Sprintf("navigation reloaded (%d entries)", len(msg.entries)))
	}
	m.emit(history.EventNavigationReloaded,
		fmt.Sprintf("loaded %d entries from %s", len(msg.entries), m.navPath))
	sentry.SetContext(m.layout.Mode().String(), m.navPath, len(msg.entries))

	if _, _, ok := nav.Resolve(msg.entries, m.content.Path()); ok {
		m.topBar.SetActive(m.content.Path())
		m.sidebar.SetActive(m.content.Path())
		cmds = append(cmds, m.content.Rerender())
	} else if len(msg.entries) > 0 {
		cmds = append(cmds, m.navigate(msg.entries[0].Path))
	}
	cmds = append(cmds, m.toastTickCmd())
	return tea.Batch(cmds...)
}

// yankRoute copies the open route to the clipboard.
func (m *home) yankRoute() tea.Cmd {
	route := m.content.Path()
	if route == "" {
		return nil
	}
	if err := writeClipboard(route); err != nil {
		return m.handleError(fmt.Errorf("could not copy %s: %w", route, err))
	}
	m.toastManager.Success("copied " + route)
	return m.toastTickCmd()
}
