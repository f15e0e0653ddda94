package app

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/kastheco/chartdesk/config"
	"github.com/kastheco/chartdesk/config/history"
	"github.com/kastheco/chartdesk/internal/sentry"
	"github.com/kastheco/chartdesk/log"
	"github.com/kastheco/chartdesk/nav"
	"github.com/kastheco/chartdesk/ui"
	"github.com/kastheco/chartdesk/ui/overlay"
	zone "github.com/lrstanley/bubblezone"
)

// Run is the main entrypoint into the console.
func Run(ctx context.Context, cfg *config.Config, layout nav.LayoutMode) error {
	// Set the terminal's default background to the theme base color so every
	// ANSI reset and unstyled cell falls back to #232136 instead of black.
	restore := ui.SetTerminalBackground(string(ui.ColorBase))
	defer restore()

	navPath, err := cfg.NavigationPath()
	if err != nil {
		log.WarningLog.Printf("could not resolve navigation file: %v", err)
	}
	// LoadNavigation always returns usable entries; an error here is only
	// reported.
	entries, loadErr := config.LoadNavigation(navPath)

	hist := openHistory(cfg)
	defer func() {
		if err := hist.Close(); err != nil {
			log.ErrorLog.Printf("could not close history: %v", err)
		}
	}()

	zone.NewGlobal()
	h := newHome(ctx, cfg, entries, navPath, layout, hist)
	if loadErr != nil {
		h.startupErr = loadErr
	}
	p := tea.NewProgram(
		h,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(), // Full mouse tracking for hover + scroll + click
	)
	_, err = p.Run()
	return err
}

func openHistory(cfg *config.Config) history.Logger {
	if !cfg.IsHistoryEnabled() {
		return history.NopLogger()
	}
	path, err := config.HistoryPath()
	if err != nil {
		log.WarningLog.Printf("navigation history disabled: %v", err)
		return history.NopLogger()
	}
	l, err := history.NewSQLiteLogger(path)
	if err != nil {
		log.WarningLog.Printf("navigation history disabled: %v", err)
		return history.NopLogger()
	}
	return l
}

type state int

const (
	stateDefault state = iota
	// stateHelp is the state when the help screen is displayed.
	stateHelp
)

type focus int

const (
	focusNav focus = iota
	focusContent
)

// historyPaneHeight is the number of rows the history pane takes when shown.
const historyPaneHeight = 8

type home struct {
	ctx context.Context

	appConfig *config.Config
	navPath   string
	entries   []nav.Entry

	// layout is the shared layout state. Changes arrive through its
	// subscription and are applied by syncLayout.
	layout        *nav.LayoutStore
	lastLayout    nav.LayoutSnapshot
	pendingLayout *nav.LayoutSnapshot

	topBar       *ui.TopBar
	sidebar      *ui.Sidebar
	content      *ui.ContentPane
	menu         *ui.Menu
	statusBar    *ui.StatusBar
	historyPane  *ui.HistoryPane
	toastManager *overlay.ToastManager
	spinner      spinner.Model
	textOverlay  *overlay.TextOverlay

	history history.Logger
	session string

	state state
	focus focus

	termWidth, termHeight int
	// lastRenderWidth is the content width the current page was rendered at.
	lastRenderWidth int

	// keySent is used to manage underlining menu items
	keySent bool

	// reloadToastID is the loading toast of an in-flight navigation reload.
	reloadToastID string
	// startupErr is a navigation load failure reported once the UI is up.
	startupErr error
}

func newHome(ctx context.Context, cfg *config.Config, entries []nav.Entry, navPath string, layout nav.LayoutMode, hist history.Logger) *home {
	s := spinner.New(spinner.WithSpinner(spinner.MiniDot))
	m := &home{
		ctx:         ctx,
		appConfig:   cfg,
		navPath:     navPath,
		entries:     entries,
		layout:      nav.NewLayoutStore(layout),
		topBar:      ui.NewTopBar(entries, cfg.ResizeDebounce(), cfg.HoverGrace()),
		sidebar:     ui.NewSidebar(entries),
		content:     ui.NewContentPane(entries),
		menu:        ui.NewMenu(),
		statusBar:   ui.NewStatusBar(),
		historyPane: ui.NewHistoryPane(),
		spinner:     s,
		history:     hist,
		session:     uuid.NewString()[:8],
		focus:       focusNav,
	}
	m.toastManager = overlay.NewToastManager(&m.spinner)
	m.lastLayout = m.layout.Snapshot()
	m.layout.Subscribe(func(snap nav.LayoutSnapshot) {
		m.pendingLayout = &snap
	})
	m.historyPane.SetSession(m.session)
	m.applyFocus()
	m.refreshStatus()

	sentry.SetContext(layout.String(), navPath, len(entries))
	log.InfoLog.Printf("session %s started in %s layout with %d entries", m.session, layout, len(entries))
	return m
}

// updateHandleWindowSizeEvent records the terminal size and lays out the
// panes.
func (m *home) updateHandleWindowSizeEvent(msg tea.WindowSizeMsg) tea.Cmd {
	m.termWidth = msg.Width
	m.termHeight = msg.Height
	return m.layoutPanes()
}

func (m *home) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	if len(m.entries) > 0 {
		cmds = append(cmds, m.navigate(m.entries[0].Path))
	}
	if m.startupErr != nil {
		cmds = append(cmds, m.handleError(m.startupErr))
		m.startupErr = nil
	}
	return tea.Batch(cmds...)
}

func (m *home) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m, m.updateHandleWindowSizeEvent(msg)
	case ui.RecomputeMsg:
		return m, m.handleRecompute(msg)
	case ui.HoverCloseMsg:
		m.topBar.HandleHoverClose(msg)
		return m, nil
	case ui.PageRenderedMsg:
		if m.content.HandleRendered(msg) && msg.Err != nil {
			return m, m.handleError(msg.Err)
		}
		return m, nil
	case navigationLoadedMsg:
		return m, m.applyNavigation(msg)
	case overlay.ToastTickMsg:
		m.toastManager.Tick()
		if m.toastManager.HasActiveToasts() {
			return m, m.toastTickCmd()
		}
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case keyupMsg:
		m.menu.ClearKeydown()
		return m, nil
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}
	return m, nil
}

// handleRecompute applies a settled resize. The page is rendered again when
// the content width changed since it was last rendered.
func (m *home) handleRecompute(msg ui.RecomputeMsg) tea.Cmd {
	before, hadPartition := m.topBar.Partition()
	if !m.topBar.HandleRecompute(msg) {
		return nil
	}
	after, _ := m.topBar.Partition()

	var cmds []tea.Cmd
	if m.layout.Mode() == nav.ModeTopBar && (!hadPartition || !samePartition(before, after)) {
		m.emit(history.EventOverflowRecomputed,
			overflowSummary(after),
			history.WithLayout(nav.ModeTopBar.String()))
		cmds = append(cmds, m.refreshStatus())
	}
	m.menu.SetLayout(m.layout.Mode(), len(after.Overflow) > 0)

	if m.content.Path() != "" && m.contentWidth() != m.lastRenderWidth {
		m.lastRenderWidth = m.contentWidth()
		cmds = append(cmds, m.content.Rerender())
	}
	return tea.Batch(cmds...)
}

func (m *home) handleQuit() (tea.Model, tea.Cmd) {
	log.InfoLog.Printf("session %s ended", m.session)
	return m, tea.Quit
}

func (m *home) View() string {
	if m.termWidth == 0 || m.termHeight == 0 {
		return ""
	}
	mode := m.layout.Mode()

	header := m.statusBar.String()
	if mode == nav.ModeTopBar {
		header = m.topBar.String()
	}
	column := []string{header, m.content.String()}
	if m.historyPane.Visible() {
		column = append(column, m.historyPane.String())
	}
	mainView := lipgloss.JoinVertical(lipgloss.Left, column...)

	offsetX := 0
	if m.layout.SidebarOpen() {
		mainView = lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar.String(), mainView)
		offsetX = m.sidebar.Width()
	}
	result := lipgloss.JoinVertical(lipgloss.Left, mainView, m.menu.String())

	// Dropdown panels are positioned relative to the bar, which starts right
	// of the sidebar.
	if mode == nav.ModeTopBar {
		for _, o := range m.topBar.Overlays() {
			result = overlay.PlaceOverlay(o.X+offsetX, o.Y, o.Content, result, false)
		}
	}

	if m.state == stateHelp {
		if m.textOverlay == nil {
			log.ErrorLog.Printf("text overlay is nil")
		} else {
			result = overlay.PlaceOverlay(0, 0, m.textOverlay.Render(), result, true)
		}
	}

	if toastView := m.toastManager.View(); toastView != "" {
		x, y := m.toastManager.GetPosition()
		result = overlay.PlaceOverlay(x, y, toastView, result, false)
	}

	// Process bubblezone markers before rendering is complete
	// (zone markers inflate lipgloss.Width if left in place).
	result = zone.Scan(result)

	// Height-fill for bubbletea's alt-screen renderer.
	result = ui.FillBackground(result, m.termHeight)

	return result
}

type keyupMsg struct{}

// navigationLoadedMsg delivers an async navigation reload back to Update.
type navigationLoadedMsg struct {
	entries []nav.Entry
	err     error
}

func (m *home) toastTickCmd() tea.Cmd {
	return func() tea.Msg {
		time.Sleep(50 * time.Millisecond)
		return overlay.ToastTickMsg{}
	}
}
