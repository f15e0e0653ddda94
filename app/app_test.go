package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/kastheco/chartdesk/config"
	"github.com/kastheco/chartdesk/config/history"
	"github.com/kastheco/chartdesk/log"
	"github.com/kastheco/chartdesk/nav"
	"github.com/kastheco/chartdesk/ui"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMain runs before all tests to set up the test environment
func TestMain(m *testing.M) {
	log.Initialize(false)
	defer log.Close()
	zone.NewGlobal()

	exitCode := m.Run()
	os.Exit(exitCode)
}

func testEntries() []nav.Entry {
	return []nav.Entry{
		{Name: "Patients", Path: "/patients", HasDropdown: true, SubItems: []nav.SubEntry{
			{Name: "Patient List", Path: "/patients"},
			{Name: "Register Patient", Path: "/patients/new"},
		}},
		{Name: "Vitals", Path: "/vitals"},
		{Name: "CRM", Path: "/crm", HasDropdown: true},
		{Name: "Reports", Path: "/reports"},
	}
}

type testHome struct {
	*home
	hist    *history.SQLiteLogger
	navPath string
}

func newTestHome(t *testing.T, layout nav.LayoutMode) *testHome {
	t.Helper()
	hist, err := history.NewSQLiteLogger(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = hist.Close() })

	cfg := config.DefaultConfig()
	cfg.ResizeDebounceMs = 1
	navPath := filepath.Join(t.TempDir(), config.NavigationFileName)
	m := newHome(context.Background(), cfg, testEntries(), navPath, layout, hist)
	return &testHome{home: m, hist: hist, navPath: navPath}
}

// drain runs cmd and every command it batches, returning the messages they
// produce.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// settle feeds the recompute and page messages cmd produces back into the
// model until nothing more is scheduled.
func settle(m *home, cmd tea.Cmd) {
	for i := 0; i < 5 && cmd != nil; i++ {
		var next []tea.Cmd
		for _, msg := range drain(cmd) {
			switch msg.(type) {
			case ui.RecomputeMsg, ui.PageRenderedMsg, navigationLoadedMsg:
				_, c := m.Update(msg)
				next = append(next, c)
			}
		}
		cmd = tea.Batch(next...)
	}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press delivers a key past the menu highlighting round trip.
func press(m *home, s string) tea.Cmd {
	m.keySent = true
	_, cmd := m.Update(keyMsg(s))
	return cmd
}

func resize(m *home, w, h int) {
	_, cmd := m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	settle(m, cmd)
}

func in(ids ...string) func(string) bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return func(id string) bool { return set[id] }
}

func leftClick() tea.MouseMsg {
	return tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func motion() tea.MouseMsg {
	return tea.MouseMsg{Action: tea.MouseActionMotion, Button: tea.MouseButtonNone}
}

func kinds(t *testing.T, th *testHome, kind history.EventKind) []history.Event {
	t.Helper()
	events, err := th.hist.Query(history.QueryFilter{Session: th.session, Kinds: []history.EventKind{kind}})
	require.NoError(t, err)
	return events
}

func TestNewHome_SidebarCoupledToLayout(t *testing.T) {
	side := newTestHome(t, nav.ModeSidebar)
	assert.True(t, side.layout.SidebarOpen())
	assert.True(t, side.sidebar.IsFocused())
	assert.False(t, side.topBar.Focused())

	top := newTestHome(t, nav.ModeTopBar)
	assert.False(t, top.layout.SidebarOpen())
	assert.True(t, top.topBar.Focused())
	assert.False(t, top.sidebar.IsFocused())
}

func TestToggleLayout_SwitchesShellAndRecords(t *testing.T) {
	th := newTestHome(t, nav.ModeSidebar)
	resize(th.home, 160, 40)

	settle(th.home, press(th.home, "L"))

	assert.Equal(t, nav.ModeTopBar, th.layout.Mode())
	assert.False(t, th.layout.SidebarOpen())
	assert.True(t, th.topBar.Focused())
	assert.Equal(t, 160, th.topBar.Width())

	changed := kinds(t, th, history.EventLayoutChanged)
	require.Len(t, changed, 1)
	assert.Equal(t, "topbar", changed[0].Layout)
	assert.Len(t, kinds(t, th, history.EventSidebarToggled), 1)

	settle(th.home, press(th.home, "L"))
	assert.Equal(t, nav.ModeSidebar, th.layout.Mode())
	assert.True(t, th.layout.SidebarOpen())
}

func TestToggleSidebar_IndependentOfMode(t *testing.T) {
	th := newTestHome(t, nav.ModeTopBar)
	resize(th.home, 160, 40)
	require.Equal(t, 160, th.topBar.Width())

	settle(th.home, press(th.home, "ctrl+s"))

	assert.Equal(t, nav.ModeTopBar, th.layout.Mode())
	assert.True(t, th.layout.SidebarOpen())
	assert.Equal(t, 160-ui.SidebarWidth, th.topBar.Width())
	assert.Empty(t, kinds(t, th, history.EventLayoutChanged))
	assert.Len(t, kinds(t, th, history.EventSidebarToggled), 1)
}

func TestResize_NarrowMovesEntriesIntoMore(t *testing.T) {
	th := newTestHome(t, nav.ModeTopBar)
	resize(th.home, 200, 40)

	p, ok := th.topBar.Partition()
	require.True(t, ok)
	assert.Len(t, p.Visible, 4)
	assert.Empty(t, p.Overflow)

	resize(th.home, 40, 40)

	p, _ = th.topBar.Partition()
	assert.NotEmpty(t, p.Overflow)
	assert.Len(t, append(p.Visible, p.Overflow...), 4)
	assert.NotEmpty(t, kinds(t, th, history.EventOverflowRecomputed))
}

func TestNavigate_UpdatesSurfacesAndHistory(t *testing.T) {
	th := newTestHome(t, nav.ModeTopBar)
	resize(th.home, 160, 40)

	settle(th.home, th.navigate("/patients/new"))

	assert.Equal(t, "/patients/new", th.content.Path())
	assert.Equal(t, "/patients/new", th.topBar.Active())
	assert.True(t, th.content.Rendered())

	opened := kinds(t, th, history.EventRouteOpened)
	require.Len(t, opened, 1)
	assert.Equal(t, "Patients", opened[0].Entry)
	assert.Equal(t, "/patients/new", opened[0].Route)
}

func TestMouse_HoverOpensDropdownAndClickOutsideCloses(t *testing.T) {
	th := newTestHome(t, nav.ModeTopBar)
	resize(th.home, 160, 40)

	cmd := th.handlePointer(motion(), in(ui.NavTabZoneID("Patients")))
	assert.Nil(t, cmd)
	assert.Equal(t, "Patients", th.topBar.HoverState().Primary)
	assert.Contains(t, ansi.Strip(th.View()), "Register Patient")

	th.handlePointer(leftClick(), in(ui.ZoneContent))
	assert.True(t, th.topBar.HoverState().Closed())
	assert.Equal(t, focusContent, th.focus)
}

func TestMouse_ClickTabNavigates(t *testing.T) {
	th := newTestHome(t, nav.ModeTopBar)
	resize(th.home, 160, 40)

	settle(th.home, th.handlePointer(leftClick(), in(ui.NavTabZoneID("Vitals"))))

	assert.Equal(t, "/vitals", th.content.Path())
	assert.Equal(t, focusNav, th.focus)
}

func TestMouse_SidebarDrawerClosesAfterPick(t *testing.T) {
	th := newTestHome(t, nav.ModeTopBar)
	resize(th.home, 160, 40)
	settle(th.home, press(th.home, "ctrl+s"))
	require.True(t, th.layout.SidebarOpen())

	settle(th.home, th.handlePointer(leftClick(), in(ui.SidebarRowZoneID(1))))

	assert.Equal(t, "/vitals", th.content.Path())
	assert.False(t, th.layout.SidebarOpen())
	assert.Equal(t, nav.ModeTopBar, th.layout.Mode())
}

func TestMouse_SidebarLayoutToggle(t *testing.T) {
	th := newTestHome(t, nav.ModeSidebar)
	resize(th.home, 160, 40)

	settle(th.home, th.handlePointer(leftClick(), in(ui.ZoneLayoutToggle)))

	assert.Equal(t, nav.ModeTopBar, th.layout.Mode())
	assert.False(t, th.layout.SidebarOpen())
}

func TestKeys_EscClosesSidebarOverTopBar(t *testing.T) {
	th := newTestHome(t, nav.ModeTopBar)
	resize(th.home, 160, 40)
	settle(th.home, press(th.home, "ctrl+s"))
	require.True(t, th.layout.SidebarOpen())

	settle(th.home, press(th.home, "esc"))

	assert.False(t, th.layout.SidebarOpen())
}

func TestKeys_SidebarSelectionOpensRoute(t *testing.T) {
	th := newTestHome(t, nav.ModeSidebar)
	resize(th.home, 160, 40)

	press(th.home, "down")
	settle(th.home, press(th.home, "enter"))

	assert.Equal(t, "/vitals", th.content.Path())
}

func TestKeys_TopBarEnterOpensFocusedEntry(t *testing.T) {
	th := newTestHome(t, nav.ModeTopBar)
	resize(th.home, 160, 40)

	press(th.home, "right")
	settle(th.home, press(th.home, "enter"))

	assert.Equal(t, "/vitals", th.content.Path())
}

func TestKeys_TabSwitchesFocus(t *testing.T) {
	th := newTestHome(t, nav.ModeTopBar)

	press(th.home, "tab")
	assert.Equal(t, focusContent, th.focus)
	assert.False(t, th.topBar.Focused())

	press(th.home, "tab")
	assert.Equal(t, focusNav, th.focus)
	assert.True(t, th.topBar.Focused())
}

func TestKeys_MenuHighlightResendsKey(t *testing.T) {
	th := newTestHome(t, nav.ModeTopBar)

	_, cmd := th.Update(keyMsg("L"))

	assert.NotNil(t, cmd)
	assert.True(t, th.keySent)
	// The layout only changes once the re-sent key arrives.
	assert.Equal(t, nav.ModeTopBar, th.layout.Mode())
}

func TestReload_SwapsEntries(t *testing.T) {
	th := newTestHome(t, nav.ModeTopBar)
	resize(th.home, 160, 40)
	settle(th.home, th.navigate("/crm"))

	reloaded := []nav.Entry{
		{Name: "Scheduling", Path: "/schedule"},
		{Name: "Billing", Path: "/billing"},
	}
	require.NoError(t, config.SaveNavigationTo(reloaded, th.navPath))

	settle(th.home, press(th.home, "r"))

	assert.Equal(t, []string{"Scheduling", "Billing"}, entryNames(th.topBar.Entries()))
	assert.Empty(t, th.reloadToastID)
	// /crm is gone, so the first entry opens.
	assert.Equal(t, "/schedule", th.content.Path())
	assert.Len(t, kinds(t, th, history.EventNavigationReloaded), 1)
}

func TestReload_InvalidFileKeepsEntries(t *testing.T) {
	th := newTestHome(t, nav.ModeTopBar)
	resize(th.home, 160, 40)
	require.NoError(t, os.WriteFile(th.navPath, []byte("[[entries]]\nname = \"Broken\"\n"), 0o644))

	settle(th.home, press(th.home, "r"))

	assert.Len(t, th.topBar.Entries(), 4)
	assert.Len(t, kinds(t, th, history.EventError), 1)
}

func TestYank_CopiesRoute(t *testing.T) {
	var copied string
	orig := writeClipboard
	writeClipboard = func(s string) error {
		copied = s
		return nil
	}
	t.Cleanup(func() { writeClipboard = orig })

	th := newTestHome(t, nav.ModeTopBar)
	th.navigate("/reports")
	press(th.home, "y")

	assert.Equal(t, "/reports", copied)
	assert.True(t, th.toastManager.HasActiveToasts())
}

func TestHistoryPane_ToggleShrinksContent(t *testing.T) {
	th := newTestHome(t, nav.ModeTopBar)
	resize(th.home, 160, 40)
	th.navigate("/vitals")

	press(th.home, "H")

	assert.True(t, th.historyPane.Visible())
	assert.Equal(t, historyPaneHeight, th.historyPane.Height())
	view := ansi.Strip(th.View())
	assert.Contains(t, view, "opened /vitals")
}

func TestHelp_AnyKeyDismisses(t *testing.T) {
	th := newTestHome(t, nav.ModeTopBar)
	resize(th.home, 160, 40)

	press(th.home, "?")
	require.Equal(t, stateHelp, th.state)
	assert.Contains(t, ansi.Strip(th.View()), "more menu")

	th.Update(keyMsg("x"))
	assert.Equal(t, stateDefault, th.state)
	assert.Nil(t, th.textOverlay)
}

func TestView_FillsTerminal(t *testing.T) {
	th := newTestHome(t, nav.ModeTopBar)
	resize(th.home, 120, 30)

	view := th.View()
	lines := strings.Split(view, "\n")
	assert.GreaterOrEqual(t, len(lines), 30)
	assert.Contains(t, ansi.Strip(lines[0]), ui.AppName)
}

func entryNames(entries []nav.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}
