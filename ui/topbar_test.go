package ui

import (
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/kastheco/chartdesk/keys"
	"github.com/kastheco/chartdesk/nav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

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

// narrowWidth fits exactly the first test entry.
func narrowWidth() int {
	first := testEntries()[0]
	return LogoWidth() + 1 + moreButtonWidth() + 1 + barPadding + TabMeasurer{}.Width(first) + tabSpacing
}

// in returns a hit predicate that is true for the given zone ids.
func in(ids ...string) func(string) bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return func(id string) bool { return set[id] }
}

func settle(tb *TopBar) bool {
	return tb.HandleRecompute(RecomputeMsg{Seq: tb.debounce.Pending()})
}

func newSizedBar(t *testing.T, width int, grace time.Duration) *TopBar {
	t.Helper()
	tb := NewTopBar(testEntries(), time.Millisecond, grace)
	require.NotNil(t, tb.SetSize(width))
	require.True(t, settle(tb))
	_ = tb.String()
	return tb
}

func names(entries []nav.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestTopBar_NothingBeforeFirstSize(t *testing.T) {
	tb := NewTopBar(testEntries(), time.Millisecond, 0)
	_, ok := tb.Partition()
	assert.False(t, ok)
	assert.Empty(t, tb.String())

	tb.SetSize(0)
	_, ok = tb.Partition()
	assert.False(t, ok, "unmeasured container skips the cycle")
}

func TestTopBar_FirstSizeComputesImmediately(t *testing.T) {
	tb := NewTopBar(testEntries(), time.Millisecond, 0)
	cmd := tb.SetSize(200)
	require.NotNil(t, cmd, "a debounced recompute follows the estimate")

	p, ok := tb.Partition()
	require.True(t, ok)
	assert.Len(t, p.Visible, 4)
	assert.Empty(t, p.Overflow)
}

func TestTopBar_WideRendersAllTabs(t *testing.T) {
	tb := newSizedBar(t, 200, 0)
	out := tb.String()

	assert.Equal(t, 200, lipgloss.Width(out))
	plain := ansi.Strip(out)
	assert.Contains(t, plain, "Patients ▾")
	assert.Contains(t, plain, "Reports")
	assert.NotContains(t, plain, "More")
}

func TestTopBar_NarrowOverflows(t *testing.T) {
	w := narrowWidth()
	tb := newSizedBar(t, w, 0)

	p, _ := tb.Partition()
	assert.Equal(t, []string{"Patients"}, names(p.Visible))
	assert.Equal(t, []string{"Vitals", "CRM", "Reports"}, names(p.Overflow))

	out := tb.String()
	assert.Equal(t, w, lipgloss.Width(out))
	assert.Contains(t, ansi.Strip(out), "More")
}

func TestTopBar_SupersededRecomputeDropped(t *testing.T) {
	tb := NewTopBar(testEntries(), time.Millisecond, 0)
	tb.SetSize(200)
	stale := tb.debounce.Pending()
	tb.SetSize(narrowWidth())

	assert.False(t, tb.HandleRecompute(RecomputeMsg{Seq: stale}))
	assert.True(t, settle(tb))
	p, _ := tb.Partition()
	assert.Len(t, p.Visible, 1)
}

func TestTopBar_HoverOpensPanelUnderTab(t *testing.T) {
	tb := newSizedBar(t, 200, 0)

	assert.Nil(t, tb.Hover(in(NavTabZoneID("Patients"))))
	assert.Equal(t, "Patients", tb.HoverState().Primary)

	ov := tb.Overlays()
	require.Len(t, ov, 1)
	assert.Equal(t, 1+LogoWidth()+1, ov[0].X)
	assert.Equal(t, 1, ov[0].Y)
	assert.Contains(t, ansi.Strip(ov[0].Content), "Register Patient")
}

func TestTopBar_HoverGraceCloses(t *testing.T) {
	tb := newSizedBar(t, 200, 5*time.Millisecond)
	tb.Hover(in(NavTabZoneID("Patients")))

	cmd := tb.Hover(in())
	require.NotNil(t, cmd)
	assert.Equal(t, "Patients", tb.HoverState().Primary, "still open during grace")

	msg, ok := cmd().(HoverCloseMsg)
	require.True(t, ok)
	assert.True(t, tb.HandleHoverClose(msg))
	assert.True(t, tb.HoverState().Closed())
}

func TestTopBar_HoverIntoPanelCancelsClose(t *testing.T) {
	tb := newSizedBar(t, 200, 5*time.Millisecond)
	tb.Hover(in(NavTabZoneID("Patients")))
	cmd := tb.Hover(in())
	require.NotNil(t, cmd)

	tb.Hover(in(NavPanelZoneID("Patients"), NavItemZoneID("Patients", 1)))
	assert.Equal(t, 1, tb.row)

	msg := cmd().(HoverCloseMsg)
	assert.False(t, tb.HandleHoverClose(msg))
	assert.Equal(t, "Patients", tb.HoverState().Primary)
}

func TestTopBar_MoreMenuSubmenuClick(t *testing.T) {
	tb := newSizedBar(t, narrowWidth(), 0)

	tb.Hover(in(ZoneNavMore))
	assert.True(t, tb.HoverState().MoreOpen)

	tb.Hover(in(ZoneMorePanel, MoreRowZoneID("CRM")))
	assert.Equal(t, nav.HoverState{MoreOpen: true, Sub: "CRM"}, tb.HoverState())
	assert.Equal(t, 1, tb.row)

	ov := tb.Overlays()
	require.Len(t, ov, 2)
	// CRM is the second more-menu row, one line below the panel's top border.
	assert.Equal(t, ov[0].Y+1+1, ov[1].Y, "submenu aligns with its row")
	assert.Equal(t, 3, ov[1].Y)
	assert.Contains(t, ansi.Strip(ov[1].Content), "Add New CRM")

	route, ok := tb.Click(in(SubPanelZoneID("CRM"), SubItemZoneID("CRM", 1)))
	require.True(t, ok)
	assert.Equal(t, "/crm/new", route)
	assert.True(t, tb.HoverState().Closed())
	assert.Equal(t, "/crm/new", tb.Active())
}

func TestTopBar_Click(t *testing.T) {
	tb := newSizedBar(t, narrowWidth(), 0)

	route, ok := tb.Click(in(NavTabZoneID("Patients")))
	assert.True(t, ok)
	assert.Equal(t, "/patients", route)

	_, ok = tb.Click(in(ZoneNavMore))
	assert.False(t, ok)
	assert.True(t, tb.HoverState().MoreOpen)
	tb.Click(in(ZoneNavMore))
	assert.True(t, tb.HoverState().MoreOpen, "clicking More only opens it")

	_, ok = tb.Click(in(ZoneMorePanel, MoreRowZoneID("CRM")))
	assert.False(t, ok)
	assert.Equal(t, "CRM", tb.HoverState().Sub)

	route, ok = tb.Click(in(ZoneMorePanel, MoreRowZoneID("Vitals")))
	assert.True(t, ok)
	assert.Equal(t, "/vitals", route)
	assert.True(t, tb.HoverState().Closed())

	_, ok = tb.Click(in())
	assert.False(t, ok)
}

func TestTopBar_RecomputeClosesOverflowedDropdown(t *testing.T) {
	tb := newSizedBar(t, 200, 0)
	tb.Hover(in(NavTabZoneID("CRM")))
	require.Equal(t, "CRM", tb.HoverState().Primary)

	tb.SetSize(narrowWidth())
	require.True(t, settle(tb))
	assert.True(t, tb.HoverState().Closed())
}

func TestTopBar_KeyboardEntryDropdown(t *testing.T) {
	tb := newSizedBar(t, 200, 0)

	_, handled := tb.HandleKey(keys.KeyDown)
	assert.False(t, handled, "unfocused bar ignores keys")

	tb.SetFocused(true)
	tb.HandleKey(keys.KeyDown)
	assert.Equal(t, "Patients", tb.HoverState().Primary)
	assert.Equal(t, 0, tb.row)

	tb.HandleKey(keys.KeyDown)
	route, handled := tb.HandleKey(keys.KeyEnter)
	assert.True(t, handled)
	assert.Equal(t, "/patients/new", route)

	tb.HandleKey(keys.KeyRight)
	route, _ = tb.HandleKey(keys.KeyEnter)
	assert.Equal(t, "/vitals", route)

	tb.HandleKey(keys.KeyDown)
	assert.True(t, tb.HoverState().Closed(), "down on a tab without dropdown opens nothing")
}

func TestTopBar_KeyboardMoreMenu(t *testing.T) {
	tb := newSizedBar(t, narrowWidth(), 0)
	tb.SetFocused(true)

	tb.HandleKey(keys.KeyMore)
	assert.True(t, tb.HoverState().MoreOpen)
	assert.Equal(t, 0, tb.row)

	tb.HandleKey(keys.KeyDown)
	tb.HandleKey(keys.KeyRight)
	assert.Equal(t, "CRM", tb.HoverState().Sub)

	_, handled := tb.HandleKey(keys.KeyEsc)
	assert.True(t, handled)
	assert.Equal(t, nav.HoverState{MoreOpen: true}, tb.HoverState())

	tb.HandleKey(keys.KeyEnter)
	assert.Equal(t, "CRM", tb.HoverState().Sub, "enter on a dropdown row opens its submenu")
	route, _ := tb.HandleKey(keys.KeyEnter)
	assert.Equal(t, "/crm", route)

	tb.HandleKey(keys.KeyMore)
	tb.HandleKey(keys.KeyMore)
	assert.True(t, tb.HoverState().Closed())
	_, handled = tb.HandleKey(keys.KeyEsc)
	assert.False(t, handled)
}

func TestTopBar_MoreKeyWithoutOverflow(t *testing.T) {
	tb := newSizedBar(t, 200, 0)
	tb.SetFocused(true)
	_, handled := tb.HandleKey(keys.KeyMore)
	assert.False(t, handled)
}

func TestTopBar_SetRightTextOnlyOnChange(t *testing.T) {
	tb := newSizedBar(t, 200, 0)
	assert.NotNil(t, tb.SetRightText("Dr. Osei"))
	assert.Nil(t, tb.SetRightText("Dr. Osei"))
	assert.Contains(t, ansi.Strip(tb.String()), "Dr. Osei")
}

func TestTopBar_SetEntriesClosesDropdowns(t *testing.T) {
	tb := newSizedBar(t, 200, 0)
	tb.Hover(in(NavTabZoneID("Patients")))

	cmd := tb.SetEntries(testEntries()[1:])
	assert.NotNil(t, cmd)
	assert.True(t, tb.HoverState().Closed())
	require.True(t, settle(tb))
	p, _ := tb.Partition()
	assert.Equal(t, []string{"Vitals", "CRM", "Reports"}, names(p.Visible))
}

func TestTabMeasurer_MatchesRender(t *testing.T) {
	e := nav.Entry{Name: "Patients", HasDropdown: true}
	assert.Equal(t, lipgloss.Width(renderTab(e, tabState{active: true, focused: true})), TabMeasurer{}.Width(e))
	assert.Equal(t, len("Patients ▾")-2+tabPadding, TabMeasurer{}.Width(e))
}
