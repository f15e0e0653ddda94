package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSidebar_RowsAndExpansion(t *testing.T) {
	s := NewSidebar(testEntries())
	require.Len(t, s.rows, 4, "collapsed entries only")

	s.Right()
	require.Len(t, s.rows, 6, "Patients expands to its two items")
	assert.Equal(t, 0, s.rows[1].sub)

	s.Down()
	route, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, "/patients", route)

	s.Down()
	route, _ = s.Selected()
	assert.Equal(t, "/patients/new", route)

	s.Left()
	assert.Equal(t, 0, s.GetSelectedIdx(), "left on a child moves to its parent")
	s.Left()
	assert.Len(t, s.rows, 4)
}

func TestSidebar_RightIgnoresEntryWithoutDropdown(t *testing.T) {
	s := NewSidebar(testEntries())
	s.Down()
	s.Right()
	assert.Len(t, s.rows, 4)
}

func TestSidebar_SetActiveExpandsOwner(t *testing.T) {
	s := NewSidebar(testEntries())
	s.SetActive("/crm/reports")
	assert.Len(t, s.rows, 7, "CRM shows its synthesized actions")

	s.SetActive("/vitals")
	assert.Len(t, s.rows, 7, "expanded entries stay open")
}

func TestSidebar_Click(t *testing.T) {
	s := NewSidebar(testEntries())

	click, ok := s.Click(in(SidebarRowZoneID(2)))
	require.True(t, ok)
	assert.Equal(t, "/crm", click.Route)
	assert.Equal(t, 2, s.GetSelectedIdx())
	assert.Len(t, s.rows, 7)

	click, ok = s.Click(in(ZoneSidebarClose))
	require.True(t, ok)
	assert.True(t, click.Close)

	click, _ = s.Click(in(ZoneLayoutToggle))
	assert.True(t, click.ToggleLayout)

	_, ok = s.Click(in())
	assert.False(t, ok)
}

func TestSidebar_SetEntriesKeepsSelection(t *testing.T) {
	s := NewSidebar(testEntries())
	s.Down()
	s.Down() // CRM
	s.SetEntries(testEntries()[1:])
	assert.Equal(t, 1, s.GetSelectedIdx())

	s.SetEntries(nil)
	_, ok := s.Selected()
	assert.False(t, ok)
}

func TestSidebar_ScrollKeepsSelectionVisible(t *testing.T) {
	s := NewSidebar(testEntries())
	s.SetSize(SidebarWidth, 8) // two entry rows fit
	s.Down()
	s.Down()
	s.Down()
	assert.Equal(t, 2, s.scrollOffset)

	out := ansi.Strip(s.String())
	assert.Contains(t, out, "Reports")
	assert.NotContains(t, out, "Patients")
}

func TestSidebar_StringFitsSize(t *testing.T) {
	s := NewSidebar(testEntries())
	s.SetSize(SidebarWidth, 20)
	out := s.String()

	assert.Equal(t, SidebarWidth, lipgloss.Width(out))
	assert.Equal(t, 20, lipgloss.Height(out))
	plain := ansi.Strip(out)
	assert.Contains(t, plain, AppName)
	assert.Contains(t, plain, sidebarCloseGlyph)
	assert.Contains(t, plain, "Patients ▸")
}
