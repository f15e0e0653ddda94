package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kastheco/chartdesk/nav"
	zone "github.com/lrstanley/bubblezone"
)

var panelStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorPanelBorder).
	Padding(0, 1)

var panelRowStyle = lipgloss.NewStyle().Foreground(ColorText)

var panelRowSelectedStyle = lipgloss.NewStyle().
	Foreground(ColorBase).
	Background(ColorIris)

var panelRowActiveStyle = lipgloss.NewStyle().
	Foreground(ColorIris).
	Bold(true)

var panelRowOpenStyle = lipgloss.NewStyle().
	Foreground(ColorText).
	Background(ColorNavHover)

const submenuMarker = " ›"

type panelRow struct {
	label  string
	zoneID string
	active bool
	open   bool
}

// renderPanel draws a bordered list. cursor highlights one row, -1 for none.
func renderPanel(zoneID string, rows []panelRow, cursor int) string {
	width := 0
	for _, r := range rows {
		width = max(width, lipgloss.Width(r.label))
	}
	lines := make([]string, len(rows))
	for i, r := range rows {
		style := panelRowStyle
		switch {
		case i == cursor:
			style = panelRowSelectedStyle
		case r.open:
			style = panelRowOpenStyle
		case r.active:
			style = panelRowActiveStyle
		}
		lines[i] = zone.Mark(r.zoneID, style.Width(width).Render(r.label))
	}
	return zone.Mark(zoneID, panelStyle.Render(strings.Join(lines, "\n")))
}

func subEntryLabel(item nav.SubEntry) string {
	if item.Icon == "" {
		return item.Name
	}
	return item.Icon + " " + item.Name
}

// renderEntryPanel draws the dropdown of a visible entry.
func renderEntryPanel(e nav.Entry, cursor int, active string) string {
	items := nav.DropdownItems(e)
	rows := make([]panelRow, len(items))
	for i, item := range items {
		rows[i] = panelRow{
			label:  subEntryLabel(item),
			zoneID: NavItemZoneID(e.Name, i),
			active: item.Path == active,
		}
	}
	return renderPanel(NavPanelZoneID(e.Name), rows, cursor)
}

// renderSubPanel draws the nested submenu of an overflowed entry.
func renderSubPanel(e nav.Entry, cursor int, active string) string {
	items := nav.DropdownItems(e)
	rows := make([]panelRow, len(items))
	for i, item := range items {
		rows[i] = panelRow{
			label:  subEntryLabel(item),
			zoneID: SubItemZoneID(e.Name, i),
			active: item.Path == active,
		}
	}
	return renderPanel(SubPanelZoneID(e.Name), rows, cursor)
}

// renderMorePanel draws the overflow menu. Entries with a dropdown carry a
// submenu marker and the one named sub is shown as open.
func renderMorePanel(overflow []nav.Entry, sub string, cursor int, active string) string {
	rows := make([]panelRow, len(overflow))
	for i, e := range overflow {
		label := e.Label()
		if e.HasDropdown {
			label += submenuMarker
		}
		rows[i] = panelRow{
			label:  label,
			zoneID: MoreRowZoneID(e.Name),
			active: ownsRoute(e, active),
			open:   e.Name == sub,
		}
	}
	return renderPanel(ZoneMorePanel, rows, cursor)
}

// ownsRoute reports whether route is e's own path or one of its dropdown
// destinations.
func ownsRoute(e nav.Entry, route string) bool {
	if route == "" {
		return false
	}
	owner, _, ok := nav.Resolve([]nav.Entry{e}, route)
	return ok && owner.Name == e.Name
}
