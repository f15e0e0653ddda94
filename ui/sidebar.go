package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kastheco/chartdesk/nav"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"
)

// SidebarWidth is the rendered width of the sidebar including its border.
const SidebarWidth = 28

const sidebarCloseGlyph = "✕"

// sidebarBorderStyle wraps the entire sidebar content in a subtle rounded border
var sidebarBorderStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorOverlay).
	Padding(0, 1)

var sidebarFocusedBorderStyle = sidebarBorderStyle.
	BorderForeground(ColorIris)

var sidebarItemStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Foreground(ColorText)

// sidebarSelectedStyle is used when focused: iris bg on dark base
var sidebarSelectedStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Background(ColorIris).
	Foreground(ColorBase)

// sidebarCursorStyle is used when unfocused: muted overlay bg
var sidebarCursorStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Background(ColorOverlay).
	Foreground(ColorText)

var sidebarActiveStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Foreground(ColorIris).
	Bold(true)

var sidebarSubStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Foreground(ColorSubtle)

var sidebarCloseStyle = lipgloss.NewStyle().Foreground(ColorMuted)

var sidebarCloseHoverStyle = lipgloss.NewStyle().Foreground(ColorLove)

var sidebarFooterStyle = lipgloss.NewStyle().Foreground(ColorMuted)

// sidebarRow is one rendered line of the entry tree. sub is -1 for a
// top-level entry row.
type sidebarRow struct {
	entry string
	sub   int
	label string
	path  string
}

// Sidebar is the vertical navigation panel. It lists every entry with no
// overflow, expanding the entries the user opened and the one owning the
// active route.
type Sidebar struct {
	entries       []nav.Entry
	rows          []sidebarRow
	expanded      map[string]bool
	selectedIdx   int
	scrollOffset  int
	hoveredIdx    int
	closeHovered  bool
	height, width int
	focused       bool
	active        string
}

func NewSidebar(entries []nav.Entry) *Sidebar {
	s := &Sidebar{
		entries:    entries,
		expanded:   make(map[string]bool),
		hoveredIdx: -1,
		width:      SidebarWidth,
	}
	s.rebuildRows()
	return s
}

func (s *Sidebar) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.clampScroll()
}

func (s *Sidebar) Width() int { return s.width }

// SetEntries replaces the entry list, keeping the selection on the same
// entry when it still exists.
func (s *Sidebar) SetEntries(entries []nav.Entry) {
	selected := ""
	if s.selectedIdx < len(s.rows) {
		selected = s.rows[s.selectedIdx].entry
	}
	s.entries = entries
	s.rebuildRows()
	s.selectedIdx = 0
	for i, r := range s.rows {
		if r.entry == selected && r.sub < 0 {
			s.selectedIdx = i
			break
		}
	}
	s.clampScroll()
}

// SetActive marks route as the open page and expands its owning entry.
func (s *Sidebar) SetActive(route string) {
	s.active = route
	if e, sub, ok := nav.Resolve(s.entries, route); ok && sub.Path != "" {
		s.expanded[e.Name] = true
	}
	s.rebuildRows()
}

func (s *Sidebar) SetFocused(focused bool) {
	s.focused = focused
}

func (s *Sidebar) IsFocused() bool {
	return s.focused
}

func (s *Sidebar) GetSelectedIdx() int {
	return s.selectedIdx
}

// availRows returns the number of entry rows that fit. The border takes two
// lines, the header and footer two each.
func (s *Sidebar) availRows() int {
	const chrome = 6
	return max(s.height-chrome, 1)
}

func (s *Sidebar) clampScroll() {
	if len(s.rows) == 0 {
		s.selectedIdx = 0
		s.scrollOffset = 0
		return
	}
	s.selectedIdx = min(max(s.selectedIdx, 0), len(s.rows)-1)
	avail := s.availRows()
	if s.selectedIdx < s.scrollOffset {
		s.scrollOffset = s.selectedIdx
	}
	if s.selectedIdx >= s.scrollOffset+avail {
		s.scrollOffset = s.selectedIdx - avail + 1
	}
	if s.scrollOffset < 0 {
		s.scrollOffset = 0
	}
}

func (s *Sidebar) rebuildRows() {
	s.rows = s.rows[:0]
	for _, e := range s.entries {
		s.rows = append(s.rows, sidebarRow{entry: e.Name, sub: -1, label: e.Label(), path: e.Path})
		if !e.HasDropdown || !s.expanded[e.Name] {
			continue
		}
		for i, item := range nav.DropdownItems(e) {
			s.rows = append(s.rows, sidebarRow{entry: e.Name, sub: i, label: subEntryLabel(item), path: item.Path})
		}
	}
	s.clampScroll()
}

func (s *Sidebar) Up() {
	if s.selectedIdx > 0 {
		s.selectedIdx--
	}
	s.clampScroll()
}

func (s *Sidebar) Down() {
	if s.selectedIdx < len(s.rows)-1 {
		s.selectedIdx++
	}
	s.clampScroll()
}

// Right expands the selected entry's dropdown items.
func (s *Sidebar) Right() {
	if s.selectedIdx >= len(s.rows) {
		return
	}
	row := s.rows[s.selectedIdx]
	e, ok := nav.FindEntry(s.entries, row.entry)
	if !ok || !e.HasDropdown || row.sub >= 0 {
		return
	}
	s.expanded[e.Name] = true
	s.rebuildRows()
}

// Left collapses the selected entry, or moves from a child row to its
// parent.
func (s *Sidebar) Left() {
	if s.selectedIdx >= len(s.rows) {
		return
	}
	row := s.rows[s.selectedIdx]
	if row.sub >= 0 {
		for i := s.selectedIdx; i >= 0; i-- {
			if s.rows[i].entry == row.entry && s.rows[i].sub < 0 {
				s.selectedIdx = i
				break
			}
		}
		s.clampScroll()
		return
	}
	if s.expanded[row.entry] {
		delete(s.expanded, row.entry)
		s.rebuildRows()
	}
}

// Selected returns the route of the selected row.
func (s *Sidebar) Selected() (string, bool) {
	if s.selectedIdx >= len(s.rows) {
		return "", false
	}
	return s.rows[s.selectedIdx].path, true
}

// SidebarClick is the outcome of a click inside the sidebar.
type SidebarClick struct {
	Route        string
	Close        bool
	ToggleLayout bool
}

// Click resolves a press against the rendered zones. Clicking an entry that
// has a dropdown expands it as well as opening its route.
func (s *Sidebar) Click(inBounds func(id string) bool) (SidebarClick, bool) {
	if inBounds(ZoneSidebarClose) {
		return SidebarClick{Close: true}, true
	}
	if inBounds(ZoneLayoutToggle) {
		return SidebarClick{ToggleLayout: true}, true
	}
	for i := range s.rows {
		if !inBounds(SidebarRowZoneID(i)) {
			continue
		}
		row := s.rows[i]
		s.selectedIdx = i
		if row.sub < 0 {
			if e, ok := nav.FindEntry(s.entries, row.entry); ok && e.HasDropdown {
				s.expanded[e.Name] = true
				s.rebuildRows()
			}
		}
		s.clampScroll()
		return SidebarClick{Route: row.path}, true
	}
	return SidebarClick{}, false
}

// SetHovered highlights the row and close glyph under the pointer.
func (s *Sidebar) SetHovered(inBounds func(id string) bool) {
	s.closeHovered = inBounds(ZoneSidebarClose)
	s.hoveredIdx = -1
	for i := range s.rows {
		if inBounds(SidebarRowZoneID(i)) {
			s.hoveredIdx = i
			return
		}
	}
}

func (s *Sidebar) rowStyle(idx int, row sidebarRow) lipgloss.Style {
	switch {
	case idx == s.selectedIdx && s.focused:
		return sidebarSelectedStyle
	case idx == s.selectedIdx || idx == s.hoveredIdx:
		return sidebarCursorStyle
	case row.path == s.active:
		return sidebarActiveStyle
	case row.sub >= 0:
		return sidebarSubStyle
	}
	return sidebarItemStyle
}

func (s *Sidebar) String() string {
	if s.width <= 0 || s.height <= 0 {
		return ""
	}
	borderStyle := sidebarBorderStyle
	if s.focused {
		borderStyle = sidebarFocusedBorderStyle
	}
	// Width excludes the border; the padding is inside it.
	innerWidth := max(s.width-2, 4)
	contentWidth := innerWidth - 2

	closeStyle := sidebarCloseStyle
	if s.closeHovered {
		closeStyle = sidebarCloseHoverStyle
	}
	closeBtn := zone.Mark(ZoneSidebarClose, closeStyle.Render(sidebarCloseGlyph))
	headerGap := max(contentWidth-LogoWidth()-lipgloss.Width(closeBtn), 1)
	header := Logo() + strings.Repeat(" ", headerGap) + closeBtn

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n\n")

	end := min(s.scrollOffset+s.availRows(), len(s.rows))
	for i := s.scrollOffset; i < end; i++ {
		row := s.rows[i]
		label := row.label
		if row.sub >= 0 {
			label = "  " + label
		} else if e, ok := nav.FindEntry(s.entries, row.entry); ok && e.HasDropdown {
			marker := " ▸"
			if s.expanded[row.entry] {
				marker = " ▾"
			}
			label += marker
		}
		// row style padding takes two cells
		if runewidth.StringWidth(label) > contentWidth-2 {
			label = runewidth.Truncate(label, contentWidth-2, "…")
		}
		line := s.rowStyle(i, row).Width(contentWidth).Render(label)
		b.WriteString(zone.Mark(SidebarRowZoneID(i), line))
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	footer := zone.Mark(ZoneLayoutToggle, sidebarFooterStyle.Render("⇄ top bar (L)"))
	topContent := b.String()
	borderHeight := max(s.height-2, 4)
	topLines := strings.Count(topContent, "\n") + 1
	gap := max(borderHeight-topLines, 1)
	inner := topContent + strings.Repeat("\n", gap) + footer

	bordered := borderStyle.Width(innerWidth).Height(borderHeight).Render(inner)
	return FillBackground(bordered, s.height)
}
