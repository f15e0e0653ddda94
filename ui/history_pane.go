package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// HistoryEventDisplay is a pre-formatted navigation event for rendering in
// the history pane.
type HistoryEventDisplay struct {
	Time    string         // formatted as "HH:MM"
	Kind    string         // event kind string (e.g. "route_opened")
	Icon    string         // single-char icon
	Message string         // human-readable message
	Color   lipgloss.Color // icon color
	Level   string         // "info", "warn", "error"
}

// HistoryPane renders a scrollable list of recent navigation events.
type HistoryPane struct {
	events   []HistoryEventDisplay
	viewport viewport.Model
	width    int
	height   int
	visible  bool
	session  string
}

// NewHistoryPane creates a hidden HistoryPane.
func NewHistoryPane() *HistoryPane {
	return &HistoryPane{viewport: viewport.New(0, 0)}
}

// SetSize updates the pane dimensions and rebuilds the viewport content.
func (p *HistoryPane) SetSize(w, h int) {
	p.width = w
	p.height = h
	// Reserve 1 line for the header.
	p.viewport.Width = w
	p.viewport.Height = max(h-1, 0)
	p.viewport.SetContent(p.renderBody())
}

func (p *HistoryPane) Height() int { return p.height }

// SetEvents replaces the event list and refreshes the viewport.
func (p *HistoryPane) SetEvents(events []HistoryEventDisplay) {
	p.events = events
	p.viewport.SetContent(p.renderBody())
	p.viewport.GotoTop()
}

// SetSession updates the session label shown in the header.
func (p *HistoryPane) SetSession(label string) {
	p.session = label
}

// ScrollDown scrolls the viewport down by n lines.
func (p *HistoryPane) ScrollDown(n int) {
	p.viewport.ScrollDown(n)
}

// ScrollUp scrolls the viewport up by n lines.
func (p *HistoryPane) ScrollUp(n int) {
	p.viewport.ScrollUp(n)
}

func (p *HistoryPane) Visible() bool {
	return p.visible
}

func (p *HistoryPane) ToggleVisible() {
	p.visible = !p.visible
}

var (
	historyHeaderStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	historyTimeStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
	historyMsgStyle    = lipgloss.NewStyle().Foreground(ColorText)
	historyWarnStyle   = lipgloss.NewStyle().Foreground(ColorGold)
	historyErrorStyle  = lipgloss.NewStyle().Foreground(ColorLove)
	historyEmptyStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
)

// String renders the pane: a 1-line header + scrollable body.
func (p *HistoryPane) String() string {
	return lipgloss.JoinVertical(lipgloss.Left, p.renderHeader(), p.viewport.View())
}

func (p *HistoryPane) renderHeader() string {
	left := "── history ──"
	right := p.session
	if right == "" {
		right = "all sessions"
	}
	gap := max(p.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return historyHeaderStyle.Render(left + strings.Repeat(" ", gap) + right)
}

func (p *HistoryPane) renderBody() string {
	if len(p.events) == 0 {
		return historyEmptyStyle.Render("· no events")
	}

	lines := make([]string, 0, len(p.events))
	for _, e := range p.events {
		msgStyle := historyMsgStyle
		switch e.Level {
		case "warn":
			msgStyle = historyWarnStyle
		case "error":
			msgStyle = historyErrorStyle
		}
		icon := lipgloss.NewStyle().Foreground(e.Color).Render(e.Icon)
		prefix := historyTimeStyle.Render(e.Time) + " " + icon + " "
		msg := e.Message
		if room := p.width - lipgloss.Width(prefix); room > 0 {
			msg = ansi.Truncate(msg, room, "…")
		}
		lines = append(lines, prefix+msgStyle.Render(msg))
	}
	return strings.Join(lines, "\n")
}

// EventKindIcon returns the icon and color for a given event kind string.
// Used by the app layer when building HistoryEventDisplay values.
func EventKindIcon(kind string) (icon string, color lipgloss.Color) {
	switch kind {
	case "route_opened":
		return "→", ColorFoam
	case "layout_changed":
		return "⇄", ColorIris
	case "sidebar_toggled":
		return "▌", ColorSubtle
	case "overflow_recomputed":
		return "⋯", ColorGold
	case "navigation_reloaded":
		return "⟳", ColorFoam
	case "error":
		return "!", ColorLove
	default:
		return "·", ColorMuted
	}
}
