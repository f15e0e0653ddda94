package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// StatusBarData holds the contextual information displayed in the status bar.
type StatusBarData struct {
	Layout  string
	Route   string
	Session string // short session id, empty hides it
	// Overflow is the number of entries in the More menu, shown only in the
	// top-bar layout.
	Overflow int
}

// StatusBar is the single-line bar shown above the page in sidebar mode and
// below the top bar's right edge as text.
type StatusBar struct {
	width int
	data  StatusBarData
}

// NewStatusBar creates a new StatusBar.
func NewStatusBar() *StatusBar {
	return &StatusBar{}
}

// SetSize sets the terminal width for the status bar.
func (s *StatusBar) SetSize(width int) {
	s.width = width
}

// SetData updates the status bar content.
func (s *StatusBar) SetData(data StatusBarData) {
	s.data = data
}

var statusBarStyle = lipgloss.NewStyle().
	Background(ColorSurface).
	Foreground(ColorText).
	Padding(0, 1)

var statusBarAppNameStyle = lipgloss.NewStyle().
	Foreground(ColorIris).
	Background(ColorSurface).
	Bold(true)

var statusBarSepStyle = lipgloss.NewStyle().
	Foreground(ColorOverlay).
	Background(ColorSurface)

var statusBarLayoutStyle = lipgloss.NewStyle().
	Foreground(ColorFoam).
	Background(ColorSurface)

var statusBarRouteStyle = lipgloss.NewStyle().
	Foreground(ColorText).
	Background(ColorSurface)

var statusBarMutedStyle = lipgloss.NewStyle().
	Foreground(ColorSubtle).
	Background(ColorSurface)

const statusBarSep = " │ "

// parts returns the rendered fields. full adds the layout and overflow
// count, which the top bar itself already shows.
func (s *StatusBar) parts(full bool) []string {
	parts := make([]string, 0, 4)
	if full && s.data.Layout != "" {
		parts = append(parts, statusBarLayoutStyle.Render(s.data.Layout))
	}
	if s.data.Route != "" {
		parts = append(parts, statusBarRouteStyle.Render(s.data.Route))
	}
	if full && s.data.Overflow > 0 {
		parts = append(parts, statusBarMutedStyle.Render(pluralize(s.data.Overflow, "hidden entry", "hidden entries")))
	}
	if s.data.Session != "" {
		parts = append(parts, statusBarMutedStyle.Render("session "+s.data.Session))
	}
	return parts
}

// Compact renders the route and session for the right section of the top
// bar. It leaves out the overflow count, which depends on the space the
// compact text itself takes.
func (s *StatusBar) Compact() string {
	return strings.Join(s.parts(false), statusBarSep)
}

func (s *StatusBar) String() string {
	if s.width < 10 {
		return ""
	}
	parts := append([]string{statusBarAppNameStyle.Render(AppName)}, s.parts(true)...)
	sep := statusBarSepStyle.Render(statusBarSep)
	return statusBarStyle.Width(s.width).MaxHeight(1).Render(strings.Join(parts, sep))
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return strconv.Itoa(n) + " " + many
}
