package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kastheco/chartdesk/ui"
	"github.com/kastheco/chartdesk/ui/overlay"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(ui.ColorFoam)
	keyStyle    = lipgloss.NewStyle().Bold(true).Foreground(ui.ColorGold)
	descStyle   = lipgloss.NewStyle().Foreground(ui.ColorText)
)

func helpContent() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		descStyle.Render("navigation shell for the emr console. entries that do not fit"),
		descStyle.Render("the top bar move into the more menu as the window narrows."),
		"",
		headerStyle.Render("navigation:"),
		keyStyle.Render("←/→")+descStyle.Render("      - previous / next entry"),
		keyStyle.Render("↑/↓")+descStyle.Render("      - move in the open dropdown or sidebar"),
		keyStyle.Render("↵/o")+descStyle.Render("      - open the focused page"),
		keyStyle.Render("m")+descStyle.Render("        - open the more menu"),
		keyStyle.Render("esc")+descStyle.Render("      - close dropdowns, then the sidebar"),
		keyStyle.Render("tab")+descStyle.Render("      - switch focus between navigation and page"),
		"",
		headerStyle.Render("layout:"),
		keyStyle.Render("L")+descStyle.Render("        - switch between sidebar and top bar"),
		keyStyle.Render("ctrl+s")+descStyle.Render("   - show or hide the sidebar"),
		keyStyle.Render("H")+descStyle.Render("        - navigation history"),
		"",
		headerStyle.Render("other:"),
		keyStyle.Render("r")+descStyle.Render("        - reload navigation.toml"),
		keyStyle.Render("y")+descStyle.Render("        - copy the page path"),
		keyStyle.Render("pgup/pgdn")+descStyle.Render(" - scroll the page"),
		keyStyle.Render("q")+descStyle.Render("        - quit"),
	)
}

// showHelpScreen displays the help overlay.
func (m *home) showHelpScreen() (tea.Model, tea.Cmd) {
	m.topBar.CloseDropdowns()
	m.textOverlay = overlay.NewTextOverlay(ui.AppName, helpContent())
	if m.termWidth > 0 {
		m.textOverlay.SetWidth(min(72, m.termWidth-4))
	}
	m.state = stateHelp
	return m, nil
}

// handleHelpState handles key events when in help state
func (m *home) handleHelpState(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key press will close the help overlay
	if m.textOverlay == nil || m.textOverlay.HandleKeyPress(msg) {
		m.state = stateDefault
		m.textOverlay = nil
	}
	return m, nil
}
