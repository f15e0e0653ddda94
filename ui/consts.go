package ui

import "github.com/charmbracelet/lipgloss"

// AppName is the product name shown in the chrome.
const AppName = "chartdesk"

const logoGlyph = "✚"

var logoGlyphStyle = lipgloss.NewStyle().Foreground(ColorLove).Bold(true)

var logoNameStyle = lipgloss.NewStyle().Foreground(ColorIris).Bold(true)

// Logo renders the brand mark used at the left of the top bar and the
// sidebar header.
func Logo() string {
	return logoGlyphStyle.Render(logoGlyph) + " " + logoNameStyle.Render(AppName)
}

// LogoWidth is the rendered width of Logo.
func LogoWidth() int {
	return lipgloss.Width(Logo())
}
