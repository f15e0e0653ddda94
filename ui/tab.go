package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/kastheco/chartdesk/nav"
)

// tabPadding is the horizontal padding tabStyle adds around a label.
const tabPadding = 2

const dropdownMarker = " ▾"

var tabStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Foreground(ColorSubtle).
	Background(ColorNavBar)

var tabActiveStyle = tabStyle.
	Foreground(ColorNavActive).
	Bold(true)

var tabOpenStyle = tabStyle.
	Foreground(ColorText).
	Background(ColorNavHover)

var moreButtonStyle = tabStyle.
	Foreground(ColorGold)

type tabState struct {
	active  bool
	open    bool
	focused bool
}

func tabLabel(e nav.Entry) string {
	label := e.Label()
	if e.HasDropdown {
		label += dropdownMarker
	}
	return label
}

func renderTab(e nav.Entry, st tabState) string {
	style := tabStyle
	switch {
	case st.open:
		style = tabOpenStyle
	case st.active:
		style = tabActiveStyle
	}
	if st.focused {
		style = style.Underline(true)
	}
	return style.Render(tabLabel(e))
}

const moreLabel = "⋯ More" + dropdownMarker

func renderMoreButton(open, focused bool) string {
	style := moreButtonStyle
	if open {
		style = tabOpenStyle
	}
	if focused {
		style = style.Underline(true)
	}
	return style.Render(moreLabel)
}

func moreButtonWidth() int {
	return lipgloss.Width(renderMoreButton(false, false))
}

// TabMeasurer measures an entry by rendering its tab the way the top bar
// draws it. Every tab state renders at the same width.
type TabMeasurer struct{}

func (TabMeasurer) Width(e nav.Entry) int {
	return lipgloss.Width(renderTab(e, tabState{}))
}

// EstimatedTabWidths are pre-measured tab widths for the built-in entries.
var EstimatedTabWidths = map[string]int{
	"Dashboard":     13,
	"Patients":      14,
	"Appointments":  18,
	"Medications":   17,
	"Allergies":     15,
	"Insurance":     15,
	"Prescriptions": 19,
	"Vitals":        12,
	"Documents":     15,
	"CRM":           9,
	"Reports":       11,
	"Settings":      12,
}

// NewTabEstimator returns the static estimator used before the first real
// measurement and by headless partitioning.
func NewTabEstimator() *nav.StaticEstimator {
	return nav.NewStaticEstimator(EstimatedTabWidths, tabPadding)
}
