package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

// TextOverlay is a dismissable bordered text box, used for help.
type TextOverlay struct {
	title   string
	content string
	width   int
	// Dismissed is set once the user pressed a key.
	Dismissed bool
}

var textOverlayStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorIris).
	Padding(1, 2)

var textOverlayTitleStyle = lipgloss.NewStyle().
	Foreground(colorIris).
	Bold(true)

var textOverlayHintStyle = lipgloss.NewStyle().Foreground(colorMuted)

func NewTextOverlay(title, content string) *TextOverlay {
	return &TextOverlay{title: title, content: content, width: 60}
}

// SetWidth sets the outer width of the box.
func (t *TextOverlay) SetWidth(width int) {
	t.width = width
}

// HandleKeyPress dismisses the overlay on any key. It returns true when the
// overlay should close.
func (t *TextOverlay) HandleKeyPress(msg tea.KeyMsg) bool {
	t.Dismissed = true
	return true
}

func (t *TextOverlay) Render() string {
	// border 2 + padding 4
	inner := max(t.width-6, 10)
	var b strings.Builder
	if t.title != "" {
		b.WriteString(textOverlayTitleStyle.Render(t.title))
		b.WriteString("\n\n")
	}
	b.WriteString(wordwrap.String(t.content, inner))
	b.WriteString("\n\n")
	b.WriteString(textOverlayHintStyle.Render("press any key to close"))
	return textOverlayStyle.Width(inner + 4).Render(b.String())
}
