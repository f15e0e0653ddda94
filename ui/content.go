package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kastheco/chartdesk/nav"
	zone "github.com/lrstanley/bubblezone"
)

// PageRenderedMsg carries a page rendered off the event loop.
type PageRenderedMsg struct {
	Path     string
	Rendered string
	Err      error
}

var contentBorderStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorOverlay)

var contentFocusedBorderStyle = contentBorderStyle.
	BorderForeground(ColorIris)

var contentPlaceholderStyle = lipgloss.NewStyle().Foreground(ColorMuted)

// ContentPane is the page shell for the routed path. Pages are generated
// from the navigation entry owning the route.
type ContentPane struct {
	viewport      viewport.Model
	entries       []nav.Entry
	path          string
	rendered      bool
	focused       bool
	width, height int
}

func NewContentPane(entries []nav.Entry) *ContentPane {
	return &ContentPane{
		viewport: viewport.New(0, 0),
		entries:  entries,
	}
}

func (c *ContentPane) SetEntries(entries []nav.Entry) {
	c.entries = entries
}

func (c *ContentPane) SetSize(width, height int) {
	c.width = width
	c.height = height
	c.viewport.Width = max(width-2, 0)
	c.viewport.Height = max(height-2, 0)
}

func (c *ContentPane) SetFocused(focused bool) { c.focused = focused }

func (c *ContentPane) Path() string { return c.path }

// Navigate switches to path and returns the command that renders it.
func (c *ContentPane) Navigate(path string) tea.Cmd {
	c.path = path
	c.rendered = false
	c.viewport.SetContent(contentPlaceholderStyle.Render("loading " + path + "…"))
	c.viewport.GotoTop()

	markdown := PageMarkdown(c.entries, path)
	wrap := max(c.viewport.Width-2, 20)
	return func() tea.Msg {
		return renderPage(path, markdown, wrap)
	}
}

// Rerender renders the current page again, e.g. after a resize or reload.
func (c *ContentPane) Rerender() tea.Cmd {
	if c.path == "" {
		return nil
	}
	markdown := PageMarkdown(c.entries, c.path)
	path := c.path
	wrap := max(c.viewport.Width-2, 20)
	return func() tea.Msg {
		return renderPage(path, markdown, wrap)
	}
}

func renderPage(path, markdown string, wrap int) PageRenderedMsg {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return PageRenderedMsg{Path: path, Err: fmt.Errorf("could not create markdown renderer: %w", err)}
	}
	rendered, err := renderer.Render(markdown)
	if err != nil {
		return PageRenderedMsg{Path: path, Err: fmt.Errorf("could not render page %s: %w", path, err)}
	}
	return PageRenderedMsg{Path: path, Rendered: rendered}
}

// HandleRendered shows a rendered page. Pages for a route the user already
// left are dropped.
func (c *ContentPane) HandleRendered(msg PageRenderedMsg) bool {
	if msg.Path != c.path {
		return false
	}
	if msg.Err != nil {
		c.viewport.SetContent(contentPlaceholderStyle.Render(msg.Err.Error()))
		return true
	}
	c.rendered = true
	c.viewport.SetContent(msg.Rendered)
	return true
}

func (c *ContentPane) Rendered() bool { return c.rendered }

func (c *ContentPane) ScrollUp(n int)   { c.viewport.ScrollUp(n) }
func (c *ContentPane) ScrollDown(n int) { c.viewport.ScrollDown(n) }
func (c *ContentPane) PageUp()          { c.viewport.PageUp() }
func (c *ContentPane) PageDown()        { c.viewport.PageDown() }

func (c *ContentPane) String() string {
	if c.width <= 0 || c.height <= 0 {
		return ""
	}
	style := contentBorderStyle
	if c.focused {
		style = contentFocusedBorderStyle
	}
	body := c.viewport.View()
	if c.path == "" {
		body = contentPlaceholderStyle.Render("select a page")
	}
	box := style.Width(c.width - 2).Height(c.height - 2).MaxHeight(c.height).Render(body)
	return zone.Mark(ZoneContent, box)
}

// PageMarkdown builds the page shell for path: the owning entry's title,
// its breadcrumb and the actions its dropdown offers.
func PageMarkdown(entries []nav.Entry, path string) string {
	e, sub, ok := nav.Resolve(entries, path)
	if !ok {
		return fmt.Sprintf("# Page not found\n\nNo navigation entry owns `%s`.\n", path)
	}

	var b strings.Builder
	title := e.Name
	if sub.Name != "" && sub.Path != e.Path {
		title = sub.Name
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	if title != e.Name {
		fmt.Fprintf(&b, "%s › %s\n\n", e.Name, sub.Name)
	}
	fmt.Fprintf(&b, "Route: `%s`\n\n", path)

	if e.HasDropdown {
		b.WriteString("## Actions\n\n")
		for _, item := range nav.DropdownItems(e) {
			fmt.Fprintf(&b, "- %s (`%s`)\n", item.Name, item.Path)
		}
		b.WriteString("\n")
	}
	b.WriteString("Records for this page are served by the console backend.\n")
	return b.String()
}
