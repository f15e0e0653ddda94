package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/kastheco/chartdesk/keys"
	"github.com/kastheco/chartdesk/log"
	"github.com/kastheco/chartdesk/nav"
	zone "github.com/lrstanley/bubblezone"
)

// RecomputeMsg is delivered when a debounced overflow recompute settles.
type RecomputeMsg struct {
	Seq uint64
}

// HoverCloseMsg is delivered when a dropdown close-grace period ends.
type HoverCloseMsg struct {
	Seq uint64
}

// Overlay is a panel drawn over the view at a cell position.
type Overlay struct {
	Content string
	X, Y    int
}

const (
	tabSpacing  = 1
	barPadding  = 2
	minNavWidth = 8
)

var topBarStyle = lipgloss.NewStyle().Background(ColorNavBar)

var rightTextStyle = lipgloss.NewStyle().
	Foreground(ColorMuted).
	Background(ColorNavBar)

// TopBar is the horizontal navigation bar. It owns the overflow partition
// and the hover state of its dropdowns.
type TopBar struct {
	width     int
	entries   []nav.Entry
	calc      *nav.OverflowCalculator
	hover     *nav.HoverCoordinator
	tracker   *nav.HoverTracker
	debounce  *nav.Debouncer
	measured  bool
	rightText string
	active    string

	// focused is true while the bar holds keyboard focus. focus indexes the
	// visible entries, with len(visible) meaning the More button.
	focused bool
	focus   int
	// row is the cursor in the open panel, subRow in the open submenu.
	row    int
	subRow int

	offsets map[string]int
}

// NewTopBar returns a bar that renders nothing until its first SetSize.
func NewTopBar(entries []nav.Entry, debounce, grace time.Duration) *TopBar {
	t := &TopBar{
		entries:  entries,
		calc:     nav.NewOverflowCalculator(entries, NewTabEstimator(), tabSpacing),
		hover:    nav.NewHoverCoordinator(grace),
		debounce: nav.NewDebouncer(debounce),
		row:      -1,
		subRow:   -1,
		offsets:  make(map[string]int),
	}
	t.tracker = nav.NewHoverTracker(t.hover, t.lookup)
	t.calc.SetReserved(t.reserved())
	return t
}

func (t *TopBar) lookup(name string) (nav.Entry, bool) {
	return nav.FindEntry(t.entries, name)
}

func (t *TopBar) reserved() nav.Reserved {
	return barReserved(t.rightText)
}

// barReserved is the chrome around the entry area: the logo, the More
// button and the right text.
func barReserved(rightText string) nav.Reserved {
	right := moreButtonWidth() + 1
	if rightText != "" {
		right += lipgloss.Width(rightText) + 1
	}
	return nav.Reserved{
		Logo:    LogoWidth() + 1,
		Right:   right,
		Padding: barPadding,
		MinNav:  minNavWidth,
	}
}

// PartitionAt computes what a bar of width with no right text would show,
// along with the entry-area width. It is used for headless inspection.
func PartitionAt(entries []nav.Entry, width int, m nav.Measurer) (nav.Partition, int) {
	avail := nav.AvailableWidth(width, barReserved(""))
	return nav.PartitionEntries(entries, avail, m, tabSpacing), avail
}

// SetSize records the container width. The first measured width partitions
// immediately from estimates and switches to real measurement; every call
// also schedules a debounced recompute.
func (t *TopBar) SetSize(width int) tea.Cmd {
	if width == t.width && t.measured {
		return nil
	}
	t.width = width
	if !t.measured && width > 0 {
		t.recompute()
		t.calc.SetMeasurer(TabMeasurer{})
		t.measured = true
	}
	return t.ScheduleRecompute()
}

func (t *TopBar) Width() int { return t.width }

// ScheduleRecompute restarts the debounce window.
func (t *TopBar) ScheduleRecompute() tea.Cmd {
	seq := t.debounce.Trigger()
	return tea.Tick(t.debounce.Delay, func(time.Time) tea.Msg {
		return RecomputeMsg{Seq: seq}
	})
}

// HandleRecompute applies a settled recompute. Superseded messages are
// dropped. It reports whether the partition was recomputed.
func (t *TopBar) HandleRecompute(msg RecomputeMsg) bool {
	if !t.debounce.Settled(msg.Seq) {
		return false
	}
	return t.recompute()
}

func (t *TopBar) recompute() bool {
	if !t.calc.Recompute(t.width) {
		return false
	}
	p, _ := t.calc.Partition()
	state := t.hover.State()
	if state.Primary != "" && p.IsOverflowed(state.Primary) {
		t.closeAll()
	}
	if state.MoreOpen && len(p.Overflow) == 0 {
		t.closeAll()
	}
	if state.Sub != "" && !p.IsOverflowed(state.Sub) {
		t.hover.CloseSub()
		t.subRow = -1
	}
	t.clampFocus()
	log.InfoLog.Printf("nav partition at width %d: %d visible, %d overflow",
		t.width, len(p.Visible), len(p.Overflow))
	return true
}

// Partition returns the current split of entries.
func (t *TopBar) Partition() (nav.Partition, bool) {
	return t.calc.Partition()
}

func (t *TopBar) Entries() []nav.Entry { return t.entries }

// SetEntries replaces the entry list, closes any dropdown and schedules a
// recompute.
func (t *TopBar) SetEntries(entries []nav.Entry) tea.Cmd {
	t.entries = entries
	t.calc.SetEntries(entries)
	t.closeAll()
	t.tracker.Reset()
	return t.ScheduleRecompute()
}

// SetRightText sets the text shown at the right edge of the bar. A change in
// its width changes the entry area and schedules a recompute.
func (t *TopBar) SetRightText(s string) tea.Cmd {
	t.rightText = s
	if !t.calc.SetReserved(t.reserved()) {
		return nil
	}
	return t.ScheduleRecompute()
}

func (t *TopBar) SetActive(route string) { t.active = route }

func (t *TopBar) Active() string { return t.active }

// SetFocused gives or takes keyboard focus. Losing focus closes dropdowns.
func (t *TopBar) SetFocused(focused bool) {
	t.focused = focused
	if !focused {
		t.closeAll()
	}
}

func (t *TopBar) Focused() bool { return t.focused }

// HoverState exposes the dropdown state.
func (t *TopBar) HoverState() nav.HoverState { return t.hover.State() }

// CloseDropdowns closes every open panel, e.g. on a click outside the bar.
func (t *TopBar) CloseDropdowns() {
	t.closeAll()
	t.tracker.Reset()
}

func (t *TopBar) closeAll() {
	t.hover.CloseAll()
	t.row = -1
	t.subRow = -1
}

func (t *TopBar) visible() []nav.Entry {
	p, _ := t.calc.Partition()
	return p.Visible
}

func (t *TopBar) overflow() []nav.Entry {
	p, _ := t.calc.Partition()
	return p.Overflow
}

func (t *TopBar) hasMore() bool {
	return len(t.overflow()) > 0
}

func (t *TopBar) clampFocus() {
	limit := len(t.visible()) - 1
	if t.hasMore() {
		limit++
	}
	if t.focus > limit {
		t.focus = limit
	}
	if t.focus < 0 {
		t.focus = 0
	}
}

// Resolve maps the pointer to a navigation element. inBounds reports whether
// the pointer is inside the zone with the given id. Open panels are checked
// before the bar so a panel drawn over a tab wins.
func (t *TopBar) Resolve(inBounds func(id string) bool) nav.HoverTarget {
	state := t.hover.State()
	if state.Sub != "" && inBounds(SubPanelZoneID(state.Sub)) {
		return nav.HoverTarget{Kind: nav.TargetSubPanel, Name: state.Sub}
	}
	if state.MoreOpen {
		for _, e := range t.overflow() {
			if inBounds(MoreRowZoneID(e.Name)) {
				return nav.HoverTarget{Kind: nav.TargetOverflowEntry, Name: e.Name}
			}
		}
		if inBounds(ZoneMorePanel) {
			return nav.HoverTarget{Kind: nav.TargetMorePanel}
		}
	}
	if state.Primary != "" && inBounds(NavPanelZoneID(state.Primary)) {
		return nav.HoverTarget{Kind: nav.TargetPanel, Name: state.Primary}
	}
	if t.hasMore() && inBounds(ZoneNavMore) {
		return nav.HoverTarget{Kind: nav.TargetMore}
	}
	for _, e := range t.visible() {
		if inBounds(NavTabZoneID(e.Name)) {
			return nav.HoverTarget{Kind: nav.TargetEntry, Name: e.Name}
		}
	}
	return nav.HoverTarget{}
}

// Hover feeds a pointer motion through the hover tracker and returns the
// close-grace tick to arm, if any.
func (t *TopBar) Hover(inBounds func(id string) bool) tea.Cmd {
	before := t.hover.State()
	target := t.Resolve(inBounds)
	timer := t.tracker.Move(target)
	t.syncCursor(before, target, inBounds)
	if timer == nil {
		return nil
	}
	seq := timer.Seq
	return tea.Tick(timer.Delay, func(time.Time) tea.Msg {
		return HoverCloseMsg{Seq: seq}
	})
}

// HandleHoverClose applies an expired close-grace timer.
func (t *TopBar) HandleHoverClose(msg HoverCloseMsg) bool {
	if !t.hover.Expire(msg.Seq) {
		return false
	}
	state := t.hover.State()
	if state.Closed() {
		t.row = -1
	}
	if state.Sub == "" {
		t.subRow = -1
	}
	return true
}

// syncCursor moves the panel cursors to the rows under the pointer.
func (t *TopBar) syncCursor(before nav.HoverState, target nav.HoverTarget, inBounds func(id string) bool) {
	state := t.hover.State()
	if state.Primary != before.Primary || state.MoreOpen != before.MoreOpen {
		t.row = -1
	}
	if state.Sub != before.Sub {
		t.subRow = -1
	}
	switch target.Kind {
	case nav.TargetPanel:
		if e, ok := t.lookup(target.Name); ok {
			t.row = hitRow(len(nav.DropdownItems(e)), func(i int) string { return NavItemZoneID(e.Name, i) }, inBounds)
		}
	case nav.TargetOverflowEntry:
		for i, e := range t.overflow() {
			if e.Name == target.Name {
				t.row = i
			}
		}
	case nav.TargetSubPanel:
		if e, ok := t.lookup(target.Name); ok {
			t.subRow = hitRow(len(nav.DropdownItems(e)), func(i int) string { return SubItemZoneID(e.Name, i) }, inBounds)
		}
	}
}

func hitRow(n int, id func(int) string, inBounds func(string) bool) int {
	for i := 0; i < n; i++ {
		if inBounds(id(i)) {
			return i
		}
	}
	return -1
}

// Click handles a press at the pointer and returns the route to open, if
// any. Clicking the More button only opens the menu.
func (t *TopBar) Click(inBounds func(id string) bool) (string, bool) {
	state := t.hover.State()
	if state.Sub != "" {
		if e, ok := t.lookup(state.Sub); ok {
			items := nav.DropdownItems(e)
			if i := hitRow(len(items), func(i int) string { return SubItemZoneID(e.Name, i) }, inBounds); i >= 0 {
				return t.open(items[i].Path)
			}
		}
	}
	if state.MoreOpen {
		for i, e := range t.overflow() {
			if !inBounds(MoreRowZoneID(e.Name)) {
				continue
			}
			t.row = i
			if e.HasDropdown {
				t.hover.EnterOverflowEntry(e)
				t.subRow = -1
				return "", false
			}
			return t.open(e.Path)
		}
	}
	if state.Primary != "" {
		if e, ok := t.lookup(state.Primary); ok {
			items := nav.DropdownItems(e)
			if i := hitRow(len(items), func(i int) string { return NavItemZoneID(e.Name, i) }, inBounds); i >= 0 {
				return t.open(items[i].Path)
			}
		}
	}
	if t.hasMore() && inBounds(ZoneNavMore) {
		if !state.MoreOpen {
			t.hover.ToggleMore()
			t.row = -1
			t.subRow = -1
		}
		return "", false
	}
	for _, e := range t.visible() {
		if inBounds(NavTabZoneID(e.Name)) {
			return t.open(e.Path)
		}
	}
	return "", false
}

func (t *TopBar) open(route string) (string, bool) {
	t.closeAll()
	t.active = route
	return route, true
}

// HandleKey applies a navigation key while the bar has focus. It returns a
// route when the key opened one, and whether the key was consumed.
func (t *TopBar) HandleKey(name keys.KeyName) (string, bool) {
	if !t.focused {
		return "", false
	}
	state := t.hover.State()
	switch name {
	case keys.KeyLeft:
		if state.Sub != "" {
			t.hover.CloseSub()
			t.subRow = -1
			return "", true
		}
		t.moveFocus(-1)
		return "", true
	case keys.KeyRight:
		if over := t.overflow(); state.MoreOpen && state.Sub == "" && t.row >= 0 && t.row < len(over) {
			if e := over[t.row]; e.HasDropdown {
				t.hover.EnterOverflowEntry(e)
				t.subRow = 0
				return "", true
			}
		}
		t.moveFocus(1)
		return "", true
	case keys.KeyDown:
		t.cursorDown()
		return "", true
	case keys.KeyUp:
		t.cursorUp()
		return "", true
	case keys.KeyEnter:
		return t.activate()
	case keys.KeyMore:
		if !t.hasMore() {
			return "", false
		}
		t.hover.ToggleMore()
		t.focus = len(t.visible())
		t.row = -1
		t.subRow = -1
		if t.hover.State().MoreOpen {
			t.row = 0
		}
		return "", true
	case keys.KeyEsc:
		if state.Sub != "" {
			t.hover.CloseSub()
			t.subRow = -1
			return "", true
		}
		if !state.Closed() {
			t.closeAll()
			return "", true
		}
	}
	return "", false
}

func (t *TopBar) focusIsMore() bool {
	return t.hasMore() && t.focus == len(t.visible())
}

// moveFocus shifts focus along the bar. If a dropdown was open, the newly
// focused element opens its own.
func (t *TopBar) moveFocus(delta int) {
	wasOpen := !t.hover.State().Closed()
	t.focus += delta
	t.clampFocus()
	t.closeAll()
	if wasOpen {
		t.openFocused()
	}
}

func (t *TopBar) openFocused() bool {
	if t.focusIsMore() {
		t.hover.ToggleMore()
		t.row = 0
		return true
	}
	vis := t.visible()
	if t.focus >= len(vis) || !vis[t.focus].HasDropdown {
		return false
	}
	t.hover.OpenEntry(vis[t.focus])
	t.row = 0
	return true
}

func (t *TopBar) cursorDown() {
	state := t.hover.State()
	switch {
	case state.Sub != "":
		if e, ok := t.lookup(state.Sub); ok {
			t.subRow = min(t.subRow+1, len(nav.DropdownItems(e))-1)
		}
	case state.MoreOpen:
		t.row = min(t.row+1, len(t.overflow())-1)
	case state.Primary != "":
		if e, ok := t.lookup(state.Primary); ok {
			t.row = min(t.row+1, len(nav.DropdownItems(e))-1)
		}
	default:
		t.openFocused()
	}
}

func (t *TopBar) cursorUp() {
	state := t.hover.State()
	switch {
	case state.Sub != "":
		if t.subRow <= 0 {
			t.hover.CloseSub()
			t.subRow = -1
			return
		}
		t.subRow--
	case !state.Closed():
		if t.row <= 0 {
			t.closeAll()
			return
		}
		t.row--
	}
}

func (t *TopBar) activate() (string, bool) {
	state := t.hover.State()
	switch {
	case state.Sub != "":
		e, ok := t.lookup(state.Sub)
		items := nav.DropdownItems(e)
		if ok && t.subRow >= 0 && t.subRow < len(items) {
			return t.open(items[t.subRow].Path)
		}
	case state.MoreOpen:
		over := t.overflow()
		if t.row < 0 || t.row >= len(over) {
			return "", true
		}
		e := over[t.row]
		if e.HasDropdown {
			t.hover.EnterOverflowEntry(e)
			t.subRow = 0
			return "", true
		}
		return t.open(e.Path)
	case state.Primary != "":
		e, ok := t.lookup(state.Primary)
		items := nav.DropdownItems(e)
		if ok && t.row >= 0 && t.row < len(items) {
			return t.open(items[t.row].Path)
		}
	default:
		if t.focusIsMore() {
			t.openFocused()
			return "", true
		}
		vis := t.visible()
		if t.focus < len(vis) {
			return t.open(vis[t.focus].Path)
		}
	}
	return "", true
}

// String renders the bar as a single line of exactly Width cells.
func (t *TopBar) String() string {
	if t.width <= 0 {
		return ""
	}
	state := t.hover.State()
	clear(t.offsets)

	var b strings.Builder
	b.WriteString(topBarStyle.Render(" "))
	b.WriteString(Logo())
	b.WriteString(topBarStyle.Render(" "))
	x := 1 + LogoWidth() + 1

	gap := topBarStyle.Render(strings.Repeat(" ", tabSpacing))
	for i, e := range t.visible() {
		tab := renderTab(e, tabState{
			active:  ownsRoute(e, t.active),
			open:    state.Primary == e.Name,
			focused: t.focused && t.focus == i,
		})
		t.offsets[e.Name] = x
		b.WriteString(zone.Mark(NavTabZoneID(e.Name), tab))
		b.WriteString(gap)
		x += lipgloss.Width(tab) + tabSpacing
	}

	var right strings.Builder
	if t.hasMore() {
		right.WriteString(zone.Mark(ZoneNavMore, renderMoreButton(state.MoreOpen, t.focused && t.focusIsMore())))
	} else {
		right.WriteString(topBarStyle.Render(strings.Repeat(" ", moreButtonWidth())))
	}
	right.WriteString(topBarStyle.Render(" "))
	if t.rightText != "" {
		right.WriteString(rightTextStyle.Render(t.rightText))
		right.WriteString(topBarStyle.Render(" "))
	}
	right.WriteString(topBarStyle.Render(" "))

	fill := t.width - x - lipgloss.Width(right.String())
	if fill > 0 {
		b.WriteString(topBarStyle.Render(strings.Repeat(" ", fill)))
	}
	b.WriteString(right.String())
	return ansi.Truncate(b.String(), t.width, "")
}

// Overlays returns the open dropdown panels positioned below the bar. Call
// after String so tab offsets are current.
func (t *TopBar) Overlays() []Overlay {
	state := t.hover.State()
	var out []Overlay
	if state.Primary != "" {
		if e, ok := t.lookup(state.Primary); ok {
			panel := renderEntryPanel(e, t.row, t.active)
			x := t.offsets[e.Name]
			x = min(x, t.width-lipgloss.Width(panel))
			out = append(out, Overlay{Content: panel, X: max(x, 0), Y: 1})
		}
	}
	if state.MoreOpen {
		over := t.overflow()
		panel := renderMorePanel(over, state.Sub, t.row, t.active)
		moreX := max(t.width-lipgloss.Width(panel)-1, 0)
		out = append(out, Overlay{Content: panel, X: moreX, Y: 1})
		if state.Sub != "" {
			if e, ok := t.lookup(state.Sub); ok {
				idx := 0
				for i, o := range over {
					if o.Name == e.Name {
						idx = i
					}
				}
				sub := renderSubPanel(e, t.subRow, t.active)
				x := max(moreX-lipgloss.Width(sub), 0)
				// the submenu top lines up with its owner row, below the more panel border
				out = append(out, Overlay{Content: sub, X: x, Y: 2 + idx})
			}
		}
	}
	return out
}
