package nav

import "time"

// DefaultHoverGrace is how long a dropdown stays open after the pointer
// leaves it, so the pointer can cross the gap between trigger and panel.
const DefaultHoverGrace = 150 * time.Millisecond

// HoverState is the open-dropdown state of one navigation bar. Primary and
// MoreOpen are mutually exclusive, and Sub is only set while MoreOpen.
type HoverState struct {
	// Primary is the name of the visible entry whose dropdown is open.
	Primary string
	// MoreOpen is true while the overflow menu is open.
	MoreOpen bool
	// Sub is the overflowed entry whose nested submenu is open.
	Sub string
}

// Closed reports whether nothing is open.
func (s HoverState) Closed() bool {
	return s == HoverState{}
}

type closeKind int

const (
	closeNone closeKind = iota
	closeSub
	closeAll
)

// CloseTimer asks the caller to call Expire(Seq) after Delay.
type CloseTimer struct {
	Seq   uint64
	Delay time.Duration
}

// HoverCoordinator drives dropdown state from pointer enter/leave events.
// It owns a single pending-close slot: scheduling a close replaces any
// earlier one, and entering the region the pending close targets cancels it.
type HoverCoordinator struct {
	state   HoverState
	grace   time.Duration
	seq     uint64
	pending closeKind
}

// NewHoverCoordinator returns a closed coordinator. A grace of zero closes
// dropdowns as soon as the pointer leaves.
func NewHoverCoordinator(grace time.Duration) *HoverCoordinator {
	return &HoverCoordinator{grace: grace}
}

func (c *HoverCoordinator) State() HoverState { return c.state }

// Grace returns the configured close-grace period.
func (c *HoverCoordinator) Grace() time.Duration { return c.grace }

// EnterEntry opens e's dropdown, closing any other. Entering an entry
// without a dropdown closes everything.
func (c *HoverCoordinator) EnterEntry(e Entry) {
	c.pending = closeNone
	if !e.HasDropdown {
		c.state = HoverState{}
		return
	}
	c.state = HoverState{Primary: e.Name}
}

// LeaveEntry starts closing e's dropdown if it is the open one.
func (c *HoverCoordinator) LeaveEntry(e Entry) *CloseTimer {
	if c.state.Primary != e.Name || e.Name == "" {
		return nil
	}
	return c.schedule(closeAll)
}

// EnterPanel keeps the open entry dropdown alive while the pointer is on it.
func (c *HoverCoordinator) EnterPanel() {
	if c.state.Primary != "" && c.pending == closeAll {
		c.pending = closeNone
	}
}

// LeavePanel starts closing the open entry dropdown.
func (c *HoverCoordinator) LeavePanel() *CloseTimer {
	if c.state.Primary == "" {
		return nil
	}
	return c.schedule(closeAll)
}

// EnterMore opens the overflow menu, closing any entry dropdown. Re-entering
// an already open menu keeps its submenu.
func (c *HoverCoordinator) EnterMore() {
	if c.state.MoreOpen {
		if c.pending == closeAll {
			c.pending = closeNone
		}
		return
	}
	c.pending = closeNone
	c.state = HoverState{MoreOpen: true}
}

// LeaveMore starts closing the overflow menu and its submenu.
func (c *HoverCoordinator) LeaveMore() *CloseTimer {
	if !c.state.MoreOpen {
		return nil
	}
	return c.schedule(closeAll)
}

// EnterOverflowEntry opens the nested submenu for e while the overflow menu
// is open. Hovering an overflowed entry without a dropdown closes the
// submenu.
func (c *HoverCoordinator) EnterOverflowEntry(e Entry) {
	if !c.state.MoreOpen {
		return
	}
	c.pending = closeNone
	if e.HasDropdown {
		c.state.Sub = e.Name
	} else {
		c.state.Sub = ""
	}
}

// LeaveOverflowEntry starts closing e's submenu if it is the open one.
func (c *HoverCoordinator) LeaveOverflowEntry(e Entry) *CloseTimer {
	if !c.state.MoreOpen || c.state.Sub == "" || c.state.Sub != e.Name {
		return nil
	}
	return c.schedule(closeSub)
}

// EnterSubPanel keeps the open submenu alive while the pointer is on it.
func (c *HoverCoordinator) EnterSubPanel() {
	if c.state.Sub != "" {
		c.pending = closeNone
	}
}

// LeaveSubPanel starts closing the open submenu.
func (c *HoverCoordinator) LeaveSubPanel() *CloseTimer {
	if c.state.Sub == "" {
		return nil
	}
	return c.schedule(closeSub)
}

// CloseAll closes everything immediately and drops any pending close.
func (c *HoverCoordinator) CloseAll() {
	c.state = HoverState{}
	c.pending = closeNone
}

// CloseSub closes the nested submenu immediately, leaving the overflow menu
// open.
func (c *HoverCoordinator) CloseSub() {
	if c.pending == closeSub {
		c.pending = closeNone
	}
	c.state.Sub = ""
}

// ToggleMore opens or closes the overflow menu without pointer travel.
func (c *HoverCoordinator) ToggleMore() {
	if c.state.MoreOpen {
		c.CloseAll()
		return
	}
	c.pending = closeNone
	c.state = HoverState{MoreOpen: true}
}

// OpenEntry opens e's dropdown without pointer travel.
func (c *HoverCoordinator) OpenEntry(e Entry) {
	c.EnterEntry(e)
}

// Expire applies the pending close scheduled under seq. Stale or cancelled
// timers are ignored. It reports whether the state changed.
func (c *HoverCoordinator) Expire(seq uint64) bool {
	if c.pending == closeNone || seq != c.seq {
		return false
	}
	kind := c.pending
	c.pending = closeNone
	return c.apply(kind)
}

// Pending reports whether a close is waiting for its timer.
func (c *HoverCoordinator) Pending() bool {
	return c.pending != closeNone
}

func (c *HoverCoordinator) schedule(kind closeKind) *CloseTimer {
	if c.grace <= 0 {
		c.pending = closeNone
		c.apply(kind)
		return nil
	}
	if c.pending == closeAll && kind == closeSub {
		return nil
	}
	c.seq++
	c.pending = kind
	return &CloseTimer{Seq: c.seq, Delay: c.grace}
}

func (c *HoverCoordinator) apply(kind closeKind) bool {
	before := c.state
	switch kind {
	case closeAll:
		c.state = HoverState{}
	case closeSub:
		c.state.Sub = ""
	}
	return before != c.state
}
