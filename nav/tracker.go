package nav

// TargetKind identifies what part of the navigation bar is under the pointer.
type TargetKind int

const (
	TargetNone TargetKind = iota
	// TargetEntry is a visible top-level entry trigger.
	TargetEntry
	// TargetPanel is the open dropdown panel of a visible entry.
	TargetPanel
	// TargetMore is the overflow menu trigger.
	TargetMore
	// TargetMorePanel is the overflow menu outside any of its rows.
	TargetMorePanel
	// TargetOverflowEntry is a row of the overflow menu.
	TargetOverflowEntry
	// TargetSubPanel is the nested submenu of an overflowed entry.
	TargetSubPanel
)

// HoverTarget is the pointer position resolved to a navigation element.
type HoverTarget struct {
	Kind TargetKind
	Name string
}

func (t HoverTarget) inMoreRegion() bool {
	switch t.Kind {
	case TargetMore, TargetMorePanel, TargetOverflowEntry, TargetSubPanel:
		return true
	}
	return false
}

// HoverTracker turns a stream of pointer positions into the enter/leave
// calls the coordinator expects. Terminals report motion, not enter/leave,
// so the tracker diffs consecutive targets.
type HoverTracker struct {
	coord  *HoverCoordinator
	lookup func(name string) (Entry, bool)
	last   HoverTarget
}

// NewHoverTracker binds a tracker to a coordinator. lookup resolves entry
// names carried by targets.
func NewHoverTracker(coord *HoverCoordinator, lookup func(name string) (Entry, bool)) *HoverTracker {
	return &HoverTracker{coord: coord, lookup: lookup}
}

// Last returns the previous target.
func (t *HoverTracker) Last() HoverTarget { return t.last }

// Reset forgets the previous target without emitting leave events.
func (t *HoverTracker) Reset() { t.last = HoverTarget{} }

// Move records the pointer at target and returns the close timer to arm,
// if any. Leaves are applied before enters, innermost first.
func (t *HoverTracker) Move(target HoverTarget) *CloseTimer {
	prev := t.last
	if prev == target {
		return nil
	}
	t.last = target

	var timer *CloseTimer
	keep := func(ct *CloseTimer) {
		if ct != nil {
			timer = ct
		}
	}

	switch prev.Kind {
	case TargetEntry:
		if e, ok := t.lookup(prev.Name); ok {
			keep(t.coord.LeaveEntry(e))
		}
	case TargetPanel:
		keep(t.coord.LeavePanel())
	case TargetOverflowEntry:
		if e, ok := t.lookup(prev.Name); ok {
			keep(t.coord.LeaveOverflowEntry(e))
		}
	case TargetSubPanel:
		keep(t.coord.LeaveSubPanel())
	}

	regionChanged := prev.inMoreRegion() != target.inMoreRegion()
	if regionChanged && prev.inMoreRegion() {
		keep(t.coord.LeaveMore())
	}

	if regionChanged && target.inMoreRegion() {
		t.coord.EnterMore()
	}
	switch target.Kind {
	case TargetEntry:
		if e, ok := t.lookup(target.Name); ok {
			t.coord.EnterEntry(e)
		}
	case TargetPanel:
		t.coord.EnterPanel()
	case TargetOverflowEntry:
		if e, ok := t.lookup(target.Name); ok {
			t.coord.EnterOverflowEntry(e)
		}
	case TargetSubPanel:
		t.coord.EnterSubPanel()
	}

	if !t.coord.Pending() {
		return nil
	}
	return timer
}
