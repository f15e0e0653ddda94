package history

import "time"

// EventKind identifies the type of navigation event.
type EventKind string

// String returns the string representation of the EventKind.
func (k EventKind) String() string {
	return string(k)
}

// Navigation events.
const (
	EventRouteOpened        EventKind = "route_opened"
	EventLayoutChanged      EventKind = "layout_changed"
	EventSidebarToggled     EventKind = "sidebar_toggled"
	EventOverflowRecomputed EventKind = "overflow_recomputed"
	EventNavigationReloaded EventKind = "navigation_reloaded"
	EventError              EventKind = "error"
)

// Event is a single history entry.
type Event struct {
	ID        int64
	Kind      EventKind
	Timestamp time.Time
	Session   string
	Route     string
	Entry     string
	Layout    string
	Message   string
	Detail    string // JSON-encoded extra data
	Level     string // info, warn, error
}
