package history

import "time"

// QueryFilter specifies criteria for querying navigation events.
type QueryFilter struct {
	Session string
	Route   string
	Kinds   []EventKind
	Limit   int
	Before  time.Time
	After   time.Time
}

// Logger is the interface for emitting and querying navigation events.
type Logger interface {
	Emit(event Event)
	Query(filter QueryFilter) ([]Event, error)
	Close() error
}

// EventOption is a functional option for configuring optional Event fields.
type EventOption func(*Event)

// WithRoute sets the Route and Entry fields on the event.
func WithRoute(route, entry string) EventOption {
	return func(e *Event) {
		e.Route = route
		e.Entry = entry
	}
}

// WithLayout sets the Layout field on the event.
func WithLayout(layout string) EventOption {
	return func(e *Event) { e.Layout = layout }
}

// WithDetail sets the Detail field on the event (JSON-encoded extra data).
func WithDetail(detail string) EventOption {
	return func(e *Event) { e.Detail = detail }
}

// WithLevel sets the Level field on the event (info, warn, error).
func WithLevel(level string) EventOption {
	return func(e *Event) { e.Level = level }
}

// NewEvent builds an event for session with the given options applied.
func NewEvent(kind EventKind, session, message string, opts ...EventOption) Event {
	e := Event{Kind: kind, Session: session, Message: message}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// nopLogger is a no-op Logger used when history is disabled.
type nopLogger struct{}

// NopLogger returns a Logger that discards all events.
func NopLogger() Logger {
	return &nopLogger{}
}

func (n *nopLogger) Emit(_ Event) {}

func (n *nopLogger) Query(_ QueryFilter) ([]Event, error) {
	return nil, nil
}

func (n *nopLogger) Close() error {
	return nil
}
