package nav

import "time"

// DefaultResizeDebounce is the trailing delay applied to resize-driven
// recomputation.
const DefaultResizeDebounce = 75 * time.Millisecond

// Debouncer tracks the latest trigger in a burst. Each Trigger returns a
// sequence number; the caller arranges for Settled to be asked with it after
// Delay, and only the newest sequence settles. Superseded triggers are
// dropped, not queued.
type Debouncer struct {
	Delay time.Duration
	seq   uint64
}

// NewDebouncer returns a debouncer with the given delay.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{Delay: delay}
}

// Trigger records a new event and returns its sequence number.
func (d *Debouncer) Trigger() uint64 {
	d.seq++
	return d.seq
}

// Settled reports whether seq is still the newest trigger.
func (d *Debouncer) Settled(seq uint64) bool {
	return seq == d.seq
}

// Pending returns the newest sequence number.
func (d *Debouncer) Pending() uint64 {
	return d.seq
}
