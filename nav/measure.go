package nav

import (
	"sync"

	"github.com/kastheco/chartdesk/log"
	"github.com/mattn/go-runewidth"
)

// Measurer reports how many cells an entry occupies in the top bar,
// excluding inter-item spacing.
type Measurer interface {
	Width(e Entry) int
}

// MeasureFunc adapts a function to Measurer.
type MeasureFunc func(e Entry) int

func (f MeasureFunc) Width(e Entry) int { return f(e) }

// FixedWidths measures entries from a name-keyed table. Missing names
// measure as Default.
type FixedWidths struct {
	Widths  map[string]int
	Default int
}

func (f FixedWidths) Width(e Entry) int {
	if w, ok := f.Widths[e.Name]; ok {
		return w
	}
	return f.Default
}

// StaticEstimator is the pre-paint strategy: a per-label table with a
// conservative fallback for labels the table does not know. The fallback
// over-estimates by one cell so an unknown label overflows rather than
// clips. A table hit never goes below the entry's own cell count, so an
// entry reusing a known name with a wider icon or a dropdown is not
// under-estimated.
type StaticEstimator struct {
	Table map[string]int
	// Padding is the horizontal padding the renderer adds around a label.
	Padding int

	mu     sync.Mutex
	warned map[string]bool
}

// NewStaticEstimator returns an estimator with padding cells added to
// fallback estimates.
func NewStaticEstimator(table map[string]int, padding int) *StaticEstimator {
	return &StaticEstimator{Table: table, Padding: padding}
}

func (s *StaticEstimator) Width(e Entry) int {
	cells := runewidth.StringWidth(e.Label()) + s.Padding
	if e.HasDropdown {
		cells += 2 // " ▾"
	}
	if w, ok := s.Table[e.Name]; ok {
		return max(w, cells)
	}
	s.warnOnce(e.Name)
	return cells + 1
}

func (s *StaticEstimator) warnOnce(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.warned == nil {
		s.warned = make(map[string]bool)
	}
	if s.warned[name] {
		return
	}
	s.warned[name] = true
	log.WarningLog.Printf("no width estimate for nav entry %q, using fallback", name)
}
