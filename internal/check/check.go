// Package check audits the console's configuration: the navigation file,
// the timing settings and the history database.
package check

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/kastheco/chartdesk/config"
	"github.com/kastheco/chartdesk/config/history"
	"github.com/kastheco/chartdesk/nav"
	"github.com/kastheco/chartdesk/ui"
)

// Status is the outcome of one audit item.
type Status int

const (
	StatusOK   Status = iota
	StatusWarn        // usable, but worth a look
	StatusFail        // the console falls back to defaults or loses a feature
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusWarn:
		return "warn"
	case StatusFail:
		return "fail"
	default:
		return "unknown"
	}
}

// Item is one audited setting.
type Item struct {
	Name   string
	Status Status
	Detail string
}

// Result holds every audit item in report order.
type Result struct {
	Items []Item
	// Entries is the loaded navigation, or the defaults when loading failed.
	Entries []nav.Entry
}

// Summary returns the number of items that did not fail, and the total.
func (r Result) Summary() (ok, total int) {
	for _, it := range r.Items {
		if it.Status != StatusFail {
			ok++
		}
	}
	return ok, len(r.Items)
}

// slowDebounce is the resize debounce above which the top bar feels laggy.
const slowDebounce = time.Second

// Audit checks cfg. historyPath is where the history database lives.
func Audit(cfg *config.Config, historyPath string) Result {
	var r Result
	r.Items = append(r.Items, auditNavigation(cfg, &r))
	r.Items = append(r.Items, auditEstimates(r.Entries))
	r.Items = append(r.Items, auditTiming(cfg))
	r.Items = append(r.Items, auditHistory(cfg, historyPath))
	return r
}

func auditNavigation(cfg *config.Config, r *Result) Item {
	it := Item{Name: "navigation"}
	path, err := cfg.NavigationPath()
	if err != nil {
		r.Entries = config.DefaultNavigation()
		it.Status = StatusFail
		it.Detail = err.Error()
		return it
	}
	entries, err := config.LoadNavigationFrom(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		r.Entries = config.DefaultNavigation()
		it.Status = StatusWarn
		it.Detail = fmt.Sprintf("%s not found, using %d built-in entries", path, len(r.Entries))
	case err != nil:
		r.Entries = config.DefaultNavigation()
		it.Status = StatusFail
		it.Detail = err.Error()
	default:
		r.Entries = entries
		it.Detail = fmt.Sprintf("%d entries from %s", len(entries), path)
	}
	return it
}

// auditEstimates reports entries the pre-paint width table does not know.
// They render fine but may briefly overflow on the first frame.
func auditEstimates(entries []nav.Entry) Item {
	it := Item{Name: "width estimates"}
	var missing []string
	for _, e := range entries {
		if _, ok := ui.EstimatedTabWidths[e.Name]; !ok {
			missing = append(missing, e.Name)
		}
	}
	if len(missing) == 0 {
		it.Detail = "every entry has an estimate"
		return it
	}
	sort.Strings(missing)
	it.Status = StatusWarn
	it.Detail = fmt.Sprintf("no estimate for %v, fallback widths used before first paint", missing)
	return it
}

func auditTiming(cfg *config.Config) Item {
	it := Item{Name: "timing"}
	debounce, grace := cfg.ResizeDebounce(), cfg.HoverGrace()
	it.Detail = fmt.Sprintf("resize debounce %s, hover grace %s", debounce, grace)
	if debounce > slowDebounce {
		it.Status = StatusWarn
		it.Detail += " (debounce over " + slowDebounce.String() + ")"
	}
	return it
}

func auditHistory(cfg *config.Config, path string) Item {
	it := Item{Name: "history"}
	if !cfg.IsHistoryEnabled() {
		it.Detail = "disabled"
		return it
	}
	l, err := history.NewSQLiteLogger(path)
	if err != nil {
		it.Status = StatusFail
		it.Detail = err.Error()
		return it
	}
	defer l.Close()
	it.Detail = path
	return it
}
