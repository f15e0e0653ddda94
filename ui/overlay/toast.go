package overlay

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// ToastType identifies the kind of toast notification.
type ToastType int

const (
	ToastInfo ToastType = iota
	ToastSuccess
	ToastError
	ToastLoading
)

// AnimPhase represents the current animation phase of a toast.
type AnimPhase int

const (
	PhaseSlidingIn AnimPhase = iota
	PhaseVisible
	PhaseSlidingOut
	PhaseDone
)

const (
	SlideInDuration  = 250 * time.Millisecond
	SlideOutDuration = 200 * time.Millisecond

	InfoDismissAfter    = 3 * time.Second
	SuccessDismissAfter = 3 * time.Second
	ErrorDismissAfter   = 6 * time.Second

	MinToastWidth = 24
	MaxToastWidth = 56
	MaxToasts     = 4
)

var idCounter atomic.Uint64

type toast struct {
	ID         string
	Type       ToastType
	Message    string
	Phase      AnimPhase
	PhaseStart time.Time
	Duration   time.Duration // 0 keeps the toast until resolved
	Width      int
}

// toastWidth is icon (up to 2) + space + message + padding (2) + border (2),
// clamped.
func toastWidth(msg string) int {
	w := 2 + 1 + runewidth.StringWidth(msg) + 4
	return min(max(w, MinToastWidth), MaxToastWidth)
}

func dismissAfter(typ ToastType) time.Duration {
	switch typ {
	case ToastError:
		return ErrorDismissAfter
	case ToastSuccess:
		return SuccessDismissAfter
	case ToastLoading:
		return 0
	default:
		return InfoDismissAfter
	}
}

// ToastManager stacks transient notifications in the bottom-right corner.
type ToastManager struct {
	toasts  []*toast
	spinner *spinner.Model
	width   int
	height  int
	// bottomMargin keeps toasts above the key menu.
	bottomMargin int
}

func NewToastManager(s *spinner.Model) *ToastManager {
	return &ToastManager{spinner: s}
}

// SetSize updates the screen size and the rows reserved at the bottom.
func (tm *ToastManager) SetSize(width, height, bottomMargin int) {
	tm.width = width
	tm.height = height
	tm.bottomMargin = bottomMargin
}

func (tm *ToastManager) Info(msg string) string    { return tm.add(ToastInfo, msg) }
func (tm *ToastManager) Success(msg string) string { return tm.add(ToastSuccess, msg) }
func (tm *ToastManager) Error(msg string) string   { return tm.add(ToastError, msg) }

// Loading shows a toast that stays until Resolve replaces it.
func (tm *ToastManager) Loading(msg string) string { return tm.add(ToastLoading, msg) }

// Resolve turns toast id into typ with a new message. Unknown ids are
// ignored.
func (tm *ToastManager) Resolve(id string, typ ToastType, msg string) {
	for _, t := range tm.toasts {
		if t.ID != id {
			continue
		}
		t.Type = typ
		t.Message = msg
		t.Width = toastWidth(msg)
		t.Phase = PhaseVisible
		t.PhaseStart = time.Now()
		t.Duration = dismissAfter(typ)
		if t.Duration == 0 {
			t.Duration = SuccessDismissAfter
		}
		return
	}
}

// HasActiveToasts reports whether the app should keep ticking.
func (tm *ToastManager) HasActiveToasts() bool {
	for _, t := range tm.toasts {
		if t.Phase != PhaseDone {
			return true
		}
	}
	return false
}

func (tm *ToastManager) add(typ ToastType, msg string) string {
	now := time.Now()

	// A repeat of a showing toast restarts its timer.
	for _, t := range tm.toasts {
		if t.Type == typ && t.Message == msg && (t.Phase == PhaseSlidingIn || t.Phase == PhaseVisible) {
			t.PhaseStart = now
			return t.ID
		}
	}

	for len(tm.toasts) >= MaxToasts {
		tm.dropOldest()
	}
	t := &toast{
		ID:         fmt.Sprintf("toast-%d", idCounter.Add(1)),
		Type:       typ,
		Message:    msg,
		Phase:      PhaseSlidingIn,
		PhaseStart: now,
		Duration:   dismissAfter(typ),
		Width:      toastWidth(msg),
	}
	tm.toasts = append(tm.toasts, t)
	return t.ID
}

// dropOldest removes the oldest toast, preferring ones that are not loading.
func (tm *ToastManager) dropOldest() {
	for i, t := range tm.toasts {
		if t.Type != ToastLoading {
			tm.toasts = append(tm.toasts[:i], tm.toasts[i+1:]...)
			return
		}
	}
	tm.toasts = tm.toasts[1:]
}

// ToastTickMsg drives toast animation while toasts are active.
type ToastTickMsg struct{}

// Tick advances animation phases and drops finished toasts.
func (tm *ToastManager) Tick() {
	now := time.Now()
	alive := tm.toasts[:0]
	for _, t := range tm.toasts {
		elapsed := now.Sub(t.PhaseStart)
		switch t.Phase {
		case PhaseSlidingIn:
			if elapsed >= SlideInDuration {
				t.Phase = PhaseVisible
				t.PhaseStart = now
			}
		case PhaseVisible:
			if t.Duration > 0 && elapsed >= t.Duration {
				t.Phase = PhaseSlidingOut
				t.PhaseStart = now
			}
		case PhaseSlidingOut:
			if elapsed >= SlideOutDuration {
				t.Phase = PhaseDone
			}
		}
		if t.Phase != PhaseDone {
			alive = append(alive, t)
		}
	}
	tm.toasts = alive
}

func toastColor(typ ToastType) lipgloss.Color {
	switch typ {
	case ToastError:
		return colorLove
	case ToastLoading:
		return colorGold
	default:
		return colorFoam
	}
}

func (tm *ToastManager) icon(typ ToastType) string {
	style := lipgloss.NewStyle().Foreground(toastColor(typ))
	switch typ {
	case ToastSuccess:
		return style.Render("✓")
	case ToastError:
		return style.Render("✗")
	case ToastLoading:
		if tm.spinner != nil {
			return style.Render(tm.spinner.View())
		}
		return style.Render("…")
	default:
		return style.Render("▸")
	}
}

// slideOffset is how far right of its resting place a toast is drawn.
func (t *toast) slideOffset(now time.Time) int {
	full := float64(t.Width + 2)
	elapsed := now.Sub(t.PhaseStart)
	switch t.Phase {
	case PhaseSlidingIn:
		p := min(float64(elapsed)/float64(SlideInDuration), 1)
		p = 1 - (1-p)*(1-p) // ease-out
		return int(full * (1 - p))
	case PhaseSlidingOut:
		p := min(float64(elapsed)/float64(SlideOutDuration), 1)
		return int(full * p * p) // ease-in
	}
	return 0
}

// View renders the active toasts stacked vertically, right-aligned.
func (tm *ToastManager) View() string {
	rendered := make([]string, 0, len(tm.toasts))
	for _, t := range tm.toasts {
		if t.Phase == PhaseDone {
			continue
		}
		style := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(toastColor(t.Type)).
			Padding(0, 1).
			Width(t.Width)
		rendered = append(rendered, style.Render(tm.icon(t.Type)+" "+t.Message))
	}
	if len(rendered) == 0 {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Right, rendered...)
}

// GetPosition returns where to place View: right-aligned, resting above the
// bottom margin, shifted right by the largest slide offset.
func (tm *ToastManager) GetPosition() (int, int) {
	view := tm.View()
	x := max(tm.width-lipgloss.Width(view)-2, 0)
	y := max(tm.height-tm.bottomMargin-lipgloss.Height(view), 0)

	now := time.Now()
	offset := 0
	for _, t := range tm.toasts {
		offset = max(offset, t.slideOffset(now))
	}
	return x + offset, y
}
