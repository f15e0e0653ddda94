package nav

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// LayoutMode selects which navigation shell is rendered.
type LayoutMode int

const (
	ModeSidebar LayoutMode = iota
	ModeTopBar
)

func (m LayoutMode) String() string {
	switch m {
	case ModeSidebar:
		return "sidebar"
	case ModeTopBar:
		return "topbar"
	default:
		return fmt.Sprintf("LayoutMode(%d)", int(m))
	}
}

// ParseLayoutMode accepts "sidebar" or "topbar" (case-insensitive).
func ParseLayoutMode(s string) (LayoutMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sidebar":
		return ModeSidebar, nil
	case "topbar", "top":
		return ModeTopBar, nil
	default:
		return ModeSidebar, fmt.Errorf("unknown layout mode %q (want sidebar or topbar)", s)
	}
}

// LayoutSnapshot is a consistent read of the layout store.
type LayoutSnapshot struct {
	Mode        LayoutMode
	SidebarOpen bool
}

// LayoutStore is the single source of truth for the active shell and the
// sidebar flag. It is read by every layout component but only mutated
// through SetLayoutMode, ToggleSidebar and SetSidebarOpen.
type LayoutStore struct {
	mu          sync.RWMutex
	mode        LayoutMode
	sidebarOpen bool
	listeners   []func(LayoutSnapshot)
}

// NewLayoutStore returns a store in mode with the sidebar coupled to it.
func NewLayoutStore(mode LayoutMode) *LayoutStore {
	return &LayoutStore{
		mode:        mode,
		sidebarOpen: mode == ModeSidebar,
	}
}

// Subscribe registers fn to run after every change that altered state.
// Listeners run on the caller's goroutine, outside the lock.
func (s *LayoutStore) Subscribe(fn func(LayoutSnapshot)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// SetLayoutMode switches the shell. Switching to the top bar closes the
// sidebar, switching to the sidebar opens it, in the same transition.
func (s *LayoutStore) SetLayoutMode(mode LayoutMode) {
	s.update(func() {
		s.mode = mode
		s.sidebarOpen = mode == ModeSidebar
	})
}

// ToggleSidebar flips sidebar visibility independent of the mode.
func (s *LayoutStore) ToggleSidebar() {
	s.update(func() { s.sidebarOpen = !s.sidebarOpen })
}

// SetSidebarOpen sets sidebar visibility explicitly.
func (s *LayoutStore) SetSidebarOpen(open bool) {
	s.update(func() { s.sidebarOpen = open })
}

func (s *LayoutStore) Mode() LayoutMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

func (s *LayoutStore) SidebarOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sidebarOpen
}

func (s *LayoutStore) Snapshot() LayoutSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return LayoutSnapshot{Mode: s.mode, SidebarOpen: s.sidebarOpen}
}

func (s *LayoutStore) update(mutate func()) {
	s.mu.Lock()
	before := LayoutSnapshot{Mode: s.mode, SidebarOpen: s.sidebarOpen}
	mutate()
	after := LayoutSnapshot{Mode: s.mode, SidebarOpen: s.sidebarOpen}
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()

	if before == after {
		return
	}
	for _, fn := range listeners {
		fn(after)
	}
}
