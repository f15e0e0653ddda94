package nav

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyName is returned when an entry or sub-entry has no display label.
	ErrEmptyName = errors.New("navigation entry has no name")
	// ErrEmptyPath is returned when an entry or sub-entry has no route.
	ErrEmptyPath = errors.New("navigation entry has no path")
	// ErrDuplicateEntry is returned when two top-level entries share a name.
	ErrDuplicateEntry = errors.New("duplicate navigation entry")
)

// SubEntry is a child destination shown inside a dropdown.
type SubEntry struct {
	Name string
	Path string
	Icon string
}

// Entry is a top-level navigation destination. Name is the identity key
// within one entry list.
type Entry struct {
	Name        string
	Path        string
	Icon        string
	HasDropdown bool
	SubItems    []SubEntry
	// Singular overrides the label used by synthesized "Add New" actions.
	Singular string
}

// Label returns the icon-prefixed display label.
func (e Entry) Label() string {
	if e.Icon == "" {
		return e.Name
	}
	return e.Icon + " " + e.Name
}

// SingularName returns Singular when set, otherwise Name with one trailing
// "s" removed.
func (e Entry) SingularName() string {
	if e.Singular != "" {
		return e.Singular
	}
	if len(e.Name) > 1 && strings.HasSuffix(e.Name, "s") {
		return strings.TrimSuffix(e.Name, "s")
	}
	return e.Name
}

// ValidateEntries checks names are present and unique and every route is set.
func ValidateEntries(entries []Entry) error {
	seen := make(map[string]struct{}, len(entries))
	for i, e := range entries {
		if strings.TrimSpace(e.Name) == "" {
			return fmt.Errorf("entry %d: %w", i, ErrEmptyName)
		}
		if strings.TrimSpace(e.Path) == "" {
			return fmt.Errorf("entry %q: %w", e.Name, ErrEmptyPath)
		}
		if _, ok := seen[e.Name]; ok {
			return fmt.Errorf("entry %q: %w", e.Name, ErrDuplicateEntry)
		}
		seen[e.Name] = struct{}{}
		for j, sub := range e.SubItems {
			if strings.TrimSpace(sub.Name) == "" {
				return fmt.Errorf("entry %q item %d: %w", e.Name, j, ErrEmptyName)
			}
			if strings.TrimSpace(sub.Path) == "" {
				return fmt.Errorf("entry %q item %q: %w", e.Name, sub.Name, ErrEmptyPath)
			}
		}
	}
	return nil
}

// FindEntry returns the entry with the given name.
func FindEntry(entries []Entry, name string) (Entry, bool) {
	for _, e := range entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Resolve finds the entry owning path, checking the entry route first and
// then its dropdown items. The returned SubEntry is zero when the path
// matched the entry itself.
func Resolve(entries []Entry, path string) (Entry, SubEntry, bool) {
	for _, e := range entries {
		if e.Path == path {
			return e, SubEntry{}, true
		}
	}
	for _, e := range entries {
		for _, item := range DropdownItems(e) {
			if item.Path == path {
				return e, item, true
			}
		}
	}
	return Entry{}, SubEntry{}, false
}
