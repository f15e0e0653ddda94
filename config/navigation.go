package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/kastheco/chartdesk/log"
	"github.com/kastheco/chartdesk/nav"
)

// tomlNavigation is the on-disk shape of navigation.toml.
type tomlNavigation struct {
	Entries []tomlEntry `toml:"entries"`
}

type tomlEntry struct {
	Name     string        `toml:"name"`
	Path     string        `toml:"path"`
	Icon     string        `toml:"icon,omitempty"`
	Singular string        `toml:"singular,omitempty"`
	Dropdown bool          `toml:"dropdown,omitempty"`
	Items    []tomlSubItem `toml:"items,omitempty"`
}

type tomlSubItem struct {
	Name string `toml:"name"`
	Path string `toml:"path"`
	Icon string `toml:"icon,omitempty"`
}

// DefaultNavigation returns the built-in entry list used when no
// navigation file exists.
func DefaultNavigation() []nav.Entry {
	return []nav.Entry{
		{Name: "Dashboard", Path: "/", Icon: "⌂"},
		{Name: "Patients", Path: "/patients", Icon: "☺", HasDropdown: true, SubItems: []nav.SubEntry{
			{Name: "Patient List", Path: "/patients"},
			{Name: "Register Patient", Path: "/patients/new", Icon: "+"},
			{Name: "Recent Visits", Path: "/patients/recent"},
		}},
		{Name: "Appointments", Path: "/appointments", Icon: "◷", HasDropdown: true},
		{Name: "Medications", Path: "/medications", Icon: "℞", HasDropdown: true},
		{Name: "Allergies", Path: "/allergies", Icon: "!", HasDropdown: true, Singular: "Allergy"},
		{Name: "Insurance", Path: "/insurance", Icon: "$", HasDropdown: true, Singular: "Policy"},
		{Name: "Prescriptions", Path: "/prescriptions", Icon: "✎", HasDropdown: true},
		{Name: "Vitals", Path: "/vitals", Icon: "♥", HasDropdown: true, Singular: "Vital Sign"},
		{Name: "Documents", Path: "/documents", Icon: "▤", HasDropdown: true},
		{Name: "CRM", Path: "/crm", Icon: "☎", HasDropdown: true, Singular: "Contact"},
		{Name: "Reports", Path: "/reports", Icon: "≡"},
		{Name: "Settings", Path: "/settings", Icon: "⚙"},
	}
}

// LoadNavigationFrom reads and validates an entry list from a TOML file.
// Unknown keys are logged and ignored.
func LoadNavigationFrom(path string) ([]nav.Entry, error) {
	var doc tomlNavigation
	md, err := toml.DecodeFile(path, &doc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse navigation file %s: %w", path, err)
	}
	for _, key := range md.Undecoded() {
		log.WarningLog.Printf("navigation file %s: unknown key %s", path, key.String())
	}

	entries := make([]nav.Entry, 0, len(doc.Entries))
	for _, te := range doc.Entries {
		e := nav.Entry{
			Name:        strings.TrimSpace(te.Name),
			Path:        strings.TrimSpace(te.Path),
			Icon:        te.Icon,
			Singular:    te.Singular,
			HasDropdown: te.Dropdown || len(te.Items) > 0,
		}
		for _, item := range te.Items {
			e.SubItems = append(e.SubItems, nav.SubEntry{
				Name: strings.TrimSpace(item.Name),
				Path: strings.TrimSpace(item.Path),
				Icon: item.Icon,
			})
		}
		entries = append(entries, e)
	}
	if err := nav.ValidateEntries(entries); err != nil {
		return nil, fmt.Errorf("invalid navigation file %s: %w", path, err)
	}
	return entries, nil
}

// LoadNavigation loads the entries at path, falling back to
// DefaultNavigation when the file does not exist. Any other failure is
// returned together with the defaults so the console can still start.
func LoadNavigation(path string) ([]nav.Entry, error) {
	entries, err := LoadNavigationFrom(path)
	if err == nil {
		return entries, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return DefaultNavigation(), nil
	}
	log.ErrorLog.Printf("%v", err)
	return DefaultNavigation(), err
}

// SaveNavigationTo writes entries to path as TOML, creating the parent
// directory when needed.
func SaveNavigationTo(entries []nav.Entry, path string) error {
	if err := nav.ValidateEntries(entries); err != nil {
		return err
	}
	doc := tomlNavigation{Entries: make([]tomlEntry, 0, len(entries))}
	for _, e := range entries {
		te := tomlEntry{
			Name:     e.Name,
			Path:     e.Path,
			Icon:     e.Icon,
			Singular: e.Singular,
			Dropdown: e.HasDropdown,
		}
		for _, item := range e.SubItems {
			te.Items = append(te.Items, tomlSubItem(item))
		}
		doc.Entries = append(doc.Entries, te)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
		return fmt.Errorf("failed to encode navigation: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create navigation directory: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
