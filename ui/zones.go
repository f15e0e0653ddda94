package ui

import "fmt"

// Zone ID constants for bubblezone hit detection.
// These are used both in render paths (zone.Mark) and input paths (zone.Get().InBounds).
const (
	ZoneNavMore      = "zone-nav-more"
	ZoneMorePanel    = "zone-more-panel"
	ZoneSidebarClose = "zone-sidebar-close"
	ZoneContent      = "zone-content"
	ZoneLayoutToggle = "zone-layout-toggle"
)

// NavTabZoneID returns the zone ID of a top-bar entry trigger.
func NavTabZoneID(name string) string {
	return "zone-nav-tab-" + name
}

// NavPanelZoneID returns the zone ID of an entry's dropdown panel.
func NavPanelZoneID(name string) string {
	return "zone-nav-panel-" + name
}

// NavItemZoneID returns the zone ID of row idx in an entry's dropdown.
func NavItemZoneID(name string, idx int) string {
	return fmt.Sprintf("zone-nav-item-%s-%d", name, idx)
}

// MoreRowZoneID returns the zone ID of an overflowed entry's row in the
// more menu.
func MoreRowZoneID(name string) string {
	return "zone-more-row-" + name
}

// SubPanelZoneID returns the zone ID of an overflowed entry's submenu.
func SubPanelZoneID(name string) string {
	return "zone-sub-panel-" + name
}

// SubItemZoneID returns the zone ID of row idx in an overflowed entry's
// submenu.
func SubItemZoneID(name string, idx int) string {
	return fmt.Sprintf("zone-sub-item-%s-%d", name, idx)
}

// SidebarRowZoneID returns the zone ID for a sidebar row by its rows-slice index.
func SidebarRowZoneID(idx int) string {
	return fmt.Sprintf("zone-sidebar-row-%d", idx)
}
