package nav

import "strings"

// DropdownItems returns the rows a dropdown for e lists: the configured
// SubItems in order, or three synthesized actions when none are configured.
func DropdownItems(e Entry) []SubEntry {
	if len(e.SubItems) > 0 {
		items := make([]SubEntry, len(e.SubItems))
		copy(items, e.SubItems)
		return items
	}
	base := strings.TrimRight(e.Path, "/")
	return []SubEntry{
		{Name: "View All " + e.Name, Path: e.Path, Icon: e.Icon},
		{Name: "Add New " + e.SingularName(), Path: base + "/new", Icon: "+"},
		{Name: e.Name + " Reports", Path: base + "/reports", Icon: "≡"},
	}
}
