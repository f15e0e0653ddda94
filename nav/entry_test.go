package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEntries(t *testing.T) {
	require.NoError(t, ValidateEntries(exampleEntries()))
	require.NoError(t, ValidateEntries(nil))

	err := ValidateEntries([]Entry{{Name: "A", Path: "/a"}, {Name: "A", Path: "/b"}})
	assert.ErrorIs(t, err, ErrDuplicateEntry)

	err = ValidateEntries([]Entry{{Name: " ", Path: "/a"}})
	assert.ErrorIs(t, err, ErrEmptyName)

	err = ValidateEntries([]Entry{{Name: "A"}})
	assert.ErrorIs(t, err, ErrEmptyPath)

	err = ValidateEntries([]Entry{{Name: "A", Path: "/a", SubItems: []SubEntry{{Name: "x"}}}})
	assert.ErrorIs(t, err, ErrEmptyPath)
}

func TestEntry_SingularName(t *testing.T) {
	assert.Equal(t, "Patient", Entry{Name: "Patients"}.SingularName())
	assert.Equal(t, "CRM", Entry{Name: "CRM"}.SingularName())
	assert.Equal(t, "Vital Sign", Entry{Name: "Vitals", Singular: "Vital Sign"}.SingularName())
	assert.Equal(t, "s", Entry{Name: "s"}.SingularName())
}

func TestEntry_Label(t *testing.T) {
	assert.Equal(t, "Patients", Entry{Name: "Patients"}.Label())
	assert.Equal(t, "◆ Patients", Entry{Name: "Patients", Icon: "◆"}.Label())
}

func TestDropdownItems_Configured(t *testing.T) {
	e := Entry{Name: "Patients", Path: "/patients", HasDropdown: true, SubItems: []SubEntry{
		{Name: "Zeta", Path: "/z"},
		{Name: "Alpha", Path: "/a"},
	}}
	items := DropdownItems(e)
	require.Len(t, items, 2)
	assert.Equal(t, "Zeta", items[0].Name, "configured order preserved")
	assert.Equal(t, "Alpha", items[1].Name)

	items[0].Name = "mutated"
	assert.Equal(t, "Zeta", e.SubItems[0].Name, "returned slice is a copy")
}

func TestDropdownItems_Synthesized(t *testing.T) {
	items := DropdownItems(Entry{Name: "Appointments", Path: "/appointments/", HasDropdown: true})
	require.Len(t, items, 3)
	assert.Equal(t, "View All Appointments", items[0].Name)
	assert.Equal(t, "Add New Appointment", items[1].Name)
	assert.Equal(t, "/appointments/new", items[1].Path)
	assert.Equal(t, "Appointments Reports", items[2].Name)
	assert.Equal(t, "/appointments/reports", items[2].Path)
}

func TestResolve(t *testing.T) {
	entries := []Entry{
		{Name: "Patients", Path: "/patients", HasDropdown: true},
		{Name: "Vitals", Path: "/vitals", SubItems: []SubEntry{{Name: "Trends", Path: "/vitals/trends"}}},
	}

	e, sub, ok := Resolve(entries, "/patients")
	require.True(t, ok)
	assert.Equal(t, "Patients", e.Name)
	assert.Empty(t, sub.Name)

	e, sub, ok = Resolve(entries, "/patients/new")
	require.True(t, ok)
	assert.Equal(t, "Patients", e.Name)
	assert.Equal(t, "Add New Patient", sub.Name)

	e, sub, ok = Resolve(entries, "/vitals/trends")
	require.True(t, ok)
	assert.Equal(t, "Vitals", e.Name)
	assert.Equal(t, "Trends", sub.Name)

	_, _, ok = Resolve(entries, "/nowhere")
	assert.False(t, ok)
}

func TestFindEntry(t *testing.T) {
	e, ok := FindEntry(exampleEntries(), "CRM")
	require.True(t, ok)
	assert.Equal(t, "/crm", e.Path)
	_, ok = FindEntry(exampleEntries(), "Nope")
	assert.False(t, ok)
}
