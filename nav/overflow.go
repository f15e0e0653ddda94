package nav

// Partition is the split of an entry list into inline and overflowed entries.
// Each input entry appears in exactly one bucket, in input order.
type Partition struct {
	Visible  []Entry
	Overflow []Entry
}

// IsOverflowed reports whether the named entry sits in the overflow bucket.
func (p Partition) IsOverflowed(name string) bool {
	for _, e := range p.Overflow {
		if e.Name == name {
			return true
		}
	}
	return false
}

// PartitionEntries splits entries greedily from the left: an entry is
// visible while used+width+spacing fits in available. The first entry that
// does not fit and every entry after it overflow, even if a later, narrower
// entry would fit the remaining space.
func PartitionEntries(entries []Entry, available int, m Measurer, spacing int) Partition {
	p := Partition{
		Visible:  make([]Entry, 0, len(entries)),
		Overflow: make([]Entry, 0),
	}
	used := 0
	overflowing := available <= 0
	for _, e := range entries {
		if !overflowing {
			w := m.Width(e) + spacing
			if used+w <= available {
				p.Visible = append(p.Visible, e)
				used += w
				continue
			}
			overflowing = true
		}
		p.Overflow = append(p.Overflow, e)
	}
	return p
}

// Reserved holds the widths the top bar keeps for chrome around the entries.
type Reserved struct {
	Logo    int
	Right   int
	Padding int
	// MinNav is the smallest entry area worth rendering; anything narrower
	// is treated as zero.
	MinNav int
}

// AvailableWidth returns the cells left for entries in a container. It is
// never negative, and collapses to zero below r.MinNav.
func AvailableWidth(container int, r Reserved) int {
	avail := container - r.Logo - r.Right - r.Padding
	if avail < 0 || avail < r.MinNav {
		return 0
	}
	return avail
}

// OverflowCalculator keeps the last computed partition for one top bar.
// Until a measured container width arrives, it has no partition, which is
// distinct from an empty one.
type OverflowCalculator struct {
	entries  []Entry
	measurer Measurer
	spacing  int
	reserved Reserved

	partition Partition
	computed  bool
	available int
}

// NewOverflowCalculator returns a calculator that has not yet computed.
func NewOverflowCalculator(entries []Entry, m Measurer, spacing int) *OverflowCalculator {
	return &OverflowCalculator{
		entries:  entries,
		measurer: m,
		spacing:  spacing,
	}
}

// SetEntries replaces the entry list. The caller schedules a recompute.
func (c *OverflowCalculator) SetEntries(entries []Entry) {
	c.entries = entries
}

// Entries returns the current entry list.
func (c *OverflowCalculator) Entries() []Entry {
	return c.entries
}

// SetMeasurer swaps the width strategy, e.g. from estimates to real
// measurement after the first paint.
func (c *OverflowCalculator) SetMeasurer(m Measurer) {
	c.measurer = m
}

// SetReserved updates the reserved chrome widths. It reports whether they
// changed.
func (c *OverflowCalculator) SetReserved(r Reserved) bool {
	if c.reserved == r {
		return false
	}
	c.reserved = r
	return true
}

func (c *OverflowCalculator) Reserved() Reserved {
	return c.reserved
}

// Recompute partitions the entries for a container width. A non-positive
// width means the container is not measured yet: the cycle is skipped, the
// previous partition is kept and false is returned.
func (c *OverflowCalculator) Recompute(containerWidth int) bool {
	if containerWidth <= 0 || c.measurer == nil {
		return false
	}
	c.available = AvailableWidth(containerWidth, c.reserved)
	c.partition = PartitionEntries(c.entries, c.available, c.measurer, c.spacing)
	c.computed = true
	return true
}

// Partition returns the last partition and whether one has been computed.
func (c *OverflowCalculator) Partition() (Partition, bool) {
	return c.partition, c.computed
}

// Available returns the entry-area width used by the last recompute.
func (c *OverflowCalculator) Available() int {
	return c.available
}
