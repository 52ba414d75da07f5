package pdb

import (
	"github.com/wilhasse/go-rekordpdb/format"
)

// RowGroup is one fixed-capacity run of up to 16 rows. Row bodies live in
// the page heap; the group's index entries live at the page tail, growing
// backward from the end. Bit i of PresentFlags is set iff slot i holds a
// live row; cleared bits mark deleted rows whose index slot is retained
// without compaction, so absent bits can appear anywhere in the group.
type RowGroup struct {
	PresentFlags uint16
	Unknown      uint16   // trailing u16 of the group footprint
	Offsets      []uint16 // heap offsets, one per slot, kept even for absent slots
	rows         []Row    // decoded rows, nil for absent slots
}

// parseRowGroup decodes group index `group` of a page buffer and the rows
// it marks present. `slots` is the slot count for this group (16 for all
// but the final group), `pt` the owning table's page type.
func parseRowGroup(p []byte, group, slots int, pt format.PageType) (RowGroup, error) {
	base := len(p) - group*rowGroupFootprint
	low := base - 6 - 2*(slots-1)
	if slots == 0 {
		low = base - 4
	}
	if base > len(p) || low < PageHeaderSize {
		return RowGroup{}, format.Errf("row group %d index escapes page bounds", group)
	}
	g := RowGroup{Offsets: make([]uint16, slots), rows: make([]Row, slots)}
	g.PresentFlags, _ = format.Le16(p, base-4)
	g.Unknown, _ = format.Le16(p, base-2)
	for i := 0; i < slots; i++ {
		g.Offsets[i], _ = format.Le16(p, base-6-2*i)
		if g.PresentFlags&(1<<uint(i)) == 0 {
			continue
		}
		rowBase := PageHeaderSize + int(g.Offsets[i])
		if rowBase >= len(p) {
			return RowGroup{}, format.Errf("row group %d slot %d: offset %#x beyond page", group, i, g.Offsets[i])
		}
		row, err := decodeRow(p, rowBase, pt)
		if err != nil {
			return RowGroup{}, err
		}
		g.rows[i] = row
	}
	return g, nil
}

// encodeInto writes the group's index entries and every present row back
// into a page buffer.
func (g *RowGroup) encodeInto(p []byte, group int) error {
	base := len(p) - group*rowGroupFootprint
	low := base - 6 - 2*(len(g.Offsets)-1)
	if len(g.Offsets) == 0 {
		low = base - 4
	}
	if base > len(p) || low < PageHeaderSize {
		return format.Errf("row group %d index escapes page bounds", group)
	}
	_ = format.PutLe16(p, base-4, g.PresentFlags)
	_ = format.PutLe16(p, base-2, g.Unknown)
	for i, ofs := range g.Offsets {
		_ = format.PutLe16(p, base-6-2*i, ofs)
		if g.rows[i] == nil {
			continue
		}
		if err := g.rows[i].encodeInto(p, PageHeaderSize+int(ofs)); err != nil {
			return err
		}
	}
	return nil
}

// NumSlots is the number of row slots this group indexes, live or not.
func (g *RowGroup) NumSlots() int { return len(g.Offsets) }

// RowAt returns the decoded row in the given slot, or false if the slot is
// absent.
func (g *RowGroup) RowAt(slot int) (Row, bool) {
	if slot < 0 || slot >= len(g.rows) || g.rows[slot] == nil {
		return nil, false
	}
	return g.rows[slot], true
}

// PresentRows returns the live rows in ascending slot order. Absent slots
// contribute nothing; there are no placeholders.
func (g *RowGroup) PresentRows() []Row {
	out := make([]Row, 0, len(g.rows))
	for _, r := range g.rows {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}
