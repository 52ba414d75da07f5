package pdb

import (
	"github.com/wilhasse/go-rekordpdb/format"
)

// Table is one entry of the file's table directory: a semantic category of
// rows bound to a chain of pages running from FirstPage to LastPage.
type Table struct {
	Type           format.PageType
	EmptyCandidate uint32
	FirstPage      uint32
	LastPage       uint32
}

// Header is the file-wide header occupying page 0: the page size every
// on-disk offset is computed from, allocation bookkeeping, and the table
// directory. The raw page-0 image is retained for the write path.
type Header struct {
	PageSize       uint32
	NextUnusedPage uint32
	Unknown        uint32
	Sequence       uint32
	Tables         []Table

	raw []byte
}

// ParseHeader decodes the header from the full page-0 image.
func ParseHeader(buf []byte) (*Header, error) {
	if len(buf) < fileTablesOff {
		return nil, format.Errf("header of %d bytes truncated", len(buf))
	}
	magic, _ := format.Le32(buf, fileMagicOff)
	if magic != 0 {
		return nil, format.Errf("bad magic %#x", magic)
	}
	h := &Header{raw: append([]byte(nil), buf...)}
	h.PageSize, _ = format.Le32(buf, filePageSizeOff)
	if err := checkPageSize(h.PageSize); err != nil {
		return nil, err
	}
	if len(buf) != int(h.PageSize) {
		return nil, format.Errf("header page image is %d bytes, page size says %d", len(buf), h.PageSize)
	}
	numTables, _ := format.Le32(buf, fileNumTablesOff)
	h.NextUnusedPage, _ = format.Le32(buf, fileNextUnusedOff)
	h.Unknown, _ = format.Le32(buf, fileUnknownOff)
	h.Sequence, _ = format.Le32(buf, fileSequenceOff)
	dirEnd := fileTablesOff + int(numTables)*tableEntrySize
	if numTables > uint32(len(buf)) || dirEnd > len(buf) {
		return nil, format.Errf("table directory of %d entries exceeds page size %d", numTables, h.PageSize)
	}
	h.Tables = make([]Table, numTables)
	for i := range h.Tables {
		off := fileTablesOff + i*tableEntrySize
		typ, _ := format.Le32(buf, off)
		h.Tables[i].Type = format.PageType(typ)
		h.Tables[i].EmptyCandidate, _ = format.Le32(buf, off+4)
		h.Tables[i].FirstPage, _ = format.Le32(buf, off+8)
		h.Tables[i].LastPage, _ = format.Le32(buf, off+12)
	}
	return h, nil
}

func checkPageSize(size uint32) error {
	if size < minPageSize || size > maxPageSize || size&(size-1) != 0 {
		return format.Errf("implausible page size %d", size)
	}
	return nil
}

// TablesOfType returns the directory entries whose stored page type matches.
func (h *Header) TablesOfType(pt format.PageType) []Table {
	var out []Table
	for _, t := range h.Tables {
		if t.Type == pt {
			out = append(out, t)
		}
	}
	return out
}

// Encode re-serializes the header page over a copy of its original image.
func (h *Header) Encode() ([]byte, error) {
	out := append([]byte(nil), h.raw...)
	_ = format.PutLe32(out, fileMagicOff, 0)
	_ = format.PutLe32(out, filePageSizeOff, h.PageSize)
	_ = format.PutLe32(out, fileNumTablesOff, uint32(len(h.Tables)))
	_ = format.PutLe32(out, fileNextUnusedOff, h.NextUnusedPage)
	_ = format.PutLe32(out, fileUnknownOff, h.Unknown)
	_ = format.PutLe32(out, fileSequenceOff, h.Sequence)
	for i, t := range h.Tables {
		off := fileTablesOff + i*tableEntrySize
		if err := format.PutLe32(out, off, uint32(t.Type)); err != nil {
			return nil, format.Errf("table directory overruns header page")
		}
		_ = format.PutLe32(out, off+4, t.EmptyCandidate)
		_ = format.PutLe32(out, off+8, t.FirstPage)
		_ = format.PutLe32(out, off+12, t.LastPage)
	}
	return out, nil
}
