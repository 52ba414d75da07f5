package pdb

import (
	"github.com/wilhasse/go-rekordpdb/format"
)

// Page is one fixed-size block of the file. The 40-byte header is followed
// by the row heap; the row-group index grows backward from the page end.
// The raw page image is retained so that free space, deleted-row remnants
// and regions with no known layout survive a re-encode byte for byte.
type Page struct {
	Index    uint32
	Type     format.PageType
	NextPage uint32
	Unknown1 uint32
	Unknown2 uint32

	NumRowsSmall uint8
	Unknown3     uint8
	Unknown4     uint8
	PageFlags    uint8
	FreeSize     uint16
	UsedSize     uint16
	Unknown5     uint16
	NumRowsLarge uint16
	Unknown6     uint16
	Unknown7     uint16

	RowGroups []RowGroup

	raw []byte
}

// ParsePage decodes one page from its full on-disk image. `want` is the
// owning table's page type; a mismatch means the page chain is corrupt.
// Row groups are decoded only for data pages whose type has a known row
// layout; other pages keep their header and raw image only.
func ParsePage(buf []byte, want format.PageType) (*Page, error) {
	if len(buf) < PageHeaderSize+4 {
		return nil, format.Errf("page buffer of %d bytes shorter than page header", len(buf))
	}
	p := &Page{raw: append([]byte(nil), buf...)}
	p.Index, _ = format.Le32(buf, pageIndexOff)
	typ, _ := format.Le32(buf, pageTypeOff)
	p.Type = format.PageType(typ)
	p.NextPage, _ = format.Le32(buf, pageNextOff)
	p.Unknown1, _ = format.Le32(buf, pageUnknown1Off)
	p.Unknown2, _ = format.Le32(buf, pageUnknown2Off)
	p.NumRowsSmall = buf[pageNumRowsSOff]
	p.Unknown3 = buf[pageUnknown3Off]
	p.Unknown4 = buf[pageUnknown4Off]
	p.PageFlags = buf[pageFlagsOff]
	p.FreeSize, _ = format.Le16(buf, pageFreeSizeOff)
	p.UsedSize, _ = format.Le16(buf, pageUsedSizeOff)
	p.Unknown5, _ = format.Le16(buf, pageUnknown5Off)
	p.NumRowsLarge, _ = format.Le16(buf, pageNumRowsLOff)
	p.Unknown6, _ = format.Le16(buf, pageUnknown6Off)
	p.Unknown7, _ = format.Le16(buf, pageUnknown7Off)

	if p.Type != want {
		return nil, format.Errf("page %d has type %s, owning table expects %s", p.Index, p.Type, want)
	}

	if p.IsDataPage() && hasRowCodec(p.Type) {
		if err := p.parseRowGroups(); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *Page) parseRowGroups() error {
	numRows := p.NumRows()
	numGroups := (numRows + RowGroupSlots - 1) / RowGroupSlots
	if numGroups == 0 {
		numGroups = 1 // an empty page still carries one empty row group
	}
	p.RowGroups = make([]RowGroup, 0, numGroups)
	for gi := 0; gi < numGroups; gi++ {
		slots := RowGroupSlots
		if gi == numGroups-1 {
			slots = numRows - gi*RowGroupSlots
		}
		g, err := parseRowGroup(p.raw, gi, slots, p.Type)
		if err != nil {
			return format.Errf("page %d: %v", p.Index, err)
		}
		p.RowGroups = append(p.RowGroups, g)
	}
	return nil
}

// NumRows is the page's effective row slot count. The small counter caps at
// 255; larger pages use the 16-bit counter, whose 0x1fff sentinel marks it
// unused.
func (p *Page) NumRows() int {
	if p.NumRowsLarge > uint16(p.NumRowsSmall) && p.NumRowsLarge != numRowsLargeUnset {
		return int(p.NumRowsLarge)
	}
	return int(p.NumRowsSmall)
}

// IsDataPage reports whether the page holds row data. Pages with the
// non-data flag set appear inside chains but index nothing.
func (p *Page) IsDataPage() bool { return p.PageFlags&pageFlagNonData == 0 }

// Size is the page size in bytes.
func (p *Page) Size() int { return len(p.raw) }

// Encode re-serializes the page: every parsed header field, row-group index
// entry and present row is written over a copy of the original image, so
// regions the codec does not model pass through unchanged. For any page
// obtained from ParsePage the result is byte-identical to the input.
func (p *Page) Encode() ([]byte, error) {
	out := append([]byte(nil), p.raw...)
	_ = format.PutLe32(out, pageIndexOff, p.Index)
	_ = format.PutLe32(out, pageTypeOff, uint32(p.Type))
	_ = format.PutLe32(out, pageNextOff, p.NextPage)
	_ = format.PutLe32(out, pageUnknown1Off, p.Unknown1)
	_ = format.PutLe32(out, pageUnknown2Off, p.Unknown2)
	out[pageNumRowsSOff] = p.NumRowsSmall
	out[pageUnknown3Off] = p.Unknown3
	out[pageUnknown4Off] = p.Unknown4
	out[pageFlagsOff] = p.PageFlags
	_ = format.PutLe16(out, pageFreeSizeOff, p.FreeSize)
	_ = format.PutLe16(out, pageUsedSizeOff, p.UsedSize)
	_ = format.PutLe16(out, pageUnknown5Off, p.Unknown5)
	_ = format.PutLe16(out, pageNumRowsLOff, p.NumRowsLarge)
	_ = format.PutLe16(out, pageUnknown6Off, p.Unknown6)
	_ = format.PutLe16(out, pageUnknown7Off, p.Unknown7)
	for gi := range p.RowGroups {
		if err := p.RowGroups[gi].encodeInto(out, gi); err != nil {
			return nil, format.Errf("page %d: %v", p.Index, err)
		}
	}
	return out, nil
}
