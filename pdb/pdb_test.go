package pdb

import (
	"encoding/binary"

	"github.com/wilhasse/go-rekordpdb/format"
)

// Synthetic page/file builders shared by the tests in this package. They
// write the on-disk layout by hand so the decoder is exercised against
// independently constructed bytes, not against its own encoder.

const testPageSize = 4096

// shortStr frames content as a short-form DeviceString.
func shortStr(content string) []byte {
	out := make([]byte, 1+len(content))
	out[0] = byte(2*(len(content)+1) + 1)
	copy(out[1:], content)
	return out
}

func le32(v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return b[:]
}

func genreRow(id uint32, name string) []byte {
	return append(le32(id), shortStr(name+"\x00")...)
}

func artistRow(id uint32, name string) []byte {
	row := make([]byte, 10)
	binary.LittleEndian.PutUint16(row[0:], artistSubtypeNear)
	binary.LittleEndian.PutUint16(row[2:], 0)
	binary.LittleEndian.PutUint32(row[4:], id)
	row[8] = 0x03
	row[9] = 10 // name immediately after the fixed part
	return append(row, shortStr(name+"\x00")...)
}

func playlistTreeRow(id, parent, sortOrder, rawIsFolder uint32, name string) []byte {
	row := make([]byte, 20)
	binary.LittleEndian.PutUint32(row[0:], parent)
	binary.LittleEndian.PutUint32(row[4:], 0)
	binary.LittleEndian.PutUint32(row[8:], sortOrder)
	binary.LittleEndian.PutUint32(row[12:], id)
	binary.LittleEndian.PutUint32(row[16:], rawIsFolder)
	return append(row, shortStr(name+"\x00")...)
}

// rowSpec describes one slot of a synthetic page: absent slots carry no
// bytes but still occupy a slot and an index entry.
type rowSpec struct {
	data    []byte
	present bool
}

func present(data []byte) rowSpec { return rowSpec{data: data, present: true} }
func absent() rowSpec             { return rowSpec{} }

// buildPage lays out a page: 40-byte header, row bodies packed in the
// heap, row-group index at the tail.
func buildPage(pageSize int, pt format.PageType, index, next uint32, rows []rowSpec) []byte {
	buf := make([]byte, pageSize)
	binary.LittleEndian.PutUint32(buf[pageIndexOff:], index)
	binary.LittleEndian.PutUint32(buf[pageTypeOff:], uint32(pt))
	binary.LittleEndian.PutUint32(buf[pageNextOff:], next)
	buf[pageNumRowsSOff] = byte(len(rows))
	binary.LittleEndian.PutUint16(buf[pageNumRowsLOff:], numRowsLargeUnset)

	heap := PageHeaderSize
	numGroups := (len(rows) + RowGroupSlots - 1) / RowGroupSlots
	if numGroups == 0 {
		numGroups = 1
	}
	for gi := 0; gi < numGroups; gi++ {
		base := pageSize - gi*rowGroupFootprint
		slots := RowGroupSlots
		if gi == numGroups-1 {
			slots = len(rows) - gi*RowGroupSlots
		}
		var flags uint16
		for i := 0; i < slots; i++ {
			spec := rows[gi*RowGroupSlots+i]
			if spec.present {
				flags |= 1 << uint(i)
				binary.LittleEndian.PutUint16(buf[base-6-2*i:], uint16(heap-PageHeaderSize))
				copy(buf[heap:], spec.data)
				heap += len(spec.data)
			}
		}
		binary.LittleEndian.PutUint16(buf[base-4:], flags)
	}
	binary.LittleEndian.PutUint16(buf[pageUsedSizeOff:], uint16(heap-PageHeaderSize))
	free := pageSize - numGroups*rowGroupFootprint - heap
	binary.LittleEndian.PutUint16(buf[pageFreeSizeOff:], uint16(free))
	return buf
}

// buildFile assembles a whole PDB image from a table directory and page
// images keyed by page index. Page 0 is the header page.
func buildFile(pageSize int, tables []Table, pages map[uint32][]byte) []byte {
	numPages := uint32(1)
	for idx := range pages {
		if idx+1 > numPages {
			numPages = idx + 1
		}
	}
	file := make([]byte, int(numPages)*pageSize)
	binary.LittleEndian.PutUint32(file[filePageSizeOff:], uint32(pageSize))
	binary.LittleEndian.PutUint32(file[fileNumTablesOff:], uint32(len(tables)))
	binary.LittleEndian.PutUint32(file[fileNextUnusedOff:], numPages)
	binary.LittleEndian.PutUint32(file[fileSequenceOff:], 1)
	for i, t := range tables {
		off := fileTablesOff + i*tableEntrySize
		binary.LittleEndian.PutUint32(file[off:], uint32(t.Type))
		binary.LittleEndian.PutUint32(file[off+4:], t.EmptyCandidate)
		binary.LittleEndian.PutUint32(file[off+8:], t.FirstPage)
		binary.LittleEndian.PutUint32(file[off+12:], t.LastPage)
	}
	for idx, page := range pages {
		copy(file[int(idx)*pageSize:], page)
	}
	return file
}
