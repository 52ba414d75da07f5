package pdb

// On-disk geometry constants
const (
	// File header (page 0)
	fileMagicOff      = 0x00 // u32, always 0
	filePageSizeOff   = 0x04 // u32
	fileNumTablesOff  = 0x08 // u32
	fileNextUnusedOff = 0x0c // u32
	fileUnknownOff    = 0x10 // u32
	fileSequenceOff   = 0x14 // u32
	fileGapOff        = 0x18 // u32, always 0
	fileTablesOff     = 0x1c
	tableEntrySize    = 16

	// Page header
	PageHeaderSize  = 0x28
	pageGapOff      = 0x00 // u32, always 0
	pageIndexOff    = 0x04 // u32
	pageTypeOff     = 0x08 // u32
	pageNextOff     = 0x0c // u32
	pageUnknown1Off = 0x10 // u32
	pageUnknown2Off = 0x14 // u32
	pageNumRowsSOff = 0x18 // u8
	pageUnknown3Off = 0x19 // u8
	pageUnknown4Off = 0x1a // u8
	pageFlagsOff    = 0x1b // u8
	pageFreeSizeOff = 0x1c // u16
	pageUsedSizeOff = 0x1e // u16
	pageUnknown5Off = 0x20 // u16
	pageNumRowsLOff = 0x22 // u16
	pageUnknown6Off = 0x24 // u16
	pageUnknown7Off = 0x26 // u16

	// Row index at the page tail. Each group's index occupies a fixed
	// 0x24-byte footprint growing backward from the page end: an unknown
	// u16 at base-2, the presence bitmask at base-4, and one u16 heap
	// offset per slot at base-6-2i.
	RowGroupSlots     = 16
	rowGroupFootprint = 0x24

	// Sentinel in num_rows_large meaning the large counter is unused.
	numRowsLargeUnset = 0x1fff

	// Page flag bit set on pages that hold no row data.
	pageFlagNonData = 0x40

	minPageSize = 512
	maxPageSize = 1 << 16
)
