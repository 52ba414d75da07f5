// Package rekordpdb provides a Go library for reading and losslessly
// re-writing the paged database files (.PDB) that Pioneer DJ hardware and
// software write to removable media, plus the sibling analysis and
// preference file formats found next to them.
//
// The library is organized into logical groups of functionality:
//
// Core Types and Utilities:
//   - format/: PageType constants, error types (FormatError,
//     UnsupportedVariantError), bounds-checked endian helpers
//
// Database Codec (the core):
//   - pdb/header.go: file header and table directory
//   - pdb/page.go: fixed-size page codec
//   - pdb/rowgroup.go: backward-packed 16-slot row index with presence bitmask
//   - pdb/row.go, pdb/track.go: per-page-type row variant codecs
//   - pdb/string.go: DeviceString variable-length string sub-format
//   - pdb/reader.go: lazy page-chain traversal over an io.ReaderAt
//   - pdb/writer.go: whole-file byte-identical re-export
//   - pdb/playlist.go: playlist hierarchy reconstruction
//
// Sibling Formats:
//   - anlz/: tagged-chunk analysis files (ANLZXXXX.DAT)
//   - setting/: preference files (*SETTING.DAT)
//
// Basic usage:
//
//	file, _ := os.Open("export.pdb")
//	defer file.Close()
//
//	reader, _ := pdb.NewReader(file)
//	for _, table := range reader.Header.Tables {
//		it := reader.Pages(table)
//		for {
//			page, err := it.Next()
//			if err == io.EOF {
//				break
//			}
//			for _, group := range page.RowGroups {
//				for _, row := range group.PresentRows() {
//					// row is *pdb.Track, *pdb.Artist, ... per table.Type
//				}
//			}
//		}
//	}
//
// Decoding and re-encoding a file reproduces it byte for byte: unknown
// fields, free space and unrecognized pages are carried through opaquely
// rather than normalized, because the format is reverse-engineered and any
// lossy rewrite could corrupt data for the original hardware.
package rekordpdb
