package pdb

import (
	"fmt"
	"io"

	"github.com/wilhasse/go-rekordpdb/format"
)

// Reexport decodes the file behind r and writes an equivalent file to w.
// Pages are emitted in file order: the header page is re-encoded from its
// parsed fields, every page reachable from the table directory is decoded
// and re-encoded field by field, and pages no chain claims (free or
// not yet used) pass through verbatim, the page-level analog of carrying
// unknown row fields opaquely. For any input the codec decodes without
// error, the output is byte-identical to the input.
func Reexport(r io.ReaderAt, size int64, w io.Writer) error {
	rd, err := NewReader(r)
	if err != nil {
		return err
	}
	h := rd.Header
	pageSize := int64(h.PageSize)
	numPages := size / pageSize

	// Map each chained page index to its owning table's type. Chains are
	// walked page by page; only the index map is retained.
	owner := make(map[uint32]format.PageType)
	for _, t := range h.Tables {
		it := rd.Pages(t)
		for {
			page, err := it.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				return err
			}
			if page.Index == 0 || int64(page.Index) >= numPages {
				return format.Errf("%s chain references page %d outside the file", t.Type, page.Index)
			}
			owner[page.Index] = t.Type
		}
	}

	hdr, err := h.Encode()
	if err != nil {
		return err
	}
	if err := writeAll(w, hdr); err != nil {
		return err
	}

	buf := make([]byte, pageSize)
	for idx := int64(1); idx < numPages; idx++ {
		var out []byte
		if pt, ok := owner[uint32(idx)]; ok {
			page, err := rd.ReadPage(uint32(idx), pt)
			if err != nil {
				return err
			}
			out, err = page.Encode()
			if err != nil {
				return err
			}
		} else {
			if _, err := r.ReadAt(buf, idx*pageSize); err != nil {
				return fmt.Errorf("read page %d: %w", idx, err)
			}
			out = buf
		}
		if err := writeAll(w, out); err != nil {
			return err
		}
	}

	// A trailing fragment smaller than a page is preserved as-is.
	if rem := size - numPages*pageSize; rem > 0 {
		tail := make([]byte, rem)
		if _, err := r.ReadAt(tail, numPages*pageSize); err != nil {
			return fmt.Errorf("read trailing fragment: %w", err)
		}
		if err := writeAll(w, tail); err != nil {
			return err
		}
	}
	return nil
}

func writeAll(w io.Writer, b []byte) error {
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
