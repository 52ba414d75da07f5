package pdb

import (
	"errors"
	"fmt"
	"io"

	"github.com/wilhasse/go-rekordpdb/format"
)

// maxChainPages bounds any single page-chain walk. A chain longer than
// this cannot be addressed by the 32-bit page indices of real files and
// indicates a next_page cycle.
const maxChainPages = 1 << 22

// Reader decodes a PDB file from an io.ReaderAt. It owns the cursor for
// the duration of a traversal; pages are materialized one at a time while
// a chain is walked, never held as a whole-file collection.
type Reader struct {
	r      io.ReaderAt
	Header *Header
}

// NewReader reads and validates the file header and returns a reader for
// the table chains.
func NewReader(r io.ReaderAt) (*Reader, error) {
	var head [8]byte
	if _, err := r.ReadAt(head[:], 0); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, format.Errf("file shorter than header prelude")
		}
		return nil, fmt.Errorf("read header prelude: %w", err)
	}
	pageSize, _ := format.Le32(head[:], filePageSizeOff)
	if err := checkPageSize(pageSize); err != nil {
		return nil, err
	}
	buf := make([]byte, pageSize)
	if _, err := r.ReadAt(buf, 0); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, format.Errf("file truncated inside header page")
		}
		return nil, fmt.Errorf("read header page: %w", err)
	}
	h, err := ParseHeader(buf)
	if err != nil {
		return nil, err
	}
	return &Reader{r: r, Header: h}, nil
}

// ReadPage reads and decodes the page at the given index, checking its
// type against the owning table's.
func (rd *Reader) ReadPage(index uint32, want format.PageType) (*Page, error) {
	buf := make([]byte, rd.Header.PageSize)
	off := int64(index) * int64(rd.Header.PageSize)
	if _, err := rd.r.ReadAt(buf, off); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, format.Errf("file truncated inside page %d", index)
		}
		return nil, fmt.Errorf("read page %d: %w", index, err)
	}
	return ParsePage(buf, want)
}

// Pages returns a lazy iterator over the table's page chain, from
// FirstPage to LastPage in on-disk chain order. The iterator is finite and
// restartable: call Pages again for a fresh traversal.
func (rd *Reader) Pages(t Table) *PageIter {
	return &PageIter{rd: rd, table: t, next: t.FirstPage}
}

// PageIter walks one table's page chain. Next returns io.EOF after the
// last page. Any decode error aborts the traversal; the packed layout has
// no redundant framing to resynchronize from.
type PageIter struct {
	rd    *Reader
	table Table
	next  uint32
	steps int
	done  bool
	err   error
}

func (it *PageIter) Next() (*Page, error) {
	if it.err != nil {
		return nil, it.err
	}
	if it.done {
		return nil, io.EOF
	}
	if it.steps >= maxChainPages {
		it.err = format.Errf("%s chain exceeds %d pages, assuming a cycle", it.table.Type, maxChainPages)
		return nil, it.err
	}
	it.steps++
	page, err := it.rd.ReadPage(it.next, it.table.Type)
	if err != nil {
		it.err = err
		return nil, err
	}
	if page.Index == it.table.LastPage {
		it.done = true
	} else {
		if page.NextPage == it.next || page.NextPage == 0 {
			it.err = format.Errf("%s chain stalls at page %d", it.table.Type, page.Index)
			return nil, it.err
		}
		it.next = page.NextPage
	}
	return page, nil
}
