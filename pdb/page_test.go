package pdb

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wilhasse/go-rekordpdb/format"
)

func TestParsePageDecodesRows(t *testing.T) {
	rows := []rowSpec{
		present(genreRow(1, "House")),
		present(genreRow(2, "Techno")),
		present(genreRow(3, "Dub")),
	}
	buf := buildPage(testPageSize, format.PageTypeGenres, 5, 0, rows)

	page, err := ParsePage(buf, format.PageTypeGenres)
	require.NoError(t, err)
	assert.Equal(t, uint32(5), page.Index)
	assert.Equal(t, 3, page.NumRows())
	require.Len(t, page.RowGroups, 1)

	out := page.RowGroups[0].PresentRows()
	require.Len(t, out, 3)
	names := []string{}
	for _, row := range out {
		names = append(names, row.(*Genre).Name.Value())
	}
	assert.Equal(t, []string{"House", "Techno", "Dub"}, names)
}

func TestPresenceBitmaskSkipsAbsentSlots(t *testing.T) {
	// Slots 0 and 2 live, slot 1 deleted: two rows, ascending slot
	// order, no placeholder for the hole.
	rows := []rowSpec{
		present(genreRow(10, "Keep")),
		absent(),
		present(genreRow(30, "Also")),
	}
	buf := buildPage(testPageSize, format.PageTypeGenres, 1, 0, rows)

	page, err := ParsePage(buf, format.PageTypeGenres)
	require.NoError(t, err)
	require.Len(t, page.RowGroups, 1)
	g := &page.RowGroups[0]
	assert.Equal(t, uint16(0b101), g.PresentFlags)
	assert.Equal(t, 3, g.NumSlots())

	out := g.PresentRows()
	require.Len(t, out, 2)
	assert.Equal(t, uint32(10), out[0].(*Genre).ID)
	assert.Equal(t, uint32(30), out[1].(*Genre).ID)

	_, ok := g.RowAt(1)
	assert.False(t, ok)
}

func TestEmptyPageHasOneEmptyRowGroup(t *testing.T) {
	buf := buildPage(testPageSize, format.PageTypeGenres, 1, 0, nil)
	page, err := ParsePage(buf, format.PageTypeGenres)
	require.NoError(t, err)
	assert.Equal(t, 0, page.NumRows())
	require.Len(t, page.RowGroups, 1)
	assert.Equal(t, 0, page.RowGroups[0].NumSlots())
	assert.Empty(t, page.RowGroups[0].PresentRows())
}

func TestPartialFinalRowGroup(t *testing.T) {
	rows := make([]rowSpec, 0, 19)
	for i := 0; i < 19; i++ {
		rows = append(rows, present(genreRow(uint32(i+1), "G")))
	}
	buf := buildPage(testPageSize, format.PageTypeGenres, 1, 0, rows)

	page, err := ParsePage(buf, format.PageTypeGenres)
	require.NoError(t, err)
	require.Len(t, page.RowGroups, 2)
	assert.Equal(t, RowGroupSlots, page.RowGroups[0].NumSlots())
	assert.Equal(t, 3, page.RowGroups[1].NumSlots())
	assert.Len(t, page.RowGroups[0].PresentRows(), 16)
	assert.Len(t, page.RowGroups[1].PresentRows(), 3)
}

func TestParsePageTypeMismatch(t *testing.T) {
	buf := buildPage(testPageSize, format.PageTypeGenres, 1, 0, nil)
	_, err := ParsePage(buf, format.PageTypeArtists)
	var ferr *format.FormatError
	require.Error(t, err)
	assert.True(t, errors.As(err, &ferr))
}

func TestParsePageCorruptRowOffset(t *testing.T) {
	buf := buildPage(testPageSize, format.PageTypeGenres, 1, 0, []rowSpec{present(genreRow(1, "x"))})
	// Point slot 0's heap offset past the page end.
	buf[testPageSize-6] = 0xff
	buf[testPageSize-5] = 0xff
	_, err := ParsePage(buf, format.PageTypeGenres)
	var ferr *format.FormatError
	require.Error(t, err)
	assert.True(t, errors.As(err, &ferr))
}

func TestParsePageCorruptStringLength(t *testing.T) {
	// A genre row whose short string claims more content than the page
	// holds past the row.
	row := append(le32(1), 0xff) // tag claims a 126-byte content run
	buf := buildPage(testPageSize, format.PageTypeGenres, 1, 0, []rowSpec{present(row)})
	// Move the row right under the row index so the claimed content
	// cannot fit inside the page.
	rowBase := testPageSize - 6 - len(row)
	copy(buf[rowBase:], row)
	buf[testPageSize-6] = byte(rowBase - PageHeaderSize)
	buf[testPageSize-5] = byte((rowBase - PageHeaderSize) >> 8)
	_, err := ParsePage(buf, format.PageTypeGenres)
	var ferr *format.FormatError
	require.Error(t, err)
	assert.True(t, errors.As(err, &ferr))
}

func TestNumRowsLargeCounter(t *testing.T) {
	// Non-data page so only the header is interpreted.
	buf := buildPage(testPageSize, format.PageTypeGenres, 1, 0, nil)
	buf[pageFlagsOff] |= pageFlagNonData
	buf[pageNumRowsSOff] = 7

	// Large counter at the 0x1fff sentinel: the small counter wins.
	buf[pageNumRowsLOff] = 0xff
	buf[pageNumRowsLOff+1] = 0x1f
	page, err := ParsePage(buf, format.PageTypeGenres)
	require.NoError(t, err)
	assert.Equal(t, 7, page.NumRows())

	// A real large counter overrides the small one.
	buf[pageNumRowsLOff] = 0x2c
	buf[pageNumRowsLOff+1] = 0x01
	page, err = ParsePage(buf, format.PageTypeGenres)
	require.NoError(t, err)
	assert.Equal(t, 300, page.NumRows())
}

func TestPageEncodeRoundTrip(t *testing.T) {
	rows := []rowSpec{
		present(artistRow(1, "First Artist")),
		absent(),
		present(artistRow(3, "Third Artist")),
	}
	buf := buildPage(testPageSize, format.PageTypeArtists, 2, 0, rows)

	page, err := ParsePage(buf, format.PageTypeArtists)
	require.NoError(t, err)
	out, err := page.Encode()
	require.NoError(t, err)
	assert.Equal(t, buf, out)
}
