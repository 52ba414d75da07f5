package pdb

import (
	"github.com/wilhasse/go-rekordpdb/format"
)

// Row is the closed set of row variants, one per page type. A row's variant
// is decided by the page type of its owning table; row bytes are not
// self-describing. Fields whose meaning has not been reverse-engineered are
// kept verbatim under UnknownN names so re-encoding reproduces them.
//
// Rows are addressed relative to the page heap: decode and encode both
// operate on the full page buffer with the row's base offset, because
// embedded string offsets are relative to the row base.
type Row interface {
	encodeInto(p []byte, base int) error
}

// decodeRow decodes the row starting at p[base] according to the owning
// table's page type.
func decodeRow(p []byte, base int, pt format.PageType) (Row, error) {
	switch pt {
	case format.PageTypeTracks:
		return parseTrack(p, base)
	case format.PageTypeGenres:
		return parseGenre(p, base)
	case format.PageTypeArtists:
		return parseArtist(p, base)
	case format.PageTypeAlbums:
		return parseAlbum(p, base)
	case format.PageTypeLabels:
		return parseLabel(p, base)
	case format.PageTypeKeys:
		return parseKey(p, base)
	case format.PageTypeColors:
		return parseColor(p, base)
	case format.PageTypePlaylistTree:
		return parsePlaylistTreeNode(p, base)
	case format.PageTypePlaylistEntries:
		return parsePlaylistEntry(p, base)
	case format.PageTypeHistoryPlaylists:
		return parseHistoryPlaylist(p, base)
	case format.PageTypeHistoryEntries:
		return parseHistoryEntry(p, base)
	case format.PageTypeArtwork:
		return parseArtwork(p, base)
	default:
		return nil, &format.UnsupportedVariantError{PageType: pt}
	}
}

// hasRowCodec reports whether the page type has a known row layout.
func hasRowCodec(pt format.PageType) bool {
	switch pt {
	case format.PageTypeTracks, format.PageTypeGenres, format.PageTypeArtists,
		format.PageTypeAlbums, format.PageTypeLabels, format.PageTypeKeys,
		format.PageTypeColors, format.PageTypePlaylistTree,
		format.PageTypePlaylistEntries, format.PageTypeHistoryPlaylists,
		format.PageTypeHistoryEntries, format.PageTypeArtwork:
		return true
	}
	return false
}

func checkRowBounds(p []byte, base, fixed int, pt format.PageType) error {
	if base < 0 || base+fixed > len(p) {
		return format.Errf("%s row at %#x: %d fixed bytes exceed page", pt, base, fixed)
	}
	return nil
}

// Genre is a genre name row.
type Genre struct {
	ID   uint32
	Name DeviceString
}

func parseGenre(p []byte, base int) (*Genre, error) {
	if err := checkRowBounds(p, base, 4, format.PageTypeGenres); err != nil {
		return nil, err
	}
	id, _ := format.Le32(p, base)
	name, err := parseDeviceString(p, base+4)
	if err != nil {
		return nil, err
	}
	return &Genre{ID: id, Name: name}, nil
}

func (r *Genre) encodeInto(p []byte, base int) error {
	if err := checkRowBounds(p, base, 4, format.PageTypeGenres); err != nil {
		return err
	}
	_ = format.PutLe32(p, base, r.ID)
	return r.Name.encodeInto(p, base+4)
}

// Label is a record-label name row; same shape as Genre.
type Label struct {
	ID   uint32
	Name DeviceString
}

func parseLabel(p []byte, base int) (*Label, error) {
	if err := checkRowBounds(p, base, 4, format.PageTypeLabels); err != nil {
		return nil, err
	}
	id, _ := format.Le32(p, base)
	name, err := parseDeviceString(p, base+4)
	if err != nil {
		return nil, err
	}
	return &Label{ID: id, Name: name}, nil
}

func (r *Label) encodeInto(p []byte, base int) error {
	if err := checkRowBounds(p, base, 4, format.PageTypeLabels); err != nil {
		return err
	}
	_ = format.PutLe32(p, base, r.ID)
	return r.Name.encodeInto(p, base+4)
}

// Key is a musical key row. ID2 repeats the row id in every observed file.
type Key struct {
	ID   uint32
	ID2  uint32
	Name DeviceString
}

func parseKey(p []byte, base int) (*Key, error) {
	if err := checkRowBounds(p, base, 8, format.PageTypeKeys); err != nil {
		return nil, err
	}
	id, _ := format.Le32(p, base)
	id2, _ := format.Le32(p, base+4)
	name, err := parseDeviceString(p, base+8)
	if err != nil {
		return nil, err
	}
	return &Key{ID: id, ID2: id2, Name: name}, nil
}

func (r *Key) encodeInto(p []byte, base int) error {
	if err := checkRowBounds(p, base, 8, format.PageTypeKeys); err != nil {
		return err
	}
	_ = format.PutLe32(p, base, r.ID)
	_ = format.PutLe32(p, base+4, r.ID2)
	return r.Name.encodeInto(p, base+8)
}

// Color is a color-label row.
type Color struct {
	Unknown1 uint32
	Unknown2 uint8
	Color    uint16
	Unknown3 uint16
	Name     DeviceString
}

func parseColor(p []byte, base int) (*Color, error) {
	if err := checkRowBounds(p, base, 9, format.PageTypeColors); err != nil {
		return nil, err
	}
	u1, _ := format.Le32(p, base)
	u2 := p[base+4]
	color, _ := format.Le16(p, base+5)
	u3, _ := format.Le16(p, base+7)
	name, err := parseDeviceString(p, base+9)
	if err != nil {
		return nil, err
	}
	return &Color{Unknown1: u1, Unknown2: u2, Color: color, Unknown3: u3, Name: name}, nil
}

func (r *Color) encodeInto(p []byte, base int) error {
	if err := checkRowBounds(p, base, 9, format.PageTypeColors); err != nil {
		return err
	}
	_ = format.PutLe32(p, base, r.Unknown1)
	p[base+4] = r.Unknown2
	_ = format.PutLe16(p, base+5, r.Color)
	_ = format.PutLe16(p, base+7, r.Unknown3)
	return r.Name.encodeInto(p, base+9)
}

// Artist subtypes: 0x60 keeps the name offset in a single byte, 0x64 in a
// trailing u16 for rows whose name sits further out.
const (
	artistSubtypeNear = 0x60
	artistSubtypeFar  = 0x64
)

// Artist is an artist name row.
type Artist struct {
	Subtype     uint16
	IndexShift  uint16
	ID          uint32
	Unknown1    uint8
	OfsNameNear uint8  // name offset for subtype 0x60, raw byte otherwise
	OfsNameFar  uint16 // name offset for subtype 0x64, absent otherwise
	Name        DeviceString
}

// NameOfs is the name's offset relative to the row base, whichever form
// the subtype stores it in.
func (r *Artist) NameOfs() int {
	if r.Subtype == artistSubtypeFar {
		return int(r.OfsNameFar)
	}
	return int(r.OfsNameNear)
}

func parseArtist(p []byte, base int) (*Artist, error) {
	if err := checkRowBounds(p, base, 10, format.PageTypeArtists); err != nil {
		return nil, err
	}
	r := &Artist{}
	r.Subtype, _ = format.Le16(p, base)
	r.IndexShift, _ = format.Le16(p, base+2)
	r.ID, _ = format.Le32(p, base+4)
	r.Unknown1 = p[base+8]
	r.OfsNameNear = p[base+9]
	switch r.Subtype {
	case artistSubtypeNear:
	case artistSubtypeFar:
		if err := checkRowBounds(p, base, 12, format.PageTypeArtists); err != nil {
			return nil, err
		}
		r.OfsNameFar, _ = format.Le16(p, base+10)
	default:
		return nil, format.Errf("artist row at %#x: unknown subtype %#04x", base, r.Subtype)
	}
	name, err := parseDeviceString(p, base+r.NameOfs())
	if err != nil {
		return nil, err
	}
	r.Name = name
	return r, nil
}

func (r *Artist) encodeInto(p []byte, base int) error {
	if err := checkRowBounds(p, base, 10, format.PageTypeArtists); err != nil {
		return err
	}
	_ = format.PutLe16(p, base, r.Subtype)
	_ = format.PutLe16(p, base+2, r.IndexShift)
	_ = format.PutLe32(p, base+4, r.ID)
	p[base+8] = r.Unknown1
	p[base+9] = r.OfsNameNear
	if r.Subtype == artistSubtypeFar {
		if err := checkRowBounds(p, base, 12, format.PageTypeArtists); err != nil {
			return err
		}
		_ = format.PutLe16(p, base+10, r.OfsNameFar)
	}
	return r.Name.encodeInto(p, base+r.NameOfs())
}

// Album is an album name row.
type Album struct {
	Unknown1   uint16
	IndexShift uint16
	Unknown2   uint32
	ArtistID   uint32
	ID         uint32
	Unknown3   uint32
	Unknown4   uint8
	OfsName    uint8 // relative to the row base
	Name       DeviceString
}

func parseAlbum(p []byte, base int) (*Album, error) {
	if err := checkRowBounds(p, base, 22, format.PageTypeAlbums); err != nil {
		return nil, err
	}
	r := &Album{}
	r.Unknown1, _ = format.Le16(p, base)
	r.IndexShift, _ = format.Le16(p, base+2)
	r.Unknown2, _ = format.Le32(p, base+4)
	r.ArtistID, _ = format.Le32(p, base+8)
	r.ID, _ = format.Le32(p, base+12)
	r.Unknown3, _ = format.Le32(p, base+16)
	r.Unknown4 = p[base+20]
	r.OfsName = p[base+21]
	name, err := parseDeviceString(p, base+int(r.OfsName))
	if err != nil {
		return nil, err
	}
	r.Name = name
	return r, nil
}

func (r *Album) encodeInto(p []byte, base int) error {
	if err := checkRowBounds(p, base, 22, format.PageTypeAlbums); err != nil {
		return err
	}
	_ = format.PutLe16(p, base, r.Unknown1)
	_ = format.PutLe16(p, base+2, r.IndexShift)
	_ = format.PutLe32(p, base+4, r.Unknown2)
	_ = format.PutLe32(p, base+8, r.ArtistID)
	_ = format.PutLe32(p, base+12, r.ID)
	_ = format.PutLe32(p, base+16, r.Unknown3)
	p[base+20] = r.Unknown4
	p[base+21] = r.OfsName
	return r.Name.encodeInto(p, base+int(r.OfsName))
}

// PlaylistTreeNode is one node of the playlist hierarchy: either a playlist
// or a folder, linked to its parent by ParentID. There is no dedicated
// folder boolean on disk; RawIsFolder is a sentinel that is non-zero for
// folders.
type PlaylistTreeNode struct {
	ParentID    uint32
	Unknown     uint32
	SortOrder   uint32
	ID          uint32
	RawIsFolder uint32
	Name        DeviceString
}

func (r *PlaylistTreeNode) IsFolder() bool { return r.RawIsFolder != 0 }

func parsePlaylistTreeNode(p []byte, base int) (*PlaylistTreeNode, error) {
	if err := checkRowBounds(p, base, 20, format.PageTypePlaylistTree); err != nil {
		return nil, err
	}
	r := &PlaylistTreeNode{}
	r.ParentID, _ = format.Le32(p, base)
	r.Unknown, _ = format.Le32(p, base+4)
	r.SortOrder, _ = format.Le32(p, base+8)
	r.ID, _ = format.Le32(p, base+12)
	r.RawIsFolder, _ = format.Le32(p, base+16)
	name, err := parseDeviceString(p, base+20)
	if err != nil {
		return nil, err
	}
	r.Name = name
	return r, nil
}

func (r *PlaylistTreeNode) encodeInto(p []byte, base int) error {
	if err := checkRowBounds(p, base, 20, format.PageTypePlaylistTree); err != nil {
		return err
	}
	_ = format.PutLe32(p, base, r.ParentID)
	_ = format.PutLe32(p, base+4, r.Unknown)
	_ = format.PutLe32(p, base+8, r.SortOrder)
	_ = format.PutLe32(p, base+12, r.ID)
	_ = format.PutLe32(p, base+16, r.RawIsFolder)
	return r.Name.encodeInto(p, base+20)
}

// PlaylistEntry maps one track into one playlist at one position.
type PlaylistEntry struct {
	EntryIndex uint32
	TrackID    uint32
	PlaylistID uint32
}

func parsePlaylistEntry(p []byte, base int) (*PlaylistEntry, error) {
	if err := checkRowBounds(p, base, 12, format.PageTypePlaylistEntries); err != nil {
		return nil, err
	}
	r := &PlaylistEntry{}
	r.EntryIndex, _ = format.Le32(p, base)
	r.TrackID, _ = format.Le32(p, base+4)
	r.PlaylistID, _ = format.Le32(p, base+8)
	return r, nil
}

func (r *PlaylistEntry) encodeInto(p []byte, base int) error {
	if err := checkRowBounds(p, base, 12, format.PageTypePlaylistEntries); err != nil {
		return err
	}
	_ = format.PutLe32(p, base, r.EntryIndex)
	_ = format.PutLe32(p, base+4, r.TrackID)
	_ = format.PutLe32(p, base+8, r.PlaylistID)
	return nil
}

// HistoryPlaylist is a history session playlist name row.
type HistoryPlaylist struct {
	ID   uint32
	Name DeviceString
}

func parseHistoryPlaylist(p []byte, base int) (*HistoryPlaylist, error) {
	if err := checkRowBounds(p, base, 4, format.PageTypeHistoryPlaylists); err != nil {
		return nil, err
	}
	id, _ := format.Le32(p, base)
	name, err := parseDeviceString(p, base+4)
	if err != nil {
		return nil, err
	}
	return &HistoryPlaylist{ID: id, Name: name}, nil
}

func (r *HistoryPlaylist) encodeInto(p []byte, base int) error {
	if err := checkRowBounds(p, base, 4, format.PageTypeHistoryPlaylists); err != nil {
		return err
	}
	_ = format.PutLe32(p, base, r.ID)
	return r.Name.encodeInto(p, base+4)
}

// HistoryEntry maps a played track into a history playlist.
type HistoryEntry struct {
	TrackID    uint32
	PlaylistID uint32
	EntryIndex uint32
}

func parseHistoryEntry(p []byte, base int) (*HistoryEntry, error) {
	if err := checkRowBounds(p, base, 12, format.PageTypeHistoryEntries); err != nil {
		return nil, err
	}
	r := &HistoryEntry{}
	r.TrackID, _ = format.Le32(p, base)
	r.PlaylistID, _ = format.Le32(p, base+4)
	r.EntryIndex, _ = format.Le32(p, base+8)
	return r, nil
}

func (r *HistoryEntry) encodeInto(p []byte, base int) error {
	if err := checkRowBounds(p, base, 12, format.PageTypeHistoryEntries); err != nil {
		return err
	}
	_ = format.PutLe32(p, base, r.TrackID)
	_ = format.PutLe32(p, base+4, r.PlaylistID)
	_ = format.PutLe32(p, base+8, r.EntryIndex)
	return nil
}

// Artwork references an album art image file on the device.
type Artwork struct {
	ID   uint32
	Path DeviceString
}

func parseArtwork(p []byte, base int) (*Artwork, error) {
	if err := checkRowBounds(p, base, 4, format.PageTypeArtwork); err != nil {
		return nil, err
	}
	id, _ := format.Le32(p, base)
	path, err := parseDeviceString(p, base+4)
	if err != nil {
		return nil, err
	}
	return &Artwork{ID: id, Path: path}, nil
}

func (r *Artwork) encodeInto(p []byte, base int) error {
	if err := checkRowBounds(p, base, 4, format.PageTypeArtwork); err != nil {
		return err
	}
	_ = format.PutLe32(p, base, r.ID)
	return r.Path.encodeInto(p, base+4)
}
