package format

import "fmt"

// PageType identifies the semantic table category a page belongs to. Every
// page in a table's chain carries the same type, and the type selects the
// row layout used to decode the page's rows. Values outside the known set
// occur in real exports; they are carried through but have no row codec.
type PageType uint32

const (
	PageTypeTracks           PageType = 0
	PageTypeGenres           PageType = 1
	PageTypeArtists          PageType = 2
	PageTypeAlbums           PageType = 3
	PageTypeLabels           PageType = 4
	PageTypeKeys             PageType = 5
	PageTypeColors           PageType = 6
	PageTypePlaylistTree     PageType = 7
	PageTypePlaylistEntries  PageType = 8
	PageTypeUnknown9         PageType = 9
	PageTypeUnknown10        PageType = 10
	PageTypeHistoryPlaylists PageType = 11
	PageTypeHistoryEntries   PageType = 12
	PageTypeArtwork          PageType = 13
	PageTypeUnknown14        PageType = 14
	PageTypeUnknown15        PageType = 15
	PageTypeColumns          PageType = 16
	PageTypeUnknown17        PageType = 17
	PageTypeUnknown18        PageType = 18
	PageTypeHistory          PageType = 19
)

func (t PageType) String() string {
	switch t {
	case PageTypeTracks:
		return "TRACKS"
	case PageTypeGenres:
		return "GENRES"
	case PageTypeArtists:
		return "ARTISTS"
	case PageTypeAlbums:
		return "ALBUMS"
	case PageTypeLabels:
		return "LABELS"
	case PageTypeKeys:
		return "KEYS"
	case PageTypeColors:
		return "COLORS"
	case PageTypePlaylistTree:
		return "PLAYLIST_TREE"
	case PageTypePlaylistEntries:
		return "PLAYLIST_ENTRIES"
	case PageTypeHistoryPlaylists:
		return "HISTORY_PLAYLISTS"
	case PageTypeHistoryEntries:
		return "HISTORY_ENTRIES"
	case PageTypeArtwork:
		return "ARTWORK"
	case PageTypeColumns:
		return "COLUMNS"
	case PageTypeHistory:
		return "HISTORY"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint32(t))
	}
}
