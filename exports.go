// exports.go - Re-exports for main package API
package rekordpdb

import (
	"github.com/wilhasse/go-rekordpdb/format"
	"github.com/wilhasse/go-rekordpdb/pdb"
)

// Re-export types from the format package
type (
	PageType                = format.PageType
	FormatError             = format.FormatError
	UnsupportedVariantError = format.UnsupportedVariantError
)

// Re-export constants from the format package
const (
	PageTypeTracks           = format.PageTypeTracks
	PageTypeGenres           = format.PageTypeGenres
	PageTypeArtists          = format.PageTypeArtists
	PageTypeAlbums           = format.PageTypeAlbums
	PageTypeLabels           = format.PageTypeLabels
	PageTypeKeys             = format.PageTypeKeys
	PageTypeColors           = format.PageTypeColors
	PageTypePlaylistTree     = format.PageTypePlaylistTree
	PageTypePlaylistEntries  = format.PageTypePlaylistEntries
	PageTypeHistoryPlaylists = format.PageTypeHistoryPlaylists
	PageTypeHistoryEntries   = format.PageTypeHistoryEntries
	PageTypeArtwork          = format.PageTypeArtwork
	PageTypeColumns          = format.PageTypeColumns
	PageTypeHistory          = format.PageTypeHistory
)

// Re-export types from the pdb package
type (
	Header           = pdb.Header
	Table            = pdb.Table
	Page             = pdb.Page
	RowGroup         = pdb.RowGroup
	Row              = pdb.Row
	DeviceString     = pdb.DeviceString
	Reader           = pdb.Reader
	PageIter         = pdb.PageIter
	Track            = pdb.Track
	Genre            = pdb.Genre
	Artist           = pdb.Artist
	Album            = pdb.Album
	Label            = pdb.Label
	Key              = pdb.Key
	Color            = pdb.Color
	PlaylistTreeNode = pdb.PlaylistTreeNode
	PlaylistEntry    = pdb.PlaylistEntry
	HistoryPlaylist  = pdb.HistoryPlaylist
	HistoryEntry     = pdb.HistoryEntry
	Artwork          = pdb.Artwork
	PlaylistNode     = pdb.PlaylistNode
)

// Re-export functions from the pdb package
var (
	NewReader         = pdb.NewReader
	ParseHeader       = pdb.ParseHeader
	ParsePage         = pdb.ParsePage
	Reexport          = pdb.Reexport
	BuildPlaylistTree = pdb.BuildPlaylistTree
	ReadPlaylistTree  = pdb.ReadPlaylistTree
	NewShortASCII     = pdb.NewShortASCII
	NewLongASCII      = pdb.NewLongASCII
	NewLongUTF16      = pdb.NewLongUTF16
)
