package pdb

import (
	"github.com/wilhasse/go-rekordpdb/format"
)

// NumTrackStrings is the number of entries in a track row's string-offset
// table. Each offset is relative to the row base.
const NumTrackStrings = 21

const trackFixedSize = 0x5e // fixed fields, before the string-offset table

// Track string slots with an established meaning. The remaining slots are
// carried through opaquely.
const (
	TrackStringISRC        = 0
	TrackStringTexter      = 1
	TrackStringMessage     = 5
	TrackStringKuvoPublic  = 6
	TrackStringAutoloadHC  = 7
	TrackStringDateAdded   = 10
	TrackStringReleaseDate = 11
	TrackStringMixName     = 12
	TrackStringAnalyzePath = 14
	TrackStringAnalyzeDate = 15
	TrackStringComment     = 16
	TrackStringTitle       = 17
	TrackStringFilename    = 19
	TrackStringFilePath    = 20
)

// Track is a track metadata row, the largest variant. Numeric fields with
// third-party-documented meanings are named; everything else is preserved
// under UnknownN. Several interpreted fields are best effort, the format is
// reverse-engineered from observation.
type Track struct {
	Unknown1         uint16
	IndexShift       uint16
	Bitmask          uint32
	SampleRate       uint32
	ComposerID       uint32
	FileSize         uint32
	Unknown2         uint32
	Unknown3         uint16
	Unknown4         uint16
	ArtworkID        uint32
	KeyID            uint32
	OriginalArtistID uint32
	LabelID          uint32
	RemixerID        uint32
	Bitrate          uint32
	TrackNumber      uint32
	Tempo            uint32 // BPM * 100
	GenreID          uint32
	AlbumID          uint32
	ArtistID         uint32
	ID               uint32
	DiscNumber       uint16
	PlayCount        uint16
	Year             uint16
	SampleDepth      uint16
	Duration         uint16 // seconds
	Unknown5         uint16
	ColorIndex       uint8
	Rating           uint8
	Unknown6         uint16
	Unknown7         uint16
	OfsStrings       [NumTrackStrings]uint16
	Strings          [NumTrackStrings]DeviceString
}

func (t *Track) Title() string       { return t.Strings[TrackStringTitle].Value() }
func (t *Track) FilePath() string    { return t.Strings[TrackStringFilePath].Value() }
func (t *Track) Filename() string    { return t.Strings[TrackStringFilename].Value() }
func (t *Track) Comment() string     { return t.Strings[TrackStringComment].Value() }
func (t *Track) AnalyzePath() string { return t.Strings[TrackStringAnalyzePath].Value() }
func (t *Track) DateAdded() string   { return t.Strings[TrackStringDateAdded].Value() }

func parseTrack(p []byte, base int) (*Track, error) {
	if err := checkRowBounds(p, base, trackFixedSize+2*NumTrackStrings, format.PageTypeTracks); err != nil {
		return nil, err
	}
	t := &Track{}
	t.Unknown1, _ = format.Le16(p, base+0x00)
	t.IndexShift, _ = format.Le16(p, base+0x02)
	t.Bitmask, _ = format.Le32(p, base+0x04)
	t.SampleRate, _ = format.Le32(p, base+0x08)
	t.ComposerID, _ = format.Le32(p, base+0x0c)
	t.FileSize, _ = format.Le32(p, base+0x10)
	t.Unknown2, _ = format.Le32(p, base+0x14)
	t.Unknown3, _ = format.Le16(p, base+0x18)
	t.Unknown4, _ = format.Le16(p, base+0x1a)
	t.ArtworkID, _ = format.Le32(p, base+0x1c)
	t.KeyID, _ = format.Le32(p, base+0x20)
	t.OriginalArtistID, _ = format.Le32(p, base+0x24)
	t.LabelID, _ = format.Le32(p, base+0x28)
	t.RemixerID, _ = format.Le32(p, base+0x2c)
	t.Bitrate, _ = format.Le32(p, base+0x30)
	t.TrackNumber, _ = format.Le32(p, base+0x34)
	t.Tempo, _ = format.Le32(p, base+0x38)
	t.GenreID, _ = format.Le32(p, base+0x3c)
	t.AlbumID, _ = format.Le32(p, base+0x40)
	t.ArtistID, _ = format.Le32(p, base+0x44)
	t.ID, _ = format.Le32(p, base+0x48)
	t.DiscNumber, _ = format.Le16(p, base+0x4c)
	t.PlayCount, _ = format.Le16(p, base+0x4e)
	t.Year, _ = format.Le16(p, base+0x50)
	t.SampleDepth, _ = format.Le16(p, base+0x52)
	t.Duration, _ = format.Le16(p, base+0x54)
	t.Unknown5, _ = format.Le16(p, base+0x56)
	t.ColorIndex = p[base+0x58]
	t.Rating = p[base+0x59]
	t.Unknown6, _ = format.Le16(p, base+0x5a)
	t.Unknown7, _ = format.Le16(p, base+0x5c)
	for i := 0; i < NumTrackStrings; i++ {
		t.OfsStrings[i], _ = format.Le16(p, base+trackFixedSize+2*i)
		s, err := parseDeviceString(p, base+int(t.OfsStrings[i]))
		if err != nil {
			return nil, err
		}
		t.Strings[i] = s
	}
	return t, nil
}

func (t *Track) encodeInto(p []byte, base int) error {
	if err := checkRowBounds(p, base, trackFixedSize+2*NumTrackStrings, format.PageTypeTracks); err != nil {
		return err
	}
	_ = format.PutLe16(p, base+0x00, t.Unknown1)
	_ = format.PutLe16(p, base+0x02, t.IndexShift)
	_ = format.PutLe32(p, base+0x04, t.Bitmask)
	_ = format.PutLe32(p, base+0x08, t.SampleRate)
	_ = format.PutLe32(p, base+0x0c, t.ComposerID)
	_ = format.PutLe32(p, base+0x10, t.FileSize)
	_ = format.PutLe32(p, base+0x14, t.Unknown2)
	_ = format.PutLe16(p, base+0x18, t.Unknown3)
	_ = format.PutLe16(p, base+0x1a, t.Unknown4)
	_ = format.PutLe32(p, base+0x1c, t.ArtworkID)
	_ = format.PutLe32(p, base+0x20, t.KeyID)
	_ = format.PutLe32(p, base+0x24, t.OriginalArtistID)
	_ = format.PutLe32(p, base+0x28, t.LabelID)
	_ = format.PutLe32(p, base+0x2c, t.RemixerID)
	_ = format.PutLe32(p, base+0x30, t.Bitrate)
	_ = format.PutLe32(p, base+0x34, t.TrackNumber)
	_ = format.PutLe32(p, base+0x38, t.Tempo)
	_ = format.PutLe32(p, base+0x3c, t.GenreID)
	_ = format.PutLe32(p, base+0x40, t.AlbumID)
	_ = format.PutLe32(p, base+0x44, t.ArtistID)
	_ = format.PutLe32(p, base+0x48, t.ID)
	_ = format.PutLe16(p, base+0x4c, t.DiscNumber)
	_ = format.PutLe16(p, base+0x4e, t.PlayCount)
	_ = format.PutLe16(p, base+0x50, t.Year)
	_ = format.PutLe16(p, base+0x52, t.SampleDepth)
	_ = format.PutLe16(p, base+0x54, t.Duration)
	_ = format.PutLe16(p, base+0x56, t.Unknown5)
	p[base+0x58] = t.ColorIndex
	p[base+0x59] = t.Rating
	_ = format.PutLe16(p, base+0x5a, t.Unknown6)
	_ = format.PutLe16(p, base+0x5c, t.Unknown7)
	for i := 0; i < NumTrackStrings; i++ {
		_ = format.PutLe16(p, base+trackFixedSize+2*i, t.OfsStrings[i])
		if err := t.Strings[i].encodeInto(p, base+int(t.OfsStrings[i])); err != nil {
			return err
		}
	}
	return nil
}
