// Package anlz parses the tagged-chunk analysis files (ANLZXXXX.DAT /
// .EXT) that sit next to the PDB catalog on exported media. The container
// is self-describing: a PMAI file header followed by sections, each framed
// by a four-character tag and explicit header/total lengths, all
// big-endian. Sections with an established payload layout are decoded into
// typed details; everything else is carried as raw bytes. Read-only.
package anlz

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"

	"github.com/wilhasse/go-rekordpdb/format"
)

var fileMagic = []byte("PMAI")

const (
	fileHeaderFixed    = 12 // magic + header length + file length
	sectionHeaderFixed = 12 // tag + header length + total length
)

// File is a parsed analysis file.
type File struct {
	HeaderLen uint32
	FileLen   uint32
	// HeaderRest holds the file header bytes past the fixed fields.
	HeaderRest []byte
	Sections   []Section
}

// Section is one tagged chunk. Raw holds the complete section bytes
// including the tag framing; Detail is a typed decode of the payload for
// known tags, nil otherwise.
type Section struct {
	Tag       string
	HeaderLen uint32
	TotalLen  uint32
	Raw       []byte
	Detail    interface{}
}

// Path is the analyzed track's file path (PPTH).
type Path struct {
	Path string
}

// BeatGrid is the track's beat list (PQTZ).
type BeatGrid struct {
	Unknown1 uint32
	Unknown2 uint32
	Beats    []Beat
}

// Beat is one beat-grid entry.
type Beat struct {
	BeatNumber uint16 // position within the bar, 1..4
	Tempo      uint16 // BPM * 100
	Time       uint32 // milliseconds from track start
}

// WavePreview is a fixed-width monochrome waveform preview (PWAV, PWV2).
type WavePreview struct {
	Unknown uint32
	Data    []byte
}

// VBRIndex maps playback time to file position for VBR files (PVBR).
type VBRIndex struct {
	Unknown uint32
	Index   []uint32
}

// Read parses an analysis file from a stream.
func Read(r io.Reader) (*File, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read analysis file: %w", err)
	}
	return Parse(buf)
}

// Parse parses an analysis file from its complete byte image.
func Parse(buf []byte) (*File, error) {
	if len(buf) < fileHeaderFixed || !bytes.Equal(buf[:4], fileMagic) {
		return nil, format.Errf("missing PMAI file header")
	}
	f := &File{}
	f.HeaderLen, _ = format.Be32(buf, 4)
	f.FileLen, _ = format.Be32(buf, 8)
	if f.HeaderLen < fileHeaderFixed || int(f.HeaderLen) > len(buf) {
		return nil, format.Errf("file header length %d out of range", f.HeaderLen)
	}
	if int(f.FileLen) > len(buf) || f.FileLen < f.HeaderLen {
		return nil, format.Errf("file length %d out of range", f.FileLen)
	}
	f.HeaderRest = append([]byte(nil), buf[fileHeaderFixed:f.HeaderLen]...)

	pos := int(f.HeaderLen)
	for pos < int(f.FileLen) {
		sec, next, err := parseSection(buf, pos)
		if err != nil {
			return nil, err
		}
		f.Sections = append(f.Sections, sec)
		pos = next
	}
	return f, nil
}

func parseSection(buf []byte, pos int) (Section, int, error) {
	if pos+sectionHeaderFixed > len(buf) {
		return Section{}, 0, format.Errf("truncated section header at %#x", pos)
	}
	tag := buf[pos : pos+4]
	if tag[0] != 'P' {
		return Section{}, 0, format.Errf("invalid section tag %q at %#x", tag, pos)
	}
	sec := Section{Tag: string(tag)}
	sec.HeaderLen, _ = format.Be32(buf, pos+4)
	sec.TotalLen, _ = format.Be32(buf, pos+8)
	if sec.HeaderLen < sectionHeaderFixed || sec.TotalLen < sec.HeaderLen {
		return Section{}, 0, format.Errf("section %s at %#x: bad lengths header=%d total=%d", sec.Tag, pos, sec.HeaderLen, sec.TotalLen)
	}
	end := pos + int(sec.TotalLen)
	if end > len(buf) {
		return Section{}, 0, format.Errf("section %s at %#x: length %d exceeds buffer", sec.Tag, pos, sec.TotalLen)
	}
	sec.Raw = append([]byte(nil), buf[pos:end]...)
	detail, err := parseDetail(&sec)
	if err != nil {
		return Section{}, 0, err
	}
	sec.Detail = detail
	return sec, end, nil
}

func parseDetail(sec *Section) (interface{}, error) {
	switch sec.Tag {
	case "PPTH":
		return parsePath(sec)
	case "PQTZ":
		return parseBeatGrid(sec)
	case "PWAV", "PWV2":
		return parseWavePreview(sec)
	case "PVBR":
		return parseVBRIndex(sec)
	default:
		return nil, nil
	}
}

func parsePath(sec *Section) (*Path, error) {
	if sec.HeaderLen < 16 {
		return nil, format.Errf("PPTH header length %d too small", sec.HeaderLen)
	}
	lenPath, _ := format.Be32(sec.Raw, 12)
	if 16+int(lenPath) > len(sec.Raw) {
		return nil, format.Errf("PPTH path length %d exceeds section", lenPath)
	}
	raw := sec.Raw[16 : 16+lenPath]
	dec := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
	text, err := dec.Bytes(raw)
	if err != nil {
		return nil, format.Errf("PPTH path is not valid UTF-16: %v", err)
	}
	return &Path{Path: strings.TrimRight(string(text), "\x00")}, nil
}

func parseBeatGrid(sec *Section) (*BeatGrid, error) {
	if sec.HeaderLen < 24 {
		return nil, format.Errf("PQTZ header length %d too small", sec.HeaderLen)
	}
	g := &BeatGrid{}
	g.Unknown1, _ = format.Be32(sec.Raw, 12)
	g.Unknown2, _ = format.Be32(sec.Raw, 16)
	count, _ := format.Be32(sec.Raw, 20)
	if int(sec.HeaderLen)+8*int(count) > len(sec.Raw) {
		return nil, format.Errf("PQTZ beat count %d exceeds section", count)
	}
	g.Beats = make([]Beat, count)
	for i := range g.Beats {
		off := int(sec.HeaderLen) + 8*i
		g.Beats[i].BeatNumber, _ = format.Be16(sec.Raw, off)
		g.Beats[i].Tempo, _ = format.Be16(sec.Raw, off+2)
		g.Beats[i].Time, _ = format.Be32(sec.Raw, off+4)
	}
	return g, nil
}

func parseWavePreview(sec *Section) (*WavePreview, error) {
	if sec.HeaderLen < 20 {
		return nil, format.Errf("%s header length %d too small", sec.Tag, sec.HeaderLen)
	}
	dataLen, _ := format.Be32(sec.Raw, 12)
	w := &WavePreview{}
	w.Unknown, _ = format.Be32(sec.Raw, 16)
	if int(sec.HeaderLen)+int(dataLen) > len(sec.Raw) {
		return nil, format.Errf("%s preview length %d exceeds section", sec.Tag, dataLen)
	}
	w.Data = sec.Raw[sec.HeaderLen : int(sec.HeaderLen)+int(dataLen)]
	return w, nil
}

func parseVBRIndex(sec *Section) (*VBRIndex, error) {
	if sec.HeaderLen < 16 {
		return nil, format.Errf("PVBR header length %d too small", sec.HeaderLen)
	}
	v := &VBRIndex{}
	v.Unknown, _ = format.Be32(sec.Raw, 12)
	payload := sec.Raw[sec.HeaderLen:]
	v.Index = make([]uint32, len(payload)/4)
	for i := range v.Index {
		v.Index[i], _ = format.Be32(payload, 4*i)
	}
	return v, nil
}
