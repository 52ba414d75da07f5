// Package setting parses the device preference files (*SETTING.DAT)
// exported alongside the PDB catalog. The layout is flat: a string table
// identifying the writing software, an opaque settings payload whose exact
// meaning is still being reverse-engineered, and a CRC16/XMODEM checksum
// trailer. Read-only.
package setting

import (
	"fmt"
	"io"
	"strings"

	"github.com/sigurn/crc16"

	"github.com/wilhasse/go-rekordpdb/format"
)

var xmodem = crc16.MakeTable(crc16.CRC16_XMODEM)

// Setting is a parsed preference file.
type Setting struct {
	// LenStringData is the total size of the three-part string table,
	// observed as 96 in every known file.
	LenStringData uint32
	Company       string
	Software      string
	Version       string
	// Payload is the opaque settings blob.
	Payload []byte
	// Checksum is the stored CRC16/XMODEM value. For most files it covers
	// Payload; DJMSETTING.DAT computes it over all preceding bytes
	// instead, so a mismatch against PayloadChecksum is not itself an
	// error.
	Checksum uint16
	Unknown  uint16
}

// Read parses a preference file from a stream.
func Read(r io.Reader) (*Setting, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read setting file: %w", err)
	}
	return Parse(buf)
}

// Parse parses a preference file from its complete byte image. Trailing
// bytes after the checksum trailer mean the file is not a setting file.
func Parse(buf []byte) (*Setting, error) {
	s := &Setting{}
	pos := 0
	lenStrings, err := format.Le32(buf, pos)
	if err != nil {
		return nil, format.Errf("truncated string table length")
	}
	pos += 4
	s.LenStringData = lenStrings
	part := int(lenStrings) / 3
	if pos+3*part > len(buf) {
		return nil, format.Errf("string table of %d bytes exceeds file", lenStrings)
	}
	s.Company = cutString(buf[pos : pos+part])
	s.Software = cutString(buf[pos+part : pos+2*part])
	s.Version = cutString(buf[pos+2*part : pos+3*part])
	pos += 3 * part

	lenPayload, err := format.Le32(buf, pos)
	if err != nil {
		return nil, format.Errf("truncated payload length")
	}
	pos += 4
	if pos+int(lenPayload) > len(buf) {
		return nil, format.Errf("payload of %d bytes exceeds file", lenPayload)
	}
	s.Payload = append([]byte(nil), buf[pos:pos+int(lenPayload)]...)
	pos += int(lenPayload)

	if s.Checksum, err = format.Le16(buf, pos); err != nil {
		return nil, format.Errf("truncated checksum trailer")
	}
	if s.Unknown, err = format.Le16(buf, pos+2); err != nil {
		return nil, format.Errf("truncated checksum trailer")
	}
	if pos+4 != len(buf) {
		return nil, format.Errf("%d trailing bytes after checksum trailer", len(buf)-pos-4)
	}
	return s, nil
}

// PayloadChecksum is the CRC16/XMODEM checksum computed over the payload,
// the coverage used by every setting file except DJMSETTING.DAT.
func (s *Setting) PayloadChecksum() uint16 {
	return crc16.Checksum(s.Payload, xmodem)
}

func cutString(b []byte) string {
	return strings.TrimRight(string(b), "\x00")
}
