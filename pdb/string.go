package pdb

import (
	"strings"
	"unicode/utf16"

	"golang.org/x/text/encoding/unicode"

	"github.com/wilhasse/go-rekordpdb/format"
)

// DeviceString is the variable-length string sub-format embedded in row
// bodies. A tag byte selects one of three forms:
//
//   - short ASCII: odd tag, frame length folded into the tag
//     (content = (tag>>1)-1 bytes), content follows the tag inline
//   - long ASCII (0x40): u16 frame length (including the 4-byte header),
//     one byte per character
//   - long UTF-16LE (0x90): same framing, two bytes per character
//
// Decode remembers the on-disk form and content bytes, so re-encoding a
// decoded value reproduces the original bytes exactly. The codec never
// picks a "better" encoding on its own.
type DeviceString struct {
	kind  StringKind
	pad   byte   // byte 3 of the long-form header, observed 0
	raw   []byte // content bytes exactly as stored
	value string
}

type StringKind uint8

const (
	StringShortASCII StringKind = iota
	StringLongASCII
	StringLongUTF16LE
)

const (
	longASCIITag  = 0x40
	longUTF16Tag  = 0x90
	maxShortFrame = 0x7f // frame length representable in the short tag
)

func (s StringKind) String() string {
	switch s {
	case StringShortASCII:
		return "short-ascii"
	case StringLongASCII:
		return "long-ascii"
	case StringLongUTF16LE:
		return "long-utf16le"
	default:
		return "invalid"
	}
}

// Value returns the decoded text. Trailing NUL padding present in the
// stored bytes is not part of the value.
func (s DeviceString) Value() string { return s.value }

func (s DeviceString) Kind() StringKind { return s.kind }

func (s DeviceString) String() string { return s.value }

// EncodedLen is the number of bytes the string occupies on disk,
// including its tag/header.
func (s DeviceString) EncodedLen() int {
	if s.kind == StringShortASCII {
		return 1 + len(s.raw)
	}
	return 4 + len(s.raw)
}

// NewShortASCII builds a short-form string. The content is stored exactly
// as given; callers that want the common trailing NUL must include it.
func NewShortASCII(content string) (DeviceString, error) {
	if !isASCII(content) {
		return DeviceString{}, format.Errf("short string %q is not ASCII", content)
	}
	if len(content)+1 > maxShortFrame {
		return DeviceString{}, format.Errf("short string content %d bytes exceeds frame limit", len(content))
	}
	raw := []byte(content)
	return DeviceString{kind: StringShortASCII, raw: raw, value: trimNUL(raw)}, nil
}

// NewLongASCII builds a long single-byte-form string.
func NewLongASCII(content string) (DeviceString, error) {
	if !isASCII(content) {
		return DeviceString{}, format.Errf("long string %q is not ASCII", content)
	}
	if len(content)+4 > 0xffff {
		return DeviceString{}, format.Errf("long string content %d bytes exceeds frame limit", len(content))
	}
	raw := []byte(content)
	return DeviceString{kind: StringLongASCII, raw: raw, value: trimNUL(raw)}, nil
}

// NewLongUTF16 builds a long wide-form string from UTF-8 input.
func NewLongUTF16(content string) (DeviceString, error) {
	enc := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder()
	raw, err := enc.Bytes([]byte(content))
	if err != nil {
		return DeviceString{}, format.Errf("encode %q as UTF-16: %v", content, err)
	}
	if len(raw)+4 > 0xffff {
		return DeviceString{}, format.Errf("wide string content %d bytes exceeds frame limit", len(raw))
	}
	return DeviceString{kind: StringLongUTF16LE, raw: raw, value: content}, nil
}

// parseDeviceString decodes the string starting at p[off].
func parseDeviceString(p []byte, off int) (DeviceString, error) {
	if off < 0 || off >= len(p) {
		return DeviceString{}, format.Errf("string tag at %#x beyond buffer end %#x", off, len(p))
	}
	tag := p[off]
	switch {
	case tag&1 == 1:
		frame := int(tag >> 1) // includes the tag byte
		if frame < 1 {
			return DeviceString{}, format.Errf("invalid short string tag %#02x at %#x", tag, off)
		}
		content := frame - 1
		if off+1+content > len(p) {
			return DeviceString{}, format.Errf("short string at %#x: %d content bytes exceed buffer", off, content)
		}
		raw := append([]byte(nil), p[off+1:off+1+content]...)
		return DeviceString{kind: StringShortASCII, raw: raw, value: trimNUL(raw)}, nil

	case tag == longASCIITag, tag == longUTF16Tag:
		if off+4 > len(p) {
			return DeviceString{}, format.Errf("truncated long string header at %#x", off)
		}
		frame, _ := format.Le16(p, off+1)
		if frame < 4 {
			return DeviceString{}, format.Errf("long string at %#x: frame length %d below header size", off, frame)
		}
		end := off + int(frame)
		if end > len(p) {
			return DeviceString{}, format.Errf("long string at %#x: frame length %d exceeds buffer", off, frame)
		}
		raw := append([]byte(nil), p[off+4:end]...)
		s := DeviceString{pad: p[off+3], raw: raw}
		if tag == longASCIITag {
			s.kind = StringLongASCII
			s.value = trimNUL(raw)
			return s, nil
		}
		s.kind = StringLongUTF16LE
		value, err := decodeUTF16(raw, off)
		if err != nil {
			return DeviceString{}, err
		}
		s.value = value
		return s, nil

	default:
		return DeviceString{}, format.Errf("invalid string tag %#02x at %#x", tag, off)
	}
}

// encodeInto writes the string's original byte form at p[off].
func (s DeviceString) encodeInto(p []byte, off int) error {
	if off < 0 || off+s.EncodedLen() > len(p) {
		return format.Errf("string of %d bytes at %#x exceeds buffer", s.EncodedLen(), off)
	}
	if s.kind == StringShortASCII {
		p[off] = byte((len(s.raw)+1)<<1) | 1
		copy(p[off+1:], s.raw)
		return nil
	}
	if s.kind == StringLongASCII {
		p[off] = longASCIITag
	} else {
		p[off] = longUTF16Tag
	}
	_ = format.PutLe16(p, off+1, uint16(len(s.raw)+4))
	p[off+3] = s.pad
	copy(p[off+4:], s.raw)
	return nil
}

func decodeUTF16(raw []byte, off int) (string, error) {
	if len(raw)%2 != 0 {
		return "", format.Errf("wide string at %#x: odd content length %d", off, len(raw))
	}
	units := make([]uint16, len(raw)/2)
	for i := range units {
		u, _ := format.Le16(raw, 2*i)
		units[i] = u
	}
	// The x/text transformer substitutes invalid sequences instead of
	// failing, so unpaired surrogates are rejected here first.
	for i := 0; i < len(units); i++ {
		u := units[i]
		if u >= 0xd800 && u <= 0xdbff {
			if i+1 >= len(units) || units[i+1] < 0xdc00 || units[i+1] > 0xdfff {
				return "", format.Errf("wide string at %#x: unpaired high surrogate %#04x", off, u)
			}
			i++
		} else if u >= 0xdc00 && u <= 0xdfff {
			return "", format.Errf("wide string at %#x: unpaired low surrogate %#04x", off, u)
		}
	}
	value := strings.TrimRight(string(utf16.Decode(units)), "\x00")
	return value, nil
}

func trimNUL(b []byte) string {
	return strings.TrimRight(string(b), "\x00")
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 0x7f {
			return false
		}
	}
	return true
}
