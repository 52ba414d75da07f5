// endian.go - Byte reading/writing utilities with bounds checking
package format

import (
	"encoding/binary"
	"errors"
)

// The PDB page format is little-endian throughout; the sibling analysis
// file format is big-endian. Both sets of helpers bounds-check against the
// buffer so that corrupt length fields can never cause an out-of-range slice.

func Le16(b []byte, off int) (uint16, error) {
	if off < 0 || off+2 > len(b) {
		return 0, errors.New("Le16 out of bounds")
	}
	return binary.LittleEndian.Uint16(b[off : off+2]), nil
}

func Le32(b []byte, off int) (uint32, error) {
	if off < 0 || off+4 > len(b) {
		return 0, errors.New("Le32 out of bounds")
	}
	return binary.LittleEndian.Uint32(b[off : off+4]), nil
}

func PutLe16(b []byte, off int, v uint16) error {
	if off < 0 || off+2 > len(b) {
		return errors.New("PutLe16 out of bounds")
	}
	binary.LittleEndian.PutUint16(b[off:off+2], v)
	return nil
}

func PutLe32(b []byte, off int, v uint32) error {
	if off < 0 || off+4 > len(b) {
		return errors.New("PutLe32 out of bounds")
	}
	binary.LittleEndian.PutUint32(b[off:off+4], v)
	return nil
}

func Be16(b []byte, off int) (uint16, error) {
	if off < 0 || off+2 > len(b) {
		return 0, errors.New("Be16 out of bounds")
	}
	return binary.BigEndian.Uint16(b[off : off+2]), nil
}

func Be32(b []byte, off int) (uint32, error) {
	if off < 0 || off+4 > len(b) {
		return 0, errors.New("Be32 out of bounds")
	}
	return binary.BigEndian.Uint32(b[off : off+4]), nil
}
