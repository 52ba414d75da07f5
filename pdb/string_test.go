package pdb

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wilhasse/go-rekordpdb/format"
)

func TestDeviceStringShort(t *testing.T) {
	// Frame length 6 folded into the tag, five content bytes "TEST\0".
	raw := []byte{13, 'T', 'E', 'S', 'T', 0}
	s, err := parseDeviceString(raw, 0)
	require.NoError(t, err)
	assert.Equal(t, "TEST", s.Value())
	assert.Equal(t, StringShortASCII, s.Kind())
	assert.Equal(t, len(raw), s.EncodedLen())

	out := make([]byte, len(raw))
	require.NoError(t, s.encodeInto(out, 0))
	assert.Equal(t, raw, out)
}

func TestDeviceStringShortEmpty(t *testing.T) {
	s, err := parseDeviceString([]byte{3}, 0)
	require.NoError(t, err)
	assert.Equal(t, "", s.Value())
	assert.Equal(t, 1, s.EncodedLen())
}

func TestDeviceStringLongASCII(t *testing.T) {
	content := "PIONEER DJ"
	raw := append([]byte{longASCIITag, byte(len(content) + 4), 0, 0}, content...)
	s, err := parseDeviceString(raw, 0)
	require.NoError(t, err)
	assert.Equal(t, content, s.Value())
	assert.Equal(t, StringLongASCII, s.Kind())

	out := make([]byte, len(raw))
	require.NoError(t, s.encodeInto(out, 0))
	assert.Equal(t, raw, out)
}

func TestDeviceStringLongUTF16(t *testing.T) {
	// "日本語" in UTF-16LE: e5 65, 2c 67, 9e 8a
	raw := []byte{longUTF16Tag, 10, 0, 0, 0xe5, 0x65, 0x2c, 0x67, 0x9e, 0x8a}
	s, err := parseDeviceString(raw, 0)
	require.NoError(t, err)
	assert.Equal(t, "日本語", s.Value())
	assert.Equal(t, StringLongUTF16LE, s.Kind())

	out := make([]byte, len(raw))
	require.NoError(t, s.encodeInto(out, 0))
	assert.Equal(t, raw, out)
}

func TestDeviceStringConstructorsRoundTrip(t *testing.T) {
	wide, err := NewLongUTF16("日本語")
	require.NoError(t, err)
	buf := make([]byte, wide.EncodedLen())
	require.NoError(t, wide.encodeInto(buf, 0))
	back, err := parseDeviceString(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, "日本語", back.Value())

	short, err := NewShortASCII("TEST\x00")
	require.NoError(t, err)
	buf = make([]byte, short.EncodedLen())
	require.NoError(t, short.encodeInto(buf, 0))
	assert.Equal(t, []byte{13, 'T', 'E', 'S', 'T', 0}, buf)
}

func TestDeviceStringErrors(t *testing.T) {
	cases := map[string][]byte{
		"invalid tag":             {0x42, 0, 0, 0},
		"short beyond buffer":     {13, 'T', 'E'},
		"long truncated header":   {longASCIITag, 9},
		"long beyond buffer":      {longASCIITag, 0xff, 0xff, 0, 'x'},
		"long frame below header": {longUTF16Tag, 2, 0, 0},
		"wide odd length":         {longUTF16Tag, 7, 0, 0, 0xe5, 0x65, 0x2c},
		"unpaired high surrogate": {longUTF16Tag, 6, 0, 0, 0x00, 0xd8},
		"unpaired low surrogate":  {longUTF16Tag, 6, 0, 0, 0x00, 0xdc},
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parseDeviceString(raw, 0)
			var ferr *format.FormatError
			require.Error(t, err)
			assert.True(t, errors.As(err, &ferr), "want FormatError, got %v", err)
		})
	}
}
