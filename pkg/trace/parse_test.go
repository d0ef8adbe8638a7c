package trace

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"
)

func TestParse(t *testing.T) {
	input := `
# comment line
alloc a 100
ALLOC b 0   # trailing comment
free a
realloc b 64
write b 0x2a
write b 7
reset
`
	ops, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	want := []Op{
		{Line: 3, Kind: KindAlloc, ID: "a", Size: 100},
		{Line: 4, Kind: KindAlloc, ID: "b", Size: 0},
		{Line: 5, Kind: KindFree, ID: "a"},
		{Line: 6, Kind: KindRealloc, ID: "b", Size: 64},
		{Line: 7, Kind: KindWrite, ID: "b", Value: 0x2a},
		{Line: 8, Kind: KindWrite, ID: "b", Value: 7},
		{Line: 9, Kind: KindReset},
	}
	assert.Equal(t, want, ops)
}

func TestParseUTF16(t *testing.T) {
	text := "alloc x 8\r\nfree x\r\n"

	for _, endian := range []unicode.Endianness{unicode.LittleEndian, unicode.BigEndian} {
		enc := unicode.UTF16(endian, unicode.UseBOM).NewEncoder()
		encoded, err := enc.String(text)
		require.NoError(t, err)

		ops, err := Parse(strings.NewReader(encoded))
		require.NoError(t, err)
		require.Len(t, ops, 2)
		assert.Equal(t, Op{Line: 1, Kind: KindAlloc, ID: "x", Size: 8}, ops[0])
		assert.Equal(t, Op{Line: 2, Kind: KindFree, ID: "x"}, ops[1])
	}
}

func TestParseUTF8BOM(t *testing.T) {
	ops, err := Parse(strings.NewReader("\ufeffalloc x 8\n"))
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, KindAlloc, ops[0].Kind)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  string
	}{
		{"unknown op", "alloc a 1\nmalloc a 1\n", "line 2"},
		{"missing size", "alloc a\n", "line 1"},
		{"extra argument", "free a b\n", "line 1"},
		{"reset with argument", "\n\nreset now\n", "line 3"},
		{"bad size", "alloc a lots\n", "line 1"},
		{"byte overflow", "write a 256\n", "line 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			require.ErrorIs(t, err, ErrSyntax)
			assert.Contains(t, err.Error(), tt.line)
		})
	}
}

func TestOpString(t *testing.T) {
	assert.Equal(t, "alloc a 16", Op{Kind: KindAlloc, ID: "a", Size: 16}.String())
	assert.Equal(t, "free a", Op{Kind: KindFree, ID: "a"}.String())
	assert.Equal(t, "write a 0x0f", Op{Kind: KindWrite, ID: "a", Value: 15}.String())
	assert.Equal(t, "reset", Op{Kind: KindReset}.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
}
