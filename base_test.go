package hexdump_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalbasit/hexdump"
)

func TestParseBase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want hexdump.Base
	}{
		{"hex", hexdump.BaseHex},
		{"X", hexdump.BaseHex},
		{"16", hexdump.BaseHex},
		{"oct", hexdump.BaseOct},
		{"octal", hexdump.BaseOct},
		{"8", hexdump.BaseOct},
		{"bin", hexdump.BaseBin},
		{" B ", hexdump.BaseBin},
		{"dec", hexdump.BaseDec},
		{"10", hexdump.BaseDec},
	}

	for _, tt := range tests {
		got, err := hexdump.ParseBase(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := hexdump.ParseBase("base64")
	require.ErrorIs(t, err, hexdump.ErrInvalidBase)
}

func TestBaseRadix(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 16, hexdump.BaseHex.Radix())
	assert.Equal(t, 8, hexdump.BaseOct.Radix())
	assert.Equal(t, 2, hexdump.BaseBin.Radix())
	assert.Equal(t, 10, hexdump.BaseDec.Radix())
}

func TestBaseText(t *testing.T) {
	t.Parallel()

	for _, b := range []hexdump.Base{hexdump.BaseHex, hexdump.BaseOct, hexdump.BaseBin, hexdump.BaseDec} {
		text, err := b.MarshalText()
		require.NoError(t, err)

		var got hexdump.Base
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, b, got)
	}

	_, err := hexdump.Base(9).MarshalText()
	require.ErrorIs(t, err, hexdump.ErrInvalidBase)
	assert.Equal(t, "Base(9)", hexdump.Base(9).String())
}

func TestParseEndianness(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]hexdump.Endianness{
		"little": hexdump.LittleEndian,
		"LE":     hexdump.LittleEndian,
		"big":    hexdump.BigEndian,
		"be":     hexdump.BigEndian,
	} {
		got, err := hexdump.ParseEndianness(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := hexdump.ParseEndianness("middle")
	require.ErrorIs(t, err, hexdump.ErrInvalidEndianness)

	var e hexdump.Endianness
	require.NoError(t, e.UnmarshalText([]byte("big")))
	assert.Equal(t, hexdump.BigEndian, e)

	text, err := hexdump.LittleEndian.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "little", string(text))
}
