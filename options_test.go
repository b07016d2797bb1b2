package hexdump_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalbasit/hexdump"
)

// TestOptionsValidation tests option validation.
func TestOptionsValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    []hexdump.Option
		wantErr error
	}{
		{
			name: "valid default",
			opts: []hexdump.Option{},
		},
		{
			name: "valid custom",
			opts: []hexdump.Option{
				hexdump.WithBase(hexdump.BaseOct),
				hexdump.WithEndianness(hexdump.BigEndian),
				hexdump.WithGroupSize(8),
				hexdump.WithGroupsPerLine(2),
				hexdump.WithOffsetWidth(16),
				hexdump.WithDisplayDuplicates(false),
				hexdump.WithTemplate("[#[OFFSET]] #[RAW]"),
			},
		},
		{
			name: "template without placeholders",
			opts: []hexdump.Option{hexdump.WithTemplate("constant")},
		},
		{
			name:    "zero group size",
			opts:    []hexdump.Option{hexdump.WithGroupSize(0)},
			wantErr: hexdump.ErrInvalidGroupSize,
		},
		{
			name:    "group size above 8",
			opts:    []hexdump.Option{hexdump.WithGroupSize(16)},
			wantErr: hexdump.ErrGroupSizeTooLarge,
		},
		{
			name:    "zero groups per line",
			opts:    []hexdump.Option{hexdump.WithGroupsPerLine(0)},
			wantErr: hexdump.ErrInvalidGroupsPerLine,
		},
		{
			name:    "negative offset width",
			opts:    []hexdump.Option{hexdump.WithOffsetWidth(-1)},
			wantErr: hexdump.ErrInvalidOffsetWidth,
		},
		{
			name:    "offset width too large",
			opts:    []hexdump.Option{hexdump.WithOffsetWidth(hexdump.MaxOffsetWidth + 1)},
			wantErr: hexdump.ErrInvalidOffsetWidth,
		},
		{
			name:    "unknown base",
			opts:    []hexdump.Option{hexdump.WithBase(hexdump.Base(42))},
			wantErr: hexdump.ErrInvalidBase,
		},
		{
			name:    "unknown endianness",
			opts:    []hexdump.Option{hexdump.WithEndianness(hexdump.Endianness(7))},
			wantErr: hexdump.ErrInvalidEndianness,
		},
		{
			name:    "empty template",
			opts:    []hexdump.Option{hexdump.WithTemplate("")},
			wantErr: hexdump.ErrEmptyTemplate,
		},
		{
			name:    "unterminated placeholder",
			opts:    []hexdump.Option{hexdump.WithTemplate("#[OFFSET]: #[RAW")},
			wantErr: hexdump.ErrMalformedTemplate,
		},
		{
			name:    "unknown placeholder",
			opts:    []hexdump.Option{hexdump.WithTemplate("#[OFFSET] #[HEX]")},
			wantErr: hexdump.ErrUnknownPlaceholder,
		},
		{
			name:    "placeholder names are case-sensitive",
			opts:    []hexdump.Option{hexdump.WithTemplate("#[offset]")},
			wantErr: hexdump.ErrUnknownPlaceholder,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := hexdump.NewConfig(tt.opts...)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, cfg)

				return
			}

			require.NoError(t, err)
			assert.NotNil(t, cfg)
		})
	}
}

func TestConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg := hexdump.DefaultConfig()

	assert.Equal(t, hexdump.BaseHex, cfg.Base())
	assert.Equal(t, hexdump.LittleEndian, cfg.Endianness())
	assert.Equal(t, 1, cfg.GroupSize())
	assert.Equal(t, 16, cfg.GroupsPerLine())
	assert.Equal(t, 16, cfg.BytesPerLine())
	assert.Equal(t, hexdump.OffsetWidthAuto, cfg.OffsetWidth())
	assert.True(t, cfg.DisplayDuplicates())
	assert.Equal(t, "#[OFFSET]: #[RAW] | #[ASCII]", cfg.Template())
	assert.Equal(t, []string{"OFFSET", "RAW", "ASCII"}, cfg.Placeholders())
}

func TestConfigOptionOrder(t *testing.T) {
	t.Parallel()

	a, err := hexdump.NewConfig(hexdump.WithGroupSize(2), hexdump.WithBase(hexdump.BaseBin), hexdump.WithGroupsPerLine(4))
	require.NoError(t, err)

	b, err := hexdump.NewConfig(hexdump.WithGroupsPerLine(4), hexdump.WithBase(hexdump.BaseBin), hexdump.WithGroupSize(2))
	require.NoError(t, err)

	assert.Equal(t, a.String(), b.String())
	assert.Equal(t, 8, a.BytesPerLine())
}

func TestConfigWith(t *testing.T) {
	t.Parallel()

	base, err := hexdump.NewConfig(hexdump.WithGroupSize(4))
	require.NoError(t, err)

	derived, err := base.With(hexdump.WithBase(hexdump.BaseDec), hexdump.WithOffsetWidth(4))
	require.NoError(t, err)

	assert.Equal(t, hexdump.BaseHex, base.Base(), "receiver must not change")
	assert.Equal(t, hexdump.OffsetWidthAuto, base.OffsetWidth())
	assert.Equal(t, hexdump.BaseDec, derived.Base())
	assert.Equal(t, 4, derived.GroupSize(), "derived config keeps the receiver's settings")
	assert.Equal(t, 4, derived.OffsetWidth())

	auto, err := derived.With(hexdump.WithAutoOffsetWidth())
	require.NoError(t, err)
	assert.Equal(t, hexdump.OffsetWidthAuto, auto.OffsetWidth())

	_, err = base.With(hexdump.WithGroupsPerLine(0))
	require.ErrorIs(t, err, hexdump.ErrInvalidGroupsPerLine)
}

func TestConfigPlaceholders(t *testing.T) {
	t.Parallel()

	cfg, err := hexdump.NewConfig(hexdump.WithTemplate("#[ASCII] #[ASCII] <#[RAW]>"))
	require.NoError(t, err)
	assert.Equal(t, []string{"RAW", "ASCII"}, cfg.Placeholders())

	cfg, err = hexdump.NewConfig(hexdump.WithTemplate("no fields"))
	require.NoError(t, err)
	assert.Empty(t, cfg.Placeholders())
}

func TestConfigString(t *testing.T) {
	t.Parallel()

	cfg, err := hexdump.NewConfig(hexdump.WithBase(hexdump.BaseOct), hexdump.WithOffsetWidth(6))
	require.NoError(t, err)

	assert.Equal(t,
		`Config{base: oct, endianness: little, groupSize: 1, groupsPerLine: 16, offsetWidth: 6, displayDuplicates: true, template: "#[OFFSET]: #[RAW] | #[ASCII]"}`,
		cfg.String())
	assert.Contains(t, hexdump.DefaultConfig().String(), "offsetWidth: auto")
}
