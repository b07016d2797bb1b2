package hexdump

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidBase is returned when the numeral base is unknown.
	ErrInvalidBase = errors.New("base must be one of hex, oct, bin or dec")

	// ErrInvalidEndianness is returned when the byte order is unknown.
	ErrInvalidEndianness = errors.New("endianness must be little or big")

	// ErrInvalidGroupSize is returned when groupSize is 0.
	ErrInvalidGroupSize = errors.New("groupSize must be greater than 0")

	// ErrGroupSizeTooLarge is returned when groupSize exceeds MaxGroupSize.
	ErrGroupSizeTooLarge = errors.New("groupSize must not exceed 8 bytes")

	// ErrInvalidGroupsPerLine is returned when groupsPerLine is 0.
	ErrInvalidGroupsPerLine = errors.New("groupsPerLine must be greater than 0")

	// ErrInvalidOffsetWidth is returned when offsetWidth is negative or above MaxOffsetWidth.
	ErrInvalidOffsetWidth = errors.New("offsetWidth must be between 1 and 64")

	// ErrEmptyTemplate is returned when the line template is empty.
	ErrEmptyTemplate = errors.New("template must not be empty")

	// ErrMalformedTemplate is returned when a placeholder is opened but never closed.
	ErrMalformedTemplate = errors.New("malformed template")

	// ErrUnknownPlaceholder is returned for a placeholder other than OFFSET, RAW or ASCII.
	ErrUnknownPlaceholder = errors.New("unknown template placeholder")
)

const (
	// DefaultGroupSize is the default number of bytes per group.
	DefaultGroupSize = 1

	// DefaultGroupsPerLine is the default number of groups per line.
	DefaultGroupsPerLine = 16

	// DefaultTemplate is the default line layout.
	DefaultTemplate = "#[OFFSET]: #[RAW] | #[ASCII]"

	// MaxGroupSize is the largest group, in bytes. A group is rendered as one unsigned 64-bit value.
	MaxGroupSize = 8

	// MaxOffsetWidth is the widest configurable offset field, in digits (a 64-bit binary offset).
	MaxOffsetWidth = 64

	// OffsetWidthAuto selects the automatic offset width.
	OffsetWidthAuto = 0
)

// Option is a function that configures a Config.
type Option func(*config) error

// config holds the mutable state while options are applied.
type config struct {
	base              Base
	endianness        Endianness
	groupSize         int
	groupsPerLine     int
	offsetWidth       int
	displayDuplicates bool
	template          string
}

func defaultConfig() config {
	return config{
		base:              BaseHex,
		endianness:        LittleEndian,
		groupSize:         DefaultGroupSize,
		groupsPerLine:     DefaultGroupsPerLine,
		offsetWidth:       OffsetWidthAuto,
		displayDuplicates: true,
		template:          DefaultTemplate,
	}
}

// validate checks that the configuration is valid and parses its template.
func (c *config) validate() (template, error) {
	if !c.base.valid() {
		return template{}, fmt.Errorf("%w: got %d", ErrInvalidBase, uint8(c.base))
	}

	if !c.endianness.valid() {
		return template{}, fmt.Errorf("%w: got %d", ErrInvalidEndianness, uint8(c.endianness))
	}

	if c.groupSize <= 0 {
		return template{}, fmt.Errorf("%w: got %d", ErrInvalidGroupSize, c.groupSize)
	}

	if c.groupSize > MaxGroupSize {
		return template{}, fmt.Errorf("%w: got %d", ErrGroupSizeTooLarge, c.groupSize)
	}

	if c.groupsPerLine <= 0 {
		return template{}, fmt.Errorf("%w: got %d", ErrInvalidGroupsPerLine, c.groupsPerLine)
	}

	if c.offsetWidth < 0 || c.offsetWidth > MaxOffsetWidth {
		return template{}, fmt.Errorf("%w: got %d", ErrInvalidOffsetWidth, c.offsetWidth)
	}

	return parseTemplate(c.template)
}

// WithBase sets the numeral base of offsets and groups.
func WithBase(b Base) Option {
	return func(c *config) error {
		if !b.valid() {
			return fmt.Errorf("%w: got %d", ErrInvalidBase, uint8(b))
		}

		c.base = b

		return nil
	}
}

// WithEndianness sets how the bytes of a group are combined.
func WithEndianness(e Endianness) Option {
	return func(c *config) error {
		if !e.valid() {
			return fmt.Errorf("%w: got %d", ErrInvalidEndianness, uint8(e))
		}

		c.endianness = e

		return nil
	}
}

// WithGroupSize sets the number of bytes per group (1 to MaxGroupSize).
func WithGroupSize(size int) Option {
	return func(c *config) error {
		if size <= 0 {
			return fmt.Errorf("%w: got %d", ErrInvalidGroupSize, size)
		}

		if size > MaxGroupSize {
			return fmt.Errorf("%w: got %d", ErrGroupSizeTooLarge, size)
		}

		c.groupSize = size

		return nil
	}
}

// WithGroupsPerLine sets the number of groups rendered on each line.
func WithGroupsPerLine(n int) Option {
	return func(c *config) error {
		if n <= 0 {
			return fmt.Errorf("%w: got %d", ErrInvalidGroupsPerLine, n)
		}

		c.groupsPerLine = n

		return nil
	}
}

// WithOffsetWidth fixes the offset field to width digits. Offsets that need more digits are
// still printed in full.
func WithOffsetWidth(width int) Option {
	return func(c *config) error {
		if width <= 0 || width > MaxOffsetWidth {
			return fmt.Errorf("%w: got %d", ErrInvalidOffsetWidth, width)
		}

		c.offsetWidth = width

		return nil
	}
}

// WithAutoOffsetWidth selects the automatic offset width: never fewer digits than a 32-bit
// offset needs in the configured base, widened to fit the last offset when the input length is
// known.
func WithAutoOffsetWidth() Option {
	return func(c *config) error {
		c.offsetWidth = OffsetWidthAuto

		return nil
	}
}

// WithDisplayDuplicates controls duplicate-line collapsing. When display is false, a run of
// lines with identical bytes is shown once, followed by a single "*" line.
func WithDisplayDuplicates(display bool) Option {
	return func(c *config) error {
		c.displayDuplicates = display

		return nil
	}
}

// WithTemplate sets the line layout. The placeholders #[OFFSET], #[RAW] and #[ASCII] may each
// appear any number of times.
func WithTemplate(text string) Option {
	return func(c *config) error {
		if _, err := parseTemplate(text); err != nil {
			return err
		}

		c.template = text

		return nil
	}
}

// Config is an immutable, validated set of formatting parameters. It is safe for concurrent use.
type Config struct {
	cfg      config
	template template
}

var defaultInstance = mustConfig()

func mustConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}

	return c
}

// NewConfig applies opts over the defaults and validates the result.
func NewConfig(opts ...Option) (*Config, error) {
	return build(defaultConfig(), opts)
}

// DefaultConfig returns the default configuration: hexadecimal, little endian, one-byte groups,
// sixteen groups per line, automatic offset width, duplicates displayed and DefaultTemplate.
func DefaultConfig() *Config {
	return defaultInstance
}

// orDefault returns c, or DefaultConfig when c is nil or was not built by NewConfig.
func (c *Config) orDefault() *Config {
	if c == nil || len(c.template.segments) == 0 {
		return DefaultConfig()
	}

	return c
}

// With returns a new Config with opts applied on top of c. The receiver is not modified.
func (c *Config) With(opts ...Option) (*Config, error) {
	return build(c.cfg, opts)
}

func build(cfg config, opts []Option) (*Config, error) {
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	tmpl, err := cfg.validate()
	if err != nil {
		return nil, err
	}

	return &Config{cfg: cfg, template: tmpl}, nil
}

// Base returns the numeral base.
func (c *Config) Base() Base { return c.cfg.base }

// Endianness returns the group byte order.
func (c *Config) Endianness() Endianness { return c.cfg.endianness }

// GroupSize returns the number of bytes per group.
func (c *Config) GroupSize() int { return c.cfg.groupSize }

// GroupsPerLine returns the number of groups per line.
func (c *Config) GroupsPerLine() int { return c.cfg.groupsPerLine }

// BytesPerLine returns the line width in bytes (GroupSize * GroupsPerLine).
func (c *Config) BytesPerLine() int { return c.cfg.groupSize * c.cfg.groupsPerLine }

// OffsetWidth returns the fixed offset width, or OffsetWidthAuto.
func (c *Config) OffsetWidth() int { return c.cfg.offsetWidth }

// DisplayDuplicates reports whether duplicate lines are shown verbatim.
func (c *Config) DisplayDuplicates() bool { return c.cfg.displayDuplicates }

// Template returns the line template text.
func (c *Config) Template() string { return c.cfg.template }

// Placeholders returns the placeholder names used by the template, in OFFSET, RAW, ASCII order.
func (c *Config) Placeholders() []string {
	var names []string

	for f := fieldOffset; f <= fieldASCII; f++ {
		if c.template.has(f) {
			names = append(names, f.String())
		}
	}

	return names
}

// String implements fmt.Stringer.
func (c *Config) String() string {
	width := "auto"
	if c.cfg.offsetWidth != OffsetWidthAuto {
		width = fmt.Sprint(c.cfg.offsetWidth)
	}

	return fmt.Sprintf("Config{base: %s, endianness: %s, groupSize: %d, groupsPerLine: %d, offsetWidth: %s, displayDuplicates: %t, template: %q}",
		c.cfg.base, c.cfg.endianness, c.cfg.groupSize, c.cfg.groupsPerLine, width, c.cfg.displayDuplicates, c.cfg.template)
}

// resolveOffsetWidth picks the offset width for a run. last is the start offset of the widest
// line expected; for an unbounded source it is the first offset.
func (c *Config) resolveOffsetWidth(last uint64) int {
	if c.cfg.offsetWidth != OffsetWidthAuto {
		return c.cfg.offsetWidth
	}

	return max(c.cfg.base.minOffsetWidth(), c.cfg.base.digits(last))
}
