package hexdump

import (
	"fmt"
	"strings"
)

// Base is the numeral system used to render offsets and byte groups.
type Base uint8

const (
	// BaseHex renders values in base 16 (default).
	BaseHex Base = iota
	// BaseOct renders values in base 8.
	BaseOct
	// BaseBin renders values in base 2.
	BaseBin
	// BaseDec renders values in base 10.
	BaseDec
)

// Radix returns the numeric radix of the base.
func (b Base) Radix() int {
	switch b {
	case BaseOct:
		return 8
	case BaseBin:
		return 2
	case BaseDec:
		return 10
	default:
		return 16
	}
}

func (b Base) valid() bool {
	return b <= BaseDec
}

// String returns the canonical name of the base.
func (b Base) String() string {
	switch b {
	case BaseHex:
		return "hex"
	case BaseOct:
		return "oct"
	case BaseBin:
		return "bin"
	case BaseDec:
		return "dec"
	default:
		return fmt.Sprintf("Base(%d)", uint8(b))
	}
}

// ParseBase parses a base name. It accepts "hex", "oct", "bin" and "dec", their one-letter forms
// and the radix itself, case-insensitively.
func ParseBase(s string) (Base, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hex", "x", "16", "hexadecimal":
		return BaseHex, nil
	case "oct", "o", "8", "octal":
		return BaseOct, nil
	case "bin", "b", "2", "binary":
		return BaseBin, nil
	case "dec", "d", "10", "decimal":
		return BaseDec, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrInvalidBase, s)
}

// MarshalText implements encoding.TextMarshaler.
func (b Base) MarshalText() ([]byte, error) {
	if !b.valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBase, uint8(b))
	}

	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Base) UnmarshalText(text []byte) error {
	v, err := ParseBase(string(text))
	if err != nil {
		return err
	}

	*b = v

	return nil
}

// digits returns how many digits v needs in this base. Zero needs one digit.
func (b Base) digits(v uint64) int {
	r := uint64(b.Radix())
	n := 1

	for v >= r {
		v /= r
		n++
	}

	return n
}

// groupWidth returns the fixed digit width of a group of n bytes: the number of digits of the
// largest n-byte value.
func (b Base) groupWidth(n int) int {
	if n >= 8 {
		return b.digits(^uint64(0))
	}

	return b.digits(uint64(1)<<(8*uint(n)) - 1)
}

// minOffsetWidth is the narrowest automatic offset field: enough digits for any 32-bit offset.
func (b Base) minOffsetWidth() int {
	return b.digits(0xffffffff)
}

// Endianness selects how the bytes of a group are combined into one numeral.
type Endianness uint8

const (
	// LittleEndian treats the first byte of a group as the least significant (default).
	LittleEndian Endianness = iota
	// BigEndian treats the first byte of a group as the most significant.
	BigEndian
)

func (e Endianness) valid() bool {
	return e <= BigEndian
}

// String returns the canonical name of the byte order.
func (e Endianness) String() string {
	switch e {
	case LittleEndian:
		return "little"
	case BigEndian:
		return "big"
	default:
		return fmt.Sprintf("Endianness(%d)", uint8(e))
	}
}

// ParseEndianness parses "little"/"le" or "big"/"be", case-insensitively.
func ParseEndianness(s string) (Endianness, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "little", "le", "little-endian", "littleendian":
		return LittleEndian, nil
	case "big", "be", "big-endian", "bigendian":
		return BigEndian, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrInvalidEndianness, s)
}

// MarshalText implements encoding.TextMarshaler.
func (e Endianness) MarshalText() ([]byte, error) {
	if !e.valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidEndianness, uint8(e))
	}

	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *Endianness) UnmarshalText(text []byte) error {
	v, err := ParseEndianness(string(text))
	if err != nil {
		return err
	}

	*e = v

	return nil
}
