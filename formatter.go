package hexdump

import "strconv"

// LineFormatter renders one line of a dump. It keeps scratch buffers between calls, so
// AppendLine does not allocate once the buffers have grown to a line's size.
//
// A LineFormatter is not safe for concurrent use; create one per goroutine. For a streaming API
// over an io.Reader, use Dumper instead.
type LineFormatter struct {
	tmpl *template

	base        Base
	order       Endianness
	groupSize   int
	groupWidth  int
	offsetWidth int

	// Scratch space for the computed columns.
	offset []byte
	raw    []byte
	ascii  []byte
}

// NewLineFormatter creates a LineFormatter for cfg. offsetWidth is the number of digits used
// for the offset column; OffsetWidthAuto uses the configured width, or the minimum automatic
// width when the config is automatic too. A nil or zero-value cfg selects DefaultConfig.
func NewLineFormatter(cfg *Config, offsetWidth int) *LineFormatter {
	cfg = cfg.orDefault()

	if offsetWidth <= OffsetWidthAuto {
		offsetWidth = cfg.resolveOffsetWidth(0)
	}

	return &LineFormatter{
		tmpl:        &cfg.template,
		base:        cfg.cfg.base,
		order:       cfg.cfg.endianness,
		groupSize:   cfg.cfg.groupSize,
		groupWidth:  cfg.cfg.base.groupWidth(cfg.cfg.groupSize),
		offsetWidth: offsetWidth,
	}
}

// OffsetWidth returns the offset column width in digits.
func (f *LineFormatter) OffsetWidth() int {
	return f.offsetWidth
}

// AppendLine appends the line for chunk, starting at offset, to dst and returns the extended
// buffer. No newline is appended.
//
// Chunks shorter than a full line produce fewer groups and fewer ASCII characters; no padding
// is added to keep columns aligned.
func (f *LineFormatter) AppendLine(dst []byte, offset uint64, chunk []byte) []byte {
	if f.tmpl.has(fieldOffset) {
		f.offset = f.AppendOffset(f.offset[:0], offset)
	}

	if f.tmpl.has(fieldRaw) {
		f.raw = f.AppendRaw(f.raw[:0], chunk)
	}

	if f.tmpl.has(fieldASCII) {
		f.ascii = AppendASCII(f.ascii[:0], chunk)
	}

	for _, seg := range f.tmpl.segments {
		dst = append(dst, seg.literal...)

		switch seg.field {
		case fieldOffset:
			dst = append(dst, f.offset...)
		case fieldRaw:
			dst = append(dst, f.raw...)
		case fieldASCII:
			dst = append(dst, f.ascii...)
		case fieldNone:
		}
	}

	return dst
}

// Render returns the line for chunk as a string.
func (f *LineFormatter) Render(offset uint64, chunk []byte) string {
	return string(f.AppendLine(nil, offset, chunk))
}

// AppendOffset appends offset in the configured base, zero-padded to the offset width.
func (f *LineFormatter) AppendOffset(dst []byte, offset uint64) []byte {
	return appendPadded(dst, offset, f.base, f.offsetWidth)
}

// AppendRaw appends the grouped numerals of chunk, separated by single spaces. Each group is
// read with the configured byte order; groups stay in increasing offset order.
func (f *LineFormatter) AppendRaw(dst []byte, chunk []byte) []byte {
	for i := 0; i < len(chunk); i += f.groupSize {
		end := min(i+f.groupSize, len(chunk))
		group := chunk[i:end]

		width := f.groupWidth
		if len(group) < f.groupSize {
			width = f.base.groupWidth(len(group))
		}

		if i > 0 {
			dst = append(dst, ' ')
		}

		dst = appendPadded(dst, groupValue(group, f.order), f.base, width)
	}

	return dst
}

// AppendASCII appends one character per byte of chunk: the byte itself when it is printable
// ASCII (0x20 to 0x7e), '.' otherwise.
func AppendASCII(dst []byte, chunk []byte) []byte {
	for _, c := range chunk {
		if c < 0x20 || c > 0x7e {
			c = '.'
		}

		dst = append(dst, c)
	}

	return dst
}

// groupValue combines up to eight bytes into one unsigned value.
func groupValue(group []byte, order Endianness) uint64 {
	var v uint64

	if order == BigEndian {
		for _, b := range group {
			v = v<<8 | uint64(b)
		}

		return v
	}

	for i := len(group) - 1; i >= 0; i-- {
		v = v<<8 | uint64(group[i])
	}

	return v
}

// appendPadded appends v in base b, left-padded with zeros to width digits. Values wider than
// width are never truncated.
func appendPadded(dst []byte, v uint64, b Base, width int) []byte {
	var buf [64]byte

	digits := strconv.AppendUint(buf[:0], v, b.Radix())
	for i := len(digits); i < width; i++ {
		dst = append(dst, '0')
	}

	return append(dst, digits...)
}

// RenderLine renders a single line for chunk starting at offset: the pure form of the line
// formatter. The offset width is the configured width, or the minimum automatic width widened
// to fit offset.
func (c *Config) RenderLine(offset uint64, chunk []byte) string {
	c = c.orDefault()

	return NewLineFormatter(c, c.resolveOffsetWidth(offset)).Render(offset, chunk)
}
