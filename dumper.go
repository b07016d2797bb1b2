package hexdump

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"iter"
	"math"
	"strings"
)

var (
	// ErrNilReader is returned when a Dumper is created without a source.
	ErrNilReader = errors.New("reader must not be nil")

	// ErrOffsetOverflow is returned when a byte of the source would be past the largest 64-bit offset.
	ErrOffsetOverflow = errors.New("offset exceeds 64 bits")
)

// maxEmptyReads is how many consecutive reads returning no data and no error a source may make
// before the dump fails with io.ErrNoProgress.
const maxEmptyReads = 100

// LineKind distinguishes rendered data lines from duplicate markers.
type LineKind uint8

const (
	// LineData is a rendered chunk of the source.
	LineData LineKind = iota
	// LineMarker stands in for a run of duplicate chunks.
	LineMarker
)

// Line is one line of a dump.
type Line struct {
	Kind   LineKind
	Offset uint64 // Offset of the first byte of the line (or of the first suppressed chunk)
	Text   string // Rendered text, without newline
	Data   []byte // Source bytes of a data line (points into internal buffer)
}

// DumpOption configures a Dumper.
type DumpOption func(*dumpConfig)

type dumpConfig struct {
	startOffset uint64
	readLimit   uint64
	hasLimit    bool
	sizeHint    uint64
	hasHint     bool
}

// knownSize returns how many bytes the source is expected to deliver, if known.
func (o *dumpConfig) knownSize() (uint64, bool) {
	switch {
	case o.hasLimit && o.hasHint:
		return min(o.readLimit, o.sizeHint), true
	case o.hasLimit:
		return o.readLimit, true
	case o.hasHint:
		return o.sizeHint, true
	}

	return 0, false
}

func applyDumpOptions(o dumpConfig, opts []DumpOption) dumpConfig {
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithStartOffset sets the offset displayed for the first byte of the source (default 0).
func WithStartOffset(offset uint64) DumpOption {
	return func(o *dumpConfig) {
		o.startOffset = offset
	}
}

// WithReadLimit stops the dump after n bytes of the source.
func WithReadLimit(n uint64) DumpOption {
	return func(o *dumpConfig) {
		o.readLimit = n
		o.hasLimit = true
	}
}

// WithSizeHint declares the total length of the source. It only widens the automatic offset
// column to fit the last offset; reading still stops at the end of the source.
func WithSizeHint(n uint64) DumpOption {
	return func(o *dumpConfig) {
		o.sizeHint = n
		o.hasHint = true
	}
}

// Dumper renders a byte source line by line. Each call to Next reads one line's worth of bytes,
// so memory use is bounded by the line width whatever the size of the source.
//
// A Dumper is single-use and not safe for concurrent use. Use Reset to start over with a new
// source, or DumperPool to recycle instances.
type Dumper struct {
	cfg       *Config
	opts      dumpConfig
	formatter *LineFormatter
	collapser *Collapser

	source io.Reader // Caller's reader
	reader io.Reader // source, bounded by the read limit

	buf    []byte // Current chunk
	line   []byte // Current rendered line
	offset  uint64 // Offset of the next chunk
	wrapped bool   // The last chunk ended at the largest offset
	eof     bool   // Source exhausted
	err    error  // Terminal error (io.EOF once done)
}

// NewDumper creates a Dumper that reads from r. A nil cfg selects DefaultConfig.
func NewDumper(r io.Reader, cfg *Config, opts ...DumpOption) (*Dumper, error) {
	if r == nil {
		return nil, ErrNilReader
	}

	return newDumper(r, cfg, dumpConfig{}, opts), nil
}

// NewBytesDumper creates a Dumper over data. The length of data sizes the automatic offset
// column unless WithSizeHint says otherwise.
func NewBytesDumper(data []byte, cfg *Config, opts ...DumpOption) *Dumper {
	return newDumper(bytes.NewReader(data), cfg, dumpConfig{
		sizeHint: uint64(len(data)),
		hasHint:  true,
	}, opts)
}

func newDumper(r io.Reader, cfg *Config, o dumpConfig, opts []DumpOption) *Dumper {
	cfg = cfg.orDefault()

	d := &Dumper{
		cfg:       cfg,
		opts:      applyDumpOptions(o, opts),
		collapser: NewCollapser(cfg.DisplayDuplicates()),
		buf:       make([]byte, cfg.BytesPerLine()),
	}
	d.formatter = NewLineFormatter(cfg, d.offsetWidth())
	d.setSource(r)

	return d
}

// offsetWidth resolves the offset column width for this run.
func (d *Dumper) offsetWidth() int {
	last := d.opts.startOffset

	if size, ok := d.opts.knownSize(); ok && size > 0 {
		bpl := uint64(d.cfg.BytesPerLine())
		span := (size - 1) / bpl * bpl

		if last > math.MaxUint64-span {
			last = math.MaxUint64
		} else {
			last += span
		}
	}

	return d.cfg.resolveOffsetWidth(last)
}

func (d *Dumper) setSource(r io.Reader) {
	d.source = r
	d.reader = r

	if d.opts.hasLimit && r != nil {
		if d.opts.readLimit <= math.MaxInt64 {
			d.reader = io.LimitReader(r, int64(d.opts.readLimit))
		}
	}

	d.offset = d.opts.startOffset
	d.wrapped = false
	d.eof = false
	d.err = nil
}

// fill reads the next chunk. A short chunk marks the end of the source. Only io.EOF ends the
// source cleanly; any other error is returned as is, with the bytes of the partial chunk dropped.
func (d *Dumper) fill() (int, error) {
	var n, empty int

	for n < len(d.buf) {
		m, err := d.reader.Read(d.buf[n:])
		n += m

		if errors.Is(err, io.EOF) {
			d.eof = true

			return n, nil
		}

		if err != nil {
			return n, err
		}

		if m > 0 {
			empty = 0

			continue
		}

		empty++
		if empty >= maxEmptyReads {
			return n, io.ErrNoProgress
		}
	}

	return n, nil
}

// advance produces the next line into d.line.
func (d *Dumper) advance() (LineKind, uint64, []byte, error) {
	if d.err != nil {
		return 0, 0, nil, d.err
	}

	for !d.eof {
		n, err := d.fill()
		if err != nil {
			d.err = err

			return 0, 0, nil, err
		}

		if n == 0 {
			break
		}

		chunk := d.buf[:n]
		offset := d.offset

		// The last byte of the line must have an offset too.
		if d.wrapped || uint64(n-1) > math.MaxUint64-offset {
			d.err = fmt.Errorf("%w: %d bytes after offset %d", ErrOffsetOverflow, n, offset)

			return 0, 0, nil, d.err
		}

		d.offset += uint64(n)
		d.wrapped = d.offset == 0

		switch d.collapser.Step(offset, chunk) {
		case ActionEmit:
			d.line = d.formatter.AppendLine(d.line[:0], offset, chunk)

			return LineData, offset, chunk, nil
		case ActionMarker:
			d.line = append(d.line[:0], Marker...)

			return LineMarker, offset, nil, nil
		case ActionSuppress:
		}
	}

	// A run of duplicates reaching the end of the source is closed by its last line.
	if offset, raw, ok := d.collapser.Finish(); ok {
		d.line = d.formatter.AppendLine(d.line[:0], offset, raw)

		return LineData, offset, raw, nil
	}

	d.err = io.EOF

	return 0, 0, nil, io.EOF
}

// Next returns the next line of the dump.
// Returns io.EOF when the source is exhausted. Any other error comes from the source, is
// returned unchanged and is returned again by every later call.
//
// The returned Line.Data slice is valid until the next call to Next.
func (d *Dumper) Next() (Line, error) {
	kind, offset, data, err := d.advance()
	if err != nil {
		return Line{}, err
	}

	return Line{Kind: kind, Offset: offset, Text: string(d.line), Data: data}, nil
}

// All returns an iterator over the remaining lines. Iteration stops after the last line or
// after yielding a source error.
func (d *Dumper) All() iter.Seq2[Line, error] {
	return func(yield func(Line, error) bool) {
		for {
			line, err := d.Next()
			if errors.Is(err, io.EOF) {
				return
			}

			if !yield(line, err) || err != nil {
				return
			}
		}
	}
}

// WriteTo writes the remaining lines to w, each followed by a newline.
// It implements io.WriterTo.
func (d *Dumper) WriteTo(w io.Writer) (int64, error) {
	var total int64

	for {
		_, _, _, err := d.advance()
		if errors.Is(err, io.EOF) {
			return total, nil
		}

		if err != nil {
			return total, err
		}

		d.line = append(d.line, '\n')
		n, err := w.Write(d.line)
		total += int64(n)

		if err != nil {
			return total, err
		}
	}
}

// String renders the remaining lines as one block of text, each line ending in a newline.
func (d *Dumper) String() (string, error) {
	var b strings.Builder

	_, err := d.WriteTo(&b)

	return b.String(), err
}

// Reset starts a new dump from r with the same configuration. Without opts the previous options
// are kept; otherwise opts replace them and the offset column is sized again.
func (d *Dumper) Reset(r io.Reader, opts ...DumpOption) {
	o := d.opts
	if len(opts) > 0 {
		o = applyDumpOptions(dumpConfig{}, opts)
	}

	d.reset(r, o)
}

func (d *Dumper) reset(r io.Reader, o dumpConfig) {
	d.opts = o
	d.formatter.offsetWidth = d.offsetWidth()
	d.collapser.reset(d.cfg.DisplayDuplicates())
	d.line = d.line[:0]
	d.setSource(r)
}

// Offset returns the offset of the next byte to be read. It is 0 after a line ending at the
// largest 64-bit offset.
func (d *Dumper) Offset() uint64 {
	return d.offset
}

// OffsetWidth returns the number of digits used for the offset column.
func (d *Dumper) OffsetWidth() int {
	return d.formatter.OffsetWidth()
}

// Config returns the configuration of the Dumper.
func (d *Dumper) Config() *Config {
	return d.cfg
}

// Dump renders data with the default configuration.
func Dump(data []byte) string {
	return DefaultConfig().Dump(data)
}

// Dump renders data, starting at offset 0.
func (c *Config) Dump(data []byte) string {
	return c.DumpOffset(data, 0)
}

// DumpOffset renders data with its first byte displayed at offset.
func (c *Config) DumpOffset(data []byte, offset uint64) string {
	// Reading from memory never fails.
	s, _ := NewBytesDumper(data, c, WithStartOffset(offset)).String()

	return s
}

// Lines renders data into separate lines, without newlines.
func (c *Config) Lines(data []byte) []string {
	var lines []string

	for line := range NewBytesDumper(data, c).All() {
		lines = append(lines, line.Text)
	}

	return lines
}

// DumpReader renders everything r delivers.
func (c *Config) DumpReader(r io.Reader, opts ...DumpOption) (string, error) {
	d, err := NewDumper(r, c, opts...)
	if err != nil {
		return "", err
	}

	return d.String()
}
