// Package source opens the inputs of the hexdump command: standard input or a file, optionally
// decompressed, with a number of leading bytes skipped.
package source

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Stdin is the name that selects standard input.
const Stdin = "-"

// ErrInvalidDecompress is returned for an unknown decompression mode.
var ErrInvalidDecompress = errors.New("decompress must be one of auto, none, zstd or gzip")

var (
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	gzipMagic = []byte{0x1f, 0x8b}
)

// Decompress selects how an input is decoded before it is dumped.
type Decompress uint8

const (
	// DecompressAuto decodes zstd and gzip streams recognized by their magic bytes.
	DecompressAuto Decompress = iota
	// DecompressNone dumps the bytes as stored.
	DecompressNone
	// DecompressZstd always decodes zstd.
	DecompressZstd
	// DecompressGzip always decodes gzip.
	DecompressGzip
)

func (d Decompress) String() string {
	switch d {
	case DecompressAuto:
		return "auto"
	case DecompressNone:
		return "none"
	case DecompressZstd:
		return "zstd"
	case DecompressGzip:
		return "gzip"
	default:
		return fmt.Sprintf("Decompress(%d)", uint8(d))
	}
}

// ParseDecompress parses a decompression mode name.
func ParseDecompress(s string) (Decompress, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return DecompressAuto, nil
	case "none", "off", "raw":
		return DecompressNone, nil
	case "zstd", "zst":
		return DecompressZstd, nil
	case "gzip", "gz":
		return DecompressGzip, nil
	default:
		return DecompressAuto, fmt.Errorf("%w: got %q", ErrInvalidDecompress, s)
	}
}

// Options controls how an input is opened.
type Options struct {
	// Skip is the number of bytes dropped from the start of the (decoded) input.
	Skip uint64

	Decompress Decompress

	// Stdin replaces os.Stdin when set.
	Stdin io.Reader
}

// Source is an opened input. It must be closed by the caller.
type Source struct {
	name    string
	r       io.Reader
	closers []func() error

	size    uint64
	hasSize bool
	format  Decompress
}

// Open opens name, or standard input for "" and Stdin.
//
// The size is known for regular files read as stored. Skipping seeks in such files and discards
// bytes otherwise; skipping past the end leaves an empty source.
func Open(name string, opts Options) (*Source, error) {
	s := &Source{name: name, format: DecompressNone}

	var (
		file *os.File
		in   io.Reader
	)

	if name == "" || name == Stdin {
		s.name = "standard input"

		in = opts.Stdin
		if in == nil {
			in = os.Stdin
		}
	} else {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}

		s.closers = append(s.closers, f.Close)
		in = f

		if st, err := f.Stat(); err == nil && st.Mode().IsRegular() {
			file = f
			s.size = uint64(st.Size())
			s.hasSize = true
		}
	}

	format := opts.Decompress
	if format == DecompressAuto {
		var err error

		format, in, err = sniff(file, in)
		if err != nil {
			s.Close()

			return nil, fmt.Errorf("%s: %w", s.name, err)
		}
	}

	if err := s.decode(format, in); err != nil {
		s.Close()

		return nil, fmt.Errorf("%s: %w", s.name, err)
	}

	if opts.Skip > 0 {
		if err := s.skip(file, opts.Skip); err != nil {
			s.Close()

			return nil, fmt.Errorf("%s: skip %d bytes: %w", s.name, opts.Skip, err)
		}
	}

	return s, nil
}

// sniff detects a compressed stream. Regular files are probed in place; other readers are
// buffered so the probed bytes are not lost.
func sniff(file *os.File, in io.Reader) (Decompress, io.Reader, error) {
	magic := make([]byte, len(zstdMagic))

	if file != nil {
		n, err := file.ReadAt(magic, 0)
		if err != nil && !errors.Is(err, io.EOF) {
			return DecompressNone, in, err
		}

		return detect(magic[:n]), in, nil
	}

	br := bufio.NewReader(in)

	magic, err := br.Peek(len(zstdMagic))
	if err != nil && !errors.Is(err, io.EOF) {
		return DecompressNone, br, err
	}

	return detect(magic), br, nil
}

func detect(magic []byte) Decompress {
	switch {
	case bytes.HasPrefix(magic, zstdMagic):
		return DecompressZstd
	case bytes.HasPrefix(magic, gzipMagic):
		return DecompressGzip
	default:
		return DecompressNone
	}
}

func (s *Source) decode(format Decompress, in io.Reader) error {
	s.format = format

	switch format {
	case DecompressNone:
		s.r = in

		return nil
	case DecompressZstd:
		dec, err := zstd.NewReader(in, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return err
		}

		s.closers = append(s.closers, func() error {
			dec.Close()

			return nil
		})
		s.r = dec
	case DecompressGzip:
		zr, err := gzip.NewReader(in)
		if err != nil {
			return err
		}

		s.closers = append(s.closers, zr.Close)
		s.r = zr
	default:
		return fmt.Errorf("%w: got %s", ErrInvalidDecompress, format)
	}

	// The decoded length is not known up front.
	s.size = 0
	s.hasSize = false

	return nil
}

func (s *Source) skip(file *os.File, n uint64) error {
	if file != nil && s.format == DecompressNone && s.hasSize {
		n = min(n, s.size)
		if _, err := file.Seek(int64(n), io.SeekStart); err != nil {
			return err
		}

		s.size -= n

		return nil
	}

	for n > 0 {
		step := int64(min(n, 1<<62))

		copied, err := io.CopyN(io.Discard, s.r, step)
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return err
		}

		n -= uint64(copied)
	}

	return nil
}

// Read implements io.Reader.
func (s *Source) Read(p []byte) (int, error) {
	return s.r.Read(p)
}

// Name returns the display name of the input.
func (s *Source) Name() string {
	return s.name
}

// Size returns the number of bytes left to read, when known.
func (s *Source) Size() (uint64, bool) {
	return s.size, s.hasSize
}

// Format returns the decoding applied to the input.
func (s *Source) Format() Decompress {
	return s.format
}

// Close releases everything Open acquired, most recent first. Standard input is left open.
func (s *Source) Close() error {
	var errs []error

	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i]())
	}

	s.closers = nil

	return errors.Join(errs...)
}
