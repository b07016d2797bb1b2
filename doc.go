// Package hexdump renders byte sequences as column-aligned hex dump text, with a configurable
// numeral base, byte order, group size, line width, duplicate-line collapsing and line layout.
//
// # Overview
//
// A Config describes the layout. It is built from functional options, validated once and
// immutable afterwards, so a single Config can be shared by any number of dumps:
//
//	cfg, err := hexdump.NewConfig(
//	    hexdump.WithGroupSize(4),
//	    hexdump.WithGroupsPerLine(4),
//	    hexdump.WithEndianness(hexdump.BigEndian),
//	)
//
// The default layout is
//
//	00000000: 00 01 02 03 04 05 06 07 08 09 0a 0b 0c 0d 0e 0f | ................
//
// # Quick Start
//
// Streaming API over any io.Reader:
//
//	dumper, _ := hexdump.NewDumper(reader, cfg)
//	for {
//	    line, err := dumper.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    // Use line.Text
//	}
//
// In-memory data:
//
//	fmt.Print(hexdump.Dump(data))
//
// Zero-allocation API for performance-critical code:
//
//	f := hexdump.NewLineFormatter(cfg, 8)
//	buf = f.AppendLine(buf[:0], offset, chunk)
//
// # Templates
//
// Each line is laid out by a template holding literal text and the placeholders #[OFFSET],
// #[RAW] and #[ASCII]. The template is parsed when the Config is built and replayed for every
// line. DefaultTemplate is "#[OFFSET]: #[RAW] | #[ASCII]".
//
// # Groups
//
// The bytes of a line are split into groups of GroupSize bytes. Each group is read as one
// unsigned number in the configured byte order and printed zero-padded to the width of the
// largest value of that size: 2 hex digits per byte, 8 binary digits per byte, 3/6/11/22 octal
// digits and 3/5/10/20 decimal digits for 1/2/4/8-byte groups. Groups are always printed in
// increasing offset order; the byte order only applies inside a group.
//
// The last line of a dump may be shorter than the others. It holds fewer groups and fewer ASCII
// characters, and no padding is added.
//
// # Duplicate Lines
//
// With WithDisplayDuplicates(false), consecutive lines with identical bytes are collapsed: the
// first is printed, the rest are replaced by a single "*" line. When the input ends inside such
// a run, the last line of the run is printed to show where the data ends.
//
// # Offsets
//
// With the automatic offset width, offsets use at least as many digits as a 32-bit offset needs
// in the base (8 in hex). When the length of the input is known the column is widened to fit the
// last offset; otherwise it is sized from the start offset. Offsets are never truncated.
//
// # Thread Safety
//
// Config is immutable and safe for concurrent use. Dumper, LineFormatter and Collapser keep
// per-instance state and must be used by one goroutine at a time. For high-throughput scenarios,
// use DumperPool to recycle instances.
package hexdump
