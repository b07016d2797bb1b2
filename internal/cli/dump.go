package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kalbasit/hexdump"
	"github.com/kalbasit/hexdump/internal/source"
)

// dumpJob holds the settings shared by every input of one invocation.
type dumpJob struct {
	pool    *hexdump.DumperPool
	verbose bool

	source    source.Options
	offset    uint64
	limit     uint64
	hasLimit  bool
	hasHeader bool
}

func runDump(cmd *cobra.Command, v *viper.Viper, args []string) error {
	profile, err := profileFromViper(v)
	if err != nil {
		return err
	}

	cfg, err := profile.Config()
	if err != nil {
		return err
	}

	job, err := newDumpJob(cmd, v, cfg)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		args = []string{source.Stdin}
	}

	job.hasHeader = len(args) > 1

	out := bufio.NewWriter(cmd.OutOrStdout())

	var errs []error

	for i, name := range args {
		err := job.dump(out, name, i == 0)
		if isBrokenPipe(err) {
			return nil
		}

		if err != nil {
			errs = append(errs, err)
		}
	}

	if err := out.Flush(); err != nil && !isBrokenPipe(err) {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func newDumpJob(cmd *cobra.Command, v *viper.Viper, cfg *hexdump.Config) (*dumpJob, error) {
	decompress, err := source.ParseDecompress(v.GetString("decompress"))
	if err != nil {
		return nil, err
	}

	skip, err := parseCount("skip", v.GetString("skip"))
	if err != nil {
		return nil, err
	}

	offset, err := parseCount("offset", v.GetString("offset"))
	if err != nil {
		return nil, err
	}

	// Skipped bytes count toward the displayed offsets.
	if offset > math.MaxUint64-skip {
		return nil, fmt.Errorf("%w: offset %d plus skip %d", hexdump.ErrOffsetOverflow, offset, skip)
	}

	job := &dumpJob{
		pool:    hexdump.NewDumperPool(cfg),
		verbose: v.GetBool("verbose") || v.GetBool("debug"),
		source: source.Options{
			Skip:       skip,
			Decompress: decompress,
			Stdin:      cmd.InOrStdin(),
		},
		offset: offset,
	}

	if length := v.GetString("length"); length != "" {
		job.limit, err = parseCount("length", length)
		if err != nil {
			return nil, err
		}

		job.hasLimit = true
	}

	if v.GetBool("debug") {
		log.Printf("format: %s\n", cfg)
	}

	return job, nil
}

// parseCount parses a byte count or offset written in decimal, or with a 0x, 0o or 0b prefix.
func parseCount(name, s string) (uint64, error) {
	n, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, s, err)
	}

	return n, nil
}

// dump writes the dump of one input to w.
func (j *dumpJob) dump(w io.Writer, name string, first bool) error {
	src, err := source.Open(name, j.source)
	if err != nil {
		return err
	}
	defer src.Close()

	if j.hasHeader {
		if !first {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}

		if _, err := fmt.Fprintf(w, "==> %s <==\n", src.Name()); err != nil {
			return err
		}
	}

	opts := []hexdump.DumpOption{hexdump.WithStartOffset(j.offset + j.source.Skip)}

	if size, ok := src.Size(); ok {
		opts = append(opts, hexdump.WithSizeHint(size))
	}

	if j.hasLimit {
		opts = append(opts, hexdump.WithReadLimit(j.limit))
	}

	d, err := j.pool.Get(src, opts...)
	if err != nil {
		return err
	}
	defer j.pool.Put(d)

	n, err := d.WriteTo(w)
	if err != nil {
		return fmt.Errorf("%s: %w", src.Name(), err)
	}

	if j.verbose {
		log.Printf("%s: %s, %d bytes read, %d bytes written\n", src.Name(), src.Format(), d.Offset()-j.offset-j.source.Skip, n)
	}

	return nil
}

// isBrokenPipe reports whether the reader of the output went away, as when piping into head.
func isBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}
