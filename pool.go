package hexdump

import (
	"io"
	"slices"
	"sync"
)

// DumperPool is a pool of Dumper instances for reuse in high-throughput scenarios.
// It reduces allocations by recycling dumpers and their line buffers instead of creating new
// ones.
type DumperPool struct {
	pool sync.Pool
	cfg  *Config
	opts []DumpOption
}

// NewDumperPool creates a new DumperPool with the given configuration and options.
// All dumpers created from this pool share them. A nil or zero-value cfg selects DefaultConfig.
func NewDumperPool(cfg *Config, opts ...DumpOption) *DumperPool {
	return &DumperPool{
		cfg:  cfg.orDefault(),
		opts: opts,
	}
}

// Get retrieves a Dumper from the pool, or creates a new one if the pool is empty.
// The dumper reads from r and is ready to use. opts are applied after the pool's options, for
// this dump only.
func (p *DumperPool) Get(r io.Reader, opts ...DumpOption) (*Dumper, error) {
	if r == nil {
		return nil, ErrNilReader
	}

	if v := p.pool.Get(); v != nil {
		d := v.(*Dumper)
		d.reset(r, applyDumpOptions(applyDumpOptions(dumpConfig{}, p.opts), opts))

		return d, nil
	}

	return NewDumper(r, p.cfg, slices.Concat(p.opts, opts)...)
}

// Put returns a Dumper to the pool for reuse.
// The dumper should not be used after being returned to the pool.
func (p *DumperPool) Put(d *Dumper) {
	if d == nil || d.cfg != p.cfg {
		return
	}

	// Clear the reader to avoid holding references
	d.setSource(nil)
	p.pool.Put(d)
}

// Config returns the configuration shared by the pool's dumpers.
func (p *DumperPool) Config() *Config {
	return p.cfg
}
