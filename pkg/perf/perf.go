package perf

import (
	"context"
	"fmt"
	"iter"

	"github.com/joshuapare/perfkit/internal/mmfile"
	"github.com/joshuapare/perfkit/internal/perfdata"
	"github.com/joshuapare/perfkit/pkg/types"
)

// Buffer is an attached PerfData region and its monitor table. Poll must not
// be called concurrently; Monitor.Read may be.
type Buffer struct {
	pd     *perfdata.Buffer
	file   *mmfile.Region
	closed bool
}

// Open maps the hsperfdata file at path and attaches to it.
func Open(ctx context.Context, path string, opts *Options) (*Buffer, error) {
	region, err := mmfile.Map(path)
	if err != nil {
		return nil, &types.Error{Kind: types.ErrKindState, Msg: "open perfdata file", Err: err}
	}
	pd, err := perfdata.Build(ctx, region.Bytes(), opts.internal())
	if err != nil {
		_ = region.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Buffer{pd: pd, file: region}, nil
}

// Attach builds a Buffer over memory the caller already holds, such as a
// shared mapping obtained elsewhere. The region must stay valid until the
// Buffer is no longer used.
func Attach(ctx context.Context, region []byte, opts *Options) (*Buffer, error) {
	pd, err := perfdata.Build(ctx, region, opts.internal())
	if err != nil {
		return nil, err
	}
	return &Buffer{pd: pd}, nil
}

func (b *Buffer) ensureOpen() error {
	if b.closed {
		return types.ErrClosed
	}
	return nil
}

// Poll picks up counters the producer appended since the last scan.
func (b *Buffer) Poll() (Delta, error) {
	if err := b.ensureOpen(); err != nil {
		return Delta{}, err
	}
	return b.pd.Poll()
}

// Get returns the monitor with the given name.
func (b *Buffer) Get(name string) (*Monitor, bool) {
	if b.closed {
		return nil, false
	}
	return b.pd.Get(name)
}

// Len returns the number of monitors, header counters included.
func (b *Buffer) Len() int {
	if b.closed {
		return 0
	}
	return b.pd.Table().Len()
}

// Monitors returns all monitors in the order they were found.
func (b *Buffer) Monitors() []*Monitor {
	if b.closed {
		return nil
	}
	return b.pd.Monitors()
}

// All iterates the monitors in the order they were found.
func (b *Buffer) All() iter.Seq[*Monitor] {
	if b.closed {
		return func(func(*Monitor) bool) {}
	}
	return b.pd.All()
}

// FindByPattern returns the monitors whose names match the regular
// expression at their start.
func (b *Buffer) FindByPattern(pattern string) ([]*Monitor, error) {
	if err := b.ensureOpen(); err != nil {
		return nil, err
	}
	return b.pd.Table().FindByPattern(pattern)
}

// FindByPrefix returns the monitors whose names begin with prefix.
func (b *Buffer) FindByPrefix(prefix string) []*Monitor {
	if b.closed {
		return nil
	}
	return b.pd.Table().FindByPrefix(prefix)
}

// Prologue reads the current header fields.
func (b *Buffer) Prologue() PrologueInfo {
	if b.closed {
		return PrologueInfo{}
	}
	p := b.pd.Prologue()
	return PrologueInfo{
		ByteOrder:    p.ByteOrder().String(),
		MajorVersion: p.MajorVersion(),
		MinorVersion: p.MinorVersion(),
		Accessible:   p.Accessible(),
		Capacity:     p.Capacity(),
		Used:         p.Used(),
		Overflow:     p.Overflow(),
		ModTimeStamp: p.ModTimeStamp(),
		EntryOffset:  p.EntryOffset(),
		NumEntries:   p.NumEntries(),
	}
}

// Close releases the file mapping, if Open created one. Monitors obtained
// from the Buffer must not be read afterwards.
func (b *Buffer) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	if b.file != nil {
		return b.file.Close()
	}
	return nil
}
