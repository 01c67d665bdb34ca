// Package perfdata decodes a live PerfData region into a table of monitors
// and keeps the table current as the producer appends entries.
//
// A Buffer is not safe for concurrent Build/Poll; callers serialize them.
// Monitor.Read may run concurrently with anything since it only loads from
// the region.
package perfdata

import (
	"context"
	"encoding/binary"
	"iter"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"

	"github.com/joshuapare/perfkit/internal/format"
)

const (
	// DefaultSyncWait bounds how long Build waits for the accessible flag.
	DefaultSyncWait = 5 * time.Second
	// DefaultSyncInterval is the sleep between accessible flag checks.
	DefaultSyncInterval = 20 * time.Millisecond
)

// Options configures Build.
type Options struct {
	SyncWait     time.Duration
	SyncInterval time.Duration

	// Charset decodes string monitors. Nil treats the bytes as UTF-8.
	Charset encoding.Encoding

	Logger *zap.Logger

	sleep func(context.Context, time.Duration) error
}

func (o Options) withDefaults() Options {
	if o.SyncWait <= 0 {
		o.SyncWait = DefaultSyncWait
	}
	if o.SyncInterval <= 0 {
		o.SyncInterval = DefaultSyncInterval
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// Delta is the outcome of one Poll. Removed is always empty: the format has
// no way to retire an entry.
type Delta struct {
	Inserted []*Monitor
	Removed  []*Monitor
}

// Empty reports whether the poll found nothing new.
func (d Delta) Empty() bool {
	return len(d.Inserted) == 0 && len(d.Removed) == 0
}

// Buffer is a decoded view over a PerfData region.
type Buffer struct {
	region   []byte
	order    binary.ByteOrder
	prologue *format.Prologue
	table    *Table
	decode   func([]byte) string
	log      *zap.Logger

	nextEntry      int
	lastNumEntries int32
}

// Build waits for the region to become accessible, validates the prologue,
// and scans every entry written so far.
func Build(ctx context.Context, region []byte, opts Options) (*Buffer, error) {
	opts = opts.withDefaults()
	log := opts.Logger

	if err := waitAccessible(ctx, region, opts); err != nil {
		log.Debug("perfdata region not accessible", zap.Int("capacity", len(region)), zap.Error(err))
		return nil, err
	}

	p, err := format.ParsePrologue(region)
	if err != nil {
		return nil, wrapFormatErr(err)
	}

	b := &Buffer{
		region:   region,
		order:    p.ByteOrder(),
		prologue: p,
		table:    newTable(),
		decode:   newDecoder(opts.Charset),
		log:      log,
	}
	for _, m := range b.pseudoMonitors() {
		b.table.add(m)
	}

	b.nextEntry = int(p.EntryOffset())
	b.lastNumEntries = p.NumEntries()
	if _, err := b.scan(); err != nil {
		return nil, err
	}

	log.Debug("perfdata initial scan complete",
		zap.Int("capacity", len(region)),
		zap.Stringer("byte_order", b.order),
		zap.Int32("num_entries", b.lastNumEntries),
		zap.Int("monitors", b.table.Len()),
		zap.Int("next_entry", b.nextEntry))
	return b, nil
}

// Poll picks up entries appended since the last scan. It only rescans when
// the prologue's entry count has grown. On error the monitors decoded before
// the failing entry stay in the table and are returned alongside the error;
// the next Poll retries from the failing entry.
func (b *Buffer) Poll() (Delta, error) {
	n := b.prologue.NumEntries()
	if n <= b.lastNumEntries {
		return Delta{}, nil
	}

	inserted, err := b.scan()
	d := Delta{Inserted: inserted}
	if err != nil {
		b.log.Debug("perfdata rescan failed",
			zap.Int("inserted", len(inserted)),
			zap.Int("next_entry", b.nextEntry),
			zap.Error(err))
		return d, err
	}
	b.lastNumEntries = n

	b.log.Debug("perfdata rescan",
		zap.Int32("num_entries", n),
		zap.Int("inserted", len(inserted)),
		zap.Int("next_entry", b.nextEntry))
	return d, nil
}

// scan decodes entries from the cursor until the end-of-data sentinel and
// inserts those whose names are new.
func (b *Buffer) scan() ([]*Monitor, error) {
	var inserted []*Monitor
	for {
		m, err := b.nextMonitor()
		if err != nil {
			return inserted, err
		}
		if m == nil {
			return inserted, nil
		}
		if b.table.add(m) {
			inserted = append(inserted, m)
		} else {
			b.log.Debug("perfdata duplicate monitor skipped", zap.String("name", m.name))
		}
	}
}

func newDecoder(enc encoding.Encoding) func([]byte) string {
	if enc == nil {
		return func(p []byte) string { return string(p) }
	}
	return func(p []byte) string {
		out, err := enc.NewDecoder().Bytes(p)
		if err != nil {
			return string(p)
		}
		return string(out)
	}
}

// Table returns the monitor table.
func (b *Buffer) Table() *Table { return b.table }

// Get returns the monitor with the given name.
func (b *Buffer) Get(name string) (*Monitor, bool) { return b.table.Get(name) }

// Monitors returns the monitors in insertion order.
func (b *Buffer) Monitors() []*Monitor { return b.table.Monitors() }

// All iterates the monitors in insertion order.
func (b *Buffer) All() iter.Seq[*Monitor] { return b.table.All() }

// Prologue returns the live prologue view.
func (b *Buffer) Prologue() *format.Prologue { return b.prologue }

// Region returns the underlying region.
func (b *Buffer) Region() []byte { return b.region }

// NextEntry returns the scan cursor.
func (b *Buffer) NextEntry() int { return b.nextEntry }

// LastNumEntries returns the entry count observed by the last complete scan.
func (b *Buffer) LastNumEntries() int32 { return b.lastNumEntries }
