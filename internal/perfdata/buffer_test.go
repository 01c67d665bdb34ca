package perfdata

import (
	"context"
	"encoding/binary"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/perfkit/internal/testutil"
	"github.com/joshuapare/perfkit/pkg/types"
)

var pseudoNames = []string{PseudoSize, PseudoUsed, PseudoOverflow, PseudoTimestamp}

func build(t *testing.T, r *testutil.Region) *Buffer {
	t.Helper()
	b, err := Build(context.Background(), r.Bytes(), Options{})
	require.NoError(t, err)
	return b
}

func names(ms []*Monitor) []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.Name())
	}
	return out
}

func readInt(t *testing.T, b *Buffer, name string) int64 {
	t.Helper()
	m, ok := b.Get(name)
	require.True(t, ok, "monitor %s", name)
	v, ok := m.Int64()
	require.True(t, ok, "monitor %s is not numeric", name)
	return v
}

func TestBuild_RoundTrip(t *testing.T) {
	r := testutil.NewRegion(1024, binary.LittleEndian)
	r.AddLong("sun.gc.collector.0.invocations", types.UnitsEvents, types.VariabilityMonotonic, 17)
	r.AddLong("sun.os.hrt.frequency", types.UnitsHertz, types.VariabilityConstant, 1_000_000_000)
	r.AddLong("java.threads.live", types.UnitsNone, types.VariabilityVariable, 12)
	r.AddString("java.property.java.vm.name", types.VariabilityConstant, 32, "OpenJDK 64-Bit Server VM")
	r.AddString("sun.rt.javaCommand", types.VariabilityVariable, 64, "com.example.Main")

	b := build(t, r)

	want := append(append([]string{}, pseudoNames...),
		"sun.gc.collector.0.invocations",
		"sun.os.hrt.frequency",
		"java.threads.live",
		"java.property.java.vm.name",
		"sun.rt.javaCommand",
	)
	if diff := cmp.Diff(want, names(b.Monitors())); diff != "" {
		t.Fatalf("monitor names mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, r.NumEntries()+4, b.Table().Len())

	m, _ := b.Get("sun.gc.collector.0.invocations")
	assert.Equal(t, types.UnitsEvents, m.Units())
	assert.Equal(t, types.VariabilityMonotonic, m.Variability())
	assert.True(t, m.Supported())
	assert.Equal(t, types.KindLong, m.Kind())
	assert.Equal(t, int64(17), m.Read().Int)

	m, _ = b.Get("sun.os.hrt.frequency")
	assert.Equal(t, types.UnitsHertz, m.Units())
	assert.Equal(t, types.VariabilityConstant, m.Variability())

	m, _ = b.Get("java.property.java.vm.name")
	assert.Equal(t, types.KindStringConstant, m.Kind())
	assert.Equal(t, types.UnitsString, m.Units())
	assert.Equal(t, "OpenJDK 64-Bit Server VM", m.Read().Str)

	m, _ = b.Get("sun.rt.javaCommand")
	assert.Equal(t, types.KindStringVariable, m.Kind())
	assert.Equal(t, "com.example.Main", m.Read().Str)

	assert.Equal(t, int32(r.NumEntries()), b.LastNumEntries())
	assert.Equal(t, r.Next(), b.NextEntry())
}

func TestBuild_EndToEnd256(t *testing.T) {
	r := testutil.NewRegion(256, binary.LittleEndian)
	r.SetEntryOffset(64)
	first := r.AddLong("sun.gc.count", types.UnitsEvents, types.VariabilityMonotonic, 42)
	require.Equal(t, 64, first)
	require.Equal(t, 1, r.NumEntries())

	b := build(t, r)
	m, ok := b.Get("sun.gc.count")
	require.True(t, ok)
	assert.Equal(t, types.Snapshot{Kind: types.KindLong, Int: 42}, m.Read())

	r.AddLong("sun.gc.time", types.UnitsTicks, types.VariabilityMonotonic, 7)
	require.Equal(t, 2, r.NumEntries())

	d, err := b.Poll()
	require.NoError(t, err)
	assert.Equal(t, []string{"sun.gc.time"}, names(d.Inserted))
	assert.Empty(t, d.Removed)
	assert.Equal(t, int64(42), m.Read().Int)
	assert.Equal(t, int64(7), readInt(t, b, "sun.gc.time"))
}

func TestPoll_NoGrowthIsIdempotent(t *testing.T) {
	r := testutil.NewRegion(512, binary.LittleEndian)
	r.AddLong("a", types.UnitsNone, types.VariabilityVariable, 1)
	b := build(t, r)
	cursor := b.NextEntry()

	// Bytes written without bumping the count are not looked at.
	r.WriteEntry(r.Next(), testutil.EntrySpec{
		Name: "b", Type: byte(types.TypeLong), Flags: 1,
		Units: uint8(types.UnitsNone), Variability: uint8(types.VariabilityVariable),
		Data: make([]byte, 8),
	})

	for range 2 {
		d, err := b.Poll()
		require.NoError(t, err)
		assert.True(t, d.Empty())
		assert.Equal(t, cursor, b.NextEntry())
	}
	_, ok := b.Get("b")
	assert.False(t, ok)
}

func TestPoll_CountBeforeBytesNeverDuplicates(t *testing.T) {
	r := testutil.NewRegion(1024, binary.LittleEndian)
	r.AddLong("a", types.UnitsNone, types.VariabilityVariable, 1)
	b := build(t, r)

	seen := map[string]int{}
	record := func(d Delta) {
		for _, m := range d.Inserted {
			seen[m.Name()]++
		}
	}

	// Count grows while the entry length is still zero.
	start := r.AddLong("b", types.UnitsNone, types.VariabilityVariable, 2)
	length := r.EntryLength(start)
	r.SetEntryLength(start, 0)

	d, err := b.Poll()
	require.NoError(t, err)
	assert.True(t, d.Empty())
	assert.Equal(t, start, b.NextEntry())
	record(d)

	r.SetEntryLength(start, length)
	d, err = b.Poll()
	require.NoError(t, err)
	assert.True(t, d.Empty(), "count unchanged since last scan")
	record(d)

	r.AddLong("c", types.UnitsNone, types.VariabilityVariable, 3)
	d, err = b.Poll()
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, names(d.Inserted))
	record(d)

	// A second entry with an existing name is skipped.
	r.AddLong("b", types.UnitsNone, types.VariabilityVariable, 99)
	d, err = b.Poll()
	require.NoError(t, err)
	assert.Empty(t, d.Inserted)
	record(d)

	for name, n := range seen {
		assert.Equal(t, 1, n, "monitor %s reported %d times", name, n)
	}
	assert.Equal(t, int64(2), readInt(t, b, "b"))
}

func TestPoll_TruncatedEntryKeepsState(t *testing.T) {
	r := testutil.NewRegion(512, binary.LittleEndian)
	r.AddLong("a", types.UnitsNone, types.VariabilityVariable, 5)
	b := build(t, r)

	r.AddLong("c", types.UnitsNone, types.VariabilityVariable, 6)
	bad := r.AddLong("d", types.UnitsNone, types.VariabilityVariable, 7)
	length := r.EntryLength(bad)
	r.SetEntryLength(bad, 512-bad+8)

	d, err := b.Poll()
	require.Error(t, err)
	assert.True(t, types.IsKind(err, types.ErrKindStructure), "got %v", err)
	assert.Equal(t, []string{"c"}, names(d.Inserted))
	assert.Equal(t, bad, b.NextEntry())
	assert.Equal(t, int64(5), readInt(t, b, "a"))
	assert.Equal(t, int64(6), readInt(t, b, "c"))

	// Still corrupt: the same error again, nothing new.
	d, err = b.Poll()
	require.Error(t, err)
	assert.Empty(t, d.Inserted)
	assert.Equal(t, bad, b.NextEntry())

	r.SetEntryLength(bad, length)
	d, err = b.Poll()
	require.NoError(t, err)
	assert.Equal(t, []string{"d"}, names(d.Inserted))
	assert.Equal(t, int64(7), readInt(t, b, "d"))
}

func TestBuild_ReadinessGate(t *testing.T) {
	t.Run("times out", func(t *testing.T) {
		r := testutil.NewRegion(256, binary.LittleEndian)
		r.SetAccessible(false)
		_, err := Build(context.Background(), r.Bytes(), Options{
			SyncWait:     30 * time.Millisecond,
			SyncInterval: 5 * time.Millisecond,
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, types.ErrSyncTimeout))
		assert.True(t, types.IsKind(err, types.ErrKindTimeout))
		assert.Equal(t, "could not synchronize with target", err.Error())
	})

	t.Run("zero region is not ready", func(t *testing.T) {
		_, err := Build(context.Background(), make([]byte, 256), Options{
			SyncWait:     10 * time.Millisecond,
			SyncInterval: time.Millisecond,
		})
		assert.True(t, errors.Is(err, types.ErrSyncTimeout), "got %v", err)
	})

	t.Run("becomes ready late", func(t *testing.T) {
		r := testutil.NewRegion(256, binary.LittleEndian)
		r.AddLong("late", types.UnitsNone, types.VariabilityConstant, 3)
		r.SetAccessible(false)

		calls := 0
		b, err := Build(context.Background(), r.Bytes(), Options{
			SyncWait: time.Hour,
			sleep: func(context.Context, time.Duration) error {
				calls++
				if calls == 3 {
					r.SetAccessible(true)
				}
				return nil
			},
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
		assert.Equal(t, int64(3), readInt(t, b, "late"))
	})

	t.Run("context canceled", func(t *testing.T) {
		r := testutil.NewRegion(256, binary.LittleEndian)
		r.SetAccessible(false)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := Build(ctx, r.Bytes(), Options{SyncWait: time.Hour})
		require.Error(t, err)
		assert.True(t, types.IsKind(err, types.ErrKindTimeout))
		assert.True(t, errors.Is(err, context.Canceled))
		assert.True(t, errors.Is(err, types.ErrSyncTimeout))
	})

	t.Run("region smaller than prologue", func(t *testing.T) {
		_, err := Build(context.Background(), make([]byte, 16), Options{})
		require.Error(t, err)
		assert.True(t, types.IsKind(err, types.ErrKindStructure))
	})
}

func TestBuild_PrologueErrors(t *testing.T) {
	t.Run("bad magic", func(t *testing.T) {
		r := testutil.NewRegion(256, binary.LittleEndian)
		r.SetByte(0, 0)
		_, err := Build(context.Background(), r.Bytes(), Options{})
		assert.True(t, types.IsKind(err, types.ErrKindStructure), "got %v", err)
	})

	t.Run("unsupported version", func(t *testing.T) {
		r := testutil.NewRegion(256, binary.LittleEndian)
		r.SetByte(5, 1)
		_, err := Build(context.Background(), r.Bytes(), Options{})
		assert.True(t, types.IsKind(err, types.ErrKindStructure), "got %v", err)
	})

	t.Run("bad byte order", func(t *testing.T) {
		r := testutil.NewRegion(256, binary.LittleEndian)
		r.SetByte(4, 7)
		_, err := Build(context.Background(), r.Bytes(), Options{})
		assert.True(t, types.IsKind(err, types.ErrKindStructure), "got %v", err)
	})
}

func TestBuild_BigEndian(t *testing.T) {
	r := testutil.NewRegion(512, binary.BigEndian)
	r.AddLong("sun.big", types.UnitsBytes, types.VariabilityVariable, 0x0102030405060708)
	r.AddString("sun.big.name", types.VariabilityVariable, 16, "be")
	b := build(t, r)

	assert.Equal(t, int64(0x0102030405060708), readInt(t, b, "sun.big"))
	assert.Equal(t, int64(r.Next()), readInt(t, b, PseudoUsed))
	assert.Equal(t, int64(512), readInt(t, b, PseudoSize))

	m, _ := b.Get("sun.big.name")
	assert.Equal(t, "be", m.Read().Str)

	r.AddLong("sun.big.2", types.UnitsBytes, types.VariabilityVariable, -1)
	d, err := b.Poll()
	require.NoError(t, err)
	assert.Equal(t, []string{"sun.big.2"}, names(d.Inserted))
	assert.Equal(t, int64(-1), readInt(t, b, "sun.big.2"))
}

func TestBuild_EntryOffsetAtCapacity(t *testing.T) {
	r := testutil.NewRegion(64, binary.LittleEndian)
	r.SetEntryOffset(64)
	b := build(t, r)
	assert.Equal(t, pseudoNames, names(b.Monitors()))
}
