/*
Package perf reads the live performance counters a HotSpot JVM publishes in
its hsperfdata file (PerfData format 2.0).

# Quick Start

Open the file of a running JVM and read a counter:

	buf, err := perf.Open(ctx, "/tmp/hsperfdata_app/4242", nil)
	if err != nil {
	    log.Fatal(err)
	}
	defer buf.Close()

	if m, ok := buf.Get("sun.gc.collector.0.invocations"); ok {
	    fmt.Println(m.Read())
	}

# Polling

The producer keeps appending counters while it runs. Poll picks up entries
added since the last scan; existing monitors update in place:

	for range time.Tick(time.Second) {
	    d, err := buf.Poll()
	    if err != nil {
	        log.Printf("poll: %v", err)
	        continue
	    }
	    for _, m := range d.Inserted {
	        fmt.Println("new counter", m.Name())
	    }
	}

# Readiness

A JVM zero-fills the region before it writes the header. Open and Attach wait
for the accessible flag, up to Options.SyncWait (default 5s, overridable with
the PERFKIT_SYNC_WAIT environment variable), and fail with
types.ErrSyncTimeout otherwise.

# Errors

All errors carry a *types.Error with a Kind: structure and data errors point
at a corrupt or incompatible region, type errors at a record this version
does not decode. Use types.IsKind to branch on them.
*/
package perf
