package main

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/joshuapare/perfkit/internal/testutil"
	"github.com/joshuapare/perfkit/pkg/types"
)

// testRegionPath writes a small JVM-like region to a temp file.
func testRegionPath(t *testing.T) string {
	t.Helper()
	r := testutil.NewRegion(2048, binary.LittleEndian)
	r.AddLong("sun.gc.collector.0.invocations", types.UnitsEvents, types.VariabilityMonotonic, 12)
	r.AddLong("sun.gc.collector.0.time", types.UnitsTicks, types.VariabilityMonotonic, 345678)
	r.AddLong("sun.gc.generation.0.capacity", types.UnitsBytes, types.VariabilityVariable, 64<<20)
	r.AddLong("java.threads.live", types.UnitsNone, types.VariabilityVariable, 17)
	r.AddString("sun.rt.javaCommand", types.VariabilityConstant, 64, "com.example.Main --port 8080")
	return testutil.WriteRegionFile(t, r.Bytes())
}

// resetFlags restores the global flags after a test.
func resetFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		verbose, quiet, jsonOut = false, false, false
		charsetName, syncWait = "", 0
		listPattern, listPrefix, listSupported = "", "", false
		getRaw = false
		watchPattern, watchCount, watchInterval = "", 0, time.Second
	})
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	done := make(chan []byte)
	go func() {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(r)
		done <- buf.Bytes()
	}()

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout
	return string(<-done), fnErr
}

// assertJSON checks that output is valid JSON and decodes it into v
func assertJSON(t *testing.T, output string, v any) {
	t.Helper()
	if err := json.Unmarshal([]byte(output), v); err != nil {
		t.Fatalf("output is not valid JSON: %v\nOutput: %s", err, output)
	}
}
