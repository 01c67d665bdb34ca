package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteRegionFile writes the region bytes to a file in a temporary directory
// and returns its path, standing in for an hsperfdata file.
//
// Example:
//
//	r := testutil.NewRegion(256, binary.LittleEndian)
//	r.AddLong("sun.gc.count", types.UnitsEvents, types.VariabilityMonotonic, 42)
//	path := testutil.WriteRegionFile(t, r.Bytes())
func WriteRegionFile(t *testing.T, data []byte) string {
	t.Helper()
	return WriteRegionFileNamed(t, data, "hsperfdata-test")
}

// WriteRegionFileNamed is WriteRegionFile with an explicit file name.
func WriteRegionFileNamed(t *testing.T, data []byte, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("Failed to write region file: %v", err)
	}
	return path
}
