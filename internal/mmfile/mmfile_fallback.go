//go:build !unix

package mmfile

import (
	"fmt"
	"os"
)

// Map reads the file at path. Without shared mappings the contents are a
// snapshot and do not follow later producer writes.
func Map(path string) (*Region, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("mmfile: %w", err)
	}
	return &Region{data: data}, nil
}
