package main

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/joshuapare/perfkit/pkg/perf"
	"github.com/joshuapare/perfkit/pkg/types"
)

// monitorJSON is the JSON shape of one counter.
type monitorJSON struct {
	Name        string `json:"name"`
	Units       string `json:"units"`
	Variability string `json:"variability"`
	Supported   bool   `json:"supported"`
	Kind        string `json:"kind"`
	Value       any    `json:"value"`
}

func toJSON(m *perf.Monitor) monitorJSON {
	return monitorJSON{
		Name:        m.Name(),
		Units:       m.Units().String(),
		Variability: m.Variability().String(),
		Supported:   m.Supported(),
		Kind:        m.Kind().String(),
		Value:       m.Read().Value(),
	}
}

// formatValue renders a snapshot for text output. Byte counts also get a
// human readable size.
func formatValue(m *perf.Monitor, s types.Snapshot) string {
	if s.Kind.IsString() {
		return fmt.Sprintf("%q", s.Str)
	}
	if m.Units() == types.UnitsBytes && s.Int >= 1024 {
		return fmt.Sprintf("%d (%s)", s.Int, humanize.IBytes(uint64(s.Int)))
	}
	return humanize.Comma(s.Int)
}
