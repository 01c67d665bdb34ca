package main

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestInfoCommand(t *testing.T) {
	resetFlags(t)
	path := testRegionPath(t)

	out, err := captureOutput(t, func() error { return runInfo(context.Background(), []string{path}) })
	if err != nil {
		t.Fatalf("info: %v", err)
	}
	for _, want := range []string{"Version: 2.0", "Byte order: LittleEndian", "Capacity: 2.0 KiB", "Entries: 5", "Monitors: 9"} {
		if !strings.Contains(out, want) {
			t.Errorf("info output missing %q:\n%s", want, out)
		}
	}

	jsonOut = true
	out, err = captureOutput(t, func() error { return runInfo(context.Background(), []string{path}) })
	if err != nil {
		t.Fatalf("info --json: %v", err)
	}
	var info struct {
		Monitors int `json:"monitors"`
		Header   struct {
			NumEntries int `json:"num_entries"`
			Capacity   int `json:"capacity"`
		} `json:"header"`
	}
	assertJSON(t, out, &info)
	if info.Monitors != 9 || info.Header.NumEntries != 5 || info.Header.Capacity != 2048 {
		t.Errorf("unexpected info: %+v", info)
	}
}

func TestInfoCommandMissingFile(t *testing.T) {
	resetFlags(t)
	_, err := captureOutput(t, func() error { return runInfo(context.Background(), []string{"/nonexistent/4242"}) })
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestListCommand(t *testing.T) {
	tests := []struct {
		name           string
		pattern        string
		prefix         string
		supportedOnly  bool
		wantContain    []string
		wantNotContain []string
		wantErr        bool
	}{
		{
			name:        "all counters",
			wantContain: []string{"NAME", "sun.perfdata.size", "sun.gc.collector.0.invocations", "java.threads.live", `"com.example.Main --port 8080"`},
		},
		{
			name:           "pattern",
			pattern:        `sun\.gc\.collector\.\d+\.`,
			wantContain:    []string{"sun.gc.collector.0.invocations", "sun.gc.collector.0.time", "345,678"},
			wantNotContain: []string{"java.threads.live", "sun.gc.generation"},
		},
		{
			name:           "prefix",
			prefix:         "java.",
			wantContain:    []string{"java.threads.live"},
			wantNotContain: []string{"sun.gc"},
		},
		{
			name:           "supported only",
			supportedOnly:  true,
			wantContain:    []string{"sun.gc.generation.0.capacity", "64 MiB"},
			wantNotContain: []string{"sun.perfdata.used"},
		},
		{
			name:    "bad pattern",
			pattern: `(`,
			wantErr: true,
		},
	}

	path := testRegionPath(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags(t)
			listPattern, listPrefix, listSupported = tt.pattern, tt.prefix, tt.supportedOnly

			out, err := captureOutput(t, func() error { return runList(context.Background(), []string{path}) })
			if (err != nil) != tt.wantErr {
				t.Fatalf("runList error = %v, wantErr %v", err, tt.wantErr)
			}
			for _, want := range tt.wantContain {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
			for _, not := range tt.wantNotContain {
				if strings.Contains(out, not) {
					t.Errorf("output should not contain %q:\n%s", not, out)
				}
			}
		})
	}
}

func TestListCommandTable(t *testing.T) {
	resetFlags(t)
	listPrefix = "sun.gc.collector.0.invocations"

	out, err := captureOutput(t, func() error { return runList(context.Background(), []string{testRegionPath(t)}) })
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected bordered header and one row, got %d lines:\n%s", len(lines), out)
	}
	for _, i := range []int{0, 2, 4} {
		if !strings.HasPrefix(lines[i], "+-") {
			t.Errorf("line %d is not a border: %q", i, lines[i])
		}
	}
	for _, col := range []string{"NAME", "UNITS", "VARIABILITY", "VALUE"} {
		if !strings.Contains(lines[1], col) {
			t.Errorf("header missing %q: %q", col, lines[1])
		}
	}
	if !strings.HasPrefix(lines[3], "| sun.gc.collector.0.invocations |") {
		t.Errorf("unexpected row: %q", lines[3])
	}
}

func TestListCommandJSON(t *testing.T) {
	resetFlags(t)
	jsonOut = true
	listPrefix = "sun.gc.collector.0.invocations"

	out, err := captureOutput(t, func() error { return runList(context.Background(), []string{testRegionPath(t)}) })
	if err != nil {
		t.Fatalf("list --json: %v", err)
	}
	var got []monitorJSON
	assertJSON(t, out, &got)
	if len(got) != 1 {
		t.Fatalf("expected 1 counter, got %d", len(got))
	}
	m := got[0]
	if m.Units != "Events" || m.Variability != "Monotonic" || !m.Supported || m.Kind != "long" {
		t.Errorf("unexpected counter: %+v", m)
	}
	if v, ok := m.Value.(float64); !ok || v != 12 {
		t.Errorf("value = %#v, want 12", m.Value)
	}
}

func TestGetCommand(t *testing.T) {
	path := testRegionPath(t)

	tests := []struct {
		name        string
		names       []string
		raw         bool
		wantContain []string
		wantErr     bool
	}{
		{
			name:        "long",
			names:       []string{"java.threads.live"},
			wantContain: []string{"java.threads.live = 17"},
		},
		{
			name:        "raw string",
			names:       []string{"sun.rt.javaCommand"},
			raw:         true,
			wantContain: []string{"com.example.Main --port 8080\n"},
		},
		{
			name:        "several",
			names:       []string{"sun.gc.collector.0.invocations", "sun.perfdata.size"},
			wantContain: []string{"sun.gc.collector.0.invocations = 12", "sun.perfdata.size = 2048 (2.0 KiB)"},
		},
		{
			name:    "missing",
			names:   []string{"no.such.counter"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags(t)
			getRaw = tt.raw
			args := append([]string{path}, tt.names...)
			out, err := captureOutput(t, func() error { return runGet(context.Background(), args) })
			if (err != nil) != tt.wantErr {
				t.Fatalf("runGet error = %v, wantErr %v", err, tt.wantErr)
			}
			for _, want := range tt.wantContain {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestWatchCommand(t *testing.T) {
	resetFlags(t)
	watchPattern = `java\.threads\.`
	watchCount = 2
	watchInterval = 5 * time.Millisecond

	out, err := captureOutput(t, func() error { return runWatch(context.Background(), []string{testRegionPath(t)}) })
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	// Values do not change between polls, so each counter is printed once.
	if n := strings.Count(out, "java.threads.live = 17"); n != 1 {
		t.Errorf("expected one report of java.threads.live, got %d:\n%s", n, out)
	}
	if strings.Contains(out, "sun.gc") {
		t.Errorf("pattern not applied:\n%s", out)
	}
}

func TestParseLabels(t *testing.T) {
	got, err := parseLabels([]string{"job=orders", "pod.name=api-0", "empty="})
	if err != nil {
		t.Fatalf("parseLabels: %v", err)
	}
	want := map[string]string{"job": "orders", "pod_name": "api-0", "empty": ""}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("label %s = %q, want %q", k, got[k], v)
		}
	}

	for _, bad := range []string{"novalue", "=x"} {
		if _, err := parseLabels([]string{bad}); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestCharsetFlag(t *testing.T) {
	resetFlags(t)
	charsetName = "bogus-charset"
	_, err := captureOutput(t, func() error { return runInfo(context.Background(), []string{testRegionPath(t)}) })
	if err == nil {
		t.Fatal("expected error for unknown charset")
	}
}
