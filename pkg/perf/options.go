package perf

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"

	"github.com/joshuapare/perfkit/internal/perfdata"
)

// SyncWaitEnv overrides the default readiness wait. It accepts a Go duration
// ("750ms") or a plain number of milliseconds.
const SyncWaitEnv = "PERFKIT_SYNC_WAIT"

// Options controls how a region is attached.
type Options struct {
	// SyncWait bounds the wait for the accessible flag. Zero uses the
	// default.
	SyncWait time.Duration

	// SyncInterval is the sleep between accessible checks. Zero uses 20ms.
	SyncInterval time.Duration

	// Charset decodes string counters. Nil treats them as UTF-8, which is
	// right for ASCII and for producers running with a UTF-8 locale.
	Charset encoding.Encoding

	// Logger receives debug output about scans. Nil disables logging.
	Logger *zap.Logger
}

// DefaultOptions returns the options used when nil is passed to Open or
// Attach.
func DefaultOptions() *Options {
	return &Options{
		SyncWait:     defaultSyncWait(),
		SyncInterval: perfdata.DefaultSyncInterval,
	}
}

func defaultSyncWait() time.Duration {
	v := strings.TrimSpace(os.Getenv(SyncWaitEnv))
	if v == "" {
		return perfdata.DefaultSyncWait
	}
	if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
		return time.Duration(ms) * time.Millisecond
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	return perfdata.DefaultSyncWait
}

func (o *Options) internal() perfdata.Options {
	if o == nil {
		o = DefaultOptions()
	}
	out := perfdata.Options{
		SyncWait:     o.SyncWait,
		SyncInterval: o.SyncInterval,
		Charset:      o.Charset,
		Logger:       o.Logger,
	}
	if out.SyncWait <= 0 {
		out.SyncWait = defaultSyncWait()
	}
	return out
}

var charsetAliases = map[string]encoding.Encoding{
	"latin1":  charmap.ISO8859_1,
	"latin-1": charmap.ISO8859_1,
	"cp1252":  charmap.Windows1252,
	"ansi":    charmap.Windows1252,
}

// CharsetByName resolves a charset name for Options.Charset. Empty and
// UTF-8 names return nil. IANA names and aliases ("ISO-8859-1",
// "windows-1252") are accepted, plus the short forms latin1 and cp1252.
func CharsetByName(name string) (encoding.Encoding, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	switch key {
	case "", "utf-8", "utf8":
		return nil, nil
	}
	if enc, ok := charsetAliases[key]; ok {
		return enc, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("charset %q: %w", name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("charset %q is not supported", name)
	}
	return enc, nil
}
