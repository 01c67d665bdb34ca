// Package export pushes PerfData counters to a Prometheus remote-write
// endpoint on a fixed interval.
package export

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/eryajf/promwrite"
	"go.uber.org/zap"

	"github.com/joshuapare/perfkit/pkg/perf"
)

// Source is what the exporter reads from. *perf.Buffer implements it.
type Source interface {
	Poll() (perf.Delta, error)
	All() iter.Seq[*perf.Monitor]
}

// Config defines how and where counters are written.
type Config struct {
	// RemoteWriteURL is the Prometheus remote-write endpoint.
	RemoteWriteURL string

	// Interval between pushes. Defaults to 15s.
	Interval time.Duration

	// WriteTimeout bounds a single remote write. Defaults to 10s.
	WriteTimeout time.Duration

	// Namespace is prepended to every metric name when set.
	Namespace string

	// Labels are attached to every series, e.g. the JVM's pid or job.
	Labels map[string]string

	// IncludeUnsupported also exports counters the producer flagged as
	// unsupported, which includes the sun.perfdata.* header counters.
	IncludeUnsupported bool

	Logger *zap.Logger
}

// DefaultConfig returns a configuration with the default interval and
// timeout and no endpoint.
func DefaultConfig() Config {
	return Config{
		Interval:     15 * time.Second,
		WriteTimeout: 10 * time.Second,
		Labels:       make(map[string]string),
	}
}

// Exporter converts numeric monitors into remote-write time series.
type Exporter struct {
	cfg   Config
	src   Source
	log   *zap.Logger
	write func(context.Context, *promwrite.WriteRequest) error
	now   func() time.Time

	mu     sync.Mutex
	pushes int
}

// New returns an exporter writing to cfg.RemoteWriteURL.
func New(src Source, cfg Config) (*Exporter, error) {
	if src == nil {
		return nil, errors.New("export: nil source")
	}
	if cfg.RemoteWriteURL == "" {
		return nil, errors.New("export: remote write URL cannot be empty")
	}
	client := promwrite.NewClient(cfg.RemoteWriteURL)
	write := func(ctx context.Context, req *promwrite.WriteRequest) error {
		_, err := client.Write(ctx, req)
		return err
	}
	return newExporter(src, cfg, write), nil
}

func newExporter(src Source, cfg Config, write func(context.Context, *promwrite.WriteRequest) error) *Exporter {
	if cfg.Interval <= 0 {
		cfg.Interval = 15 * time.Second
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 10 * time.Second
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Exporter{cfg: cfg, src: src, log: log, write: write, now: time.Now}
}

// SanitizeName turns a counter name into a valid Prometheus metric name:
// every byte outside [a-zA-Z0-9_:] becomes '_', and a leading digit gets a
// '_' prefix.
func SanitizeName(name string) string {
	var sb strings.Builder
	sb.Grow(len(name) + 1)
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_', c == ':':
			sb.WriteByte(c)
		case c >= '0' && c <= '9':
			if i == 0 {
				sb.WriteByte('_')
			}
			sb.WriteByte(c)
		default:
			sb.WriteByte('_')
		}
	}
	return sb.String()
}

// TimeSeries builds one series per numeric monitor, stamped with at.
// String monitors are skipped.
func (e *Exporter) TimeSeries(at time.Time) []promwrite.TimeSeries {
	keys := make([]string, 0, len(e.cfg.Labels))
	for k := range e.cfg.Labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var result []promwrite.TimeSeries
	for m := range e.src.All() {
		if !m.Supported() && !e.cfg.IncludeUnsupported {
			continue
		}
		v, ok := m.Int64()
		if !ok {
			continue
		}

		name := SanitizeName(m.Name())
		if e.cfg.Namespace != "" {
			name = SanitizeName(e.cfg.Namespace) + "_" + name
		}

		labels := make([]promwrite.Label, 0, 3+len(keys))
		labels = append(labels,
			promwrite.Label{Name: "__name__", Value: name},
			promwrite.Label{Name: "units", Value: strings.ToLower(m.Units().String())},
			promwrite.Label{Name: "variability", Value: strings.ToLower(m.Variability().String())},
		)
		for _, k := range keys {
			labels = append(labels, promwrite.Label{Name: k, Value: e.cfg.Labels[k]})
		}

		result = append(result, promwrite.TimeSeries{
			Labels: labels,
			Sample: promwrite.Sample{Time: at, Value: float64(v)},
		})
	}
	return result
}

// Push polls the source for new counters and writes the current values of
// all of them. A failed poll is logged; the counters already known are still
// written.
func (e *Exporter) Push(ctx context.Context) error {
	d, err := e.src.Poll()
	for _, m := range d.Inserted {
		e.log.Info("New counter", zap.String("name", m.Name()),
			zap.Stringer("units", m.Units()), zap.Stringer("variability", m.Variability()))
	}
	if err != nil {
		e.log.Warn("Failed to poll perfdata", zap.Error(err))
	}

	series := e.TimeSeries(e.now())
	if len(series) == 0 {
		return nil
	}

	wctx, cancel := context.WithTimeout(ctx, e.cfg.WriteTimeout)
	defer cancel()
	if err := e.write(wctx, &promwrite.WriteRequest{TimeSeries: series}); err != nil {
		return fmt.Errorf("writing time series failed: %w", err)
	}

	e.mu.Lock()
	e.pushes++
	e.mu.Unlock()
	e.log.Debug("Wrote time series", zap.Int("series", len(series)))
	return nil
}

// Pushes returns the number of successful writes.
func (e *Exporter) Pushes() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pushes
}

// Run pushes once immediately and then every Interval until ctx is done.
// Write failures are logged and do not stop the loop.
func (e *Exporter) Run(ctx context.Context) error {
	e.log.Info("Starting perfdata exporter",
		zap.String("url", e.cfg.RemoteWriteURL), zap.Duration("interval", e.cfg.Interval))

	if err := e.Push(ctx); err != nil {
		e.log.Error("Failed to write metrics", zap.Error(err))
	}

	ticker := time.NewTicker(e.cfg.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := e.Push(ctx); err != nil {
				e.log.Error("Failed to write metrics", zap.Error(err))
			}
		case <-ctx.Done():
			e.log.Info("Stopping perfdata exporter", zap.Int("pushes", e.Pushes()))
			return nil
		}
	}
}
