package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/joshuapare/perfkit/pkg/perf"
	"github.com/joshuapare/perfkit/pkg/types"
)

var (
	watchInterval time.Duration
	watchPattern  string
	watchCount    int
)

func init() {
	cmd := newWatchCmd()
	cmd.Flags().DurationVarP(&watchInterval, "interval", "i", time.Second, "Polling interval")
	cmd.Flags().StringVarP(&watchPattern, "pattern", "p", "", "Only report counters matching this regular expression")
	cmd.Flags().IntVarP(&watchCount, "count", "n", 0, "Stop after this many polls (0 = until interrupted)")
	rootCmd.AddCommand(cmd)
}

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Poll counters and print changes",
		Long: `The watch command polls the perfdata file at a fixed interval. It reports
counters the JVM adds after startup and every value that changed since the
previous poll.

Example:
  perfctl watch /tmp/hsperfdata_app/4242
  perfctl watch /tmp/hsperfdata_app/4242 --interval 250ms --pattern 'sun\.gc\.'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context(), args)
		},
	}
	return cmd
}

// watcher tracks the last seen value of each counter.
type watcher struct {
	buf     *perf.Buffer
	pattern string
	last    map[string]types.Snapshot
}

func (w *watcher) selected() ([]*perf.Monitor, error) {
	if w.pattern == "" {
		return w.buf.Monitors(), nil
	}
	return w.buf.FindByPattern(w.pattern)
}

// step polls once and prints what changed.
func (w *watcher) step(at time.Time) error {
	d, err := w.buf.Poll()
	if err != nil {
		printError("poll: %v\n", err)
	}
	for _, m := range d.Inserted {
		printVerbose("%s + %s\n", at.Format(time.TimeOnly), m.Name())
	}

	ms, err := w.selected()
	if err != nil {
		return err
	}
	for _, m := range ms {
		s := m.Read()
		prev, seen := w.last[m.Name()]
		w.last[m.Name()] = s
		if seen && prev == s {
			continue
		}
		if jsonOut {
			if err := printJSON(toJSON(m)); err != nil {
				return err
			}
			continue
		}
		printInfo("%s %s = %s\n", at.Format(time.TimeOnly), m.Name(), formatValue(m, s))
	}
	return nil
}

func runWatch(ctx context.Context, args []string) error {
	ctx = orBackground(ctx)
	log := newLogger()
	defer log.Sync() //nolint:errcheck

	b, err := openBuffer(ctx, args[0], log)
	if err != nil {
		return err
	}
	defer b.Close()

	w := &watcher{buf: b, pattern: watchPattern, last: make(map[string]types.Snapshot)}
	if err := w.step(time.Now()); err != nil {
		return err
	}

	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()
	for polls := 1; watchCount == 0 || polls < watchCount; polls++ {
		select {
		case <-ctx.Done():
			return nil
		case t := <-ticker.C:
			if err := w.step(t); err != nil {
				return err
			}
		}
	}
	return nil
}
