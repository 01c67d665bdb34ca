package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var getRaw bool

func init() {
	cmd := newGetCmd()
	cmd.Flags().BoolVar(&getRaw, "raw", false, "Print only the value")
	rootCmd.AddCommand(cmd)
}

func newGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <file> <name>...",
		Short: "Read one or more counters",
		Long: `The get command prints the current value of the named counters.

Example:
  perfctl get /tmp/hsperfdata_app/4242 sun.gc.collector.0.invocations
  perfctl get /tmp/hsperfdata_app/4242 sun.rt.javaCommand --raw
  perfctl get /tmp/hsperfdata_app/4242 sun.gc.collector.0.time sun.os.hrt.frequency --json`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd.Context(), args)
		},
	}
	return cmd
}

func runGet(ctx context.Context, args []string) error {
	log := newLogger()
	defer log.Sync() //nolint:errcheck

	b, err := openBuffer(orBackground(ctx), args[0], log)
	if err != nil {
		return err
	}
	defer b.Close()

	var out []monitorJSON
	for _, name := range args[1:] {
		m, ok := b.Get(name)
		if !ok {
			return fmt.Errorf("counter not found: %s", name)
		}
		if jsonOut {
			out = append(out, toJSON(m))
			continue
		}
		s := m.Read()
		switch {
		case getRaw:
			printInfo("%s\n", s.String())
		default:
			printInfo("%s = %s\n", m.Name(), formatValue(m, s))
		}
	}
	if jsonOut {
		return printJSON(out)
	}
	return nil
}
