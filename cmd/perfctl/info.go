package main

import (
	"context"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <file>",
		Short: "Validate a perfdata header and report basic metadata",
		Long: `The info command attaches to a perfdata file and displays its header:
format version, byte order, capacity and usage, and the number of counters.

Example:
  perfctl info /tmp/hsperfdata_app/4242
  perfctl info /tmp/hsperfdata_app/4242 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd.Context(), args)
		},
	}
	return cmd
}

type infoJSON struct {
	File     string `json:"file"`
	Monitors int    `json:"monitors"`
	Header   any    `json:"header"`
}

func runInfo(ctx context.Context, args []string) error {
	path := args[0]
	log := newLogger()
	defer log.Sync() //nolint:errcheck

	b, err := openBuffer(orBackground(ctx), path, log)
	if err != nil {
		return err
	}
	defer b.Close()

	p := b.Prologue()
	if jsonOut {
		return printJSON(infoJSON{File: path, Monitors: b.Len(), Header: p})
	}

	printInfo("\nPerfData Information:\n")
	printInfo("  File: %s\n", path)
	printInfo("  Version: %d.%d\n", p.MajorVersion, p.MinorVersion)
	printInfo("  Byte order: %s\n", p.ByteOrder)
	printInfo("  Capacity: %s\n", humanize.IBytes(uint64(p.Capacity)))
	printInfo("  Used: %s (%.1f%%)\n", humanize.IBytes(uint64(p.Used)),
		100*float64(p.Used)/float64(max(p.Capacity, 1)))
	if p.Overflow > 0 {
		printInfo("  Overflow: %s\n", humanize.IBytes(uint64(p.Overflow)))
	}
	printInfo("  Entries: %d (first at 0x%x)\n", p.NumEntries, p.EntryOffset)
	printInfo("  Monitors: %d\n", b.Len())
	printInfo("  Accessible: %t\n", p.Accessible)
	return nil
}

func orBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
