package main

import (
	"context"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/joshuapare/perfkit/pkg/perf"
)

var (
	listPattern   string
	listPrefix    string
	listSupported bool
)

func init() {
	cmd := newListCmd()
	cmd.Flags().StringVarP(&listPattern, "pattern", "p", "", "Only counters whose names match this regular expression")
	cmd.Flags().StringVar(&listPrefix, "prefix", "", "Only counters whose names start with this prefix")
	cmd.Flags().BoolVar(&listSupported, "supported-only", false, "Skip counters flagged as unsupported")
	rootCmd.AddCommand(cmd)
}

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <file>",
		Short: "List performance counters and their current values",
		Long: `The list command prints every counter in the perfdata file with its units,
variability and current value.

Example:
  perfctl list /tmp/hsperfdata_app/4242
  perfctl list /tmp/hsperfdata_app/4242 --pattern 'sun\.gc\..*'
  perfctl list /tmp/hsperfdata_app/4242 --prefix java.threads --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.Context(), args)
		},
	}
	return cmd
}

// selectMonitors applies the pattern and prefix filters.
func selectMonitors(b *perf.Buffer, pattern, prefix string) ([]*perf.Monitor, error) {
	var ms []*perf.Monitor
	switch {
	case pattern != "":
		found, err := b.FindByPattern(pattern)
		if err != nil {
			return nil, err
		}
		ms = found
	case prefix != "":
		ms = b.FindByPrefix(prefix)
	default:
		ms = b.Monitors()
	}
	if pattern != "" && prefix != "" {
		filtered := ms[:0]
		for _, m := range ms {
			if strings.HasPrefix(m.Name(), prefix) {
				filtered = append(filtered, m)
			}
		}
		ms = filtered
	}
	return ms, nil
}

func runList(ctx context.Context, args []string) error {
	log := newLogger()
	defer log.Sync() //nolint:errcheck

	b, err := openBuffer(orBackground(ctx), args[0], log)
	if err != nil {
		return err
	}
	defer b.Close()

	ms, err := selectMonitors(b, listPattern, listPrefix)
	if err != nil {
		return err
	}
	if listSupported {
		kept := ms[:0]
		for _, m := range ms {
			if m.Supported() {
				kept = append(kept, m)
			}
		}
		ms = kept
	}

	if jsonOut {
		out := make([]monitorJSON, 0, len(ms))
		for _, m := range ms {
			out = append(out, toJSON(m))
		}
		return printJSON(out)
	}

	if quiet {
		return nil
	}
	table := tablewriter.NewWriter(os.Stdout)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"NAME", "UNITS", "VARIABILITY", "VALUE"})
	for _, m := range ms {
		table.Append([]string{m.Name(), m.Units().String(), m.Variability().String(), formatValue(m, m.Read())})
	}
	table.Render()
	printVerbose("\n%d counters\n", len(ms))
	return nil
}
