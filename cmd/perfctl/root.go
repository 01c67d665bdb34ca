package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/joshuapare/perfkit/pkg/perf"
)

var (
	// Global flags
	verbose     bool
	quiet       bool
	jsonOut     bool
	charsetName string
	syncWait    time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "perfctl",
	Short: "Read live HotSpot performance counters from hsperfdata files",
	Long: `perfctl attaches read-only to the PerfData file a running JVM exports
(usually /tmp/hsperfdata_<user>/<pid>) and lists, reads, watches or exports
its performance counters.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().
		StringVar(&charsetName, "charset", "", "Charset of string counters (e.g. ISO-8859-1, windows-1252)")
	rootCmd.PersistentFlags().
		DurationVar(&syncWait, "sync-wait", 0, "How long to wait for the target to become accessible (default 5s)")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v\n", err)
		os.Exit(1)
	}
}

// newLogger returns a development logger in verbose mode and a no-op
// logger otherwise.
func newLogger() *zap.Logger {
	if !verbose || quiet {
		return zap.NewNop()
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

// openBuffer attaches to the file using the global flags.
func openBuffer(ctx context.Context, path string, log *zap.Logger) (*perf.Buffer, error) {
	opts := perf.DefaultOptions()
	if syncWait > 0 {
		opts.SyncWait = syncWait
	}
	enc, err := perf.CharsetByName(charsetName)
	if err != nil {
		return nil, err
	}
	opts.Charset = enc
	opts.Logger = log

	printVerbose("Opening perfdata file: %s\n", path)
	b, err := perf.Open(ctx, path, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open perfdata file: %w", err)
	}
	return b, nil
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
