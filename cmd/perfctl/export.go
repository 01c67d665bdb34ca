package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/joshuapare/perfkit/pkg/perf/export"
)

var (
	exportURL         string
	exportInterval    time.Duration
	exportNamespace   string
	exportLabels      []string
	exportUnsupported bool
)

func init() {
	cmd := newExportCmd()
	cmd.Flags().StringVar(&exportURL, "url", "", "Prometheus remote-write endpoint (required)")
	cmd.Flags().DurationVarP(&exportInterval, "interval", "i", 15*time.Second, "Push interval")
	cmd.Flags().StringVar(&exportNamespace, "namespace", "", "Prefix for metric names")
	cmd.Flags().StringArrayVarP(&exportLabels, "label", "l", nil, "Static label key=value (repeatable)")
	cmd.Flags().BoolVar(&exportUnsupported, "include-unsupported", false, "Also export counters flagged as unsupported")
	_ = cmd.MarkFlagRequired("url")
	rootCmd.AddCommand(cmd)
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Push counters to a Prometheus remote-write endpoint",
		Long: `The export command polls the perfdata file and pushes every numeric counter
to a Prometheus remote-write endpoint until interrupted.

Example:
  perfctl export /tmp/hsperfdata_app/4242 --url http://localhost:9090/api/v1/write
  perfctl export /tmp/hsperfdata_app/4242 --url http://vm:8428/api/v1/write -l job=orders -l pid=4242`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), args)
		},
	}
	return cmd
}

func parseLabels(pairs []string) (map[string]string, error) {
	labels := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid label %q, want key=value", p)
		}
		labels[export.SanitizeName(k)] = v
	}
	return labels, nil
}

func exportLogger() *zap.Logger {
	if quiet {
		return zap.NewNop()
	}
	if verbose {
		return newLogger()
	}
	log, err := zap.NewProduction()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

func runExport(ctx context.Context, args []string) error {
	labels, err := parseLabels(exportLabels)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(orBackground(ctx), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := exportLogger()
	defer log.Sync() //nolint:errcheck

	b, err := openBuffer(ctx, args[0], log)
	if err != nil {
		return err
	}
	defer b.Close()

	cfg := export.DefaultConfig()
	cfg.RemoteWriteURL = exportURL
	cfg.Interval = exportInterval
	cfg.Namespace = exportNamespace
	cfg.Labels = labels
	cfg.IncludeUnsupported = exportUnsupported
	cfg.Logger = log.With(zap.String("file", args[0]))

	e, err := export.New(b, cfg)
	if err != nil {
		return err
	}
	return e.Run(ctx)
}
