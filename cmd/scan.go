package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/JA3G3R/lintzard/report"
	"github.com/JA3G3R/lintzard/rules"
	"github.com/JA3G3R/lintzard/scanners"
	"github.com/JA3G3R/lintzard/types"
)

type scanOptions struct {
	format      string
	failOn      string
	color       bool
	workers     int
	minSeverity string
}

func newScanCommand(a *app) *cobra.Command {
	o := &scanOptions{}
	scanCmd := &cobra.Command{
		Use:   "scan [paths...]",
		Short: "Scan JavaScript files",
		Long:  "Scan the given files and directories, or --folder when none are given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, a, o, args)
		},
	}
	scanCmd.Flags().StringVar(&o.format, "format", report.FormatTable, "Output format: table, json or sarif")
	scanCmd.Flags().StringVar(&o.failOn, "fail-on", "", fmt.Sprintf("Exit with status %d when a finding at or above this severity exists", ExitFindings))
	scanCmd.Flags().BoolVar(&o.color, "color", false, "Colour severities in table output")
	scanCmd.Flags().IntVar(&o.workers, "workers", 0, "Parallel workers (overrides config)")
	scanCmd.Flags().StringVar(&o.minSeverity, "min-severity", "", "Drop findings below this severity (overrides config)")
	return scanCmd
}

func runScan(cmd *cobra.Command, a *app, o *scanOptions, args []string) error {
	var failOn types.Severity
	if o.failOn != "" {
		sev, err := types.ParseSeverity(o.failOn)
		if err != nil {
			return fmt.Errorf("--fail-on: %w", err)
		}
		failOn = sev
	}
	minSeverity := a.cfg.Severity()
	if o.minSeverity != "" {
		sev, err := types.ParseSeverity(o.minSeverity)
		if err != nil {
			return fmt.Errorf("--min-severity: %w", err)
		}
		minSeverity = sev
	}
	workers := a.cfg.Workers
	if o.workers > 0 {
		workers = o.workers
	}

	configured, err := rules.Default().Configure(a.cfg.RuleSettings())
	if err != nil {
		return err
	}
	engine := rules.NewEngine(a.log, configured...)
	scanner := scanners.New(engine, scanners.Options{
		Workers:      workers,
		ParseTimeout: a.cfg.ParseTimeout,
		MinSeverity:  minSeverity,
	}, a.log)

	paths := args
	if len(paths) == 0 {
		paths = []string{a.folder}
	}
	a.log.Info("scanning", zap.Strings("paths", paths), zap.Int("rules", len(configured)), zap.Int("workers", workers))

	rep, err := scanner.ScanPaths(cmd.Context(), paths...)
	if err != nil {
		return err
	}
	if err := report.Render(cmd.OutOrStdout(), rep, o.format, report.Options{Color: o.color, Version: version}); err != nil {
		return err
	}

	if failOn != "" && rep.Worst().AtLeast(failOn) {
		return &exitError{code: ExitFindings}
	}
	return nil
}
