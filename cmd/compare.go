package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/JA3G3R/lintzard/report"
	"github.com/JA3G3R/lintzard/types"
)

func newCompareCommand(_ *app) *cobra.Command {
	var format string
	compareCmd := &cobra.Command{
		Use:   "compare <before.json> <after.json>",
		Short: "Compare finding counts of two JSON reports",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			before, err := loadReport(args[0])
			if err != nil {
				return err
			}
			after, err := loadReport(args[1])
			if err != nil {
				return err
			}
			return report.RenderComparison(cmd.OutOrStdout(), report.Compare(before, after), format)
		},
	}
	compareCmd.Flags().StringVar(&format, "format", report.FormatTable, "Output format: table or json")
	return compareCmd
}

func loadReport(path string) (*types.Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	rep, err := report.Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rep, nil
}
