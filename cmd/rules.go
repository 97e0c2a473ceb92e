package cmd

import (
	"github.com/spf13/cobra"

	"github.com/JA3G3R/lintzard/report"
	"github.com/JA3G3R/lintzard/rules"
)

func newRulesCommand(a *app) *cobra.Command {
	var format string
	rulesCmd := &cobra.Command{
		Use:   "rules",
		Short: "List rules with their effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			descs, err := rules.Default().Resolve(a.cfg.RuleSettings())
			if err != nil {
				return err
			}
			return report.RenderRules(cmd.OutOrStdout(), descs, format)
		},
	}
	rulesCmd.Flags().StringVar(&format, "format", report.FormatTable, "Output format: table or json")
	return rulesCmd
}
