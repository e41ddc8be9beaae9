package cli

import (
	"github.com/spf13/cobra"

	"github.com/sprite-ai/callguard/internal/report"
)

var signalsCmd = &cobra.Command{
	Use:   "signals",
	Short: "List the warning signals, their weights and keywords",
	RunE:  runSignals,
}

func init() {
	signalsCmd.Flags().StringP("format", "f", "text", "output format: text, json, markdown")
}

func runSignals(cmd *cobra.Command, args []string) error {
	cat, err := cfg.LoadCatalog()
	if err != nil {
		return err
	}
	opts, err := outputOptions(cmd)
	if err != nil {
		return err
	}
	return report.WriteCatalog(cmd.OutOrStdout(), cat, opts)
}
