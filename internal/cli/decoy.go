package cli

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sprite-ai/callguard/internal/decoy"
	"github.com/sprite-ai/callguard/internal/report"
)

var decoyCmd = &cobra.Command{
	Use:   "decoy",
	Short: "Print a decoy case id, canary link and code",
	Long: `Generate the honeypot material handed to a suspected scammer: a case
id, a canary link and a six digit decoy code. The same seed always gives the
same pack; without --seed a random one is used.`,
	RunE: runDecoy,
}

func init() {
	decoyCmd.Flags().String("seed", "", "seed string (default random)")
	decoyCmd.Flags().StringP("format", "f", "text", "output format: text, json, markdown")
}

func runDecoy(cmd *cobra.Command, args []string) error {
	seed, _ := cmd.Flags().GetString("seed")
	if seed == "" {
		seed = uuid.NewString()
	}
	opts, err := outputOptions(cmd)
	if err != nil {
		return err
	}
	p := decoy.ForSession(seed, cfg.Case.Prefix, cfg.Case.CanaryHost)
	return report.WriteDecoy(cmd.OutOrStdout(), p, opts)
}
