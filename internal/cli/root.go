// Package cli wires the callguard commands.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sprite-ai/callguard/internal/config"
	"github.com/sprite-ai/callguard/internal/logging"
)

var (
	cfg    *config.Config
	logger *slog.Logger

	// exitFunc is replaced in tests.
	exitFunc = os.Exit
)

var rootCmd = &cobra.Command{
	Use:   "callguard",
	Short: "Deepfake call guard: assess risk during suspicious calls",
	Long: `callguard helps during a live call that may be a deepfake or a scam.
Tag the warning signs you notice, or type a one-line summary, and it rates
the call green, yellow or red, suggests what to do next and keeps a short
evidence log without recording the call.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().String("config", "callguard.yaml", "path to config file")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "log format: text, json")

	rootCmd.AddCommand(callCmd, assessCmd, decoyCmd, signalsCmd, serveCmd, versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func loadConfig(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	c, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if f := cmd.Flags().Lookup("log-level"); f != nil && f.Changed {
		c.Logging.Level = f.Value.String()
	}
	if f := cmd.Flags().Lookup("log-format"); f != nil && f.Changed {
		c.Logging.Format = f.Value.String()
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	cfg = c
	logger = logging.New(c.Logging.Level, c.Logging.Format, cmd.ErrOrStderr())
	return nil
}
