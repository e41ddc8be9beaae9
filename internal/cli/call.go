package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sprite-ai/callguard/internal/clipboard"
	"github.com/sprite-ai/callguard/internal/logging"
	"github.com/sprite-ai/callguard/internal/schedule"
	"github.com/sprite-ai/callguard/internal/session"
	"github.com/sprite-ai/callguard/internal/tui"
)

var callCmd = &cobra.Command{
	Use:   "call",
	Short: "Open the interactive call screen with the guard assistant",
	Long: `Open a simulated call screen. Start or receive a demo call, open the
assistant bubble, tag what the caller is doing and follow the suggested next
actions. Scripts and the evidence pack are copied to the clipboard.

Examples:
  callguard call                       # idle, start a call with s
  callguard call --demo                # jump into a suspicious call
  callguard call --log-file guard.log  # keep debug logs out of the screen`,
	RunE: runCall,
}

func init() {
	callCmd.Flags().Bool("demo", false, "start inside the demo call with every signal tagged")
	callCmd.Flags().String("log-file", "", "write logs to this file (default: discard)")
	callCmd.Flags().Bool("print-evidence", false, "print the evidence pack after the session ends")
}

func runCall(cmd *cobra.Command, args []string) error {
	cat, err := cfg.LoadCatalog()
	if err != nil {
		return err
	}

	// the alternate screen owns stdout and stderr, so logs go to a file
	var logOut io.Writer = io.Discard
	if path, _ := cmd.Flags().GetString("log-file"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	log := logging.New(cfg.Logging.Level, cfg.Logging.Format, logOut)

	loop := schedule.NewLoop(64)
	opts := session.Options{
		Catalog:    cat,
		Scheduler:  loop,
		Clipboard:  clipboard.NewSystem(os.Stderr),
		Directory:  cfg.Directory,
		CasePrefix: cfg.Case.Prefix,
		CanaryHost: cfg.Case.CanaryHost,
		Logger:     log,
	}

	newSession := session.New
	if demo, _ := cmd.Flags().GetBool("demo"); demo {
		newSession = session.NewDemo
	}
	sess, err := newSession(opts)
	if err != nil {
		return err
	}
	log.Info("call guard started", "session", sess.ID(), "case", sess.Decoy().CaseID)

	if err := tui.Run(sess, loop); err != nil {
		return err
	}

	if p, _ := cmd.Flags().GetBool("print-evidence"); p {
		fmt.Fprintln(cmd.OutOrStdout(), sess.EvidencePack().String())
	}
	return nil
}
