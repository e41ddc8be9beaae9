package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/sprite-ai/callguard/internal/report"
	"github.com/sprite-ai/callguard/internal/risk"
)

var assessCmd = &cobra.Command{
	Use:   "assess [summary...]",
	Short: "Rate a call from tagged signals and a summary (non-interactive)",
	Long: `Score a call summary and any tagged signals and print the risk,
the reasons and the suggested next actions. Use "-" to read the summary
from stdin.

Exit codes:
  0 — green
  1 — yellow
  2 — red`,
	Example: `  callguard assess "เขาเร่งด่วนมาก ห้ามโทรกลับ"
  callguard assess --signal otp --signal urgent
  echo "ขอ OTP ด่วน" | callguard assess - --format json`,
	RunE: runAssess,
}

func init() {
	assessCmd.Flags().StringSliceP("signal", "s", nil, "tag a signal by id (repeatable)")
	assessCmd.Flags().StringP("format", "f", "text", "output format: text, json, markdown")
	assessCmd.Flags().String("color", "auto", "colour JSON output: auto, always, never")
}

func runAssess(cmd *cobra.Command, args []string) error {
	cat, err := cfg.LoadCatalog()
	if err != nil {
		return err
	}

	text := strings.Join(args, " ")
	if text == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		text = string(data)
	}

	selected, _ := cmd.Flags().GetStringSlice("signal")
	for _, id := range selected {
		if !cat.Has(id) {
			return fmt.Errorf("unknown signal %q (see `callguard signals`)", id)
		}
	}

	opts, err := outputOptions(cmd)
	if err != nil {
		return err
	}

	a := risk.Assess(cat, selected, text)
	logger.Debug("assessed", "level", a.Level, "score", a.Score, "applied", a.Applied)
	if err := report.WriteAssessment(cmd.OutOrStdout(), cat, a, opts); err != nil {
		return err
	}

	if code := report.ExitCode(a.Level); code != 0 {
		exitFunc(code)
	}
	return nil
}

// outputOptions reads --format and, when present, --color.
func outputOptions(cmd *cobra.Command) (report.Options, error) {
	name, _ := cmd.Flags().GetString("format")
	format, err := report.ParseFormat(name)
	if err != nil {
		return report.Options{}, err
	}
	opts := report.Options{Format: format}

	if cmd.Flags().Lookup("color") == nil {
		return opts, nil
	}
	mode, _ := cmd.Flags().GetString("color")
	switch mode {
	case "always":
		opts.Color = true
	case "never":
	case "auto":
		opts.Color = stdoutIsTerminal(cmd)
	default:
		return report.Options{}, fmt.Errorf("unknown --color %q (want auto, always or never)", mode)
	}
	return opts, nil
}

func stdoutIsTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.OutOrStdout().(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
