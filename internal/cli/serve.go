package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sprite-ai/callguard/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP server exposing the call guard.

Endpoints:
  GET  /health       — Health check
  GET  /api/signals  — Signal catalog
  POST /api/assess   — Assess tagged signals and a summary
  POST /api/decoy    — Generate a decoy pack
  GET  /metrics      — Prometheus metrics
  GET  /api/ws       — WebSocket for live call sessions (?demo=1 for the demo call)`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringP("addr", "a", "", "address to listen on (default from config, 127.0.0.1:6142)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}

	cat, err := cfg.LoadCatalog()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := api.New(cfg, cat, logger)
	return srv.ListenAndServe(ctx)
}
