package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/marisol-health/frontdesk/internal/analysis"
	"github.com/marisol-health/frontdesk/internal/common"
	"github.com/marisol-health/frontdesk/internal/config"
	"github.com/marisol-health/frontdesk/internal/llm"
	"github.com/marisol-health/frontdesk/internal/ratelimit"
	"github.com/marisol-health/frontdesk/internal/server"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API: POST /analyze, POST /analyze/stream (SSE),
GET /health, GET /metrics. The server shuts down gracefully on SIGINT or
SIGTERM.`,
		RunE: runServe,
	}

	cmd.Flags().String("addr", "", "listen address (overrides server.addr)")
	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	client, err := llm.NewClient(cfg.LLM())
	if err != nil {
		return common.NewUserError("failed to create LLM client", err)
	}

	logger := slog.Default()
	analyzer := analysis.New(client, cfg.Provider.Name, logger)

	// The limiter is created here and torn down with the process; nothing
	// else owns rate-limit state.
	var limiter *ratelimit.Limiter
	if cfg.RateLimit.Enabled {
		limiter = ratelimit.New(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window)
	}

	srv := server.New(cfg, analyzer, limiter, logger)
	return srv.ListenAndServe(cmd.Context())
}
