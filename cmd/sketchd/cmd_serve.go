package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"voicesketch/internal/engine"
	"voicesketch/internal/interpret"
	"voicesketch/internal/logging"
	"voicesketch/internal/server"
	"voicesketch/internal/session"
	"voicesketch/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP interpretation service",
	Long: `Starts the HTTP service exposing the interpretation pipeline:

  POST /api/v1/parse    stateless parse, context supplied by the caller
  POST /api/v1/command  parse and apply against the server drawing session
  GET  /health          liveness check

Without an API key the remote model is skipped and every utterance goes
through the keyword fallback, which still always produces an instruction.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logging.Get(logging.CategoryServer)

	client := buildClient()
	if client == nil {
		log.Warn("no LLM API key configured, keyword fallback only")
	}
	gateway := interpret.NewGateway(client, interpret.NewCache(cfg.CacheTTL()), cfg.LLMTimeout())
	canvas := engine.Canvas{Width: cfg.Canvas.Width, Height: cfg.Canvas.Height}

	st, err := store.NewSQLiteStore(cfg.Storage.DatabasePath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	sess := session.New(gateway, st, canvas)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(gateway, sess, canvas)
	return srv.Run(ctx, cfg.Server.Port)
}

// buildClient returns nil when no key is configured; the gateway treats a
// nil client as remote-disabled and classifies locally.
func buildClient() interpret.LLMClient {
	if cfg.LLM.APIKey == "" {
		return nil
	}
	client, err := interpret.NewClient(interpret.ClientOptions{
		Provider: cfg.LLM.Provider,
		APIKey:   cfg.LLM.APIKey,
		Model:    cfg.LLM.Model,
		BaseURL:  cfg.LLM.BaseURL,
		Timeout:  cfg.LLMTimeout(),
	})
	if err != nil {
		logging.Get(logging.CategoryServer).Warnw("LLM client unavailable", "error", err)
		return nil
	}
	return client
}
