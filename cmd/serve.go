package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/anshul/litmus/internal/api"
	"github.com/anshul/litmus/internal/config"
	"github.com/anshul/litmus/internal/feedback"
	"github.com/anshul/litmus/internal/llm"
	"github.com/anshul/litmus/internal/logger"
	"github.com/anshul/litmus/internal/mastery"
	"github.com/anshul/litmus/internal/questiongen"
	"github.com/anshul/litmus/internal/session"
	"github.com/anshul/litmus/internal/store"
	"github.com/anshul/litmus/internal/summary"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the quiz HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer st.Close()
	events := st.EventRepo()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	llmCfg := resolveLLMConfig()
	if err := llmCfg.Validate(); err != nil {
		return fmt.Errorf("llm configuration: %w", err)
	}
	provider, err := llm.NewProvider(ctx, llmCfg, events)
	if err != nil {
		return fmt.Errorf("init llm provider: %w", err)
	}
	log.Infow("llm provider ready", "provider", llmCfg.Provider, "model", provider.ModelID())

	scheduler := questiongen.NewScheduler()
	generator := questiongen.NewGenerator(provider, scheduler, questiongen.NewFallbackBank(), log)
	grader := feedback.NewService(provider, log)

	sessions := session.NewStore()
	sessions.OnTeardown(scheduler.Forget)
	sessions.OnTeardown(generator.Forget)
	go sessions.Janitor(ctx, cfg.JanitorInterval, cfg.SessionIdleTimeout, events, log)

	orch := session.NewOrchestrator(sessions, generator, grader, events, log, cfg.TotalQuestions)
	masterySvc := mastery.NewService(mastery.NewLevelJudge(provider), log)
	summaries := summary.NewBuilder(provider, masterySvc, log)

	server := &api.Server{
		Quiz:       orch,
		Summaries:  summaries,
		Log:        log,
		CORSOrigin: cfg.CORSOrigin,
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infow("server listening", "addr", cfg.Addr, "questions", cfg.TotalQuestions)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	log.Infow("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// resolveLLMConfig prefers explicit LITMUS_* variables and falls back to
// probing the providers' standard key variables.
func resolveLLMConfig() llm.Config {
	cfg := llm.ConfigFromEnv()
	if cfg.Validate() == nil {
		return cfg
	}
	if discovered, ok := llm.DiscoverConfig(); ok {
		return discovered
	}
	return cfg
}
