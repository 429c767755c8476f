package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	router "github.com/Masteraddy/teamsbot-test/internal/adapters/http"
	"github.com/Masteraddy/teamsbot-test/internal/app"
	"github.com/Masteraddy/teamsbot-test/internal/app/orch"
	"github.com/Masteraddy/teamsbot-test/internal/config"
	"github.com/Masteraddy/teamsbot-test/internal/platform"
	"github.com/Masteraddy/teamsbot-test/internal/transcript"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	// Human-friendly output for terminal; in production you may want JSON only.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		// Unrecoverable at startup; exit non-zero so supervision restarts us.
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// The production deployment swaps in the SDK-backed platform client; the
	// loopback client simulates the platform for local runs.
	client := platform.NewLoopback()

	tasks := app.NewTaskPool(cfg.TaskWorkers)
	o := &orch.Orchestrator{
		Registry:    app.NewCallRegistry(),
		Media:       app.NewMediaSessionFactory(client),
		Client:      client,
		Tasks:       tasks,
		Transcripts: transcript.NewStore(cfg.TranscriptDir),
	}
	o.Start(ctx)

	shutdown := orch.NewShutdownCoordinator(client, tasks)

	r := router.SetupRouter(cfg, o)
	addr := fmt.Sprintf(":%d", cfg.BotInternalPort)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("bot server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			// No in-process retry loop: die loudly and let supervision
			// restart the service.
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	shutdown.Shutdown(shutdownCtx)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited gracefully")
}
