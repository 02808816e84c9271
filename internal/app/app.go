package app

import (
	"context"
	"fmt"
	stdhttp "net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/linguachat/linguachat-server/internal/archive"
	"github.com/linguachat/linguachat-server/internal/auth"
	"github.com/linguachat/linguachat-server/internal/config"
	"github.com/linguachat/linguachat-server/internal/core"
	"github.com/linguachat/linguachat-server/internal/translate"
	transporthttp "github.com/linguachat/linguachat-server/internal/transport/http"
)

// App wires together the relay core, translation router, and transport.
type App struct {
	server          *stdhttp.Server
	shutdownTimeout time.Duration
	hub             *core.Hub
	store           *archive.Store
	log             *zerolog.Logger
}

// New constructs the application with provided configuration.
func New(cfg *config.Config, logger *zerolog.Logger) (*App, error) {
	var store *archive.Store
	var recorder core.Recorder
	if cfg.ArchivePath != "" {
		st, err := archive.Open(cfg.ArchivePath)
		if err != nil {
			return nil, fmt.Errorf("open archive: %w", err)
		}
		store = st
		recorder = st
		logger.Info().Str("archive_path", cfg.ArchivePath).Msg("message archive enabled")
	}

	hub := core.NewHub(recorder, logger)

	translator := translate.NewRouter(
		translate.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL),
		translate.NewGemini(cfg.GeminiAPIKey, cfg.GeminiBaseURL),
		translate.NewClaude(cfg.ClaudeAPIKey, cfg.ClaudeBaseURL),
		cfg.TranslateTimeout,
		logger,
	)

	verifier := auth.NewVerifier(cfg.AuthSecret, cfg.AuthIssuer, cfg.AuthAudience)
	if verifier != nil {
		logger.Info().Msg("token verification enabled")
	}

	server := transporthttp.NewServer(hub, translator, verifier, *cfg, logger)

	return &App{
		server:          server,
		shutdownTimeout: cfg.ShutdownTimeout,
		hub:             hub,
		store:           store,
		log:             logger,
	}, nil
}

// Run starts the HTTP server and blocks until context cancellation or fatal error.
func (a *App) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go a.hub.Run(ctx)

	go func() {
		if err := a.server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		a.cleanup()
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()

		a.log.Info().Msg("shutting down http server")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			a.cleanup()
			return err
		}

		a.cleanup()
		return <-serverErr
	}
}

// cleanup closes the archive and other resources.
func (a *App) cleanup() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Warn().Err(err).Msg("failed to close archive")
		} else {
			a.log.Info().Msg("archive closed")
		}
	}
}
