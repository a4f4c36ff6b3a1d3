// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/SpoonyCreature/berea/internal/api"
	"github.com/SpoonyCreature/berea/internal/audio"
	"github.com/SpoonyCreature/berea/internal/audiostore"
	"github.com/SpoonyCreature/berea/internal/completion"
	"github.com/SpoonyCreature/berea/internal/crossref"
	"github.com/SpoonyCreature/berea/internal/narration"
	"github.com/SpoonyCreature/berea/internal/speech"
	"github.com/SpoonyCreature/berea/internal/sse"
	"github.com/SpoonyCreature/berea/internal/store"
	"github.com/SpoonyCreature/berea/internal/studyservice"
	"github.com/SpoonyCreature/berea/internal/verses"
)

// Run starts the application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("store_path", cfg.Store.Path),
		slog.String("audio_cache_path", cfg.Audio.CachePath),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// Ensure the audio cache directory exists.
	if err := os.MkdirAll(cfg.Audio.CachePath, 0o755); err != nil {
		return fmt.Errorf("create audio cache dir: %w", err)
	}

	// Initialize document store.
	db, err := store.Open(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	defer db.Close()

	// Initialize audio cache with signed URL support.
	signer := audiostore.NewSigner(cfg.Audio.SigningSecret)
	cache, err := audiostore.NewFS(cfg.Audio.CachePath, signer, "/api/audio")
	if err != nil {
		return fmt.Errorf("init audio cache: %w", err)
	}

	// External service clients.
	completionSvc := completion.NewClient(cfg.Completion.BaseURL, cfg.Completion.APIKey)
	tts := speech.NewClient(cfg.Speech.BaseURL, cfg.Speech.APIKey)
	voice := speech.VoiceConfig{
		LanguageCode: cfg.Speech.LanguageCode,
		Name:         cfg.Speech.Voice,
		SpeakingRate: cfg.Speech.SpeakingRate,
	}

	// SSE broker.
	broker := sse.NewBroker()
	defer broker.Close()

	// Pipeline services.
	audioSvc := audio.NewService(cache, tts, voice, cfg.Audio.URLTTL, logger)
	svc := studyservice.NewService(db,
		verses.NewSQLResolver(db),
		crossref.NewGenerator(completionSvc, cfg.Completion.Model, logger),
		narration.NewComposer(completionSvc, cfg.Completion.Model),
		audioSvc, logger,
		func(kind, id string) { broker.PublishStudyEvent(kind, id) })

	apiRouter := api.NewRouter(svc, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker, cache, signer)

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Mount API routes under /api.
	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Watch the audio cache and announce finished artifacts over SSE.
	g.Go(func() error {
		return audiostore.Watch(gCtx, cfg.Audio.CachePath, logger, func(key string) {
			broker.PublishStudyEvent("audio.ready", key)
		})
	})

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}
