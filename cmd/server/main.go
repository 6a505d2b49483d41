package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"decision-analysis/internal/artifact"
	"decision-analysis/internal/capture"
	"decision-analysis/internal/config"
	"decision-analysis/internal/handler"
	"decision-analysis/internal/llmclient"
	"decision-analysis/internal/memory"
	"decision-analysis/internal/obs"
	"decision-analysis/internal/orchestrator"
	"decision-analysis/internal/router"
)

func main() {
	cfg := config.Load()
	obs.Init(string(cfg.Environment))

	artifactStore, err := artifact.New(cfg.ArtifactDir, cfg.PublicBaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize artifact store")
	}

	browser := capture.NewBrowser()
	defer browser.Close()

	captureCache := newCaptureCache(cfg)
	captureService := capture.NewService(browser, captureCache, artifactStore)

	memoryStore, closeMemory := newMemoryStore(cfg)
	if closeMemory != nil {
		defer closeMemory()
	}

	llmClient := llmclient.New(cfg.OpenAIAPIKey, cfg.OpenAIModel)

	pipeline := orchestrator.New(captureService, artifactStore, memoryStore, llmClient, cfg.RequestBudget)

	handlers := router.Handlers{
		Decision: handler.NewDecisionHandler(pipeline),
		Artifact: handler.NewArtifactHandler(artifactStore),
		Health:   handler.NewHealthHandler(),
	}
	r := router.New(handlers)

	srv := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.RequestBudget + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.AppPort).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}

	log.Info().Msg("server stopped gracefully")
}

func newCaptureCache(cfg *config.Config) capture.ResultCache {
	if cfg.CaptureCacheBackend == "redis" && cfg.RedisAddr != "" {
		return capture.NewRedisResultCache(cfg.RedisAddr, cfg.CaptureCacheTTL)
	}
	return capture.NewMemoryResultCache(cfg.CaptureCacheTTL)
}

// newMemoryStore wires the in-process default, or a Mongo-backed store when
// a Mongo URI is configured; the returned closer is nil for the in-process
// store.
func newMemoryStore(cfg *config.Config) (memory.Store, func()) {
	if cfg.MongoURI == "" {
		return memory.NewInProcessStore(cfg.MemoryRingSize), nil
	}

	client, err := memory.NewMongoClient(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Warn().Err(err).Msg("memory layer: failed to connect to mongo, falling back to in-process store")
		return memory.NewInProcessStore(cfg.MemoryRingSize), nil
	}

	store := memory.NewMongoStore(client, cfg.MemoryRingSize)
	closer := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Close(ctx); err != nil {
			log.Warn().Err(err).Msg("error closing mongo client")
		}
	}
	return store, closer
}
