// Command server starts the resume/JD match scoring HTTP server.
package main

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

	ai "github.com/fairyhunter13/ats-matcher/internal/adapter/ai"
	"github.com/fairyhunter13/ats-matcher/internal/adapter/ai/real"
	httpserver "github.com/fairyhunter13/ats-matcher/internal/adapter/httpserver"
	"github.com/fairyhunter13/ats-matcher/internal/adapter/observability"
	tikaext "github.com/fairyhunter13/ats-matcher/internal/adapter/textextractor/tika"
	"github.com/fairyhunter13/ats-matcher/internal/app"
	"github.com/fairyhunter13/ats-matcher/internal/config"
	"github.com/fairyhunter13/ats-matcher/internal/domain"
	"github.com/fairyhunter13/ats-matcher/internal/match"
	"github.com/fairyhunter13/ats-matcher/internal/taxonomy"
	"github.com/fairyhunter13/ats-matcher/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := observability.SetupLogger(cfg)
	slog.SetDefault(logger)

	// Register all Prometheus metrics once per process so that /metrics
	// exposes HTTP, embedding, and scoring instrumentation.
	observability.InitMetrics()

	shutdownTracer, err := observability.SetupTracing(cfg)
	if err != nil {
		slog.Error("failed to setup tracing", slog.Any("error", err))
	}
	defer func() {
		if shutdownTracer != nil {
			_ = shutdownTracer(context.Background())
		}
	}()

	// Skill taxonomy: compiled-in defaults or a YAML override. An invalid
	// taxonomy is a startup failure, never a per-request one.
	var reg *taxonomy.Registry
	if cfg.TaxonomyPath != "" {
		reg, err = taxonomy.LoadFile(cfg.TaxonomyPath)
		if err != nil {
			slog.Error("taxonomy load failed", slog.String("path", cfg.TaxonomyPath), slog.Any("error", err))
			os.Exit(1)
		}
		slog.Info("taxonomy loaded from file", slog.String("path", cfg.TaxonomyPath), slog.Int("skills", len(reg.Canonicals())))
	} else {
		reg, err = taxonomy.Default()
		if err != nil {
			slog.Error("default taxonomy invalid", slog.Any("error", err))
			os.Exit(1)
		}
	}

	// Embedding collaborator; absent credentials put the service in
	// coverage-only degraded mode rather than failing startup.
	var embedder domain.EmbeddingClient
	if cfg.EmbeddingsEnabled() {
		embedder = real.New(cfg)
		slog.Info("embedding client configured", slog.String("model", cfg.EmbeddingsModel))
	} else {
		slog.Warn("embeddings not configured; running in coverage-only mode")
	}
	cache := ai.NewEmbedCache(cfg.EmbedCacheSize)
	engine := match.NewEngine(embedder, cache, cfg.EmbedBatchSize)

	// Token chunker; a load failure falls back to word chunking.
	var chunker *match.TokenChunker
	if cfg.ChunkByTokens {
		chunker, err = match.NewTokenChunker()
		if err != nil {
			slog.Warn("token chunker unavailable; falling back to word chunking", slog.Any("error", err))
		}
	}

	analyzeSvc := usecase.NewAnalyzeService(reg, usecase.ParamsFromConfig(cfg), engine, chunker)

	// External text extractor (Apache Tika)
	ext := tikaext.New(cfg.TikaURL)
	tikaCheck := app.BuildTikaCheck(cfg)

	srv := httpserver.NewServer(cfg, analyzeSvc, ext, tikaCheck)
	handler := app.BuildRouter(cfg, srv)

	srvHTTP := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadTimeout:       cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server starting", slog.Int("port", cfg.Port))
		errCh <- srvHTTP.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.Any("error", err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ServerShutdownTimeout)
	defer cancel()
	_ = srvHTTP.Shutdown(shutdownCtx)
}
