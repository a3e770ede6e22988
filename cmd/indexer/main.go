package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/nkovalenko/ted-talk-rag/internal/bootstrap"
	"github.com/nkovalenko/ted-talk-rag/internal/config"
	"github.com/nkovalenko/ted-talk-rag/internal/observability/logging"
	"github.com/nkovalenko/ted-talk-rag/internal/observability/metrics"
)

const serviceName = "ted-rag-indexer"

func main() {
	reset := flag.Bool("reset", false, "delete all vectors in the namespace before indexing")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.NewJSONLogger(serviceName, cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(cfg, logger)
	if err != nil {
		logger.Error("bootstrap failed", "error", err)
		os.Exit(1)
	}

	indexerMetrics := metrics.NewIndexerMetrics(serviceName)
	metricsServer := &http.Server{
		Addr:    ":" + cfg.IndexerMetricsPort,
		Handler: indexerMetrics.Handler(),
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Warn("metrics listener failed", "error", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	if *reset {
		logger.Info("resetting vector index", "namespace", cfg.PineconeNamespace)
		if err := app.VectorIndex.DeleteAll(ctx, cfg.PineconeNamespace); err != nil {
			logger.Error("reset failed", "error", err)
			os.Exit(1)
		}
	}

	start := time.Now()
	summary, err := app.IndexUC.BuildIndex(ctx)
	elapsed := time.Since(start)
	indexerMetrics.ObserveRun(serviceName, summary, err, elapsed)
	if err != nil {
		logger.Error("indexing run failed", "error", err, "duration", elapsed.String())
		os.Exit(1)
	}

	logger.Info("indexing run finished",
		"talks_indexed", summary.TalksIndexed,
		"talks_skipped", summary.TalksSkipped,
		"chunks_embedded", summary.ChunksEmbedded,
		"chunks_skipped", summary.ChunksSkipped,
		"embed_batches", summary.EmbedBatches,
		"duration", elapsed.String(),
	)
}
