package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	httpadapter "github.com/nkovalenko/ted-talk-rag/internal/adapters/http"
	"github.com/nkovalenko/ted-talk-rag/internal/bootstrap"
	"github.com/nkovalenko/ted-talk-rag/internal/config"
	"github.com/nkovalenko/ted-talk-rag/internal/observability/logging"
	"github.com/nkovalenko/ted-talk-rag/internal/observability/metrics"
)

const serviceName = "ted-rag-api"

func main() {
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

	queryMetrics := metrics.NewQueryMetrics(serviceName)
	router := httpadapter.NewRouter(app.AnswerUC, httpadapter.StatsConfig{
		ChunkSize:    cfg.ChunkSize,
		OverlapRatio: cfg.OverlapRatio,
		TopK:         cfg.TopK,
	}, queryMetrics, serviceName)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("api listening", "port", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("api server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("api shutdown failed", "error", err)
	}
}
