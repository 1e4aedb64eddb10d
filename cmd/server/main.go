package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"mindmate/pkg/config"
	"mindmate/pkg/crisis"
	"mindmate/pkg/generator"
	"mindmate/pkg/handlers"
	"mindmate/pkg/journal"
	"mindmate/pkg/metrics"
	"mindmate/pkg/pipeline"
	"mindmate/pkg/server"
)

func main() {
	cfg := config.Load()

	logger := logrus.New()
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}
	logger.SetFormatter(&logrus.JSONFormatter{})

	logger.WithField("port", cfg.Port).Info("Starting MindMate backend")

	// A missing AI credential is surfaced per request, never at startup:
	// crisis responses and journaling must stay available regardless.
	if cfg.AIAPIKey == "" {
		logger.Warn("AI_API_KEY is not set; chat generation will fail until it is configured")
	}

	m := metrics.NewMetrics()

	rdb, err := journal.Connect(cfg.RedisURL, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to Redis")
	}
	defer rdb.Close()

	classifier := crisis.NewClassifier()
	gen := generator.NewClient(cfg, logger)
	intake := pipeline.New(classifier, gen, logger, m)
	store := journal.NewStore(rdb, logger, m)

	handler := handlers.NewHandler(intake, store, store, logger)
	httpServer := server.NewHTTPServer(cfg, handler, logger)

	go func() {
		logger.WithField("addr", httpServer.Addr).Info("HTTP server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("HTTP server failed")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	<-sigCh
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Error during HTTP server shutdown")
	}

	logger.Info("MindMate backend shutdown complete")
}
