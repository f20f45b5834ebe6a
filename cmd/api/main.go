package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"inventario-hardware/internal"
	"inventario-hardware/internal/config"
	"inventario-hardware/internal/logging"
	"inventario-hardware/internal/store"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadAndValidate()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, "inventario-api")
	if err != nil {
		log.Fatalf("Logger error: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gw, err := store.Open(ctx, store.Options{
		DSN:           cfg.DatabaseDSN,
		AdminDatabase: cfg.AdminDatabase,
		MaxConns:      cfg.MaxConns,
	}, logger)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer gw.Close()

	// the server never starts without a table to write into
	if err := gw.Provision(ctx); err != nil {
		logger.Fatal("provision database", zap.Error(err))
	}

	srv, err := internal.NewServer(gw, cfg, logger)
	if err != nil {
		logger.Fatal("build server", zap.Error(err))
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("listening",
			zap.String("addr", httpServer.Addr),
			zap.Bool("metrics", cfg.EnableMetrics),
			zap.String("export_locale", cfg.ExportLocale),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", zap.Error(err))
	}
}
