// Package main is the entry point for the meshconv HTTP service.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/meshconv/internal/config"
	"github.com/Faultbox/meshconv/internal/logger"
	"github.com/Faultbox/meshconv/internal/server"
	"github.com/Faultbox/meshconv/internal/storage"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== meshconv service ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	store, err := storage.Open(cfg.Storage.Type, cfg.Storage.Dir)
	if err != nil {
		logger.Error("failed to open storage", zap.Error(err))
		os.Exit(1)
	}

	srv := server.New(cfg, store, logger.Log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	case sig := <-sigCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("shutdown error", zap.Error(err))
			os.Exit(1)
		}
	}

	logger.Info("service stopped normally")
}
