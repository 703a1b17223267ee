package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Wojteg799/SQL-Exercises-App/internal/api"
	"github.com/Wojteg799/SQL-Exercises-App/internal/catalog"
	"github.com/Wojteg799/SQL-Exercises-App/internal/cleanup"
	"github.com/Wojteg799/SQL-Exercises-App/internal/config"
	"github.com/Wojteg799/SQL-Exercises-App/internal/sandbox"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.Info("starting sql-lab",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"exercises", cfg.Exercises.Dir,
	)

	// Load the exercise catalog
	loader := catalog.NewLoader()
	if err := loader.LoadFromDir(cfg.Exercises.Dir); err != nil {
		slog.Error("failed to load exercises", "dir", cfg.Exercises.Dir, "error", err)
		os.Exit(1)
	}

	// Seed missing sandbox databases
	if cfg.Exercises.Seed {
		if err := loader.Seed(); err != nil {
			slog.Error("failed to seed sandbox databases", "error", err)
			os.Exit(1)
		}
	}

	// Initialize sandbox manager
	manager := sandbox.NewManager(cfg.Sandbox, loader)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start cleanup worker
	cleaner := cleanup.NewCleaner(manager, cfg.Cleanup.Interval)
	cleaner.Start(ctx)

	// Setup HTTP server
	server := api.NewServer(cfg.Server, loader, manager)
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("HTTP server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down gracefully...")

	// Cancel context to stop background workers
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	// Close open sandbox handles
	if err := manager.Close(); err != nil {
		slog.Error("sandbox manager close error", "error", err)
	}

	slog.Info("sql-lab stopped")
}
