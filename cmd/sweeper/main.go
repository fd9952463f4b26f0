// Package main содержит точку входа для ежедневной рассылки дайджестов.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Anubhav-Ghosh1/QR-Moments/internal/app/sweeper"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/config"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/lib/sl"
)

func main() {
	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	logger.Info("starting sweeper", slog.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := sweeper.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize sweeper app", sl.Err(err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error("sweeper app stopped with error", sl.Err(err))
		os.Exit(1)
	}

	logger.Info("sweeper app stopped gracefully")
}
