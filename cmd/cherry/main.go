package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/sglre6355/cherry/internal/bot"
	_ "github.com/sglre6355/cherry/internal/modules/general"
	_ "github.com/sglre6355/cherry/internal/modules/moderation"
	_ "github.com/sglre6355/cherry/internal/modules/music_player"
)

// version is set at build time via ldflags:
// go build -ldflags "-X main.version=1.0.0" ./cmd/cherry
var version = "dev"

func main() {
	// A missing .env file is fine; the environment may already be set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env file", "error", err)
	}

	// Load configuration
	cfg, err := bot.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Configure JSON logging
	level, _ := bot.ParseLogLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	slog.Info("starting cherry", "version", version)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Create and configure bot
	b := bot.NewBot(cfg)
	if err := b.LoadModules(); err != nil {
		slog.Error("failed to load modules", "error", err)
		os.Exit(1)
	}

	if err := b.Start(ctx); err != nil {
		slog.Error("failed to start bot", "error", err)
		if err := b.Stop(); err != nil {
			slog.Error("failed to shutdown", "error", err)
		}
		os.Exit(1)
	}

	metrics := bot.NewMetricsServer(cfg.MetricsAddr, b.Registry(), map[string]bot.Pinger{
		"settings": b.Settings(),
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return metrics.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("received termination signal, shutting down")
		return b.Stop()
	})

	if err := g.Wait(); err != nil {
		slog.Error("failed to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("completed bot shutdown")
}
