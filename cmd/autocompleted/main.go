package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/Tarrgon/autocompleted/internal/cache"
	"github.com/Tarrgon/autocompleted/internal/config"
	"github.com/Tarrgon/autocompleted/internal/resolver"
	"github.com/Tarrgon/autocompleted/internal/server"
	"github.com/Tarrgon/autocompleted/internal/storage"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	app := &cli.App{
		Name:    "autocompleted",
		Usage:   "Tag autocomplete HTTP service",
		Version: fmt.Sprintf("%s (built %s, %s driver)", version, buildTime, storage.BuildMode),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "addr",
				Usage:   "HTTP listen address",
				Value:   config.DefaultServerAddr,
				EnvVars: []string{config.EnvServerAddr},
			},
			&cli.StringFlag{
				Name:     "db",
				Aliases:  []string{"d"},
				Usage:    "Path to the tags database",
				Required: true,
				EnvVars:  []string{config.EnvDBPath},
			},
			&cli.IntFlag{
				Name:    "cache-size",
				Usage:   "Maximum number of cached results",
				Value:   config.DefaultCacheSize,
				EnvVars: []string{config.EnvCacheSize},
			},
			&cli.DurationFlag{
				Name:    "cache-ttl",
				Usage:   "Lifetime of a cached result",
				Value:   config.DefaultCacheTTL,
				EnvVars: []string{config.EnvCacheTTL},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func setupLogger(c *cli.Context) error {
	var level slog.Level
	switch strings.ToLower(c.String("log-level")) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", c.String("log-level"))
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

func run(c *cli.Context) error {
	cfg := config.Config{
		ServerAddr: c.String("addr"),
		DBPath:     c.String("db"),
		CacheSize:  c.Int("cache-size"),
		CacheTTL:   c.Duration("cache-ttl"),
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open tag store: %w", err)
	}
	defer func() { _ = store.Close() }()

	resultCache, err := cache.New(cfg.CacheSize, cfg.CacheTTL)
	if err != nil {
		return fmt.Errorf("failed to create result cache: %w", err)
	}

	res := resolver.New(store, resultCache, slog.Default())
	srv := server.New(cfg.ServerAddr, res, slog.Default())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		slog.Info("autocomplete server listening",
			"addr", cfg.ServerAddr,
			"cache_size", cfg.CacheSize,
			"cache_ttl", cfg.CacheTTL.String(),
			"driver", storage.DriverName)
		errChan <- srv.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	}

	slog.Info("server stopped")
	return nil
}
