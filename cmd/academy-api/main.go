package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/terra-clan/academy-api/internal/academy"
	"github.com/terra-clan/academy-api/internal/api"
	"github.com/terra-clan/academy-api/internal/cache"
	"github.com/terra-clan/academy-api/internal/config"
	"github.com/terra-clan/academy-api/internal/health"
	"github.com/terra-clan/academy-api/internal/realtime"
	"github.com/terra-clan/academy-api/internal/seed"
	"github.com/terra-clan/academy-api/internal/storage"
	"github.com/terra-clan/academy-api/internal/weekly"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	slog.Info("starting academy-api",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"storage", cfg.Storage.Driver,
		"redis", cfg.Redis.Enabled(),
	)

	// Create context for initialization
	initCtx, initCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer initCancel()

	repo, err := openRepository(initCtx, cfg.Storage)
	if err != nil {
		slog.Error("failed to initialize storage", "error", err)
		os.Exit(1)
	}

	checks := health.NewRegistry()
	checks.Register("storage", repo)

	// Leaderboard cache is optional
	var leaderboardCache cache.Cache
	var redisCache *cache.RedisCache
	if cfg.Redis.Enabled() {
		redisCache, err = cache.NewRedisCache(initCtx, cache.RedisConfig{
			Address:   cfg.Redis.Address,
			Password:  cfg.Redis.Password,
			DB:        cfg.Redis.DB,
			Namespace: "academy:",
		})
		if err != nil {
			slog.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		leaderboardCache = redisCache
		checks.Register("redis", redisCache)
		slog.Info("redis connected successfully", "address", cfg.Redis.Address)
	}

	hub := realtime.NewHub()
	service := academy.NewService(repo, leaderboardCache, hub, academy.Options{
		RequireChallenge: cfg.Submissions.RequireChallenge,
		LeaderboardTTL:   cfg.Leaderboard.CacheTTL,
	})

	// Seed the starter catalog
	if !cfg.Seed.Disabled {
		if err := seedCatalog(initCtx, repo, cfg.Seed); err != nil {
			slog.Error("failed to seed catalog", "error", err)
			os.Exit(1)
		}
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start weekly rollover worker
	var resetter *weekly.Resetter
	if cfg.Leaderboard.WeeklyResetInterval > 0 {
		resetter = weekly.NewResetter(service, cfg.Leaderboard.WeeklyResetInterval)
		resetter.Start(ctx)
	}

	// Setup HTTP server
	server := api.NewServer(cfg, repo, service, hub, checks)
	httpServer := &http.Server{
		Addr:         cfg.Server.Address(),
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
	if resetter != nil {
		<-resetter.Done()
	}

	// Hijacked stream connections are not tracked by Shutdown
	hub.Close()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	if redisCache != nil {
		if err := redisCache.Close(); err != nil {
			slog.Error("redis close error", "error", err)
		}
	}
	if err := repo.Close(); err != nil {
		slog.Error("storage close error", "error", err)
	}

	slog.Info("academy-api stopped")
}

func openRepository(ctx context.Context, cfg config.StorageConfig) (storage.Repository, error) {
	if cfg.Driver != config.DriverPostgres {
		slog.Info("using in-memory storage; data is lost on restart")
		return storage.NewMemoryRepository(), nil
	}

	slog.Info("running database migrations")
	if err := storage.MigrateFromDSN(ctx, cfg.DSN); err != nil {
		return nil, err
	}

	repo, err := storage.NewPostgresRepository(ctx, storage.PostgresConfig{
		DSN:      cfg.DSN,
		MaxConns: int32(cfg.MaxConns),
		MinConns: int32(cfg.MinConns),
	})
	if err != nil {
		return nil, err
	}
	slog.Info("database connected successfully")
	return repo, nil
}

func seedCatalog(ctx context.Context, repo storage.Repository, cfg config.SeedConfig) error {
	var (
		cat *seed.Catalog
		err error
	)
	if cfg.File != "" {
		cat, err = seed.LoadFromFile(cfg.File)
	} else {
		cat, err = seed.Default()
	}
	if err != nil {
		return err
	}

	_, err = seed.Apply(ctx, repo, cat, time.Now().UTC())
	return err
}
