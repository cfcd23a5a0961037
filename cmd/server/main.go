// Package main provides the player server entry point.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	zlog "github.com/rs/zerolog/log"

	"github.com/AyabongaQwabi/espazza-player/internal/api/rest"
	"github.com/AyabongaQwabi/espazza-player/internal/app/binder"
	"github.com/AyabongaQwabi/espazza-player/internal/app/library"
	"github.com/AyabongaQwabi/espazza-player/internal/app/notify"
	"github.com/AyabongaQwabi/espazza-player/internal/app/playback"
	"github.com/AyabongaQwabi/espazza-player/internal/infra/audio"
	"github.com/AyabongaQwabi/espazza-player/internal/infra/config"
	"github.com/AyabongaQwabi/espazza-player/internal/infra/logger"
	"github.com/AyabongaQwabi/espazza-player/internal/infra/postgres"
)

var (
	app        = kingpin.New("espazza-player", "eSpazza playback and playlist server")
	configPath = app.Flag("config", "Path to config file").Default("config/server.yaml").String()
	verbose    = app.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()
	logfile    = app.Flag("logfile", "Path to log file (default: stdout)").String()
)

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	kingpin.MustParse(app.Parse(os.Args[1:]))

	if err := logger.Init(*verbose, *logfile); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	zlog.Info().Msgf("Loading config from %s", *configPath)
	cfg, err := config.Load(*configPath)
	if err != nil {
		zlog.Fatal().Msgf("Failed to load config: %v", err)
	}

	if err := run(cfg); err != nil {
		zlog.Error().Msgf("Server error: %v", err)
		os.Exit(1)
	}
}

// run executes the main server logic. Using a separate function ensures
// defer statements are executed even when returning with an error.
func run(cfg *config.Config) error {
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to create database pool: %w", err)
	}
	defer pool.Close()

	if err := postgres.AutoMigrate(ctx, pool); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	notifier := buildNotifier(cfg)

	device, err := audio.New(cfg.Player.Output.Type, cfg.Player.Output.Settings)
	if err != nil {
		return fmt.Errorf("failed to create audio device: %w", err)
	}

	store := playback.NewStore(playback.NewReducer(rand.NewSource(time.Now().UnixNano())))
	store.Dispatch(playback.SetVolume{Volume: cfg.Player.Volume})

	b := binder.New(store, device)
	b.Start()
	defer func() { _ = b.Close() }()

	lib := library.NewService(store, postgres.NewStore(pool), notifier)

	// Warm the store with the public playlists before serving.
	go func() {
		if err := lib.LoadPlaylists(ctx); err != nil {
			zlog.Warn().Err(err).Msg("initial playlist load failed")
		}
	}()

	server := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: rest.NewServer(store, b, lib).Router(),
	}

	serverErrCh := make(chan error, 1)
	go func() {
		zlog.Info().Msgf("Starting server: addr=%s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		zlog.Info().Msg("Received shutdown signal...")
	case err := <-serverErrCh:
		return fmt.Errorf("server error: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zlog.Error().Msgf("Failed to shutdown server: %v", err)
	}

	zlog.Info().Msg("Server stopped")
	return nil
}

// buildNotifier returns the log notifier, joined with a Redis notifier
// when an address is configured.
func buildNotifier(cfg *config.Config) notify.Notifier {
	if cfg.Redis.Addr == "" {
		return notify.LogNotifier{}
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
	return notify.MultiNotifier{
		notify.LogNotifier{},
		notify.NewRedisNotifier(client, cfg.Redis.Channel),
	}
}
