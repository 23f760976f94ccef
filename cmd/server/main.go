package main

import (
	"context"
	"courier-map-service/internal/adapters/notify"
	"courier-map-service/internal/adapters/repositories"
	"courier-map-service/internal/api"
	"courier-map-service/internal/config"
	"courier-map-service/internal/platform/db"
	"courier-map-service/internal/platform/obs"
	"courier-map-service/internal/services"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// main is the application composition root.
// It wires the store, the refresh engine and its poller behind ports and starts the HTTP server.
func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	obs.SetupLogger(cfg.LogLevel, cfg.LogFormat)
	if envErr != nil {
		log.Info().Msg("No .env file found (using environment variables)")
	}

	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, driver, err := db.Open(cfg.DatabaseURL, cfg.DBPath)
	if err != nil {
		return err
	}
	defer conn.Close()

	store := repositories.NewStore(conn, driver)

	// Initialize schema and seed demo data on startup for local runs.
	if err := initAndSeed(ctx, conn, store, cfg.SeedPath); err != nil {
		return err
	}

	metrics := obs.NewMetrics("courier_map")
	engine := services.NewEngine(cfg.EngineConfig())
	poller := services.NewPoller(store, engine, services.PollerConfig{
		RouteID:      cfg.RouteID,
		Interval:     cfg.PollInterval,
		FetchTimeout: cfg.FetchTimeout,
	}, notify.NewLogNotifier(), metrics)

	router := api.NewRouter(store, poller, cfg.RouteID, metrics.Handler())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return poller.Run(gctx)
	})

	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Str("driver", string(driver)).Int("route_id", cfg.RouteID).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func initAndSeed(ctx context.Context, conn *sql.DB, store repositories.PackageWriter, seedPath string) error {
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if seedPath == "" {
		return nil
	}
	if _, err := os.Stat(seedPath); errors.Is(err, os.ErrNotExist) {
		log.Warn().Str("seed_path", seedPath).Msg("seed file not found, skipping seed")
		return nil
	}

	if err := repositories.SeedFromJSON(ctx, store, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
