package main

import (
	"courier-map-service/internal/adapters/repositories"
	"courier-map-service/internal/config"
	"courier-map-service/internal/platform/db"
	"courier-map-service/internal/platform/obs"
	"courier-map-service/internal/ports"
	"courier-map-service/internal/services"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	databaseURL string
	dbPath      string
	logLevel    string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "dbtool",
		Short:         "Manage the courier map package store",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			obs.SetupLogger(opts.logLevel, "console")
		},
	}

	cmd.PersistentFlags().StringVar(&opts.databaseURL, "database-url", config.Get("DATABASE_URL", ""), "Postgres connection URL (uses SQLite when empty)")
	cmd.PersistentFlags().StringVar(&opts.dbPath, "db", config.Get("DB_PATH", "data/app.db"), "SQLite database path")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", config.Get("LOG_LEVEL", "info"), "Log level")

	cmd.AddCommand(newInitCmd(opts), newSeedCmd(opts), newPreviewCmd(opts))
	return cmd
}

func (o *rootOptions) open() (*sql.DB, repositories.Store, error) {
	conn, driver, err := db.Open(o.databaseURL, o.dbPath)
	if err != nil {
		return nil, nil, err
	}
	return conn, repositories.NewStore(conn, driver), nil
}

func newInitCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the packages schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, _, err := opts.open()
			if err != nil {
				return err
			}
			defer conn.Close()

			log.Info().Msg("Initializing database schema...")
			if err := repositories.InitSchema(cmd.Context(), conn); err != nil {
				return fmt.Errorf("schema initialization failed: %w", err)
			}
			log.Info().Msg("Schema ready.")
			return nil
		},
	}
}

func newSeedCmd(opts *rootOptions) *cobra.Command {
	var seedPath string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the schema and load packages from a JSON seed file",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, store, err := opts.open()
			if err != nil {
				return err
			}
			defer conn.Close()

			if err := repositories.InitSchema(cmd.Context(), conn); err != nil {
				return fmt.Errorf("schema initialization failed: %w", err)
			}

			log.Info().Str("seed_path", seedPath).Msg("Seeding database...")
			if err := repositories.SeedFromJSON(cmd.Context(), store, seedPath); err != nil {
				return fmt.Errorf("seeding failed: %w", err)
			}
			log.Info().Msg("Seeding complete.")
			return nil
		},
	}

	cmd.Flags().StringVar(&seedPath, "file", config.Get("SEED_PATH", "data/seeds/packages.json"), "JSON seed file")
	return cmd
}

func newPreviewCmd(opts *rootOptions) *cobra.Command {
	var (
		routeID    int
		seedPath   string
		enginePath string
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Run one refresh cycle and print the resulting stops",
		Long: `Run one refresh cycle for a route and print stops, zones and counts.

Packages come from the store, or from a seed file when --file is given
(nothing is written in that case).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			engineFile := config.DefaultEngineFile()
			if enginePath != "" {
				var err error
				if engineFile, err = config.LoadEngineFile(enginePath); err != nil {
					return err
				}
			}

			var repo ports.PackageRepository
			if seedPath != "" {
				pkgs, err := repositories.LoadSeeds(seedPath)
				if err != nil {
					return err
				}
				repo = repositories.NewMemoryPackageRepository(pkgs)
			} else {
				conn, store, err := opts.open()
				if err != nil {
					return err
				}
				defer conn.Close()
				repo = store
			}

			poller := services.NewPoller(repo, services.NewEngine(engineFile.EngineConfig()), services.PollerConfig{
				RouteID: routeID,
			}, nil, nil)

			view, err := poller.PollOnce(cmd.Context())
			if err != nil {
				return err
			}

			printView(cmd.OutOrStdout(), routeID, view)
			return nil
		},
	}

	cmd.Flags().IntVar(&routeID, "route", 1, "Route id")
	cmd.Flags().StringVar(&seedPath, "file", "", "Read packages from this seed file instead of the store")
	cmd.Flags().StringVar(&enginePath, "engine-config", config.Get("ENGINE_CONFIG_PATH", ""), "YAML engine tunables")
	return cmd
}
