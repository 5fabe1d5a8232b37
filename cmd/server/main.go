package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"intern-match/internal/app"
	"intern-match/internal/config"
	"intern-match/internal/database"
	"intern-match/internal/database/migration"
	dbpostgres "intern-match/internal/database/postgres"
	"intern-match/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var cfgFile string

func main() {
	root := &cobra.Command{
		Use:          "intern-match",
		Short:        "Internship matching and application API",
		SilenceUsage: true,
		RunE:         runServe,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "optional config file (env vars take precedence)")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP and websocket server",
			RunE:  runServe,
		},
		migrateCmd(),
		&cobra.Command{
			Use:   "seed",
			Short: "Seed the admin account and the sample catalog",
			RunE:  runSeed,
		},
	)

	if err := root.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func setup() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logger.New(cfg.Log.Level, cfg.Log.JSON)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, log.Named(cfg.App.AppName), nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server, cleanup, err := app.Bootstrap(ctx, cfg, log)
	if err != nil {
		log.Error("bootstrap failed", zap.Error(err))
		return err
	}
	defer func() {
		if err := cleanup(); err != nil {
			log.Warn("cleanup error", zap.Error(err))
		}
	}()

	if err := server.Run(ctx); err != nil {
		log.Error("server error", zap.Error(err))
		return err
	}
	log.Info("server stopped")
	return nil
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	c, err := app.NewContainer(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	// NewContainer already seeds the memory driver and SEED_ON_BOOT setups.
	if cfg.Database.Driver == config.DriverMemory || cfg.App.SeedOnBoot {
		return nil
	}
	return c.Seed(cmd.Context())
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the postgres schema",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withMigrator(cmd.Context(), func(r migration.Runner, db database.DB) error {
					return r.Up(db.SQLDB())
				})
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back every migration",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withMigrator(cmd.Context(), func(r migration.Runner, db database.DB) error {
					return r.Down(db.SQLDB())
				})
			},
		},
		&cobra.Command{
			Use:   "force VERSION",
			Short: "Set the schema version without running migrations",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				version, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid version %q: %w", args[0], err)
				}
				return withMigrator(cmd.Context(), func(r migration.Runner, db database.DB) error {
					return r.Force(db.SQLDB(), version)
				})
			},
		},
	)
	return cmd
}

func withMigrator(ctx context.Context, fn func(migration.Runner, database.DB) error) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if cfg.Database.Driver != config.DriverPostgres {
		return fmt.Errorf("migrations require DB_DRIVER=%s", config.DriverPostgres)
	}
	db, err := dbpostgres.Connect(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	return fn(migration.Runner{Log: log}, db)
}
