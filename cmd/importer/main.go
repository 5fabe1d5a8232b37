package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"intern-match/internal/app"
	"intern-match/internal/config"
	"intern-match/internal/importer"
	"intern-match/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	var (
		cfgFile string
		timeout time.Duration
	)

	root := &cobra.Command{
		Use:          "importer SOURCE...",
		Short:        "Load internship feeds from files or URLs and upsert them into the catalog",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, sources []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if cfg.Database.Driver == config.DriverMemory {
				return fmt.Errorf("importing into the memory driver has no lasting effect, set DB_DRIVER=%s", config.DriverPostgres)
			}
			log, err := logger.New(cfg.Log.Level, cfg.Log.JSON)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer func() { _ = log.Sync() }()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			c, err := app.NewContainer(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			items, err := importer.NewLoader(log).LoadAll(ctx, sources)
			if err != nil {
				return err
			}
			upserted, err := c.Internships.Import(ctx, items)
			if err != nil {
				return err
			}
			log.Info("import finished",
				zap.Int("sources", len(sources)),
				zap.Int("received", len(items)),
				zap.Int("upserted", upserted),
			)
			return nil
		},
	}
	root.Flags().StringVar(&cfgFile, "config", "", "optional config file (env vars take precedence)")
	root.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall import deadline")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := root.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
