package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/anyulbade/retail-sales-dashboard/internal/config"
	"github.com/anyulbade/retail-sales-dashboard/internal/database"
)

func newRootCommand() *cobra.Command {
	var cfg *config.Config

	rootCmd := &cobra.Command{
		Use:   "salesdash",
		Short: "Retail sales dashboard API",
		Long: `Serves filtered, sorted and paginated sales transactions with
aggregate metrics over the matching set.

Examples:
  salesdash serve
  salesdash migrate up
  salesdash seed --rows 10000`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return err
			}
			setupLogger(cfg)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cfg)
		},
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.AddCommand(
		newServeCommand(&cfg),
		newMigrateCommand(&cfg),
		newSeedCommand(&cfg),
	)

	return rootCmd
}

func newServeCommand(cfg **config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(*cfg)
		},
	}
}

func newMigrateCommand(cfg **config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				return database.RunMigrations((*cfg).DatabaseURL())
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back every migration",
			RunE: func(cmd *cobra.Command, args []string) error {
				return database.RollbackMigrations((*cfg).DatabaseURL())
			},
		},
	)

	return cmd
}

func newSeedCommand(cfg **config.Config) *cobra.Command {
	var rows int

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load deterministic development data into an empty table",
		RunE: func(cmd *cobra.Command, args []string) error {
			if rows <= 0 {
				rows = (*cfg).SeedRows
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
			defer cancel()

			pool, err := database.NewPool(ctx, (*cfg).DatabaseURL())
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}
			defer pool.Close()

			return database.SeedData(ctx, pool, rows)
		},
	}

	cmd.Flags().IntVar(&rows, "rows", 0, "number of transactions to generate (default SEED_ROWS)")
	return cmd
}

func setupLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if cfg.LogFormat == "console" {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}).
			With().Timestamp().Caller().Logger()
		return
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Caller().Logger()
}
