// dbctl manages the Postgres schema and seeds the reference data.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/oksasatya/estate-listing-api/config"
	"github.com/oksasatya/estate-listing-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-dbctl", cfg.Env)

	rootCmd := &cobra.Command{
		Use:          "dbctl",
		Short:        "Database migrations and seed data",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&cfg.MigrationsDir, "dir", cfg.MigrationsDir, "migrations directory")

	rootCmd.AddCommand(
		migrateCmd(cfg, logger),
		seedCmd(cfg, logger),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
