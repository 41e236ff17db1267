package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/oksasatya/estate-listing-api/config"
	pginfra "github.com/oksasatya/estate-listing-api/internal/infrastructure/postgres"
)

func migrateCmd(cfg *config.Config, log *logrus.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back schema migrations",
	}

	withMigrator := func(fn func(m *pginfra.Migrator) error) error {
		m, err := pginfra.NewMigrator(cfg.PostgresDSN(), cfg.MigrationsDir, log)
		if err != nil {
			return fmt.Errorf("open migrations: %w", err)
		}
		defer m.Close()
		return fn(m)
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(func(m *pginfra.Migrator) error { return m.Up() })
		},
	}

	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, _ := cmd.Flags().GetInt("steps")
			all, _ := cmd.Flags().GetBool("all")
			if all {
				steps = 0
			} else if steps <= 0 {
				return fmt.Errorf("--steps must be positive (or pass --all)")
			}
			return withMigrator(func(m *pginfra.Migrator) error { return m.Down(steps) })
		},
	}
	down.Flags().Int("steps", 1, "number of migrations to roll back")
	down.Flags().Bool("all", false, "roll back every migration")

	version := &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(func(m *pginfra.Migrator) error {
				v, dirty, err := m.Version()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version=%d dirty=%t\n", v, dirty)
				return nil
			})
		},
	}

	cmd.AddCommand(up, down, version)
	return cmd
}
