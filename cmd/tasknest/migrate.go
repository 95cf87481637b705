// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TaskNest Contributors

package main

import (
	"log/slog"
	"os"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/tasknest/tasknest/internal/config"
	"github.com/tasknest/tasknest/internal/store"
)

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long:  `Apply all pending database migrations against the PostgreSQL database.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			databaseURL, err := requireDatabaseURL()
			if err != nil {
				return err
			}
			cmd.Println("Running migrations...")
			if err := migrateUp(databaseURL); err != nil {
				return err
			}
			cmd.Println("Migrations completed successfully")
			return nil
		},
	}

	cmd.AddCommand(newMigrateStatusCmd())
	cmd.AddCommand(newMigrateDownCmd())

	return cmd
}

func newMigrateStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			databaseURL, err := requireDatabaseURL()
			if err != nil {
				return err
			}

			migrator, err := store.NewMigrator(databaseURL)
			if err != nil {
				return err
			}
			defer closeMigrator(migrator)

			version, dirty, err := migrator.Version()
			if err != nil {
				return err
			}

			if version == 0 {
				cmd.Println("No migrations applied")
			} else {
				name, err := store.MigrationName(version)
				if err != nil {
					return err
				}
				cmd.Printf("Current version: %d (%s)\n", version, name)
			}
			if dirty {
				cmd.Println("WARNING: database is in a dirty state; manual intervention required")
			}

			pending, err := migrator.PendingMigrations()
			if err != nil {
				return err
			}
			if len(pending) == 0 {
				cmd.Println("No pending migrations")
				return nil
			}
			cmd.Println("Pending migrations:")
			for _, v := range pending {
				name, err := store.MigrationName(v)
				if err != nil {
					return err
				}
				cmd.Printf("  %d (%s)\n", v, name)
			}
			return nil
		},
	}
}

func newMigrateDownCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back all migrations",
		Long:  `Roll back every migration, dropping all tables and data.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return oops.Code("CONFIRMATION_REQUIRED").
					Errorf("migrate down drops all data; re-run with --yes to confirm")
			}

			databaseURL, err := requireDatabaseURL()
			if err != nil {
				return err
			}

			migrator, err := store.NewMigrator(databaseURL)
			if err != nil {
				return err
			}
			defer closeMigrator(migrator)

			if err := migrator.Down(); err != nil {
				return err
			}
			cmd.Println("All migrations rolled back")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the rollback")
	return cmd
}

// migrateUp applies all pending migrations. Shared by the migrate command
// and serve --auto-migrate.
func migrateUp(databaseURL string) error {
	if databaseURL == "" {
		return oops.Code("CONFIG_INVALID").Errorf("%s environment variable is required", config.EnvDatabaseURL)
	}

	migrator, err := store.NewMigrator(databaseURL)
	if err != nil {
		return err
	}
	defer closeMigrator(migrator)

	return migrator.Up()
}

func requireDatabaseURL() (string, error) {
	databaseURL := os.Getenv(config.EnvDatabaseURL)
	if databaseURL == "" {
		return "", oops.Code("CONFIG_INVALID").Errorf("%s environment variable is required", config.EnvDatabaseURL)
	}
	return databaseURL, nil
}

func closeMigrator(m *store.Migrator) {
	if err := m.Close(); err != nil {
		slog.Warn("error closing migrator", "error", err)
	}
}
