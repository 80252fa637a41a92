package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/nerrad567/homestead/internal/infrastructure/database"
	"github.com/nerrad567/homestead/migrations"
)

func newMigrateCmd(load configLoader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database migrations",
		Long: `Manage the embedded SQL migrations.

Subcommands:
  up      - Apply pending migrations
  down    - Roll back the most recent migration
  status  - Show applied and pending migrations`,
	}

	// withDB opens the configured database, runs fn and closes it again.
	withDB := func(cmd *cobra.Command, fn func(db *database.DB) error) error {
		cfg, _, err := load()
		if err != nil {
			return err
		}
		db, err := openDatabase(cmd.Context(), cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close() //nolint:errcheck // read-mostly CLI path
		return fn(db)
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withDB(cmd, func(db *database.DB) error {
					if err := db.Migrate(cmd.Context(), migrations.FS); err != nil {
						return fmt.Errorf("applying migrations: %w", err)
					}
					fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withDB(cmd, func(db *database.DB) error {
					if err := db.MigrateDown(cmd.Context(), migrations.FS); err != nil {
						return fmt.Errorf("rolling back migration: %w", err)
					}
					fmt.Fprintln(cmd.OutOrStdout(), "migration rolled back")
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show applied and pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withDB(cmd, func(db *database.DB) error {
					applied, pending, err := db.GetMigrationStatus(cmd.Context(), migrations.FS)
					if err != nil {
						return fmt.Errorf("reading migration status: %w", err)
					}
					return printMigrationStatus(cmd.OutOrStdout(), applied, pending)
				})
			},
		},
	)

	return cmd
}

// printMigrationStatus writes one row per migration, applied first.
func printMigrationStatus(w io.Writer, applied []database.MigrationRecord, pending []database.Migration) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "VERSION\tSTATUS\tAPPLIED AT\tNAME")
	for _, m := range applied {
		fmt.Fprintf(tw, "%s\tapplied\t%s\t\n", m.Version, m.AppliedAt.Format(time.RFC3339))
	}
	for _, m := range pending {
		fmt.Fprintf(tw, "%s\tpending\t-\t%s\n", m.Version, m.Name)
	}
	return tw.Flush()
}
