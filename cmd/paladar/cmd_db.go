package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/paladar/database/seeders"
	"github.com/shashiranjanraj/paladar/pkg/migration"
)

// paladar migrate
func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, err := openStoreWith(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer gw.Close()
			db, _ := gw.Initialize(cmd.Context())

			ran, err := migration.New(db).Run()
			if err != nil && !errors.Is(err, migration.ErrNoMigrations) {
				return err
			}
			if ran == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to migrate.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Ran %d migration(s).\n", ran)
			return nil
		},
	}
}

// paladar migrate:status
func migrateStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate:status",
		Short: "Show which migrations have run",
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, err := openStoreWith(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer gw.Close()
			db, _ := gw.Initialize(cmd.Context())

			rows, err := migration.New(db).Status()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "MIGRATION\tRAN\tBATCH")
			for _, s := range rows {
				ran, batch := "no", "-"
				if s.Ran {
					ran, batch = "yes", fmt.Sprint(s.Batch)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", s.Name, ran, batch)
			}
			return w.Flush()
		},
	}
}

// paladar migrate:rollback
func migrateRollbackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate:rollback",
		Short: "Roll back the last batch of migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, err := openStoreWith(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer gw.Close()
			db, _ := gw.Initialize(cmd.Context())

			undone, err := migration.New(db).Rollback()
			for _, name := range undone {
				fmt.Fprintf(cmd.OutOrStdout(), "Rolled back: %s\n", name)
			}
			if err != nil {
				return err
			}
			if len(undone) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to roll back.")
			}
			return nil
		},
	}
}

// paladar seed [name...]
func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed [name...]",
		Short: "Run database seeders (all when no name is given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer gw.Close()

			fmt.Fprintln(cmd.OutOrStdout(), "Running seeders…")
			return seeders.Run(cmd.Context(), gw, cmd.OutOrStdout(), args...)
		},
	}
}
