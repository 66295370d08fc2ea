package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/paladar/config"
	"github.com/shashiranjanraj/paladar/pkg/store"

	// Migrations register themselves from init().
	_ "github.com/shashiranjanraj/paladar/database/migrations"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "paladar",
		Short:         "El Buen Paladar: users and their orders",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		serveCmd(),
		routeListCmd(),
		migrateCmd(),
		migrateStatusCmd(),
		migrateRollbackCmd(),
		seedCmd(),
		usersCmd(),
		ordersCmd(),
		backupCmd(),
		backupListCmd(),
		backupShowCmd(),
	)
	return root
}

// openStore loads config and opens the store with migrations applied.
func openStore(ctx context.Context) (*store.Gateway, error) {
	return openStoreWith(ctx, false)
}

func openStoreWith(ctx context.Context, skipMigrations bool) (*store.Gateway, error) {
	if err := config.Load(); err != nil {
		return nil, err
	}
	gw := store.New(store.Config{
		Driver:         config.DatabaseDriver(),
		DSN:            config.DatabaseDSN(),
		SkipMigrations: skipMigrations,
	})
	if _, err := gw.Initialize(ctx); err != nil {
		return nil, err
	}
	return gw, nil
}
