package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/paladar/app/repositories"
	"github.com/shashiranjanraj/paladar/app/services"
	"github.com/shashiranjanraj/paladar/app/views"
	"github.com/shashiranjanraj/paladar/pkg/storage"
)

// paladar backup [--disk name]
func backupCmd() *cobra.Command {
	var disk string
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export users and orders as JSON to a storage disk",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer gw.Close()

			d, err := storage.FromConfig(cmd.Context()).Disk(disk)
			if err != nil {
				return err
			}
			svc := services.NewBackupService(
				repositories.NewUserRepository(gw, nil),
				repositories.NewOrderRepository(gw, nil),
				d,
			)
			path, err := svc.Export(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Backup written: %s\n", d.URL(path))
			return nil
		},
	}
	cmd.Flags().StringVar(&disk, "disk", "", "storage disk (default from STORAGE_DISK)")
	return cmd
}

// paladar backup:list [--disk name]
func backupListCmd() *cobra.Command {
	var disk string
	cmd := &cobra.Command{
		Use:   "backup:list",
		Short: "List backups on a storage disk",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := storage.FromConfig(cmd.Context()).Disk(disk)
			if err != nil {
				return err
			}
			files, err := services.NewBackupService(nil, nil, d).List(cmd.Context())
			if err != nil {
				return err
			}
			if len(files) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No backups.")
				return nil
			}
			for _, f := range files {
				fmt.Fprintln(cmd.OutOrStdout(), f)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&disk, "disk", "", "storage disk (default from STORAGE_DISK)")
	return cmd
}

// paladar backup:show PATH [--disk name]
func backupShowCmd() *cobra.Command {
	var disk string
	cmd := &cobra.Command{
		Use:   "backup:show PATH",
		Short: "Print what a backup holds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := storage.FromConfig(cmd.Context()).Disk(disk)
			if err != nil {
				return err
			}
			b, err := services.NewBackupService(nil, nil, d).Read(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Exported at: %s\n", b.ExportedAt.Format(time.RFC3339))
			fmt.Fprintf(out, "Users: %d\nOrders: %d\n\n", len(b.Users), len(b.Orders))
			w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "ID\tDISH\tOWNER")
			for _, o := range b.Orders {
				fmt.Fprintf(w, "%d\t%s\t%s\n", o.ID, o.Dish, views.OwnerName(b.Users, o.UserID))
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&disk, "disk", "", "storage disk (default from STORAGE_DISK)")
	return cmd
}
