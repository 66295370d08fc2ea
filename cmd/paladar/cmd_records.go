package main

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/paladar/app/controllers"
	"github.com/shashiranjanraj/paladar/app/models"
	"github.com/shashiranjanraj/paladar/app/repositories"
	"github.com/shashiranjanraj/paladar/app/views"
	"github.com/shashiranjanraj/paladar/pkg/collection"
)

func parseID(raw string) (uint, error) {
	n, err := strconv.ParseUint(raw, 10, 63)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return uint(n), nil
}

// withRepos opens the store for one command and closes it afterwards.
func withRepos(ctx context.Context, fn func(*repositories.UserRepository, *repositories.OrderRepository) error) error {
	gw, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer gw.Close()
	return fn(repositories.NewUserRepository(gw, nil), repositories.NewOrderRepository(gw, nil))
}

// paladar users ...
func usersCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "users", Short: "List and edit users"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRepos(cmd.Context(), func(users *repositories.UserRepository, orders *repositories.OrderRepository) error {
				all, err := users.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(all) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), views.NoUsers)
					return nil
				}
				placed, err := orders.List(cmd.Context())
				if err != nil {
					return err
				}
				byOwner := collection.GroupBy(placed, func(o models.Order) uint { return o.UserID })

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
				fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION\tORDERS")
				for _, u := range all {
					fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", u.ID, u.Name, u.Description, len(byOwner[u.ID]))
				}
				return w.Flush()
			})
		},
	}

	var in controllers.UserInput
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := in.Normalize(); err != nil {
				return err
			}
			return withRepos(cmd.Context(), func(users *repositories.UserRepository, _ *repositories.OrderRepository) error {
				id, err := users.Add(cmd.Context(), in.Name, in.Description)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added user %d\n", id)
				return nil
			})
		},
	}
	add.Flags().StringVar(&in.Name, "name", "", "user name (required)")
	add.Flags().StringVar(&in.Description, "description", "", "free text")

	var upd controllers.UserInput
	update := &cobra.Command{
		Use:   "update ID",
		Short: "Replace a user's name and description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := upd.Normalize(); err != nil {
				return err
			}
			return withRepos(cmd.Context(), func(users *repositories.UserRepository, _ *repositories.OrderRepository) error {
				if err := users.Update(cmd.Context(), id, upd.Name, upd.Description); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated user %d\n", id)
				return nil
			})
		},
	}
	update.Flags().StringVar(&upd.Name, "name", "", "user name (required)")
	update.Flags().StringVar(&upd.Description, "description", "", "free text")

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a user; its orders are kept",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withRepos(cmd.Context(), func(users *repositories.UserRepository, _ *repositories.OrderRepository) error {
				if err := users.Remove(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted user %d\n", id)
				return nil
			})
		},
	}

	cmd.AddCommand(list, add, update, del)
	return cmd
}

// paladar orders ...
func ordersCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "orders", Short: "List and edit orders"}

	var owner string
	list := &cobra.Command{
		Use:   "list",
		Short: "List orders, optionally only those of --user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRepos(cmd.Context(), func(users *repositories.UserRepository, orders *repositories.OrderRepository) error {
				var (
					all []models.Order
					err error
				)
				if owner != "" {
					all, err = orders.ListByUser(cmd.Context(), controllers.ParseUserID(owner))
				} else {
					all, err = orders.List(cmd.Context())
				}
				if err != nil {
					return err
				}
				if len(all) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), views.NoOrders)
					return nil
				}
				people, err := users.List(cmd.Context())
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
				fmt.Fprintln(w, "ID\tDISH\tDESCRIPTION\tOWNER")
				for _, o := range all {
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", o.ID, o.Dish, o.Description, views.OwnerName(people, o.UserID))
				}
				return w.Flush()
			})
		},
	}
	list.Flags().StringVar(&owner, "user", "", "only orders of this user id")

	var in controllers.OrderInput
	add := &cobra.Command{
		Use:   "add",
		Short: "Add an order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := in.Normalize(); err != nil {
				return err
			}
			return withRepos(cmd.Context(), func(_ *repositories.UserRepository, orders *repositories.OrderRepository) error {
				id, err := orders.Add(cmd.Context(), in.Dish, in.Description, controllers.ParseUserID(in.UserID))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added order %d\n", id)
				return nil
			})
		},
	}
	add.Flags().StringVar(&in.Dish, "dish", "", "dish name (required)")
	add.Flags().StringVar(&in.Description, "description", "", "free text")
	add.Flags().StringVar(&in.UserID, "user", "", "owner user id (empty for none)")

	var upd controllers.OrderInput
	update := &cobra.Command{
		Use:   "update ID",
		Short: "Replace an order's dish, description and owner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := upd.Normalize(); err != nil {
				return err
			}
			return withRepos(cmd.Context(), func(_ *repositories.UserRepository, orders *repositories.OrderRepository) error {
				if err := orders.Update(cmd.Context(), id, upd.Dish, upd.Description, controllers.ParseUserID(upd.UserID)); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated order %d\n", id)
				return nil
			})
		},
	}
	update.Flags().StringVar(&upd.Dish, "dish", "", "dish name (required)")
	update.Flags().StringVar(&upd.Description, "description", "", "free text")
	update.Flags().StringVar(&upd.UserID, "user", "", "owner user id (empty for none)")

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withRepos(cmd.Context(), func(_ *repositories.UserRepository, orders *repositories.OrderRepository) error {
				if err := orders.Remove(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted order %d\n", id)
				return nil
			})
		},
	}

	cmd.AddCommand(list, add, update, del)
	return cmd
}
