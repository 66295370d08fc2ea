package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/paladar/internal/kernel"
	"github.com/shashiranjanraj/paladar/internal/server"
	"github.com/shashiranjanraj/paladar/pkg/cache"
	"github.com/shashiranjanraj/paladar/pkg/event"
	"github.com/shashiranjanraj/paladar/pkg/middleware"
	"github.com/shashiranjanraj/paladar/pkg/session"
	"github.com/shashiranjanraj/paladar/pkg/store"
	"github.com/shashiranjanraj/paladar/pkg/ws"
)

// paladar serve
func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "serve",
		Aliases: []string{"run", "start"},
		Short:   "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return server.Start(cmd.Context())
		},
	}
}

// paladar route:list
func routeListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "route:list",
		Short: "List every registered route",
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := kernel.NewHTTPKernel(kernel.Deps{
				Store:   store.New(store.Config{}),
				Cache:   cache.NewMemory(),
				Events:  event.New(),
				Hub:     ws.NewHub(),
				Session: session.DefaultOptions(),
				CORS:    middleware.DefaultCORSOptions(),
			})
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "METHOD\tPATH\tNAME")
			fmt.Fprintln(w, "------\t----\t----")
			for _, r := range k.Routes() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", r.Method, r.Path, r.Name)
			}
			return w.Flush()
		},
	}
}
