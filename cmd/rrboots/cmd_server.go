package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rrboots/storefront/app/routes"
	"github.com/rrboots/storefront/internal/server"
	"github.com/rrboots/storefront/pkg/router"
)

// rrboots serve — start the HTTP (and optional gRPC) server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the storefront server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Start()
	},
}

// rrboots route:list — print all registered named routes.
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered named routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		r := router.New()
		routes.Register(r)

		infos := r.Routes()
		if len(infos) == 0 {
			fmt.Println("No named routes registered.")
			return nil
		}

		names := make([]string, 0, len(infos))
		for name := range infos {
			names = append(names, name)
		}
		sort.Slice(names, func(i, j int) bool {
			return infos[names[i]] < infos[names[j]]
		})

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "PATH\tNAME")
		fmt.Fprintln(w, "----\t----")
		for _, name := range names {
			fmt.Fprintf(w, "%s\t%s\n", infos[name], name)
		}
		return w.Flush()
	},
}
