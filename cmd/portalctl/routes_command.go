package main

import (
	"fmt"
	"sort"

	"github.com/jrsteele09/go-admin-portal/routeguard"
	"github.com/jrsteele09/go-admin-portal/routes"
	"github.com/spf13/cobra"
)

var routesCmd = &cobra.Command{
	Use:   "routes [path...]",
	Short: "Show the navigation decision for routes under the current session",
	Long: `Probes the backend for the current session, then prints the
authorization decision for each given path. With no arguments, every route
in the default table is checked.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newStore()
		if err != nil {
			return err
		}
		defer store.Close()

		snap := store.CheckSession(cmd.Context())
		printSnapshot(snap)
		fmt.Println()

		table := routes.DefaultTable()
		router, err := routes.NewRouter(store, table)
		if err != nil {
			return err
		}
		defer router.Close()

		paths := args
		if len(paths) == 0 {
			for path := range table {
				paths = append(paths, path)
			}
			sort.Strings(paths)
		}

		for _, path := range paths {
			decision := router.Navigate(path)
			switch decision.Action {
			case routeguard.ActionAllow:
				fmt.Printf("%-28s allow\n", path)
			case routeguard.ActionRedirect:
				fmt.Printf("%-28s redirect -> %s\n", path, decision.Target)
			case routeguard.ActionLoading:
				fmt.Printf("%-28s loading\n", path)
			}
		}
		return nil
	},
}
