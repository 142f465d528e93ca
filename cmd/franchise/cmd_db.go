package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/johssalinas/backend-accenture/pkg/app"
)

// withApp boots the app for a one-shot command and closes it afterwards.
func withApp(cmd *cobra.Command, fn func(a *app.App) error) error {
	a, err := app.Boot(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

func printNames(cmd *cobra.Command, verb string, names []string) {
	out := cmd.OutOrStdout()
	if len(names) == 0 {
		fmt.Fprintln(out, "Nothing to do.")
		return
	}
	for _, n := range names {
		fmt.Fprintf(out, "  %s: %s\n", verb, n)
	}
}

// franchise migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app.App) error {
			fmt.Fprintln(cmd.OutOrStdout(), "Running migrations…")
			ran, err := a.Migrate()
			printNames(cmd, "Migrated", ran)
			return err
		})
	},
}

// franchise migrate:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Rollback the last batch of migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app.App) error {
			fmt.Fprintln(cmd.OutOrStdout(), "Rolling back last batch…")
			rolled, err := a.Rollback()
			printNames(cmd, "Rolled back", rolled)
			return err
		})
	},
}

// franchise migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of each migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app.App) error {
			status, err := a.MigrationStatus()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "RAN?\tBATCH\tMIGRATION")
			for _, s := range status {
				ran, batch := "No", "-"
				if s.Ran {
					ran, batch = "Yes", fmt.Sprint(s.Batch)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", ran, batch, s.Name)
			}
			return w.Flush()
		})
	},
}

// franchise seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run all database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app.App) error {
			fmt.Fprintln(cmd.OutOrStdout(), "Running seeders…")
			return a.Seed(cmd.Context(), cmd.OutOrStdout())
		})
	},
}
