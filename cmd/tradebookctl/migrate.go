package main

import (
	"fmt"

	"github.com/SscSPs/tradebook/pkg/database"
	"github.com/spf13/cobra"
)

func newMigrateCmd(a *app) *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				path = a.cfg.MigrationsPath
			}
			if err := database.RunMigrations(a.cfg.DatabaseURL, path, a.logger); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied.")
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "Migrations directory (default MIGRATIONS_PATH)")
	return cmd
}
