package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/stockroom/config"
	"github.com/shashiranjanraj/stockroom/database/seeders"
	"github.com/shashiranjanraj/stockroom/pkg/database"
	"github.com/shashiranjanraj/stockroom/pkg/migration"
)

// bootDB loads config and opens the sql catalog without migrating it.
func bootDB() (func(), error) {
	if err := config.Load(); err != nil {
		return nil, err
	}
	if store := config.CatalogStore(); store != "sql" {
		return nil, fmt.Errorf("migrations apply to the sql store, not %q", store)
	}
	if err := database.Connect(); err != nil {
		return nil, err
	}
	db := database.DB
	return func() { _ = database.Close(db) }, nil
}

// stockroom migrate
func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run all pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			done, err := bootDB()
			if err != nil {
				return err
			}
			defer done()
			return migration.New(database.DB).WithOutput(cmd.OutOrStdout()).Run()
		},
	}
}

// stockroom migrate:rollback
func newMigrateRollbackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate:rollback",
		Short: "Roll back the last batch of migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			done, err := bootDB()
			if err != nil {
				return err
			}
			defer done()
			return migration.New(database.DB).WithOutput(cmd.OutOrStdout()).Rollback()
		},
	}
}

// stockroom migrate:status
func newMigrateStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate:status",
		Short: "Show the status of each migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			done, err := bootDB()
			if err != nil {
				return err
			}
			defer done()
			return migration.New(database.DB).WithOutput(cmd.OutOrStdout()).Status()
		},
	}
}

// stockroom seed
func newSeedCmd(a *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Fill an empty catalog with the demo products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := a.boot(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Running seeders…")
			return seeders.RunAll(cmd.Context(), k.Store, cmd.OutOrStdout())
		},
	}
}
