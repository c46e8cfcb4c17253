package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the tables and seed the default menu and settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			log := newLogger(cfg, false)
			defer log.Close()

			db, err := openDatabase(cfg, log)
			if err != nil {
				return err
			}
			defer closeDatabase(db)

			fmt.Fprintf(cmd.OutOrStdout(), "Database %s is up to date\n", cfg.Database.Driver)
			return nil
		},
	}
}
