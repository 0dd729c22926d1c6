package cmd

import (
	"ledgerapi/database"
	"ledgerapi/logging"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Init runs the migration
		if err := database.Init(cfg); err != nil {
			return err
		}
		logging.Component("migrate").Infof("schema up to date (%s)", cfg.Database.Driver)
		return nil
	},
}
