// Package cmd holds the ledgerapi command line
package cmd

import (
	"fmt"
	"os"

	"ledgerapi/config"
	"ledgerapi/logging"

	"github.com/spf13/cobra"
)

var (
	configFile string
	cfg        *config.Config

	rootCmd = &cobra.Command{
		Use:   "ledgerapi",
		Short: "Personal finance ledger API",
		Long: `ledgerapi serves a multi-user personal finance ledger over HTTP:
accounts, income and expense transactions, transfers, debts, budgets and analytics.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == versionCmd.Name() {
				return nil
			}
			loaded, err := config.LoadConfig(configFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			cfg = loaded
			logging.Init(cfg.Log.Level, cfg.Log.Format)
			return nil
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "external config file (merged over the built-in defaults)")
	rootCmd.AddCommand(serveCmd, migrateCmd, remindCmd, versionCmd)
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logging.Log.Error(err)
		os.Exit(1)
	}
}
