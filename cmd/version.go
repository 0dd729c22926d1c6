package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version set at build time with -ldflags "-X ledgerapi/cmd.Version=..."
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "ledgerapi %s\n", Version)
	},
}
