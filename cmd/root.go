package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "productimport",
	Short:         "Bulk product import into a Magento 2 catalog",
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute applies registered commands and runs the root command.
func Execute() {
	Apply()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
