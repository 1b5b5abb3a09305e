package cmd

import (
	"github.com/spf13/cobra"

	"productimport.GO/core/registry"
)

// Register adds a subcommand. Call from init(); panics once Apply ran.
func Register(c *cobra.Command) {
	if err := registry.Append(registry.GlobalRegistry, registry.KeyRegistryCmd, c); err != nil {
		panic("cmd: " + err.Error())
	}
}

// Apply attaches the registered commands to the root command.
func Apply() {
	rootCmd.AddCommand(registry.Seal[*cobra.Command](registry.GlobalRegistry, registry.KeyRegistryCmd)...)
}
