// Package util provides the updatecheck CLI commands.
// Includes: check, cache, version
package util

import (
	"github.com/spf13/cobra"
)

// Register adds all commands to the root command.
// This function is called from the root CLI package during initialization.
func Register(rootCmd *cobra.Command) {
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)
}
