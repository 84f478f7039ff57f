// updatecheck - Cached package update checks
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/updatecheck

// Package cli provides the Cobra-based command line for updatecheck. It wires
// the check, cache, and version commands to a root command carrying the
// global --config and --debug flags.
package cli

import (
	"fmt"
	"os"

	"github.com/ariel-frischer/updatecheck/internal/cli/shared"
	"github.com/ariel-frischer/updatecheck/internal/cli/util"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Command group IDs for organizing help output (re-exported from shared)
const (
	GroupChecks = shared.GroupChecks
	GroupCache  = shared.GroupCache
	GroupInfo   = shared.GroupInfo
)

var rootCmd = &cobra.Command{
	Use:   "updatecheck",
	Short: "Check whether a newer version of a package is available",
	Long: `updatecheck asks a version registry whether a newer version of a package
exists and caches the answer for an hour, shared between every process on the
machine.

Source: https://github.com/ariel-frischer/updatecheck`,
	Example: `  # Check a package
  updatecheck check praw 3.0.0

  # Use a different registry
  updatecheck check mytool 1.4.0 --url https://registry.example.com/check

  # Inspect the shared cache
  updatecheck cache show`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Errors are printed to stderr unless they only
// carry an exit code.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !shared.IsSilent(err) {
		red := color.New(color.FgRed).SprintFunc()
		fmt.Fprintf(os.Stderr, "%s %v\n", red("Error:"), err)
	}
	return err
}

func init() {
	// Define command groups in display order
	rootCmd.AddGroup(&cobra.Group{ID: GroupChecks, Title: "Checks:"})
	rootCmd.AddGroup(&cobra.Group{ID: GroupCache, Title: "Cache:"})
	rootCmd.AddGroup(&cobra.Group{ID: GroupInfo, Title: "Info:"})

	rootCmd.SetHelpCommandGroupID(GroupInfo)
	rootCmd.SetCompletionCommandGroupID(GroupInfo)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to a JSON config file (applied over ~/.updatecheck/config.json)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")

	util.Register(rootCmd)
}
