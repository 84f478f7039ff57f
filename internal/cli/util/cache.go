package util

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ariel-frischer/updatecheck"
	"github.com/ariel-frischer/updatecheck/internal/cli/shared"
	"github.com/ariel-frischer/updatecheck/internal/update"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	cacheShowPlain  bool
	cacheShowOutput string
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the shared check cache",
	Long: `Inspect or clear the shared check cache.

Every process on the machine that checks for updates shares one cache file.
The location comes from cache_file in the config, or UPDATECHECK_CACHE_FILE,
and defaults to the system temp directory.`,
}

var cacheShowCmd = &cobra.Command{
	Use:   "show",
	Short: "List cached check results",
	Example: `  # List cached checks
  updatecheck cache show

  # Tab separated output (for scripts)
  updatecheck cache show --plain`,
	Args: cobra.NoArgs,
	RunE: runCacheShow,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the shared cache file",
	Args:  cobra.NoArgs,
	RunE:  runCacheClear,
}

var cachePathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the shared cache file location",
	Args:  cobra.NoArgs,
	RunE:  runCachePath,
}

func init() {
	cacheCmd.GroupID = shared.GroupCache
	cacheShowCmd.Flags().BoolVar(&cacheShowPlain, "plain", false, "Tab separated output without formatting")
	cacheShowCmd.Flags().StringVarP(&cacheShowOutput, "output", "o", OutputText, "Output format: text, json, yaml")

	cacheCmd.AddCommand(cacheShowCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cachePathCmd)
}

// newCacheClient builds a client bound to the configured cache file. The
// no_cache setting is ignored here since these commands operate on the file.
func newCacheClient(cmd *cobra.Command) (*updatecheck.Client, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	cfg.NoCache = false
	return newClient(cfg, newLogger(cmd)), nil
}

func runCacheShow(cmd *cobra.Command, _ []string) error {
	if err := validateOutput(cacheShowOutput); err != nil {
		return err
	}
	client, err := newCacheClient(cmd)
	if err != nil {
		return err
	}

	output, err := formatCacheEntries(client.CachedEntries(), cacheShowOutput, cacheShowPlain)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), output)
	return nil
}

func runCacheClear(cmd *cobra.Command, _ []string) error {
	client, err := newCacheClient(cmd)
	if err != nil {
		return err
	}
	removed, err := client.ClearCache()
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), formatClearResult(client.CachePath(), removed))
	return nil
}

func runCachePath(cmd *cobra.Command, _ []string) error {
	client, err := newCacheClient(cmd)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), client.CachePath())
	return nil
}

// formatClearResult reports the outcome of cache clear.
func formatClearResult(path string, removed bool) string {
	if !removed {
		dim := color.New(color.Faint).SprintFunc()
		return dim("No cache file at "+path) + "\n"
	}
	green := color.New(color.FgGreen).SprintFunc()
	return fmt.Sprintf("%s Removed %s\n", green("✓"), path)
}

// sortEntries orders entries by package name, then version.
func sortEntries(entries []updatecheck.CachedEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].PackageName != entries[j].PackageName {
			return entries[i].PackageName < entries[j].PackageName
		}
		return entries[i].PackageVersion < entries[j].PackageVersion
	})
}

// formatCacheEntries renders cached entries in the requested format.
func formatCacheEntries(entries []updatecheck.CachedEntry, format string, plain bool) (string, error) {
	sortEntries(entries)

	switch format {
	case OutputJSON:
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encoding cache entries: %w", err)
		}
		return string(data) + "\n", nil
	case OutputYAML:
		data, err := yaml.Marshal(entries)
		if err != nil {
			return "", fmt.Errorf("encoding cache entries: %w", err)
		}
		return string(data), nil
	}

	if plain {
		var b strings.Builder
		for _, e := range entries {
			latest := "-"
			if e.Result != nil {
				latest = e.Result.AvailableVersion
			}
			fmt.Fprintf(&b, "%s\t%s\t%s\t%s\n",
				e.PackageName, e.PackageVersion, e.CheckedAt.UTC().Format(time.RFC3339), latest)
		}
		return b.String(), nil
	}

	dim := color.New(color.Faint).SprintFunc()
	if len(entries) == 0 {
		return dim("No cached checks") + "\n", nil
	}

	yellow := color.New(color.FgYellow).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	var b strings.Builder
	for _, e := range entries {
		status := green("up to date")
		if e.Result != nil {
			status = yellow(e.Result.AvailableVersion + " available")
		}
		fmt.Fprintf(&b, "%s %s  %s  %s\n",
			e.PackageName, e.PackageVersion, status, dim("checked "+update.PrettyDate(e.CheckedAt)))
	}
	return b.String(), nil
}
