package util

import (
	"fmt"
	"strings"

	"github.com/ariel-frischer/updatecheck"
	"github.com/ariel-frischer/updatecheck/internal/cli/shared"
	"github.com/ariel-frischer/updatecheck/internal/config"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Output formats accepted by --output.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// loadConfig reads config files and the environment. The --config flag is
// inherited from the root command and may be absent when a command runs alone.
func loadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// newLogger returns a debug logger on stderr when --debug is set.
func newLogger(cmd *cobra.Command) zerolog.Logger {
	debug, _ := cmd.Flags().GetBool("debug")
	return shared.NewLogger(cmd.ErrOrStderr(), debug)
}

// newClient builds an update check client from cfg.
func newClient(cfg *config.Configuration, logger zerolog.Logger) *updatecheck.Client {
	opts := []updatecheck.Option{
		updatecheck.WithURL(cfg.URL),
		updatecheck.WithTimeout(cfg.Timeout),
		updatecheck.WithExpiry(cfg.CacheExpiry),
		updatecheck.WithLogger(logger),
	}
	if cfg.NoCache {
		opts = append(opts, updatecheck.WithoutPersistence())
	} else {
		opts = append(opts, updatecheck.WithCacheFile(cfg.CacheFile))
	}
	return updatecheck.New(opts...)
}

// validateOutput checks an --output value.
func validateOutput(format string) error {
	switch format {
	case OutputText, OutputJSON, OutputYAML:
		return nil
	default:
		return shared.NewUsageError("invalid output format %q (use %s)",
			format, strings.Join([]string{OutputText, OutputJSON, OutputYAML}, ", "))
	}
}
