package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "UPDATECHECK_"

// Configuration represents the updatecheck settings
type Configuration struct {
	URL         string        `koanf:"url" validate:"required,url"`
	Timeout     time.Duration `koanf:"timeout" validate:"min=1ms,max=1m"`
	CacheFile   string        `koanf:"cache_file"`
	CacheExpiry time.Duration `koanf:"cache_expiry" validate:"min=0"`
	NoCache     bool          `koanf:"no_cache"` // Keep the check cache in memory only
}

// GlobalConfigPath returns the per-user config file location.
func GlobalConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".updatecheck", "config.json"), nil
}

// Load loads configuration from global, local, and environment sources
// Priority: Environment variables > Local config > Global config > Defaults
func Load(localConfigPath string) (*Configuration, error) {
	k := koanf.New(".")

	// Apply defaults first
	for key, value := range GetDefaults() {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("failed to set default %s: %w", key, err)
		}
	}

	if globalPath, err := GlobalConfigPath(); err == nil {
		if _, err := os.Stat(globalPath); err == nil {
			if err := k.Load(file.Provider(globalPath), json.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load global config: %w", err)
			}
		}
	}

	// An explicitly named local config must exist.
	if localConfigPath != "" {
		if _, err := os.Stat(localConfigPath); err != nil {
			return nil, fmt.Errorf("failed to read local config: %w", err)
		}
		if err := k.Load(file.Provider(localConfigPath), json.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load local config: %w", err)
		}
	}

	// Override with environment variables (highest priority)
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	cfg.CacheFile = expandHomePath(cfg.CacheFile)

	return &cfg, nil
}

// Validate checks field constraints on cfg.
func Validate(cfg *Configuration) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// envTransform converts environment variable names to config keys
// Example: UPDATECHECK_CACHE_EXPIRY -> cache_expiry
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
