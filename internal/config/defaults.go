package config

import (
	"github.com/ariel-frischer/updatecheck/internal/cache"
	"github.com/ariel-frischer/updatecheck/internal/update"
)

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"url":          update.DefaultURL,
		"timeout":      update.DefaultHTTPTimeout,
		"cache_file":   "",
		"cache_expiry": cache.DefaultExpiry,
		"no_cache":     false,
	}
}
