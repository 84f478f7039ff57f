package util

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/ariel-frischer/updatecheck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleEntries() []updatecheck.CachedEntry {
	checked := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)
	return []updatecheck.CachedEntry{
		{PackageName: "tool", PackageVersion: "1.0", CheckedAt: checked},
		{
			PackageName:    "praw",
			PackageVersion: "3.0",
			CheckedAt:      checked,
			Result:         &updatecheck.Result{PackageName: "praw", RunningVersion: "3.0", AvailableVersion: "3.1"},
		},
	}
}

func TestFormatCacheEntries(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		entries  []updatecheck.CachedEntry
		format   string
		plain    bool
		wantText string
		wantSub  []string
	}{
		"plain sorted": {
			entries:  sampleEntries(),
			format:   OutputText,
			plain:    true,
			wantText: "praw\t3.0\t2024-03-20T12:00:00Z\t3.1\ntool\t1.0\t2024-03-20T12:00:00Z\t-\n",
		},
		"plain empty": {
			entries:  nil,
			format:   OutputText,
			plain:    true,
			wantText: "",
		},
		"pretty empty": {
			entries: nil,
			format:  OutputText,
			wantSub: []string{"No cached checks"},
		},
		"pretty": {
			entries: sampleEntries(),
			format:  OutputText,
			wantSub: []string{"praw 3.0", "3.1 available", "tool 1.0", "up to date", "checked"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := formatCacheEntries(tt.entries, tt.format, tt.plain)
			require.NoError(t, err)
			if tt.wantSub == nil {
				assert.Equal(t, tt.wantText, got)
			}
			for _, want := range tt.wantSub {
				assert.Contains(t, got, want)
			}
		})
	}
}

func TestFormatCacheEntries_Structured(t *testing.T) {
	t.Parallel()

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		got, err := formatCacheEntries(sampleEntries(), OutputJSON, false)
		require.NoError(t, err)

		var decoded []map[string]any
		require.NoError(t, json.Unmarshal([]byte(got), &decoded))
		require.Len(t, decoded, 2)
		assert.Equal(t, "praw", decoded[0]["package_name"])
		assert.Nil(t, decoded[1]["result"])
	})

	t.Run("yaml", func(t *testing.T) {
		t.Parallel()

		got, err := formatCacheEntries(sampleEntries(), OutputYAML, false)
		require.NoError(t, err)

		var decoded []map[string]any
		require.NoError(t, yaml.Unmarshal([]byte(got), &decoded))
		require.Len(t, decoded, 2)
		assert.Equal(t, "tool", decoded[1]["package_name"])
	})
}

func TestFormatClearResult(t *testing.T) {
	t.Parallel()

	assert.Contains(t, formatClearResult("/tmp/cache.json", true), "Removed /tmp/cache.json")

	missing := formatClearResult("/tmp/cache.json", false)
	assert.Contains(t, missing, "No cache file at /tmp/cache.json")
	assert.NotContains(t, missing, "Removed")
}

func TestCacheCommand_Subcommands(t *testing.T) {
	t.Parallel()

	names := make([]string, 0, len(cacheCmd.Commands()))
	for _, sub := range cacheCmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"show", "clear", "path"}, names)
}
