// Package state provides persistent state shared by every updatecheck process
// on the machine. It holds the on-disk check cache: a single JSON document in
// the temp directory that processes read and overwrite without locking.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ariel-frischer/updatecheck/internal/update"
	"github.com/rs/zerolog"
)

const (
	// CacheFileName is the name of the shared cache file in the temp directory.
	CacheFileName = "update_checker_cache.json"

	// cacheFormat is bumped whenever the file layout changes. Files written
	// with another format are ignored.
	cacheFormat = 1
)

// CacheKey identifies a cached check.
type CacheKey struct {
	PackageName    string
	PackageVersion string
}

// CacheEntry is a check outcome and the time it was produced.
// A nil Result records that no update was available.
type CacheEntry struct {
	Timestamp time.Time
	Result    *update.Result
}

// Entries maps cache keys to their most recent outcome.
type Entries map[CacheKey]CacheEntry

// Clone returns a copy of e that can be modified independently.
func (e Entries) Clone() Entries {
	out := make(Entries, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// cacheFile is the on-disk layout.
type cacheFile struct {
	Format  int           `json:"format"`
	Entries []cacheRecord `json:"entries"`
}

type cacheRecord struct {
	PackageName    string         `json:"package_name"`
	PackageVersion string         `json:"package_version"`
	Timestamp      time.Time      `json:"timestamp"`
	Result         *update.Result `json:"result"`
}

// CacheStore reads and writes the shared cache file. A nil *CacheStore is a
// valid store that never persists anything.
type CacheStore struct {
	path   string
	logger zerolog.Logger
}

// DefaultCachePath returns the cache file location in the OS temp directory.
func DefaultCachePath() string {
	return filepath.Join(os.TempDir(), CacheFileName)
}

// NewCacheStore returns a store backed by path. An empty path selects DefaultCachePath.
func NewCacheStore(path string, logger zerolog.Logger) *CacheStore {
	if path == "" {
		path = DefaultCachePath()
	}
	return &CacheStore{path: path, logger: logger}
}

// Path returns the cache file location, or "" for a nil store.
func (s *CacheStore) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Load reads the cache file. A missing, unreadable or corrupt file yields an
// empty map; Load never fails.
func (s *CacheStore) Load() Entries {
	entries := make(Entries)
	if s == nil {
		return entries
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Debug().Err(err).Str("path", s.path).Msg("reading check cache")
		}
		return entries
	}

	var file cacheFile
	if err := json.Unmarshal(data, &file); err != nil {
		s.logger.Debug().Err(err).Str("path", s.path).Msg("ignoring corrupt check cache")
		return entries
	}
	if file.Format != cacheFormat {
		s.logger.Debug().Int("format", file.Format).Str("path", s.path).Msg("ignoring check cache with unknown format")
		return entries
	}

	for _, rec := range file.Entries {
		key := CacheKey{PackageName: rec.PackageName, PackageVersion: rec.PackageVersion}
		// Duplicate keys can only come from a hand-edited file; keep the newest.
		if cur, ok := entries[key]; ok && !rec.Timestamp.After(cur.Timestamp) {
			continue
		}
		entries[key] = CacheEntry{Timestamp: rec.Timestamp, Result: rec.Result}
	}
	return entries
}

// Save replaces the cache file with entries. The data is written to a temp
// file in the same directory and renamed over the cache file, so readers see
// either the old or the new document. Concurrent writers may still lose each
// other's updates.
func (s *CacheStore) Save(entries Entries) error {
	if s == nil {
		return nil
	}

	file := cacheFile{
		Format:  cacheFormat,
		Entries: make([]cacheRecord, 0, len(entries)),
	}
	for key, entry := range entries {
		file.Entries = append(file.Entries, cacheRecord{
			PackageName:    key.PackageName,
			PackageVersion: key.PackageVersion,
			Timestamp:      entry.Timestamp,
			Result:         entry.Result,
		})
	}

	data, err := json.Marshal(file)
	if err != nil {
		return fmt.Errorf("marshaling check cache: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	// CreateTemp opens files 0600; other users on the machine read this file too.
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		s.logger.Debug().Err(err).Str("path", tmpPath).Msg("widening cache file permissions")
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// MergeInto copies every on-disk entry that local lacks or holds an older
// version of into local, and returns local. Newer local entries are kept.
func (s *CacheStore) MergeInto(local Entries) Entries {
	if local == nil {
		local = make(Entries)
	}
	for key, disk := range s.Load() {
		if cur, ok := local[key]; !ok || disk.Timestamp.After(cur.Timestamp) {
			local[key] = disk
		}
	}
	return local
}

// Clear removes the cache file and reports whether there was one to remove.
// A missing file is not an error.
func (s *CacheStore) Clear() (bool, error) {
	if s == nil {
		return false, nil
	}
	if err := os.Remove(s.path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("removing check cache: %w", err)
	}
	return true, nil
}
