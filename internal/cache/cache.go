// Package cache wraps an update.Querier with a per-process memory cache that
// is seeded from, and written back to, the shared on-disk cache.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/ariel-frischer/updatecheck/internal/state"
	"github.com/ariel-frischer/updatecheck/internal/update"
	"github.com/rs/zerolog"
)

// DefaultExpiry is how long a cached outcome is trusted.
const DefaultExpiry = time.Hour

// CachingChecker answers checks from memory while they are fresh and asks its
// Querier otherwise. Every fresh answer is merged with the on-disk cache and
// written back, so sibling processes benefit from it.
type CachingChecker struct {
	querier update.Querier
	store   *state.CacheStore
	expiry  time.Duration
	now     func() time.Time
	logger  zerolog.Logger

	mu      sync.Mutex
	entries state.Entries
	seeded  bool
}

// Option configures a CachingChecker.
type Option func(*CachingChecker)

// WithExpiry sets how long cached outcomes stay fresh. Zero disables memory hits.
func WithExpiry(d time.Duration) Option {
	return func(c *CachingChecker) {
		c.expiry = d
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(c *CachingChecker) {
		c.now = now
	}
}

// WithLogger sets the logger used for swallowed cache failures.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *CachingChecker) {
		c.logger = logger
	}
}

// New returns a CachingChecker in front of querier. A nil store keeps the
// cache in memory only.
func New(querier update.Querier, store *state.CacheStore, opts ...Option) *CachingChecker {
	c := &CachingChecker{
		querier: querier,
		store:   store,
		expiry:  DefaultExpiry,
		now:     time.Now,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check returns the cached outcome for the package version if it is younger
// than the expiry window, and otherwise queries, caches and persists a fresh one.
func (c *CachingChecker) Check(ctx context.Context, packageName, packageVersion string, extra map[string]any) *update.Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seed()

	key := state.CacheKey{PackageName: packageName, PackageVersion: packageVersion}
	if entry, ok := c.entries[key]; ok && c.now().Sub(entry.Timestamp) < c.expiry {
		c.logger.Debug().Str("package", packageName).Str("version", packageVersion).Msg("check cache hit")
		return entry.Result
	}

	result := c.querier.Check(ctx, packageName, packageVersion, extra)
	c.entries[key] = state.CacheEntry{Timestamp: c.now(), Result: result}
	c.persist()
	return result
}

// Entries returns a snapshot of the memory cache, seeding it first if needed.
func (c *CachingChecker) Entries() state.Entries {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seed()
	return c.entries.Clone()
}

// seed loads the on-disk cache once per CachingChecker.
func (c *CachingChecker) seed() {
	if c.seeded {
		return
	}
	c.entries = c.store.MergeInto(c.entries)
	c.seeded = true
}

// persist picks up entries sibling processes wrote since the last merge, then
// overwrites the file with the merged view. Failures only cost other processes
// a cache hit, so they are logged and dropped.
func (c *CachingChecker) persist() {
	c.entries = c.store.MergeInto(c.entries)
	if err := c.store.Save(c.entries); err != nil {
		c.logger.Debug().Err(err).Str("path", c.store.Path()).Msg("saving check cache")
	}
}
