package updatecheck

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/ariel-frischer/updatecheck/internal/cache"
	"github.com/ariel-frischer/updatecheck/internal/state"
	"github.com/ariel-frischer/updatecheck/internal/update"
	"github.com/rs/zerolog"
)

// DefaultURL is the registry endpoint used when none is configured.
const DefaultURL = update.DefaultURL

// Result describes an available update. Checks return nil when the running
// version is current or the check failed.
type Result = update.Result

// Client checks packages for updates through a shared cache.
type Client struct {
	checker *update.Checker
	store   *state.CacheStore
	cache   *cache.CachingChecker
}

// New builds a Client. Without options it queries DefaultURL with a one
// second timeout and shares answers through the default cache file.
func New(opts ...Option) *Client {
	o := clientOptions{
		persist: true,
		expiry:  cache.DefaultExpiry,
		logger:  zerolog.Nop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}

	checkerOpts := []update.CheckerOption{update.WithLogger(o.logger)}
	if o.httpClient != nil {
		checkerOpts = append(checkerOpts, update.WithHTTPClient(o.httpClient))
	}
	if o.timeout > 0 {
		checkerOpts = append(checkerOpts, update.WithTimeout(o.timeout))
	}
	checker := update.NewChecker(o.url, checkerOpts...)

	var store *state.CacheStore
	if o.persist {
		store = state.NewCacheStore(o.cacheFile, o.logger)
	}

	return &Client{
		checker: checker,
		store:   store,
		cache: cache.New(checker, store,
			cache.WithExpiry(o.expiry),
			cache.WithClock(o.now),
			cache.WithLogger(o.logger),
		),
	}
}

// Check reports whether a version newer than packageVersion is available.
// extra is sent to the registry alongside the package and environment fields.
func (c *Client) Check(ctx context.Context, packageName, packageVersion string, extra map[string]any) *Result {
	return c.cache.Check(ctx, packageName, packageVersion, extra)
}

// UpdateCheck writes the update message to w if a newer version is available.
func (c *Client) UpdateCheck(ctx context.Context, w io.Writer, packageName, packageVersion string, extra map[string]any) {
	if r := c.Check(ctx, packageName, packageVersion, extra); r != nil {
		fmt.Fprintln(w, r)
	}
}

// URL returns the registry endpoint.
func (c *Client) URL() string {
	return c.checker.URL()
}

// CachePath returns the shared cache file, or "" when the cache is memory only.
func (c *Client) CachePath() string {
	return c.store.Path()
}

// CachedEntries returns a snapshot of the cached answers, including those
// read from the shared file.
func (c *Client) CachedEntries() []CachedEntry {
	entries := c.cache.Entries()
	out := make([]CachedEntry, 0, len(entries))
	for key, entry := range entries {
		out = append(out, CachedEntry{
			PackageName:    key.PackageName,
			PackageVersion: key.PackageVersion,
			CheckedAt:      entry.Timestamp,
			Result:         entry.Result,
		})
	}
	return out
}

// ClearCache removes the shared cache file and reports whether it existed.
// Answers already in memory are kept.
func (c *Client) ClearCache() (bool, error) {
	return c.store.Clear()
}

// CachedEntry is one cached answer.
type CachedEntry struct {
	PackageName    string    `json:"package_name" yaml:"package_name"`
	PackageVersion string    `json:"package_version" yaml:"package_version"`
	CheckedAt      time.Time `json:"checked_at" yaml:"checked_at"`
	Result         *Result   `json:"result" yaml:"result"`
}

var (
	defaultMu      sync.Mutex
	defaultClients = map[string]*Client{}
)

// defaultClient returns the process-wide client for url, creating it on first use.
func defaultClient(url string) *Client {
	if url == "" {
		url = DefaultURL
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()

	c, ok := defaultClients[url]
	if !ok {
		c = New(WithURL(url))
		defaultClients[url] = c
	}
	return c
}

// Check uses a process-wide Client for url (DefaultURL when empty).
// Programs that check more than once should build their own Client with New.
func Check(ctx context.Context, packageName, packageVersion, url string, extra map[string]any) *Result {
	return defaultClient(url).Check(ctx, packageName, packageVersion, extra)
}

// UpdateCheck prints the update message to stdout if a newer version is available.
func UpdateCheck(ctx context.Context, packageName, packageVersion, url string, extra map[string]any) {
	defaultClient(url).UpdateCheck(ctx, os.Stdout, packageName, packageVersion, extra)
}
