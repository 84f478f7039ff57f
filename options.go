package updatecheck

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	url        string
	timeout    time.Duration
	httpClient *http.Client
	cacheFile  string
	persist    bool
	expiry     time.Duration
	logger     zerolog.Logger
	now        func() time.Time
}

// WithURL sets the registry endpoint. The default is DefaultURL.
func WithURL(url string) Option {
	return func(o *clientOptions) {
		o.url = url
	}
}

// WithTimeout bounds each registry request. The default is one second.
func WithTimeout(d time.Duration) Option {
	return func(o *clientOptions) {
		o.timeout = d
	}
}

// WithHTTPClient sets the HTTP client used for registry requests.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// WithCacheFile sets the shared cache file. The default lives in the OS temp directory.
func WithCacheFile(path string) Option {
	return func(o *clientOptions) {
		o.cacheFile = path
	}
}

// WithoutPersistence keeps the cache in memory only.
func WithoutPersistence() Option {
	return func(o *clientOptions) {
		o.persist = false
	}
}

// WithExpiry sets how long a cached answer is trusted. The default is one hour.
func WithExpiry(d time.Duration) Option {
	return func(o *clientOptions) {
		o.expiry = d
	}
}

// WithLogger receives debug logs for failures that checks swallow.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *clientOptions) {
		o.logger = logger
	}
}

// WithClock overrides the time source used for cache freshness.
func WithClock(now func() time.Time) Option {
	return func(o *clientOptions) {
		o.now = now
	}
}
