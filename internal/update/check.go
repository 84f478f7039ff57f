package update

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultURL is the version registry endpoint queried by default.
	DefaultURL = "http://update_checker.bryceboe.com/check"

	// DefaultHTTPTimeout bounds the single request made per check.
	DefaultHTTPTimeout = 1 * time.Second

	// maxResponseBytes caps how much of a response body is decoded.
	maxResponseBytes = 1 << 20
)

// Error variables for specific failure conditions. Check never returns them;
// they surface through Query and the debug log.
var (
	ErrRequestFailed     = errors.New("request failed")
	ErrUnexpectedStatus  = errors.New("unexpected status code")
	ErrMalformedResponse = errors.New("malformed response")
)

// Reserved payload fields. They override caller supplied fields of the same name.
const (
	FieldPackageName    = "package_name"
	FieldPackageVersion = "package_version"
	FieldGoVersion      = "go_version"
	FieldPlatform       = "platform"
)

// Querier checks a single package version against a registry.
type Querier interface {
	Check(ctx context.Context, packageName, packageVersion string, extra map[string]any) *Result
}

// checkResponse is the registry's reply.
type checkResponse struct {
	Success bool `json:"success"`
	Data    *struct {
		Version    string `json:"version"`
		UploadTime string `json:"upload_time"`
	} `json:"data"`
}

// Checker queries the version registry for newer package versions.
type Checker struct {
	httpClient *http.Client
	timeout    time.Duration
	url        string
	logger     zerolog.Logger
}

// CheckerOption configures a Checker.
type CheckerOption func(*Checker)

// WithHTTPClient sets a custom HTTP client for the checker. The checker uses a
// copy, so the caller's client is never modified.
func WithHTTPClient(client *http.Client) CheckerOption {
	return func(c *Checker) {
		c.httpClient = client
	}
}

// WithTimeout bounds each request. Zero keeps the client's own timeout, or
// DefaultHTTPTimeout when the client has none.
func WithTimeout(timeout time.Duration) CheckerOption {
	return func(c *Checker) {
		c.timeout = timeout
	}
}

// WithLogger sets the logger used for failed checks.
func WithLogger(logger zerolog.Logger) CheckerOption {
	return func(c *Checker) {
		c.logger = logger
	}
}

// NewChecker creates a checker for the given endpoint. An empty url selects DefaultURL.
func NewChecker(url string, opts ...CheckerOption) *Checker {
	if url == "" {
		url = DefaultURL
	}
	c := &Checker{
		url:    url,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	client := http.Client{}
	if c.httpClient != nil {
		client = *c.httpClient
	}
	switch {
	case c.timeout > 0:
		client.Timeout = c.timeout
	case client.Timeout <= 0:
		client.Timeout = DefaultHTTPTimeout
	}
	c.httpClient = &client
	return c
}

// URL returns the endpoint this checker queries.
func (c *Checker) URL() string {
	return c.url
}

// Check returns a Result if the registry reports a version newer than
// packageVersion. Any failure is logged and reported as no update.
func (c *Checker) Check(ctx context.Context, packageName, packageVersion string, extra map[string]any) *Result {
	result, err := c.Query(ctx, packageName, packageVersion, extra)
	if err != nil {
		c.logger.Debug().Err(err).
			Str("package", packageName).
			Str("version", packageVersion).
			Str("url", c.url).
			Msg("update check failed")
		return nil
	}
	return result
}

// Query performs the check and reports failures as errors. A nil Result with
// a nil error means the running version is current.
func (c *Checker) Query(ctx context.Context, packageName, packageVersion string, extra map[string]any) (*Result, error) {
	resp, err := c.send(ctx, buildPayload(packageName, packageVersion, extra))
	if err != nil {
		return nil, err
	}

	if !resp.Success {
		return nil, nil
	}
	if resp.Data == nil || resp.Data.Version == "" {
		return nil, fmt.Errorf("%w: missing data.version", ErrMalformedResponse)
	}

	cmp, err := CompareVersions(packageVersion, resp.Data.Version)
	if err != nil {
		return nil, fmt.Errorf("comparing versions: %w", err)
	}
	if cmp >= 0 {
		return nil, nil
	}

	result, err := NewResult(packageName, packageVersion, resp.Data.Version, resp.Data.UploadTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return result, nil
}

// send PUTs the payload and decodes the reply.
func (c *Checker) send(ctx context.Context, payload map[string]any) (*checkResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "updatecheck")
	req.Close = true

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var decoded checkResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return &decoded, nil
}

// buildPayload merges caller fields with the package and environment fields.
func buildPayload(packageName, packageVersion string, extra map[string]any) map[string]any {
	payload := make(map[string]any, len(extra)+4)
	for k, v := range extra {
		payload[k] = v
	}
	payload[FieldPackageName] = packageName
	payload[FieldPackageVersion] = packageVersion
	payload[FieldGoVersion] = runtime.Version()
	payload[FieldPlatform] = Platform()
	return payload
}

// Platform describes the running operating system and architecture.
func Platform() string {
	return runtime.GOOS + "-" + runtime.GOARCH
}
