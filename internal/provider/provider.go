// Package provider implements lookups against external scholarly metadata
// services. Each provider performs a single search per citation and reports
// whether the first hit's title matches.
package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultTimeout is the default HTTP request timeout for provider calls.
	DefaultTimeout = 30 * time.Second

	// RateLimit is the per-provider request rate in requests per second.
	// Both OpenAlex and CrossRef document ~10 req/s for anonymous clients.
	RateLimit = 10.0
)

// Common errors returned by provider HTTP plumbing. They never escape a
// Lookup call; they surface only as the Error field of a Result.
var (
	// ErrNetworkError indicates a transport-level failure.
	ErrNetworkError = errors.New("network error")

	// ErrHTTPStatus indicates a non-success HTTP response.
	ErrHTTPStatus = errors.New("unexpected HTTP status")

	// ErrInvalidResponse indicates a response body that could not be decoded.
	ErrInvalidResponse = errors.New("invalid response")
)

// Result is the outcome of one provider lookup for one citation.
// Matched is only meaningful when Found is true and Errored is false.
type Result struct {
	Provider string `json:"provider"`
	Found    bool   `json:"found"`
	Matched  bool   `json:"matched"`
	Title    string `json:"title,omitempty"`
	Year     int    `json:"year,omitempty"`
	URL      string `json:"url,omitempty"`
	Errored  bool   `json:"errored,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Provider is a metadata service that can be queried for a citation.
// Lookup performs exactly one network call and never fails: transport and
// decoding errors are folded into the returned Result.
type Provider interface {
	Name() string
	Lookup(ctx context.Context, query string) Result
}

// Option configures a provider client.
type Option func(*client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *client) {
		c.baseURL = url
	}
}

// client holds the HTTP plumbing shared by all provider variants.
type client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
}

func newClient(baseURL string, opts ...Option) client {
	c := client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    baseURL,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// getJSON performs a rate-limited GET and decodes the JSON response into v.
func (c *client) getJSON(ctx context.Context, url string, v any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %d", ErrHTTPStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading body: %v", ErrNetworkError, err)
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	return nil
}

// errorResult builds the Result for a failed lookup.
func errorResult(name string, err error) Result {
	return Result{Provider: name, Errored: true, Error: err.Error()}
}

// notFoundResult builds the Result for a lookup that returned no records.
func notFoundResult(name string) Result {
	return Result{Provider: name}
}
