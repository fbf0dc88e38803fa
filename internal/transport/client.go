// Package transport is the HTTP layer shared by the Atlas and Egeria
// clients: authentication, JSON requests and status classification.
package transport

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/agentstation/glossync/pkg/constants"
	"github.com/agentstation/glossync/pkg/errors"
	"github.com/agentstation/glossync/pkg/logging"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
var DefaultHTTPTimeout = constants.DefaultHTTPTimeout

// Client provides HTTP client functionality with authentication.
type Client struct {
	http    *http.Client
	auth    Authenticator
	baseURL string
	service string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// New creates a new transport client for the service rooted at baseURL.
// The service name ("atlas", "egeria") is recorded on every error.
func New(service, baseURL string, auth Authenticator, opts ...Option) *Client {
	if auth == nil {
		auth = &NoAuth{}
	}
	c := &Client{
		http:    &http.Client{Timeout: DefaultHTTPTimeout},
		auth:    auth,
		baseURL: strings.TrimRight(baseURL, "/"),
		service: service,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Service returns the service name.
func (c *Client) Service() string { return c.service }

// BaseURL returns the base URL without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// Do performs an HTTP request with authentication applied. Failures to
// reach the server are returned as transport-kind errors.
func (c *Client) Do(ctx context.Context, req *http.Request, operation string) (*http.Response, error) {
	c.auth.Apply(req)

	// Set common headers
	req.Header.Set("Accept", "application/json")
	if req.Method == http.MethodPost || req.Method == http.MethodPut || req.Method == http.MethodPatch {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req.WithContext(ctx))
	if err != nil {
		return nil, errors.NewServiceError(c.service, operation, errors.KindTransport, "", err)
	}
	logging.FromContext(ctx).Trace().
		Str("service", c.service).
		Str("method", req.Method).
		Str("url", req.URL.Redacted()).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("HTTP request")
	return resp, nil
}
