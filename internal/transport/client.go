package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout applies when Options.Timeout is zero.
const DefaultTimeout = 60 * time.Second

// ErrBaseURLRequired is returned by New when no API base URL is configured.
var ErrBaseURLRequired = errors.New("api base url is required")

// Options configures a Client.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client issues JSON requests against the dashboard API and attaches the
// ambient bearer credential to every request.
type Client struct {
	baseURL string
	http    *http.Client

	mu     sync.RWMutex
	bearer string
}

// New creates a transport client for the given API base URL.
func New(opts Options) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		return nil, ErrBaseURLRequired
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{baseURL: base, http: httpClient}, nil
}

// BaseURL returns the normalized API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetBearer installs the credential attached to subsequent requests.
func (c *Client) SetBearer(token string) {
	c.mu.Lock()
	c.bearer = token
	c.mu.Unlock()
}

// ClearBearer removes the ambient credential.
func (c *Client) ClearBearer() {
	c.SetBearer("")
}

// Bearer returns the credential currently attached to requests.
func (c *Client) Bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.bearer
}

// Do sends a request with an optional JSON body and decodes a JSON response
// into out when out is non-nil. Non-2xx responses yield *APIError.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp.StatusCode, raw)
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}
