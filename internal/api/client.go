// Package api provides the shared HTTP JSON transport for the remote
// learning platform endpoints. All clients are constructed with an explicit
// base URL; nothing here reads the environment.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/p-n-ai/pai-study/internal/apierror"
)

const defaultTimeout = 30 * time.Second

// Client posts and fetches JSON payloads against a single base URL.
type Client struct {
	baseURL string
	client  *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

// New creates a transport client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// PostJSON sends in as a JSON body to path and decodes the response into out.
// Non-2xx responses become classified apierror values; out may be nil when
// the caller does not need the response body.
func (c *Client) PostJSON(ctx context.Context, op, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(op, req, out)
}

// GetJSON fetches path and decodes the response into out.
func (c *Client) GetJSON(ctx context.Context, op, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	return c.do(op, req, out)
}

// PutJSON sends in as a JSON body to path with PUT semantics.
func (c *Client) PutJSON(ctx context.Context, op, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(op, req, out)
}

func (c *Client) do(op string, req *http.Request, out any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return apierror.Network(op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return apierror.Network(op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apierror.FromStatus(op, resp.StatusCode, string(respBody))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
