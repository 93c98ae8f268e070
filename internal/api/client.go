// Package api wraps the Shield Hub backend HTTP surface: account and auth
// flows, website analysis, and the remote file crypto service. The backend
// owns all scanning and cryptography; this side only shapes requests and
// interprets responses.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/sanghyxuk/shieldhub-cli/internal/config"
	"github.com/sanghyxuk/shieldhub-cli/internal/events"
	"github.com/sanghyxuk/shieldhub-cli/internal/session"
)

const defaultURL = "https://shieldhub.dev"

// maxJSONBody bounds JSON response reads. Binary downloads (decrypted files,
// encrypted archives) use maxFileBody instead.
const (
	maxJSONBody = 1 << 20
	maxFileBody = 256 << 20
)

// Client talks to the Shield Hub backend. The stored session token is
// attached as a Bearer credential when present; privileged calls refuse to
// start without one.
type Client struct {
	baseURL  string
	http     *http.Client
	limiter  *rate.Limiter
	sessions *session.Store
	bus      *events.Bus
}

// New returns a Client configured from cfg, authenticating from sessions and
// announcing credential expiry on bus.
func New(cfg config.ServerConfig, sessions *session.Store, bus *events.Bus) *Client {
	base := strings.TrimRight(cfg.URL, "/")
	if base == "" {
		base = defaultURL
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	rps := cfg.RatePerSecond
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		baseURL:  base,
		http:     &http.Client{Timeout: timeout},
		limiter:  rate.NewLimiter(rate.Limit(rps), 1),
		sessions: sessions,
		bus:      bus,
	}
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// postJSON marshals payload, POSTs it to path, and decodes the response
// into out (skipped when out is nil).
func (c *Client) postJSON(ctx context.Context, path string, payload, out any, privileged bool) error {
	return c.sendJSON(ctx, http.MethodPost, path, payload, out, privileged)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, payload, out any, privileged bool) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(data)
	}
	resp, err := c.do(ctx, method, path, body, "application/json", privileged, maxJSONBody)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp, out); err != nil {
		return &RequestError{Message: "malformed response payload", Err: err}
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any, privileged bool) error {
	return c.sendJSON(ctx, http.MethodGet, path, nil, out, privileged)
}

// do executes one HTTP request and returns the response body.
//
// Privileged requests short-circuit with ErrAuthRequired when no token is
// stored; no network call is made on that path. A 401 response clears the
// session and publishes exactly one Unauthorized event.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, privileged bool, limit int64) ([]byte, error) {
	token := ""
	if c.sessions != nil {
		token = c.sessions.Token()
	}
	if privileged && token == "" {
		return nil, ErrAuthRequired
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &RequestError{Message: "request cancelled", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, &RequestError{Message: fmt.Sprintf("request to %s failed", path), Err: err}
	}
	defer res.Body.Close() //nolint:errcheck

	b, err := io.ReadAll(io.LimitReader(res.Body, limit))
	if err != nil {
		return nil, &RequestError{Status: res.StatusCode, Message: "reading response", Err: err}
	}

	if res.StatusCode == http.StatusUnauthorized {
		c.handleUnauthorized()
		return nil, ErrUnauthorized
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		// Try to extract a human-readable error from the response body.
		var apiErr struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if jsonErr := json.Unmarshal(b, &apiErr); jsonErr == nil {
			if apiErr.Error != "" {
				return nil, &RequestError{Status: res.StatusCode, Message: apiErr.Error}
			}
			if apiErr.Message != "" {
				return nil, &RequestError{Status: res.StatusCode, Message: apiErr.Message}
			}
		}
		return nil, &RequestError{Status: res.StatusCode}
	}

	return b, nil
}

// handleUnauthorized clears the stored session and broadcasts the expiry.
// The failed request is never retried.
func (c *Client) handleUnauthorized() {
	if c.sessions != nil {
		_ = c.sessions.Clear()
	}
	if c.bus != nil {
		c.bus.Publish(events.Event{Type: events.Unauthorized})
	}
}
