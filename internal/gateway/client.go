package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopstream/storefront-gateway/internal/credential"
	"github.com/shopstream/storefront-gateway/internal/metrics"
)

const defaultTimeout = 15 * time.Second

// ResponseInterceptor is a stage run over every backend response before the
// status code is mapped to an error. Stages must not consume the body.
type ResponseInterceptor func(ctx context.Context, resp *http.Response)

// Config captures the settings for constructing a Client.
type Config struct {
	// BaseURL is the backend origin, e.g. "http://localhost:8000".
	BaseURL string
	// Timeout bounds every request end-to-end. Defaults to 15s.
	Timeout time.Duration
	// Store persists the credential across restarts. Defaults to an
	// in-memory store when nil.
	Store credential.Store
	// Logger for request-level diagnostics.
	Logger zerolog.Logger
}

// Client talks to the commerce backend. One instance is constructed at
// application start and injected into every caller; it owns the in-memory
// mirror of the bearer credential and is safe for concurrent use.
type Client struct {
	baseURL      string
	http         *http.Client
	store        credential.Store
	log          zerolog.Logger
	interceptors []ResponseInterceptor

	mu    sync.RWMutex
	token string
}

// NewClient builds a Client and preloads the credential mirror from the
// store, so a persisted session is attached to requests issued before any
// session restoration completes.
func NewClient(ctx context.Context, cfg Config) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = "http://localhost:8000"
	}
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	store := cfg.Store
	if store == nil {
		store = credential.NewMemStore()
	}

	c := &Client{
		baseURL: base,
		http:    &http.Client{Timeout: timeout},
		store:   store,
		log:     cfg.Logger,
	}
	// The 401 stage is a required part of the pipeline, not an option.
	c.interceptors = []ResponseInterceptor{c.unauthorizedInterceptor}

	if tok, err := store.Read(ctx); err != nil {
		c.log.Warn().Err(err).Msg("credential store unreadable, starting unauthenticated")
	} else {
		c.token = tok
	}

	return c
}

// SetCredential updates the in-memory mirror and persists the token. Every
// subsequent request carries it as a bearer Authorization header. The mirror
// is updated even when persistence fails, so the running session keeps
// working; the error reports the persistence problem.
func (c *Client) SetCredential(ctx context.Context, token string) error {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()

	return c.store.Write(ctx, token)
}

// ClearCredential removes the in-memory mirror and the persisted value.
// Subsequent requests are sent unauthenticated. Idempotent.
func (c *Client) ClearCredential(ctx context.Context) error {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()

	return c.store.Clear(ctx)
}

// Credential returns the current in-memory token, or "" when anonymous.
// Session state derives from this, not from an independently cached flag.
func (c *Client) Credential() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// unauthorizedInterceptor clears the credential on any 401, regardless of
// which operation triggered it. It runs before the caller observes the
// rejected result, so a caller re-reading "am I logged in" immediately after
// a failed call sees the corrected state.
func (c *Client) unauthorizedInterceptor(ctx context.Context, resp *http.Response) {
	if resp.StatusCode != http.StatusUnauthorized {
		return
	}
	if c.Credential() == "" {
		return
	}
	metrics.SessionExpirationsTotal.Inc()
	if err := c.ClearCredential(ctx); err != nil {
		c.log.Warn().Err(err).Msg("failed to clear credential after 401")
	}
	c.log.Info().Str("path", resp.Request.URL.Path).Msg("session invalidated by backend")
}

// send issues one request and returns the status and raw body. Transport
// failures come back as *TransportError; every response passes through the
// interceptor pipeline before returning.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, body any) (int, []byte, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, nil, &TransportError{Err: fmt.Errorf("encode request: %w", err)}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return 0, nil, &TransportError{Err: fmt.Errorf("create request: %w", err)}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.Credential(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	for _, stage := range c.interceptors {
		stage(ctx, resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, &TransportError{Err: fmt.Errorf("read response: %w", err)}
	}

	return resp.StatusCode, data, nil
}

// do issues one resource request and maps the response by status class:
// 401 → ErrSessionExpired, other 4xx → *ClientRequestError, 5xx →
// *ServerError. On 2xx the body is decoded into out when out is non-nil.
func (c *Client) do(ctx context.Context, operation, method, path string, query url.Values, body, out any) error {
	status, data, err := c.send(ctx, method, path, query, body)
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues(operation, "transport").Inc()
		return err
	}

	switch {
	case status == http.StatusUnauthorized:
		metrics.BackendRequestsTotal.WithLabelValues(operation, "unauthorized").Inc()
		return ErrSessionExpired
	case status >= 500:
		metrics.BackendRequestsTotal.WithLabelValues(operation, "server_error").Inc()
		return &ServerError{Status: status}
	case status >= 400:
		metrics.BackendRequestsTotal.WithLabelValues(operation, "client_error").Inc()
		return &ClientRequestError{Status: status, Body: string(data)}
	}

	metrics.BackendRequestsTotal.WithLabelValues(operation, "ok").Inc()

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &TransportError{Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
