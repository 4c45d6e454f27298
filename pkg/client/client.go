// Package client is a Go client for the memod REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"go.uber.org/atomic"

	"github.com/ssargent/memod/pkg/api"
	"github.com/ssargent/memod/pkg/logger"
	"github.com/ssargent/memod/pkg/store"
)

const maxResponseBytes = 4 << 20

// Config holds client settings. Zero values fall back to DefaultConfig.
type Config struct {
	BaseURL       string        // e.g. http://127.0.0.1:8080
	APIKey        string        // sent as X-API-Key when set
	Timeout       time.Duration // per attempt
	RetryAttempts uint          // total attempts for idempotent requests
	RetryDelay    time.Duration // initial backoff delay
	Logger        logger.Logger
}

// DefaultConfig returns the settings used for unset fields
func DefaultConfig() Config {
	return Config{
		BaseURL:       "http://127.0.0.1:8080",
		Timeout:       5 * time.Second,
		RetryAttempts: 3,
		RetryDelay:    100 * time.Millisecond,
	}
}

// APIError is a non-2xx response from the server
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("memod: %d %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 from the server
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsUnauthorized reports whether err is a 401 from the server
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// Client talks to a memod server
type Client struct {
	hc       *http.Client
	baseURL  string
	apiKey   string
	attempts uint
	delay    time.Duration
	logger   logger.Logger

	// instance is the X-Memod-Instance header of the last response
	instance atomic.String
}

// New creates a client
func New(config Config) *Client {
	defaults := DefaultConfig()
	if config.BaseURL == "" {
		config.BaseURL = defaults.BaseURL
	}
	if config.Timeout <= 0 {
		config.Timeout = defaults.Timeout
	}
	if config.RetryAttempts == 0 {
		config.RetryAttempts = defaults.RetryAttempts
	}
	if config.RetryDelay <= 0 {
		config.RetryDelay = defaults.RetryDelay
	}
	if config.Logger == nil {
		config.Logger = logger.Nop()
	}

	return &Client{
		hc:       &http.Client{Timeout: config.Timeout},
		baseURL:  strings.TrimRight(config.BaseURL, "/") + "/api/v1",
		apiKey:   config.APIKey,
		attempts: config.RetryAttempts,
		delay:    config.RetryDelay,
		logger:   config.Logger.Named("client"),
	}
}

// InstanceID returns the store instance id reported by the most recent response.
// A change between calls means the server restarted and its ids began again at 0.
func (c *Client) InstanceID() string {
	return c.instance.Load()
}

// Health checks that the server is up
func (c *Client) Health(ctx context.Context) (api.HealthResponse, error) {
	var out api.HealthResponse
	err := c.do(ctx, http.MethodGet, "/health", nil, &out)
	return out, err
}

// Stats fetches the store counters
func (c *Client) Stats(ctx context.Context) (api.StatsResponse, error) {
	var out api.StatsResponse
	err := c.do(ctx, http.MethodGet, "/stats", nil, &out)
	return out, err
}

// Create stores a new memo and returns it with its assigned id.
// Create is sent once and never retried.
func (c *Client) Create(ctx context.Context, title, content string) (store.Record, error) {
	var out store.Record
	err := c.do(ctx, http.MethodPost, "/memos", memoBody(title, content), &out)
	return out, err
}

// List returns every memo ordered by id
func (c *Client) List(ctx context.Context) ([]store.Record, error) {
	var out api.MemoListResponse
	if err := c.do(ctx, http.MethodGet, "/memos", nil, &out); err != nil {
		return nil, err
	}
	return out.Memos, nil
}

// Get fetches one memo
func (c *Client) Get(ctx context.Context, id uint64) (store.Record, error) {
	var out store.Record
	err := c.do(ctx, http.MethodGet, memoPath(id), nil, &out)
	return out, err
}

// Update replaces the title and content of a memo
func (c *Client) Update(ctx context.Context, id uint64, title, content string) (store.Record, error) {
	var out store.Record
	err := c.do(ctx, http.MethodPut, memoPath(id), memoBody(title, content), &out)
	return out, err
}

// Delete removes a memo
func (c *Client) Delete(ctx context.Context, id uint64) error {
	return c.do(ctx, http.MethodDelete, memoPath(id), nil, nil)
}

func memoPath(id uint64) string {
	return "/memos/" + strconv.FormatUint(id, 10)
}

func memoBody(title, content string) api.MemoRequest {
	return api.MemoRequest{Title: &title, Content: &content}
}

// do sends the request, retrying idempotent methods on transport errors and 5xx
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		payload = b
	}

	attempts := c.attempts
	if method == http.MethodPost {
		attempts = 1
	}

	return retry.Do(
		func() error {
			return c.roundTrip(ctx, method, path, payload, out)
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(c.delay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isRetryable),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Warnw("retrying request", "method", method, "path", path, "attempt", n+1, "err", err)
		}),
	)
}

func (c *Client) roundTrip(ctx context.Context, method, path string, payload []byte, out any) error {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return retry.Unrecoverable(err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if id := resp.Header.Get("X-Memod-Instance"); id != "" {
		c.instance.Store(id)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return err
	}

	var env struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   string          `json:"error"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(data))}
		}
		return retry.Unrecoverable(fmt.Errorf("failed to decode response: %w", err))
	}

	if resp.StatusCode >= http.StatusBadRequest || !env.Success {
		return &APIError{StatusCode: resp.StatusCode, Message: env.Error}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return retry.Unrecoverable(fmt.Errorf("failed to decode response data: %w", err))
		}
	}
	return nil
}

func isRetryable(err error) bool {
	if !retry.IsRecoverable(err) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= http.StatusInternalServerError
	}
	return true
}
