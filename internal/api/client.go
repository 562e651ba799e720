// Package api is the HTTP client for the shopping-list backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dukerupert/listkeeper/internal/apperr"
	"github.com/dukerupert/listkeeper/internal/logging"
)

const (
	defaultTimeout = 30 * time.Second
	maxBodyBytes   = 4 << 20
)

type Config struct {
	BaseURL string
	Timeout time.Duration
	Logger  *slog.Logger
}

// Client calls the backend. It reads the bearer token through a TokenFunc on
// every request and never stores it.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger

	mu             sync.RWMutex
	token          TokenFunc
	onUnauthorized func(ctx context.Context)
}

type TokenFunc func() string

func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     cfg.Logger,
	}
}

// SetTokenSource installs the function that supplies the bearer token.
func (c *Client) SetTokenSource(fn TokenFunc) {
	c.mu.Lock()
	c.token = fn
	c.mu.Unlock()
}

// OnUnauthorized registers the hook run when an authenticated request comes
// back 401.
func (c *Client) OnUnauthorized(fn func(ctx context.Context)) {
	c.mu.Lock()
	c.onUnauthorized = fn
	c.mu.Unlock()
}

func (c *Client) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.token == nil {
		return ""
	}
	return c.token()
}

func (c *Client) unauthorized(ctx context.Context) {
	c.mu.RLock()
	fn := c.onUnauthorized
	c.mu.RUnlock()
	if fn != nil {
		fn(ctx)
	}
}

// do sends one request and decodes the envelope's data into out (which may
// be nil).
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	if in == nil {
		return c.send(ctx, method, path, nil, "", out)
	}
	b, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	return c.send(ctx, method, path, bytes.NewReader(b), "application/json", out)
}

// send is do for a pre-encoded body.
func (c *Client) send(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	requestID := logging.RequestID(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set("X-Request-ID", requestID)
	// Login and register never carry the old token, so a rejected password
	// is not mistaken for an expired session.
	var token string
	if !strings.HasPrefix(path, "/auth/") {
		token = c.currentToken()
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("%s %s: %w", method, path, err)
		}
		c.logger.Warn("backend unreachable", "method", method, "path", path, "request_id", requestID, "error", err)
		return apperr.Network(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		c.logger.Warn("backend read failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return apperr.Network(err)
	}
	c.logger.Debug("backend call",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"request_id", requestID,
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.failure(ctx, method, path, requestID, token != "", resp.StatusCode, raw)
	}
	if resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	env, err := decodeEnvelope(raw)
	if err != nil {
		c.logger.Error("backend sent a non-envelope body",
			"method", method, "path", path, "status", resp.StatusCode, "request_id", requestID, "error", err)
		return apperr.Wrap(apperr.KindServer, err, "malformed backend response")
	}
	if !*env.Success {
		return apperr.Server(http.StatusBadGateway, env.Message)
	}
	if out == nil || !env.hasData() {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		c.logger.Error("decode backend data", "method", method, "path", path, "request_id", requestID, "error", err)
		return apperr.Wrap(apperr.KindServer, err, "malformed backend response")
	}
	return nil
}

func (c *Client) failure(ctx context.Context, method, path, requestID string, authed bool, status int, raw []byte) error {
	var message string
	if env, err := decodeEnvelope(raw); err == nil {
		message = env.Message
	}
	c.logger.Warn("backend error",
		"method", method, "path", path, "status", status, "request_id", requestID, "message", message)

	if status == http.StatusUnauthorized && authed {
		c.unauthorized(ctx)
	}
	return apperr.Server(status, message)
}
