package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/apperrors"
	"golang.org/x/oauth2"
)

const (
	MessageSessionExpired = "Session expired. Please login again."
	MessageTimeout        = "Request timeout. Please try again."
	MessageNetwork        = "Network error. Please check your connection."
	MessageUnexpected     = "Unexpected response from server."

	maxBodyBytes = 8 << 20
)

// Config for talking to the HRIS backend.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client is a session-scoped gateway to the HRIS REST API. It attaches the
// bearer token to every request and turns every failure into an
// *apperrors.Error.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	logger        *slog.Logger
	onAuthFailure func(error)
}

type Option func(*Client)

// WithAuthFailureHook registers fn to run whenever the backend answers 401/403.
func WithAuthFailureHook(fn func(error)) Option {
	return func(c *Client) { c.onAuthFailure = fn }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithTransport replaces the underlying round tripper. Used by tests.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		if t, ok := c.httpClient.Transport.(*oauth2.Transport); ok {
			t.Base = rt
			return
		}
		c.httpClient.Transport = rt
	}
}

// New builds a client. tokens may be nil for unauthenticated calls (login).
func New(cfg Config, tokens oauth2.TokenSource, opts ...Option) *Client {
	var transport http.RoundTripper = http.DefaultTransport
	if tokens != nil {
		transport = &oauth2.Transport{Source: tokens, Base: http.DefaultTransport}
	}

	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout, Transport: transport},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type envelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Get issues a GET and returns the envelope's data.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, path, query, nil)
}

// Post issues a POST with body encoded as JSON and returns the envelope's data.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, path, nil, body)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}) (json.RawMessage, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		appErr := transportError(err)
		if errors.Is(appErr, apperrors.ErrAuth) {
			c.authFailed(appErr)
		}
		c.logger.Warn("backend request failed", "method", method, "path", path, "error", err)
		return nil, appErr
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, apperrors.New(apperrors.ErrNetwork, resp.StatusCode, MessageNetwork, err)
	}

	c.logger.Debug("backend request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"request_id", req.Header.Get("X-Request-ID"),
	)

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode >= http.StatusBadRequest {
		appErr := statusError(resp.StatusCode, env.Message)
		if errors.Is(appErr, apperrors.ErrAuth) && c.onAuthFailure != nil {
			appErr.Message = MessageSessionExpired
			c.authFailed(appErr)
		}
		return nil, appErr
	}

	if decodeErr != nil {
		return nil, apperrors.New(apperrors.ErrServer, resp.StatusCode, MessageUnexpected, decodeErr)
	}
	if env.Success != nil && !*env.Success {
		msg := env.Message
		if msg == "" {
			msg = MessageUnexpected
		}
		return nil, apperrors.New(apperrors.ErrServer, resp.StatusCode, msg, nil)
	}
	return env.Data, nil
}

func (c *Client) authFailed(err error) {
	if c.onAuthFailure != nil {
		c.onAuthFailure(err)
	}
}

// statusError classifies a non-2xx response.
func statusError(status int, message string) *apperrors.Error {
	if message == "" {
		message = fmt.Sprintf("HTTP %d Error", status)
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return apperrors.New(apperrors.ErrAuth, status, message, nil)
	case status == http.StatusConflict:
		return apperrors.New(apperrors.ErrConflict, status, message, nil)
	case status == http.StatusBadRequest && strings.Contains(strings.ToLower(message), "already exists"):
		return apperrors.New(apperrors.ErrConflict, status, message, nil)
	case status >= http.StatusInternalServerError:
		return apperrors.New(apperrors.ErrServer, status, message, nil)
	default:
		return apperrors.New(apperrors.ErrValidation, status, message, nil)
	}
}

// transportError classifies a request that got no response at all.
func transportError(err error) *apperrors.Error {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return appErr
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return apperrors.New(apperrors.ErrNetwork, 0, MessageTimeout, err)
	}
	return apperrors.New(apperrors.ErrNetwork, 0, MessageNetwork, err)
}
