// ABOUTME: HTTP client for the Luxe storefront API
// ABOUTME: Wraps API calls with bearer auth and user-facing error messages

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// ErrNoToken is returned by authorized calls when no bearer token is stored
var ErrNoToken = errors.New("no token found, please login")

// APIError is a non-2xx response from the backend.
// Message is the body's message field, shown to the user verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// IsUnauthorized reports whether err is a 401 from the backend
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// ErrorResponse represents an API error body
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Client is the API client for the storefront backend
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     oauth2.TokenSource
	logger     *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithTokenSource sets where bearer tokens are read from on each authorized call
func WithTokenSource(ts oauth2.TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithTimeout sets the HTTP timeout; zero disables it
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithLogger sets the request logger
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a new API client with the given base URL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GoogleAuthURL returns the federated login entry point.
// It is a navigation target, never fetched by the client.
func (c *Client) GoogleAuthURL() string {
	return c.baseURL + "/authentication/google"
}

// call describes one API request
type call struct {
	method   string
	path     string
	query    url.Values
	body     interface{}
	form     *multipartBody
	auth     bool
	fallback string // message used when the error body has none
}

// do executes the call and returns the raw response body on 2xx
func (c *Client) do(ctx context.Context, cl call) ([]byte, error) {
	var body io.Reader
	contentType := ""
	switch {
	case cl.form != nil:
		body = cl.form.buf
		contentType = cl.form.contentType
	case cl.body != nil:
		data, err := json.Marshal(cl.body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal input: %w", err)
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}

	target := c.baseURL + cl.path
	if len(cl.query) > 0 {
		target += "?" + cl.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	if cl.auth {
		if err := c.authorize(req); err != nil {
			return nil, err
		}
	}

	c.logger.Debug("api request", "method", cl.method, "path", cl.path, "request_id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("invalid response from backend: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := c.handleErrorResponse(resp.StatusCode, data, cl.fallback)
		c.logger.Debug("api error", "path", cl.path, "status", resp.StatusCode, "request_id", requestID, "message", apiErr.Message)
		return nil, apiErr
	}

	return data, nil
}

// authorize attaches the stored bearer token
func (c *Client) authorize(req *http.Request) error {
	if c.tokens == nil {
		return ErrNoToken
	}
	tok, err := c.tokens.Token()
	if err != nil {
		if errors.Is(err, ErrNoToken) {
			return ErrNoToken
		}
		return fmt.Errorf("failed to read token: %w", err)
	}
	if tok == nil || tok.AccessToken == "" {
		return ErrNoToken
	}
	tok.SetAuthHeader(req)
	return nil
}

// handleRequestError converts context errors to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return fmt.Errorf("request canceled")
	}
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)
}

// handleErrorResponse parses API error responses
func (c *Client) handleErrorResponse(status int, data []byte, fallback string) *APIError {
	apiErr := &APIError{StatusCode: status, Message: fallback}
	var errResp ErrorResponse
	if err := json.Unmarshal(data, &errResp); err == nil {
		if errResp.Message != "" {
			apiErr.Message = errResp.Message
		} else if errResp.Error != "" {
			apiErr.Message = errResp.Error
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("backend returned status %d", status)
	}
	return apiErr
}

// decode unmarshals a response body, mapping failures to a consistent message
func decode(data []byte, out interface{}) error {
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

// unwrap returns the value under key when data is an object carrying it,
// otherwise data itself. The backend wraps some payloads ({"product": ...})
// and returns others bare.
func unwrap(data []byte, key string) []byte {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return trimmed
	}
	var env map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return trimmed
	}
	if v, ok := env[key]; ok {
		return v
	}
	return trimmed
}

// isArray reports whether data holds a JSON array
func isArray(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] == '['
}
