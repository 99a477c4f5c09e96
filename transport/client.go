// Package transport issues typed JSON calls against the backend REST API.
// It owns the ambient session cookie, normalizes every failure into the
// apperrors taxonomy, and hosts the multipart upload path.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tyulyukov/veracity-go/apperrors"
	"github.com/tyulyukov/veracity-go/logger"
)

// Client issues HTTP calls against the backend. All calls attach the
// ambient session cookie held in the client's jar; there is no manual
// token handling.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	logger         zerolog.Logger
	onUnauthorized func()
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. The replacement must
// carry its own cookie jar if session persistence is wanted.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger replaces the client logger
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithUnauthorizedHook registers the global session-invalidation side
// effect fired on a 401 from any request other than a session probe.
func WithUnauthorizedHook(hook func()) Option {
	return func(c *Client) {
		c.onUnauthorized = hook
	}
}

// NewClient creates a Client for the given API base URL
func NewClient(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Jar:     jar,
			Timeout: timeout,
		},
		logger: logger.WithComponent("transport"),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// requestOptions carries per-call flags
type requestOptions struct {
	sessionProbe bool
}

// RequestOption configures a single call
type RequestOption func(*requestOptions)

// SessionProbe tags the request as the current-session check. A 401 on a
// probed request means "not logged in" and must not fire the global
// unauthorized hook; every other 401 does.
func SessionProbe() RequestOption {
	return func(o *requestOptions) {
		o.sessionProbe = true
	}
}

// Get issues a GET request and decodes the JSON response into out
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any, opts ...RequestOption) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out, opts...)
}

// Post issues a POST request with an optional JSON body
func (c *Client) Post(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out, opts...)
}

// Patch issues a PATCH request with a JSON body
func (c *Client) Patch(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out, opts...)
}

// Delete issues a DELETE request
func (c *Client) Delete(ctx context.Context, path string, opts ...RequestOption) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil, opts...)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, opts ...RequestOption) error {
	options := requestOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).
			Str("method", method).
			Str("path", path).
			Msg("Request failed before a response was received")
		return fmt.Errorf("%w: %v", apperrors.ErrNetwork, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrNetwork, err)
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("Request completed")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeAPIError(resp.StatusCode, respBody)
		if apiErr.StatusCode == http.StatusUnauthorized && !options.sessionProbe && c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return apiErr
	}

	// 204 is a successful empty result
	if resp.StatusCode == http.StatusNoContent || out == nil || len(respBody) == 0 {
		return nil
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrMalformedResponse, err)
	}

	return nil
}

// decodeAPIError parses the structured error body, synthesizing a generic
// error when the body does not parse
func decodeAPIError(statusCode int, body []byte) *apperrors.APIError {
	apiErr := &apperrors.APIError{}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Message == "" {
		return apperrors.NewGenericAPIError(statusCode)
	}
	if apiErr.StatusCode == 0 {
		apiErr.StatusCode = statusCode
	}
	return apiErr
}
