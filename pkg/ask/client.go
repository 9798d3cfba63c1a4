package ask

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"scandoc_cli/pkg/logging"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	DefaultPath      = "/ask"
	DefaultUserAgent = "scandoc-cli/1.0"

	maxResponseBytes = 8 << 20
)

// Client posts queries to the document assistant's ask endpoint.
type Client struct {
	endpoint   string
	userAgent  string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default instrumented HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if strings.TrimSpace(ua) != "" {
			c.userAgent = ua
		}
	}
}

// NewClient creates a client for baseURL + path. An empty path means /ask.
func NewClient(baseURL, path string, opts ...Option) (*Client, error) {
	endpoint, err := buildEndpoint(baseURL, path)
	if err != nil {
		return nil, err
	}

	c := &Client{
		endpoint:  endpoint,
		userAgent: DefaultUserAgent,
		// No Timeout: a submission runs until the server answers or the
		// caller's context ends.
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Endpoint returns the full URL requests are sent to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Ask sends query and returns the response field of the reply.
func (c *Client) Ask(ctx context.Context, query string) (string, error) {
	body, err := json.Marshal(Request{Query: query})
	if err != nil {
		return "", &RequestFailure{Op: "encode", Err: err}
	}

	requestID, _ := RequestIDFromContext(ctx)
	logger := slog.Default().With("request_id", requestID)
	logger.Debug("ask_request_start", "url", c.endpoint, "query_length", len(query))
	if logger.Enabled(ctx, logging.LevelTrace) {
		logger.Log(ctx, logging.LevelTrace, "ask_request_body", "body", string(body))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &RequestFailure{Op: "send", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		cause := transportCause(err)
		logger.Warn("ask_request_failed", "op", "send", "error", cause)
		return "", &RequestFailure{Op: "send", Err: cause}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		logger.Warn("ask_request_failed", "op", "read", "error", err)
		return "", &RequestFailure{Op: "read", Err: err}
	}
	if len(data) > maxResponseBytes {
		err := fmt.Errorf("response exceeds %d bytes", maxResponseBytes)
		logger.Warn("ask_request_failed", "op", "read", "error", err)
		return "", &RequestFailure{Op: "read", Err: err}
	}

	if logger.Enabled(ctx, logging.LevelTrace) {
		logger.Log(ctx, logging.LevelTrace, "ask_response_body", "status", resp.StatusCode, "body", string(data))
	}

	text, err := decodeResponse(data)
	if err != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			err = fmt.Errorf("server returned %s: %w", resp.Status, err)
		}
		logger.Warn("ask_request_failed", "op", "decode", "status", resp.StatusCode, "error", err)
		return "", &RequestFailure{Op: "decode", Err: err}
	}

	logger.Debug("ask_request_done",
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
		"response_length", len(text),
	)
	return text, nil
}

// decodeResponse mirrors reading a reply as JSON and taking .response: any
// valid JSON is accepted, and a non-object body simply has no response field.
func decodeResponse(data []byte) (string, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return "", fmt.Errorf("empty response body")
	}
	if !json.Valid(trimmed) {
		var probe any
		err := json.Unmarshal(trimmed, &probe)
		return "", fmt.Errorf("invalid JSON response: %w", err)
	}
	if trimmed[0] != '{' {
		return "", nil
	}

	var out Response
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return "", fmt.Errorf("invalid JSON response: %w", err)
	}
	return out.Text(), nil
}

func buildEndpoint(baseURL, path string) (string, error) {
	base := strings.TrimSpace(baseURL)
	if base == "" {
		return "", fmt.Errorf("server url is required")
	}
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid server url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("server url must be absolute, got %q", baseURL)
	}

	if strings.TrimSpace(path) == "" {
		path = DefaultPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + path
	return u.String(), nil
}
