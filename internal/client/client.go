// the client package is used by the cli and the ui handlers to call the storefront backend API.
//
// Every method maps one-to-one onto a backend route and returns the response body as an opaque JSON payload,
// whatever the HTTP status. Errors are only returned when no usable response was received: the request could
// not be sent, or the body was not JSON (see client/errors.go).
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"

	"github.com/tienda-online/storefront/internal/metrics"
)

const DefaultTimeout = 10 * time.Second

// Client handles communication with the storefront API.
//
// The backend authenticates with a session cookie, so each Client owns a cookie jar:
// cookies set by Login are sent with later calls made by the same Client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

type Option func(*Client)

// WithTimeout sets the overall timeout of each call
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithTransport replaces the http transport (the cookie jar is kept)
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.httpClient.Transport = rt
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	// cookiejar.New never returns an error
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
			Jar:     jar,
		},
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend url the client was created with
func (c *Client) BaseURL() string {
	return c.baseURL
}

// jsonBody marshals v as a request body
func jsonBody(v any, while string) (io.Reader, error) {
	jsonData, err := json.Marshal(v)
	if err != nil {
		return nil, NewClientInternalError(err, while)
	}
	return bytes.NewBuffer(jsonData), nil
}

// do sends one request and returns the response body as a JSON payload.
// The HTTP status is not inspected: error responses from the backend are returned as payloads like any other.
func (c *Client) do(ctx context.Context, operation, method, path string, body io.Reader) (json.RawMessage, error) {
	url := c.baseURL + wirePath(path)

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, NewClientInternalError(err, fmt.Sprintf("creating %s request", operation))
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	res, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObserveClientCall(operation, "error", time.Since(start))
		c.logger.Debug("api call failed",
			slog.String("operation", operation),
			slog.String("method", method),
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return nil, NewClientConnectionError(err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	duration := time.Since(start)
	c.metrics.ObserveClientCall(operation, strconv.Itoa(res.StatusCode), duration)

	c.logger.Debug("api call",
		slog.String("operation", operation),
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", res.StatusCode),
		slog.Duration("duration", duration),
	)

	if err != nil {
		return nil, NewClientConnectionError(err)
	}

	if !json.Valid(data) {
		return nil, NewClientDecodeError(res.StatusCode, data)
	}

	return json.RawMessage(data), nil
}
