// Package wcapi provides a client for WooCommerce-style REST APIs. It builds
// canonical, signed requests from a caller's intent, executes them through a
// pluggable transport, and deterministically classifies each result as a
// decoded payload or one of a small set of typed errors.
//
// Authentication is chosen per call from the store URL scheme: secure stores
// use basic auth or query-string credentials, insecure stores use OAuth 1.0a
// style request signing.
package wcapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"
)

// Client issues authenticated requests against one store. It keeps the last
// built request and last received response for diagnostics, which makes a
// single instance unsafe for concurrent use: give each goroutine its own
// Client or serialize access externally.
type Client struct {
	builder   *builder
	transport Transport
	logger    zerolog.Logger

	lastRequest  *Request
	lastResponse *Response
}

// ClientOption configures optional client behavior.
type ClientOption func(*Client)

// WithTransport replaces the default net/http transport. Useful for tests
// and for callers that need custom socket behavior.
func WithTransport(t Transport) ClientOption {
	return func(c *Client) {
		c.transport = t
	}
}

// WithLogger attaches a logger. The client logs request lifecycle events at
// debug level; credentials and signatures are never logged.
func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client for the store at storeURL. Options are
// defaulted, then validated; a validation failure or an unusable store URL
// returns a ConfigError. No network I/O happens here.
func NewClient(storeURL string, creds Credentials, opts Options, clientOpts ...ClientOption) (*Client, error) {
	opts = opts.Defaulted()

	if err := V().Struct(creds); err != nil {
		return nil, &ConfigError{Reason: "invalid credentials", Err: err}
	}
	if err := V().Struct(opts); err != nil {
		return nil, &ConfigError{Reason: "invalid options", Err: err}
	}

	u, err := url.Parse(storeURL)
	if err != nil {
		return nil, &ConfigError{Reason: "invalid store URL", Err: err}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, &ConfigError{Reason: fmt.Sprintf("unsupported store URL scheme %q", u.Scheme)}
	}
	if u.Host == "" {
		return nil, &ConfigError{Reason: "store URL has no host"}
	}

	c := &Client{
		builder: newBuilder(storeURL, creds, opts),
		logger:  zerolog.Nop(),
	}
	for _, opt := range clientOpts {
		opt(c)
	}
	if c.transport == nil {
		c.transport = newHTTPTransport(opts)
	}
	return c, nil
}

// DoRequest builds, signs, executes, and classifies exactly one request.
// data is JSON-serialized into the body when non-nil; params become query
// parameters. The decoded payload is returned on success; failures surface
// as TransportError, ResponseDecodeError, or APIError, each carrying the
// request and response context.
func (c *Client) DoRequest(ctx context.Context, method, endpoint string, data any, params map[string]string) (map[string]any, error) {
	req, err := c.builder.build(method, endpoint, data, params)
	if err != nil {
		return nil, err
	}
	c.lastRequest = req
	c.lastResponse = nil

	c.logger.Debug().
		Str("method", req.Method).
		Str("endpoint", endpoint).
		Msg("dispatching request")

	raw, err := c.transport.Execute(ctx, req)
	if err != nil {
		c.logger.Debug().Err(err).Str("endpoint", endpoint).Msg("transport failed")
		return nil, &TransportError{Request: req, Err: err}
	}

	resp := newResponse(raw)
	c.lastResponse = resp

	c.logger.Debug().
		Int("status", resp.StatusCode).
		Str("endpoint", endpoint).
		Msg("received response")

	return classify(req, resp)
}

// Get retrieves the resource at endpoint.
func (c *Client) Get(ctx context.Context, endpoint string, params map[string]string) (map[string]any, error) {
	return c.DoRequest(ctx, http.MethodGet, endpoint, nil, params)
}

// Post creates a resource at endpoint from data.
func (c *Client) Post(ctx context.Context, endpoint string, data any) (map[string]any, error) {
	return c.DoRequest(ctx, http.MethodPost, endpoint, data, nil)
}

// Put updates the resource at endpoint with data.
func (c *Client) Put(ctx context.Context, endpoint string, data any) (map[string]any, error) {
	return c.DoRequest(ctx, http.MethodPut, endpoint, data, nil)
}

// Delete removes the resource at endpoint.
func (c *Client) Delete(ctx context.Context, endpoint string, params map[string]string) (map[string]any, error) {
	return c.DoRequest(ctx, http.MethodDelete, endpoint, nil, params)
}

// LastRequest returns the most recently built request, or nil before the
// first call. Read-only diagnostic state.
func (c *Client) LastRequest() *Request {
	return c.lastRequest
}

// LastResponse returns the most recently received response, or nil if the
// last call failed before a response was read.
func (c *Client) LastResponse() *Response {
	return c.lastResponse
}
