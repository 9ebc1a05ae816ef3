// Package http is the transport used by the API client. It sends a single
// request per call, never retries, and returns the response body for every
// HTTP status; only network-level failures are reported as errors.
package http

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	nethttp "net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/fivetwenty-io/discourse/internal/auth"
	"github.com/fivetwenty-io/discourse/internal/constants"
	"github.com/fivetwenty-io/discourse/pkg/discourse"
)

// ErrUnsupportedBody is returned for request bodies that are not a string,
// a byte slice, or url.Values.
var ErrUnsupportedBody = errors.New("unsupported request body type")

const headerRequestID = "X-Request-Id"

// Logger is the logging interface used by the transport.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Request describes one API call.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    interface{}
	Headers map[string]string

	// ActAs overrides the acting username for this request.
	ActAs string
}

// Response is the raw result of a request that reached the server.
type Response struct {
	StatusCode int
	Body       []byte
	Header     nethttp.Header
}

// IsSuccess reports whether the status is in the 2xx range.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= nethttp.StatusOK && r.StatusCode < nethttp.StatusMultipleChoices
}

// Client sends requests relative to a base URL.
type Client struct {
	baseURL       string
	authenticator auth.Authenticator
	httpClient    *retryablehttp.Client
	logger        Logger
	debug         bool
	userAgent     string
	timeout       time.Duration
	skipTLSVerify bool
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request and response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithTimeout bounds each request. Without it requests are bounded only by
// the caller's context.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithInsecureSkipVerify disables TLS certificate verification.
func WithInsecureSkipVerify(skip bool) Option {
	return func(c *Client) {
		c.skipTLSVerify = skip
	}
}

// NewClient creates a transport for baseURL. authenticator may be nil, in
// which case requests are sent without credentials.
func NewClient(baseURL string, authenticator auth.Authenticator, opts ...Option) *Client {
	client := &Client{
		baseURL:       strings.TrimSuffix(baseURL, "/"),
		authenticator: authenticator,
		userAgent:     constants.DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	client.httpClient = client.newRetryableClient()

	return client
}

// newRetryableClient builds the underlying client with retries disabled:
// every failure is handed back to the caller on the first attempt.
func (c *Client) newRetryableClient() *retryablehttp.Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.Logger = nil
	retryClient.CheckRetry = noRetry
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	if c.timeout > 0 {
		retryClient.HTTPClient.Timeout = c.timeout
	}

	if c.skipTLSVerify {
		if transport, ok := retryClient.HTTPClient.Transport.(*nethttp.Transport); ok {
			transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} // #nosec G402 -- explicit opt-in via Config.SkipTLSVerify
		}
	}

	if c.debug && c.logger != nil {
		retryClient.RequestLogHook = c.logRequest
		retryClient.ResponseLogHook = c.logResponse
	}

	return retryClient
}

func noRetry(ctx context.Context, _ *nethttp.Response, _ error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	return false, nil
}

// Do sends the request. Any HTTP status produces a Response; a request that
// never got one fails with a *discourse.TransportError.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	path := "/" + strings.TrimPrefix(req.Path, "/")

	query := req.Query
	if c.authenticator != nil {
		query = c.authenticator.Authenticate(query, req.ActAs)
	}

	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	body, contentType, err := encodeBody(req.Body)
	if err != nil {
		return nil, fmt.Errorf("encoding %s %s body: %w", req.Method, path, err)
	}

	var rawBody interface{}
	if body != nil {
		rawBody = body
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, rawBody)
	if err != nil {
		return nil, fmt.Errorf("creating %s %s request: %w", req.Method, path, err)
	}

	httpReq.Header.Set("Accept", constants.ContentTypeJSON)
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set(headerRequestID, uuid.NewString())

	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		transportErr := &discourse.TransportError{
			Method: req.Method,
			Path:   path,
			Err:    redactURLError(err),
		}

		if c.logger != nil {
			c.logger.Error("HTTP Request Failed", map[string]interface{}{
				"method":     req.Method,
				"path":       path,
				"request_id": httpReq.Header.Get(headerRequestID),
				"error":      transportErr.Err.Error(),
			})
		}

		return nil, transportErr
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &discourse.TransportError{Method: req.Method, Path: path, Err: err}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       respBody,
		Header:     resp.Header,
	}, nil
}

// Get sends a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodGet, Path: path, Query: query})
}

// Post sends a POST request.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodPost, Path: path, Body: body})
}

// Put sends a PUT request.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodPut, Path: path, Body: body})
}

// Delete sends a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodDelete, Path: path})
}

func encodeBody(body interface{}) ([]byte, string, error) {
	switch typed := body.(type) {
	case nil:
		return nil, "", nil
	case url.Values:
		return []byte(typed.Encode()), constants.ContentTypeForm, nil
	case string:
		return []byte(typed), constants.ContentTypeForm, nil
	case []byte:
		return typed, constants.ContentTypeForm, nil
	default:
		return nil, "", fmt.Errorf("%w: %T", ErrUnsupportedBody, body)
	}
}

func (c *Client) logRequest(_ retryablehttp.Logger, req *nethttp.Request, _ int) {
	c.logger.Debug("HTTP Request", map[string]interface{}{
		"method":     req.Method,
		"url":        redactURL(req.URL).String(),
		"request_id": req.Header.Get(headerRequestID),
	})
}

func (c *Client) logResponse(_ retryablehttp.Logger, resp *nethttp.Response) {
	fields := map[string]interface{}{
		"status": resp.StatusCode,
	}

	if resp.Request != nil {
		fields["method"] = resp.Request.Method
		fields["path"] = resp.Request.URL.Path
		fields["request_id"] = resp.Request.Header.Get(headerRequestID)
	}

	c.logger.Debug("HTTP Response", fields)
}

// redactURL returns a copy of u with the API key masked.
func redactURL(u *url.URL) *url.URL {
	redacted := *u

	query := redacted.Query()
	if query.Has(constants.QueryAPIKey) {
		query.Set(constants.QueryAPIKey, constants.MaskedSecret)
		redacted.RawQuery = query.Encode()
	}

	return &redacted
}

// redactURLError masks the API key inside a *url.Error, whose message
// otherwise embeds the full request URL.
func redactURLError(err error) error {
	urlErr := &url.Error{}
	if !errors.As(err, &urlErr) {
		return err
	}

	parsed, parseErr := url.Parse(urlErr.URL)
	if parseErr != nil {
		return err
	}

	urlErr.URL = redactURL(parsed).String()

	return err
}
