// Package http is the retrying JSON transport used by the Freedom clients.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/atlasground/freedom/internal/auth"
	"github.com/atlasground/freedom/internal/constants"
	"github.com/atlasground/freedom/pkg/freedom"
)

var errNoResponse = errors.New("no response received")

// Request describes one API call. Path may be relative to the base URL
// ("satellites/3"), host-absolute ("/api/satellites/3") or a full URL, as
// found in HAL links.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    any
	Headers map[string]string
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client sends requests to the Freedom API.
type Client struct {
	baseURL       *url.URL
	authenticator auth.Authenticator
	httpClient    *retryablehttp.Client
	logger        freedom.Logger
	debug         bool
	userAgent     string
	headers       map[string]string
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger freedom.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
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
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithHeaders adds headers sent on every request.
func WithHeaders(headers map[string]string) Option {
	return func(c *Client) {
		for name, value := range headers {
			c.headers[name] = value
		}
	}
}

// WithRetryConfig tunes retries of 5xx, 429 and connection failures.
func WithRetryConfig(maxRetries int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = maxRetries
		c.httpClient.RetryWaitMin = waitMin
		c.httpClient.RetryWaitMax = waitMax
	}
}

// WithTimeout sets the per-attempt HTTP timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient.Timeout = timeout
	}
}

// NewClient creates a transport rooted at baseURL. authenticator may be nil
// for unauthenticated endpoints and tests.
func NewClient(baseURL string, authenticator auth.Authenticator, opts ...Option) *Client {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		parsed = &url.URL{Path: "/"}
	}

	retryClient := retryablehttp.NewClient()
	retryClient.Logger = nil
	retryClient.RetryMax = constants.DefaultRetryMax
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	retryClient.CheckRetry = retryablehttp.DefaultRetryPolicy
	// Hand the last response back once retries are exhausted so its status
	// can be classified.
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	client := &Client{
		baseURL:       parsed,
		authenticator: authenticator,
		httpClient:    retryClient,
		logger:        freedom.NopLogger{},
		userAgent:     constants.DefaultUserAgent,
		headers:       make(map[string]string),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// BaseURL returns the base URL with a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// ResolveURL resolves path against the base URL.
func (c *Client) ResolveURL(path string) (*url.URL, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("parsing path %q: %w", path, err)
	}

	return c.baseURL.ResolveReference(ref), nil
}

// Do sends req. On a non-2xx status it returns the response together with a
// *freedom.ResponseError.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	target, err := c.ResolveURL(req.Path)
	if err != nil {
		return nil, freedom.NewTransportError(err)
	}

	if len(req.Query) > 0 {
		query := target.Query()
		for key, values := range req.Query {
			for _, value := range values {
				query.Add(key, value)
			}
		}

		target.RawQuery = query.Encode()
	}

	body, err := encodeBody(req.Body)
	if err != nil {
		return nil, err
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, target.String(), body)
	if err != nil {
		return nil, freedom.NewTransportError(fmt.Errorf("creating request: %w", err))
	}

	requestID := uuid.NewString()
	c.setHeaders(httpReq, req, requestID, body != nil)

	if c.authenticator != nil {
		err = c.authenticator.Authenticate(ctx, httpReq.Request)
		if err != nil {
			return nil, fmt.Errorf("authenticating request: %w", err)
		}
	}

	if c.debug {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method":     req.Method,
			"url":        target.String(),
			"request_id": requestID,
			"headers":    auth.RedactHeaders(httpReq.Header),
		})
	}

	started := time.Now()

	// Once retries are exhausted the last response comes back together with
	// the retry policy's error; the status code classifies it below.
	httpResp, err := c.httpClient.Do(httpReq)
	if httpResp == nil {
		if err == nil {
			err = errNoResponse
		}

		return nil, freedom.NewTransportError(fmt.Errorf("%s %s: %w", req.Method, target.Redacted(), err))
	}

	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, freedom.NewTransportError(fmt.Errorf("reading response body: %w", err))
	}

	if c.debug {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status":      httpResp.StatusCode,
			"request_id":  requestID,
			"duration_ms": time.Since(started).Milliseconds(),
			"body":        truncate(respBody, constants.MaxDebugBodyLength),
		})
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respBody,
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return resp, &freedom.ResponseError{
			StatusCode: httpResp.StatusCode,
			Method:     req.Method,
			URL:        target.Redacted(),
			Body:       respBody,
		}
	}

	return resp, nil
}

func (c *Client) setHeaders(httpReq *retryablehttp.Request, req *Request, requestID string, hasBody bool) {
	httpReq.Header.Set("Accept", constants.MediaTypeHAL+", "+constants.MediaTypeJSON)
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set(constants.HeaderRequestID, requestID)

	if hasBody {
		httpReq.Header.Set("Content-Type", constants.MediaTypeJSON)
	}

	for name, value := range c.headers {
		httpReq.Header.Set(name, value)
	}

	for name, value := range req.Headers {
		httpReq.Header.Set(name, value)
	}
}

func encodeBody(body any) (io.Reader, error) {
	switch typed := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return bytes.NewReader(typed), nil
	default:
		data, err := json.Marshal(typed)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}

		return bytes.NewReader(data), nil
	}
}

func truncate(body []byte, limit int) string {
	if len(body) <= limit {
		return string(body)
	}

	return string(body[:limit]) + "..."
}

// Get sends a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post sends a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put sends a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Patch sends a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPatch, Path: path, Body: body})
}

// Delete sends a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}
