// Package http is the transport layer shared by every resource client. It sends
// JSON requests to one API version, authenticates with the API key, and maps
// failures onto the easypost error types.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/fivetwenty-io/easypost-go/internal/constants"
	"github.com/fivetwenty-io/easypost-go/pkg/easypost"
)

// RequestIDHeader carries a per-request UUID for correlating client and server logs.
const RequestIDHeader = "X-Client-Request-ID"

const tracerName = "github.com/fivetwenty-io/easypost-go"

type retryableKey struct{}

// Client sends requests to one API version.
type Client struct {
	baseURL      string
	apiKey       string
	version      easypost.APIVersion
	httpClient   *retryablehttp.Client
	logger       easypost.Logger
	debug        bool
	userAgent    string
	interceptors *easypost.InterceptorChain
	tracer       trace.Tracer
}

// Request is an API request relative to the version base URL.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    interface{}
	Headers map[string]string
}

// Response is a fully read API response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger easypost.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithRetryConfig sets retry attempts and backoff bounds. Only GET requests are retried.
func WithRetryConfig(maxRetries int, minWait, maxWait time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = maxRetries
		c.httpClient.RetryWaitMin = minWait
		c.httpClient.RetryWaitMax = maxWait
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient.HTTPClient = httpClient
		}
	}
}

// WithTimeouts sets dial and whole-request timeouts on the default HTTP client.
func WithTimeouts(connect, request time.Duration) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient = newHTTPClient(connect, request)
	}
}

// WithInterceptors sets the interceptor chain.
func WithInterceptors(chain *easypost.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// WithTracer sets the tracer spans are started on.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *Client) {
		if tracer != nil {
			c.tracer = tracer
		}
	}
}

// WithVersion records the API version in logs, spans and interceptor requests.
func WithVersion(version easypost.APIVersion) Option {
	return func(c *Client) {
		c.version = version
	}
}

// NewClient creates a client for baseURL, the full URL of one API version such as
// "https://api.easypost.com/v2".
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient = newHTTPClient(constants.DefaultConnectTimeout, constants.DefaultRequestTimeout)
	retryClient.RetryMax = constants.DefaultRetryMax
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax
	retryClient.CheckRetry = checkRetry
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = nil

	client := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		version:    easypost.Latest,
		httpClient: retryClient,
		userAgent:  constants.DefaultUserAgent,
		tracer:     otel.Tracer(tracerName),
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.logger != nil && client.httpClient.RetryMax > 0 {
		client.httpClient.Logger = &leveledLogger{logger: client.logger}
	}

	return client
}

// BaseURL returns the version base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Version returns the API version the client is bound to.
func (c *Client) Version() easypost.APIVersion {
	return c.version
}

// Do sends req. A non-2xx status returns the response together with an
// *easypost.APIError; a failure before any response returns *easypost.TransportError.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	var bodyBytes []byte

	if req.Body != nil {
		var err error

		bodyBytes, err = json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}
	}

	intercepted := &easypost.Request{
		Method:   req.Method,
		Path:     req.Path,
		Version:  c.version,
		Headers:  make(http.Header),
		Body:     bodyBytes,
		Metadata: make(map[string]interface{}),
	}

	for key, value := range req.Headers {
		intercepted.Headers.Set(key, value)
	}

	err := c.interceptors.ExecuteRequestInterceptors(ctx, intercepted)
	if err != nil {
		return nil, err
	}

	fullURL := c.buildURL(req.Path, req.Query)
	requestID := uuid.NewString()

	ctx, span := c.tracer.Start(ctx, "easypost "+req.Method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", req.Method),
			attribute.String("url.path", req.Path),
			attribute.String("easypost.api_version", c.version.String()),
			attribute.String("easypost.request_id", requestID),
		),
	)
	defer span.End()

	ctx = context.WithValue(ctx, retryableKey{}, req.Method == http.MethodGet)

	httpReq, err := c.newHTTPRequest(ctx, req.Method, fullURL, intercepted)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return nil, err
	}

	httpReq.Header.Set(RequestIDHeader, requestID)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(httpReq.Header))

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method":     req.Method,
			"url":        fullURL,
			"version":    c.version.String(),
			"request_id": requestID,
		})
	}

	start := time.Now()
	httpResp, doErr := c.httpClient.Do(httpReq)

	if httpResp == nil {
		if doErr == nil {
			doErr = io.ErrUnexpectedEOF
		}

		transportErr := &easypost.TransportError{Method: req.Method, URL: fullURL, Err: doErr}
		span.RecordError(transportErr)
		span.SetStatus(codes.Error, transportErr.Error())

		_ = c.interceptors.ExecuteResponseInterceptors(ctx, intercepted, &easypost.Response{Error: transportErr})

		return nil, transportErr
	}

	defer func() {
		_ = httpResp.Body.Close()
	}()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		transportErr := &easypost.TransportError{Method: req.Method, URL: fullURL, Err: fmt.Errorf("reading response body: %w", err)}
		span.RecordError(transportErr)
		span.SetStatus(codes.Error, transportErr.Error())

		return nil, transportErr
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respBody,
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status":      resp.StatusCode,
			"duration_ms": time.Since(start).Milliseconds(),
			"request_id":  requestID,
		})
	}

	var apiErr *easypost.APIError
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr = easypost.ParseAPIError(resp.StatusCode, resp.Body)
		span.SetStatus(codes.Error, apiErr.Error())
	}

	err = c.interceptors.ExecuteResponseInterceptors(ctx, intercepted, &easypost.Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Body:       resp.Body,
	})

	switch {
	case err != nil && apiErr != nil:
		return resp, errors.Join(apiErr, err)
	case err != nil:
		return resp, err
	case apiErr != nil:
		return resp, apiErr
	}

	return resp, nil
}

// Get sends a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post sends a POST request.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put sends a PUT request.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Patch sends a PATCH request.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPatch, Path: path, Body: body})
}

// Delete sends a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}

func (c *Client) buildURL(path string, query url.Values) string {
	fullURL := c.baseURL + "/" + strings.TrimPrefix(path, "/")

	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	return fullURL
}

func (c *Client) newHTTPRequest(ctx context.Context, method, fullURL string, intercepted *easypost.Request) (*retryablehttp.Request, error) {
	var rawBody interface{}
	if intercepted.Body != nil {
		rawBody = intercepted.Body
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, method, fullURL, rawBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.SetBasicAuth(c.apiKey, "")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	if intercepted.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	for key, values := range intercepted.Headers {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}

	return httpReq, nil
}

// checkRetry retries GET requests on connection errors, 429 and 5xx. Other methods
// pass their outcome through untouched.
func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return false, ctxErr
	}

	retryable, _ := ctx.Value(retryableKey{}).(bool)
	if !retryable {
		return false, err
	}

	return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
}

func newHTTPClient(connectTimeout, requestTimeout time.Duration) *http.Client {
	dialer := &net.Dialer{
		Timeout:   connectTimeout,
		KeepAlive: constants.DefaultConnectTimeout,
	}

	return &http.Client{
		Timeout: requestTimeout,
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			DialContext:           dialer.DialContext,
			ForceAttemptHTTP2:     true,
			MaxIdleConns:          100,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   connectTimeout,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}
}

// leveledLogger feeds retryablehttp's own logging into an easypost.Logger.
type leveledLogger struct {
	logger easypost.Logger
}

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, keyValueFields(keysAndValues))
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, keyValueFields(keysAndValues))
}

func (l *leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keyValueFields(keysAndValues))
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, keyValueFields(keysAndValues))
}

func keyValueFields(keysAndValues []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(keysAndValues)/2)

	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}

	return fields
}
