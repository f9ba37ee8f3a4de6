package easypost

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/fivetwenty-io/easypost-go/internal/constants"
)

// Static errors for err113 compliance.
var (
	ErrRateLimitWaitFailed = errors.New("rate limit wait failed")
	ErrInvalidRateLimit    = errors.New("requests per second must be greater than zero")
	ErrRequestInterceptor  = errors.New("request interceptor failed")
	ErrResponseInterceptor = errors.New("response interceptor failed")
)

// Request is the outgoing request as seen by interceptors.
type Request struct {
	Method   string
	Path     string
	Version  APIVersion
	Headers  http.Header
	Body     []byte
	Metadata map[string]interface{}
}

// Response is the received response as seen by interceptors. Error is set when
// the request failed before a response arrived.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	Error      error
}

// RequestInterceptor is called before a request is sent.
type RequestInterceptor func(ctx context.Context, req *Request) error

// ResponseInterceptor is called after a response is received.
type ResponseInterceptor func(ctx context.Context, req *Request, resp *Response) error

// InterceptorChain runs interceptors in the order they were added.
type InterceptorChain struct {
	requestInterceptors  []RequestInterceptor
	responseInterceptors []ResponseInterceptor
}

// NewInterceptorChain creates an empty chain.
func NewInterceptorChain() *InterceptorChain {
	return &InterceptorChain{
		requestInterceptors:  make([]RequestInterceptor, 0),
		responseInterceptors: make([]ResponseInterceptor, 0),
	}
}

// AddRequestInterceptor appends a request interceptor.
func (c *InterceptorChain) AddRequestInterceptor(interceptor RequestInterceptor) *InterceptorChain {
	c.requestInterceptors = append(c.requestInterceptors, interceptor)

	return c
}

// AddResponseInterceptor appends a response interceptor.
func (c *InterceptorChain) AddResponseInterceptor(interceptor ResponseInterceptor) *InterceptorChain {
	c.responseInterceptors = append(c.responseInterceptors, interceptor)

	return c
}

// Merge appends the interceptors of other after those already in the chain.
func (c *InterceptorChain) Merge(other *InterceptorChain) *InterceptorChain {
	if other == nil {
		return c
	}

	c.requestInterceptors = append(c.requestInterceptors, other.requestInterceptors...)
	c.responseInterceptors = append(c.responseInterceptors, other.responseInterceptors...)

	return c
}

// ExecuteRequestInterceptors runs the request interceptors, stopping at the first error.
func (c *InterceptorChain) ExecuteRequestInterceptors(ctx context.Context, req *Request) error {
	if c == nil {
		return nil
	}

	for _, interceptor := range c.requestInterceptors {
		err := interceptor(ctx, req)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrRequestInterceptor, err)
		}
	}

	return nil
}

// ExecuteResponseInterceptors runs the response interceptors, stopping at the first error.
func (c *InterceptorChain) ExecuteResponseInterceptors(ctx context.Context, req *Request, resp *Response) error {
	if c == nil {
		return nil
	}

	for _, interceptor := range c.responseInterceptors {
		err := interceptor(ctx, req, resp)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrResponseInterceptor, err)
		}
	}

	return nil
}

// LoggingInterceptor logs outgoing requests at debug level.
func LoggingInterceptor(logger Logger) RequestInterceptor {
	return func(ctx context.Context, req *Request) error {
		logger.Debug("API Request", map[string]interface{}{
			"method":  req.Method,
			"path":    req.Path,
			"version": req.Version.String(),
		})

		return nil
	}
}

// LoggingResponseInterceptor logs responses. Transport failures log at error level
// and error statuses at warn.
func LoggingResponseInterceptor(logger Logger) ResponseInterceptor {
	return func(ctx context.Context, req *Request, resp *Response) error {
		fields := map[string]interface{}{
			"method":      req.Method,
			"path":        req.Path,
			"status_code": resp.StatusCode,
		}

		switch {
		case resp.Error != nil:
			fields["error"] = resp.Error
			logger.Error("API Response Error", fields)
		case resp.StatusCode >= http.StatusBadRequest:
			logger.Warn("API Response Error", fields)
		default:
			logger.Debug("API Response", fields)
		}

		return nil
	}
}

// HeaderInterceptor sets fixed headers on every request.
func HeaderInterceptor(headers map[string]string) RequestInterceptor {
	return func(ctx context.Context, req *Request) error {
		if req.Headers == nil {
			req.Headers = make(http.Header)
		}

		for key, value := range headers {
			req.Headers.Set(key, value)
		}

		return nil
	}
}

// RateLimitInterceptor blocks each request until a token bucket limiter admits it.
// A burst below one is treated as one.
func RateLimitInterceptor(config RateLimit) (RequestInterceptor, error) {
	if config.RequestsPerSecond <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRateLimit, config.RequestsPerSecond)
	}

	burst := config.Burst
	if burst < constants.DefaultRateLimitBurst {
		burst = constants.DefaultRateLimitBurst
	}

	limiter := rate.NewLimiter(rate.Limit(config.RequestsPerSecond), burst)

	return func(ctx context.Context, req *Request) error {
		start := time.Now()

		err := limiter.Wait(ctx)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrRateLimitWaitFailed, err)
		}

		if req.Metadata == nil {
			req.Metadata = make(map[string]interface{})
		}

		req.Metadata["rate_limit_wait"] = time.Since(start)

		return nil
	}, nil
}
