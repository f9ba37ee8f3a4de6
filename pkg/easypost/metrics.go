package easypost

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsStartKey = "metrics_start_time"

// Metrics holds the Prometheus collectors fed by the metrics interceptors.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	APIErrors       *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with registerer. A nil
// registerer leaves them unregistered.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	factory := promauto.With(registerer)

	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "easypost_requests_total",
				Help: "Total number of API requests by method, resource, version, and status",
			},
			[]string{"method", "resource", "version", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "easypost_request_duration_seconds",
				Help:    "API request duration in seconds by method and resource",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "resource"},
		),
		APIErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "easypost_api_errors_total",
				Help: "Total failed API requests by resource and error kind",
			},
			[]string{"resource", "kind"},
		),
	}
}

// Interceptors returns a chain recording into m.
func (m *Metrics) Interceptors() *InterceptorChain {
	return NewInterceptorChain().
		AddRequestInterceptor(m.RequestInterceptor()).
		AddResponseInterceptor(m.ResponseInterceptor())
}

// RequestInterceptor stamps the request start time.
func (m *Metrics) RequestInterceptor() RequestInterceptor {
	return func(ctx context.Context, req *Request) error {
		if req.Metadata == nil {
			req.Metadata = make(map[string]interface{})
		}

		req.Metadata[metricsStartKey] = time.Now()

		return nil
	}
}

// ResponseInterceptor records the outcome and latency of a request.
func (m *Metrics) ResponseInterceptor() ResponseInterceptor {
	return func(ctx context.Context, req *Request, resp *Response) error {
		resource := resourceLabel(req.Path)
		status := strconv.Itoa(resp.StatusCode)

		if resp.Error != nil {
			status = "error"
		}

		m.RequestsTotal.WithLabelValues(req.Method, resource, req.Version.String(), status).Inc()

		if start, ok := req.Metadata[metricsStartKey].(time.Time); ok {
			m.RequestDuration.WithLabelValues(req.Method, resource).Observe(time.Since(start).Seconds())
		}

		switch {
		case resp.Error != nil:
			m.APIErrors.WithLabelValues(resource, "transport").Inc()
		case resp.StatusCode >= 500:
			m.APIErrors.WithLabelValues(resource, "server").Inc()
		case resp.StatusCode >= 400:
			m.APIErrors.WithLabelValues(resource, "client").Inc()
		}

		return nil
	}
}

// resourceLabel keeps the first path segment so object IDs stay out of labels.
func resourceLabel(path string) string {
	trimmed := strings.TrimPrefix(path, "/")
	if idx := strings.IndexByte(trimmed, '/'); idx >= 0 {
		trimmed = trimmed[:idx]
	}

	if idx := strings.IndexByte(trimmed, '?'); idx >= 0 {
		trimmed = trimmed[:idx]
	}

	if trimmed == "" {
		return "unknown"
	}

	return trimmed
}
