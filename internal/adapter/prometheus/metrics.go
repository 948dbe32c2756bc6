package prometheus

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "campusride_console"

type PrometheusAdapter struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	backendTotal    *prometheus.CounterVec
	backendDuration *prometheus.HistogramVec
}

// NewPrometheusAdapter registers on the default registry served at /metrics.
func NewPrometheusAdapter() *PrometheusAdapter {
	return NewPrometheusAdapterWith(prometheus.DefaultRegisterer)
}

func NewPrometheusAdapterWith(reg prometheus.Registerer) *PrometheusAdapter {
	factory := promauto.With(reg)
	return &PrometheusAdapter{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Console HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Console HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		backendTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_calls_total",
			Help:      "Calls to the campus-ride API by operation and status.",
		}, []string{"operation", "status"}),
		backendDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backend_call_duration_seconds",
			Help:      "Latency of calls to the campus-ride API.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
}

func (p *PrometheusAdapter) RecordMetrics(c *gin.Context, start time.Time) {
	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}
	status := strconv.Itoa(c.Writer.Status())
	p.requestsTotal.WithLabelValues(c.Request.Method, route, status).Inc()
	p.requestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
}

// RecordBackendCall counts one backend call. Status 0 means no response arrived.
func (p *PrometheusAdapter) RecordBackendCall(operation string, status int, duration time.Duration) {
	code := "error"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	p.backendTotal.WithLabelValues(operation, code).Inc()
	p.backendDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
