// Package monitoring exposes Prometheus metrics for the workspace backend.
package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors. Each instance carries its own
// registry so independently wired servers never collide.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Codec metrics
	DocumentsExported prometheus.Counter
	DocumentsImported prometheus.Counter
	WindowsExported   prometheus.Counter
	WindowsImported   prometheus.Counter
	ImportCellErrors  prometheus.Counter

	// Restore metrics
	RestoresTotal   prometheus.Counter
	WindowsRestored prometheus.Counter
}

// NewMetrics creates and registers all collectors
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "backend_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "backend_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),
		DocumentsExported: factory.NewCounter(prometheus.CounterOpts{
			Name: "backend_documents_exported_total",
			Help: "Total workspace documents exported",
		}),
		DocumentsImported: factory.NewCounter(prometheus.CounterOpts{
			Name: "backend_documents_imported_total",
			Help: "Total workspace documents imported",
		}),
		WindowsExported: factory.NewCounter(prometheus.CounterOpts{
			Name: "backend_windows_exported_total",
			Help: "Total windows serialized into documents",
		}),
		WindowsImported: factory.NewCounter(prometheus.CounterOpts{
			Name: "backend_windows_imported_total",
			Help: "Total windows restored from documents",
		}),
		ImportCellErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "backend_import_cell_errors_total",
			Help: "Total per-cell errors accumulated during imports",
		}),
		RestoresTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "backend_restores_total",
			Help: "Total restore sequences started",
		}),
		WindowsRestored: factory.NewCounter(prometheus.CounterOpts{
			Name: "backend_windows_restored_total",
			Help: "Total windows opened by restore sequences",
		}),
	}
}

// Middleware records request counts and latency per route
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = "unknown"
		}

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		m.RequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		m.RequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the Prometheus scrape endpoint
func (m *Metrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
