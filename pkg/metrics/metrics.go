package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the collectors the API records. Each instance owns its
// registry so tests can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	checkouts        *prometheus.CounterVec
	bestEffortErrors *prometheus.CounterVec
	receiptOutputs   *prometheus.CounterVec
	exportDuration   prometheus.Histogram
}

// New creates and registers all collectors.
func New(service string) *Metrics {
	labels := prometheus.Labels{"service": service}
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "path", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "Duration of HTTP requests in seconds",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: labels,
		}, []string{"method", "path", "status"}),
		checkouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "cashier_checkouts_total",
			Help:        "Checkout attempts by result",
			ConstLabels: labels,
		}, []string{"result"}),
		bestEffortErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "cashier_best_effort_failures_total",
			Help:        "Failed secondary writes after a committed sale, by step",
			ConstLabels: labels,
		}, []string{"step"}),
		receiptOutputs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "receipt_outputs_total",
			Help:        "Receipts produced by channel and result",
			ConstLabels: labels,
		}, []string{"channel", "result"}),
		exportDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        "receipt_export_duration_seconds",
			Help:        "Time to rasterize and wrap a receipt into a PDF",
			Buckets:     []float64{.01, .025, .05, .1, .25, .5, 1, 2.5},
			ConstLabels: labels,
		}),
	}

	m.registry.MustRegister(
		m.requests, m.requestDuration,
		m.checkouts, m.bestEffortErrors, m.receiptOutputs, m.exportDuration,
	)
	return m
}

// Checkout records the outcome of a checkout: "committed", "partial", "failed" or "rejected".
func (m *Metrics) Checkout(result string) {
	if m == nil {
		return
	}
	m.checkouts.WithLabelValues(result).Inc()
}

// BestEffortFailure records a failed write that does not undo the sale.
func (m *Metrics) BestEffortFailure(step string) {
	if m == nil {
		return
	}
	m.bestEffortErrors.WithLabelValues(step).Inc()
}

// ReceiptOutput records a preview, print, pdf or text render.
func (m *Metrics) ReceiptOutput(channel string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.receiptOutputs.WithLabelValues(channel, result).Inc()
}

// ObserveExport records how long a PDF export took.
func (m *Metrics) ObserveExport(d time.Duration) {
	if m == nil {
		return
	}
	m.exportDuration.Observe(d.Seconds())
}

// Middleware records request count and latency per route template.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		m.requests.WithLabelValues(c.Request.Method, path, status).Inc()
		m.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry is exposed for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
