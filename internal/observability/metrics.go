// Package observability exposes Prometheus metrics for the HTTP layer and
// document rendering.
package observability

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// Config labels every series with the service and environment.
type Config struct {
	ServiceName string
	Environment string
}

// Metrics holds the application collectors. All methods are safe on a nil
// receiver.
type Metrics struct {
	gatherer prometheus.Gatherer

	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	documents      *prometheus.CounterVec
	renderDuration prometheus.Histogram
	qrFallbacks    prometheus.Counter
}

// NewMetrics registers the collectors with a fresh registry that also
// carries the Go and process collectors.
func NewMetrics(cfg Config) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return newMetrics(registry, registry, cfg)
}

func newMetrics(registerer prometheus.Registerer, gatherer prometheus.Gatherer, cfg Config) *Metrics {
	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "autoquote-api"
	}
	environment := strings.TrimSpace(cfg.Environment)
	if environment == "" {
		environment = "unknown"
	}
	constLabels := prometheus.Labels{
		"service": serviceName,
		"env":     environment,
	}

	httpRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "autoquote_http_requests_total",
		Help:        "HTTP requests by route and status code.",
		ConstLabels: constLabels,
	}, []string{"route", "code"})
	httpDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:        "autoquote_http_request_duration_seconds",
		Help:        "HTTP request latency by route.",
		ConstLabels: constLabels,
		Buckets:     prometheus.DefBuckets,
	}, []string{"route"})
	documents := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "autoquote_documents_rendered_total",
		Help:        "Rendered documents by type and result.",
		ConstLabels: constLabels,
	}, []string{"type", "result"})
	renderDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:        "autoquote_document_render_seconds",
		Help:        "Time spent rendering a document PDF.",
		ConstLabels: constLabels,
		Buckets:     []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	})
	qrFallbacks := prometheus.NewCounter(prometheus.CounterOpts{
		Name:        "autoquote_qr_fallbacks_total",
		Help:        "QR codes encoded locally because the remote endpoint failed.",
		ConstLabels: constLabels,
	})

	registerer.MustRegister(httpRequests, httpDuration, documents, renderDuration, qrFallbacks)

	return &Metrics{
		gatherer:       gatherer,
		httpRequests:   httpRequests,
		httpDuration:   httpDuration,
		documents:      documents,
		renderDuration: renderDuration,
		qrFallbacks:    qrFallbacks,
	}
}

// ObserveRender records one document render.
func (m *Metrics) ObserveRender(docType string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	result := ResultSuccess
	if err != nil {
		result = ResultError
	}
	m.documents.WithLabelValues(docType, result).Inc()
	m.renderDuration.Observe(elapsed.Seconds())
}

// QRFallback counts a locally encoded QR code.
func (m *Metrics) QRFallback(error) {
	if m == nil {
		return
	}
	m.qrFallbacks.Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// GinMiddleware records request counts and latency by matched route.
func GinMiddleware(m *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequests.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}
