// Package metrics exposes Prometheus instrumentation for the HTTP
// surface and the sale pipeline.
package metrics

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

type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	SalesRecorded     prometheus.Counter
	SalesDeleted      prometheus.Counter
	PromotionsApplied *prometheus.CounterVec
	QuotesResolved    *prometheus.CounterVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		SalesRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sales_recorded_total",
			Help: "Sales successfully recorded.",
		}),
		SalesDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sales_deleted_total",
			Help: "Sales deleted.",
		}),
		PromotionsApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "promotions_applied_total",
			Help: "Promotions applied to sales, by promotion kind.",
		}, []string{"kind"}),
		QuotesResolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quotes_resolved_total",
			Help: "Price quotes resolved, by pricing rule.",
		}, []string{"rule"}),
	}

	registry.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.SalesRecorded,
		m.SalesDeleted,
		m.PromotionsApplied,
		m.QuotesResolved,
	)

	return m
}

// Handler serves the scrape endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// GinMiddleware records request counts and latency per route.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if strings.TrimSpace(route) == "" {
			route = "unknown"
		}
		m.httpRequests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}
