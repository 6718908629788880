// Package metrics exposes Prometheus counters for HTTP traffic and access decisions.
package metrics

import (
	"errors"
	"strconv"
	"time"

	"athletrack/internal/access"
	"athletrack/internal/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector owns the service metrics and the registry they are exposed from.
type Collector struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	decisionsTotal  *prometheus.CounterVec
}

// New creates a Collector registered on its own registry.
func New() (*Collector, error) {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "athletrack_http_requests_total",
			Help: "Total HTTP requests processed",
		}, []string{"method", "path", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "athletrack_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		decisionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "athletrack_access_decisions_total",
			Help: "Access control decisions by resource, action and result",
		}, []string{"resource", "action", "result"}),
	}

	for _, col := range []prometheus.Collector{
		c.requestsTotal,
		c.requestDuration,
		c.decisionsTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	} {
		if err := c.registry.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Registry returns the registry backing the /metrics endpoint.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// RecordDecision implements access.Recorder.
func (c *Collector) RecordDecision(resource access.Resource, action access.Action, d access.Decision) {
	result := "allow"
	if !d.Allowed {
		result = "deny"
	}
	c.decisionsTotal.WithLabelValues(string(resource), string(action), result).Inc()
}

// Middleware counts requests by route pattern, so ids never become label values.
func (c *Collector) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()

		status := ctx.Response().StatusCode()
		if err != nil {
			status = statusOf(err)
		}
		path := ctx.Route().Path
		method := ctx.Method()

		c.requestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
		c.requestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{}))
}

func statusOf(err error) int {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return apperr.HTTPStatus(apperr.KindOf(err))
}
