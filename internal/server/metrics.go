package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "goalgebra"

// Collector holds the Prometheus metrics for one server. Each collector
// owns its registry so several servers can coexist in one process.
type Collector struct {
	registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	ToolCalls    *prometheus.CounterVec
	ToolDuration *prometheus.HistogramVec
}

// NewCollector creates and registers the metrics.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	httpRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	toolCalls := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tool_calls_total",
			Help:      "Total number of tool calls by tool and outcome",
		},
		[]string{"tool", "status"},
	)

	toolDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tool_call_duration_seconds",
			Help:      "Tool call duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		},
		[]string{"tool"},
	)

	registry.MustRegister(httpRequests, toolCalls, toolDuration)

	return &Collector{
		registry:     registry,
		HTTPRequests: httpRequests,
		ToolCalls:    toolCalls,
		ToolDuration: toolDuration,
	}
}

// Registry exposes the underlying registry, mainly for tests.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// RecordTool counts one tool call. status is "ok" or "error".
func (c *Collector) RecordTool(tool, status string, seconds float64) {
	c.ToolCalls.WithLabelValues(tool, status).Inc()
	c.ToolDuration.WithLabelValues(tool).Observe(seconds)
}
