// Package telemetry exposes prometheus metrics for tool dispatch and
// upstream traffic. Metrics are informational only; tool results never
// depend on them.
package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	toolCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "weathermcp_tool_calls_total",
		Help: "Tool invocations by tool name and outcome.",
	}, []string{"tool", "outcome"})

	upstreamRequests = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "weathermcp_upstream_request_seconds",
		Help:    "WeatherXM request latency by endpoint and response status.",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint", "status"})
)

// IncToolCall records one tool invocation. Outcome is one of "ok",
// "invalid", or "error".
func IncToolCall(tool, outcome string) {
	toolCalls.WithLabelValues(tool, outcome).Inc()
}

// ObserveUpstreamRequest records the latency of one upstream GET.
func ObserveUpstreamRequest(endpoint, status string, d time.Duration) {
	upstreamRequests.WithLabelValues(endpoint, status).Observe(d.Seconds())
}
