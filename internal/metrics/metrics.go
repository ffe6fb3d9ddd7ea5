// Package metrics defines the Prometheus collectors exposed at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts HTTP requests by method, path, and status code.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "frontdesk_requests_total",
		Help: "Total HTTP requests processed.",
	}, []string{"method", "path", "status"})

	// AnalyzeDuration tracks end-to-end analysis latency per provider.
	AnalyzeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "frontdesk_analyze_duration_seconds",
		Help:    "Time spent on transcript analysis.",
		Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
	}, []string{"provider"})

	// ProviderTokens counts tokens reported by providers, split by direction.
	ProviderTokens = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "frontdesk_provider_tokens_total",
		Help: "Tokens consumed per provider, by prompt/completion.",
	}, []string{"provider", "kind"})

	// RateLimited counts requests rejected by local admission control.
	RateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "frontdesk_rate_limited_total",
		Help: "Requests rejected by the sliding-window rate limiter.",
	})
)
