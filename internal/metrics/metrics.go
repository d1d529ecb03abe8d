// Package metrics provides Prometheus instrumentation for the gateway.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the gateway's collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal    *prometheus.CounterVec
	ProviderLatency  *prometheus.HistogramVec
	TokenUsageTotal  *prometheus.CounterVec
	InFlightRequests prometheus.Gauge
}

// New creates collectors registered on a fresh registry, together with the
// Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "askgate_requests_total",
				Help: "Total HTTP requests by route and status code.",
			},
			[]string{"route", "code"},
		),
		ProviderLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "askgate_provider_latency_seconds",
				Help:    "Latency of provider calls in seconds.",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
			},
			[]string{"provider", "outcome"},
		),
		TokenUsageTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "askgate_token_usage_total",
				Help: "Tokens reported by providers.",
			},
			[]string{"provider", "direction"}, // direction: "prompt" or "completion"
		),
		InFlightRequests: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "askgate_in_flight_requests",
				Help: "Number of /ask requests currently waiting on a provider.",
			},
		),
	}
	reg.MustRegister(
		m.RequestsTotal,
		m.ProviderLatency,
		m.TokenUsageTotal,
		m.InFlightRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRequest counts a finished HTTP request.
func (m *Metrics) ObserveRequest(route string, code int) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(route, strconv.Itoa(code)).Inc()
}

// ProviderStarted marks a provider call as in flight and returns a func
// that records its latency and outcome when called. provider must come from
// a fixed set; never pass caller-supplied text.
func (m *Metrics) ProviderStarted(provider string) func(outcome string) {
	if m == nil {
		return func(string) {}
	}
	start := time.Now()
	m.InFlightRequests.Inc()
	return func(outcome string) {
		m.InFlightRequests.Dec()
		m.ProviderLatency.WithLabelValues(provider, outcome).Observe(time.Since(start).Seconds())
	}
}

// ObserveTokens adds reported token counts; nil counters are skipped.
func (m *Metrics) ObserveTokens(provider string, prompt, completion *int) {
	if m == nil {
		return
	}
	if prompt != nil {
		m.TokenUsageTotal.WithLabelValues(provider, "prompt").Add(float64(*prompt))
	}
	if completion != nil {
		m.TokenUsageTotal.WithLabelValues(provider, "completion").Add(float64(*completion))
	}
}
