package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registry *prometheus.Registry

	// Weather lookup outcomes, labeled success/error. Watch for: error ratio growth.
	WeatherRequestsTotal *prometheus.CounterVec

	// End-to-end /weather/{city} handler latency, recorded on every call
	// regardless of outcome.
	WeatherRequestLatency prometheus.Histogram

	// HTTP request rate across all routes. Watch for: sudden drops (service down) or spikes.
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTP request latency per route. Watch for: p95/p99 increases.
	HTTPRequestDuration *prometheus.HistogramVec

	// Concurrent requests in flight. Watch for: saturation.
	HTTPRequestsInFlight prometheus.Gauge

	// Open-Meteo API call rate by outcome. Watch for: error vs success ratio.
	UpstreamCallsTotal *prometheus.CounterVec

	// Open-Meteo API latency. Watch for: p95 > 2s (upstream degradation), p99 near the 10s timeout.
	UpstreamCallDuration *prometheus.HistogramVec
)

func init() {
	registry = prometheus.NewRegistry()

	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	WeatherRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weather_requests_total",
			Help: "Total weather requests",
		},
		[]string{"status"},
	)
	WeatherRequestLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "weather_request_latency_seconds",
			Help:    "Request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status_code"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds (per request)",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	HTTPRequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		},
	)
	UpstreamCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_calls_total",
			Help: "Total number of Open-Meteo API calls",
		},
		[]string{"status"},
	)
	UpstreamCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_call_duration_seconds",
			Help:    "Open-Meteo API latency in seconds (per request)",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"status"},
	)

	registry.MustRegister(
		WeatherRequestsTotal, WeatherRequestLatency,
		HTTPRequestsTotal, HTTPRequestDuration, HTTPRequestsInFlight,
		UpstreamCallsTotal, UpstreamCallDuration,
	)
}

// MetricsHandler returns an http.Handler that serves application and runtime
// metrics in the Prometheus text exposition format. The same handler backs
// both the /metrics route and the dedicated metrics listener.
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
