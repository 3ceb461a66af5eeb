package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// TestMetrics_Usable verifies that all Prometheus metrics can be used without
// panic, ensuring label dimensions match usage across the client and http packages.
func TestMetrics_Usable(t *testing.T) {
	WeatherRequestsTotal.WithLabelValues("success").Inc()
	WeatherRequestsTotal.WithLabelValues("error").Inc()
	WeatherRequestLatency.Observe(0.05)
	// Route uses the path template to avoid cardinality (/weather/{city}, not /weather/london)
	HTTPRequestsTotal.WithLabelValues("GET", "/weather/{city}", "2xx").Inc()
	HTTPRequestDuration.WithLabelValues("GET", "/weather/{city}").Observe(0.01)
	HTTPRequestsInFlight.Inc()
	HTTPRequestsInFlight.Dec()
	UpstreamCallsTotal.WithLabelValues("success").Inc()
	UpstreamCallsTotal.WithLabelValues("error").Inc()
	UpstreamCallDuration.WithLabelValues("success").Observe(0.1)
}

// TestMetricsHandler_ServesPrometheusFormat verifies that MetricsHandler serves
// the Prometheus text exposition format including the request counter and
// latency histogram.
func TestMetricsHandler_ServesPrometheusFormat(t *testing.T) {
	WeatherRequestsTotal.WithLabelValues("success").Inc()
	WeatherRequestLatency.Observe(0.2)

	handler := MetricsHandler()
	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("MetricsHandler status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "weather_requests_total") {
		t.Error("exposition output missing weather_requests_total")
	}
	if !strings.Contains(body, "weather_request_latency_seconds") {
		t.Error("exposition output missing weather_request_latency_seconds")
	}
}
