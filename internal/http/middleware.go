package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/dlukin/weather-lookup-service/internal/observability"
)

// RequestIDMiddleware assigns every request an id (honoring an inbound
// X-Request-ID header), echoes it back and stashes a request-scoped logger
// in the context.
func RequestIDMiddleware(logger *zap.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := r.Header.Get("X-Request-ID")
			if reqID == "" {
				reqID = uuid.New().String()
			}

			ctx := context.WithValue(r.Context(), "request_id", reqID)
			w.Header().Set("X-Request-ID", reqID)

			reqLogger := logger.With(zap.String("request_id", reqID))
			ctx = context.WithValue(ctx, "logger", reqLogger)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// MetricsMiddleware records per-route request counts, latency and the
// in-flight gauge.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		observability.HTTPRequestsInFlight.Inc()
		defer observability.HTTPRequestsInFlight.Dec()

		recorder := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(recorder, r)

		duration := time.Since(start).Seconds()
		route := getRoute(r)
		statusCode := statusCodeString(recorder.statusCode)

		observability.HTTPRequestsTotal.WithLabelValues(r.Method, route, statusCode).Inc()
		observability.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(duration)
	})
}

// getRoute returns the path template so metric cardinality stays bounded
// (e.g. /weather/{city}, never /weather/london).
func getRoute(r *http.Request) string {
	path := r.URL.Path
	switch {
	case strings.HasPrefix(path, "/weather/"):
		return "/weather/{city}"
	case strings.HasPrefix(path, "/history"):
		return "/history/"
	default:
		return path
	}
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

func statusCodeString(code int) string {
	return fmt.Sprintf("%dxx", code/100)
}

// requestID returns the id assigned by RequestIDMiddleware, or "" when the
// handler runs without the middleware (tests).
func requestID(r *http.Request) string {
	if v, ok := r.Context().Value("request_id").(string); ok {
		return v
	}
	return ""
}

// requestLogger returns the request-scoped logger, falling back to a no-op
// logger when the middleware did not run.
func requestLogger(r *http.Request) *zap.Logger {
	if logger, ok := r.Context().Value("logger").(*zap.Logger); ok && logger != nil {
		return logger
	}
	return zap.NewNop()
}
