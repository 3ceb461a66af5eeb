package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/dlukin/weather-lookup-service/internal/client"
	"github.com/dlukin/weather-lookup-service/internal/geo"
	"github.com/dlukin/weather-lookup-service/internal/models"
	"github.com/dlukin/weather-lookup-service/internal/observability"
	"github.com/dlukin/weather-lookup-service/internal/store"
	"github.com/dlukin/weather-lookup-service/internal/wmo"
)

// Version is reported by /health and the root descriptor.
const Version = "1.0.0"

const (
	defaultHistorySkip  = 0
	defaultHistoryLimit = 10
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	client   client.WeatherClient
	store    store.Store
	logger   *zap.Logger
	provider string
}

// NewHandler returns a new Handler.
func NewHandler(weatherClient client.WeatherClient, recordStore store.Store, logger *zap.Logger, provider string) *Handler {
	return &Handler{
		client:   weatherClient,
		store:    recordStore,
		logger:   logger,
		provider: provider,
	}
}

// weatherResponse is the body of a successful /weather/{city} call.
type weatherResponse struct {
	City          string             `json:"city"`
	Temperature   float64            `json:"temperature"`
	Humidity      float64            `json:"humidity"`
	Description   string             `json:"description"`
	WindSpeed     float64            `json:"windspeed"`
	WindDirection float64            `json:"winddirection"`
	WeatherCode   int                `json:"weathercode"`
	Coordinates   models.Coordinates `json:"coordinates"`
	Provider      string             `json:"provider"`
	Timestamp     string             `json:"timestamp"`
	ID            uint               `json:"id"`
	RequestID     string             `json:"request_id"`
}

// GetWeather handles GET /weather/{city}: fetch from upstream, persist,
// respond. The outcome counter and latency histogram cover the whole body.
func (h *Handler) GetWeather(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() {
		observability.WeatherRequestLatency.Observe(time.Since(start).Seconds())
	}()

	city := mux.Vars(r)["city"]

	obs, err := h.client.FetchCurrent(r.Context(), city)
	if err != nil {
		observability.WeatherRequestsTotal.WithLabelValues("error").Inc()
		h.writeFetchError(w, r, err)
		return
	}

	rec := &models.WeatherRecord{
		City:          city,
		Temperature:   obs.Temperature,
		Humidity:      obs.Humidity,
		Description:   obs.Description,
		WindSpeed:     obs.WindSpeed,
		WindDirection: obs.WindDirection,
		WeatherCode:   obs.WeatherCode,
	}
	if err := h.store.Insert(r.Context(), rec); err != nil {
		observability.WeatherRequestsTotal.WithLabelValues("error").Inc()
		requestLogger(r).Error("persist weather record", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error: "+err.Error())
		return
	}

	observability.WeatherRequestsTotal.WithLabelValues("success").Inc()
	writeJSON(w, http.StatusOK, weatherResponse{
		City:          obs.City,
		Temperature:   obs.Temperature,
		Humidity:      obs.Humidity,
		Description:   obs.Description,
		WindSpeed:     obs.WindSpeed,
		WindDirection: obs.WindDirection,
		WeatherCode:   obs.WeatherCode,
		Coordinates:   obs.Coordinates,
		Provider:      h.provider,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		ID:            rec.ID,
		RequestID:     requestID(r),
	})
}

// writeFetchError converts a client error into the protocol-level response:
// unreachable/non-2xx upstream is 503, a malformed body or anything else is 500.
func (h *Handler) writeFetchError(w http.ResponseWriter, r *http.Request, err error) {
	logger := requestLogger(r)
	switch {
	case errors.Is(err, client.ErrUpstreamUnavailable):
		logger.Warn("upstream unavailable", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "weather API request failed: "+err.Error())
	case errors.Is(err, client.ErrMalformedResponse):
		logger.Error("malformed upstream response", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "unexpected weather API response: "+err.Error())
	default:
		logger.Error("weather fetch failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error: "+err.Error())
	}
}

// historyItem flattens a stored record with the timestamp serialized to text.
type historyItem struct {
	ID            uint    `json:"id"`
	City          string  `json:"city"`
	Temperature   float64 `json:"temperature"`
	Humidity      float64 `json:"humidity"`
	Description   string  `json:"description"`
	WindSpeed     float64 `json:"windspeed"`
	WindDirection float64 `json:"winddirection"`
	WeatherCode   int     `json:"weathercode"`
	Timestamp     string  `json:"timestamp"`
}

// GetHistory handles GET /history/?skip=&limit=. Defaults are skip=0,
// limit=10; unparsable or negative values fall back to the defaults.
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	skip := queryInt(r, "skip", defaultHistorySkip)
	limit := queryInt(r, "limit", defaultHistoryLimit)

	records, err := h.store.ListRecent(r.Context(), skip, limit)
	if err != nil {
		requestLogger(r).Error("list history", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error: "+err.Error())
		return
	}

	items := make([]historyItem, 0, len(records))
	for _, rec := range records {
		items = append(items, historyItem{
			ID:            rec.ID,
			City:          rec.City,
			Temperature:   rec.Temperature,
			Humidity:      rec.Humidity,
			Description:   rec.Description,
			WindSpeed:     rec.WindSpeed,
			WindDirection: rec.WindDirection,
			WeatherCode:   rec.WeatherCode,
			Timestamp:     rec.Timestamp.Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, items)
}

// GetWeatherCodes handles GET /weather-codes.
func (h *Handler) GetWeatherCodes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, wmo.Codes())
}

// GetAvailableCities handles GET /available-cities.
func (h *Handler) GetAvailableCities(w http.ResponseWriter, r *http.Request) {
	cities := geo.Cities()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"available_cities": cities,
		"count":            len(cities),
	})
}

// GetHealth handles GET /health. The top-level status is always "healthy":
// the probe reports on the upstream dependency, not on this service, and its
// outcome only feeds the api_status field.
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	apiStatus := "healthy"
	if err := h.client.Ping(r.Context()); err != nil {
		if errors.Is(err, client.ErrProbeUnhealthy) {
			apiStatus = "unhealthy"
		} else {
			apiStatus = "unreachable"
		}
		requestLogger(r).Debug("upstream probe failed", zap.Error(err), zap.String("api_status", apiStatus))
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "healthy",
		"api_status": apiStatus,
		"provider":   h.provider,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"version":    Version,
	})
}

// GetRoot handles GET /: a static descriptor of the service and its endpoints.
func (h *Handler) GetRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":     "Weather lookup service backed by Open-Meteo",
		"description": "Resolves a city to coordinates, fetches current weather and keeps a lookup history",
		"version":     Version,
		"provider":    h.provider,
		"endpoints": map[string]string{
			"get_weather":      "GET /weather/{city}",
			"history":          "GET /history/?skip=0&limit=10",
			"weather_codes":    "GET /weather-codes",
			"available_cities": "GET /available-cities",
			"health":           "GET /health",
			"metrics":          "GET /metrics",
		},
	})
}

func queryInt(r *http.Request, key string, defaultVal int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return defaultVal
	}
	return v
}

// writeJSON writes a JSON response with the specified HTTP status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes the error body shape shared by all endpoints.
func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
