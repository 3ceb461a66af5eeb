package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dlukin/weather-lookup-service/internal/geo"
	"github.com/dlukin/weather-lookup-service/internal/models"
	"github.com/dlukin/weather-lookup-service/internal/observability"
	"github.com/dlukin/weather-lookup-service/internal/wmo"
)

// WeatherClient fetches current weather for a city and probes upstream
// reachability.
type WeatherClient interface {
	FetchCurrent(ctx context.Context, city string) (models.Observation, error)
	Ping(ctx context.Context) error
}

var (
	// ErrUpstreamUnavailable covers network failures and non-2xx upstream
	// responses. Maps to 503 at the HTTP boundary.
	ErrUpstreamUnavailable = errors.New("weather API unavailable")
	// ErrMalformedResponse covers upstream bodies missing expected fields.
	// Maps to 500 at the HTTP boundary.
	ErrMalformedResponse = errors.New("malformed weather API response")
	// ErrProbeUnhealthy is returned by Ping when the status endpoint answers
	// with a non-OK status.
	ErrProbeUnhealthy = errors.New("status probe returned non-OK")
)

// defaultHumidity is stored when the hourly relative-humidity series is
// missing or empty.
const defaultHumidity = 50

type OpenMeteoClient struct {
	forecastURL  string
	statusURL    string
	client       *http.Client
	probeTimeout time.Duration
}

func NewOpenMeteoClient(forecastURL, statusURL string, timeout, probeTimeout time.Duration) *OpenMeteoClient {
	return &OpenMeteoClient{
		forecastURL:  forecastURL,
		statusURL:    statusURL,
		probeTimeout: probeTimeout,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

type openMeteoResponse struct {
	CurrentWeather *struct {
		Temperature   float64 `json:"temperature"`
		WindSpeed     float64 `json:"windspeed"`
		WindDirection float64 `json:"winddirection"`
		WeatherCode   int     `json:"weathercode"`
	} `json:"current_weather"`
	Hourly struct {
		RelativeHumidity []float64 `json:"relativehumidity_2m"`
	} `json:"hourly"`
}

// FetchCurrent resolves the city's coordinates, calls the upstream forecast
// endpoint once (no retries) and returns the normalized observation.
func (c *OpenMeteoClient) FetchCurrent(ctx context.Context, city string) (models.Observation, error) {
	coords := geo.Resolve(city)
	start := time.Now()

	req, err := c.buildRequest(ctx, coords)
	if err != nil {
		observability.UpstreamCallsTotal.WithLabelValues("error").Inc()
		return models.Observation{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		duration := time.Since(start).Seconds()
		observability.UpstreamCallsTotal.WithLabelValues("error").Inc()
		observability.UpstreamCallDuration.WithLabelValues("error").Observe(duration)
		return models.Observation{}, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	duration := time.Since(start).Seconds()
	status := statusLabel(resp.StatusCode)
	observability.UpstreamCallsTotal.WithLabelValues(status).Inc()
	observability.UpstreamCallDuration.WithLabelValues(status).Observe(duration)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return models.Observation{}, fmt.Errorf("%w: HTTP %d", ErrUpstreamUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.Observation{}, fmt.Errorf("read response body: %w", err)
	}

	var apiResp openMeteoResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return models.Observation{}, fmt.Errorf("%w: parse response: %v", ErrMalformedResponse, err)
	}
	if apiResp.CurrentWeather == nil {
		return models.Observation{}, fmt.Errorf("%w: missing current_weather", ErrMalformedResponse)
	}

	return c.mapResponse(apiResp, city, coords), nil
}

func (c *OpenMeteoClient) buildRequest(ctx context.Context, coords models.Coordinates) (*http.Request, error) {
	baseURL, err := url.Parse(c.forecastURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API URL: %w", err)
	}

	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(coords.Lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(coords.Lon, 'f', -1, 64))
	params.Set("current_weather", "true")
	params.Set("hourly", "temperature_2m,relativehumidity_2m")
	params.Set("timezone", "auto")
	params.Set("forecast_days", "1")
	baseURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", baseURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (c *OpenMeteoClient) mapResponse(apiResp openMeteoResponse, city string, coords models.Coordinates) models.Observation {
	current := apiResp.CurrentWeather

	humidity := float64(defaultHumidity)
	if len(apiResp.Hourly.RelativeHumidity) > 0 {
		humidity = apiResp.Hourly.RelativeHumidity[0]
	}

	return models.Observation{
		City:          city,
		Temperature:   current.Temperature,
		Humidity:      humidity,
		Description:   wmo.Describe(current.WeatherCode),
		WindSpeed:     current.WindSpeed,
		WindDirection: current.WindDirection,
		WeatherCode:   current.WeatherCode,
		Coordinates:   coords,
	}
}

// Ping issues a lightweight reachability probe against the upstream status
// endpoint. A nil return means the probe succeeded; ErrProbeUnhealthy means
// the endpoint answered with a non-OK status; any other error means it was
// unreachable.
func (c *OpenMeteoClient) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", c.statusURL, nil)
	if err != nil {
		return fmt.Errorf("build probe request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("probe request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: HTTP %d", ErrProbeUnhealthy, resp.StatusCode)
	}
	return nil
}

func statusLabel(statusCode int) string {
	if statusCode >= 200 && statusCode < 300 {
		return "success"
	}
	if statusCode >= 400 && statusCode < 500 {
		return "client_error"
	}
	if statusCode >= 500 {
		return "server_error"
	}
	return "error"
}
