package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds service configuration loaded from YAML and env.
type Config struct {
	ServerPort  string
	MetricsPort string

	// Provider is the declared provider name, cosmetic only; the one
	// implemented upstream is Open-Meteo.
	Provider string

	UpstreamURL       string
	UpstreamStatusURL string
	UpstreamTimeout   time.Duration
	ProbeTimeout      time.Duration

	DatabasePath string

	ShutdownTimeout time.Duration
}

type fileConfig struct {
	Server struct {
		Port        string `yaml:"port"`
		MetricsPort string `yaml:"metrics_port"`
	} `yaml:"server"`

	WeatherAPI struct {
		URL          string `yaml:"url"`
		StatusURL    string `yaml:"status_url"`
		Timeout      string `yaml:"timeout"`
		ProbeTimeout string `yaml:"probe_timeout"`
	} `yaml:"weather_api"`

	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`

	Shutdown struct {
		Timeout string `yaml:"timeout"`
	} `yaml:"shutdown"`
}

// Load reads configuration from config/{ENV_NAME}.yaml (default dev) with
// environment overrides on top. A missing config file is not an error; all
// values have defaults. A .env file in the working directory is loaded
// first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	env := os.Getenv("ENV_NAME")
	if env == "" {
		env = "dev"
	}

	var fc fileConfig
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("config: get working directory: %w", err)
	}
	configPath := filepath.Join(cwd, "config", env+".yaml")
	data, err := os.ReadFile(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	cfg := &Config{}

	cfg.ServerPort = firstNonEmpty(os.Getenv("SERVER_PORT"), fc.Server.Port, "8000")
	cfg.MetricsPort = firstNonEmpty(os.Getenv("METRICS_PORT"), fc.Server.MetricsPort, "8001")

	cfg.Provider = strings.TrimSpace(os.Getenv("WEATHER_API_PROVIDER"))
	if cfg.Provider == "" {
		cfg.Provider = "openmeteo"
	}

	cfg.UpstreamURL = firstNonEmpty(os.Getenv("WEATHER_API_URL"), fc.WeatherAPI.URL,
		"https://api.open-meteo.com/v1/forecast")
	cfg.UpstreamStatusURL = firstNonEmpty(os.Getenv("WEATHER_API_STATUS_URL"), fc.WeatherAPI.StatusURL,
		"https://api.open-meteo.com/v1/status")
	cfg.UpstreamTimeout = parseDuration(fc.WeatherAPI.Timeout, 10*time.Second)
	cfg.ProbeTimeout = parseDuration(fc.WeatherAPI.ProbeTimeout, 5*time.Second)

	cfg.DatabasePath = firstNonEmpty(os.Getenv("DATABASE_PATH"), fc.Database.Path, "weather.db")

	cfg.ShutdownTimeout = parseDuration(fc.Shutdown.Timeout, 30*time.Second)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// parseDuration parses a duration string and returns defaultVal if parsing
// fails or the result is <= 0.
func parseDuration(s string, defaultVal time.Duration) time.Duration {
	s = strings.TrimSpace(s)
	if s == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}

func validate(cfg *Config) error {
	if cfg.ServerPort == cfg.MetricsPort {
		return fmt.Errorf("server port and metrics port must differ, both are %q", cfg.ServerPort)
	}
	if cfg.UpstreamTimeout <= 0 {
		return fmt.Errorf("weather_api.timeout must be positive")
	}
	return nil
}
