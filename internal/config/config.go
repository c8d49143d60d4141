package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all settings, populated from environment variables (with
// optional .env file support for local runs).
type Config struct {
	Latitude  float64
	Longitude float64

	OutputDir  string
	OutputFile string

	// Calendar UID domain suffix; also appears in the PRODID.
	CalendarDomain string

	NWSBaseURL   string
	UserAgent    string
	HTTPTimeout  time.Duration
	NWSRateLimit float64 // requests per second

	LogLevel  string
	LogFormat string

	// Path for Prometheus textfile-collector output; empty disables it.
	MetricsTextfile string
}

// Load reads configuration from environment variables, applying defaults
// where unset. Latitude and longitude are required.
func Load() (*Config, error) {
	// Best effort: a missing .env file is the normal case under cron.
	_ = godotenv.Load()

	lat, err := requiredFloat("LATITUDE")
	if err != nil {
		return nil, err
	}
	lon, err := requiredFloat("LONGITUDE")
	if err != nil {
		return nil, err
	}

	timeout, err := time.ParseDuration(envOrDefault("HTTP_TIMEOUT", "10s"))
	if err != nil || timeout <= 0 {
		return nil, errors.New("invalid HTTP_TIMEOUT")
	}

	rps, err := strconv.ParseFloat(envOrDefault("NWS_RATE_LIMIT", "1"), 64)
	if err != nil || rps <= 0 {
		return nil, errors.New("invalid NWS_RATE_LIMIT")
	}

	cfg := &Config{
		Latitude:  lat,
		Longitude: lon,

		OutputDir:  envOrDefault("OUTPUT_DIR", "."),
		OutputFile: envOrDefault("OUTPUT_FILE", "forecast.ics"),

		CalendarDomain: envOrDefault("CAL_DOMAIN", "noaa2ical.local"),

		NWSBaseURL:   envOrDefault("NWS_BASE_URL", "https://api.weather.gov"),
		UserAgent:    envOrDefault("HTTP_USER_AGENT", "noaa2ical (github.com/kujhawk94/noaa2ical)"),
		HTTPTimeout:  timeout,
		NWSRateLimit: rps,

		LogLevel:  envOrDefault("LOG_LEVEL", "info"),
		LogFormat: envOrDefault("LOG_FORMAT", "text"),

		MetricsTextfile: os.Getenv("METRICS_TEXTFILE"),
	}

	if cfg.Latitude < -90 || cfg.Latitude > 90 {
		return nil, errors.New("LATITUDE out of range")
	}
	if cfg.Longitude < -180 || cfg.Longitude > 180 {
		return nil, errors.New("LONGITUDE out of range")
	}
	if cfg.OutputFile == "" {
		return nil, errors.New("OUTPUT_FILE is required")
	}
	if cfg.CalendarDomain == "" {
		return nil, errors.New("CAL_DOMAIN is required")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requiredFloat(key string) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return 0, fmt.Errorf("%s is required", key)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}
