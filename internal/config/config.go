package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Kafka advisory sink (optional; disabled when no topic is set).
	KafkaBrokers       []string
	KafkaAdvisoryTopic string
	KafkaEnabled       bool

	// Reverse geocoding (optional; spatial index answers when disabled).
	GeocoderURL       string
	GeocoderEnabled   bool
	GeocoderTimeout   time.Duration
	GeocoderCacheSize int

	// Climate source (rainfall + soil moisture).
	ClimateURL     string
	ClimateTimeout time.Duration

	// Satellite trend window in months.
	SatelliteTrendMonths int
}

// Load reads configuration from the environment, applying defaults where
// unset. A .env file in the working directory is honored when present.
func Load() (*Config, error) {
	// Best effort: absence of a .env file is the normal production case.
	_ = godotenv.Load()

	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	geocoderTimeout, err := parseDuration("GEOCODER_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}

	climateTimeout, err := parseDuration("CLIMATE_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}

	cacheSize, err := parsePositiveInt("GEOCODER_CACHE_SIZE", 1000)
	if err != nil {
		return nil, err
	}

	trendMonths, err := parsePositiveInt("SATELLITE_TREND_MONTHS", 6)
	if err != nil {
		return nil, err
	}

	geocoderURL := os.Getenv("GEOCODER_URL")
	geocoderEnabled := geocoderURL != ""
	if v := os.Getenv("GEOCODER_ENABLED"); v != "" {
		geocoderEnabled = v == "true"
	}

	advisoryTopic := os.Getenv("KAFKA_ADVISORY_TOPIC")
	kafkaEnabled := advisoryTopic != ""
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		KafkaBrokers:       splitList(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaAdvisoryTopic: advisoryTopic,
		KafkaEnabled:       kafkaEnabled,

		GeocoderURL:       geocoderURL,
		GeocoderEnabled:   geocoderEnabled,
		GeocoderTimeout:   geocoderTimeout,
		GeocoderCacheSize: cacheSize,

		ClimateURL:     envOrDefault("CLIMATE_URL", "https://archive-api.open-meteo.com/v1/archive"),
		ClimateTimeout: climateTimeout,

		SatelliteTrendMonths: trendMonths,
	}

	if cfg.KafkaEnabled && cfg.KafkaAdvisoryTopic == "" {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_ADVISORY_TOPIC is not set")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ADVISORY_TOPIC is set but KAFKA_BROKERS is empty")
	}
	if cfg.GeocoderEnabled && cfg.GeocoderURL == "" {
		return nil, errors.New("GEOCODER_ENABLED is true but GEOCODER_URL is not set")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	s := envOrDefault(key, fallback)
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}

func parsePositiveInt(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return n, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
