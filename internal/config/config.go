// Package config loads service settings from environment variables, with an
// optional .env file for local development.
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

	// Venue data sources.
	SeedFile        string
	KafkaEnabled    bool
	KafkaBrokers    []string
	KafkaVenueTopic string
	KafkaEventTopic string
	KafkaGroupID    string

	// Geocoding configuration.
	MapboxToken      string
	MapboxEnabled    bool
	MapboxTimeout    time.Duration
	MapboxCountry    string
	GeocodeCache     string // "memory" or "redis"
	GeocodeCacheSize int
	GeocodeCacheTTL  time.Duration
	RedisAddr        string
	RedisDB          int
}

// Load reads configuration from the environment, applying defaults where
// unset. A .env file in the working directory is merged in first when
// present.
func Load() (*Config, error) {
	// Missing .env is the normal production case.
	_ = godotenv.Load()

	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	mapboxTimeout, err := parseDuration("MAPBOX_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}
	cacheTTL, err := parseDuration("GEOCODE_CACHE_TTL", "24h")
	if err != nil {
		return nil, err
	}

	mapboxToken := os.Getenv("MAPBOX_TOKEN")
	mapboxEnabled := mapboxToken != ""
	if v := os.Getenv("MAPBOX_ENABLED"); v != "" {
		mapboxEnabled = v == "true"
	}

	kafkaEnabled := os.Getenv("KAFKA_ENABLED") == "true"

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		SeedFile:        envOrDefault("SEED_FILE", "data/venues.json"),
		KafkaEnabled:    kafkaEnabled,
		KafkaBrokers:    splitList(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaVenueTopic: envOrDefault("KAFKA_VENUE_TOPIC", "venue-changes"),
		KafkaEventTopic: envOrDefault("KAFKA_EVENTS_TOPIC", "search-events"),
		KafkaGroupID:    envOrDefault("KAFKA_GROUP_ID", "venue-search"),

		MapboxToken:      mapboxToken,
		MapboxEnabled:    mapboxEnabled,
		MapboxTimeout:    mapboxTimeout,
		MapboxCountry:    envOrDefault("MAPBOX_COUNTRY", "gb"),
		GeocodeCache:     envOrDefault("GEOCODE_CACHE", "memory"),
		GeocodeCacheSize: parseIntOrDefault("GEOCODE_CACHE_SIZE", 1000),
		GeocodeCacheTTL:  cacheTTL,
		RedisAddr:        envOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisDB:          parseIntOrDefault("REDIS_DB", 0),
	}

	if cfg.MapboxEnabled && cfg.MapboxToken == "" {
		return nil, errors.New("MAPBOX_ENABLED is true but MAPBOX_TOKEN is not set")
	}
	if cfg.GeocodeCache != "memory" && cfg.GeocodeCache != "redis" {
		return nil, fmt.Errorf("invalid GEOCODE_CACHE %q (want memory or redis)", cfg.GeocodeCache)
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
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
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseIntOrDefault(key string, fallback int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 0 {
			return n
		}
	}
	return fallback
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
