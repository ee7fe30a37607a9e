package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/prismdirectory/venue-search-service/internal/adapter/httpapi"
	kafkaadapter "github.com/prismdirectory/venue-search-service/internal/adapter/kafka"
	"github.com/prismdirectory/venue-search-service/internal/adapter/mapbox"
	"github.com/prismdirectory/venue-search-service/internal/config"
	"github.com/prismdirectory/venue-search-service/internal/domain"
	"github.com/prismdirectory/venue-search-service/internal/observability"
	"github.com/prismdirectory/venue-search-service/internal/search"
	"github.com/prismdirectory/venue-search-service/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	venues := store.New(logger)
	if cfg.SeedFile != "" {
		if err := venues.LoadSeed(cfg.SeedFile); err != nil {
			if cfg.KafkaEnabled {
				// The feed can still populate the store.
				logger.Warn("seed load failed, waiting on venue feed", "error", err)
			} else {
				logger.Error("seed load failed and no venue feed is configured", "error", err)
				os.Exit(1)
			}
		}
	}

	geocoder := buildGeocoder(cfg, metrics, logger)
	resolver := domain.NewResolver(geocoder, cfg.MapboxCountry, logger)

	var recorder search.EventRecorder
	var eventWriter *kafkaadapter.EventWriter
	var feed *kafkaadapter.FeedReader
	if cfg.KafkaEnabled {
		eventWriter = kafkaadapter.NewEventWriter(cfg, logger)
		recorder = eventWriter
		feed = kafkaadapter.NewFeedReader(cfg, venues, metrics, logger)
	} else {
		logger.Info("kafka disabled, serving seed data only")
	}

	service := search.New(venues, resolver, recorder, metrics, logger, nil)
	srv := httpapi.NewServer(cfg.HTTPAddr, service, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	if feed != nil {
		go func() {
			if err := feed.Run(ctx); err != nil {
				logger.Error("venue feed error", "error", err)
			}
		}()
	}

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if feed != nil {
		if err := feed.Close(); err != nil {
			logger.Error("venue feed close error", "error", err)
		}
	}
	if eventWriter != nil {
		if err := eventWriter.Close(); err != nil {
			logger.Error("event writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}

// buildGeocoder assembles the geocoding chain: mapbox client wrapped in a
// memory or redis cache, or nil when geocoding is disabled. A nil geocoder
// leaves the resolver on its city-table fallback.
func buildGeocoder(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) domain.Geocoder {
	if !cfg.MapboxEnabled {
		logger.Info("mapbox geocoding disabled")
		return nil
	}

	client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, metrics, logger)

	if cfg.GeocodeCache == "redis" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
		logger.Info("mapbox geocoding enabled", "cache", "redis", "addr", cfg.RedisAddr, "ttl", cfg.GeocodeCacheTTL)
		return mapbox.NewRedisGeocoder(client, rdb, cfg.GeocodeCacheTTL, metrics, logger)
	}

	logger.Info("mapbox geocoding enabled", "cache", "memory", "cache_size", cfg.GeocodeCacheSize)
	return mapbox.NewCachedGeocoder(client, cfg.GeocodeCacheSize, metrics)
}
