package mapbox

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/prismdirectory/venue-search-service/internal/domain"
	"github.com/prismdirectory/venue-search-service/internal/observability"
)

// RedisGeocoder wraps a Geocoder with a shared Redis cache, so multiple
// service replicas pool their geocoding quota. Cache failures degrade to the
// inner geocoder; Redis being down must never break resolution.
type RedisGeocoder struct {
	inner   domain.Geocoder
	client  *redis.Client
	ttl     time.Duration
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewRedisGeocoder creates a Redis-backed cache decorator around a geocoder.
func NewRedisGeocoder(inner domain.Geocoder, client *redis.Client, ttl time.Duration, metrics *observability.Metrics, logger *slog.Logger) *RedisGeocoder {
	return &RedisGeocoder{
		inner:   inner,
		client:  client,
		ttl:     ttl,
		metrics: metrics,
		logger:  logger,
	}
}

func (r *RedisGeocoder) Geocode(ctx context.Context, query, countryCode string) (domain.GeocodeResult, error) {
	key := cacheKey(query, countryCode)

	raw, err := r.client.Get(ctx, key).Result()
	if err == nil {
		var result domain.GeocodeResult
		if jsonErr := json.Unmarshal([]byte(raw), &result); jsonErr == nil {
			r.metrics.GeocodeCache.WithLabelValues("hit").Inc()
			return result, nil
		}
		r.logger.Warn("corrupt geocode cache entry, refetching", "key", key)
	} else if err != redis.Nil {
		r.logger.Warn("geocode cache read failed", "key", key, "error", err)
	}
	r.metrics.GeocodeCache.WithLabelValues("miss").Inc()

	result, err := r.inner.Geocode(ctx, query, countryCode)
	if err != nil {
		return result, err
	}

	if result.FormattedAddress != "" {
		if data, jsonErr := json.Marshal(result); jsonErr == nil {
			if setErr := r.client.Set(ctx, key, data, r.ttl).Err(); setErr != nil {
				r.logger.Warn("geocode cache write failed", "key", key, "error", setErr)
			}
		}
	}
	return result, nil
}
