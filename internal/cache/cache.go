// Package cache implements the revalidation cache for upstream CMS
// responses.
//
// The service does not decide freshness policy here: each fetch declares
// its own revalidation window and the cache only honors the declared TTL.
// When no backend is configured the no-op implementation is used and every
// fetch goes straight to the CMS.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Sharecom5/TBM/internal/logger"
)

// Cache stores raw upstream response bodies keyed by request URL for the
// duration of the declared revalidation window.
type Cache interface {
	// Get returns the cached body for key, or false when absent/expired.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores body under key for the given TTL.
	Set(ctx context.Context, key string, body []byte, ttl time.Duration)
}

// Nop is a Cache that stores nothing. Used when Redis is not configured.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]byte, bool)         { return nil, false }
func (Nop) Set(context.Context, string, []byte, time.Duration) {}

const keyPrefix = "tbm:revalidate:"

// Redis is a Cache backed by a Redis instance. Backend failures degrade to
// cache misses, they never surface to the caller.
type Redis struct {
	client redis.UniversalClient
	logger logger.Logger
}

// NewRedis creates a Redis-backed cache.
func NewRedis(client redis.UniversalClient, log logger.Logger) *Redis {
	return &Redis{client: client, logger: log}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	body, err := r.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Warn("Cache read failed",
				logger.String("key", key),
				logger.Error(err),
			)
		}
		return nil, false
	}
	return body, true
}

func (r *Redis) Set(ctx context.Context, key string, body []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	if err := r.client.Set(ctx, keyPrefix+key, body, ttl).Err(); err != nil {
		r.logger.Warn("Cache write failed",
			logger.String("key", key),
			logger.Duration("ttl", ttl),
			logger.Error(err),
		)
	}
}
