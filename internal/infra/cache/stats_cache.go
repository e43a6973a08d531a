// Package cache provides StatsCache implementations. Redis backs the cache in
// production; when no Redis connection is configured a no-op cache keeps every
// read going straight to the repositories.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"ratinity/config"
	"ratinity/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// redisStatsCache implements service.StatsCache on a Redis client.
type redisStatsCache struct {
	client *redis.Client
	logger *slog.Logger
}

// noopStatsCache always misses. Used when Redis is not configured.
type noopStatsCache struct{}

func (noopStatsCache) Get(context.Context, string, any) (bool, error) { return false, nil }

func (noopStatsCache) Set(context.Context, string, any, time.Duration) error { return nil }

// CacheParams holds dependencies for StatsCache, injected by Fx
type CacheParams struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// NewStatsCache creates a StatsCache based on configuration.
func NewStatsCache(params CacheParams) (service.StatsCache, error) {
	cfg := params.Config.Redis
	logger := params.Logger

	if cfg == nil || cfg.Addr == "" {
		logger.Info("Redis not configured, using no-op stats cache")

		return noopStatsCache{}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	params.Lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				return errors.Wrap(err, "failed to ping redis")
			}
			logger.Info("Redis stats cache connected", slog.String("addr", cfg.Addr))

			return nil
		},
		OnStop: func(context.Context) error {
			logger.Info("Closing redis stats cache")

			return client.Close()
		},
	})

	return &redisStatsCache{client: client, logger: logger}, nil
}

// Get loads a cached JSON value into dest. It reports whether the key was present.
func (c *redisStatsCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "failed to get cache key %s", key)
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		// Treat undecodable entries as a miss so callers fall back to the source.
		c.logger.WarnContext(ctx, "discarding undecodable cache entry",
			slog.String("key", key),
			slog.Any("error", err),
		)

		return false, nil
	}

	return true, nil
}

// Set stores a value as JSON under the key with the given TTL.
func (c *redisStatsCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal cache value for %s", key)
	}

	if err := c.client.Set(ctx, key, b, ttl).Err(); err != nil {
		return errors.Wrapf(err, "failed to set cache key %s", key)
	}

	return nil
}
