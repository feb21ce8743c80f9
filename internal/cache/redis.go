package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// redisCache implements Cache on a redis instance.
type redisCache struct {
	client *redis.Client
	logger zerolog.Logger
}

// NewRedisCache creates a redis-backed cache and verifies connectivity.
func NewRedisCache(ctx context.Context, addr string, logger zerolog.Logger) (Cache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}

	logger.Info().Str("addr", addr).Msg("redis cache connected")

	return &redisCache{
		client: client,
		logger: logger.With().Str("component", "redis-cache").Logger(),
	}, nil
}

func (c *redisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("cache set failed")
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

func (c *redisCache) Get(ctx context.Context, key string) (string, error) {
	value, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("cache get failed")
		return "", fmt.Errorf("cache get: %w", err)
	}
	return value, nil
}

func (c *redisCache) Close() error {
	return c.client.Close()
}
