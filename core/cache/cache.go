package cache

import (
	"context"
	"fmt"
	"time"

	"travel-ticket-api/core/config"
	"travel-ticket-api/core/constants"
	"travel-ticket-api/core/logger"

	"github.com/redis/go-redis/v9"
)

type Cache interface {
	IsTokenBlacklisted(ctx context.Context, tokenID string) (bool, error)
	AddToTokenBlacklist(ctx context.Context, tokenID string, ttl time.Duration) error
	Ping(ctx context.Context) error
	Close() error
}

// New returns a Redis-backed cache when REDIS_ADDR is set and an in-process
// one otherwise.
func New(ctx context.Context, cfg config.RedisConfig) (Cache, error) {
	if cfg.Addr == "" {
		logger.Info("Cache:New:InMemory")
		return NewMemoryCache(), nil
	}

	c := NewRedisCache(redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}))
	if err := c.Ping(ctx); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Cache:New:Redis", "addr", cfg.Addr, "db", cfg.DB)
	return c, nil
}

type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) IsTokenBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	n, err := c.client.Exists(ctx, constants.RedisKeyTokenBlacklist+tokenID).Result()
	if err != nil {
		logger.Error("RedisCache:IsTokenBlacklisted:Error", "error", err)
		return false, err
	}
	return n > 0, nil
}

func (c *RedisCache) AddToTokenBlacklist(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := c.client.Set(ctx, constants.RedisKeyTokenBlacklist+tokenID, "1", ttl).Err(); err != nil {
		logger.Error("RedisCache:AddToTokenBlacklist:Error", "error", err)
		return err
	}
	return nil
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
