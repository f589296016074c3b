package infra

import (
	"fmt"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient builds a redis client from the configured URL. The caller
// decides what to do when no URL is configured; the result cache falls back
// to its in-memory implementation.
func NewRedisClient(cfg *Config) (*redis.Client, error) {
	if cfg == nil || cfg.RedisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is not configured")
	}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}
