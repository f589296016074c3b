package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"adforge/internal/creative"
)

const keyPrefix = "generation:"

// Redis is the redis-backed ResultCache. Backend unavailability and payload
// corruption both degrade to a miss.
type Redis struct {
	client *redis.Client
	logger zerolog.Logger
}

func NewRedis(client *redis.Client, logger zerolog.Logger) *Redis {
	return &Redis{client: client, logger: logger}
}

func (r *Redis) Get(ctx context.Context, fingerprint string) (*creative.Bundle, bool) {
	data, err := r.client.Get(ctx, keyPrefix+fingerprint).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Warn().Err(err).Msg("cache: redis get failed, treating as miss")
		}
		return nil, false
	}
	var bundle creative.Bundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		r.logger.Warn().Err(err).Msg("cache: corrupt cached bundle, treating as miss")
		return nil, false
	}
	return &bundle, true
}

func (r *Redis) Set(ctx context.Context, fingerprint string, bundle *creative.Bundle, ttl time.Duration) {
	if bundle == nil {
		return
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	data, err := json.Marshal(bundle)
	if err != nil {
		r.logger.Warn().Err(err).Msg("cache: encode bundle failed")
		return
	}
	if err := r.client.SetEx(ctx, keyPrefix+fingerprint, data, ttl).Err(); err != nil {
		r.logger.Warn().Err(err).Msg("cache: redis set failed")
	}
}
