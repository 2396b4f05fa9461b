// Package redis builds the shared go-redis client.
package redis

import (
	"context"

	"numatu/config"
	"numatu/internal/domain/constants"
	"numatu/internal/errors"

	goredis "github.com/redis/go-redis/v9"
)

// NewClient creates a client for the configured Redis server. A nil config targets localhost.
func NewClient(cfg *config.RedisConfig) *goredis.Client {
	if cfg == nil {
		cfg = &config.RedisConfig{}
	}

	return goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// Ping checks connectivity within the default lifecycle timeout.
func Ping(ctx context.Context, client *goredis.Client) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return errors.Wrap(err, "failed to ping Redis")
	}

	return nil
}
