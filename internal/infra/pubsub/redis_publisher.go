package pubsub

import (
	"context"
	"encoding/json"
	"log/slog"

	"numatu/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// redisPublisher implements EventPublisher over a Redis pub/sub channel, used to
// fan committed changes out to sibling API instances
type redisPublisher struct {
	client  *redis.Client
	channel string
	logger  *slog.Logger
}

// NewRedisPublisher creates a publisher writing to channel
func NewRedisPublisher(client *redis.Client, channel string, logger *slog.Logger) service.EventPublisher {
	return &redisPublisher{
		client:  client,
		channel: channel,
		logger:  logger,
	}
}

// PublishChangeEvent publishes the JSON encoded event to the channel
func (p *redisPublisher) PublishChangeEvent(ctx context.Context, event *service.ChangeEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return errors.WithStack(err)
	}

	receivers, err := p.client.Publish(ctx, p.channel, data).Result()
	if err != nil {
		return errors.Wrap(err, "failed to publish change event to redis")
	}

	p.logger.Debug("[RedisPubSub] Event published",
		slog.String("channel", p.channel),
		slog.Int64("version", event.Version),
		slog.Int64("receivers", receivers),
	)

	return nil
}

// Close closes the Redis client
func (p *redisPublisher) Close() error {
	return errors.WithStack(p.client.Close())
}
