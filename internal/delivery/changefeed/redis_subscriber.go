// Package changefeed re-injects change events committed by sibling instances into the
// local notifier, so realtime clients connected here see them too.
package changefeed

import (
	"context"
	"encoding/json"
	"log/slog"

	"numatu/config"
	"numatu/internal/delivery"
	"numatu/internal/domain/constants"
	"numatu/internal/domain/service"
	redisclient "numatu/internal/infra/redis"

	"github.com/pkg/errors"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

type redisSubscriber struct {
	client     *goredis.Client
	channel    string
	instanceID string
	notifier   service.ChangeNotifier
	logger     *slog.Logger
	pubsub     *goredis.PubSub
}

// Params holds dependencies for the redis subscriber, injected by Fx.
type Params struct {
	fx.In

	Lc       fx.Lifecycle
	Config   *config.Config
	Notifier service.ChangeNotifier
	Logger   *slog.Logger
}

// NewRedisSubscriber creates the subscriber delivery. It returns nil unless the redis
// provider is selected.
func NewRedisSubscriber(params Params) delivery.Delivery {
	cfg := params.Config.PubSub
	if cfg == nil || cfg.Provider != constants.PubSubProviderRedis {
		return nil
	}

	s := &redisSubscriber{
		client:     redisclient.NewClient(params.Config.Redis),
		channel:    cfg.RedisChannel,
		instanceID: params.Config.Env.InstanceID,
		notifier:   params.Notifier,
		logger:     params.Logger,
	}

	params.Lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := redisclient.Ping(ctx, s.client); err != nil {
				return err
			}
			s.pubsub = s.client.Subscribe(context.Background(), s.channel)

			return nil
		},
		OnStop: func(context.Context) error {
			if s.pubsub != nil {
				_ = s.pubsub.Close()
			}

			return errors.WithStack(s.client.Close())
		},
	})

	return s
}

// Serve consumes the channel until the subscription is closed.
func (s *redisSubscriber) Serve(ctx context.Context) error {
	if s.pubsub == nil {
		return errors.New("redis subscriber served before start")
	}

	s.logger.Info("Listening for remote change events", slog.String("channel", s.channel))
	for msg := range s.pubsub.Channel() {
		s.handle(ctx, []byte(msg.Payload))
	}

	return nil
}

// handle decodes one payload and republishes it locally unless it originated here.
func (s *redisSubscriber) handle(ctx context.Context, payload []byte) {
	var event service.ChangeEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		s.logger.Warn("Dropping malformed change event", slog.Any("error", err))

		return
	}
	if event.Collection == nil || event.Origin == s.instanceID {
		return
	}

	if err := s.notifier.Publish(ctx, &event); err != nil {
		s.logger.Warn("Failed to re-inject remote change event",
			slog.String("collection_id", event.Collection.ID.String()),
			slog.Any("error", err))
	}
}
