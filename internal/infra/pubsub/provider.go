package pubsub

import (
	"context"
	"log/slog"

	"numatu/config"
	"numatu/internal/domain/constants"
	"numatu/internal/domain/service"
	redisclient "numatu/internal/infra/redis"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// noopPublisher drops every event; used when no provider is configured
type noopPublisher struct{}

func (noopPublisher) PublishChangeEvent(context.Context, *service.ChangeEvent) error {
	return nil
}

func (noopPublisher) Close() error {
	return nil
}

// IsNoop reports whether the publisher drops every event
func IsNoop(publisher service.EventPublisher) bool {
	_, ok := publisher.(noopPublisher)

	return ok
}

// PublisherParams holds dependencies for EventPublisher, injected by Fx
type PublisherParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewEventPublisher builds the publisher for pubsub.provider and closes it on stop.
// Without a provider, events stay in-process; that is an error only when the
// notification worker is expected to receive them. The worker only accepts push
// delivery, so worker mode also rejects the redis provider.
func NewEventPublisher(params PublisherParams) (service.EventPublisher, error) {
	cfg := params.Config.PubSub
	if cfg == nil || cfg.Provider == "" {
		if n := params.Config.Notification; n != nil && n.Mode == config.NotificationModeWorker {
			return nil, errors.New("notification.mode worker requires a pubsub provider")
		}
		params.Logger.Info("PubSub not configured, change events stay in-process")

		return noopPublisher{}, nil
	}

	if n := params.Config.Notification; n != nil && n.Mode == config.NotificationModeWorker &&
		cfg.Provider == constants.PubSubProviderRedis {
		return nil, errors.New("pubsub provider redis cannot deliver to the notification worker, use google or local")
	}

	publisher, err := newProviderPublisher(params.Ctx, params.Config, params.Logger)
	if err != nil {
		return nil, err
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			params.Logger.Info("Closing EventPublisher", slog.String("provider", cfg.Provider))

			return publisher.Close()
		},
	})

	return publisher, nil
}

func newProviderPublisher(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.EventPublisher, error) {
	ps := cfg.PubSub
	logger = logger.With(slog.String("provider", ps.Provider))

	switch ps.Provider {
	case constants.PubSubProviderLocal:
		if ps.LocalEndpoint == "" {
			return nil, errors.New("pubsub.localEndpoint is required for the local provider")
		}
		logger.Info("Pushing change events over HTTP", slog.String("endpoint", ps.LocalEndpoint))

		return NewLocalHTTPPublisher(ps.LocalEndpoint, logger), nil

	case constants.PubSubProviderGoogle:
		if ps.ProjectID == "" || ps.TopicID == "" {
			return nil, errors.New("pubsub.projectId and pubsub.topicId are required for the google provider")
		}

		return NewGooglePubSubPublisher(ctx, ps.ProjectID, ps.TopicID, logger)

	case constants.PubSubProviderRedis:
		if ps.RedisChannel == "" {
			return nil, errors.New("pubsub.redisChannel is required for the redis provider")
		}
		logger.Info("Publishing change events to Redis", slog.String("channel", ps.RedisChannel))

		return NewRedisPublisher(redisclient.NewClient(cfg.Redis), ps.RedisChannel, logger), nil

	default:
		return nil, errors.Errorf("unknown pubsub provider: %s", ps.Provider)
	}
}

// Module provides the change-event publisher and its forwarder
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewEventPublisher),
	fx.Invoke(RegisterForwarder),
)
