package pubsub

import (
	"context"
	"log/slog"

	"numatu/config"
	"numatu/internal/domain/service"

	"go.uber.org/fx"
)

// Forwarder relays locally committed change events to the external publisher.
// Events that arrived from other instances are not forwarded again.
type Forwarder struct {
	publisher  service.EventPublisher
	instanceID string
	logger     *slog.Logger
}

// NewForwarder creates a forwarder for events originating at instanceID
func NewForwarder(publisher service.EventPublisher, instanceID string, logger *slog.Logger) *Forwarder {
	return &Forwarder{
		publisher:  publisher,
		instanceID: instanceID,
		logger:     logger,
	}
}

// Handle is a service.ChangeHandler
func (f *Forwarder) Handle(ctx context.Context, event *service.ChangeEvent) {
	if event.Origin != f.instanceID {
		return
	}

	if err := f.publisher.PublishChangeEvent(ctx, event); err != nil {
		attrs := []any{slog.Any("error", err), slog.Int64("version", event.Version)}
		if event.Collection != nil {
			attrs = append(attrs, slog.String("collection_id", event.Collection.ID.String()))
		}
		f.logger.Error("Failed to forward change event", attrs...)
	}
}

// ForwarderParams holds dependencies for RegisterForwarder, injected by Fx
type ForwarderParams struct {
	fx.In

	Lc        fx.Lifecycle
	Config    *config.Config
	Notifier  service.ChangeNotifier
	Publisher service.EventPublisher
	Logger    *slog.Logger
}

// RegisterForwarder subscribes a Forwarder for the lifetime of the app.
// Nothing is subscribed when publishing is disabled.
func RegisterForwarder(params ForwarderParams) {
	if IsNoop(params.Publisher) {
		return
	}

	forwarder := NewForwarder(params.Publisher, params.Config.Env.InstanceID, params.Logger)

	var unsubscribe func()
	params.Lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			unsubscribe = params.Notifier.Subscribe(forwarder.Handle)

			return nil
		},
		OnStop: func(context.Context) error {
			if unsubscribe != nil {
				unsubscribe()
			}

			return nil
		},
	})
}
