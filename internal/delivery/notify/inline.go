// Package notify dispatches handshake push notifications from the API process.
package notify

import (
	"context"
	"log/slog"

	"numatu/config"
	deliverycontext "numatu/internal/delivery/context"
	"numatu/internal/domain/service"
	"numatu/internal/usecase"

	"go.uber.org/fx"
)

// InlineParams holds dependencies for the inline dispatcher, injected by Fx.
type InlineParams struct {
	fx.In

	Lc            fx.Lifecycle
	Config        *config.Config
	Notifier      service.ChangeNotifier
	Notifications usecase.NotificationUsecase
	Logger        *slog.Logger
}

// RegisterInline subscribes the notification usecase to local change events when
// notification mode is inline. Events re-injected from other instances are skipped
// so each change is pushed once cluster-wide.
func RegisterInline(params InlineParams) {
	if params.Config.Notification == nil || params.Config.Notification.Mode != config.NotificationModeInline {
		return
	}

	handler := NewInlineHandler(params.Config.Env.InstanceID, params.Notifications, params.Logger)

	var unsubscribe func()
	params.Lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			unsubscribe = params.Notifier.Subscribe(handler)
			params.Logger.Info("Inline notification dispatch enabled")

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

// NewInlineHandler builds the change handler that dispatches events committed by instanceID.
func NewInlineHandler(instanceID string, notifications usecase.NotificationUsecase, logger *slog.Logger) service.ChangeHandler {
	return func(ctx context.Context, event *service.ChangeEvent) {
		if event == nil || event.Collection == nil || event.Origin != instanceID {
			return
		}

		log := logger
		if event.RequestID != "" {
			log = logger.With(slog.String("request_id", event.RequestID))
			ctx = deliverycontext.WithRequestID(ctx, event.RequestID)
		}
		ctx = deliverycontext.WithLogger(ctx, log)

		if err := notifications.Dispatch(ctx, event); err != nil {
			log.Error("Failed to dispatch notification",
				slog.String("collection_id", event.Collection.ID.String()),
				slog.Int64("version", event.Version),
				slog.Any("error", err))
		}
	}
}
