package main

import (
	"context"
	"log/slog"
	"os"

	"numatu/config"
	"numatu/internal/delivery"
	"numatu/internal/delivery/api"
	"numatu/internal/delivery/api/middleware"
	"numatu/internal/delivery/api/router/handler"
	"numatu/internal/delivery/changefeed"
	"numatu/internal/delivery/mqtt"
	"numatu/internal/delivery/notify"
	"numatu/internal/delivery/queue"
	"numatu/internal/delivery/realtime"
	"numatu/internal/delivery/sweeper"
	"numatu/internal/infra/auth"
	logs "numatu/internal/infra/log"
	"numatu/internal/infra/notification"
	"numatu/internal/infra/notifier"
	"numatu/internal/infra/persistence"
	"numatu/internal/infra/pubsub"
	"numatu/internal/infra/qrcode"
	infraqueue "numatu/internal/infra/queue"
	"numatu/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectMiddleware(),
		injectHandler(),
		injectDelivery(),
		pubsub.Module,
		fx.Invoke(
			notify.RegisterInline,
			impl.RegisterMonitorReset,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		notifier.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			persistence.NewCollectionRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewJWTService,
			notification.NewProvider,
			qrcode.NewFromConfig,
			infraqueue.NewExpiryScheduler,
			impl.NewLifecycleMachine,
			impl.NewProximityMonitor,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewCollectionService,
			impl.NewProximityService,
			impl.NewNotificationService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewCollectionHandler,
			handler.NewMarketHandler,
			handler.NewPositionHandler,
			handler.NewDevTokenHandler,
			realtime.NewHub,
			realtime.NewHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
			fx.Annotate(
				sweeper.New,
				fx.ResultTags(`group:"deliveries"`),
			),
			fx.Annotate(
				queue.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
			fx.Annotate(
				mqtt.NewSubscriber,
				fx.ResultTags(`group:"deliveries"`),
			),
			fx.Annotate(
				changefeed.NewRedisSubscriber,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// startServer launches every enabled delivery once the other start hooks have run.
func startServer(ctx context.Context, params startServerParams) {
	params.Append(fx.Hook{
		OnStart: func(context.Context) error {
			for _, d := range params.Deliveries {
				if d == nil {
					continue
				}
				go func() {
					if err := d.Serve(ctx); err != nil {
						slog.Error("Failed to start server", slog.Any("error", err))

						if shutdownErr := params.Shutdown(); shutdownErr != nil {
							slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
							os.Exit(1)
						}
					}
				}()
			}

			return nil
		},
	})
}
