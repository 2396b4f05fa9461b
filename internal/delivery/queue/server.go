// Package queue runs the asynq worker that processes delayed claim-expiry tasks.
package queue

import (
	"context"
	"log/slog"

	"numatu/config"
	"numatu/internal/delivery"
	deliverycontext "numatu/internal/delivery/context"
	"numatu/internal/domain/constants"
	infraqueue "numatu/internal/infra/queue"
	"numatu/internal/usecase"

	"github.com/hibiken/asynq"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type queueServer struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	logger *slog.Logger
}

// ServerParams holds dependencies for the queue server, injected by Fx.
type ServerParams struct {
	fx.In

	Lc          fx.Lifecycle
	Config      *config.Config
	Collections usecase.CollectionUsecase
	Logger      *slog.Logger
}

// NewServer creates the asynq server delivery. It returns nil when the queue is disabled.
func NewServer(params ServerParams) delivery.Delivery {
	if params.Config.Queue == nil || !params.Config.Queue.Enabled {
		return nil
	}

	redisOpt, cfg := infraqueue.BuildServerConfig(params.Config, params.Logger)
	srv := &queueServer{
		server: asynq.NewServer(redisOpt, cfg),
		mux:    NewServeMux(params.Collections, params.Logger),
		logger: params.Logger,
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			srv.logger.Info("Shutting down queue server")
			srv.server.Shutdown()

			return nil
		},
	})

	return srv
}

// NewServeMux routes task types to their handlers.
func NewServeMux(collections usecase.CollectionUsecase, logger *slog.Logger) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.Handle(constants.TaskCollectionExpire, NewExpireHandler(collections, logger))

	return mux
}

// Serve starts processing tasks. asynq runs its workers in the background.
func (s *queueServer) Serve(ctx context.Context) error {
	s.logger.Info("Starting queue server", slog.String("queue", infraqueue.DefaultQueue))

	return errors.WithStack(s.server.Start(s.mux))
}

// ExpireHandler releases the collection named by a collection:expire task.
type ExpireHandler struct {
	collections usecase.CollectionUsecase
	logger      *slog.Logger
}

// NewExpireHandler creates the collection:expire task handler.
func NewExpireHandler(collections usecase.CollectionUsecase, logger *slog.Logger) *ExpireHandler {
	return &ExpireHandler{collections: collections, logger: logger}
}

// ProcessTask implements asynq.Handler. Malformed payloads are not retried.
func (h *ExpireHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	payload, err := infraqueue.ParseExpirePayload(task)
	if err != nil {
		return errors.Wrapf(asynq.SkipRetry, "invalid expire payload: %v", err)
	}

	logger := h.logger.With(slog.String("collection_id", payload.CollectionID.String()))
	ctx = deliverycontext.WithLogger(ctx, logger)

	released, err := h.collections.ExpireCollection(ctx, payload.CollectionID)
	if err != nil {
		return errors.Wrap(err, "failed to expire collection")
	}

	if released {
		logger.Info("Claim expired by scheduled task")
	} else {
		logger.Debug("Scheduled expiry found nothing to release")
	}

	return nil
}
