package impl

import (
	"context"
	"log/slog"
	"time"

	"numatu/config"
	deliverycontext "numatu/internal/delivery/context"
	"numatu/internal/domain/entity"
	domainerrors "numatu/internal/domain/errors"
	"numatu/internal/domain/proximity"
	"numatu/internal/domain/repository"
	"numatu/internal/domain/service"
	"numatu/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type proximityService struct {
	repo        repository.CollectionRepository
	collections usecase.CollectionUsecase
	monitor     *proximity.Monitor
	logger      *slog.Logger
}

// ProximityServiceParams holds dependencies for ProximityService, injected by Fx.
type ProximityServiceParams struct {
	fx.In

	Repo        repository.CollectionRepository
	Collections usecase.CollectionUsecase
	Monitor     *proximity.Monitor
	Logger      *slog.Logger
}

// NewProximityService creates a new proximity service instance
func NewProximityService(params ProximityServiceParams) usecase.ProximityUsecase {
	logger := params.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &proximityService{
		repo:        params.Repo,
		collections: params.Collections,
		monitor:     params.Monitor,
		logger:      logger,
	}
}

// NewProximityMonitor builds the arrival monitor from the lifecycle configuration.
func NewProximityMonitor(cfg *config.Config) *proximity.Monitor {
	radius := proximity.DefaultArrivalRadiusMeters
	if cfg != nil && cfg.Lifecycle != nil {
		radius = cfg.Lifecycle.ArrivalRadiusMeters
	}

	return proximity.NewMonitor(radius)
}

// MonitorResetParams holds dependencies for RegisterMonitorReset, injected by Fx.
type MonitorResetParams struct {
	fx.In

	Lc          fx.Lifecycle
	Collections usecase.CollectionUsecase
	Monitor     *proximity.Monitor
}

// RegisterMonitorReset drops monitor state once a collection leaves EN_ROUTE.
func RegisterMonitorReset(params MonitorResetParams) {
	var unsubscribe func()
	params.Lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			unsubscribe = params.Collections.Subscribe(NewMonitorResetHandler(params.Monitor))

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

// NewMonitorResetHandler forgets the current and previous collector of every
// collection that is no longer EN_ROUTE.
func NewMonitorResetHandler(monitor *proximity.Monitor) service.ChangeHandler {
	return func(_ context.Context, event *service.ChangeEvent) {
		if event == nil || event.Collection == nil || event.Collection.Status == entity.StatusEnRoute {
			return
		}

		c := event.Collection
		if c.CollectorID != nil {
			monitor.ForgetCollection(*c.CollectorID, c.ID)
		}
		if event.PreviousCollectorID != nil {
			monitor.ForgetCollection(*event.PreviousCollectorID, c.ID)
		}
	}
}

func (srv *proximityService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ReportPosition feeds the sample to the monitor and fires the arrival as the system actor
func (srv *proximityService) ReportPosition(ctx context.Context, sample entity.PositionSample) (*usecase.PositionResult, error) {
	if sample.CollectorID == uuid.Nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("collector is required")
	}
	if sample.RecordedAt.IsZero() {
		sample.RecordedAt = time.Now().UTC()
	}

	enRoute, err := srv.repo.FindByCollector(ctx, sample.CollectorID, entity.StatusEnRoute)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find en route collection")
	}

	var target *entity.Collection
	if len(enRoute) > 0 {
		target = enRoute[0]
	}

	if !srv.monitor.Observe(sample, target) {
		return &usecase.PositionResult{}, nil
	}

	srv.log(ctx).Info("Collector within arrival radius",
		slog.Any("collector_id", sample.CollectorID),
		slog.Any("collection_id", target.ID),
		slog.Float64("radius_m", srv.monitor.RadiusMeters()))

	arrived, err := srv.collections.ReportArrival(ctx, entity.SystemActor(), target.ID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrInvalidState) || errors.Is(err, domainerrors.ErrCollectionNotFound) {
			// the collector reported arrival manually or the claim is gone
			srv.monitor.ForgetCollection(sample.CollectorID, target.ID)

			return &usecase.PositionResult{}, nil
		}

		srv.monitor.Release(sample.CollectorID, target.ID)
		srv.log(ctx).Warn("Automatic arrival failed", slog.Any("collection_id", target.ID), slog.Any("error", err))

		return nil, err
	}

	return &usecase.PositionResult{
		Arrived:    true,
		Collection: arrived.RedactedFor(entity.Actor{ID: sample.CollectorID, Role: entity.RoleCollector}),
	}, nil
}
