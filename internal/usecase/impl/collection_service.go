// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	"numatu/config"
	deliverycontext "numatu/internal/delivery/context"
	"numatu/internal/domain/entity"
	domainerrors "numatu/internal/domain/errors"
	"numatu/internal/domain/lifecycle"
	"numatu/internal/domain/market"
	"numatu/internal/domain/repository"
	"numatu/internal/domain/service"
	"numatu/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const defaultMaxCommitAttempts = 3

// collectionService implements the CollectionUsecase interface.
type collectionService struct {
	repo        repository.CollectionRepository
	machine     *lifecycle.Machine
	notifier    service.ChangeNotifier
	scheduler   service.ExpiryScheduler
	marketOpts  market.Options
	maxAttempts int
	instanceID  string
	logger      *slog.Logger
}

// CollectionServiceParams holds dependencies for CollectionService, injected by Fx.
type CollectionServiceParams struct {
	fx.In

	Repo      repository.CollectionRepository
	Machine   *lifecycle.Machine
	Notifier  service.ChangeNotifier
	Scheduler service.ExpiryScheduler `optional:"true"`
	Config    *config.Config
	Logger    *slog.Logger
}

// NewCollectionService creates a new collection service instance
func NewCollectionService(params CollectionServiceParams) usecase.CollectionUsecase {
	srv := &collectionService{
		repo:        params.Repo,
		machine:     params.Machine,
		notifier:    params.Notifier,
		scheduler:   params.Scheduler,
		maxAttempts: defaultMaxCommitAttempts,
		logger:      params.Logger,
	}

	if params.Config != nil {
		srv.instanceID = params.Config.Env.InstanceID
		if lc := params.Config.Lifecycle; lc != nil {
			srv.marketOpts.MaxRadiusKm = lc.MaxMarketRadiusKm
			if lc.MaxCommitAttempts > 0 {
				srv.maxAttempts = lc.MaxCommitAttempts
			}
		}
	}
	if srv.logger == nil {
		srv.logger = slog.Default()
	}

	return srv
}

// NewLifecycleMachine builds the state machine from the lifecycle configuration.
func NewLifecycleMachine(cfg *config.Config) *lifecycle.Machine {
	window := lifecycle.DefaultClaimWindow
	if cfg != nil && cfg.Lifecycle != nil {
		window = cfg.Lifecycle.ClaimWindow
	}

	return lifecycle.NewMachine(lifecycle.WithClaimWindow(window))
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *collectionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateCollection publishes a new collection on the market
func (srv *collectionService) CreateCollection(ctx context.Context, actor entity.Actor, input *usecase.CreateCollectionInput) (*entity.Collection, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	created, err := srv.machine.Create(actor, lifecycle.Draft{
		Material:    input.Material,
		Title:       input.Title,
		Description: input.Description,
		Notes:       input.Notes,
		Priority:    input.Priority,
		WeightKg:    input.WeightKg,
		Location: entity.Location{
			Coordinates:  entity.Coordinates{Lat: input.Latitude, Lng: input.Longitude},
			Address:      input.Address,
			Neighborhood: input.Neighborhood,
			City:         input.City,
		},
		PhotoURLs: input.PhotoURLs,
	})
	if err != nil {
		return nil, err
	}

	if err := srv.repo.Create(ctx, created); err != nil {
		srv.log(ctx).Error("Failed to create collection", slog.Any("error", err), slog.Any("generator_id", actor.ID))

		return nil, errors.Wrap(err, "failed to create collection")
	}

	srv.log(ctx).Info("Collection announced",
		slog.Any("collection_id", created.ID),
		slog.Any("generator_id", actor.ID),
		slog.String("material", created.Material.String()))

	srv.publish(ctx, nil, created)

	return created.RedactedFor(actor), nil
}

func validateCreateInput(input *usecase.CreateCollectionInput) error {
	switch {
	case input == nil:
		return domainerrors.ErrValidationFailed.WithDetails("missing collection data")
	case !input.Material.IsValid():
		return domainerrors.ErrValidationFailed.WithDetails("unknown material " + input.Material.String())
	case input.WeightKg <= 0:
		return domainerrors.ErrValidationFailed.WithDetails("weight must be positive")
	case !input.Priority.IsValid():
		return domainerrors.ErrValidationFailed.WithDetails("unknown priority " + string(input.Priority))
	case !(entity.Coordinates{Lat: input.Latitude, Lng: input.Longitude}).IsKnown():
		return domainerrors.ErrValidationFailed.WithDetails("pickup coordinates are required")
	}

	return nil
}

// GetCollection returns a single collection as the actor may see it
func (srv *collectionService) GetCollection(ctx context.Context, actor entity.Actor, id uuid.UUID) (*entity.Collection, error) {
	c, err := srv.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if srv.machine.IsExpired(c) {
		if _, err := srv.ExpireCollection(ctx, id); err != nil {
			return nil, err
		}
		if c, err = srv.load(ctx, id); err != nil {
			return nil, err
		}
	}

	return c.RedactedFor(actor), nil
}

// ListOwnCollections returns what the actor published, carries, or everything for admins
func (srv *collectionService) ListOwnCollections(ctx context.Context, actor entity.Actor) ([]*entity.Collection, error) {
	var (
		records []*entity.Collection
		err     error
	)

	switch actor.Role {
	case entity.RoleAdvertiser:
		records, err = srv.repo.FindByGenerator(ctx, actor.ID)
	case entity.RoleCollector:
		records, err = srv.repo.FindByCollector(ctx, actor.ID)
	case entity.RoleAdmin:
		records, err = srv.repo.FindAll(ctx)
	default:
		return nil, domainerrors.ErrCollectionForbidden.WithDetails("role cannot list collections")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to list collections")
	}

	redacted := make([]*entity.Collection, 0, len(records))
	for _, c := range records {
		redacted = append(redacted, c.RedactedFor(actor))
	}

	return redacted, nil
}

// Claim assigns an open collection to the collector
func (srv *collectionService) Claim(ctx context.Context, actor entity.Actor, id uuid.UUID) (*entity.Collection, error) {
	claimed, err := srv.mutate(ctx, id, "claim", func(current *entity.Collection) (*entity.Collection, error) {
		return srv.machine.Claim(current, actor)
	})
	if err != nil {
		return nil, err
	}

	if srv.scheduler != nil && claimed.ExpiresAt != nil {
		if err := srv.scheduler.ScheduleExpiry(ctx, claimed.ID, *claimed.ExpiresAt); err != nil {
			// the periodic sweep still releases the claim
			srv.log(ctx).Warn("Failed to schedule claim expiry", slog.Any("collection_id", claimed.ID), slog.Any("error", err))
		}
	}

	return claimed.RedactedFor(actor), nil
}

// Depart moves an accepted collection en route
func (srv *collectionService) Depart(ctx context.Context, actor entity.Actor, id uuid.UUID) (*entity.Collection, error) {
	next, err := srv.mutate(ctx, id, "depart", func(current *entity.Collection) (*entity.Collection, error) {
		return srv.machine.Depart(current, actor)
	})
	if err != nil {
		return nil, err
	}

	return next.RedactedFor(actor), nil
}

// ReportArrival marks the collector as on site
func (srv *collectionService) ReportArrival(ctx context.Context, actor entity.Actor, id uuid.UUID) (*entity.Collection, error) {
	next, err := srv.mutate(ctx, id, "arrive", func(current *entity.Collection) (*entity.Collection, error) {
		return srv.machine.Arrive(current, actor)
	})
	if err != nil {
		return nil, err
	}

	return next.RedactedFor(actor), nil
}

// Confirm completes the handshake
func (srv *collectionService) Confirm(ctx context.Context, actor entity.Actor, id uuid.UUID, code string) (*entity.Collection, error) {
	next, err := srv.mutate(ctx, id, "confirm", func(current *entity.Collection) (*entity.Collection, error) {
		return srv.machine.Confirm(current, actor, code)
	})
	if err != nil {
		return nil, err
	}

	return next.RedactedFor(actor), nil
}

// Abandon releases the claim and re-lists the collection
func (srv *collectionService) Abandon(ctx context.Context, actor entity.Actor, id uuid.UUID) (*entity.Collection, error) {
	next, err := srv.mutate(ctx, id, "abandon", func(current *entity.Collection) (*entity.Collection, error) {
		return srv.machine.Abandon(current, actor)
	})
	if err != nil {
		return nil, err
	}

	return next.RedactedFor(actor), nil
}

// Cancel withdraws a collection
func (srv *collectionService) Cancel(ctx context.Context, actor entity.Actor, id uuid.UUID) (*entity.Collection, error) {
	next, err := srv.mutate(ctx, id, "cancel", func(current *entity.Collection) (*entity.Collection, error) {
		return srv.machine.Cancel(current, actor)
	})
	if err != nil {
		return nil, err
	}

	return next.RedactedFor(actor), nil
}

// ExpireCollection releases the collection if its claim window elapsed
func (srv *collectionService) ExpireCollection(ctx context.Context, id uuid.UUID) (bool, error) {
	for attempt := 1; ; attempt++ {
		current, err := srv.load(ctx, id)
		if err != nil {
			return false, err
		}
		if !srv.machine.IsExpired(current) {
			return false, nil
		}

		released, err := srv.machine.Expire(current)
		if err != nil {
			return false, err
		}

		err = srv.commit(ctx, current, released)
		if errors.Is(err, repository.ErrStaleCollection) && attempt < srv.maxAttempts {
			continue
		}
		if errors.Is(err, repository.ErrStaleCollection) {
			// someone else moved it, so it is no longer ours to expire
			return false, nil
		}
		if err != nil {
			return false, err
		}

		srv.log(ctx).Info("Claim expired", slog.Any("collection_id", id), slog.Any("collector_id", current.CollectorID))

		return true, nil
	}
}

// ExpireOverdue releases every overdue claim
func (srv *collectionService) ExpireOverdue(ctx context.Context) (int, error) {
	overdue, err := srv.repo.FindExpired(ctx, srv.machine.Now())
	if err != nil {
		return 0, errors.Wrap(err, "failed to find expired collections")
	}

	released := 0
	for _, c := range overdue {
		ok, err := srv.ExpireCollection(ctx, c.ID)
		if err != nil {
			srv.log(ctx).Warn("Failed to expire collection", slog.Any("collection_id", c.ID), slog.Any("error", err))

			continue
		}
		if ok {
			released++
		}
	}

	return released, nil
}

// ListMarket returns the open collections around the observer
func (srv *collectionService) ListMarket(ctx context.Context, observer *entity.Coordinates) ([]market.Listing, error) {
	if _, err := srv.ExpireOverdue(ctx); err != nil {
		srv.log(ctx).Warn("Failed to release overdue claims before listing market", slog.Any("error", err))
	}

	open, err := srv.repo.FindByStatus(ctx, entity.StatusAnnounced)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find open collections")
	}

	return market.Compose(open, observer, srv.marketOpts), nil
}

// Subscribe registers a handler for committed changes
func (srv *collectionService) Subscribe(handler service.ChangeHandler) func() {
	return srv.notifier.Subscribe(handler)
}

// mutate runs one guarded transition as load, lazy expiry, apply, compare-and-swap.
// A lost swap re-evaluates the guards against the fresh record, so a collector losing
// a claim race ends with the machine's Conflict rather than a blind retry.
func (srv *collectionService) mutate(
	ctx context.Context,
	id uuid.UUID,
	event string,
	apply func(current *entity.Collection) (*entity.Collection, error),
) (*entity.Collection, error) {
	for attempt := 1; ; attempt++ {
		current, err := srv.load(ctx, id)
		if err != nil {
			return nil, err
		}

		if srv.machine.IsExpired(current) {
			released, err := srv.machine.Expire(current)
			if err != nil {
				return nil, err
			}
			if err := srv.commit(ctx, current, released); err != nil {
				if errors.Is(err, repository.ErrStaleCollection) && attempt < srv.maxAttempts {
					continue
				}

				return nil, srv.commitError(ctx, id, event, err)
			}
			current = released
		}

		next, err := apply(current)
		if err != nil {
			srv.log(ctx).Debug("Transition rejected", slog.String("event", event), slog.Any("collection_id", id), slog.Any("error", err))

			return nil, err
		}

		if err := srv.commit(ctx, current, next); err != nil {
			if errors.Is(err, repository.ErrStaleCollection) && attempt < srv.maxAttempts {
				srv.log(ctx).Debug("Stale collection, retrying", slog.String("event", event), slog.Any("collection_id", id), slog.Int("attempt", attempt))

				continue
			}

			return nil, srv.commitError(ctx, id, event, err)
		}

		srv.log(ctx).Info("Collection transitioned",
			slog.String("event", event),
			slog.Any("collection_id", id),
			slog.String("from", current.Status.String()),
			slog.String("to", next.Status.String()),
			slog.Int64("version", next.Version))

		return next, nil
	}
}

func (srv *collectionService) commitError(ctx context.Context, id uuid.UUID, event string, err error) error {
	if errors.Is(err, repository.ErrStaleCollection) {
		return domainerrors.ErrCollectionConflict.WithDetails("collection changed concurrently, reload and retry")
	}
	if errors.Is(err, repository.ErrCollectionNotFound) {
		return domainerrors.ErrCollectionNotFound
	}

	srv.log(ctx).Error("Failed to commit transition", slog.String("event", event), slog.Any("collection_id", id), slog.Any("error", err))

	return errors.Wrap(err, "failed to update collection")
}

// commit stores next over prev with a version check and publishes the change.
func (srv *collectionService) commit(ctx context.Context, prev, next *entity.Collection) error {
	if err := srv.repo.Update(ctx, next, prev.Version); err != nil {
		return err
	}

	srv.publish(ctx, prev, next)

	return nil
}

func (srv *collectionService) publish(ctx context.Context, prev, next *entity.Collection) {
	event := &service.ChangeEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		Collection: next.Clone(),
		Abandoned:  next.Abandoned,
		Version:    next.Version,
		Origin:     srv.instanceID,
		OccurredAt: next.UpdatedAt,
	}
	if prev != nil {
		event.PreviousStatus = prev.Status
		if prev.CollectorID != nil {
			previous := *prev.CollectorID
			event.PreviousCollectorID = &previous
		}
	}

	if err := srv.notifier.Publish(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish change event", slog.Any("collection_id", next.ID), slog.Any("error", err))
	}
}

func (srv *collectionService) load(ctx context.Context, id uuid.UUID) (*entity.Collection, error) {
	c, err := srv.repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrCollectionNotFound) {
		return nil, domainerrors.ErrCollectionNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find collection")
	}

	return c, nil
}
