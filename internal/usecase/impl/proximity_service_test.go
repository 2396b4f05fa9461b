package impl

import (
	"context"
	"testing"
	"time"

	"numatu/internal/domain/entity"
	domainerrors "numatu/internal/domain/errors"
	"numatu/internal/domain/proximity"
	"numatu/internal/domain/service"
	mockRepo "numatu/internal/mocks/repository"
	mockUsecase "numatu/internal/mocks/usecase"
	"numatu/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type proximityServiceFixtures struct {
	service     usecase.ProximityUsecase
	repo        *mockRepo.MockCollectionRepository
	collections *mockUsecase.MockCollectionUsecase
}

func createTestProximityService(t *testing.T) proximityServiceFixtures {
	repo := mockRepo.NewMockCollectionRepository(t)
	collections := mockUsecase.NewMockCollectionUsecase(t)

	return proximityServiceFixtures{
		service: NewProximityService(ProximityServiceParams{
			Repo:        repo,
			Collections: collections,
			Monitor:     proximity.NewMonitor(30),
		}),
		repo:        repo,
		collections: collections,
	}
}

func enRouteFor(collectorID uuid.UUID) *entity.Collection {
	enRouteAt := testNow
	return &entity.Collection{
		ID:          uuid.New(),
		GeneratorID: uuid.New(),
		CollectorID: &collectorID,
		Status:      entity.StatusEnRoute,
		Location:    entity.Location{Coordinates: pickup},
		EnRouteAt:   &enRouteAt,
	}
}

func TestProximityService_ReportPosition_NoActiveCollection(t *testing.T) {
	fx := createTestProximityService(t)
	ctx := context.Background()
	collectorID := uuid.New()

	fx.repo.EXPECT().FindByCollector(ctx, collectorID, entity.StatusEnRoute).Return(nil, nil)

	res, err := fx.service.ReportPosition(ctx, entity.PositionSample{CollectorID: collectorID, Coordinates: pickup})
	require.NoError(t, err)

	assert.False(t, res.Arrived)
}

func TestProximityService_ReportPosition_MissingCollector(t *testing.T) {
	fx := createTestProximityService(t)

	_, err := fx.service.ReportPosition(context.Background(), entity.PositionSample{Coordinates: pickup})

	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestProximityService_ReportPosition_FiresArrivalAsSystem(t *testing.T) {
	fx := createTestProximityService(t)
	ctx := context.Background()
	collectorID := uuid.New()
	target := enRouteFor(collectorID)

	arrived := target.Clone()
	arrived.Status = entity.StatusArrived

	fx.repo.EXPECT().FindByCollector(ctx, collectorID, entity.StatusEnRoute).Return([]*entity.Collection{target}, nil)
	fx.collections.EXPECT().ReportArrival(ctx, entity.SystemActor(), target.ID).Return(arrived, nil).Once()

	for i := range 3 {
		res, err := fx.service.ReportPosition(ctx, entity.PositionSample{
			CollectorID: collectorID,
			Coordinates: pickup,
			RecordedAt:  testNow.Add(time.Duration(i) * time.Second),
		})
		require.NoError(t, err)
		assert.Equal(t, i == 0, res.Arrived)
	}
}

func TestProximityService_ReportPosition_ReleasesLatchOnFailure(t *testing.T) {
	fx := createTestProximityService(t)
	ctx := context.Background()
	collectorID := uuid.New()
	target := enRouteFor(collectorID)

	arrived := target.Clone()
	arrived.Status = entity.StatusArrived

	fx.repo.EXPECT().FindByCollector(ctx, collectorID, entity.StatusEnRoute).Return([]*entity.Collection{target}, nil)
	fx.collections.EXPECT().ReportArrival(ctx, entity.SystemActor(), target.ID).Return(nil, errors.New("db down")).Once()
	fx.collections.EXPECT().ReportArrival(ctx, entity.SystemActor(), target.ID).Return(arrived, nil).Once()

	sample := entity.PositionSample{CollectorID: collectorID, Coordinates: pickup, RecordedAt: testNow}

	_, err := fx.service.ReportPosition(ctx, sample)
	require.Error(t, err)

	res, err := fx.service.ReportPosition(ctx, sample)
	require.NoError(t, err)
	assert.True(t, res.Arrived)
}

func TestProximityService_ReportPosition_ManualArrivalWins(t *testing.T) {
	fx := createTestProximityService(t)
	ctx := context.Background()
	collectorID := uuid.New()
	target := enRouteFor(collectorID)

	fx.repo.EXPECT().FindByCollector(ctx, collectorID, entity.StatusEnRoute).Return([]*entity.Collection{target}, nil)
	fx.collections.EXPECT().ReportArrival(ctx, entity.SystemActor(), target.ID).Return(nil, domainerrors.ErrInvalidState)

	res, err := fx.service.ReportPosition(ctx, entity.PositionSample{CollectorID: collectorID, Coordinates: pickup, RecordedAt: testNow})
	require.NoError(t, err)

	assert.False(t, res.Arrived)
}

func TestMonitorResetHandler_ForgetsFinishedClaims(t *testing.T) {
	monitor := proximity.NewMonitor(30)
	handle := NewMonitorResetHandler(monitor)
	ctx := context.Background()

	collectorID := uuid.New()
	target := enRouteFor(collectorID)
	far := entity.PositionSample{CollectorID: collectorID, Coordinates: entity.Coordinates{Lat: pickup.Lat + 0.01, Lng: pickup.Lng}, RecordedAt: testNow}

	monitor.Observe(far, target)
	require.Equal(t, 1, monitor.Tracked())

	// still en route
	handle(ctx, &service.ChangeEvent{Collection: target, Version: target.Version})
	assert.Equal(t, 1, monitor.Tracked())

	abandoned := target.Clone()
	abandoned.Status = entity.StatusAnnounced
	abandoned.CollectorID = nil
	abandoned.Abandoned = true
	handle(ctx, &service.ChangeEvent{
		Collection:          abandoned,
		PreviousStatus:      entity.StatusEnRoute,
		PreviousCollectorID: &collectorID,
	})
	assert.Equal(t, 0, monitor.Tracked())

	monitor.Observe(far, target)
	completed := target.Clone()
	completed.Status = entity.StatusCompleted
	handle(ctx, &service.ChangeEvent{Collection: completed, PreviousStatus: entity.StatusArrived})
	assert.Equal(t, 0, monitor.Tracked())

	handle(ctx, nil)
	handle(ctx, &service.ChangeEvent{})
}
