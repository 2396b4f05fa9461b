package impl

import (
	"context"
	"sync"
	"testing"
	"time"

	"numatu/config"
	"numatu/internal/domain/entity"
	domainerrors "numatu/internal/domain/errors"
	"numatu/internal/domain/lifecycle"
	"numatu/internal/domain/market"
	"numatu/internal/domain/proximity"
	"numatu/internal/domain/service"
	"numatu/internal/infra/notifier"
	"numatu/internal/infra/persistence/memory"
	"numatu/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pickup = entity.Coordinates{Lat: -23.5505, Lng: -46.6333}

type lifecycleFixtures struct {
	collections usecase.CollectionUsecase
	positions   usecase.ProximityUsecase
	broadcaster *notifier.Broadcaster
	clock       *testClock
	generator   entity.Actor
	collector   entity.Actor
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func createLifecycleFixtures(t *testing.T) lifecycleFixtures {
	t.Helper()

	clock := &testClock{now: testNow}
	repo := memory.NewCollectionRepository()
	broadcaster := notifier.NewBroadcaster(16, nil)
	t.Cleanup(broadcaster.Close)

	cfg := &config.Config{Lifecycle: &config.LifecycleConfig{MaxCommitAttempts: 3}}
	collections := NewCollectionService(CollectionServiceParams{
		Repo: repo,
		Machine: lifecycle.NewMachine(
			lifecycle.WithClock(clock.Now),
			lifecycle.WithCodeGenerator(lifecycle.StaticCodeGenerator("483920")),
		),
		Notifier: broadcaster,
		Config:   cfg,
	})

	positions := NewProximityService(ProximityServiceParams{
		Repo:        repo,
		Collections: collections,
		Monitor:     proximity.NewMonitor(20),
	})

	return lifecycleFixtures{
		collections: collections,
		positions:   positions,
		broadcaster: broadcaster,
		clock:       clock,
		generator:   entity.Actor{ID: uuid.New(), Role: entity.RoleAdvertiser},
		collector:   entity.Actor{ID: uuid.New(), Role: entity.RoleCollector},
	}
}

func (fx lifecycleFixtures) create(t *testing.T) *entity.Collection {
	t.Helper()

	c, err := fx.collections.CreateCollection(context.Background(), fx.generator, &usecase.CreateCollectionInput{
		Material:  entity.MaterialPlastic,
		WeightKg:  10,
		Latitude:  pickup.Lat,
		Longitude: pickup.Lng,
	})
	require.NoError(t, err)

	return c
}

func marketIDs(t *testing.T, fx lifecycleFixtures) []uuid.UUID {
	t.Helper()

	listings, err := fx.collections.ListMarket(context.Background(), nil)
	require.NoError(t, err)

	ids := make([]uuid.UUID, 0, len(listings))
	for _, l := range listings {
		ids = append(ids, l.Collection.ID)
	}

	return ids
}

func TestLifecycle_HappyPath(t *testing.T) {
	fx := createLifecycleFixtures(t)
	ctx := context.Background()

	// Scenario A
	r := fx.create(t)
	assert.Contains(t, marketIDs(t, fx), r.ID)

	claimed, err := fx.collections.Claim(ctx, fx.collector, r.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusAccepted, claimed.Status)
	assert.Regexp(t, `^\d{6}$`, claimed.ConfirmationCode)
	assert.NotContains(t, marketIDs(t, fx), r.ID)

	// Scenario B: 15 m from the target with a 20 m threshold
	fx.clock.Advance(time.Minute)
	_, err = fx.collections.Depart(ctx, fx.collector, r.ID)
	require.NoError(t, err)

	far, err := fx.positions.ReportPosition(ctx, entity.PositionSample{
		CollectorID: fx.collector.ID,
		Coordinates: entity.Coordinates{Lat: pickup.Lat + 0.01, Lng: pickup.Lng},
		RecordedAt:  fx.clock.Now(),
	})
	require.NoError(t, err)
	assert.False(t, far.Arrived)

	fx.clock.Advance(time.Minute)
	near, err := fx.positions.ReportPosition(ctx, entity.PositionSample{
		CollectorID: fx.collector.ID,
		Coordinates: entity.Coordinates{Lat: pickup.Lat + 0.000135, Lng: pickup.Lng},
		RecordedAt:  fx.clock.Now(),
	})
	require.NoError(t, err)
	require.True(t, near.Arrived)
	assert.Equal(t, entity.StatusArrived, near.Collection.Status)

	// Scenario C
	_, err = fx.collections.Confirm(ctx, fx.generator, r.ID, "000000")
	require.ErrorIs(t, err, domainerrors.ErrInvalidCode)

	current, err := fx.collections.GetCollection(ctx, fx.generator, r.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusArrived, current.Status)

	completed, err := fx.collections.Confirm(ctx, fx.generator, r.ID, "483920")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCompleted, completed.Status)

	// P4: exactly once
	_, err = fx.collections.Confirm(ctx, fx.generator, r.ID, "483920")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidState)

	// P2
	require.NotNil(t, completed.AcceptedAt)
	require.NotNil(t, completed.EnRouteAt)
	require.NotNil(t, completed.ArrivedAt)
	require.NotNil(t, completed.CompletedAt)
	assert.False(t, completed.AcceptedAt.Before(completed.RequestedAt))
	assert.False(t, completed.EnRouteAt.Before(*completed.AcceptedAt))
	assert.False(t, completed.ArrivedAt.Before(*completed.EnRouteAt))
	assert.False(t, completed.CompletedAt.Before(*completed.ArrivedAt))
}

// P1: concurrent claims have exactly one winner, everybody else sees Conflict.
func TestLifecycle_ConcurrentClaims(t *testing.T) {
	fx := createLifecycleFixtures(t)
	r := fx.create(t)

	const contenders = 24
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		winners []uuid.UUID
		errs    []error
	)

	start := make(chan struct{})
	for range contenders {
		collector := entity.Actor{ID: uuid.New(), Role: entity.RoleCollector}
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start

			c, err := fx.collections.Claim(context.Background(), collector, r.ID)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			winners = append(winners, *c.CollectorID)
		}()
	}
	close(start)
	wg.Wait()

	require.Len(t, winners, 1)
	require.Len(t, errs, contenders-1)
	for _, err := range errs {
		assert.ErrorIs(t, err, domainerrors.ErrCollectionConflict)
	}

	stored, err := fx.collections.GetCollection(context.Background(), entity.Actor{Role: entity.RoleAdmin}, r.ID)
	require.NoError(t, err)
	assert.Equal(t, winners[0], *stored.CollectorID)
}

// P3: abandonment re-lists the collection cleanly and announces it once.
func TestLifecycle_AbandonRelists(t *testing.T) {
	fx := createLifecycleFixtures(t)
	ctx := context.Background()

	events := make(chan *service.ChangeEvent, 16)
	unsubscribe := fx.collections.Subscribe(func(_ context.Context, e *service.ChangeEvent) {
		events <- e
	})
	defer unsubscribe()

	r := fx.create(t)
	_, err := fx.collections.Claim(ctx, fx.collector, r.ID)
	require.NoError(t, err)

	released, err := fx.collections.Abandon(ctx, fx.collector, r.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusAnnounced, released.Status)
	assert.Nil(t, released.CollectorID)
	assert.Empty(t, released.ConfirmationCode)
	assert.Contains(t, marketIDs(t, fx), r.ID)

	stored, err := fx.collections.GetCollection(ctx, fx.generator, r.ID)
	require.NoError(t, err)
	assert.False(t, stored.Abandoned, "marker lives for one notification only")

	var abandoned []*service.ChangeEvent
	timeout := time.After(time.Second)
	for len(abandoned) == 0 {
		select {
		case e := <-events:
			if e.Abandoned {
				abandoned = append(abandoned, e)
			}
		case <-timeout:
			t.Fatal("no abandoned event")
		}
	}
	assert.Equal(t, fx.collector.ID, *abandoned[0].PreviousCollectorID)
	assert.Equal(t, entity.StatusAccepted, abandoned[0].PreviousStatus)
}

func TestLifecycle_ExpiredClaimReturnsToMarket(t *testing.T) {
	fx := createLifecycleFixtures(t)
	ctx := context.Background()

	r := fx.create(t)
	_, err := fx.collections.Claim(ctx, fx.collector, r.ID)
	require.NoError(t, err)
	assert.NotContains(t, marketIDs(t, fx), r.ID)

	fx.clock.Advance(lifecycle.DefaultClaimWindow)

	// lazy expiry on read
	assert.Contains(t, marketIDs(t, fx), r.ID)

	_, err = fx.collections.Depart(ctx, fx.collector, r.ID)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidState)

	other := entity.Actor{ID: uuid.New(), Role: entity.RoleCollector}
	reclaimed, err := fx.collections.Claim(ctx, other, r.ID)
	require.NoError(t, err)
	assert.Equal(t, other.ID, *reclaimed.CollectorID)
}

// P5 through the use case: many samples inside the radius fire one arrival.
func TestLifecycle_ProximityFiresOnce(t *testing.T) {
	fx := createLifecycleFixtures(t)
	ctx := context.Background()

	r := fx.create(t)
	_, err := fx.collections.Claim(ctx, fx.collector, r.ID)
	require.NoError(t, err)
	_, err = fx.collections.Depart(ctx, fx.collector, r.ID)
	require.NoError(t, err)

	arrivals := 0
	for i := range 10 {
		res, err := fx.positions.ReportPosition(ctx, entity.PositionSample{
			CollectorID: fx.collector.ID,
			Coordinates: pickup,
			RecordedAt:  testNow.Add(time.Duration(i) * time.Second),
		})
		require.NoError(t, err)
		if res.Arrived {
			arrivals++
		}
	}

	assert.Equal(t, 1, arrivals)
}

func TestLifecycle_CancelAfterClaim(t *testing.T) {
	fx := createLifecycleFixtures(t)
	ctx := context.Background()

	r := fx.create(t)
	_, err := fx.collections.Claim(ctx, fx.collector, r.ID)
	require.NoError(t, err)

	_, err = fx.collections.Cancel(ctx, fx.collector, r.ID)
	require.ErrorIs(t, err, domainerrors.ErrCollectionForbidden)

	cancelled, err := fx.collections.Cancel(ctx, fx.generator, r.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCancelled, cancelled.Status)
	assert.NotContains(t, marketIDs(t, fx), r.ID)

	mine, err := fx.collections.ListOwnCollections(ctx, fx.collector)
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestLifecycle_MarketRadius(t *testing.T) {
	fx := createLifecycleFixtures(t)
	r := fx.create(t)

	listings, err := fx.collections.ListMarket(context.Background(), &entity.Coordinates{Lat: pickup.Lat + 0.01, Lng: pickup.Lng})
	require.NoError(t, err)

	require.Len(t, listings, 1)
	assert.Equal(t, r.ID, listings[0].Collection.ID)
	require.NotNil(t, listings[0].DistanceKm)
	assert.InDelta(t, 1.11, *listings[0].DistanceKm, 0.01)
	assert.IsType(t, market.Listing{}, listings[0])
}
