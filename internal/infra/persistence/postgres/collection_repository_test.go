package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"numatu/internal/domain/entity"
	"numatu/internal/domain/repository"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var baseTime = time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)

func setupCollectionRepositoryTest(t *testing.T) repository.CollectionRepository {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 NewGormLogger(nil, GormLogOptions{Driver: "sqlite"}),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, AutoMigrate(db))

	return NewCollectionRepository(db)
}

func newCollection(generatorID uuid.UUID, requestedAt time.Time) *entity.Collection {
	return &entity.Collection{
		ID:          uuid.New(),
		GeneratorID: generatorID,
		Status:      entity.StatusAnnounced,
		Material:    entity.MaterialPlastic,
		Title:       "Garrafas PET",
		Priority:    entity.PriorityMedium,
		WeightKg:    12.5,
		Location: entity.Location{
			Coordinates:  entity.Coordinates{Lat: -23.5505, Lng: -46.6333},
			Address:      "Rua Augusta, 100",
			Neighborhood: "Consolação",
			City:         "São Paulo",
		},
		PhotoURLs:   []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"},
		RequestedAt: requestedAt,
		UpdatedAt:   requestedAt,
	}
}

func claim(c *entity.Collection, collectorID uuid.UUID, at time.Time, window time.Duration) *entity.Collection {
	next := c.Clone()
	expiresAt := at.Add(window)
	next.Status = entity.StatusAccepted
	next.CollectorID = &collectorID
	next.ConfirmationCode = "482913"
	next.AcceptedAt = &at
	next.ExpiresAt = &expiresAt
	next.UpdatedAt = at

	return next
}

func TestCollectionRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := setupCollectionRepositoryTest(t)

	c := newCollection(uuid.New(), baseTime)
	c.Abandoned = true
	require.NoError(t, repo.Create(ctx, c))
	assert.Equal(t, int64(1), c.Version)

	found, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, found.ID)
	assert.Equal(t, entity.StatusAnnounced, found.Status)
	assert.Equal(t, entity.MaterialPlastic, found.Material)
	assert.Equal(t, c.Location, found.Location)
	assert.Equal(t, c.PhotoURLs, found.PhotoURLs)
	assert.True(t, c.RequestedAt.Equal(found.RequestedAt))
	assert.Nil(t, found.CollectorID)
	assert.False(t, found.Abandoned)
	assert.Equal(t, int64(1), found.Version)
}

func TestCollectionRepository_CreateDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := setupCollectionRepositoryTest(t)

	c := newCollection(uuid.New(), baseTime)
	require.NoError(t, repo.Create(ctx, c))

	dup := c.Clone()
	assert.ErrorIs(t, repo.Create(ctx, dup), repository.ErrDuplicateCollection)
}

func TestCollectionRepository_FindByIDNotFound(t *testing.T) {
	repo := setupCollectionRepositoryTest(t)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, repository.ErrCollectionNotFound)
}

func TestCollectionRepository_UpdateCompareAndSwap(t *testing.T) {
	ctx := context.Background()
	repo := setupCollectionRepositoryTest(t)

	c := newCollection(uuid.New(), baseTime)
	require.NoError(t, repo.Create(ctx, c))

	first := claim(c, uuid.New(), baseTime.Add(time.Minute), 45*time.Minute)
	second := claim(c, uuid.New(), baseTime.Add(time.Minute), 45*time.Minute)

	require.NoError(t, repo.Update(ctx, first, 1))
	assert.Equal(t, int64(2), first.Version)
	assert.ErrorIs(t, repo.Update(ctx, second, 1), repository.ErrStaleCollection)

	stored, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusAccepted, stored.Status)
	assert.Equal(t, first.CollectorID, stored.CollectorID)
	assert.Equal(t, "482913", stored.ConfirmationCode)
	assert.Equal(t, int64(2), stored.Version)
}

func TestCollectionRepository_UpdateClearsFields(t *testing.T) {
	ctx := context.Background()
	repo := setupCollectionRepositoryTest(t)

	c := newCollection(uuid.New(), baseTime)
	require.NoError(t, repo.Create(ctx, c))
	claimed := claim(c, uuid.New(), baseTime.Add(time.Minute), 45*time.Minute)
	require.NoError(t, repo.Update(ctx, claimed, 1))

	released := claimed.Clone()
	released.Status = entity.StatusAnnounced
	released.CollectorID = nil
	released.ConfirmationCode = ""
	released.AcceptedAt = nil
	released.ExpiresAt = nil
	released.Abandoned = true
	require.NoError(t, repo.Update(ctx, released, 2))

	stored, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusAnnounced, stored.Status)
	assert.Nil(t, stored.CollectorID)
	assert.Empty(t, stored.ConfirmationCode)
	assert.Nil(t, stored.AcceptedAt)
	assert.Nil(t, stored.ExpiresAt)
	assert.False(t, stored.Abandoned)
	assert.Equal(t, int64(3), stored.Version)
}

func TestCollectionRepository_UpdateMissing(t *testing.T) {
	repo := setupCollectionRepositoryTest(t)

	c := newCollection(uuid.New(), baseTime)
	assert.ErrorIs(t, repo.Update(context.Background(), c, 1), repository.ErrCollectionNotFound)
}

func TestCollectionRepository_Queries(t *testing.T) {
	ctx := context.Background()
	repo := setupCollectionRepositoryTest(t)

	generator := uuid.New()
	collector := uuid.New()

	older := newCollection(generator, baseTime)
	newer := newCollection(generator, baseTime.Add(time.Hour))
	other := newCollection(uuid.New(), baseTime.Add(30*time.Minute))
	for _, c := range []*entity.Collection{older, newer, other} {
		require.NoError(t, repo.Create(ctx, c))
	}

	claimed := claim(other, collector, baseTime.Add(40*time.Minute), 20*time.Minute)
	require.NoError(t, repo.Update(ctx, claimed, 1))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{older.ID, other.ID, newer.ID}, ids(all))

	announced, err := repo.FindByStatus(ctx, entity.StatusAnnounced)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{older.ID, newer.ID}, ids(announced))

	byGenerator, err := repo.FindByGenerator(ctx, generator)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{newer.ID, older.ID}, ids(byGenerator))

	byCollector, err := repo.FindByCollector(ctx, collector, entity.StatusAccepted, entity.StatusEnRoute)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{other.ID}, ids(byCollector))

	none, err := repo.FindByCollector(ctx, collector, entity.StatusArrived)
	require.NoError(t, err)
	assert.Empty(t, none)

	notYet, err := repo.FindExpired(ctx, baseTime.Add(59*time.Minute))
	require.NoError(t, err)
	assert.Empty(t, notYet)

	expired, err := repo.FindExpired(ctx, baseTime.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{other.ID}, ids(expired))
}

func ids(collections []*entity.Collection) []uuid.UUID {
	out := make([]uuid.UUID, len(collections))
	for i, c := range collections {
		out[i] = c.ID
	}

	return out
}
