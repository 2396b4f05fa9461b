package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"numatu/internal/domain/entity"
	"numatu/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCollection(generatorID uuid.UUID) *entity.Collection {
	now := time.Now().UTC()

	return &entity.Collection{
		ID:          uuid.New(),
		GeneratorID: generatorID,
		Status:      entity.StatusAnnounced,
		Material:    entity.MaterialGlass,
		WeightKg:    3,
		RequestedAt: now,
		UpdatedAt:   now,
	}
}

func TestCollectionRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewCollectionRepository()
	c := newCollection(uuid.New())

	require.NoError(t, repo.Create(ctx, c))
	assert.Equal(t, int64(1), c.Version)
	assert.ErrorIs(t, repo.Create(ctx, c), repository.ErrDuplicateCollection)

	found, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, found.ID)

	// returned records are copies
	found.Status = entity.StatusCancelled
	again, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusAnnounced, again.Status)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrCollectionNotFound)
}

func TestCollectionRepository_UpdateCompareAndSwap(t *testing.T) {
	ctx := context.Background()
	repo := NewCollectionRepository()
	c := newCollection(uuid.New())
	require.NoError(t, repo.Create(ctx, c))

	next := c.Clone()
	next.Status = entity.StatusAccepted
	next.Abandoned = true
	require.NoError(t, repo.Update(ctx, next, 1))
	assert.Equal(t, int64(2), next.Version)

	stale := c.Clone()
	stale.Status = entity.StatusCancelled
	assert.ErrorIs(t, repo.Update(ctx, stale, 1), repository.ErrStaleCollection)

	found, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusAccepted, found.Status)
	assert.False(t, found.Abandoned, "abandoned marker is never stored")

	missing := newCollection(uuid.New())
	assert.ErrorIs(t, repo.Update(ctx, missing, 1), repository.ErrCollectionNotFound)
}

func TestCollectionRepository_ConcurrentUpdateHasOneWinner(t *testing.T) {
	ctx := context.Background()
	repo := NewCollectionRepository()
	c := newCollection(uuid.New())
	require.NoError(t, repo.Create(ctx, c))

	var (
		wg   sync.WaitGroup
		wins atomic.Int32
	)
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			next := c.Clone()
			next.Status = entity.StatusAccepted
			if repo.Update(ctx, next, 1) == nil {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
}

func TestCollectionRepository_Queries(t *testing.T) {
	ctx := context.Background()
	repo := NewCollectionRepository()
	generatorID := uuid.New()
	collectorID := uuid.New()
	now := time.Now().UTC()

	open := newCollection(generatorID)
	claimed := newCollection(generatorID)
	claimed.Status = entity.StatusAccepted
	claimed.CollectorID = &collectorID
	past := now.Add(-time.Minute)
	claimed.ExpiresAt = &past
	other := newCollection(uuid.New())

	for _, c := range []*entity.Collection{open, claimed, other} {
		require.NoError(t, repo.Create(ctx, c))
	}

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	announced, err := repo.FindByStatus(ctx, entity.StatusAnnounced)
	require.NoError(t, err)
	assert.Len(t, announced, 2)

	mine, err := repo.FindByGenerator(ctx, generatorID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, claimed.ID, mine[0].ID, "newest first")

	carried, err := repo.FindByCollector(ctx, collectorID, entity.StatusAccepted, entity.StatusEnRoute)
	require.NoError(t, err)
	assert.Len(t, carried, 1)

	none, err := repo.FindByCollector(ctx, collectorID, entity.StatusEnRoute)
	require.NoError(t, err)
	assert.Empty(t, none)

	expired, err := repo.FindExpired(ctx, now)
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, claimed.ID, expired[0].ID)
}
