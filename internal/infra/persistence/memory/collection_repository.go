// Package memory provides a process-local collection store.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"numatu/internal/domain/entity"
	"numatu/internal/domain/repository"

	"github.com/google/uuid"
)

type collectionRepository struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*entity.Collection
	order   []uuid.UUID
}

// NewCollectionRepository creates an empty in-memory collection repository.
func NewCollectionRepository() repository.CollectionRepository {
	return &collectionRepository{
		records: make(map[uuid.UUID]*entity.Collection),
	}
}

func (repo *collectionRepository) FindAll(ctx context.Context) ([]*entity.Collection, error) {
	return repo.filter(func(*entity.Collection) bool { return true }), nil
}

func (repo *collectionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Collection, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	c, ok := repo.records[id]
	if !ok {
		return nil, repository.ErrCollectionNotFound
	}

	return c.Clone(), nil
}

func (repo *collectionRepository) FindByStatus(ctx context.Context, statuses ...entity.CollectionStatus) ([]*entity.Collection, error) {
	return repo.filter(func(c *entity.Collection) bool {
		return len(statuses) == 0 || slices.Contains(statuses, c.Status)
	}), nil
}

func (repo *collectionRepository) FindByGenerator(ctx context.Context, generatorID uuid.UUID) ([]*entity.Collection, error) {
	found := repo.filter(func(c *entity.Collection) bool { return c.GeneratorID == generatorID })
	slices.Reverse(found)

	return found, nil
}

func (repo *collectionRepository) FindByCollector(ctx context.Context, collectorID uuid.UUID, statuses ...entity.CollectionStatus) ([]*entity.Collection, error) {
	found := repo.filter(func(c *entity.Collection) bool {
		return c.IsAssignedTo(collectorID) && (len(statuses) == 0 || slices.Contains(statuses, c.Status))
	})
	slices.Reverse(found)

	return found, nil
}

func (repo *collectionRepository) FindExpired(ctx context.Context, now time.Time) ([]*entity.Collection, error) {
	return repo.filter(func(c *entity.Collection) bool {
		return (c.Status == entity.StatusAccepted || c.Status == entity.StatusEnRoute) &&
			c.ExpiresAt != nil && !c.ExpiresAt.After(now)
	}), nil
}

func (repo *collectionRepository) Create(ctx context.Context, c *entity.Collection) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, exists := repo.records[c.ID]; exists {
		return repository.ErrDuplicateCollection
	}

	c.Version = 1
	repo.records[c.ID] = stored(c)
	repo.order = append(repo.order, c.ID)

	return nil
}

func (repo *collectionRepository) Update(ctx context.Context, c *entity.Collection, expectedVersion int64) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	current, ok := repo.records[c.ID]
	if !ok {
		return repository.ErrCollectionNotFound
	}
	if current.Version != expectedVersion {
		return repository.ErrStaleCollection
	}

	c.Version = expectedVersion + 1
	repo.records[c.ID] = stored(c)

	return nil
}

// filter returns clones of the matching records in insertion order.
func (repo *collectionRepository) filter(keep func(*entity.Collection) bool) []*entity.Collection {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	found := make([]*entity.Collection, 0, len(repo.order))
	for _, id := range repo.order {
		if c := repo.records[id]; keep(c) {
			found = append(found, c.Clone())
		}
	}

	return found
}

func stored(c *entity.Collection) *entity.Collection {
	cloned := c.Clone()
	cloned.Abandoned = false

	return cloned
}
