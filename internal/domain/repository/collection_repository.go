// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"time"

	"numatu/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Domain-specific errors for collection persistence.
var (
	// ErrCollectionNotFound is returned when a collection is not found.
	ErrCollectionNotFound = errors.New("collection not found")
	// ErrStaleCollection is returned when a conditional update lost against a newer version.
	ErrStaleCollection = errors.New("collection version is stale")
	// ErrDuplicateCollection is returned when creating a collection whose id already exists.
	ErrDuplicateCollection = errors.New("collection already exists")
)

// CollectionRepository is the record store of the collection lifecycle.
// Implementations never persist the transient Abandoned marker.
type CollectionRepository interface {
	// FindAll returns every stored collection, oldest request first.
	FindAll(ctx context.Context) ([]*entity.Collection, error)

	// FindByID retrieves a collection by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Collection, error)

	// FindByStatus returns the collections in any of the given states, oldest request first.
	FindByStatus(ctx context.Context, statuses ...entity.CollectionStatus) ([]*entity.Collection, error)

	// FindByGenerator returns the collections published by a generator, newest first.
	FindByGenerator(ctx context.Context, generatorID uuid.UUID) ([]*entity.Collection, error)

	// FindByCollector returns the collections assigned to a collector, optionally
	// restricted to the given states, newest first.
	FindByCollector(ctx context.Context, collectorID uuid.UUID, statuses ...entity.CollectionStatus) ([]*entity.Collection, error)

	// FindExpired returns ACCEPTED and EN_ROUTE collections whose claim window ended at or before now.
	FindExpired(ctx context.Context, now time.Time) ([]*entity.Collection, error)

	// Create persists a new collection at version 1 and sets c.Version accordingly.
	Create(ctx context.Context, c *entity.Collection) error

	// Update stores c only if the stored version still equals expectedVersion.
	// On success c.Version is set to expectedVersion+1; otherwise ErrStaleCollection.
	Update(ctx context.Context, c *entity.Collection, expectedVersion int64) error
}
