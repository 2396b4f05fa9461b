package usecase

import (
	"context"

	"numatu/internal/domain/entity"
	"numatu/internal/domain/market"
	"numatu/internal/domain/service"

	"github.com/google/uuid"
)

// CreateCollectionInput represents the data a generator submits to publish a collection
type CreateCollectionInput struct {
	Material     entity.Material `json:"material"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Notes        string          `json:"notes"`
	Priority     entity.Priority `json:"priority"`
	WeightKg     float64         `json:"weight_kg"`
	Latitude     float64         `json:"latitude"`
	Longitude    float64         `json:"longitude"`
	Address      string          `json:"address"`
	Neighborhood string          `json:"neighborhood"`
	City         string          `json:"city"`
	PhotoURLs    []string        `json:"photo_urls"`
}

// CollectionUsecase defines the collection lifecycle use cases
type CollectionUsecase interface {
	// CreateCollection publishes a new ANNOUNCED collection owned by the actor
	CreateCollection(ctx context.Context, actor entity.Actor, input *CreateCollectionInput) (*entity.Collection, error)

	// GetCollection returns a single collection redacted for the actor
	GetCollection(ctx context.Context, actor entity.Actor, id uuid.UUID) (*entity.Collection, error)

	// ListOwnCollections returns the collections the actor published or carries
	ListOwnCollections(ctx context.Context, actor entity.Actor) ([]*entity.Collection, error)

	// Claim assigns an open collection to the collector; losers of a race get a conflict
	Claim(ctx context.Context, actor entity.Actor, id uuid.UUID) (*entity.Collection, error)

	// Depart moves an accepted collection en route
	Depart(ctx context.Context, actor entity.Actor, id uuid.UUID) (*entity.Collection, error)

	// ReportArrival marks the collector as on site; used by the collector or the proximity trigger
	ReportArrival(ctx context.Context, actor entity.Actor, id uuid.UUID) (*entity.Collection, error)

	// Confirm completes the handshake with the code shown by the collector
	Confirm(ctx context.Context, actor entity.Actor, id uuid.UUID, code string) (*entity.Collection, error)

	// Abandon releases the claim and re-lists the collection
	Abandon(ctx context.Context, actor entity.Actor, id uuid.UUID) (*entity.Collection, error)

	// Cancel withdraws a collection that has not finished yet
	Cancel(ctx context.Context, actor entity.Actor, id uuid.UUID) (*entity.Collection, error)

	// ExpireCollection auto-abandons the collection if its claim window elapsed.
	// It reports whether anything changed.
	ExpireCollection(ctx context.Context, id uuid.UUID) (bool, error)

	// ExpireOverdue auto-abandons every overdue claim and returns how many were released
	ExpireOverdue(ctx context.Context) (int, error)

	// ListMarket returns the open collections, nearest first when the observer is located
	ListMarket(ctx context.Context, observer *entity.Coordinates) ([]market.Listing, error)

	// Subscribe registers a handler for committed changes and returns the unsubscribe function
	Subscribe(handler service.ChangeHandler) func()
}
