package service

import (
	"context"
	"time"

	"numatu/internal/domain/entity"

	"github.com/google/uuid"
)

// ChangeEvent describes one committed collection mutation.
type ChangeEvent struct {
	RequestID           string                  `json:"request_id,omitempty"` // For distributed tracing
	Collection          *entity.Collection      `json:"collection"`
	Abandoned           bool                    `json:"abandoned,omitempty"`
	PreviousStatus      entity.CollectionStatus `json:"previous_status,omitempty"`
	PreviousCollectorID *uuid.UUID              `json:"previous_collector_id,omitempty"`
	Version             int64                   `json:"version"`
	Origin              string                  `json:"origin,omitempty"` // Instance that committed the change
	OccurredAt          time.Time               `json:"occurred_at"`
}

// IsCreation reports whether the event announces a brand new collection.
func (e *ChangeEvent) IsCreation() bool {
	return e.PreviousStatus == ""
}

// AffectsMarket reports whether the set of open collections changed.
func (e *ChangeEvent) AffectsMarket() bool {
	wasOpen := e.PreviousStatus == entity.StatusAnnounced || e.IsCreation() || e.Abandoned
	isOpen := e.Collection != nil && e.Collection.IsAvailable()

	return wasOpen || isOpen
}

// ChangeHandler receives change events. Delivery is at-least-once; handlers dedupe by Version.
type ChangeHandler func(ctx context.Context, event *ChangeEvent)

// ChangeNotifier fans committed changes out to subscribers.
type ChangeNotifier interface {
	// Publish delivers the event to every current subscriber.
	Publish(ctx context.Context, event *ChangeEvent) error

	// Subscribe registers a handler and returns the function that removes it.
	Subscribe(handler ChangeHandler) (unsubscribe func())
}
