// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ExpiryScheduler arranges for a claim to be re-checked once its window has elapsed.
type ExpiryScheduler interface {
	ScheduleExpiry(ctx context.Context, collectionID uuid.UUID, at time.Time) error
}
