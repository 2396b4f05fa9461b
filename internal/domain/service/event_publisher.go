package service

import (
	"context"
)

// EventPublisher ships committed change events to other processes (notify worker,
// sibling API instances).
type EventPublisher interface {
	// PublishChangeEvent publishes a change event for async processing
	PublishChangeEvent(ctx context.Context, event *ChangeEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
