package usecase

import (
	"context"

	"numatu/internal/domain/service"
)

// NotificationUsecase defines the interface for handshake notification use cases
type NotificationUsecase interface {
	// Dispatch sends the push notification a change event calls for, if any
	Dispatch(ctx context.Context, event *service.ChangeEvent) error
}
