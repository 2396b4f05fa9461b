package notifier

import (
	"context"
	"sync"

	"numatu/internal/domain/service"

	"github.com/google/uuid"
)

// LatestOnly wraps a handler so it sees each collection version at most once and
// never an older version after a newer one.
func LatestOnly(handler service.ChangeHandler) service.ChangeHandler {
	var (
		mu   sync.Mutex
		seen = make(map[uuid.UUID]int64)
	)

	return func(ctx context.Context, event *service.ChangeEvent) {
		if event == nil || event.Collection == nil {
			return
		}

		mu.Lock()
		if event.Version <= seen[event.Collection.ID] {
			mu.Unlock()

			return
		}
		seen[event.Collection.ID] = event.Version
		mu.Unlock()

		handler(ctx, event)
	}
}
