// Package delivery holds the runnable surfaces of the service: HTTP servers,
// background loops and message consumers.
package delivery

import "context"

// Delivery is one runnable surface started by the fx app.
type Delivery interface {
	// Serve runs until the surface stops or fails. Shutdown happens in OnStop hooks.
	Serve(ctx context.Context) error
}
