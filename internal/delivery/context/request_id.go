// Package context carries request-scoped values (request id, logger, actor)
// between the delivery and use case layers.
package context

import (
	"context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type contextKey string

const (
	// KeyRequestID stores the request id on echo.Context and context.Context.
	KeyRequestID contextKey = "request_id"

	// HeaderXRequestID is the header the request id travels in, both ways.
	HeaderXRequestID = "X-Request-Id"
)

// GetRequestID returns the id bound by the request-id middleware. Handlers reached
// without it (tests, the worker) get a fresh id that stays bound to c.
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(string(KeyRequestID)).(string); ok && id != "" {
		return id
	}
	if id := GetRequestIDFromContext(c.Request().Context()); id != "" {
		SetRequestID(c, id)

		return id
	}

	id := uuid.NewString()
	SetRequestID(c, id)

	return id
}

// SetRequestID binds requestID to c.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(string(KeyRequestID), requestID)
}

// GetRequestIDFromContext returns the request id of ctx, or "".
func GetRequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(KeyRequestID).(string)

	return id
}

// WithRequestID returns ctx carrying requestID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, KeyRequestID, requestID)
}
