package context

import (
	"context"

	"numatu/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

// KeyActor is the key for storing the authenticated actor.
const KeyActor contextKey = "actor"

// SetActor stores the authenticated actor in echo.Context and the request context.
func SetActor(c echo.Context, actor entity.Actor) {
	c.Set(string(KeyActor), actor)
	c.SetRequest(c.Request().WithContext(WithActor(c.Request().Context(), actor)))
}

// GetActor extracts the authenticated actor from echo.Context.
func GetActor(c echo.Context) (entity.Actor, bool) {
	actor, ok := c.Get(string(KeyActor)).(entity.Actor)

	return actor, ok
}

// WithActor returns a new context with the actor.
func WithActor(ctx context.Context, actor entity.Actor) context.Context {
	return context.WithValue(ctx, KeyActor, actor)
}

// GetActorFromContext extracts the actor from standard context.Context.
func GetActorFromContext(ctx context.Context) (entity.Actor, bool) {
	actor, ok := ctx.Value(KeyActor).(entity.Actor)

	return actor, ok
}
