package middleware

import (
	"strings"

	deliverycontext "numatu/internal/delivery/context"
	"numatu/internal/domain/entity"
	domainerrors "numatu/internal/domain/errors"
	"numatu/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// tokenQueryParam carries the token for WebSocket upgrades, where browsers cannot set headers.
const tokenQueryParam = "token"

// AuthMiddleware provides middleware for JWT authentication and authorization.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the access token and stores the actor on the context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString, err := bearerToken(c)
		if err != nil {
			return err
		}

		claims, err := m.tokenSvc.ValidateToken(tokenString)
		if err != nil {
			return domainerrors.ErrUnauthorized
		}

		actor := entity.Actor{ID: claims.UserID, Role: entity.Role(claims.Role)}
		deliverycontext.SetActor(c, actor)

		logger := deliverycontext.GetLoggerOrDefault(c.Request().Context(), nil)
		if logger != nil {
			ctx := deliverycontext.WithLogger(c.Request().Context(), logger.With("actor_id", actor.ID.String()))
			c.SetRequest(c.Request().WithContext(ctx))
		}

		return next(c)
	}
}

// RequireRole is a middleware factory that admits only the given roles.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(roles ...entity.Role) echo.MiddlewareFunc {
	allowed := entity.Roles(roles)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, ok := deliverycontext.GetActor(c)
			if !ok {
				return domainerrors.ErrUnauthorized
			}
			if !allowed.Contains(actor.Role) {
				return domainerrors.ErrCollectionForbidden.WithDetails("requires role " + joinRoles(allowed))
			}

			return next(c)
		}
	}
}

func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		if token := c.QueryParam(tokenQueryParam); token != "" {
			return token, nil
		}

		return "", domainerrors.ErrUnauthorized.WithDetails("authorization header is missing")
	}

	tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
	if !found || strings.TrimSpace(tokenString) == "" {
		return "", domainerrors.ErrUnauthorized.WithDetails("invalid token format, must be Bearer token")
	}

	return strings.TrimSpace(tokenString), nil
}

func joinRoles(roles entity.Roles) string {
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, r.String())
	}

	return strings.Join(names, " or ")
}
