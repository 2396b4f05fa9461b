// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"numatu/config"
	"numatu/internal/delivery/api/middleware"
	"numatu/internal/delivery/api/router/handler"
	"numatu/internal/delivery/realtime"
	"numatu/internal/domain/constants"
	"numatu/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	CollectionHandler *handler.CollectionHandler
	MarketHandler     *handler.MarketHandler
	PositionHandler   *handler.PositionHandler
	DevTokenHandler   *handler.DevTokenHandler
	RealtimeHandler   *realtime.Handler `optional:"true"`
	AuthMiddleware    *middleware.AuthMiddleware
	Config            *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	collectionHandler *handler.CollectionHandler
	marketHandler     *handler.MarketHandler
	positionHandler   *handler.PositionHandler
	devTokenHandler   *handler.DevTokenHandler
	realtimeHandler   *realtime.Handler
	authMiddleware    *middleware.AuthMiddleware
	config            *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		collectionHandler: params.CollectionHandler,
		marketHandler:     params.MarketHandler,
		positionHandler:   params.PositionHandler,
		devTokenHandler:   params.DevTokenHandler,
		realtimeHandler:   params.RealtimeHandler,
		authMiddleware:    params.AuthMiddleware,
		config:            params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	apiV1 := e.Group("/api/v1")
	apiV1.Use(r.authMiddleware.Authenticate)

	collectorOnly := r.authMiddleware.RequireRole(entity.RoleCollector)

	collections := apiV1.Group("/collections")
	{
		collections.POST("", r.collectionHandler.CreateCollection, r.authMiddleware.RequireRole(entity.RoleAdvertiser, entity.RoleAdmin))
		collections.GET("", r.collectionHandler.ListCollections)
		collections.GET("/:id", r.collectionHandler.GetCollection)
		collections.GET("/:id/qr", r.collectionHandler.ConfirmationQR, collectorOnly)

		collections.POST("/:id/claim", r.collectionHandler.Claim, collectorOnly)
		collections.POST("/:id/depart", r.collectionHandler.Depart, collectorOnly)
		collections.POST("/:id/arrive", r.collectionHandler.Arrive, collectorOnly)
		collections.POST("/:id/abandon", r.collectionHandler.Abandon, collectorOnly)
		collections.POST("/:id/confirm", r.collectionHandler.Confirm)
		collections.POST("/:id/cancel", r.collectionHandler.Cancel)
	}

	apiV1.GET("/market", r.marketHandler.ListMarket, r.authMiddleware.RequireRole(entity.RoleCollector, entity.RoleAdmin))
	apiV1.POST("/positions", r.positionHandler.ReportPosition, collectorOnly)

	if r.realtimeHandler != nil {
		apiV1.GET("/ws", r.realtimeHandler.ServeWS)
	}
}

// RegisterDevRoutes exposes the token endpoint in the develop environment only.
func (r *router) RegisterDevRoutes(e *echo.Echo) {
	if r.config == nil || r.config.Env.Env != constants.EnvDevelop {
		return
	}

	dev := e.Group("/dev")
	dev.POST("/token", r.devTokenHandler.IssueToken)
}
