package handler

import (
	"strconv"

	"numatu/internal/delivery/api/response"
	"numatu/internal/domain/entity"
	"numatu/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// MarketHandlerParams holds dependencies for MarketHandler, injected by Fx.
type MarketHandlerParams struct {
	fx.In

	CollectionUC usecase.CollectionUsecase
}

// MarketHandler serves the collector market view
type MarketHandler struct {
	collectionUC usecase.CollectionUsecase
}

// NewMarketHandler is the constructor for MarketHandler
func NewMarketHandler(params MarketHandlerParams) *MarketHandler {
	return &MarketHandler{collectionUC: params.CollectionUC}
}

// ListMarket returns the open collections, nearest first when lat and lng are given
func (h *MarketHandler) ListMarket(c echo.Context) error {
	observer, err := parseObserver(c.QueryParam("lat"), c.QueryParam("lng"))
	if err != nil {
		return response.BadRequest(c, "INVALID_COORDINATES", "lat and lng must be given together as decimal degrees")
	}

	listings, err := h.collectionUC.ListMarket(c.Request().Context(), observer)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, listings)
}

// parseObserver returns nil when no position is given. An unknown fix (0,0) is passed through
// and treated as absent by the composer.
func parseObserver(lat, lng string) (*entity.Coordinates, error) {
	if lat == "" && lng == "" {
		return nil, nil
	}

	latV, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return nil, err
	}
	lngV, err := strconv.ParseFloat(lng, 64)
	if err != nil {
		return nil, err
	}

	return &entity.Coordinates{Lat: latV, Lng: lngV}, nil
}
