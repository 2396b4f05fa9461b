package handler

import (
	"time"

	"numatu/internal/delivery/api/response"
	deliverycontext "numatu/internal/delivery/context"
	"numatu/internal/domain/entity"
	"numatu/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// PositionHandlerParams holds dependencies for PositionHandler, injected by Fx.
type PositionHandlerParams struct {
	fx.In

	ProximityUC usecase.ProximityUsecase
}

// PositionHandler ingests collector positions over REST
type PositionHandler struct {
	proximityUC usecase.ProximityUsecase
}

// NewPositionHandler is the constructor for PositionHandler
func NewPositionHandler(params PositionHandlerParams) *PositionHandler {
	return &PositionHandler{proximityUC: params.ProximityUC}
}

// ReportPositionRequest is one fix from the collector's device
type ReportPositionRequest struct {
	Lat        float64    `json:"lat" validate:"latitude"`
	Lng        float64    `json:"lng" validate:"longitude"`
	Accuracy   *float64   `json:"accuracy" validate:"omitempty,gte=0"`
	RecordedAt *time.Time `json:"recorded_at"`
}

// ReportPosition feeds the sample to the proximity monitor
func (h *PositionHandler) ReportPosition(c echo.Context) error {
	actor, ok := deliverycontext.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user in token")
	}

	var req ReportPositionRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid position input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	sample := entity.PositionSample{
		CollectorID: actor.ID,
		Coordinates: entity.Coordinates{Lat: req.Lat, Lng: req.Lng},
		Accuracy:    req.Accuracy,
		RecordedAt:  time.Now().UTC(),
	}
	if req.RecordedAt != nil {
		sample.RecordedAt = req.RecordedAt.UTC()
	}

	result, err := h.proximityUC.ReportPosition(c.Request().Context(), sample)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, result)
}
