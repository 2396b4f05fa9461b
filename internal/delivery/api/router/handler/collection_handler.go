package handler

import (
	"context"
	"log/slog"
	"net/http"

	"numatu/internal/delivery/api/response"
	deliverycontext "numatu/internal/delivery/context"
	"numatu/internal/domain/entity"
	domainerrors "numatu/internal/domain/errors"
	"numatu/internal/domain/service"
	"numatu/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CollectionHandlerParams holds dependencies for CollectionHandler, injected by Fx.
type CollectionHandlerParams struct {
	fx.In

	CollectionUC usecase.CollectionUsecase
	QRCodeSvc    service.QRCodeService
	Logger       *slog.Logger
}

// CollectionHandler serves the collection lifecycle endpoints
type CollectionHandler struct {
	collectionUC usecase.CollectionUsecase
	qrCodeSvc    service.QRCodeService
	logger       *slog.Logger
}

// NewCollectionHandler is the constructor for CollectionHandler
func NewCollectionHandler(params CollectionHandlerParams) *CollectionHandler {
	return &CollectionHandler{
		collectionUC: params.CollectionUC,
		qrCodeSvc:    params.QRCodeSvc,
		logger:       params.Logger,
	}
}

// CreateCollectionRequest represents the request body for publishing a collection
type CreateCollectionRequest struct {
	Material     string   `json:"material" validate:"required,material"`
	Title        string   `json:"title" validate:"max=120"`
	Description  string   `json:"description" validate:"max=2000"`
	Notes        string   `json:"notes" validate:"max=2000"`
	Priority     string   `json:"priority" validate:"priority"`
	WeightKg     float64  `json:"weight_kg" validate:"gt=0"`
	Latitude     float64  `json:"latitude" validate:"latitude"`
	Longitude    float64  `json:"longitude" validate:"longitude"`
	Address      string   `json:"address" validate:"max=300"`
	Neighborhood string   `json:"neighborhood" validate:"max=120"`
	City         string   `json:"city" validate:"max=120"`
	PhotoURLs    []string `json:"photo_urls" validate:"max=10,dive,url"`
}

// ConfirmCollectionRequest carries the code typed by the generator or the scanned QR payload
type ConfirmCollectionRequest struct {
	Code string `json:"code" validate:"required_without=QR"`
	QR   string `json:"qr" validate:"required_without=Code"`
}

// CreateCollection publishes a new collection owned by the caller
func (h *CollectionHandler) CreateCollection(c echo.Context) error {
	actor, ok := deliverycontext.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user in token")
	}

	var req CreateCollectionRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid collection input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	collection, err := h.collectionUC.CreateCollection(c.Request().Context(), actor, &usecase.CreateCollectionInput{
		Material:     entity.Material(req.Material),
		Title:        req.Title,
		Description:  req.Description,
		Notes:        req.Notes,
		Priority:     entity.Priority(req.Priority),
		WeightKg:     req.WeightKg,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Address:      req.Address,
		Neighborhood: req.Neighborhood,
		City:         req.City,
		PhotoURLs:    req.PhotoURLs,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, collection)
}

// ListCollections returns the collections the caller published or carries
func (h *CollectionHandler) ListCollections(c echo.Context) error {
	actor, ok := deliverycontext.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user in token")
	}

	collections, err := h.collectionUC.ListOwnCollections(c.Request().Context(), actor)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, collections)
}

// GetCollection returns one collection redacted for the caller
func (h *CollectionHandler) GetCollection(c echo.Context) error {
	return h.transition(c, h.collectionUC.GetCollection)
}

// Claim assigns the collection to the calling collector
func (h *CollectionHandler) Claim(c echo.Context) error {
	return h.transition(c, h.collectionUC.Claim)
}

// Depart moves the caller's claim en route
func (h *CollectionHandler) Depart(c echo.Context) error {
	return h.transition(c, h.collectionUC.Depart)
}

// Arrive reports the collector on site
func (h *CollectionHandler) Arrive(c echo.Context) error {
	return h.transition(c, h.collectionUC.ReportArrival)
}

// Abandon releases the caller's claim
func (h *CollectionHandler) Abandon(c echo.Context) error {
	return h.transition(c, h.collectionUC.Abandon)
}

// Cancel withdraws the collection
func (h *CollectionHandler) Cancel(c echo.Context) error {
	return h.transition(c, h.collectionUC.Cancel)
}

// Confirm completes the handshake with a typed code or a scanned QR payload
func (h *CollectionHandler) Confirm(c echo.Context) error {
	actor, ok := deliverycontext.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user in token")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid collection ID")
	}

	var req ConfirmCollectionRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid confirmation input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	code := req.Code
	if code == "" {
		scannedID, scannedCode, err := h.qrCodeSvc.ParseConfirmationQR(req.QR)
		if err != nil {
			return response.HandleAppError(c, domainerrors.ErrInvalidCode.WithDetails("unreadable QR code"))
		}
		if scannedID != id {
			return response.HandleAppError(c, domainerrors.ErrInvalidCode.WithDetails("QR code belongs to another collection"))
		}
		code = scannedCode
	}

	collection, err := h.collectionUC.Confirm(c.Request().Context(), actor, id, code)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, collection)
}

// ConfirmationQR renders the confirmation code as a PNG for the assigned collector to show
func (h *CollectionHandler) ConfirmationQR(c echo.Context) error {
	actor, ok := deliverycontext.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user in token")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid collection ID")
	}

	collection, err := h.collectionUC.GetCollection(c.Request().Context(), actor, id)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	if !collection.IsAssignedTo(actor.ID) || collection.Status.IsTerminal() || collection.ConfirmationCode == "" {
		return response.HandleAppError(c, domainerrors.ErrCollectionForbidden.WithDetails("only the assigned collector can show the code"))
	}

	png, err := h.qrCodeSvc.GenerateConfirmationQR(collection.ID, collection.ConfirmationCode)
	if err != nil {
		h.logger.Error("Failed to render confirmation QR", slog.Any("collection_id", id), slog.Any("error", err))

		return response.InternalServerError(c, "QR_GENERATION_FAILED", "Failed to generate QR code")
	}

	c.Response().Header().Set("Cache-Control", "no-store")

	return c.Blob(http.StatusOK, "image/png", png)
}

type collectionAction func(ctx context.Context, actor entity.Actor, id uuid.UUID) (*entity.Collection, error)

// transition runs an id-addressed action as the authenticated actor.
func (h *CollectionHandler) transition(c echo.Context, action collectionAction) error {
	actor, ok := deliverycontext.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user in token")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid collection ID")
	}

	collection, err := action(c.Request().Context(), actor, id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, collection)
}
