package handler

import (
	"numatu/internal/delivery/api/response"
	"numatu/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// DevTokenHandlerParams holds dependencies for DevTokenHandler, injected by Fx.
type DevTokenHandlerParams struct {
	fx.In

	TokenSvc service.TokenService
}

// DevTokenHandler mints access tokens in the develop environment, where no identity
// provider issues them.
type DevTokenHandler struct {
	tokenSvc service.TokenService
}

// NewDevTokenHandler creates a new DevTokenHandler instance
func NewDevTokenHandler(params DevTokenHandlerParams) *DevTokenHandler {
	return &DevTokenHandler{tokenSvc: params.TokenSvc}
}

// IssueTokenRequest names the user and the role the token acts in
type IssueTokenRequest struct {
	UserID string `json:"user_id" validate:"omitempty,uuid"`
	Role   string `json:"role" validate:"required,oneof=ADVERTISER COLLECTOR ADMIN"`
}

// IssueToken returns a signed access token, generating a user id when none is given
func (h *DevTokenHandler) IssueToken(c echo.Context) error {
	var req IssueTokenRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid token request")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	userID := uuid.New()
	if req.UserID != "" {
		userID = uuid.MustParse(req.UserID)
	}

	token, err := h.tokenSvc.GenerateToken(userID, req.Role)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, map[string]string{
		"access_token": token,
		"user_id":      userID.String(),
		"role":         req.Role,
	})
}
