package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"numatu/config"
	deliverycontext "numatu/internal/delivery/context"
	"numatu/internal/domain/constants"
	domainerrors "numatu/internal/domain/errors"
	"numatu/internal/domain/service"
	"numatu/internal/errors"
	"numatu/internal/infra/pubsub"
	"numatu/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
	"google.golang.org/api/idtoken"
)

const requestIDAttribute = "request_id"

// TokenVerifier authenticates a push request.
type TokenVerifier func(req *http.Request) error

// PushHandler turns Pub/Sub push deliveries of change events into notifications
type PushHandler struct {
	verify        TokenVerifier
	logger        *slog.Logger
	notifications usecase.NotificationUsecase
}

// PushHandlerParams holds dependencies for the PushHandler
type PushHandlerParams struct {
	fx.In

	Config        *config.Config
	Logger        *slog.Logger
	Notifications usecase.NotificationUsecase
}

// NewPushHandler creates a new Pub/Sub push handler. Push requests are OIDC-verified
// when Google Pub/Sub is the provider outside develop.
func NewPushHandler(params PushHandlerParams) *PushHandler {
	var verify TokenVerifier
	if params.Config.PubSub != nil &&
		params.Config.PubSub.Provider == constants.PubSubProviderGoogle &&
		params.Config.Env.Env != constants.EnvDevelop {
		verify = verifyPubSubToken
	}

	return newPushHandler(params.Notifications, verify, params.Logger)
}

func newPushHandler(notifications usecase.NotificationUsecase, verify TokenVerifier, logger *slog.Logger) *PushHandler {
	return &PushHandler{
		verify:        verify,
		logger:        logger,
		notifications: notifications,
	}
}

// HandlePush handles incoming Pub/Sub push messages. A 2xx acks the message, a 503
// asks Pub/Sub to redeliver it.
func (h *PushHandler) HandlePush(c echo.Context) error {
	ctx := c.Request().Context()

	if h.verify != nil {
		if err := h.verify(c.Request()); err != nil {
			h.logger.Warn("[Worker] Invalid Pub/Sub token", slog.Any("error", err))

			return c.NoContent(http.StatusUnauthorized)
		}
	}

	var pushMsg pubsub.PubSubPushMessage
	if err := c.Bind(&pushMsg); err != nil {
		h.logger.Error("[Worker] Failed to parse push message", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	event, err := pushMsg.DecodeChangeEvent()
	if err != nil {
		h.logger.Error("[Worker] Failed to decode change event",
			slog.String("message_id", pushMsg.Message.MessageID),
			slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	requestID := extractRequestID(ctx, &pushMsg, event)
	reqLogger := h.logger.With(slog.String("request_id", requestID))
	ctx = deliverycontext.WithRequestID(ctx, requestID)
	ctx = deliverycontext.WithLogger(ctx, reqLogger)

	reqLogger.Info("[Worker] Processing change event",
		slog.String("message_id", pushMsg.Message.MessageID),
		slog.String("collection_id", event.Collection.ID.String()),
		slog.String("status", event.Collection.Status.String()),
		slog.Int64("version", event.Version))

	if err := h.notifications.Dispatch(ctx, event); err != nil {
		retryable := isRetryable(err)
		reqLogger.Error("[Worker] Failed to dispatch notification",
			slog.String("collection_id", event.Collection.ID.String()),
			slog.Any("error", err),
			slog.Bool("retryable", retryable))
		if retryable {
			return c.NoContent(http.StatusServiceUnavailable)
		}

		return c.NoContent(http.StatusOK)
	}

	return c.NoContent(http.StatusOK)
}

// isRetryable treats client-side application errors as permanent and everything else
// as transient.
func isRetryable(err error) bool {
	if appErr, ok := errors.AsType[domainerrors.AppError](err); ok {
		return appErr.HTTPCode() >= http.StatusInternalServerError
	}

	return true
}

// extractRequestID prefers the message attribute, then the event, then the inbound
// request, and generates one as a last resort.
func extractRequestID(ctx context.Context, pushMsg *pubsub.PubSubPushMessage, event *service.ChangeEvent) string {
	if requestID := pushMsg.Message.Attributes[requestIDAttribute]; requestID != "" {
		return requestID
	}
	if event.RequestID != "" {
		return event.RequestID
	}
	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		return requestID
	}

	return uuid.NewString()
}

// verifyPubSubToken verifies the OIDC token Google Pub/Sub attaches to push requests
// Reference: https://cloud.google.com/pubsub/docs/push#authenticating_standard_push_requests
func verifyPubSubToken(req *http.Request) error {
	authHeader := req.Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return errors.New("missing authorization header")
	}

	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return errors.New("invalid authorization header format")
	}
	token := strings.TrimPrefix(authHeader, bearerPrefix)

	// The audience is the push endpoint URL
	scheme := "https"
	if req.TLS == nil {
		scheme = "http"
	}
	audience := fmt.Sprintf("%s://%s%s", scheme, req.Host, req.URL.Path)

	payload, err := idtoken.Validate(req.Context(), token, audience)
	if err != nil {
		return errors.Wrap(err, "failed to validate token")
	}

	if payload.Issuer != "accounts.google.com" && payload.Issuer != "https://accounts.google.com" {
		return errors.Errorf("invalid issuer: %s", payload.Issuer)
	}
	if emailVerified, ok := payload.Claims["email_verified"].(bool); ok && !emailVerified {
		return errors.New("email not verified")
	}

	return nil
}
