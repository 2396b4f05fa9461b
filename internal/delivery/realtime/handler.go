package realtime

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"numatu/config"
	deliverycontext "numatu/internal/delivery/context"
	"numatu/internal/domain/entity"
	domainerrors "numatu/internal/domain/errors"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// HandlerParams holds dependencies for the WebSocket Handler, injected by Fx.
type HandlerParams struct {
	fx.In

	Hub    *Hub
	Config *config.Config
	Logger *slog.Logger
}

// Handler upgrades authenticated requests to WebSocket connections on the hub.
type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewHandler creates the WebSocket handler. It returns nil when realtime is disabled,
// which leaves /ws unregistered.
func NewHandler(params HandlerParams) *Handler {
	if params.Config == nil || params.Config.Realtime == nil || !params.Config.Realtime.Enabled {
		return nil
	}

	return newHandler(params.Hub, params.Config.Realtime.AllowedOrigins, params.Logger)
}

func newHandler(hub *Hub, allowedOrigins []string, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin(allowedOrigins),
		},
		logger: logger,
	}
}

// ServeWS is the echo handler. It must run after the Authenticate middleware.
func (h *Handler) ServeWS(c echo.Context) error {
	actor, ok := deliverycontext.GetActor(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	// After the upgrade echo no longer owns the response, so errors are not returned.
	h.Serve(c.Response(), c.Request(), actor)

	return nil
}

// Serve upgrades the request and runs the connection until the peer leaves.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request, actor entity.Actor) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		deliverycontext.GetLoggerOrDefault(r.Context(), h.logger).Warn("WebSocket upgrade failed", slog.Any("error", err))

		return
	}

	client := newClient(context.WithoutCancel(r.Context()), actor, conn, h.hub)
	h.hub.Register(client)

	go client.writePump()
	client.readPump()
}

// checkOrigin returns nil (same-origin only) for an empty list, and accepts any origin
// for "*".
func checkOrigin(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 {
		return nil
	}
	if slices.Contains(allowed, "*") {
		return func(*http.Request) bool { return true }
	}

	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}

		return slices.ContainsFunc(allowed, func(candidate string) bool {
			return strings.EqualFold(strings.TrimRight(candidate, "/"), u.Scheme+"://"+u.Host)
		})
	}
}
