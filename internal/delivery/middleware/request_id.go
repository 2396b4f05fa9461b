package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "numatu/internal/delivery/context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const maxRequestIDLength = 128

// RequestIDMiddleware binds a request id and a logger carrying it to every request
type RequestIDMiddleware struct {
	logger *slog.Logger
}

// NewRequestIDMiddleware creates a new Request ID middleware
func NewRequestIDMiddleware(logger *slog.Logger) *RequestIDMiddleware {
	return &RequestIDMiddleware{
		logger: logger,
	}
}

// Process reuses a sane inbound X-Request-Id, or generates one, and echoes it back.
func (m *RequestIDMiddleware) Process(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID, ok := inboundRequestID(c.Request().Header.Get(deliverycontext.HeaderXRequestID))
		if !ok {
			requestID = uuid.NewString()
		}

		deliverycontext.SetRequestID(c, requestID)
		c.Response().Header().Set(deliverycontext.HeaderXRequestID, requestID)

		ctx := deliverycontext.WithRequestID(c.Request().Context(), requestID)
		ctx = deliverycontext.WithLogger(ctx, m.logger.With(slog.String("request_id", requestID)))
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// inboundRequestID accepts a client-supplied id only if it is short and printable,
// since it ends up in logs and in Pub/Sub attributes.
func inboundRequestID(header string) (string, bool) {
	id := strings.TrimSpace(header)
	if id == "" || len(id) > maxRequestIDLength {
		return "", false
	}
	for _, r := range id {
		if r < 0x21 || r > 0x7e {
			return "", false
		}
	}

	return id, true
}
