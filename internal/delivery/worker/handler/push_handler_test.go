package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	deliverycontext "numatu/internal/delivery/context"
	"numatu/internal/domain/entity"
	domainerrors "numatu/internal/domain/errors"
	"numatu/internal/domain/service"
	"numatu/internal/errors"
	"numatu/internal/infra/pubsub"
	mockUsecase "numatu/internal/mocks/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testEvent() *service.ChangeEvent {
	return &service.ChangeEvent{
		RequestID:      "event-req",
		Collection:     &entity.Collection{ID: uuid.New(), GeneratorID: uuid.New(), Status: entity.StatusArrived},
		PreviousStatus: entity.StatusEnRoute,
		Version:        4,
		Origin:         "api-1",
	}
}

func pushBody(t *testing.T, event *service.ChangeEvent) []byte {
	t.Helper()

	msg, err := pubsub.NewPushMessage(event)
	require.NoError(t, err)
	body, err := json.Marshal(msg)
	require.NoError(t, err)

	return body
}

func doPush(h *PushHandler, body []byte) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/push", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	_ = h.HandlePush(e.NewContext(req, rec))

	return rec
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHandlePush_Dispatches(t *testing.T) {
	notifications := mockUsecase.NewMockNotificationUsecase(t)
	event := testEvent()

	notifications.EXPECT().
		Dispatch(mock.Anything, mock.MatchedBy(func(got *service.ChangeEvent) bool {
			return got.Collection.ID == event.Collection.ID && got.Version == event.Version
		})).
		RunAndReturn(func(ctx context.Context, _ *service.ChangeEvent) error {
			// The message attribute carries the event's request id.
			assert.Equal(t, "event-req", deliverycontext.GetRequestIDFromContext(ctx))

			return nil
		}).Once()

	rec := doPush(newPushHandler(notifications, nil, discardLogger()), pushBody(t, event))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandlePush_BadMessages(t *testing.T) {
	notifications := mockUsecase.NewMockNotificationUsecase(t)
	h := newPushHandler(notifications, nil, discardLogger())

	assert.Equal(t, http.StatusBadRequest, doPush(h, []byte(`{"message":`)).Code)
	assert.Equal(t, http.StatusBadRequest, doPush(h, []byte(`{"message":{"data":"%%%"}}`)).Code)
	assert.Equal(t, http.StatusBadRequest, doPush(h, []byte(`{"message":{"data":"e30="}}`)).Code)

	notifications.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
}

func TestHandlePush_DispatchFailures(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"transient failure is redelivered", errors.New("fcm unavailable"), http.StatusServiceUnavailable},
		{"internal app error is redelivered", domainerrors.ErrInternalError, http.StatusServiceUnavailable},
		{"client app error is acked", domainerrors.ErrValidationFailed, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifications := mockUsecase.NewMockNotificationUsecase(t)
			notifications.EXPECT().Dispatch(mock.Anything, mock.Anything).Return(tt.err).Once()

			rec := doPush(newPushHandler(notifications, nil, discardLogger()), pushBody(t, testEvent()))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestHandlePush_RejectsUnverifiedRequests(t *testing.T) {
	notifications := mockUsecase.NewMockNotificationUsecase(t)
	verify := func(*http.Request) error { return errors.New("bad token") }

	rec := doPush(newPushHandler(notifications, verify, discardLogger()), pushBody(t, testEvent()))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestExtractRequestID(t *testing.T) {
	event := testEvent()
	msg := &pubsub.PubSubPushMessage{}

	msg.Message.Attributes = map[string]string{requestIDAttribute: "attr-req"}
	assert.Equal(t, "attr-req", extractRequestID(context.Background(), msg, event))

	msg.Message.Attributes = nil
	assert.Equal(t, "event-req", extractRequestID(context.Background(), msg, event))

	event.RequestID = ""
	ctx := deliverycontext.WithRequestID(context.Background(), "ctx-req")
	assert.Equal(t, "ctx-req", extractRequestID(ctx, msg, event))

	assert.NotEmpty(t, extractRequestID(context.Background(), msg, event))
}

func TestVerifyPubSubToken_MissingHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/push", nil)
	assert.Error(t, verifyPubSubToken(req))

	req.Header.Set(echo.HeaderAuthorization, "Basic abc")
	assert.Error(t, verifyPubSubToken(req))
}
