package notify

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"numatu/config"
	"numatu/internal/domain/entity"
	"numatu/internal/domain/service"
	mockService "numatu/internal/mocks/service"
	mockUsecase "numatu/internal/mocks/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func changeFrom(origin string) *service.ChangeEvent {
	return &service.ChangeEvent{
		RequestID:  "req-1",
		Collection: &entity.Collection{ID: uuid.New(), Status: entity.StatusAccepted},
		Version:    2,
		Origin:     origin,
	}
}

func TestInlineHandler_DispatchesLocalEvents(t *testing.T) {
	notifications := mockUsecase.NewMockNotificationUsecase(t)
	event := changeFrom("api-1")
	notifications.EXPECT().Dispatch(mock.Anything, event).Return(nil).Once()

	NewInlineHandler("api-1", notifications, discardLogger())(context.Background(), event)
}

func TestInlineHandler_SkipsRemoteEvents(t *testing.T) {
	notifications := mockUsecase.NewMockNotificationUsecase(t)

	handler := NewInlineHandler("api-1", notifications, discardLogger())
	handler(context.Background(), changeFrom("api-2"))
	handler(context.Background(), nil)

	notifications.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
}

func TestInlineHandler_DispatchErrorIsLogged(t *testing.T) {
	notifications := mockUsecase.NewMockNotificationUsecase(t)
	notifications.EXPECT().Dispatch(mock.Anything, mock.Anything).Return(errors.New("fcm down")).Once()

	assert.NotPanics(t, func() {
		NewInlineHandler("api-1", notifications, discardLogger())(context.Background(), changeFrom("api-1"))
	})
}

func TestRegisterInline(t *testing.T) {
	newConfig := func(mode string) *config.Config {
		cfg := &config.Config{Notification: &config.NotificationConfig{Mode: mode}}
		cfg.Env.InstanceID = "api-1"

		return cfg
	}

	t.Run("inline mode subscribes for the app lifetime", func(t *testing.T) {
		lc := fxtest.NewLifecycle(t)
		notifier := mockService.NewMockChangeNotifier(t)
		unsubscribed := false
		notifier.EXPECT().Subscribe(mock.Anything).Return(func() { unsubscribed = true }).Once()

		RegisterInline(InlineParams{
			Lc:            lc,
			Config:        newConfig(config.NotificationModeInline),
			Notifier:      notifier,
			Notifications: mockUsecase.NewMockNotificationUsecase(t),
			Logger:        discardLogger(),
		})

		require.NoError(t, lc.Start(context.Background()))
		require.NoError(t, lc.Stop(context.Background()))
		assert.True(t, unsubscribed)
	})

	t.Run("other modes do nothing", func(t *testing.T) {
		lc := fxtest.NewLifecycle(t)
		notifier := mockService.NewMockChangeNotifier(t)

		RegisterInline(InlineParams{
			Lc:            lc,
			Config:        newConfig(config.NotificationModeWorker),
			Notifier:      notifier,
			Notifications: mockUsecase.NewMockNotificationUsecase(t),
			Logger:        discardLogger(),
		})

		require.NoError(t, lc.Start(context.Background()))
		require.NoError(t, lc.Stop(context.Background()))
		notifier.AssertNotCalled(t, "Subscribe", mock.Anything)
	})
}
