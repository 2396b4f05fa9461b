package pubsub

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"numatu/config"
	"numatu/internal/domain/entity"
	"numatu/internal/domain/service"
	mockService "numatu/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testEvent(origin string) *service.ChangeEvent {
	collectorID := uuid.New()

	return &service.ChangeEvent{
		RequestID: "req-1",
		Collection: &entity.Collection{
			ID:          uuid.New(),
			GeneratorID: uuid.New(),
			CollectorID: &collectorID,
			Status:      entity.StatusAccepted,
			Material:    entity.MaterialMetal,
			WeightKg:    4,
			Version:     2,
		},
		PreviousStatus: entity.StatusAnnounced,
		Version:        2,
		Origin:         origin,
		OccurredAt:     time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC),
	}
}

func TestPushMessage_RoundTrip(t *testing.T) {
	event := testEvent("node-1")

	msg, err := NewPushMessage(event)
	require.NoError(t, err)
	assert.Equal(t, event.Collection.ID.String(), msg.Message.Attributes[attrCollectionID])
	assert.Equal(t, "ACEITA", msg.Message.Attributes[attrStatus])
	assert.Equal(t, "2", msg.Message.Attributes[attrVersion])
	assert.Equal(t, "node-1", msg.Message.Attributes[attrOrigin])
	assert.Equal(t, "req-1", msg.Message.Attributes[attrRequestID])

	decoded, err := msg.DecodeChangeEvent()
	require.NoError(t, err)
	assert.Equal(t, event.Collection.ID, decoded.Collection.ID)
	assert.Equal(t, event.PreviousStatus, decoded.PreviousStatus)
	assert.Equal(t, event.Version, decoded.Version)
}

func TestPushMessage_DecodeRejectsGarbage(t *testing.T) {
	msg := &PubSubPushMessage{}
	msg.Message.Data = "%%%"
	_, err := msg.DecodeChangeEvent()
	assert.Error(t, err)

	msg.Message.Data = "e30=" // {}
	_, err = msg.DecodeChangeEvent()
	assert.Error(t, err)
}

func TestLocalHTTPPublisher_Publish(t *testing.T) {
	var received PubSubPushMessage
	var requestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-Id")
		_ = json.NewDecoder(r.Body).Decode(&received)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	event := testEvent("node-1")
	publisher := NewLocalHTTPPublisher(srv.URL, testLogger())
	require.NoError(t, publisher.PublishChangeEvent(context.Background(), event))

	assert.Equal(t, "req-1", requestID)
	decoded, err := received.DecodeChangeEvent()
	require.NoError(t, err)
	assert.Equal(t, event.Collection.ID, decoded.Collection.ID)
}

func TestLocalHTTPPublisher_NonSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	publisher := NewLocalHTTPPublisher(srv.URL, testLogger())
	err := publisher.PublishChangeEvent(context.Background(), testEvent("node-1"))
	assert.ErrorContains(t, err, "503")
}

func TestForwarder_OnlyLocalEvents(t *testing.T) {
	publisher := mockService.NewMockEventPublisher(t)
	local := testEvent("node-1")
	publisher.EXPECT().PublishChangeEvent(mock.Anything, local).Return(nil).Once()

	forwarder := NewForwarder(publisher, "node-1", testLogger())
	forwarder.Handle(context.Background(), local)
	forwarder.Handle(context.Background(), testEvent("node-2"))
}

func TestForwarder_SwallowsPublishErrors(t *testing.T) {
	publisher := mockService.NewMockEventPublisher(t)
	publisher.EXPECT().PublishChangeEvent(mock.Anything, mock.Anything).Return(assert.AnError).Once()

	forwarder := NewForwarder(publisher, "node-1", testLogger())
	assert.NotPanics(t, func() {
		forwarder.Handle(context.Background(), testEvent("node-1"))
	})
}

func TestNewEventPublisher_Noop(t *testing.T) {
	publisher, err := NewEventPublisher(PublisherParams{
		Ctx:    context.Background(),
		Config: testConfig(""),
		Logger: testLogger(),
	})
	require.NoError(t, err)
	assert.True(t, IsNoop(publisher))
	assert.NoError(t, publisher.PublishChangeEvent(context.Background(), testEvent("node-1")))
}

func TestNewEventPublisher_UnknownProvider(t *testing.T) {
	_, err := NewEventPublisher(PublisherParams{
		Ctx:    context.Background(),
		Config: testConfig("kafka"),
		Logger: testLogger(),
	})
	assert.ErrorContains(t, err, "unknown pubsub provider")
}

func testConfig(provider string) *config.Config {
	cfg := &config.Config{}
	cfg.Env.InstanceID = "node-1"
	cfg.PubSub = &config.PubSubConfig{Provider: provider}

	return cfg
}

func TestNewEventPublisher_WorkerModeNeedsProvider(t *testing.T) {
	cfg := testConfig("")
	cfg.Notification = &config.NotificationConfig{Mode: config.NotificationModeWorker}

	_, err := NewEventPublisher(PublisherParams{
		Ctx:    context.Background(),
		Config: cfg,
		Logger: testLogger(),
	})
	assert.ErrorContains(t, err, "requires a pubsub provider")
}

func TestNewEventPublisher_MissingProviderSettings(t *testing.T) {
	for _, provider := range []string{"local", "google", "redis"} {
		t.Run(provider, func(t *testing.T) {
			cfg := testConfig(provider)
			cfg.PubSub.RedisChannel = ""

			_, err := NewEventPublisher(PublisherParams{
				Ctx:    context.Background(),
				Config: cfg,
				Logger: testLogger(),
			})
			assert.ErrorContains(t, err, "required for the "+provider+" provider")
		})
	}
}

func TestNewEventPublisher_WorkerModeRejectsRedis(t *testing.T) {
	cfg := testConfig("redis")
	cfg.PubSub.RedisChannel = "numatu-changes"
	cfg.Notification = &config.NotificationConfig{Mode: config.NotificationModeWorker}

	_, err := NewEventPublisher(PublisherParams{
		Ctx:    context.Background(),
		Config: cfg,
		Logger: testLogger(),
	})
	assert.ErrorContains(t, err, "cannot deliver to the notification worker")
}
