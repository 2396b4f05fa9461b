package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"numatu/internal/domain/entity"
	domainerrors "numatu/internal/domain/errors"
	"numatu/internal/domain/service"
	mockUsecase "numatu/internal/mocks/usecase"
	"numatu/internal/usecase"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func dial(t *testing.T, handler *Handler, actor entity.Actor) *websocket.Conn {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handler.Serve(w, r, actor)
	}))
	t.Cleanup(server.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) (string, json.RawMessage) {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &msg))

	return msg.Type, msg.Data
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.ClientCount() == n }, 2*time.Second, 10*time.Millisecond)
}

func TestHandler_PingPong(t *testing.T) {
	hub := newHub(nil, 8, nil)
	conn := dial(t, newHandler(hub, nil, nil), entity.Actor{ID: uuid.New(), Role: entity.RoleAdvertiser})

	require.NoError(t, conn.WriteJSON(map[string]string{"type": TypePing}))
	msgType, _ := readMessage(t, conn)
	assert.Equal(t, TypePong, msgType)
}

func TestHandler_LocationUpdate(t *testing.T) {
	proximity := mockUsecase.NewMockProximityUsecase(t)
	hub := newHub(proximity, 8, nil)
	collector := entity.Actor{ID: uuid.New(), Role: entity.RoleCollector}
	conn := dial(t, newHandler(hub, nil, nil), collector)

	recordedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	proximity.EXPECT().
		ReportPosition(mock.Anything, mock.MatchedBy(func(s entity.PositionSample) bool {
			return s.CollectorID == collector.ID && s.Coordinates.Lat == -23.5 && s.RecordedAt.Equal(recordedAt)
		})).
		Return(&usecase.PositionResult{Arrived: true}, nil).
		Once()

	require.NoError(t, conn.WriteJSON(map[string]any{
		"type": TypeLocationUpdate,
		"data": map[string]any{"latitude": -23.5, "longitude": -46.6, "timestamp": recordedAt},
	}))

	msgType, data := readMessage(t, conn)
	require.Equal(t, TypePositionResult, msgType)
	var result usecase.PositionResult
	require.NoError(t, json.Unmarshal(data, &result))
	assert.True(t, result.Arrived)
}

func TestHandler_LocationUpdateErrors(t *testing.T) {
	t.Run("non collector", func(t *testing.T) {
		hub := newHub(mockUsecase.NewMockProximityUsecase(t), 8, nil)
		conn := dial(t, newHandler(hub, nil, nil), entity.Actor{ID: uuid.New(), Role: entity.RoleAdvertiser})

		require.NoError(t, conn.WriteJSON(map[string]any{"type": TypeLocationUpdate, "data": map[string]any{"latitude": 1, "longitude": 1}}))
		msgType, data := readMessage(t, conn)
		require.Equal(t, TypeError, msgType)
		assert.Contains(t, string(data), domainerrors.ErrCollectionForbidden.ErrorCode())
	})

	t.Run("domain rejection", func(t *testing.T) {
		proximity := mockUsecase.NewMockProximityUsecase(t)
		proximity.EXPECT().ReportPosition(mock.Anything, mock.Anything).
			Return(nil, domainerrors.ErrValidationFailed.WithDetails("bad sample")).Once()
		hub := newHub(proximity, 8, nil)
		conn := dial(t, newHandler(hub, nil, nil), entity.Actor{ID: uuid.New(), Role: entity.RoleCollector})

		require.NoError(t, conn.WriteJSON(map[string]any{"type": TypeLocationUpdate, "data": map[string]any{"latitude": 1, "longitude": 1}}))
		msgType, data := readMessage(t, conn)
		require.Equal(t, TypeError, msgType)
		assert.Contains(t, string(data), "VALIDATION_FAILED")
	})

	t.Run("garbage frame", func(t *testing.T) {
		hub := newHub(nil, 8, nil)
		conn := dial(t, newHandler(hub, nil, nil), entity.Actor{ID: uuid.New(), Role: entity.RoleCollector})

		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
		msgType, data := readMessage(t, conn)
		require.Equal(t, TypeError, msgType)
		assert.Contains(t, string(data), "INVALID_MESSAGE")
	})
}

func TestHandler_ReceivesChanges(t *testing.T) {
	hub := newHub(nil, 8, nil)
	generator := entity.Actor{ID: uuid.New(), Role: entity.RoleAdvertiser}
	conn := dial(t, newHandler(hub, nil, nil), generator)
	waitForClients(t, hub, 1)

	hub.HandleChange(context.Background(), &service.ChangeEvent{
		Collection: &entity.Collection{ID: uuid.New(), GeneratorID: generator.ID, Status: entity.StatusAnnounced, Version: 1},
		Version:    1,
	})

	msgType, data := readMessage(t, conn)
	require.Equal(t, TypeCollectionChanged, msgType)
	var change CollectionChange
	require.NoError(t, json.Unmarshal(data, &change))
	assert.Equal(t, entity.StatusAnnounced, change.Collection.Status)
	assert.True(t, change.MarketChanged)

	require.NoError(t, conn.Close())
	waitForClients(t, hub, 0)
}

func TestCheckOrigin(t *testing.T) {
	request := func(origin string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/ws", nil)
		if origin != "" {
			r.Header.Set("Origin", origin)
		}

		return r
	}

	assert.Nil(t, checkOrigin(nil))
	assert.True(t, checkOrigin([]string{"*"})(request("https://evil.example")))

	check := checkOrigin([]string{"https://app.numatu.com.br/"})
	assert.True(t, check(request("https://app.numatu.com.br")))
	assert.True(t, check(request("")))
	assert.False(t, check(request("https://evil.example")))
}
