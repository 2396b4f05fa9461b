package mqtt

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"numatu/internal/domain/entity"
	domainerrors "numatu/internal/domain/errors"
	mockUsecase "numatu/internal/mocks/usecase"
	"numatu/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const positionsTopic = "collectors/+/positions"

type fakeMessage struct {
	topic   string
	payload []byte
}

func (m *fakeMessage) Duplicate() bool   { return false }
func (m *fakeMessage) Qos() byte         { return 1 }
func (m *fakeMessage) Retained() bool    { return false }
func (m *fakeMessage) Topic() string     { return m.topic }
func (m *fakeMessage) MessageID() uint16 { return 1 }
func (m *fakeMessage) Payload() []byte   { return m.payload }
func (m *fakeMessage) Ack()              {}

func newTestSubscriber(t *testing.T) (*subscriber, *mockUsecase.MockProximityUsecase) {
	t.Helper()

	proximity := mockUsecase.NewMockProximityUsecase(t)
	s := newSubscriber(positionsTopic, 1, proximity, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.now = func() time.Time { return time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC) }

	return s, proximity
}

func TestCollectorFromTopic(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name  string
		topic string
		want  uuid.UUID
		ok    bool
	}{
		{"matches", "collectors/" + id.String() + "/positions", id, true},
		{"wrong suffix", "collectors/" + id.String() + "/status", uuid.Nil, false},
		{"not a uuid", "collectors/bob/positions", uuid.Nil, false},
		{"nil uuid", "collectors/" + uuid.Nil.String() + "/positions", uuid.Nil, false},
		{"too deep", "collectors/" + id.String() + "/positions/extra", uuid.Nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := collectorFromTopic(positionsTopic, tt.topic)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHandleMessage(t *testing.T) {
	collectorID := uuid.New()
	topic := "collectors/" + collectorID.String() + "/positions"

	t.Run("reports the sample", func(t *testing.T) {
		s, proximity := newTestSubscriber(t)
		proximity.EXPECT().
			ReportPosition(mock.Anything, mock.MatchedBy(func(sample entity.PositionSample) bool {
				return sample.CollectorID == collectorID &&
					sample.Coordinates == entity.Coordinates{Lat: -23.55, Lng: -46.63} &&
					sample.RecordedAt.Equal(time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC))
			})).
			Return(&usecase.PositionResult{Arrived: true}, nil).Once()

		s.handleMessage(nil, &fakeMessage{topic: topic, payload: []byte(`{"lat":-23.55,"lng":-46.63}`)})
	})

	t.Run("device timestamp wins", func(t *testing.T) {
		s, proximity := newTestSubscriber(t)
		at := time.Date(2025, 5, 1, 8, 59, 30, 0, time.UTC)
		proximity.EXPECT().
			ReportPosition(mock.Anything, mock.MatchedBy(func(sample entity.PositionSample) bool {
				return sample.RecordedAt.Equal(at) && sample.Accuracy != nil && *sample.Accuracy == 5
			})).
			Return(nil, domainerrors.ErrValidationFailed).Once()

		s.handleMessage(nil, &fakeMessage{topic: topic, payload: []byte(`{"lat":1,"lng":2,"accuracy":5,"timestamp":"2025-05-01T08:59:30Z"}`)})
	})

	t.Run("bad topic and payload are dropped", func(t *testing.T) {
		s, proximity := newTestSubscriber(t)

		s.handleMessage(nil, &fakeMessage{topic: "collectors/x/positions", payload: []byte(`{"lat":1,"lng":2}`)})
		s.handleMessage(nil, &fakeMessage{topic: topic, payload: []byte(`garbage`)})

		proximity.AssertNotCalled(t, "ReportPosition", mock.Anything, mock.Anything)
	})
}
