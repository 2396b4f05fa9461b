// Package mqtt ingests collector positions published to an MQTT broker.
package mqtt

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"numatu/config"
	"numatu/internal/delivery"
	deliverycontext "numatu/internal/delivery/context"
	"numatu/internal/domain/entity"
	"numatu/internal/usecase"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	connectTimeout   = 10 * time.Second
	disconnectQuiesce = 250
)

// PositionPayload is the JSON body of a position message. The collector id comes from
// the topic, never from the payload.
type PositionPayload struct {
	Lat       float64    `json:"lat"`
	Lng       float64    `json:"lng"`
	Accuracy  *float64   `json:"accuracy,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

type subscriber struct {
	client    pahomqtt.Client
	topic     string
	qos       byte
	proximity usecase.ProximityUsecase
	now       func() time.Time
	logger    *slog.Logger
	done      chan struct{}
}

// Params holds dependencies for the MQTT subscriber, injected by Fx.
type Params struct {
	fx.In

	Lc        fx.Lifecycle
	Config    *config.Config
	Proximity usecase.ProximityUsecase
	Logger    *slog.Logger
}

// NewSubscriber creates the MQTT ingress delivery. It returns nil when MQTT is disabled.
func NewSubscriber(params Params) delivery.Delivery {
	cfg := params.Config.MQTT
	if cfg == nil || !cfg.Enabled {
		return nil
	}

	s := newSubscriber(cfg.Topic, cfg.QoS, params.Proximity, params.Logger)

	clientID := cfg.ClientID
	if clientID == "" {
		clientID = "numatu-" + params.Config.Env.InstanceID
	}
	opts := pahomqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(clientID).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetAutoReconnect(true).
		SetOrderMatters(false).
		SetConnectTimeout(connectTimeout).
		SetOnConnectHandler(s.onConnect).
		SetConnectionLostHandler(func(_ pahomqtt.Client, err error) {
			s.logger.Warn("MQTT connection lost", slog.Any("error", err))
		})
	s.client = pahomqtt.NewClient(opts)

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			s.stop()

			return nil
		},
	})

	return s
}

func newSubscriber(topic string, qos byte, proximity usecase.ProximityUsecase, logger *slog.Logger) *subscriber {
	return &subscriber{
		topic:     topic,
		qos:       qos,
		proximity: proximity,
		now:       time.Now,
		logger:    logger,
		done:      make(chan struct{}),
	}
}

// Serve connects to the broker and blocks until stopped. Subscriptions are renewed on
// every (re)connect.
func (s *subscriber) Serve(ctx context.Context) error {
	s.logger.Info("Connecting to MQTT broker", slog.String("topic", s.topic))

	token := s.client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return errors.New("timed out connecting to MQTT broker")
	}
	if err := token.Error(); err != nil {
		return errors.Wrap(err, "failed to connect to MQTT broker")
	}

	select {
	case <-s.done:
	case <-ctx.Done():
	}
	s.client.Disconnect(disconnectQuiesce)

	return nil
}

func (s *subscriber) onConnect(client pahomqtt.Client) {
	token := client.Subscribe(s.topic, s.qos, s.handleMessage)
	if token.WaitTimeout(connectTimeout) && token.Error() == nil {
		s.logger.Info("Subscribed to MQTT positions", slog.String("topic", s.topic))

		return
	}

	s.logger.Error("Failed to subscribe to MQTT positions", slog.String("topic", s.topic), slog.Any("error", token.Error()))
}

func (s *subscriber) handleMessage(_ pahomqtt.Client, msg pahomqtt.Message) {
	collectorID, ok := collectorFromTopic(s.topic, msg.Topic())
	if !ok {
		s.logger.Warn("Ignoring MQTT message on unexpected topic", slog.String("topic", msg.Topic()))

		return
	}

	var payload PositionPayload
	if err := json.Unmarshal(msg.Payload(), &payload); err != nil {
		s.logger.Warn("Ignoring malformed MQTT position", slog.String("topic", msg.Topic()), slog.Any("error", err))

		return
	}

	sample := entity.PositionSample{
		CollectorID: collectorID,
		Coordinates: entity.Coordinates{Lat: payload.Lat, Lng: payload.Lng},
		Accuracy:    payload.Accuracy,
		RecordedAt:  s.now().UTC(),
	}
	if payload.Timestamp != nil {
		sample.RecordedAt = payload.Timestamp.UTC()
	}

	logger := s.logger.With(slog.String("collector_id", collectorID.String()))
	ctx := deliverycontext.WithLogger(context.Background(), logger)

	result, err := s.proximity.ReportPosition(ctx, sample)
	if err != nil {
		logger.Warn("MQTT position rejected", slog.Any("error", err))

		return
	}
	if result != nil && result.Arrived {
		logger.Info("Arrival detected from MQTT position")
	}
}

func (s *subscriber) stop() {
	select {
	case <-s.done:
	default:
		close(s.done)
	}
}

// collectorFromTopic extracts the collector id matched by the single-level wildcard of
// pattern, e.g. collectors/+/positions.
func collectorFromTopic(pattern, topic string) (uuid.UUID, bool) {
	want := strings.Split(pattern, "/")
	got := strings.Split(topic, "/")
	if len(want) != len(got) {
		return uuid.Nil, false
	}

	var id uuid.UUID
	found := false
	for i, segment := range want {
		switch segment {
		case "+":
			parsed, err := uuid.Parse(got[i])
			if err != nil || found {
				return uuid.Nil, false
			}
			id, found = parsed, true
		default:
			if segment != got[i] {
				return uuid.Nil, false
			}
		}
	}

	return id, found && id != uuid.Nil
}
