// Package realtime pushes collection changes to connected clients over WebSocket and
// accepts position updates from collectors on the same connection.
package realtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"numatu/config"
	"numatu/internal/domain/entity"
	"numatu/internal/domain/service"
	"numatu/internal/infra/notifier"
	"numatu/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

const defaultSendBuffer = 256

// Outgoing message types
const (
	TypeCollectionChanged = "collection_changed"
	TypePong              = "pong"
	TypePositionResult    = "position_result"
	TypeError             = "error"
)

// Message is the envelope of every frame sent to a client.
type Message struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data,omitempty"`
}

// CollectionChange is the payload of a collection_changed message.
type CollectionChange struct {
	Collection     *entity.Collection      `json:"collection"`
	PreviousStatus entity.CollectionStatus `json:"previous_status,omitempty"`
	Abandoned      bool                    `json:"abandoned,omitempty"`
	Version        int64                   `json:"version"`
	MarketChanged  bool                    `json:"market_changed"`
}

// Hub tracks connected clients by user and routes change events to them.
type Hub struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]map[*Client]struct{}

	proximity  usecase.ProximityUsecase
	sendBuffer int
	now        func() time.Time
	logger     *slog.Logger
}

// HubParams holds dependencies for the Hub, injected by Fx.
type HubParams struct {
	fx.In

	Lc          fx.Lifecycle
	Config      *config.Config
	Collections usecase.CollectionUsecase
	Proximity   usecase.ProximityUsecase
	Logger      *slog.Logger
}

// NewHub creates the hub and subscribes it to committed changes for the app lifetime.
func NewHub(params HubParams) *Hub {
	size := defaultSendBuffer
	if params.Config != nil && params.Config.Realtime != nil && params.Config.Realtime.SendBuffer > 0 {
		size = params.Config.Realtime.SendBuffer
	}

	hub := newHub(params.Proximity, size, params.Logger)

	var unsubscribe func()
	params.Lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			unsubscribe = params.Collections.Subscribe(notifier.LatestOnly(hub.HandleChange))

			return nil
		},
		OnStop: func(ctx context.Context) error {
			if unsubscribe != nil {
				unsubscribe()
			}
			hub.CloseAll()

			return nil
		},
	})

	return hub
}

func newHub(proximity usecase.ProximityUsecase, sendBuffer int, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}

	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]struct{}),
		proximity:  proximity,
		sendBuffer: sendBuffer,
		now:        time.Now,
		logger:     logger,
	}
}

// Register adds the client to the routing table.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	conns, ok := h.clients[client.actor.ID]
	if !ok {
		conns = make(map[*Client]struct{})
		h.clients[client.actor.ID] = conns
	}
	conns[client] = struct{}{}
	total := h.countLocked()
	h.mu.Unlock()

	h.logger.Info("Realtime client connected",
		slog.String("user_id", client.actor.ID.String()),
		slog.String("role", client.actor.Role.String()),
		slog.Int("clients", total))
}

// Unregister removes the client and closes its send queue.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	removed := h.removeLocked(client)
	total := h.countLocked()
	h.mu.Unlock()

	if removed {
		client.closeSend()
		h.logger.Info("Realtime client disconnected",
			slog.String("user_id", client.actor.ID.String()),
			slog.Int("clients", total))
	}
}

// CloseAll disconnects every client.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	all := h.clients
	h.clients = make(map[uuid.UUID]map[*Client]struct{})
	h.mu.Unlock()

	for _, conns := range all {
		for client := range conns {
			client.closeSend()
		}
	}
}

// ClientCount returns the number of open connections.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.countLocked()
}

// HandleChange sends the event to the generator, the current and previous collector and,
// when the set of open collections changed, to every connected collector. Each recipient
// gets the record redacted for its own actor.
func (h *Hub) HandleChange(_ context.Context, event *service.ChangeEvent) {
	if event == nil || event.Collection == nil {
		return
	}

	for _, client := range h.recipients(event) {
		change := CollectionChange{
			Collection:     event.Collection.RedactedFor(client.actor),
			PreviousStatus: event.PreviousStatus,
			Abandoned:      event.Abandoned,
			Version:        event.Version,
			MarketChanged:  event.AffectsMarket(),
		}
		h.deliver(client, Message{Type: TypeCollectionChanged, Timestamp: h.now().UTC(), Data: change})
	}
}

func (h *Hub) recipients(event *service.ChangeEvent) []*Client {
	c := event.Collection
	users := map[uuid.UUID]struct{}{c.GeneratorID: {}}
	if c.CollectorID != nil {
		users[*c.CollectorID] = struct{}{}
	}
	if event.PreviousCollectorID != nil {
		users[*event.PreviousCollectorID] = struct{}{}
	}
	broadcastCollectors := event.AffectsMarket()

	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]*Client, 0, len(users))
	for userID, conns := range h.clients {
		_, direct := users[userID]
		for client := range conns {
			if direct || (broadcastCollectors && client.actor.Role == entity.RoleCollector) {
				out = append(out, client)
			}
		}
	}

	return out
}

// deliver queues the message without blocking. A client whose queue is full is dropped.
func (h *Hub) deliver(client *Client, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("Failed to marshal realtime message", slog.String("type", msg.Type), slog.Any("error", err))

		return
	}

	if !client.enqueue(data) {
		h.logger.Warn("Realtime client buffer full, disconnecting", slog.String("user_id", client.actor.ID.String()))
		h.Unregister(client)
	}
}

func (h *Hub) removeLocked(client *Client) bool {
	conns, ok := h.clients[client.actor.ID]
	if !ok {
		return false
	}
	if _, ok := conns[client]; !ok {
		return false
	}

	delete(conns, client)
	if len(conns) == 0 {
		delete(h.clients, client.actor.ID)
	}

	return true
}

func (h *Hub) countLocked() int {
	total := 0
	for _, conns := range h.clients {
		total += len(conns)
	}

	return total
}
