package realtime

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	deliverycontext "numatu/internal/delivery/context"
	"numatu/internal/domain/entity"
	domainerrors "numatu/internal/domain/errors"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 2048
)

// Incoming message types
const (
	TypePing           = "ping"
	TypeLocationUpdate = "location_update"
)

// IncomingMessage is a frame sent by the client.
type IncomingMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// LocationUpdate is the payload of a location_update message.
type LocationUpdate struct {
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	Accuracy  *float64   `json:"accuracy,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// ErrorPayload is the data of an error message.
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Client is one WebSocket connection of an authenticated actor.
type Client struct {
	actor entity.Actor
	conn  *websocket.Conn
	hub   *Hub
	ctx   context.Context

	mu     sync.Mutex
	send   chan []byte
	closed bool
}

func newClient(ctx context.Context, actor entity.Actor, conn *websocket.Conn, hub *Hub) *Client {
	return &Client{
		actor: actor,
		conn:  conn,
		hub:   hub,
		ctx:   ctx,
		send:  make(chan []byte, hub.sendBuffer),
	}
}

// enqueue queues data for the write pump. It reports false when the queue is full.
func (c *Client) enqueue(data []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return true
	}

	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

func (c *Client) log() *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(c.ctx, c.hub.logger)
}

// readPump pumps frames from the connection to the hub until the peer goes away.
func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log().Warn("WebSocket read failed", slog.Any("error", err))
			}

			return
		}

		var msg IncomingMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.reply(TypeError, ErrorPayload{Code: "INVALID_MESSAGE", Message: "message is not valid JSON"})

			continue
		}

		switch msg.Type {
		case TypePing:
			c.reply(TypePong, nil)
		case TypeLocationUpdate:
			c.handleLocationUpdate(msg.Data)
		default:
			c.reply(TypeError, ErrorPayload{Code: "UNKNOWN_TYPE", Message: "unknown message type " + msg.Type})
		}
	}
}

// writePump pumps queued messages to the connection and keeps it alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})

				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, c.batch(message)); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// batch joins the already queued messages to first, one JSON document per line.
func (c *Client) batch(first []byte) []byte {
	n := len(c.send)
	if n == 0 {
		return first
	}

	var buf bytes.Buffer
	buf.Write(first)
	for range n {
		next, ok := <-c.send
		if !ok {
			break
		}
		buf.WriteByte('\n')
		buf.Write(next)
	}

	return buf.Bytes()
}

func (c *Client) handleLocationUpdate(data json.RawMessage) {
	if c.actor.Role != entity.RoleCollector {
		c.reply(TypeError, ErrorPayload{Code: domainerrors.ErrCollectionForbidden.ErrorCode(), Message: "only collectors report positions"})

		return
	}

	var update LocationUpdate
	if err := json.Unmarshal(data, &update); err != nil {
		c.reply(TypeError, ErrorPayload{Code: "INVALID_MESSAGE", Message: "invalid location_update payload"})

		return
	}

	sample := entity.PositionSample{
		CollectorID: c.actor.ID,
		Coordinates: entity.Coordinates{Lat: update.Latitude, Lng: update.Longitude},
		Accuracy:    update.Accuracy,
		RecordedAt:  c.hub.now().UTC(),
	}
	if update.Timestamp != nil {
		sample.RecordedAt = update.Timestamp.UTC()
	}

	result, err := c.hub.proximity.ReportPosition(c.ctx, sample)
	if err != nil {
		var appErr domainerrors.AppError
		if errors.As(err, &appErr) && appErr.HTTPCode() < 500 {
			c.reply(TypeError, ErrorPayload{Code: appErr.ErrorCode(), Message: appErr.Message()})

			return
		}

		c.log().Error("Failed to handle location update", slog.Any("error", err))
		c.reply(TypeError, ErrorPayload{Code: domainerrors.ErrInternalError.ErrorCode(), Message: domainerrors.ErrInternalError.Message()})

		return
	}

	c.reply(TypePositionResult, result)
}

func (c *Client) reply(msgType string, data any) {
	c.hub.deliver(c, Message{Type: msgType, Timestamp: c.hub.now().UTC(), Data: data})
}
