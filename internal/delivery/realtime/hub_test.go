package realtime

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"numatu/internal/domain/entity"
	"numatu/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(hub *Hub, role entity.Role) *Client {
	client := &Client{
		actor: entity.Actor{ID: uuid.New(), Role: role},
		hub:   hub,
		ctx:   context.Background(),
		send:  make(chan []byte, hub.sendBuffer),
	}
	hub.Register(client)

	return client
}

func drain(t *testing.T, client *Client) []Message {
	t.Helper()

	var out []Message
	for {
		select {
		case data, ok := <-client.send:
			if !ok {
				return out
			}
			var msg struct {
				Type string          `json:"type"`
				Data json.RawMessage `json:"data"`
			}
			require.NoError(t, json.Unmarshal(data, &msg))
			out = append(out, Message{Type: msg.Type, Data: msg.Data})
		default:
			return out
		}
	}
}

func decodeChange(t *testing.T, msg Message) CollectionChange {
	t.Helper()

	var change CollectionChange
	require.NoError(t, json.Unmarshal(msg.Data.(json.RawMessage), &change))

	return change
}

func TestHub_RoutesToParticipants(t *testing.T) {
	hub := newHub(nil, 8, nil)
	generator := newTestClient(hub, entity.RoleAdvertiser)
	collector := newTestClient(hub, entity.RoleCollector)
	bystander := newTestClient(hub, entity.RoleCollector)
	stranger := newTestClient(hub, entity.RoleAdvertiser)

	collectorID := collector.actor.ID
	now := time.Now().UTC()
	event := &service.ChangeEvent{
		Collection: &entity.Collection{
			ID:               uuid.New(),
			GeneratorID:      generator.actor.ID,
			CollectorID:      &collectorID,
			Status:           entity.StatusEnRoute,
			ConfirmationCode: "123456",
			RequestedAt:      now,
			Version:          3,
		},
		PreviousStatus: entity.StatusAccepted,
		Version:        3,
	}

	hub.HandleChange(context.Background(), event)

	genMsgs := drain(t, generator)
	require.Len(t, genMsgs, 1)
	assert.Equal(t, TypeCollectionChanged, genMsgs[0].Type)
	genChange := decodeChange(t, genMsgs[0])
	assert.Empty(t, genChange.Collection.ConfirmationCode, "generator must not see the code before completion")
	assert.False(t, genChange.MarketChanged)

	colMsgs := drain(t, collector)
	require.Len(t, colMsgs, 1)
	assert.Equal(t, "123456", decodeChange(t, colMsgs[0]).Collection.ConfirmationCode)

	assert.Empty(t, drain(t, bystander), "market did not change")
	assert.Empty(t, drain(t, stranger))
}

func TestHub_MarketChangeReachesAllCollectors(t *testing.T) {
	hub := newHub(nil, 8, nil)
	generator := newTestClient(hub, entity.RoleAdvertiser)
	previous := newTestClient(hub, entity.RoleCollector)
	other := newTestClient(hub, entity.RoleCollector)
	stranger := newTestClient(hub, entity.RoleAdvertiser)

	previousID := previous.actor.ID
	event := &service.ChangeEvent{
		Collection: &entity.Collection{
			ID:          uuid.New(),
			GeneratorID: generator.actor.ID,
			Status:      entity.StatusAnnounced,
			Version:     4,
		},
		Abandoned:           true,
		PreviousStatus:      entity.StatusEnRoute,
		PreviousCollectorID: &previousID,
		Version:             4,
	}

	hub.HandleChange(context.Background(), event)

	assert.Len(t, drain(t, generator), 1)
	prevMsgs := drain(t, previous)
	require.Len(t, prevMsgs, 1, "previous collector is told once even though it is also a collector")
	change := decodeChange(t, prevMsgs[0])
	assert.True(t, change.Abandoned)
	assert.True(t, change.MarketChanged)
	assert.Len(t, drain(t, other), 1)
	assert.Empty(t, drain(t, stranger))
}

func TestHub_FullBufferDropsClient(t *testing.T) {
	hub := newHub(nil, 1, nil)
	generator := newTestClient(hub, entity.RoleAdvertiser)
	require.Equal(t, 1, hub.ClientCount())

	for v := int64(1); v <= 2; v++ {
		hub.HandleChange(context.Background(), &service.ChangeEvent{
			Collection: &entity.Collection{ID: uuid.New(), GeneratorID: generator.actor.ID, Status: entity.StatusCancelled},
			Version:    v,
		})
	}

	assert.Equal(t, 0, hub.ClientCount())
	msgs := drain(t, generator)
	assert.Len(t, msgs, 1)
	_, open := <-generator.send
	assert.False(t, open, "send queue is closed after the drop")
}

func TestHub_MultipleConnectionsPerUser(t *testing.T) {
	hub := newHub(nil, 4, nil)
	first := newTestClient(hub, entity.RoleAdvertiser)
	second := &Client{actor: first.actor, hub: hub, ctx: context.Background(), send: make(chan []byte, 4)}
	hub.Register(second)
	require.Equal(t, 2, hub.ClientCount())

	hub.HandleChange(context.Background(), &service.ChangeEvent{
		Collection: &entity.Collection{ID: uuid.New(), GeneratorID: first.actor.ID, Status: entity.StatusCancelled},
		Version:    2,
	})
	assert.Len(t, drain(t, first), 1)
	assert.Len(t, drain(t, second), 1)

	hub.Unregister(first)
	hub.Unregister(first)
	assert.Equal(t, 1, hub.ClientCount())

	hub.CloseAll()
	assert.Equal(t, 0, hub.ClientCount())
	_, open := <-second.send
	assert.False(t, open)
}
