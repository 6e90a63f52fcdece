package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"evcharge/backend/libs/metrics"
	"evcharge/backend/services/booking-service/internal/models"
)

// Topic identifies the slot grid of one station on one date.
type Topic struct {
	StationID int64
	Date      string
}

// Key returns the topic's map key.
func (t Topic) Key() string {
	return fmt.Sprintf("%d:%s", t.StationID, t.Date)
}

// Hub tracks subscriber connections by topic and fans events out to them.
type Hub struct {
	mu     sync.RWMutex
	topics map[string]map[*Connection]struct{}
	logger *zap.Logger
}

// NewHub builds subscriber hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		topics: make(map[string]map[*Connection]struct{}),
		logger: logger,
	}
}

// Add registers new connection.
func (h *Hub) Add(conn *Connection) {
	key := conn.Topic().Key()
	h.mu.Lock()
	defer h.mu.Unlock()
	subs, ok := h.topics[key]
	if !ok {
		subs = make(map[*Connection]struct{})
		h.topics[key] = subs
	}
	if _, dup := subs[conn]; !dup {
		subs[conn] = struct{}{}
		metrics.AddSlotEventSubscribers(1)
	}
}

// Remove removes connection.
func (h *Hub) Remove(conn *Connection) {
	key := conn.Topic().Key()
	h.mu.Lock()
	defer h.mu.Unlock()
	subs, ok := h.topics[key]
	if !ok {
		return
	}
	if _, ok := subs[conn]; !ok {
		return
	}
	delete(subs, conn)
	metrics.AddSlotEventSubscribers(-1)
	if len(subs) == 0 {
		delete(h.topics, key)
	}
}

// SubscriberCount returns the number of connections on a topic.
func (h *Hub) SubscriberCount(topic Topic) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic.Key()])
}

// Broadcast sends event to every subscriber of its station and date.
func (h *Hub) Broadcast(event models.SlotEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("failed to encode slot event", zap.Error(err))
		return
	}

	topic := Topic{StationID: event.StationID, Date: event.Date}
	h.mu.RLock()
	targets := make([]*Connection, 0, len(h.topics[topic.Key()]))
	for conn := range h.topics[topic.Key()] {
		targets = append(targets, conn)
	}
	h.mu.RUnlock()

	// Send may close a slow connection, which calls back into Remove.
	for _, conn := range targets {
		conn.Send(payload)
	}
}

// Publish delivers event to local subscribers. It lets the hub act as the
// publisher when no Redis is configured.
func (h *Hub) Publish(_ context.Context, event models.SlotEvent) error {
	h.Broadcast(event)
	return nil
}

// Close disconnects every subscriber.
func (h *Hub) Close() {
	h.mu.RLock()
	all := make([]*Connection, 0)
	for _, subs := range h.topics {
		for conn := range subs {
			all = append(all, conn)
		}
	}
	h.mu.RUnlock()

	for _, conn := range all {
		conn.Close()
	}
}
