package redisstore

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"evcharge/backend/services/booking-service/internal/models"
)

// SlotEventsChannel is the pub/sub channel shared by all API instances.
const SlotEventsChannel = "bookings:slots"

// Publisher is the subset of the go-redis client used to publish events.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// SlotEventSink receives events delivered through the channel.
type SlotEventSink interface {
	Broadcast(event models.SlotEvent)
}

// SlotEvents publishes slot events to Redis so every instance can forward them
// to its local WebSocket subscribers.
type SlotEvents struct {
	client Publisher
	logger *zap.Logger
}

// NewSlotEvents returns redis-backed slot event publisher.
func NewSlotEvents(client Publisher, logger *zap.Logger) *SlotEvents {
	return &SlotEvents{client: client, logger: logger}
}

// Publish sends event as JSON on SlotEventsChannel.
func (s *SlotEvents) Publish(ctx context.Context, event models.SlotEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return s.client.Publish(ctx, SlotEventsChannel, data).Err()
}

// Subscribe forwards events from SlotEventsChannel to sink until ctx is done.
func (s *SlotEvents) Subscribe(ctx context.Context, client *redis.Client, sink SlotEventSink) error {
	pubsub := client.Subscribe(ctx, SlotEventsChannel)
	defer pubsub.Close()

	// Wait for the subscription confirmation so failures surface to the caller.
	if _, err := pubsub.Receive(ctx); err != nil {
		return err
	}
	s.logger.Info("subscribed to slot events", zap.String("channel", SlotEventsChannel))

	s.Forward(ctx, pubsub.Channel(), sink)
	return nil
}

// Forward decodes messages and hands them to sink until ctx is done or msgs closes.
func (s *SlotEvents) Forward(ctx context.Context, msgs <-chan *redis.Message, sink SlotEventSink) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			event, err := DecodeSlotEvent(msg.Payload)
			if err != nil {
				s.logger.Warn("dropping malformed slot event", zap.String("payload", msg.Payload), zap.Error(err))
				continue
			}
			sink.Broadcast(event)
		}
	}
}

// DecodeSlotEvent parses a published slot event.
func DecodeSlotEvent(payload string) (models.SlotEvent, error) {
	var event models.SlotEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		return models.SlotEvent{}, err
	}
	return event, nil
}
