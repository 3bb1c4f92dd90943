package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	application "reviewdesk/contexts/campaign-editorial/submission-review/application"
	"reviewdesk/internal/shared/events"

	"github.com/redis/go-redis/v9"
)

// RedisChannel maps campaign rooms onto redis pub/sub channels of the same
// name. Frames are the JSON encoded envelope.
type RedisChannel struct {
	client     *redis.Client
	pubsub     *redis.PubSub
	logger     *slog.Logger
	dispatcher *events.Dispatcher

	mu    sync.Mutex
	rooms map[string]int

	done chan struct{}
}

func NewRedisChannel(ctx context.Context, client *redis.Client, logger *slog.Logger) *RedisChannel {
	channel := &RedisChannel{
		client:     client,
		pubsub:     client.Subscribe(ctx),
		logger:     application.ResolveLogger(logger),
		dispatcher: events.NewDispatcher(),
		rooms:      make(map[string]int),
		done:       make(chan struct{}),
	}
	go channel.receive()
	return channel
}

func (c *RedisChannel) Join(ctx context.Context, room string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.rooms[room] == 0 {
		if err := c.pubsub.Subscribe(ctx, room); err != nil {
			return fmt.Errorf("subscribe %s: %w", room, err)
		}
	}
	c.rooms[room]++
	return nil
}

func (c *RedisChannel) Leave(ctx context.Context, room string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.rooms[room] {
	case 0:
		return nil
	case 1:
		delete(c.rooms, room)
		if err := c.pubsub.Unsubscribe(ctx, room); err != nil {
			return fmt.Errorf("unsubscribe %s: %w", room, err)
		}
	default:
		c.rooms[room]--
	}
	return nil
}

func (c *RedisChannel) Subscribe(event string, handler func(events.Realtime)) func() {
	return c.dispatcher.Subscribe(event, handler)
}

// Publish sends evt to its room. Workers use it to fan events out to every
// process watching the campaign.
func (c *RedisChannel) Publish(ctx context.Context, evt events.Realtime) error {
	raw, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	return c.client.Publish(ctx, evt.Room, raw).Err()
}

func (c *RedisChannel) Close() error {
	err := c.pubsub.Close()
	<-c.done
	return err
}

func (c *RedisChannel) receive() {
	defer close(c.done)
	for msg := range c.pubsub.Channel() {
		frame, err := decodeMessage(msg.Channel, msg.Payload)
		if err != nil {
			c.logger.Warn("realtime message dropped",
				"event", "realtime_message_dropped",
				"module", "campaign-editorial/submission-review",
				"layer", "adapter",
				"room", msg.Channel,
				"error", err.Error(),
			)
			continue
		}
		c.dispatcher.Dispatch(frame)
	}
}

func decodeMessage(channel string, payload string) (events.Realtime, error) {
	var frame events.Realtime
	if err := json.Unmarshal([]byte(payload), &frame); err != nil {
		return events.Realtime{}, fmt.Errorf("decode frame: %w", err)
	}
	if frame.Event == "" {
		return events.Realtime{}, fmt.Errorf("frame on %s has no event name", channel)
	}
	if frame.Room == "" {
		frame.Room = channel
	}
	return frame, nil
}
