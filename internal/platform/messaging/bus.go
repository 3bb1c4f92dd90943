package messaging

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"reviewdesk/internal/shared/events"
)

var ErrConnectionClosed = errors.New("realtime connection closed")

// Bus is the in-process realtime hub. Connections join rooms and receive the
// frames published to those rooms on their own delivery goroutine.
type Bus struct {
	mu     sync.RWMutex
	conns  map[*Conn]struct{}
	logger *slog.Logger
}

func NewBus(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		conns:  make(map[*Conn]struct{}),
		logger: logger,
	}
}

// Connect opens a connection with a buffered delivery queue.
func (b *Bus) Connect() *Conn {
	conn := &Conn{
		bus:        b,
		rooms:      make(map[string]int),
		dispatcher: events.NewDispatcher(),
		queue:      make(chan events.Realtime, 128),
		done:       make(chan struct{}),
	}
	b.mu.Lock()
	b.conns[conn] = struct{}{}
	b.mu.Unlock()

	go conn.deliver()
	return conn
}

// Publish delivers evt to every connection joined to evt.Room.
func (b *Bus) Publish(ctx context.Context, evt events.Realtime) error {
	b.mu.RLock()
	targets := make([]*Conn, 0, len(b.conns))
	for conn := range b.conns {
		if conn.joined(evt.Room) {
			targets = append(targets, conn)
		}
	}
	b.mu.RUnlock()

	for _, conn := range targets {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-conn.done:
		case conn.queue <- evt:
		default:
			b.logger.Warn("dropping realtime frame for slow connection",
				"event", "realtime_publish_drop",
				"module", "internal/platform/messaging",
				"layer", "platform",
				"room", evt.Room,
				"realtime_event", evt.Event,
			)
		}
	}

	b.logger.Debug("realtime frame published",
		"event", "realtime_publish",
		"module", "internal/platform/messaging",
		"layer", "platform",
		"room", evt.Room,
		"realtime_event", evt.Event,
		"receivers", len(targets),
	)
	return nil
}

// Members counts connections joined to room.
func (b *Bus) Members(room string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	total := 0
	for conn := range b.conns {
		if conn.joined(room) {
			total++
		}
	}
	return total
}

func (b *Bus) remove(conn *Conn) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.conns, conn)
}

// Conn implements the realtime channel contract for one client.
type Conn struct {
	bus        *Bus
	mu         sync.RWMutex
	rooms      map[string]int
	dispatcher *events.Dispatcher
	queue      chan events.Realtime
	done       chan struct{}
	closeOnce  sync.Once
}

// Join is reference counted so views sharing a connection can each join and
// leave the same room.
func (c *Conn) Join(_ context.Context, room string) error {
	if c.closed() {
		return ErrConnectionClosed
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rooms[strings.TrimSpace(room)]++
	return nil
}

func (c *Conn) Leave(_ context.Context, room string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	room = strings.TrimSpace(room)
	if c.rooms[room] <= 1 {
		delete(c.rooms, room)
		return nil
	}
	c.rooms[room]--
	return nil
}

func (c *Conn) Subscribe(event string, handler func(events.Realtime)) func() {
	return c.dispatcher.Subscribe(event, handler)
}

func (c *Conn) HandlerCount() int {
	return c.dispatcher.Count()
}

func (c *Conn) RoomCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.rooms)
}

func (c *Conn) Close() {
	c.closeOnce.Do(func() {
		c.bus.remove(c)
		close(c.done)
	})
}

func (c *Conn) joined(room string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.rooms[room] > 0
}

func (c *Conn) closed() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

func (c *Conn) deliver() {
	for {
		select {
		case <-c.done:
			return
		case evt := <-c.queue:
			c.dispatcher.Dispatch(evt)
		}
	}
}
