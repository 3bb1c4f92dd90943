// Package realtime adapts remote realtime transports to the RealtimeChannel
// port. Both adapters reference count rooms so several views can share one
// connection.
package realtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	application "reviewdesk/contexts/campaign-editorial/submission-review/application"
	"reviewdesk/internal/shared/events"

	"github.com/gorilla/websocket"
)

var ErrClosed = errors.New("realtime connection closed")

const writeWait = 10 * time.Second

// WebsocketChannel speaks the platform socket protocol: JSON frames of
// {event, room, data} in both directions.
type WebsocketChannel struct {
	ws         *websocket.Conn
	logger     *slog.Logger
	dispatcher *events.Dispatcher

	writeMu sync.Mutex
	mu      sync.Mutex
	rooms   map[string]int

	done      chan struct{}
	closeOnce sync.Once
}

// DialWebsocket connects to url and starts the read loop.
func DialWebsocket(ctx context.Context, url string, header http.Header, logger *slog.Logger) (*WebsocketChannel, error) {
	ws, _, err := websocket.DefaultDialer.DialContext(ctx, url, header)
	if err != nil {
		return nil, fmt.Errorf("dial realtime socket: %w", err)
	}
	channel := &WebsocketChannel{
		ws:         ws,
		logger:     application.ResolveLogger(logger),
		dispatcher: events.NewDispatcher(),
		rooms:      make(map[string]int),
		done:       make(chan struct{}),
	}
	go channel.readLoop()
	return channel, nil
}

func (c *WebsocketChannel) Join(_ context.Context, room string) error {
	campaignID, ok := events.CampaignIDFromRoom(room)
	if !ok {
		return fmt.Errorf("join %q: not a campaign room", room)
	}
	c.mu.Lock()
	c.rooms[room]++
	first := c.rooms[room] == 1
	c.mu.Unlock()
	if !first {
		return nil
	}
	return c.send(events.JoinCampaign, events.RoomPayload{CampaignID: campaignID})
}

func (c *WebsocketChannel) Leave(_ context.Context, room string) error {
	campaignID, ok := events.CampaignIDFromRoom(room)
	if !ok {
		return fmt.Errorf("leave %q: not a campaign room", room)
	}
	c.mu.Lock()
	if c.rooms[room] == 0 {
		c.mu.Unlock()
		return nil
	}
	c.rooms[room]--
	last := c.rooms[room] == 0
	if last {
		delete(c.rooms, room)
	}
	c.mu.Unlock()
	if !last {
		return nil
	}
	return c.send(events.LeaveCampaign, events.RoomPayload{CampaignID: campaignID})
}

func (c *WebsocketChannel) Subscribe(event string, handler func(events.Realtime)) func() {
	return c.dispatcher.Subscribe(event, handler)
}

func (c *WebsocketChannel) HandlerCount() int {
	return c.dispatcher.Count()
}

// Done is closed when the read loop ends.
func (c *WebsocketChannel) Done() <-chan struct{} {
	return c.done
}

func (c *WebsocketChannel) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.writeMu.Lock()
		_ = c.ws.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(writeWait),
		)
		c.writeMu.Unlock()
		err = c.ws.Close()
	})
	return err
}

func (c *WebsocketChannel) send(event string, payload any) error {
	select {
	case <-c.done:
		return ErrClosed
	default:
	}
	frame, err := events.New(event, "", payload)
	if err != nil {
		return err
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	if err := c.ws.WriteJSON(frame); err != nil {
		return fmt.Errorf("write %s frame: %w", event, err)
	}
	return nil
}

func (c *WebsocketChannel) readLoop() {
	defer close(c.done)
	for {
		var frame events.Realtime
		if err := c.ws.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Warn("realtime socket closed",
					"event", "realtime_socket_closed",
					"module", "campaign-editorial/submission-review",
					"layer", "adapter",
					"error", err.Error(),
				)
			}
			return
		}
		c.dispatcher.Dispatch(frame)
	}
}
