package messaging

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"reviewdesk/internal/shared/events"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebsocketHandler exposes the bus to browser clients. A client joins rooms
// with join-campaign / leave-campaign frames and receives every review event
// published to the rooms it joined.
func WebsocketHandler(bus *Bus, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warn("websocket upgrade failed",
				"event", "realtime_upgrade_failed",
				"module", "internal/platform/messaging",
				"layer", "platform",
				"error", err.Error(),
			)
			return
		}
		session := &wsSession{
			ws:     ws,
			conn:   bus.Connect(),
			logger: logger,
		}
		session.run(r.Context())
	})
}

type wsSession struct {
	ws      *websocket.Conn
	conn    *Conn
	logger  *slog.Logger
	writeMu sync.Mutex
}

func (s *wsSession) run(ctx context.Context) {
	defer s.conn.Close()
	defer s.ws.Close()

	for _, name := range events.ReviewEvents {
		s.conn.Subscribe(name, s.forward)
	}

	done := make(chan struct{})
	go s.keepAlive(done)
	defer close(done)

	s.ws.SetReadDeadline(time.Now().Add(pongWait))
	s.ws.SetPongHandler(func(string) error {
		return s.ws.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		var frame events.Realtime
		if err := s.ws.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("websocket read failed",
					"event", "realtime_read_failed",
					"module", "internal/platform/messaging",
					"layer", "platform",
					"error", err.Error(),
				)
			}
			return
		}
		s.control(ctx, frame)
	}
}

func (s *wsSession) control(ctx context.Context, frame events.Realtime) {
	var payload events.RoomPayload
	if len(frame.Data) > 0 {
		if err := json.Unmarshal(frame.Data, &payload); err != nil {
			s.logger.Warn("websocket control frame rejected",
				"event", "realtime_control_rejected",
				"module", "internal/platform/messaging",
				"layer", "platform",
				"realtime_event", frame.Event,
				"error", err.Error(),
			)
			return
		}
	}
	if payload.CampaignID == "" {
		return
	}
	room := events.CampaignRoom(payload.CampaignID)
	switch frame.Event {
	case events.JoinCampaign:
		_ = s.conn.Join(ctx, room)
	case events.LeaveCampaign:
		_ = s.conn.Leave(ctx, room)
	}
}

func (s *wsSession) forward(evt events.Realtime) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.ws.SetWriteDeadline(time.Now().Add(writeWait))
	if err := s.ws.WriteJSON(evt); err != nil {
		s.logger.Debug("websocket write failed",
			"event", "realtime_write_failed",
			"module", "internal/platform/messaging",
			"layer", "platform",
			"error", err.Error(),
		)
	}
}

func (s *wsSession) keepAlive(done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			s.writeMu.Lock()
			err := s.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
			s.writeMu.Unlock()
			if err != nil {
				return
			}
		}
	}
}
