package messaging

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"reviewdesk/internal/shared/events"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebsocketHandlerForwardsJoinedRoomEvents(t *testing.T) {
	bus := NewBus(nil)
	server := httptest.NewServer(WebsocketHandler(bus, nil))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer ws.Close()

	join, err := events.New(events.JoinCampaign, "", events.RoomPayload{CampaignID: "campaign-1"})
	require.NoError(t, err)
	require.NoError(t, ws.WriteJSON(join))

	room := events.CampaignRoom("campaign-1")
	require.Eventually(t, func() bool { return bus.Members(room) == 1 }, time.Second, 5*time.Millisecond)

	evt, err := events.New(events.PostingUpdated, room, events.PostingUpdatedPayload{SubmissionID: "submission-1"})
	require.NoError(t, err)
	require.NoError(t, bus.Publish(context.Background(), evt))

	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	var received events.Realtime
	require.NoError(t, ws.ReadJSON(&received))
	assert.Equal(t, events.PostingUpdated, received.Event)
	assert.Equal(t, room, received.Room)

	leave, err := events.New(events.LeaveCampaign, "", events.RoomPayload{CampaignID: "campaign-1"})
	require.NoError(t, err)
	require.NoError(t, ws.WriteJSON(leave))
	require.Eventually(t, func() bool { return bus.Members(room) == 0 }, time.Second, 5*time.Millisecond)
}
