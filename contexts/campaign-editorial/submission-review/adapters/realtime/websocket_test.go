package realtime

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"reviewdesk/internal/platform/messaging"
	"reviewdesk/internal/shared/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialBus(t *testing.T) (*messaging.Bus, *WebsocketChannel) {
	t.Helper()
	bus := messaging.NewBus(nil)
	server := httptest.NewServer(messaging.WebsocketHandler(bus, nil))
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	channel, err := DialWebsocket(context.Background(), url, nil, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = channel.Close() })
	return bus, channel
}

func TestWebsocketChannelReceivesRoomEvents(t *testing.T) {
	bus, channel := dialBus(t)
	room := events.CampaignRoom("campaign-1")

	var hits atomic.Int32
	unsubscribe := channel.Subscribe(events.SubmissionUpdated, func(evt events.Realtime) {
		if evt.Room == room {
			hits.Add(1)
		}
	})
	require.NoError(t, channel.Join(context.Background(), room))
	require.Eventually(t, func() bool { return bus.Members(room) == 1 }, time.Second, 5*time.Millisecond)

	evt, err := events.New(events.SubmissionUpdated, room, events.SubmissionUpdatedPayload{SubmissionID: "submission-1"})
	require.NoError(t, err)
	require.NoError(t, bus.Publish(context.Background(), evt))
	require.Eventually(t, func() bool { return hits.Load() == 1 }, 2*time.Second, 5*time.Millisecond)

	unsubscribe()
	assert.Equal(t, 0, channel.HandlerCount())
}

func TestWebsocketChannelSharesRoomAcrossJoins(t *testing.T) {
	bus, channel := dialBus(t)
	room := events.CampaignRoom("campaign-1")

	require.NoError(t, channel.Join(context.Background(), room))
	require.NoError(t, channel.Join(context.Background(), room))
	require.Eventually(t, func() bool { return bus.Members(room) == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, channel.Leave(context.Background(), room))
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 1, bus.Members(room))

	require.NoError(t, channel.Leave(context.Background(), room))
	require.Eventually(t, func() bool { return bus.Members(room) == 0 }, time.Second, 5*time.Millisecond)
}

func TestWebsocketChannelRejectsForeignRooms(t *testing.T) {
	_, channel := dialBus(t)
	require.Error(t, channel.Join(context.Background(), "lobby"))
}

func TestDecodeMessageFillsRoomFromChannel(t *testing.T) {
	frame, err := decodeMessage("campaign:campaign-1", `{"event":"v4:posting:updated","data":{"submissionId":"submission-1"}}`)
	require.NoError(t, err)
	assert.Equal(t, events.PostingUpdated, frame.Event)
	assert.Equal(t, "campaign:campaign-1", frame.Room)

	_, err = decodeMessage("campaign:campaign-1", `{"data":{}}`)
	require.Error(t, err)
	_, err = decodeMessage("campaign:campaign-1", `not json`)
	require.Error(t, err)
}
