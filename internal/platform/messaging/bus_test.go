package messaging

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"reviewdesk/internal/shared/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusDeliversOnlyToJoinedRooms(t *testing.T) {
	bus := NewBus(nil)
	joined := bus.Connect()
	other := bus.Connect()
	defer joined.Close()
	defer other.Close()

	room := events.CampaignRoom("campaign-1")
	require.NoError(t, joined.Join(context.Background(), room))

	var joinedHits, otherHits atomic.Int32
	joined.Subscribe(events.SubmissionUpdated, func(events.Realtime) { joinedHits.Add(1) })
	other.Subscribe(events.SubmissionUpdated, func(events.Realtime) { otherHits.Add(1) })

	evt, err := events.New(events.SubmissionUpdated, room, events.SubmissionUpdatedPayload{SubmissionID: "submission-1"})
	require.NoError(t, err)
	require.NoError(t, bus.Publish(context.Background(), evt))

	require.Eventually(t, func() bool { return joinedHits.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(0), otherHits.Load())
}

func TestConnRoomsAreReferenceCounted(t *testing.T) {
	conn := NewBus(nil).Connect()
	defer conn.Close()
	room := events.CampaignRoom("campaign-1")

	require.NoError(t, conn.Join(context.Background(), room))
	require.NoError(t, conn.Join(context.Background(), room))
	require.NoError(t, conn.Leave(context.Background(), room))
	assert.Equal(t, 1, conn.RoomCount())
	require.NoError(t, conn.Leave(context.Background(), room))
	assert.Equal(t, 0, conn.RoomCount())
}

func TestUnsubscribeRemovesHandler(t *testing.T) {
	conn := NewBus(nil).Connect()
	defer conn.Close()

	unsubscribe := conn.Subscribe(events.PostingUpdated, func(events.Realtime) {})
	assert.Equal(t, 1, conn.HandlerCount())
	unsubscribe()
	unsubscribe()
	assert.Equal(t, 0, conn.HandlerCount())
}

func TestClosedConnectionRejectsJoin(t *testing.T) {
	conn := NewBus(nil).Connect()
	conn.Close()
	require.ErrorIs(t, conn.Join(context.Background(), "campaign:1"), ErrConnectionClosed)
}
