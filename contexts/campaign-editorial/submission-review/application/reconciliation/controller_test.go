package reconciliation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"reviewdesk/contexts/campaign-editorial/submission-review/adapters/memory"
	"reviewdesk/contexts/campaign-editorial/submission-review/domain/entities"
	"reviewdesk/contexts/campaign-editorial/submission-review/ports"
	"reviewdesk/internal/shared/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncChannel delivers published frames on the caller's goroutine.
type syncChannel struct {
	mu         sync.Mutex
	rooms      map[string]int
	dispatcher *events.Dispatcher
}

func newSyncChannel() *syncChannel {
	return &syncChannel{rooms: make(map[string]int), dispatcher: events.NewDispatcher()}
}

func (c *syncChannel) Join(_ context.Context, room string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rooms[room]++
	return nil
}

func (c *syncChannel) Leave(_ context.Context, room string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rooms[room]--
	if c.rooms[room] <= 0 {
		delete(c.rooms, room)
	}
	return nil
}

func (c *syncChannel) Subscribe(event string, handler func(events.Realtime)) func() {
	return c.dispatcher.Subscribe(event, handler)
}

func (c *syncChannel) joined(room string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rooms[room] > 0
}

func (c *syncChannel) emit(t *testing.T, name string, payload any) {
	t.Helper()
	evt, err := events.New(name, events.CampaignRoom("campaign-1"), payload)
	require.NoError(t, err)
	c.dispatcher.Dispatch(evt)
}

type fixture struct {
	channel    *syncChannel
	store      *memory.Store
	notifier   *memory.Notifier
	scheduler  *memory.ManualScheduler
	controller *Controller
}

func newFixture(t *testing.T, viewer entities.Viewer) *fixture {
	t.Helper()
	f := &fixture{
		channel:   newSyncChannel(),
		store:     memory.NewStore([]entities.Submission{{ID: "submission-1", CampaignID: "campaign-1", Status: entities.SubmissionStatusPendingReview}}, nil),
		notifier:  &memory.Notifier{},
		scheduler: memory.NewManualScheduler(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)),
	}
	f.controller = New(Dependencies{
		Channel:   f.channel,
		Cache:     f.store,
		Notifier:  f.notifier,
		Scheduler: f.scheduler,
	}, Config{
		SubmissionID: "submission-1",
		CampaignID:   "campaign-1",
		Viewer:       viewer,
	})
	require.NoError(t, f.controller.Start(context.Background()))
	t.Cleanup(func() { _ = f.controller.Stop(context.Background()) })
	return f
}

func adminViewer() entities.Viewer {
	return entities.Viewer{UserID: "admin-1", Role: entities.RoleAdmin}
}

func updatedBy(userID string) events.SubmissionUpdatedPayload {
	return events.SubmissionUpdatedPayload{SubmissionID: "submission-1", UserID: userID, Action: "approve"}
}

func TestStartJoinsRoomAndSubscribesReviewEvents(t *testing.T) {
	f := newFixture(t, adminViewer())

	assert.True(t, f.channel.joined("campaign:campaign-1"))
	assert.Equal(t, len(events.ReviewEvents), f.channel.dispatcher.Count())
	assert.Equal(t, StateIdle, f.controller.State())
}

func TestStartWithoutChannelFails(t *testing.T) {
	controller := New(Dependencies{}, Config{SubmissionID: "submission-1", CampaignID: "campaign-1"})
	require.Error(t, controller.Start(context.Background()))
}

func TestIncomingEventRefreshesAfterDelayAndToasts(t *testing.T) {
	f := newFixture(t, adminViewer())

	f.channel.emit(t, events.SubmissionUpdated, updatedBy("admin-2"))
	assert.Equal(t, 0, f.store.Revalidations("submission-1"), "refresh must not run synchronously")

	f.scheduler.Advance(99 * time.Millisecond)
	assert.Equal(t, 0, f.store.Revalidations("submission-1"))

	f.scheduler.Advance(time.Millisecond)
	assert.Equal(t, 1, f.store.Revalidations("submission-1"))
	toasts := f.notifier.Toasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, ports.ToastInfo, toasts[0].Level)
	assert.Equal(t, "Submission updated by another admin", toasts[0].Message)
}

func TestBurstOfEventsCoalescesIntoOneRefresh(t *testing.T) {
	f := newFixture(t, adminViewer())

	f.channel.emit(t, events.SubmissionUpdated, updatedBy("admin-2"))
	f.channel.emit(t, events.PostingUpdated, events.PostingUpdatedPayload{SubmissionID: "submission-1"})
	f.channel.emit(t, events.ContentProcessed, events.ContentProcessedPayload{SubmissionID: "submission-1"})
	f.scheduler.Advance(time.Second)

	assert.Equal(t, 1, f.store.Revalidations("submission-1"))
	require.Len(t, f.notifier.Toasts(), 1)
	assert.Equal(t, "Content processing complete", f.notifier.Toasts()[0].Message)
}

func TestOwnEventsAreIgnoredWhileIdle(t *testing.T) {
	f := newFixture(t, adminViewer())

	f.channel.emit(t, events.SubmissionUpdated, updatedBy("admin-1"))
	f.scheduler.Advance(time.Second)

	assert.Equal(t, 0, f.store.Revalidations("submission-1"))
	assert.Empty(t, f.notifier.Toasts())
}

func TestEventsForOtherSubmissionsAreIgnored(t *testing.T) {
	f := newFixture(t, adminViewer())

	f.channel.emit(t, events.SubmissionUpdated, events.SubmissionUpdatedPayload{SubmissionID: "submission-2", UserID: "admin-2"})
	f.scheduler.Advance(time.Second)

	assert.Equal(t, 0, f.store.Revalidations("submission-1"))
	assert.Empty(t, f.notifier.Toasts())
}

func TestLocalActionLocksAndForcesOneRefresh(t *testing.T) {
	f := newFixture(t, adminViewer())

	err := f.controller.RunLocalAction(context.Background(), func(context.Context) error {
		assert.Equal(t, StatePending, f.controller.State())
		f.channel.emit(t, events.SubmissionUpdated, updatedBy("admin-2"))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, StateSettling, f.controller.State())

	// Echo of our own change from another source while settling.
	f.channel.emit(t, events.SubmissionUpdated, updatedBy("admin-2"))

	f.scheduler.Advance(199 * time.Millisecond)
	assert.Equal(t, 0, f.store.Revalidations("submission-1"))

	f.scheduler.Advance(time.Millisecond)
	assert.Equal(t, 1, f.store.Revalidations("submission-1"))
	assert.Equal(t, StateSettling, f.controller.State())

	f.channel.emit(t, events.ContentSubmitted, events.ContentSubmittedPayload{SubmissionID: "submission-1"})

	f.scheduler.Advance(300 * time.Millisecond)
	assert.Equal(t, StateIdle, f.controller.State())

	f.scheduler.Advance(time.Second)
	assert.Equal(t, 1, f.store.Revalidations("submission-1"))
	assert.Empty(t, f.notifier.Toasts())
}

func TestFailedLocalActionSkipsForcedRefresh(t *testing.T) {
	f := newFixture(t, adminViewer())

	err := f.controller.RunLocalAction(context.Background(), func(context.Context) error {
		return errors.New("boom")
	})
	require.Error(t, err)
	assert.Equal(t, StateSettling, f.controller.State())

	f.scheduler.Advance(500 * time.Millisecond)
	assert.Equal(t, 0, f.store.Revalidations("submission-1"))
	assert.Equal(t, StateIdle, f.controller.State())
}

func TestScheduledRefreshDroppedWhenLocalActionStarts(t *testing.T) {
	f := newFixture(t, adminViewer())

	f.channel.emit(t, events.SubmissionUpdated, updatedBy("admin-2"))
	f.scheduler.Advance(50 * time.Millisecond)

	require.NoError(t, f.controller.RunLocalAction(context.Background(), func(context.Context) error {
		f.scheduler.Advance(60 * time.Millisecond)
		return nil
	}))
	assert.Equal(t, 0, f.store.Revalidations("submission-1"))
	assert.Empty(t, f.notifier.Toasts())

	f.scheduler.Advance(time.Second)
	assert.Equal(t, 1, f.store.Revalidations("submission-1"))
	assert.Equal(t, StateIdle, f.controller.State())
}

func TestOverlappingLocalActionsHoldLockUntilLastCompletes(t *testing.T) {
	f := newFixture(t, adminViewer())

	require.NoError(t, f.controller.RunLocalAction(context.Background(), func(ctx context.Context) error {
		return f.controller.RunLocalAction(ctx, func(context.Context) error {
			return nil
		})
	}))
	assert.Equal(t, StateSettling, f.controller.State())

	f.scheduler.Advance(time.Second)
	assert.Equal(t, 1, f.store.Revalidations("submission-1"))
	assert.Equal(t, StateIdle, f.controller.State())
}

func TestStopRemovesEveryHandlerAndLeavesRoom(t *testing.T) {
	f := newFixture(t, adminViewer())

	f.channel.emit(t, events.SubmissionUpdated, updatedBy("admin-2"))
	require.NoError(t, f.controller.Stop(context.Background()))

	assert.Equal(t, 0, f.channel.dispatcher.Count())
	assert.False(t, f.channel.joined("campaign:campaign-1"))
	assert.Equal(t, 0, f.scheduler.Pending())

	f.scheduler.Advance(time.Second)
	assert.Equal(t, 0, f.store.Revalidations("submission-1"))
}

func TestStopWhileLocalActionRunsLeavesNoTimers(t *testing.T) {
	f := newFixture(t, adminViewer())

	require.NoError(t, f.controller.RunLocalAction(context.Background(), func(context.Context) error {
		return f.controller.Stop(context.Background())
	}))
	assert.Equal(t, StateIdle, f.controller.State())
	assert.Equal(t, 0, f.scheduler.Pending())

	f.scheduler.Advance(time.Second)
	assert.Equal(t, 0, f.store.Revalidations("submission-1"))
}

func TestRebindWhileLocalActionRunsStartsIdle(t *testing.T) {
	f := newFixture(t, adminViewer())
	f.store.Put(entities.Submission{ID: "submission-2", CampaignID: "campaign-2"})

	require.NoError(t, f.controller.RunLocalAction(context.Background(), func(ctx context.Context) error {
		return f.controller.Rebind(ctx, "submission-2", "campaign-2")
	}))
	assert.Equal(t, StateIdle, f.controller.State())
	assert.Equal(t, 0, f.scheduler.Pending())

	f.scheduler.Advance(time.Second)
	assert.Equal(t, 0, f.store.Revalidations("submission-1"))
	assert.Equal(t, 0, f.store.Revalidations("submission-2"))
}

func TestLocalActionOnStoppedControllerDoesNotLock(t *testing.T) {
	f := newFixture(t, adminViewer())
	require.NoError(t, f.controller.Stop(context.Background()))

	ran := false
	require.NoError(t, f.controller.RunLocalAction(context.Background(), func(context.Context) error {
		ran = true
		return nil
	}))
	assert.True(t, ran)
	assert.Equal(t, StateIdle, f.controller.State())
	assert.Equal(t, 0, f.scheduler.Pending())
}

func TestRepeatedStartStopDoesNotLeakHandlers(t *testing.T) {
	f := newFixture(t, adminViewer())

	for i := 0; i < 5; i++ {
		require.NoError(t, f.controller.Stop(context.Background()))
		require.NoError(t, f.controller.Start(context.Background()))
	}
	assert.Equal(t, len(events.ReviewEvents), f.channel.dispatcher.Count())
}

func TestRebindFollowsNewSubmission(t *testing.T) {
	f := newFixture(t, adminViewer())
	f.store.Put(entities.Submission{ID: "submission-2", CampaignID: "campaign-2"})

	require.NoError(t, f.controller.Rebind(context.Background(), "submission-2", "campaign-2"))
	assert.Equal(t, "submission-2", f.controller.SubmissionID())
	assert.False(t, f.channel.joined("campaign:campaign-1"))
	assert.True(t, f.channel.joined("campaign:campaign-2"))
	assert.Equal(t, len(events.ReviewEvents), f.channel.dispatcher.Count())

	f.channel.emit(t, events.SubmissionUpdated, updatedBy("admin-2"))
	f.channel.emit(t, events.SubmissionUpdated, events.SubmissionUpdatedPayload{SubmissionID: "submission-2", UserID: "admin-2"})
	f.scheduler.Advance(time.Second)
	assert.Equal(t, 0, f.store.Revalidations("submission-1"))
	assert.Equal(t, 1, f.store.Revalidations("submission-2"))
}

func TestRoleSpecificToasts(t *testing.T) {
	client := newFixture(t, entities.Viewer{UserID: "client-1", Role: entities.RoleClient})
	client.channel.emit(t, events.ContentSubmitted, events.ContentSubmittedPayload{SubmissionID: "submission-1", HasPhotos: true})
	client.scheduler.Advance(time.Second)
	require.Len(t, client.notifier.Toasts(), 1)
	assert.Equal(t, "Submission has been updated", client.notifier.Toasts()[0].Message)

	admin := newFixture(t, adminViewer())
	admin.channel.emit(t, events.SubmissionUpdated, events.SubmissionUpdatedPayload{SubmissionID: "submission-1", UserID: "client-1", Action: "approve", ByClient: true})
	admin.scheduler.Advance(time.Second)
	require.Len(t, admin.notifier.Toasts(), 1)
	assert.Equal(t, ports.ToastSuccess, admin.notifier.Toasts()[0].Level)
	assert.Equal(t, "Client approved the submission", admin.notifier.Toasts()[0].Message)
}

type failingCache struct {
	ports.SubmissionCache
}

func (failingCache) Revalidate(context.Context, string) error {
	return errors.New("upstream unavailable")
}

func TestFailedRefreshDoesNotToast(t *testing.T) {
	channel := newSyncChannel()
	notifier := &memory.Notifier{}
	scheduler := memory.NewManualScheduler(time.Now())
	controller := New(Dependencies{
		Channel:   channel,
		Cache:     failingCache{},
		Notifier:  notifier,
		Scheduler: scheduler,
	}, Config{SubmissionID: "submission-1", CampaignID: "campaign-1", Viewer: adminViewer()})
	require.NoError(t, controller.Start(context.Background()))
	defer controller.Stop(context.Background())

	channel.emit(t, events.SubmissionUpdated, updatedBy("admin-2"))
	scheduler.Advance(time.Second)
	assert.Empty(t, notifier.Toasts())
}
