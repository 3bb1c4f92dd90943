package memory

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"reviewdesk/contexts/campaign-editorial/submission-review/domain/entities"
	domainerrors "reviewdesk/contexts/campaign-editorial/submission-review/domain/errors"
	"reviewdesk/contexts/campaign-editorial/submission-review/ports"
	"reviewdesk/internal/shared/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Realtime
}

func (p *recordingPublisher) Publish(_ context.Context, evt events.Realtime) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return nil
}

func newPlatformFixture() (*PlatformAPI, *recordingPublisher) {
	api := NewPlatformAPI(
		[]entities.Submission{{ID: "sub-1", CampaignID: "camp-1", Status: entities.SubmissionStatusPendingReview}},
		[]entities.Campaign{{ID: "camp-1", Type: entities.CampaignTypeUGC}},
		[]entities.Pitch{{ID: "pitch-1", CampaignID: "camp-1", Status: entities.PitchStatusPendingReview}},
	)
	publisher := &recordingPublisher{}
	api.Publisher = publisher
	return api, publisher
}

func TestPlatformAPIReviewWalksTheTable(t *testing.T) {
	ctx := context.Background()
	api, publisher := newPlatformFixture()

	require.NoError(t, api.ApproveV4Submission(ctx, ports.AdminReviewRequest{SubmissionID: "sub-1", Action: "approve"}))
	require.NoError(t, api.ClientReviewV4Submission(ctx, ports.ClientReviewRequest{
		SubmissionID: "sub-1",
		Action:       "request_changes",
		Reasons:      []string{"Poor Lighting"},
	}))

	item, err := api.GetSubmission(ctx, "sub-1")
	require.NoError(t, err)
	assert.Equal(t, entities.SubmissionStatusClientFeedback, item.Status)
	require.Len(t, item.Feedback, 1)
	assert.Equal(t, entities.RoleClient, item.Feedback[0].AuthorRole())
	assert.False(t, item.Feedback[0].SentToCreator)

	require.Len(t, publisher.events, 2)
	assert.Equal(t, events.SubmissionUpdated, publisher.events[1].Event)
	assert.Equal(t, "campaign:camp-1", publisher.events[1].Room)
	var payload events.SubmissionUpdatedPayload
	require.NoError(t, json.Unmarshal(publisher.events[1].Data, &payload))
	assert.True(t, payload.ByClient)
	assert.Equal(t, "sub-1", payload.SubmissionID)
}

func TestPlatformAPIRefusesUnknownTransition(t *testing.T) {
	api, publisher := newPlatformFixture()

	err := api.ClientReviewV4Submission(context.Background(), ports.ClientReviewRequest{SubmissionID: "sub-1", Action: "approve"})

	assert.ErrorIs(t, err, domainerrors.ErrActionNotAvailable)
	assert.Empty(t, publisher.events)
}

func TestPlatformAPIPostingLinkLifecycle(t *testing.T) {
	ctx := context.Background()
	api, publisher := newPlatformFixture()

	err := api.ReviewPostingLink(ctx, ports.PostingLinkReviewRequest{SubmissionID: "sub-1", Action: "approve"})
	assert.ErrorIs(t, err, domainerrors.ErrActionNotAvailable)

	require.NoError(t, api.UpdatePostingLink(ctx, ports.PostingLinkRequest{SubmissionID: "sub-1", PostingLink: "https://x.com/a/status/1"}))
	require.NoError(t, api.ReviewPostingLink(ctx, ports.PostingLinkReviewRequest{SubmissionID: "sub-1", Action: "approve"}))

	item, err := api.GetSubmission(ctx, "sub-1")
	require.NoError(t, err)
	assert.Equal(t, entities.SubmissionStatusPosted, item.Status)
	require.Len(t, publisher.events, 2)
	assert.Equal(t, events.PostingUpdated, publisher.events[0].Event)
}

func TestPlatformAPIPitchAndCampaignFallback(t *testing.T) {
	ctx := context.Background()
	api, _ := newPlatformFixture()

	require.NoError(t, api.ReviewPitch(ctx, "v2", ports.PitchReviewRequest{PitchID: "pitch-1", Action: "approve"}))
	pitch, err := api.GetPitch(ctx, "pitch-1")
	require.NoError(t, err)
	assert.Equal(t, entities.PitchStatusSentToClient, pitch.Status)

	campaign, err := api.GetCampaign(ctx, "missing")
	require.NoError(t, err)
	assert.Equal(t, entities.CampaignTypeNormal, campaign.Type)
}

func TestManualSchedulerFiresInDeadlineOrder(t *testing.T) {
	scheduler := NewManualScheduler(time.Unix(0, 0))
	var fired []string
	scheduler.AfterFunc(200*time.Millisecond, func() { fired = append(fired, "late") })
	scheduler.AfterFunc(100*time.Millisecond, func() { fired = append(fired, "early") })
	stopped := scheduler.AfterFunc(150*time.Millisecond, func() { fired = append(fired, "stopped") })

	assert.True(t, stopped.Stop())
	assert.False(t, stopped.Stop())
	scheduler.Advance(150 * time.Millisecond)
	assert.Equal(t, []string{"early"}, fired)
	assert.Equal(t, 1, scheduler.Pending())

	scheduler.Advance(time.Second)
	assert.Equal(t, []string{"early", "late"}, fired)
	assert.Equal(t, time.Unix(0, 0).Add(1150*time.Millisecond), scheduler.Now())
}
