package memory

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	application "reviewdesk/contexts/campaign-editorial/submission-review/application"
	"reviewdesk/contexts/campaign-editorial/submission-review/domain/entities"
	domainerrors "reviewdesk/contexts/campaign-editorial/submission-review/domain/errors"
	"reviewdesk/contexts/campaign-editorial/submission-review/ports"
	"reviewdesk/internal/shared/events"

	"github.com/google/uuid"
)

// Publisher fans realtime events out to a campaign room.
type Publisher interface {
	Publish(ctx context.Context, evt events.Realtime) error
}

// PlatformAPI is an in-process stand-in for the platform REST API. It
// applies a reduced transition table and announces every change on
// Publisher, so local runs exercise the realtime loop end to end.
type PlatformAPI struct {
	mu          sync.Mutex
	submissions map[string]entities.Submission
	campaigns   map[string]entities.Campaign
	pitches     map[string]entities.Pitch

	Publisher Publisher
	Logger    *slog.Logger
}

func NewPlatformAPI(submissions []entities.Submission, campaigns []entities.Campaign, pitches []entities.Pitch) *PlatformAPI {
	api := &PlatformAPI{
		submissions: make(map[string]entities.Submission, len(submissions)),
		campaigns:   make(map[string]entities.Campaign, len(campaigns)),
		pitches:     make(map[string]entities.Pitch, len(pitches)),
	}
	for _, item := range submissions {
		api.submissions[item.ID] = item
	}
	for _, item := range campaigns {
		api.campaigns[item.ID] = item
	}
	for _, item := range pitches {
		api.pitches[item.ID] = item
	}
	return api
}

func (a *PlatformAPI) GetSubmission(_ context.Context, submissionID string) (entities.Submission, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	item, ok := a.submissions[strings.TrimSpace(submissionID)]
	if !ok {
		return entities.Submission{}, domainerrors.ErrSubmissionNotFound
	}
	return item, nil
}

func (a *PlatformAPI) GetCampaign(_ context.Context, campaignID string) (entities.Campaign, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	item, ok := a.campaigns[strings.TrimSpace(campaignID)]
	if !ok {
		return entities.Campaign{ID: campaignID, Type: entities.CampaignTypeNormal}, nil
	}
	return item, nil
}

func (a *PlatformAPI) GetPitch(_ context.Context, pitchID string) (entities.Pitch, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	item, ok := a.pitches[strings.TrimSpace(pitchID)]
	if !ok {
		return entities.Pitch{}, domainerrors.ErrSubmissionNotFound
	}
	return item, nil
}

func (a *PlatformAPI) ApproveV4Submission(ctx context.Context, req ports.AdminReviewRequest) error {
	return a.review(ctx, req.SubmissionID, false, req.Action, req.Feedback, req.Reasons, req.Caption)
}

func (a *PlatformAPI) ClientReviewV4Submission(ctx context.Context, req ports.ClientReviewRequest) error {
	return a.review(ctx, req.SubmissionID, true, req.Action, req.Feedback, req.Reasons, "")
}

func (a *PlatformAPI) review(
	ctx context.Context,
	submissionID string,
	byClient bool,
	action string,
	feedback string,
	reasons []string,
	caption string,
) error {
	a.mu.Lock()
	item, ok := a.submissions[submissionID]
	if !ok {
		a.mu.Unlock()
		return domainerrors.ErrSubmissionNotFound
	}
	next, allowed := reviewTransition(item.Status, byClient, action)
	if !allowed {
		a.mu.Unlock()
		return domainerrors.ErrActionNotAvailable
	}
	if action != "approve" || strings.TrimSpace(feedback) != "" {
		entry := entities.FeedbackEntry{
			ID:            uuid.NewString(),
			Type:          entities.FeedbackTypeRequest,
			Content:       strings.TrimSpace(feedback),
			Reasons:       append([]string(nil), reasons...),
			SentToCreator: !byClient,
			CreatedAt:     time.Now().UTC(),
		}
		if action == "approve" {
			entry.Type = entities.FeedbackTypeApproval
		}
		if byClient {
			entry.Admin = &entities.FeedbackAuthor{Role: entities.RoleClient}
		}
		item.Feedback = append(item.Feedback, entry)
	}
	if strings.TrimSpace(caption) != "" {
		item.Caption = strings.TrimSpace(caption)
	}
	item.Status = next
	item.UpdatedAt = time.Now().UTC()
	a.submissions[submissionID] = item
	a.mu.Unlock()

	a.announce(ctx, item.CampaignID, events.SubmissionUpdated, events.SubmissionUpdatedPayload{
		SubmissionID: submissionID,
		Action:       action,
		ByClient:     byClient,
	})
	return nil
}

// reviewTransition approximates the server's submission table.
func reviewTransition(status entities.SubmissionStatus, byClient bool, action string) (entities.SubmissionStatus, bool) {
	switch {
	case byClient && status == entities.SubmissionStatusSentToClient && action == "approve":
		return entities.SubmissionStatusClientApproved, true
	case byClient && status == entities.SubmissionStatusSentToClient && action == "request_changes":
		return entities.SubmissionStatusClientFeedback, true
	case !byClient && status == entities.SubmissionStatusPendingReview && action == "approve":
		return entities.SubmissionStatusSentToClient, true
	case !byClient && status == entities.SubmissionStatusClientFeedback && action == "approve":
		return entities.SubmissionStatusSentToClient, true
	case !byClient && status == entities.SubmissionStatusClientApproved && action == "approve":
		return entities.SubmissionStatusApproved, true
	case !byClient && (status == entities.SubmissionStatusPendingReview || status == entities.SubmissionStatusClientFeedback) && action == "request_revision":
		return entities.SubmissionStatusChangesRequired, true
	default:
		return status, false
	}
}

func (a *PlatformAPI) UpdatePostingLink(ctx context.Context, req ports.PostingLinkRequest) error {
	a.mu.Lock()
	item, ok := a.submissions[req.SubmissionID]
	if !ok {
		a.mu.Unlock()
		return domainerrors.ErrSubmissionNotFound
	}
	item.Content = strings.TrimSpace(req.PostingLink)
	item.UpdatedAt = time.Now().UTC()
	a.submissions[req.SubmissionID] = item
	a.mu.Unlock()

	a.announce(ctx, item.CampaignID, events.PostingUpdated, events.PostingUpdatedPayload{
		SubmissionID: req.SubmissionID,
		PostingLink:  item.Content,
		UpdatedAt:    item.UpdatedAt,
	})
	return nil
}

func (a *PlatformAPI) ReviewPostingLink(ctx context.Context, req ports.PostingLinkReviewRequest) error {
	a.mu.Lock()
	item, ok := a.submissions[req.SubmissionID]
	if !ok {
		a.mu.Unlock()
		return domainerrors.ErrSubmissionNotFound
	}
	if !item.HasPostingLink() {
		a.mu.Unlock()
		return domainerrors.ErrActionNotAvailable
	}
	switch req.Action {
	case "approve":
		item.Status = entities.SubmissionStatusPosted
	default:
		item.Content = ""
		item.Feedback = append(item.Feedback, entities.FeedbackEntry{
			ID:            uuid.NewString(),
			Type:          entities.FeedbackTypeRequest,
			Reasons:       append([]string(nil), req.Reasons...),
			SentToCreator: true,
			CreatedAt:     time.Now().UTC(),
		})
	}
	item.UpdatedAt = time.Now().UTC()
	a.submissions[req.SubmissionID] = item
	a.mu.Unlock()

	a.announce(ctx, item.CampaignID, events.PostingUpdated, events.PostingUpdatedPayload{
		SubmissionID: req.SubmissionID,
		PostingLink:  item.Content,
		UpdatedAt:    item.UpdatedAt,
	})
	return nil
}

func (a *PlatformAPI) ReviewPitch(_ context.Context, _ string, req ports.PitchReviewRequest) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	item, ok := a.pitches[req.PitchID]
	if !ok {
		return domainerrors.ErrSubmissionNotFound
	}
	switch req.Action {
	case "approve":
		if item.Status == entities.PitchStatusSentToClient {
			item.Status = entities.PitchStatusApproved
		} else {
			item.Status = entities.PitchStatusSentToClient
		}
	case "reject":
		item.Status = entities.PitchStatusRejected
	case "maybe":
		item.Status = entities.PitchStatusMaybe
	default:
		return domainerrors.ErrUnsupportedAction
	}
	a.pitches[req.PitchID] = item
	return nil
}

// Submit replaces a submission as if a creator uploaded new content.
func (a *PlatformAPI) Submit(ctx context.Context, submission entities.Submission) {
	a.mu.Lock()
	a.submissions[submission.ID] = submission
	a.mu.Unlock()
	a.announce(ctx, submission.CampaignID, events.ContentSubmitted, events.ContentSubmittedPayload{
		SubmissionID:  submission.ID,
		HasPhotos:     len(submission.Photos) > 0,
		HasRawFootage: len(submission.RawFootages) > 0,
	})
}

func (a *PlatformAPI) announce(ctx context.Context, campaignID string, name string, payload any) {
	if a.Publisher == nil {
		return
	}
	evt, err := events.New(name, events.CampaignRoom(campaignID), payload)
	if err == nil {
		err = a.Publisher.Publish(ctx, evt)
	}
	if err != nil {
		application.ResolveLogger(a.Logger).Warn("realtime announce failed",
			"event", "platform_api_announce_failed",
			"module", "campaign-editorial/submission-review",
			"layer", "adapter",
			"campaign_id", campaignID,
			"realtime_event", name,
			"error", err.Error(),
		)
	}
}
