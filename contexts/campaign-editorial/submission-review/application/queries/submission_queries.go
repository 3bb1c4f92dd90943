package queries

import (
	"context"
	"log/slog"
	"strings"

	application "reviewdesk/contexts/campaign-editorial/submission-review/application"
	"reviewdesk/contexts/campaign-editorial/submission-review/application/viewmodel"
	"reviewdesk/contexts/campaign-editorial/submission-review/domain/entities"
	domainerrors "reviewdesk/contexts/campaign-editorial/submission-review/domain/errors"
	"reviewdesk/contexts/campaign-editorial/submission-review/domain/feedback"
	"reviewdesk/contexts/campaign-editorial/submission-review/domain/policy"
	"reviewdesk/contexts/campaign-editorial/submission-review/ports"
)

type GetSubmissionViewQuery struct {
	Viewer       entities.Viewer
	SubmissionID string
	Mode         string
}

// LoadingState reports in-flight actions so controls render disabled.
type LoadingState interface {
	AnyBusy(submissionID string) bool
}

type FeedItem struct {
	Entry   entities.FeedbackEntry
	Display feedback.Display
}

// SubmissionView is everything a review screen needs for one viewer. Media
// is withheld when the viewer may not see it yet.
type SubmissionView struct {
	Submission      entities.Submission
	Campaign        entities.Campaign
	MediaKind       entities.MediaKind
	MediaHidden     bool
	Flags           viewmodel.ViewModel
	Panel           policy.ActionPanel
	AllowedActions  []policy.Action
	Feed            []FeedItem
	DefaultFeedback string
	InitialReasons  []string
}

type QueryUseCase struct {
	Cache   ports.SubmissionCache
	API     ports.ReviewAPI
	Memo    *viewmodel.Memo
	Loading LoadingState
	Logger  *slog.Logger
}

func (uc QueryUseCase) GetSubmissionView(ctx context.Context, query GetSubmissionViewQuery) (SubmissionView, error) {
	submissionID := strings.TrimSpace(query.SubmissionID)
	if submissionID == "" {
		return SubmissionView{}, domainerrors.ErrInvalidReviewInput
	}
	viewer := query.Viewer
	if viewer.Role == entities.RoleUnknown {
		return SubmissionView{}, domainerrors.ErrInvalidRole
	}
	submission, err := uc.Cache.Get(ctx, submissionID)
	if err != nil {
		return SubmissionView{}, err
	}
	campaign := uc.campaign(ctx, submission.CampaignID)

	flags := uc.flags(submission, viewer.Role)
	loading := uc.Loading != nil && uc.Loading.AnyBusy(submissionID)
	panel := policy.BuildActionPanel(policy.PanelInput{
		Viewer:       viewer,
		Status:       submission.Status,
		Mode:         policy.ParseMode(query.Mode),
		Content:      submission.Content,
		CampaignType: campaign.Type,
		AddedByAdmin: submission.Admin != nil,
		Loading:      loading,
	})

	gate := policy.ActionGate{
		Viewer:       viewer,
		Status:       submission.Status,
		Content:      submission.Content,
		CampaignType: campaign.Type,
	}

	kind := submission.Kind()
	view := SubmissionView{
		Submission:      submission,
		Campaign:        campaign,
		MediaKind:       kind,
		Flags:           flags,
		Panel:           panel,
		AllowedActions:  policy.AllowedActions(gate),
		Feed:            describe(feedback.FilterForRole(submission.Feedback, viewer.Role, submission.Status)),
		DefaultFeedback: feedback.GetDefaultFeedback(flags.IsClientFeedback, submission, kind),
		InitialReasons:  feedback.GetInitialReasons(flags.IsClientFeedback, submission),
	}
	if !flags.ClientVisible {
		view.MediaHidden = true
		view.Submission.Video = nil
		view.Submission.Photos = nil
		view.Submission.RawFootages = nil
	}
	return view, nil
}

func (uc QueryUseCase) flags(submission entities.Submission, role entities.Role) viewmodel.ViewModel {
	if uc.Memo == nil {
		return viewmodel.Derive(submission, role)
	}
	return uc.Memo.Get(submission, role)
}

// campaign hydration is optional; on failure the view falls back to a
// normal campaign.
func (uc QueryUseCase) campaign(ctx context.Context, campaignID string) entities.Campaign {
	fallback := entities.Campaign{ID: campaignID, Type: entities.CampaignTypeNormal}
	if uc.API == nil || strings.TrimSpace(campaignID) == "" {
		return fallback
	}
	campaign, err := uc.API.GetCampaign(ctx, campaignID)
	if err != nil {
		application.ResolveLogger(uc.Logger).Debug("campaign hydration skipped",
			"event", "submission_view_campaign_skipped",
			"module", "campaign-editorial/submission-review",
			"layer", "application",
			"campaign_id", campaignID,
			"error", err.Error(),
		)
		return fallback
	}
	if campaign.Type == "" {
		campaign.Type = entities.CampaignTypeNormal
	}
	return campaign
}

func describe(entries []entities.FeedbackEntry) []FeedItem {
	items := make([]FeedItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, FeedItem{Entry: entry, Display: feedback.Describe(entry)})
	}
	return items
}
