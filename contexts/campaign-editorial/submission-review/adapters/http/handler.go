package httpadapter

import (
	"context"
	"log/slog"
	"time"

	application "reviewdesk/contexts/campaign-editorial/submission-review/application"
	"reviewdesk/contexts/campaign-editorial/submission-review/application/commands"
	"reviewdesk/contexts/campaign-editorial/submission-review/application/queries"
	"reviewdesk/contexts/campaign-editorial/submission-review/application/sessions"
	"reviewdesk/contexts/campaign-editorial/submission-review/domain/entities"
	"reviewdesk/contexts/campaign-editorial/submission-review/ports"
	httptransport "reviewdesk/contexts/campaign-editorial/submission-review/transport/http"
)

// Handler adapts the review use cases to the HTTP DTOs. When Sessions is
// set, reads open a reconciliation session and mutations run under its
// local action lock.
type Handler struct {
	ReviewSubmission commands.ReviewSubmissionUseCase
	PostingLink      commands.PostingLinkUseCase
	PitchReview      commands.PitchReviewUseCase
	Queries          queries.QueryUseCase
	Sessions         *sessions.Registry
	Logger           *slog.Logger
}

func (h Handler) GetSubmissionViewHandler(
	ctx context.Context,
	viewer entities.Viewer,
	submissionID string,
	mode string,
) (httptransport.SubmissionViewResponse, error) {
	view, err := h.Queries.GetSubmissionView(ctx, queries.GetSubmissionViewQuery{
		Viewer:       viewer,
		SubmissionID: submissionID,
		Mode:         mode,
	})
	if err != nil {
		return httptransport.SubmissionViewResponse{}, err
	}

	response := mapSubmissionView(view)
	if h.Sessions == nil {
		return response, nil
	}
	session, err := h.Sessions.Open(ctx, viewer, view.Submission)
	if err != nil {
		application.ResolveLogger(h.Logger).Warn("review session unavailable",
			"event", "review_session_open_failed",
			"module", "campaign-editorial/submission-review",
			"layer", "adapter",
			"submission_id", view.Submission.ID,
			"user_id", viewer.UserID,
			"error", err.Error(),
		)
		return response, nil
	}
	response.LockState = string(session.State())
	response.Toasts = mapToasts(session.Toasts())
	return response, nil
}

func (h Handler) ReviewSubmissionHandler(
	ctx context.Context,
	viewer entities.Viewer,
	submissionID string,
	req httptransport.ReviewSubmissionRequest,
) (httptransport.ReviewSubmissionResponse, error) {
	uc := h.ReviewSubmission
	cmd := commands.ReviewSubmissionCommand{
		Viewer:       viewer,
		SubmissionID: submissionID,
		Action:       req.Action,
		Feedback:     req.Feedback,
		Reasons:      req.Reasons,
		Caption:      req.Caption,
	}
	if session := h.session(ctx, viewer, submissionID); session != nil {
		uc.Notifier = notifiers{session, uc.Notifier}
		cmd.Runner = session
	}
	result, err := uc.Submit(ctx, cmd)
	if err != nil {
		return httptransport.ReviewSubmissionResponse{}, err
	}
	return httptransport.ReviewSubmissionResponse{
		Action:   string(result.Action),
		Status:   string(result.Status),
		Feedback: result.Form.Feedback,
		Reasons:  result.Form.Reasons,
	}, nil
}

func (h Handler) UpdatePostingLinkHandler(
	ctx context.Context,
	viewer entities.Viewer,
	submissionID string,
	req httptransport.UpdatePostingLinkRequest,
) (httptransport.PostingLinkResponse, error) {
	uc := h.PostingLink
	cmd := commands.UpdatePostingLinkCommand{
		Viewer:       viewer,
		SubmissionID: submissionID,
		PostingLink:  req.PostingLink,
	}
	if session := h.session(ctx, viewer, submissionID); session != nil {
		uc.Notifier = notifiers{session, uc.Notifier}
		cmd.Runner = session
	}
	result, err := uc.Update(ctx, cmd)
	if err != nil {
		return httptransport.PostingLinkResponse{}, err
	}
	return mapPostingLinkResult(result), nil
}

func (h Handler) ReviewPostingLinkHandler(
	ctx context.Context,
	viewer entities.Viewer,
	submissionID string,
	req httptransport.ReviewPostingLinkRequest,
) (httptransport.PostingLinkResponse, error) {
	uc := h.PostingLink
	cmd := commands.ReviewPostingLinkCommand{
		Viewer:       viewer,
		SubmissionID: submissionID,
		Action:       req.Action,
		Reasons:      req.Reasons,
	}
	if session := h.session(ctx, viewer, submissionID); session != nil {
		uc.Notifier = notifiers{session, uc.Notifier}
		cmd.Runner = session
	}
	result, err := uc.Review(ctx, cmd)
	if err != nil {
		return httptransport.PostingLinkResponse{}, err
	}
	return mapPostingLinkResult(result), nil
}

func (h Handler) ReviewPitchHandler(
	ctx context.Context,
	viewer entities.Viewer,
	pitchID string,
	req httptransport.ReviewPitchRequest,
) (httptransport.ReviewPitchResponse, error) {
	result, err := h.PitchReview.Review(ctx, commands.ReviewPitchCommand{
		Viewer:  viewer,
		PitchID: pitchID,
		Action:  req.Action,
		Reason:  req.Reason,
	})
	if err != nil {
		return httptransport.ReviewPitchResponse{}, err
	}
	return httptransport.ReviewPitchResponse{
		Action:     string(result.Action),
		APIVersion: result.Version,
	}, nil
}

// CloseSessionHandler stops the viewer's reconciliation session. It reports
// false when none was open.
func (h Handler) CloseSessionHandler(viewer entities.Viewer, submissionID string) bool {
	if h.Sessions == nil {
		return false
	}
	return h.Sessions.Close(viewer.UserID, submissionID)
}

// session returns the open session, opening one on first use. Mutations
// still proceed without a session.
func (h Handler) session(ctx context.Context, viewer entities.Viewer, submissionID string) *sessions.Session {
	if h.Sessions == nil {
		return nil
	}
	if session, ok := h.Sessions.Get(viewer.UserID, submissionID); ok {
		return session
	}
	submission, err := h.Queries.Cache.Get(ctx, submissionID)
	if err != nil {
		return nil
	}
	session, err := h.Sessions.Open(ctx, viewer, submission)
	if err != nil {
		return nil
	}
	return session
}

type notifiers []ports.Notifier

func (n notifiers) Notify(level ports.ToastLevel, message string) {
	for _, notifier := range n {
		if notifier != nil {
			notifier.Notify(level, message)
		}
	}
}

func mapSubmissionView(view queries.SubmissionView) httptransport.SubmissionViewResponse {
	submission := view.Submission
	media := submission.Media(view.MediaKind)
	mediaItems := make([]httptransport.MediaItemDTO, 0, len(media))
	for _, item := range media {
		mediaItems = append(mediaItems, httptransport.MediaItemDTO{
			ID:       item.ID,
			URL:      item.URL,
			Feedback: item.Feedback,
			Status:   item.Status,
		})
	}
	feed := make([]httptransport.FeedbackDTO, 0, len(view.Feed))
	for _, item := range view.Feed {
		feed = append(feed, mapFeedItem(item))
	}
	allowed := make([]string, 0, len(view.AllowedActions))
	for _, action := range view.AllowedActions {
		allowed = append(allowed, string(action))
	}
	initialReasons := view.InitialReasons
	if initialReasons == nil {
		initialReasons = []string{}
	}

	panel := view.Panel
	return httptransport.SubmissionViewResponse{
		SubmissionID: submission.ID,
		CampaignID:   submission.CampaignID,
		CampaignType: string(view.Campaign.Type),
		Status:       string(submission.Status),
		PostingLink:  submission.Content,
		Caption:      submission.Caption,
		MediaKind:    string(view.MediaKind),
		MediaHidden:  view.MediaHidden,
		Media:        mediaItems,
		Flags: httptransport.FlagsDTO{
			PendingReview:         view.Flags.PendingReview,
			IsClientFeedback:      view.Flags.IsClientFeedback,
			ClientVisible:         view.Flags.ClientVisible,
			HasPostingLink:        view.Flags.HasPostingLink,
			HasPendingPostingLink: view.Flags.HasPendingPostingLink,
			IsApproved:            view.Flags.IsApproved,
		},
		Panel: httptransport.ActionPanelDTO{
			Area:                    string(panel.Area),
			Mode:                    string(panel.Mode),
			ShowFeedbackActions:     panel.ShowFeedbackActions,
			ShowApproveButton:       panel.ShowApproveButton,
			ApproveLabel:            panel.ApproveLabel,
			ShowRequestChangeButton: panel.ShowRequestChangeButton,
			ShowReasonsDropdown:     panel.ShowReasonsDropdown,
			ShowChangeRequestForm:   panel.ShowChangeRequestForm,
			ShowSendToCreator:       panel.ShowSendToCreator,
			Disabled:                panel.Disabled,
			AllowedActions:          allowed,
			PostingLink: httptransport.PostingLinkPanelDTO{
				Visible:          panel.PostingLink.Visible,
				TakesOver:        panel.PostingLink.TakesOver,
				Pending:          panel.PostingLink.Pending,
				CanSubmit:        panel.PostingLink.CanSubmit,
				CanApprove:       panel.PostingLink.CanApprove,
				CanRequestChange: panel.PostingLink.CanRequestChange,
				Disabled:         panel.PostingLink.Disabled,
			},
		},
		Feedback:        feed,
		DefaultFeedback: view.DefaultFeedback,
		InitialReasons:  initialReasons,
		ChangeReasons:   append([]string(nil), entities.ChangeReasons...),
		LockState:       "idle",
		Toasts:          []httptransport.ToastDTO{},
	}
}

func mapFeedItem(item queries.FeedItem) httptransport.FeedbackDTO {
	entry := item.Entry
	reasons := entry.Reasons
	if reasons == nil {
		reasons = []string{}
	}
	dto := httptransport.FeedbackDTO{
		ID:            entry.ID,
		Type:          string(entry.Type),
		Content:       entry.Content,
		Reasons:       reasons,
		SentToCreator: entry.SentToCreator,
		Label:         item.Display.Label,
		ActionLabel:   item.Display.ActionLabel,
	}
	if entry.Admin != nil {
		dto.AuthorName = entry.Admin.Name
		dto.AuthorRole = string(entry.Admin.Role)
	}
	if !entry.CreatedAt.IsZero() {
		dto.CreatedAt = entry.CreatedAt.UTC().Format(time.RFC3339)
	}
	return dto
}

func mapToasts(toasts []ports.Toast) []httptransport.ToastDTO {
	items := make([]httptransport.ToastDTO, 0, len(toasts))
	for _, toast := range toasts {
		items = append(items, httptransport.ToastDTO{Level: string(toast.Level), Message: toast.Message})
	}
	return items
}

func mapPostingLinkResult(result commands.PostingLinkResult) httptransport.PostingLinkResponse {
	return httptransport.PostingLinkResponse{
		Status:   string(result.Status),
		Platform: string(result.Reference.Platform),
		PostID:   result.Reference.PostID,
	}
}
