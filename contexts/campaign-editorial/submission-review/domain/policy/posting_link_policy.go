package policy

import (
	"strings"

	"reviewdesk/contexts/campaign-editorial/submission-review/domain/entities"
	domainerrors "reviewdesk/contexts/campaign-editorial/submission-review/domain/errors"
)

type PostingLinkAction string

const (
	PostingLinkApprove PostingLinkAction = "approve"
	PostingLinkReject  PostingLinkAction = "reject"
)

func ParsePostingLinkAction(raw string) (PostingLinkAction, bool) {
	switch PostingLinkAction(strings.ToLower(strings.TrimSpace(raw))) {
	case PostingLinkApprove:
		return PostingLinkApprove, true
	case PostingLinkReject:
		return PostingLinkReject, true
	default:
		return "", false
	}
}

type PostingLinkInput struct {
	Viewer       entities.Viewer
	Status       entities.SubmissionStatus
	Content      string
	CampaignType entities.CampaignType
	AddedByAdmin bool
}

type PostingLinkPanel struct {
	Visible          bool
	TakesOver        bool
	Pending          bool
	CanSubmit        bool
	CanApprove       bool
	CanRequestChange bool
	Disabled         bool
}

// BuildPostingLinkPanel is independent of the feedback panel. On normal
// campaigns a link sent before client approval suppresses FeedbackActions.
func BuildPostingLinkPanel(in PostingLinkInput) PostingLinkPanel {
	hasLink := strings.TrimSpace(in.Content) != ""
	role := in.Viewer.Role
	panel := PostingLinkPanel{
		Visible:   hasLink,
		TakesOver: SuppressesFeedbackActions(in.CampaignType, hasLink, in.Status),
		Pending:   hasLink && in.Status != entities.SubmissionStatusPosted,
		CanSubmit: CanSubmitPostingLink(role, in.Status, in.CampaignType, hasLink),
		Disabled:  in.Viewer.IsDisabled(),
	}
	if panel.Pending && role.IsAdminFamily() {
		panel.CanRequestChange = true
		panel.CanApprove = !in.AddedByAdmin || role == entities.RoleSuperadmin
	}
	return panel
}

func SuppressesFeedbackActions(campaignType entities.CampaignType, hasLink bool, status entities.SubmissionStatus) bool {
	if campaignType != entities.CampaignTypeNormal || !hasLink {
		return false
	}
	return status != entities.SubmissionStatusClientApproved && status != entities.SubmissionStatusPosted
}

// CanSubmitPostingLink allows creators and admins to add a live link once the
// content is approved, and to replace a link still awaiting approval.
func CanSubmitPostingLink(role entities.Role, status entities.SubmissionStatus, campaignType entities.CampaignType, hasLink bool) bool {
	if campaignType == entities.CampaignTypeUGC {
		return false
	}
	if !role.IsAdminFamily() && role != entities.RoleCreator {
		return false
	}
	switch status {
	case entities.SubmissionStatusClientApproved, entities.SubmissionStatusApproved:
		return true
	case entities.SubmissionStatusPosted, entities.SubmissionStatusRejected:
		return false
	default:
		return hasLink
	}
}

// AuthorizePostingLinkReview returns nil when the viewer may take the action
// on the submission's posting link.
func AuthorizePostingLinkReview(viewer entities.Viewer, submission entities.Submission, campaignType entities.CampaignType, action PostingLinkAction) error {
	if viewer.IsDisabled() {
		return domainerrors.ErrActionNotPermitted
	}
	panel := BuildPostingLinkPanel(PostingLinkInput{
		Viewer:       viewer,
		Status:       submission.Status,
		Content:      submission.Content,
		CampaignType: campaignType,
		AddedByAdmin: submission.Admin != nil,
	})
	if !panel.Pending {
		return domainerrors.ErrActionNotAvailable
	}
	switch action {
	case PostingLinkApprove:
		if panel.CanApprove {
			return nil
		}
		if viewer.Role == entities.RoleAdmin && submission.Admin != nil {
			return domainerrors.ErrSuperadminRequired
		}
		return domainerrors.ErrActionNotPermitted
	case PostingLinkReject:
		if panel.CanRequestChange {
			return nil
		}
		return domainerrors.ErrActionNotPermitted
	default:
		return domainerrors.ErrUnsupportedAction
	}
}
