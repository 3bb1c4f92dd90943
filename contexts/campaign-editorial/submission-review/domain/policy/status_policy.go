// Package policy holds the pure rules deciding what a viewer may see and do
// with a submission or pitch. Every view derives its controls from here.
package policy

import (
	"strings"

	"reviewdesk/contexts/campaign-editorial/submission-review/domain/entities"
	domainerrors "reviewdesk/contexts/campaign-editorial/submission-review/domain/errors"
)

type Action string

const (
	ActionApprove         Action = "approve"
	ActionRequestRevision Action = "request_revision"
	ActionRequestChanges  Action = "request_changes"
	ActionSendToCreator   Action = "send_to_creator"
)

func ParseAction(raw string) (Action, bool) {
	switch Action(strings.ToLower(strings.TrimSpace(raw))) {
	case ActionApprove:
		return ActionApprove, true
	case ActionRequestRevision:
		return ActionRequestRevision, true
	case ActionRequestChanges:
		return ActionRequestChanges, true
	case ActionSendToCreator:
		return ActionSendToCreator, true
	default:
		return "", false
	}
}

// IsChangeRequest covers every action that sends the creator back to work.
func (a Action) IsChangeRequest() bool {
	return a == ActionRequestRevision || a == ActionRequestChanges || a == ActionSendToCreator
}

type Mode string

const (
	ModeApprove             Mode = "approve"
	ModeRequestRevision     Mode = "request_revision"
	ModeRequestChanges      Mode = "request_changes"
	ModeAdminClientFeedback Mode = "admin_client_feedback"
)

func ParseMode(raw string) Mode {
	switch Mode(strings.ToLower(strings.TrimSpace(raw))) {
	case ModeRequestRevision:
		return ModeRequestRevision
	case ModeRequestChanges:
		return ModeRequestChanges
	case ModeAdminClientFeedback:
		return ModeAdminClientFeedback
	default:
		return ModeApprove
	}
}

func (m Mode) formOpen() bool {
	return m == ModeRequestRevision || m == ModeRequestChanges
}

// Area is the single control group rendered in the action area.
type Area string

const (
	AreaNone              Area = "none"
	AreaApprove           Area = "approve"
	AreaChangeRequestForm Area = "change_request_form"
	AreaSendToCreator     Area = "send_to_creator"
	AreaPostingLink       Area = "posting_link"
)

const (
	LabelSendToClient = "Send to Client"
	LabelApprove      = "Approve"
)

// ClientVisible reports whether the submission media may be shown. Clients
// never see creator content before an admin has forwarded it.
func ClientVisible(role entities.Role, status entities.SubmissionStatus) bool {
	if role != entities.RoleClient {
		return true
	}
	switch status {
	case entities.SubmissionStatusSentToClient,
		entities.SubmissionStatusClientApproved,
		entities.SubmissionStatusApproved,
		entities.SubmissionStatusPosted:
		return true
	default:
		return false
	}
}

// ShowFeedbackActions encodes the admin-first, client-second review ping-pong.
func ShowFeedbackActions(role entities.Role, status entities.SubmissionStatus) bool {
	if role == entities.RoleClient {
		return status == entities.SubmissionStatusSentToClient
	}
	return status == entities.SubmissionStatusPendingReview || status == entities.SubmissionStatusClientFeedback
}

// ResolveMode forces admins into the relay mode while the client's feedback
// is waiting, and maps the change-request mode onto the caller's vocabulary.
func ResolveMode(role entities.Role, status entities.SubmissionStatus, requested Mode) Mode {
	if role.IsAdminFamily() && status == entities.SubmissionStatusClientFeedback {
		return ModeAdminClientFeedback
	}
	if requested == ModeAdminClientFeedback {
		return ModeApprove
	}
	if requested.formOpen() {
		if role == entities.RoleClient {
			return ModeRequestChanges
		}
		return ModeRequestRevision
	}
	return ModeApprove
}

type PanelInput struct {
	Viewer       entities.Viewer
	Status       entities.SubmissionStatus
	Mode         Mode
	Content      string
	CampaignType entities.CampaignType
	AddedByAdmin bool
	Loading      bool
}

type ActionPanel struct {
	Area                    Area
	Mode                    Mode
	ClientVisible           bool
	ShowFeedbackActions     bool
	ShowApproveButton       bool
	ApproveLabel            string
	ShowRequestChangeButton bool
	ShowReasonsDropdown     bool
	ShowChangeRequestForm   bool
	ShowSendToCreator       bool
	Disabled                bool
	PostingLink             PostingLinkPanel
}

func BuildActionPanel(in PanelInput) ActionPanel {
	role := in.Viewer.Role
	mode := ResolveMode(role, in.Status, in.Mode)
	panel := ActionPanel{
		Area:          AreaNone,
		Mode:          mode,
		ClientVisible: ClientVisible(role, in.Status),
		ApproveLabel:  ApproveLabel(role),
		Disabled:      in.Viewer.IsDisabled() || in.Loading,
		PostingLink: BuildPostingLinkPanel(PostingLinkInput{
			Viewer:       in.Viewer,
			Status:       in.Status,
			Content:      in.Content,
			CampaignType: in.CampaignType,
			AddedByAdmin: in.AddedByAdmin,
		}),
	}
	if panel.PostingLink.TakesOver {
		panel.Area = AreaPostingLink
		return panel
	}
	if !canReview(role) || !ShowFeedbackActions(role, in.Status) {
		return panel
	}
	panel.ShowFeedbackActions = true
	panel.ShowReasonsDropdown = mode.formOpen()

	switch {
	case mode == ModeAdminClientFeedback:
		panel.Area = AreaSendToCreator
		panel.ShowSendToCreator = true
	case mode.formOpen():
		panel.Area = AreaChangeRequestForm
		panel.ShowChangeRequestForm = true
	default:
		notClientFeedback := in.Status != entities.SubmissionStatusClientFeedback
		panel.ShowApproveButton = notClientFeedback
		panel.ShowRequestChangeButton = panel.ClientVisible && notClientFeedback
		if panel.ShowApproveButton || panel.ShowRequestChangeButton {
			panel.Area = AreaApprove
		}
	}
	return panel
}

// ApproveLabel differs by role; both labels hit the same approve action.
func ApproveLabel(role entities.Role) string {
	if role == entities.RoleClient {
		return LabelApprove
	}
	return LabelSendToClient
}

// ActionGate is what the submit gate needs to agree with BuildActionPanel.
type ActionGate struct {
	Viewer       entities.Viewer
	Status       entities.SubmissionStatus
	Content      string
	CampaignType entities.CampaignType
}

// AllowedActions lists what the viewer may submit right now. A posting link
// that takes over the action area leaves nothing to submit here.
func AllowedActions(gate ActionGate) []Action {
	role := gate.Viewer.Role
	if !canReview(role) || !ShowFeedbackActions(role, gate.Status) {
		return nil
	}
	if SuppressesFeedbackActions(gate.CampaignType, strings.TrimSpace(gate.Content) != "", gate.Status) {
		return nil
	}
	if role.IsAdminFamily() && gate.Status == entities.SubmissionStatusClientFeedback {
		return []Action{ActionSendToCreator}
	}
	actions := []Action{ActionApprove}
	if ClientVisible(role, gate.Status) {
		if role == entities.RoleClient {
			actions = append(actions, ActionRequestChanges)
		} else {
			actions = append(actions, ActionRequestRevision)
		}
	}
	return actions
}

func IsActionAllowed(gate ActionGate, action Action) bool {
	for _, allowed := range AllowedActions(gate) {
		if allowed == action {
			return true
		}
	}
	return false
}

// ValidateReviewInput runs before any network call.
func ValidateReviewInput(action Action, feedback string, reasons []string) error {
	for _, reason := range reasons {
		if !entities.IsChangeReason(reason) {
			return domainerrors.ErrUnknownReason
		}
	}
	if action.IsChangeRequest() && strings.TrimSpace(feedback) == "" && len(reasons) == 0 {
		return domainerrors.ErrFeedbackRequired
	}
	return nil
}

// WireAction maps a review action onto the value the API expects from the
// caller's role.
func WireAction(role entities.Role, action Action) (string, error) {
	switch {
	case action == ActionApprove:
		return string(ActionApprove), nil
	case role == entities.RoleClient && action == ActionRequestChanges:
		return string(ActionRequestChanges), nil
	case role.IsAdminFamily() && (action == ActionRequestRevision || action == ActionSendToCreator):
		return string(ActionRequestRevision), nil
	default:
		return "", domainerrors.ErrUnsupportedAction
	}
}

// OptimisticStatus is the placeholder shown until the next fetch confirms or
// replaces it. The server remains the only writer.
func OptimisticStatus(role entities.Role, action Action, status entities.SubmissionStatus) (entities.SubmissionStatus, bool) {
	switch {
	case role.IsAdminFamily() && action == ActionApprove && status == entities.SubmissionStatusPendingReview:
		return entities.SubmissionStatusSentToClient, true
	case role.IsAdminFamily() && action == ActionRequestRevision && status == entities.SubmissionStatusPendingReview:
		return entities.SubmissionStatusChangesRequired, true
	case role.IsAdminFamily() && action == ActionSendToCreator && status == entities.SubmissionStatusClientFeedback:
		return entities.SubmissionStatusChangesRequired, true
	case role == entities.RoleClient && action == ActionApprove && status == entities.SubmissionStatusSentToClient:
		return entities.SubmissionStatusClientApproved, true
	case role == entities.RoleClient && action == ActionRequestChanges && status == entities.SubmissionStatusSentToClient:
		return entities.SubmissionStatusClientFeedback, true
	default:
		return status, false
	}
}

func canReview(role entities.Role) bool {
	return role.IsAdminFamily() || role == entities.RoleClient
}
