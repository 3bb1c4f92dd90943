package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	application "reviewdesk/contexts/campaign-editorial/submission-review/application"
	"reviewdesk/contexts/campaign-editorial/submission-review/domain/entities"
	domainerrors "reviewdesk/contexts/campaign-editorial/submission-review/domain/errors"
	"reviewdesk/contexts/campaign-editorial/submission-review/domain/policy"
	"reviewdesk/contexts/campaign-editorial/submission-review/ports"
)

type ReviewSubmissionCommand struct {
	Viewer       entities.Viewer
	SubmissionID string
	Action       string
	Feedback     string
	Reasons      []string
	Caption      string
	Runner       LocalActionRunner
}

// ReviewFormState is what the review form holds after a submit.
type ReviewFormState struct {
	Feedback string
	Reasons  []string
}

type ReviewResult struct {
	Action policy.Action
	Status entities.SubmissionStatus
	Form   ReviewFormState
}

type ReviewSubmissionUseCase struct {
	API      ports.ReviewAPI
	Cache    ports.SubmissionCache
	Notifier ports.Notifier
	Guard    *InFlightGuard
	Logger   *slog.Logger
}

// Submit sends an approve or change request for the viewer's role. Local
// validation failures never reach the API.
func (uc ReviewSubmissionUseCase) Submit(ctx context.Context, cmd ReviewSubmissionCommand) (ReviewResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	submissionID := strings.TrimSpace(cmd.SubmissionID)
	viewer := cmd.Viewer
	if submissionID == "" {
		return ReviewResult{}, domainerrors.ErrInvalidReviewInput
	}
	if viewer.Role == entities.RoleUnknown {
		return ReviewResult{}, domainerrors.ErrInvalidRole
	}

	action, ok := policy.ParseAction(cmd.Action)
	if !ok {
		return ReviewResult{}, domainerrors.ErrUnsupportedAction
	}
	action = normalizeAction(viewer.Role, action)
	feedback := strings.TrimSpace(cmd.Feedback)
	reasons := cleanReasons(cmd.Reasons)

	if err := policy.ValidateReviewInput(action, feedback, reasons); err != nil {
		notify(uc.Notifier, ports.ToastWarning, validationMessage(err))
		return ReviewResult{}, err
	}
	if viewer.IsDisabled() {
		notify(uc.Notifier, ports.ToastWarning, msgNotPermitted)
		return ReviewResult{}, domainerrors.ErrActionNotPermitted
	}

	submission, err := uc.Cache.Get(ctx, submissionID)
	if err != nil {
		return ReviewResult{}, err
	}
	campaignType, err := uc.campaignType(ctx, submission)
	if err != nil {
		return ReviewResult{}, err
	}
	gate := policy.ActionGate{
		Viewer:       viewer,
		Status:       submission.Status,
		Content:      submission.Content,
		CampaignType: campaignType,
	}
	if !policy.IsActionAllowed(gate, action) {
		notify(uc.Notifier, ports.ToastWarning, msgNotAvailable)
		return ReviewResult{}, domainerrors.ErrActionNotAvailable
	}
	wireAction, err := policy.WireAction(viewer.Role, action)
	if err != nil {
		return ReviewResult{}, err
	}

	release, acquired := uc.guard().Acquire(submissionID + "|" + string(action))
	if !acquired {
		return ReviewResult{}, domainerrors.ErrActionInFlight
	}
	defer release()

	err = runLocal(ctx, cmd.Runner, func(ctx context.Context) error {
		if viewer.Role == entities.RoleClient {
			return uc.API.ClientReviewV4Submission(ctx, ports.ClientReviewRequest{
				SubmissionID: submissionID,
				Action:       wireAction,
				Feedback:     feedback,
				Reasons:      reasons,
			})
		}
		return uc.API.ApproveV4Submission(ctx, ports.AdminReviewRequest{
			SubmissionID: submissionID,
			Action:       wireAction,
			Feedback:     feedback,
			Reasons:      reasons,
			Caption:      strings.TrimSpace(cmd.Caption),
		})
	})
	if err != nil {
		logger.Warn("submission review failed",
			"event", "submission_review_failed",
			"module", "campaign-editorial/submission-review",
			"layer", "application",
			"submission_id", submissionID,
			"action", string(action),
			"role", string(viewer.Role),
			"error", err.Error(),
		)
		notify(uc.Notifier, ports.ToastError, serverMessage(err, msgReviewFailed))
		return ReviewResult{}, fmt.Errorf("review submission %s: %w", submissionID, err)
	}

	status, changed := policy.OptimisticStatus(viewer.Role, action, submission.Status)
	if changed {
		if err := uc.Cache.Mutate(ctx, submissionID, func(current entities.Submission) entities.Submission {
			current.Status = status
			return current
		}); err != nil {
			logger.Debug("optimistic placeholder skipped",
				"event", "submission_review_placeholder_skipped",
				"module", "campaign-editorial/submission-review",
				"layer", "application",
				"submission_id", submissionID,
				"error", err.Error(),
			)
		}
	}
	notify(uc.Notifier, ports.ToastSuccess, reviewSuccessMessage(viewer.Role, action))

	logger.Info("submission reviewed",
		"event", "submission_reviewed",
		"module", "campaign-editorial/submission-review",
		"layer", "application",
		"submission_id", submissionID,
		"action", string(action),
		"role", string(viewer.Role),
		"status", string(status),
	)
	return ReviewResult{
		Action: action,
		Status: status,
		Form:   ReviewFormState{Feedback: "", Reasons: []string{}},
	}, nil
}

// campaignType only matters once a posting link is set, so the lookup is
// skipped otherwise.
func (uc ReviewSubmissionUseCase) campaignType(ctx context.Context, submission entities.Submission) (entities.CampaignType, error) {
	if !submission.HasPostingLink() {
		return entities.CampaignTypeNormal, nil
	}
	campaign, err := uc.API.GetCampaign(ctx, submission.CampaignID)
	if err != nil {
		return "", err
	}
	if campaign.Type == "" {
		return entities.CampaignTypeNormal, nil
	}
	return campaign.Type, nil
}

func (uc ReviewSubmissionUseCase) guard() *InFlightGuard {
	if uc.Guard == nil {
		return NewInFlightGuard()
	}
	return uc.Guard
}

// normalizeAction maps the change request onto the caller's vocabulary:
// clients request changes, admins request revisions.
func normalizeAction(role entities.Role, action policy.Action) policy.Action {
	switch {
	case role == entities.RoleClient && action == policy.ActionRequestRevision:
		return policy.ActionRequestChanges
	case role.IsAdminFamily() && action == policy.ActionRequestChanges:
		return policy.ActionRequestRevision
	default:
		return action
	}
}

func cleanReasons(reasons []string) []string {
	out := make([]string, 0, len(reasons))
	seen := make(map[string]struct{}, len(reasons))
	for _, reason := range reasons {
		reason = strings.TrimSpace(reason)
		if reason == "" {
			continue
		}
		if _, dup := seen[reason]; dup {
			continue
		}
		seen[reason] = struct{}{}
		out = append(out, reason)
	}
	return out
}

func reviewSuccessMessage(role entities.Role, action policy.Action) string {
	switch {
	case role == entities.RoleClient && action == policy.ActionApprove:
		return "Submission approved"
	case role == entities.RoleClient:
		return "Changes requested"
	case action == policy.ActionApprove:
		return "Submission sent to client"
	case action == policy.ActionSendToCreator:
		return "Feedback sent to creator"
	default:
		return "Revision requested"
	}
}
