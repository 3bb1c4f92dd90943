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

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type postingLinkInput struct {
	PostingLink string `validate:"required,http_url"`
}

// ValidatePostingLink accepts absolute http(s) URLs only.
func ValidatePostingLink(raw string) error {
	if err := validate.Struct(postingLinkInput{PostingLink: strings.TrimSpace(raw)}); err != nil {
		return fmt.Errorf("%w: %s", domainerrors.ErrInvalidPostingLink, err.Error())
	}
	return nil
}

type UpdatePostingLinkCommand struct {
	Viewer       entities.Viewer
	SubmissionID string
	PostingLink  string
	Runner       LocalActionRunner
}

type ReviewPostingLinkCommand struct {
	Viewer       entities.Viewer
	SubmissionID string
	Action       string
	Reasons      []string
	Runner       LocalActionRunner
}

type PostingLinkResult struct {
	Status    entities.SubmissionStatus
	Reference PostReference
}

type PostingLinkUseCase struct {
	API      ports.ReviewAPI
	Cache    ports.SubmissionCache
	Notifier ports.Notifier
	Guard    *InFlightGuard
	Logger   *slog.Logger
}

func (uc PostingLinkUseCase) Update(ctx context.Context, cmd UpdatePostingLinkCommand) (PostingLinkResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	submissionID := strings.TrimSpace(cmd.SubmissionID)
	link := strings.TrimSpace(cmd.PostingLink)
	if submissionID == "" {
		return PostingLinkResult{}, domainerrors.ErrInvalidReviewInput
	}
	if err := ValidatePostingLink(link); err != nil {
		notify(uc.Notifier, ports.ToastWarning, msgInvalidPostingURL)
		return PostingLinkResult{}, err
	}

	submission, err := uc.Cache.Get(ctx, submissionID)
	if err != nil {
		return PostingLinkResult{}, err
	}
	campaign, err := uc.API.GetCampaign(ctx, submission.CampaignID)
	if err != nil {
		return PostingLinkResult{}, err
	}
	if cmd.Viewer.IsDisabled() || !policy.CanSubmitPostingLink(cmd.Viewer.Role, submission.Status, campaign.Type, submission.HasPostingLink()) {
		notify(uc.Notifier, ports.ToastWarning, msgNotPermitted)
		return PostingLinkResult{}, domainerrors.ErrActionNotPermitted
	}

	release, acquired := uc.guard().Acquire(submissionID + "|posting_link")
	if !acquired {
		return PostingLinkResult{}, domainerrors.ErrActionInFlight
	}
	defer release()

	err = runLocal(ctx, cmd.Runner, func(ctx context.Context) error {
		return uc.API.UpdatePostingLink(ctx, ports.PostingLinkRequest{SubmissionID: submissionID, PostingLink: link})
	})
	if err != nil {
		notify(uc.Notifier, ports.ToastError, serverMessage(err, msgPostingLinkFailed))
		return PostingLinkResult{}, fmt.Errorf("update posting link %s: %w", submissionID, err)
	}

	if err := uc.Cache.Mutate(ctx, submissionID, func(current entities.Submission) entities.Submission {
		current.Content = link
		return current
	}); err != nil {
		logger.Debug("optimistic placeholder skipped",
			"event", "posting_link_placeholder_skipped",
			"module", "campaign-editorial/submission-review",
			"layer", "application",
			"submission_id", submissionID,
			"error", err.Error(),
		)
	}
	notify(uc.Notifier, ports.ToastSuccess, "Posting link submitted")

	reference := detectPostReference(link)
	logger.Info("posting link updated",
		"event", "posting_link_updated",
		"module", "campaign-editorial/submission-review",
		"layer", "application",
		"submission_id", submissionID,
		"platform", string(reference.Platform),
	)
	return PostingLinkResult{Status: submission.Status, Reference: reference}, nil
}

func (uc PostingLinkUseCase) Review(ctx context.Context, cmd ReviewPostingLinkCommand) (PostingLinkResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	submissionID := strings.TrimSpace(cmd.SubmissionID)
	if submissionID == "" {
		return PostingLinkResult{}, domainerrors.ErrInvalidReviewInput
	}
	action, ok := policy.ParsePostingLinkAction(cmd.Action)
	if !ok {
		return PostingLinkResult{}, domainerrors.ErrUnsupportedAction
	}
	reasons := cleanReasons(cmd.Reasons)
	for _, reason := range reasons {
		if !entities.IsChangeReason(reason) {
			notify(uc.Notifier, ports.ToastWarning, msgUnknownReason)
			return PostingLinkResult{}, domainerrors.ErrUnknownReason
		}
	}

	submission, err := uc.Cache.Get(ctx, submissionID)
	if err != nil {
		return PostingLinkResult{}, err
	}
	campaign, err := uc.API.GetCampaign(ctx, submission.CampaignID)
	if err != nil {
		return PostingLinkResult{}, err
	}
	if err := policy.AuthorizePostingLinkReview(cmd.Viewer, submission, campaign.Type, action); err != nil {
		notify(uc.Notifier, ports.ToastWarning, validationMessage(err))
		return PostingLinkResult{}, err
	}

	release, acquired := uc.guard().Acquire(submissionID + "|posting_link_" + string(action))
	if !acquired {
		return PostingLinkResult{}, domainerrors.ErrActionInFlight
	}
	defer release()

	err = runLocal(ctx, cmd.Runner, func(ctx context.Context) error {
		return uc.API.ReviewPostingLink(ctx, ports.PostingLinkReviewRequest{
			SubmissionID: submissionID,
			Action:       string(action),
			Reasons:      reasons,
		})
	})
	if err != nil {
		notify(uc.Notifier, ports.ToastError, serverMessage(err, msgPostingLinkFailed))
		return PostingLinkResult{}, fmt.Errorf("review posting link %s: %w", submissionID, err)
	}

	status := submission.Status
	if action == policy.PostingLinkApprove {
		status = entities.SubmissionStatusPosted
		if err := uc.Cache.Mutate(ctx, submissionID, func(current entities.Submission) entities.Submission {
			current.Status = status
			return current
		}); err != nil {
			logger.Debug("optimistic placeholder skipped",
				"event", "posting_link_review_placeholder_skipped",
				"module", "campaign-editorial/submission-review",
				"layer", "application",
				"submission_id", submissionID,
				"error", err.Error(),
			)
		}
		notify(uc.Notifier, ports.ToastSuccess, "Posting link approved")
	} else {
		notify(uc.Notifier, ports.ToastSuccess, "Posting link change requested")
	}

	logger.Info("posting link reviewed",
		"event", "posting_link_reviewed",
		"module", "campaign-editorial/submission-review",
		"layer", "application",
		"submission_id", submissionID,
		"action", string(action),
	)
	return PostingLinkResult{Status: status, Reference: detectPostReference(submission.Content)}, nil
}

func (uc PostingLinkUseCase) guard() *InFlightGuard {
	if uc.Guard == nil {
		return NewInFlightGuard()
	}
	return uc.Guard
}
