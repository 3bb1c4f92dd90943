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

type ReviewPitchCommand struct {
	Viewer  entities.Viewer
	PitchID string
	Action  string
	Reason  string
}

type PitchReviewResult struct {
	Action  policy.PitchAction
	Version string
}

type PitchReviewUseCase struct {
	API      ports.ReviewAPI
	Notifier ports.Notifier
	Guard    *InFlightGuard
	Logger   *slog.Logger
}

func (uc PitchReviewUseCase) Review(ctx context.Context, cmd ReviewPitchCommand) (PitchReviewResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	pitchID := strings.TrimSpace(cmd.PitchID)
	if pitchID == "" {
		return PitchReviewResult{}, domainerrors.ErrInvalidReviewInput
	}
	action, ok := policy.ParsePitchAction(cmd.Action)
	if !ok {
		return PitchReviewResult{}, domainerrors.ErrUnsupportedAction
	}
	if cmd.Viewer.IsDisabled() {
		notify(uc.Notifier, ports.ToastWarning, msgNotPermitted)
		return PitchReviewResult{}, domainerrors.ErrActionNotPermitted
	}

	pitch, err := uc.API.GetPitch(ctx, pitchID)
	if err != nil {
		return PitchReviewResult{}, err
	}
	if !policy.IsPitchActionAllowed(cmd.Viewer, pitch.Status, action) {
		notify(uc.Notifier, ports.ToastWarning, msgNotAvailable)
		return PitchReviewResult{}, domainerrors.ErrActionNotAvailable
	}
	campaign, err := uc.API.GetCampaign(ctx, pitch.CampaignID)
	if err != nil {
		return PitchReviewResult{}, err
	}
	version := policy.PitchEndpointVersion(campaign)

	guard := uc.Guard
	if guard == nil {
		guard = NewInFlightGuard()
	}
	release, acquired := guard.Acquire("pitch|" + pitchID)
	if !acquired {
		return PitchReviewResult{}, domainerrors.ErrActionInFlight
	}
	defer release()

	err = uc.API.ReviewPitch(ctx, version, ports.PitchReviewRequest{
		PitchID: pitchID,
		Action:  string(action),
		Reason:  strings.TrimSpace(cmd.Reason),
	})
	if err != nil {
		notify(uc.Notifier, ports.ToastError, serverMessage(err, msgPitchFailed))
		return PitchReviewResult{}, fmt.Errorf("review pitch %s: %w", pitchID, err)
	}

	switch action {
	case policy.PitchApprove:
		notify(uc.Notifier, ports.ToastSuccess, "Pitch approved")
	case policy.PitchReject:
		notify(uc.Notifier, ports.ToastSuccess, "Pitch rejected")
	default:
		notify(uc.Notifier, ports.ToastSuccess, "Pitch moved to maybe")
	}
	logger.Info("pitch reviewed",
		"event", "pitch_reviewed",
		"module", "campaign-editorial/submission-review",
		"layer", "application",
		"pitch_id", pitchID,
		"action", string(action),
		"api_version", version,
	)
	return PitchReviewResult{Action: action, Version: version}, nil
}
