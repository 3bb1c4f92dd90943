package policy

import (
	"strings"

	"reviewdesk/contexts/campaign-editorial/submission-review/domain/entities"
)

type PitchAction string

const (
	PitchApprove PitchAction = "approve"
	PitchReject  PitchAction = "reject"
	PitchMaybe   PitchAction = "maybe"
)

func ParsePitchAction(raw string) (PitchAction, bool) {
	switch PitchAction(strings.ToLower(strings.TrimSpace(raw))) {
	case PitchApprove:
		return PitchApprove, true
	case PitchReject:
		return PitchReject, true
	case PitchMaybe:
		return PitchMaybe, true
	default:
		return "", false
	}
}

func PitchActions(viewer entities.Viewer, status entities.PitchStatus) []PitchAction {
	role := viewer.Role
	switch {
	case role.IsAdminFamily() && (status == entities.PitchStatusPendingReview || status == entities.PitchStatusMaybe):
		if status == entities.PitchStatusMaybe {
			return []PitchAction{PitchApprove, PitchReject}
		}
		return []PitchAction{PitchApprove, PitchReject, PitchMaybe}
	case role == entities.RoleClient && status == entities.PitchStatusSentToClient:
		return []PitchAction{PitchApprove, PitchReject}
	default:
		return nil
	}
}

func IsPitchActionAllowed(viewer entities.Viewer, status entities.PitchStatus, action PitchAction) bool {
	for _, allowed := range PitchActions(viewer, status) {
		if allowed == action {
			return true
		}
	}
	return false
}

const (
	PitchEndpointV2 = "v2"
	PitchEndpointV3 = "v3"
)

// PitchEndpointVersion picks the pitch review API generation from the
// campaign's submission flow version.
func PitchEndpointVersion(campaign entities.Campaign) string {
	if strings.EqualFold(strings.TrimSpace(campaign.SubmissionVersion), "v4") {
		return PitchEndpointV3
	}
	return PitchEndpointV2
}
