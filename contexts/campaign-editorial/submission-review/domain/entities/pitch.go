package entities

import "strings"

type PitchStatus string

const (
	PitchStatusPendingReview      PitchStatus = "PENDING_REVIEW"
	PitchStatusMaybe              PitchStatus = "MAYBE"
	PitchStatusSentToClient       PitchStatus = "SENT_TO_CLIENT"
	PitchStatusApproved           PitchStatus = "APPROVED"
	PitchStatusRejected           PitchStatus = "REJECTED"
	PitchStatusAgreementPending   PitchStatus = "AGREEMENT_PENDING"
	PitchStatusAgreementSubmitted PitchStatus = "AGREEMENT_SUBMITTED"
)

func ParsePitchStatus(raw string) (PitchStatus, bool) {
	value := PitchStatus(strings.ToUpper(strings.TrimSpace(raw)))
	switch value {
	case PitchStatusPendingReview, PitchStatusMaybe, PitchStatusSentToClient,
		PitchStatusApproved, PitchStatusRejected,
		PitchStatusAgreementPending, PitchStatusAgreementSubmitted:
		return value, true
	default:
		return "", false
	}
}

type Pitch struct {
	ID         string
	CampaignID string
	CreatorID  string
	Status     PitchStatus
}
