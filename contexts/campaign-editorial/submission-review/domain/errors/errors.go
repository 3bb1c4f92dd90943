package errors

import "errors"

var (
	ErrSubmissionNotFound   = errors.New("submission not found")
	ErrInvalidReviewInput   = errors.New("invalid review input")
	ErrFeedbackRequired     = errors.New("feedback or at least one reason is required")
	ErrUnknownReason        = errors.New("unknown change reason")
	ErrInvalidPostingLink   = errors.New("invalid posting link")
	ErrInvalidRole          = errors.New("invalid viewer role")
	ErrActionNotAvailable   = errors.New("action is not available in the current status")
	ErrActionNotPermitted   = errors.New("viewer is not permitted to perform this action")
	ErrActionInFlight       = errors.New("action already in progress")
	ErrSuperadminRequired   = errors.New("superadmin is required to approve a link added by an admin")
	ErrUnsupportedAction    = errors.New("unsupported review action")
	ErrChannelUnavailable   = errors.New("realtime channel unavailable")
	ErrControllerNotStarted = errors.New("reconciliation controller not started")
)
