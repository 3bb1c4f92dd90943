package commands

import (
	"errors"
	"strings"

	domainerrors "reviewdesk/contexts/campaign-editorial/submission-review/domain/errors"
	"reviewdesk/contexts/campaign-editorial/submission-review/ports"
)

const (
	msgFeedbackRequired  = "Please provide feedback or select at least one reason"
	msgUnknownReason     = "Please choose reasons from the list"
	msgInvalidPostingURL = "Please enter a valid posting link URL"
	msgNotPermitted      = "You do not have permission to perform this action"
	msgNotAvailable      = "This action is no longer available for this submission"
	msgSuperadminOnly    = "Only a superadmin can approve a link added by an admin"
	msgReviewFailed      = "Failed to submit review. Please try again."
	msgPostingLinkFailed = "Failed to update posting link. Please try again."
	msgPitchFailed       = "Failed to update pitch. Please try again."
)

// userMessager is implemented by API errors carrying the server's text.
type userMessager interface {
	UserMessage() string
}

func serverMessage(err error, fallback string) string {
	var withMessage userMessager
	if errors.As(err, &withMessage) {
		if message := strings.TrimSpace(withMessage.UserMessage()); message != "" {
			return message
		}
	}
	return fallback
}

func validationMessage(err error) string {
	switch {
	case errors.Is(err, domainerrors.ErrFeedbackRequired):
		return msgFeedbackRequired
	case errors.Is(err, domainerrors.ErrUnknownReason):
		return msgUnknownReason
	case errors.Is(err, domainerrors.ErrInvalidPostingLink):
		return msgInvalidPostingURL
	case errors.Is(err, domainerrors.ErrSuperadminRequired):
		return msgSuperadminOnly
	case errors.Is(err, domainerrors.ErrActionNotAvailable):
		return msgNotAvailable
	default:
		return msgNotPermitted
	}
}

func notify(notifier ports.Notifier, level ports.ToastLevel, message string) {
	if notifier == nil {
		return
	}
	notifier.Notify(level, message)
}
