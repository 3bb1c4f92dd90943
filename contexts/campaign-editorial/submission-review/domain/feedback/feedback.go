// Package feedback selects and classifies the feedback history of a
// submission. The server returns entries newest first; nothing here sorts.
package feedback

import (
	"strings"

	"reviewdesk/contexts/campaign-editorial/submission-review/domain/entities"
)

// Latest returns the newest entry.
func Latest(entries []entities.FeedbackEntry) (entities.FeedbackEntry, bool) {
	if len(entries) == 0 {
		return entities.FeedbackEntry{}, false
	}
	return entries[0], true
}

// GetDefaultFeedback seeds the editable feedback box. Only a submission in
// CLIENT_FEEDBACK is seeded: first from the latest REQUEST entry, then from a
// media item's own feedback.
func GetDefaultFeedback(isClientFeedback bool, submission entities.Submission, mediaKey entities.MediaKind) string {
	if !isClientFeedback {
		return ""
	}
	if entry, ok := latestOfType(submission.Feedback, entities.FeedbackTypeRequest); ok {
		if content := strings.TrimSpace(entry.Content); content != "" {
			return entry.Content
		}
	}
	for _, item := range submission.Media(mediaKey) {
		if strings.TrimSpace(item.Feedback) != "" {
			return item.Feedback
		}
	}
	return ""
}

// GetInitialReasons seeds the reasons selection from the client's own most
// recent change request.
func GetInitialReasons(isClientFeedback bool, submission entities.Submission) []string {
	if !isClientFeedback {
		return []string{}
	}
	for _, entry := range submission.Feedback {
		if entry.Type == entities.FeedbackTypeRequest && entry.AuthorRole() == entities.RoleClient {
			return append([]string{}, entry.Reasons...)
		}
	}
	return []string{}
}

// FilterForRole keeps the entries a role's feed shows. Clients read admin
// comments; admins read change requests, except when the submission sits with
// the client, where they read what was sent.
func FilterForRole(entries []entities.FeedbackEntry, role entities.Role, status entities.SubmissionStatus) []entities.FeedbackEntry {
	keep := func(entry entities.FeedbackEntry) bool { return false }
	switch {
	case role == entities.RoleClient:
		keep = func(entry entities.FeedbackEntry) bool { return entry.Type == entities.FeedbackTypeComment }
	case role.IsAdminFamily() && status == entities.SubmissionStatusSentToClient:
		keep = func(entry entities.FeedbackEntry) bool { return entry.Type == entities.FeedbackTypeComment }
	case role.IsAdminFamily():
		keep = func(entry entities.FeedbackEntry) bool { return entry.Type == entities.FeedbackTypeRequest }
	case role == entities.RoleCreator:
		keep = func(entry entities.FeedbackEntry) bool {
			return entry.Type == entities.FeedbackTypeRequest && (entry.SentToCreator || entry.AuthorRole().IsAdminFamily())
		}
	}

	items := make([]entities.FeedbackEntry, 0, len(entries))
	for _, entry := range entries {
		if keep(entry) {
			items = append(items, entry)
		}
	}
	return items
}

func latestOfType(entries []entities.FeedbackEntry, kind entities.FeedbackType) (entities.FeedbackEntry, bool) {
	for _, entry := range entries {
		if entry.Type == kind {
			return entry, true
		}
	}
	return entities.FeedbackEntry{}, false
}
