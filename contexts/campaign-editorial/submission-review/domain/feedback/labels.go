package feedback

import "reviewdesk/contexts/campaign-editorial/submission-review/domain/entities"

const (
	LabelCSFeedback     = "CS Feedback"
	LabelClientFeedback = "Client Feedback"
	LabelCSComments     = "CS Comments"

	ActionSentToClient  = "Sent to Client"
	ActionSentToAdmin   = "Sent to Admin"
	ActionSentToCreator = "Sent to Creator"
)

type Display struct {
	Label       string
	ActionLabel string
}

type labelKey struct {
	kind          entities.FeedbackType
	sentToCreator bool
	client        bool
}

var labels = map[labelKey]Display{
	{entities.FeedbackTypeRequest, false, true}:   {LabelClientFeedback, ActionSentToAdmin},
	{entities.FeedbackTypeRequest, true, true}:    {LabelClientFeedback, ActionSentToCreator},
	{entities.FeedbackTypeComment, false, true}:   {LabelClientFeedback, ActionSentToAdmin},
	{entities.FeedbackTypeComment, true, true}:    {LabelClientFeedback, ActionSentToCreator},
	{entities.FeedbackTypeApproval, false, true}:  {LabelClientFeedback, ActionSentToAdmin},
	{entities.FeedbackTypeApproval, true, true}:   {LabelClientFeedback, ActionSentToAdmin},
	{entities.FeedbackTypeRequest, false, false}:  {LabelCSFeedback, ActionSentToCreator},
	{entities.FeedbackTypeRequest, true, false}:   {LabelCSFeedback, ActionSentToCreator},
	{entities.FeedbackTypeComment, false, false}:  {LabelCSComments, ActionSentToClient},
	{entities.FeedbackTypeComment, true, false}:   {LabelCSComments, ActionSentToCreator},
	{entities.FeedbackTypeApproval, false, false}: {LabelCSFeedback, ActionSentToClient},
	{entities.FeedbackTypeApproval, true, false}:  {LabelCSFeedback, ActionSentToClient},
}

// Describe returns the display labels of an entry. Entries without a client
// author are treated as CS (admin) entries.
func Describe(entry entities.FeedbackEntry) Display {
	key := labelKey{
		kind:          entry.Type,
		sentToCreator: entry.SentToCreator,
		client:        entry.AuthorRole() == entities.RoleClient,
	}
	if display, ok := labels[key]; ok {
		return display
	}
	if key.client {
		return Display{Label: LabelClientFeedback}
	}
	return Display{Label: LabelCSFeedback}
}
