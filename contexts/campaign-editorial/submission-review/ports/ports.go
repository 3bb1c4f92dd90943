package ports

import (
	"context"
	"time"

	"reviewdesk/contexts/campaign-editorial/submission-review/domain/entities"
	"reviewdesk/internal/shared/events"
)

type AdminReviewRequest struct {
	SubmissionID string
	Action       string
	Feedback     string
	Reasons      []string
	Caption      string
}

type ClientReviewRequest struct {
	SubmissionID string
	Action       string
	Feedback     string
	Reasons      []string
}

type PostingLinkRequest struct {
	SubmissionID string
	PostingLink  string
}

type PostingLinkReviewRequest struct {
	SubmissionID string
	Action       string
	Reasons      []string
}

type PitchReviewRequest struct {
	PitchID string
	Action  string
	Reason  string
}

// ReviewAPI is the platform REST API. The server enforces the transition
// table; callers only gate what they offer.
type ReviewAPI interface {
	GetSubmission(ctx context.Context, submissionID string) (entities.Submission, error)
	GetCampaign(ctx context.Context, campaignID string) (entities.Campaign, error)
	GetPitch(ctx context.Context, pitchID string) (entities.Pitch, error)
	ApproveV4Submission(ctx context.Context, req AdminReviewRequest) error
	ClientReviewV4Submission(ctx context.Context, req ClientReviewRequest) error
	UpdatePostingLink(ctx context.Context, req PostingLinkRequest) error
	ReviewPostingLink(ctx context.Context, req PostingLinkReviewRequest) error
	ReviewPitch(ctx context.Context, version string, req PitchReviewRequest) error
}

// SubmissionCache is the data-fetch layer: cached reads, manual cache
// updates and forced revalidation.
type SubmissionCache interface {
	Get(ctx context.Context, submissionID string) (entities.Submission, error)
	Mutate(ctx context.Context, submissionID string, update func(entities.Submission) entities.Submission) error
	Revalidate(ctx context.Context, submissionID string) error
}

// RealtimeChannel is a joined-room event bus. Subscribe returns the function
// removing the handler.
type RealtimeChannel interface {
	Join(ctx context.Context, room string) error
	Leave(ctx context.Context, room string) error
	Subscribe(event string, handler func(events.Realtime)) (unsubscribe func())
}

type ToastLevel string

const (
	ToastSuccess ToastLevel = "success"
	ToastInfo    ToastLevel = "info"
	ToastWarning ToastLevel = "warning"
	ToastError   ToastLevel = "error"
)

type Toast struct {
	Level   ToastLevel
	Message string
}

type Notifier interface {
	Notify(level ToastLevel, message string)
}

// ToastInbox holds toasts until the viewer's next read.
type ToastInbox interface {
	Notifier
	Drain() []Toast
}

type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d. Tests inject a manual clock.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}
