package entities

import (
	"strings"
	"time"
)

type SubmissionStatus string

const (
	SubmissionStatusPendingReview   SubmissionStatus = "PENDING_REVIEW"
	SubmissionStatusClientFeedback  SubmissionStatus = "CLIENT_FEEDBACK"
	SubmissionStatusSentToClient    SubmissionStatus = "SENT_TO_CLIENT"
	SubmissionStatusClientApproved  SubmissionStatus = "CLIENT_APPROVED"
	SubmissionStatusApproved        SubmissionStatus = "APPROVED"
	SubmissionStatusChangesRequired SubmissionStatus = "CHANGES_REQUIRED"
	SubmissionStatusRejected        SubmissionStatus = "REJECTED"
	SubmissionStatusPosted          SubmissionStatus = "POSTED"
)

var submissionStatuses = []SubmissionStatus{
	SubmissionStatusPendingReview,
	SubmissionStatusClientFeedback,
	SubmissionStatusSentToClient,
	SubmissionStatusClientApproved,
	SubmissionStatusApproved,
	SubmissionStatusChangesRequired,
	SubmissionStatusRejected,
	SubmissionStatusPosted,
}

// SubmissionStatuses lists every known status in lifecycle order.
func SubmissionStatuses() []SubmissionStatus {
	return append([]SubmissionStatus(nil), submissionStatuses...)
}

// ParseSubmissionStatus normalizes a wire value into a known status.
func ParseSubmissionStatus(raw string) (SubmissionStatus, bool) {
	value := SubmissionStatus(strings.ToUpper(strings.TrimSpace(raw)))
	for _, status := range submissionStatuses {
		if status == value {
			return status, true
		}
	}
	return "", false
}

func (s SubmissionStatus) IsTerminal() bool {
	switch s {
	case SubmissionStatusApproved, SubmissionStatusRejected, SubmissionStatusPosted:
		return true
	default:
		return false
	}
}

type MediaKind string

const (
	MediaKindVideo      MediaKind = "video"
	MediaKindPhotos     MediaKind = "photos"
	MediaKindRawFootage MediaKind = "rawFootages"
)

type MediaItem struct {
	ID       string
	URL      string
	Feedback string
	Status   string
}

// AdminRef marks the admin who added a posting link. It records ownership
// only; it grants nothing.
type AdminRef struct {
	ID   string
	Name string
	Role Role
}

type Submission struct {
	ID          string
	CampaignID  string
	Status      SubmissionStatus
	Content     string
	Caption     string
	Feedback    []FeedbackEntry
	Video       []MediaItem
	Photos      []MediaItem
	RawFootages []MediaItem
	Admin       *AdminRef
	UpdatedAt   time.Time
}

// Kind reports which media payload the submission carries.
func (s Submission) Kind() MediaKind {
	switch {
	case len(s.Photos) > 0:
		return MediaKindPhotos
	case len(s.RawFootages) > 0:
		return MediaKindRawFootage
	default:
		return MediaKindVideo
	}
}

func (s Submission) Media(kind MediaKind) []MediaItem {
	switch kind {
	case MediaKindPhotos:
		return s.Photos
	case MediaKindRawFootage:
		return s.RawFootages
	default:
		return s.Video
	}
}

func (s Submission) HasPostingLink() bool {
	return strings.TrimSpace(s.Content) != ""
}

type CampaignType string

const (
	CampaignTypeNormal CampaignType = "normal"
	CampaignTypeUGC    CampaignType = "ugc"
)

type Campaign struct {
	ID                string
	Type              CampaignType
	SubmissionVersion string
}
