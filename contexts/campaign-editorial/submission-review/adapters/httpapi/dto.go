package httpapi

import (
	"time"

	"reviewdesk/contexts/campaign-editorial/submission-review/domain/entities"
)

type mediaDTO struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Feedback string `json:"feedback,omitempty"`
	Status   string `json:"status,omitempty"`
}

type personDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

type feedbackDTO struct {
	ID            string     `json:"id"`
	Type          string     `json:"type"`
	Content       string     `json:"content"`
	Reasons       []string   `json:"reasons"`
	Admin         *personDTO `json:"admin,omitempty"`
	SentToCreator bool       `json:"sentToCreator"`
	CreatedAt     time.Time  `json:"createdAt"`
}

type submissionDTO struct {
	ID          string        `json:"id"`
	CampaignID  string        `json:"campaignId"`
	Status      string        `json:"status"`
	Content     string        `json:"content"`
	Caption     string        `json:"caption"`
	Feedback    []feedbackDTO `json:"feedback"`
	Video       []mediaDTO    `json:"video"`
	Photos      []mediaDTO    `json:"photos"`
	RawFootages []mediaDTO    `json:"rawFootages"`
	Admin       *personDTO    `json:"admin,omitempty"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

type campaignDTO struct {
	ID                string `json:"id"`
	Type              string `json:"type"`
	SubmissionVersion string `json:"submissionVersion"`
}

type pitchDTO struct {
	ID         string `json:"id"`
	CampaignID string `json:"campaignId"`
	CreatorID  string `json:"creatorId"`
	Status     string `json:"status"`
}

type adminReviewBody struct {
	SubmissionID string   `json:"submissionId"`
	Action       string   `json:"action"`
	Feedback     string   `json:"feedback,omitempty"`
	Reasons      []string `json:"reasons"`
	Caption      string   `json:"caption,omitempty"`
}

type clientReviewBody struct {
	SubmissionID string   `json:"submissionId"`
	Action       string   `json:"action"`
	Feedback     string   `json:"feedback,omitempty"`
	Reasons      []string `json:"reasons"`
}

type postingLinkBody struct {
	SubmissionID string `json:"submissionId"`
	PostingLink  string `json:"postingLink"`
}

type postingLinkReviewBody struct {
	SubmissionID string   `json:"submissionId"`
	Action       string   `json:"action"`
	Reasons      []string `json:"reasons"`
}

type pitchReviewBody struct {
	PitchID string `json:"pitchId"`
	Action  string `json:"action"`
	Reason  string `json:"reason,omitempty"`
}

// errorBody covers both error shapes the platform returns.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (d submissionDTO) toEntity() entities.Submission {
	status, ok := entities.ParseSubmissionStatus(d.Status)
	if !ok {
		status = entities.SubmissionStatus(d.Status)
	}
	item := entities.Submission{
		ID:          d.ID,
		CampaignID:  d.CampaignID,
		Status:      status,
		Content:     d.Content,
		Caption:     d.Caption,
		Feedback:    make([]entities.FeedbackEntry, 0, len(d.Feedback)),
		Video:       toMedia(d.Video),
		Photos:      toMedia(d.Photos),
		RawFootages: toMedia(d.RawFootages),
		UpdatedAt:   d.UpdatedAt,
	}
	for _, entry := range d.Feedback {
		item.Feedback = append(item.Feedback, entry.toEntity())
	}
	if d.Admin != nil {
		role, _ := entities.ParseRole(d.Admin.Role)
		item.Admin = &entities.AdminRef{ID: d.Admin.ID, Name: d.Admin.Name, Role: role}
	}
	return item
}

func (d feedbackDTO) toEntity() entities.FeedbackEntry {
	entry := entities.FeedbackEntry{
		ID:            d.ID,
		Type:          entities.FeedbackType(d.Type),
		Content:       d.Content,
		Reasons:       append([]string{}, d.Reasons...),
		SentToCreator: d.SentToCreator,
		CreatedAt:     d.CreatedAt,
	}
	if d.Admin != nil {
		role, _ := entities.ParseRole(d.Admin.Role)
		entry.Admin = &entities.FeedbackAuthor{ID: d.Admin.ID, Name: d.Admin.Name, Role: role}
	}
	return entry
}

func toMedia(items []mediaDTO) []entities.MediaItem {
	if len(items) == 0 {
		return nil
	}
	out := make([]entities.MediaItem, 0, len(items))
	for _, item := range items {
		out = append(out, entities.MediaItem{ID: item.ID, URL: item.URL, Feedback: item.Feedback, Status: item.Status})
	}
	return out
}

func (d campaignDTO) toEntity() entities.Campaign {
	campaignType := entities.CampaignTypeNormal
	if entities.CampaignType(d.Type) == entities.CampaignTypeUGC {
		campaignType = entities.CampaignTypeUGC
	}
	return entities.Campaign{ID: d.ID, Type: campaignType, SubmissionVersion: d.SubmissionVersion}
}

func (d pitchDTO) toEntity() entities.Pitch {
	status, ok := entities.ParsePitchStatus(d.Status)
	if !ok {
		status = entities.PitchStatus(d.Status)
	}
	return entities.Pitch{ID: d.ID, CampaignID: d.CampaignID, CreatorID: d.CreatorID, Status: status}
}
