package events

import (
	"encoding/json"
	"strings"
	"time"
)

// Realtime is the frame shape shared by every realtime transport.
// Data stays raw until a subscriber decodes the payload it expects.
type Realtime struct {
	Event string          `json:"event"`
	Room  string          `json:"room,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
}

const (
	SubmissionUpdated = "v4:submission:updated"
	ContentSubmitted  = "v4:content:submitted"
	PostingUpdated    = "v4:posting:updated"
	ContentProcessed  = "v4:content:processed"

	JoinCampaign  = "join-campaign"
	LeaveCampaign = "leave-campaign"
)

// ReviewEvents are the events a submission view listens to.
var ReviewEvents = []string{SubmissionUpdated, ContentSubmitted, PostingUpdated, ContentProcessed}

type SubmissionUpdatedPayload struct {
	SubmissionID string `json:"submissionId"`
	UserID       string `json:"userId"`
	Action       string `json:"action"`
	ByClient     bool   `json:"byClient"`
}

type ContentSubmittedPayload struct {
	SubmissionID  string `json:"submissionId"`
	HasPhotos     bool   `json:"hasPhotos"`
	HasRawFootage bool   `json:"hasRawFootage"`
}

type PostingUpdatedPayload struct {
	SubmissionID string    `json:"submissionId"`
	PostingLink  string    `json:"postingLink"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type ContentProcessedPayload struct {
	SubmissionID  string `json:"submissionId"`
	HasRawFootage bool   `json:"hasRawFootage"`
}

type RoomPayload struct {
	CampaignID string `json:"campaignId"`
}

// CampaignRoom is the room every view of a campaign joins.
func CampaignRoom(campaignID string) string {
	return "campaign:" + strings.TrimSpace(campaignID)
}

// CampaignIDFromRoom reverses CampaignRoom. ok is false for foreign rooms.
func CampaignIDFromRoom(room string) (string, bool) {
	id, ok := strings.CutPrefix(strings.TrimSpace(room), "campaign:")
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

func New(event string, room string, payload any) (Realtime, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Realtime{}, err
	}
	return Realtime{Event: event, Room: room, Data: raw}, nil
}
