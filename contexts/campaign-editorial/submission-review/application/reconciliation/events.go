package reconciliation

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"reviewdesk/contexts/campaign-editorial/submission-review/domain/entities"
	"reviewdesk/contexts/campaign-editorial/submission-review/ports"
	"reviewdesk/internal/shared/events"
)

type decodedEvent struct {
	Name          string
	SubmissionID  string
	UserID        string
	Action        string
	ByClient      bool
	HasPhotos     bool
	HasRawFootage bool
}

func decodeEvent(evt events.Realtime) (decodedEvent, error) {
	decoded := decodedEvent{Name: evt.Event}
	if len(evt.Data) == 0 {
		return decoded, nil
	}
	switch evt.Event {
	case events.SubmissionUpdated:
		var payload events.SubmissionUpdatedPayload
		if err := json.Unmarshal(evt.Data, &payload); err != nil {
			return decodedEvent{}, fmt.Errorf("decode %s payload: %w", evt.Event, err)
		}
		decoded.SubmissionID = payload.SubmissionID
		decoded.UserID = payload.UserID
		decoded.Action = payload.Action
		decoded.ByClient = payload.ByClient
	case events.ContentSubmitted:
		var payload events.ContentSubmittedPayload
		if err := json.Unmarshal(evt.Data, &payload); err != nil {
			return decodedEvent{}, fmt.Errorf("decode %s payload: %w", evt.Event, err)
		}
		decoded.SubmissionID = payload.SubmissionID
		decoded.HasPhotos = payload.HasPhotos
		decoded.HasRawFootage = payload.HasRawFootage
	case events.PostingUpdated:
		var payload events.PostingUpdatedPayload
		if err := json.Unmarshal(evt.Data, &payload); err != nil {
			return decodedEvent{}, fmt.Errorf("decode %s payload: %w", evt.Event, err)
		}
		decoded.SubmissionID = payload.SubmissionID
	case events.ContentProcessed:
		var payload events.ContentProcessedPayload
		if err := json.Unmarshal(evt.Data, &payload); err != nil {
			return decodedEvent{}, fmt.Errorf("decode %s payload: %w", evt.Event, err)
		}
		decoded.SubmissionID = payload.SubmissionID
		decoded.HasRawFootage = payload.HasRawFootage
	default:
		return decodedEvent{}, fmt.Errorf("unexpected realtime event %q", evt.Event)
	}
	decoded.SubmissionID = strings.TrimSpace(decoded.SubmissionID)
	decoded.UserID = strings.TrimSpace(decoded.UserID)
	return decoded, nil
}

func toastFor(role entities.Role, evt decodedEvent) toast {
	switch evt.Name {
	case events.SubmissionUpdated:
		switch {
		case role == entities.RoleClient:
			return toast{ports.ToastInfo, "Submission has been updated"}
		case role == entities.RoleCreator:
			return toast{ports.ToastInfo, "Your submission has been reviewed"}
		case evt.ByClient && evt.Action == "approve":
			return toast{ports.ToastSuccess, "Client approved the submission"}
		case evt.ByClient:
			return toast{ports.ToastInfo, "Client requested changes"}
		default:
			return toast{ports.ToastInfo, "Submission updated by another admin"}
		}
	case events.ContentSubmitted:
		if role == entities.RoleClient {
			return toast{ports.ToastInfo, "Submission has been updated"}
		}
		switch {
		case evt.HasPhotos:
			return toast{ports.ToastInfo, "New photos submitted"}
		case evt.HasRawFootage:
			return toast{ports.ToastInfo, "New raw footage submitted"}
		default:
			return toast{ports.ToastInfo, "New content submitted"}
		}
	case events.PostingUpdated:
		return toast{ports.ToastInfo, "Posting link updated"}
	case events.ContentProcessed:
		if evt.HasRawFootage {
			return toast{ports.ToastSuccess, "Raw footage processing complete"}
		}
		return toast{ports.ToastSuccess, "Content processing complete"}
	default:
		return toast{ports.ToastInfo, "Submission has been updated"}
	}
}

// SystemScheduler runs timers on the wall clock.
type SystemScheduler struct{}

func (SystemScheduler) AfterFunc(d time.Duration, f func()) ports.Timer {
	return time.AfterFunc(d, f)
}
