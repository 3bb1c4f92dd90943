package entities

import (
	"strings"
	"time"
)

type FeedbackType string

const (
	FeedbackTypeRequest  FeedbackType = "REQUEST"
	FeedbackTypeComment  FeedbackType = "COMMENT"
	FeedbackTypeApproval FeedbackType = "APPROVAL"
)

type FeedbackAuthor struct {
	ID   string
	Name string
	Role Role
}

type FeedbackEntry struct {
	ID            string
	Type          FeedbackType
	Content       string
	Reasons       []string
	Admin         *FeedbackAuthor
	SentToCreator bool
	CreatedAt     time.Time
}

// AuthorRole is RoleUnknown when the entry carries no author.
func (f FeedbackEntry) AuthorRole() Role {
	if f.Admin == nil {
		return RoleUnknown
	}
	return f.Admin.Role
}

// Valid reports whether the entry may be sent to the API. Requests and
// comments need text or at least one reason.
func (f FeedbackEntry) Valid() bool {
	switch f.Type {
	case FeedbackTypeRequest, FeedbackTypeComment:
		return strings.TrimSpace(f.Content) != "" || len(f.Reasons) > 0
	case FeedbackTypeApproval:
		return true
	default:
		return false
	}
}

// ChangeReasons are the predefined reasons offered in the change request form.
var ChangeReasons = []string{
	"Poor Lighting",
	"Audio Not Clear",
	"Illegible Text",
	"Background Music",
	"Missing Brand Elements",
	"Incorrect Script",
	"Wrong Format",
	"Video Too Long",
	"Video Too Short",
	"Product Not Shown",
	"Others",
}

func IsChangeReason(value string) bool {
	for _, reason := range ChangeReasons {
		if reason == value {
			return true
		}
	}
	return false
}
