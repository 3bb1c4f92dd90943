// Package viewmodel derives the per-submission flags every view reads, so
// they are computed the same way everywhere.
package viewmodel

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"reviewdesk/contexts/campaign-editorial/submission-review/domain/entities"
	"reviewdesk/contexts/campaign-editorial/submission-review/domain/policy"

	lru "github.com/hashicorp/golang-lru/v2"
)

type ViewModel struct {
	PendingReview         bool
	IsClientFeedback      bool
	ClientVisible         bool
	HasPostingLink        bool
	HasPendingPostingLink bool
	IsApproved            bool
}

func Derive(submission entities.Submission, role entities.Role) ViewModel {
	hasLink := submission.HasPostingLink()
	return ViewModel{
		PendingReview:         submission.Status == entities.SubmissionStatusPendingReview,
		IsClientFeedback:      submission.Status == entities.SubmissionStatusClientFeedback,
		ClientVisible:         policy.ClientVisible(role, submission.Status),
		HasPostingLink:        hasLink,
		HasPendingPostingLink: hasLink && submission.Status != entities.SubmissionStatusPosted,
		IsApproved:            isApproved(submission.Status),
	}
}

func isApproved(status entities.SubmissionStatus) bool {
	switch status {
	case entities.SubmissionStatusApproved,
		entities.SubmissionStatusClientApproved,
		entities.SubmissionStatusPosted:
		return true
	default:
		return false
	}
}

const defaultMemoSize = 512

// Memo caches derived view models. Entries are keyed on everything Derive
// reads, so a changed status, link, media set or role misses the cache.
type Memo struct {
	cache *lru.Cache[string, ViewModel]
}

func NewMemo(size int) (*Memo, error) {
	if size <= 0 {
		size = defaultMemoSize
	}
	cache, err := lru.New[string, ViewModel](size)
	if err != nil {
		return nil, err
	}
	return &Memo{cache: cache}, nil
}

func (m *Memo) Get(submission entities.Submission, role entities.Role) ViewModel {
	key := memoKey(submission, role)
	if cached, ok := m.cache.Get(key); ok {
		return cached
	}
	derived := Derive(submission, role)
	m.cache.Add(key, derived)
	return derived
}

func (m *Memo) Len() int {
	return m.cache.Len()
}

func memoKey(submission entities.Submission, role entities.Role) string {
	return strings.Join([]string{
		submission.ID,
		string(submission.Status),
		strings.TrimSpace(submission.Content),
		string(role),
		mediaFingerprint(submission),
	}, "|")
}

func mediaFingerprint(submission entities.Submission) string {
	hash := sha256.New()
	for _, kind := range []entities.MediaKind{entities.MediaKindVideo, entities.MediaKindPhotos, entities.MediaKindRawFootage} {
		hash.Write([]byte(kind))
		for _, item := range submission.Media(kind) {
			hash.Write([]byte(item.ID))
			hash.Write([]byte{0})
			hash.Write([]byte(item.URL))
			hash.Write([]byte{0})
		}
	}
	return hex.EncodeToString(hash.Sum(nil))
}
