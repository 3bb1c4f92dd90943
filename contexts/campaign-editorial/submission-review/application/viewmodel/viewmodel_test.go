package viewmodel

import (
	"testing"

	"reviewdesk/contexts/campaign-editorial/submission-review/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveFlags(t *testing.T) {
	submission := entities.Submission{
		ID:      "submission-1",
		Status:  entities.SubmissionStatusClientApproved,
		Content: "https://www.tiktok.com/@creator/video/1",
	}

	vm := Derive(submission, entities.RoleClient)
	assert.Equal(t, ViewModel{
		ClientVisible:         true,
		HasPostingLink:        true,
		HasPendingPostingLink: true,
		IsApproved:            true,
	}, vm)

	submission.Status = entities.SubmissionStatusPendingReview
	submission.Content = ""
	vm = Derive(submission, entities.RoleClient)
	assert.True(t, vm.PendingReview)
	assert.False(t, vm.ClientVisible)
	assert.False(t, vm.HasPostingLink)
}

func TestPostedLinkIsNotPending(t *testing.T) {
	vm := Derive(entities.Submission{Status: entities.SubmissionStatusPosted, Content: "https://x.com/a/status/1"}, entities.RoleAdmin)
	assert.True(t, vm.HasPostingLink)
	assert.False(t, vm.HasPendingPostingLink)
}

func TestMemoRecomputesOnlyOnRelevantChange(t *testing.T) {
	memo, err := NewMemo(8)
	require.NoError(t, err)

	submission := entities.Submission{
		ID:     "submission-1",
		Status: entities.SubmissionStatusPendingReview,
		Video:  []entities.MediaItem{{ID: "v-1", URL: "https://cdn.example.com/v-1.mp4"}},
	}
	first := memo.Get(submission, entities.RoleAdmin)
	submission.Caption = "caption edits do not matter"
	memo.Get(submission, entities.RoleAdmin)
	assert.Equal(t, 1, memo.Len())

	submission.Status = entities.SubmissionStatusClientFeedback
	second := memo.Get(submission, entities.RoleAdmin)
	assert.Equal(t, 2, memo.Len())
	assert.NotEqual(t, first, second)

	submission.Video = append(submission.Video, entities.MediaItem{ID: "v-2"})
	memo.Get(submission, entities.RoleAdmin)
	memo.Get(submission, entities.RoleClient)
	assert.Equal(t, 4, memo.Len())
}
