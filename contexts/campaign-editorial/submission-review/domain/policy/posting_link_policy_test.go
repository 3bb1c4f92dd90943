package policy

import (
	"testing"

	"reviewdesk/contexts/campaign-editorial/submission-review/domain/entities"
	domainerrors "reviewdesk/contexts/campaign-editorial/submission-review/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func linkedSubmission(status entities.SubmissionStatus, addedBy *entities.AdminRef) entities.Submission {
	return entities.Submission{
		ID:      "submission-1",
		Status:  status,
		Content: "https://www.instagram.com/reel/abc",
		Admin:   addedBy,
	}
}

func TestSuperadminRequiredForAdminAddedLink(t *testing.T) {
	submission := linkedSubmission(entities.SubmissionStatusClientApproved, &entities.AdminRef{ID: "admin-9", Role: entities.RoleAdmin})

	err := AuthorizePostingLinkReview(entities.Viewer{Role: entities.RoleAdmin}, submission, entities.CampaignTypeNormal, PostingLinkApprove)
	require.ErrorIs(t, err, domainerrors.ErrSuperadminRequired)

	err = AuthorizePostingLinkReview(entities.Viewer{Role: entities.RoleSuperadmin}, submission, entities.CampaignTypeNormal, PostingLinkApprove)
	require.NoError(t, err)

	err = AuthorizePostingLinkReview(entities.Viewer{Role: entities.RoleAdmin}, submission, entities.CampaignTypeNormal, PostingLinkReject)
	require.NoError(t, err)
}

func TestCreatorAddedLinkApprovableByAdmin(t *testing.T) {
	submission := linkedSubmission(entities.SubmissionStatusClientApproved, nil)
	require.NoError(t, AuthorizePostingLinkReview(entities.Viewer{Role: entities.RoleAdmin}, submission, entities.CampaignTypeNormal, PostingLinkApprove))
	require.ErrorIs(t,
		AuthorizePostingLinkReview(entities.Viewer{Role: entities.RoleClient}, submission, entities.CampaignTypeNormal, PostingLinkApprove),
		domainerrors.ErrActionNotPermitted,
	)
}

func TestPostedLinkIsNoLongerPending(t *testing.T) {
	submission := linkedSubmission(entities.SubmissionStatusPosted, nil)
	panel := BuildPostingLinkPanel(PostingLinkInput{
		Viewer:       entities.Viewer{Role: entities.RoleSuperadmin},
		Status:       submission.Status,
		Content:      submission.Content,
		CampaignType: entities.CampaignTypeNormal,
	})
	assert.True(t, panel.Visible)
	assert.False(t, panel.Pending)
	assert.False(t, panel.TakesOver)
	assert.False(t, panel.CanApprove)
	require.ErrorIs(t,
		AuthorizePostingLinkReview(entities.Viewer{Role: entities.RoleSuperadmin}, submission, entities.CampaignTypeNormal, PostingLinkApprove),
		domainerrors.ErrActionNotAvailable,
	)
}

func TestDisabledViewerCannotReviewLinks(t *testing.T) {
	viewer := entities.Viewer{Role: entities.RoleSuperadmin, AdminRole: "finance", AdminMode: "advanced"}
	err := AuthorizePostingLinkReview(viewer, linkedSubmission(entities.SubmissionStatusClientApproved, nil), entities.CampaignTypeNormal, PostingLinkApprove)
	require.ErrorIs(t, err, domainerrors.ErrActionNotPermitted)
}

func TestCanSubmitPostingLink(t *testing.T) {
	assert.True(t, CanSubmitPostingLink(entities.RoleCreator, entities.SubmissionStatusClientApproved, entities.CampaignTypeNormal, false))
	assert.True(t, CanSubmitPostingLink(entities.RoleAdmin, entities.SubmissionStatusApproved, entities.CampaignTypeNormal, false))
	assert.False(t, CanSubmitPostingLink(entities.RoleClient, entities.SubmissionStatusClientApproved, entities.CampaignTypeNormal, false))
	assert.False(t, CanSubmitPostingLink(entities.RoleCreator, entities.SubmissionStatusPendingReview, entities.CampaignTypeNormal, false))
	assert.True(t, CanSubmitPostingLink(entities.RoleCreator, entities.SubmissionStatusPendingReview, entities.CampaignTypeNormal, true))
	assert.False(t, CanSubmitPostingLink(entities.RoleCreator, entities.SubmissionStatusClientApproved, entities.CampaignTypeUGC, false))
}

func TestPitchPolicy(t *testing.T) {
	admin := entities.Viewer{Role: entities.RoleAdmin}
	client := entities.Viewer{Role: entities.RoleClient}

	assert.True(t, IsPitchActionAllowed(admin, entities.PitchStatusPendingReview, PitchMaybe))
	assert.False(t, IsPitchActionAllowed(admin, entities.PitchStatusMaybe, PitchMaybe))
	assert.True(t, IsPitchActionAllowed(client, entities.PitchStatusSentToClient, PitchApprove))
	assert.False(t, IsPitchActionAllowed(client, entities.PitchStatusPendingReview, PitchApprove))
	assert.Empty(t, PitchActions(admin, entities.PitchStatusAgreementSubmitted))

	assert.Equal(t, "v3", PitchEndpointVersion(entities.Campaign{SubmissionVersion: "v4"}))
	assert.Equal(t, "v2", PitchEndpointVersion(entities.Campaign{}))
}
