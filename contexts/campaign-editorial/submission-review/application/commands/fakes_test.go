package commands

import (
	"context"
	"sync"

	"reviewdesk/contexts/campaign-editorial/submission-review/domain/entities"
	domainerrors "reviewdesk/contexts/campaign-editorial/submission-review/domain/errors"
	"reviewdesk/contexts/campaign-editorial/submission-review/ports"
)

type fakeAPI struct {
	mu sync.Mutex

	campaigns map[string]entities.Campaign
	pitches   map[string]entities.Pitch
	err       error
	block     chan struct{}

	adminCalls      []ports.AdminReviewRequest
	clientCalls     []ports.ClientReviewRequest
	linkCalls       []ports.PostingLinkRequest
	linkReviewCalls []ports.PostingLinkReviewRequest
	pitchCalls      []ports.PitchReviewRequest
	pitchVersions   []string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		campaigns: map[string]entities.Campaign{
			"campaign-1": {ID: "campaign-1", Type: entities.CampaignTypeNormal, SubmissionVersion: "v4"},
			"campaign-2": {ID: "campaign-2", Type: entities.CampaignTypeUGC, SubmissionVersion: "v3"},
		},
		pitches: map[string]entities.Pitch{},
	}
}

func (f *fakeAPI) networkCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.adminCalls) + len(f.clientCalls) + len(f.linkCalls) + len(f.linkReviewCalls) + len(f.pitchCalls)
}

func (f *fakeAPI) wait() error {
	if f.block != nil {
		<-f.block
	}
	return f.err
}

func (f *fakeAPI) GetSubmission(context.Context, string) (entities.Submission, error) {
	return entities.Submission{}, domainerrors.ErrSubmissionNotFound
}

func (f *fakeAPI) GetCampaign(_ context.Context, campaignID string) (entities.Campaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.campaigns[campaignID], nil
}

func (f *fakeAPI) GetPitch(_ context.Context, pitchID string) (entities.Pitch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	pitch, ok := f.pitches[pitchID]
	if !ok {
		return entities.Pitch{}, domainerrors.ErrSubmissionNotFound
	}
	return pitch, nil
}

func (f *fakeAPI) ApproveV4Submission(_ context.Context, req ports.AdminReviewRequest) error {
	f.mu.Lock()
	f.adminCalls = append(f.adminCalls, req)
	f.mu.Unlock()
	return f.wait()
}

func (f *fakeAPI) ClientReviewV4Submission(_ context.Context, req ports.ClientReviewRequest) error {
	f.mu.Lock()
	f.clientCalls = append(f.clientCalls, req)
	f.mu.Unlock()
	return f.wait()
}

func (f *fakeAPI) UpdatePostingLink(_ context.Context, req ports.PostingLinkRequest) error {
	f.mu.Lock()
	f.linkCalls = append(f.linkCalls, req)
	f.mu.Unlock()
	return f.wait()
}

func (f *fakeAPI) ReviewPostingLink(_ context.Context, req ports.PostingLinkReviewRequest) error {
	f.mu.Lock()
	f.linkReviewCalls = append(f.linkReviewCalls, req)
	f.mu.Unlock()
	return f.wait()
}

func (f *fakeAPI) ReviewPitch(_ context.Context, version string, req ports.PitchReviewRequest) error {
	f.mu.Lock()
	f.pitchCalls = append(f.pitchCalls, req)
	f.pitchVersions = append(f.pitchVersions, version)
	f.mu.Unlock()
	return f.wait()
}

type messageError struct {
	message string
}

func (e messageError) Error() string       { return "api failure" }
func (e messageError) UserMessage() string { return e.message }
