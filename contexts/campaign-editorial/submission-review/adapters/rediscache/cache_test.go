package rediscache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"reviewdesk/contexts/campaign-editorial/submission-review/domain/entities"
	domainerrors "reviewdesk/contexts/campaign-editorial/submission-review/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryKV struct {
	mu     sync.Mutex
	values map[string][]byte
	ttls   map[string]time.Duration
}

func newMemoryKV() *memoryKV {
	return &memoryKV{values: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *memoryKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.values[key]
	if !ok {
		return nil, errMiss
	}
	return value, nil
}

func (m *memoryKV) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	m.ttls[key] = ttl
	return nil
}

type countingFetcher struct {
	calls  int
	status entities.SubmissionStatus
	err    error
}

func (f *countingFetcher) GetSubmission(_ context.Context, submissionID string) (entities.Submission, error) {
	f.calls++
	if f.err != nil {
		return entities.Submission{}, f.err
	}
	return entities.Submission{ID: submissionID, CampaignID: "campaign-1", Status: f.status}, nil
}

func TestGetFetchesOnceThenServesFromCache(t *testing.T) {
	kv := newMemoryKV()
	fetcher := &countingFetcher{status: entities.SubmissionStatusPendingReview}
	cache := New(kv, fetcher, time.Minute)

	first, err := cache.Get(context.Background(), "submission-1")
	require.NoError(t, err)
	second, err := cache.Get(context.Background(), "submission-1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, fetcher.calls)
	assert.Equal(t, time.Minute, kv.ttls["reviewdesk:submission:submission-1"])
}

func TestMutateStoresPlaceholderUntilRevalidate(t *testing.T) {
	fetcher := &countingFetcher{status: entities.SubmissionStatusPendingReview}
	cache := New(newMemoryKV(), fetcher, time.Minute)

	err := cache.Mutate(context.Background(), "submission-1", func(item entities.Submission) entities.Submission {
		item.Status = entities.SubmissionStatusSentToClient
		return item
	})
	require.NoError(t, err)

	item, err := cache.Get(context.Background(), "submission-1")
	require.NoError(t, err)
	assert.Equal(t, entities.SubmissionStatusSentToClient, item.Status)

	require.NoError(t, cache.Revalidate(context.Background(), "submission-1"))
	item, err = cache.Get(context.Background(), "submission-1")
	require.NoError(t, err)
	assert.Equal(t, entities.SubmissionStatusPendingReview, item.Status)
}

func TestCorruptEntryIsRefetched(t *testing.T) {
	kv := newMemoryKV()
	kv.values["reviewdesk:submission:submission-1"] = []byte("{broken")
	fetcher := &countingFetcher{status: entities.SubmissionStatusPosted}

	item, err := New(kv, fetcher, time.Minute).Get(context.Background(), "submission-1")
	require.NoError(t, err)
	assert.Equal(t, entities.SubmissionStatusPosted, item.Status)
	assert.Equal(t, 1, fetcher.calls)
}

func TestFetchErrorsPropagate(t *testing.T) {
	upstream := errors.New("upstream down")
	cache := New(newMemoryKV(), &countingFetcher{err: upstream}, time.Minute)

	_, err := cache.Get(context.Background(), "submission-1")
	require.ErrorIs(t, err, upstream)
	require.ErrorIs(t, cache.Revalidate(context.Background(), "submission-1"), upstream)
}

func TestMissWithoutFetcher(t *testing.T) {
	_, err := New(newMemoryKV(), nil, time.Minute).Get(context.Background(), "submission-1")
	require.ErrorIs(t, err, domainerrors.ErrSubmissionNotFound)
}
