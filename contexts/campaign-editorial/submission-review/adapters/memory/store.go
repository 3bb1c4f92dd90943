package memory

import (
	"context"
	"strings"
	"sync"

	"reviewdesk/contexts/campaign-editorial/submission-review/domain/entities"
	domainerrors "reviewdesk/contexts/campaign-editorial/submission-review/domain/errors"
)

// Fetcher loads the authoritative copy of a submission.
type Fetcher interface {
	GetSubmission(ctx context.Context, submissionID string) (entities.Submission, error)
}

// Store is the in-process submission cache. Without a fetcher it serves its
// seed and revalidation only records the request.
type Store struct {
	mu sync.RWMutex

	fetcher       Fetcher
	submissions   map[string]entities.Submission
	revalidations map[string]int
}

func NewStore(seed []entities.Submission, fetcher Fetcher) *Store {
	submissions := make(map[string]entities.Submission, len(seed))
	for _, item := range seed {
		submissions[item.ID] = item
	}
	return &Store{
		fetcher:       fetcher,
		submissions:   submissions,
		revalidations: make(map[string]int),
	}
}

func (s *Store) Put(submission entities.Submission) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submissions[submission.ID] = submission
}

func (s *Store) Get(ctx context.Context, submissionID string) (entities.Submission, error) {
	submissionID = strings.TrimSpace(submissionID)
	s.mu.RLock()
	item, exists := s.submissions[submissionID]
	s.mu.RUnlock()
	if exists {
		return item, nil
	}
	if s.fetcher == nil {
		return entities.Submission{}, domainerrors.ErrSubmissionNotFound
	}
	return s.load(ctx, submissionID)
}

func (s *Store) Mutate(ctx context.Context, submissionID string, update func(entities.Submission) entities.Submission) error {
	current, err := s.Get(ctx, submissionID)
	if err != nil {
		return err
	}
	next := update(current)
	next.ID = current.ID

	s.mu.Lock()
	defer s.mu.Unlock()
	s.submissions[current.ID] = next
	return nil
}

func (s *Store) Revalidate(ctx context.Context, submissionID string) error {
	submissionID = strings.TrimSpace(submissionID)
	s.mu.Lock()
	s.revalidations[submissionID]++
	s.mu.Unlock()

	if s.fetcher == nil {
		return nil
	}
	_, err := s.load(ctx, submissionID)
	return err
}

// Revalidations reports how many forced refreshes a submission received.
func (s *Store) Revalidations(submissionID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revalidations[submissionID]
}

func (s *Store) load(ctx context.Context, submissionID string) (entities.Submission, error) {
	item, err := s.fetcher.GetSubmission(ctx, submissionID)
	if err != nil {
		return entities.Submission{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submissions[submissionID] = item
	return item, nil
}
