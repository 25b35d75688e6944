package store

import (
	"context"
	"sort"
	"sync"

	"originform/internal/ingest/models"
	"originform/pkg/sentinel"
)

// InMemorySubmissionStore keeps submissions in a map. It intentionally favors
// clarity over performance; production traffic goes to Postgres.
type InMemorySubmissionStore struct {
	mu          sync.RWMutex
	submissions map[string]models.Submission
}

// NewInMemorySubmissionStore creates an empty in-memory store.
func NewInMemorySubmissionStore() *InMemorySubmissionStore {
	return &InMemorySubmissionStore{submissions: make(map[string]models.Submission)}
}

func (s *InMemorySubmissionStore) Save(_ context.Context, sub models.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.submissions[sub.ID]; exists {
		return sentinel.ErrConflict
	}
	s.submissions[sub.ID] = sub
	return nil
}

func (s *InMemorySubmissionStore) FindByID(_ context.Context, id string) (models.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sub, ok := s.submissions[id]; ok {
		return sub, nil
	}
	return models.Submission{}, sentinel.ErrNotFound
}

func (s *InMemorySubmissionStore) ListRecent(_ context.Context, limit int) ([]models.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Submission, 0, len(s.submissions))
	for _, sub := range s.submissions {
		out = append(out, sub)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ReceivedAt.After(out[j].ReceivedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
