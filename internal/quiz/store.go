package quiz

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// AttemptStore persists completed quiz attempts. In-progress attempts live
// only in the session; they reach the store when the caller completes them.
type AttemptStore interface {
	SaveAttempt(ctx context.Context, attempt Attempt) error
	GetAttempt(ctx context.Context, id string) (*Attempt, error)
	ListAttempts(ctx context.Context, learnerID string) ([]Attempt, error)
}

// MemoryStore is an in-memory implementation of AttemptStore.
type MemoryStore struct {
	attempts map[string]Attempt
	mu       sync.RWMutex
}

// NewMemoryStore creates a new in-memory attempt store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		attempts: make(map[string]Attempt),
	}
}

func (s *MemoryStore) SaveAttempt(_ context.Context, attempt Attempt) error {
	if attempt.ID == "" {
		return fmt.Errorf("attempt id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	attempt.Responses = append([]QuestionResponse(nil), attempt.Responses...)
	s.attempts[attempt.ID] = attempt
	return nil
}

func (s *MemoryStore) GetAttempt(_ context.Context, id string) (*Attempt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	attempt, ok := s.attempts[id]
	if !ok {
		return nil, fmt.Errorf("attempt not found: %s", id)
	}
	attempt.Responses = append([]QuestionResponse(nil), attempt.Responses...)
	return &attempt, nil
}

func (s *MemoryStore) ListAttempts(_ context.Context, learnerID string) ([]Attempt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var attempts []Attempt
	for _, a := range s.attempts {
		if a.LearnerID == learnerID {
			a.Responses = append([]QuestionResponse(nil), a.Responses...)
			attempts = append(attempts, a)
		}
	}
	sort.Slice(attempts, func(i, j int) bool {
		return attempts[i].StartedAt.Before(attempts[j].StartedAt)
	})
	return attempts, nil
}
