package tokenscore

import (
	"context"
	"sync"
	"time"
)

// MemoryStore implements Store with in-process storage. Used in tests and
// single-node development; the mutex provides the per-(user, token) atomicity
// the contract requires.
type MemoryStore struct {
	mu     sync.Mutex
	scores map[string]map[string]*Score // userID -> token -> score
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		scores: make(map[string]map[string]*Score),
	}
}

func (s *MemoryStore) Scores(_ context.Context, userID string) ([]Score, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.scores[userID]
	out := make([]Score, 0, len(user))

	for _, sc := range user {
		out = append(out, *sc)
	}

	return out, nil
}

func (s *MemoryStore) Apply(_ context.Context, userID, token string, reward, multiplier float64) (Score, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.scores[userID]
	if user == nil {
		user = make(map[string]*Score)
		s.scores[userID] = user
	}

	sc, exists := user[token]
	if !exists {
		sc = &Score{
			UserID: userID,
			Token:  token,
			Score:  Baseline,
		}
		user[token] = sc
	}

	sc.Score = blend(sc.Score, reward, multiplier)
	sc.ObservationCount++
	sc.LastUpdatedAt = time.Now()

	return *sc, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
