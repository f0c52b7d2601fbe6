package memory

import (
	"context"
	"sync"

	"github.com/aretw0/semtoken/pkg/domain"
)

type entry struct {
	blob []byte
	info domain.DraftInfo
}

// Store implements ports.DraftStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]entry
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]entry),
	}
}

// Save keeps a private copy of the blob.
func (s *Store) Save(ctx context.Context, id string, blob []byte, info domain.DraftInfo) error {
	info.ID = id
	copied := append([]byte(nil), blob...)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[id] = entry{blob: copied, info: info}
	return nil
}

// Load returns a copy so callers can't mutate the stored blob.
func (s *Store) Load(ctx context.Context, id string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[id]
	if !ok {
		return nil, domain.ErrDraftNotFound
	}
	return append([]byte(nil), e.blob...), nil
}

// Delete removes the draft.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns stored drafts, most recently updated first.
func (s *Store) List(ctx context.Context) ([]domain.DraftInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	drafts := make([]domain.DraftInfo, 0, len(s.data))
	for _, e := range s.data {
		drafts = append(drafts, e.info)
	}
	domain.SortDrafts(drafts)
	return drafts, nil
}
