package middleware_test

import (
	"context"

	"github.com/aretw0/semtoken/pkg/domain"
	"github.com/aretw0/semtoken/pkg/ports"
)

// MockStore is a simple map-based store for testing middleware.
type MockStore struct {
	data map[string][]byte
}

func NewMockStore() *MockStore {
	return &MockStore{
		data: make(map[string][]byte),
	}
}

func (s *MockStore) Save(ctx context.Context, id string, blob []byte, info domain.DraftInfo) error {
	s.data[id] = blob
	return nil
}

func (s *MockStore) Load(ctx context.Context, id string) ([]byte, error) {
	blob, ok := s.data[id]
	if !ok {
		return nil, domain.ErrDraftNotFound
	}
	return blob, nil
}

func (s *MockStore) Delete(ctx context.Context, id string) error {
	delete(s.data, id)
	return nil
}

func (s *MockStore) List(ctx context.Context) ([]domain.DraftInfo, error) {
	drafts := make([]domain.DraftInfo, 0, len(s.data))
	for k := range s.data {
		drafts = append(drafts, domain.DraftInfo{ID: k})
	}
	return drafts, nil
}

var _ ports.DraftStore = (*MockStore)(nil)
