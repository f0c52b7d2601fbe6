package ports_test

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/aretw0/semtoken/pkg/domain"
	"github.com/aretw0/semtoken/pkg/ports"
	"github.com/stretchr/testify/assert"
)

// mapStore is a minimal DraftStore used to check the contract suite itself.
type mapStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
	infos map[string]domain.DraftInfo
}

func newMapStore() *mapStore {
	return &mapStore{blobs: map[string][]byte{}, infos: map[string]domain.DraftInfo{}}
}

func (m *mapStore) Save(_ context.Context, id string, blob []byte, info domain.DraftInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[id] = append([]byte(nil), blob...)
	m.infos[id] = info
	return nil
}

func (m *mapStore) Load(_ context.Context, id string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	blob, ok := m.blobs[id]
	if !ok {
		return nil, domain.ErrDraftNotFound
	}
	return blob, nil
}

func (m *mapStore) List(_ context.Context) ([]domain.DraftInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.DraftInfo, 0, len(m.infos))
	for _, info := range m.infos {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (m *mapStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, id)
	delete(m.infos, id)
	return nil
}

func TestDraftStore_Contract(t *testing.T) {
	ports.RunDraftStoreContract(t, newMapStore())
}

func TestPublisherFunc(t *testing.T) {
	var got string
	p := ports.PublisherFunc(func(_ context.Context, text string) (string, error) {
		got = text
		return "addr", nil
	})

	addr, err := p.Publish(context.Background(), "<> a <x> .\n")
	assert.NoError(t, err)
	assert.Equal(t, "addr", addr)
	assert.Equal(t, "<> a <x> .\n", got)
}
