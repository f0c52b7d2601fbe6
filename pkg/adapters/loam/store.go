package loam

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aretw0/loam"
	"github.com/aretw0/semtoken/pkg/domain"
)

// DefaultCollection is the folder drafts are written to inside the repository.
const DefaultCollection = "drafts"

// Store implements ports.DraftStore on a Loam document repository.
// Each draft is a document under the collection folder whose content is the blob.
type Store struct {
	Repo       *loam.TypedRepository[DraftMetadata]
	collection string
}

// Option configures a Store.
type Option func(*Store)

// WithCollection changes the folder drafts live in.
func WithCollection(name string) Option {
	return func(s *Store) {
		s.collection = strings.Trim(name, "/")
	}
}

// New creates a new Loam draft store.
func New(repo *loam.TypedRepository[DraftMetadata], opts ...Option) *Store {
	s := &Store{Repo: repo, collection: DefaultCollection}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open initializes (or opens) a Loam repository at dir and wraps it.
func Open(dir string, opts ...Option) (*Store, error) {
	repo, err := loam.Init(dir, loam.WithVersioning(false))
	if err != nil {
		return nil, fmt.Errorf("loam init failed for %s: %w", dir, err)
	}
	return New(loam.NewTypedRepository[DraftMetadata](repo), opts...), nil
}

// Loam treats whatever follows the last dot of a document ID as the file
// extension, so dots in draft IDs are escaped (and "%" with them, to keep the
// mapping reversible).
var (
	dotEscaper   = strings.NewReplacer("%", "%25", ".", "%2E")
	dotUnescaper = strings.NewReplacer("%2E", ".", "%25", "%")
)

func (s *Store) docID(id string) string {
	id = dotEscaper.Replace(id)
	if s.collection == "" {
		return id
	}
	return s.collection + "/" + id
}

// draftID maps a repository document ID back to a draft ID.
// ok is false for documents outside the collection.
func (s *Store) draftID(docID string) (string, bool) {
	if s.collection != "" {
		rest, found := strings.CutPrefix(docID, s.collection+"/")
		if !found {
			return "", false
		}
		docID = rest
	}
	if strings.Contains(docID, "/") {
		return "", false
	}
	return dotUnescaper.Replace(docID), true
}

// Save writes the draft document.
func (s *Store) Save(ctx context.Context, id string, blob []byte, info domain.DraftInfo) error {
	updated := info.UpdatedAt
	if updated.IsZero() {
		updated = time.Now()
	}
	err := s.Repo.Save(ctx, &loam.DocumentModel[DraftMetadata]{
		ID:      s.docID(id),
		Content: string(blob),
		Data: DraftMetadata{
			Kind:      DraftKind,
			Title:     info.DisplayName,
			UpdatedAt: updated.UTC().Format(time.RFC3339Nano),
		},
	})
	if err != nil {
		return fmt.Errorf("loam save failed for %s: %w", id, err)
	}
	return nil
}

// Load returns the document content.
func (s *Store) Load(ctx context.Context, id string) ([]byte, error) {
	doc, err := s.Repo.Get(ctx, s.docID(id))
	if err != nil {
		if !s.exists(ctx, id) {
			return nil, domain.ErrDraftNotFound
		}
		return nil, fmt.Errorf("loam get failed for %s: %w", id, err)
	}
	if doc.Data.Kind != DraftKind {
		return nil, domain.ErrDraftNotFound
	}
	return []byte(strings.TrimSpace(doc.Content)), nil
}

// Delete removes the draft document. Missing drafts are ignored.
func (s *Store) Delete(ctx context.Context, id string) error {
	if !s.exists(ctx, id) {
		return nil
	}
	if err := s.Repo.Delete(ctx, s.docID(id)); err != nil {
		return fmt.Errorf("loam delete failed for %s: %w", id, err)
	}
	return nil
}

// List returns the drafts of the collection, most recently updated first.
func (s *Store) List(ctx context.Context) ([]domain.DraftInfo, error) {
	docs, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	drafts := make([]domain.DraftInfo, 0, len(docs))
	for _, doc := range docs {
		if doc.Data.Kind != DraftKind {
			continue
		}
		id, ok := s.draftID(doc.ID)
		if !ok {
			continue
		}
		info := domain.DraftInfo{ID: id, DisplayName: doc.Data.Title}
		if t, err := time.Parse(time.RFC3339Nano, doc.Data.UpdatedAt); err == nil {
			info.UpdatedAt = t
		}
		drafts = append(drafts, info)
	}

	domain.SortDrafts(drafts)
	return drafts, nil
}

func (s *Store) exists(ctx context.Context, id string) bool {
	drafts, err := s.List(ctx)
	if err != nil {
		return false
	}
	for _, d := range drafts {
		if d.ID == id {
			return true
		}
	}
	return false
}
