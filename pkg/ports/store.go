package ports

import (
	"context"

	"github.com/aretw0/semtoken/pkg/domain"
)

// DraftStore persists draft blobs keyed by draft ID.
// Blobs are opaque to the store; domain.EncodeDraft and domain.DecodeDraft own the format.
type DraftStore interface {
	// Save writes the blob for id, replacing any previous one.
	Save(ctx context.Context, id string, blob []byte, info domain.DraftInfo) error

	// Load retrieves the blob for id.
	// Returns domain.ErrDraftNotFound if the draft does not exist.
	Load(ctx context.Context, id string) ([]byte, error)

	// List returns the stored drafts, most recently updated first.
	List(ctx context.Context) ([]domain.DraftInfo, error)

	// Delete removes the draft. Deleting a missing draft is not an error.
	Delete(ctx context.Context, id string) error
}
