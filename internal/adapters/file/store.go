package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/semtoken/pkg/domain"
)

// ErrInvalidID is returned for draft IDs that cannot be used as a file name.
var ErrInvalidID = errors.New("invalid draft id")

// envelope is the on-disk format: listing info and the blob in one file.
// JSON blobs are embedded as-is; anything else is stored base64 encoded.
type envelope struct {
	ID          string          `json:"id"`
	DisplayName string          `json:"displayName"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	Draft       json.RawMessage `json:"draft,omitempty"`
	Data        []byte          `json:"data,omitempty"`
}

// Store implements ports.DraftStore using the local filesystem.
// It stores drafts as JSON files in a configured directory.
type Store struct {
	BasePath string
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".semtoken/drafts".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".semtoken", "drafts")
	}
	return &Store{BasePath: basePath}
}

func (s *Store) path(id string) (string, error) {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return filepath.Join(s.BasePath, id+".json"), nil
}

// Save persists the draft atomically.
// It writes to a temporary file first, syncs via fsync, and then renames it to the destination.
func (s *Store) Save(ctx context.Context, id string, blob []byte, info domain.DraftInfo) error {
	destPath, err := s.path(id)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure draft directory: %w", err)
	}

	env := envelope{ID: id, DisplayName: info.DisplayName, UpdatedAt: info.UpdatedAt}
	if json.Valid(blob) {
		env.Draft = blob
	} else {
		env.Data = blob
	}
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}

	// Same directory keeps the rename on one filesystem. The ".tmp" suffix keeps
	// temp files out of List, which only reads ".json" files.
	tmpFile, err := os.CreateTemp(s.BasePath, "draft-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}

	// Windows cannot rename an open file.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// On Windows, os.Rename fails if dest exists.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing draft file for overwrite: %w", err)
		}
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file to draft: %w", err)
	}

	return nil
}

func (s *Store) read(path string) (envelope, error) {
	var env envelope
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return env, domain.ErrDraftNotFound
		}
		return env, fmt.Errorf("failed to read draft file: %w", err)
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return env, fmt.Errorf("failed to unmarshal draft file: %w", err)
	}
	return env, nil
}

// Load retrieves the draft blob.
func (s *Store) Load(ctx context.Context, id string) ([]byte, error) {
	path, err := s.path(id)
	if err != nil {
		return nil, err
	}
	env, err := s.read(path)
	if err != nil {
		return nil, err
	}
	if env.Draft != nil {
		return env.Draft, nil
	}
	return env.Data, nil
}

// Delete removes the draft file.
func (s *Store) Delete(ctx context.Context, id string) error {
	path, err := s.path(id)
	if err != nil {
		return err
	}

	err = os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete draft file: %w", err)
	}

	return nil
}

// List returns all stored drafts, most recently updated first.
func (s *Store) List(ctx context.Context) ([]domain.DraftInfo, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.DraftInfo{}, nil
		}
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}

	drafts := []domain.DraftInfo{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".json" {
			continue
		}
		env, err := s.read(filepath.Join(s.BasePath, name))
		if err != nil {
			continue
		}
		id := strings.TrimSuffix(name, ".json")
		drafts = append(drafts, domain.DraftInfo{ID: id, DisplayName: env.DisplayName, UpdatedAt: env.UpdatedAt})
	}

	domain.SortDrafts(drafts)
	return drafts, nil
}
