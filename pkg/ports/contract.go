package ports

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/aretw0/semtoken/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunDraftStoreContract runs a suite of tests to verify that a DraftStore implementation
// adheres to the defined interface contract.
func RunDraftStoreContract(t *testing.T, store DraftStore) {
	ctx := context.Background()
	draftID := "contract-draft-" + time.Now().Format("20060102150405")

	info := func(id string, at time.Time) domain.DraftInfo {
		return domain.DraftInfo{ID: id, DisplayName: "Draft " + id, UpdatedAt: at}
	}

	t.Run("Save and Load", func(t *testing.T) {
		blob, err := domain.EncodeDraft(domain.NewDescriptor())
		require.NoError(t, err)

		err = store.Save(ctx, draftID, blob, info(draftID, time.Now()))
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, draftID)
		require.NoError(t, err, "Load should not return error")
		assert.JSONEq(t, string(blob), string(loaded))

		decoded, err := domain.DecodeDraft(loaded)
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultTokenName, decoded.Name)
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		err := store.Save(ctx, draftID, []byte(`{"tokenName":"v1"}`), info(draftID, time.Now()))
		require.NoError(t, err)
		err = store.Save(ctx, draftID, []byte(`{"tokenName":"v2"}`), info(draftID, time.Now()))
		require.NoError(t, err)

		loaded, err := store.Load(ctx, draftID)
		require.NoError(t, err)
		assert.JSONEq(t, `{"tokenName":"v2"}`, string(loaded))
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+draftID)
		assert.ErrorIs(t, err, domain.ErrDraftNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, draftID, []byte(`{}`), info(draftID, time.Now()))
		require.NoError(t, err)

		err = store.Delete(ctx, draftID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, draftID)
		assert.ErrorIs(t, err, domain.ErrDraftNotFound, "Load after Delete should return ErrDraftNotFound")

		assert.NoError(t, store.Delete(ctx, draftID), "Delete should be idempotent")
	})

	t.Run("List", func(t *testing.T) {
		id1 := draftID + "-1"
		id2 := draftID + "-2"
		older := time.Now().Add(-time.Hour).UTC().Truncate(time.Second)
		newer := time.Now().UTC().Truncate(time.Second)
		require.NoError(t, store.Save(ctx, id1, []byte(`{}`), info(id1, older)))
		require.NoError(t, store.Save(ctx, id2, []byte(`{}`), info(id2, newer)))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		drafts, err := store.List(ctx)
		require.NoError(t, err)

		pos := make(map[string]int)
		for i, d := range drafts {
			pos[d.ID] = i
		}
		require.Contains(t, pos, id1)
		require.Contains(t, pos, id2)
		assert.Less(t, pos[id2], pos[id1], "most recently updated first")
		assert.Equal(t, "Draft "+id2, drafts[pos[id2]].DisplayName)
		assert.True(t, newer.Equal(drafts[pos[id2]].UpdatedAt))
	})

	t.Run("IDs Derived From Token Names", func(t *testing.T) {
		names := []string{"Token v1.2", "ACME.io", "100%20", "a/b", "tmp-coin", ".hidden", "Café Token"}
		for _, name := range names {
			id, err := domain.DraftID(name)
			require.NoError(t, err)
			blob := []byte(`{"tokenName":` + strconv.Quote(name) + `}`)
			require.NoError(t, store.Save(ctx, id, blob, info(id, time.Now())), name)

			loaded, err := store.Load(ctx, id)
			require.NoError(t, err, name)
			assert.JSONEq(t, string(blob), string(loaded), name)
		}

		drafts, err := store.List(ctx)
		require.NoError(t, err)
		listed := make(map[string]bool)
		for _, d := range drafts {
			listed[d.ID] = true
		}
		for _, name := range names {
			id, _ := domain.DraftID(name)
			assert.True(t, listed[id], "%s should be listed as %s", name, id)

			require.NoError(t, store.Delete(ctx, id), name)
			_, err := store.Load(ctx, id)
			assert.ErrorIs(t, err, domain.ErrDraftNotFound, name)
		}
	})
}
