// internal/storage/file_store_test.go
package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testDoc struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func newTestStore(t *testing.T) *FileStore {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestCreateAssignsServerFields(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.Create(ctx, "docs", &testDoc{Name: "alpha"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	// The document lands on disk under the collection directory.
	_, err = os.Stat(filepath.Join(store.BaseDir, "docs", id+".json"))
	require.NoError(t, err)

	var got testDoc
	require.NoError(t, store.Get(ctx, "docs", id, &got))
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "alpha", got.Name)
	assert.NotEmpty(t, got.CreatedAt)
	assert.Equal(t, got.CreatedAt, got.UpdatedAt)
}

func TestCreateAssignsUniqueIDs(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.Create(ctx, "docs", &testDoc{Name: "one"})
	require.NoError(t, err)
	second, err := store.Create(ctx, "docs", &testDoc{Name: "two"})
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestCreateRejectsNonObjectDocument(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Create(context.Background(), "docs", "just a string")
	require.Error(t, err)
}

func TestCreateHonorsCancelledContext(t *testing.T) {
	store := newTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Create(ctx, "docs", &testDoc{Name: "late"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGetMissingDocument(t *testing.T) {
	store := newTestStore(t)

	var got testDoc
	err := store.Get(context.Background(), "docs", "no-such-id", &got)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// An unknown collection is an empty result, not an error.
	ids, err := store.List(ctx, "empty")
	require.NoError(t, err)
	assert.Empty(t, ids)

	first, err := store.Create(ctx, "docs", &testDoc{Name: "one"})
	require.NoError(t, err)
	second, err := store.Create(ctx, "docs", &testDoc{Name: "two"})
	require.NoError(t, err)

	ids, err = store.List(ctx, "docs")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{first, second}, ids)
}

func TestListIgnoresNonJSONEntries(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.Create(ctx, "docs", &testDoc{Name: "one"})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(store.BaseDir, "docs", "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(store.BaseDir, "docs", "subdir"), 0755))

	ids, err := store.List(ctx, "docs")
	require.NoError(t, err)
	assert.Equal(t, []string{id}, ids)
}
