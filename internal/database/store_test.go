package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusbuzz/campusbuzz-api/internal/entity"
)

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.Load(ctx, "missing")
	assert.ErrorIs(t, err, entity.ErrKeyNotFound)

	require.NoError(t, store.Save(ctx, "events", []byte(`[]`)))

	data, err := store.Load(ctx, "events")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), data)

	// loaded bytes are a copy, mutating them must not corrupt the slot
	data[0] = 'X'
	data, err = store.Load(ctx, "events")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), data)

	require.NoError(t, store.Delete(ctx, "events"))
	_, err = store.Load(ctx, "events")
	assert.ErrorIs(t, err, entity.ErrKeyNotFound)
}

func TestFileStore(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewFileStore(dir)
	require.NoError(t, err)

	_, err = store.Load(ctx, "missing")
	assert.ErrorIs(t, err, entity.ErrKeyNotFound)

	require.NoError(t, store.Save(ctx, "user", []byte(`{"id":"1"}`)))

	data, err := store.Load(ctx, "user")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"id":"1"}`), data)

	// a second instance over the same directory sees the data
	again, err := NewFileStore(dir)
	require.NoError(t, err)
	data, err = again.Load(ctx, "user")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"id":"1"}`), data)

	require.NoError(t, store.Delete(ctx, "user"))
	_, err = store.Load(ctx, "user")
	assert.ErrorIs(t, err, entity.ErrKeyNotFound)

	// deleting an absent key is a no-op
	assert.NoError(t, store.Delete(ctx, "user"))
}

func TestFileStoreOverwrite(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "events", []byte(`["a"]`)))
	require.NoError(t, store.Save(ctx, "events", []byte(`["a","b"]`)))

	data, err := store.Load(ctx, "events")
	require.NoError(t, err)
	assert.Equal(t, []byte(`["a","b"]`), data)
}
