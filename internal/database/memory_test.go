package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	t.Run("missing key", func(t *testing.T) {
		v, ok, err := store.Get(ctx, "p1", "users")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, v)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "p1", "users", []byte(`[]`)))
		v, ok, err := store.Get(ctx, "p1", "users")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []byte(`[]`), v)
	})

	t.Run("profiles are isolated", func(t *testing.T) {
		_, ok, err := store.Get(ctx, "p2", "users")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("returned value is a copy", func(t *testing.T) {
		v, _, _ := store.Get(ctx, "p1", "users")
		v[0] = 'x'
		again, _, _ := store.Get(ctx, "p1", "users")
		assert.Equal(t, []byte(`[]`), again)
	})

	t.Run("remove is idempotent", func(t *testing.T) {
		require.NoError(t, store.Remove(ctx, "p1", "users"))
		require.NoError(t, store.Remove(ctx, "p1", "users"))
		_, ok, _ := store.Get(ctx, "p1", "users")
		assert.False(t, ok)
	})

	t.Run("clear drops only that profile", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "p1", "a", []byte("1")))
		require.NoError(t, store.Set(ctx, "p1", "b", []byte("2")))
		require.NoError(t, store.Set(ctx, "p2", "a", []byte("3")))

		require.NoError(t, store.Clear(ctx, "p1"))

		_, ok, _ := store.Get(ctx, "p1", "a")
		assert.False(t, ok)
		_, ok, _ = store.Get(ctx, "p1", "b")
		assert.False(t, ok)
		v, ok, _ := store.Get(ctx, "p2", "a")
		assert.True(t, ok)
		assert.Equal(t, []byte("3"), v)
	})
}
