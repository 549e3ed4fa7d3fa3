// Package kvtest tiene la suite de conformidad compartida por los adapters de kv.Store.
package kvtest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"petstore-client/internal/ports/kv"
)

// Run ejecuta la suite contra store. Las keys usan prefix para no chocar con
// datos existentes en stores compartidos (redis/postgres).
func Run(t *testing.T, store kv.Store, prefix string) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key is not an error", func(t *testing.T) {
		v, ok, err := store.Get(ctx, prefix+"missing")
		require.NoError(t, err)
		require.False(t, ok)
		require.Empty(t, v)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, prefix+"cart", `[{"itemId":"1","quantity":2}]`))

		v, ok, err := store.Get(ctx, prefix+"cart")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, `[{"itemId":"1","quantity":2}]`, v)
	})

	t.Run("set overwrites", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, prefix+"token", "a"))
		require.NoError(t, store.Set(ctx, prefix+"token", "b"))

		v, ok, err := store.Get(ctx, prefix+"token")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "b", v)
	})

	t.Run("empty value is present", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, prefix+"empty", ""))

		_, ok, err := store.Get(ctx, prefix+"empty")
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("remove", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, prefix+"gone", "x"))
		require.NoError(t, store.Remove(ctx, prefix+"gone"))
		require.NoError(t, store.Remove(ctx, prefix+"gone"))

		_, ok, err := store.Get(ctx, prefix+"gone")
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("empty key rejected", func(t *testing.T) {
		_, _, err := store.Get(ctx, " ")
		require.ErrorIs(t, err, kv.ErrEmptyKey)
		require.ErrorIs(t, store.Set(ctx, "", "v"), kv.ErrEmptyKey)
		require.ErrorIs(t, store.Remove(ctx, ""), kv.ErrEmptyKey)
	})
}
