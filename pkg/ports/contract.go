package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunResponseCacheContract runs a suite of tests to verify that a ResponseCache
// implementation adheres to the defined interface contract.
func RunResponseCacheContract(t *testing.T, cache ResponseCache) {
	ctx := context.Background()
	key := "contract-test-" + time.Now().Format("20060102150405.000000000")

	t.Run("Miss", func(t *testing.T) {
		_, ok, err := cache.Get(ctx, key+"-missing")
		require.NoError(t, err)
		assert.False(t, ok, "unknown key should be a miss")
	})

	t.Run("Set and Get", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, key, "Hello world", 0))

		val, ok, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "Hello world", val)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, key, "first", time.Minute))
		require.NoError(t, cache.Set(ctx, key, "second", time.Minute))

		val, ok, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "second", val)
	})

	t.Run("Empty Value", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, key+"-empty", "", 0))

		val, ok, err := cache.Get(ctx, key+"-empty")
		require.NoError(t, err)
		assert.True(t, ok, "empty strings are valid cached values")
		assert.Equal(t, "", val)
	})
}
