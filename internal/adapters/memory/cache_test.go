package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/enfa/internal/adapters/memory"
	"github.com/aretw0/enfa/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_Contract(t *testing.T) {
	tests.RunResultCacheContract(t, memory.New())
}

func TestMemoryCache_Limit(t *testing.T) {
	ctx := context.Background()
	cache := memory.New(memory.WithLimit(2))

	require.NoError(t, cache.Put(ctx, "a", []byte("1")))
	require.NoError(t, cache.Put(ctx, "b", []byte("2")))
	require.NoError(t, cache.Put(ctx, "b", []byte("3")))
	assert.Equal(t, 2, cache.Len(), "overwriting does not evict")

	require.NoError(t, cache.Put(ctx, "c", []byte("4")))
	assert.Equal(t, 2, cache.Len())

	got, err := cache.Get(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, []byte("4"), got)
}
