package tests

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/aretw0/enfa/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunResultCacheContract is a reusable test suite that verifies if an adapter complies with ports.ResultCache.
func RunResultCacheContract(t *testing.T, cache ports.ResultCache) {
	t.Helper()
	ctx := context.Background()

	t.Run("Put and Get", func(t *testing.T) {
		value := []byte("Number of states: 1\nAlphabet size: 1\nAccepting states:\n{}\n")
		require.NoError(t, cache.Put(ctx, "contract-put", value))

		got, err := cache.Get(ctx, "contract-put")
		require.NoError(t, err)
		assert.Equal(t, value, got)
	})

	t.Run("Get Missing", func(t *testing.T) {
		_, err := cache.Get(ctx, "contract-missing")
		assert.ErrorIs(t, err, ports.ErrCacheMiss)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, cache.Put(ctx, "contract-overwrite", []byte("first")))
		require.NoError(t, cache.Put(ctx, "contract-overwrite", []byte("second")))

		got, err := cache.Get(ctx, "contract-overwrite")
		require.NoError(t, err)
		assert.Equal(t, []byte("second"), got)
	})

	t.Run("Returned Value Is Not Aliased", func(t *testing.T) {
		value := []byte("abc")
		require.NoError(t, cache.Put(ctx, "contract-alias", value))
		value[0] = 'x'

		got, err := cache.Get(ctx, "contract-alias")
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), got)
	})

	t.Run("Large Value", func(t *testing.T) {
		value := bytes.Repeat([]byte("{0,1,2}\t"), 4096)
		require.NoError(t, cache.Put(ctx, "contract-large", value))

		got, err := cache.Get(ctx, "contract-large")
		require.NoError(t, err)
		assert.Equal(t, value, got)
	})

	t.Run("Concurrent Access", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				key := fmt.Sprintf("contract-concurrent-%d", i)
				assert.NoError(t, cache.Put(ctx, key, []byte(key)))
				got, err := cache.Get(ctx, key)
				assert.NoError(t, err)
				assert.Equal(t, []byte(key), got)
			}(i)
		}
		wg.Wait()
	})
}
