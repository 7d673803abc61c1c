package intset

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

// checkTree verifies ordering, cached heights and the AVL balance bound,
// and returns the number of nodes.
func checkTree(t *testing.T, n *node, lo, hi *int) int {
	t.Helper()
	if n == nil {
		return 0
	}
	if lo != nil {
		require.Greater(t, n.value, *lo)
	}
	if hi != nil {
		require.Less(t, n.value, *hi)
	}
	require.Equal(t, 1+max(height(n.left), height(n.right)), n.height, "stale height at %d", n.value)
	bf := balance(n)
	require.True(t, bf >= -1 && bf <= 1, "balance factor %d at %d", bf, n.value)
	return 1 + checkTree(t, n.left, lo, &n.value) + checkTree(t, n.right, &n.value, hi)
}

func TestAVL_AscendingInserts(t *testing.T) {
	s := New()
	for i := 0; i < 1024; i++ {
		s.Insert(i)
	}
	require.Equal(t, 1024, checkTree(t, s.root, nil, nil))
	// A perfectly balanced tree of 1024 nodes has height 10.
	require.LessOrEqual(t, s.root.height, 11)
}

func TestAVL_DoubleRotations(t *testing.T) {
	// 3,1,2 forces LR; 1,3,2 forces RL.
	lr := Of(3, 1, 2)
	require.Equal(t, 2, lr.root.value)
	checkTree(t, lr.root, nil, nil)

	rl := Of(1, 3, 2)
	require.Equal(t, 2, rl.root.value)
	checkTree(t, rl.root, nil, nil)
}

func TestAVL_DeletionCascade(t *testing.T) {
	// A Fibonacci-shaped tree where one deletion needs rotations at more
	// than one ancestor.
	s := Of(8, 5, 11, 3, 7, 10, 12, 2, 4, 6, 9, 1)
	checkTree(t, s.root, nil, nil)

	require.True(t, s.Remove(12))
	require.Equal(t, 11, checkTree(t, s.root, nil, nil))
	require.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}, s.Values())
}

func TestAVL_RandomMutations(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 7))
	s := New()
	for i := 0; i < 5000; i++ {
		v := rng.IntN(256)
		if rng.IntN(2) == 0 {
			s.Remove(v)
		} else {
			s.Insert(v)
		}
		if i%97 == 0 {
			require.Equal(t, s.size, checkTree(t, s.root, nil, nil))
		}
	}
	require.Equal(t, s.size, checkTree(t, s.root, nil, nil))
}
