package runtime_test

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/aretw0/enfa/internal/runtime"
	"github.com/aretw0/enfa/pkg/domain"
	"github.com/aretw0/enfa/pkg/intset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eliminate(t *testing.T, a *domain.Automaton) runtime.Stats {
	t.Helper()
	stats, err := runtime.NewEliminator().Eliminate(context.Background(), a)
	require.NoError(t, err)
	return stats
}

func TestEliminate_SingleEpsilonBypass(t *testing.T) {
	// 0 --ε--> 1 --a--> 2, F = {2}
	a := domain.NewAutomaton(3, 1)
	a.AddTransition(0, domain.Epsilon, 1)
	a.AddTransition(1, 1, 2)
	a.Final.Insert(2)

	stats := eliminate(t, a)

	assert.Equal(t, []int{2}, a.Delta.Targets(0, 1).Values())
	assert.Equal(t, []int{2}, a.Delta.Targets(1, 1).Values())
	assert.Equal(t, []int{2}, a.Final.Values())
	assert.False(t, a.HasEpsilon())
	assert.Equal(t, 1, stats.EdgesAdded)
	assert.Equal(t, 1, stats.EpsilonRemoved)
	assert.Equal(t, 0, stats.FinalAdded)
}

func TestEliminate_ChainedEpsilonsCloseFinals(t *testing.T) {
	// 0 --ε--> 1 --ε--> 2, F = {2}
	a := domain.NewAutomaton(3, 1)
	a.AddTransition(0, domain.Epsilon, 1)
	a.AddTransition(1, domain.Epsilon, 2)
	a.Final.Insert(2)

	stats := eliminate(t, a)

	assert.Equal(t, []int{0, 1, 2}, a.Final.Values())
	assert.Equal(t, 2, stats.FinalAdded)
	assert.False(t, a.HasEpsilon())
}

func TestEliminate_TransitiveBypass(t *testing.T) {
	// 0 --ε--> 1 --ε--> 2 --b--> 0
	a := domain.NewAutomaton(3, 2)
	a.AddTransition(0, domain.Epsilon, 1)
	a.AddTransition(1, domain.Epsilon, 2)
	a.AddTransition(2, 2, 0)

	eliminate(t, a)

	assert.Equal(t, []int{0}, a.Delta.Targets(0, 2).Values())
	assert.Equal(t, []int{0}, a.Delta.Targets(1, 2).Values())
	assert.Equal(t, 0, a.Delta.Targets(0, 1).Len())
}

func TestEliminate_SelfLoopIgnored(t *testing.T) {
	a := domain.NewAutomaton(2, 1)
	a.AddTransition(0, domain.Epsilon, 0)
	a.AddTransition(0, 1, 1)
	a.Final.Insert(1)

	assert.Equal(t, 0, runtime.InverseEpsilonClosure(a, 0).Len())

	eliminate(t, a)
	assert.Equal(t, []int{1}, a.Delta.Targets(0, 1).Values())
	assert.False(t, a.HasEpsilon())
}

func TestEliminate_EpsilonCycle(t *testing.T) {
	// 0 <--ε--> 1, 1 --a--> 1
	a := domain.NewAutomaton(2, 1)
	a.AddTransition(0, domain.Epsilon, 1)
	a.AddTransition(1, domain.Epsilon, 0)
	a.AddTransition(1, 1, 1)
	a.Final.Insert(0)

	assert.Equal(t, []int{1}, runtime.InverseEpsilonClosure(a, 0).Values())
	assert.Equal(t, []int{0}, runtime.InverseEpsilonClosure(a, 1).Values())

	eliminate(t, a)
	assert.Equal(t, []int{0, 1}, a.Final.Values())
	assert.Equal(t, []int{1}, a.Delta.Targets(0, 1).Values())
}

func TestEliminate_Idempotent(t *testing.T) {
	a := domain.NewAutomaton(3, 2)
	a.AddTransition(0, 1, 1)
	a.AddTransition(1, 2, 2)
	a.AddTransition(2, 1, 0)
	a.Final.Insert(2)
	before := a.Clone()

	stats := eliminate(t, a)
	assert.True(t, before.Equal(a))
	assert.Equal(t, runtime.Stats{ClosureScans: 1}, stats)

	// A second run over converted output changes nothing either.
	b := domain.NewAutomaton(2, 1)
	b.AddTransition(0, domain.Epsilon, 1)
	b.AddTransition(1, 1, 1)
	b.Final.Insert(1)
	eliminate(t, b)
	once := b.Clone()
	eliminate(t, b)
	assert.True(t, once.Equal(b))
}

func TestInverseEpsilonClosure(t *testing.T) {
	// 3 -> 2 -> 1 -> 0 via ε, plus an unrelated 4 -> 4.
	a := domain.NewAutomaton(5, 1)
	a.AddTransition(3, domain.Epsilon, 2)
	a.AddTransition(2, domain.Epsilon, 1)
	a.AddTransition(1, domain.Epsilon, 0)
	a.AddTransition(4, domain.Epsilon, 4)

	assert.Equal(t, []int{1, 2, 3}, runtime.InverseEpsilonClosure(a, 0).Values())
	assert.Equal(t, []int{3}, runtime.InverseEpsilonClosure(a, 2).Values())
	assert.Equal(t, 0, runtime.InverseEpsilonClosure(a, 3).Len())
}

func TestEliminate_ReadsOriginalEpsilons(t *testing.T) {
	// Bypasses for state 2 need the epsilon edge 0 -> 1, which belongs to a
	// state processed earlier.
	a := domain.NewAutomaton(3, 1)
	a.AddTransition(0, domain.Epsilon, 1)
	a.AddTransition(1, domain.Epsilon, 2)
	a.AddTransition(2, 1, 2)

	eliminate(t, a)
	assert.Equal(t, []int{2}, a.Delta.Targets(0, 1).Values())
	assert.Equal(t, []int{2}, a.Delta.Targets(1, 1).Values())
}

func TestEliminate_Cancelled(t *testing.T) {
	a := domain.NewAutomaton(2, 1)
	a.AddTransition(0, domain.Epsilon, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runtime.NewEliminator().Eliminate(ctx, a)
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, a.HasEpsilon(), "epsilon edges must survive an aborted run")
}

func TestEliminate_PhaseHooks(t *testing.T) {
	a := domain.NewAutomaton(3, 1)
	a.AddTransition(0, domain.Epsilon, 1)
	a.AddTransition(1, domain.Epsilon, 2)
	a.AddTransition(2, 1, 0)
	a.Final.Insert(2)

	var phases []domain.Phase
	var changed []int
	hooks := domain.LifecycleHooks{
		OnPhaseDone: func(_ context.Context, e *domain.PhaseEvent) {
			assert.Equal(t, "run-1", e.RunID)
			assert.Equal(t, domain.EventPhaseDone, e.Type)
			phases = append(phases, e.Phase)
			changed = append(changed, e.Changed)
		},
	}

	_, err := runtime.NewEliminator(
		runtime.WithLifecycleHooks(hooks),
		runtime.WithRunID("run-1"),
	).Eliminate(context.Background(), a)
	require.NoError(t, err)

	assert.Equal(t, []domain.Phase{domain.PhaseFinalClosure, domain.PhaseBypass, domain.PhaseDiscard}, phases)
	// finals 0,1 added; 0 and 1 gain a-edges to 0; two epsilon edges dropped.
	assert.Equal(t, []int{2, 2, 2}, changed)
}

// randomAutomaton builds an epsilon-NFA with roughly density edges per cell.
func randomAutomaton(rng *rand.Rand, states, alphabet int, density float64) *domain.Automaton {
	a := domain.NewAutomaton(states, alphabet)
	for s := 0; s < states; s++ {
		for sym := 0; sym <= alphabet; sym++ {
			for t := 0; t < states; t++ {
				if rng.Float64() < density {
					a.AddTransition(s, sym, t)
				}
			}
		}
		if rng.IntN(4) == 0 {
			a.Final.Insert(s)
		}
	}
	return a
}

func TestEliminate_PreservesLanguage(t *testing.T) {
	rng := rand.New(rand.NewPCG(2024, 10))

	for i := 0; i < 60; i++ {
		states := 1 + rng.IntN(6)
		alphabet := 1 + rng.IntN(2)
		a := randomAutomaton(rng, states, alphabet, 0.2)
		original := a.Clone()

		eliminate(t, a)

		require.False(t, a.HasEpsilon())
		require.Equal(t, runtime.Language(original, 5), runtime.Language(a, 5),
			"automaton %d (%d states, %d symbols)", i, states, alphabet)
		// Accepting states only grow.
		original.Final.Each(func(s int) bool {
			require.True(t, a.Final.Contains(s))
			return true
		})
	}
}

func TestCloseFinalStates_Scans(t *testing.T) {
	// Edges point "backwards" relative to scan order, so each scan adds one.
	a := domain.NewAutomaton(3, 1)
	a.AddTransition(0, domain.Epsilon, 1)
	a.AddTransition(1, domain.Epsilon, 2)
	a.Final = intset.Of(2)

	added, scans := runtime.CloseFinalStates(a)
	assert.Equal(t, 2, added)
	assert.Equal(t, 3, scans)
}
