package runtime

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/enfa/pkg/domain"
	"github.com/aretw0/enfa/pkg/intset"
)

// Stats summarises what an elimination run changed.
type Stats struct {
	FinalAdded     int `json:"final_added"`
	ClosureScans   int `json:"closure_scans"`
	BypassSources  int `json:"bypass_sources"`
	EdgesAdded     int `json:"edges_added"`
	EpsilonRemoved int `json:"epsilon_removed"`
}

// Eliminator rewrites an epsilon-NFA into an equivalent NFA without
// epsilon transitions, in place.
type Eliminator struct {
	logger *slog.Logger
	hooks  domain.LifecycleHooks
	runID  string
}

// EliminatorOption configures an Eliminator.
type EliminatorOption func(*Eliminator)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EliminatorOption {
	return func(e *Eliminator) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EliminatorOption {
	return func(e *Eliminator) {
		e.hooks = hooks
	}
}

// WithRunID tags emitted events with a correlation ID.
func WithRunID(id string) EliminatorOption {
	return func(e *Eliminator) {
		e.runID = id
	}
}

// NewEliminator creates an Eliminator.
func NewEliminator(opts ...EliminatorOption) *Eliminator {
	e := &Eliminator{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Eliminate runs the three phases on a:
//
//  1. close the accepting states backwards over epsilon edges;
//  2. for every state q, copy q's real transitions onto every state that
//     reaches q through one or more epsilon edges;
//  3. drop the epsilon column.
//
// Phase 3 starts only after phase 2 has finished for every state, since
// phase 2 reads the epsilon relation of all states. If ctx is cancelled
// during phase 2 the epsilon columns are left intact and ctx.Err() is
// returned.
func (e *Eliminator) Eliminate(ctx context.Context, a *domain.Automaton) (Stats, error) {
	var stats Stats

	start := time.Now()
	stats.FinalAdded, stats.ClosureScans = CloseFinalStates(a)
	e.phaseDone(ctx, domain.PhaseFinalClosure, stats.FinalAdded, stats.ClosureScans, start)

	start = time.Now()
	scans := 0
	for q := 0; q < a.StateCount; q++ {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		closure, n := inverseEpsilonClosure(a, q)
		scans += n
		if closure.Len() == 0 {
			continue
		}
		stats.BypassSources += closure.Len()
		stats.EdgesAdded += AddBypasses(a, q, closure)
	}
	e.phaseDone(ctx, domain.PhaseBypass, stats.EdgesAdded, scans, start)

	start = time.Now()
	stats.EpsilonRemoved = DiscardEpsilon(a)
	e.phaseDone(ctx, domain.PhaseDiscard, stats.EpsilonRemoved, 0, start)

	return stats, nil
}

func (e *Eliminator) phaseDone(ctx context.Context, phase domain.Phase, changed, scans int, start time.Time) {
	elapsed := time.Since(start)
	e.logger.Debug("phase complete",
		"phase", phase,
		"changed", changed,
		"scans", scans,
		"duration", elapsed,
	)
	if e.hooks.OnPhaseDone != nil {
		e.hooks.OnPhaseDone(ctx, &domain.PhaseEvent{
			EventBase: domain.EventBase{
				Timestamp: time.Now(),
				Type:      domain.EventPhaseDone,
				RunID:     e.runID,
			},
			Phase:    phase,
			Changed:  changed,
			Scans:    scans,
			Duration: elapsed,
		})
	}
}

// CloseFinalStates marks as accepting every state that reaches an accepting
// state through epsilon edges. It rescans all states until a full scan adds
// nothing, and returns the number of states added and scans performed.
func CloseFinalStates(a *domain.Automaton) (added, scans int) {
	for {
		scans++
		before := a.Final.Len()
		for s := 0; s < a.StateCount; s++ {
			if intset.Overlaps(a.Delta.Epsilons(s), a.Final) {
				a.Final.Insert(s)
			}
		}
		grown := a.Final.Len() - before
		added += grown
		if grown == 0 {
			return added, scans
		}
	}
}

// InverseEpsilonClosure returns the states r != q from which q is reachable
// through one or more epsilon edges.
func InverseEpsilonClosure(a *domain.Automaton, q int) *intset.Set {
	closure, _ := inverseEpsilonClosure(a, q)
	return closure
}

func inverseEpsilonClosure(a *domain.Automaton, q int) (*intset.Set, int) {
	closure := intset.New()
	for r := 0; r < a.StateCount; r++ {
		if r != q && a.Delta.Epsilons(r).Contains(q) {
			closure.Insert(r)
		}
	}
	if closure.Len() == 0 {
		return closure, 0
	}

	scans := 0
	for {
		scans++
		before := closure.Len()
		for r := 0; r < a.StateCount; r++ {
			if r == q || closure.Contains(r) {
				continue
			}
			if intset.Overlaps(a.Delta.Epsilons(r), closure) {
				closure.Insert(r)
			}
		}
		if closure.Len() == before {
			return closure, scans
		}
	}
}

// AddBypasses unions delta(q, x) into delta(r, x) for every r in sources and
// every alphabet symbol x, turning r --ε*--> q --x--> t into r --x--> t.
// It returns the number of edges added.
func AddBypasses(a *domain.Automaton, q int, sources *intset.Set) int {
	added := 0
	sources.Each(func(r int) bool {
		for sym := 1; sym <= a.AlphabetSize; sym++ {
			added += a.Delta.Targets(r, sym).Union(a.Delta.Targets(q, sym))
		}
		return true
	})
	return added
}

// DiscardEpsilon empties the epsilon column of every state and returns the
// number of edges removed.
func DiscardEpsilon(a *domain.Automaton) int {
	removed := 0
	for s := 0; s < a.StateCount; s++ {
		eps := a.Delta.Epsilons(s)
		removed += eps.Len()
		eps.Clear()
	}
	return removed
}
