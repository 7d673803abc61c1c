package domain

import (
	"fmt"

	"github.com/aretw0/enfa/pkg/intset"
)

// Epsilon is the reserved symbol for empty-string transitions.
// Alphabet symbols are numbered 1..AlphabetSize.
const Epsilon = 0

// StartState is the state every run begins in.
const StartState = 0

// TransitionTable maps (state, symbol) to the set of successor states.
// Row s holds AlphabetSize+1 sets; column 0 is the epsilon column.
type TransitionTable [][]*intset.Set

// NewTransitionTable allocates an empty table for the given dimensions.
func NewTransitionTable(stateCount, alphabetSize int) TransitionTable {
	t := make(TransitionTable, stateCount)
	for s := range t {
		row := make([]*intset.Set, alphabetSize+1)
		for sym := range row {
			row[sym] = intset.New()
		}
		t[s] = row
	}
	return t
}

// Targets returns the successor set of (state, symbol). The set is owned by
// the table; callers that only read it must not mutate it.
func (t TransitionTable) Targets(state, symbol int) *intset.Set {
	return t[state][symbol]
}

// Epsilons returns the epsilon successors of state.
func (t TransitionTable) Epsilons(state int) *intset.Set {
	return t[state][Epsilon]
}

// Automaton is a (possibly epsilon-) nondeterministic finite automaton.
type Automaton struct {
	StateCount   int
	AlphabetSize int
	Final        *intset.Set
	Delta        TransitionTable
}

// NewAutomaton returns an automaton with no transitions and no accepting states.
func NewAutomaton(stateCount, alphabetSize int) *Automaton {
	return &Automaton{
		StateCount:   stateCount,
		AlphabetSize: alphabetSize,
		Final:        intset.New(),
		Delta:        NewTransitionTable(stateCount, alphabetSize),
	}
}

// AddTransition records from --symbol--> to. It does not check bounds;
// use the validator for untrusted input.
func (a *Automaton) AddTransition(from, symbol, to int) {
	a.Delta[from][symbol].Insert(to)
}

// HasEpsilon reports whether any epsilon transition remains.
func (a *Automaton) HasEpsilon() bool {
	for s := 0; s < a.StateCount; s++ {
		if a.Delta.Epsilons(s).Len() > 0 {
			return true
		}
	}
	return false
}

// EdgeCount returns the number of (from, symbol, to) triples.
func (a *Automaton) EdgeCount() int {
	n := 0
	for _, row := range a.Delta {
		for _, set := range row {
			n += set.Len()
		}
	}
	return n
}

// Clone returns a deep copy of the automaton.
func (a *Automaton) Clone() *Automaton {
	c := &Automaton{
		StateCount:   a.StateCount,
		AlphabetSize: a.AlphabetSize,
		Final:        a.Final.Clone(),
		Delta:        make(TransitionTable, len(a.Delta)),
	}
	for s, row := range a.Delta {
		c.Delta[s] = make([]*intset.Set, len(row))
		for sym, set := range row {
			c.Delta[s][sym] = set.Clone()
		}
	}
	return c
}

// Equal reports whether two automata have identical dimensions, accepting
// states and transitions.
func (a *Automaton) Equal(b *Automaton) bool {
	if a.StateCount != b.StateCount || a.AlphabetSize != b.AlphabetSize {
		return false
	}
	if !a.Final.Equal(b.Final) {
		return false
	}
	for s := range a.Delta {
		for sym := range a.Delta[s] {
			if !a.Delta[s][sym].Equal(b.Delta[s][sym]) {
				return false
			}
		}
	}
	return true
}

// SymbolName renders a symbol the way diagnostics and words do:
// "ε" for epsilon, then "a", "b", ... Symbols past "z" fall back to "#n".
func SymbolName(symbol int) string {
	switch {
	case symbol == Epsilon:
		return "ε"
	case symbol <= 26:
		return string(rune('a' + symbol - 1))
	}
	return fmt.Sprintf("#%d", symbol)
}
