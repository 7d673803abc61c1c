package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/enfa/internal/validator"
	"github.com/aretw0/enfa/pkg/domain"
)

// Builder accumulates states and edges for one automaton.
type Builder struct {
	stateCount   int
	alphabetSize int
	states       map[int]*StateBuilder
	errs         []error
}

type edge struct {
	symbol  int
	targets []int
}

// New creates a builder for an automaton with the given dimensions.
func New(stateCount, alphabetSize int) *Builder {
	return &Builder{
		stateCount:   stateCount,
		alphabetSize: alphabetSize,
		states:       make(map[int]*StateBuilder),
	}
}

// State returns the builder for state id.
// If the state was already touched, it returns the existing builder.
func (b *Builder) State(id int) *StateBuilder {
	if sb, ok := b.states[id]; ok {
		return sb
	}
	sb := &StateBuilder{id: id, builder: b}
	b.states[id] = sb
	return sb
}

// Build validates what was recorded and returns the automaton.
func (b *Builder) Build() (*domain.Automaton, error) {
	if b.stateCount <= 0 || b.alphabetSize <= 0 {
		return nil, fmt.Errorf("invalid dimensions %dx%d", b.stateCount, b.alphabetSize)
	}

	errs := append([]error(nil), b.errs...)
	a := domain.NewAutomaton(b.stateCount, b.alphabetSize)
	for id, sb := range b.states {
		if id < 0 || id >= b.stateCount {
			errs = append(errs, fmt.Errorf("state %d out of range", id))
			continue
		}
		if sb.accepting {
			a.Final.Insert(id)
		}
		for _, e := range sb.edges {
			if e.symbol < domain.Epsilon || e.symbol > b.alphabetSize {
				errs = append(errs, fmt.Errorf("state %d: symbol %d out of range", id, e.symbol))
				continue
			}
			for _, t := range e.targets {
				a.AddTransition(id, e.symbol, t)
			}
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	if err := validator.ValidateAutomaton(a); err != nil {
		return nil, err
	}
	return a, nil
}
