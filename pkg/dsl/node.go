package dsl

import (
	"fmt"

	"github.com/aretw0/enfa/pkg/domain"
)

// StateBuilder provides a fluent API for configuring a state.
type StateBuilder struct {
	id        int
	accepting bool
	edges     []edge
	builder   *Builder
}

// Accepting marks the state as accepting.
func (s *StateBuilder) Accepting() *StateBuilder {
	s.accepting = true
	return s
}

// Epsilon adds empty-string transitions to targets.
func (s *StateBuilder) Epsilon(targets ...int) *StateBuilder {
	return s.Symbol(domain.Epsilon, targets...)
}

// On adds transitions on a letter symbol: 'a' is symbol 1, 'b' symbol 2.
func (s *StateBuilder) On(letter rune, targets ...int) *StateBuilder {
	if letter < 'a' || letter > 'z' {
		s.builder.errs = append(s.builder.errs, fmt.Errorf("state %d: %q is not a letter symbol", s.id, letter))
		return s
	}
	return s.Symbol(int(letter-'a')+1, targets...)
}

// Symbol adds transitions on a numeric symbol. Symbol 0 is epsilon.
func (s *StateBuilder) Symbol(symbol int, targets ...int) *StateBuilder {
	s.edges = append(s.edges, edge{symbol: symbol, targets: targets})
	return s
}

// State moves to another state of the same builder.
func (s *StateBuilder) State(id int) *StateBuilder {
	return s.builder.State(id)
}
