package dto

import (
	"github.com/aretw0/enfa/pkg/domain"
)

// AutomatonDocument is the structured (YAML/JSON) representation of an automaton.
// It uses "mapstructure" tags so documents can be decoded from generic maps.
type AutomatonDocument struct {
	States      int                  `json:"states" yaml:"states" mapstructure:"states"`
	Alphabet    int                  `json:"alphabet" yaml:"alphabet" mapstructure:"alphabet"`
	Accepting   []int                `json:"accepting" yaml:"accepting,flow" mapstructure:"accepting"`
	Transitions []TransitionDocument `json:"transitions" yaml:"transitions" mapstructure:"transitions"`
}

// TransitionDocument lists the successors of one (from, symbol) cell.
// Symbol 0 is epsilon.
type TransitionDocument struct {
	From   int   `json:"from" yaml:"from" mapstructure:"from"`
	Symbol int   `json:"symbol" yaml:"symbol" mapstructure:"symbol"`
	To     []int `json:"to" yaml:"to,flow" mapstructure:"to"`
}

// FromAutomaton converts an automaton into a document. Empty cells are
// omitted; transitions are ordered by state, then symbol.
func FromAutomaton(a *domain.Automaton) AutomatonDocument {
	doc := AutomatonDocument{
		States:      a.StateCount,
		Alphabet:    a.AlphabetSize,
		Accepting:   a.Final.Values(),
		Transitions: []TransitionDocument{},
	}
	if doc.Accepting == nil {
		doc.Accepting = []int{}
	}
	for s := 0; s < a.StateCount; s++ {
		for sym := 0; sym <= a.AlphabetSize; sym++ {
			targets := a.Delta.Targets(s, sym)
			if targets.Len() == 0 {
				continue
			}
			doc.Transitions = append(doc.Transitions, TransitionDocument{
				From:   s,
				Symbol: sym,
				To:     targets.Values(),
			})
		}
	}
	return doc
}

// ToAutomaton builds the automaton described by d. Repeated cells are
// merged. The document must have been validated.
func (d AutomatonDocument) ToAutomaton() *domain.Automaton {
	a := domain.NewAutomaton(d.States, d.Alphabet)
	for _, f := range d.Accepting {
		a.Final.Insert(f)
	}
	for _, t := range d.Transitions {
		for _, to := range t.To {
			a.AddTransition(t.From, t.Symbol, to)
		}
	}
	return a
}
