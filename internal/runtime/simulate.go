package runtime

import (
	"github.com/aretw0/enfa/pkg/domain"
	"github.com/aretw0/enfa/pkg/intset"
)

// EpsilonClosure returns states together with everything reachable from
// them through epsilon edges.
func EpsilonClosure(a *domain.Automaton, states *intset.Set) *intset.Set {
	closure := states.Clone()
	work := closure.Values()
	for len(work) > 0 {
		s := work[len(work)-1]
		work = work[:len(work)-1]
		a.Delta.Epsilons(s).Each(func(t int) bool {
			if closure.Insert(t) {
				work = append(work, t)
			}
			return true
		})
	}
	return closure
}

// Move returns the epsilon-closed successors of states on symbol.
func Move(a *domain.Automaton, states *intset.Set, symbol int) *intset.Set {
	next := intset.New()
	states.Each(func(s int) bool {
		next.Union(a.Delta.Targets(s, symbol))
		return true
	})
	return EpsilonClosure(a, next)
}

// Run returns the states a occupies after reading word from
// domain.StartState. The set is empty once the word leaves the alphabet or
// no transition applies.
func Run(a *domain.Automaton, word []int) *intset.Set {
	if a.StateCount == 0 {
		return intset.New()
	}
	current := EpsilonClosure(a, intset.Of(domain.StartState))
	for _, sym := range word {
		if sym < 1 || sym > a.AlphabetSize {
			return intset.New()
		}
		current = Move(a, current, sym)
		if current.Len() == 0 {
			break
		}
	}
	return current
}

// Accepts reports whether a accepts word.
// Symbols outside 1..AlphabetSize reject.
func Accepts(a *domain.Automaton, word []int) bool {
	return intset.Overlaps(Run(a, word), a.Final)
}

// Language lists every accepted word of length at most maxLen, in
// length-then-lexicographic order. Words are spelled with domain.FormatWord.
func Language(a *domain.Automaton, maxLen int) []string {
	if a.StateCount == 0 {
		return nil
	}
	type frontier struct {
		word   []int
		states *intset.Set
	}

	var out []string
	level := []frontier{{states: EpsilonClosure(a, intset.Of(domain.StartState))}}
	for length := 0; length <= maxLen && len(level) > 0; length++ {
		var next []frontier
		for _, f := range level {
			if intset.Overlaps(f.states, a.Final) {
				out = append(out, domain.FormatWord(f.word))
			}
			if length == maxLen {
				continue
			}
			for sym := 1; sym <= a.AlphabetSize; sym++ {
				moved := Move(a, f.states, sym)
				if moved.Len() == 0 {
					continue
				}
				word := make([]int, len(f.word)+1)
				copy(word, f.word)
				word[len(f.word)] = sym
				next = append(next, frontier{word: word, states: moved})
			}
		}
		level = next
	}
	return out
}
