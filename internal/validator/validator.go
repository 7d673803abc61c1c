package validator

import (
	"fmt"

	"github.com/aretw0/enfa/internal/dto"
	"github.com/aretw0/enfa/pkg/domain"
)

// maxReported caps how many failures one AggregateError carries.
const maxReported = 20

type collector struct {
	errs    []error
	dropped int
}

func (c *collector) add(key, reason string, value any) {
	if len(c.errs) >= maxReported {
		c.dropped++
		return
	}
	c.errs = append(c.errs, &ValidationError{Key: key, Reason: reason, Value: value})
}

func (c *collector) err() error {
	if len(c.errs) == 0 {
		return nil
	}
	if c.dropped > 0 {
		c.errs = append(c.errs, fmt.Errorf("... and %d more", c.dropped))
	}
	return &AggregateError{Errors: c.errs}
}

// ValidateAutomaton checks that every accepting state and every transition
// target names an existing state.
func ValidateAutomaton(a *domain.Automaton) error {
	var c collector
	if a.StateCount <= 0 {
		c.add("states", "must be positive", a.StateCount)
	}
	if a.AlphabetSize <= 0 {
		c.add("alphabet", "must be positive", a.AlphabetSize)
	}
	a.Final.Each(func(f int) bool {
		if f < 0 || f >= a.StateCount {
			c.add("accepting", "state out of range", f)
		}
		return true
	})
	for s, row := range a.Delta {
		for sym, targets := range row {
			targets.Each(func(t int) bool {
				if t < 0 || t >= a.StateCount {
					c.add(cellKey(s, sym), "target state out of range", t)
				}
				return true
			})
		}
	}
	return c.err()
}

// ValidateDocument checks a structured document before it is turned into
// an automaton: counts must be positive and every index in range.
func ValidateDocument(doc dto.AutomatonDocument) error {
	var c collector
	if doc.States <= 0 {
		c.add("states", "must be positive", doc.States)
	}
	if doc.Alphabet <= 0 {
		c.add("alphabet", "must be positive", doc.Alphabet)
	}
	for i, f := range doc.Accepting {
		if f < 0 || f >= doc.States {
			c.add(fmt.Sprintf("accepting[%d]", i), "state out of range", f)
		}
	}
	for i, t := range doc.Transitions {
		key := fmt.Sprintf("transitions[%d]", i)
		if t.From < 0 || t.From >= doc.States {
			c.add(key+".from", "state out of range", t.From)
		}
		if t.Symbol < 0 || t.Symbol > doc.Alphabet {
			c.add(key+".symbol", "symbol out of range", t.Symbol)
		}
		for j, to := range t.To {
			if to < 0 || to >= doc.States {
				c.add(fmt.Sprintf("%s.to[%d]", key, j), "state out of range", to)
			}
		}
	}
	return c.err()
}

func cellKey(state, symbol int) string {
	return fmt.Sprintf("delta(%d, %s)", state, domain.SymbolName(symbol))
}
