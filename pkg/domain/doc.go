/*
Package domain contains the core data model of the converter.

It defines the automaton being transformed and the events emitted while
transforming it. This package is kept free of I/O and persistence.

# Key Entities

  - Automaton: state and alphabet counts, accepting states, transition table.
  - TransitionTable: (state, symbol) to successor set; symbol 0 is epsilon.
  - Format: the textual representations understood at the boundaries.
  - LifecycleHooks: callbacks fired per conversion and per elimination phase.
*/
package domain
