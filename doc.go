/*
Package enfa converts nondeterministic finite automata with epsilon
transitions into equivalent automata without them.

The conversion works in place on a transition table of integer sets and
keeps the state set unchanged:

  - every state that reaches an accepting state through epsilon edges
    becomes accepting;
  - every state that reaches q through epsilon edges receives a copy of
    the real transitions of q;
  - the epsilon column is cleared.

Automata are read and written in a grid text format (three header lines
and one row of brace-enclosed sets per state) or as YAML/JSON documents.

# Usage

	package main

	import (
		"context"
		"log"
		"os"

		"github.com/aretw0/enfa"
		"github.com/aretw0/enfa/pkg/domain"
	)

	func main() {
		conv := enfa.New()

		data, err := os.ReadFile("machine.txt")
		if err != nil {
			log.Fatal(err)
		}

		out, _, err := conv.Process(context.Background(), data, domain.FormatGrid, domain.FormatGrid)
		if err != nil {
			log.Fatal(err)
		}
		os.Stdout.Write(out)
	}
*/
package enfa
