package enfa_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aretw0/enfa"
	"github.com/aretw0/enfa/pkg/domain"
	"github.com/aretw0/enfa/pkg/dsl"
)

// ExampleConverter_Process converts the grid form of 0 -ε-> 1 -a-> 2.
func ExampleConverter_Process() {
	input := []byte(`Number of states: 3
Alphabet size: 1
Accepting states: 2
{1} {}
{}  {2}
{}  {}
`)

	out, _, err := enfa.New().Process(context.Background(), input, domain.FormatGrid, domain.FormatGrid)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Print(string(out))
	// Output:
	// Number of states: 3
	// Alphabet size: 1
	// Accepting states: 2
	// {2}
	// {2}
	// {}
}

// ExampleConverter_Convert builds an automaton in code and inspects the result.
func ExampleConverter_Convert() {
	b := dsl.New(3, 1)
	b.State(0).Epsilon(1).
		State(1).Epsilon(2).
		State(2).Accepting()
	a, err := b.Build()
	if err != nil {
		log.Fatal(err)
	}

	stats, err := enfa.New().Convert(context.Background(), a)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("accepting:", a.Final)
	fmt.Println("added:", stats.FinalAdded)
	// Output:
	// accepting: {0,1,2}
	// added: 2
}

// ExampleConverter_Accepts checks words against an automaton without converting it.
func ExampleConverter_Accepts() {
	conv := enfa.New()
	a, err := conv.Parse([]byte("states: 2\nalphabet: 2\naccepting: [1]\n"+
		"transitions:\n  - {from: 0, symbol: 0, to: [1]}\n  - {from: 1, symbol: 2, to: [1]}\n"), domain.FormatYAML)
	if err != nil {
		log.Fatal(err)
	}

	for _, w := range []string{"", "bb", "a"} {
		ok, err := conv.Accepts(a, w)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		fmt.Printf("%q: %v\n", w, ok)
	}
	// Output:
	// "": true
	// "bb": true
	// "a": false
}
