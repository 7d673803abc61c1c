/*
Package dsl provides a fluent builder for constructing automata in Go code.

It is an alternative to the grid and structured text formats when an
automaton is generated programmatically or written inline in a test.

Example usage:

	b := dsl.New(3, 1)
	b.State(0).Epsilon(1)
	b.State(1).On('a', 2)
	b.State(2).Accepting()

	a, err := b.Build()
	if err != nil {
		return err
	}
	stats, err := enfa.New().Convert(ctx, a)
*/
package dsl
