package grid

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/aretw0/enfa/internal/compiler"
	"github.com/aretw0/enfa/internal/dto"
	"github.com/aretw0/enfa/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Options controls how an automaton is written.
type Options struct {
	// Epsilon keeps column 0 in grid output. Converted automata are written
	// without it.
	Epsilon bool
}

// Write serializes a in the grid format: the three header lines followed by
// one row per state, cells separated by tabs.
func Write(w io.Writer, a *domain.Automaton, opts Options) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%s %d\n", compiler.TagStateCount, a.StateCount)
	fmt.Fprintf(bw, "%s %d\n", compiler.TagAlphabetSize, a.AlphabetSize)
	bw.WriteString(compiler.TagAccepting)
	a.Final.Each(func(s int) bool {
		bw.WriteByte(' ')
		bw.WriteString(strconv.Itoa(s))
		return true
	})
	bw.WriteByte('\n')

	first := 1
	if opts.Epsilon {
		first = domain.Epsilon
	}
	for s := 0; s < a.StateCount; s++ {
		for sym := first; sym <= a.AlphabetSize; sym++ {
			if sym != first {
				bw.WriteByte('\t')
			}
			bw.WriteString(a.Delta.Targets(s, sym).String())
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// Encode writes a in the requested format. FormatTable is handled by the
// tui package and rejected here.
func Encode(w io.Writer, a *domain.Automaton, format domain.Format, opts Options) error {
	switch format {
	case domain.FormatGrid, domain.FormatAuto, "":
		return Write(w, a, opts)
	case domain.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(dto.FromAutomaton(a)); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	case domain.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(dto.FromAutomaton(a)); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	}
	return fmt.Errorf("%w: %q is not a serializer format", domain.ErrUnknownFormat, format)
}
