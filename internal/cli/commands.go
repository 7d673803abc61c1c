package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aretw0/enfa/internal/presentation/graph"
	"github.com/aretw0/enfa/internal/presentation/tui"
	"github.com/aretw0/enfa/internal/runtime"
	"github.com/aretw0/enfa/pkg/domain"
)

// Convert reads the automaton at path, removes its epsilon transitions and
// writes the result to streams.Out. Nothing is written to streams.Out on
// failure.
func Convert(ctx context.Context, s Settings, path string, streams Streams) error {
	conv, logger := newConverter(s, streams)

	a, err := load(conv, logger, s, path, streams.In)
	if err != nil {
		return err
	}
	if _, err := conv.Convert(ctx, a); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := conv.Encode(&buf, a, s.To, false); err != nil {
		return err
	}
	_, err = streams.Out.Write(buf.Bytes())
	return err
}

// Validate parses and checks the automaton at path and prints a summary.
func Validate(s Settings, path string, streams Streams) error {
	conv, logger := newConverter(s, streams)

	a, err := load(conv, logger, s, path, streams.In)
	if err != nil {
		return err
	}
	epsilon := "no"
	if a.HasEpsilon() {
		epsilon = "yes"
	}
	_, err = fmt.Fprintf(streams.Out, "valid: %d states, %d symbols, %d accepting, %d transitions, epsilon: %s\n",
		a.StateCount, a.AlphabetSize, a.Final.Len(), a.EdgeCount(), epsilon)
	return err
}

// GraphOptions controls Graph.
type GraphOptions struct {
	// Converted draws the automaton after epsilon elimination.
	Converted bool
	// Word, when set, highlights the states reached after reading it.
	Word string
	// Trace enables the word overlay even for the empty word.
	Trace bool
}

// Graph prints a Mermaid flowchart of the automaton at path.
func Graph(ctx context.Context, s Settings, path string, opts GraphOptions, streams Streams) error {
	conv, logger := newConverter(s, streams)

	a, err := load(conv, logger, s, path, streams.In)
	if err != nil {
		return err
	}
	if opts.Converted {
		if _, err := conv.Convert(ctx, a); err != nil {
			return err
		}
	}

	var overlay *graph.GraphOverlay
	if opts.Trace || opts.Word != "" {
		word, err := domain.ParseWord(opts.Word, a.AlphabetSize)
		if err != nil {
			return fmt.Errorf("failed to read word: %w", err)
		}
		overlay = &graph.GraphOverlay{
			Active:   runtime.Run(a, word).Values(),
			Accepted: runtime.Accepts(a, word),
		}
	}
	_, err = io.WriteString(streams.Out, graph.GenerateMermaid(a, overlay))
	return err
}

// Accepts prints a verdict for each word. The automaton is simulated as
// given, epsilon transitions included.
func Accepts(s Settings, path string, words []string, streams Streams) error {
	conv, logger := newConverter(s, streams)

	a, err := load(conv, logger, s, path, streams.In)
	if err != nil {
		return err
	}

	verdicts := make([]bool, len(words))
	for i, w := range words {
		if verdicts[i], err = conv.Accepts(a, w); err != nil {
			return fmt.Errorf("word %q: %w", w, err)
		}
	}
	for i, w := range words {
		tui.PrintVerdict(streams.Out, w, verdicts[i])
	}
	return nil
}
