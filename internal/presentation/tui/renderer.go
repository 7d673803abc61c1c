package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/enfa/pkg/domain"
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
// The style follows the terminal background.
func NewRenderer(width int) (func(string) (string, error), error) {
	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	return r.Render, nil
}

// MarkdownTable describes a as a markdown document: a summary line and a
// transition table with one row per state. Accepting states are bold and
// the start state is marked with an arrow.
func MarkdownTable(a *domain.Automaton, withEpsilon bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "**%d states**, **%d symbols**, accepting %s\n\n", a.StateCount, a.AlphabetSize, a.Final)

	first := 1
	if withEpsilon {
		first = domain.Epsilon
	}
	sb.WriteString("| state |")
	for sym := first; sym <= a.AlphabetSize; sym++ {
		fmt.Fprintf(&sb, " %s |", domain.SymbolName(sym))
	}
	sb.WriteString("\n|---|")
	for sym := first; sym <= a.AlphabetSize; sym++ {
		sb.WriteString("---|")
	}
	sb.WriteByte('\n')

	for s := 0; s < a.StateCount; s++ {
		label := fmt.Sprintf("%d", s)
		if a.Final.Contains(s) {
			label = "**" + label + "**"
		}
		if s == domain.StartState {
			label = "→ " + label
		}
		fmt.Fprintf(&sb, "| %s |", label)
		for sym := first; sym <= a.AlphabetSize; sym++ {
			fmt.Fprintf(&sb, " `%s` |", a.Delta.Targets(s, sym))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// RenderTable renders MarkdownTable for the terminal.
func RenderTable(a *domain.Automaton, withEpsilon bool, width int) (string, error) {
	render, err := NewRenderer(width)
	if err != nil {
		return "", err
	}
	return render(MarkdownTable(a, withEpsilon))
}
