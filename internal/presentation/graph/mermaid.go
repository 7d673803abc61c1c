package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/enfa/pkg/domain"
)

// GraphOverlay contains run data to visualize on the graph.
type GraphOverlay struct {
	// Active holds the states the automaton occupies after reading a word.
	Active []int
	// Accepted marks whether the word was accepted.
	Accepted bool
}

// GenerateMermaid produces a Mermaid flowchart of an automaton.
// It applies semantic styling:
// - Accepting: (((Double Circle)))
// - Start: ((Circle))
// - Default: (Rounded)
// Parallel edges between the same pair of states share one arrow whose
// label lists the symbols; epsilon edges are dotted.
// It also applies overlay styles (Active) if provided.
func GenerateMermaid(a *domain.Automaton, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for s := 0; s < a.StateCount; s++ {
		opener, closer := "(", ")"
		switch {
		case a.Final.Contains(s):
			opener, closer = "(((", ")))"
		case s == domain.StartState:
			opener, closer = "((", "))"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%d\"%s\n", stateID(s), opener, s, closer))
	}

	for s := 0; s < a.StateCount; s++ {
		// Collect labels per target, in symbol order.
		labels := make(map[int][]string)
		var order []int
		for sym := 1; sym <= a.AlphabetSize; sym++ {
			a.Delta.Targets(s, sym).Each(func(t int) bool {
				if _, seen := labels[t]; !seen {
					order = append(order, t)
				}
				labels[t] = append(labels[t], domain.SymbolName(sym))
				return true
			})
		}
		for _, t := range order {
			sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n", stateID(s), strings.Join(labels[t], ", "), stateID(t)))
		}
		a.Delta.Epsilons(s).Each(func(t int) bool {
			sb.WriteString(fmt.Sprintf("    %s -. \"ε\" .-> %s\n", stateID(s), stateID(t)))
			return true
		})
	}

	// Apply Overlay Styles
	if overlay != nil && len(overlay.Active) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		class := "active"
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		if overlay.Accepted {
			class = "accepted"
			sb.WriteString("    classDef accepted fill:#c8e6c9,stroke:#2e7d32,stroke-width:4px,color:#000;\n")
		} else {
			sb.WriteString("    classDef active fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		}

		seen := make(map[int]bool)
		for _, s := range overlay.Active {
			if seen[s] || s < 0 || s >= a.StateCount {
				continue
			}
			seen[s] = true
			sb.WriteString(fmt.Sprintf("    class %s %s;\n", stateID(s), class))
		}
	}

	return sb.String()
}

func stateID(s int) string {
	return fmt.Sprintf("q%d", s)
}
