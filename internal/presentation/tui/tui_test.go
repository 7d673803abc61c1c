package tui_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/aretw0/enfa/internal/presentation/tui"
	"github.com/aretw0/enfa/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownTable(t *testing.T) {
	a := domain.NewAutomaton(2, 1)
	a.AddTransition(0, domain.Epsilon, 1)
	a.AddTransition(1, 1, 0)
	a.Final.Insert(1)

	md := tui.MarkdownTable(a, true)
	assert.Contains(t, md, "| state | ε | a |")
	assert.Contains(t, md, "| → 0 | `{1}` | `{}` |")
	assert.Contains(t, md, "| **1** | `{}` | `{0}` |")

	noEps := tui.MarkdownTable(a, false)
	assert.Contains(t, noEps, "| state | a |")
	assert.NotContains(t, noEps, "ε")
}

func TestRenderTable(t *testing.T) {
	a := domain.NewAutomaton(1, 1)
	out, err := tui.RenderTable(a, false, 80)
	require.NoError(t, err)
	assert.Contains(t, out, "state")
}

func TestPrintError_PlainWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintError(&buf, errors.New("boom"))
	assert.Equal(t, "[Error]: boom\n", buf.String())
}

func TestPrintVerdict(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintVerdict(&buf, "ab", true)
	tui.PrintVerdict(&buf, "", false)
	assert.Equal(t, "ab: accepted\n\"\": rejected\n", buf.String())
}
