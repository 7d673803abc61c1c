package mcp

import (
	"context"
	"testing"

	"github.com/aretw0/enfa"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const simpleGrid = "Number of states: 3\nAlphabet size: 1\nAccepting states: 2\n{1} {}\n{} {2}\n{} {}\n"

func call(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	switch c := res.Content[0].(type) {
	case mcp.TextContent:
		return c.Text
	case *mcp.TextContent:
		return c.Text
	}
	t.Fatalf("unexpected content %T", res.Content[0])
	return ""
}

func TestConvertTool(t *testing.T) {
	s := NewServer(enfa.New(), "test")
	ctx := context.Background()

	res, err := s.handleConvert(ctx, call(map[string]any{"automaton": simpleGrid}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, "Number of states: 3\nAlphabet size: 1\nAccepting states: 2\n{2}\n{2}\n{}\n", text(t, res))

	res, err = s.handleConvert(ctx, call(map[string]any{"automaton": "Number of states: 1\n"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "conversion failed")

	res, err = s.handleConvert(ctx, call(map[string]any{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = s.handleConvert(ctx, call(map[string]any{"automaton": simpleGrid, "to": "table"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestAcceptsTool(t *testing.T) {
	s := NewServer(enfa.New(), "test")
	ctx := context.Background()

	tests := []struct {
		word string
		want string
	}{
		{"a", "accepted"},
		{"", "rejected"},
		{"aa", "rejected"},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			res, err := s.handleAccepts(ctx, call(map[string]any{"automaton": simpleGrid, "word": tt.word}))
			require.NoError(t, err)
			assert.False(t, res.IsError)
			assert.Equal(t, tt.want, text(t, res))
		})
	}

	res, err := s.handleAccepts(ctx, call(map[string]any{"automaton": simpleGrid, "word": "q"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestDescribeTool(t *testing.T) {
	s := NewServer(enfa.New(), "test")

	got, err := s.handleDescribe(context.Background(), mcp.CallToolRequest{}, DescribeArgs{
		Automaton: simpleGrid,
		MaxLength: 100,
	})
	require.NoError(t, err)
	assert.Equal(t, Summary{
		States:     3,
		Alphabet:   1,
		Accepting:  []int{2},
		Edges:      2,
		HasEpsilon: true,
		Language:   []string{"a"},
	}, got)

	_, err = s.handleDescribe(context.Background(), mcp.CallToolRequest{}, DescribeArgs{Automaton: simpleGrid, From: "table"})
	assert.Error(t, err)
}
