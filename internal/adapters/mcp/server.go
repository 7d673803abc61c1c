package mcp

import (
	"context"
	"fmt"

	"github.com/aretw0/enfa/internal/runtime"
	"github.com/aretw0/enfa/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// MaxLanguageLength bounds the word length of describe_automaton listings.
const MaxLanguageLength = 6

// Converter defines what the MCP server needs from the conversion core.
type Converter interface {
	Process(ctx context.Context, input []byte, from, to domain.Format) ([]byte, bool, error)
	Parse(data []byte, format domain.Format) (*domain.Automaton, error)
	Accepts(a *domain.Automaton, word string) (bool, error)
}

// Summary is the structured result of describe_automaton.
type Summary struct {
	States     int      `json:"states" jsonschema_description:"Number of states"`
	Alphabet   int      `json:"alphabet" jsonschema_description:"Number of input symbols"`
	Accepting  []int    `json:"accepting" jsonschema_description:"Accepting states"`
	Edges      int      `json:"edges" jsonschema_description:"Number of transitions, epsilon included"`
	HasEpsilon bool     `json:"has_epsilon" jsonschema_description:"Whether any epsilon transition exists"`
	Language   []string `json:"language" jsonschema_description:"Accepted words up to max_length in shortlex order"`
}

// DescribeArgs are the arguments of describe_automaton.
type DescribeArgs struct {
	Automaton string `json:"automaton"`
	From      string `json:"from"`
	MaxLength int    `json:"max_length"`
}

// Server exposes the converter as an MCP server.
type Server struct {
	conv      Converter
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(conv Converter, version string) *Server {
	s := &Server{
		conv:      conv,
		mcpServer: server.NewMCPServer("enfa-mcp", version),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// MCPServer returns the underlying server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("convert_enfa",
		mcp.WithDescription("Remove the epsilon transitions of an automaton and return the equivalent automaton."),
		mcp.WithString("automaton", mcp.Required(), mcp.Description("The automaton in grid, YAML or JSON form")),
		mcp.WithString("from", mcp.Description("Input format: auto, grid, yaml or json (default auto)")),
		mcp.WithString("to", mcp.Description("Output format: grid, yaml or json (default grid)")),
	), s.handleConvert)

	s.mcpServer.AddTool(mcp.NewTool("accepts_word",
		mcp.WithDescription("Check whether an automaton accepts a word written with the letters a, b, c, ..."),
		mcp.WithString("automaton", mcp.Required(), mcp.Description("The automaton in grid, YAML or JSON form")),
		mcp.WithString("word", mcp.Description("The word; empty for the empty word")),
		mcp.WithString("from", mcp.Description("Input format: auto, grid, yaml or json (default auto)")),
	), s.handleAccepts)

	s.mcpServer.AddTool(mcp.NewTool("describe_automaton",
		mcp.WithDescription("Summarise an automaton and list the words it accepts up to a length."),
		mcp.WithString("automaton", mcp.Required(), mcp.Description("The automaton in grid, YAML or JSON form")),
		mcp.WithString("from", mcp.Description("Input format (default auto)")),
		mcp.WithNumber("max_length", mcp.Description(fmt.Sprintf("Longest word to list, at most %d (default 3)", MaxLanguageLength))),
		mcp.WithOutputSchema[Summary](),
	), mcp.NewStructuredToolHandler(s.handleDescribe))
}

func (s *Server) handleConvert(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := request.RequireString("automaton")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if input, err = SanitizeInput(input); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	from, err := inputFormat(request.GetString("from", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	to, err := domain.ParseFormat(request.GetString("to", ""))
	if err != nil || to == domain.FormatTable {
		return mcp.NewToolResultError(fmt.Sprintf("unsupported output format %q", request.GetString("to", ""))), nil
	}

	out, _, err := s.conv.Process(ctx, []byte(input), from, to)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("conversion failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) handleAccepts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := request.RequireString("automaton")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if input, err = SanitizeInput(input); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	from, err := inputFormat(request.GetString("from", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	a, err := s.conv.Parse([]byte(input), from)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("parse failed: %v", err)), nil
	}
	ok, err := s.conv.Accepts(a, request.GetString("word", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if ok {
		return mcp.NewToolResultText("accepted"), nil
	}
	return mcp.NewToolResultText("rejected"), nil
}

func (s *Server) handleDescribe(ctx context.Context, request mcp.CallToolRequest, args DescribeArgs) (Summary, error) {
	from, err := inputFormat(args.From)
	if err != nil {
		return Summary{}, err
	}
	input, err := SanitizeInput(args.Automaton)
	if err != nil {
		return Summary{}, err
	}
	a, err := s.conv.Parse([]byte(input), from)
	if err != nil {
		return Summary{}, fmt.Errorf("parse failed: %w", err)
	}

	maxLen := args.MaxLength
	switch {
	case maxLen <= 0:
		maxLen = 3
	case maxLen > MaxLanguageLength:
		maxLen = MaxLanguageLength
	}

	accepting := a.Final.Values()
	if accepting == nil {
		accepting = []int{}
	}
	language := runtime.Language(a, maxLen)
	if language == nil {
		language = []string{}
	}
	return Summary{
		States:     a.StateCount,
		Alphabet:   a.AlphabetSize,
		Accepting:  accepting,
		Edges:      a.EdgeCount(),
		HasEpsilon: a.HasEpsilon(),
		Language:   language,
	}, nil
}

func inputFormat(name string) (domain.Format, error) {
	f, err := domain.ParseFormat(name)
	if err != nil {
		return "", err
	}
	if f == domain.FormatTable {
		return "", fmt.Errorf("%w: table is an output format", domain.ErrUnknownFormat)
	}
	return f, nil
}
