package compiler

import (
	"fmt"
	"io"

	"github.com/aretw0/enfa/internal/validator"
	"github.com/aretw0/enfa/pkg/domain"
)

// DefaultMaxCells bounds StateCount*(AlphabetSize+1) for a single input.
const DefaultMaxCells = 1 << 22

// Parser is responsible for converting raw bytes into an Automaton.
type Parser struct {
	maxCells int
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithMaxCells overrides DefaultMaxCells.
func WithMaxCells(n int) ParserOption {
	return func(p *Parser) {
		p.maxCells = n
	}
}

// NewParser creates a new parser instance.
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{maxCells: DefaultMaxCells}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse decodes data in the given format and validates its structure.
// FormatAuto is treated as the grid format.
func (p *Parser) Parse(data []byte, format domain.Format) (*domain.Automaton, error) {
	var (
		a   *domain.Automaton
		err error
	)
	switch format {
	case domain.FormatGrid, domain.FormatAuto, "":
		a, err = p.parseGrid(string(data))
	case domain.FormatYAML, domain.FormatJSON:
		a, err = p.parseDocument(data)
	default:
		return nil, fmt.Errorf("%w: %q is not an input format", domain.ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse automaton: %w", err)
	}
	if err := validator.ValidateAutomaton(a); err != nil {
		return nil, fmt.Errorf("invalid automaton: %w", err)
	}
	return a, nil
}

// ParseReader reads r to the end and parses it.
func (p *Parser) ParseReader(r io.Reader, format domain.Format) (*domain.Automaton, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return p.Parse(data, format)
}
