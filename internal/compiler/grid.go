package compiler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/enfa/pkg/domain"
)

// Header tags of the grid format, in order.
const (
	TagStateCount   = "Number of states:"
	TagAlphabetSize = "Alphabet size:"
	TagAccepting    = "Accepting states:"
)

// gridToken is a whitespace-delimited cell of the transition grid.
type gridToken struct {
	text string
	line int
}

// lexer splits the grid format into header lines and brace-aware cell tokens.
type lexer struct {
	src  string
	pos  int
	line int
}

func newLexer(src string) *lexer {
	return &lexer{src: src, line: 1}
}

// headerLine consumes the next line and returns it without its terminator.
func (l *lexer) headerLine() (string, int, bool) {
	if l.pos >= len(l.src) {
		return "", l.line, false
	}
	line := l.line
	rest := l.src[l.pos:]
	end := strings.IndexByte(rest, '\n')
	if end < 0 {
		l.pos = len(l.src)
		return strings.TrimRight(rest, "\r"), line, true
	}
	l.pos += end + 1
	l.line++
	return strings.TrimRight(rest[:end], "\r"), line, true
}

// cell returns the next grid cell. A cell starting with '{' extends to the
// matching '}' and may contain blanks; anything else extends to the next
// whitespace.
func (l *lexer) cell() (gridToken, bool, error) {
	for l.pos < len(l.src) && isSpace(l.src[l.pos]) {
		if l.src[l.pos] == '\n' {
			l.line++
		}
		l.pos++
	}
	if l.pos >= len(l.src) {
		return gridToken{}, false, nil
	}

	start, line := l.pos, l.line
	if l.src[start] == '{' {
		end := strings.IndexByte(l.src[start:], '}')
		if end < 0 {
			l.pos = len(l.src)
			return gridToken{text: l.src[start:], line: line}, false, ErrUnexpectedEOF
		}
		text := l.src[start : start+end+1]
		l.line += strings.Count(text, "\n")
		l.pos = start + end + 1
		return gridToken{text: text, line: line}, true, nil
	}
	for l.pos < len(l.src) && !isSpace(l.src[l.pos]) {
		l.pos++
	}
	return gridToken{text: l.src[start:l.pos], line: line}, true, nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// parseGrid reads the grid format.
func (p *Parser) parseGrid(src string) (*domain.Automaton, error) {
	lx := newLexer(src)

	stateCount, err := p.countHeader(lx, TagStateCount)
	if err != nil {
		return nil, err
	}
	alphabetSize, err := p.countHeader(lx, TagAlphabetSize)
	if err != nil {
		return nil, err
	}
	if stateCount > p.maxCells || alphabetSize >= p.maxCells || stateCount*(alphabetSize+1) > p.maxCells {
		return nil, headerError(lx.line-1, "", fmt.Errorf("%w: %d states x %d symbols", ErrTooLarge, stateCount, alphabetSize))
	}

	finals, err := acceptingHeader(lx)
	if err != nil {
		return nil, err
	}

	a := domain.NewAutomaton(stateCount, alphabetSize)
	for _, f := range finals {
		a.Final.Insert(f)
	}

	columns := alphabetSize + 1
	total := stateCount * columns
	for i := 0; i < total; i++ {
		state, symbol := i/columns, i%columns
		tok, ok, err := lx.cell()
		if err != nil {
			return nil, &ParseError{Line: tok.line, State: state, Symbol: symbol, Token: tok.text, Err: err}
		}
		if !ok {
			return nil, &ParseError{
				Line:   lx.line,
				State:  state,
				Symbol: symbol,
				Err:    fmt.Errorf("%w: got %d of %d cells", ErrTruncatedGrid, i, total),
			}
		}
		targets, err := parseCell(tok.text)
		if err != nil {
			return nil, &ParseError{Line: tok.line, State: state, Symbol: symbol, Token: tok.text, Err: err}
		}
		for _, t := range targets {
			a.AddTransition(state, symbol, t)
		}
	}
	// Anything after the grid is ignored.
	return a, nil
}

func (p *Parser) countHeader(lx *lexer, tag string) (int, error) {
	text, line, ok := lx.headerLine()
	if !ok {
		return 0, headerError(line, tag, ErrUnexpectedEOF)
	}
	rest, found := strings.CutPrefix(text, tag)
	if !found {
		return 0, headerError(line, text, fmt.Errorf("%w: expected %q", ErrHeaderMismatch, tag))
	}
	label := strings.ToLower(strings.TrimSuffix(tag, ":"))
	value := strings.TrimSpace(rest)
	n, err := parseNumber(value)
	if err != nil {
		return 0, headerError(line, value, fmt.Errorf("%w for %s", err, label))
	}
	if n == 0 {
		return 0, headerError(line, "", fmt.Errorf("%w: %s is zero", ErrNothingToDo, label))
	}
	return n, nil
}

func acceptingHeader(lx *lexer) ([]int, error) {
	text, line, ok := lx.headerLine()
	if !ok {
		return nil, headerError(line, TagAccepting, ErrUnexpectedEOF)
	}
	rest, found := strings.CutPrefix(text, TagAccepting)
	if !found {
		return nil, headerError(line, text, fmt.Errorf("%w: expected %q", ErrHeaderMismatch, TagAccepting))
	}
	fields := strings.Fields(rest)
	finals := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := parseNumber(f)
		if err != nil {
			return nil, headerError(line, f, fmt.Errorf("%w for accepting state", err))
		}
		finals = append(finals, n)
	}
	return finals, nil
}

// parseCell reads "{}", "{3}" or "{0, 2,5}".
func parseCell(text string) ([]int, error) {
	if len(text) < 2 || text[0] != '{' || text[len(text)-1] != '}' {
		return nil, ErrInvalidCell
	}
	inner := strings.TrimSpace(text[1 : len(text)-1])
	if inner == "" {
		return nil, nil
	}
	parts := strings.Split(inner, ",")
	out := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := parseNumber(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidElement, strings.TrimSpace(part))
		}
		out = append(out, n)
	}
	return out, nil
}

// parseNumber accepts a non-empty run of decimal digits.
func parseNumber(s string) (int, error) {
	if s == "" {
		return 0, ErrInvalidNumber
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, ErrInvalidNumber
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidNumber, err)
	}
	return n, nil
}
