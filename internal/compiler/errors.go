package compiler

import (
	"errors"
	"fmt"

	"github.com/aretw0/enfa/pkg/domain"
)

var (
	ErrHeaderMismatch = errors.New("header tag mismatch")
	ErrUnexpectedEOF  = errors.New("unexpected end of input")
	ErrInvalidNumber  = errors.New("invalid number")
	ErrNothingToDo    = errors.New("nothing to do")
	ErrTooLarge       = errors.New("automaton too large")
	ErrTruncatedGrid  = errors.New("truncated transition grid")
	ErrInvalidElement = errors.New("invalid set element")
	ErrInvalidCell    = errors.New("invalid transition cell")
	ErrInvalidDoc     = errors.New("invalid document")
)

// ParseError carries the position of a parse failure.
// State and Symbol are -1 when the failure is outside the transition grid.
type ParseError struct {
	Line   int
	State  int
	Symbol int
	Token  string
	Err    error
}

func (e *ParseError) Error() string {
	where := fmt.Sprintf("line %d", e.Line)
	if e.State >= 0 && e.Symbol >= 0 {
		where = fmt.Sprintf("line %d: delta(%d, %s)", e.Line, e.State, domain.SymbolName(e.Symbol))
	}
	if e.Token == "" {
		return fmt.Sprintf("%s: %v", where, e.Err)
	}
	return fmt.Sprintf("%s: %v %q", where, e.Err, e.Token)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func headerError(line int, token string, err error) *ParseError {
	return &ParseError{Line: line, State: -1, Symbol: -1, Token: token, Err: err}
}
