package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/enfa"
	"github.com/aretw0/enfa/internal/logging"
	"github.com/aretw0/enfa/pkg/domain"
	"golang.org/x/term"
)

// StdinPath selects standard input as the automaton source.
const StdinPath = "-"

// readInput returns the contents of path, or of in when path is StdinPath.
func readInput(path string, in io.Reader, logger *slog.Logger) ([]byte, error) {
	if path == StdinPath {
		if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			logger.Warn("reading automaton from the terminal, end input with Ctrl-D")
		}
		data, err := io.ReadAll(in)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return data, nil
}

// terminalWidth returns the width of w when it is a terminal, or 0.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnConversionStart: func(ctx context.Context, e *domain.ConversionEvent) {
			logger.Debug("conversion start", "run_id", e.RunID, "states", e.States, "alphabet", e.Alphabet)
		},
		OnConversionDone: func(ctx context.Context, e *domain.ConversionEvent) {
			if e.Err != nil {
				logger.Debug("conversion done (error)", "run_id", e.RunID, "err", e.Err)
				return
			}
			logger.Debug("conversion done", "run_id", e.RunID, "duration", e.Duration)
		},
	}
}

// newConverter builds the library facade for a command.
func newConverter(s Settings, streams Streams, opts ...enfa.Option) (*enfa.Converter, *slog.Logger) {
	logger := logging.NewWithWriter(streams.Err, s.Level)
	base := []enfa.Option{
		enfa.WithLogger(logger),
		enfa.WithLifecycleHooks(createDebugHooks(logger)),
		enfa.WithTableWidth(terminalWidth(streams.Out)),
	}
	return enfa.New(append(base, opts...)...), logger
}

// load reads and parses the automaton named by path.
func load(conv *enfa.Converter, logger *slog.Logger, s Settings, path string, in io.Reader) (*domain.Automaton, error) {
	data, err := readInput(path, in, logger)
	if err != nil {
		return nil, err
	}
	from := domain.DetectFormat(s.From, path)
	if from == domain.FormatTable {
		return nil, fmt.Errorf("%w: table is an output format", domain.ErrUnknownFormat)
	}
	return conv.Parse(data, from)
}
