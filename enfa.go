package enfa

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/enfa/internal/compiler"
	"github.com/aretw0/enfa/internal/presentation/grid"
	"github.com/aretw0/enfa/internal/presentation/tui"
	"github.com/aretw0/enfa/internal/runtime"
	"github.com/aretw0/enfa/pkg/domain"
	"github.com/aretw0/enfa/pkg/ports"
	"github.com/dchest/siphash"
	"github.com/google/uuid"
)

// Version is overridden at link time.
var Version = "0.1.0"

// Stats summarises what a conversion changed.
type Stats = runtime.Stats

// Converter is the high-level entry point of the library.
// It wraps the parser, the eliminator and the writers behind one API.
type Converter struct {
	parser     *compiler.Parser
	cache      ports.ResultCache
	onCache    func(hit bool)
	hooks      domain.LifecycleHooks
	logger     *slog.Logger
	maxCells   int
	tableWidth int
}

// Option defines a functional option for configuring the Converter.
type Option func(*Converter)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) {
		c.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Converter) {
		c.hooks = c.hooks.Merge(hooks)
	}
}

// WithCache makes Process look up and store results in cache.
func WithCache(cache ports.ResultCache) Option {
	return func(c *Converter) {
		c.cache = cache
	}
}

// WithCacheObserver is called after every cache lookup made by Process.
func WithCacheObserver(fn func(hit bool)) Option {
	return func(c *Converter) {
		c.onCache = fn
	}
}

// WithMaxCells bounds the transition table size accepted by Parse.
func WithMaxCells(n int) Option {
	return func(c *Converter) {
		c.maxCells = n
	}
}

// WithTableWidth sets the wrap width of FormatTable output.
func WithTableWidth(width int) Option {
	return func(c *Converter) {
		c.tableWidth = width
	}
}

// New initializes a Converter.
func New(opts ...Option) *Converter {
	c := &Converter{maxCells: compiler.DefaultMaxCells}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	c.parser = compiler.NewParser(compiler.WithMaxCells(c.maxCells))
	return c
}

// Parse reads and validates an automaton.
func (c *Converter) Parse(data []byte, format domain.Format) (*domain.Automaton, error) {
	return c.parser.Parse(data, format)
}

// ParseReader is Parse over a reader.
func (c *Converter) ParseReader(r io.Reader, format domain.Format) (*domain.Automaton, error) {
	return c.parser.ParseReader(r, format)
}

// Convert removes the epsilon transitions of a in place.
// On error a keeps its epsilon transitions.
func (c *Converter) Convert(ctx context.Context, a *domain.Automaton) (Stats, error) {
	runID := uuid.NewString()
	logger := c.logger.With("run_id", runID)

	start := time.Now()
	if c.hooks.OnConversionStart != nil {
		c.hooks.OnConversionStart(ctx, &domain.ConversionEvent{
			EventBase: domain.EventBase{Timestamp: start, Type: domain.EventConversionStart, RunID: runID},
			States:    a.StateCount,
			Alphabet:  a.AlphabetSize,
		})
	}

	el := runtime.NewEliminator(
		runtime.WithLogger(logger),
		runtime.WithLifecycleHooks(c.hooks),
		runtime.WithRunID(runID),
	)
	stats, err := el.Eliminate(ctx, a)

	elapsed := time.Since(start)
	if c.hooks.OnConversionDone != nil {
		c.hooks.OnConversionDone(ctx, &domain.ConversionEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventConversionDone, RunID: runID},
			States:    a.StateCount,
			Alphabet:  a.AlphabetSize,
			Duration:  elapsed,
			Err:       err,
		})
	}
	if err != nil {
		logger.Warn("conversion aborted", "err", err)
		return stats, err
	}

	logger.Info("conversion complete",
		"states", a.StateCount,
		"alphabet", a.AlphabetSize,
		"final_added", stats.FinalAdded,
		"edges_added", stats.EdgesAdded,
		"epsilon_removed", stats.EpsilonRemoved,
		"duration", elapsed,
	)
	return stats, nil
}

// Encode writes a in the requested output format. Epsilon columns are
// written only when withEpsilon is set.
func (c *Converter) Encode(w io.Writer, a *domain.Automaton, to domain.Format, withEpsilon bool) error {
	if to == domain.FormatTable {
		out, err := tui.RenderTable(a, withEpsilon, c.tableWidth)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	}
	return grid.Encode(w, a, to, grid.Options{Epsilon: withEpsilon})
}

// Process parses input, converts it and encodes the result. When a cache
// is configured, identical requests are served from it and cached reports
// whether that happened. Nothing is returned on failure.
func (c *Converter) Process(ctx context.Context, input []byte, from, to domain.Format) (out []byte, cached bool, err error) {
	key := CacheKey(input, from, to)
	if c.cache != nil {
		hit, getErr := c.cache.Get(ctx, key)
		switch {
		case getErr == nil:
			c.observeCache(true)
			return hit, true, nil
		case errors.Is(getErr, ports.ErrCacheMiss):
			c.observeCache(false)
		default:
			c.observeCache(false)
			c.logger.Warn("cache lookup failed", "err", getErr)
		}
	}

	a, err := c.Parse(input, from)
	if err != nil {
		return nil, false, err
	}
	if _, err := c.Convert(ctx, a); err != nil {
		return nil, false, err
	}

	var buf bytes.Buffer
	if err := c.Encode(&buf, a, to, false); err != nil {
		return nil, false, err
	}

	if c.cache != nil {
		if err := c.cache.Put(ctx, key, buf.Bytes()); err != nil {
			c.logger.Warn("cache store failed", "err", err)
		}
	}
	return buf.Bytes(), false, nil
}

// Accepts reports whether a accepts word, written with the letters a, b, ...
func (c *Converter) Accepts(a *domain.Automaton, word string) (bool, error) {
	symbols, err := domain.ParseWord(word, a.AlphabetSize)
	if err != nil {
		return false, fmt.Errorf("failed to read word: %w", err)
	}
	return runtime.Accepts(a, symbols), nil
}

func (c *Converter) observeCache(hit bool) {
	if c.onCache != nil {
		c.onCache(hit)
	}
}

// Keys of the cache digest. Changing them invalidates every cached result.
const (
	cacheK0 = 0x6a09e667f3bcc908
	cacheK1 = 0xbb67ae8584caa73b
)

// CacheKey digests a conversion request: the input bytes and both formats.
func CacheKey(input []byte, from, to domain.Format) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s\x00%s\x00%s\x00", Version, from, to)
	buf.Write(input)
	lo, hi := siphash.Hash128(cacheK0, cacheK1, buf.Bytes())
	mem := make([]byte, 0, 16)
	mem = binary.LittleEndian.AppendUint64(mem, lo)
	mem = binary.LittleEndian.AppendUint64(mem, hi)
	return base64.RawURLEncoding.EncodeToString(mem)
}
