package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/enfa/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// MaxBodyBytes bounds request bodies.
const MaxBodyBytes = 8 << 20

// RequestIDHeader carries the per-request correlation ID.
const RequestIDHeader = "X-Request-ID"

// Converter defines the conversion core used by the handlers.
type Converter interface {
	Process(ctx context.Context, input []byte, from, to domain.Format) ([]byte, bool, error)
	Parse(data []byte, format domain.Format) (*domain.Automaton, error)
	Accepts(a *domain.Automaton, word string) (bool, error)
}

// Server holds the handler dependencies.
type Server struct {
	Converter Converter
	Metrics   http.Handler
	Logger    *slog.Logger
	Version   string
}

// AcceptsRequest is the body of POST /accepts.
type AcceptsRequest struct {
	Automaton string   `json:"automaton"`
	Format    string   `json:"format,omitempty"`
	Words     []string `json:"words"`
}

// AcceptsResponse maps each word to its verdict.
type AcceptsResponse struct {
	Results map[string]bool `json:"results"`
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

type ctxKey struct{}

// NewHandler creates the HTTP handler.
func NewHandler(s *Server) http.Handler {
	if s.Logger == nil {
		s.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(middleware.Recoverer)

	r.Post("/convert", s.Convert)
	r.Post("/accepts", s.Accepts)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		io.WriteString(w, "ok")
	})
	r.Get("/info", s.Info)
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics)
	}
	return r
}

// requestID assigns an ID to every request, echoes it and logs one line
// when the request completes.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))

		s.Logger.Info("request",
			"request_id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
		)
	})
}

// RequestID returns the ID assigned to the request carried by ctx.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// Convert handles POST /convert?from=&to=.
func (s *Server) Convert(w http.ResponseWriter, r *http.Request) {
	from, err := inputFormat(r.URL.Query().Get("from"))
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}
	to, err := domain.ParseFormat(r.URL.Query().Get("to"))
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		s.fail(w, r, http.StatusRequestEntityTooLarge, err)
		return
	}

	out, cached, err := s.Converter.Process(r.Context(), body, from, to)
	if err != nil {
		s.fail(w, r, statusFor(err), err)
		return
	}

	w.Header().Set("Content-Type", contentType(to))
	if cached {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	if _, err := w.Write(out); err != nil {
		s.Logger.Warn("convert write failed", "request_id", RequestID(r.Context()), "err", err)
	}
}

// Accepts handles POST /accepts.
func (s *Server) Accepts(w http.ResponseWriter, r *http.Request) {
	var body AcceptsRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes)).Decode(&body); err != nil {
		s.fail(w, r, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	from, err := inputFormat(body.Format)
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}

	a, err := s.Converter.Parse([]byte(body.Automaton), from)
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}

	resp := AcceptsResponse{Results: make(map[string]bool, len(body.Words))}
	for _, word := range body.Words {
		ok, err := s.Converter.Accepts(a, word)
		if err != nil {
			s.fail(w, r, http.StatusBadRequest, err)
			return
		}
		resp.Results[word] = ok
	}
	s.writeJSON(w, r, http.StatusOK, resp)
}

// Info handles GET /info.
func (s *Server) Info(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string]string{
		"app":     "enfa-http",
		"version": s.Version,
	})
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	id := RequestID(r.Context())
	s.Logger.Warn("request failed", "request_id", id, "status", status, "err", err)
	s.writeJSON(w, r, status, errorResponse{Error: err.Error(), RequestID: id})
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Warn("encode failed", "request_id", RequestID(r.Context()), "err", err)
	}
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

func statusFor(err error) int {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return http.StatusServiceUnavailable
	}
	return http.StatusBadRequest
}

func contentType(f domain.Format) string {
	switch f {
	case domain.FormatJSON:
		return "application/json"
	case domain.FormatYAML:
		return "application/yaml"
	}
	return "text/plain; charset=utf-8"
}
