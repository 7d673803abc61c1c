package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventPhaseDone       EventType = "phase_done"
	EventConversionStart EventType = "conversion_start"
	EventConversionDone  EventType = "conversion_done"
)

// Phase names one step of epsilon elimination.
type Phase string

const (
	PhaseFinalClosure Phase = "final_closure"
	PhaseBypass       Phase = "bypass"
	PhaseDiscard      Phase = "discard"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	RunID     string    `json:"run_id,omitempty"`
}

// PhaseEvent is emitted when an elimination phase completes.
type PhaseEvent struct {
	EventBase
	Phase Phase `json:"phase"`
	// Changed counts what the phase did: accepting states added, bypass
	// unions that added edges, or epsilon edges removed.
	Changed int `json:"changed"`
	// Scans counts full passes of the fixed-point loops in the phase.
	Scans    int           `json:"scans"`
	Duration time.Duration `json:"duration"`
}

// ConversionEvent brackets a whole conversion.
type ConversionEvent struct {
	EventBase
	States   int           `json:"states"`
	Alphabet int           `json:"alphabet"`
	Duration time.Duration `json:"duration,omitempty"`
	Err      error         `json:"-"`
}

// LifecycleHooks defines callbacks for converter observability.
type LifecycleHooks struct {
	OnConversionStart func(context.Context, *ConversionEvent)
	OnConversionDone  func(context.Context, *ConversionEvent)
	OnPhaseDone       func(context.Context, *PhaseEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnConversionStart: chain(h.OnConversionStart, other.OnConversionStart),
		OnConversionDone:  chain(h.OnConversionDone, other.OnConversionDone),
		OnPhaseDone:       chain(h.OnPhaseDone, other.OnPhaseDone),
	}
}

func chain[E any](a, b func(context.Context, *E)) func(context.Context, *E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e *E) {
		a(ctx, e)
		b(ctx, e)
	}
}
