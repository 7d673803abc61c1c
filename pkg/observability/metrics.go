package observability

import (
	"context"

	"github.com/aretw0/enfa/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the converter collectors.
type Metrics struct {
	Conversions  *prometheus.CounterVec
	Duration     prometheus.Histogram
	States       prometheus.Histogram
	PhaseChanges *prometheus.CounterVec
	CacheLookups *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg skips registration.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Conversions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "enfa_conversions_total",
				Help: "Total number of conversions by outcome",
			},
			[]string{"outcome"},
		),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "enfa_conversion_duration_seconds",
			Help:    "Duration of epsilon elimination",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		States: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "enfa_automaton_states",
			Help:    "Number of states of converted automata",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
		PhaseChanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "enfa_phase_changes_total",
				Help: "Changes made by each elimination phase",
			},
			[]string{"phase"},
		),
		CacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "enfa_cache_lookups_total",
				Help: "Result cache lookups by result",
			},
			[]string{"result"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Conversions, m.Duration, m.States, m.PhaseChanges, m.CacheLookups)
	}
	return m
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnConversionDone: func(_ context.Context, e *domain.ConversionEvent) {
			if e.Err != nil {
				m.Conversions.WithLabelValues("error").Inc()
				return
			}
			m.Conversions.WithLabelValues("ok").Inc()
			m.Duration.Observe(e.Duration.Seconds())
			m.States.Observe(float64(e.States))
		},
		OnPhaseDone: func(_ context.Context, e *domain.PhaseEvent) {
			m.PhaseChanges.WithLabelValues(string(e.Phase)).Add(float64(e.Changed))
		},
	}
}

// ObserveCache counts a cache lookup.
func (m *Metrics) ObserveCache(hit bool) {
	if hit {
		m.CacheLookups.WithLabelValues("hit").Inc()
		return
	}
	m.CacheLookups.WithLabelValues("miss").Inc()
}
