package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups all Prometheus instruments used across the application.
// Registered once at startup via New(); passed by pointer wherever needed.
type Metrics struct {
	RemindersSent  prometheus.Counter
	ReminderErrors prometheus.Counter
	StaleNotes     prometheus.Gauge
	RunDuration    prometheus.Histogram
}

// New registers all instruments with the given Prometheus registerer and
// returns the populated Metrics struct.
// Using a custom registry (instead of prometheus.DefaultRegisterer) keeps
// tests isolated and avoids global state.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RemindersSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "reminders_sent_total",
			Help: "Total number of reminder messages delivered to managers.",
		}),
		ReminderErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "reminder_errors_total",
			Help: "Total number of reminder sends that failed.",
		}),
		StaleNotes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "stale_notes_last_run",
			Help: "Number of stale approval notes found by the most recent run.",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "reminder_run_seconds",
			Help:    "End-to-end duration of a reminder run.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		m.RemindersSent,
		m.ReminderErrors,
		m.StaleNotes,
		m.RunDuration,
	)

	return m
}

// EngineHooks returns the metric callback functions expected by
// reminder.Hooks. Centralises the prometheus observation calls so the
// engine stays metrics-agnostic.
func (m *Metrics) EngineHooks() (
	onSent func(),
	onFailed func(),
	onRun func(staleNotes int, elapsed time.Duration),
) {
	onSent = func() { m.RemindersSent.Inc() }
	onFailed = func() { m.ReminderErrors.Inc() }
	onRun = func(staleNotes int, elapsed time.Duration) {
		m.StaleNotes.Set(float64(staleNotes))
		m.RunDuration.Observe(elapsed.Seconds())
	}
	return
}
