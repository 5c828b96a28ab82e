// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voxtend_turns_total",
			Help: "Conversation turns appended, by role",
		},
		[]string{"role"},
	)

	OrchestrationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "voxtend_orchestration_duration_seconds",
			Help:    "Time from transcript to assistant response",
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
		},
	)

	TurnLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "voxtend_turn_latency_seconds",
			Help:    "Time from transcript to the end of the spoken answer",
			Buckets: []float64{0.5, 1, 2, 4, 8, 16, 32, 64},
		},
	)

	OrchestrationOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voxtend_orchestration_outcomes_total",
			Help: "Orchestration results (ok, fallback)",
		},
		[]string{"outcome"},
	)

	RecognitionOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voxtend_recognition_outcomes_total",
			Help: "Recognition session endings (final, stopped, error, timeout)",
		},
		[]string{"outcome"},
	)

	PlaybackOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voxtend_playback_outcomes_total",
			Help: "Playback session endings (completed, cancelled, error)",
		},
		[]string{"outcome"},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "voxtend_active_sessions",
			Help: "Voice sessions currently open",
		},
	)

	RemindersNotified = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "voxtend_reminders_notified_total",
			Help: "Reminder notifications broadcast",
		},
	)
)
