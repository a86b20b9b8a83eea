// Package metrics provides Prometheus metrics instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks HTTP request duration.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	// RequestsTotal tracks total HTTP requests.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// MessagesProcessed tracks conversation turns by final phase.
	MessagesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agent_messages_processed_total",
			Help: "Total user messages processed",
		},
		[]string{"phase"},
	)

	// IntentsDetected tracks classified intents.
	IntentsDetected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agent_intents_detected_total",
			Help: "Total intents detected by the classifier",
		},
		[]string{"intent"},
	)

	// PhaseTransitions tracks dialogue phase moves.
	PhaseTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agent_phase_transitions_total",
			Help: "Total dialogue phase transitions",
		},
		[]string{"from", "to"},
	)

	// LeadsCaptured tracks captured leads by status.
	LeadsCaptured = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agent_leads_captured_total",
			Help: "Total leads captured",
		},
		[]string{"status"},
	)

	// ObjectionsDetected tracks recorded objections by category.
	ObjectionsDetected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agent_objections_detected_total",
			Help: "Total objections detected",
		},
		[]string{"category"},
	)

	// LLMCompletionDuration tracks LLM completion latency.
	LLMCompletionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llm_completion_duration_seconds",
			Help:    "LLM completion duration",
			Buckets: []float64{.25, .5, 1, 2, 5, 10, 20, 30},
		},
		[]string{"model", "status"},
	)

	// LLMTokensTotal tracks total LLM tokens processed.
	LLMTokensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_tokens_total",
			Help: "Total LLM tokens processed",
		},
		[]string{"model", "direction"},
	)

	// SessionsActive tracks live sessions in the store.
	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "agent_sessions_active",
			Help: "Number of live conversation sessions",
		},
	)
)
