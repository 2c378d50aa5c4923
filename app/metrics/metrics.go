// Package metrics provides Prometheus metrics for observability.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "laintv"

var (
	// FetchCyclesTotal tracks fetch cycles by trigger and result.
	// Labels:
	//   - trigger: scheduled, manual
	//   - result: success, error
	FetchCyclesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_cycles_total",
			Help:      "Total number of fetch cycles",
		},
		[]string{"trigger", "result"},
	)

	// VideosStoredTotal counts candidate records written by fetch cycles.
	VideosStoredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "videos_stored_total",
			Help:      "Total number of candidate videos written to the catalog",
		},
	)
)

// Trigger label values.
const (
	TriggerScheduled = "scheduled"
	TriggerManual    = "manual"
)

// Result label values.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)
