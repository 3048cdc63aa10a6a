package workqueue

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are intentionally simple. queueDepth is only updated in the worker
// goroutine, guaranteeing a single writer and eliminating race/skew concerns.
var (
	submissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "styleai",
			Subsystem: "workqueue",
			Name:      "submissions_total",
			Help:      "Jobs successfully accepted for execution.",
		},
		[]string{"lane"},
	)

	queueFullTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "styleai",
			Subsystem: "workqueue",
			Name:      "queue_full_total",
			Help:      "Enqueue attempts that timed out (per-lane queue full).",
		},
		[]string{"lane"},
	)

	runDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "styleai",
			Subsystem: "workqueue",
			Name:      "run_duration_seconds",
			Help:      "Job execution latency.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"lane"},
	)

	queueDepth = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "styleai",
			Subsystem: "workqueue",
			Name:      "queue_depth",
			Help:      "Current depth of each lane queue.",
		},
		[]string{"lane"},
	)
)

func labelFor(i int) string { return strconv.Itoa(i) }
