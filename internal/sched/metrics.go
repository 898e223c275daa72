package sched

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the scheduler's instrumentation. With a nil registerer the
// collectors exist but are registered nowhere, which keeps the hot path free
// of nil checks.
type Metrics struct {
	dispatches    prometheus.Counter
	cancellations prometheus.Counter
	evictions     prometheus.Counter
	workersLive   prometheus.Gauge
	taskDuration  prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		dispatches: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "pathfinder",
			Subsystem: "sched",
			Name:      "dispatches_total",
			Help:      "Total tasks dispatched to the worker pool.",
		}),
		cancellations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "pathfinder",
			Subsystem: "sched",
			Name:      "cancellations_total",
			Help:      "Total dispatches cancelled before natural completion.",
		}),
		evictions: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "pathfinder",
			Subsystem: "sched",
			Name:      "worker_evictions_total",
			Help:      "Total workers destroyed after idling past the grace period.",
		}),
		workersLive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "pathfinder",
			Subsystem: "sched",
			Name:      "workers_live",
			Help:      "Worker goroutines currently alive, idle or loaned out.",
		}),
		taskDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pathfinder",
			Subsystem: "sched",
			Name:      "task_duration_seconds",
			Help:      "Wall-clock duration of task bodies on workers.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
	}
}
