package sched

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type config struct {
	grace      time.Duration
	tick       time.Duration
	logger     *slog.Logger
	registerer prometheus.Registerer
}

func defaultConfig() config {
	return config{
		grace:  5 * time.Second,
		tick:   10 * time.Millisecond,
		logger: slog.Default(),
	}
}

// Option configures a Scheduler at construction time.
type Option func(*config)

// WithGracePeriod sets how long a released worker may sit idle before it is
// destroyed. A worker reacquired inside the grace period is reused as-is.
func WithGracePeriod(d time.Duration) Option {
	return func(c *config) { c.grace = d }
}

// WithTickInterval sets the scheduling tick between Update calls for modules
// that implement Stepper.
func WithTickInterval(d time.Duration) Option {
	return func(c *config) { c.tick = d }
}

// WithLogger sets the logger used by the scheduler and passed to task
// modules through their execution context.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithMetrics registers the scheduler's metrics with the given registerer.
// Without this option the metrics are still maintained but not registered
// anywhere.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *config) { c.registerer = reg }
}
