package sched

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/puzpuzpuz/xsync/v4"

	"github.com/Oseday/node-pathfinder/internal/ctxlog"
)

const (
	// tokenModulus keeps tokens compact; the counter wraps here. A stale
	// handle can only alias a live task if the counter laps it with that
	// many dispatches outstanding.
	tokenModulus = 1 << 16

	// tokenNone marks a worker with no active task. It is outside the
	// counter's range, so no handle ever holds it.
	tokenNone uint32 = 1 << 30
)

// Completion is the single signal emitted per dispatched task, whether the
// task finished naturally (OK true, with its result values) or was cancelled
// (OK false, no results).
type Completion struct {
	OK      bool
	Results []any
}

// Scheduler owns the worker pool, the token counter, and the pending-
// completion table. Construct one with New and share it by reference; the
// zero value is not usable.
type Scheduler struct {
	grace   time.Duration
	tick    time.Duration
	logger  *slog.Logger
	metrics *Metrics
	baseCtx context.Context

	// pending maps a live token to the channel its completion will be
	// delivered on. LoadAndDelete makes delivery exactly-once.
	pending *xsync.Map[uint32, chan Completion]

	mu      sync.Mutex
	idle    []*Worker
	nextID  int
	counter uint32
	live    int
	closed  bool
}

// New constructs a Scheduler with the given options applied over defaults:
// a 5s idle-eviction grace period, a 10ms stepper tick, slog.Default for
// logging, and unregistered metrics.
func New(opts ...Option) *Scheduler {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	s := &Scheduler{
		grace:   cfg.grace,
		tick:    cfg.tick,
		logger:  cfg.logger,
		metrics: newMetrics(cfg.registerer),
		pending: xsync.NewMap[uint32, chan Completion](),
	}
	s.baseCtx = ctxlog.WithLogger(context.Background(), s.logger)
	return s
}

// Dispatch hands the module to a worker and returns immediately. The caller
// can await the task's completion on Handle.Done or attempt to cancel it.
// Dispatch on a closed scheduler panics; that is a lifecycle bug in the
// caller, not a runtime condition.
func (s *Scheduler) Dispatch(module Module, args ...any) *Handle {
	label := moduleLabel(module)
	w, token := s.acquire(label)

	done := make(chan Completion, 1)
	s.pending.Store(token, done)

	tr := taskRun{module: module, args: args, token: token}
	// Capability discovery happens once here, not per lifecycle call.
	tr.step, _ = module.(Stepper)
	tr.results, _ = module.(ResultProvider)

	s.metrics.dispatches.Inc()
	s.logger.Debug("task dispatched", "label", label, "worker", w.id, "token", token)
	w.tasks <- tr

	return &Handle{s: s, w: w, token: token, done: done}
}

// Invoke dispatches the module and suspends the caller until its completion
// signal fires, returning the success flag and any result values. If ctx is
// cancelled first the dispatch is cancelled and Invoke returns (false, nil);
// should natural completion win that race, its outcome is returned instead.
func (s *Scheduler) Invoke(ctx context.Context, module Module, args ...any) (bool, []any) {
	h := s.Dispatch(module, args...)
	select {
	case c := <-h.done:
		return c.OK, c.Results
	case <-ctx.Done():
		if h.Cancel() {
			return false, nil
		}
		// Cancellation lost the race, so the completion is already on its
		// way; report the real outcome.
		c := <-h.done
		return c.OK, c.Results
	}
}

// Close stops all idle workers and their eviction timers. Workers still
// executing a task drain on their own once the task concludes. Dispatching
// after Close panics.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for _, w := range s.idle {
		if w.evict != nil {
			w.evict.Stop()
			w.evict = nil
		}
		close(w.tasks)
		s.live--
		s.metrics.workersLive.Dec()
	}
	s.idle = nil
	s.logger.Debug("scheduler closed")
}

// LiveWorkers reports how many worker goroutines currently exist, idle or
// loaned out.
func (s *Scheduler) LiveWorkers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.live
}

// IdleWorkers reports how many workers sit in the free list awaiting reuse
// or eviction.
func (s *Scheduler) IdleWorkers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.idle)
}

// deliver routes a completion to whoever is waiting on the token. A token
// that was already delivered, or never registered, is a silent no-op.
func (s *Scheduler) deliver(token uint32, c Completion) {
	if ch, ok := s.pending.LoadAndDelete(token); ok {
		ch <- c
	}
}
