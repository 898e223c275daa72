package sched

import (
	"sync/atomic"
	"time"
)

// Worker is a reusable parallel execution slot. While idle it is owned
// exclusively by the scheduler's free list; while active it is loaned to
// exactly one in-flight task, identified by the token stamped on it at
// acquire time.
type Worker struct {
	id    int
	s     *Scheduler
	tasks chan taskRun

	// token holds the live task's token, or tokenNone when the worker is
	// idle or its task has already been cancelled. Cancellation and natural
	// completion race on a compare-and-swap of this field.
	token atomic.Uint32

	// label and evict are guarded by the scheduler mutex.
	label string
	evict *time.Timer
}

// taskRun carries one dispatched task to its worker. The optional
// capabilities are resolved once at dispatch.
type taskRun struct {
	module  Module
	args    []any
	token   uint32
	step    Stepper
	results ResultProvider
}

// run is the worker goroutine's loop. It exits when the scheduler closes the
// task channel, which only happens while the worker is idle (eviction or
// scheduler shutdown) or right after it released itself on a closed
// scheduler.
func (w *Worker) run() {
	for tr := range w.tasks {
		w.runTask(tr)
		w.s.release(w)
	}
}

// runTask drives one task through its lifecycle: Execute, then the Update
// loop if the module steps, then result collection and the completion
// signal. Cancellation does not interrupt the running body; instead the
// final token swap fails and the results are silently dropped.
func (w *Worker) runTask(tr taskRun) {
	start := time.Now()
	out := tr.module.Execute(w.s.baseCtx, tr.args...)

	if tr.step != nil {
		last := time.Now()
		for !tr.step.Finished() {
			// A cancelled token means nobody is listening anymore; stop
			// stepping instead of spinning to the natural end.
			if w.token.Load() != tr.token {
				break
			}
			time.Sleep(w.s.tick)
			now := time.Now()
			tr.step.Update(now.Sub(last))
			last = now
		}
	}

	if tr.results != nil {
		out = tr.results.Results()
	}

	w.s.metrics.taskDuration.Observe(time.Since(start).Seconds())

	if w.token.CompareAndSwap(tr.token, tokenNone) {
		w.s.deliver(tr.token, Completion{OK: true, Results: out})
		return
	}
	w.s.logger.Debug("dropping completion for stale token", "worker", w.id, "token", tr.token)
}

// acquire pops an idle worker, cancelling its pending eviction, or allocates
// a fresh one; labels it and stamps the next token.
func (s *Scheduler) acquire(label string) (*Worker, uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		panic("sched: dispatch on closed scheduler")
	}

	var w *Worker
	if n := len(s.idle); n > 0 {
		w = s.idle[n-1]
		s.idle = s.idle[:n-1]
		if w.evict != nil {
			// If the timer already fired, evictIdle will no longer find
			// this worker in the free list and backs off.
			w.evict.Stop()
			w.evict = nil
		}
	} else {
		w = &Worker{id: s.nextID, s: s, tasks: make(chan taskRun, 1)}
		w.token.Store(tokenNone)
		s.nextID++
		s.live++
		s.metrics.workersLive.Inc()
		go w.run()
	}

	w.label = label
	token := s.counter
	s.counter = (s.counter + 1) % tokenModulus
	w.token.Store(token)
	return w, token
}

// release clears the worker's label and token and returns it to the free
// list, scheduling eviction after the grace period. Called from the worker's
// own goroutine between tasks.
func (s *Scheduler) release(w *Worker) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w.label = ""
	w.token.Store(tokenNone)

	if s.closed {
		close(w.tasks)
		s.live--
		s.metrics.workersLive.Dec()
		return
	}

	s.idle = append(s.idle, w)
	w.evict = time.AfterFunc(s.grace, func() { s.evictIdle(w) })
}

// evictIdle destroys a worker whose grace period elapsed without reuse. If
// the worker was reacquired (or the scheduler closed) in the meantime it is
// no longer in the free list and nothing happens.
func (s *Scheduler) evictIdle(w *Worker) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, cand := range s.idle {
		if cand == w {
			s.idle = append(s.idle[:i], s.idle[i+1:]...)
			close(w.tasks)
			s.live--
			s.metrics.workersLive.Dec()
			s.metrics.evictions.Inc()
			s.logger.Debug("idle worker evicted", "worker", w.id)
			return
		}
	}
}
