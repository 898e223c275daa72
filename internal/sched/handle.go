package sched

// Handle is returned by Dispatch. It correlates one task's completion by the
// token stamped at dispatch time.
type Handle struct {
	s     *Scheduler
	w     *Worker
	token uint32
	done  chan Completion
}

// Done returns the channel the task's single completion signal is delivered
// on. The channel is buffered; the signal is never lost to a slow reader.
func (h *Handle) Done() <-chan Completion {
	return h.done
}

// WorkerID identifies the worker the dispatch was loaned. Worker identity is
// stable across reuse, which makes it useful in logs and pool diagnostics.
func (h *Handle) WorkerID() int {
	return h.w.id
}

// Cancel attempts to cancel the dispatch. It succeeds at most once, and only
// while the handle's token still matches the worker's live token: on success
// the worker's token is cleared so the task's eventual natural completion is
// dropped, the completion signal fires with OK false, and Cancel reports
// true. Once the task has completed, been cancelled, or the worker moved on
// to other work, Cancel reports false.
func (h *Handle) Cancel() bool {
	if !h.w.token.CompareAndSwap(h.token, tokenNone) {
		return false
	}
	h.s.metrics.cancellations.Inc()
	h.s.logger.Debug("task cancelled", "worker", h.w.id, "token", h.token)
	h.s.deliver(h.token, Completion{OK: false})
	return true
}
