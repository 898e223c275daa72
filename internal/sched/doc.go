// Package sched implements the parallel task scheduler: a pool of reusable
// workers with lazy allocation and idle eviction, per-dispatch cancellation
// tokens, and two invocation styles built on one-shot completion delivery.
//
// Dispatch hands a task module to a worker and immediately returns a
// cancellable Handle. Invoke does the same but blocks the caller until the
// task's single completion signal fires, returning the success flag and any
// result values. Completions are correlated strictly by token, never by
// finish order, so any number of dispatches can be in flight at once.
//
// Workers are created on demand, loaned to exactly one task at a time, and
// destroyed after sitting idle for a grace period with no reuse. The race
// between cancellation and natural completion is resolved by a compare-and-
// swap on the worker's stamped token: whichever side wins the swap emits the
// completion signal, the loser is a silent no-op.
package sched
