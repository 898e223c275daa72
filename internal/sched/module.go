package sched

import (
	"context"
	"fmt"
	"time"
)

// Module is the unit of work handed to a pool worker. Execute is called once
// per dispatch, on the worker, at start; it may run the whole task to
// completion and return its result values directly, or initialize state for
// a task that also implements Stepper.
//
// The remaining lifecycle capabilities are optional and discovered by
// interface assertion once at dispatch time: a module may additionally
// implement Stepper, ResultProvider, or Labeled. Omitting a capability means
// "not applicable", never an error.
type Module interface {
	Execute(ctx context.Context, args ...any) []any
}

// Stepper is implemented by modules that iterate after Execute. The worker
// calls Update once per scheduling tick and polls Finished around each call;
// once Finished reports true the task concludes and its completion signal
// fires.
type Stepper interface {
	Update(dt time.Duration)
	Finished() bool
}

// ResultProvider is implemented by modules that marshal their results at the
// end of the task instead of returning them from Execute. Results is called
// exactly once, when the task is concluding, and its return values replace
// whatever Execute returned.
type ResultProvider interface {
	Results() []any
}

// Labeled lets a module name itself; the name is stamped on the worker for
// the duration of the task and shows up in logs. Modules without it are
// labeled by their Go type.
type Labeled interface {
	Name() string
}

func moduleLabel(m Module) string {
	if l, ok := m.(Labeled); ok {
		return l.Name()
	}
	return fmt.Sprintf("%T", m)
}
