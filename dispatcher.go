package orchestra

import (
	"fmt"

	"go.uber.org/zap"
)

// loop is the dispatch/drain cycle run on the caller's goroutine.
// The blocking receive in awaitResult is its only suspension point.
func (o *Orchestrator[P, O]) loop() {
	for {
		if o.idle() {
			o.setState(AllIdleEmpty)
			return
		}

		o.setState(Dispatching)
		o.dispatchPending()

		o.setState(Draining)
		o.collect(o.awaitResult())
		o.drainReady()
	}
}

// idle reports the loop exit condition: nothing left to dispatch and every worker free.
// After a failure the remaining backlog is abandoned.
func (o *Orchestrator[P, O]) idle() bool {
	return (len(o.backlog) == 0 || o.failure != nil) && o.available == o.size
}

// dispatchPending saturates idle workers from the front of the backlog.
// It stops as soon as no worker is available; sends never block because the
// dispatch buffer holds one slot per worker.
func (o *Orchestrator[P, O]) dispatchPending() {
	for len(o.backlog) > 0 && o.available > 0 && o.failure == nil {
		t := o.backlog[0]
		o.backlog[0] = Task[P]{}
		o.backlog = o.backlog[1:]

		o.dispatch <- message[P]{task: t}
		o.available--
		o.instruments.dispatched.Add(1)
		o.instruments.busy.Add(1)
	}
}

// awaitResult blocks until a worker reports a completed task.
func (o *Orchestrator[P, O]) awaitResult() outcome[O] {
	out, ok := <-o.results
	if !ok {
		panic(fmt.Errorf("%w: %d of %d workers busy", ErrResultsDisconnected, o.size-o.available, o.size))
	}
	return out
}

// drainReady collects already queued results without blocking.
func (o *Orchestrator[P, O]) drainReady() {
	for {
		select {
		case out, ok := <-o.results:
			if !ok {
				panic(fmt.Errorf("%w: %d of %d workers busy", ErrResultsDisconnected, o.size-o.available, o.size))
			}
			o.collect(out)
		default:
			return
		}
	}
}

// collect frees the reporting worker and records its result or failure.
func (o *Orchestrator[P, O]) collect(out outcome[O]) {
	o.available++
	o.instruments.busy.Add(-1)
	o.instruments.duration.Record(out.duration)

	if out.err != nil {
		o.instruments.failed.Add(1)
		o.logger.Error("task failed",
			zap.Uint64("task", out.result.ID),
			zap.Int("worker", out.worker),
			zap.Error(out.err),
		)
		if o.failure == nil {
			o.failure = out.err
		}
		return
	}

	o.instruments.completed.Add(1)
	o.collected = append(o.collected, out.result)
}
