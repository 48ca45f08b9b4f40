package orchestra

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// worker executes dispatched tasks until it receives a termination signal.
// Workers are interchangeable: any worker may claim any task from the shared dispatch channel.
type worker[P, O any] struct {
	id      int
	compute ComputeFunc[P, O]
	inbox   <-chan message[P]
	outbox  chan<- outcome[O]
	logger  *zap.Logger
}

func newWorker[P, O any](
	id int, compute ComputeFunc[P, O], inbox <-chan message[P], outbox chan<- outcome[O], logger *zap.Logger,
) *worker[P, O] {
	return &worker[P, O]{id: id, compute: compute, inbox: inbox, outbox: outbox, logger: logger}
}

// run is the worker loop. A closed inbox means the orchestrator lost track of this
// worker, so it panics instead of returning silently.
func (w *worker[P, O]) run() {
	w.logger.Debug("worker started")
	for {
		msg, ok := <-w.inbox
		if !ok {
			panic(fmt.Errorf("%w: worker %d", ErrDispatchDisconnected, w.id))
		}
		if msg.terminate {
			w.logger.Debug("worker terminating")
			return
		}
		w.outbox <- w.execute(msg.task)
	}
}

// execute runs compute for t, converting a panic into a tagged task error.
func (w *worker[P, O]) execute(t Task[P]) (out outcome[O]) {
	start := time.Now()
	out.worker = w.id
	out.result.ID = t.ID

	defer func() {
		out.duration = time.Since(start).Seconds()
		if p := recover(); p != nil {
			out.err = newTaskError(fmt.Errorf("%w: %v", ErrTaskPanicked, p), t.ID, w.id)
		}
	}()

	out.result.Output = w.compute(t.Params)
	return out
}
