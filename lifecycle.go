package orchestra

import (
	"cmp"
	"slices"
	"sync"
)

// lifecycleCoordinator encapsulates the shutdown sequence of a batch.
// It is a wiring helper: it doesn't own channels or workers; it runs the
// termination, join and finalization steps in a deterministic order.
//
// Close() is safe for concurrent calls; the sequence executes exactly once.
type lifecycleCoordinator struct {
	enter     func(State)
	terminate func()
	join      func()
	finalize  func() bool

	once sync.Once
}

func newLifecycleCoordinator(
	enter func(State),
	terminate func(),
	join func(),
	finalize func() bool,
) *lifecycleCoordinator {
	return &lifecycleCoordinator{
		enter:     enter,
		terminate: terminate,
		join:      join,
		finalize:  finalize,
	}
}

// Close executes the shutdown sequence exactly once:
// 1) enter Terminating and send one termination signal per worker
// 2) join every worker
// 3) enter Joined
// 4) finalize; enter Sorted on success, Failed otherwise
func (lc *lifecycleCoordinator) Close() {
	lc.once.Do(func() {
		lc.enter(Terminating)
		if lc.terminate != nil {
			lc.terminate()
		}
		if lc.join != nil {
			lc.join()
		}
		lc.enter(Joined)
		if lc.finalize != nil && lc.finalize() {
			lc.enter(Sorted)
			return
		}
		lc.enter(Failed)
	})
}

// shutdown terminates and joins the workers, then sorts the results unless the batch failed.
func (o *Orchestrator[P, O]) shutdown() {
	lc := newLifecycleCoordinator(
		o.setState,
		o.broadcastTerminate,
		o.workers.Wait,
		func() bool {
			defer o.finished.Store(true)
			if o.failure != nil {
				o.collected = nil
				return false
			}
			sortResults(o.collected)
			return true
		},
	)
	lc.Close()
}

// broadcastTerminate sends exactly one termination signal per worker.
// Every worker is idle at this point, so the buffered sends never block.
func (o *Orchestrator[P, O]) broadcastTerminate() {
	for i := 0; i < o.size; i++ {
		o.dispatch <- message[P]{terminate: true}
	}
}

func sortResults[O any](results []TaskResult[O]) {
	slices.SortFunc(results, func(a, b TaskResult[O]) int { return cmp.Compare(a.ID, b.ID) })
}
