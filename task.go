package orchestra

import (
	"strconv"

	"github.com/ygrebnov/errorc"
)

// Task is one immutable unit of work: an identifier plus opaque parameters for the compute function.
// The ID is used only to re-order results once the batch completes; it is never a scheduling hint.
type Task[P any] struct {
	ID     uint64
	Params P
}

// TaskResult carries the output of a single Task, tagged with that Task's ID.
type TaskResult[O any] struct {
	ID     uint64
	Output O
}

// ComputeFunc is the work executed for every task.
// It must be safe to call concurrently and must not share mutable state across calls.
type ComputeFunc[P, O any] func(P) O

// NewTasks wraps params into tasks with dense 0-based IDs assigned in submission order.
func NewTasks[P any](params []P) []Task[P] {
	tasks := make([]Task[P], len(params))
	for i, p := range params {
		tasks[i] = Task[P]{ID: uint64(i), Params: p}
	}
	return tasks
}

// validateTasks rejects batches with duplicate IDs.
func validateTasks[P any](tasks []Task[P]) error {
	seen := make(map[uint64]struct{}, len(tasks))
	for _, t := range tasks {
		if _, dup := seen[t.ID]; dup {
			return errorc.With(ErrInvalidInput, errorc.String("duplicate task id", strconv.FormatUint(t.ID, 10)))
		}
		seen[t.ID] = struct{}{}
	}
	return nil
}

// message is what travels on the dispatch channel: either a task or a termination signal.
type message[P any] struct {
	task      Task[P]
	terminate bool
}

// outcome is what travels on the results channel.
// A nil err means result holds the task output.
type outcome[O any] struct {
	result   TaskResult[O]
	err      error
	worker   int
	duration float64
}
