package orchestra

import (
	"errors"
	"fmt"
)

// TaskMetaError exposes correlation metadata for a task failure.
type TaskMetaError interface {
	error
	Unwrap() error
	TaskID() uint64
	WorkerID() int
}

// TaskError reports a failed task together with the worker that executed it.
type TaskError struct {
	err    error
	id     uint64
	worker int
}

func newTaskError(err error, id uint64, worker int) error {
	if err == nil {
		return nil
	}
	return &TaskError{err: err, id: id, worker: worker}
}

func (e *TaskError) Error() string  { return fmt.Sprintf("task %d (worker %d): %s", e.id, e.worker, e.err) }
func (e *TaskError) Unwrap() error  { return e.err }
func (e *TaskError) TaskID() uint64 { return e.id }
func (e *TaskError) WorkerID() int  { return e.worker }

func (e *TaskError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			_, _ = fmt.Fprintf(s, "task(id=%d,worker=%d): %+v", e.id, e.worker, e.err)
			return
		}
		fallthrough
	case 's':
		_, _ = fmt.Fprint(s, e.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.Error())
	}
}

// ExtractTaskID returns the failed task ID from err if present.
func ExtractTaskID(err error) (uint64, bool) {
	var tme TaskMetaError
	if errors.As(err, &tme) {
		return tme.TaskID(), true
	}
	return 0, false
}

// ExtractWorkerID returns the ID of the worker that reported err if present.
func ExtractWorkerID(err error) (int, bool) {
	var tme TaskMetaError
	if errors.As(err, &tme) {
		return tme.WorkerID(), true
	}
	return 0, false
}
