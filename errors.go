package orchestra

import "errors"

const Namespace = "orchestra"

var (
	ErrInvalidConfig = errors.New(Namespace + ": invalid configuration")
	ErrInvalidInput  = errors.New(Namespace + ": invalid batch input")
	ErrInvalidState  = errors.New(Namespace + ": operation not allowed in the current batch state")
	ErrTaskPanicked  = errors.New(Namespace + ": task execution panicked")

	// ErrDispatchDisconnected and ErrResultsDisconnected are never returned.
	// They are the panic values raised when a channel endpoint disappears mid-batch.
	ErrDispatchDisconnected = errors.New(Namespace + ": dispatch channel closed before termination signal")
	ErrResultsDisconnected  = errors.New(Namespace + ": results channel closed with tasks outstanding")
)
