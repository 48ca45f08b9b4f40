// Package orchestra distributes a batch of independent, CPU-bound tasks across a
// fixed pool of worker goroutines and returns every result sorted by task ID.
//
// Constructors
//   - New(tasks, compute, opts ...Option): validates the batch and spawns the workers.
//   - RunAll / Map: one-call helpers that own the whole lifecycle.
//
// Defaults
// Unless overridden, the following defaults apply:
//   - Workers: runtime.NumCPU() (minimum 1)
//   - Logger: zap.NewNop()
//   - Metrics: metrics.NoopProvider
//   - BatchID: random UUID
//
// Batch lifecycle
// The goroutine calling Run is the only owner of the backlog, the availability
// counter and the result set. It greedily dispatches tasks to idle workers, blocks
// until at least one result arrives, drains any further ready results without
// blocking, and repeats until the backlog is empty and all workers are idle. It then
// sends one termination signal per worker, joins them all and sorts the results.
//
// Failures
// There is no cancellation, no timeout and no partial result delivery. A panic in
// the compute function aborts the batch with a *TaskError. A channel closed while the
// batch is in progress is an invariant violation and panics in the goroutine that
// observes it.
package orchestra
