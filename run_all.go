package orchestra

// RunAll executes tasks on a new Orchestrator configured by opts.
// It owns the lifecycle: New, Run, then Results.
//
// Semantics:
// - Results are returned sorted by task ID, not in completion order.
// - Any task failure aborts the batch; the error is returned with no results.
func RunAll[P, O any](tasks []Task[P], compute ComputeFunc[P, O], opts ...Option) ([]TaskResult[O], error) {
	o, err := New[P, O](tasks, compute, opts...)
	if err != nil {
		return nil, err
	}
	if err = o.Run(); err != nil {
		return nil, err
	}
	return o.Results()
}
