package orchestra

// Map applies compute to every element of params concurrently and returns the
// outputs in input order. Tasks get dense IDs via NewTasks.
func Map[P, O any](params []P, compute ComputeFunc[P, O], opts ...Option) ([]O, error) {
	results, err := RunAll[P, O](NewTasks(params), compute, opts...)
	if err != nil {
		return nil, err
	}
	out := make([]O, len(results))
	for i, r := range results {
		out[i] = r.Output
	}
	return out, nil
}
