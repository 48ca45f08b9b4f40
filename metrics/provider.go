// Package metrics defines the instruments a batch records and two providers:
// an in-memory BasicProvider and a discarding NoopProvider.
package metrics

// Instrument names recorded by an orchestra batch.
const (
	TasksDispatched = "orchestra_tasks_dispatched_total"
	TasksCompleted  = "orchestra_tasks_completed_total"
	TasksFailed     = "orchestra_tasks_failed_total"
	WorkersBusy     = "orchestra_workers_busy"
	TaskDuration    = "orchestra_task_duration_seconds"
)

// Provider constructs instruments used to record metrics.
// Implementations must be safe for concurrent use.
type Provider interface {
	Counter(name string, opts ...InstrumentOption) Counter
	UpDownCounter(name string, opts ...InstrumentOption) UpDownCounter
	Histogram(name string, opts ...InstrumentOption) Histogram
}

// Counter records monotonic counts.
type Counter interface {
	Add(n int64)
}

// UpDownCounter records values that can move up or down, e.g. busy workers.
type UpDownCounter interface {
	Add(n int64)
}

// Histogram records a distribution of float64 measurements such as durations in seconds.
type Histogram interface {
	Record(v float64)
}

// InstrumentConfig carries optional instrument metadata. It's advisory only.
type InstrumentConfig struct {
	Description string
	Unit        string
}

// InstrumentOption mutates InstrumentConfig.
type InstrumentOption func(*InstrumentConfig)

// WithDescription sets an advisory description for the instrument.
func WithDescription(desc string) InstrumentOption {
	return func(c *InstrumentConfig) { c.Description = desc }
}

// WithUnit sets an advisory unit for the instrument (e.g., "1", "seconds").
func WithUnit(unit string) InstrumentOption {
	return func(c *InstrumentConfig) { c.Unit = unit }
}

func applyOptions(opts []InstrumentOption) InstrumentConfig {
	var cfg InstrumentConfig
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}
	return cfg
}
