package orchestra

import (
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ygrebnov/errorc"
	"go.uber.org/zap"

	"github.com/ygrebnov/orchestra/metrics"
	"github.com/ygrebnov/orchestra/pool"
)

// Orchestrator runs one batch of tasks on a fixed set of workers and returns the results sorted by task ID.
//
// Lifecycle: New spawns the workers, Run executes the dispatch/drain loop on the calling
// goroutine until every task has completed and every worker has exited, Results hands the
// sorted result set over exactly once. An Orchestrator serves a single batch.
//
// The backlog, the availability counter and the result set are owned by the goroutine calling Run
// and are never touched by workers. Only State, Workers, LiveWorkers and BatchID are safe to call
// concurrently with Run.
type Orchestrator[P, O any] struct {
	// noCopy prevents accidental copying of the orchestrator.
	//go:nocopy
	nc noCopy

	config *config
	logger *zap.Logger

	compute ComputeFunc[P, O]

	backlog   []Task[P]
	total     int
	size      int
	available int
	collected []TaskResult[O]
	failure   error

	// dispatch has many consumers (workers) and one producer; results the reverse.
	// Both are buffered to size, which bounds the number of outstanding tasks.
	dispatch chan message[P]
	results  chan outcome[O]

	workers pool.Group

	state    atomic.Int32
	ran      atomic.Bool
	finished atomic.Bool
	consumed atomic.Bool

	closeOnce sync.Once

	instruments instruments
}

// noCopy is a vet-recognized marker to discourage copying types with this field embedded.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

type instruments struct {
	dispatched metrics.Counter
	completed  metrics.Counter
	failed     metrics.Counter
	busy       metrics.UpDownCounter
	duration   metrics.Histogram
}

func newInstruments(p metrics.Provider) instruments {
	return instruments{
		dispatched: p.Counter(metrics.TasksDispatched, metrics.WithUnit("1")),
		completed:  p.Counter(metrics.TasksCompleted, metrics.WithUnit("1")),
		failed:     p.Counter(metrics.TasksFailed, metrics.WithUnit("1")),
		busy:       p.UpDownCounter(metrics.WorkersBusy, metrics.WithUnit("1")),
		duration: p.Histogram(metrics.TaskDuration,
			metrics.WithUnit("seconds"),
			metrics.WithDescription("wall time of a single compute call"),
		),
	}
}

// New takes ownership of tasks, validates the batch and spawns the workers.
// Malformed input is rejected before any worker goroutine starts.
func New[P, O any](tasks []Task[P], compute ComputeFunc[P, O], opts ...Option) (*Orchestrator[P, O], error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	if compute == nil {
		return nil, errorc.With(ErrInvalidInput, errorc.String("", "compute function must not be nil"))
	}

	if err := validateTasks(tasks); err != nil {
		return nil, err
	}

	o := &Orchestrator[P, O]{}
	o.initialize(slices.Clone(tasks), compute, &cfg)
	o.spawnWorkers()
	return o, nil
}

// initialize sets up channels, counters and instruments from the configuration.
func (o *Orchestrator[P, O]) initialize(tasks []Task[P], compute ComputeFunc[P, O], cfg *config) {
	size := int(cfg.Workers)

	o.config = cfg
	o.logger = cfg.Logger.With(zap.String("batch", cfg.BatchID))
	o.compute = compute
	o.backlog = tasks
	o.total = len(tasks)
	o.size = size
	o.available = size
	o.collected = make([]TaskResult[O], 0, len(tasks))
	o.dispatch = make(chan message[P], size)
	o.results = make(chan outcome[O], size)
	o.instruments = newInstruments(cfg.Metrics)
	o.setState(Dispatching)
}

// spawnWorkers starts exactly size workers bound to the shared channel endpoints.
func (o *Orchestrator[P, O]) spawnWorkers() {
	for id := 0; id < o.size; id++ {
		w := newWorker[P, O](id, o.compute, o.dispatch, o.results, o.logger.With(zap.Int("worker", id)))
		o.workers.Go(id, func(int) { w.run() })
	}
}

// Run executes the dispatch/drain loop until the backlog is empty and every worker is idle,
// then terminates and joins all workers and sorts the collected results.
// It blocks the calling goroutine for the whole batch and may be called only once.
//
// A task whose compute call panics aborts the batch: no further tasks are dispatched,
// in-flight tasks are allowed to finish, workers are joined and the failure is returned.
func (o *Orchestrator[P, O]) Run() error {
	if !o.ran.CompareAndSwap(false, true) {
		return ErrInvalidState
	}

	start := time.Now()
	o.logger.Info("batch started", zap.Int("tasks", o.total), zap.Int("workers", o.size))

	o.loop()
	o.shutdown()

	if o.failure != nil {
		o.logger.Error("batch failed", zap.Error(o.failure), zap.Duration("elapsed", time.Since(start)))
		return o.failure
	}

	o.logger.Info("batch finished", zap.Int("results", len(o.collected)), zap.Duration("elapsed", time.Since(start)))
	return nil
}

// Results returns the id-sorted result set. It hands the results over exactly once and
// only after Run has returned; any other call yields ErrInvalidState.
// If the batch failed, the failure is returned and no partial results are delivered.
func (o *Orchestrator[P, O]) Results() ([]TaskResult[O], error) {
	if !o.finished.Load() {
		return nil, ErrInvalidState
	}
	if o.failure != nil {
		return nil, o.failure
	}
	if !o.consumed.CompareAndSwap(false, true) {
		return nil, ErrInvalidState
	}
	res := o.collected
	o.collected = nil
	return res, nil
}

// Close releases the workers of a batch that was never run.
// It is idempotent and a no-op once Run has been called; afterwards Run returns ErrInvalidState.
func (o *Orchestrator[P, O]) Close() {
	o.closeOnce.Do(func() {
		if !o.ran.CompareAndSwap(false, true) {
			return
		}
		o.logger.Debug("closing batch that was never run", zap.Int("tasks", len(o.backlog)))
		o.failure = ErrInvalidState
		o.backlog = nil
		o.shutdown()
	})
}

// State returns the current lifecycle state.
func (o *Orchestrator[P, O]) State() State { return State(o.state.Load()) }

// Workers returns the fixed pool size of the batch.
func (o *Orchestrator[P, O]) Workers() int { return o.size }

// LiveWorkers returns the number of worker goroutines of this batch that have not yet exited.
func (o *Orchestrator[P, O]) LiveWorkers() int { return o.workers.Live() }

// BatchID returns the identifier attached to log entries of this batch.
func (o *Orchestrator[P, O]) BatchID() string { return o.config.BatchID }

func (o *Orchestrator[P, O]) setState(s State) {
	prev := State(o.state.Swap(int32(s)))
	if prev != s && o.logger != nil {
		o.logger.Debug("state transition",
			zap.Stringer("from", prev),
			zap.Stringer("to", s),
			zap.Int("available", o.available),
			zap.Int("backlog", len(o.backlog)),
		)
	}
}
