package orchestra

import (
	"runtime"

	"github.com/google/uuid"
	"github.com/ygrebnov/errorc"
	"go.uber.org/zap"

	"github.com/ygrebnov/orchestra/metrics"
)

// config holds Orchestrator configuration.
type config struct {
	// Workers defines the number of worker goroutines spawned for the batch.
	// Default: runtime.NumCPU(), minimum 1.
	Workers uint

	// Logger receives batch, worker and state transition events.
	// Default: zap.NewNop().
	Logger *zap.Logger

	// Metrics is the provider instruments are created from.
	// Default: metrics.NoopProvider.
	Metrics metrics.Provider

	// BatchID identifies the batch in log entries.
	// Default: a random UUID.
	BatchID string
}

// defaultConfig centralizes default values for config.
func defaultConfig() config {
	return config{
		Workers: defaultWorkers(),
		Logger:  zap.NewNop(),
		Metrics: metrics.NewNoopProvider(),
		BatchID: uuid.NewString(),
	}
}

func defaultWorkers() uint {
	n := runtime.NumCPU()
	if n < 1 {
		return 1
	}
	return uint(n)
}

// validateConfig checks invariants options cannot enforce on their own.
func validateConfig(cfg *config) error {
	if cfg.Workers == 0 {
		return errorc.With(ErrInvalidConfig, errorc.String("", "workers must be > 0"))
	}
	if cfg.Logger == nil {
		return errorc.With(ErrInvalidConfig, errorc.String("", "logger must not be nil"))
	}
	if cfg.Metrics == nil {
		return errorc.With(ErrInvalidConfig, errorc.String("", "metrics provider must not be nil"))
	}
	return nil
}

// Option configures an Orchestrator. Use New(tasks, compute, opts...) to construct one.
type Option func(*config) error

// WithWorkers sets the fixed number of workers (must be > 0).
func WithWorkers(n uint) Option {
	return func(cfg *config) error {
		if n == 0 {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithWorkers requires n > 0"))
		}
		cfg.Workers = n
		return nil
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *zap.Logger) Option {
	return func(cfg *config) error {
		if l == nil {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithLogger requires a non-nil logger"))
		}
		cfg.Logger = l
		return nil
	}
}

// WithMetrics sets the metrics provider.
func WithMetrics(p metrics.Provider) Option {
	return func(cfg *config) error {
		if p == nil {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithMetrics requires a non-nil provider"))
		}
		cfg.Metrics = p
		return nil
	}
}

// WithBatchID overrides the generated batch identifier.
func WithBatchID(id string) Option {
	return func(cfg *config) error {
		if id == "" {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithBatchID requires a non-empty id"))
		}
		cfg.BatchID = id
		return nil
	}
}
