// Command kelly sweeps the bet proportion of the Kelly criterion betting game and
// prints, per proportion, the average final money and the share of games that went
// bust or reached the cap.
//
// Usage:
//
//	kelly [flags] single|multi REPETITIONS
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/ygrebnov/orchestra"
	"github.com/ygrebnov/orchestra/metrics"
	"github.com/ygrebnov/orchestra/simulation"
)

var errUsage = errors.New("usage")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("kelly", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML file with game, sweep and log settings")
	workers := fs.Uint("workers", 0, "worker count for multi mode (default: config or number of CPUs)")
	steps := fs.Int("steps", 0, "number of bet proportion increments between 0 and 1 (default: config or 100)")
	seed := fs.Uint64("seed", 0, "base seed; task i uses seed+i (default: config)")
	logLevel := fs.String("log-level", "", "debug|info|warn|error (default: config or warn)")
	logFormat := fs.String("log-format", "", "console|json (default: config or console)")
	logFile := fs.String("log-file", "", "write logs to this file instead of stderr")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: kelly [flags] single|multi REPETITIONS")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	// Explicit flags win over the file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "workers":
			cfg.Workers = *workers
		case "steps":
			cfg.Steps = *steps
		case "seed":
			cfg.Seed = *seed
		case "log-level":
			cfg.Log.Level = *logLevel
		case "log-format":
			cfg.Log.Format = *logFormat
		case "log-file":
			cfg.Log.File = *logFile
		}
	})

	mode, repetitions, err := parseArgs(fs.Args())
	if err != nil {
		fmt.Fprintln(stderr, err)
		fs.Usage()
		return 2
	}
	if mode == "single" {
		cfg.Workers = 1
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(stderr, "logger: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	params, err := simulation.Sweep(cfg.Game, repetitions, cfg.Steps, cfg.Seed)
	if err != nil {
		fmt.Fprintln(stderr, err)
		fs.Usage()
		return 2
	}

	provider := metrics.NewBasicProvider()
	opts := []orchestra.Option{orchestra.WithLogger(logger), orchestra.WithMetrics(provider)}
	if cfg.Workers > 0 {
		opts = append(opts, orchestra.WithWorkers(cfg.Workers))
	}

	results, err := orchestra.RunAll(orchestra.NewTasks(params), simulation.Compute, opts...)
	if err != nil {
		logger.Error("batch aborted", zap.Error(err))
		fmt.Fprintln(stderr, err)
		return 1
	}

	logger.Info("sweep complete",
		zap.String("mode", mode),
		zap.Int("repetitions", repetitions),
		zap.Int64("tasks", provider.CounterValue(metrics.TasksCompleted)),
		zap.Float64("mean_task_seconds", provider.HistogramSnapshot(metrics.TaskDuration).Mean),
	)

	if err = render(stdout, results); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

// parseArgs validates the positional MODE and REPETITIONS arguments.
func parseArgs(args []string) (string, int, error) {
	if len(args) != 2 {
		return "", 0, fmt.Errorf("%w: expected MODE and REPETITIONS, got %d arguments", errUsage, len(args))
	}
	mode := args[0]
	if mode != "single" && mode != "multi" {
		return "", 0, fmt.Errorf("%w: unknown mode %q", errUsage, mode)
	}
	repetitions, err := strconv.Atoi(args[1])
	if err != nil || repetitions <= 0 {
		return "", 0, fmt.Errorf("%w: repetitions should be a positive integer, got %q", errUsage, args[1])
	}
	return mode, repetitions, nil
}

// render writes one tab separated row per bet proportion in task order.
func render(w io.Writer, results []orchestra.TaskResult[simulation.Summary]) error {
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	fmt.Fprintln(tw, "bet%\tavg_money\tlost%\tmaxed%")
	for _, r := range results {
		s := r.Output
		fmt.Fprintf(tw, "%d\t%.4f\t%.2f\t%.2f\n",
			int64(math.Floor(100*s.BetProportion+1e-9)),
			s.AvgMoney,
			100*s.PropLost,
			100*s.PropMaxed,
		)
	}
	return tw.Flush()
}
