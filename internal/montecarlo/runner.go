// Package montecarlo orchestrates the simulation run: it executes the
// configured number of independent trajectories in fixed-size chunks,
// reports progress at chunk boundaries, honors cancellation between
// chunks, and assembles the aggregate result.
package montecarlo

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/AlanSharfman/stratfit-godmode-sub001/internal/aggregate"
	"github.com/AlanSharfman/stratfit-godmode-sub001/internal/config"
	"github.com/AlanSharfman/stratfit-godmode-sub001/internal/sensitivity"
	"github.com/AlanSharfman/stratfit-godmode-sub001/internal/trajectory"
	"github.com/AlanSharfman/stratfit-godmode-sub001/pkg/constants"
	"go.uber.org/zap"
)

// ErrCancelled indicates the caller cancelled the run between chunks.
// Partial results are discarded; a cancelled run never yields an ensemble.
var ErrCancelled = errors.New("run cancelled")

// Progress reports completed work at a chunk boundary.
type Progress struct {
	CompletedIterations int `json:"completedIterations"`
	TotalIterations     int `json:"totalIterations"`
}

// ProgressFunc receives a Progress notification after each chunk.
type ProgressFunc func(Progress)

// Runner executes Monte Carlo runs. The zero value is not usable;
// construct with NewRunner.
type Runner struct {
	logger    *zap.Logger
	chunkSize int
	workers   int

	// Timeout bounds the wall-clock duration of a run. Zero disables it.
	Timeout time.Duration

	// simulate is the trajectory function; replaced in tests to count calls.
	simulate func(int, config.LeverState, config.SimulationConfig) (trajectory.SingleSimulationResult, error)
}

// NewRunner constructs a Runner with the default chunk size and one worker
// per CPU.
func NewRunner(logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		logger:    logger,
		chunkSize: constants.DefaultChunkSize,
		workers:   runtime.NumCPU(),
		simulate:  trajectory.Simulate,
	}
}

// Run executes iterations 0..cfg.Iterations-1 and returns the full
// ensemble. Each iteration writes exactly one disjoint slot of the result
// buffer, so parallel execution needs no locking and the ensemble stays
// addressable by iteration index. Cancellation is checked only at chunk
// boundaries; a cancelled run returns ErrCancelled and no results.
func (r *Runner) Run(ctx context.Context, levers config.LeverState, cfg config.SimulationConfig, onProgress ProgressFunc) ([]trajectory.SingleSimulationResult, error) {
	if err := config.Validate(levers, cfg); err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	results := make([]trajectory.SingleSimulationResult, cfg.Iterations)

	for start := 0; start < cfg.Iterations; start += r.chunkSize {
		if err := ctx.Err(); err != nil {
			r.logger.Info("run cancelled between chunks",
				zap.String("op", "montecarlo.Run"),
				zap.Int("completedIterations", start),
			)
			return nil, fmt.Errorf("%w: %v", ErrCancelled, err)
		}

		end := start + r.chunkSize
		if end > cfg.Iterations {
			end = cfg.Iterations
		}

		if err := r.runChunk(results, start, end, levers, cfg); err != nil {
			return nil, err
		}

		if onProgress != nil {
			onProgress(Progress{CompletedIterations: end, TotalIterations: cfg.Iterations})
		}
	}

	return results, nil
}

// runChunk fans the chunk's iterations out across the worker count.
// Workers take interleaved indices; each writes only its own slots.
func (r *Runner) runChunk(results []trajectory.SingleSimulationResult, start, end int, levers config.LeverState, cfg config.SimulationConfig) error {
	workers := r.workers
	if workers < 1 {
		workers = 1
	}
	if workers > end-start {
		workers = end - start
	}

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for i := start + worker; i < end; i += workers {
				result, err := r.simulate(i, levers, cfg)
				if err != nil {
					errs[worker] = err
					return
				}
				results[i] = result
			}
		}(w)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// RunAnalysis runs the full pipeline: ensemble, aggregation, sensitivity
// attribution, and execution timing.
func (r *Runner) RunAnalysis(ctx context.Context, levers config.LeverState, cfg config.SimulationConfig, onProgress ProgressFunc) (*aggregate.MonteCarloResult, error) {
	started := time.Now()

	ensemble, err := r.Run(ctx, levers, cfg, onProgress)
	if err != nil {
		return nil, err
	}

	result, err := aggregate.Aggregate(ensemble, cfg)
	if err != nil {
		return nil, err
	}

	factors, err := sensitivity.Estimate(r.logger, levers, cfg, result)
	if err != nil {
		return nil, err
	}
	result.SensitivityFactors = factors
	result.ExecutionTimeMs = float64(time.Since(started).Microseconds()) / 1000

	r.logger.Info("monte carlo run complete",
		zap.String("op", "montecarlo.RunAnalysis"),
		zap.Int("iterations", result.Iterations),
		zap.Float64("survivalRate", result.SurvivalRate),
		zap.Float64("executionTimeMs", result.ExecutionTimeMs),
	)

	return result, nil
}
