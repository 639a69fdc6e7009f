// Package sensitivity attributes outcome variance to each strategic lever
// via central finite-difference perturbation over reduced deterministic
// ensembles.
package sensitivity

import (
	"fmt"
	"math"
	"sort"

	"github.com/AlanSharfman/stratfit-godmode-sub001/internal/aggregate"
	"github.com/AlanSharfman/stratfit-godmode-sub001/internal/config"
	"github.com/AlanSharfman/stratfit-godmode-sub001/internal/trajectory"
	"github.com/AlanSharfman/stratfit-godmode-sub001/pkg/constants"
	"github.com/AlanSharfman/stratfit-godmode-sub001/pkg/mathutil"
	"go.uber.org/zap"
)

// Weights of the composite outcome metric each perturbation is scored on.
const (
	survivalWeight = 0.6
	growthWeight   = 0.4
)

const directionEpsilon = 1e-9

// Estimate perturbs each lever in isolation, scores the shift in the
// composite outcome metric, and returns one factor per lever ranked by
// absolute impact. Impacts are normalized into [-1, 1] against the
// strongest lever. Perturbation runs reuse the run's base seed, so the
// estimate is deterministic for a given input.
func Estimate(logger *zap.Logger, levers config.LeverState, cfg config.SimulationConfig, baseline *aggregate.MonteCarloResult) ([]aggregate.SensitivityFactor, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if baseline == nil {
		return nil, fmt.Errorf("%w: sensitivity estimation requires a baseline result", aggregate.ErrEmptyEnsemble)
	}

	arrScale := baseline.ARR.Stats.Median
	if arrScale <= 0 {
		arrScale = 1
	}

	reduced := cfg
	reduced.Iterations = constants.SensitivityIterations

	raw := make(map[config.Lever]float64, constants.LeverCount)
	for _, lever := range config.Levers() {
		value := levers.Value(lever)
		up := levers.With(lever, mathutil.Clamp(value+constants.SensitivityDelta, constants.LeverMin, constants.LeverMax))
		down := levers.With(lever, mathutil.Clamp(value-constants.SensitivityDelta, constants.LeverMin, constants.LeverMax))

		upScore, err := outcomeScore(up, reduced, arrScale)
		if err != nil {
			return nil, err
		}
		downScore, err := outcomeScore(down, reduced, arrScale)
		if err != nil {
			return nil, err
		}

		raw[lever] = upScore - downScore
		logger.Debug(fmt.Sprintf("perturbed lever %s", lever),
			zap.String("op", "sensitivity.Estimate"),
			zap.Float64("upScore", upScore),
			zap.Float64("downScore", downScore),
		)
	}

	maxAbs := 0.0
	for _, impact := range raw {
		if math.Abs(impact) > maxAbs {
			maxAbs = math.Abs(impact)
		}
	}

	factors := make([]aggregate.SensitivityFactor, 0, constants.LeverCount)
	for _, lever := range config.Levers() {
		impact := 0.0
		if maxAbs > 0 {
			impact = raw[lever] / maxAbs
		}
		factors = append(factors, aggregate.SensitivityFactor{
			Lever:     lever,
			Label:     lever.Label(),
			Impact:    impact,
			Direction: direction(impact),
		})
	}

	// Rank by |impact|; ties keep canonical lever order.
	sort.SliceStable(factors, func(a, b int) bool {
		return math.Abs(factors[a].Impact) > math.Abs(factors[b].Impact)
	})

	return factors, nil
}

// outcomeScore runs a reduced deterministic ensemble and collapses it into
// the composite metric: weighted survival rate plus bounded median-ARR
// growth relative to the baseline median.
func outcomeScore(levers config.LeverState, cfg config.SimulationConfig, arrScale float64) (float64, error) {
	results := make([]trajectory.SingleSimulationResult, cfg.Iterations)
	for i := 0; i < cfg.Iterations; i++ {
		r, err := trajectory.Simulate(i, levers, cfg)
		if err != nil {
			return 0, err
		}
		results[i] = r
	}

	reduced, err := aggregate.Aggregate(results, cfg)
	if err != nil {
		return 0, err
	}

	growthRatio := mathutil.Clamp(reduced.ARR.Stats.Median/arrScale, 0, 2) / 2
	return survivalWeight*reduced.SurvivalRate + growthWeight*growthRatio, nil
}

func direction(impact float64) string {
	switch {
	case impact > directionEpsilon:
		return "positive"
	case impact < -directionEpsilon:
		return "negative"
	}
	return "neutral"
}
