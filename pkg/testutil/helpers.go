// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/AlanSharfman/stratfit-godmode-sub001/internal/config"
	"github.com/AlanSharfman/stratfit-godmode-sub001/internal/trajectory"
)

// BaselineConfig returns the standard test run parameters: a venture with
// a long naive runway so neutral levers survive the horizon.
func BaselineConfig(iterations int) config.SimulationConfig {
	cfg := config.SimulationConfig{
		Iterations:        iterations,
		TimeHorizonMonths: 36,
		StartingCash:      4000000,
		StartingARR:       4800000,
		MonthlyBurn:       47000,
	}
	cfg.ApplyDefaults()
	return cfg
}

// BuildEnsemble simulates iterations 0..cfg.Iterations-1 sequentially.
// Panics on simulation error; tests that exercise error paths call
// trajectory.Simulate directly.
func BuildEnsemble(levers config.LeverState, cfg config.SimulationConfig) []trajectory.SingleSimulationResult {
	results := make([]trajectory.SingleSimulationResult, cfg.Iterations)
	for i := 0; i < cfg.Iterations; i++ {
		result, err := trajectory.Simulate(i, levers, cfg)
		if err != nil {
			panic(err)
		}
		results[i] = result
	}
	return results
}

// SyntheticResult builds a minimal simulation result with the given final
// ARR and survival, for aggregation tests that need handcrafted ensembles.
func SyntheticResult(index int, finalARR float64, survivalMonths, horizonMonths int) trajectory.SingleSimulationResult {
	didSurvive := survivalMonths >= horizonMonths
	snapshots := make([]trajectory.MonthlySnapshot, survivalMonths)
	for m := 1; m <= survivalMonths; m++ {
		snapshots[m-1] = trajectory.MonthlySnapshot{
			Month: m,
			ARR:   finalARR,
			Cash:  float64(survivalMonths-m) * 1000,
		}
	}
	return trajectory.SingleSimulationResult{
		IterationIndex:   index,
		FinalARR:         finalARR,
		FinalCash:        float64(survivalMonths) * 1000,
		FinalRunway:      float64(survivalMonths),
		SurvivalMonths:   survivalMonths,
		DidSurvive:       didSurvive,
		MonthlySnapshots: snapshots,
	}
}
