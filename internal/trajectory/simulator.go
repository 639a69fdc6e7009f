// Package trajectory evolves a single venture's monthly financial state
// across the configured horizon, producing one simulation result per
// iteration index.
package trajectory

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/AlanSharfman/stratfit-godmode-sub001/internal/config"
	"github.com/AlanSharfman/stratfit-godmode-sub001/pkg/mathutil"
)

// ErrSimulationDivergence indicates a trajectory produced non-finite
// intermediate state from a pathological lever combination.
var ErrSimulationDivergence = errors.New("simulation divergence")

// MonthlySnapshot captures the venture's state at the end of one month.
type MonthlySnapshot struct {
	Month      int     `json:"month"`
	ARR        float64 `json:"arr"`
	Cash       float64 `json:"cash"`
	Runway     float64 `json:"runway"`
	Burn       float64 `json:"burn"`
	GrowthRate float64 `json:"growthRate"`
}

// SingleSimulationResult is the outcome of one simulated trajectory.
// Created once per iteration and never mutated afterward.
type SingleSimulationResult struct {
	IterationIndex   int               `json:"iterationIndex"`
	FinalARR         float64           `json:"finalARR"`
	FinalCash        float64           `json:"finalCash"`
	FinalRunway      float64           `json:"finalRunway"`
	SurvivalMonths   int               `json:"survivalMonths"`
	DidSurvive       bool              `json:"didSurvive"`
	MonthlySnapshots []MonthlySnapshot `json:"monthlySnapshots"`
}

// Growth and burn shaping coefficients. The clamp bands keep pathological
// lever combinations deterministic instead of letting them diverge.
const (
	growthDrift           = 0.005
	demandGrowthWeight    = 0.040
	pricingGrowthWeight   = 0.025
	expansionGrowthWeight = 0.035
	baseVolatility        = 0.010
	marketVolWeight       = 0.060
	executionVolWeight    = 0.040
	minMonthlyGrowth      = -0.35
	maxMonthlyGrowth      = 0.60

	hiringBurnWeight     = 0.35
	dragBurnWeight       = 0.25
	disciplineBurnWeight = 0.30
	fundingBurnWeight    = 0.20
	minBurnMultiplier    = 0.25
	maxBurnMultiplier    = 4.0
	baseBurnNoise        = 0.05
	fundingBurnNoise     = 0.10
	minBurnNoiseFactor   = 0.50
	maxBurnNoiseFactor   = 1.80
)

// mixIndex decorrelates adjacent iteration indices before seeding the
// per-iteration PCG stream (splitmix64 finalizer).
func mixIndex(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// Simulate runs one trajectory. It is a pure function of its inputs plus a
// deterministic random stream keyed by the iteration index, so the same
// index with the same inputs yields a bit-identical trajectory regardless
// of execution order.
//
// Death convention: cash at or below zero after a month's burn is death at
// that month; the dying month is recorded with cash clamped to zero.
// Surviving through the final horizon month counts as survival.
func Simulate(iterationIndex int, levers config.LeverState, cfg config.SimulationConfig) (SingleSimulationResult, error) {
	if iterationIndex < 0 {
		return SingleSimulationResult{}, fmt.Errorf("%w: iteration index %d is negative", config.ErrInvalidConfiguration, iterationIndex)
	}
	if err := config.Validate(levers, cfg); err != nil {
		return SingleSimulationResult{}, err
	}

	rng := rand.New(rand.NewPCG(uint64(cfg.BaseSeed), mixIndex(uint64(iterationIndex))))

	baseGrowth := growthDrift +
		demandGrowthWeight*(levers.DemandStrength-0.5) +
		pricingGrowthWeight*(levers.PricingPower-0.5) +
		expansionGrowthWeight*(levers.ExpansionVelocity-0.5)
	volatility := baseVolatility +
		marketVolWeight*levers.MarketVolatility +
		executionVolWeight*levers.ExecutionRisk

	burnMultiplier := mathutil.Clamp(1.0+
		hiringBurnWeight*(levers.HiringIntensity-0.5)+
		dragBurnWeight*(levers.OperatingDrag-0.5)-
		disciplineBurnWeight*(levers.CostDiscipline-0.5)+
		fundingBurnWeight*(levers.FundingPressure-0.5),
		minBurnMultiplier, maxBurnMultiplier)
	burnNoise := baseBurnNoise + fundingBurnNoise*levers.FundingPressure

	result := SingleSimulationResult{
		IterationIndex:   iterationIndex,
		MonthlySnapshots: make([]MonthlySnapshot, 0, cfg.TimeHorizonMonths),
	}

	arr := cfg.StartingARR
	cash := cfg.StartingCash

	for month := 1; month <= cfg.TimeHorizonMonths; month++ {
		growth := mathutil.Clamp(baseGrowth+rng.NormFloat64()*volatility, minMonthlyGrowth, maxMonthlyGrowth)
		arr *= 1 + growth
		if arr < 0 {
			arr = 0
		}

		noiseFactor := mathutil.Clamp(1+rng.NormFloat64()*burnNoise, minBurnNoiseFactor, maxBurnNoiseFactor)
		burn := cfg.MonthlyBurn * burnMultiplier * noiseFactor
		cash -= burn

		if !mathutil.IsFinite(arr) || !mathutil.IsFinite(cash) {
			return SingleSimulationResult{}, fmt.Errorf("%w: non-finite state at iteration %d month %d",
				ErrSimulationDivergence, iterationIndex, month)
		}

		if cash <= 0 {
			result.MonthlySnapshots = append(result.MonthlySnapshots, MonthlySnapshot{
				Month:      month,
				ARR:        arr,
				Cash:       0,
				Runway:     0,
				Burn:       burn,
				GrowthRate: growth,
			})
			result.SurvivalMonths = month
			result.DidSurvive = false
			break
		}

		runway := 0.0
		if burn > 0 {
			runway = cash / burn
		}
		result.MonthlySnapshots = append(result.MonthlySnapshots, MonthlySnapshot{
			Month:      month,
			ARR:        arr,
			Cash:       cash,
			Runway:     runway,
			Burn:       burn,
			GrowthRate: growth,
		})
	}

	if cash > 0 {
		result.SurvivalMonths = cfg.TimeHorizonMonths
		result.DidSurvive = true
	}

	last := result.MonthlySnapshots[len(result.MonthlySnapshots)-1]
	result.FinalARR = last.ARR
	result.FinalCash = last.Cash
	result.FinalRunway = last.Runway

	return result, nil
}
