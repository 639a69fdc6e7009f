// Package aggregate reduces a full simulation ensemble into distribution
// statistics, percentile sets, histograms, confidence bands, and
// representative scenario picks. All percentile and histogram math lives
// here and nowhere else.
package aggregate

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/AlanSharfman/stratfit-godmode-sub001/internal/config"
	"github.com/AlanSharfman/stratfit-godmode-sub001/internal/trajectory"
	"github.com/AlanSharfman/stratfit-godmode-sub001/pkg/constants"
)

// ErrEmptyEnsemble indicates the aggregator was invoked with zero results.
// This is a programmer error, not a degenerate-statistics case.
var ErrEmptyEnsemble = errors.New("empty ensemble")

// DistributionStats summarizes one scalar metric across the ensemble.
// Mean and standard deviation are population statistics (divide by n).
type DistributionStats struct {
	Mean     float64 `json:"mean"`
	Median   float64 `json:"median"`
	StdDev   float64 `json:"stdDev"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Skewness float64 `json:"skewness"`
}

// HistogramBucket is one equal-width bucket. A value v falls in the bucket
// when Min <= v < Max, except the final bucket which also captures v == Max.
type HistogramBucket struct {
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Count     int     `json:"count"`
	Frequency float64 `json:"frequency"`
}

// PercentileSet holds nearest-rank percentiles over a sorted ensemble.
type PercentileSet struct {
	P5  float64 `json:"p5"`
	P10 float64 `json:"p10"`
	P25 float64 `json:"p25"`
	P50 float64 `json:"p50"`
	P75 float64 `json:"p75"`
	P90 float64 `json:"p90"`
	P95 float64 `json:"p95"`
}

// ConfidenceBand holds per-month percentiles over the trajectories still
// alive at that month.
type ConfidenceBand struct {
	Month int     `json:"month"`
	P10   float64 `json:"p10"`
	P25   float64 `json:"p25"`
	P50   float64 `json:"p50"`
	P75   float64 `json:"p75"`
	P90   float64 `json:"p90"`
}

// SensitivityFactor attributes outcome variance to one lever.
type SensitivityFactor struct {
	Lever     config.Lever `json:"lever"`
	Label     string       `json:"label"`
	Impact    float64      `json:"impact"`
	Direction string       `json:"direction"`
}

// MetricSummary groups the distribution views of one scalar metric.
type MetricSummary struct {
	Stats       DistributionStats `json:"stats"`
	Histogram   []HistogramBucket `json:"histogram"`
	Percentiles PercentileSet     `json:"percentiles"`
}

// MonteCarloResult is the immutable aggregate output of one run.
type MonteCarloResult struct {
	Iterations           int                                 `json:"iterations"`
	TimeHorizonMonths    int                                 `json:"timeHorizonMonths"`
	ExecutionTimeMs      float64                             `json:"executionTimeMs"`
	SurvivalRate         float64                             `json:"survivalRate"`
	SurvivalByMonth      []float64                           `json:"survivalByMonth"`
	MedianSurvivalMonths float64                             `json:"medianSurvivalMonths"`
	ARR                  MetricSummary                       `json:"arr"`
	Cash                 MetricSummary                       `json:"cash"`
	Runway               MetricSummary                       `json:"runway"`
	ARRConfidenceBands   []ConfidenceBand                    `json:"arrConfidenceBands"`
	BestCase             trajectory.SingleSimulationResult   `json:"bestCase"`
	WorstCase            trajectory.SingleSimulationResult   `json:"worstCase"`
	MedianCase           trajectory.SingleSimulationResult   `json:"medianCase"`
	SensitivityFactors   []SensitivityFactor                 `json:"sensitivityFactors"`
	AllSimulations       []trajectory.SingleSimulationResult `json:"allSimulations"`
}

// Percentile returns the nearest-rank percentile of a sorted ascending
// slice: index = min(floor((p/100)*n), n-1). Not interpolated.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	index := int(math.Floor(p / 100 * float64(n)))
	if index > n-1 {
		index = n - 1
	}
	return sorted[index]
}

// Percentiles computes the standard percentile set over a sorted slice.
func Percentiles(sorted []float64) PercentileSet {
	return PercentileSet{
		P5:  Percentile(sorted, 5),
		P10: Percentile(sorted, 10),
		P25: Percentile(sorted, 25),
		P50: Percentile(sorted, 50),
		P75: Percentile(sorted, 75),
		P90: Percentile(sorted, 90),
		P95: Percentile(sorted, 95),
	}
}

// Stats computes population distribution statistics over a sorted slice.
// A zero standard deviation is substituted with 1 for the skewness term.
func Stats(sorted []float64) DistributionStats {
	n := len(sorted)
	fn := float64(n)

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	mean := sum / fn

	var sumSquares float64
	for _, v := range sorted {
		d := v - mean
		sumSquares += d * d
	}
	stdDev := math.Sqrt(sumSquares / fn)

	skewDenom := stdDev
	if skewDenom == 0 {
		skewDenom = 1
	}
	var skewSum float64
	for _, v := range sorted {
		d := (v - mean) / skewDenom
		skewSum += d * d * d
	}

	return DistributionStats{
		Mean:     mean,
		Median:   medianOfSorted(sorted),
		StdDev:   stdDev,
		Min:      sorted[0],
		Max:      sorted[n-1],
		Skewness: skewSum / fn,
	}
}

// Histogram buckets values into bucketCount equal-width buckets over
// [min, max]. Bucket frequencies sum to 1.
func Histogram(values []float64, bucketCount int) []HistogramBucket {
	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	width := (hi - lo) / float64(bucketCount)
	buckets := make([]HistogramBucket, bucketCount)
	for i := range buckets {
		buckets[i].Min = lo + float64(i)*width
		buckets[i].Max = lo + float64(i+1)*width
	}
	buckets[bucketCount-1].Max = hi

	for _, v := range values {
		index := 0
		if width > 0 {
			index = int((v - lo) / width)
			if index > bucketCount-1 {
				index = bucketCount - 1
			}
		}
		buckets[index].Count++
	}

	total := float64(len(values))
	for i := range buckets {
		buckets[i].Frequency = float64(buckets[i].Count) / total
	}
	return buckets
}

func medianOfSorted(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func summarize(values []float64, bucketCount int) MetricSummary {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return MetricSummary{
		Stats:       Stats(sorted),
		Histogram:   Histogram(values, bucketCount),
		Percentiles: Percentiles(sorted),
	}
}

// Aggregate reduces the completed ensemble into a MonteCarloResult. The
// ensemble may arrive in any order; the caller hands over ownership.
// SensitivityFactors and ExecutionTimeMs are attached by the orchestrator.
func Aggregate(results []trajectory.SingleSimulationResult, cfg config.SimulationConfig) (*MonteCarloResult, error) {
	n := len(results)
	if n == 0 {
		return nil, fmt.Errorf("%w: aggregate requires at least one simulation result", ErrEmptyEnsemble)
	}

	finalARR := make([]float64, n)
	finalCash := make([]float64, n)
	finalRunway := make([]float64, n)
	survived := 0
	survivalMonths := make([]float64, n)
	for i, r := range results {
		finalARR[i] = r.FinalARR
		finalCash[i] = r.FinalCash
		finalRunway[i] = r.FinalRunway
		survivalMonths[i] = float64(r.SurvivalMonths)
		if r.DidSurvive {
			survived++
		}
	}
	sort.Float64s(survivalMonths)

	survivalByMonth := make([]float64, cfg.TimeHorizonMonths)
	for m := 1; m <= cfg.TimeHorizonMonths; m++ {
		alive := 0
		for _, r := range results {
			if r.SurvivalMonths >= m {
				alive++
			}
		}
		survivalByMonth[m-1] = float64(alive) / float64(n)
	}

	result := &MonteCarloResult{
		Iterations:           n,
		TimeHorizonMonths:    cfg.TimeHorizonMonths,
		SurvivalRate:         float64(survived) / float64(n),
		SurvivalByMonth:      survivalByMonth,
		MedianSurvivalMonths: medianOfSorted(survivalMonths),
		ARR:                  summarize(finalARR, constants.DefaultBucketCount),
		Cash:                 summarize(finalCash, constants.DefaultBucketCount),
		Runway:               summarize(finalRunway, constants.DefaultBucketCount),
		ARRConfidenceBands:   arrConfidenceBands(results, cfg.TimeHorizonMonths),
		AllSimulations:       results,
	}

	byARR := make([]int, n)
	for i := range byARR {
		byARR[i] = i
	}
	sort.Slice(byARR, func(a, b int) bool {
		return results[byARR[a]].FinalARR < results[byARR[b]].FinalARR
	})
	result.WorstCase = results[byARR[rankIndex(n, 0.05)]]
	result.MedianCase = results[byARR[rankIndex(n, 0.50)]]
	result.BestCase = results[byARR[rankIndex(n, 0.95)]]

	return result, nil
}

// rankIndex is the fixed-rank position floor(n*q), clamped into range so
// the top pick stays addressable for small ensembles.
func rankIndex(n int, q float64) int {
	index := int(math.Floor(float64(n) * q))
	if index > n-1 {
		index = n - 1
	}
	return index
}

// arrConfidenceBands computes the per-month ARR percentile envelope over
// the trajectories still alive at each month. Months no trajectory reaches
// are skipped entirely rather than padded.
func arrConfidenceBands(results []trajectory.SingleSimulationResult, horizonMonths int) []ConfidenceBand {
	bands := make([]ConfidenceBand, 0, horizonMonths)
	for m := 1; m <= horizonMonths; m++ {
		var alive []float64
		for _, r := range results {
			if len(r.MonthlySnapshots) >= m {
				alive = append(alive, r.MonthlySnapshots[m-1].ARR)
			}
		}
		if len(alive) == 0 {
			continue
		}
		sort.Float64s(alive)
		bands = append(bands, ConfidenceBand{
			Month: m,
			P10:   Percentile(alive, 10),
			P25:   Percentile(alive, 25),
			P50:   Percentile(alive, 50),
			P75:   Percentile(alive, 75),
			P90:   Percentile(alive, 90),
		})
	}
	return bands
}
