package aggregate

import (
	"errors"
	"math"
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/AlanSharfman/stratfit-godmode-sub001/internal/config"
	"github.com/AlanSharfman/stratfit-godmode-sub001/internal/trajectory"
	"github.com/AlanSharfman/stratfit-godmode-sub001/pkg/testutil"
)

func TestPercentileNearestRank(t *testing.T) {
	sorted := []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}

	tests := []struct {
		name     string
		p        float64
		expected float64
	}{
		{"P5 of ten values", 5, 10},
		{"P10 of ten values", 10, 20},
		{"P50 of ten values", 50, 60},
		{"P90 of ten values", 90, 100},
		{"P95 clamps to last", 95, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Percentile(sorted, tt.p); got != tt.expected {
				t.Errorf("Percentile(%.0f) = %v, expected %v", tt.p, got, tt.expected)
			}
		})
	}
}

func TestPercentilesMonotonic(t *testing.T) {
	// Property check over random ensembles with a fixed stream.
	rng := rand.New(rand.NewPCG(12, 34))
	for trial := 0; trial < 50; trial++ {
		n := 1 + rng.IntN(500)
		values := make([]float64, n)
		for i := range values {
			values[i] = rng.NormFloat64() * 1000
		}
		sort.Float64s(values)

		set := Percentiles(values)
		ordered := []float64{set.P5, set.P10, set.P25, set.P50, set.P75, set.P90, set.P95}
		for i := 1; i < len(ordered); i++ {
			if ordered[i] < ordered[i-1] {
				t.Fatalf("trial %d: percentile set not monotonic: %v", trial, ordered)
			}
		}
	}
}

func TestStats(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}
	stats := Stats(sorted)

	if stats.Mean != 2.5 {
		t.Errorf("Mean = %v, expected 2.5", stats.Mean)
	}
	if stats.Median != 2.5 {
		t.Errorf("Median = %v, expected 2.5 (average of central pair)", stats.Median)
	}
	expectedStd := math.Sqrt(1.25)
	if math.Abs(stats.StdDev-expectedStd) > 1e-12 {
		t.Errorf("StdDev = %v, expected %v (population)", stats.StdDev, expectedStd)
	}
	if stats.Min != 1 || stats.Max != 4 {
		t.Errorf("Min/Max = %v/%v, expected 1/4", stats.Min, stats.Max)
	}
	if math.Abs(stats.Skewness) > 1e-12 {
		t.Errorf("Skewness = %v, expected 0 for a symmetric set", stats.Skewness)
	}
}

func TestStatsZeroStdDev(t *testing.T) {
	stats := Stats([]float64{5, 5, 5})
	if stats.StdDev != 0 {
		t.Fatalf("StdDev = %v, expected 0", stats.StdDev)
	}
	if stats.Skewness != 0 {
		t.Errorf("Skewness = %v, expected 0 with the stdDev guard", stats.Skewness)
	}
}

func TestStatsOddMedian(t *testing.T) {
	stats := Stats([]float64{1, 2, 9})
	if stats.Median != 2 {
		t.Errorf("Median = %v, expected 2", stats.Median)
	}
}

func TestHistogram(t *testing.T) {
	values := make([]float64, 100)
	for i := range values {
		values[i] = float64(i)
	}

	buckets := Histogram(values, 25)
	if len(buckets) != 25 {
		t.Fatalf("len(buckets) = %d, expected 25", len(buckets))
	}

	countSum := 0
	freqSum := 0.0
	for _, bucket := range buckets {
		countSum += bucket.Count
		freqSum += bucket.Frequency
	}
	if countSum != len(values) {
		t.Errorf("bucket counts sum to %d, expected %d", countSum, len(values))
	}
	if math.Abs(freqSum-1.0) > 1e-9 {
		t.Errorf("bucket frequencies sum to %v, expected 1.0", freqSum)
	}

	// The final bucket is closed on both ends to capture the max.
	last := buckets[len(buckets)-1]
	if last.Count == 0 {
		t.Errorf("final bucket is empty; max value was not captured")
	}
	if last.Max != 99 {
		t.Errorf("final bucket max = %v, expected 99", last.Max)
	}
}

func TestHistogramSingleValue(t *testing.T) {
	buckets := Histogram([]float64{7, 7, 7, 7}, 25)
	countSum := 0
	for _, bucket := range buckets {
		countSum += bucket.Count
	}
	if countSum != 4 {
		t.Errorf("bucket counts sum to %d, expected 4 for a degenerate range", countSum)
	}
}

func TestAggregateEmptyEnsemble(t *testing.T) {
	cfg := config.SimulationConfig{Iterations: 10, TimeHorizonMonths: 36}
	_, err := Aggregate(nil, cfg)
	if !errors.Is(err, ErrEmptyEnsemble) {
		t.Errorf("Aggregate(nil) error = %v, expected ErrEmptyEnsemble", err)
	}
}

func TestAggregateSurvivalByMonth(t *testing.T) {
	const horizon = 6
	cfg := config.SimulationConfig{Iterations: 4, TimeHorizonMonths: horizon}
	results := []trajectory.SingleSimulationResult{
		testutil.SyntheticResult(0, 100, 2, horizon),
		testutil.SyntheticResult(1, 200, 4, horizon),
		testutil.SyntheticResult(2, 300, 6, horizon),
		testutil.SyntheticResult(3, 400, 6, horizon),
	}

	result, err := Aggregate(results, cfg)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}

	expected := []float64{1, 1, 0.75, 0.75, 0.5, 0.5}
	if len(result.SurvivalByMonth) != horizon {
		t.Fatalf("len(SurvivalByMonth) = %d, expected %d", len(result.SurvivalByMonth), horizon)
	}
	for i, want := range expected {
		if result.SurvivalByMonth[i] != want {
			t.Errorf("SurvivalByMonth[%d] = %v, expected %v", i, result.SurvivalByMonth[i], want)
		}
	}
	for i := 1; i < len(result.SurvivalByMonth); i++ {
		if result.SurvivalByMonth[i] > result.SurvivalByMonth[i-1] {
			t.Errorf("SurvivalByMonth increased at month %d", i+1)
		}
	}

	if result.SurvivalRate != 0.5 {
		t.Errorf("SurvivalRate = %v, expected 0.5", result.SurvivalRate)
	}
	if result.MedianSurvivalMonths != 5 {
		t.Errorf("MedianSurvivalMonths = %v, expected 5 (average of 4 and 6)", result.MedianSurvivalMonths)
	}
}

func TestAggregateCaseSelection(t *testing.T) {
	const horizon = 3
	const n = 20
	cfg := config.SimulationConfig{Iterations: n, TimeHorizonMonths: horizon}

	// Final ARR values 0, 100, ..., 1900 shuffled by index.
	results := make([]trajectory.SingleSimulationResult, n)
	for i := 0; i < n; i++ {
		arr := float64(((i * 7) % n) * 100)
		results[i] = testutil.SyntheticResult(i, arr, horizon, horizon)
	}

	result, err := Aggregate(results, cfg)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}

	// Sorted ascending by ARR, positions floor(20*.05)=1, floor(20*.5)=10, floor(20*.95)=19.
	if result.WorstCase.FinalARR != 100 {
		t.Errorf("WorstCase.FinalARR = %v, expected 100", result.WorstCase.FinalARR)
	}
	if result.MedianCase.FinalARR != 1000 {
		t.Errorf("MedianCase.FinalARR = %v, expected 1000", result.MedianCase.FinalARR)
	}
	if result.BestCase.FinalARR != 1900 {
		t.Errorf("BestCase.FinalARR = %v, expected 1900", result.BestCase.FinalARR)
	}
}

func TestAggregateConfidenceBandsSurvivorSubset(t *testing.T) {
	const horizon = 6
	cfg := config.SimulationConfig{Iterations: 3, TimeHorizonMonths: horizon}
	results := []trajectory.SingleSimulationResult{
		testutil.SyntheticResult(0, 100, 2, horizon),
		testutil.SyntheticResult(1, 200, 4, horizon),
		testutil.SyntheticResult(2, 300, 4, horizon),
	}

	result, err := Aggregate(results, cfg)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}

	// Months 5 and 6 have no surviving trajectories and must be skipped,
	// not padded with zeros.
	if len(result.ARRConfidenceBands) != 4 {
		t.Fatalf("len(ARRConfidenceBands) = %d, expected 4", len(result.ARRConfidenceBands))
	}
	for i, band := range result.ARRConfidenceBands {
		if band.Month != i+1 {
			t.Errorf("band %d has month %d, expected %d", i, band.Month, i+1)
		}
	}

	// Month 3 includes only the two trajectories alive at month 3.
	month3 := result.ARRConfidenceBands[2]
	if month3.P10 != 200 {
		t.Errorf("month 3 P10 = %v, expected 200 (dead trajectory excluded)", month3.P10)
	}
	if month3.P90 != 300 {
		t.Errorf("month 3 P90 = %v, expected 300", month3.P90)
	}
}

func TestAggregateEnsembleOwnership(t *testing.T) {
	const horizon = 3
	cfg := config.SimulationConfig{Iterations: 5, TimeHorizonMonths: horizon}
	results := make([]trajectory.SingleSimulationResult, 5)
	for i := range results {
		results[i] = testutil.SyntheticResult(i, float64(i)*10, horizon, horizon)
	}

	result, err := Aggregate(results, cfg)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	if len(result.AllSimulations) != 5 {
		t.Errorf("len(AllSimulations) = %d, expected 5", len(result.AllSimulations))
	}
	if result.Iterations != 5 {
		t.Errorf("Iterations = %d, expected 5", result.Iterations)
	}
}
