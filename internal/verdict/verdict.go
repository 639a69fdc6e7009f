// Package verdict maps aggregate simulation statistics to a bounded score,
// a qualitative rating band, and canned narrative fields. Generation is a
// pure function of the aggregate result; all phrasing comes from an
// injected immutable narrative table.
package verdict

import (
	"fmt"
	"sort"

	"github.com/AlanSharfman/stratfit-godmode-sub001/internal/aggregate"
	"github.com/AlanSharfman/stratfit-godmode-sub001/pkg/mathutil"
	"go.uber.org/zap"
)

// Rating is the qualitative severity band, ordered
// CRITICAL < CAUTION < STABLE < STRONG < EXCEPTIONAL.
type Rating string

const (
	RatingCritical    Rating = "CRITICAL"
	RatingCaution     Rating = "CAUTION"
	RatingStable      Rating = "STABLE"
	RatingStrong      Rating = "STRONG"
	RatingExceptional Rating = "EXCEPTIONAL"
)

// Score weights and band thresholds. These are load-bearing constants
// shared by every consumer; they are not tunable per call site.
const (
	survivalWeight = 0.45
	headroomWeight = 0.30
	runwayWeight   = 0.25

	// headroomScale maps a p90/p50 final-ARR ratio of 2.0 to a full
	// headroom score.
	headroomScale = 1.0

	// safeRunwayMonths is the median runway considered fully safe.
	safeRunwayMonths = 18.0

	// safeSurvivalRate is the survival rate below which a recommendation
	// is generated.
	safeSurvivalRate = 0.80

	// safeHeadroom is the minimum p90/p50 excess ratio considered healthy.
	safeHeadroom = 0.15

	thresholdCaution     = 40.0
	thresholdStable      = 55.0
	thresholdStrong      = 70.0
	thresholdExceptional = 85.0
)

// Recommendation is one ranked corrective action.
type Recommendation struct {
	Priority  int    `json:"priority"`
	Category  string `json:"category"`
	Action    string `json:"action"`
	Rationale string `json:"rationale"`
	Impact    string `json:"impact"`
}

// Verdict is the scored qualitative summary of one run.
type Verdict struct {
	OverallScore        float64          `json:"overallScore"`
	OverallRating       Rating           `json:"overallRating"`
	Headline            string           `json:"headline"`
	Summary             string           `json:"summary"`
	PrimaryRisk         string           `json:"primaryRisk"`
	RiskMitigation      string           `json:"riskMitigation"`
	TopDrivers          []string         `json:"topDrivers"`
	Recommendations     []Recommendation `json:"recommendations"`
	CriticalLever       string           `json:"criticalLever"`
	ConfidenceLevel     string           `json:"confidenceLevel"`
	ConfidenceStatement string           `json:"confidenceStatement"`
}

// Generator produces verdicts from aggregate results using one immutable
// narrative table.
type Generator struct {
	logger *zap.Logger
	table  NarrativeTable
}

// NewGenerator constructs a Generator around the given narrative table.
func NewGenerator(logger *zap.Logger, table NarrativeTable) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{logger: logger, table: table}
}

// RatingForScore discretizes a bounded score into its severity band. The
// mapping is monotone in the score.
func RatingForScore(score float64) Rating {
	switch {
	case score < thresholdCaution:
		return RatingCritical
	case score < thresholdStable:
		return RatingCaution
	case score < thresholdStrong:
		return RatingStable
	case score < thresholdExceptional:
		return RatingStrong
	}
	return RatingExceptional
}

// Generate maps one aggregate result to a Verdict. Purely deterministic:
// the same result always yields the same verdict.
func (g *Generator) Generate(result *aggregate.MonteCarloResult) Verdict {
	survivalScore := mathutil.Clamp(result.SurvivalRate, 0, 1)
	headroomScore := mathutil.Clamp(headroomRatio(result)/headroomScale, 0, 1)
	runwayScore := mathutil.Clamp(result.Runway.Stats.Median/safeRunwayMonths, 0, 1)

	score := 100 * (survivalWeight*survivalScore + headroomWeight*headroomScore + runwayWeight*runwayScore)
	score = mathutil.Clamp(score, 0, 100)
	rating := RatingForScore(score)

	v := Verdict{
		OverallScore:  score,
		OverallRating: rating,
		Headline:      g.table.Headlines[rating],
		Summary: fmt.Sprintf(g.table.Summaries[rating],
			result.SurvivalRate*100, result.MedianSurvivalMonths, result.TimeHorizonMonths),
		Recommendations: g.recommendations(result, survivalScore, headroomScore, runwayScore),
	}

	if len(result.SensitivityFactors) > 0 {
		top := result.SensitivityFactors[0]
		v.PrimaryRisk = g.table.Risks[top.Lever]
		v.RiskMitigation = g.table.Mitigations[top.Lever]
		v.CriticalLever = top.Label
		for i, factor := range result.SensitivityFactors {
			if i == 3 {
				break
			}
			v.TopDrivers = append(v.TopDrivers, fmt.Sprintf("%s (%s)", factor.Label, factor.Direction))
		}
	}

	v.ConfidenceLevel, v.ConfidenceStatement = confidence(result)

	g.logger.Debug("verdict generated",
		zap.String("op", "verdict.Generate"),
		zap.Float64("overallScore", score),
		zap.String("overallRating", string(rating)),
	)

	return v
}

// headroomRatio is the p90/p50 excess ratio of final ARR, the growth
// upside the ensemble leaves above its central outcome.
func headroomRatio(result *aggregate.MonteCarloResult) float64 {
	p50 := result.ARR.Percentiles.P50
	if p50 <= 0 {
		return 0
	}
	return result.ARR.Percentiles.P90/p50 - 1
}

// recommendations ranks corrective actions by distance from the safe
// threshold each one addresses.
func (g *Generator) recommendations(result *aggregate.MonteCarloResult, survivalScore, headroomScore, runwayScore float64) []Recommendation {
	type gap struct {
		category string
		deficit  float64
		rationale string
	}

	var gaps []gap
	if result.SurvivalRate < safeSurvivalRate {
		gaps = append(gaps, gap{
			category: "survival",
			deficit:  (safeSurvivalRate - result.SurvivalRate) / safeSurvivalRate,
			rationale: fmt.Sprintf("survival rate %.1f%% is below the %.0f%% safety threshold",
				result.SurvivalRate*100, safeSurvivalRate*100),
		})
	}
	if result.Runway.Stats.Median < safeRunwayMonths {
		gaps = append(gaps, gap{
			category: "runway",
			deficit:  (safeRunwayMonths - result.Runway.Stats.Median) / safeRunwayMonths,
			rationale: fmt.Sprintf("median runway %.1f months is below the %.0f-month safety threshold",
				result.Runway.Stats.Median, safeRunwayMonths),
		})
	}
	if hr := headroomRatio(result); hr < safeHeadroom {
		gaps = append(gaps, gap{
			category: "growth",
			deficit:  (safeHeadroom - hr) / safeHeadroom,
			rationale: fmt.Sprintf("p90/p50 growth headroom %.2f is below the %.2f threshold",
				hr, safeHeadroom),
		})
	}

	sort.SliceStable(gaps, func(a, b int) bool {
		return gaps[a].deficit > gaps[b].deficit
	})

	recs := make([]Recommendation, 0, len(gaps))
	for i, gp := range gaps {
		text := g.table.Actions[gp.category]
		recs = append(recs, Recommendation{
			Priority:  i + 1,
			Category:  gp.category,
			Action:    text.Action,
			Rationale: gp.rationale,
			Impact:    text.Impact,
		})
	}
	return recs
}

func confidence(result *aggregate.MonteCarloResult) (string, string) {
	level := "low"
	switch {
	case result.Iterations >= 10000:
		level = "high"
	case result.Iterations >= 1000:
		level = "moderate"
	}
	statement := fmt.Sprintf("Based on %d simulated trajectories over %d months; statistical confidence is %s.",
		result.Iterations, result.TimeHorizonMonths, level)
	return level, statement
}
