// Package output provides utilities for formatting and displaying
// simulation results.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/AlanSharfman/stratfit-godmode-sub001/internal/aggregate"
	"github.com/AlanSharfman/stratfit-godmode-sub001/internal/verdict"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// EvidencePack is the lossless machine-readable mirror of one run: the
// full aggregate result plus the derived verdict, full-precision floats.
type EvidencePack struct {
	Result  *aggregate.MonteCarloResult `json:"result"`
	Verdict verdict.Verdict             `json:"verdict"`
}

// PrettyFormat outputs a human-readable summary rather than a
// machine-readable one.
func PrettyFormat(w io.Writer, result *aggregate.MonteCarloResult, v verdict.Verdict) {
	p := message.NewPrinter(language.English)

	fmt.Fprintf(w, "--- Monte Carlo run: %d iterations over %d months ---\n", result.Iterations, result.TimeHorizonMonths)
	_, _ = p.Fprintf(w, "Survival rate        | %.1f%%\n", result.SurvivalRate*100)
	_, _ = p.Fprintf(w, "Median survival      | %.1f months\n", result.MedianSurvivalMonths)
	_, _ = p.Fprintf(w, "Final ARR (p10/p50/p90) | $%.0f / $%.0f / $%.0f\n",
		result.ARR.Percentiles.P10, result.ARR.Percentiles.P50, result.ARR.Percentiles.P90)
	_, _ = p.Fprintf(w, "Final cash (p10/p50/p90) | $%.0f / $%.0f / $%.0f\n",
		result.Cash.Percentiles.P10, result.Cash.Percentiles.P50, result.Cash.Percentiles.P90)
	_, _ = p.Fprintf(w, "Median runway        | %.1f months\n", result.Runway.Stats.Median)
	fmt.Fprintf(w, "Execution time       | %.1f ms\n", result.ExecutionTimeMs)

	fmt.Fprintf(w, "\nVerdict: %s (score %.1f)\n", v.OverallRating, v.OverallScore)
	fmt.Fprintf(w, "%s\n%s\n", v.Headline, v.Summary)
	if v.PrimaryRisk != "" {
		fmt.Fprintf(w, "\nPrimary risk: %s\n", v.PrimaryRisk)
		fmt.Fprintf(w, "Mitigation:   %s\n", v.RiskMitigation)
	}
	if len(v.TopDrivers) > 0 {
		fmt.Fprintf(w, "\nTop drivers:\n")
		for _, driver := range v.TopDrivers {
			fmt.Fprintf(w, "  - %s\n", driver)
		}
	}
	if len(v.Recommendations) > 0 {
		fmt.Fprintf(w, "\nRecommendations:\n")
		for _, rec := range v.Recommendations {
			fmt.Fprintf(w, "  %d. [%s] %s (%s)\n", rec.Priority, rec.Category, rec.Action, rec.Rationale)
		}
	}
	fmt.Fprintf(w, "\n%s\n", v.ConfidenceStatement)
}

// CsvFormat outputs the time-indexed views in comma-separated value
// format: one row per month with the survival curve and the ARR
// confidence band.
func CsvFormat(w io.Writer, result *aggregate.MonteCarloResult) {
	bandsByMonth := make(map[int]aggregate.ConfidenceBand, len(result.ARRConfidenceBands))
	for _, band := range result.ARRConfidenceBands {
		bandsByMonth[band.Month] = band
	}

	fmt.Fprintf(w, `"month","survivalRate","arrP10","arrP25","arrP50","arrP75","arrP90"`)
	fmt.Fprintf(w, "\n")
	for m := 1; m <= result.TimeHorizonMonths; m++ {
		fmt.Fprintf(w, `"%d","%.6f"`, m, result.SurvivalByMonth[m-1])
		if band, ok := bandsByMonth[m]; ok {
			fmt.Fprintf(w, `,"%.2f","%.2f","%.2f","%.2f","%.2f"`, band.P10, band.P25, band.P50, band.P75, band.P90)
		} else {
			fmt.Fprintf(w, `,"","","","",""`)
		}
		fmt.Fprintf(w, "\n")
	}
}

// JsonFormat writes the evidence pack as JSON. Floats are emitted at full
// precision; nothing is rounded for display.
func JsonFormat(w io.Writer, result *aggregate.MonteCarloResult, v verdict.Verdict) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(EvidencePack{Result: result, Verdict: v}); err != nil {
		return fmt.Errorf("failed to encode evidence pack: %w", err)
	}
	return nil
}
