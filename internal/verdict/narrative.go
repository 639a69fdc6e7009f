package verdict

import "github.com/AlanSharfman/stratfit-godmode-sub001/internal/config"

// RecommendationText is the canned action/impact pair for one gap category.
type RecommendationText struct {
	Action string
	Impact string
}

// NarrativeTable holds every canned phrase the generator can emit.
// Instances are treated as immutable; tests swap in their own tables.
type NarrativeTable struct {
	// Headlines and Summaries are keyed by rating band. Summaries are
	// fmt templates taking survival percent, median survival months, and
	// horizon months.
	Headlines map[Rating]string
	Summaries map[Rating]string

	// Risks and Mitigations are keyed by the lever driving the outcome.
	Risks       map[config.Lever]string
	Mitigations map[config.Lever]string

	// Actions are keyed by recommendation gap category.
	Actions map[string]RecommendationText
}

// DefaultNarrativeTable returns the stock phrasing.
func DefaultNarrativeTable() NarrativeTable {
	return NarrativeTable{
		Headlines: map[Rating]string{
			RatingCritical:    "Trajectory unsustainable under current plan",
			RatingCaution:     "Material downside risk in the current plan",
			RatingStable:      "Viable plan with manageable risk",
			RatingStrong:      "Strong trajectory with healthy margins",
			RatingExceptional: "Exceptional trajectory across simulated outcomes",
		},
		Summaries: map[Rating]string{
			RatingCritical:    "Only %.1f%% of simulated trajectories survive; median survival is %.1f of %d months. The plan fails in most futures.",
			RatingCaution:     "%.1f%% of simulated trajectories survive with median survival of %.1f of %d months. Downside scenarios dominate the risk picture.",
			RatingStable:      "%.1f%% of simulated trajectories survive with median survival of %.1f of %d months. The plan holds under most modeled conditions.",
			RatingStrong:      "%.1f%% of simulated trajectories survive with median survival of %.1f of %d months. Outcomes cluster well above the failure line.",
			RatingExceptional: "%.1f%% of simulated trajectories survive with median survival of %.1f of %d months. Even pessimistic draws stay healthy.",
		},
		Risks: map[config.Lever]string{
			config.LeverDemandStrength:    "Outcomes hinge on demand materializing at the assumed strength",
			config.LeverPricingPower:      "Outcomes hinge on sustaining price realization against competitive pressure",
			config.LeverExpansionVelocity: "Outcomes hinge on expansion landing without stalling core execution",
			config.LeverCostDiscipline:    "Outcomes hinge on holding the cost line as the organization grows",
			config.LeverHiringIntensity:   "Hiring pace is the dominant swing factor on cash consumption",
			config.LeverOperatingDrag:     "Operating overhead is the dominant swing factor on the trajectory",
			config.LeverMarketVolatility:  "Market volatility dominates the spread of outcomes",
			config.LeverExecutionRisk:     "Execution slippage dominates the spread of outcomes",
			config.LeverFundingPressure:   "Funding pressure drives erratic burn and dominates downside scenarios",
		},
		Mitigations: map[config.Lever]string{
			config.LeverDemandStrength:    "Validate demand signals early and stage spend behind confirmed traction",
			config.LeverPricingPower:      "Defend pricing with differentiation before volume commitments lock in",
			config.LeverExpansionVelocity: "Gate each expansion step on the previous one reaching breakeven",
			config.LeverCostDiscipline:    "Install hard budget gates and review variance monthly",
			config.LeverHiringIntensity:   "Tie hiring tranches to revenue milestones rather than calendar plans",
			config.LeverOperatingDrag:     "Audit recurring overhead and cut the lowest-yield commitments first",
			config.LeverMarketVolatility:  "Hold a larger cash buffer and avoid irreversible bets in volatile windows",
			config.LeverExecutionRisk:     "Shorten delivery cycles so slippage is caught before it compounds",
			config.LeverFundingPressure:   "Extend the funding runway before pressure forces unfavorable terms",
		},
		Actions: map[string]RecommendationText{
			"survival": {
				Action: "Reduce structural burn until the survival rate clears the safety threshold",
				Impact: "high",
			},
			"runway": {
				Action: "Extend runway through burn reduction or additional funding",
				Impact: "high",
			},
			"growth": {
				Action: "Shift investment toward the growth levers with the highest measured impact",
				Impact: "medium",
			},
		},
	}
}
