package config

import "github.com/AlanSharfman/stratfit-godmode-sub001/pkg/constants"

// Lever names a single normalized strategic input parameter.
type Lever string

// The nine strategic levers. Each is normalized to [0, 1] with 0.5 neutral.
const (
	LeverDemandStrength    Lever = "demandStrength"
	LeverPricingPower      Lever = "pricingPower"
	LeverExpansionVelocity Lever = "expansionVelocity"
	LeverCostDiscipline    Lever = "costDiscipline"
	LeverHiringIntensity   Lever = "hiringIntensity"
	LeverOperatingDrag     Lever = "operatingDrag"
	LeverMarketVolatility  Lever = "marketVolatility"
	LeverExecutionRisk     Lever = "executionRisk"
	LeverFundingPressure   Lever = "fundingPressure"
)

// LeverState holds one value per strategic lever. Immutable per run;
// callers construct a fresh state for each run.
type LeverState struct {
	DemandStrength    float64 `yaml:"demandStrength" json:"demandStrength"`
	PricingPower      float64 `yaml:"pricingPower" json:"pricingPower"`
	ExpansionVelocity float64 `yaml:"expansionVelocity" json:"expansionVelocity"`
	CostDiscipline    float64 `yaml:"costDiscipline" json:"costDiscipline"`
	HiringIntensity   float64 `yaml:"hiringIntensity" json:"hiringIntensity"`
	OperatingDrag     float64 `yaml:"operatingDrag" json:"operatingDrag"`
	MarketVolatility  float64 `yaml:"marketVolatility" json:"marketVolatility"`
	ExecutionRisk     float64 `yaml:"executionRisk" json:"executionRisk"`
	FundingPressure   float64 `yaml:"fundingPressure" json:"fundingPressure"`
}

// Levers returns every lever in its canonical order.
func Levers() []Lever {
	return []Lever{
		LeverDemandStrength,
		LeverPricingPower,
		LeverExpansionVelocity,
		LeverCostDiscipline,
		LeverHiringIntensity,
		LeverOperatingDrag,
		LeverMarketVolatility,
		LeverExecutionRisk,
		LeverFundingPressure,
	}
}

var leverLabels = map[Lever]string{
	LeverDemandStrength:    "Demand Strength",
	LeverPricingPower:      "Pricing Power",
	LeverExpansionVelocity: "Expansion Velocity",
	LeverCostDiscipline:    "Cost Discipline",
	LeverHiringIntensity:   "Hiring Intensity",
	LeverOperatingDrag:     "Operating Drag",
	LeverMarketVolatility:  "Market Volatility",
	LeverExecutionRisk:     "Execution Risk",
	LeverFundingPressure:   "Funding Pressure",
}

// Label returns the human-readable label for a lever.
func (l Lever) Label() string {
	return leverLabels[l]
}

// NeutralLevers returns a LeverState with every lever at the midpoint.
func NeutralLevers() LeverState {
	state := LeverState{}
	for _, lever := range Levers() {
		state = state.With(lever, constants.LeverNeutral)
	}
	return state
}

// Value returns the current setting of one lever.
func (ls LeverState) Value(lever Lever) float64 {
	switch lever {
	case LeverDemandStrength:
		return ls.DemandStrength
	case LeverPricingPower:
		return ls.PricingPower
	case LeverExpansionVelocity:
		return ls.ExpansionVelocity
	case LeverCostDiscipline:
		return ls.CostDiscipline
	case LeverHiringIntensity:
		return ls.HiringIntensity
	case LeverOperatingDrag:
		return ls.OperatingDrag
	case LeverMarketVolatility:
		return ls.MarketVolatility
	case LeverExecutionRisk:
		return ls.ExecutionRisk
	case LeverFundingPressure:
		return ls.FundingPressure
	}
	return 0
}

// With returns a copy of the state with one lever replaced.
func (ls LeverState) With(lever Lever, value float64) LeverState {
	switch lever {
	case LeverDemandStrength:
		ls.DemandStrength = value
	case LeverPricingPower:
		ls.PricingPower = value
	case LeverExpansionVelocity:
		ls.ExpansionVelocity = value
	case LeverCostDiscipline:
		ls.CostDiscipline = value
	case LeverHiringIntensity:
		ls.HiringIntensity = value
	case LeverOperatingDrag:
		ls.OperatingDrag = value
	case LeverMarketVolatility:
		ls.MarketVolatility = value
	case LeverExecutionRisk:
		ls.ExecutionRisk = value
	case LeverFundingPressure:
		ls.FundingPressure = value
	}
	return ls
}
