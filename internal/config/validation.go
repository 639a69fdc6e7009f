package config

import (
	"errors"
	"fmt"

	"github.com/AlanSharfman/stratfit-godmode-sub001/pkg/constants"
	"github.com/AlanSharfman/stratfit-godmode-sub001/pkg/validation"
)

// ErrInvalidConfiguration indicates the run inputs cannot produce a
// meaningful simulation. Raised before any simulation work begins.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Validate checks the lever state and run parameters, returning an error
// wrapping ErrInvalidConfiguration on the first hard failure.
func Validate(levers LeverState, sim SimulationConfig) error {
	if sim.Iterations <= 0 {
		return fmt.Errorf("%w: iterations must be positive, got %d", ErrInvalidConfiguration, sim.Iterations)
	}
	if sim.TimeHorizonMonths <= 0 {
		return fmt.Errorf("%w: timeHorizonMonths must be positive, got %d", ErrInvalidConfiguration, sim.TimeHorizonMonths)
	}

	for _, field := range []struct {
		name  string
		value float64
	}{
		{"startingCash", sim.StartingCash},
		{"startingARR", sim.StartingARR},
		{"monthlyBurn", sim.MonthlyBurn},
	} {
		if err := validation.CheckFinite(field.name, field.value); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
		}
	}

	for _, lever := range Levers() {
		value := levers.Value(lever)
		if err := validation.CheckFinite(string(lever), value); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
		}
		if err := validation.CheckRange(string(lever), value, constants.LeverMin, constants.LeverMax); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
		}
	}

	return nil
}

// ValidateConfiguration performs general validation of the configuration and
// returns non-fatal warnings. Hard failures are the business of Validate.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if c.Simulation.Iterations > 0 && c.Simulation.Iterations < 1000 {
		warnings = append(warnings, fmt.Sprintf("iterations %d is low; distribution tails will be noisy", c.Simulation.Iterations))
	}
	if c.Simulation.MonthlyBurn > 0 && c.Simulation.StartingCash > 0 &&
		c.Simulation.StartingCash/c.Simulation.MonthlyBurn < float64(c.Simulation.TimeHorizonMonths)/2 {
		warnings = append(warnings, fmt.Sprintf("naive runway %.1f months is under half the %d-month horizon",
			c.Simulation.StartingCash/c.Simulation.MonthlyBurn, c.Simulation.TimeHorizonMonths))
	}
	if c.Simulation.StartingCash <= 0 {
		warnings = append(warnings, "startingCash is not positive; the venture dies in month 1")
	}

	return warnings
}
