// Package validation provides input validation utilities.
package validation

import (
	"fmt"

	"github.com/AlanSharfman/stratfit-godmode-sub001/pkg/constants"
	"github.com/AlanSharfman/stratfit-godmode-sub001/pkg/mathutil"
)

// CheckFinite returns an error when a named value is NaN or infinite.
func CheckFinite(name string, value float64) error {
	if !mathutil.IsFinite(value) {
		return fmt.Errorf("%s must be finite, got %v", name, value)
	}
	return nil
}

// CheckRange returns an error when a named value falls outside [lo, hi].
func CheckRange(name string, value, lo, hi float64) error {
	if value < lo || value > hi {
		return fmt.Errorf("%s must be within [%g, %g], got %g", name, lo, hi, value)
	}
	return nil
}

// ValidateOutputFormat checks that an output format name is supported.
func ValidateOutputFormat(format string) error {
	switch format {
	case constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatJSON:
		return nil
	}
	return fmt.Errorf("invalid output format: %s", format)
}
