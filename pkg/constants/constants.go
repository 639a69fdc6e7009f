// Package constants provides shared constants for the stratfit simulation engine.
package constants

// Simulation defaults
const (
	// DefaultIterations is the default number of Monte Carlo iterations per run
	DefaultIterations = 10000

	// DefaultTimeHorizonMonths is the default simulation horizon
	DefaultTimeHorizonMonths = 36

	// DefaultChunkSize is the number of iterations executed between progress
	// reports and cancellation checks
	DefaultChunkSize = 500

	// DefaultBucketCount is the number of equal-width histogram buckets
	DefaultBucketCount = 25

	// DefaultBaseSeed seeds the per-iteration random streams when the
	// configuration does not override it
	DefaultBaseSeed int64 = 0x5f72a7f1

	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12
)

// Lever bounds
const (
	// LeverMin is the lower bound of a normalized lever
	LeverMin = 0.0

	// LeverMax is the upper bound of a normalized lever
	LeverMax = 1.0

	// LeverNeutral is the midpoint of the normalized lever range
	LeverNeutral = 0.5

	// LeverCount is the number of strategic levers
	LeverCount = 9
)

// Sensitivity estimation defaults
const (
	// SensitivityIterations is the reduced ensemble size used for
	// finite-difference perturbation runs
	SensitivityIterations = 512

	// SensitivityDelta is the lever perturbation step
	SensitivityDelta = 0.15
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the machine-readable evidence pack format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum request body size (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)
