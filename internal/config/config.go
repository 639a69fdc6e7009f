// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"

	"github.com/AlanSharfman/stratfit-godmode-sub001/pkg/constants"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for a stratfit run.
type Configuration struct {
	Levers     LeverState       `yaml:"levers" json:"levers"`
	Simulation SimulationConfig `yaml:"simulation" json:"simulation"`
	Logging    LoggingConfig    `yaml:"logging,omitempty" json:"logging,omitempty"`
	Output     OutputConfig     `yaml:"output,omitempty" json:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" json:"level,omitempty"`           // debug, info, warn, error
	Format     string `yaml:"format,omitempty" json:"format,omitempty"`         // json, console
	OutputFile string `yaml:"outputFile,omitempty" json:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty" json:"format,omitempty"` // pretty, csv, json
}

// SimulationConfig holds the run parameters shared by every iteration.
// All fields are immutable once a run begins.
type SimulationConfig struct {
	Iterations        int     `yaml:"iterations" json:"iterations"`
	TimeHorizonMonths int     `yaml:"timeHorizonMonths" json:"timeHorizonMonths"`
	StartingCash      float64 `yaml:"startingCash" json:"startingCash"`
	StartingARR       float64 `yaml:"startingARR" json:"startingARR"`
	MonthlyBurn       float64 `yaml:"monthlyBurn" json:"monthlyBurn"`
	BaseSeed          int64   `yaml:"baseSeed,omitempty" json:"baseSeed,omitempty"`
}

// ApplyDefaults fills zero-valued run parameters with the engine defaults.
func (sc *SimulationConfig) ApplyDefaults() {
	if sc.Iterations == 0 {
		sc.Iterations = constants.DefaultIterations
	}
	if sc.TimeHorizonMonths == 0 {
		sc.TimeHorizonMonths = constants.DefaultTimeHorizonMonths
	}
	if sc.BaseSeed == 0 {
		sc.BaseSeed = constants.DefaultBaseSeed
	}
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.AutomaticEnv()

	v.SetConfigType("yml")

	// Levers omitted from the file sit at the neutral midpoint.
	for _, lever := range Levers() {
		v.SetDefault("levers."+string(lever), constants.LeverNeutral)
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	configuration.Simulation.ApplyDefaults()

	return &configuration, nil
}
