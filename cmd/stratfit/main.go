package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/AlanSharfman/stratfit-godmode-sub001/internal/config"
	"github.com/AlanSharfman/stratfit-godmode-sub001/internal/logging"
	"github.com/AlanSharfman/stratfit-godmode-sub001/internal/montecarlo"
	"github.com/AlanSharfman/stratfit-godmode-sub001/internal/verdict"
	"github.com/AlanSharfman/stratfit-godmode-sub001/pkg/constants"
	"github.com/AlanSharfman/stratfit-godmode-sub001/pkg/output"
	"github.com/AlanSharfman/stratfit-godmode-sub001/pkg/validation"
	"go.uber.org/zap"
)

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, json")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	iterations := flag.Int("iterations", 0, "iteration count override")
	seed := flag.Int64("seed", 0, "base seed override")
	showProgress := flag.Bool("progress", false, "report progress at chunk boundaries")
	flag.Parse()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	// Initialize logging based on config and CLI override
	logger, err := logging.NewLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// CLI overrides take precedence over config
	if *iterations > 0 {
		conf.Simulation.Iterations = *iterations
	}
	if *seed != 0 {
		conf.Simulation.BaseSeed = *seed
	}

	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	if err := config.Validate(conf.Levers, conf.Simulation); err != nil {
		logger.Fatal("invalid run configuration",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	// Display any non-fatal configuration warnings
	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	// Interrupt cancels the run at the next chunk boundary.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var onProgress montecarlo.ProgressFunc
	if *showProgress {
		onProgress = func(p montecarlo.Progress) {
			fmt.Fprintf(os.Stderr, "\r%d/%d iterations", p.CompletedIterations, p.TotalIterations)
			if p.CompletedIterations == p.TotalIterations {
				fmt.Fprintln(os.Stderr)
			}
		}
	}

	runner := montecarlo.NewRunner(logger)
	result, err := runner.RunAnalysis(ctx, conf.Levers, conf.Simulation, onProgress)
	if err != nil {
		logger.Fatal("failed to run simulation",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	generator := verdict.NewGenerator(logger, verdict.DefaultNarrativeTable())
	v := generator.Generate(result)

	// Handle output.
	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(os.Stdout, result, v)
	case constants.OutputFormatCSV:
		output.CsvFormat(os.Stdout, result)
	case constants.OutputFormatJSON:
		if err := output.JsonFormat(os.Stdout, result, v); err != nil {
			logger.Fatal("failed to write evidence pack",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}
}
