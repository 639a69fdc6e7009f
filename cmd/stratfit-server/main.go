package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/AlanSharfman/stratfit-godmode-sub001/internal/logging"
	"github.com/AlanSharfman/stratfit-godmode-sub001/internal/server"
	"github.com/AlanSharfman/stratfit-godmode-sub001/pkg/constants"
	"go.uber.org/zap"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	configLocation := flag.String("config", constants.DefaultServerConfigFile, "path to server configuration file")
	address := flag.String("address", "", "listen address override")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	conf, err := server.LoadConfig(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := logging.NewLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	listenAddress := conf.Address
	if *address != "" {
		listenAddress = *address
	}

	handler := server.NewHandler(logger, conf.UploadSizeBytes(), version)

	logger.Info("starting stratfit server",
		zap.String("op", "main"),
		zap.String("address", listenAddress),
		zap.String("version", version),
	)

	if err := http.ListenAndServe(listenAddress, handler); err != nil {
		logger.Fatal("server stopped",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
