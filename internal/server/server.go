// Package server exposes the simulation engine's data contract over HTTP
// for presentation layers. It is a consumer of the engine, not part of it.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/AlanSharfman/stratfit-godmode-sub001/internal/config"
	"github.com/AlanSharfman/stratfit-godmode-sub001/internal/montecarlo"
	"github.com/AlanSharfman/stratfit-godmode-sub001/internal/verdict"
	"github.com/AlanSharfman/stratfit-godmode-sub001/pkg/output"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type handler struct {
	logger        *zap.Logger
	runner        *montecarlo.Runner
	generator     *verdict.Generator
	maxUploadSize int64
	version       string
}

// NewHandler constructs the HTTP handler that serves the simulation API.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = 256 * 1024
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:        logger,
		runner:        montecarlo.NewRunner(logger),
		generator:     verdict.NewGenerator(logger, verdict.DefaultNarrativeTable()),
		maxUploadSize: maxUploadSize,
		version:       trimmedVersion,
	}

	mux := http.NewServeMux()

	// Simulation API endpoint (YAML or JSON request body)
	mux.HandleFunc("/api/simulate", h.handleSimulate)

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

type simulateResponse struct {
	output.EvidencePack
	Warnings []string `json:"warnings,omitempty"`
	Duration string   `json:"duration"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *handler) handleSimulate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, h.maxUploadSize+1))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	if int64(len(body)) > h.maxUploadSize {
		h.writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("request body exceeds %d bytes", h.maxUploadSize))
		return
	}

	conf, err := decodeRunRequest(r.Header.Get("Content-Type"), body)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	conf.Simulation.ApplyDefaults()

	if err := config.Validate(conf.Levers, conf.Simulation); err != nil {
		h.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	warnings := conf.ValidateConfiguration()

	started := time.Now()
	// Client disconnects cancel the run at the next chunk boundary.
	result, err := h.runner.RunAnalysis(r.Context(), conf.Levers, conf.Simulation, nil)
	if err != nil {
		if errors.Is(err, montecarlo.ErrCancelled) {
			h.logger.Info("simulation cancelled by client",
				zap.String("op", "server.handleSimulate"),
			)
			return
		}
		h.logger.Error("simulation failed",
			zap.String("op", "server.handleSimulate"),
			zap.Error(err),
		)
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := simulateResponse{
		EvidencePack: output.EvidencePack{
			Result:  result,
			Verdict: h.generator.Generate(result),
		},
		Warnings: warnings,
		Duration: time.Since(started).String(),
	}

	h.writeJSON(w, http.StatusOK, resp)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"version": h.version})
}

// decodeRunRequest accepts either YAML (the CLI config shape) or JSON.
func decodeRunRequest(contentType string, body []byte) (*config.Configuration, error) {
	var conf config.Configuration
	if strings.Contains(contentType, "json") {
		if err := json.Unmarshal(body, &conf); err != nil {
			return nil, fmt.Errorf("failed to parse JSON request: %v", err)
		}
		return &conf, nil
	}
	if err := yaml.Unmarshal(body, &conf); err != nil {
		return nil, fmt.Errorf("failed to parse YAML request: %v", err)
	}
	return &conf, nil
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
	}
}

func (h *handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, errorResponse{Error: msg})
}
