package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

const smallRunJSON = `{
	"levers": {
		"demandStrength": 0.5, "pricingPower": 0.5, "expansionVelocity": 0.5,
		"costDiscipline": 0.5, "hiringIntensity": 0.5, "operatingDrag": 0.5,
		"marketVolatility": 0.5, "executionRisk": 0.5, "fundingPressure": 0.5
	},
	"simulation": {
		"iterations": 200,
		"timeHorizonMonths": 12,
		"startingCash": 1000000,
		"startingARR": 600000,
		"monthlyBurn": 40000
	}
}`

const smallRunYAML = `
levers:
  demandStrength: 0.5
  pricingPower: 0.5
  expansionVelocity: 0.5
  costDiscipline: 0.5
  hiringIntensity: 0.5
  operatingDrag: 0.5
  marketVolatility: 0.5
  executionRisk: 0.5
  fundingPressure: 0.5
simulation:
  iterations: 200
  timeHorizonMonths: 12
  startingCash: 1000000
  startingARR: 600000
  monthlyBurn: 40000
`

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	return NewHandler(zap.NewNop(), 1024*1024, "test")
}

func decodeSimulateResponse(t *testing.T, recorder *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var payload map[string]interface{}
	if err := json.Unmarshal(recorder.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return payload
}

func TestHandleSimulateJSON(t *testing.T) {
	handler := newTestHandler(t)

	request := httptest.NewRequest(http.MethodPost, "/api/simulate", strings.NewReader(smallRunJSON))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200; body: %s", recorder.Code, recorder.Body.String())
	}

	payload := decodeSimulateResponse(t, recorder)
	result, ok := payload["result"].(map[string]interface{})
	if !ok {
		t.Fatalf("response has no result object")
	}
	if iterations := result["iterations"].(float64); iterations != 200 {
		t.Errorf("result.iterations = %v, expected 200", iterations)
	}
	if _, ok := payload["verdict"].(map[string]interface{}); !ok {
		t.Errorf("response has no verdict object")
	}
	if payload["duration"] == "" {
		t.Errorf("response has no duration")
	}
}

func TestHandleSimulateYAML(t *testing.T) {
	handler := newTestHandler(t)

	request := httptest.NewRequest(http.MethodPost, "/api/simulate", strings.NewReader(smallRunYAML))
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200; body: %s", recorder.Code, recorder.Body.String())
	}
}

func TestHandleSimulateMethodNotAllowed(t *testing.T) {
	handler := newTestHandler(t)

	request := httptest.NewRequest(http.MethodGet, "/api/simulate", nil)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, expected 405", recorder.Code)
	}
}

func TestHandleSimulateInvalidConfiguration(t *testing.T) {
	handler := newTestHandler(t)

	body := `{"simulation": {"iterations": -1, "timeHorizonMonths": 12}}`
	request := httptest.NewRequest(http.MethodPost, "/api/simulate", strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, expected 422; body: %s", recorder.Code, recorder.Body.String())
	}
}

func TestHandleSimulateMalformedBody(t *testing.T) {
	handler := newTestHandler(t)

	request := httptest.NewRequest(http.MethodPost, "/api/simulate", strings.NewReader("{not json"))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("status = %d, expected 400", recorder.Code)
	}
}

func TestHandleSimulateBodyTooLarge(t *testing.T) {
	handler := NewHandler(zap.NewNop(), 64, "test")

	request := httptest.NewRequest(http.MethodPost, "/api/simulate", strings.NewReader(smallRunJSON))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, expected 413", recorder.Code)
	}
}

func TestHandleVersion(t *testing.T) {
	handler := newTestHandler(t)

	request := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", recorder.Code)
	}

	var payload map[string]string
	if err := json.Unmarshal(recorder.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode version response: %v", err)
	}
	if payload["version"] != "test" {
		t.Errorf("version = %q, expected test", payload["version"])
	}
}
