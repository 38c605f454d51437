package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AngelP17/manufacturing-demo/internal/demodata"
	"github.com/AngelP17/manufacturing-demo/internal/diag"
	"github.com/AngelP17/manufacturing-demo/internal/metrics"
	"github.com/AngelP17/manufacturing-demo/internal/settings"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	params := demodata.DefaultParams()
	params.Seed = 42
	m := metrics.New()
	cache, err := demodata.NewCache(params, m)
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}
	h := &Handlers{
		Log:      logger,
		Cache:    cache,
		Settings: settings.NewStore(),
		Diag:     diag.NewRunner(logger, time.Millisecond),
		Metrics:  m,
	}
	return NewRouter(logger, m, h, nil)
}

func doJSON(t *testing.T, router http.Handler, method, path string, body []byte) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	res := rr.Result()
	payload, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return res, payload
}

func TestOverviewEndpoint(t *testing.T) {
	router := newTestRouter(t)
	res, body := doJSON(t, router, http.MethodGet, "/api/overview", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.StatusCode, body)
	}

	var ov Overview
	if err := json.Unmarshal(body, &ov); err != nil {
		t.Fatalf("decode overview: %v", err)
	}
	if ov.Fleet.Total != 4 {
		t.Fatalf("expected 4 machines, got %d", ov.Fleet.Total)
	}
	if ov.Fleet.Active < 0 || ov.Fleet.Active > ov.Fleet.Total {
		t.Fatalf("active count out of range: %+v", ov.Fleet)
	}
	if ov.MeanEfficiency <= 0 || ov.MeanEfficiency > 100 {
		t.Fatalf("mean efficiency out of range: %f", ov.MeanEfficiency)
	}
	if ov.LatestProduction.Timestamp.IsZero() {
		t.Fatalf("missing latest production sample")
	}
}

func TestMachineSeriesEndpoint(t *testing.T) {
	router := newTestRouter(t)

	res, body := doJSON(t, router, http.MethodGet, "/api/machines/machine-01/series", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.StatusCode, body)
	}
	var series []map[string]any
	if err := json.Unmarshal(body, &series); err != nil {
		t.Fatalf("decode series: %v", err)
	}
	if len(series) != 100 {
		t.Fatalf("expected 100 points, got %d", len(series))
	}

	res, _ = doJSON(t, router, http.MethodGet, "/api/machines/machine-99/series", nil)
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown machine: expected 404, got %d", res.StatusCode)
	}
}

func TestProductionEndpoints(t *testing.T) {
	router := newTestRouter(t)

	res, body := doJSON(t, router, http.MethodGet, "/api/production", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	var series []map[string]any
	if err := json.Unmarshal(body, &series); err != nil {
		t.Fatalf("decode production: %v", err)
	}
	if len(series) != 24 {
		t.Fatalf("expected 24 points, got %d", len(series))
	}

	res, body = doJSON(t, router, http.MethodGet, "/api/production/latest", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("latest: expected 200, got %d", res.StatusCode)
	}
	var latest map[string]any
	if err := json.Unmarshal(body, &latest); err != nil {
		t.Fatalf("decode latest: %v", err)
	}
	if _, ok := latest["qualityScore"]; !ok {
		t.Fatalf("latest sample missing qualityScore: %s", body)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	router := newTestRouter(t)

	res, body := doJSON(t, router, http.MethodGet, "/api/settings", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", res.StatusCode)
	}
	var cur settings.Settings
	if err := json.Unmarshal(body, &cur); err != nil {
		t.Fatalf("decode settings: %v", err)
	}
	if cur.Alerts.TemperatureC != 80 {
		t.Fatalf("unexpected default threshold: %+v", cur.Alerts)
	}

	cur.Alerts.TemperatureC = 90
	cur.Maintenance.PerformanceMonitoring = true
	payload, _ := json.Marshal(cur)
	res, body = doJSON(t, router, http.MethodPut, "/api/settings", payload)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("put: expected 200, got %d: %s", res.StatusCode, body)
	}

	res, body = doJSON(t, router, http.MethodGet, "/api/settings", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("get after put: expected 200, got %d", res.StatusCode)
	}
	if err := json.Unmarshal(body, &cur); err != nil {
		t.Fatalf("decode settings: %v", err)
	}
	if cur.Alerts.TemperatureC != 90 || !cur.Maintenance.PerformanceMonitoring {
		t.Fatalf("settings not stored: %+v", cur)
	}
}

func TestPutSettingsRejectsInvalid(t *testing.T) {
	router := newTestRouter(t)

	bad := settings.Defaults()
	bad.Alerts.EfficiencyPct = 150
	payload, _ := json.Marshal(bad)
	res, _ := doJSON(t, router, http.MethodPut, "/api/settings", payload)
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.StatusCode)
	}

	res, _ = doJSON(t, router, http.MethodPut, "/api/settings", []byte("{not json"))
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("malformed body: expected 400, got %d", res.StatusCode)
	}
}

func TestResetDataset(t *testing.T) {
	router := newTestRouter(t)

	res, _ := doJSON(t, router, http.MethodPost, "/api/dataset/reset", nil)
	if res.StatusCode != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", res.StatusCode)
	}

	// The API still serves a (fresh) dataset afterwards.
	res, _ = doJSON(t, router, http.MethodGet, "/api/overview", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("overview after reset: expected 200, got %d", res.StatusCode)
	}
}

func TestRunDiagnosticsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	res, body := doJSON(t, router, http.MethodPost, "/api/diagnostics/run", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	var report diag.Report
	if err := json.Unmarshal(body, &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if !report.Healthy {
		t.Fatalf("expected healthy report: %+v", report)
	}
	if len(report.Steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(report.Steps))
	}
	if report.RunID == "" {
		t.Fatalf("missing run id")
	}
}

func TestMethodNotAllowed(t *testing.T) {
	router := newTestRouter(t)
	res, _ := doJSON(t, router, http.MethodDelete, "/api/settings", nil)
	if res.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", res.StatusCode)
	}
}
