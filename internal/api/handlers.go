// Package api exposes the dashboard's JSON endpoints.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/AngelP17/manufacturing-demo/internal/demodata"
	"github.com/AngelP17/manufacturing-demo/internal/diag"
	"github.com/AngelP17/manufacturing-demo/internal/kpi"
	"github.com/AngelP17/manufacturing-demo/internal/metrics"
	"github.com/AngelP17/manufacturing-demo/internal/settings"
	"github.com/AngelP17/manufacturing-demo/internal/telemetry"
)

// Handlers carries the collaborators every endpoint needs. The cache is
// the only data-access path; selectors run per request.
type Handlers struct {
	Log      *slog.Logger
	Cache    *demodata.Cache
	Settings *settings.Store
	Diag     *diag.Runner
	Metrics  *metrics.Metrics
}

// Overview is the dashboard-page tile payload.
type Overview struct {
	Fleet            kpi.FleetStatus            `json:"fleet"`
	MeanEfficiency   float64                    `json:"meanEfficiency"`
	MeanTemperatureC float64                    `json:"meanTemperatureC"`
	LatestProduction telemetry.ProductionSample `json:"latestProduction"`
	GeneratedAt      time.Time                  `json:"generatedAt"`
}

// MachineSummary pairs a machine id with its most recent sample.
type MachineSummary struct {
	Machine string                  `json:"machine"`
	Latest  telemetry.MachineSample `json:"latest"`
}

func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "ts": time.Now().UTC()})
}

// OverviewHandler serves the four headline tiles.
func (h *Handlers) OverviewHandler(w http.ResponseWriter, r *http.Request) {
	ds, err := h.Cache.Load()
	if err != nil {
		h.internalError(w, "load dataset", err)
		return
	}
	fleet, err := kpi.ActiveMachineRatio(ds.Machines)
	if err != nil {
		h.selectorError(w, err)
		return
	}
	eff, err := kpi.MeanEfficiency(ds.Machines)
	if err != nil {
		h.selectorError(w, err)
		return
	}
	temp, err := kpi.MeanTemperature(ds.Machines)
	if err != nil {
		h.selectorError(w, err)
		return
	}
	latest, err := kpi.LatestProduction(ds.Production)
	if err != nil {
		h.selectorError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Overview{
		Fleet:            fleet,
		MeanEfficiency:   eff,
		MeanTemperatureC: temp,
		LatestProduction: latest,
		GeneratedAt:      ds.GeneratedAt,
	})
}

// Machines lists the fleet with each machine's latest sample.
func (h *Handlers) Machines(w http.ResponseWriter, r *http.Request) {
	ds, err := h.Cache.Load()
	if err != nil {
		h.internalError(w, "load dataset", err)
		return
	}
	ids := kpi.MachineIDs(ds.Machines)
	out := make([]MachineSummary, 0, len(ids))
	for _, id := range ids {
		latest, err := kpi.LatestMachineSample(ds.Machines, id)
		if err != nil {
			h.selectorError(w, err)
			return
		}
		out = append(out, MachineSummary{Machine: id, Latest: latest})
	}
	writeJSON(w, http.StatusOK, out)
}

// MachineSeries serves one machine's full history.
func (h *Handlers) MachineSeries(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	ds, err := h.Cache.Load()
	if err != nil {
		h.internalError(w, "load dataset", err)
		return
	}
	series, err := kpi.SeriesForMachine(ds.Machines, id)
	if err != nil {
		h.selectorError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, series)
}

// Production serves the plant-wide hourly series.
func (h *Handlers) Production(w http.ResponseWriter, r *http.Request) {
	ds, err := h.Cache.Load()
	if err != nil {
		h.internalError(w, "load dataset", err)
		return
	}
	writeJSON(w, http.StatusOK, ds.Production)
}

// ProductionLatest serves the most recent aggregate sample.
func (h *Handlers) ProductionLatest(w http.ResponseWriter, r *http.Request) {
	ds, err := h.Cache.Load()
	if err != nil {
		h.internalError(w, "load dataset", err)
		return
	}
	latest, err := kpi.LatestProduction(ds.Production)
	if err != nil {
		h.selectorError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, latest)
}

// GetSettings serves the current (inert) settings document.
func (h *Handlers) GetSettings(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.Settings.Get())
}

// PutSettings validates and stores a settings document. The values are
// display-only; no alert evaluation consumes them.
func (h *Handlers) PutSettings(w http.ResponseWriter, r *http.Request) {
	var next settings.Settings
	if err := json.NewDecoder(r.Body).Decode(&next); err != nil {
		h.badRequest(w, "invalid settings payload")
		return
	}
	saved, err := h.Settings.Put(next)
	if err != nil {
		if errors.Is(err, settings.ErrInvalidSetting) {
			h.badRequest(w, err.Error())
			return
		}
		h.internalError(w, "store settings", err)
		return
	}
	h.Log.Info("settings updated", "thresholds", saved.Alerts)
	writeJSON(w, http.StatusOK, saved)
}

// ResetDataset invalidates the memoized dataset so the next load
// regenerates, the API rendition of a session restart.
func (h *Handlers) ResetDataset(w http.ResponseWriter, _ *http.Request) {
	h.Cache.Invalidate()
	h.Log.Info("dataset invalidated")
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "reset"})
}

// RunDiagnostics executes the simulated check sequence synchronously
// and returns the full report.
func (h *Handlers) RunDiagnostics(w http.ResponseWriter, r *http.Request) {
	h.Metrics.IncDiagnosticsRun()
	report := h.Diag.Run(r.Context(), nil)
	writeJSON(w, http.StatusOK, report)
}

func (h *Handlers) selectorError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, kpi.ErrUnknownMachine):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, kpi.ErrNoSamples):
		h.Log.Error("selector on empty dataset", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "dataset has no samples"})
	default:
		h.internalError(w, "selector", err)
	}
}

func (h *Handlers) badRequest(w http.ResponseWriter, msg string) {
	h.Log.Warn("bad request", "error", msg)
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}

func (h *Handlers) internalError(w http.ResponseWriter, op string, err error) {
	h.Log.Error(op+" failed", "err", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
