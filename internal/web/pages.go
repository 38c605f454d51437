// Package web renders the dashboard's server-side pages. It is a pure
// consumer of the data cache and the kpi selectors; all chart geometry
// is computed here so the templates stay declarative.
package web

import (
	"fmt"
	"html/template"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/AngelP17/manufacturing-demo/internal/demodata"
	"github.com/AngelP17/manufacturing-demo/internal/diag"
	"github.com/AngelP17/manufacturing-demo/internal/kpi"
	"github.com/AngelP17/manufacturing-demo/internal/settings"
	"github.com/AngelP17/manufacturing-demo/internal/telemetry"
)

var lineColors = []string{"#58a6ff", "#56d364", "#f59e0b", "#f87171", "#a78bfa", "#34d399"}

// Line is one polyline in an SVG chart.
type Line struct {
	Label  string
	Color  string
	Points string
}

// Pages serves the four HTML pages of the dashboard.
type Pages struct {
	log      *slog.Logger
	cache    *demodata.Cache
	settings *settings.Store
	diag     *diag.Runner
	router   *mux.Router
}

func NewPages(log *slog.Logger, cache *demodata.Cache, store *settings.Store, runner *diag.Runner) *Pages {
	p := &Pages{log: log, cache: cache, settings: store, diag: runner}
	r := mux.NewRouter()
	r.HandleFunc("/", p.dashboard).Methods(http.MethodGet)
	r.HandleFunc("/machines", p.machines).Methods(http.MethodGet)
	r.HandleFunc("/production", p.production).Methods(http.MethodGet)
	r.HandleFunc("/settings", p.settingsPage).Methods(http.MethodGet)
	r.HandleFunc("/settings", p.saveSettings).Methods(http.MethodPost)
	r.HandleFunc("/settings/diagnostics", p.runDiagnostics).Methods(http.MethodPost)
	p.router = r
	return p
}

func (p *Pages) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.router.ServeHTTP(w, r)
}

func (p *Pages) render(w http.ResponseWriter, page string, data any) {
	t, err := template.New("page").Parse(tmplBase + page)
	if err != nil {
		p.log.Error("template parse failed", "err", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.ExecuteTemplate(w, "base", data); err != nil {
		p.log.Error("template render failed", "err", err)
	}
}

func (p *Pages) dashboard(w http.ResponseWriter, r *http.Request) {
	ds, err := p.cache.Load()
	if err != nil {
		p.serverError(w, err)
		return
	}
	fleet, err := kpi.ActiveMachineRatio(ds.Machines)
	if err != nil {
		p.serverError(w, err)
		return
	}
	eff, err := kpi.MeanEfficiency(ds.Machines)
	if err != nil {
		p.serverError(w, err)
		return
	}
	temp, err := kpi.MeanTemperature(ds.Machines)
	if err != nil {
		p.serverError(w, err)
		return
	}
	latest, err := kpi.LatestProduction(ds.Production)
	if err != nil {
		p.serverError(w, err)
		return
	}

	var effLines []Line
	for i, id := range kpi.MachineIDs(ds.Machines) {
		series, err := kpi.SeriesForMachine(ds.Machines, id)
		if err != nil {
			p.serverError(w, err)
			return
		}
		vals := make([]float64, len(series))
		for j, s := range series {
			vals[j] = s.Efficiency
		}
		effLines = append(effLines, Line{Label: id, Color: lineColors[i%len(lineColors)], Points: polyline(vals, 0, 100)})
	}

	rates := make([]float64, len(ds.Production))
	quality := make([]float64, len(ds.Production))
	for i, s := range ds.Production {
		rates[i] = s.ProductionRate
		quality[i] = s.QualityScore
	}

	p.render(w, tmplDashboard, map[string]any{
		"Fleet":           fleet,
		"FleetPct":        fleet.Ratio * 100,
		"MeanEfficiency":  eff,
		"MeanTemperature": temp,
		"QualityScore":    latest.QualityScore,
		"EfficiencyLines": effLines,
		"ProductionLines": []Line{
			{Label: "production rate", Color: lineColors[0], Points: polyline(rates, 80, 100)},
			{Label: "quality score", Color: lineColors[1], Points: polyline(quality, 80, 100)},
		},
	})
}

func (p *Pages) machines(w http.ResponseWriter, r *http.Request) {
	ds, err := p.cache.Load()
	if err != nil {
		p.serverError(w, err)
		return
	}
	ids := kpi.MachineIDs(ds.Machines)
	if len(ids) == 0 {
		p.serverError(w, fmt.Errorf("machine page: %w", kpi.ErrNoSamples))
		return
	}

	selected := r.URL.Query().Get("machine")
	series, err := kpi.SeriesForMachine(ds.Machines, selected)
	if err != nil {
		// Unknown or missing selection falls back to the first machine.
		selected = ids[0]
		if series, err = kpi.SeriesForMachine(ds.Machines, selected); err != nil {
			p.serverError(w, err)
			return
		}
	}
	latest := series[len(series)-1]

	temps := make([]float64, len(series))
	for i, s := range series {
		temps[i] = s.Temperature
	}

	p.render(w, tmplMachines, map[string]any{
		"Machines":        ids,
		"Selected":        selected,
		"Latest":          latest,
		"IsActive":        latest.Status == telemetry.StatusActive,
		"TemperatureLine": Line{Label: selected, Color: lineColors[0], Points: polyline(temps, 55, 80)},
	})
}

func (p *Pages) production(w http.ResponseWriter, r *http.Request) {
	ds, err := p.cache.Load()
	if err != nil {
		p.serverError(w, err)
		return
	}
	latest, err := kpi.LatestProduction(ds.Production)
	if err != nil {
		p.serverError(w, err)
		return
	}

	rates := make([]float64, len(ds.Production))
	quality := make([]float64, len(ds.Production))
	defects := make([]float64, len(ds.Production))
	for i, s := range ds.Production {
		rates[i] = s.ProductionRate
		quality[i] = s.QualityScore
		defects[i] = s.DefectRate
	}

	p.render(w, tmplProduction, map[string]any{
		"Latest": latest,
		"Lines": []Line{
			{Label: "production rate", Color: lineColors[0], Points: polyline(rates, 80, 100)},
			{Label: "quality score", Color: lineColors[1], Points: polyline(quality, 80, 100)},
			{Label: "defect rate", Color: lineColors[3], Points: polyline(defects, 0, 5)},
		},
	})
}

func (p *Pages) settingsPage(w http.ResponseWriter, r *http.Request) {
	p.render(w, tmplSettings, map[string]any{
		"Settings": p.settings.Get(),
		"Saved":    r.URL.Query().Get("saved") == "1",
		"Report":   nil,
	})
}

func (p *Pages) saveSettings(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	next := settings.Settings{
		Alerts: settings.Thresholds{
			TemperatureC:  formFloat(r, "temperatureC"),
			PressurePSI:   formFloat(r, "pressurePSI"),
			EfficiencyPct: formFloat(r, "efficiencyPct"),
			QualityPct:    formFloat(r, "qualityPct"),
		},
		Maintenance: settings.Toggles{
			AutomaticUpdates:      r.PostFormValue("automaticUpdates") != "",
			PerformanceMonitoring: r.PostFormValue("performanceMonitoring") != "",
			ErrorReporting:        r.PostFormValue("errorReporting") != "",
		},
	}
	if _, err := p.settings.Put(next); err != nil {
		p.log.Warn("settings rejected", "err", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Redirect(w, r, "/settings?saved=1", http.StatusSeeOther)
}

func (p *Pages) runDiagnostics(w http.ResponseWriter, r *http.Request) {
	report := p.diag.Run(r.Context(), nil)
	p.render(w, tmplSettings, map[string]any{
		"Settings": p.settings.Get(),
		"Saved":    false,
		"Report":   &report,
	})
}

func (p *Pages) serverError(w http.ResponseWriter, err error) {
	p.log.Error("page render failed", "err", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func formFloat(r *http.Request, key string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(r.PostFormValue(key)), 64)
	if err != nil {
		return 0 // fails threshold validation downstream
	}
	return v
}

// polyline maps a value series onto the 640x220 chart viewBox with a
// fixed value range so related series share a scale.
func polyline(vals []float64, lo, hi float64) string {
	const width, height, pad = 640.0, 220.0, 10.0
	if len(vals) == 0 || hi <= lo {
		return ""
	}
	step := (width - 2*pad) / math.Max(1, float64(len(vals)-1))
	var b strings.Builder
	for i, v := range vals {
		if v < lo {
			v = lo
		}
		if v > hi {
			v = hi
		}
		x := pad + float64(i)*step
		y := height - pad - (v-lo)/(hi-lo)*(height-2*pad)
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%.1f,%.1f", x, y)
	}
	return b.String()
}
