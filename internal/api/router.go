package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AngelP17/manufacturing-demo/internal/metrics"
)

// NewRouter wires every HTTP route: the JSON API, health probes, the
// Prometheus endpoint, and (optionally) the server-rendered pages.
func NewRouter(logger *slog.Logger, m *metrics.Metrics, h *Handlers, pages http.Handler) http.Handler {
	r := mux.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return WrapWithLogging(logger, m, next)
	})

	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	r.HandleFunc("/health/ready", h.Health).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/overview", h.OverviewHandler).Methods(http.MethodGet)
	api.HandleFunc("/machines", h.Machines).Methods(http.MethodGet)
	api.HandleFunc("/machines/{id}/series", h.MachineSeries).Methods(http.MethodGet)
	api.HandleFunc("/production", h.Production).Methods(http.MethodGet)
	api.HandleFunc("/production/latest", h.ProductionLatest).Methods(http.MethodGet)
	api.HandleFunc("/settings", h.GetSettings).Methods(http.MethodGet)
	api.HandleFunc("/settings", h.PutSettings).Methods(http.MethodPut)
	api.HandleFunc("/dataset/reset", h.ResetDataset).Methods(http.MethodPost)
	api.HandleFunc("/diagnostics/run", h.RunDiagnostics).Methods(http.MethodPost)
	api.HandleFunc("/diagnostics/stream", h.StreamDiagnostics).Methods(http.MethodGet)

	if pages != nil {
		r.PathPrefix("/").Handler(pages)
	}

	recovered := handlers.RecoveryHandler(handlers.PrintRecoveryStack(false))(r)
	return handlers.CORS(
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPut, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(recovered)
}
