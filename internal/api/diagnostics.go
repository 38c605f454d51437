package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/AngelP17/manufacturing-demo/internal/diag"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The dashboard pages and the API share an origin; the demo has no
	// authentication layer to protect.
	CheckOrigin: func(*http.Request) bool { return true },
}

// streamEvent is one websocket frame of the diagnostics stream.
type streamEvent struct {
	Kind   string           `json:"kind"` // "step" or "report"
	Step   *diag.StepResult `json:"step,omitempty"`
	Report *diag.Report     `json:"report,omitempty"`
}

// StreamDiagnostics upgrades the connection and runs the diagnostics
// sequence, emitting one frame per completed step and a final report
// frame before closing.
func (h *Handlers) StreamDiagnostics(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.Log.Warn("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	h.Metrics.IncDiagnosticsRun()
	report := h.Diag.Run(r.Context(), func(step diag.StepResult) {
		s := step
		if err := conn.WriteJSON(streamEvent{Kind: "step", Step: &s}); err != nil {
			h.Log.Warn("diagnostics stream write failed", "err", err)
		}
	})

	if err := conn.WriteJSON(streamEvent{Kind: "report", Report: &report}); err != nil {
		h.Log.Warn("diagnostics report write failed", "err", err)
	}
	deadline := time.Now().Add(time.Second)
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
}
