// Package diag implements the "Run System Diagnostics" button: a
// cosmetic check sequence that pauses between steps to simulate work.
// Every check passes; there is nothing real to diagnose in a demo.
package diag

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// stepNames is the fixed check sequence, run in order.
var stepNames = []string{
	"sensor connectivity",
	"telemetry generation",
	"dataset cache",
	"render pipeline",
}

// StepResult is emitted once per completed step. Durations marshal as
// nanoseconds, the encoding/json default for time.Duration.
type StepResult struct {
	Name    string        `json:"name"`
	Status  string        `json:"status"`
	Elapsed time.Duration `json:"elapsed"`
}

// Report summarizes one diagnostics run.
type Report struct {
	RunID     string        `json:"runId"`
	StartedAt time.Time     `json:"startedAt"`
	Duration  time.Duration `json:"duration"`
	Steps     []StepResult  `json:"steps"`
	Healthy   bool          `json:"healthy"`
}

// Runner executes the simulated diagnostics sequence.
type Runner struct {
	log       *slog.Logger
	stepDelay time.Duration
}

// NewRunner builds a runner whose per-step pause is stepDelay. The
// default run pauses 500ms per step, two seconds in total.
func NewRunner(log *slog.Logger, stepDelay time.Duration) *Runner {
	if stepDelay < 0 {
		stepDelay = 0
	}
	return &Runner{log: log, stepDelay: stepDelay}
}

// Run executes all steps, invoking emit (if non-nil) after each one so
// callers can stream progress. Cancelling the context stops the run
// early; the partial report is still returned with Healthy=false.
func (r *Runner) Run(ctx context.Context, emit func(StepResult)) Report {
	report := Report{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}
	r.log.Info("diagnostics run started", "runId", report.RunID)

	timer := time.NewTimer(r.stepDelay)
	defer timer.Stop()

	for i, name := range stepNames {
		stepStart := time.Now()
		if i > 0 {
			timer.Reset(r.stepDelay)
		}
		select {
		case <-ctx.Done():
			report.Duration = time.Since(report.StartedAt)
			r.log.Warn("diagnostics run cancelled", "runId", report.RunID, "completedSteps", len(report.Steps))
			return report
		case <-timer.C:
		}
		step := StepResult{Name: name, Status: "ok", Elapsed: time.Since(stepStart)}
		report.Steps = append(report.Steps, step)
		if emit != nil {
			emit(step)
		}
	}

	report.Duration = time.Since(report.StartedAt)
	report.Healthy = true
	r.log.Info("diagnostics run completed", "runId", report.RunID, "duration", report.Duration)
	return report
}
