// Package kpi derives the dashboard's headline metrics from a generated
// dataset. Every selector is a pure function over sample slices; callers
// must handle the empty-input errors explicitly rather than rendering
// metrics derived from nothing.
package kpi

import "errors"

var (
	// ErrNoSamples marks a selector invoked on a series with zero samples.
	ErrNoSamples = errors.New("series has no samples")
	// ErrUnknownMachine marks a lookup for a machine absent from the series.
	ErrUnknownMachine = errors.New("unknown machine")
)

// FleetStatus is the active-machine tile on the dashboard page.
type FleetStatus struct {
	Active int     `json:"active"`
	Total  int     `json:"total"`
	Ratio  float64 `json:"ratio"`
}
