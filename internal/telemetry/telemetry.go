// Package telemetry holds the plant's domain types and the synthetic
// series generators that stand in for real machine instrumentation.
package telemetry

import (
	"errors"
	"time"
)

// ErrInvalidArgument marks generation calls with malformed parameters.
// Generators fail before producing any output rather than returning a
// degenerate empty series.
var ErrInvalidArgument = errors.New("invalid argument")

// MachineStatus is the operating state reported with each machine sample.
type MachineStatus string

const (
	StatusActive      MachineStatus = "Active"
	StatusMaintenance MachineStatus = "Maintenance"
)

// MachineSample is one reading for one machine at one timestamp.
type MachineSample struct {
	Timestamp   time.Time     `json:"timestamp"`
	Machine     string        `json:"machine"`
	Efficiency  float64       `json:"efficiency"` // percent, clamped to [0,100]
	Temperature float64       `json:"temperatureC"`
	Pressure    float64       `json:"pressurePSI"`
	Status      MachineStatus `json:"status"`
}

// ProductionSample is one plant-wide aggregate reading for one hour.
type ProductionSample struct {
	Timestamp      time.Time `json:"timestamp"`
	ProductionRate float64   `json:"productionRate"` // units/hr
	QualityScore   float64   `json:"qualityScore"`   // percent
	DefectRate     float64   `json:"defectRatePct"`  // percent
}
