package kpi

import (
	"fmt"

	"github.com/AngelP17/manufacturing-demo/internal/telemetry"
)

// MachineIDs returns the distinct machine identifiers in first-appearance
// order, which for generated series is the configured machine order.
func MachineIDs(samples []telemetry.MachineSample) []string {
	seen := make(map[string]struct{}, 8)
	var out []string
	for _, s := range samples {
		if _, ok := seen[s.Machine]; ok {
			continue
		}
		seen[s.Machine] = struct{}{}
		out = append(out, s.Machine)
	}
	return out
}

// ActiveMachineRatio counts the machines whose most recent sample reports
// StatusActive over the distinct machines present in the series.
func ActiveMachineRatio(samples []telemetry.MachineSample) (FleetStatus, error) {
	if len(samples) == 0 {
		return FleetStatus{}, fmt.Errorf("active machine ratio: %w", ErrNoSamples)
	}
	latest := make(map[string]telemetry.MachineSample, 8)
	for _, s := range samples {
		cur, ok := latest[s.Machine]
		if !ok || s.Timestamp.After(cur.Timestamp) {
			latest[s.Machine] = s
		}
	}
	status := FleetStatus{Total: len(latest)}
	for _, s := range latest {
		if s.Status == telemetry.StatusActive {
			status.Active++
		}
	}
	status.Ratio = float64(status.Active) / float64(status.Total)
	return status, nil
}

// MeanEfficiency is the arithmetic mean over all samples across all
// machines, a flattened mean rather than a per-machine mean of means.
func MeanEfficiency(samples []telemetry.MachineSample) (float64, error) {
	if len(samples) == 0 {
		return 0, fmt.Errorf("mean efficiency: %w", ErrNoSamples)
	}
	var sum float64
	for _, s := range samples {
		sum += s.Efficiency
	}
	return sum / float64(len(samples)), nil
}

// MeanTemperature is the flattened mean temperature across all samples.
func MeanTemperature(samples []telemetry.MachineSample) (float64, error) {
	if len(samples) == 0 {
		return 0, fmt.Errorf("mean temperature: %w", ErrNoSamples)
	}
	var sum float64
	for _, s := range samples {
		sum += s.Temperature
	}
	return sum / float64(len(samples)), nil
}

// LatestProduction returns the last sample by timestamp order.
func LatestProduction(samples []telemetry.ProductionSample) (telemetry.ProductionSample, error) {
	if len(samples) == 0 {
		return telemetry.ProductionSample{}, fmt.Errorf("latest production: %w", ErrNoSamples)
	}
	latest := samples[0]
	for _, s := range samples[1:] {
		if s.Timestamp.After(latest.Timestamp) {
			latest = s
		}
	}
	return latest, nil
}

// LatestMachineSample returns the machine's most recent sample.
func LatestMachineSample(samples []telemetry.MachineSample, machine string) (telemetry.MachineSample, error) {
	series, err := SeriesForMachine(samples, machine)
	if err != nil {
		return telemetry.MachineSample{}, err
	}
	return series[len(series)-1], nil
}

// SeriesForMachine filters the series down to one machine, preserving the
// original sample order.
func SeriesForMachine(samples []telemetry.MachineSample, machine string) ([]telemetry.MachineSample, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("series for machine %q: %w", machine, ErrNoSamples)
	}
	var out []telemetry.MachineSample
	for _, s := range samples {
		if s.Machine == machine {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("machine %q: %w", machine, ErrUnknownMachine)
	}
	return out, nil
}
