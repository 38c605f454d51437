package kpi

import (
	"errors"
	"testing"
	"time"

	"github.com/AngelP17/manufacturing-demo/internal/telemetry"
)

func machineSample(machine string, ts time.Time, eff, temp float64, status telemetry.MachineStatus) telemetry.MachineSample {
	return telemetry.MachineSample{
		Timestamp:   ts,
		Machine:     machine,
		Efficiency:  eff,
		Temperature: temp,
		Pressure:    100,
		Status:      status,
	}
}

func TestActiveMachineRatioUsesLatestSamplePerMachine(t *testing.T) {
	t0 := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Hour)

	samples := []telemetry.MachineSample{
		// Machine A was active earlier but its latest sample is Maintenance.
		machineSample("A", t0, 90, 65, telemetry.StatusActive),
		machineSample("A", t1, 90, 65, telemetry.StatusMaintenance),
		// Machine B is the other way around.
		machineSample("B", t0, 90, 65, telemetry.StatusMaintenance),
		machineSample("B", t1, 90, 65, telemetry.StatusActive),
	}

	status, err := ActiveMachineRatio(samples)
	if err != nil {
		t.Fatalf("ratio: %v", err)
	}
	if status.Active != 1 || status.Total != 2 {
		t.Fatalf("expected 1/2, got %d/%d", status.Active, status.Total)
	}
	if status.Ratio != 0.5 {
		t.Fatalf("expected ratio 0.5, got %f", status.Ratio)
	}
}

func TestActiveMachineRatioEmpty(t *testing.T) {
	if _, err := ActiveMachineRatio(nil); !errors.Is(err, ErrNoSamples) {
		t.Fatalf("expected ErrNoSamples, got %v", err)
	}
}

func TestMeanEfficiencyFlattened(t *testing.T) {
	t0 := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	samples := []telemetry.MachineSample{
		machineSample("A", t0, 80, 60, telemetry.StatusActive),
		machineSample("B", t0, 100, 70, telemetry.StatusActive),
	}
	mean, err := MeanEfficiency(samples)
	if err != nil {
		t.Fatalf("mean efficiency: %v", err)
	}
	if mean != 90 {
		t.Fatalf("expected 90, got %f", mean)
	}

	temp, err := MeanTemperature(samples)
	if err != nil {
		t.Fatalf("mean temperature: %v", err)
	}
	if temp != 65 {
		t.Fatalf("expected 65, got %f", temp)
	}
}

func TestMeanSelectorsEmpty(t *testing.T) {
	if _, err := MeanEfficiency(nil); !errors.Is(err, ErrNoSamples) {
		t.Fatalf("mean efficiency: expected ErrNoSamples, got %v", err)
	}
	if _, err := MeanTemperature(nil); !errors.Is(err, ErrNoSamples) {
		t.Fatalf("mean temperature: expected ErrNoSamples, got %v", err)
	}
}

func TestLatestProduction(t *testing.T) {
	if _, err := LatestProduction(nil); !errors.Is(err, ErrNoSamples) {
		t.Fatalf("empty: expected ErrNoSamples, got %v", err)
	}

	t0 := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	single := telemetry.ProductionSample{Timestamp: t0, ProductionRate: 91.5, QualityScore: 95, DefectRate: 0.4}
	got, err := LatestProduction([]telemetry.ProductionSample{single})
	if err != nil {
		t.Fatalf("single: %v", err)
	}
	if got != single {
		t.Fatalf("single sample changed: %+v", got)
	}

	series := []telemetry.ProductionSample{
		{Timestamp: t0, ProductionRate: 90},
		{Timestamp: t0.Add(2 * time.Hour), ProductionRate: 97},
		{Timestamp: t0.Add(time.Hour), ProductionRate: 93},
	}
	got, err = LatestProduction(series)
	if err != nil {
		t.Fatalf("series: %v", err)
	}
	if got.ProductionRate != 97 {
		t.Fatalf("expected latest-by-timestamp sample, got %+v", got)
	}
}

func TestSeriesForMachine(t *testing.T) {
	t0 := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	samples := []telemetry.MachineSample{
		machineSample("A", t0, 90, 65, telemetry.StatusActive),
		machineSample("B", t0, 88, 66, telemetry.StatusActive),
		machineSample("A", t0.Add(time.Hour), 91, 64, telemetry.StatusActive),
	}

	series, err := SeriesForMachine(samples, "A")
	if err != nil {
		t.Fatalf("series: %v", err)
	}
	if len(series) != 2 {
		t.Fatalf("expected 2 samples for A, got %d", len(series))
	}
	if !series[0].Timestamp.Equal(t0) || !series[1].Timestamp.Equal(t0.Add(time.Hour)) {
		t.Fatalf("order not preserved: %+v", series)
	}

	if _, err := SeriesForMachine(samples, "Z"); !errors.Is(err, ErrUnknownMachine) {
		t.Fatalf("expected ErrUnknownMachine, got %v", err)
	}
	if _, err := SeriesForMachine(nil, "A"); !errors.Is(err, ErrNoSamples) {
		t.Fatalf("expected ErrNoSamples, got %v", err)
	}
}

func TestMachineIDsFirstAppearanceOrder(t *testing.T) {
	t0 := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	samples := []telemetry.MachineSample{
		machineSample("B", t0, 90, 65, telemetry.StatusActive),
		machineSample("A", t0, 90, 65, telemetry.StatusActive),
		machineSample("B", t0.Add(time.Hour), 90, 65, telemetry.StatusActive),
	}
	ids := MachineIDs(samples)
	if len(ids) != 2 || ids[0] != "B" || ids[1] != "A" {
		t.Fatalf("unexpected ids: %v", ids)
	}
}
