package telemetry

import (
	"fmt"
	"math/rand"
	"time"
)

// Efficiency model: every machine operates around a baseline drawn once
// per series from U(85,95); per-sample noise is N(0,2) and the result is
// clamped into [0,100].
const (
	baselineMin = 85.0
	baselineMax = 95.0
	noiseStdDev = 2.0

	temperatureMin = 60.0
	temperatureMax = 75.0
	pressureMin    = 95.0
	pressureMax    = 105.0

	// Status draws are independent per sample, three Active for every
	// Maintenance. The draws are deliberately not smoothed over time.
	activeProbability = 0.75
)

// GenerateMachineSeries produces one fixed-length hourly series per machine,
// grouped by machine and ordered by timestamp ascending within each group.
// The timestamp grid has exactly points elements spaced interval apart and
// ends at now. The caller owns the random source so runs can be seeded.
func GenerateMachineSeries(rng *rand.Rand, machines []string, points int, interval time.Duration, now time.Time) ([]MachineSample, error) {
	if rng == nil {
		return nil, fmt.Errorf("nil random source: %w", ErrInvalidArgument)
	}
	if len(machines) == 0 {
		return nil, fmt.Errorf("machine set is empty: %w", ErrInvalidArgument)
	}
	seen := make(map[string]struct{}, len(machines))
	for _, m := range machines {
		if m == "" {
			return nil, fmt.Errorf("machine identifier is empty: %w", ErrInvalidArgument)
		}
		if _, dup := seen[m]; dup {
			return nil, fmt.Errorf("duplicate machine identifier %q: %w", m, ErrInvalidArgument)
		}
		seen[m] = struct{}{}
	}
	if points <= 0 {
		return nil, fmt.Errorf("point count %d must be positive: %w", points, ErrInvalidArgument)
	}
	if interval <= 0 {
		return nil, fmt.Errorf("interval %s must be positive: %w", interval, ErrInvalidArgument)
	}

	grid := timestampGrid(points, interval, now)
	out := make([]MachineSample, 0, len(machines)*points)
	for _, machine := range machines {
		baseline := uniform(rng, baselineMin, baselineMax)
		for _, ts := range grid {
			out = append(out, MachineSample{
				Timestamp:   ts,
				Machine:     machine,
				Efficiency:  clamp(baseline+rng.NormFloat64()*noiseStdDev, 0, 100),
				Temperature: uniform(rng, temperatureMin, temperatureMax),
				Pressure:    uniform(rng, pressureMin, pressureMax),
				Status:      drawStatus(rng),
			})
		}
	}
	return out, nil
}

// timestampGrid builds a strictly increasing grid of points timestamps
// spaced interval apart with the last element equal to now.
func timestampGrid(points int, interval time.Duration, now time.Time) []time.Time {
	grid := make([]time.Time, points)
	for i := range grid {
		grid[i] = now.Add(-time.Duration(points-1-i) * interval)
	}
	return grid
}

func drawStatus(rng *rand.Rand) MachineStatus {
	if rng.Float64() < activeProbability {
		return StatusActive
	}
	return StatusMaintenance
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
