package telemetry

import (
	"fmt"
	"math/rand"
	"time"
)

// Plant-wide aggregate ranges. Each sample is drawn independently; no
// cross-sample trend is modelled.
const (
	productionRateMin = 85.0
	productionRateMax = 98.0
	qualityScoreMin   = 90.0
	qualityScoreMax   = 100.0
	defectRateMin     = 0.1
	defectRateMax     = 2.0
)

// GenerateProductionSeries produces a single aggregate hourly series over
// the same kind of timestamp grid as GenerateMachineSeries: points
// elements, spaced interval apart, ending at now.
func GenerateProductionSeries(rng *rand.Rand, points int, interval time.Duration, now time.Time) ([]ProductionSample, error) {
	if rng == nil {
		return nil, fmt.Errorf("nil random source: %w", ErrInvalidArgument)
	}
	if points <= 0 {
		return nil, fmt.Errorf("point count %d must be positive: %w", points, ErrInvalidArgument)
	}
	if interval <= 0 {
		return nil, fmt.Errorf("interval %s must be positive: %w", interval, ErrInvalidArgument)
	}

	grid := timestampGrid(points, interval, now)
	out := make([]ProductionSample, 0, points)
	for _, ts := range grid {
		out = append(out, ProductionSample{
			Timestamp:      ts,
			ProductionRate: uniform(rng, productionRateMin, productionRateMax),
			QualityScore:   uniform(rng, qualityScoreMin, qualityScoreMax),
			DefectRate:     uniform(rng, defectRateMin, defectRateMax),
		})
	}
	return out, nil
}
