package telemetry

import (
	"errors"
	"math/rand"
	"testing"
	"time"
)

func TestGenerateProductionSeriesGrid(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	now := testNow()

	samples, err := GenerateProductionSeries(rng, 24, time.Hour, now)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(samples) != 24 {
		t.Fatalf("expected 24 samples, got %d", len(samples))
	}
	for i := 1; i < len(samples); i++ {
		if !samples[i].Timestamp.After(samples[i-1].Timestamp) {
			t.Fatalf("timestamps not strictly increasing at index %d", i)
		}
	}
	if last := samples[len(samples)-1].Timestamp; !last.Equal(now) {
		t.Fatalf("last timestamp %s, want %s", last, now)
	}
	if first := samples[0].Timestamp; !first.Equal(now.Add(-23 * time.Hour)) {
		t.Fatalf("first timestamp %s, want %s", first, now.Add(-23*time.Hour))
	}
}

func TestGenerateProductionSeriesRanges(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	samples, err := GenerateProductionSeries(rng, 1000, time.Hour, testNow())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for _, s := range samples {
		if s.ProductionRate < productionRateMin || s.ProductionRate > productionRateMax {
			t.Fatalf("production rate %f out of range", s.ProductionRate)
		}
		if s.QualityScore < qualityScoreMin || s.QualityScore > qualityScoreMax {
			t.Fatalf("quality score %f out of range", s.QualityScore)
		}
		if s.DefectRate < defectRateMin || s.DefectRate > defectRateMax {
			t.Fatalf("defect rate %f out of range", s.DefectRate)
		}
	}
}

func TestGenerateProductionSeriesRejectsBadInput(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	now := testNow()

	if _, err := GenerateProductionSeries(nil, 10, time.Hour, now); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("nil rng: expected ErrInvalidArgument, got %v", err)
	}
	if _, err := GenerateProductionSeries(rng, 0, time.Hour, now); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("zero points: expected ErrInvalidArgument, got %v", err)
	}
	if _, err := GenerateProductionSeries(rng, 10, -time.Hour, now); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("negative interval: expected ErrInvalidArgument, got %v", err)
	}
}
