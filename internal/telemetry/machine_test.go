package telemetry

import (
	"errors"
	"math/rand"
	"testing"
	"time"
)

func testNow() time.Time {
	return time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
}

func TestGenerateMachineSeriesGrid(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	now := testNow()
	machines := []string{"machine-01", "machine-02"}

	samples, err := GenerateMachineSeries(rng, machines, 100, time.Hour, now)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(samples) != 200 {
		t.Fatalf("expected 200 samples, got %d", len(samples))
	}

	perMachine := make(map[string][]MachineSample)
	for _, s := range samples {
		perMachine[s.Machine] = append(perMachine[s.Machine], s)
	}
	if len(perMachine) != 2 {
		t.Fatalf("expected 2 machines, got %d", len(perMachine))
	}
	for machine, series := range perMachine {
		if len(series) != 100 {
			t.Fatalf("machine %s: expected 100 points, got %d", machine, len(series))
		}
		for i := 1; i < len(series); i++ {
			if !series[i].Timestamp.After(series[i-1].Timestamp) {
				t.Fatalf("machine %s: timestamps not strictly increasing at index %d", machine, i)
			}
			if got := series[i].Timestamp.Sub(series[i-1].Timestamp); got != time.Hour {
				t.Fatalf("machine %s: expected 1h spacing, got %s", machine, got)
			}
		}
		if last := series[len(series)-1].Timestamp; !last.Equal(now) {
			t.Fatalf("machine %s: last timestamp %s, want %s", machine, last, now)
		}
	}
}

func TestGenerateMachineSeriesEfficiencyClamped(t *testing.T) {
	// Many draws across several seeds to exercise the noise tails.
	for seed := int64(0); seed < 5; seed++ {
		rng := rand.New(rand.NewSource(seed))
		samples, err := GenerateMachineSeries(rng, []string{"m1", "m2", "m3", "m4"}, 500, time.Hour, testNow())
		if err != nil {
			t.Fatalf("seed %d: generate: %v", seed, err)
		}
		for _, s := range samples {
			if s.Efficiency < 0 || s.Efficiency > 100 {
				t.Fatalf("seed %d: efficiency %f out of [0,100]", seed, s.Efficiency)
			}
			if s.Temperature < temperatureMin || s.Temperature > temperatureMax {
				t.Fatalf("seed %d: temperature %f out of range", seed, s.Temperature)
			}
			if s.Pressure < pressureMin || s.Pressure > pressureMax {
				t.Fatalf("seed %d: pressure %f out of range", seed, s.Pressure)
			}
			if s.Status != StatusActive && s.Status != StatusMaintenance {
				t.Fatalf("seed %d: unexpected status %q", seed, s.Status)
			}
		}
	}
}

func TestGenerateMachineSeriesRejectsBadInput(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	now := testNow()

	cases := []struct {
		name     string
		rng      *rand.Rand
		machines []string
		points   int
		interval time.Duration
	}{
		{"nil rng", nil, []string{"m1"}, 10, time.Hour},
		{"empty machine set", rng, nil, 10, time.Hour},
		{"blank machine id", rng, []string{""}, 10, time.Hour},
		{"duplicate machine id", rng, []string{"m1", "m1"}, 10, time.Hour},
		{"zero points", rng, []string{"m1"}, 0, time.Hour},
		{"negative points", rng, []string{"m1"}, -5, time.Hour},
		{"zero interval", rng, []string{"m1"}, 10, 0},
	}
	for _, tc := range cases {
		_, err := GenerateMachineSeries(tc.rng, tc.machines, tc.points, tc.interval, now)
		if !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("%s: expected ErrInvalidArgument, got %v", tc.name, err)
		}
	}
}

func TestGenerateMachineSeriesDeterministicForSeed(t *testing.T) {
	now := testNow()
	a, err := GenerateMachineSeries(rand.New(rand.NewSource(42)), []string{"m1", "m2"}, 24, time.Hour, now)
	if err != nil {
		t.Fatalf("generate a: %v", err)
	}
	b, err := GenerateMachineSeries(rand.New(rand.NewSource(42)), []string{"m1", "m2"}, 24, time.Hour, now)
	if err != nil {
		t.Fatalf("generate b: %v", err)
	}
	if len(a) != len(b) {
		t.Fatalf("length mismatch: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}
