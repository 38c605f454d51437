// Package settings keeps the dashboard's alert thresholds and
// maintenance toggles. The values are display-only: no component
// evaluates them against telemetry, matching the demo's inert settings
// page.
package settings

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrInvalidSetting marks updates that fail validation.
var ErrInvalidSetting = errors.New("invalid setting")

// Thresholds are the four alert limits from the settings page.
type Thresholds struct {
	TemperatureC  float64 `json:"temperatureC"`
	PressurePSI   float64 `json:"pressurePSI"`
	EfficiencyPct float64 `json:"efficiencyPct"`
	QualityPct    float64 `json:"qualityPct"`
}

// Toggles are the maintenance checkboxes.
type Toggles struct {
	AutomaticUpdates      bool `json:"automaticUpdates"`
	PerformanceMonitoring bool `json:"performanceMonitoring"`
	ErrorReporting        bool `json:"errorReporting"`
}

// Settings is the full settings document served to the UI.
type Settings struct {
	Alerts      Thresholds `json:"alerts"`
	Maintenance Toggles    `json:"maintenance"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Defaults are the out-of-the-box alert thresholds.
func Defaults() Settings {
	return Settings{
		Alerts: Thresholds{
			TemperatureC:  80,
			PressurePSI:   110,
			EfficiencyPct: 85,
			QualityPct:    90,
		},
	}
}

// Store is a mutex-guarded in-memory settings holder. Nothing is
// persisted; a restart returns to Defaults.
type Store struct {
	mu  sync.RWMutex
	cur Settings
}

func NewStore() *Store {
	return &Store{cur: Defaults()}
}

// Get returns a copy of the current settings.
func (s *Store) Get() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// Put validates and stores the new settings, stamping UpdatedAt.
func (s *Store) Put(next Settings) (Settings, error) {
	if err := validate(next.Alerts); err != nil {
		return Settings{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next.UpdatedAt = time.Now().UTC()
	s.cur = next
	return s.cur, nil
}

func validate(t Thresholds) error {
	if t.TemperatureC <= 0 {
		return fmt.Errorf("temperature threshold must be positive: %w", ErrInvalidSetting)
	}
	if t.PressurePSI <= 0 {
		return fmt.Errorf("pressure threshold must be positive: %w", ErrInvalidSetting)
	}
	if t.EfficiencyPct <= 0 || t.EfficiencyPct > 100 {
		return fmt.Errorf("efficiency threshold must be in (0,100]: %w", ErrInvalidSetting)
	}
	if t.QualityPct <= 0 || t.QualityPct > 100 {
		return fmt.Errorf("quality threshold must be in (0,100]: %w", ErrInvalidSetting)
	}
	return nil
}
