// Package config resolves runtime settings by layering defaults, an
// optional .env file, and DASHBOARD_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config captures everything the dashboard needs to boot. Defaults are
// chosen so the binary runs with zero setup.
type Config struct {
	// ListenAddress is the TCP address for the HTTP server.
	ListenAddress string
	// LogFilePath is where the slog tee handler appends entries.
	LogFilePath string
	// HTTPReadTimeout bounds the time to read incoming requests.
	HTTPReadTimeout time.Duration
	// HTTPWriteTimeout bounds the time to write responses.
	HTTPWriteTimeout time.Duration
	// ShutdownTimeout limits graceful shutdown attempts.
	ShutdownTimeout time.Duration

	// Machines lists the simulated machine identifiers.
	Machines []string
	// MachinePoints is the per-machine history window length.
	MachinePoints int
	// ProductionPoints is the plant-wide history window length.
	ProductionPoints int
	// SampleInterval is the spacing of the timestamp grid.
	SampleInterval time.Duration
	// Seed makes dataset generation reproducible when non-zero.
	Seed int64

	// DiagnosticsStepDelay is the simulated pause per diagnostics step.
	DiagnosticsStepDelay time.Duration

	// KafkaBrokers enables the one-shot dataset export when non-empty.
	KafkaBrokers []string
	// ExportTopic is the topic the dataset export publishes to.
	ExportTopic string
}

const (
	defaultListenAddress = ":8090"
	defaultLogFile       = "logs/dashboard.log"
	defaultReadTimeout   = 5 * time.Second
	defaultWriteTimeout  = 15 * time.Second
	defaultShutdown      = 5 * time.Second
	defaultMachines      = "machine-01,machine-02,machine-03,machine-04"
	defaultMachinePts    = 100
	defaultProductionPts = 24
	defaultInterval      = time.Hour
	defaultDiagDelay     = 500 * time.Millisecond
	defaultExportTopic   = "manufacturing.demo.telemetry"
)

// Load resolves the configuration. A missing .env file is not an error;
// explicit environment variables always win.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		ListenAddress:        defaultListenAddress,
		LogFilePath:          filepath.Clean(defaultLogFile),
		HTTPReadTimeout:      defaultReadTimeout,
		HTTPWriteTimeout:     defaultWriteTimeout,
		ShutdownTimeout:      defaultShutdown,
		Machines:             splitAndTrim(defaultMachines),
		MachinePoints:        defaultMachinePts,
		ProductionPoints:     defaultProductionPts,
		SampleInterval:       defaultInterval,
		DiagnosticsStepDelay: defaultDiagDelay,
		ExportTopic:          defaultExportTopic,
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v, ok := lookupEnvTrimmed("DASHBOARD_LISTEN_ADDRESS"); ok {
		if v == "" {
			return errors.New("DASHBOARD_LISTEN_ADDRESS cannot be empty")
		}
		cfg.ListenAddress = v
	}
	if v, ok := lookupEnvTrimmed("DASHBOARD_LOG_PATH"); ok {
		if v == "" {
			return errors.New("DASHBOARD_LOG_PATH cannot be empty")
		}
		cfg.LogFilePath = filepath.Clean(v)
	}
	if v, ok := lookupEnvTrimmed("DASHBOARD_HTTP_READ_TIMEOUT"); ok {
		d, err := parsePositiveDuration(v)
		if err != nil {
			return fmt.Errorf("DASHBOARD_HTTP_READ_TIMEOUT: %w", err)
		}
		cfg.HTTPReadTimeout = d
	}
	if v, ok := lookupEnvTrimmed("DASHBOARD_HTTP_WRITE_TIMEOUT"); ok {
		d, err := parsePositiveDuration(v)
		if err != nil {
			return fmt.Errorf("DASHBOARD_HTTP_WRITE_TIMEOUT: %w", err)
		}
		cfg.HTTPWriteTimeout = d
	}
	if v, ok := lookupEnvTrimmed("DASHBOARD_SHUTDOWN_TIMEOUT"); ok {
		d, err := parsePositiveDuration(v)
		if err != nil {
			return fmt.Errorf("DASHBOARD_SHUTDOWN_TIMEOUT: %w", err)
		}
		cfg.ShutdownTimeout = d
	}
	if v, ok := lookupEnvTrimmed("DASHBOARD_MACHINES"); ok {
		machines := splitAndTrim(v)
		if len(machines) == 0 {
			return errors.New("DASHBOARD_MACHINES cannot be empty")
		}
		cfg.Machines = machines
	}
	if v, ok := lookupEnvTrimmed("DASHBOARD_MACHINE_POINTS"); ok {
		n, err := parsePositiveInt(v)
		if err != nil {
			return fmt.Errorf("DASHBOARD_MACHINE_POINTS: %w", err)
		}
		cfg.MachinePoints = n
	}
	if v, ok := lookupEnvTrimmed("DASHBOARD_PRODUCTION_POINTS"); ok {
		n, err := parsePositiveInt(v)
		if err != nil {
			return fmt.Errorf("DASHBOARD_PRODUCTION_POINTS: %w", err)
		}
		cfg.ProductionPoints = n
	}
	if v, ok := lookupEnvTrimmed("DASHBOARD_SAMPLE_INTERVAL"); ok {
		d, err := parsePositiveDuration(v)
		if err != nil {
			return fmt.Errorf("DASHBOARD_SAMPLE_INTERVAL: %w", err)
		}
		cfg.SampleInterval = d
	}
	if v, ok := lookupEnvTrimmed("DASHBOARD_SEED"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("DASHBOARD_SEED: invalid integer: %w", err)
		}
		cfg.Seed = n
	}
	if v, ok := lookupEnvTrimmed("DASHBOARD_DIAG_STEP_DELAY"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("DASHBOARD_DIAG_STEP_DELAY: %w", err)
		}
		if d < 0 {
			return errors.New("DASHBOARD_DIAG_STEP_DELAY cannot be negative")
		}
		cfg.DiagnosticsStepDelay = d
	}
	if v, ok := lookupEnvTrimmed("DASHBOARD_KAFKA_BROKERS"); ok {
		cfg.KafkaBrokers = splitAndTrim(v)
	}
	if v, ok := lookupEnvTrimmed("DASHBOARD_EXPORT_TOPIC"); ok {
		if v == "" {
			return errors.New("DASHBOARD_EXPORT_TOPIC cannot be empty")
		}
		cfg.ExportTopic = v
	}
	return nil
}

func lookupEnvTrimmed(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(v), true
}

func splitAndTrim(raw string) []string {
	fields := strings.Split(raw, ",")
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if trimmed := strings.TrimSpace(f); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parsePositiveDuration(v string) (time.Duration, error) {
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration: %w", err)
	}
	if d <= 0 {
		return 0, errors.New("duration must be greater than zero")
	}
	return d, nil
}

func parsePositiveInt(v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid integer: %w", err)
	}
	if n <= 0 {
		return 0, errors.New("value must be greater than zero")
	}
	return n, nil
}
